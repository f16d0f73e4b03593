package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// plainDecimal is the only accepted number form: digits with an optional
// fraction. Signs, exponents and hex floats are refused.
var plainDecimal = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// ParseWeight parses a user-typed weight in kilograms. A comma is accepted
// as the decimal separator and a trailing "kg" is ignored.
func ParseWeight(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("no value entered")
	}
	s = strings.TrimSpace(strings.TrimSuffix(strings.ToLower(s), "kg"))
	s = strings.Replace(s, ",", ".", 1)
	if !plainDecimal.MatchString(s) {
		return 0, fmt.Errorf("%q is not a number", strings.TrimSpace(raw))
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", strings.TrimSpace(raw))
	}
	return v, nil
}

// ValidateWeight checks that kg is within the accepted range. field names
// the value in the error message.
func ValidateWeight(field string, kg float64) error {
	if math.IsNaN(kg) || !InWeightRange(kg) {
		return newValidationError(ErrCodeInvalidWeight,
			"%s must be between %.0f and %.0f kg", field, MinWeightKg, MaxWeightKg)
	}
	return nil
}

// ValidateProgram applies the program rules in a fixed order: weights in
// range, distinct goal, allowed duration, safe weekly rate.
func ValidateProgram(start, target float64, weeks int) error {
	if err := ValidateWeight("start weight", start); err != nil {
		return err
	}
	if err := ValidateWeight("target weight", target); err != nil {
		return err
	}
	if start == target {
		return newValidationError(ErrCodeIdenticalGoal, "target weight must differ from start weight")
	}
	if !IsAllowedWeeks(weeks) {
		return newValidationError(ErrCodeInvalidDuration,
			"%d weeks is not an offered program length", weeks)
	}
	maxTotal := float64(weeks) * MaxWeeklyChangeKg
	if math.Abs(target-start) > maxTotal {
		return newValidationError(ErrCodeUnrealisticProgram,
			"at most %.1f kg change is recommended in %d weeks; choose a longer program or revise the target",
			maxTotal, weeks)
	}
	return nil
}

// ParseProgramInput converts the raw text of the entry flow into typed
// program parameters and validates them.
func ParseProgramInput(startText, targetText, weeksText string) (start, target float64, weeks int, err error) {
	start, perr := ParseWeight(startText)
	if perr != nil {
		return 0, 0, 0, newValidationError(ErrCodeInvalidWeight, "start weight: %v", perr)
	}
	target, perr = ParseWeight(targetText)
	if perr != nil {
		return 0, 0, 0, newValidationError(ErrCodeInvalidWeight, "target weight: %v", perr)
	}
	weeks, perr = strconv.Atoi(strings.TrimSpace(weeksText))
	if perr != nil {
		return 0, 0, 0, newValidationError(ErrCodeInvalidDuration, "program length %q is not a whole number of weeks", strings.TrimSpace(weeksText))
	}
	if err := ValidateProgram(start, target, weeks); err != nil {
		return 0, 0, 0, err
	}
	return start, target, weeks, nil
}

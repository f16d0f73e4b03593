package domain

import "fmt"

type ValidationErrorCode string

const (
	ErrCodeInvalidWeight      ValidationErrorCode = "INVALID_WEIGHT"
	ErrCodeIdenticalGoal      ValidationErrorCode = "IDENTICAL_GOAL"
	ErrCodeUnrealisticProgram ValidationErrorCode = "UNREALISTIC_PROGRAM"
	ErrCodeInvalidDuration    ValidationErrorCode = "INVALID_DURATION"
	ErrCodeInvalidWeeklyEntry ValidationErrorCode = "INVALID_WEEKLY_ENTRY"
	ErrCodeUnknownWeek        ValidationErrorCode = "UNKNOWN_WEEK"
)

// ValidationError is returned for user input that fails a business rule.
// State is never mutated when one is returned.
type ValidationError struct {
	Code    ValidationErrorCode
	Message string
}

func (e *ValidationError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func newValidationError(code ValidationErrorCode, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// InvalidWeeklyEntry builds an INVALID_WEEKLY_ENTRY error for the given week.
func InvalidWeeklyEntry(week int, format string, args ...any) *ValidationError {
	return &ValidationError{
		Code:    ErrCodeInvalidWeeklyEntry,
		Message: fmt.Sprintf("week %d: ", week) + fmt.Sprintf(format, args...),
	}
}

// UnknownWeek builds an UNKNOWN_WEEK error.
func UnknownWeek(week, totalWeeks int) *ValidationError {
	return newValidationError(ErrCodeUnknownWeek, "week %d is outside the program (1-%d)", week, totalWeeks)
}

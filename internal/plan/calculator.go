package plan

import (
	"fmt"
	"math"

	"github.com/alexanderramin/glidepath/internal/domain"
)

// Round1 rounds half away from zero to one decimal place.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Round2 rounds half away from zero to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// BuildWeeks projects the straight glide path from start to target over
// totalWeeks. Every week is returned pending with no actual values. The
// final week always lands on round1(target).
func BuildWeeks(start, target float64, totalWeeks int) ([]domain.WeekEntry, error) {
	if totalWeeks <= 0 {
		return nil, fmt.Errorf("build weeks: total weeks must be positive, got %d", totalWeeks)
	}

	delta := (target - start) / float64(totalWeeks)
	change := Round1(delta)

	weeks := make([]domain.WeekEntry, totalWeeks)
	for i := range weeks {
		w := i + 1
		t := start + delta*float64(w)
		if w == totalWeeks {
			t = target
		}
		weeks[i] = domain.WeekEntry{
			Week:         w,
			TargetWeight: Round1(t),
			TargetChange: change,
			Status:       domain.WeekPending,
		}
	}
	return weeks, nil
}

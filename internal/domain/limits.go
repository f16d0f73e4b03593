package domain

const (
	MinWeightKg = 30.0
	MaxWeightKg = 300.0

	// MaxWeeklyChangeKg caps the planned change rate of a program.
	MaxWeeklyChangeKg = 1.5
)

// AllowedProgramWeeks is the set of durations offered by the entry flow.
var AllowedProgramWeeks = []int{1, 2, 4, 6, 8, 10, 12, 16, 20, 24, 26, 30, 36, 40, 44, 48, 52}

// IsAllowedWeeks reports whether n is one of AllowedProgramWeeks.
func IsAllowedWeeks(n int) bool {
	for _, w := range AllowedProgramWeeks {
		if w == n {
			return true
		}
	}
	return false
}

// InWeightRange reports whether kg lies in [MinWeightKg, MaxWeightKg].
func InWeightRange(kg float64) bool {
	return kg >= MinWeightKg && kg <= MaxWeightKg
}

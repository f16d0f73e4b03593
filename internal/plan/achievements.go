package plan

import (
	"math"

	"github.com/alexanderramin/glidepath/internal/domain"
)

type Achievement struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Unlocked    bool    `json:"unlocked"`
	Progress    float64 `json:"progress"`
	MaxProgress float64 `json:"max_progress"`
}

// Achievements evaluates the fixed badge set for a program.
func Achievements(p *domain.Program, weeks []domain.WeekEntry) []Achievement {
	if p == nil || p.TotalWeeks <= 0 {
		return nil
	}
	s := Summarize(p, weeks)
	completion := s.PercentProgress
	streak := float64(s.ConsecutiveSuccessStreak)
	completed := float64(s.CompletedWeeks)
	total := float64(p.TotalWeeks)

	milestone := func(id, title, desc string, pct float64) Achievement {
		return Achievement{
			ID: id, Title: title, Description: desc,
			Unlocked:    completion >= pct,
			Progress:    math.Min(completion, pct),
			MaxProgress: pct,
		}
	}

	return []Achievement{
		{
			ID: "first-week", Title: "First Step", Description: "Record your first week",
			Unlocked: s.CompletedWeeks >= 1, Progress: math.Min(completed, 1), MaxProgress: 1,
		},
		{
			ID: "five-streak", Title: "Consistency", Description: "Five successful weeks in a row",
			Unlocked: s.ConsecutiveSuccessStreak >= 5, Progress: math.Min(streak, 5), MaxProgress: 5,
		},
		milestone("quarter", "Quarter Way", "Complete 25% of the program", 25),
		milestone("half", "Halfway", "Complete 50% of the program", 50),
		milestone("three-quarter", "Final Quarter", "Complete 75% of the program", 75),
		{
			ID: "perfect", Title: "Perfection", Description: "Hit the target in every week",
			Unlocked: s.CompletedWeeks > 0 && s.SuccessfulWeeks == s.CompletedWeeks &&
				s.CompletedWeeks >= p.TotalWeeks,
			Progress:    float64(s.SuccessfulWeeks),
			MaxProgress: total,
		},
	}
}

// UnlockedCount returns how many achievements are unlocked.
func UnlockedCount(list []Achievement) int {
	n := 0
	for _, a := range list {
		if a.Unlocked {
			n++
		}
	}
	return n
}

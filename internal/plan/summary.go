package plan

import (
	"math"

	"github.com/alexanderramin/glidepath/internal/domain"
)

// BestWeek identifies the recorded week with the largest absolute change.
type BestWeek struct {
	Week   int     `json:"week"`
	Change float64 `json:"change"`
}

// Summary is the progress read model. It is computed on demand and never
// stored.
type Summary struct {
	Direction                 domain.Direction `json:"direction"`
	TotalTargetDelta          float64          `json:"total_target_delta"`
	WeeklyAverageDelta        float64          `json:"weekly_average_delta"`
	CompletedWeeks            int              `json:"completed_weeks"`
	RemainingWeeks            int              `json:"remaining_weeks"`
	PercentProgress           float64          `json:"percent_progress"`
	BestWeek                  *BestWeek        `json:"best_week,omitempty"`
	AverageActualWeeklyChange float64          `json:"average_actual_weekly_change"`
	SuccessfulWeeks           int              `json:"successful_weeks"`
	ConsecutiveSuccessStreak  int              `json:"consecutive_success_streak"`
	MotivationScore           int              `json:"motivation_score"`
	CurrentWeek               int              `json:"current_week"`
	CurrentTarget             float64          `json:"current_target"`
	LatestWeight              *float64         `json:"latest_weight,omitempty"`
}

// Summarize aggregates weeks into progress statistics. Progress counts
// recorded weeks; calendar time is not considered.
func Summarize(p *domain.Program, weeks []domain.WeekEntry) Summary {
	if p == nil || p.TotalWeeks <= 0 {
		return Summary{}
	}

	s := Summary{
		Direction:          p.Direction(),
		TotalTargetDelta:   p.TotalTargetDelta(),
		WeeklyAverageDelta: p.TotalTargetDelta() / float64(p.TotalWeeks),
	}

	var changeSum float64
	for _, w := range weeks {
		if !w.Recorded() {
			continue
		}
		s.CompletedWeeks++
		if w.Status.Successful() {
			s.SuccessfulWeeks++
		}
		latest := *w.ActualWeight
		s.LatestWeight = &latest

		var abs float64
		if w.ActualChange != nil {
			abs = math.Abs(*w.ActualChange)
		}
		changeSum += abs
		if s.BestWeek == nil || abs > math.Abs(s.BestWeek.Change) {
			var c float64
			if w.ActualChange != nil {
				c = *w.ActualChange
			}
			s.BestWeek = &BestWeek{Week: w.Week, Change: c}
		}
	}

	s.RemainingWeeks = max(0, p.TotalWeeks-s.CompletedWeeks)
	s.PercentProgress = clamp(100*float64(s.CompletedWeeks)/float64(p.TotalWeeks), 0, 100)
	if s.CompletedWeeks > 0 {
		s.AverageActualWeeklyChange = changeSum / float64(s.CompletedWeeks)
	}
	s.ConsecutiveSuccessStreak = LongestStreak(weeks)
	s.MotivationScore = min(100, int(math.Round(100*float64(s.SuccessfulWeeks)/float64(max(1, s.CompletedWeeks)))))

	s.CurrentWeek = min(s.CompletedWeeks+1, p.TotalWeeks)
	if s.CurrentWeek >= 1 && s.CurrentWeek <= len(weeks) {
		s.CurrentTarget = weeks[s.CurrentWeek-1].TargetWeight
	}
	return s
}

// LongestStreak returns the longest run of successful recorded weeks.
// A behind week resets the run; unrecorded weeks leave it untouched.
func LongestStreak(weeks []domain.WeekEntry) int {
	best, run := 0, 0
	for _, w := range weeks {
		if !w.Recorded() {
			continue
		}
		if w.Status.Successful() {
			run++
			best = max(best, run)
			continue
		}
		run = 0
	}
	return best
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

package plan

import (
	"math"

	"github.com/alexanderramin/glidepath/internal/domain"
)

// TrendWindow is the number of most recent recorded weeks considered.
const TrendWindow = 4

// StableBandKg is the net movement under which the trend counts as stable.
const StableBandKg = 0.5

type TrendDirection string

const (
	TrendInsufficient TrendDirection = "insufficient"
	TrendStable       TrendDirection = "stable"
	TrendImproving    TrendDirection = "improving"
	TrendDeclining    TrendDirection = "declining"
)

type Recommendation string

const (
	RecommendMoreData       Recommendation = "more_data"
	RecommendSlowDown       Recommendation = "slow_down"
	RecommendSpeedUp        Recommendation = "speed_up"
	RecommendReviseStrategy Recommendation = "revise_strategy"
	RecommendKeepPace       Recommendation = "keep_pace"
)

// Trend is a moving comparison over the last recorded weeks.
type Trend struct {
	Direction            TrendDirection     `json:"direction"`
	Window               []domain.WeekEntry `json:"window"`
	NetChange            float64            `json:"net_change"`
	AverageWeeklyChange  float64            `json:"average_weekly_change"`
	ExpectedWeeklyChange float64            `json:"expected_weekly_change"`
	ChangeRatio          float64            `json:"change_ratio"`
	Recommendation       Recommendation     `json:"recommendation"`
}

// AnalyzeTrend compares the last TrendWindow recorded weeks with the pace
// the program requires.
func AnalyzeTrend(p *domain.Program, weeks []domain.WeekEntry) Trend {
	var recorded []domain.WeekEntry
	for _, w := range weeks {
		if w.Recorded() {
			recorded = append(recorded, w.Clone())
		}
	}
	if len(recorded) > TrendWindow {
		recorded = recorded[len(recorded)-TrendWindow:]
	}

	t := Trend{Window: recorded}
	if p != nil && p.TotalWeeks > 0 {
		t.ExpectedWeeklyChange = p.TotalTargetDelta() / float64(p.TotalWeeks)
	}

	if len(recorded) > 0 {
		var sum float64
		for _, w := range recorded {
			if w.ActualChange != nil {
				sum += math.Abs(*w.ActualChange)
			}
		}
		t.AverageWeeklyChange = sum / float64(len(recorded))
	}
	if t.ExpectedWeeklyChange > 0 {
		t.ChangeRatio = t.AverageWeeklyChange / t.ExpectedWeeklyChange
	}

	if len(recorded) < 2 || p == nil {
		t.Direction = TrendInsufficient
		t.Recommendation = RecommendMoreData
		return t
	}

	t.NetChange = Round2(*recorded[len(recorded)-1].ActualWeight - *recorded[0].ActualWeight)
	switch {
	case hundredths(math.Abs(t.NetChange)) < hundredths(StableBandKg):
		t.Direction = TrendStable
	case t.NetChange*p.Direction().Sign() > 0:
		t.Direction = TrendImproving
	default:
		t.Direction = TrendDeclining
	}

	switch {
	case t.ChangeRatio > 1.5:
		t.Recommendation = RecommendSlowDown
	case t.ChangeRatio < 0.5:
		t.Recommendation = RecommendSpeedUp
	case t.Direction == TrendDeclining:
		t.Recommendation = RecommendReviseStrategy
	default:
		t.Recommendation = RecommendKeepPace
	}
	return t
}

// Message returns display text for the recommendation.
func (r Recommendation) Message() string {
	switch r {
	case RecommendMoreData:
		return "Record more weeks to see a trend."
	case RecommendSlowDown:
		return "You're changing much faster than planned, ease off."
	case RecommendSpeedUp:
		return "You may need to pick up the pace."
	case RecommendReviseStrategy:
		return "You're drifting away from the goal, review your strategy."
	case RecommendKeepPace:
		return "Going well, keep the current pace."
	}
	return ""
}

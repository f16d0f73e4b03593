package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeTrend(t *testing.T) {
	p := newProgram(90, 80, 10)
	cases := []struct {
		name    string
		actuals map[int]float64
		dir     TrendDirection
		rec     Recommendation
	}{
		{"no entries", nil, TrendInsufficient, RecommendMoreData},
		{"single entry", map[int]float64{1: 89}, TrendInsufficient, RecommendMoreData},
		{"on pace", map[int]float64{1: 89, 2: 88, 3: 87, 4: 86}, TrendImproving, RecommendKeepPace},
		{"too fast", map[int]float64{1: 87, 2: 84}, TrendImproving, RecommendSlowDown},
		{"stable", map[int]float64{1: 89, 2: 89.2}, TrendStable, RecommendKeepPace},
		{"drifting away", map[int]float64{1: 90.5, 2: 91, 3: 91.5, 4: 92}, TrendDeclining, RecommendReviseStrategy},
		{"too slow", map[int]float64{1: 89.9, 2: 89.8, 3: 89.7}, TrendStable, RecommendSpeedUp},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := AnalyzeTrend(p, recorded(t, p, tc.actuals))
			assert.Equal(t, tc.dir, tr.Direction)
			assert.Equal(t, tc.rec, tr.Recommendation)
			assert.NotEmpty(t, tr.Recommendation.Message())
		})
	}
}

func TestAnalyzeTrend_UsesLastFourRecordedWeeks(t *testing.T) {
	p := newProgram(90, 80, 10)
	weeks := recorded(t, p, map[int]float64{1: 89, 2: 88, 3: 87, 5: 86, 6: 85, 7: 84})

	tr := AnalyzeTrend(p, weeks)
	require.Len(t, tr.Window, TrendWindow)
	assert.Equal(t, 3, tr.Window[0].Week)
	assert.Equal(t, 7, tr.Window[3].Week)
	assert.Equal(t, -3.0, tr.NetChange)
	assert.Equal(t, 1.0, tr.ExpectedWeeklyChange)
	assert.InDelta(t, 1.0, tr.ChangeRatio, 1e-9)
}

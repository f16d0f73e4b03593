package plan

import (
	"testing"

	"github.com/alexanderramin/glidepath/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_NoEntries(t *testing.T) {
	p := newProgram(90, 80, 10)
	s := Summarize(p, recorded(t, p, nil))

	assert.Equal(t, domain.DirectionLoss, s.Direction)
	assert.Equal(t, 10.0, s.TotalTargetDelta)
	assert.Equal(t, 1.0, s.WeeklyAverageDelta)
	assert.Equal(t, 0, s.CompletedWeeks)
	assert.Equal(t, 10, s.RemainingWeeks)
	assert.Equal(t, 0.0, s.PercentProgress)
	assert.Nil(t, s.BestWeek)
	assert.Equal(t, 0.0, s.AverageActualWeeklyChange)
	assert.Equal(t, 0, s.MotivationScore)
	assert.Equal(t, 1, s.CurrentWeek)
	assert.Equal(t, 89.0, s.CurrentTarget)
	assert.Nil(t, s.LatestWeight)
}

func TestSummarize_WithEntries(t *testing.T) {
	p := newProgram(90, 80, 10)
	// changes: -1.5, -1.0, +0.5 (behind), -1.5
	weeks := recorded(t, p, map[int]float64{1: 88.5, 2: 87.5, 3: 88, 4: 86.5})
	s := Summarize(p, weeks)

	assert.Equal(t, 4, s.CompletedWeeks)
	assert.Equal(t, 6, s.RemainingWeeks)
	assert.Equal(t, 40.0, s.PercentProgress)
	assert.InDelta(t, 1.125, s.AverageActualWeeklyChange, 1e-9)
	require.NotNil(t, s.BestWeek)
	assert.Equal(t, 1, s.BestWeek.Week, "earliest week wins a tie")
	assert.Equal(t, -1.5, s.BestWeek.Change)
	assert.Equal(t, 3, s.SuccessfulWeeks)
	assert.Equal(t, 75, s.MotivationScore)
	assert.Equal(t, 5, s.CurrentWeek)
	assert.Equal(t, 85.0, s.CurrentTarget)
	require.NotNil(t, s.LatestWeight)
	assert.Equal(t, 86.5, *s.LatestWeight)
}

func TestSummarize_PercentProgressClamped(t *testing.T) {
	p := newProgram(90, 88, 2)
	weeks := []domain.WeekEntry{
		withStatus(1, domain.WeekOnTrack),
		withStatus(2, domain.WeekOnTrack),
		withStatus(3, domain.WeekOnTrack),
	}
	s := Summarize(p, weeks)
	assert.Equal(t, 100.0, s.PercentProgress)
	assert.Equal(t, 0, s.RemainingWeeks)
	assert.Equal(t, 100, s.MotivationScore)
	assert.Equal(t, 2, s.CurrentWeek)
}

func TestSummarize_NilProgram(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil, nil))
}

func TestLongestStreak(t *testing.T) {
	pending := domain.WeekEntry{Week: 0, Status: domain.WeekPending}
	cases := []struct {
		name  string
		weeks []domain.WeekEntry
		want  int
	}{
		{"empty", nil, 0},
		{
			"behind resets the run",
			[]domain.WeekEntry{
				withStatus(1, domain.WeekOnTrack),
				withStatus(2, domain.WeekAhead),
				withStatus(3, domain.WeekBehind),
				withStatus(4, domain.WeekOnTrack),
				withStatus(5, domain.WeekOnTrack),
			},
			2,
		},
		{
			"gaps do not break the run",
			[]domain.WeekEntry{
				withStatus(1, domain.WeekOnTrack),
				pending,
				withStatus(3, domain.WeekAhead),
				pending,
				withStatus(5, domain.WeekOnTrack),
			},
			3,
		},
		{
			"longest run is kept after reset",
			[]domain.WeekEntry{
				withStatus(1, domain.WeekAhead),
				withStatus(2, domain.WeekAhead),
				withStatus(3, domain.WeekAhead),
				withStatus(4, domain.WeekBehind),
				withStatus(5, domain.WeekOnTrack),
			},
			3,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LongestStreak(tc.weeks))
		})
	}
}

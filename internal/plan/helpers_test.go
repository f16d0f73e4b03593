package plan

import (
	"testing"
	"time"

	"github.com/alexanderramin/glidepath/internal/domain"
	"github.com/stretchr/testify/require"
)

func newProgram(start, target float64, weeks int) *domain.Program {
	return &domain.Program{
		ID:           "p-1",
		UserID:       "u-1",
		StartWeight:  start,
		TargetWeight: target,
		TotalWeeks:   weeks,
		StartDate:    time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
	}
}

// recorded builds the glide path for p and applies the given actuals.
func recorded(t *testing.T, p *domain.Program, actuals map[int]float64) []domain.WeekEntry {
	t.Helper()
	weeks, err := BuildWeeks(p.StartWeight, p.TargetWeight, p.TotalWeeks)
	require.NoError(t, err)
	for week, kg := range actuals {
		v := kg
		weeks[week-1].ActualWeight = &v
	}
	return Rederive(p, weeks)
}

func withStatus(week int, status domain.WeekStatus) domain.WeekEntry {
	v := 80.0
	c := -1.0
	return domain.WeekEntry{Week: week, ActualWeight: &v, ActualChange: &c, Status: status}
}

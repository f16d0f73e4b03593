package testutil

import (
	"time"

	"github.com/alexanderramin/glidepath/internal/domain"
	"github.com/alexanderramin/glidepath/internal/plan"
	"github.com/google/uuid"
)

// FixedNow is the reference clock used by fixtures.
var FixedNow = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

// Program options
type ProgramOption func(*domain.Program)

func WithUser(userID string) ProgramOption {
	return func(p *domain.Program) {
		p.UserID = userID
	}
}

func WithID(id string) ProgramOption {
	return func(p *domain.Program) {
		p.ID = id
	}
}

func WithWeights(start, target float64) ProgramOption {
	return func(p *domain.Program) {
		p.StartWeight = start
		p.TargetWeight = target
	}
}

func WithWeeks(n int) ProgramOption {
	return func(p *domain.Program) {
		p.TotalWeeks = n
	}
}

func WithCreatedAt(t time.Time) ProgramOption {
	return func(p *domain.Program) {
		p.StartDate = t
		p.CreatedAt = t
	}
}

// NewTestProgram returns a valid 90 -> 80 kg, 10 week program.
func NewTestProgram(opts ...ProgramOption) *domain.Program {
	p := &domain.Program{
		ID:           uuid.New().String(),
		UserID:       "tester",
		StartWeight:  90,
		TargetWeight: 80,
		TotalWeeks:   10,
		StartDate:    FixedNow,
		CreatedAt:    FixedNow,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTestSnapshot builds the glide path for p and records actuals keyed
// by week number. It panics on an invalid program.
func NewTestSnapshot(p *domain.Program, actuals map[int]float64) *domain.Snapshot {
	weeks, err := plan.BuildWeeks(p.StartWeight, p.TargetWeight, p.TotalWeeks)
	if err != nil {
		panic(err)
	}
	for week, kg := range actuals {
		v := kg
		at := FixedNow.AddDate(0, 0, 7*week)
		weeks[week-1].ActualWeight = &v
		weeks[week-1].RecordedAt = &at
	}
	return &domain.Snapshot{
		Program:     *p,
		Weeks:       plan.Rederive(p, weeks),
		LastUpdated: FixedNow,
	}
}

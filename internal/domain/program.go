package domain

import (
	"math"
	"time"
)

// Program holds the parameters a user chose for a weight program.
// It is immutable once created; a reset discards it together with its weeks.
type Program struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	StartWeight  float64   `json:"start_weight"`
	TargetWeight float64   `json:"target_weight"`
	TotalWeeks   int       `json:"total_weeks"`
	StartDate    time.Time `json:"start_date"`
	CreatedAt    time.Time `json:"created_at"`
}

// Direction returns loss when the target lies below the start weight.
func (p *Program) Direction() Direction {
	if p.TargetWeight < p.StartWeight {
		return DirectionLoss
	}
	return DirectionGain
}

// TotalChange is the signed distance from start to target.
func (p *Program) TotalChange() float64 {
	return p.TargetWeight - p.StartWeight
}

// TotalTargetDelta is the absolute distance from start to target.
func (p *Program) TotalTargetDelta() float64 {
	return math.Abs(p.TotalChange())
}

// Validate checks the program parameters against the business rules.
func (p *Program) Validate() error {
	return ValidateProgram(p.StartWeight, p.TargetWeight, p.TotalWeeks)
}

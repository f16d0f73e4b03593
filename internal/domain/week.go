package domain

import "time"

// WeekEntry is one planned week of a program, optionally carrying the
// weight the user recorded for it.
type WeekEntry struct {
	Week         int        `json:"week"`
	TargetWeight float64    `json:"target_weight"`
	TargetChange float64    `json:"target_change"`
	ActualWeight *float64   `json:"actual_weight,omitempty"`
	ActualChange *float64   `json:"actual_change,omitempty"`
	Status       WeekStatus `json:"status"`
	RecordedAt   *time.Time `json:"recorded_at,omitempty"`
}

// Recorded reports whether an actual weight has been committed.
func (w *WeekEntry) Recorded() bool {
	return w.ActualWeight != nil
}

// Clone returns a deep copy so callers cannot alias controller state.
func (w WeekEntry) Clone() WeekEntry {
	out := w
	if w.ActualWeight != nil {
		v := *w.ActualWeight
		out.ActualWeight = &v
	}
	if w.ActualChange != nil {
		v := *w.ActualChange
		out.ActualChange = &v
	}
	if w.RecordedAt != nil {
		t := *w.RecordedAt
		out.RecordedAt = &t
	}
	return out
}

// CloneWeeks deep-copies a week sequence.
func CloneWeeks(weeks []WeekEntry) []WeekEntry {
	if weeks == nil {
		return nil
	}
	out := make([]WeekEntry, len(weeks))
	for i, w := range weeks {
		out[i] = w.Clone()
	}
	return out
}

package domain

import "time"

// Snapshot is the persisted form of an active program.
type Snapshot struct {
	Program     Program     `json:"program"`
	Weeks       []WeekEntry `json:"weeks"`
	LastUpdated time.Time   `json:"last_updated"`
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	return &Snapshot{
		Program:     s.Program,
		Weeks:       CloneWeeks(s.Weeks),
		LastUpdated: s.LastUpdated,
	}
}

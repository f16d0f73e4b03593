package domain

// WeekStatus is the outcome of a week measured against its planned target.
type WeekStatus string

const (
	WeekPending WeekStatus = "pending"
	WeekAhead   WeekStatus = "ahead"
	WeekOnTrack WeekStatus = "on_track"
	WeekBehind  WeekStatus = "behind"
)

// ValidWeekStatuses is the canonical set of accepted week status strings.
var ValidWeekStatuses = map[WeekStatus]bool{
	WeekPending: true, WeekAhead: true, WeekOnTrack: true, WeekBehind: true,
}

// Successful reports whether the status counts towards streaks and the
// motivation score.
func (s WeekStatus) Successful() bool {
	return s == WeekAhead || s == WeekOnTrack
}

// Direction is the sign of the program goal.
type Direction string

const (
	DirectionLoss Direction = "loss"
	DirectionGain Direction = "gain"
)

// Sign returns -1 for loss and +1 for gain.
func (d Direction) Sign() float64 {
	if d == DirectionLoss {
		return -1
	}
	return 1
}

// ControllerState describes whether a program is currently active.
type ControllerState string

const (
	StateNoProgram ControllerState = "no_program"
	StateActive    ControllerState = "active"
)

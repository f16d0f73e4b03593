package service

import "errors"

var (
	// ErrNoProgram is returned by operations that need an active program.
	ErrNoProgram = errors.New("no active program")
	// ErrWeekAlreadyRecorded is returned when committing over a recorded
	// week without opening it for editing first.
	ErrWeekAlreadyRecorded = errors.New("week already recorded")
	// ErrNotPersisted wraps store failures. The in-memory state has been
	// updated and stays authoritative; the change may not survive a restart.
	ErrNotPersisted = errors.New("change not persisted")
)

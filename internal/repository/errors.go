package repository

import "errors"

// ErrNotFound is wrapped by every store when a snapshot does not exist.
var ErrNotFound = errors.New("not found")

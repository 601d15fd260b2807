package session

import "errors"

var (
	// ErrNoCheckpoint is returned when restoring a session that never saved one.
	ErrNoCheckpoint = errors.New("no checkpoint saved")
)

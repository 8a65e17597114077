package session

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is matched by ConfigurationError
	ErrConfiguration = errors.New("session: invalid configuration")

	// ErrAlreadyStarted is returned when StartPlay is called twice
	ErrAlreadyStarted = errors.New("session: play already started")

	// ErrNotStarted is returned by hand operations before StartPlay
	ErrNotStarted = errors.New("session: play not started")

	// ErrSeatOutOfRange is returned for a seat index without a player
	ErrSeatOutOfRange = errors.New("session: seat out of range")
)

// ConfigurationError reports a player/hand-size combination that cannot be
// dealt from one deck. No valid play is possible with such a configuration.
type ConfigurationError struct {
	Players  int
	HandSize int
	Reason   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("session: invalid configuration (%d players x %d cards): %s", e.Players, e.HandSize, e.Reason)
}

// Is lets errors.Is match ErrConfiguration
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

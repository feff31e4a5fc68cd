package brackets

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrInsufficientPlayers = errors.New("not enough players to generate a bracket")
	ErrStaleResult         = errors.New("match result does not belong to the current pending match")
)

// ValidationError reports a blank participant name or an unusable match result.
// Index is the offending position in the player list, or -1.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: player %d: %s", ErrValidation, e.Index+1, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

type InsufficientPlayersError struct {
	Count int
}

func (e *InsufficientPlayersError) Error() string {
	return fmt.Sprintf("%s (minimum 2, got %d)", ErrInsufficientPlayers, e.Count)
}

func (e *InsufficientPlayersError) Unwrap() error { return ErrInsufficientPlayers }

// StaleResultError is returned when a result arrives for a match that is not the
// current pending one, e.g. redelivery after a reload. Callers drop it.
type StaleResultError struct {
	MatchID        string
	CurrentMatchID string
	Reason         string
}

func (e *StaleResultError) Error() string {
	return fmt.Sprintf("%s: %s (result for %q, current %q)", ErrStaleResult, e.Reason, e.MatchID, e.CurrentMatchID)
}

func (e *StaleResultError) Unwrap() error { return ErrStaleResult }

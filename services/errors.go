package services

import "errors"

var (
	ErrInvalidTransition = errors.New("operation not allowed in the current tournament state")
	ErrNoPendingMatch    = errors.New("no playable match found although the tournament is not complete")
	ErrNoTournament      = errors.New("no tournament has been generated")
)

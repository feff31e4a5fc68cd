package services

import "github.com/Dosada05/tournament-bracket/models"

// DeriveState computes the lifecycle state from the bracket alone, so a bracket
// restored from storage always yields the same state it was saved in.
func DeriveState(bracket *models.Bracket) models.TournamentState {
	switch {
	case bracket.IsEmpty():
		return models.StateSetup
	case bracket.IsComplete || bracket.Champion() != nil:
		return models.StateComplete
	}
	if m := bracket.FindMatch(bracket.CurrentMatchID); m != nil && m.Ready() {
		return models.StateMatchActive
	}
	return models.StateBracketReady
}

package brackets

import (
	"fmt"

	"github.com/Dosada05/tournament-bracket/models"
)

// Verify checks the structural invariants of a bracket restored from storage:
// round sizes, match IDs, round-1 seeding and byes. An empty bracket is valid.
func Verify(bracket *models.Bracket) error {
	if bracket.IsEmpty() {
		return nil
	}

	sizes := RoundSizes(len(bracket.Players))
	if len(sizes) != len(bracket.Rounds) {
		return fmt.Errorf("bracket has %d rounds, %d players need %d", len(bracket.Rounds), len(bracket.Players), len(sizes))
	}
	for r, round := range bracket.Rounds {
		if len(round.Matches) != sizes[r] {
			return fmt.Errorf("round %d has %d matches, expected %d", r+1, len(round.Matches), sizes[r])
		}
		for i, m := range round.Matches {
			if m == nil {
				return fmt.Errorf("round %d match %d is missing", r+1, i+1)
			}
			if m.ID != MatchID(r, i) {
				return fmt.Errorf("round %d match %d has id %q, expected %q", r+1, i+1, m.ID, MatchID(r, i))
			}
			if m.IsComplete && m.Winner == nil {
				return fmt.Errorf("match %s is complete without a winner", m.ID)
			}
			if m.Winner != nil && !m.Winner.SameAs(m.Player1) && !m.Winner.SameAs(m.Player2) {
				return fmt.Errorf("match %s winner %q is not one of its players", m.ID, m.Winner.Name)
			}
		}
	}
	if err := verifySeeding(bracket); err != nil {
		return err
	}
	if bracket.CurrentMatchID != "" && bracket.FindMatch(bracket.CurrentMatchID) == nil {
		return fmt.Errorf("current match %q does not exist", bracket.CurrentMatchID)
	}
	return nil
}

// verifySeeding checks that round 1 pairs the player list in order, with only
// the odd tail as a decided bye.
func verifySeeding(bracket *models.Bracket) error {
	players := bracket.Players
	for i, m := range bracket.Rounds[0].Matches {
		if !m.Player1.SameAs(&players[2*i]) {
			return fmt.Errorf("match %s player1 is not seed %d", m.ID, 2*i+1)
		}
		if 2*i+1 < len(players) {
			if !m.Player2.SameAs(&players[2*i+1]) {
				return fmt.Errorf("match %s player2 is not seed %d", m.ID, 2*i+2)
			}
			continue
		}
		if m.Player2 != nil || !m.IsComplete {
			return fmt.Errorf("match %s must be a decided bye", m.ID)
		}
	}
	return nil
}

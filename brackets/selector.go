package brackets

import "github.com/Dosada05/tournament-bracket/models"

// SelectNextMatch returns the next match that can be played, scanning rounds in
// order. A ready match involving the local user wins over earlier ones so the
// human player is always routed to their own game first. The local user is
// matched by bracket.LocalPlayerID when known, otherwise by localUser's name.
// Returns nil when nothing is playable.
func SelectNextMatch(bracket *models.Bracket, localUser string) *models.Match {
	if bracket.IsEmpty() {
		return nil
	}

	isLocal := func(m *models.Match) bool {
		if bracket.LocalPlayerID != "" {
			return m.Involves(bracket.LocalPlayerID)
		}
		return m.InvolvesName(localUser)
	}

	var fallback *models.Match
	for _, round := range bracket.Rounds {
		for _, m := range round.Matches {
			if m == nil || !m.Ready() {
				continue
			}
			if isLocal(m) {
				return m
			}
			if fallback == nil {
				fallback = m
			}
		}
	}
	return fallback
}

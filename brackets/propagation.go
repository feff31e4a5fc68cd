package brackets

import "github.com/Dosada05/tournament-bracket/models"

// AdvanceWinners makes one pass over adjacent round pairs, copying every decided
// winner into its slot of the next round, and auto-completes later-round matches
// that have no second feeder once their first player is known. It returns the
// number of writes; zero means the rounds are stable.
func AdvanceWinners(rounds []models.Round) int {
	changes := 0
	for r := 0; r+1 < len(rounds); r++ {
		prev, next := rounds[r].Matches, rounds[r+1].Matches
		for i, m := range prev {
			if m == nil || !m.IsComplete || m.Winner == nil {
				continue
			}
			target := next[i/2]
			if i%2 == 0 {
				if !target.Player1.SameAs(m.Winner) {
					w := *m.Winner
					target.Player1 = &w
					changes++
				}
			} else if !target.Player2.SameAs(m.Winner) {
				w := *m.Winner
				target.Player2 = &w
				changes++
			}
		}

		for i, target := range next {
			if 2*i+1 < len(prev) || target.IsComplete || target.Player1 == nil {
				continue
			}
			resolveBye(target)
			changes++
		}
	}
	return changes
}

// Propagate applies AdvanceWinners until nothing changes and returns the number
// of passes that made changes.
func Propagate(rounds []models.Round) int {
	passes := 0
	for AdvanceWinners(rounds) > 0 {
		passes++
	}
	return passes
}

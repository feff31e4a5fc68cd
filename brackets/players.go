package brackets

import (
	"math/rand/v2"
	"strings"

	"github.com/Dosada05/tournament-bracket/models"
	"github.com/google/uuid"
)

// NormalizePlayers validates raw names and orders them for seeding: the local
// user, if present, takes seed 0 and everybody else is shuffled uniformly.
// It returns the participants and the local user's participant ID ("" when the
// local user is not among the names).
func NormalizePlayers(names []string, localUser string, rng *rand.Rand) ([]models.Participant, string, error) {
	trimmed := make([]string, len(names))
	for i, name := range names {
		trimmed[i] = strings.TrimSpace(name)
		if trimmed[i] == "" {
			return nil, "", &ValidationError{Index: i, Reason: "name must not be blank"}
		}
	}

	localIdx := -1
	if localUser = strings.TrimSpace(localUser); localUser != "" {
		for i, name := range trimmed {
			if name == localUser {
				localIdx = i
				break
			}
		}
	}

	ordered := make([]string, 0, len(trimmed))
	rest := make([]string, 0, len(trimmed))
	for i, name := range trimmed {
		if i == localIdx {
			continue
		}
		rest = append(rest, name)
	}
	if localIdx >= 0 {
		ordered = append(ordered, trimmed[localIdx])
	}

	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	rng.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})
	ordered = append(ordered, rest...)

	players := make([]models.Participant, len(ordered))
	for i, name := range ordered {
		players[i] = models.Participant{ID: uuid.NewString(), Name: name}
	}

	localID := ""
	if localIdx >= 0 {
		localID = players[0].ID
	}
	return players, localID, nil
}

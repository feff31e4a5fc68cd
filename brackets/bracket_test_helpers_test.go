package brackets

import (
	"context"
	"fmt"
	"testing"

	"github.com/Dosada05/tournament-bracket/models"
	"github.com/stretchr/testify/require"
)

func participants(names ...string) []models.Participant {
	players := make([]models.Participant, len(names))
	for i, name := range names {
		players[i] = models.Participant{ID: fmt.Sprintf("p%d", i), Name: name}
	}
	return players
}

func numbered(n int) []models.Participant {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Player %d", i+1)
	}
	return participants(names...)
}

func generate(t *testing.T, players []models.Participant, localID string) *models.Bracket {
	t.Helper()
	bracket, err := NewSingleEliminationGenerator(nil).GenerateBracket(context.Background(), GenerateBracketParams{
		Players:       players,
		LocalPlayerID: localID,
	})
	require.NoError(t, err)
	return bracket
}

// play selects the next match and reports player1 as the winner.
func play(t *testing.T, bracket *models.Bracket, localUser string) *models.Match {
	t.Helper()
	m := SelectNextMatch(bracket, localUser)
	require.NotNil(t, m)
	bracket.CurrentMatchID = m.ID
	applied, err := ApplyResult(bracket, models.MatchResult{MatchID: m.ID, WinnerID: m.Player1.ID, Winner: m.Player1.Name, Score: "5-1"})
	require.NoError(t, err)
	return applied
}

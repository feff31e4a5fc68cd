package brackets

import (
	"testing"

	"github.com/Dosada05/tournament-bracket/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectNextMatch_PrefersLocalUser(t *testing.T) {
	players := participants("Alice", "Bob", "Carol", "Dave", "Me", "Eve")
	bracket := generate(t, players, "")

	m := SelectNextMatch(bracket, "Me")
	require.NotNil(t, m)
	assert.Equal(t, "R1M3", m.ID)

	bracket.LocalPlayerID = "p2"
	m = SelectNextMatch(bracket, "Me")
	require.NotNil(t, m)
	assert.Equal(t, "R1M2", m.ID, "participant id wins over display name")
}

func TestSelectNextMatch_FallsBackToFirstReady(t *testing.T) {
	bracket := generate(t, participants("Alice", "Bob", "Carol", "Dave"), "")

	m := SelectNextMatch(bracket, "Nobody")
	require.NotNil(t, m)
	assert.Equal(t, "R1M1", m.ID)

	decide(m, m.Player1, "5-0")
	Propagate(bracket.Rounds)
	m = SelectNextMatch(bracket, "")
	require.NotNil(t, m)
	assert.Equal(t, "R1M2", m.ID)
}

func TestSelectNextMatch_LocalUserWaitingFallsBack(t *testing.T) {
	// Carol has a bye and waits for Alice/Bob; their match is picked.
	bracket := generate(t, participants("Alice", "Bob", "Carol"), "")

	m := SelectNextMatch(bracket, "Carol")
	require.NotNil(t, m)
	assert.Equal(t, "R1M1", m.ID)
}

func TestSelectNextMatch_NothingPlayable(t *testing.T) {
	assert.Nil(t, SelectNextMatch(models.NewEmptyBracket(), "Me"))
	assert.Nil(t, SelectNextMatch(nil, "Me"))

	bracket := generate(t, participants("Alice", "Bob"), "")
	final := bracket.Rounds[0].Matches[0]
	decide(final, final.Player1, "5-4")
	assert.Nil(t, SelectNextMatch(bracket, "Alice"))
}

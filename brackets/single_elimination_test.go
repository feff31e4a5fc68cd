package brackets

import (
	"context"
	"math/bits"
	"testing"

	"github.com/Dosada05/tournament-bracket/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundSizes(t *testing.T) {
	tests := []struct {
		players int
		want    []int
	}{
		{players: 2, want: []int{1}},
		{players: 3, want: []int{2, 1}},
		{players: 4, want: []int{2, 1}},
		{players: 5, want: []int{3, 2, 1}},
		{players: 6, want: []int{3, 2, 1}},
		{players: 7, want: []int{4, 2, 1}},
		{players: 8, want: []int{4, 2, 1}},
		{players: 9, want: []int{5, 3, 2, 1}},
		{players: 12, want: []int{6, 3, 2, 1}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, RoundSizes(tt.players)); diff != "" {
			t.Errorf("RoundSizes(%d) mismatch (-want +got):\n%s", tt.players, diff)
		}
	}
	assert.Nil(t, RoundSizes(1))
}

func TestGenerateBracket_Shape(t *testing.T) {
	for n := 2; n <= 64; n++ {
		bracket := generate(t, numbered(n), "")

		wantRounds := bits.Len(uint(n - 1))
		require.Len(t, bracket.Rounds, wantRounds, "players=%d", n)
		require.Len(t, bracket.Rounds[0].Matches, (n+1)/2, "players=%d", n)
		require.Len(t, bracket.Rounds[wantRounds-1].Matches, 1, "players=%d", n)
		assert.Equal(t, "Final", bracket.Rounds[wantRounds-1].Name)
		assert.False(t, bracket.IsComplete)
		assert.Len(t, bracket.Players, n)

		byes := 0
		for _, m := range bracket.Rounds[0].Matches {
			if m.IsBye {
				byes++
			}
		}
		assert.Equal(t, n%2, byes, "players=%d", n)
		require.NoError(t, Verify(bracket), "players=%d", n)
	}
}

func TestGenerateBracket_IDsAndNames(t *testing.T) {
	bracket := generate(t, numbered(8), "")

	assert.Equal(t, "Round 1", bracket.Rounds[0].Name)
	assert.Equal(t, "Round 2", bracket.Rounds[1].Name)
	assert.Equal(t, "Final", bracket.Rounds[2].Name)
	for r, round := range bracket.Rounds {
		assert.Equal(t, r+1, round.Number)
		for i, m := range round.Matches {
			assert.Equal(t, MatchID(r, i), m.ID)
			assert.Equal(t, r, m.Round)
			assert.Equal(t, i, m.Index)
		}
	}
	assert.Equal(t, "R2M1", bracket.Rounds[1].Matches[0].ID)
}

func TestGenerateBracket_PairsInSeedOrder(t *testing.T) {
	players := numbered(6)
	bracket := generate(t, players, "")

	for i, m := range bracket.Rounds[0].Matches {
		assert.Equal(t, players[2*i].ID, m.Player1.ID)
		assert.Equal(t, players[2*i+1].ID, m.Player2.ID)
		assert.True(t, m.Ready())
	}
}

func TestGenerateBracket_ThreePlayers(t *testing.T) {
	players := participants("Alice", "Bob", "Carol")
	bracket := generate(t, players, "p0")

	r0 := bracket.Rounds[0].Matches
	require.Len(t, r0, 2)
	assert.Equal(t, "Alice", r0[0].Player1.Name)
	assert.Equal(t, "Bob", r0[0].Player2.Name)
	assert.False(t, r0[0].IsComplete)

	bye := r0[1]
	assert.Equal(t, "Carol", bye.Player1.Name)
	assert.Nil(t, bye.Player2)
	assert.True(t, bye.IsComplete)
	assert.True(t, bye.IsBye)
	require.NotNil(t, bye.Winner)
	assert.Equal(t, "Carol", bye.Winner.Name)
	require.NotNil(t, bye.Score)
	assert.Equal(t, models.ByeScore, *bye.Score)

	final := bracket.Rounds[1].Matches[0]
	assert.Nil(t, final.Player1)
	require.NotNil(t, final.Player2)
	assert.Equal(t, "Carol", final.Player2.Name)
	assert.False(t, final.IsComplete)
}

func TestGenerateBracket_StructuralByeInLaterRound(t *testing.T) {
	players := numbered(5)
	bracket := generate(t, players, "")

	// Player 5 has no opponent in round 1 and no feeder partner in round 2.
	r1 := bracket.Rounds[1].Matches
	require.Len(t, r1, 2)
	lone := r1[1]
	require.NotNil(t, lone.Player1)
	assert.Equal(t, players[4].ID, lone.Player1.ID)
	assert.Nil(t, lone.Player2)
	assert.True(t, lone.IsComplete)
	assert.True(t, lone.IsBye)
	assert.Equal(t, players[4].ID, lone.Winner.ID)

	final := bracket.Rounds[2].Matches[0]
	require.NotNil(t, final.Player2)
	assert.Equal(t, players[4].ID, final.Player2.ID)
	assert.Nil(t, final.Player1)
}

func TestGenerateBracket_TwoPlayersIsReadyFinal(t *testing.T) {
	bracket := generate(t, participants("Alice", "Bob"), "")

	require.Len(t, bracket.Rounds, 1)
	final := bracket.Rounds[0].Matches[0]
	assert.True(t, final.Ready())
	assert.Equal(t, "Final", bracket.Rounds[0].Name)
}

func TestGenerateBracket_Rejects(t *testing.T) {
	gen := NewSingleEliminationGenerator(nil)

	for _, n := range []int{0, 1} {
		_, err := gen.GenerateBracket(context.Background(), GenerateBracketParams{Players: numbered(n)})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInsufficientPlayers)

		var ierr *InsufficientPlayersError
		require.ErrorAs(t, err, &ierr)
		assert.Equal(t, n, ierr.Count)
	}

	players := participants("Alice", " ", "Carol")
	_, err := gen.GenerateBracket(context.Background(), GenerateBracketParams{Players: players})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.Index)
}

func TestGenerateBracket_PlaysToCompletion(t *testing.T) {
	for _, n := range []int{2, 3, 5, 7, 8, 13, 16, 33} {
		players := numbered(n)
		bracket := generate(t, players, "")

		played := 0
		for !bracket.IsComplete {
			play(t, bracket, "")
			played++
			require.LessOrEqual(t, played, n, "players=%d", n)
		}
		// Every real match eliminates one player.
		assert.Equal(t, n-1, played, "players=%d", n)
		require.NotNil(t, bracket.Champion())
		assert.Equal(t, players[0].ID, bracket.Champion().ID, "players=%d", n)
		assert.Nil(t, SelectNextMatch(bracket, ""))
		require.NoError(t, Verify(bracket))
	}
}

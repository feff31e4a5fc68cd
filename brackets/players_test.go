package brackets

import (
	"math/rand/v2"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)


func TestNormalizePlayers_LocalUserTakesFirstSeed(t *testing.T) {
	faker := gofakeit.New(42)
	raw := []string{faker.Name(), faker.Name(), "  Player 1 ", faker.Name(), faker.Name()}

	players, localID, err := NormalizePlayers(raw, "Player 1", rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	require.Len(t, players, len(raw))

	assert.Equal(t, "Player 1", players[0].Name)
	assert.Equal(t, players[0].ID, localID)

	got := make([]string, len(players))
	ids := make(map[string]bool)
	for i, p := range players {
		got[i] = p.Name
		assert.NotEmpty(t, p.ID)
		ids[p.ID] = true
	}
	assert.Len(t, ids, len(players), "participant ids must be unique")
	assert.ElementsMatch(t, []string{raw[0], raw[1], "Player 1", raw[3], raw[4]}, got)
}

func TestNormalizePlayers_LocalUserAbsent(t *testing.T) {
	players, localID, err := NormalizePlayers([]string{"Alice", "Bob", "Carol"}, "Dave", rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	assert.Empty(t, localID)
	assert.Len(t, players, 3)
}

func TestNormalizePlayers_OnlyFirstOccurrenceIsLocal(t *testing.T) {
	players, localID, err := NormalizePlayers([]string{"Bob", "Alice", "Alice"}, "Alice", rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)
	require.Len(t, players, 3)
	assert.Equal(t, "Alice", players[0].Name)
	assert.Equal(t, players[0].ID, localID)
	assert.NotEqual(t, players[0].ID, players[1].ID)
	assert.NotEqual(t, players[0].ID, players[2].ID)
}

func TestNormalizePlayers_BlankName(t *testing.T) {
	for _, blank := range []string{"", "   ", "\t"} {
		_, _, err := NormalizePlayers([]string{"Alice", blank, "Carol"}, "Alice", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, 1, verr.Index)
	}
}

func TestNormalizePlayers_SameSeedSameOrder(t *testing.T) {
	raw := []string{"A", "B", "C", "D", "E", "F", "G", "H"}

	first, _, err := NormalizePlayers(raw, "", rand.New(rand.NewPCG(99, 1)))
	require.NoError(t, err)
	second, _, err := NormalizePlayers(raw, "", rand.New(rand.NewPCG(99, 1)))
	require.NoError(t, err)

	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
	}
}

func TestNormalizePlayers_ShuffleReachesEveryPosition(t *testing.T) {
	raw := []string{"Me", "A", "B", "C"}
	rng := rand.New(rand.NewPCG(5, 5))
	seen := map[string]map[int]bool{"A": {}, "B": {}, "C": {}}

	for i := 0; i < 300; i++ {
		players, _, err := NormalizePlayers(raw, "Me", rng)
		require.NoError(t, err)
		require.Equal(t, "Me", players[0].Name)
		for pos, p := range players[1:] {
			seen[p.Name][pos+1] = true
		}
	}
	for name, positions := range seen {
		assert.Len(t, positions, 3, "%s should appear at every non-local seed", name)
	}
}

package brackets

import (
	"testing"

	"github.com/Dosada05/tournament-bracket/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyResult_ScenarioThreePlayers(t *testing.T) {
	bracket := generate(t, participants("Alice", "Bob", "Carol"), "p0")

	m := SelectNextMatch(bracket, "Alice")
	require.NotNil(t, m)
	assert.Equal(t, "R1M1", m.ID)
	bracket.CurrentMatchID = m.ID

	decided, err := ApplyResult(bracket, models.MatchResult{Winner: "Alice", Score: "5-3"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", decided.Winner.Name)
	assert.Equal(t, "5-3", *decided.Score)
	assert.Empty(t, bracket.CurrentMatchID)

	final := bracket.Rounds[1].Matches[0]
	require.True(t, final.Ready())
	assert.Equal(t, "Alice", final.Player1.Name)
	assert.Equal(t, "Carol", final.Player2.Name)

	bracket.CurrentMatchID = final.ID
	_, err = ApplyResult(bracket, models.MatchResult{Winner: "Carol", Score: "5-2"})
	require.NoError(t, err)
	assert.True(t, bracket.IsComplete)
	assert.Equal(t, "Carol", bracket.Champion().Name)
}

func TestApplyResult_ExactlyOnce(t *testing.T) {
	bracket := generate(t, participants("Alice", "Bob", "Carol", "Dave"), "")
	bracket.CurrentMatchID = "R1M1"
	result := models.MatchResult{MatchID: "R1M1", Winner: "Bob", Score: "5-4"}

	_, err := ApplyResult(bracket, result)
	require.NoError(t, err)
	after := bracket.Clone()

	_, err = ApplyResult(bracket, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStaleResult)
	assert.Equal(t, after, bracket)
}

func TestApplyResult_Stale(t *testing.T) {
	tests := []struct {
		name    string
		current string
		result  models.MatchResult
		reason  string
	}{
		{name: "no current match", current: "", result: models.MatchResult{Winner: "Alice", Score: "5-0"}, reason: "no match is currently selected"},
		{name: "different match", current: "R1M1", result: models.MatchResult{MatchID: "R1M2", Winner: "Carol", Score: "5-0"}, reason: "result is for a different match"},
		{name: "unknown current match", current: "R9M9", result: models.MatchResult{Winner: "Alice", Score: "5-0"}, reason: "current match does not exist"},
		{name: "final waiting for players", current: "R2M1", result: models.MatchResult{Winner: "Alice", Score: "5-0"}, reason: "match is still waiting for players"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bracket := generate(t, participants("Alice", "Bob", "Carol", "Dave"), "")
			bracket.CurrentMatchID = tt.current
			before := bracket.Clone()

			_, err := ApplyResult(bracket, tt.result)
			var stale *StaleResultError
			require.ErrorAs(t, err, &stale)
			assert.Equal(t, tt.reason, stale.Reason)
			assert.Equal(t, before, bracket)
		})
	}

	_, err := ApplyResult(models.NewEmptyBracket(), models.MatchResult{Winner: "Alice"})
	assert.ErrorIs(t, err, ErrStaleResult)
}

func TestApplyResult_AlreadyDecided(t *testing.T) {
	bracket := generate(t, participants("Alice", "Bob", "Carol"), "")
	bracket.CurrentMatchID = "R1M2" // Carol's bye

	_, err := ApplyResult(bracket, models.MatchResult{Winner: "Carol", Score: "5-0"})
	var stale *StaleResultError
	require.ErrorAs(t, err, &stale)
	assert.Equal(t, "match already decided", stale.Reason)
}

func TestApplyResult_InvalidWinner(t *testing.T) {
	tests := []struct {
		name   string
		result models.MatchResult
	}{
		{name: "unknown name", result: models.MatchResult{Winner: "Mallory", Score: "5-0"}},
		{name: "player of another match", result: models.MatchResult{Winner: "Carol", Score: "5-0"}},
		{name: "blank winner", result: models.MatchResult{Winner: "  ", Score: "5-0"}},
		{name: "unknown id", result: models.MatchResult{WinnerID: "p3", Winner: "Alice", Score: "5-0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bracket := generate(t, participants("Alice", "Bob", "Carol", "Dave"), "")
			bracket.CurrentMatchID = "R1M1"
			before := bracket.Clone()

			_, err := ApplyResult(bracket, tt.result)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, before, bracket)
		})
	}
}

func TestApplyResult_DuplicateNames(t *testing.T) {
	bracket := generate(t, participants("Sam", "Sam"), "")
	bracket.CurrentMatchID = "R1M1"

	_, err := ApplyResult(bracket, models.MatchResult{Winner: "Sam", Score: "5-2"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ApplyResult(bracket, models.MatchResult{WinnerID: "p1", Winner: "Sam", Score: "5-2"})
	require.NoError(t, err)
	assert.Equal(t, "p1", bracket.Champion().ID)
}

package brackets

import (
	"strings"

	"github.com/Dosada05/tournament-bracket/models"
)

// ApplyResult folds a game engine result into the bracket's current match.
// The result is applied only if CurrentMatchID names an existing, incomplete
// match; otherwise a *StaleResultError is returned and the bracket is untouched.
// A second delivery of the same result therefore finds CurrentMatchID cleared
// and is rejected.
func ApplyResult(bracket *models.Bracket, result models.MatchResult) (*models.Match, error) {
	if bracket.IsEmpty() {
		return nil, &StaleResultError{MatchID: result.MatchID, Reason: "no tournament in progress"}
	}
	current := bracket.CurrentMatchID
	if current == "" {
		return nil, &StaleResultError{MatchID: result.MatchID, Reason: "no match is currently selected"}
	}
	if result.MatchID != "" && result.MatchID != current {
		return nil, &StaleResultError{MatchID: result.MatchID, CurrentMatchID: current, Reason: "result is for a different match"}
	}

	match := bracket.FindMatch(current)
	if match == nil {
		return nil, &StaleResultError{MatchID: result.MatchID, CurrentMatchID: current, Reason: "current match does not exist"}
	}
	if match.IsComplete {
		return nil, &StaleResultError{MatchID: result.MatchID, CurrentMatchID: current, Reason: "match already decided"}
	}
	if match.Player1 == nil || match.Player2 == nil {
		return nil, &StaleResultError{MatchID: result.MatchID, CurrentMatchID: current, Reason: "match is still waiting for players"}
	}

	winner, err := resolveWinner(match, result)
	if err != nil {
		return nil, err
	}

	score := strings.TrimSpace(result.Score)
	w := *winner
	match.Winner = &w
	match.Score = &score
	match.IsComplete = true
	bracket.CurrentMatchID = ""

	Propagate(bracket.Rounds)
	bracket.IsComplete = bracket.Champion() != nil
	return match, nil
}

func resolveWinner(match *models.Match, result models.MatchResult) (*models.Participant, error) {
	if result.WinnerID != "" {
		switch result.WinnerID {
		case match.Player1.ID:
			return match.Player1, nil
		case match.Player2.ID:
			return match.Player2, nil
		}
		return nil, &ValidationError{Index: -1, Reason: "winner " + result.WinnerID + " is not playing match " + match.ID}
	}

	name := strings.TrimSpace(result.Winner)
	if name == "" {
		return nil, &ValidationError{Index: -1, Reason: "result has no winner"}
	}
	p1, p2 := match.Player1.Name == name, match.Player2.Name == name
	switch {
	case p1 && p2:
		return nil, &ValidationError{Index: -1, Reason: "both players of " + match.ID + " are named " + name + "; winner id required"}
	case p1:
		return match.Player1, nil
	case p2:
		return match.Player2, nil
	}
	return nil, &ValidationError{Index: -1, Reason: "winner " + name + " is not playing match " + match.ID}
}

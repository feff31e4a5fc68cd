package models

// ByeScore is recorded on matches decided without an opponent.
const ByeScore = "W-0"

type Match struct {
	ID         string       `json:"id"`
	Round      int          `json:"round"`
	Index      int          `json:"index"`
	Player1    *Participant `json:"player1"`
	Player2    *Participant `json:"player2"`
	Winner     *Participant `json:"winner"`
	Score      *string      `json:"score"`
	IsComplete bool         `json:"isComplete"`
	IsBye      bool         `json:"isBye,omitempty"`
}

// Ready reports whether both slots are filled and the match still needs a result.
func (m *Match) Ready() bool {
	return m.Player1 != nil && m.Player2 != nil && !m.IsComplete
}

// Involves reports whether the participant with the given ID sits in either slot.
func (m *Match) Involves(participantID string) bool {
	if participantID == "" {
		return false
	}
	return (m.Player1 != nil && m.Player1.ID == participantID) ||
		(m.Player2 != nil && m.Player2.ID == participantID)
}

// InvolvesName is the name-based fallback of Involves.
func (m *Match) InvolvesName(name string) bool {
	if name == "" {
		return false
	}
	return (m.Player1 != nil && m.Player1.Name == name) ||
		(m.Player2 != nil && m.Player2.Name == name)
}

func (m *Match) clone() *Match {
	if m == nil {
		return nil
	}
	cp := *m
	cp.Player1 = m.Player1.clone()
	cp.Player2 = m.Player2.clone()
	cp.Winner = m.Winner.clone()
	if m.Score != nil {
		s := *m.Score
		cp.Score = &s
	}
	return &cp
}

// MatchResult is what the game engine hands back when a match ends.
// MatchID and WinnerID are optional correlation hints.
type MatchResult struct {
	MatchID  string `json:"matchId,omitempty"`
	WinnerID string `json:"winnerId,omitempty"`
	Winner   string `json:"winner"`
	Score    string `json:"score"`
}

// CurrentMatch is the handoff record published for the game engine when a
// match is selected.
type CurrentMatch struct {
	ID           string `json:"id"`
	Player1      string `json:"player1"`
	Player2      string `json:"player2"`
	Player1ID    string `json:"player1Id"`
	Player2ID    string `json:"player2Id"`
	IsTournament bool   `json:"isTournament"`
	WinningScore int    `json:"winningScore"`
}

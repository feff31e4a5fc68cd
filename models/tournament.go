package models

// TournamentState is derived from a bracket, never stored on its own.
type TournamentState string

const (
	StateSetup        TournamentState = "SETUP"
	StateBracketReady TournamentState = "BRACKET_READY"
	StateMatchActive  TournamentState = "MATCH_ACTIVE"
	StateComplete     TournamentState = "COMPLETE"
)

type Round struct {
	Number  int      `json:"number"`
	Name    string   `json:"name"`
	Matches []*Match `json:"matches"`
}

// Bracket is the whole single-elimination structure of one tournament run.
type Bracket struct {
	Players        []Participant `json:"players"`
	Rounds         []Round       `json:"rounds"`
	CurrentMatchID string        `json:"currentMatchId,omitempty"`
	LocalPlayerID  string        `json:"localPlayerId,omitempty"`
	IsComplete     bool          `json:"isComplete"`
}

// NewEmptyBracket returns the bracket of a session in SETUP.
func NewEmptyBracket() *Bracket {
	return &Bracket{Players: []Participant{}, Rounds: []Round{}}
}

// IsEmpty reports whether no tournament has been generated yet.
func (b *Bracket) IsEmpty() bool {
	return b == nil || len(b.Rounds) == 0
}

// FinalMatch returns the single match of the last round, or nil for an empty bracket.
func (b *Bracket) FinalMatch() *Match {
	if b.IsEmpty() {
		return nil
	}
	last := b.Rounds[len(b.Rounds)-1]
	if len(last.Matches) == 0 {
		return nil
	}
	return last.Matches[len(last.Matches)-1]
}

// Champion returns the winner of the final, if decided.
func (b *Bracket) Champion() *Participant {
	final := b.FinalMatch()
	if final == nil {
		return nil
	}
	return final.Winner
}

// FindMatch looks a match up by its ID.
func (b *Bracket) FindMatch(id string) *Match {
	if b == nil || id == "" {
		return nil
	}
	for _, round := range b.Rounds {
		for _, m := range round.Matches {
			if m != nil && m.ID == id {
				return m
			}
		}
	}
	return nil
}

// Clone returns a deep copy safe to hand to renderers.
func (b *Bracket) Clone() *Bracket {
	if b == nil {
		return nil
	}
	cp := &Bracket{
		Players:        make([]Participant, len(b.Players)),
		Rounds:         make([]Round, len(b.Rounds)),
		CurrentMatchID: b.CurrentMatchID,
		LocalPlayerID:  b.LocalPlayerID,
		IsComplete:     b.IsComplete,
	}
	copy(cp.Players, b.Players)
	for i, round := range b.Rounds {
		matches := make([]*Match, len(round.Matches))
		for j, m := range round.Matches {
			matches[j] = m.clone()
		}
		cp.Rounds[i] = Round{Number: round.Number, Name: round.Name, Matches: matches}
	}
	return cp
}

// Snapshot is what renderers and API clients receive after every mutation.
type Snapshot struct {
	State    TournamentState `json:"state"`
	Bracket  *Bracket        `json:"bracket"`
	Champion *Participant    `json:"champion,omitempty"`
}

package models

// Participant is one entrant of a bracket. ID is generated when the bracket is
// created and is what the engine compares; Name is only for display and for
// correlating results from engines that know nothing but names.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SameAs reports whether both slots hold the same participant.
func (p *Participant) SameAs(other *Participant) bool {
	if p == nil || other == nil {
		return p == nil && other == nil
	}
	return p.ID == other.ID
}

func (p *Participant) clone() *Participant {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

package brackets

import (
	"context"

	"github.com/Dosada05/tournament-bracket/models"
)

type GenerateBracketParams struct {
	Players       []models.Participant
	LocalPlayerID string
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) (*models.Bracket, error)

	GetName() string
}

package brackets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/tournament-bracket/models"
)

type SingleEliminationGenerator struct {
	logger *slog.Logger
}

func NewSingleEliminationGenerator(logger *slog.Logger) BracketGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &SingleEliminationGenerator{logger: logger}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

// GenerateBracket pairs the players in seed order, pre-allocates every later
// round and resolves all byes before returning.
func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) (*models.Bracket, error) {
	players := params.Players
	n := len(players)

	if n < 2 {
		return nil, &InsufficientPlayersError{Count: n}
	}
	for i, p := range players {
		if strings.TrimSpace(p.Name) == "" {
			return nil, &ValidationError{Index: i, Reason: "name must not be blank"}
		}
	}

	sizes := RoundSizes(n)
	rounds := make([]models.Round, len(sizes))
	for r, size := range sizes {
		rounds[r] = models.Round{
			Number:  r + 1,
			Name:    roundName(r, len(sizes)),
			Matches: make([]*models.Match, size),
		}
		for i := 0; i < size; i++ {
			rounds[r].Matches[i] = &models.Match{ID: MatchID(r, i), Round: r, Index: i}
		}
	}

	for i, m := range rounds[0].Matches {
		p1 := players[2*i]
		m.Player1 = &p1
		if 2*i+1 < n {
			p2 := players[2*i+1]
			m.Player2 = &p2
			continue
		}
		resolveBye(m)
		g.logger.Debug("bye assigned", slog.String("match_id", m.ID), slog.String("player", p1.Name))
	}

	bracket := &models.Bracket{
		Players:       append([]models.Participant(nil), players...),
		Rounds:        rounds,
		LocalPlayerID: params.LocalPlayerID,
	}
	passes := Propagate(bracket.Rounds)
	bracket.IsComplete = bracket.Champion() != nil

	g.logger.Info("bracket generated",
		slog.Int("players", n),
		slog.Int("rounds", len(rounds)),
		slog.Int("propagation_passes", passes),
	)
	return bracket, nil
}

// RoundSizes returns the number of matches in each round for n players:
// ceil(n/2), then repeated ceiling halving down to the final.
func RoundSizes(n int) []int {
	if n < 2 {
		return nil
	}
	sizes := []int{(n + 1) / 2}
	for sizes[len(sizes)-1] > 1 {
		sizes = append(sizes, (sizes[len(sizes)-1]+1)/2)
	}
	return sizes
}

// MatchID builds the stable ID of the match at index i of round r (both zero-based).
func MatchID(r, i int) string {
	return fmt.Sprintf("R%dM%d", r+1, i+1)
}

func roundName(r, total int) string {
	if r == total-1 {
		return "Final"
	}
	return fmt.Sprintf("Round %d", r+1)
}

func resolveBye(m *models.Match) {
	score := models.ByeScore
	m.Player2 = nil
	m.Winner = m.Player1
	m.Score = &score
	m.IsComplete = true
	m.IsBye = true
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/models"
	"github.com/Dosada05/tournament-bracket/repositories"
)

const DefaultWinningScore = 5

// BracketPublisher receives a snapshot after every mutation, e.g. for rendering.
type BracketPublisher interface {
	PublishBracket(ctx context.Context, snapshot models.Snapshot)
}

// IdentityFunc returns the local user's display name for the request in ctx.
type IdentityFunc func(ctx context.Context) string

type TournamentService interface {
	Snapshot() models.Snapshot
	Generate(ctx context.Context, names []string) (models.Snapshot, error)
	SelectNext(ctx context.Context) (*models.CurrentMatch, models.Snapshot, error)
	ApplyResult(ctx context.Context, result models.MatchResult) (bool, models.Snapshot, error)
	Reset(ctx context.Context) (models.Snapshot, error)
}

var _ TournamentService = (*TournamentSession)(nil)

type SessionConfig struct {
	Repository   repositories.TournamentRepository
	Generator    brackets.BracketGenerator
	Publisher    BracketPublisher
	Identity     IdentityFunc
	Metrics      *Metrics
	Logger       *slog.Logger
	Rand         *rand.Rand
	WinningScore int
}

// TournamentSession owns the one live bracket of the process and drives it
// through SETUP, BRACKET_READY, MATCH_ACTIVE and COMPLETE. Every mutation is
// computed on a copy, persisted, and only then made current.
type TournamentSession struct {
	mu           sync.Mutex
	bracket      *models.Bracket
	repo         repositories.TournamentRepository
	generator    brackets.BracketGenerator
	publisher    BracketPublisher
	identity     IdentityFunc
	metrics      *Metrics
	logger       *slog.Logger
	rng          *rand.Rand
	winningScore int
}

func NewTournamentSession(cfg SessionConfig) *TournamentSession {
	s := &TournamentSession{
		bracket:      models.NewEmptyBracket(),
		repo:         cfg.Repository,
		generator:    cfg.Generator,
		publisher:    cfg.Publisher,
		identity:     cfg.Identity,
		metrics:      cfg.Metrics,
		logger:       cfg.Logger,
		rng:          cfg.Rand,
		winningScore: cfg.WinningScore,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.generator == nil {
		s.generator = brackets.NewSingleEliminationGenerator(s.logger)
	}
	if s.identity == nil {
		s.identity = func(context.Context) string { return "" }
	}
	if s.winningScore <= 0 {
		s.winningScore = DefaultWinningScore
	}
	return s
}

func (s *TournamentSession) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *TournamentSession) State() models.TournamentState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DeriveState(s.bracket)
}

func (s *TournamentSession) snapshotLocked() models.Snapshot {
	b := s.bracket.Clone()
	snap := models.Snapshot{State: DeriveState(b), Bracket: b}
	if champ := b.Champion(); champ != nil {
		c := *champ
		snap.Champion = &c
	}
	return snap
}

func (s *TournamentSession) publishLocked(ctx context.Context) models.Snapshot {
	snap := s.snapshotLocked()
	if s.publisher != nil {
		s.publisher.PublishBracket(ctx, snap)
	}
	return snap
}

// Load restores the session from the repository. A missing or undecodable
// bracket leaves the session in SETUP; a pending match result left by the game
// engine is consumed exactly once.
func (s *TournamentSession) Load(ctx context.Context) (models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bracket, err := s.repo.LoadBracket(ctx)
	if err != nil && !errors.Is(err, repositories.ErrCorruptState) {
		return s.snapshotLocked(), fmt.Errorf("failed to load tournament: %w", err)
	}
	if err == nil && bracket != nil {
		if verr := brackets.Verify(bracket); verr != nil {
			err = &repositories.CorruptStateError{Key: repositories.KeyTournamentState, Err: verr}
		}
	}
	if err != nil {
		s.logger.Warn("discarding corrupt tournament state", slog.Any("error", err))
		s.metrics.corrupt()
		if cerr := s.repo.Clear(ctx); cerr != nil {
			s.logger.Error("failed to clear corrupt tournament state", slog.Any("error", cerr))
		}
		s.bracket = models.NewEmptyBracket()
		return s.publishLocked(ctx), nil
	}

	if bracket == nil {
		s.bracket = models.NewEmptyBracket()
	} else {
		// Resolve anything a crash between result and save left unpropagated.
		passes := brackets.Propagate(bracket.Rounds)
		bracket.IsComplete = bracket.Champion() != nil
		if passes > 0 {
			s.logger.Info("repaired partially propagated bracket", slog.Int("passes", passes))
			if err := s.repo.SaveBracket(ctx, bracket); err != nil {
				s.logger.Error("failed to save repaired bracket", slog.Any("error", err))
			}
		}
		s.bracket = bracket
	}

	if _, err := s.consumePendingResultLocked(ctx); err != nil {
		s.logger.Error("failed to consume pending match result", slog.Any("error", err))
	}

	s.logger.Info("tournament loaded", slog.String("state", string(DeriveState(s.bracket))), slog.Int("players", len(s.bracket.Players)))
	return s.publishLocked(ctx), nil
}

// ConsumePendingResult applies a match result the game engine left in the store
// and deletes it. It reports whether a result was applied.
func (s *TournamentSession) ConsumePendingResult(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied, err := s.consumePendingResultLocked(ctx)
	if applied {
		s.publishLocked(ctx)
	}
	return applied, err
}

func (s *TournamentSession) consumePendingResultLocked(ctx context.Context) (bool, error) {
	result, err := s.repo.LoadPendingResult(ctx)
	if errors.Is(err, repositories.ErrCorruptState) {
		s.logger.Warn("discarding corrupt match result", slog.Any("error", err))
		s.metrics.corrupt()
		return false, s.repo.ClearPendingResult(ctx)
	}
	if err != nil {
		return false, err
	}
	if result == nil {
		return false, nil
	}

	applied, applyErr := s.applyResultLocked(ctx, *result)
	if applyErr != nil && !errors.Is(applyErr, brackets.ErrValidation) {
		// Not applied and not rejected: keep the blob for the next attempt.
		return applied, applyErr
	}
	if err := s.repo.ClearPendingResult(ctx); err != nil {
		return applied, err
	}
	return applied, nil
}

// Generate builds a new bracket from the raw player names. Only allowed in SETUP.
func (s *TournamentSession) Generate(ctx context.Context, names []string) (models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state := DeriveState(s.bracket); state != models.StateSetup {
		return s.snapshotLocked(), fmt.Errorf("%w: cannot generate a bracket in %s", ErrInvalidTransition, state)
	}

	localUser := s.identity(ctx)
	players, localID, err := brackets.NormalizePlayers(names, localUser, s.rng)
	if err != nil {
		return s.snapshotLocked(), err
	}
	if len(players) < 2 {
		return s.snapshotLocked(), &brackets.InsufficientPlayersError{Count: len(players)}
	}

	bracket, err := s.generator.GenerateBracket(ctx, brackets.GenerateBracketParams{
		Players:       players,
		LocalPlayerID: localID,
	})
	if err != nil {
		return s.snapshotLocked(), err
	}

	if err := s.repo.SaveBracket(ctx, bracket); err != nil {
		return s.snapshotLocked(), err
	}
	s.bracket = bracket
	s.metrics.generated()
	s.logger.Info("tournament generated",
		slog.String("generator", s.generator.GetName()),
		slog.Int("players", len(players)),
		slog.String("local_user", localUser),
	)
	if bracket.IsComplete {
		s.metrics.completed()
	}
	return s.publishLocked(ctx), nil
}

// SelectNext picks the next playable match, marks it current and publishes the
// handoff record for the game engine. It returns a nil match once the
// tournament is complete.
func (s *TournamentSession) SelectNext(ctx context.Context) (*models.CurrentMatch, models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch state := DeriveState(s.bracket); state {
	case models.StateSetup:
		return nil, s.snapshotLocked(), fmt.Errorf("%w: %w", ErrInvalidTransition, ErrNoTournament)
	case models.StateComplete:
		return nil, s.snapshotLocked(), nil
	}

	next := s.bracket.Clone()
	match := brackets.SelectNextMatch(next, s.identity(ctx))
	if match == nil {
		next.IsComplete = next.Champion() != nil
		if !next.IsComplete {
			return nil, s.snapshotLocked(), ErrNoPendingMatch
		}
		if err := s.repo.SaveBracket(ctx, next); err != nil {
			return nil, s.snapshotLocked(), err
		}
		s.bracket = next
		return nil, s.publishLocked(ctx), nil
	}

	next.CurrentMatchID = match.ID
	handoff := models.CurrentMatch{
		ID:           match.ID,
		Player1:      match.Player1.Name,
		Player2:      match.Player2.Name,
		Player1ID:    match.Player1.ID,
		Player2ID:    match.Player2.ID,
		IsTournament: true,
		WinningScore: s.winningScore,
	}

	if err := s.repo.SaveBracket(ctx, next); err != nil {
		return nil, s.snapshotLocked(), err
	}
	if err := s.repo.SaveCurrentMatch(ctx, handoff); err != nil {
		// The bracket already names the match; the engine can be re-handed it.
		s.logger.Error("failed to publish current match", slog.String("match_id", match.ID), slog.Any("error", err))
	}
	s.bracket = next
	s.metrics.selected()
	s.logger.Info("match selected",
		slog.String("match_id", match.ID),
		slog.String("player1", handoff.Player1),
		slog.String("player2", handoff.Player2),
	)
	return &handoff, s.publishLocked(ctx), nil
}

// ApplyResult reconciles a result from the game engine. Results that do not
// belong to the current pending match are logged and dropped: applied is
// false and err is nil.
func (s *TournamentSession) ApplyResult(ctx context.Context, result models.MatchResult) (bool, models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied, err := s.applyResultLocked(ctx, result)
	if !applied {
		return false, s.snapshotLocked(), err
	}
	return true, s.publishLocked(ctx), nil
}

func (s *TournamentSession) applyResultLocked(ctx context.Context, result models.MatchResult) (bool, error) {
	next := s.bracket.Clone()
	match, err := brackets.ApplyResult(next, result)
	if err != nil {
		var stale *brackets.StaleResultError
		if errors.As(err, &stale) {
			s.metrics.result(resultStale)
			s.logger.Warn("dropping stale match result",
				slog.String("match_id", stale.MatchID),
				slog.String("current_match_id", stale.CurrentMatchID),
				slog.String("reason", stale.Reason),
			)
			return false, nil
		}
		s.metrics.result(resultInvalid)
		s.logger.Warn("rejecting match result", slog.Any("error", err))
		return false, err
	}

	if err := s.repo.SaveBracket(ctx, next); err != nil {
		return false, err
	}
	s.bracket = next
	if err := s.repo.ClearCurrentMatch(ctx); err != nil {
		s.logger.Error("failed to clear current match", slog.String("match_id", match.ID), slog.Any("error", err))
	}
	s.metrics.result(resultApplied)
	s.logger.Info("match result applied",
		slog.String("match_id", match.ID),
		slog.String("winner", match.Winner.Name),
		slog.String("score", *match.Score),
	)
	if next.IsComplete {
		s.metrics.completed()
		s.logger.Info("tournament complete", slog.String("champion", next.Champion().Name))
	}
	return true, nil
}

// ListenResults applies results arriving on ch until ctx is done or ch closes.
func (s *TournamentSession) ListenResults(ctx context.Context, ch <-chan models.MatchResult) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case result, ok := <-ch:
			if !ok {
				return nil
			}
			if _, _, err := s.ApplyResult(ctx, result); err != nil {
				s.logger.Error("failed to apply match result from channel", slog.String("match_id", result.MatchID), slog.Any("error", err))
			}
		}
	}
}

// Reset discards the bracket and every persisted key and returns to SETUP.
// The in-memory session is reset even if clearing storage fails.
func (s *TournamentSession) Reset(ctx context.Context) (models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := DeriveState(s.bracket)
	s.bracket = models.NewEmptyBracket()
	err := s.repo.Clear(ctx)
	if err != nil {
		err = fmt.Errorf("failed to clear persisted tournament: %w", err)
	}
	s.logger.Info("tournament reset", slog.String("from_state", string(prev)))
	return s.publishLocked(ctx), err
}

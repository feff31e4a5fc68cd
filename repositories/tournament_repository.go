package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-bracket/models"
	"github.com/Dosada05/tournament-bracket/storage"
)

const (
	KeyTournamentState = "tournamentState"
	KeyMatchResult     = "matchResult"
	KeyCurrentMatch    = "currentMatch"
)

// TournamentRepository persists the live bracket, the pending match result and
// the current-match handoff record under well-known keys.
type TournamentRepository interface {
	// LoadBracket returns nil, nil when nothing is saved and a
	// *CorruptStateError when the saved blob cannot be decoded.
	LoadBracket(ctx context.Context) (*models.Bracket, error)
	SaveBracket(ctx context.Context, bracket *models.Bracket) error

	LoadPendingResult(ctx context.Context) (*models.MatchResult, error)
	SavePendingResult(ctx context.Context, result models.MatchResult) error
	ClearPendingResult(ctx context.Context) error

	LoadCurrentMatch(ctx context.Context) (*models.CurrentMatch, error)
	SaveCurrentMatch(ctx context.Context, match models.CurrentMatch) error
	// ClearCurrentMatch withdraws the handoff record once its result is in.
	ClearCurrentMatch(ctx context.Context) error

	// Clear removes every key owned by the tournament.
	Clear(ctx context.Context) error
}

type kvTournamentRepository struct {
	store  storage.KVStore
	prefix string
}

func NewTournamentRepository(store storage.KVStore, keyPrefix string) TournamentRepository {
	return &kvTournamentRepository{store: store, prefix: keyPrefix}
}

func (r *kvTournamentRepository) key(name string) string {
	return r.prefix + name
}

func (r *kvTournamentRepository) LoadBracket(ctx context.Context) (*models.Bracket, error) {
	var bracket models.Bracket
	found, err := r.load(ctx, KeyTournamentState, &bracket)
	if err != nil || !found {
		return nil, err
	}
	return &bracket, nil
}

func (r *kvTournamentRepository) SaveBracket(ctx context.Context, bracket *models.Bracket) error {
	return r.save(ctx, KeyTournamentState, bracket)
}

func (r *kvTournamentRepository) LoadPendingResult(ctx context.Context) (*models.MatchResult, error) {
	var result models.MatchResult
	found, err := r.load(ctx, KeyMatchResult, &result)
	if err != nil || !found {
		return nil, err
	}
	return &result, nil
}

func (r *kvTournamentRepository) SavePendingResult(ctx context.Context, result models.MatchResult) error {
	return r.save(ctx, KeyMatchResult, result)
}

func (r *kvTournamentRepository) ClearPendingResult(ctx context.Context) error {
	if err := r.store.Delete(ctx, r.key(KeyMatchResult)); err != nil {
		return fmt.Errorf("failed to clear pending match result: %w", err)
	}
	return nil
}

func (r *kvTournamentRepository) LoadCurrentMatch(ctx context.Context) (*models.CurrentMatch, error) {
	var match models.CurrentMatch
	found, err := r.load(ctx, KeyCurrentMatch, &match)
	if err != nil || !found {
		return nil, err
	}
	return &match, nil
}

func (r *kvTournamentRepository) SaveCurrentMatch(ctx context.Context, match models.CurrentMatch) error {
	return r.save(ctx, KeyCurrentMatch, match)
}

func (r *kvTournamentRepository) ClearCurrentMatch(ctx context.Context) error {
	if err := r.store.Delete(ctx, r.key(KeyCurrentMatch)); err != nil {
		return fmt.Errorf("failed to clear current match: %w", err)
	}
	return nil
}

func (r *kvTournamentRepository) Clear(ctx context.Context) error {
	var errs []error
	for _, name := range []string{KeyTournamentState, KeyMatchResult, KeyCurrentMatch} {
		if err := r.store.Delete(ctx, r.key(name)); err != nil {
			errs = append(errs, fmt.Errorf("failed to delete %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func (r *kvTournamentRepository) load(ctx context.Context, name string, dst interface{}) (bool, error) {
	data, err := r.store.Get(ctx, r.key(name))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", name, err)
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, &CorruptStateError{Key: name, Err: err}
	}
	return true, nil
}

func (r *kvTournamentRepository) save(ctx context.Context, name string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := r.store.Set(ctx, r.key(name), data); err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}

// Package memstore keeps games in process memory behind the
// ports.GameStore contract, with optimistic version checking so two
// concurrent calls against one game cannot silently lose an update.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/pariser/game-of-war/internal/domain"
	"github.com/pariser/game-of-war/internal/ports"
)

type Store struct {
	mu    sync.Mutex
	games map[string]*domain.Game
	now   func() time.Time
}

var _ ports.GameStore = (*Store)(nil)

func New() *Store {
	return &Store{
		games: make(map[string]*domain.Game),
		now:   time.Now,
	}
}

func (s *Store) FindByID(_ context.Context, id string) (*domain.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[id]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	return clone(game), nil
}

// Save persists the game, stamping timestamps and bumping the version.
// It rejects a game whose version no longer matches the stored one.
func (s *Store) Save(_ context.Context, game *domain.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stored, ok := s.games[game.ID]; ok && stored.Version != game.Version {
		return domain.ErrVersionConflict
	}

	now := s.now()
	game.UpdatedAt = now
	if game.CreatedAt.IsZero() {
		game.CreatedAt = now
	}
	if game.Completed && game.CompletedAt.IsZero() {
		game.CompletedAt = now
	}
	game.Version++

	s.games[game.ID] = clone(game)
	return nil
}

// clone deep-copies a game so callers never share card slices with the
// stored copy.
func clone(g *domain.Game) *domain.Game {
	out := *g
	out.RandomSeed = append([]int64(nil), g.RandomSeed...)
	out.PlayerOneDeck = append([]string(nil), g.PlayerOneDeck...)
	out.PlayerTwoDeck = append([]string(nil), g.PlayerTwoDeck...)
	out.PlayerOneCollection = append([]string(nil), g.PlayerOneCollection...)
	out.PlayerTwoCollection = append([]string(nil), g.PlayerTwoCollection...)
	out.PlayCollection = append([]string(nil), g.PlayCollection...)
	return &out
}

package ports

import (
	"context"

	"github.com/pariser/game-of-war/internal/domain"
)

// GameStore persists games by identity. Save must serialize concurrent
// writers against the same game: it fails with domain.ErrVersionConflict
// when the stored version no longer matches the one the caller loaded.
type GameStore interface {
	FindByID(ctx context.Context, id string) (*domain.Game, error)
	Save(ctx context.Context, game *domain.Game) error
}

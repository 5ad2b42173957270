package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pariser/game-of-war/internal/domain"
	"github.com/pariser/game-of-war/internal/ports"
)

// StartGameRequest is the application-level input for starting a game
// (no HTTP types). RandomSeed and RandomIndex are optional overrides for
// deterministic replays.
type StartGameRequest struct {
	Name        string
	Email       string
	RandomSeed  []int64
	RandomIndex uint64
}

// StartGameResponse carries the two decks as dealt, before autonomous play
// consumed them.
type StartGameResponse struct {
	ID  string
	One []string
	Two []string
}

// ShuffleDeckRequest carries the client-shuffled collections. HasOne and
// HasTwo record whether the corresponding deck was present in the request
// at all; an absent deck is a protocol violation when the state demands it.
type ShuffleDeckRequest struct {
	One    []string
	Two    []string
	HasOne bool
	HasTwo bool
}

// ShuffleDeckResponse returns the re-shuffled deck for each player whose
// collection was turned back into a deck.
type ShuffleDeckResponse struct {
	One []string
	Two []string
}

type DeclareWinnerResponse struct {
	Finished bool
	Success  bool
}

// GameService runs games of war: each call loads a game, validates,
// plays to the next stopping condition and saves.
type GameService struct {
	store  ports.GameStore
	logger *slog.Logger
}

func NewGameService(store ports.GameStore, logger *slog.Logger) *GameService {
	return &GameService{store: store, logger: logger}
}

// StartGame deals a fresh shuffled deck 26/26, plays to the first stopping
// condition and persists the new game.
func (s *GameService) StartGame(ctx context.Context, req StartGameRequest) (StartGameResponse, error) {
	game := domain.NewGame(uuid.NewString(), req.Name, req.Email)
	if len(req.RandomSeed) > 0 {
		game.RandomSeed = req.RandomSeed
		game.RandomIndex = req.RandomIndex
	}

	if game.State != "" {
		return StartGameResponse{}, s.failGame(ctx, game, domain.ErrUnexpectedAction)
	}

	engine := s.engine(game)
	game.Deal(engine)

	one := append([]string(nil), game.PlayerOneDeck...)
	two := append([]string(nil), game.PlayerTwoDeck...)

	if err := s.playAndSave(ctx, game, engine); err != nil {
		return StartGameResponse{}, err
	}

	return StartGameResponse{ID: game.ID, One: one, Two: two}, nil
}

// ShuffleDeck accepts the client-returned collection for each player the
// persisted state says must shuffle, re-randomizes it server-side so the
// seeded stream stays authoritative, and resumes play.
func (s *GameService) ShuffleDeck(ctx context.Context, id string, req ShuffleDeckRequest) (ShuffleDeckResponse, error) {
	game, err := s.store.FindByID(ctx, id)
	if err != nil {
		return ShuffleDeckResponse{}, err
	}
	if err := game.Locked(); err != nil {
		return ShuffleDeckResponse{}, err
	}

	engine := s.engine(game)

	var resp ShuffleDeckResponse
	switch game.State {
	case domain.StateBothShuffleNeeded:
		if !req.HasOne {
			return resp, s.failGame(ctx, game, domain.ErrMissingPlayerOneDeck)
		}
		if !req.HasTwo {
			return resp, s.failGame(ctx, game, domain.ErrMissingPlayerTwoDeck)
		}
		if !domain.CollectionMatches(game.PlayerOneCollection, req.One) {
			return resp, s.failGame(ctx, game, domain.ErrInvalidPlayerOneCollection)
		}
		if !domain.CollectionMatches(game.PlayerTwoCollection, req.Two) {
			return resp, s.failGame(ctx, game, domain.ErrInvalidPlayerTwoCollection)
		}
		resp.One = reshuffleOne(game, engine)
		resp.Two = reshuffleTwo(game, engine)

	case domain.StateOneShuffleRequired:
		if !req.HasOne {
			return resp, s.failGame(ctx, game, domain.ErrMissingPlayerOneDeck)
		}
		if !domain.CollectionMatches(game.PlayerOneCollection, req.One) {
			return resp, s.failGame(ctx, game, domain.ErrInvalidPlayerOneCollection)
		}
		resp.One = reshuffleOne(game, engine)

	case domain.StateTwoShuffleRequired:
		if !req.HasTwo {
			return resp, s.failGame(ctx, game, domain.ErrMissingPlayerTwoDeck)
		}
		if !domain.CollectionMatches(game.PlayerTwoCollection, req.Two) {
			return resp, s.failGame(ctx, game, domain.ErrInvalidPlayerTwoCollection)
		}
		resp.Two = reshuffleTwo(game, engine)

	default:
		return resp, s.failGame(ctx, game, domain.ErrNoShuffleRequired)
	}

	if err := s.playAndSave(ctx, game, engine); err != nil {
		return ShuffleDeckResponse{}, err
	}

	return resp, nil
}

// DeclareWinner ratifies the claimed outcome against the persisted terminal
// state. Anything but an exact match fails the game.
func (s *GameService) DeclareWinner(ctx context.Context, id, player string) (DeclareWinnerResponse, error) {
	game, err := s.store.FindByID(ctx, id)
	if err != nil {
		return DeclareWinnerResponse{}, err
	}
	if err := game.Locked(); err != nil {
		return DeclareWinnerResponse{}, err
	}

	var want domain.State
	switch player {
	case "one":
		want = domain.StatePlayerOneWin
	case "two":
		want = domain.StatePlayerTwoWin
	case "tie":
		want = domain.StateTie
	default:
		return DeclareWinnerResponse{}, s.failGame(ctx, game, domain.ErrUnexpectedArguments)
	}

	if game.State != want {
		return DeclareWinnerResponse{}, s.failGame(ctx, game, domain.ErrUnexpectedAction)
	}

	game.Pass()
	if err := s.store.Save(ctx, game); err != nil {
		return DeclareWinnerResponse{}, fmt.Errorf("save game: %w", err)
	}

	s.logger.Info("game finished", "id", game.ID, "state", game.State)

	return DeclareWinnerResponse{Finished: true, Success: true}, nil
}

// engine rebuilds the game's deterministic RNG, generating seed material
// the first time a game needs randomness.
func (s *GameService) engine(game *domain.Game) *domain.Engine {
	if len(game.RandomSeed) == 0 {
		game.RandomSeed = domain.GenerateSeed()
	}
	return domain.NewEngine(game.RandomSeed, game.RandomIndex)
}

// playAndSave runs the game to its next stopping condition, records the
// RNG stream position and persists. A save failure propagates without
// failing the game, so a pure storage hiccup stays retryable.
func (s *GameService) playAndSave(ctx context.Context, game *domain.Game, engine *domain.Engine) error {
	state, err := game.PlayToStoppingCondition()
	if err != nil {
		return fmt.Errorf("play game %s: %w", game.ID, err)
	}
	game.RandomIndex = engine.UseCount()

	s.logGameState(game)

	if err := s.store.Save(ctx, game); err != nil {
		return fmt.Errorf("save game: %w", err)
	}

	s.logger.Info("reached stopping condition", "id", game.ID, "state", state)
	return nil
}

// failGame permanently locks the game with the violation as its recorded
// reason. The violation is returned to the caller; a failing save wins
// over it since the lock could not be persisted.
func (s *GameService) failGame(ctx context.Context, game *domain.Game, violation error) error {
	game.Fail(violation.Error())

	s.logger.Error("failed game", "id", game.ID, "reason", violation.Error())

	if err := s.store.Save(ctx, game); err != nil {
		return fmt.Errorf("save failed game: %w", err)
	}
	return violation
}

func (s *GameService) logGameState(game *domain.Game) {
	s.logger.Debug("game state",
		"id", game.ID,
		"state", game.State,
		"center", domain.CollectionString(game.PlayCollection),
		"one_deck", domain.CollectionString(game.PlayerOneDeck),
		"one_collection", domain.CollectionString(game.PlayerOneCollection),
		"two_deck", domain.CollectionString(game.PlayerTwoDeck),
		"two_collection", domain.CollectionString(game.PlayerTwoCollection),
	)
}

func reshuffleOne(game *domain.Game, engine *domain.Engine) []string {
	deck := append([]string(nil), game.PlayerOneCollection...)
	domain.Shuffle(engine, deck)
	game.PlayerOneDeck = append([]string(nil), deck...)
	game.PlayerOneCollection = []string{}
	return deck
}

func reshuffleTwo(game *domain.Game, engine *domain.Engine) []string {
	deck := append([]string(nil), game.PlayerTwoCollection...)
	domain.Shuffle(engine, deck)
	game.PlayerTwoDeck = append([]string(nil), deck...)
	game.PlayerTwoCollection = []string{}
	return deck
}

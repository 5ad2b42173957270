package domain

import "errors"

var (
	ErrInvalidCard = errors.New("invalid card")

	ErrGameNotFound    = errors.New("game not found")
	ErrVersionConflict = errors.New("game was modified concurrently")

	// Locked-session rejections. These never mutate the game.
	ErrGameFinished = errors.New("cannot resume from a finished game")
	ErrGameFailed   = errors.New("cannot resume from game after playing an incorrect move")

	// Protocol and integrity violations. Raising any of these during a
	// gameplay call permanently fails the game.
	ErrUnexpectedAction           = errors.New("unexpected game action")
	ErrUnexpectedArguments        = errors.New("unexpected arguments")
	ErrNoShuffleRequired          = errors.New("neither player needs to shuffle right now")
	ErrMissingPlayerOneDeck       = errors.New("didn't supply player one deck")
	ErrMissingPlayerTwoDeck       = errors.New("didn't supply player two deck")
	ErrInvalidPlayerOneCollection = errors.New("invalid collection for player one")
	ErrInvalidPlayerTwoCollection = errors.New("invalid collection for player two")
)

// IsViolation reports whether err is a protocol or integrity violation,
// one that fails the game permanently rather than being retryable.
func IsViolation(err error) bool {
	for _, v := range []error{
		ErrUnexpectedAction,
		ErrUnexpectedArguments,
		ErrNoShuffleRequired,
		ErrMissingPlayerOneDeck,
		ErrMissingPlayerTwoDeck,
		ErrInvalidPlayerOneCollection,
		ErrInvalidPlayerTwoCollection,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

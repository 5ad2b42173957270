package domain

import "time"

// State labels the stopping condition a game is paused or finished at.
type State string

const (
	StateTie                = State("tie_game")
	StatePlayerOneWin       = State("player_one_win")
	StatePlayerTwoWin       = State("player_two_win")
	StateBothShuffleNeeded  = State("both_players_shuffle_required")
	StateOneShuffleRequired = State("player_one_shuffle_required")
	StateTwoShuffleRequired = State("player_two_shuffle_required")
)

// Terminal reports whether s ends the game rather than pausing it.
func (s State) Terminal() bool {
	return s == StateTie || s == StatePlayerOneWin || s == StatePlayerTwoWin
}

// warDiscards is the number of face-down cards each player commits to a war
// before the next face-up comparison.
const warDiscards = 3

// Game is the persisted aggregate for one game of war. The zero value plus
// an ID is an unstarted game.
type Game struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	State State `json:"state"`

	RandomSeed  []int64 `json:"randomSeed"`
	RandomIndex uint64  `json:"randomIndex"`

	PlayerOneDeck       []string `json:"playerOneDeck"`
	PlayerTwoDeck       []string `json:"playerTwoDeck"`
	PlayerOneCollection []string `json:"playerOneCollection"`
	PlayerTwoCollection []string `json:"playerTwoCollection"`

	PlayCollection  []string `json:"playCollection"`
	WarDiscardsLeft int      `json:"warDiscardsLeft"`

	Completed          bool   `json:"completed"`
	PlayedSuccessfully bool   `json:"playedSuccessfully"`
	FailedReason       string `json:"failedReason,omitempty"`

	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	CompletedAt time.Time `json:"completedAt,omitempty"`

	// Version supports optimistic concurrency in the store.
	Version uint64 `json:"version"`
}

// NewGame returns an unstarted game.
func NewGame(id, name, email string) *Game {
	return &Game{ID: id, Name: name, Email: email}
}

// Locked returns the rejection for a completed game, or nil if the game can
// still be played.
func (g *Game) Locked() error {
	switch {
	case g.Completed && g.PlayedSuccessfully:
		return ErrGameFinished
	case g.Completed:
		return ErrGameFailed
	default:
		return nil
	}
}

// Fail permanently locks the game as played incorrectly.
func (g *Game) Fail(reason string) {
	g.Completed = true
	g.PlayedSuccessfully = false
	g.FailedReason = reason
}

// Pass permanently locks the game as played to a ratified outcome.
func (g *Game) Pass() {
	g.Completed = true
	g.PlayedSuccessfully = true
}

// Deal populates both decks from a freshly shuffled 52-card deck, 26 cards
// each, and clears both collections.
func (g *Game) Deal(rng RNG) {
	deck := FullDeck()
	Shuffle(rng, deck)

	g.PlayerTwoDeck = append([]string(nil), deck[:26]...)
	g.PlayerOneDeck = append([]string(nil), deck[26:]...)
	g.PlayerOneCollection = []string{}
	g.PlayerTwoCollection = []string{}
	g.PlayCollection = []string{}
	g.WarDiscardsLeft = 0
}

// StoppingCondition classifies the current deck and collection sizes.
// Precedence matters: a tie or win is terminal and outranks any
// shuffle requirement.
func (g *Game) StoppingCondition() (State, bool) {
	oneEmpty := len(g.PlayerOneDeck) == 0 && len(g.PlayerOneCollection) == 0
	twoEmpty := len(g.PlayerTwoDeck) == 0 && len(g.PlayerTwoCollection) == 0

	switch {
	case oneEmpty && twoEmpty:
		return StateTie, true
	case twoEmpty:
		return StatePlayerOneWin, true
	case oneEmpty:
		return StatePlayerTwoWin, true
	}

	oneShuffle := len(g.PlayerOneDeck) == 0 && len(g.PlayerOneCollection) > 0
	twoShuffle := len(g.PlayerTwoDeck) == 0 && len(g.PlayerTwoCollection) > 0

	switch {
	case oneShuffle && twoShuffle:
		return StateBothShuffleNeeded, true
	case oneShuffle:
		return StateOneShuffleRequired, true
	case twoShuffle:
		return StateTwoShuffleRequired, true
	}

	return "", false
}

// PlayToStoppingCondition advances the game until it must pause for a
// shuffle or ends in a win or tie, records the reached state on the game
// and returns it.
//
// Every turn or war discard strictly shrinks the decks, so each call
// terminates within the 52-card universe. A war suspended by a shuffle
// pause resumes its remaining discards, not a fresh war.
func (g *Game) PlayToStoppingCondition() (State, error) {
	for {
		// Finish any pending war discards first, re-checking the
		// stopping condition before every single discard: a deck can
		// run out mid-escalation.
		for g.WarDiscardsLeft > 0 {
			if st, ok := g.StoppingCondition(); ok {
				g.State = st
				return st, nil
			}
			g.PlayCollection = append(g.PlayCollection, g.PlayerOneDeck[0], g.PlayerTwoDeck[0])
			g.PlayerOneDeck = g.PlayerOneDeck[1:]
			g.PlayerTwoDeck = g.PlayerTwoDeck[1:]
			g.WarDiscardsLeft--
		}

		if st, ok := g.StoppingCondition(); ok {
			g.State = st
			return st, nil
		}

		oneCard := g.PlayerOneDeck[0]
		twoCard := g.PlayerTwoDeck[0]
		g.PlayerOneDeck = g.PlayerOneDeck[1:]
		g.PlayerTwoDeck = g.PlayerTwoDeck[1:]
		g.PlayCollection = append(g.PlayCollection, oneCard, twoCard)

		oneValue, err := CardValue(oneCard)
		if err != nil {
			return "", err
		}
		twoValue, err := CardValue(twoCard)
		if err != nil {
			return "", err
		}

		switch {
		case oneValue > twoValue:
			g.PlayerOneCollection = append(g.PlayerOneCollection, g.PlayCollection...)
			g.PlayCollection = []string{}
		case twoValue > oneValue:
			g.PlayerTwoCollection = append(g.PlayerTwoCollection, g.PlayCollection...)
			g.PlayCollection = []string{}
		default:
			g.WarDiscardsLeft = warDiscards
		}
	}
}

// CollectionMatches reports whether supplied holds exactly the same cards
// as collection, in any order.
func CollectionMatches(collection, supplied []string) bool {
	if len(collection) != len(supplied) {
		return false
	}
	counts := make(map[string]int, len(collection))
	for _, c := range collection {
		counts[c]++
	}
	for _, c := range supplied {
		counts[c]--
		if counts[c] < 0 {
			return false
		}
	}
	return true
}

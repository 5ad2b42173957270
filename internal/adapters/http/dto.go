package http

// Envelope is the JSON shape of every response: {success, data?, message?}.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// StartGameBody is the JSON body of POST /games. randomSeed and
// randomIndex pin the RNG stream for deterministic replays; any other
// unknown keys are ignored.
type StartGameBody struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	RandomSeed  []int64 `json:"randomSeed"`
	RandomIndex uint64  `json:"randomIndex"`
}

// ShuffleDeckBody is the JSON body of POST /games/:id/shuffle_deck.
// Pointers distinguish an absent deck from an empty one.
type ShuffleDeckBody struct {
	One *[]string `json:"one"`
	Two *[]string `json:"two"`
}

type StartGameData struct {
	ID  string   `json:"id"`
	One []string `json:"one"`
	Two []string `json:"two"`
}

type ShuffleDeckData struct {
	One []string `json:"one,omitempty"`
	Two []string `json:"two,omitempty"`
}

type FinishedData struct {
	Finished bool `json:"finished"`
	Success  bool `json:"success"`
}

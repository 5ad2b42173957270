// warbot plays a full game of war against a running ward server. It keeps
// a local mirror of the game from the decks the server returns, plays the
// same rules to know which collections the server will ask for, and echoes
// them back on every shuffle request until it can declare the winner.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/pariser/game-of-war/internal/domain"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type startData struct {
	ID  string   `json:"id"`
	One []string `json:"one"`
	Two []string `json:"two"`
}

type shuffleData struct {
	One []string `json:"one"`
	Two []string `json:"two"`
}

type finishedData struct {
	Finished bool `json:"finished"`
	Success  bool `json:"success"`
}

type client struct {
	base string
	http *http.Client
}

func (c *client) call(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return fmt.Errorf("server rejected %s %s: %s", method, path, env.Message)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

func main() {
	addr := flag.String("addr", "http://127.0.0.1:8080", "ward server base URL")
	name := flag.String("name", "warbot", "player name")
	email := flag.String("email", "warbot@example.com", "player email")
	flag.Parse()

	ctx := context.Background()
	c := &client{base: strings.TrimRight(*addr, "/"), http: &http.Client{Timeout: 10 * time.Second}}

	if err := play(ctx, c, *name, *email); err != nil {
		pterm.Error.Printfln("%v", err)
		os.Exit(1)
	}
}

func play(ctx context.Context, c *client, name, email string) error {
	var start startData
	err := c.call(ctx, http.MethodPost, "/games", map[string]string{"name": name, "email": email}, &start)
	if err != nil {
		return err
	}

	pterm.DefaultSection.Printfln("Game %s", start.ID)

	// Local mirror of the server's game, advanced with the same rules.
	mirror := &domain.Game{
		ID:                  start.ID,
		PlayerOneDeck:       start.One,
		PlayerTwoDeck:       start.Two,
		PlayerOneCollection: []string{},
		PlayerTwoCollection: []string{},
		PlayCollection:      []string{},
	}

	rounds := 0
	for {
		state, err := mirror.PlayToStoppingCondition()
		if err != nil {
			return fmt.Errorf("local play: %w", err)
		}
		rounds++
		logMirror(mirror)

		if state.Terminal() {
			var player string
			switch state {
			case domain.StatePlayerOneWin:
				player = "one"
			case domain.StatePlayerTwoWin:
				player = "two"
			default:
				player = "tie"
			}

			var fin finishedData
			path := fmt.Sprintf("/games/%s/declare_winner/%s", mirror.ID, player)
			if err := c.call(ctx, http.MethodGet, path, nil, &fin); err != nil {
				return err
			}
			if !fin.Success {
				return fmt.Errorf("server did not ratify outcome %q", player)
			}
			pterm.Success.Printfln("Server ratified outcome %q after %d pauses", player, rounds)
			return nil
		}

		// The server wants the collections of whichever decks ran dry.
		body := map[string][]string{}
		if len(mirror.PlayerOneDeck) == 0 {
			body["one"] = mirror.PlayerOneCollection
		}
		if len(mirror.PlayerTwoDeck) == 0 {
			body["two"] = mirror.PlayerTwoCollection
		}
		pterm.Info.Printfln("Shuffling for: %s", strings.Join(keys(body), ", "))

		var shuffled shuffleData
		path := fmt.Sprintf("/games/%s/shuffle_deck", mirror.ID)
		if err := c.call(ctx, http.MethodPost, path, body, &shuffled); err != nil {
			return err
		}

		if shuffled.One != nil {
			mirror.PlayerOneDeck = shuffled.One
			mirror.PlayerOneCollection = []string{}
		}
		if shuffled.Two != nil {
			mirror.PlayerTwoDeck = shuffled.Two
			mirror.PlayerTwoCollection = []string{}
		}
	}
}

func logMirror(g *domain.Game) {
	pterm.Info.Printfln("state=%s", g.State)
	pterm.Printfln("  one: deck %s, collection %s",
		domain.CollectionString(g.PlayerOneDeck), domain.CollectionString(g.PlayerOneCollection))
	pterm.Printfln("  two: deck %s, collection %s",
		domain.CollectionString(g.PlayerTwoDeck), domain.CollectionString(g.PlayerTwoCollection))
	pterm.Printfln("  center: %s", domain.CollectionString(g.PlayCollection))
}

func keys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

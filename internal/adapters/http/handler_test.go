package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	httpadapter "github.com/pariser/game-of-war/internal/adapters/http"
	"github.com/pariser/game-of-war/internal/adapters/memstore"
	"github.com/pariser/game-of-war/internal/app"
	"github.com/pariser/game-of-war/internal/domain"
)

func newServer(t *testing.T) (*echo.Echo, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := app.NewGameService(store, logger)

	e := echo.New()
	httpadapter.NewHandler(svc).Register(e)
	return e, store
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return rec, decoded
}

func TestHealth(t *testing.T) {
	e, _ := newServer(t)
	rec, body := doJSON(t, e, http.MethodGet, "/health/basic.json", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["success"] != true {
		t.Fatalf("body = %v", body)
	}
}

func TestStartGame_Created(t *testing.T) {
	e, _ := newServer(t)
	rec, body := doJSON(t, e, http.MethodPost, "/games",
		`{"name":"Test Player","email":"test@example.com","randomSeed":[1,2,3,4]}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %v", rec.Code, body)
	}
	if body["success"] != true {
		t.Fatalf("body = %v", body)
	}

	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data: %v", body)
	}
	if data["id"] == "" || data["id"] == nil {
		t.Error("missing game id")
	}
	one, _ := data["one"].([]any)
	two, _ := data["two"].([]any)
	if len(one) != 26 || len(two) != 26 {
		t.Errorf("dealt %d/%d cards, want 26/26", len(one), len(two))
	}
}

func TestStartGame_MissingParams(t *testing.T) {
	e, _ := newServer(t)

	for _, body := range []string{`{}`, `{"name":"x"}`, `{"email":"x@example.com"}`} {
		rec, decoded := doJSON(t, e, http.MethodPost, "/games", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d", body, rec.Code)
		}
		if decoded["success"] == true {
			t.Errorf("body %s: success should be false", body)
		}
	}
}

func TestShuffleDeck_UnknownGame(t *testing.T) {
	e, _ := newServer(t)
	rec, body := doJSON(t, e, http.MethodPost, "/games/missing/shuffle_deck", `{"one":[]}`)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d: %v", rec.Code, body)
	}
}

func TestShuffleDeck_ViolationEnvelope(t *testing.T) {
	e, store := newServer(t)

	game := domain.NewGame("g1", "n", "e")
	game.State = domain.StatePlayerOneWin
	game.PlayerOneDeck = []string{"2♤"}
	if err := store.Save(context.Background(), game); err != nil {
		t.Fatalf("Save: %v", err)
	}

	rec, body := doJSON(t, e, http.MethodPost, "/games/g1/shuffle_deck", `{"one":["2♤"]}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d: %v", rec.Code, body)
	}
	if body["success"] == true {
		t.Fatal("success should be false")
	}
	data, _ := body["data"].(map[string]any)
	if data["finished"] != true || data["success"] != false {
		t.Fatalf("data = %v", data)
	}
}

func TestDeclareWinner_FlowAndLocking(t *testing.T) {
	e, store := newServer(t)

	game := domain.NewGame("g1", "n", "e")
	game.State = domain.StateTie
	if err := store.Save(context.Background(), game); err != nil {
		t.Fatalf("Save: %v", err)
	}

	rec, body := doJSON(t, e, http.MethodGet, "/games/g1/declare_winner/tie", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %v", rec.Code, body)
	}
	data, _ := body["data"].(map[string]any)
	if data["finished"] != true || data["success"] != true {
		t.Fatalf("data = %v", data)
	}

	// A ratified game rejects every further call.
	rec, body = doJSON(t, e, http.MethodGet, "/games/g1/declare_winner/tie", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("repeat status = %d: %v", rec.Code, body)
	}
	if !strings.Contains(body["message"].(string), "finished game") {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestDeclareWinner_MismatchFailsGame(t *testing.T) {
	e, store := newServer(t)

	game := domain.NewGame("g1", "n", "e")
	game.State = domain.StatePlayerOneWin
	game.PlayerOneDeck = []string{"2♤"}
	if err := store.Save(context.Background(), game); err != nil {
		t.Fatalf("Save: %v", err)
	}

	rec, body := doJSON(t, e, http.MethodGet, "/games/g1/declare_winner/tie", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d: %v", rec.Code, body)
	}

	stored, err := store.FindByID(context.Background(), "g1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !stored.Completed || stored.PlayedSuccessfully {
		t.Error("mismatched declaration did not fail the game")
	}
}

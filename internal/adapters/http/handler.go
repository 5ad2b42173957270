package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pariser/game-of-war/internal/app"
	"github.com/pariser/game-of-war/internal/domain"
)

type Handler struct {
	svc *app.GameService
}

func NewHandler(svc *app.GameService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health/basic.json", h.Health)
	e.POST("/games", h.StartGame)
	e.POST("/games/:id/shuffle_deck", h.ShuffleDeck)
	e.GET("/games/:id/declare_winner/:player", h.DeclareWinner)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, Envelope{Success: true})
}

func (h *Handler) StartGame(c echo.Context) error {
	var body StartGameBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, Envelope{Message: "invalid JSON body"})
	}
	if body.Name == "" {
		return c.JSON(http.StatusBadRequest, Envelope{Message: "expected argument: name"})
	}
	if body.Email == "" {
		return c.JSON(http.StatusBadRequest, Envelope{Message: "expected argument: email"})
	}

	resp, err := h.svc.StartGame(c.Request().Context(), app.StartGameRequest{
		Name:        body.Name,
		Email:       body.Email,
		RandomSeed:  body.RandomSeed,
		RandomIndex: body.RandomIndex,
	})
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusCreated, Envelope{
		Success: true,
		Data:    StartGameData{ID: resp.ID, One: resp.One, Two: resp.Two},
	})
}

func (h *Handler) ShuffleDeck(c echo.Context) error {
	var body ShuffleDeckBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, Envelope{Message: "invalid JSON body"})
	}

	req := app.ShuffleDeckRequest{}
	if body.One != nil {
		req.One = *body.One
		req.HasOne = true
	}
	if body.Two != nil {
		req.Two = *body.Two
		req.HasTwo = true
	}

	resp, err := h.svc.ShuffleDeck(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    ShuffleDeckData{One: resp.One, Two: resp.Two},
	})
}

func (h *Handler) DeclareWinner(c echo.Context) error {
	resp, err := h.svc.DeclareWinner(c.Request().Context(), c.Param("id"), c.Param("player"))
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    FinishedData{Finished: resp.Finished, Success: resp.Success},
	})
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrGameNotFound):
		return c.JSON(http.StatusNotFound, Envelope{Message: err.Error()})
	case errors.Is(err, domain.ErrGameFinished), errors.Is(err, domain.ErrGameFailed):
		return c.JSON(http.StatusConflict, Envelope{Message: err.Error()})
	case domain.IsViolation(err):
		// The game is now permanently failed.
		return c.JSON(http.StatusUnprocessableEntity, Envelope{
			Data:    FinishedData{Finished: true, Success: false},
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrVersionConflict):
		return c.JSON(http.StatusConflict, Envelope{Message: err.Error()})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, Envelope{Message: "internal error"})
	}
}

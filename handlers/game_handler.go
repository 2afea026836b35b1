package handlers

import (
	"net/http"

	"github.com/atlpoker/poker-backend/services"
)

const (
	defaultGameLimit = 20
	maxGameLimit     = 200
)

type GameHandler struct {
	gameService services.GameService
}

func NewGameHandler(gs services.GameService) *GameHandler {
	return &GameHandler{
		gameService: gs,
	}
}

func (h *GameHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimitParam(r, defaultGameLimit, maxGameLimit)
	if err != nil {
		failedValidationResponse(w, r, map[string]string{"limit": err.Error()})
		return
	}

	games, err := h.gameService.ListGames(r.Context(), services.ListGamesInput{
		Venue: parseQueryParam(r, "venue"),
		Limit: limit,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, games, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.gameService.GetGame(r.Context(), gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, game, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) ListGameResults(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	results, err := h.gameService.ListGameResults(r.Context(), gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, results, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var input services.CreateGameInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.gameService.CreateGame(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, game, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) AddResults(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var results []services.ResultInput
	if err := readJSON(w, r, &results); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	output, err := h.gameService.AddResults(r.Context(), gameID, results)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, output, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

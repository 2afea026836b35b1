package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/atlpoker/poker-backend/services"
)

const (
	defaultPlayerLimit = 50
	maxPlayerLimit     = 500
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(ps services.PlayerService) *PlayerHandler {
	return &PlayerHandler{
		playerService: ps,
	}
}

func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimitParam(r, defaultPlayerLimit, maxPlayerLimit)
	if err != nil {
		failedValidationResponse(w, r, map[string]string{"limit": err.Error()})
		return
	}

	players, err := h.playerService.ListPlayers(r.Context(), services.ListPlayersInput{
		Query: parseQueryParam(r, "q"),
		Limit: limit,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, players, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.CreatePlayer(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, player, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) UploadPlayerAvatar(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to get avatar file from form: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content-type header is required for avatar"))
		return
	}

	player, err := h.playerService.UploadPlayerAvatar(r.Context(), playerID, file, contentType)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, player, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

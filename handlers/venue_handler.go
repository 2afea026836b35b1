package handlers

import (
	"net/http"

	"github.com/atlpoker/poker-backend/services"
)

const (
	defaultVenueLimit = 50
	maxVenueLimit     = 500
)

type VenueHandler struct {
	venueService services.VenueService
}

func NewVenueHandler(vs services.VenueService) *VenueHandler {
	return &VenueHandler{
		venueService: vs,
	}
}

func (h *VenueHandler) ListVenues(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimitParam(r, defaultVenueLimit, maxVenueLimit)
	if err != nil {
		failedValidationResponse(w, r, map[string]string{"limit": err.Error()})
		return
	}

	venues, err := h.venueService.ListVenues(r.Context(), services.ListVenuesInput{
		Query: parseQueryParam(r, "q"),
		Limit: limit,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, venues, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *VenueHandler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var input services.CreateVenueInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	venue, err := h.venueService.CreateVenue(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, venue, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

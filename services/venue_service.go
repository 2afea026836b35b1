package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atlpoker/poker-backend/models"
	"github.com/atlpoker/poker-backend/repositories"
)

const (
	defaultVenueCity  = "Atlanta"
	defaultVenueState = "GA"
)

type VenueService interface {
	ListVenues(ctx context.Context, input ListVenuesInput) ([]models.Venue, error)
	CreateVenue(ctx context.Context, input CreateVenueInput) (*models.Venue, error)
}

type ListVenuesInput struct {
	Query *string
	Limit int
}

type CreateVenueInput struct {
	VenueName string  `json:"venue_name"`
	Address   *string `json:"address"`
	City      string  `json:"city"`
	State     string  `json:"state"`
}

type venueService struct {
	venueRepo repositories.VenueRepository
}

func NewVenueService(venueRepo repositories.VenueRepository) VenueService {
	return &venueService{
		venueRepo: venueRepo,
	}
}

func (s *venueService) ListVenues(ctx context.Context, input ListVenuesInput) ([]models.Venue, error) {
	venues, err := s.venueRepo.List(ctx, repositories.ListVenuesFilter{
		Query: input.Query,
		Limit: input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	return venues, nil
}

func (s *venueService) CreateVenue(ctx context.Context, input CreateVenueInput) (*models.Venue, error) {
	name := strings.TrimSpace(input.VenueName)
	if name == "" {
		return nil, ErrVenueNameRequired
	}

	city := strings.TrimSpace(input.City)
	if city == "" {
		city = defaultVenueCity
	}
	state := strings.TrimSpace(input.State)
	if state == "" {
		state = defaultVenueState
	}

	venue := &models.Venue{
		Name:    name,
		Address: input.Address,
		City:    city,
		State:   state,
	}

	if err := s.venueRepo.Create(ctx, venue); err != nil {
		if errors.Is(err, repositories.ErrVenueNameConflict) {
			return nil, fmt.Errorf("%w: %q", ErrVenueNameConflict, name)
		}
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}

	return venue, nil
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atlpoker/poker-backend/models"
	"github.com/lib/pq"
)

var (
	ErrVenueNotFound     = errors.New("venue not found")
	ErrVenueNameConflict = errors.New("venue name conflict")
)

type ListVenuesFilter struct {
	Query *string // подстрока имени, без учёта регистра
	Limit int
}

type VenueRepository interface {
	Create(ctx context.Context, venue *models.Venue) error
	GetByID(ctx context.Context, id int) (*models.Venue, error)
	List(ctx context.Context, filter ListVenuesFilter) ([]models.Venue, error)
}

type postgresVenueRepository struct {
	db *sql.DB
}

func NewPostgresVenueRepository(db *sql.DB) VenueRepository {
	return &postgresVenueRepository{db: db}
}

func (r *postgresVenueRepository) Create(ctx context.Context, venue *models.Venue) error {
	query := `
		INSERT INTO venues (venue_name, address, city, state)
		VALUES ($1, $2, $3, $4)
		RETURNING venue_id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		venue.Name, venue.Address, venue.City, venue.State,
	).Scan(&venue.ID, &venue.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "venues_venue_name_lower_key" {
				return ErrVenueNameConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresVenueRepository) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	query := `
		SELECT venue_id, venue_name, address, city, state, created_at
		FROM venues
		WHERE venue_id = $1`

	var venue models.Venue
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&venue.ID, &venue.Name, &venue.Address, &venue.City, &venue.State, &venue.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &venue, nil
}

func (r *postgresVenueRepository) List(ctx context.Context, filter ListVenuesFilter) ([]models.Venue, error) {
	query := `
		SELECT venue_id, venue_name, address, city, state, created_at
		FROM venues`

	args := []interface{}{}
	argID := 1

	if filter.Query != nil {
		query += " WHERE lower(venue_name) LIKE lower($1)"
		args = append(args, "%"+*filter.Query+"%")
		argID++
	}

	query += " ORDER BY created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d", argID)
	args = append(args, filter.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]models.Venue, 0)
	for rows.Next() {
		var venue models.Venue
		if scanErr := rows.Scan(
			&venue.ID, &venue.Name, &venue.Address, &venue.City, &venue.State, &venue.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		venues = append(venues, venue)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return venues, nil
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atlpoker/poker-backend/models"
)

var ErrGameNotFound = errors.New("game not found")

type ListGamesFilter struct {
	Venue *string // подстрока имени площадки, без учёта регистра
	Limit int
}

type GameRepository interface {
	Create(ctx context.Context, game *models.Game, venueID int) error
	GetByID(ctx context.Context, id int) (*models.Game, *models.VenueRef, error)
	List(ctx context.Context, filter ListGamesFilter) ([]models.Game, error)
	ExistsByID(ctx context.Context, exec SQLExecutor, id int) (bool, error)
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

func (r *postgresGameRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresGameRepository) Create(ctx context.Context, game *models.Game, venueID int) error {
	query := `
		INSERT INTO games (game_title, start_time, status, venue_id)
		VALUES ($1, $2, $3, $4)
		RETURNING game_id`

	return r.db.QueryRowContext(ctx, query,
		game.Title, game.StartTime, game.Status, venueID,
	).Scan(&game.ID)
}

func (r *postgresGameRepository) GetByID(ctx context.Context, id int) (*models.Game, *models.VenueRef, error) {
	query := `
		SELECT g.game_id, g.game_title, g.start_time, g.status, v.venue_id, v.venue_name
		FROM games g
		JOIN venues v ON v.venue_id = g.venue_id
		WHERE g.game_id = $1`

	var game models.Game
	var venue models.VenueRef
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&game.ID, &game.Title, &game.StartTime, &game.Status, &venue.ID, &venue.Name,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrGameNotFound
		}
		return nil, nil, err
	}
	game.VenueName = venue.Name
	return &game, &venue, nil
}

func (r *postgresGameRepository) List(ctx context.Context, filter ListGamesFilter) ([]models.Game, error) {
	query := `
		SELECT g.game_id, g.game_title, g.start_time, g.status, v.venue_name
		FROM games g
		JOIN venues v ON v.venue_id = g.venue_id`

	args := []interface{}{}
	argID := 1

	if filter.Venue != nil {
		query += " WHERE lower(v.venue_name) LIKE lower($1)"
		args = append(args, "%"+*filter.Venue+"%")
		argID++
	}

	query += " ORDER BY g.start_time DESC"
	query += fmt.Sprintf(" LIMIT $%d", argID)
	args = append(args, filter.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]models.Game, 0)
	for rows.Next() {
		var game models.Game
		if scanErr := rows.Scan(
			&game.ID, &game.Title, &game.StartTime, &game.Status, &game.VenueName,
		); scanErr != nil {
			return nil, scanErr
		}
		games = append(games, game)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return games, nil
}

func (r *postgresGameRepository) ExistsByID(ctx context.Context, exec SQLExecutor, id int) (bool, error) {
	executor := r.getExecutor(exec)
	query := `SELECT EXISTS (SELECT 1 FROM games WHERE game_id = $1)`

	var exists bool
	if err := executor.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

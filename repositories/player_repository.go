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
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerNameConflict = errors.New("player display name conflict")
)

type ListPlayersFilter struct {
	Query *string
	Limit int
}

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	List(ctx context.Context, filter ListPlayersFilter) ([]models.Player, error)
	UpdateAvatarURL(ctx context.Context, id int, avatarURL string) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (display_name, avatar_url)
		VALUES ($1, $2)
		RETURNING player_id, created_at`

	err := r.db.QueryRowContext(ctx, query, player.DisplayName, player.AvatarURL).
		Scan(&player.ID, &player.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "players_display_name_lower_key" {
				return ErrPlayerNameConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `
		SELECT player_id, display_name, avatar_url, created_at
		FROM players
		WHERE player_id = $1`

	var player models.Player
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&player.ID, &player.DisplayName, &player.AvatarURL, &player.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &player, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context, filter ListPlayersFilter) ([]models.Player, error) {
	query := `
		SELECT player_id, display_name, avatar_url, created_at
		FROM players`

	args := []interface{}{}
	argID := 1

	if filter.Query != nil {
		query += " WHERE lower(display_name) LIKE lower($1)"
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

	players := make([]models.Player, 0)
	for rows.Next() {
		var player models.Player
		if scanErr := rows.Scan(
			&player.ID, &player.DisplayName, &player.AvatarURL, &player.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		players = append(players, player)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return players, nil
}

func (r *postgresPlayerRepository) UpdateAvatarURL(ctx context.Context, id int, avatarURL string) error {
	query := `UPDATE players SET avatar_url = $1 WHERE player_id = $2`

	result, err := r.db.ExecContext(ctx, query, avatarURL, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/atlpoker/poker-backend/models"
	"github.com/lib/pq"
)

var ErrResultPlayerInvalid = errors.New("result references an unknown player")

type ResultRepository interface {
	// Upsert вставляет результат или перезаписывает существующий
	// по паре (game_id, player_id).
	Upsert(ctx context.Context, exec SQLExecutor, result *models.Result) error
	ListByGame(ctx context.Context, gameID int) ([]models.ResultRow, error)
}

type postgresResultRepository struct {
	db *sql.DB
}

func NewPostgresResultRepository(db *sql.DB) ResultRepository {
	return &postgresResultRepository{db: db}
}

func (r *postgresResultRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresResultRepository) Upsert(ctx context.Context, exec SQLExecutor, result *models.Result) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO results (game_id, finish_rank, player_id, points, kos, eliminated_by_player_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (game_id, player_id)
		DO UPDATE SET
			finish_rank = EXCLUDED.finish_rank,
			points = EXCLUDED.points,
			kos = EXCLUDED.kos,
			eliminated_by_player_id = EXCLUDED.eliminated_by_player_id`

	_, err := executor.ExecContext(ctx, query,
		result.GameID, result.FinishRank, result.PlayerID,
		result.Points, result.Kos, result.EliminatedByPlayerID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return ErrResultPlayerInvalid
		}
		return err
	}
	return nil
}

func (r *postgresResultRepository) ListByGame(ctx context.Context, gameID int) ([]models.ResultRow, error) {
	query := `
		SELECT r.finish_rank, p.display_name AS player, r.points, r.kos,
		       eb.display_name AS eliminated_by
		FROM results r
		JOIN players p ON p.player_id = r.player_id
		LEFT JOIN players eb ON eb.player_id = r.eliminated_by_player_id
		WHERE r.game_id = $1
		ORDER BY r.finish_rank ASC`

	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]models.ResultRow, 0)
	for rows.Next() {
		var row models.ResultRow
		if scanErr := rows.Scan(
			&row.FinishRank, &row.Player, &row.Points, &row.Kos, &row.EliminatedBy,
		); scanErr != nil {
			return nil, scanErr
		}
		results = append(results, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

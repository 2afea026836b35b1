package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/atlpoker/poker-backend/repositories"
)

// openTestDB подключается к базе из TEST_DATABASE_URL. Схема db/schema.sql
// должна быть применена заранее; без переменной тест пропускается.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Ping(); err != nil {
		t.Fatalf("failed to ping test database: %v", err)
	}
	return db
}

// seedGame создаёт площадку, игру и двух игроков и регистрирует уборку,
// которая удалит всё вместе с результатами игры.
func seedGame(t *testing.T, db *sql.DB) (gameID, playerA, playerB int) {
	t.Helper()
	ctx := context.Background()
	suffix := time.Now().UnixNano()

	var venueID int
	if err := db.QueryRowContext(ctx,
		`INSERT INTO venues (venue_name) VALUES ($1) RETURNING venue_id`,
		fmt.Sprintf("Batch Room %d", suffix),
	).Scan(&venueID); err != nil {
		t.Fatalf("failed to insert venue: %v", err)
	}
	if err := db.QueryRowContext(ctx,
		`INSERT INTO games (game_title, start_time, status, venue_id)
		 VALUES ('Batch Weekly', now(), 'scheduled', $1) RETURNING game_id`, venueID,
	).Scan(&gameID); err != nil {
		t.Fatalf("failed to insert game: %v", err)
	}
	if err := db.QueryRowContext(ctx,
		`INSERT INTO players (display_name) VALUES ($1) RETURNING player_id`,
		fmt.Sprintf("batch-alice-%d", suffix),
	).Scan(&playerA); err != nil {
		t.Fatalf("failed to insert player: %v", err)
	}
	if err := db.QueryRowContext(ctx,
		`INSERT INTO players (display_name) VALUES ($1) RETURNING player_id`,
		fmt.Sprintf("batch-bob-%d", suffix),
	).Scan(&playerB); err != nil {
		t.Fatalf("failed to insert player: %v", err)
	}

	t.Cleanup(func() {
		db.ExecContext(ctx, `DELETE FROM results WHERE game_id = $1`, gameID)
		db.ExecContext(ctx, `DELETE FROM games WHERE game_id = $1`, gameID)
		db.ExecContext(ctx, `DELETE FROM players WHERE player_id IN ($1, $2)`, playerA, playerB)
		db.ExecContext(ctx, `DELETE FROM venues WHERE venue_id = $1`, venueID)
	})
	return gameID, playerA, playerB
}

func newDBGameService(db *sql.DB) GameService {
	return NewGameService(db,
		repositories.NewPostgresGameRepository(db),
		repositories.NewPostgresVenueRepository(db),
		repositories.NewPostgresResultRepository(db),
		nil,
	)
}

func TestAddResults_CommitsWholeBatch(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	gameID, playerA, playerB := seedGame(t, db)
	svc := newDBGameService(db)

	out, err := svc.AddResults(ctx, gameID, []ResultInput{
		{FinishRank: 1, PlayerID: playerA, Points: 100, Kos: 2},
		{FinishRank: 2, PlayerID: playerB, Points: 60, Kos: 0, EliminatedByPlayerID: &playerA},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.GameID != gameID || out.InsertedResults != 2 {
		t.Fatalf("unexpected output: %+v", out)
	}

	rows, err := svc.ListGameResults(ctx, gameID)
	if err != nil {
		t.Fatalf("failed to read leaderboard back: %v", err)
	}
	if len(rows) != 2 || rows[0].FinishRank != 1 || rows[1].FinishRank != 2 {
		t.Fatalf("expected committed leaderboard of 2 rows, got %+v", rows)
	}
}

// Одна невалидная строка в пакете откатывает весь пакет: валидная строка
// тоже не должна оказаться в базе.
func TestAddResults_RollsBackOnInvalidPlayer(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	gameID, playerA, _ := seedGame(t, db)
	svc := newDBGameService(db)

	_, err := svc.AddResults(ctx, gameID, []ResultInput{
		{FinishRank: 1, PlayerID: playerA, Points: 100, Kos: 2},
		{FinishRank: 2, PlayerID: 1 << 30, Points: 60, Kos: 0},
	})
	if !errors.Is(err, ErrResultPlayerInvalid) {
		t.Fatalf("expected ErrResultPlayerInvalid, got %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx,
		`SELECT count(*) FROM results WHERE game_id = $1`, gameID,
	).Scan(&count); err != nil {
		t.Fatalf("failed to count results: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to leave no rows, got %d", count)
	}
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atlpoker/poker-backend/live"
	"github.com/atlpoker/poker-backend/models"
	"github.com/atlpoker/poker-backend/repositories"
	"golang.org/x/sync/errgroup"
)

type GameService interface {
	ListGames(ctx context.Context, input ListGamesInput) ([]models.Game, error)
	GetGame(ctx context.Context, gameID int) (*models.GameDetail, error)
	ListGameResults(ctx context.Context, gameID int) ([]models.ResultRow, error)
	CreateGame(ctx context.Context, input CreateGameInput) (*models.CreatedGame, error)
	AddResults(ctx context.Context, gameID int, results []ResultInput) (*AddResultsOutput, error)
}

type ListGamesInput struct {
	Venue *string
	Limit int
}

type CreateGameInput struct {
	GameTitle string    `json:"game_title"`
	StartTime time.Time `json:"start_time"`
	VenueID   int       `json:"venue_id"`
	// Клиенты могут прислать статус, но он всегда заменяется на "scheduled".
	Status string `json:"status"`
}

type ResultInput struct {
	FinishRank           int  `json:"finish_rank"`
	PlayerID             int  `json:"player_id"`
	Points               int  `json:"points"`
	Kos                  int  `json:"kos"`
	EliminatedByPlayerID *int `json:"eliminated_by_player_id"`
}

type AddResultsOutput struct {
	GameID          int `json:"game_id"`
	InsertedResults int `json:"inserted_results"`
}

type gameService struct {
	db         *sql.DB
	gameRepo   repositories.GameRepository
	venueRepo  repositories.VenueRepository
	resultRepo repositories.ResultRepository
	hub        *live.Hub // nil, если live-рассылка не подключена
}

func NewGameService(
	db *sql.DB,
	gameRepo repositories.GameRepository,
	venueRepo repositories.VenueRepository,
	resultRepo repositories.ResultRepository,
	hub *live.Hub,
) GameService {
	return &gameService{
		db:         db,
		gameRepo:   gameRepo,
		venueRepo:  venueRepo,
		resultRepo: resultRepo,
		hub:        hub,
	}
}

func (s *gameService) ListGames(ctx context.Context, input ListGamesInput) ([]models.Game, error) {
	games, err := s.gameRepo.List(ctx, repositories.ListGamesFilter{
		Venue: input.Venue,
		Limit: input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

func (s *gameService) GetGame(ctx context.Context, gameID int) (*models.GameDetail, error) {
	var (
		game    *models.Game
		venue   *models.VenueRef
		results []models.ResultRow
	)

	// Игра и таблица результатов читаются независимо.
	g, groupCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		game, venue, err = s.gameRepo.GetByID(groupCtx, gameID)
		return err
	})
	g.Go(func() error {
		var err error
		results, err = s.resultRepo.ListByGame(groupCtx, gameID)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game %d: %w", gameID, err)
	}

	return &models.GameDetail{
		ID:        game.ID,
		Title:     game.Title,
		StartTime: game.StartTime,
		Status:    game.Status,
		Venue:     *venue,
		Results:   results,
	}, nil
}

func (s *gameService) ListGameResults(ctx context.Context, gameID int) ([]models.ResultRow, error) {
	// Отсутствие игры здесь не ошибка: отдаём пустой список.
	results, err := s.resultRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results for game %d: %w", gameID, err)
	}
	return results, nil
}

func (s *gameService) CreateGame(ctx context.Context, input CreateGameInput) (*models.CreatedGame, error) {
	title := strings.TrimSpace(input.GameTitle)
	if title == "" {
		return nil, ErrGameTitleRequired
	}
	if input.StartTime.IsZero() {
		return nil, ErrGameStartTimeInvalid
	}

	venue, err := s.venueRepo.GetByID(ctx, input.VenueID)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrGameVenueInvalid, input.VenueID)
		}
		return nil, fmt.Errorf("failed to check venue %d: %w", input.VenueID, err)
	}

	game := &models.Game{
		Title:     title,
		StartTime: input.StartTime,
		Status:    models.GameStatusScheduled, // статус из запроса игнорируется
		VenueName: venue.Name,
	}

	if err := s.gameRepo.Create(ctx, game, venue.ID); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return &models.CreatedGame{
		ID:        game.ID,
		Title:     game.Title,
		StartTime: game.StartTime,
		Status:    game.Status,
		Venue: models.VenueRef{
			ID:   venue.ID,
			Name: venue.Name,
		},
	}, nil
}

func (s *gameService) AddResults(ctx context.Context, gameID int, results []ResultInput) (*AddResultsOutput, error) {
	if len(results) == 0 {
		return nil, ErrResultsEmpty
	}

	exists, err := s.gameRepo.ExistsByID(ctx, nil, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to check game %d: %w", gameID, err)
	}
	if !exists {
		return nil, ErrGameNotFound
	}

	// Весь пакет пишется в одной транзакции: либо все строки, либо ни одной.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, input := range results {
		result := &models.Result{
			GameID:               gameID,
			PlayerID:             input.PlayerID,
			FinishRank:           input.FinishRank,
			Points:               input.Points,
			Kos:                  input.Kos,
			EliminatedByPlayerID: input.EliminatedByPlayerID,
		}
		if err := s.resultRepo.Upsert(ctx, tx, result); err != nil {
			if errors.Is(err, repositories.ErrResultPlayerInvalid) {
				return nil, fmt.Errorf("%w (player_id %d)", ErrResultPlayerInvalid, input.PlayerID)
			}
			return nil, fmt.Errorf("failed to upsert result for player %d: %w", input.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit results: %w", err)
	}

	s.notifyLeaderboard(ctx, gameID)

	return &AddResultsOutput{
		GameID:          gameID,
		InsertedResults: len(results),
	}, nil
}

// notifyLeaderboard рассылает обновлённую таблицу результатов подписчикам игры.
func (s *gameService) notifyLeaderboard(ctx context.Context, gameID int) {
	if s.hub == nil {
		return
	}
	rows, err := s.resultRepo.ListByGame(ctx, gameID)
	if err != nil {
		return // рассылка не должна ронять сам запрос
	}
	s.hub.BroadcastToGame(gameID, live.Message{
		Type:    live.TypeLeaderboardUpdated,
		Payload: rows,
	})
}

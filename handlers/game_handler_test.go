package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/atlpoker/poker-backend/models"
	"github.com/atlpoker/poker-backend/services"
	"github.com/go-chi/chi/v5"
)

type fakeGameService struct {
	listInput  services.ListGamesInput
	listResult []models.Game

	getResult *models.GameDetail
	getErr    error

	resultsResult []models.ResultRow

	createInput  services.CreateGameInput
	createResult *models.CreatedGame
	createErr    error

	addGameID  int
	addResults []services.ResultInput
	addOutput  *services.AddResultsOutput
	addErr     error
}

func (f *fakeGameService) ListGames(_ context.Context, input services.ListGamesInput) ([]models.Game, error) {
	f.listInput = input
	return f.listResult, nil
}

func (f *fakeGameService) GetGame(_ context.Context, _ int) (*models.GameDetail, error) {
	return f.getResult, f.getErr
}

func (f *fakeGameService) ListGameResults(_ context.Context, _ int) ([]models.ResultRow, error) {
	return f.resultsResult, nil
}

func (f *fakeGameService) CreateGame(_ context.Context, input services.CreateGameInput) (*models.CreatedGame, error) {
	f.createInput = input
	return f.createResult, f.createErr
}

func (f *fakeGameService) AddResults(_ context.Context, gameID int, results []services.ResultInput) (*services.AddResultsOutput, error) {
	f.addGameID = gameID
	f.addResults = results
	return f.addOutput, f.addErr
}

func newGameRouter(svc services.GameService) *chi.Mux {
	h := NewGameHandler(svc)
	r := chi.NewRouter()
	r.Get("/games", h.ListGames)
	r.Post("/games", h.CreateGame)
	r.Get("/games/{gameID}", h.GetGame)
	r.Get("/games/{gameID}/results", h.ListGameResults)
	r.Post("/games/{gameID}/results", h.AddResults)
	return r
}

func TestListGames_LimitBounds(t *testing.T) {
	svc := &fakeGameService{listResult: []models.Game{}}
	r := newGameRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/games", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.listInput.Limit != 20 {
		t.Fatalf("expected default limit 20, got %d", svc.listInput.Limit)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/games?limit=201", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("limit=201 must be rejected with 422, got %d", w.Code)
	}
}

func TestListGames_VenueFilterPassedThrough(t *testing.T) {
	svc := &fakeGameService{listResult: []models.Game{}}
	r := newGameRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/games?venue=spot", nil)
	r.ServeHTTP(w, req)

	if svc.listInput.Venue == nil || *svc.listInput.Venue != "spot" {
		t.Fatalf("expected venue filter %q, got %v", "spot", svc.listInput.Venue)
	}
}

// Неизвестная игра: прямой запрос 404-ит, а список результатов отдаёт
// пустой массив. Обе стороны контракта проверяются вместе.
func TestUnknownGame_GetVersusResults(t *testing.T) {
	svc := &fakeGameService{
		getErr:        services.ErrGameNotFound,
		resultsResult: []models.ResultRow{},
	}
	r := newGameRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/games/999", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /games/999: expected 404, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/games/999/results", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /games/999/results: expected 200, got %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Fatalf("expected empty array, got %q", body)
	}
}

func TestGetGame_Detail(t *testing.T) {
	eliminator := "bob"
	svc := &fakeGameService{
		getResult: &models.GameDetail{
			ID:        1,
			Title:     "Weekly",
			StartTime: time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC),
			Status:    "scheduled",
			Venue:     models.VenueRef{ID: 2, Name: "The Spot"},
			Results: []models.ResultRow{
				{FinishRank: 1, Player: "alice", Points: 100, Kos: 3, EliminatedBy: nil},
				{FinishRank: 2, Player: "bob", Points: 50, Kos: 1, EliminatedBy: &eliminator},
			},
		},
	}
	r := newGameRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/games/1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var got models.GameDetail
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Venue.Name != "The Spot" {
		t.Fatalf("expected venue name in payload, got %+v", got.Venue)
	}
	if len(got.Results) != 2 || got.Results[0].FinishRank != 1 || got.Results[1].FinishRank != 2 {
		t.Fatalf("expected leaderboard ordered by finish_rank, got %+v", got.Results)
	}
}

// Статус в теле запроса не отвергается: игра всё равно создаётся
// как "scheduled".
func TestCreateGame_IgnoresRequestedStatus(t *testing.T) {
	svc := &fakeGameService{
		createResult: &models.CreatedGame{
			ID:        10,
			Title:     "Weekly",
			StartTime: time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC),
			Status:    models.GameStatusScheduled,
			Venue:     models.VenueRef{ID: 1, Name: "The Spot"},
		},
	}
	r := newGameRouter(svc)

	w := httptest.NewRecorder()
	body := `{"game_title":"Weekly","start_time":"2024-01-01T19:00:00Z","venue_id":1,"status":"running"}`
	req := httptest.NewRequest(http.MethodPost, "/games", strings.NewReader(body))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if svc.createInput.Status != "running" {
		t.Fatalf("expected status to reach the service untouched, got %q", svc.createInput.Status)
	}

	var got models.CreatedGame
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Status != models.GameStatusScheduled {
		t.Fatalf("expected status %q, got %q", models.GameStatusScheduled, got.Status)
	}
}

func TestCreateGame_UnknownVenue(t *testing.T) {
	svc := &fakeGameService{
		createErr: fmt.Errorf("%w: %d", services.ErrGameVenueInvalid, 42),
	}
	r := newGameRouter(svc)

	w := httptest.NewRecorder()
	body := `{"game_title":"Weekly","start_time":"2024-01-01T19:00:00Z","venue_id":42}`
	req := httptest.NewRequest(http.MethodPost, "/games", strings.NewReader(body))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "42") {
		t.Fatalf("error should name the missing venue id, got %q", w.Body.String())
	}
}

func TestAddResults_Success(t *testing.T) {
	svc := &fakeGameService{
		addOutput: &services.AddResultsOutput{GameID: 5, InsertedResults: 2},
	}
	r := newGameRouter(svc)

	body := `[
		{"finish_rank":1,"player_id":10,"points":100,"kos":3},
		{"finish_rank":2,"player_id":11,"points":50,"kos":1,"eliminated_by_player_id":10}
	]`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/games/5/results", strings.NewReader(body))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if svc.addGameID != 5 || len(svc.addResults) != 2 {
		t.Fatalf("unexpected service call: gameID=%d rows=%d", svc.addGameID, len(svc.addResults))
	}
	if svc.addResults[1].EliminatedByPlayerID == nil || *svc.addResults[1].EliminatedByPlayerID != 10 {
		t.Fatalf("expected eliminated_by_player_id 10, got %v", svc.addResults[1].EliminatedByPlayerID)
	}

	var out services.AddResultsOutput
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if out.GameID != 5 || out.InsertedResults != 2 {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestAddResults_UnknownGameIsNotFound(t *testing.T) {
	svc := &fakeGameService{addErr: services.ErrGameNotFound}
	r := newGameRouter(svc)

	w := httptest.NewRecorder()
	body := `[{"finish_rank":1,"player_id":10,"points":100,"kos":3}]`
	req := httptest.NewRequest(http.MethodPost, "/games/999/results", strings.NewReader(body))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestAddResults_UnknownPlayer(t *testing.T) {
	svc := &fakeGameService{addErr: services.ErrResultPlayerInvalid}
	r := newGameRouter(svc)

	w := httptest.NewRecorder()
	body := `[{"finish_rank":1,"player_id":12345,"points":100,"kos":3}]`
	req := httptest.NewRequest(http.MethodPost, "/games/5/results", strings.NewReader(body))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

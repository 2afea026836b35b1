package routes

import (
	"net/http"

	"github.com/atlpoker/poker-backend/config"
	"github.com/atlpoker/poker-backend/docs"
	"github.com/atlpoker/poker-backend/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router *chi.Mux,
	cfg *config.Config,
	venueHandler *handlers.VenueHandler,
	playerHandler *handlers.PlayerHandler,
	gameHandler *handlers.GameHandler,
	liveHandler *handlers.LiveHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	// Доверенные фронтенды из конфигурации плюс preview-деплои Vercel.
	allowedOrigins := append([]string{}, cfg.FrontendOrigins...)
	allowedOrigins = append(allowedOrigins, "https://*.vercel.app")

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	router.Get("/", handlers.Root)
	router.Get("/health", handlers.Health)

	// Swagger UI, как его отдавал исходный сервис: /api-docs, /docs — редирект.
	router.Get("/api-docs/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(docs.OpenAPI)
	})
	router.Get("/api-docs/*", httpSwagger.Handler(
		httpSwagger.URL("/api-docs/openapi.json"),
	))
	router.Get("/api-docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api-docs/index.html", http.StatusMovedPermanently)
	})
	router.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api-docs", http.StatusTemporaryRedirect)
	})

	router.Route("/venues", func(r chi.Router) {
		r.Get("/", venueHandler.ListVenues)
		r.Post("/", venueHandler.CreateVenue)
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.ListPlayers)
		r.Post("/", playerHandler.CreatePlayer)
		r.Post("/{playerID}/avatar", playerHandler.UploadPlayerAvatar)
	})

	router.Route("/games", func(r chi.Router) {
		r.Get("/", gameHandler.ListGames)
		r.Post("/", gameHandler.CreateGame)
		r.Get("/{gameID}", gameHandler.GetGame)
		r.Get("/{gameID}/results", gameHandler.ListGameResults)
		r.Post("/{gameID}/results", gameHandler.AddResults)
		r.Get("/{gameID}/live", liveHandler.ServeGameFeed)
	})
}

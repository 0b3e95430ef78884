package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/fng3r/cis-haxball/docs" // регистрация swagger-спецификации
	"github.com/fng3r/cis-haxball/handlers"
	"github.com/fng3r/cis-haxball/middleware"
	"github.com/fng3r/cis-haxball/models"
)

type Handlers struct {
	League     *handlers.LeagueHandler
	Statistics *handlers.StatisticsHandler
	Rating     *handlers.RatingHandler
	Schedule   *handlers.ScheduleHandler
	MatchEvent *handlers.MatchEventHandler
	WebSocket  *handlers.WebSocketHandler
}

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/ws/leagues/{leagueID}", h.WebSocket.ServeWs)

	router.Route("/api", func(r chi.Router) {
		// Публичные маршруты только на чтение
		r.Get("/leagues/{leagueID}/table", h.League.GetTable)
		r.Get("/leagues/{leagueID}/leaders", h.League.GetLeaders)
		r.Get("/teams/{teamID}/statistics", h.Statistics.GetTeamStatistics)
		r.Get("/players/{playerID}/statistics", h.Statistics.GetPlayerStatistics)
		r.Get("/categories", h.Statistics.GetCategory)
		r.Get("/ratings/latest", h.Rating.GetLatest)
		r.Get("/ratings/{number}", h.Rating.GetByNumber)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(opts.JWTSecret))

			// Протоколы матчей ведут редакторы и администраторы
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.OperatorAdmin, models.OperatorEditor))
				r.Post("/matches/{matchID}/goals", h.MatchEvent.AddGoal)
				r.Delete("/goals/{goalID}", h.MatchEvent.RemoveGoal)
				r.Post("/matches/{matchID}/events", h.MatchEvent.AddEvent)
				r.Delete("/events/{eventID}", h.MatchEvent.RemoveEvent)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.OperatorAdmin))
				r.Post("/leagues/{leagueID}/schedule", h.Schedule.GenerateSchedule)
				r.Post("/seasons/{seasonID}/season-points", h.Rating.RecomputeSeasonPoints)
				r.Post("/seasons/{seasonID}/rating", h.Rating.PublishRating)
			})
		})
	})
}

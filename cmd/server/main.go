// @title           CIS Haxball League API
// @version         1.0
// @description     Турнирные таблицы, календарь, статистика и рейтинг команд лиги.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"

	"github.com/fng3r/cis-haxball/config"
	"github.com/fng3r/cis-haxball/db"
	"github.com/fng3r/cis-haxball/events"
	"github.com/fng3r/cis-haxball/handlers"
	"github.com/fng3r/cis-haxball/live"
	"github.com/fng3r/cis-haxball/rating"
	"github.com/fng3r/cis-haxball/repositories"
	api "github.com/fng3r/cis-haxball/routes"
	"github.com/fng3r/cis-haxball/schedule"
	"github.com/fng3r/cis-haxball/services"
	"github.com/fng3r/cis-haxball/stats"
	"github.com/fng3r/cis-haxball/storage"
)

const shutdownTimeout = 15 * time.Second

var migrate = flag.Bool("migrate", false, "apply db/schema.sql before starting the server")

func main() {
	flag.Parse()

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(logger *slog.Logger) error {
	ctx := context.Background()
	clock := clockwork.NewRealClock()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	weights, err := rating.LoadWeights(cfg.RatingRulesPath)
	if err != nil {
		return fmt.Errorf("failed to load league weights: %w", err)
	}
	categorizer, err := stats.LoadCategorizer(cfg.CategoryRulesPath)
	if err != nil {
		return fmt.Errorf("failed to load tournament categories: %w", err)
	}

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, cfg.DBConnectTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if *migrate {
		if err := db.Migrate(ctx, dbConn); err != nil {
			return err
		}
		logger.Info("database schema applied")
	}

	// Публикация доменных событий: JetStream или только лог
	var publisher events.Publisher
	if cfg.NATSURL != "" {
		publisher, err = events.NewJetStreamPublisher(ctx, events.DefaultJetStreamConfig(cfg.NATSURL), clock, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		logger.Info("JetStream publisher initialized")
	} else {
		publisher = events.NewLogPublisher(clock, logger)
		logger.Info("NATS_URL is not set, domain events go to the log only")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close event publisher", slog.Any("error", err))
		}
	}()

	// Снимки рейтинга в Cloudflare R2 (необязательно)
	var exporter services.RatingExporter
	r2cfg := storage.R2Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	}
	if r2cfg.Enabled() {
		uploader, err := storage.NewR2Uploader(ctx, r2cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		exporter = storage.NewRatingExporter(uploader)
		logger.Info("Cloudflare R2 uploader initialized")
	}

	// Инициализация WebSocket Hub
	hubDone := make(chan struct{})
	defer close(hubDone)
	wsHub := live.NewHub(logger)
	go wsHub.Run(hubDone)
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	seasonRepo := repositories.NewPostgresSeasonRepository(dbConn)
	leagueRepo := repositories.NewPostgresLeagueRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	eventRepo := repositories.NewPostgresEventRepository(dbConn)
	ratingRepo := repositories.NewPostgresRatingRepository(dbConn)

	// Инициализация сервисов
	tx := services.NewSQLTransactor(dbConn, logger)
	standingsService := services.NewStandingsService(tx, leagueRepo, teamRepo, matchRepo, wsHub, logger)
	scheduleService := services.NewScheduleService(tx, leagueRepo, matchRepo, schedule.NewRoundRobinGenerator(), publisher, clock, logger)
	statisticsService := services.NewStatisticsService(seasonRepo, leagueRepo, teamRepo, playerRepo, matchRepo, eventRepo, categorizer)
	ratingService := services.NewRatingService(tx, seasonRepo, leagueRepo, matchRepo, ratingRepo, weights, exporter, publisher, clock, logger)
	matchEventService := services.NewMatchEventService(tx, matchRepo, eventRepo, standingsService, publisher, logger)

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		League:     handlers.NewLeagueHandler(standingsService, statisticsService),
		Statistics: handlers.NewStatisticsHandler(statisticsService),
		Rating:     handlers.NewRatingHandler(ratingService),
		Schedule:   handlers.NewScheduleHandler(scheduleService),
		MatchEvent: handlers.NewMatchEventHandler(matchEventService, logger),
		WebSocket:  handlers.NewWebSocketHandler(wsHub, standingsService, originChecker(cfg.AllowedOrigins), logger),
	}, api.Options{
		JWTSecret:      cfg.JWTSecretKey,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
	}
	return nil
}

// originChecker: без списка разрешены все Origin.
func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		_, ok := set[r.Header.Get("Origin")]
		return ok
	}
}

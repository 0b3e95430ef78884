// Команда mcp - MCP-сервер поверх stdio с инструментами только на чтение:
// таблицы, лидеры, статистика и рейтинг.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fng3r/cis-haxball/config"
	"github.com/fng3r/cis-haxball/db"
	"github.com/fng3r/cis-haxball/events"
	"github.com/fng3r/cis-haxball/rating"
	"github.com/fng3r/cis-haxball/repositories"
	"github.com/fng3r/cis-haxball/services"
	"github.com/fng3r/cis-haxball/stats"
)

var serverVersion = flag.String("version", "0.1.0", "server version reported to MCP clients")

func main() {
	flag.Parse()

	// stdout занят протоколом, логи пишем в stderr
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	categorizer, err := stats.LoadCategorizer(cfg.CategoryRulesPath)
	if err != nil {
		logger.Error("failed to load tournament categories", slog.Any("error", err))
		os.Exit(1)
	}
	weights, err := rating.LoadWeights(cfg.RatingRulesPath)
	if err != nil {
		logger.Error("failed to load league weights", slog.Any("error", err))
		os.Exit(1)
	}

	dbConn, err := db.Connect(cfg.DatabaseURL, cfg.DBConnectTimeout)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbConn.Close()

	clock := clockwork.NewRealClock()
	seasonRepo := repositories.NewPostgresSeasonRepository(dbConn)
	leagueRepo := repositories.NewPostgresLeagueRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	eventRepo := repositories.NewPostgresEventRepository(dbConn)
	ratingRepo := repositories.NewPostgresRatingRepository(dbConn)

	tx := services.NewSQLTransactor(dbConn, logger)
	deps := toolDeps{
		standings:  services.NewStandingsService(tx, leagueRepo, teamRepo, matchRepo, nil, logger),
		statistics: services.NewStatisticsService(seasonRepo, leagueRepo, teamRepo, playerRepo, matchRepo, eventRepo, categorizer),
		// Инструменты только читают рейтинг, поэтому события уходят в лог.
		rating: services.NewRatingService(tx, seasonRepo, leagueRepo, matchRepo, ratingRepo, weights, nil,
			events.NewLogPublisher(clock, logger), clock, logger),
	}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "cis-haxball-mcp",
			Version: *serverVersion,
		},
		nil,
	)
	registerTools(server, deps)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("MCP server started")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Error("MCP server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

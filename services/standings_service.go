package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fng3r/cis-haxball/live"
	"github.com/fng3r/cis-haxball/models"
	"github.com/fng3r/cis-haxball/repositories"
	"github.com/fng3r/cis-haxball/standings"
)

// Broadcaster - получатель обновлений таблиц (WebSocket hub).
type Broadcaster interface {
	BroadcastToRoom(room string, message interface{})
}

type LeagueTable struct {
	League *models.League      `json:"league"`
	Rows   []*models.TableRow `json:"rows"`
}

type StandingsService interface {
	GetTable(ctx context.Context, leagueID int) (*LeagueTable, error)
	// PushTable пересчитывает таблицу и рассылает её подписчикам турнира. Ошибки только логируются.
	PushTable(ctx context.Context, leagueID int)
}

type standingsService struct {
	tx          Transactor
	leagueRepo  repositories.LeagueRepository
	teamRepo    repositories.TeamRepository
	matchRepo   repositories.MatchRepository
	broadcaster Broadcaster
	logger      *slog.Logger
}

func NewStandingsService(
	tx Transactor,
	leagueRepo repositories.LeagueRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	broadcaster Broadcaster,
	logger *slog.Logger,
) StandingsService {
	return &standingsService{
		tx:          tx,
		leagueRepo:  leagueRepo,
		teamRepo:    teamRepo,
		matchRepo:   matchRepo,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func (s *standingsService) GetTable(ctx context.Context, leagueID int) (*LeagueTable, error) {
	var (
		league  *models.League
		teams   []*models.Team
		matches []*models.Match
	)
	err := s.tx.WithinTx(ctx, snapshotTx, func(exec repositories.SQLExecutor) error {
		var err error
		if league, err = s.leagueRepo.GetByID(ctx, exec, leagueID); err != nil {
			return err
		}
		if teams, err = s.teamRepo.ListByIDs(ctx, exec, league.TeamIDs); err != nil {
			return err
		}
		matches, err = s.matchRepo.ListByLeague(ctx, exec, leagueID)
		return err
	})
	if err != nil {
		return nil, mapDomainError(fmt.Errorf("failed to load league %d: %w", leagueID, err))
	}

	rows, err := standings.Compute(teams, matches)
	if err != nil {
		return nil, mapDomainError(fmt.Errorf("failed to compute table of league %d: %w", leagueID, err))
	}
	return &LeagueTable{League: league, Rows: rows}, nil
}

func (s *standingsService) PushTable(ctx context.Context, leagueID int) {
	if s.broadcaster == nil {
		return
	}
	table, err := s.GetTable(ctx, leagueID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to refresh league table", slog.Int("league_id", leagueID), slog.Any("error", err))
		return
	}
	room := live.LeagueRoom(leagueID)
	s.broadcaster.BroadcastToRoom(room, live.Message{
		Type:    live.MessageTableUpdated,
		Payload: table,
		RoomID:  room,
	})
}

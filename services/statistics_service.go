package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/fng3r/cis-haxball/repositories"
	"github.com/fng3r/cis-haxball/stats"
)

type StatisticsService interface {
	TeamStatistics(ctx context.Context, teamID int, currentSeason bool) (*stats.TeamReport, error)
	PlayerStatistics(ctx context.Context, playerID int, currentSeason bool) (*stats.PlayerReport, error)
	LeagueLeaders(ctx context.Context, leagueID int, query stats.LeaderQuery) ([]stats.LeaderRow, error)
	Categorize(title string) string
}

type statisticsService struct {
	seasonRepo  repositories.SeasonRepository
	leagueRepo  repositories.LeagueRepository
	teamRepo    repositories.TeamRepository
	playerRepo  repositories.PlayerRepository
	matchRepo   repositories.MatchRepository
	eventRepo   repositories.EventRepository
	categorizer *stats.Categorizer
}

func NewStatisticsService(
	seasonRepo repositories.SeasonRepository,
	leagueRepo repositories.LeagueRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	eventRepo repositories.EventRepository,
	categorizer *stats.Categorizer,
) StatisticsService {
	return &statisticsService{
		seasonRepo:  seasonRepo,
		leagueRepo:  leagueRepo,
		teamRepo:    teamRepo,
		playerRepo:  playerRepo,
		matchRepo:   matchRepo,
		eventRepo:   eventRepo,
		categorizer: categorizer,
	}
}

func (s *statisticsService) TeamStatistics(ctx context.Context, teamID int, currentSeason bool) (*stats.TeamReport, error) {
	if _, err := s.teamRepo.GetByID(ctx, nil, teamID); err != nil {
		return nil, mapDomainError(err)
	}
	scope, ok, err := s.scope(ctx, currentSeason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return stats.TeamStatistics(&stats.Dataset{}, teamID, scope, s.categorizer), nil
	}
	ds, err := s.loadDataset(ctx, scope)
	if err != nil {
		return nil, err
	}
	return stats.TeamStatistics(ds, teamID, scope, s.categorizer), nil
}

func (s *statisticsService) PlayerStatistics(ctx context.Context, playerID int, currentSeason bool) (*stats.PlayerReport, error) {
	if _, err := s.playerRepo.GetByID(ctx, nil, playerID); err != nil {
		return nil, mapDomainError(err)
	}
	scope, ok, err := s.scope(ctx, currentSeason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return stats.PlayerStatistics(&stats.Dataset{}, playerID, scope, s.categorizer), nil
	}
	ds, err := s.loadDataset(ctx, scope)
	if err != nil {
		return nil, err
	}
	return stats.PlayerStatistics(ds, playerID, scope, s.categorizer), nil
}

func (s *statisticsService) LeagueLeaders(ctx context.Context, leagueID int, query stats.LeaderQuery) ([]stats.LeaderRow, error) {
	league, err := s.leagueRepo.GetByID(ctx, nil, leagueID)
	if err != nil {
		return nil, mapDomainError(err)
	}
	scope := stats.SeasonOnly(league.SeasonID)
	ds, err := s.loadDataset(ctx, scope)
	if err != nil {
		return nil, err
	}
	rows, err := stats.Leaders(ds, scope, stats.LeaderFilter{LeagueIDs: []int{leagueID}}, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	return rows, nil
}

func (s *statisticsService) Categorize(title string) string {
	return s.categorizer.Classify(title)
}

// scope определяет срез статистики. ok = false: текущий сезон запрошен, но активного нет,
// и считать нечего - отчёт получается пустым.
func (s *statisticsService) scope(ctx context.Context, currentSeason bool) (scope stats.Scope, ok bool, err error) {
	if !currentSeason {
		return stats.AllTime(), true, nil
	}
	season, err := s.seasonRepo.GetActive(ctx, nil)
	if errors.Is(err, repositories.ErrSeasonNotFound) {
		return stats.AllTime(), false, nil
	}
	if err != nil {
		return stats.Scope{}, false, mapDomainError(fmt.Errorf("failed to resolve current season: %w", err))
	}
	return stats.SeasonOnly(season.ID), true, nil
}

// loadDataset загружает данные параллельными запросами. Статистика терпит расхождение
// между запросами, поэтому общий снимок здесь не берётся.
func (s *statisticsService) loadDataset(ctx context.Context, scope stats.Scope) (*stats.Dataset, error) {
	ds := &stats.Dataset{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		ds.Seasons, err = s.seasonRepo.List(gCtx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		ds.Leagues, err = s.leagueRepo.List(gCtx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		ds.Teams, err = s.teamRepo.List(gCtx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		if scope.IsAllTime() {
			ds.Matches, err = s.matchRepo.List(gCtx, nil)
		} else {
			ds.Matches, err = s.matchRepo.ListBySeason(gCtx, nil, scope.SeasonID)
		}
		return err
	})
	g.Go(func() error {
		var err error
		ds.Goals, err = s.eventRepo.ListGoals(gCtx, nil, scope.SeasonID)
		return err
	})
	g.Go(func() error {
		var err error
		ds.Substitutions, err = s.eventRepo.ListSubstitutions(gCtx, nil, scope.SeasonID)
		return err
	})
	g.Go(func() error {
		var err error
		ds.Events, err = s.eventRepo.ListEvents(gCtx, nil, scope.SeasonID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load statistics data: %w", err)
	}
	return ds, nil
}

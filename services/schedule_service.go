package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/jonboulle/clockwork"

	"github.com/fng3r/cis-haxball/events"
	"github.com/fng3r/cis-haxball/models"
	"github.com/fng3r/cis-haxball/repositories"
	"github.com/fng3r/cis-haxball/schedule"
)

type ScheduleRequest struct {
	HasReturnMatches bool `json:"has_return_matches"`
	Shuffle          bool `json:"shuffle"`
	// Seed делает перемешивание воспроизводимым; без него берётся текущее время.
	Seed *int64 `json:"seed,omitempty"`
}

type ScheduleResult struct {
	LeagueID  int             `json:"league_id"`
	Generator string          `json:"generator"`
	Seed      *int64          `json:"seed,omitempty"`
	Matches   []*models.Match `json:"matches"`
}

type ScheduleGenerated struct {
	LeagueID int   `json:"league_id"`
	Matches  int   `json:"matches"`
	Tours    int   `json:"tours"`
	Seed     int64 `json:"seed,omitempty"`
}

type ScheduleService interface {
	Generate(ctx context.Context, leagueID int, req ScheduleRequest) (*ScheduleResult, error)
}

type scheduleService struct {
	tx         Transactor
	leagueRepo repositories.LeagueRepository
	matchRepo  repositories.MatchRepository
	generator  schedule.Generator
	publisher  events.Publisher
	clock      clockwork.Clock
	logger     *slog.Logger
}

func NewScheduleService(
	tx Transactor,
	leagueRepo repositories.LeagueRepository,
	matchRepo repositories.MatchRepository,
	generator schedule.Generator,
	publisher events.Publisher,
	clock clockwork.Clock,
	logger *slog.Logger,
) ScheduleService {
	return &scheduleService{
		tx:         tx,
		leagueRepo: leagueRepo,
		matchRepo:  matchRepo,
		generator:  generator,
		publisher:  publisher,
		clock:      clock,
		logger:     logger,
	}
}

// Generate строит календарь турнира и сохраняет все матчи одной транзакцией.
// Если матчи у турнира уже есть, возвращается ErrScheduleExists.
func (s *scheduleService) Generate(ctx context.Context, leagueID int, req ScheduleRequest) (*ScheduleResult, error) {
	result := &ScheduleResult{LeagueID: leagueID, Generator: s.generator.GetName()}
	var seed int64
	if req.Shuffle {
		seed = s.clock.Now().UnixNano()
		if req.Seed != nil {
			seed = *req.Seed
		}
		result.Seed = &seed
	}

	tours := 0
	err := s.tx.WithinTx(ctx, nil, func(exec repositories.SQLExecutor) error {
		league, err := s.leagueRepo.GetByID(ctx, exec, leagueID)
		if err != nil {
			return err
		}
		existing, err := s.matchRepo.CountByLeague(ctx, exec, leagueID)
		if err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("%w: league %d has %d matches", ErrScheduleExists, leagueID, existing)
		}

		tourRows, err := s.leagueRepo.ListTours(ctx, exec, leagueID)
		if err != nil {
			return err
		}
		tourDates := make(map[int]schedule.DateRange, len(tourRows))
		for _, t := range tourRows {
			tourDates[t.Number] = schedule.DateRange{From: t.DateFrom, To: t.DateTo}
		}

		teamIDs := append([]int(nil), league.TeamIDs...)
		if req.Shuffle {
			rnd := rand.New(rand.NewSource(seed))
			rnd.Shuffle(len(teamIDs), func(i, j int) { teamIDs[i], teamIDs[j] = teamIDs[j], teamIDs[i] })
		}

		drafts, err := s.generator.GenerateSchedule(ctx, schedule.GenerateParams{
			LeagueID:         leagueID,
			TeamIDs:          teamIDs,
			HasReturnMatches: req.HasReturnMatches,
			TourDates:        tourDates,
		})
		if err != nil {
			return err
		}

		matches := make([]*models.Match, 0, len(drafts))
		for _, d := range drafts {
			matches = append(matches, &models.Match{
				LeagueID:    d.LeagueID,
				TourNumber:  d.TourNumber,
				TeamHomeID:  d.TeamHomeID,
				TeamGuestID: d.TeamGuestID,
			})
			if d.TourNumber > tours {
				tours = d.TourNumber
			}
		}
		if err := s.matchRepo.CreateBatch(ctx, exec, matches); err != nil {
			return err
		}
		result.Matches = matches
		return nil
	})
	if err != nil {
		return nil, mapDomainError(fmt.Errorf("failed to generate schedule for league %d: %w", leagueID, err))
	}

	s.logger.InfoContext(ctx, "schedule generated",
		slog.Int("league_id", leagueID),
		slog.Int("matches", len(result.Matches)),
		slog.Int("tours", tours),
	)
	if err := s.publisher.Publish(ctx, events.TypeScheduleGenerated, ScheduleGenerated{
		LeagueID: leagueID,
		Matches:  len(result.Matches),
		Tours:    tours,
		Seed:     seed,
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish schedule event", slog.Int("league_id", leagueID), slog.Any("error", err))
	}
	return result, nil
}

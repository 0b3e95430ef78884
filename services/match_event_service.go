package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fng3r/cis-haxball/events"
	"github.com/fng3r/cis-haxball/models"
	"github.com/fng3r/cis-haxball/repositories"
)

type CreateGoalInput struct {
	TeamID      int  `json:"team_id"`
	AuthorID    int  `json:"author_id"`
	AssistantID *int `json:"assistant_id,omitempty"`
	TimeMin     int  `json:"time_min"`
	TimeSec     int  `json:"time_sec"`
}

type CreateEventInput struct {
	TeamID   int              `json:"team_id"`
	AuthorID int              `json:"author_id"`
	Kind     models.EventKind `json:"kind"`
	TimeMin  int              `json:"time_min"`
	TimeSec  int              `json:"time_sec"`
}

type MatchScoreChanged struct {
	MatchID    int               `json:"match_id"`
	LeagueID   int               `json:"league_id"`
	ScoreHome  int               `json:"score_home"`
	ScoreGuest int               `json:"score_guest"`
	Result     models.ResultKind `json:"result,omitempty"`
}

// MatchEventService ведёт протокол матча. Гол и автогол меняют счёт в той же транзакции,
// что и запись события.
type MatchEventService interface {
	AddGoal(ctx context.Context, matchID int, input CreateGoalInput) (*models.Goal, error)
	RemoveGoal(ctx context.Context, goalID int) error
	AddEvent(ctx context.Context, matchID int, input CreateEventInput) (*models.OtherEvent, error)
	RemoveEvent(ctx context.Context, eventID int) error
}

type matchEventService struct {
	tx        Transactor
	matchRepo repositories.MatchRepository
	eventRepo repositories.EventRepository
	standings StandingsService
	publisher events.Publisher
	logger    *slog.Logger
}

func NewMatchEventService(
	tx Transactor,
	matchRepo repositories.MatchRepository,
	eventRepo repositories.EventRepository,
	standings StandingsService,
	publisher events.Publisher,
	logger *slog.Logger,
) MatchEventService {
	return &matchEventService{
		tx:        tx,
		matchRepo: matchRepo,
		eventRepo: eventRepo,
		standings: standings,
		publisher: publisher,
		logger:    logger,
	}
}

func validateEventTime(minute, second int) error {
	if minute < 0 || second < 0 || second > 59 {
		return fmt.Errorf("%w: invalid event time %d:%02d", ErrValidationFailed, minute, second)
	}
	return nil
}

func (s *matchEventService) AddGoal(ctx context.Context, matchID int, input CreateGoalInput) (*models.Goal, error) {
	if err := validateEventTime(input.TimeMin, input.TimeSec); err != nil {
		return nil, err
	}
	if input.AuthorID <= 0 {
		return nil, fmt.Errorf("%w: goal author is required", ErrValidationFailed)
	}
	if input.AssistantID != nil && *input.AssistantID == input.AuthorID {
		return nil, fmt.Errorf("%w: author cannot assist own goal", ErrValidationFailed)
	}

	goal := &models.Goal{
		MatchID:     matchID,
		TeamID:      input.TeamID,
		AuthorID:    input.AuthorID,
		AssistantID: input.AssistantID,
		TimeMin:     input.TimeMin,
		TimeSec:     input.TimeSec,
	}
	match, err := s.withMatch(ctx, matchID, func(exec repositories.SQLExecutor, m *models.Match) error {
		if err := goal.ApplyTo(m, 1); err != nil {
			return err
		}
		return s.eventRepo.CreateGoal(ctx, exec, goal)
	})
	if err != nil {
		return nil, mapDomainError(fmt.Errorf("failed to add goal to match %d: %w", matchID, err))
	}
	s.afterScoreChange(ctx, match)
	return goal, nil
}

func (s *matchEventService) RemoveGoal(ctx context.Context, goalID int) error {
	var match *models.Match
	err := s.tx.WithinTx(ctx, nil, func(exec repositories.SQLExecutor) error {
		goal, err := s.eventRepo.GetGoal(ctx, exec, goalID)
		if err != nil {
			return err
		}
		match, err = s.lockedUpdate(ctx, exec, goal.MatchID, func(m *models.Match) error {
			if err := goal.ApplyTo(m, -1); err != nil {
				return err
			}
			return s.eventRepo.DeleteGoal(ctx, exec, goalID)
		})
		return err
	})
	if err != nil {
		return mapDomainError(fmt.Errorf("failed to remove goal %d: %w", goalID, err))
	}
	s.afterScoreChange(ctx, match)
	return nil
}

func (s *matchEventService) AddEvent(ctx context.Context, matchID int, input CreateEventInput) (*models.OtherEvent, error) {
	if !input.Kind.Valid() {
		return nil, fmt.Errorf("%w: %w %q", ErrValidationFailed, models.ErrUnknownEventKind, input.Kind)
	}
	if err := validateEventTime(input.TimeMin, input.TimeSec); err != nil {
		return nil, err
	}

	event := &models.OtherEvent{
		MatchID:  matchID,
		TeamID:   input.TeamID,
		AuthorID: input.AuthorID,
		Kind:     input.Kind,
		TimeMin:  input.TimeMin,
		TimeSec:  input.TimeSec,
	}
	match, err := s.withMatch(ctx, matchID, func(exec repositories.SQLExecutor, m *models.Match) error {
		if !m.HasTeam(event.TeamID) {
			return fmt.Errorf("%w: team %d, match %d", models.ErrTeamNotInMatch, event.TeamID, m.ID)
		}
		if err := event.ApplyTo(m, 1); err != nil {
			return err
		}
		return s.eventRepo.CreateEvent(ctx, exec, event)
	})
	if err != nil {
		return nil, mapDomainError(fmt.Errorf("failed to add %s event to match %d: %w", input.Kind, matchID, err))
	}
	if event.Kind == models.EventOwnGoal {
		s.afterScoreChange(ctx, match)
	}
	return event, nil
}

func (s *matchEventService) RemoveEvent(ctx context.Context, eventID int) error {
	var (
		match *models.Match
		kind  models.EventKind
	)
	err := s.tx.WithinTx(ctx, nil, func(exec repositories.SQLExecutor) error {
		event, err := s.eventRepo.GetEvent(ctx, exec, eventID)
		if err != nil {
			return err
		}
		kind = event.Kind
		match, err = s.lockedUpdate(ctx, exec, event.MatchID, func(m *models.Match) error {
			if err := event.ApplyTo(m, -1); err != nil {
				return err
			}
			return s.eventRepo.DeleteEvent(ctx, exec, eventID)
		})
		return err
	})
	if err != nil {
		return mapDomainError(fmt.Errorf("failed to remove event %d: %w", eventID, err))
	}
	if kind == models.EventOwnGoal {
		s.afterScoreChange(ctx, match)
	}
	return nil
}

func (s *matchEventService) withMatch(ctx context.Context, matchID int, fn func(exec repositories.SQLExecutor, m *models.Match) error) (*models.Match, error) {
	var match *models.Match
	err := s.tx.WithinTx(ctx, nil, func(exec repositories.SQLExecutor) error {
		var err error
		match, err = s.lockedUpdate(ctx, exec, matchID, func(m *models.Match) error {
			return fn(exec, m)
		})
		return err
	})
	return match, err
}

// lockedUpdate блокирует строку матча, применяет fn и сохраняет новый счёт с пересчитанным результатом.
func (s *matchEventService) lockedUpdate(ctx context.Context, exec repositories.SQLExecutor, matchID int, fn func(m *models.Match) error) (*models.Match, error) {
	m, err := s.matchRepo.GetForUpdate(ctx, exec, matchID)
	if err != nil {
		return nil, err
	}
	homeBefore, guestBefore := m.ScoreHome, m.ScoreGuest
	if err := fn(m); err != nil {
		return nil, err
	}
	if m.ScoreHome == homeBefore && m.ScoreGuest == guestBefore {
		return m, nil
	}
	if err := s.matchRepo.UpdateScore(ctx, exec, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *matchEventService) afterScoreChange(ctx context.Context, m *models.Match) {
	if m == nil {
		return
	}
	s.logger.InfoContext(ctx, "match score changed",
		slog.Int("match_id", m.ID),
		slog.Int("score_home", m.ScoreHome),
		slog.Int("score_guest", m.ScoreGuest),
	)
	payload := MatchScoreChanged{
		MatchID:    m.ID,
		LeagueID:   m.LeagueID,
		ScoreHome:  m.ScoreHome,
		ScoreGuest: m.ScoreGuest,
	}
	if m.Result != nil {
		payload.Result = m.Result.Kind
	}
	if err := s.publisher.Publish(ctx, events.TypeMatchScoreChanged, payload); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish score event", slog.Int("match_id", m.ID), slog.Any("error", err))
	}
	s.standings.PushTable(ctx, m.LeagueID)
}

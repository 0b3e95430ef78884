package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fng3r/cis-haxball/models"
)

var (
	ErrGoalNotFound  = errors.New("goal not found")
	ErrEventNotFound = errors.New("match event not found")
)

// EventRepository хранит протокол матчей: голы, замены и прочие события.
// Фильтр seasonID = 0 означает все сезоны.
type EventRepository interface {
	CreateGoal(ctx context.Context, exec SQLExecutor, goal *models.Goal) error
	GetGoal(ctx context.Context, exec SQLExecutor, id int) (*models.Goal, error)
	DeleteGoal(ctx context.Context, exec SQLExecutor, id int) error
	ListGoals(ctx context.Context, exec SQLExecutor, seasonID int) ([]*models.Goal, error)

	ListSubstitutions(ctx context.Context, exec SQLExecutor, seasonID int) ([]*models.Substitution, error)

	CreateEvent(ctx context.Context, exec SQLExecutor, event *models.OtherEvent) error
	GetEvent(ctx context.Context, exec SQLExecutor, id int) (*models.OtherEvent, error)
	DeleteEvent(ctx context.Context, exec SQLExecutor, id int) error
	ListEvents(ctx context.Context, exec SQLExecutor, seasonID int) ([]*models.OtherEvent, error)
}

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

// seasonFilter ограничивает выборку матчами сезона; $1 = 0 отключает фильтр.
const seasonFilter = `
	WHERE $1 = 0 OR e.match_id IN (
		SELECT m.id FROM matches m JOIN leagues l ON l.id = m.league_id WHERE l.season_id = $1
	)
	ORDER BY e.id`

func (r *postgresEventRepository) CreateGoal(ctx context.Context, exec SQLExecutor, goal *models.Goal) error {
	query := `
		INSERT INTO goals (match_id, team_id, author_id, assistant_id, time_min, time_sec)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := getExecutor(r.db, exec).QueryRowContext(ctx, query,
		goal.MatchID, goal.TeamID, goal.AuthorID, goal.AssistantID, goal.TimeMin, goal.TimeSec,
	).Scan(&goal.ID)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", handleWriteError(err, nil))
	}
	return nil
}

func (r *postgresEventRepository) GetGoal(ctx context.Context, exec SQLExecutor, id int) (*models.Goal, error) {
	query := `SELECT id, match_id, team_id, author_id, assistant_id, time_min, time_sec FROM goals WHERE id = $1`
	g := &models.Goal{}
	err := getExecutor(r.db, exec).QueryRowContext(ctx, query, id).Scan(
		&g.ID, &g.MatchID, &g.TeamID, &g.AuthorID, &g.AssistantID, &g.TimeMin, &g.TimeSec,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to get goal by id %d: %w", id, err)
	}
	return g, nil
}

func (r *postgresEventRepository) DeleteGoal(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := getExecutor(r.db, exec).ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrGoalNotFound)
}

func (r *postgresEventRepository) ListGoals(ctx context.Context, exec SQLExecutor, seasonID int) ([]*models.Goal, error) {
	query := `SELECT e.id, e.match_id, e.team_id, e.author_id, e.assistant_id, e.time_min, e.time_sec FROM goals e` + seasonFilter
	rows, err := getExecutor(r.db, exec).QueryContext(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	goals := make([]*models.Goal, 0)
	for rows.Next() {
		g := &models.Goal{}
		if err := rows.Scan(&g.ID, &g.MatchID, &g.TeamID, &g.AuthorID, &g.AssistantID, &g.TimeMin, &g.TimeSec); err != nil {
			return nil, fmt.Errorf("failed to scan goal row: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goal rows: %w", err)
	}
	return goals, nil
}

func (r *postgresEventRepository) ListSubstitutions(ctx context.Context, exec SQLExecutor, seasonID int) ([]*models.Substitution, error) {
	query := `SELECT e.id, e.match_id, e.team_id, e.player_in_id, e.player_out_id, e.time_min, e.time_sec FROM substitutions e` + seasonFilter
	rows, err := getExecutor(r.db, exec).QueryContext(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query substitutions: %w", err)
	}
	defer rows.Close()

	subs := make([]*models.Substitution, 0)
	for rows.Next() {
		s := &models.Substitution{}
		if err := rows.Scan(&s.ID, &s.MatchID, &s.TeamID, &s.PlayerInID, &s.PlayerOutID, &s.TimeMin, &s.TimeSec); err != nil {
			return nil, fmt.Errorf("failed to scan substitution row: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating substitution rows: %w", err)
	}
	return subs, nil
}

func (r *postgresEventRepository) CreateEvent(ctx context.Context, exec SQLExecutor, event *models.OtherEvent) error {
	query := `
		INSERT INTO other_events (match_id, team_id, author_id, event, time_min, time_sec)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := getExecutor(r.db, exec).QueryRowContext(ctx, query,
		event.MatchID, event.TeamID, event.AuthorID, event.Kind, event.TimeMin, event.TimeSec,
	).Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("failed to create match event: %w", handleWriteError(err, nil))
	}
	return nil
}

func (r *postgresEventRepository) GetEvent(ctx context.Context, exec SQLExecutor, id int) (*models.OtherEvent, error) {
	query := `SELECT id, match_id, team_id, author_id, event, time_min, time_sec FROM other_events WHERE id = $1`
	e := &models.OtherEvent{}
	err := getExecutor(r.db, exec).QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.MatchID, &e.TeamID, &e.AuthorID, &e.Kind, &e.TimeMin, &e.TimeSec,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get match event by id %d: %w", id, err)
	}
	return e, nil
}

func (r *postgresEventRepository) DeleteEvent(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := getExecutor(r.db, exec).ExecContext(ctx, `DELETE FROM other_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match event %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) ListEvents(ctx context.Context, exec SQLExecutor, seasonID int) ([]*models.OtherEvent, error) {
	query := `SELECT e.id, e.match_id, e.team_id, e.author_id, e.event, e.time_min, e.time_sec FROM other_events e` + seasonFilter
	rows, err := getExecutor(r.db, exec).QueryContext(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query match events: %w", err)
	}
	defer rows.Close()

	events := make([]*models.OtherEvent, 0)
	for rows.Next() {
		e := &models.OtherEvent{}
		if err := rows.Scan(&e.ID, &e.MatchID, &e.TeamID, &e.AuthorID, &e.Kind, &e.TimeMin, &e.TimeSec); err != nil {
			return nil, fmt.Errorf("failed to scan match event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match event rows: %w", err)
	}
	return events, nil
}

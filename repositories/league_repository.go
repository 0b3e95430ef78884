package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/fng3r/cis-haxball/models"
)

var ErrLeagueNotFound = errors.New("league not found")

type LeagueRepository interface {
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.League, error)
	List(ctx context.Context, exec SQLExecutor) ([]*models.League, error)
	ListBySeason(ctx context.Context, exec SQLExecutor, seasonID int) ([]*models.League, error)
	ListTours(ctx context.Context, exec SQLExecutor, leagueID int) ([]*models.TourNumber, error)
}

type postgresLeagueRepository struct {
	db *sql.DB
}

func NewPostgresLeagueRepository(db *sql.DB) LeagueRepository {
	return &postgresLeagueRepository{db: db}
}

// Участники турнира собираются одним запросом через array_agg.
const leagueSelect = `
	SELECT l.id, l.season_id, l.title, l.priority, l.is_cup,
	       COALESCE(array_agg(lt.team_id ORDER BY lt.team_id) FILTER (WHERE lt.team_id IS NOT NULL), '{}')
	FROM leagues l
	LEFT JOIN league_teams lt ON lt.league_id = l.id`

func scanLeague(row interface{ Scan(...interface{}) error }) (*models.League, error) {
	l := &models.League{}
	var teamIDs pq.Int64Array
	if err := row.Scan(&l.ID, &l.SeasonID, &l.Title, &l.Priority, &l.IsCup, &teamIDs); err != nil {
		return nil, err
	}
	l.TeamIDs = toInts(teamIDs)
	return l, nil
}

func (r *postgresLeagueRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.League, error) {
	query := leagueSelect + ` WHERE l.id = $1 GROUP BY l.id`
	league, err := scanLeague(getExecutor(r.db, exec).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to get league by id %d: %w", id, err)
	}
	return league, nil
}

func (r *postgresLeagueRepository) List(ctx context.Context, exec SQLExecutor) ([]*models.League, error) {
	query := leagueSelect + ` GROUP BY l.id ORDER BY l.id`
	return r.list(ctx, exec, query)
}

func (r *postgresLeagueRepository) ListBySeason(ctx context.Context, exec SQLExecutor, seasonID int) ([]*models.League, error) {
	query := leagueSelect + ` WHERE l.season_id = $1 GROUP BY l.id ORDER BY l.priority, l.id`
	return r.list(ctx, exec, query, seasonID)
}

func (r *postgresLeagueRepository) list(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]*models.League, error) {
	rows, err := getExecutor(r.db, exec).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leagues: %w", err)
	}
	defer rows.Close()

	leagues := make([]*models.League, 0)
	for rows.Next() {
		league, err := scanLeague(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan league row: %w", err)
		}
		leagues = append(leagues, league)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating league rows: %w", err)
	}
	return leagues, nil
}

func (r *postgresLeagueRepository) ListTours(ctx context.Context, exec SQLExecutor, leagueID int) ([]*models.TourNumber, error) {
	query := `
		SELECT id, league_id, number, date_from, date_to
		FROM tour_numbers
		WHERE league_id = $1
		ORDER BY number`

	rows, err := getExecutor(r.db, exec).QueryContext(ctx, query, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tours for league %d: %w", leagueID, err)
	}
	defer rows.Close()

	tours := make([]*models.TourNumber, 0)
	for rows.Next() {
		t := &models.TourNumber{}
		if err := rows.Scan(&t.ID, &t.LeagueID, &t.Number, &t.DateFrom, &t.DateTo); err != nil {
			return nil, fmt.Errorf("failed to scan tour row: %w", err)
		}
		tours = append(tours, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tour rows: %w", err)
	}
	return tours, nil
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/fng3r/cis-haxball/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	// GetForUpdate блокирует строку матча до конца транзакции exec.
	GetForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	List(ctx context.Context, exec SQLExecutor) ([]*models.Match, error)
	ListByLeague(ctx context.Context, exec SQLExecutor, leagueID int) ([]*models.Match, error)
	ListBySeason(ctx context.Context, exec SQLExecutor, seasonID int) ([]*models.Match, error)
	CountByLeague(ctx context.Context, exec SQLExecutor, leagueID int) (int, error)
	CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	UpdateScore(ctx context.Context, exec SQLExecutor, match *models.Match) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchSelect = `
	SELECT m.id, m.league_id, m.tour_number, m.team_home_id, m.team_guest_id,
	       m.score_home, m.score_guest, m.is_played, m.match_date,
	       m.home_starters, m.guest_starters,
	       r.value, r.winner_id, r.set_manually
	FROM matches m
	LEFT JOIN match_results r ON r.match_id = m.id`

func scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	m := &models.Match{}
	var (
		homeStarters, guestStarters pq.Int64Array
		resultKind                  sql.NullString
		winnerID                    *int
		setManually                 sql.NullBool
	)
	err := row.Scan(
		&m.ID, &m.LeagueID, &m.TourNumber, &m.TeamHomeID, &m.TeamGuestID,
		&m.ScoreHome, &m.ScoreGuest, &m.IsPlayed, &m.MatchDate,
		&homeStarters, &guestStarters,
		&resultKind, &winnerID, &setManually,
	)
	if err != nil {
		return nil, err
	}
	m.HomeStarters = toInts(homeStarters)
	m.GuestStarters = toInts(guestStarters)
	if resultKind.Valid {
		m.Result = &models.MatchResult{
			Kind:        models.ResultKind(resultKind.String),
			WinnerID:    winnerID,
			SetManually: setManually.Bool,
		}
	}
	return m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	return r.get(ctx, exec, matchSelect+` WHERE m.id = $1`, id)
}

func (r *postgresMatchRepository) GetForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	return r.get(ctx, exec, matchSelect+` WHERE m.id = $1 FOR UPDATE OF m`, id)
}

func (r *postgresMatchRepository) get(ctx context.Context, exec SQLExecutor, query string, id int) (*models.Match, error) {
	match, err := scanMatch(getExecutor(r.db, exec).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match by id %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, exec SQLExecutor) ([]*models.Match, error) {
	return r.list(ctx, exec, matchSelect+` ORDER BY m.id`)
}

func (r *postgresMatchRepository) ListByLeague(ctx context.Context, exec SQLExecutor, leagueID int) ([]*models.Match, error) {
	return r.list(ctx, exec, matchSelect+` WHERE m.league_id = $1 ORDER BY m.tour_number, m.id`, leagueID)
}

func (r *postgresMatchRepository) ListBySeason(ctx context.Context, exec SQLExecutor, seasonID int) ([]*models.Match, error) {
	query := matchSelect + `
	JOIN leagues l ON l.id = m.league_id
	WHERE l.season_id = $1
	ORDER BY m.id`
	return r.list(ctx, exec, query, seasonID)
}

func (r *postgresMatchRepository) list(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := getExecutor(r.db, exec).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match rows: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) CountByLeague(ctx context.Context, exec SQLExecutor, leagueID int) (int, error) {
	var count int
	err := getExecutor(r.db, exec).QueryRowContext(ctx, `SELECT COUNT(*) FROM matches WHERE league_id = $1`, leagueID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count matches of league %d: %w", leagueID, err)
	}
	return count, nil
}

func (r *postgresMatchRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	executor := getExecutor(r.db, exec)
	query := `
		INSERT INTO matches
			(league_id, tour_number, team_home_id, team_guest_id, score_home, score_guest,
			 is_played, match_date, home_starters, guest_starters)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	for _, m := range matches {
		err := executor.QueryRowContext(ctx, query,
			m.LeagueID,
			m.TourNumber,
			m.TeamHomeID,
			m.TeamGuestID,
			m.ScoreHome,
			m.ScoreGuest,
			m.IsPlayed,
			m.MatchDate,
			toInt64s(m.HomeStarters),
			toInt64s(m.GuestStarters),
		).Scan(&m.ID)
		if err != nil {
			return fmt.Errorf("failed to insert match (tour %d, %d vs %d): %w",
				m.TourNumber, m.TeamHomeID, m.TeamGuestID, handleWriteError(err, nil))
		}
	}
	return nil
}

// UpdateScore сохраняет счёт и результат матча. Результат без значения удаляется.
func (r *postgresMatchRepository) UpdateScore(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	executor := getExecutor(r.db, exec)

	result, err := executor.ExecContext(ctx,
		`UPDATE matches SET score_home = $1, score_guest = $2 WHERE id = $3`,
		match.ScoreHome, match.ScoreGuest, match.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update score of match %d: %w", match.ID, err)
	}
	if err := checkAffectedRows(result, ErrMatchNotFound); err != nil {
		return err
	}

	if match.Result == nil {
		if _, err := executor.ExecContext(ctx, `DELETE FROM match_results WHERE match_id = $1`, match.ID); err != nil {
			return fmt.Errorf("failed to clear result of match %d: %w", match.ID, err)
		}
		return nil
	}

	query := `
		INSERT INTO match_results (match_id, value, winner_id, set_manually)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (match_id) DO UPDATE
		SET value = EXCLUDED.value, winner_id = EXCLUDED.winner_id, set_manually = EXCLUDED.set_manually`
	_, err = executor.ExecContext(ctx, query,
		match.ID, match.Result.Kind, match.Result.WinnerID, match.Result.SetManually,
	)
	if err != nil {
		return fmt.Errorf("failed to save result of match %d: %w", match.ID, handleWriteError(err, nil))
	}
	return nil
}

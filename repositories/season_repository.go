package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fng3r/cis-haxball/models"
)

var ErrSeasonNotFound = errors.New("season not found")

type SeasonRepository interface {
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Season, error)
	GetActive(ctx context.Context, exec SQLExecutor) (*models.Season, error)
	List(ctx context.Context, exec SQLExecutor) ([]*models.Season, error)
}

type postgresSeasonRepository struct {
	db *sql.DB
}

func NewPostgresSeasonRepository(db *sql.DB) SeasonRepository {
	return &postgresSeasonRepository{db: db}
}

const seasonColumns = `id, number, title, is_active, bound_season_id, created_at`

func scanSeason(row interface{ Scan(...interface{}) error }) (*models.Season, error) {
	s := &models.Season{}
	err := row.Scan(&s.ID, &s.Number, &s.Title, &s.IsActive, &s.BoundSeasonID, &s.CreatedAt)
	return s, err
}

func (r *postgresSeasonRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Season, error) {
	query := `SELECT ` + seasonColumns + ` FROM seasons WHERE id = $1`
	season, err := scanSeason(getExecutor(r.db, exec).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("failed to get season by id %d: %w", id, err)
	}
	return season, nil
}

// GetActive возвращает текущий сезон. Если активных несколько, берётся последний по номеру.
func (r *postgresSeasonRepository) GetActive(ctx context.Context, exec SQLExecutor) (*models.Season, error) {
	query := `SELECT ` + seasonColumns + ` FROM seasons WHERE is_active ORDER BY number DESC LIMIT 1`
	season, err := scanSeason(getExecutor(r.db, exec).QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("failed to get active season: %w", err)
	}
	return season, nil
}

func (r *postgresSeasonRepository) List(ctx context.Context, exec SQLExecutor) ([]*models.Season, error) {
	query := `SELECT ` + seasonColumns + ` FROM seasons ORDER BY number`
	rows, err := getExecutor(r.db, exec).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query seasons: %w", err)
	}
	defer rows.Close()

	seasons := make([]*models.Season, 0)
	for rows.Next() {
		season, err := scanSeason(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan season row: %w", err)
		}
		seasons = append(seasons, season)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating season rows: %w", err)
	}
	return seasons, nil
}

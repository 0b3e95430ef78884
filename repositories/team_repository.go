package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fng3r/cis-haxball/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error)
	List(ctx context.Context, exec SQLExecutor) ([]*models.Team, error)
	ListByIDs(ctx context.Context, exec SQLExecutor, ids []int) ([]*models.Team, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error) {
	query := `SELECT id, title, short_title, owner_id FROM teams WHERE id = $1`

	team := &models.Team{}
	err := getExecutor(r.db, exec).QueryRowContext(ctx, query, id).Scan(
		&team.ID, &team.Title, &team.ShortTitle, &team.OwnerID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team by id %d: %w", id, err)
	}
	return team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context, exec SQLExecutor) ([]*models.Team, error) {
	query := `SELECT id, title, short_title, owner_id FROM teams ORDER BY id`
	return r.query(ctx, exec, query)
}

func (r *postgresTeamRepository) ListByIDs(ctx context.Context, exec SQLExecutor, ids []int) ([]*models.Team, error) {
	if len(ids) == 0 {
		return []*models.Team{}, nil
	}
	query := `SELECT id, title, short_title, owner_id FROM teams WHERE id = ANY($1) ORDER BY id`
	return r.query(ctx, exec, query, toInt64s(ids))
}

func (r *postgresTeamRepository) query(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]*models.Team, error) {
	rows, err := getExecutor(r.db, exec).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		team := &models.Team{}
		if err := rows.Scan(&team.ID, &team.Title, &team.ShortTitle, &team.OwnerID); err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team rows: %w", err)
	}
	return teams, nil
}

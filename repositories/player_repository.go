package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fng3r/cis-haxball/models"
)

var ErrPlayerNotFound = errors.New("player not found")

type PlayerRepository interface {
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error) {
	query := `SELECT id, nickname, team_id, nationality, role FROM players WHERE id = $1`

	player := &models.Player{}
	err := getExecutor(r.db, exec).QueryRowContext(ctx, query, id).Scan(
		&player.ID, &player.Nickname, &player.TeamID, &player.Nationality, &player.Role,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player by id %d: %w", id, err)
	}
	return player, nil
}

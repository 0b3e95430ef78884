package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fng3r/cis-haxball/models"
)

var (
	ErrRatingVersionNotFound = errors.New("rating version not found")
	ErrRatingVersionConflict = errors.New("rating version number already exists")
)

type RatingRepository interface {
	ListSeasonRatings(ctx context.Context, exec SQLExecutor) (map[int][]*models.SeasonTeamRating, error)
	// SaveSeasonPoints перезаписывает points_for_matches; points_for_result не трогается.
	// Команды без матчей в сезоне передаются с нулём, иначе их строка сохранит старые очки.
	SaveSeasonPoints(ctx context.Context, exec SQLExecutor, seasonID int, points map[int]decimal.Decimal) error

	NextVersionNumber(ctx context.Context, exec SQLExecutor) (int, error)
	CreateVersion(ctx context.Context, exec SQLExecutor, version *models.RatingVersion) error
	GetLatestVersion(ctx context.Context, exec SQLExecutor) (*models.RatingVersion, error)
	GetVersionByNumber(ctx context.Context, exec SQLExecutor, number int) (*models.RatingVersion, error)
}

type postgresRatingRepository struct {
	db *sql.DB
}

func NewPostgresRatingRepository(db *sql.DB) RatingRepository {
	return &postgresRatingRepository{db: db}
}

func (r *postgresRatingRepository) ListSeasonRatings(ctx context.Context, exec SQLExecutor) (map[int][]*models.SeasonTeamRating, error) {
	query := `
		SELECT id, season_id, team_id, points_for_matches, points_for_result
		FROM season_team_ratings
		ORDER BY season_id, team_id`

	rows, err := getExecutor(r.db, exec).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query season ratings: %w", err)
	}
	defer rows.Close()

	bySeason := make(map[int][]*models.SeasonTeamRating)
	for rows.Next() {
		sr := &models.SeasonTeamRating{}
		if err := rows.Scan(&sr.ID, &sr.SeasonID, &sr.TeamID, &sr.PointsForMatches, &sr.PointsForResult); err != nil {
			return nil, fmt.Errorf("failed to scan season rating row: %w", err)
		}
		bySeason[sr.SeasonID] = append(bySeason[sr.SeasonID], sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating season rating rows: %w", err)
	}
	return bySeason, nil
}

func (r *postgresRatingRepository) SaveSeasonPoints(ctx context.Context, exec SQLExecutor, seasonID int, points map[int]decimal.Decimal) error {
	executor := getExecutor(r.db, exec)
	query := `
		INSERT INTO season_team_ratings (season_id, team_id, points_for_matches)
		VALUES ($1, $2, $3)
		ON CONFLICT (season_id, team_id) DO UPDATE
		SET points_for_matches = EXCLUDED.points_for_matches`

	for teamID, value := range points {
		if _, err := executor.ExecContext(ctx, query, seasonID, teamID, value); err != nil {
			return fmt.Errorf("failed to save season %d points of team %d: %w", seasonID, teamID, handleWriteError(err, nil))
		}
	}
	return nil
}

func (r *postgresRatingRepository) NextVersionNumber(ctx context.Context, exec SQLExecutor) (int, error) {
	var next int
	err := getExecutor(r.db, exec).QueryRowContext(ctx, `SELECT COALESCE(MAX(number), 0) + 1 FROM rating_versions`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to get next rating version number: %w", err)
	}
	return next, nil
}

func (r *postgresRatingRepository) CreateVersion(ctx context.Context, exec SQLExecutor, version *models.RatingVersion) error {
	executor := getExecutor(r.db, exec)

	err := executor.QueryRowContext(ctx,
		`INSERT INTO rating_versions (number, date, related_season_id) VALUES ($1, $2, $3) RETURNING id`,
		version.Number, version.Date, version.RelatedSeasonID,
	).Scan(&version.ID)
	if err != nil {
		return fmt.Errorf("failed to create rating version %d: %w", version.Number, handleWriteError(err, ErrRatingVersionConflict))
	}

	query := `
		INSERT INTO team_ratings (version_id, rank, team_id, total_points)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	for i := range version.Ratings {
		tr := &version.Ratings[i]
		tr.VersionID = version.ID
		if err := executor.QueryRowContext(ctx, query, tr.VersionID, tr.Rank, tr.TeamID, tr.TotalPoints).Scan(&tr.ID); err != nil {
			return fmt.Errorf("failed to create team rating (version %d, team %d): %w", version.Number, tr.TeamID, handleWriteError(err, nil))
		}
	}
	return nil
}

func (r *postgresRatingRepository) GetLatestVersion(ctx context.Context, exec SQLExecutor) (*models.RatingVersion, error) {
	query := `SELECT id, number, date, related_season_id FROM rating_versions ORDER BY number DESC LIMIT 1`
	return r.getVersion(ctx, exec, query)
}

func (r *postgresRatingRepository) GetVersionByNumber(ctx context.Context, exec SQLExecutor, number int) (*models.RatingVersion, error) {
	query := `SELECT id, number, date, related_season_id FROM rating_versions WHERE number = $1`
	return r.getVersion(ctx, exec, query, number)
}

func (r *postgresRatingRepository) getVersion(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) (*models.RatingVersion, error) {
	executor := getExecutor(r.db, exec)

	v := &models.RatingVersion{}
	err := executor.QueryRowContext(ctx, query, args...).Scan(&v.ID, &v.Number, &v.Date, &v.RelatedSeasonID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRatingVersionNotFound
		}
		return nil, fmt.Errorf("failed to get rating version: %w", err)
	}

	rows, err := executor.QueryContext(ctx, `
		SELECT tr.id, tr.version_id, tr.rank, tr.team_id, tr.total_points,
		       t.title, t.short_title, t.owner_id
		FROM team_ratings tr
		JOIN teams t ON t.id = tr.team_id
		WHERE tr.version_id = $1
		ORDER BY tr.rank`, v.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query team ratings of version %d: %w", v.Number, err)
	}
	defer rows.Close()

	v.Ratings = make([]models.TeamRating, 0)
	for rows.Next() {
		tr := models.TeamRating{Team: &models.Team{}}
		if err := rows.Scan(&tr.ID, &tr.VersionID, &tr.Rank, &tr.TeamID, &tr.TotalPoints,
			&tr.Team.Title, &tr.Team.ShortTitle, &tr.Team.OwnerID); err != nil {
			return nil, fmt.Errorf("failed to scan team rating row: %w", err)
		}
		tr.Team.ID = tr.TeamID
		v.Ratings = append(v.Ratings, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team rating rows: %w", err)
	}
	return v, nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/fng3r/cis-haxball/events"
	"github.com/fng3r/cis-haxball/models"
	"github.com/fng3r/cis-haxball/rating"
	"github.com/fng3r/cis-haxball/repositories"
	"github.com/fng3r/cis-haxball/storage"
)

// RatingExporter сохраняет копию опубликованной версии рейтинга вне базы.
type RatingExporter interface {
	Export(ctx context.Context, version *models.RatingVersion) (*storage.UploadResult, error)
}

type SeasonPointsComputed struct {
	SeasonID int `json:"season_id"`
	Teams    int `json:"teams"`
}

type RatingVersionCreated struct {
	VersionID       int    `json:"version_id"`
	Number          int    `json:"number"`
	RelatedSeasonID int    `json:"related_season_id"`
	Teams           int    `json:"teams"`
	SnapshotURL     string `json:"snapshot_url,omitempty"`
}

type RatingService interface {
	RecomputeSeasonPoints(ctx context.Context, seasonID int) (map[int]decimal.Decimal, error)
	PublishRating(ctx context.Context, sourceSeasonID int) (*models.RatingVersion, error)
	GetLatest(ctx context.Context) (*models.RatingVersion, error)
	GetByNumber(ctx context.Context, number int) (*models.RatingVersion, error)
}

type ratingService struct {
	tx         Transactor
	seasonRepo repositories.SeasonRepository
	leagueRepo repositories.LeagueRepository
	matchRepo  repositories.MatchRepository
	ratingRepo repositories.RatingRepository
	weights    *rating.Weights
	exporter   RatingExporter
	publisher  events.Publisher
	clock      clockwork.Clock
	logger     *slog.Logger
}

func NewRatingService(
	tx Transactor,
	seasonRepo repositories.SeasonRepository,
	leagueRepo repositories.LeagueRepository,
	matchRepo repositories.MatchRepository,
	ratingRepo repositories.RatingRepository,
	weights *rating.Weights,
	exporter RatingExporter,
	publisher events.Publisher,
	clock clockwork.Clock,
	logger *slog.Logger,
) RatingService {
	return &ratingService{
		tx:         tx,
		seasonRepo: seasonRepo,
		leagueRepo: leagueRepo,
		matchRepo:  matchRepo,
		ratingRepo: ratingRepo,
		weights:    weights,
		exporter:   exporter,
		publisher:  publisher,
		clock:      clock,
		logger:     logger,
	}
}

// RecomputeSeasonPoints пересчитывает очки за матчи сезона. Неизвестный вес турнира
// прерывает расчёт до записи.
func (s *ratingService) RecomputeSeasonPoints(ctx context.Context, seasonID int) (map[int]decimal.Decimal, error) {
	var points map[int]decimal.Decimal
	err := s.tx.WithinTx(ctx, &sqlRepeatableRead, func(exec repositories.SQLExecutor) error {
		if _, err := s.seasonRepo.GetByID(ctx, exec, seasonID); err != nil {
			return err
		}
		leagues, err := s.leagueRepo.ListBySeason(ctx, exec, seasonID)
		if err != nil {
			return err
		}
		matches, err := s.matchRepo.ListBySeason(ctx, exec, seasonID)
		if err != nil {
			return err
		}
		points, err = rating.SeasonPoints(s.weights, leagues, matches)
		if err != nil {
			return err
		}
		existing, err := s.ratingRepo.ListSeasonRatings(ctx, exec)
		if err != nil {
			return err
		}
		return s.ratingRepo.SaveSeasonPoints(ctx, exec, seasonID, withStaleZeroed(points, existing[seasonID]))
	})
	if err != nil {
		return nil, mapDomainError(fmt.Errorf("failed to compute points of season %d: %w", seasonID, err))
	}

	s.logger.InfoContext(ctx, "season points computed", slog.Int("season_id", seasonID), slog.Int("teams", len(points)))
	if err := s.publisher.Publish(ctx, events.TypeSeasonPointsComputed, SeasonPointsComputed{SeasonID: seasonID, Teams: len(points)}); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish season points event", slog.Int("season_id", seasonID), slog.Any("error", err))
	}
	return points, nil
}

// withStaleZeroed дополняет очки нулями для команд, у которых уже есть строка сезона,
// но матчей в нём больше нет (например, команду убрали из лиги).
func withStaleZeroed(points map[int]decimal.Decimal, existing []*models.SeasonTeamRating) map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal, len(points)+len(existing))
	for teamID, p := range points {
		out[teamID] = p
	}
	for _, r := range existing {
		if _, ok := out[r.TeamID]; !ok {
			out[r.TeamID] = decimal.Zero
		}
	}
	return out
}

// PublishRating создаёт новую версию рейтинга. Версия и её строки становятся видны вместе;
// выгрузка копии и событие идут после коммита и на сохранённую версию не влияют.
func (s *ratingService) PublishRating(ctx context.Context, sourceSeasonID int) (*models.RatingVersion, error) {
	var version *models.RatingVersion
	err := s.tx.WithinTx(ctx, &sqlRepeatableRead, func(exec repositories.SQLExecutor) error {
		source, err := s.seasonRepo.GetByID(ctx, exec, sourceSeasonID)
		if err != nil {
			return err
		}
		seasons, err := s.seasonRepo.List(ctx, exec)
		if err != nil {
			return err
		}
		bySeason, err := s.ratingRepo.ListSeasonRatings(ctx, exec)
		if err != nil {
			return err
		}
		ranked, err := rating.Composite(source, seasons, bySeason)
		if err != nil {
			return err
		}
		number, err := s.ratingRepo.NextVersionNumber(ctx, exec)
		if err != nil {
			return err
		}

		version = &models.RatingVersion{
			Number:          number,
			Date:            s.clock.Now().UTC(),
			RelatedSeasonID: source.ID,
			Ratings:         ranked,
		}
		return s.ratingRepo.CreateVersion(ctx, exec, version)
	})
	if err != nil {
		return nil, mapDomainError(fmt.Errorf("failed to publish rating from season %d: %w", sourceSeasonID, err))
	}

	s.logger.InfoContext(ctx, "rating version created",
		slog.Int("number", version.Number),
		slog.Int("related_season_id", version.RelatedSeasonID),
		slog.Int("teams", len(version.Ratings)),
	)

	payload := RatingVersionCreated{
		VersionID:       version.ID,
		Number:          version.Number,
		RelatedSeasonID: version.RelatedSeasonID,
		Teams:           len(version.Ratings),
	}
	if s.exporter != nil {
		uploaded, err := s.exporter.Export(ctx, version)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to export rating snapshot", slog.Int("number", version.Number), slog.Any("error", err))
		} else {
			payload.SnapshotURL = uploaded.Location
		}
	}
	if err := s.publisher.Publish(ctx, events.TypeRatingVersionCreated, payload); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish rating event", slog.Int("number", version.Number), slog.Any("error", err))
	}
	return version, nil
}

func (s *ratingService) GetLatest(ctx context.Context) (*models.RatingVersion, error) {
	v, err := s.ratingRepo.GetLatestVersion(ctx, nil)
	if err != nil {
		return nil, mapDomainError(err)
	}
	return v, nil
}

func (s *ratingService) GetByNumber(ctx context.Context, number int) (*models.RatingVersion, error) {
	v, err := s.ratingRepo.GetVersionByNumber(ctx, nil, number)
	if err != nil {
		return nil, mapDomainError(err)
	}
	return v, nil
}

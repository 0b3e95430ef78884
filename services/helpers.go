package services

import (
	"errors"
	"fmt"

	"github.com/fng3r/cis-haxball/models"
	"github.com/fng3r/cis-haxball/rating"
	"github.com/fng3r/cis-haxball/repositories"
	"github.com/fng3r/cis-haxball/schedule"
)

// mapDomainError приводит ошибки репозиториев и движков к ошибкам сервисного слоя.
// Исходная ошибка сохраняется в цепочке, чтобы её можно было залогировать целиком.
func mapDomainError(err error) error {
	if err == nil {
		return nil
	}
	var target error
	switch {
	case errors.Is(err, repositories.ErrLeagueNotFound):
		target = ErrLeagueNotFound
	case errors.Is(err, repositories.ErrSeasonNotFound), errors.Is(err, rating.ErrSeasonNotFound):
		target = ErrSeasonNotFound
	case errors.Is(err, repositories.ErrTeamNotFound):
		target = ErrTeamNotFound
	case errors.Is(err, repositories.ErrPlayerNotFound):
		target = ErrPlayerNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		target = ErrMatchNotFound
	case errors.Is(err, repositories.ErrGoalNotFound):
		target = ErrGoalNotFound
	case errors.Is(err, repositories.ErrEventNotFound):
		target = ErrEventNotFound
	case errors.Is(err, repositories.ErrRatingVersionNotFound):
		target = ErrRatingVersionNotFound
	case errors.Is(err, repositories.ErrRatingVersionConflict):
		target = ErrRatingVersionConflict
	case errors.Is(err, repositories.ErrReferenceInvalid):
		target = ErrValidationFailed
	case errors.Is(err, models.ErrTeamNotInMatch):
		target = ErrTeamNotInMatch
	case errors.Is(err, models.ErrScoreUnderflow), errors.Is(err, models.ErrUnknownEventKind):
		target = ErrValidationFailed
	case errors.Is(err, schedule.ErrConfiguration),
		errors.Is(err, rating.ErrUnknownLeagueWeight),
		errors.Is(err, rating.ErrInvalidSourceSeason):
		target = ErrConfiguration
	case errors.Is(err, schedule.ErrNotEnoughTeams), errors.Is(err, schedule.ErrDuplicateTeam):
		target = ErrValidationFailed
	case errors.Is(err, rating.ErrBoundSeasonCycle):
		target = ErrDataIntegrity
	default:
		return err
	}
	if errors.Is(err, target) {
		return err
	}
	return fmt.Errorf("%w: %w", target, err)
}

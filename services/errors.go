package services

import (
	"errors"
	"fmt"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная), все Err*NotFound оборачивают её
	ErrNotFound = errors.New("not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed = errors.New("validation failed")
	ErrTeamNotInMatch   = errors.New("team does not take part in the match")

	// Ошибки конфликтов
	ErrScheduleExists        = errors.New("league already has a schedule")
	ErrRatingVersionConflict = errors.New("rating version was published concurrently")

	// Ошибки конфигурации: неверные правила весов, отсутствующие даты туров
	ErrConfiguration = errors.New("league configuration error")

	// Нарушение целостности данных
	ErrDataIntegrity = errors.New("data integrity violation")

	// Ошибки, специфичные для сущностей (дают больше контекста, чем ErrNotFound)
	ErrLeagueNotFound        = fmt.Errorf("league %w", ErrNotFound)
	ErrSeasonNotFound        = fmt.Errorf("season %w", ErrNotFound)
	ErrTeamNotFound          = fmt.Errorf("team %w", ErrNotFound)
	ErrPlayerNotFound        = fmt.Errorf("player %w", ErrNotFound)
	ErrMatchNotFound         = fmt.Errorf("match %w", ErrNotFound)
	ErrGoalNotFound          = fmt.Errorf("goal %w", ErrNotFound)
	ErrEventNotFound         = fmt.Errorf("match event %w", ErrNotFound)
	ErrRatingVersionNotFound = fmt.Errorf("rating version %w", ErrNotFound)
)

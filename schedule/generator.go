// Package schedule генерирует календарь матчей лиги.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrConfiguration    = errors.New("schedule configuration error")
	ErrMissingTourDates = fmt.Errorf("%w: tour dates are missing", ErrConfiguration)
	ErrNotEnoughTeams   = errors.New("not enough teams to build a schedule")
	ErrDuplicateTeam    = errors.New("team is listed more than once")
)

type DateRange struct {
	From time.Time `json:"date_from"`
	To   time.Time `json:"date_to"`
}

type GenerateParams struct {
	LeagueID         int
	TeamIDs          []int // Порядок важен: первая команда остаётся на месте при вращении
	HasReturnMatches bool
	TourDates        map[int]DateRange
}

// MatchDraft - матч, который нужно создать в указанном туре.
type MatchDraft struct {
	LeagueID    int `json:"league_id"`
	TourNumber  int `json:"tour_number"`
	TeamHomeID  int `json:"team_home_id"`
	TeamGuestID int `json:"team_guest_id"`
}

type Generator interface {
	GenerateSchedule(ctx context.Context, params GenerateParams) ([]*MatchDraft, error)

	GetName() string
}

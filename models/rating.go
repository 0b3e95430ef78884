package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SeasonTeamRating struct {
	ID               int             `json:"id" db:"id"`
	SeasonID         int             `json:"season_id" db:"season_id"`
	TeamID           int             `json:"team_id" db:"team_id"`
	PointsForMatches decimal.Decimal `json:"points_for_matches" db:"points_for_matches"`
	PointsForResult  decimal.Decimal `json:"points_for_result" db:"points_for_result"` // Бонус за итоговое место, выставляется вручную
}

func (r *SeasonTeamRating) Total() decimal.Decimal {
	return r.PointsForMatches.Add(r.PointsForResult)
}

type RatingVersion struct {
	ID              int          `json:"id" db:"id"`
	Number          int          `json:"number" db:"number"`
	Date            time.Time    `json:"date" db:"date"`
	RelatedSeasonID int          `json:"related_season_id" db:"related_season_id"`
	Ratings         []TeamRating `json:"ratings,omitempty" db:"-"`
}

type TeamRating struct {
	ID          int             `json:"id" db:"id"`
	VersionID   int             `json:"version_id" db:"version_id"`
	Rank        int             `json:"rank" db:"rank"`
	TeamID      int             `json:"team_id" db:"team_id"`
	TotalPoints decimal.Decimal `json:"total_points" db:"total_points"`

	Team *Team `json:"team,omitempty" db:"-"`
}

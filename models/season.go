package models

import "time"

type Season struct {
	ID            int       `json:"id" db:"id"`
	Number        int       `json:"number" db:"number"`
	Title         string    `json:"title" db:"title"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	BoundSeasonID *int      `json:"bound_season_id,omitempty" db:"bound_season_id"` // Связанный сезон (например, второй дивизион того же чемпионата)
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// League - турнир внутри сезона (лига или кубок).
type League struct {
	ID       int    `json:"id" db:"id"`
	SeasonID int    `json:"season_id" db:"season_id"`
	Title    string `json:"title" db:"title"`
	Priority int    `json:"priority" db:"priority"`
	IsCup    bool   `json:"is_cup" db:"is_cup"`
	TeamIDs  []int  `json:"team_ids" db:"-"`
}

func (l *League) HasTeam(teamID int) bool {
	for _, id := range l.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}

type TourNumber struct {
	ID       int       `json:"id" db:"id"`
	LeagueID int       `json:"league_id" db:"league_id"`
	Number   int       `json:"number" db:"number"`
	DateFrom time.Time `json:"date_from" db:"date_from"`
	DateTo   time.Time `json:"date_to" db:"date_to"`
}

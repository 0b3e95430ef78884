package models

// FormEntry - результат одного матча в последней форме команды.
type FormEntry struct {
	MatchID int     `json:"match_id"`
	Tour    int     `json:"tour"`
	Outcome Outcome `json:"outcome"`
}

type TableRow struct {
	TeamID   int         `json:"team_id"`
	Played   int         `json:"played"`
	Wins     int         `json:"wins"`
	Draws    int         `json:"draws"`
	Losses   int         `json:"losses"`
	Scored   int         `json:"scored"`
	Conceded int         `json:"conceded"`
	Diff     int         `json:"diff"`
	Points   int         `json:"points"`
	Last5    []FormEntry `json:"last5"`

	Team *Team `json:"team,omitempty"`
}

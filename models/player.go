package models

type PlayerRole string

const (
	RolePlayer    PlayerRole = "player"
	RoleCaptain   PlayerRole = "captain"
	RoleAssistant PlayerRole = "assistant"
)

type Player struct {
	ID          int        `json:"id" db:"id"`
	Nickname    string     `json:"nickname" db:"nickname"`
	TeamID      *int       `json:"team_id,omitempty" db:"team_id"`
	Nationality string     `json:"nationality,omitempty" db:"nationality"`
	Role        PlayerRole `json:"role" db:"role"`
}

package models

import "errors"

var ErrUnknownEventKind = errors.New("unknown match event kind")

type EventKind string

const (
	EventYellowCard EventKind = "YEL"
	EventRedCard    EventKind = "RED"
	EventCleanSheet EventKind = "CLN"
	EventOwnGoal    EventKind = "OG"
)

func (k EventKind) Valid() bool {
	switch k {
	case EventYellowCard, EventRedCard, EventCleanSheet, EventOwnGoal:
		return true
	}
	return false
}

type Goal struct {
	ID          int  `json:"id" db:"id"`
	MatchID     int  `json:"match_id" db:"match_id"`
	TeamID      int  `json:"team_id" db:"team_id"`
	AuthorID    int  `json:"author_id" db:"author_id"`
	AssistantID *int `json:"assistant_id,omitempty" db:"assistant_id"`
	TimeMin     int  `json:"time_min" db:"time_min"`
	TimeSec     int  `json:"time_sec" db:"time_sec"`
}

// ApplyTo засчитывает (delta = 1) или снимает (delta = -1) гол в счёте матча.
func (g *Goal) ApplyTo(m *Match, delta int) error {
	return m.AdjustScore(g.TeamID, delta)
}

type Substitution struct {
	ID          int `json:"id" db:"id"`
	MatchID     int `json:"match_id" db:"match_id"`
	TeamID      int `json:"team_id" db:"team_id"`
	PlayerInID  int `json:"player_in_id" db:"player_in_id"`
	PlayerOutID int `json:"player_out_id" db:"player_out_id"`
	TimeMin     int `json:"time_min" db:"time_min"`
	TimeSec     int `json:"time_sec" db:"time_sec"`
}

// OtherEvent - карточки, сухие матчи и автоголы.
type OtherEvent struct {
	ID       int       `json:"id" db:"id"`
	MatchID  int       `json:"match_id" db:"match_id"`
	TeamID   int       `json:"team_id" db:"team_id"`
	AuthorID int       `json:"author_id" db:"author_id"`
	Kind     EventKind `json:"kind" db:"event"`
	TimeMin  int       `json:"time_min" db:"time_min"`
	TimeSec  int       `json:"time_sec" db:"time_sec"`
}

// ApplyTo изменяет счёт матча для автогола: очко получает соперник команды автора.
// Остальные события счёт не трогают.
func (e *OtherEvent) ApplyTo(m *Match, delta int) error {
	if e.Kind != EventOwnGoal {
		return nil
	}
	opponent, err := m.OpponentOf(e.TeamID)
	if err != nil {
		return err
	}
	return m.AdjustScore(opponent, delta)
}

// Before сравнивает время голов внутри матча (минута, секунда).
func (g *Goal) Before(other *Goal) bool {
	if g.TimeMin != other.TimeMin {
		return g.TimeMin < other.TimeMin
	}
	return g.TimeSec < other.TimeSec
}

package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrTeamNotInMatch = errors.New("team is not a participant of the match")
	ErrScoreUnderflow = errors.New("match score cannot become negative")
)

type ResultKind string

const (
	ResultHomeWin          ResultKind = "HW"
	ResultAwayWin          ResultKind = "AW"
	ResultDraw             ResultKind = "D"
	ResultHomeTechWin      ResultKind = "HDW" // Техническая победа хозяев
	ResultAwayTechWin      ResultKind = "ADW" // Техническая победа гостей
	ResultMutualTechDefeat ResultKind = "MTD" // Обоюдное техническое поражение
)

func (k ResultKind) Valid() bool {
	switch k {
	case ResultHomeWin, ResultAwayWin, ResultDraw, ResultHomeTechWin, ResultAwayTechWin, ResultMutualTechDefeat:
		return true
	}
	return false
}

type Outcome int

const (
	OutcomeLoss Outcome = -1
	OutcomeDraw Outcome = 0
	OutcomeWin  Outcome = 1
)

type MatchResult struct {
	Kind        ResultKind `json:"kind" db:"value"`
	WinnerID    *int       `json:"winner_id,omitempty" db:"winner_id"`
	SetManually bool       `json:"set_manually" db:"set_manually"`
}

func (r *MatchResult) IsDraw() bool {
	return r.Kind == ResultDraw
}

// IsLoss сообщает, проиграла ли команда матч. Обоюдное ТП - поражение для обеих сторон.
func (r *MatchResult) IsLoss(teamID int) bool {
	if r.IsDraw() {
		return false
	}
	return r.WinnerID == nil || *r.WinnerID != teamID
}

type Match struct {
	ID            int          `json:"id" db:"id"`
	LeagueID      int          `json:"league_id" db:"league_id"`
	TourNumber    int          `json:"tour_number" db:"tour_number"`
	TeamHomeID    int          `json:"team_home_id" db:"team_home_id"`
	TeamGuestID   int          `json:"team_guest_id" db:"team_guest_id"`
	ScoreHome     int          `json:"score_home" db:"score_home"`
	ScoreGuest    int          `json:"score_guest" db:"score_guest"`
	IsPlayed      bool         `json:"is_played" db:"is_played"`
	MatchDate     *time.Time   `json:"match_date,omitempty" db:"match_date"`
	HomeStarters  []int        `json:"home_starters,omitempty" db:"home_starters"`
	GuestStarters []int        `json:"guest_starters,omitempty" db:"guest_starters"`
	Result        *MatchResult `json:"result,omitempty" db:"-"`
}

func (m *Match) HasTeam(teamID int) bool {
	return m.TeamHomeID == teamID || m.TeamGuestID == teamID
}

func (m *Match) ScoredBy(teamID int) (int, error) {
	switch teamID {
	case m.TeamHomeID:
		return m.ScoreHome, nil
	case m.TeamGuestID:
		return m.ScoreGuest, nil
	}
	return 0, m.notInMatch(teamID)
}

func (m *Match) ConcededBy(teamID int) (int, error) {
	switch teamID {
	case m.TeamHomeID:
		return m.ScoreGuest, nil
	case m.TeamGuestID:
		return m.ScoreHome, nil
	}
	return 0, m.notInMatch(teamID)
}

func (m *Match) OpponentOf(teamID int) (int, error) {
	switch teamID {
	case m.TeamHomeID:
		return m.TeamGuestID, nil
	case m.TeamGuestID:
		return m.TeamHomeID, nil
	}
	return 0, m.notInMatch(teamID)
}

// Outcome классифицирует матч для команды по итоговому счёту (без учёта технических результатов).
func (m *Match) Outcome(teamID int) (Outcome, error) {
	scored, err := m.ScoredBy(teamID)
	if err != nil {
		return OutcomeDraw, err
	}
	conceded, _ := m.ConcededBy(teamID)
	switch {
	case scored > conceded:
		return OutcomeWin, nil
	case scored < conceded:
		return OutcomeLoss, nil
	}
	return OutcomeDraw, nil
}

// ResultOutcome классифицирует матч для команды по зафиксированному результату:
// техническая победа - победа, обоюдное ТП - поражение обеим. Без результата - по счёту.
func (m *Match) ResultOutcome(teamID int) (Outcome, error) {
	if !m.HasTeam(teamID) {
		return OutcomeDraw, m.notInMatch(teamID)
	}
	if m.Result == nil {
		return m.Outcome(teamID)
	}
	switch {
	case m.Result.IsDraw():
		return OutcomeDraw, nil
	case m.Result.IsLoss(teamID):
		return OutcomeLoss, nil
	}
	return OutcomeWin, nil
}

// StarterTeam возвращает команду, за которую игрок вышел в стартовом составе.
func (m *Match) StarterTeam(playerID int) (int, bool) {
	for _, id := range m.HomeStarters {
		if id == playerID {
			return m.TeamHomeID, true
		}
	}
	for _, id := range m.GuestStarters {
		if id == playerID {
			return m.TeamGuestID, true
		}
	}
	return 0, false
}

// AdjustScore меняет счёт стороны teamID на delta и пересчитывает результат.
func (m *Match) AdjustScore(teamID, delta int) error {
	switch teamID {
	case m.TeamHomeID:
		if m.ScoreHome+delta < 0 {
			return fmt.Errorf("%w: match %d home side", ErrScoreUnderflow, m.ID)
		}
		m.ScoreHome += delta
	case m.TeamGuestID:
		if m.ScoreGuest+delta < 0 {
			return fmt.Errorf("%w: match %d guest side", ErrScoreUnderflow, m.ID)
		}
		m.ScoreGuest += delta
	default:
		return m.notInMatch(teamID)
	}
	m.RefreshResult()
	return nil
}

// RefreshResult выводит результат из счёта, если он не закреплён вручную, и обновляет победителя.
// Для несыгранных матчей результат не создаётся.
func (m *Match) RefreshResult() {
	if !m.IsPlayed {
		return
	}
	if m.Result == nil {
		m.Result = &MatchResult{}
	}
	if !m.Result.SetManually || !m.Result.Kind.Valid() {
		switch {
		case m.ScoreHome == m.ScoreGuest:
			m.Result.Kind = ResultDraw
		case m.ScoreHome > m.ScoreGuest:
			m.Result.Kind = ResultHomeWin
		default:
			m.Result.Kind = ResultAwayWin
		}
	}

	switch m.Result.Kind {
	case ResultHomeWin, ResultHomeTechWin:
		home := m.TeamHomeID
		m.Result.WinnerID = &home
	case ResultAwayWin, ResultAwayTechWin:
		guest := m.TeamGuestID
		m.Result.WinnerID = &guest
	default:
		m.Result.WinnerID = nil
	}
}

func (m *Match) notInMatch(teamID int) error {
	return fmt.Errorf("%w: team %d, match %d", ErrTeamNotInMatch, teamID, m.ID)
}

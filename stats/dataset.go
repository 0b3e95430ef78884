// Package stats считает статистику игроков и команд по сезонам, турнирам и категориям.
// Все функции работают над заранее загруженным срезом данных и не обращаются к базе.
package stats

import (
	"sort"

	"github.com/fng3r/cis-haxball/models"
)

// Dataset - срез данных, по которому считается статистика.
type Dataset struct {
	Seasons       []*models.Season
	Leagues       []*models.League
	Teams         []*models.Team
	Matches       []*models.Match
	Goals         []*models.Goal
	Substitutions []*models.Substitution
	Events        []*models.OtherEvent
}

// Scope ограничивает статистику одним сезоном. Нулевое значение - за всё время.
type Scope struct {
	SeasonID int `json:"season_id,omitempty"`
}

func AllTime() Scope {
	return Scope{}
}

func SeasonOnly(seasonID int) Scope {
	return Scope{SeasonID: seasonID}
}

func (s Scope) IsAllTime() bool {
	return s.SeasonID == 0
}

type index struct {
	seasons map[int]*models.Season
	leagues map[int]*models.League
	teams   map[int]*models.Team
	matches map[int]*models.Match

	goalsByMatch  map[int][]*models.Goal
	subsByMatch   map[int][]*models.Substitution
	eventsByMatch map[int][]*models.OtherEvent

	// Сыгранные матчи в пределах scope, по возрастанию id.
	played []*models.Match
}

func newIndex(ds *Dataset, scope Scope) *index {
	idx := &index{
		seasons:       make(map[int]*models.Season, len(ds.Seasons)),
		leagues:       make(map[int]*models.League, len(ds.Leagues)),
		teams:         make(map[int]*models.Team, len(ds.Teams)),
		matches:       make(map[int]*models.Match, len(ds.Matches)),
		goalsByMatch:  make(map[int][]*models.Goal),
		subsByMatch:   make(map[int][]*models.Substitution),
		eventsByMatch: make(map[int][]*models.OtherEvent),
	}
	for _, s := range ds.Seasons {
		idx.seasons[s.ID] = s
	}
	for _, l := range ds.Leagues {
		idx.leagues[l.ID] = l
	}
	for _, t := range ds.Teams {
		idx.teams[t.ID] = t
	}

	for _, m := range ds.Matches {
		idx.matches[m.ID] = m
		if !m.IsPlayed || !idx.inScope(m, scope) {
			continue
		}
		idx.played = append(idx.played, m)
	}
	sort.Slice(idx.played, func(i, j int) bool {
		return idx.played[i].ID < idx.played[j].ID
	})

	for _, g := range ds.Goals {
		idx.goalsByMatch[g.MatchID] = append(idx.goalsByMatch[g.MatchID], g)
	}
	for _, s := range ds.Substitutions {
		idx.subsByMatch[s.MatchID] = append(idx.subsByMatch[s.MatchID], s)
	}
	for _, e := range ds.Events {
		idx.eventsByMatch[e.MatchID] = append(idx.eventsByMatch[e.MatchID], e)
	}
	return idx
}

func (idx *index) inScope(m *models.Match, scope Scope) bool {
	if scope.IsAllTime() {
		return true
	}
	league, ok := idx.leagues[m.LeagueID]
	return ok && league.SeasonID == scope.SeasonID
}

func (idx *index) seasonOf(m *models.Match) *models.Season {
	league, ok := idx.leagues[m.LeagueID]
	if !ok {
		return nil
	}
	return idx.seasons[league.SeasonID]
}

// appearanceTeams возвращает команды, за которые игрок провёл матч: старт или выход на замену.
// Замена не считается отдельным матчем, если игрок уже был в стартовом составе.
func (idx *index) appearanceTeams(m *models.Match, playerID int) []int {
	if team, ok := m.StarterTeam(playerID); ok {
		return []int{team}
	}
	teams := make([]int, 0, 1)
	for _, s := range idx.subsByMatch[m.ID] {
		if s.PlayerInID != playerID {
			continue
		}
		duplicate := false
		for _, t := range teams {
			if t == s.TeamID {
				duplicate = true
				break
			}
		}
		if !duplicate {
			teams = append(teams, s.TeamID)
		}
	}
	return teams
}

func perMatch(count, matches int) float64 {
	if matches == 0 {
		return 0
	}
	return float64(count) / float64(matches)
}

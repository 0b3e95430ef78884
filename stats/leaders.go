package stats

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fng3r/cis-haxball/models"
)

var ErrUnknownMetric = errors.New("unknown statistics metric")

type Metric string

const (
	MetricMatches      Metric = "matches"
	MetricGoals        Metric = "goals"
	MetricAssists      Metric = "assists"
	MetricGoalsAssists Metric = "goals_assists"
	MetricCleanSheets  Metric = "clean_sheets"
	MetricYellowCards  Metric = "yellow_cards"
	MetricRedCards     Metric = "red_cards"
)

// MinMatchesForAverages - минимум матчей для попадания в рейтинги "за матч".
const MinMatchesForAverages = 10

func ParseMetric(s string) (Metric, error) {
	switch m := Metric(s); m {
	case MetricMatches, MetricGoals, MetricAssists, MetricGoalsAssists,
		MetricCleanSheets, MetricYellowCards, MetricRedCards:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

func (m Metric) value(b *PlayerBucket) int {
	switch m {
	case MetricMatches:
		return b.Matches
	case MetricGoals:
		return b.Goals
	case MetricAssists:
		return b.Assists
	case MetricGoalsAssists:
		return b.Goals + b.Assists
	case MetricCleanSheets:
		return b.CleanSheets
	case MetricYellowCards:
		return b.YellowCards
	case MetricRedCards:
		return b.RedCards
	}
	return 0
}

type LeaderRow struct {
	PlayerID int     `json:"player_id"`
	Matches  int     `json:"matches"`
	Value    int     `json:"value"`
	PerMatch float64 `json:"per_match"`
}

// LeaderFilter сужает таблицу бомбардиров: по команде (0 - все) и по турнирам (пусто - все).
type LeaderFilter struct {
	TeamID    int
	LeagueIDs []int
}

type LeaderQuery struct {
	Metric   Metric
	PerMatch bool
	Limit    int
}

// Leaders строит топ игроков по метрике. Игроки с нулевым значением не попадают в список;
// для рейтинга "за матч" нужно не меньше MinMatchesForAverages матчей.
// Равные значения упорядочиваются по id игрока.
func Leaders(ds *Dataset, scope Scope, filter LeaderFilter, query LeaderQuery) ([]LeaderRow, error) {
	if _, err := ParseMetric(string(query.Metric)); err != nil {
		return nil, err
	}
	if query.PerMatch && query.Metric == MetricMatches {
		return nil, fmt.Errorf("%w: %q has no per-match form", ErrUnknownMetric, query.Metric)
	}
	return leaders(newIndex(ds, scope), filter, query), nil
}

func leaders(idx *index, filter LeaderFilter, query LeaderQuery) []LeaderRow {
	buckets := playerBuckets(idx, filter)

	rows := make([]LeaderRow, 0, len(buckets))
	for playerID, b := range buckets {
		value := query.Metric.value(b)
		if value <= 0 {
			continue
		}
		if query.PerMatch && b.Matches < MinMatchesForAverages {
			continue
		}
		rows = append(rows, LeaderRow{
			PlayerID: playerID,
			Matches:  b.Matches,
			Value:    value,
			PerMatch: perMatch(value, b.Matches),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if query.PerMatch && rows[i].PerMatch != rows[j].PerMatch {
			return rows[i].PerMatch > rows[j].PerMatch
		}
		if rows[i].Value != rows[j].Value {
			return rows[i].Value > rows[j].Value
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})

	if query.Limit > 0 && len(rows) > query.Limit {
		rows = rows[:query.Limit]
	}
	return rows
}

func playerBuckets(idx *index, filter LeaderFilter) map[int]*PlayerBucket {
	leagues := make(map[int]bool, len(filter.LeagueIDs))
	for _, id := range filter.LeagueIDs {
		leagues[id] = true
	}
	teamOK := func(teamID int) bool {
		return filter.TeamID == 0 || filter.TeamID == teamID
	}

	buckets := make(map[int]*PlayerBucket)
	get := func(playerID int) *PlayerBucket {
		b, ok := buckets[playerID]
		if !ok {
			b = &PlayerBucket{}
			buckets[playerID] = b
		}
		return b
	}

	for _, m := range idx.played {
		if len(leagues) > 0 && !leagues[m.LeagueID] {
			continue
		}

		appeared := make(map[[2]int]bool)
		count := func(team int, players []int) {
			if !teamOK(team) {
				return
			}
			for _, p := range players {
				key := [2]int{p, team}
				if !appeared[key] {
					appeared[key] = true
					get(p).Matches++
				}
			}
		}
		count(m.TeamHomeID, m.HomeStarters)
		count(m.TeamGuestID, m.GuestStarters)
		for _, s := range idx.subsByMatch[m.ID] {
			if _, started := m.StarterTeam(s.PlayerInID); started {
				continue
			}
			count(s.TeamID, []int{s.PlayerInID})
		}

		for _, g := range idx.goalsByMatch[m.ID] {
			if !teamOK(g.TeamID) {
				continue
			}
			get(g.AuthorID).Goals++
			if g.AssistantID != nil {
				get(*g.AssistantID).Assists++
			}
		}
		for _, e := range idx.eventsByMatch[m.ID] {
			if !teamOK(e.TeamID) {
				continue
			}
			switch e.Kind {
			case models.EventCleanSheet:
				get(e.AuthorID).CleanSheets++
			case models.EventYellowCard:
				get(e.AuthorID).YellowCards++
			case models.EventRedCard:
				get(e.AuthorID).RedCards++
			case models.EventOwnGoal:
				get(e.AuthorID).OwnGoals++
			}
		}
	}
	return buckets
}

// teamLeaders - топы игроков внутри команды, как на странице статистики клуба.
func teamLeaders(idx *index, teamID int) map[Metric][]LeaderRow {
	filter := LeaderFilter{TeamID: teamID}
	return map[Metric][]LeaderRow{
		MetricMatches:                    leaders(idx, filter, LeaderQuery{Metric: MetricMatches, Limit: 10}),
		MetricGoals:                      leaders(idx, filter, LeaderQuery{Metric: MetricGoals, Limit: 10}),
		MetricGoals + "_per_match":       leaders(idx, filter, LeaderQuery{Metric: MetricGoals, PerMatch: true, Limit: 10}),
		MetricAssists:                    leaders(idx, filter, LeaderQuery{Metric: MetricAssists, Limit: 10}),
		MetricAssists + "_per_match":     leaders(idx, filter, LeaderQuery{Metric: MetricAssists, PerMatch: true, Limit: 10}),
		MetricCleanSheets:                leaders(idx, filter, LeaderQuery{Metric: MetricCleanSheets, Limit: 5}),
		MetricCleanSheets + "_per_match": leaders(idx, filter, LeaderQuery{Metric: MetricCleanSheets, PerMatch: true, Limit: 5}),
		MetricYellowCards:                leaders(idx, filter, LeaderQuery{Metric: MetricYellowCards, Limit: 5}),
		MetricRedCards:                   leaders(idx, filter, LeaderQuery{Metric: MetricRedCards, Limit: 5}),
	}
}

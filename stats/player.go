package stats

import (
	"sort"

	"github.com/fng3r/cis-haxball/models"
)

type PlayerLeagueStats struct {
	League   *models.League `json:"league"`
	Category string         `json:"category"`
	Stats    PlayerBucket   `json:"stats"`
}

type PlayerTeamStats struct {
	TeamID  int                  `json:"team_id"`
	Team    *models.Team         `json:"team,omitempty"`
	Leagues []*PlayerLeagueStats `json:"leagues"`
	Total   PlayerBucket         `json:"total"`
}

type PlayerSeasonStats struct {
	Season *models.Season     `json:"season"`
	Teams  []*PlayerTeamStats `json:"teams"`
	Total  PlayerBucket       `json:"total"`
}

type PlayerCategoryStats struct {
	Category string       `json:"category"`
	Stats    PlayerBucket `json:"stats"`
}

type PlayerReport struct {
	PlayerID   int                    `json:"player_id"`
	Scope      Scope                  `json:"scope"`
	Seasons    []*PlayerSeasonStats   `json:"seasons"`
	Overall    PlayerBucket           `json:"overall"`
	Categories []*PlayerCategoryStats `json:"categories"`
	Records    PlayerRecords          `json:"records"`
}

type lineKey struct {
	team   int
	league int
}

// PlayerStatistics раскладывает статистику игрока по сезонам, командам и турнирам.
// Строка появляется только если игрок провёл за команду хотя бы один матч в турнире.
func PlayerStatistics(ds *Dataset, playerID int, scope Scope, categorizer *Categorizer) *PlayerReport {
	idx := newIndex(ds, scope)
	lines := make(map[lineKey]*PlayerBucket)
	order := make([]lineKey, 0)

	for _, m := range idx.played {
		for _, team := range idx.appearanceTeams(m, playerID) {
			key := lineKey{team: team, league: m.LeagueID}
			b, ok := lines[key]
			if !ok {
				b = &PlayerBucket{}
				lines[key] = b
				order = append(order, key)
			}
			b.Matches++

			// Итог считается для команды, за которую игрок вышел
			outcome, err := m.ResultOutcome(team)
			if err != nil {
				continue
			}
			switch outcome {
			case models.OutcomeWin:
				b.Wins++
			case models.OutcomeDraw:
				b.Draws++
			default:
				b.Losses++
			}
		}
	}

	for _, m := range idx.played {
		for _, g := range idx.goalsByMatch[m.ID] {
			b, ok := lines[lineKey{team: g.TeamID, league: m.LeagueID}]
			if !ok {
				continue
			}
			if g.AuthorID == playerID {
				b.Goals++
			}
			if g.AssistantID != nil && *g.AssistantID == playerID {
				b.Assists++
			}
		}
		for _, e := range idx.eventsByMatch[m.ID] {
			if e.AuthorID != playerID {
				continue
			}
			b, ok := lines[lineKey{team: e.TeamID, league: m.LeagueID}]
			if !ok {
				continue
			}
			switch e.Kind {
			case models.EventCleanSheet:
				b.CleanSheets++
			case models.EventYellowCard:
				b.YellowCards++
			case models.EventRedCard:
				b.RedCards++
			case models.EventOwnGoal:
				b.OwnGoals++
			}
		}
		for _, s := range idx.subsByMatch[m.ID] {
			b, ok := lines[lineKey{team: s.TeamID, league: m.LeagueID}]
			if !ok {
				continue
			}
			if s.PlayerInID == playerID {
				b.SubsIn++
			}
			if s.PlayerOutID == playerID {
				b.SubsOut++
			}
		}
	}

	report := &PlayerReport{
		PlayerID:   playerID,
		Scope:      scope,
		Seasons:    []*PlayerSeasonStats{},
		Categories: []*PlayerCategoryStats{},
	}
	seasons := make(map[int]*PlayerSeasonStats)
	teams := make(map[[2]int]*PlayerTeamStats)
	categories := make(map[string]*PlayerCategoryStats)

	for _, key := range order {
		b := lines[key]
		b.finish()

		league := idx.leagues[key.league]
		if league == nil {
			continue
		}
		season := idx.seasons[league.SeasonID]
		if season == nil {
			continue
		}

		ss, ok := seasons[season.ID]
		if !ok {
			ss = &PlayerSeasonStats{Season: season}
			seasons[season.ID] = ss
			report.Seasons = append(report.Seasons, ss)
		}
		ts, ok := teams[[2]int{season.ID, key.team}]
		if !ok {
			ts = &PlayerTeamStats{TeamID: key.team, Team: idx.teams[key.team]}
			teams[[2]int{season.ID, key.team}] = ts
			ss.Teams = append(ss.Teams, ts)
		}

		category := categorizer.Classify(league.Title)
		ts.Leagues = append(ts.Leagues, &PlayerLeagueStats{League: league, Category: category, Stats: *b})
		ts.Total.add(b)
		ss.Total.add(b)
		report.Overall.add(b)

		cs, ok := categories[category]
		if !ok {
			cs = &PlayerCategoryStats{Category: category}
			categories[category] = cs
			report.Categories = append(report.Categories, cs)
		}
		cs.Stats.add(b)
	}

	sort.SliceStable(report.Seasons, func(i, j int) bool {
		return report.Seasons[i].Season.Number < report.Seasons[j].Season.Number
	})
	for _, ss := range report.Seasons {
		for _, ts := range ss.Teams {
			sort.SliceStable(ts.Leagues, func(i, j int) bool {
				return ts.Leagues[i].League.ID < ts.Leagues[j].League.ID
			})
		}
	}
	sort.SliceStable(report.Categories, func(i, j int) bool {
		return report.Categories[i].Stats.Matches > report.Categories[j].Stats.Matches
	})

	report.Overall.finish()
	report.Records = playerRecords(idx, playerID)
	return report
}

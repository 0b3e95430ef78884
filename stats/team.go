package stats

import (
	"sort"

	"github.com/fng3r/cis-haxball/models"
)

type TeamLeagueStats struct {
	League   *models.League `json:"league"`
	Category string         `json:"category"`
	Stats    TeamBucket     `json:"stats"`
}

type TeamSeasonStats struct {
	Season  *models.Season     `json:"season"`
	Leagues []*TeamLeagueStats `json:"leagues"`
	Total   TeamBucket         `json:"total"`

	// Только чемпионат (лиги без кубков): очки и очки за матч по нему
	LeagueOnly TeamBucket `json:"league_only"`
}

type TeamCategoryStats struct {
	Category string     `json:"category"`
	Stats    TeamBucket `json:"stats"`
}

type TeamReport struct {
	TeamID     int                    `json:"team_id"`
	Scope      Scope                  `json:"scope"`
	Seasons    []*TeamSeasonStats     `json:"seasons"`
	Overall    TeamBucket             `json:"overall"`
	Categories []*TeamCategoryStats   `json:"categories"`
	Records    TeamRecords            `json:"records"`
	Leaders    map[Metric][]LeaderRow `json:"leaders"`
}

// TeamStatistics раскладывает статистику команды по сезонам и турнирам.
// Победы, ничьи и поражения определяются по результату матча (с учётом технических),
// голы - по записям голов.
func TeamStatistics(ds *Dataset, teamID int, scope Scope, categorizer *Categorizer) *TeamReport {
	idx := newIndex(ds, scope)
	lines := make(map[int]*TeamBucket)
	order := make([]int, 0)

	for _, m := range idx.played {
		if !m.HasTeam(teamID) {
			continue
		}
		b, ok := lines[m.LeagueID]
		if !ok {
			b = &TeamBucket{}
			lines[m.LeagueID] = b
			order = append(order, m.LeagueID)
		}
		b.Matches++

		outcome, err := m.ResultOutcome(teamID)
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

		for _, g := range idx.goalsByMatch[m.ID] {
			if g.TeamID == teamID {
				b.Goals++
				if g.AssistantID != nil {
					b.Assists++
				}
			} else {
				b.Conceded++
			}
		}
		for _, e := range idx.eventsByMatch[m.ID] {
			if e.TeamID != teamID {
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
			if s.TeamID == teamID {
				b.Subs++
			}
		}
	}

	report := &TeamReport{
		TeamID:     teamID,
		Scope:      scope,
		Seasons:    []*TeamSeasonStats{},
		Categories: []*TeamCategoryStats{},
	}
	seasons := make(map[int]*TeamSeasonStats)
	categories := make(map[string]*TeamCategoryStats)

	sort.Ints(order)
	for _, leagueID := range order {
		b := lines[leagueID]
		b.finish()

		league := idx.leagues[leagueID]
		if league == nil {
			continue
		}
		season := idx.seasons[league.SeasonID]
		if season == nil {
			continue
		}

		ss, ok := seasons[season.ID]
		if !ok {
			ss = &TeamSeasonStats{Season: season}
			seasons[season.ID] = ss
			report.Seasons = append(report.Seasons, ss)
		}
		category := categorizer.Classify(league.Title)
		ss.Leagues = append(ss.Leagues, &TeamLeagueStats{League: league, Category: category, Stats: *b})
		ss.Total.add(b)
		if categorizer.IsLeague(league.Title) {
			ss.LeagueOnly.add(b)
		}
		report.Overall.add(b)

		cs, ok := categories[category]
		if !ok {
			cs = &TeamCategoryStats{Category: category}
			categories[category] = cs
			report.Categories = append(report.Categories, cs)
		}
		cs.Stats.add(b)
	}

	sort.SliceStable(report.Seasons, func(i, j int) bool {
		return report.Seasons[i].Season.Number < report.Seasons[j].Season.Number
	})
	sort.SliceStable(report.Categories, func(i, j int) bool {
		return report.Categories[i].Stats.Matches > report.Categories[j].Stats.Matches
	})

	report.Overall.finish()
	report.Records = teamRecords(idx, teamID)
	report.Leaders = teamLeaders(idx, teamID)
	return report
}

package stats

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/fng3r/cis-haxball/models"
)

const (
	team1 = 1
	team2 = 2
	team3 = 3
)

func intPtr(v int) *int { return &v }

func fixture() *Dataset {
	date := time.Date(2020, 1, 1, 20, 0, 0, 0, time.UTC)
	return &Dataset{
		Seasons: []*models.Season{
			{ID: 1, Number: 1, Title: "ЧР 1"},
			{ID: 2, Number: 2, Title: "ЧР 2"},
		},
		Leagues: []*models.League{
			{ID: 10, SeasonID: 1, Title: "Высшая лига"},
			{ID: 11, SeasonID: 1, Title: "Кубок России"},
			{ID: 20, SeasonID: 2, Title: "Первая лига"},
		},
		Teams: []*models.Team{{ID: team1}, {ID: team2}, {ID: team3}},
		Matches: []*models.Match{
			{
				ID: 1, LeagueID: 10, TourNumber: 1, TeamHomeID: team1, TeamGuestID: team2,
				ScoreHome: 2, ScoreGuest: 1, IsPlayed: true, MatchDate: &date,
				HomeStarters: []int{101, 102}, GuestStarters: []int{201, 202},
			},
			{
				ID: 2, LeagueID: 11, TourNumber: 1, TeamHomeID: team2, TeamGuestID: team1,
				IsPlayed: true,
				HomeStarters: []int{201, 202}, GuestStarters: []int{101},
			},
			{
				ID: 3, LeagueID: 20, TourNumber: 1, TeamHomeID: team1, TeamGuestID: team3,
				ScoreHome: 1, IsPlayed: true,
				HomeStarters: []int{101}, GuestStarters: []int{301},
			},
			{ID: 4, LeagueID: 20, TourNumber: 2, TeamHomeID: team3, TeamGuestID: team1},
		},
		Goals: []*models.Goal{
			{ID: 1, MatchID: 1, TeamID: team1, AuthorID: 101, AssistantID: intPtr(102), TimeMin: 1, TimeSec: 10},
			{ID: 2, MatchID: 1, TeamID: team1, AuthorID: 102, TimeMin: 3},
			{ID: 3, MatchID: 1, TeamID: team2, AuthorID: 201, TimeMin: 5},
			{ID: 4, MatchID: 3, TeamID: team1, AuthorID: 101, TimeSec: 30},
		},
		Substitutions: []*models.Substitution{
			{ID: 1, MatchID: 2, TeamID: team1, PlayerInID: 102, PlayerOutID: 101, TimeMin: 4},
			{ID: 2, MatchID: 3, TeamID: team1, PlayerInID: 101, PlayerOutID: 101, TimeMin: 2},
		},
		Events: []*models.OtherEvent{
			{ID: 1, MatchID: 2, TeamID: team1, AuthorID: 101, Kind: models.EventCleanSheet},
			{ID: 2, MatchID: 2, TeamID: team2, AuthorID: 202, Kind: models.EventYellowCard},
		},
	}
}

func TestPlayerStatisticsAllTime(t *testing.T) {
	report := PlayerStatistics(fixture(), 101, AllTime(), DefaultCategorizer())

	if report.Overall.Matches != 3 || report.Overall.Goals != 2 || report.Overall.CleanSheets != 1 {
		t.Fatalf("overall = %+v, want 3 matches, 2 goals, 1 clean sheet", report.Overall)
	}
	if report.Overall.SubsIn != 1 {
		t.Errorf("subs in = %d, want 1", report.Overall.SubsIn)
	}
	if o := report.Overall; o.Wins != 2 || o.Draws != 1 || o.Losses != 0 {
		t.Errorf("overall = %d-%d-%d, want 2-1-0", o.Wins, o.Draws, o.Losses)
	}
	if len(report.Seasons) != 2 {
		t.Fatalf("seasons = %d, want 2", len(report.Seasons))
	}

	first := report.Seasons[0]
	if first.Season.Number != 1 || len(first.Teams) != 1 {
		t.Fatalf("first season = %+v", first)
	}
	leagues := first.Teams[0].Leagues
	if len(leagues) != 2 || leagues[0].League.ID != 10 || leagues[1].League.ID != 11 {
		t.Fatalf("first season leagues = %+v", leagues)
	}
	if leagues[0].Stats.Goals != 1 || leagues[1].Stats.CleanSheets != 1 {
		t.Errorf("league lines = %+v / %+v", leagues[0].Stats, leagues[1].Stats)
	}
	if first.Total.Matches != 2 {
		t.Errorf("first season matches = %d, want 2", first.Total.Matches)
	}

	var categories []string
	for _, c := range report.Categories {
		categories = append(categories, c.Category)
	}
	want := []string{"Высшая лига", "Кубок России", "Первая лига"}
	if !reflect.DeepEqual(categories, want) {
		t.Errorf("categories = %v, want %v", categories, want)
	}
}

func TestPlayerStatisticsSeasonScope(t *testing.T) {
	report := PlayerStatistics(fixture(), 101, SeasonOnly(2), DefaultCategorizer())

	if len(report.Seasons) != 1 || report.Seasons[0].Season.ID != 2 {
		t.Fatalf("seasons = %+v, want only season 2", report.Seasons)
	}
	if report.Overall.Matches != 1 || report.Overall.Goals != 1 {
		t.Errorf("overall = %+v, want 1 match and 1 goal", report.Overall)
	}
	if report.Records.MostGoalsInSeason == nil || report.Records.MostGoalsInSeason.Season.ID != 2 {
		t.Errorf("season record = %+v, want season 2", report.Records.MostGoalsInSeason)
	}
}

func TestSubstituteAppearanceCountsOnce(t *testing.T) {
	report := PlayerStatistics(fixture(), 102, AllTime(), DefaultCategorizer())

	if report.Overall.Matches != 2 {
		t.Errorf("matches = %d, want 2 (start + substitution)", report.Overall.Matches)
	}
	if report.Overall.Goals != 1 || report.Overall.Assists != 1 || report.Overall.GoalsAssists != 2 {
		t.Errorf("overall = %+v", report.Overall)
	}
}

func TestPlayerWithoutMatchesHasZeroAverages(t *testing.T) {
	report := PlayerStatistics(fixture(), 999, AllTime(), DefaultCategorizer())

	if report.Overall.Matches != 0 {
		t.Fatalf("matches = %d, want 0", report.Overall.Matches)
	}
	avg := report.Overall.PerMatch
	for _, v := range []float64{avg.Goals, avg.Assists, avg.CleanSheets, avg.SubsIn} {
		if v != 0 || math.IsNaN(v) {
			t.Fatalf("per match = %+v, want zeros", avg)
		}
	}
	if report.Seasons == nil || len(report.Seasons) != 0 {
		t.Errorf("seasons = %v, want empty slice", report.Seasons)
	}
	if report.Records.FirstMatch != nil || report.Records.MostGoalsInMatch != nil {
		t.Errorf("records = %+v, want empty", report.Records)
	}
}

func TestTeamStatistics(t *testing.T) {
	report := TeamStatistics(fixture(), team1, AllTime(), DefaultCategorizer())

	o := report.Overall
	if o.Matches != 3 || o.Wins != 2 || o.Draws != 1 || o.Losses != 0 {
		t.Fatalf("overall = %+v, want 3 matches 2-1-0", o)
	}
	if o.Points != 7 || o.Goals != 3 || o.Conceded != 1 || o.GoalDiff != 2 {
		t.Errorf("overall = %+v", o)
	}
	if o.Assists != 1 || o.CleanSheets != 1 || o.Subs != 2 || o.YellowCards != 0 {
		t.Errorf("overall = %+v", o)
	}
	if math.Abs(o.WinRate-200.0/3) > 1e-9 {
		t.Errorf("win rate = %v", o.WinRate)
	}
	if len(report.Seasons) != 2 || len(report.Seasons[0].Leagues) != 2 {
		t.Errorf("seasons = %+v", report.Seasons)
	}
}

func TestTeamRecords(t *testing.T) {
	rec := TeamStatistics(fixture(), team1, AllTime(), DefaultCategorizer()).Records

	if rec.FirstMatch == nil || rec.FirstMatch.ID != 1 {
		t.Errorf("first match = %+v, want 1", rec.FirstMatch)
	}
	// Матчи 1 и 3 выиграны с разницей 1; датированный матч раньше.
	if rec.BiggestHomeWin == nil || rec.BiggestHomeWin.Match.ID != 1 || rec.BiggestHomeWin.Value != 1 {
		t.Errorf("biggest home win = %+v", rec.BiggestHomeWin)
	}
	if rec.BiggestGuestWin != nil || rec.BiggestHomeLoss != nil || rec.BiggestGuestLoss != nil {
		t.Errorf("unexpected records: %+v %+v %+v", rec.BiggestGuestWin, rec.BiggestHomeLoss, rec.BiggestGuestLoss)
	}
	if rec.MostEffectiveDraw == nil || rec.MostEffectiveDraw.Match.ID != 2 {
		t.Errorf("most effective draw = %+v", rec.MostEffectiveDraw)
	}
	if rec.MostCards == nil || rec.MostCards.Match.ID != 2 || rec.MostCards.Value != 1 {
		t.Errorf("most cards = %+v", rec.MostCards)
	}
	if rec.FastestGoal == nil || rec.FastestGoal.ID != 4 {
		t.Errorf("fastest goal = %+v, want 4", rec.FastestGoal)
	}
	if rec.LatestGoal == nil || rec.LatestGoal.ID != 2 {
		t.Errorf("latest goal = %+v, want 2", rec.LatestGoal)
	}

	checks := []struct {
		name string
		got  *PlayerCount
		want PlayerCount
	}{
		{"top scorer", rec.TopScorer, PlayerCount{PlayerID: 101, Count: 2}},
		{"top assistant", rec.TopAssistant, PlayerCount{PlayerID: 102, Count: 1}},
		{"top goalkeeper", rec.TopGoalkeeper, PlayerCount{PlayerID: 101, Count: 1}},
		{"most appearances", rec.MostAppearances, PlayerCount{PlayerID: 101, Count: 3}},
		{"most sub ins", rec.MostSubIns, PlayerCount{PlayerID: 101, Count: 1}},
	}
	for _, c := range checks {
		if c.got == nil || *c.got != c.want {
			t.Errorf("%s = %+v, want %+v", c.name, c.got, c.want)
		}
	}
}

func TestPlayerRecords(t *testing.T) {
	rec := PlayerStatistics(fixture(), 101, AllTime(), DefaultCategorizer()).Records

	if rec.FirstMatch == nil || rec.FirstMatch.ID != 1 {
		t.Errorf("first match = %+v", rec.FirstMatch)
	}
	if rec.FastestGoal == nil || rec.FastestGoal.ID != 4 {
		t.Errorf("fastest goal = %+v", rec.FastestGoal)
	}
	if rec.MostGoalsInMatch == nil || rec.MostGoalsInMatch.Match.ID != 1 {
		t.Errorf("most goals in match = %+v", rec.MostGoalsInMatch)
	}
	if rec.MostAssistsInMatch != nil {
		t.Errorf("most assists in match = %+v, want nil", rec.MostAssistsInMatch)
	}
	if rec.MostGoalsInSeason == nil || rec.MostGoalsInSeason.Season.Number != 1 || rec.MostGoalsInSeason.Value != 1 {
		t.Errorf("most goals in season = %+v", rec.MostGoalsInSeason)
	}
	if rec.MostCleanSheetsInSeason == nil || rec.MostCleanSheetsInSeason.Season.ID != 1 {
		t.Errorf("clean sheets season = %+v", rec.MostCleanSheetsInSeason)
	}
}

func leaderIDs(rows []LeaderRow) []int {
	ids := make([]int, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.PlayerID)
	}
	return ids
}

func TestLeaders(t *testing.T) {
	ds := fixture()

	tests := []struct {
		name   string
		filter LeaderFilter
		query  LeaderQuery
		want   []int
	}{
		{"goals", LeaderFilter{}, LeaderQuery{Metric: MetricGoals}, []int{101, 102, 201}},
		{"goals limited", LeaderFilter{}, LeaderQuery{Metric: MetricGoals, Limit: 2}, []int{101, 102}},
		{"goals by team", LeaderFilter{TeamID: team2}, LeaderQuery{Metric: MetricGoals}, []int{201}},
		{"goals by league", LeaderFilter{LeagueIDs: []int{20}}, LeaderQuery{Metric: MetricGoals}, []int{101}},
		{"matches", LeaderFilter{}, LeaderQuery{Metric: MetricMatches}, []int{101, 102, 201, 202, 301}},
		{"per match needs ten games", LeaderFilter{}, LeaderQuery{Metric: MetricGoals, PerMatch: true}, []int{}},
		{"yellow cards", LeaderFilter{}, LeaderQuery{Metric: MetricYellowCards}, []int{202}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Leaders(ds, AllTime(), tt.filter, tt.query)
			if err != nil {
				t.Fatalf("Leaders() error = %v", err)
			}
			if got := leaderIDs(rows); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Leaders() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLeadersRejectsBadMetric(t *testing.T) {
	if _, err := Leaders(fixture(), AllTime(), LeaderFilter{}, LeaderQuery{Metric: "saves"}); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("unknown metric error = %v", err)
	}
	if _, err := Leaders(fixture(), AllTime(), LeaderFilter{}, LeaderQuery{Metric: MetricMatches, PerMatch: true}); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("matches per match error = %v", err)
	}
}

func TestClassify(t *testing.T) {
	c := DefaultCategorizer()
	tests := map[string]string{
		"Высшая лига, сезон 5": "Высшая лига",
		"единая лига":          "Высшая лига",
		"Первая лига":          "Первая лига",
		"Кубок Высшей лиги":    "Кубок лиги",
		"Кубок России 2021":    "Кубок России",
		"  Лига Чемпионов":     "Лига Чемпионов",
		"Товарищеский турнир":  "Unknown",
	}
	for title, want := range tests {
		if got := c.Classify(title); got != want {
			t.Errorf("Classify(%q) = %q, want %q", title, got, want)
		}
	}
}

func TestParseCategorizerRejectsEmptyRules(t *testing.T) {
	for _, data := range []string{"unknown: X\n", "unknown: X\ncategories:\n  - name: A\n", "categories: ["} {
		if _, err := ParseCategorizer([]byte(data)); !errors.Is(err, ErrInvalidCategoryRules) {
			t.Errorf("ParseCategorizer(%q) error = %v", data, err)
		}
	}
}

func TestTechnicalResultsCountByWinner(t *testing.T) {
	ds := fixture()
	// 0:0, но гостям засчитана техническая победа; 1:0 аннулирован обоюдным ТП.
	ds.Matches[1].Result = &models.MatchResult{Kind: models.ResultAwayTechWin, WinnerID: intPtr(team1), SetManually: true}
	ds.Matches[2].Result = &models.MatchResult{Kind: models.ResultMutualTechDefeat, SetManually: true}

	tests := []struct {
		name                string
		team                int
		wins, draws, losses int
	}{
		{"tech winner", team1, 2, 0, 1},
		{"tech loser", team2, 0, 0, 2},
		{"mutual defeat", team3, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := TeamStatistics(ds, tt.team, AllTime(), DefaultCategorizer()).Overall
			if o.Wins != tt.wins || o.Draws != tt.draws || o.Losses != tt.losses {
				t.Errorf("team %d = %d-%d-%d, want %d-%d-%d", tt.team, o.Wins, o.Draws, o.Losses, tt.wins, tt.draws, tt.losses)
			}
		})
	}

	// Игрок получает итог команды, за которую вышел
	p := PlayerStatistics(ds, 101, AllTime(), DefaultCategorizer()).Overall
	if p.Wins != 2 || p.Draws != 0 || p.Losses != 1 {
		t.Errorf("player 101 = %d-%d-%d, want 2-0-1", p.Wins, p.Draws, p.Losses)
	}
	p = PlayerStatistics(ds, 201, AllTime(), DefaultCategorizer()).Overall
	if p.Wins != 0 || p.Losses != 2 {
		t.Errorf("player 201 = %d-%d-%d, want 0-0-2", p.Wins, p.Draws, p.Losses)
	}
}

func TestTeamLeagueOnlyPoints(t *testing.T) {
	report := TeamStatistics(fixture(), team1, AllTime(), DefaultCategorizer())
	if len(report.Seasons) != 2 {
		t.Fatalf("seasons = %d, want 2", len(report.Seasons))
	}

	// Первый сезон: победа в Высшей лиге и ничья в кубке, кубок в лигу не входит
	first := report.Seasons[0]
	if first.Total.Points != 4 || first.Total.Matches != 2 {
		t.Errorf("season 1 total = %+v", first.Total)
	}
	if lo := first.LeagueOnly; lo.Matches != 1 || lo.Points != 3 || lo.PerMatch.Points != 3 {
		t.Errorf("season 1 league only = %+v, want 1 match, 3 points", lo)
	}

	second := report.Seasons[1]
	if lo := second.LeagueOnly; lo.Matches != 1 || lo.Points != 3 {
		t.Errorf("season 2 league only = %+v, want 1 match, 3 points", lo)
	}
}

func TestIsLeague(t *testing.T) {
	c := DefaultCategorizer()
	tests := map[string]bool{
		"Высшая лига":         true,
		"Единая лига":         true,
		"Первая лига B":       true,
		"Вторая лига":         true,
		"Кубок Высшей лиги":   false,
		"Кубок России":        false,
		"Товарищеский турнир": false,
	}
	for title, want := range tests {
		if got := c.IsLeague(title); got != want {
			t.Errorf("IsLeague(%q) = %v, want %v", title, got, want)
		}
	}
}

func TestParseCategorizerRejectsUnknownLeagueCategory(t *testing.T) {
	data := "unknown: X\ncategories:\n  - name: A\n    prefixes: [a]\nleague_categories: [B]\n"
	if _, err := ParseCategorizer([]byte(data)); !errors.Is(err, ErrInvalidCategoryRules) {
		t.Errorf("ParseCategorizer error = %v, want ErrInvalidCategoryRules", err)
	}
}

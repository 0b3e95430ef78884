package stats

import (
	"github.com/fng3r/cis-haxball/models"
)

type MatchRecord struct {
	Match *models.Match `json:"match"`
	Value int           `json:"value"`
}

type SeasonRecord struct {
	Season *models.Season `json:"season"`
	Value  int            `json:"value"`
}

type PlayerCount struct {
	PlayerID int `json:"player_id"`
	Count    int `json:"count"`
}

// TeamRecords - рекорды команды. Отсутствующий рекорд - nil.
type TeamRecords struct {
	FirstMatch        *models.Match `json:"first_match"`
	BiggestHomeWin    *MatchRecord  `json:"biggest_home_win"`
	BiggestGuestWin   *MatchRecord  `json:"biggest_guest_win"`
	BiggestHomeLoss   *MatchRecord  `json:"biggest_home_loss"`
	BiggestGuestLoss  *MatchRecord  `json:"biggest_guest_loss"`
	MostEffectiveDraw *MatchRecord  `json:"most_effective_draw"`
	MostCards         *MatchRecord  `json:"most_cards"`
	FastestGoal       *models.Goal  `json:"fastest_goal"`
	LatestGoal        *models.Goal  `json:"latest_goal"`
	TopScorer         *PlayerCount  `json:"top_scorer"`
	TopAssistant      *PlayerCount  `json:"top_assistant"`
	TopGoalkeeper     *PlayerCount  `json:"top_goalkeeper"`
	MostAppearances   *PlayerCount  `json:"most_appearances"`
	MostSubIns        *PlayerCount  `json:"most_sub_ins"`
}

type PlayerRecords struct {
	FirstMatch               *models.Match `json:"first_match"`
	FastestGoal              *models.Goal  `json:"fastest_goal"`
	LatestGoal               *models.Goal  `json:"latest_goal"`
	MostGoalsInMatch         *MatchRecord  `json:"most_goals_in_match"`
	MostAssistsInMatch       *MatchRecord  `json:"most_assists_in_match"`
	MostGoalsAssistsInMatch  *MatchRecord  `json:"most_goals_assists_in_match"`
	MostGoalsInSeason        *SeasonRecord `json:"most_goals_in_season"`
	MostAssistsInSeason      *SeasonRecord `json:"most_assists_in_season"`
	MostGoalsAssistsInSeason *SeasonRecord `json:"most_goals_assists_in_season"`
	MostCleanSheetsInSeason  *SeasonRecord `json:"most_clean_sheets_in_season"`
}

// playedEarlier: раньше по дате (матчи без даты - позже любых датированных), затем меньший id.
func playedEarlier(a, b *models.Match) bool {
	switch {
	case a.MatchDate != nil && b.MatchDate != nil && !a.MatchDate.Equal(*b.MatchDate):
		return a.MatchDate.Before(*b.MatchDate)
	case a.MatchDate != nil && b.MatchDate == nil:
		return true
	case a.MatchDate == nil && b.MatchDate != nil:
		return false
	}
	return a.ID < b.ID
}

// matchRecord держит максимум значения; при равенстве выигрывает более ранний матч.
type matchRecord struct {
	best *MatchRecord
}

func (r *matchRecord) offer(m *models.Match, value int) {
	if r.best == nil || value > r.best.Value || (value == r.best.Value && playedEarlier(m, r.best.Match)) {
		r.best = &MatchRecord{Match: m, Value: value}
	}
}

type seasonRecord struct {
	best *SeasonRecord
}

func (r *seasonRecord) offer(s *models.Season, value int) {
	if value <= 0 || s == nil {
		return
	}
	if r.best == nil || value > r.best.Value || (value == r.best.Value && s.Number < r.best.Season.Number) {
		r.best = &SeasonRecord{Season: s, Value: value}
	}
}

func topCount(counts map[int]int) *PlayerCount {
	var best *PlayerCount
	for playerID, count := range counts {
		if count <= 0 {
			continue
		}
		if best == nil || count > best.Count || (count == best.Count && playerID < best.PlayerID) {
			best = &PlayerCount{PlayerID: playerID, Count: count}
		}
	}
	return best
}

func earliestMatch(current, candidate *models.Match) *models.Match {
	if candidate.MatchDate == nil {
		return current
	}
	if current == nil || playedEarlier(candidate, current) {
		return candidate
	}
	return current
}

func fasterGoal(current, candidate *models.Goal) *models.Goal {
	if current == nil || candidate.Before(current) || (!current.Before(candidate) && candidate.ID < current.ID) {
		return candidate
	}
	return current
}

func laterGoal(current, candidate *models.Goal) *models.Goal {
	if current == nil || current.Before(candidate) || (!candidate.Before(current) && candidate.ID < current.ID) {
		return candidate
	}
	return current
}

func teamRecords(idx *index, teamID int) TeamRecords {
	var rec TeamRecords
	var homeWin, guestWin, homeLoss, guestLoss, draw, cards matchRecord
	scorers := make(map[int]int)
	assistants := make(map[int]int)
	keepers := make(map[int]int)
	appearances := make(map[int]int)
	subIns := make(map[int]int)

	for _, m := range idx.played {
		if !m.HasTeam(teamID) {
			continue
		}
		rec.FirstMatch = earliestMatch(rec.FirstMatch, m)

		scored, _ := m.ScoredBy(teamID)
		conceded, _ := m.ConcededBy(teamID)
		home := m.TeamHomeID == teamID
		switch {
		case scored > conceded && home:
			homeWin.offer(m, scored-conceded)
		case scored > conceded:
			guestWin.offer(m, scored-conceded)
		case scored < conceded && home:
			homeLoss.offer(m, conceded-scored)
		case scored < conceded:
			guestLoss.offer(m, conceded-scored)
		default:
			draw.offer(m, scored+conceded)
		}

		cardCount := 0
		for _, e := range idx.eventsByMatch[m.ID] {
			if e.Kind == models.EventYellowCard || e.Kind == models.EventRedCard {
				cardCount++
			}
			if e.TeamID == teamID && e.Kind == models.EventCleanSheet {
				keepers[e.AuthorID]++
			}
		}
		if cardCount > 0 {
			cards.offer(m, cardCount)
		}

		for _, g := range idx.goalsByMatch[m.ID] {
			if g.TeamID != teamID {
				continue
			}
			rec.FastestGoal = fasterGoal(rec.FastestGoal, g)
			rec.LatestGoal = laterGoal(rec.LatestGoal, g)
			scorers[g.AuthorID]++
			if g.AssistantID != nil {
				assistants[*g.AssistantID]++
			}
		}

		starters := m.HomeStarters
		if !home {
			starters = m.GuestStarters
		}
		seen := make(map[int]bool, len(starters))
		for _, p := range starters {
			if !seen[p] {
				seen[p] = true
				appearances[p]++
			}
		}
		for _, s := range idx.subsByMatch[m.ID] {
			if s.TeamID != teamID {
				continue
			}
			subIns[s.PlayerInID]++
			if _, started := m.StarterTeam(s.PlayerInID); !started && !seen[s.PlayerInID] {
				seen[s.PlayerInID] = true
				appearances[s.PlayerInID]++
			}
		}
	}

	rec.BiggestHomeWin = homeWin.best
	rec.BiggestGuestWin = guestWin.best
	rec.BiggestHomeLoss = homeLoss.best
	rec.BiggestGuestLoss = guestLoss.best
	rec.MostEffectiveDraw = draw.best
	rec.MostCards = cards.best
	rec.TopScorer = topCount(scorers)
	rec.TopAssistant = topCount(assistants)
	rec.TopGoalkeeper = topCount(keepers)
	rec.MostAppearances = topCount(appearances)
	rec.MostSubIns = topCount(subIns)
	return rec
}

func playerRecords(idx *index, playerID int) PlayerRecords {
	var rec PlayerRecords
	var goalsInMatch, assistsInMatch, actionsInMatch matchRecord
	goalsBySeason := make(map[int]int)
	assistsBySeason := make(map[int]int)
	actionsBySeason := make(map[int]int)
	cleanSheetsBySeason := make(map[int]int)

	for _, m := range idx.played {
		if len(idx.appearanceTeams(m, playerID)) > 0 {
			rec.FirstMatch = earliestMatch(rec.FirstMatch, m)
		}
		season := idx.seasonOf(m)

		goals, assists := 0, 0
		for _, g := range idx.goalsByMatch[m.ID] {
			if g.AuthorID == playerID {
				goals++
				rec.FastestGoal = fasterGoal(rec.FastestGoal, g)
				rec.LatestGoal = laterGoal(rec.LatestGoal, g)
			}
			if g.AssistantID != nil && *g.AssistantID == playerID {
				assists++
			}
		}
		if goals > 0 {
			goalsInMatch.offer(m, goals)
		}
		if assists > 0 {
			assistsInMatch.offer(m, assists)
		}
		if goals+assists > 0 {
			actionsInMatch.offer(m, goals+assists)
		}

		for _, e := range idx.eventsByMatch[m.ID] {
			if e.AuthorID == playerID && e.Kind == models.EventCleanSheet && season != nil {
				cleanSheetsBySeason[season.ID]++
			}
		}
		if season != nil {
			goalsBySeason[season.ID] += goals
			assistsBySeason[season.ID] += assists
			actionsBySeason[season.ID] += goals + assists
		}
	}

	rec.MostGoalsInMatch = goalsInMatch.best
	rec.MostAssistsInMatch = assistsInMatch.best
	rec.MostGoalsAssistsInMatch = actionsInMatch.best
	rec.MostGoalsInSeason = bestSeason(idx, goalsBySeason)
	rec.MostAssistsInSeason = bestSeason(idx, assistsBySeason)
	rec.MostGoalsAssistsInSeason = bestSeason(idx, actionsBySeason)
	rec.MostCleanSheetsInSeason = bestSeason(idx, cleanSheetsBySeason)
	return rec
}

func bestSeason(idx *index, values map[int]int) *SeasonRecord {
	var r seasonRecord
	for seasonID, value := range values {
		r.offer(idx.seasons[seasonID], value)
	}
	return r.best
}

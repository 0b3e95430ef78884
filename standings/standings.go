// Package standings строит турнирную таблицу лиги по сыгранным матчам.
package standings

import (
	"fmt"
	"sort"

	"github.com/fng3r/cis-haxball/models"
)

const formLength = 5

// Compute возвращает строки таблицы в итоговом порядке.
// Основной порядок - очки, разница мячей, забитые мячи (по убыванию). Команды с равным
// количеством очков дополнительно упорядочиваются по мини-таблице личных встреч.
func Compute(teams []*models.Team, matches []*models.Match) ([]*models.TableRow, error) {
	ids := make([]int, 0, len(teams))
	byID := make(map[int]*models.Team, len(teams))
	for _, t := range teams {
		ids = append(ids, t.ID)
		byID[t.ID] = t
	}

	rows, err := buildRows(ids, matches)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		row.Team = byID[row.TeamID]
	}

	sortRows(rows)
	return resolveTies(rows, matches)
}

func buildRows(teamIDs []int, matches []*models.Match) ([]*models.TableRow, error) {
	rows := make([]*models.TableRow, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		row := &models.TableRow{TeamID: teamID}
		form := make([]models.FormEntry, 0)

		for _, m := range matches {
			if !m.IsPlayed || !m.HasTeam(teamID) {
				continue
			}
			scored, err := m.ScoredBy(teamID)
			if err != nil {
				return nil, fmt.Errorf("league table: %w", err)
			}
			conceded, err := m.ConcededBy(teamID)
			if err != nil {
				return nil, fmt.Errorf("league table: %w", err)
			}

			row.Played++
			row.Scored += scored
			row.Conceded += conceded

			entry := models.FormEntry{MatchID: m.ID, Tour: m.TourNumber}
			switch {
			case scored > conceded:
				row.Wins++
				entry.Outcome = models.OutcomeWin
			case scored == conceded:
				row.Draws++
				entry.Outcome = models.OutcomeDraw
			default:
				row.Losses++
				entry.Outcome = models.OutcomeLoss
			}
			form = append(form, entry)
		}

		row.Points = row.Wins*3 + row.Draws
		row.Diff = row.Scored - row.Conceded
		row.Last5 = lastForm(form)
		rows = append(rows, row)
	}
	return rows, nil
}

func lastForm(form []models.FormEntry) []models.FormEntry {
	sort.SliceStable(form, func(i, j int) bool {
		return form[i].Tour < form[j].Tour
	})
	if len(form) > formLength {
		form = form[len(form)-formLength:]
	}
	return form
}

// sortRows сортирует по составному ключу (очки, разница, забитые). Полные совпадения
// сохраняют входной порядок.
func sortRows(rows []*models.TableRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return less(rows[i], rows[j])
	})
}

func less(a, b *models.TableRow) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.Diff != b.Diff {
		return a.Diff > b.Diff
	}
	return a.Scored > b.Scored
}

// resolveTies проходит по отсортированной таблице, находит группы команд с равными очками
// и заменяет порядок каждой группы порядком её мини-таблицы. Мини-таблица сортируется один раз.
func resolveTies(rows []*models.TableRow, matches []*models.Match) ([]*models.TableRow, error) {
	result := make([]*models.TableRow, 0, len(rows))
	for start := 0; start < len(rows); {
		end := start + 1
		for end < len(rows) && rows[end].Points == rows[start].Points {
			end++
		}

		group := rows[start:end]
		if len(group) == 1 {
			result = append(result, group[0])
		} else {
			ordered, err := headToHeadOrder(group, matches)
			if err != nil {
				return nil, err
			}
			result = append(result, ordered...)
		}
		start = end
	}
	return result, nil
}

func headToHeadOrder(group []*models.TableRow, matches []*models.Match) ([]*models.TableRow, error) {
	ids := make([]int, 0, len(group))
	inGroup := make(map[int]*models.TableRow, len(group))
	for _, row := range group {
		ids = append(ids, row.TeamID)
		inGroup[row.TeamID] = row
	}

	between := make([]*models.Match, 0)
	for _, m := range matches {
		_, homeIn := inGroup[m.TeamHomeID]
		_, guestIn := inGroup[m.TeamGuestID]
		if homeIn && guestIn {
			between = append(between, m)
		}
	}

	mini, err := buildRows(ids, between)
	if err != nil {
		return nil, err
	}
	sortRows(mini)

	ordered := make([]*models.TableRow, 0, len(mini))
	for _, row := range mini {
		ordered = append(ordered, inGroup[row.TeamID])
	}
	return ordered, nil
}

package rating

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fng3r/cis-haxball/models"
)

var (
	winPoints  = decimal.NewFromInt(1)
	drawPoints = decimal.NewFromFloat(0.5)
)

// SeasonPoints начисляет командам очки за матчи сезона: победа 1, ничья 0.5, умноженные на вес турнира.
// Веса проверяются для всех турниров до начала подсчёта, неизвестный турнир прерывает расчёт целиком.
func SeasonPoints(weights *Weights, leagues []*models.League, matches []*models.Match) (map[int]decimal.Decimal, error) {
	leagueWeights := make(map[int]decimal.Decimal, len(leagues))
	for _, league := range leagues {
		w, err := weights.For(league.Title)
		if err != nil {
			return nil, fmt.Errorf("league %d: %w", league.ID, err)
		}
		leagueWeights[league.ID] = w
	}

	byLeague := make(map[int][]*models.Match)
	for _, m := range matches {
		if m.IsPlayed {
			byLeague[m.LeagueID] = append(byLeague[m.LeagueID], m)
		}
	}

	points := make(map[int]decimal.Decimal)
	for _, league := range leagues {
		weight := leagueWeights[league.ID]
		for _, teamID := range league.TeamIDs {
			earned := decimal.Zero
			for _, m := range byLeague[league.ID] {
				if !m.HasTeam(teamID) {
					continue
				}
				outcome, err := m.Outcome(teamID)
				if err != nil {
					return nil, fmt.Errorf("season points: %w", err)
				}
				switch outcome {
				case models.OutcomeWin:
					earned = earned.Add(winPoints)
				case models.OutcomeDraw:
					earned = earned.Add(drawPoints)
				}
			}
			points[teamID] = points[teamID].Add(earned.Mul(weight))
		}
	}
	return points, nil
}

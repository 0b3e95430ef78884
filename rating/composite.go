package rating

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fng3r/cis-haxball/models"
)

var (
	ErrInvalidSourceSeason = errors.New("rating source season must be a championship season")
	ErrBoundSeasonCycle    = errors.New("bound season chain contains a cycle")
	ErrSeasonNotFound      = errors.New("season not found")
)

const (
	championshipMarker = "ЧР"
	// Сезоны с номером не больше этого в рейтинге не участвуют.
	firstRatedSeason = 5
)

var positionWeights = []decimal.Decimal{
	decimal.NewFromInt(1),
	decimal.NewFromInt(1),
	decimal.NewFromInt(1),
	decimal.NewFromFloat(0.9),
	decimal.NewFromFloat(0.8),
	decimal.NewFromFloat(0.7),
}

// Composite считает сводный рейтинг от сезона source назад по чемпионатам.
// ratingsBySeason - строки SeasonTeamRating по id сезона.
// Результат отсортирован по убыванию очков, при равенстве - по id команды; ранг начинается с 1.
func Composite(source *models.Season, seasons []*models.Season, ratingsBySeason map[int][]*models.SeasonTeamRating) ([]models.TeamRating, error) {
	if source == nil || !strings.HasPrefix(source.Title, championshipMarker) {
		return nil, ErrInvalidSourceSeason
	}

	byID := make(map[int]*models.Season, len(seasons))
	for _, s := range seasons {
		byID[s.ID] = s
	}

	totals := make(map[int]decimal.Decimal)
	season := source
	for position := 0; position < len(positionWeights) && season.Number > firstRatedSeason; position++ {
		if err := fold(totals, season, positionWeights[position], byID, ratingsBySeason); err != nil {
			return nil, err
		}
		prev := predecessor(season, seasons)
		if prev == nil {
			break
		}
		season = prev
	}

	result := make([]models.TeamRating, 0, len(totals))
	for teamID, total := range totals {
		result = append(result, models.TeamRating{TeamID: teamID, TotalPoints: total})
	}
	sort.Slice(result, func(i, j int) bool {
		if c := result[i].TotalPoints.Cmp(result[j].TotalPoints); c != 0 {
			return c > 0
		}
		return result[i].TeamID < result[j].TeamID
	})
	for i := range result {
		result[i].Rank = i + 1
	}
	return result, nil
}

// fold добавляет очки сезона и всей цепочки связанных с ним сезонов с одним весом.
func fold(totals map[int]decimal.Decimal, season *models.Season, weight decimal.Decimal,
	byID map[int]*models.Season, ratingsBySeason map[int][]*models.SeasonTeamRating) error {
	visited := make(map[int]bool)
	for season != nil {
		if visited[season.ID] {
			return fmt.Errorf("%w: season %d", ErrBoundSeasonCycle, season.ID)
		}
		visited[season.ID] = true

		for _, r := range ratingsBySeason[season.ID] {
			totals[r.TeamID] = totals[r.TeamID].Add(r.Total().Mul(weight).Round(2))
		}

		if season.BoundSeasonID == nil {
			return nil
		}
		bound, ok := byID[*season.BoundSeasonID]
		if !ok {
			return fmt.Errorf("bound season %d of season %d: %w", *season.BoundSeasonID, season.ID, ErrSeasonNotFound)
		}
		season = bound
	}
	return nil
}

// predecessor - ближайший более ранний сезон-чемпионат.
func predecessor(season *models.Season, seasons []*models.Season) *models.Season {
	var prev *models.Season
	for _, s := range seasons {
		if s.Number >= season.Number || !strings.Contains(s.Title, championshipMarker) {
			continue
		}
		if prev == nil || s.Number > prev.Number {
			prev = s
		}
	}
	return prev
}

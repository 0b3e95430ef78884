package schedule

import (
	"context"
	"fmt"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() Generator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// GenerateSchedule строит круговой турнир методом вращения вокруг первой команды.
// При нечётном числе команд добавляется пустой слот, и в каждом туре одна команда отдыхает.
// Ответные матчи попадают в тур n+i-1 с обменом хозяев и гостей.
func (g *RoundRobinGenerator) GenerateSchedule(ctx context.Context, params GenerateParams) ([]*MatchDraft, error) {
	teams := params.TeamIDs
	if len(teams) < 2 {
		return nil, fmt.Errorf("%w (found %d, min 2 required)", ErrNotEnoughTeams, len(teams))
	}
	seen := make(map[int]struct{}, len(teams))
	for _, id := range teams {
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateTeam, id)
		}
		seen[id] = struct{}{}
	}

	n := len(teams)
	if n%2 == 1 {
		n++ // слот с индексом n-1 - пустой
	}
	half := n / 2
	tours := n - 1

	if missing := missingTours(params, tours); len(missing) > 0 {
		return nil, fmt.Errorf("%w for tours %v", ErrMissingTourDates, missing)
	}

	firstLeg := make([]*MatchDraft, 0, tours*half)
	returnLeg := make([]*MatchDraft, 0)

	for i := 1; i <= tours; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Перед туром i кольцо (позиции 1..n-1) уже сдвинуто (i-1)*half раз.
		shift := ((i - 1) * half) % (n - 1)
		for j := 0; j < half; j++ {
			home := slotAt(j, shift, n)
			guest := slotAt(n-1-j, shift, n)
			if home >= len(teams) || guest >= len(teams) {
				continue
			}
			if j == 0 && i%2 == 1 {
				home, guest = guest, home
			}

			firstLeg = append(firstLeg, &MatchDraft{
				LeagueID:    params.LeagueID,
				TourNumber:  i,
				TeamHomeID:  teams[home],
				TeamGuestID: teams[guest],
			})
			if params.HasReturnMatches {
				returnLeg = append(returnLeg, &MatchDraft{
					LeagueID:    params.LeagueID,
					TourNumber:  n + i - 1,
					TeamHomeID:  teams[guest],
					TeamGuestID: teams[home],
				})
			}
		}
	}

	return append(firstLeg, returnLeg...), nil
}

// slotAt возвращает исходный индекс команды, стоящей на позиции pos после shift
// одиночных сдвигов "последний элемент на позицию 1". Позиция 0 неподвижна.
func slotAt(pos, shift, n int) int {
	if pos == 0 {
		return 0
	}
	ring := n - 1
	return 1 + ((pos-1-shift)%ring+ring)%ring
}

func missingTours(params GenerateParams, tours int) []int {
	required := tours
	if params.HasReturnMatches {
		required = tours * 2
	}
	missing := make([]int, 0)
	for number := 1; number <= required; number++ {
		if _, ok := params.TourDates[number]; !ok {
			missing = append(missing, number)
		}
	}
	return missing
}

package schedule

import (
	"context"
	"errors"
	"testing"
	"time"
)

func tourDates(count int) map[int]DateRange {
	start := time.Date(2024, time.September, 2, 0, 0, 0, 0, time.UTC)
	dates := make(map[int]DateRange, count)
	for i := 1; i <= count; i++ {
		from := start.AddDate(0, 0, 7*(i-1))
		dates[i] = DateRange{From: from, To: from.AddDate(0, 0, 6)}
	}
	return dates
}

func teamIDs(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = 100 + i
	}
	return ids
}

type pair struct{ a, b int }

func unordered(d *MatchDraft) pair {
	if d.TeamHomeID < d.TeamGuestID {
		return pair{d.TeamHomeID, d.TeamGuestID}
	}
	return pair{d.TeamGuestID, d.TeamHomeID}
}

func TestRoundRobinSingleLegCompleteness(t *testing.T) {
	for _, n := range []int{2, 4, 6, 8, 10} {
		g := NewRoundRobinGenerator()
		drafts, err := g.GenerateSchedule(context.Background(), GenerateParams{
			TeamIDs:   teamIDs(n),
			TourDates: tourDates(n - 1),
		})
		if err != nil {
			t.Fatalf("n=%d: GenerateSchedule() error = %v", n, err)
		}

		perTour := make(map[int]int)
		pairs := make(map[pair]int)
		for _, d := range drafts {
			perTour[d.TourNumber]++
			pairs[unordered(d)]++
		}
		if len(perTour) != n-1 {
			t.Errorf("n=%d: tours = %d, want %d", n, len(perTour), n-1)
		}
		for tour, count := range perTour {
			if count != n/2 {
				t.Errorf("n=%d: tour %d has %d matches, want %d", n, tour, count, n/2)
			}
		}
		if len(pairs) != n*(n-1)/2 {
			t.Errorf("n=%d: distinct pairs = %d, want %d", n, len(pairs), n*(n-1)/2)
		}
		for p, count := range pairs {
			if count != 1 {
				t.Errorf("n=%d: pair %v appears %d times", n, p, count)
			}
		}
	}
}

func TestRoundRobinTeamPlaysOncePerTour(t *testing.T) {
	drafts, err := NewRoundRobinGenerator().GenerateSchedule(context.Background(), GenerateParams{
		TeamIDs:   teamIDs(8),
		TourDates: tourDates(7),
	})
	if err != nil {
		t.Fatalf("GenerateSchedule() error = %v", err)
	}
	seen := make(map[[2]int]bool)
	for _, d := range drafts {
		for _, team := range []int{d.TeamHomeID, d.TeamGuestID} {
			key := [2]int{d.TourNumber, team}
			if seen[key] {
				t.Fatalf("team %d plays twice in tour %d", team, d.TourNumber)
			}
			seen[key] = true
		}
	}
}

func TestRoundRobinReturnMatches(t *testing.T) {
	n := 6
	drafts, err := NewRoundRobinGenerator().GenerateSchedule(context.Background(), GenerateParams{
		TeamIDs:          teamIDs(n),
		HasReturnMatches: true,
		TourDates:        tourDates(2 * (n - 1)),
	})
	if err != nil {
		t.Fatalf("GenerateSchedule() error = %v", err)
	}
	if len(drafts) != n*(n-1) {
		t.Fatalf("drafts = %d, want %d", len(drafts), n*(n-1))
	}

	ordered := make(map[[2]int]int)
	tours := make(map[int]bool)
	for _, d := range drafts {
		ordered[[2]int{d.TeamHomeID, d.TeamGuestID}]++
		tours[d.TourNumber] = true
	}
	for key, count := range ordered {
		if count != 1 {
			t.Errorf("fixture %v appears %d times", key, count)
		}
		if ordered[[2]int{key[1], key[0]}] != 1 {
			t.Errorf("fixture %v has no mirrored return match", key)
		}
	}
	for tour := 1; tour <= 2*(n-1); tour++ {
		if !tours[tour] {
			t.Errorf("tour %d has no matches", tour)
		}
	}
}

func TestRoundRobinReturnTourNumbering(t *testing.T) {
	n := 4
	drafts, err := NewRoundRobinGenerator().GenerateSchedule(context.Background(), GenerateParams{
		TeamIDs:          teamIDs(n),
		HasReturnMatches: true,
		TourDates:        tourDates(2 * (n - 1)),
	})
	if err != nil {
		t.Fatalf("GenerateSchedule() error = %v", err)
	}
	byFixture := make(map[[2]int]int)
	for _, d := range drafts {
		byFixture[[2]int{d.TeamHomeID, d.TeamGuestID}] = d.TourNumber
	}
	for fixture, tour := range byFixture {
		if tour > n-1 {
			continue
		}
		mirrored := byFixture[[2]int{fixture[1], fixture[0]}]
		if mirrored != n+tour-1 {
			t.Errorf("fixture %v in tour %d mirrored in tour %d, want %d", fixture, tour, mirrored, n+tour-1)
		}
	}
}

func TestRoundRobinOddTeamCount(t *testing.T) {
	n := 5
	teams := teamIDs(n)
	drafts, err := NewRoundRobinGenerator().GenerateSchedule(context.Background(), GenerateParams{
		TeamIDs:   teams,
		TourDates: tourDates(n),
	})
	if err != nil {
		t.Fatalf("GenerateSchedule() error = %v", err)
	}

	playing := make(map[int]map[int]bool)
	pairs := make(map[pair]int)
	for _, d := range drafts {
		if playing[d.TourNumber] == nil {
			playing[d.TourNumber] = make(map[int]bool)
		}
		playing[d.TourNumber][d.TeamHomeID] = true
		playing[d.TourNumber][d.TeamGuestID] = true
		pairs[unordered(d)]++
	}
	if len(playing) != n {
		t.Fatalf("tours = %d, want %d", len(playing), n)
	}
	idle := make(map[int]int)
	for tour, teamsInTour := range playing {
		if len(teamsInTour) != 4 {
			t.Errorf("tour %d has %d teams playing, want 4", tour, len(teamsInTour))
		}
		for _, team := range teams {
			if !teamsInTour[team] {
				idle[team]++
			}
		}
	}
	for _, team := range teams {
		if idle[team] != 1 {
			t.Errorf("team %d idle in %d tours, want 1", team, idle[team])
		}
	}
	if len(pairs) != n*(n-1)/2 {
		t.Errorf("distinct pairs = %d, want %d", len(pairs), n*(n-1)/2)
	}
}

func TestRoundRobinAnchorAlternatesHome(t *testing.T) {
	teams := teamIDs(4)
	drafts, err := NewRoundRobinGenerator().GenerateSchedule(context.Background(), GenerateParams{
		TeamIDs:   teams,
		TourDates: tourDates(3),
	})
	if err != nil {
		t.Fatalf("GenerateSchedule() error = %v", err)
	}
	anchor := teams[0]
	for _, d := range drafts {
		if d.TeamHomeID != anchor && d.TeamGuestID != anchor {
			continue
		}
		wantHome := d.TourNumber%2 == 0
		if (d.TeamHomeID == anchor) != wantHome {
			t.Errorf("tour %d: anchor home = %v, want %v", d.TourNumber, d.TeamHomeID == anchor, wantHome)
		}
	}
}

func TestRoundRobinMissingTourDates(t *testing.T) {
	dates := tourDates(6)
	delete(dates, 5)
	drafts, err := NewRoundRobinGenerator().GenerateSchedule(context.Background(), GenerateParams{
		TeamIDs:          teamIDs(4),
		HasReturnMatches: true,
		TourDates:        dates,
	})
	if !errors.Is(err, ErrMissingTourDates) || !errors.Is(err, ErrConfiguration) {
		t.Fatalf("GenerateSchedule() error = %v, want ErrMissingTourDates", err)
	}
	if len(drafts) != 0 {
		t.Errorf("drafts = %d, want none", len(drafts))
	}
}

func TestRoundRobinRejectsBadInput(t *testing.T) {
	g := NewRoundRobinGenerator()
	if _, err := g.GenerateSchedule(context.Background(), GenerateParams{TeamIDs: []int{1}}); !errors.Is(err, ErrNotEnoughTeams) {
		t.Errorf("single team error = %v, want ErrNotEnoughTeams", err)
	}
	_, err := g.GenerateSchedule(context.Background(), GenerateParams{TeamIDs: []int{1, 2, 1}, TourDates: tourDates(3)})
	if !errors.Is(err, ErrDuplicateTeam) {
		t.Errorf("duplicate team error = %v, want ErrDuplicateTeam", err)
	}
}

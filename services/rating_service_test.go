package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/fng3r/cis-haxball/events"
	"github.com/fng3r/cis-haxball/models"
	"github.com/fng3r/cis-haxball/rating"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type ratingFixture struct {
	svc      RatingService
	ratings  *fakeRatingRepo
	pub      *fakePublisher
	exporter *fakeExporter
	now      time.Time
}

func newRatingFixture(exporter *fakeExporter) *ratingFixture {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	seasons := &fakeSeasonRepo{seasons: []*models.Season{
		{ID: 5, Number: 5, Title: "ЧР 5"},
		{ID: 6, Number: 6, Title: "ЧР 6"},
		{ID: 7, Number: 6, Title: "Кубок 6"},
	}}
	leagues := &fakeLeagueRepo{leagues: map[int]*models.League{
		10: {ID: 10, SeasonID: 6, Title: "Высшая лига", TeamIDs: []int{1, 2}},
		11: {ID: 11, SeasonID: 6, Title: "Кубок России", TeamIDs: []int{1, 2}},
	}}
	matches := newFakeMatchRepo(
		&models.Match{ID: 1, LeagueID: 10, TeamHomeID: 1, TeamGuestID: 2, ScoreHome: 2, ScoreGuest: 0, IsPlayed: true},
		&models.Match{ID: 2, LeagueID: 11, TeamHomeID: 2, TeamGuestID: 1, ScoreHome: 1, ScoreGuest: 1, IsPlayed: true},
	)
	ratings := &fakeRatingRepo{
		nextVersion: 3,
		bySeason: map[int][]*models.SeasonTeamRating{
			5: {{SeasonID: 5, TeamID: 1, PointsForMatches: dec("100")}},
			6: {
				{SeasonID: 6, TeamID: 1, PointsForMatches: dec("3"), PointsForResult: dec("1")},
				{SeasonID: 6, TeamID: 2, PointsForMatches: dec("5")},
			},
		},
	}
	pub := &fakePublisher{}
	f := &ratingFixture{ratings: ratings, pub: pub, exporter: exporter, now: now}

	var exp RatingExporter
	if exporter != nil {
		exp = exporter
	}
	f.svc = NewRatingService(&fakeTx{}, seasons, leagues, matches, ratings, rating.DefaultWeights(),
		exp, pub, clockwork.NewFakeClockAt(now), discardLogger())
	return f
}

func TestRecomputeSeasonPoints(t *testing.T) {
	f := newRatingFixture(nil)

	points, err := f.svc.RecomputeSeasonPoints(context.Background(), 6)
	if err != nil {
		t.Fatalf("RecomputeSeasonPoints: %v", err)
	}
	// Победа в лиге (1 x 1) и ничья в кубке (0.5 x 0.75).
	if got := points[1]; !got.Equal(dec("1.375")) {
		t.Errorf("team 1 = %s, want 1.375", got)
	}
	if got := points[2]; !got.Equal(dec("0.375")) {
		t.Errorf("team 2 = %s, want 0.375", got)
	}
	if _, ok := f.ratings.saved[6]; !ok {
		t.Error("points were not saved")
	}
	if len(f.pub.events) != 1 || f.pub.events[0].Type != events.TypeSeasonPointsComputed {
		t.Errorf("events = %+v", f.pub.events)
	}
}

func TestRecomputeSeasonPointsZeroesRemovedTeams(t *testing.T) {
	f := newRatingFixture(nil)
	// Команда 3 играла в сезоне 6, но её убрали из лиги вместе с матчами
	f.ratings.bySeason[6] = append(f.ratings.bySeason[6], &models.SeasonTeamRating{SeasonID: 6, TeamID: 3, PointsForMatches: dec("4")})

	points, err := f.svc.RecomputeSeasonPoints(context.Background(), 6)
	if err != nil {
		t.Fatalf("RecomputeSeasonPoints: %v", err)
	}
	if _, ok := points[3]; ok {
		t.Errorf("computed points = %v, team 3 must not be reported", points)
	}
	saved := f.ratings.saved[6]
	if got, ok := saved[3]; !ok || !got.IsZero() {
		t.Errorf("saved team 3 = %s (present %v), want 0", got, ok)
	}
	if got := saved[1]; !got.Equal(dec("1.375")) {
		t.Errorf("saved team 1 = %s, want 1.375", got)
	}
	// Чужие сезоны не затрагиваются
	if _, ok := f.ratings.saved[5]; ok {
		t.Error("season 5 must not be rewritten")
	}
}

func TestRecomputeSeasonPointsUnknownSeason(t *testing.T) {
	f := newRatingFixture(nil)

	if _, err := f.svc.RecomputeSeasonPoints(context.Background(), 42); !errors.Is(err, ErrSeasonNotFound) {
		t.Fatalf("err = %v, want ErrSeasonNotFound", err)
	}
	if f.ratings.saved != nil {
		t.Error("nothing must be saved")
	}
}

func TestPublishRating(t *testing.T) {
	f := newRatingFixture(&fakeExporter{})
	f.pub.err = errors.New("nats: no responders")

	version, err := f.svc.PublishRating(context.Background(), 6)
	if err != nil {
		t.Fatalf("PublishRating must not fail on publish errors: %v", err)
	}
	if version.Number != 3 || !version.Date.Equal(f.now) || version.RelatedSeasonID != 6 {
		t.Errorf("version = %+v", version)
	}
	// Сезон 5 не превышает порог и в рейтинг не входит.
	want := []struct {
		team  int
		total string
	}{{2, "5"}, {1, "4"}}
	if len(version.Ratings) != len(want) {
		t.Fatalf("ratings = %+v", version.Ratings)
	}
	for i, w := range want {
		r := version.Ratings[i]
		if r.Rank != i+1 || r.TeamID != w.team || !r.TotalPoints.Equal(dec(w.total)) {
			t.Errorf("rating[%d] = %+v, want team %d with %s", i, r, w.team, w.total)
		}
	}

	if len(f.ratings.versions) != 1 {
		t.Errorf("versions stored = %d, want 1", len(f.ratings.versions))
	}
	if len(f.exporter.exported) != 1 {
		t.Errorf("exported = %d, want 1", len(f.exporter.exported))
	}
	if len(f.pub.events) != 1 {
		t.Fatalf("events = %+v", f.pub.events)
	}
	payload := f.pub.events[0].Payload.(RatingVersionCreated)
	if payload.SnapshotURL != "https://cdn.test/ratings/v0003.json" {
		t.Errorf("snapshot url = %q", payload.SnapshotURL)
	}

	got, err := f.svc.GetByNumber(context.Background(), 3)
	if err != nil || got != version {
		t.Errorf("GetByNumber = %v, %v", got, err)
	}
}

func TestPublishRatingExportFailureIsLogged(t *testing.T) {
	f := newRatingFixture(&fakeExporter{err: errors.New("r2 unavailable")})

	if _, err := f.svc.PublishRating(context.Background(), 6); err != nil {
		t.Fatalf("PublishRating: %v", err)
	}
	payload := f.pub.events[0].Payload.(RatingVersionCreated)
	if payload.SnapshotURL != "" {
		t.Errorf("snapshot url = %q, want empty", payload.SnapshotURL)
	}
}

func TestPublishRatingRejectsCupSeason(t *testing.T) {
	f := newRatingFixture(nil)

	if _, err := f.svc.PublishRating(context.Background(), 7); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
	if len(f.ratings.versions) != 0 || len(f.pub.events) != 0 {
		t.Error("nothing must be written")
	}
}

func TestGetByNumberNotFound(t *testing.T) {
	f := newRatingFixture(nil)

	if _, err := f.svc.GetByNumber(context.Background(), 1); !errors.Is(err, ErrRatingVersionNotFound) {
		t.Fatalf("err = %v, want ErrRatingVersionNotFound", err)
	}
}

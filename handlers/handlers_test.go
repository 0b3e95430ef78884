package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"

	"github.com/fng3r/cis-haxball/middleware"
	"github.com/fng3r/cis-haxball/models"
	"github.com/fng3r/cis-haxball/services"
	"github.com/fng3r/cis-haxball/stats"
)

type fakeStandingsService struct {
	services.StandingsService
	getTable func(ctx context.Context, leagueID int) (*services.LeagueTable, error)
}

func (f *fakeStandingsService) GetTable(ctx context.Context, leagueID int) (*services.LeagueTable, error) {
	return f.getTable(ctx, leagueID)
}

type fakeStatisticsService struct {
	services.StatisticsService
	lastQuery    stats.LeaderQuery
	lastCurrent  bool
	teamReport   *stats.TeamReport
	categoryName string
}

func (f *fakeStatisticsService) LeagueLeaders(ctx context.Context, leagueID int, query stats.LeaderQuery) ([]stats.LeaderRow, error) {
	f.lastQuery = query
	return []stats.LeaderRow{{PlayerID: 9, Matches: 3, Value: 4}}, nil
}

func (f *fakeStatisticsService) TeamStatistics(ctx context.Context, teamID int, current bool) (*stats.TeamReport, error) {
	f.lastCurrent = current
	if teamID != 1 {
		return nil, fmt.Errorf("%w: team %d", services.ErrTeamNotFound, teamID)
	}
	return f.teamReport, nil
}

func (f *fakeStatisticsService) Categorize(title string) string {
	return f.categoryName
}

type fakeScheduleService struct {
	services.ScheduleService
	err     error
	lastReq services.ScheduleRequest
}

func (f *fakeScheduleService) Generate(ctx context.Context, leagueID int, req services.ScheduleRequest) (*services.ScheduleResult, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &services.ScheduleResult{LeagueID: leagueID, Generator: "RoundRobin"}, nil
}

type fakeRatingService struct {
	services.RatingService
	err error
}

func (f *fakeRatingService) GetByNumber(ctx context.Context, number int) (*models.RatingVersion, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.RatingVersion{Number: number, Ratings: []models.TeamRating{
		{Rank: 1, TeamID: 3, TotalPoints: decimal.RequireFromString("26.6")},
	}}, nil
}

type fakeMatchEventService struct {
	services.MatchEventService
	err error
}

func (f *fakeMatchEventService) AddGoal(ctx context.Context, matchID int, input services.CreateGoalInput) (*models.Goal, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Goal{ID: 1, MatchID: matchID, TeamID: input.TeamID, AuthorID: input.AuthorID}, nil
}

func (f *fakeMatchEventService) RemoveEvent(ctx context.Context, eventID int) error {
	return f.err
}

func serve(t *testing.T, pattern, method, target string, body string, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Method(method, pattern, h)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestGetTable(t *testing.T) {
	h := NewLeagueHandler(&fakeStandingsService{getTable: func(ctx context.Context, leagueID int) (*services.LeagueTable, error) {
		if leagueID != 10 {
			return nil, services.ErrLeagueNotFound
		}
		return &services.LeagueTable{
			League: &models.League{ID: 10, Title: "Высшая лига"},
			Rows:   []*models.TableRow{{TeamID: 2, Points: 3}},
		}, nil
	}}, nil)

	tests := []struct {
		target string
		want   int
	}{
		{"/api/leagues/10/table", http.StatusOK},
		{"/api/leagues/11/table", http.StatusNotFound},
		{"/api/leagues/abc/table", http.StatusBadRequest},
		{"/api/leagues/0/table", http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := serve(t, "/api/leagues/{leagueID}/table", http.MethodGet, tt.target, "", h.GetTable)
		if rec.Code != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.target, rec.Code, tt.want)
		}
	}
}

func TestGetLeadersParsesQuery(t *testing.T) {
	sts := &fakeStatisticsService{}
	h := NewLeagueHandler(nil, sts)

	rec := serve(t, "/api/leagues/{leagueID}/leaders", http.MethodGet,
		"/api/leagues/10/leaders?metric=assists&per_match=true&limit=5", "", h.GetLeaders)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	want := stats.LeaderQuery{Metric: stats.MetricAssists, PerMatch: true, Limit: 5}
	if sts.lastQuery != want {
		t.Errorf("query = %+v, want %+v", sts.lastQuery, want)
	}

	rec = serve(t, "/api/leagues/{leagueID}/leaders", http.MethodGet, "/api/leagues/10/leaders", "", h.GetLeaders)
	if rec.Code != http.StatusOK || sts.lastQuery.Metric != stats.MetricGoals || sts.lastQuery.Limit != defaultLeadersLimit {
		t.Errorf("defaults: status %d, query %+v", rec.Code, sts.lastQuery)
	}

	for _, target := range []string{
		"/api/leagues/10/leaders?metric=saves",
		"/api/leagues/10/leaders?limit=0",
		"/api/leagues/10/leaders?limit=1000",
		"/api/leagues/10/leaders?per_match=maybe",
	} {
		rec := serve(t, "/api/leagues/{leagueID}/leaders", http.MethodGet, target, "", h.GetLeaders)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

func TestGetTeamStatisticsScope(t *testing.T) {
	sts := &fakeStatisticsService{teamReport: &stats.TeamReport{TeamID: 1}}
	h := NewStatisticsHandler(sts)

	rec := serve(t, "/api/teams/{teamID}/statistics", http.MethodGet, "/api/teams/1/statistics?scope=current", "", h.GetTeamStatistics)
	if rec.Code != http.StatusOK || !sts.lastCurrent {
		t.Errorf("status = %d, current = %v", rec.Code, sts.lastCurrent)
	}
	rec = serve(t, "/api/teams/{teamID}/statistics", http.MethodGet, "/api/teams/1/statistics?scope=week", "", h.GetTeamStatistics)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad scope: status = %d, want 400", rec.Code)
	}
	rec = serve(t, "/api/teams/{teamID}/statistics", http.MethodGet, "/api/teams/2/statistics", "", h.GetTeamStatistics)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown team: status = %d, want 404", rec.Code)
	}
}

func TestGetCategory(t *testing.T) {
	h := NewStatisticsHandler(&fakeStatisticsService{categoryName: "Кубок России"})

	rec := serve(t, "/api/categories", http.MethodGet, "/api/categories?title="+url.QueryEscape("Кубок России 2"), "", h.GetCategory)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var category string
	if err := json.Unmarshal(decodeBody(t, rec)["category"], &category); err != nil || category != "Кубок России" {
		t.Errorf("category = %q, %v", category, err)
	}

	rec = serve(t, "/api/categories", http.MethodGet, "/api/categories", "", h.GetCategory)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing title: status = %d, want 400", rec.Code)
	}
}

func TestGenerateSchedule(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"empty body uses defaults", "", nil, http.StatusCreated},
		{"with options", `{"has_return_matches": true, "shuffle": true, "seed": 7}`, nil, http.StatusCreated},
		{"unknown field", `{"rounds": 2}`, nil, http.StatusBadRequest},
		{"already scheduled", "", services.ErrScheduleExists, http.StatusConflict},
		{"missing tour dates", "", services.ErrConfiguration, http.StatusUnprocessableEntity},
		{"unexpected", "", fmt.Errorf("pq: connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeScheduleService{err: tt.err}
			h := NewScheduleHandler(svc)
			rec := serve(t, "/api/leagues/{leagueID}/schedule", http.MethodPost, "/api/leagues/3/schedule", tt.body, h.GenerateSchedule)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}

	svc := &fakeScheduleService{}
	serve(t, "/api/leagues/{leagueID}/schedule", http.MethodPost, "/api/leagues/3/schedule",
		`{"has_return_matches": true, "shuffle": true, "seed": 7}`, NewScheduleHandler(svc).GenerateSchedule)
	if !svc.lastReq.HasReturnMatches || !svc.lastReq.Shuffle || svc.lastReq.Seed == nil || *svc.lastReq.Seed != 7 {
		t.Errorf("request = %+v", svc.lastReq)
	}
}

func TestGetRatingByNumber(t *testing.T) {
	h := NewRatingHandler(&fakeRatingService{})

	rec := serve(t, "/api/ratings/{number}", http.MethodGet, "/api/ratings/4", "", h.GetByNumber)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var version models.RatingVersion
	if err := json.Unmarshal(decodeBody(t, rec)["rating"], &version); err != nil {
		t.Fatalf("decode rating: %v", err)
	}
	if version.Number != 4 || !version.Ratings[0].TotalPoints.Equal(decimal.RequireFromString("26.6")) {
		t.Errorf("version = %+v", version)
	}

	h = NewRatingHandler(&fakeRatingService{err: services.ErrRatingVersionNotFound})
	rec = serve(t, "/api/ratings/{number}", http.MethodGet, "/api/ratings/5", "", h.GetByNumber)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestMatchEventHandlers(t *testing.T) {
	h := NewMatchEventHandler(&fakeMatchEventService{}, discardLogger())
	rec := serve(t, "/api/matches/{matchID}/goals", http.MethodPost, "/api/matches/8/goals",
		`{"team_id": 1, "author_id": 7, "time_min": 4, "time_sec": 30}`, h.AddGoal)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = serve(t, "/api/matches/{matchID}/goals", http.MethodPost, "/api/matches/8/goals", `{"team_id": "one"}`, h.AddGoal)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad body: status = %d, want 400", rec.Code)
	}

	h = NewMatchEventHandler(&fakeMatchEventService{err: services.ErrValidationFailed}, discardLogger())
	rec = serve(t, "/api/matches/{matchID}/goals", http.MethodPost, "/api/matches/8/goals", `{"team_id": 1, "author_id": 7}`, h.AddGoal)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("validation: status = %d, want 400", rec.Code)
	}

	h = NewMatchEventHandler(&fakeMatchEventService{}, discardLogger())
	rec = serve(t, "/api/events/{eventID}", http.MethodDelete, "/api/events/3", "", h.RemoveEvent)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete: status = %d, want 204", rec.Code)
	}

	h = NewMatchEventHandler(&fakeMatchEventService{err: services.ErrEventNotFound}, discardLogger())
	rec = serve(t, "/api/events/{eventID}", http.MethodDelete, "/api/events/3", "", h.RemoveEvent)
	if rec.Code != http.StatusNotFound {
		t.Errorf("delete missing: status = %d, want 404", rec.Code)
	}
}

func TestMatchEventHandlersLogOperator(t *testing.T) {
	const secret = "handlers-secret"
	var buf bytes.Buffer
	h := NewMatchEventHandler(&fakeMatchEventService{}, slog.New(slog.NewJSONHandler(&buf, nil)))

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 42,
		"role":    string(models.OperatorEditor),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	r := chi.NewRouter()
	r.With(middleware.Authenticate(secret)).Delete("/api/events/{eventID}", h.RemoveEvent)
	req := httptest.NewRequest(http.MethodDelete, "/api/events/3", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log entry %q: %v", buf.String(), err)
	}
	if entry["operator_id"] != float64(42) || entry["action"] != "event_removed" || entry["event_id"] != float64(3) {
		t.Errorf("log entry = %v", entry)
	}
}

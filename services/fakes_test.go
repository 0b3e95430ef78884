package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/fng3r/cis-haxball/models"
	"github.com/fng3r/cis-haxball/repositories"
	"github.com/fng3r/cis-haxball/storage"
)

// Фейки встраивают интерфейс репозитория: вызов незаданного метода паникует и роняет тест.

type fakeTx struct {
	calls int
	opts  []*sql.TxOptions
}

func (f *fakeTx) WithinTx(ctx context.Context, opts *sql.TxOptions, fn func(exec repositories.SQLExecutor) error) error {
	f.calls++
	f.opts = append(f.opts, opts)
	return fn(nil)
}

type publishedEvent struct {
	Type    string
	Payload interface{}
}

type fakePublisher struct {
	events []publishedEvent
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	p.events = append(p.events, publishedEvent{Type: eventType, Payload: payload})
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

type fakeLeagueRepo struct {
	repositories.LeagueRepository
	leagues map[int]*models.League
	tours   map[int][]*models.TourNumber
}

func (r *fakeLeagueRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.League, error) {
	l, ok := r.leagues[id]
	if !ok {
		return nil, repositories.ErrLeagueNotFound
	}
	return l, nil
}

func (r *fakeLeagueRepo) List(ctx context.Context, exec repositories.SQLExecutor) ([]*models.League, error) {
	out := make([]*models.League, 0, len(r.leagues))
	for _, l := range r.leagues {
		out = append(out, l)
	}
	return out, nil
}

func (r *fakeLeagueRepo) ListBySeason(ctx context.Context, exec repositories.SQLExecutor, seasonID int) ([]*models.League, error) {
	var out []*models.League
	for _, l := range r.leagues {
		if l.SeasonID == seasonID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLeagueRepo) ListTours(ctx context.Context, exec repositories.SQLExecutor, leagueID int) ([]*models.TourNumber, error) {
	return r.tours[leagueID], nil
}

type fakeTeamRepo struct {
	repositories.TeamRepository
	teams []*models.Team
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Team, error) {
	for _, t := range r.teams {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) List(ctx context.Context, exec repositories.SQLExecutor) ([]*models.Team, error) {
	return r.teams, nil
}

func (r *fakeTeamRepo) ListByIDs(ctx context.Context, exec repositories.SQLExecutor, ids []int) ([]*models.Team, error) {
	teams := make([]*models.Team, 0, len(ids))
	for _, id := range ids {
		teams = append(teams, &models.Team{ID: id})
	}
	return teams, nil
}

type fakeMatchRepo struct {
	repositories.MatchRepository
	matches map[int]*models.Match
	created [][]*models.Match
	updated []models.Match
	nextID  int
}

func newFakeMatchRepo(matches ...*models.Match) *fakeMatchRepo {
	r := &fakeMatchRepo{matches: make(map[int]*models.Match), nextID: 100}
	for _, m := range matches {
		r.matches[m.ID] = m
	}
	return r
}

func (r *fakeMatchRepo) GetForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	cp := *m
	if m.Result != nil {
		res := *m.Result
		cp.Result = &res
	}
	return &cp, nil
}

func (r *fakeMatchRepo) List(ctx context.Context, exec repositories.SQLExecutor) ([]*models.Match, error) {
	return r.ListBySeason(ctx, exec, 0)
}

func (r *fakeMatchRepo) ListByLeague(ctx context.Context, exec repositories.SQLExecutor, leagueID int) ([]*models.Match, error) {
	var out []*models.Match
	for _, m := range r.matches {
		if m.LeagueID == leagueID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) ListBySeason(ctx context.Context, exec repositories.SQLExecutor, seasonID int) ([]*models.Match, error) {
	out := make([]*models.Match, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMatchRepo) CountByLeague(ctx context.Context, exec repositories.SQLExecutor, leagueID int) (int, error) {
	matches, _ := r.ListByLeague(ctx, exec, leagueID)
	return len(matches), nil
}

func (r *fakeMatchRepo) CreateBatch(ctx context.Context, exec repositories.SQLExecutor, matches []*models.Match) error {
	for _, m := range matches {
		r.nextID++
		m.ID = r.nextID
	}
	r.created = append(r.created, matches)
	return nil
}

func (r *fakeMatchRepo) UpdateScore(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	r.updated = append(r.updated, *match)
	r.matches[match.ID] = match
	return nil
}

type fakeEventRepo struct {
	repositories.EventRepository
	goals         map[int]*models.Goal
	events        map[int]*models.OtherEvent
	subs          []*models.Substitution
	deletedGoals  []int
	deletedEvents []int
	nextID        int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		goals:  make(map[int]*models.Goal),
		events: make(map[int]*models.OtherEvent),
		nextID: 500,
	}
}

func (r *fakeEventRepo) CreateGoal(ctx context.Context, exec repositories.SQLExecutor, goal *models.Goal) error {
	r.nextID++
	goal.ID = r.nextID
	r.goals[goal.ID] = goal
	return nil
}

func (r *fakeEventRepo) GetGoal(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Goal, error) {
	g, ok := r.goals[id]
	if !ok {
		return nil, repositories.ErrGoalNotFound
	}
	return g, nil
}

func (r *fakeEventRepo) DeleteGoal(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	r.deletedGoals = append(r.deletedGoals, id)
	delete(r.goals, id)
	return nil
}

func (r *fakeEventRepo) CreateEvent(ctx context.Context, exec repositories.SQLExecutor, event *models.OtherEvent) error {
	r.nextID++
	event.ID = r.nextID
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) GetEvent(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.OtherEvent, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, repositories.ErrEventNotFound
	}
	return e, nil
}

func (r *fakeEventRepo) DeleteEvent(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	r.deletedEvents = append(r.deletedEvents, id)
	delete(r.events, id)
	return nil
}

// List* отдают все записи: фильтрацию по сезону выполняет stats.
func (r *fakeEventRepo) ListGoals(ctx context.Context, exec repositories.SQLExecutor, seasonID int) ([]*models.Goal, error) {
	out := make([]*models.Goal, 0, len(r.goals))
	for _, g := range r.goals {
		out = append(out, g)
	}
	return out, nil
}

func (r *fakeEventRepo) ListSubstitutions(ctx context.Context, exec repositories.SQLExecutor, seasonID int) ([]*models.Substitution, error) {
	return r.subs, nil
}

func (r *fakeEventRepo) ListEvents(ctx context.Context, exec repositories.SQLExecutor, seasonID int) ([]*models.OtherEvent, error) {
	out := make([]*models.OtherEvent, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e)
	}
	return out, nil
}

type fakePlayerRepo struct {
	repositories.PlayerRepository
	players map[int]*models.Player
}

func (r *fakePlayerRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Player, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return p, nil
}

type fakeSeasonRepo struct {
	repositories.SeasonRepository
	seasons []*models.Season
}

func (r *fakeSeasonRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Season, error) {
	for _, s := range r.seasons {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, repositories.ErrSeasonNotFound
}

func (r *fakeSeasonRepo) GetActive(ctx context.Context, exec repositories.SQLExecutor) (*models.Season, error) {
	for _, s := range r.seasons {
		if s.IsActive {
			return s, nil
		}
	}
	return nil, repositories.ErrSeasonNotFound
}

func (r *fakeSeasonRepo) List(ctx context.Context, exec repositories.SQLExecutor) ([]*models.Season, error) {
	return r.seasons, nil
}

type fakeRatingRepo struct {
	repositories.RatingRepository
	bySeason    map[int][]*models.SeasonTeamRating
	saved       map[int]map[int]decimal.Decimal
	nextVersion int
	versions    []*models.RatingVersion
}

func (r *fakeRatingRepo) ListSeasonRatings(ctx context.Context, exec repositories.SQLExecutor) (map[int][]*models.SeasonTeamRating, error) {
	return r.bySeason, nil
}

func (r *fakeRatingRepo) SaveSeasonPoints(ctx context.Context, exec repositories.SQLExecutor, seasonID int, points map[int]decimal.Decimal) error {
	if r.saved == nil {
		r.saved = make(map[int]map[int]decimal.Decimal)
	}
	r.saved[seasonID] = points
	return nil
}

func (r *fakeRatingRepo) NextVersionNumber(ctx context.Context, exec repositories.SQLExecutor) (int, error) {
	return r.nextVersion, nil
}

func (r *fakeRatingRepo) CreateVersion(ctx context.Context, exec repositories.SQLExecutor, version *models.RatingVersion) error {
	version.ID = len(r.versions) + 1
	r.versions = append(r.versions, version)
	return nil
}

func (r *fakeRatingRepo) GetVersionByNumber(ctx context.Context, exec repositories.SQLExecutor, number int) (*models.RatingVersion, error) {
	for _, v := range r.versions {
		if v.Number == number {
			return v, nil
		}
	}
	return nil, repositories.ErrRatingVersionNotFound
}

type fakeExporter struct {
	exported []*models.RatingVersion
	err      error
}

func (e *fakeExporter) Export(ctx context.Context, version *models.RatingVersion) (*storage.UploadResult, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.exported = append(e.exported, version)
	key := storage.RatingSnapshotKey(version.Number)
	return &storage.UploadResult{Key: key, Location: "https://cdn.test/" + key}, nil
}

type recordedBroadcast struct {
	Room    string
	Message interface{}
}

type fakeBroadcaster struct {
	sent []recordedBroadcast
}

func (b *fakeBroadcaster) BroadcastToRoom(room string, message interface{}) {
	b.sent = append(b.sent, recordedBroadcast{Room: room, Message: message})
}

type fakeStandings struct {
	StandingsService
	pushed []int
}

func (s *fakeStandings) PushTable(ctx context.Context, leagueID int) {
	s.pushed = append(s.pushed, leagueID)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/fng3r/cis-haxball/services"
	"github.com/fng3r/cis-haxball/stats"
)

const (
	defaultLeadersLimit = 10
	maxLeadersLimit     = 100
)

type LeagueHandler struct {
	standingsService  services.StandingsService
	statisticsService services.StatisticsService
}

func NewLeagueHandler(ss services.StandingsService, sts services.StatisticsService) *LeagueHandler {
	return &LeagueHandler{
		standingsService:  ss,
		statisticsService: sts,
	}
}

// GetTable godoc
// @Summary      Турнирная таблица
// @Tags         leagues
// @Produce      json
// @Param        leagueID path int true "ID турнира"
// @Success      200 {object} services.LeagueTable
// @Failure      404 {object} map[string]string
// @Router       /api/leagues/{leagueID}/table [get]
func (h *LeagueHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	leagueID, err := getIDFromURL(r, "leagueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	table, err := h.standingsService.GetTable(r.Context(), leagueID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"table": table}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetLeaders godoc
// @Summary      Лучшие игроки турнира
// @Tags         leagues
// @Produce      json
// @Param        leagueID  path  int    true  "ID турнира"
// @Param        metric    query string false "goals, assists, goals_assists, clean_sheets, matches, yellow_cards, red_cards"
// @Param        per_match query bool   false "Среднее за матч"
// @Param        limit     query int    false "Размер списка (по умолчанию 10)"
// @Success      200 {array} stats.LeaderRow
// @Router       /api/leagues/{leagueID}/leaders [get]
func (h *LeagueHandler) GetLeaders(w http.ResponseWriter, r *http.Request) {
	leagueID, err := getIDFromURL(r, "leagueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	query, err := parseLeaderQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rows, err := h.statisticsService.LeagueLeaders(r.Context(), leagueID, query)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"league_id": leagueID, "metric": query.Metric, "leaders": rows}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func parseLeaderQuery(r *http.Request) (stats.LeaderQuery, error) {
	q := r.URL.Query()
	query := stats.LeaderQuery{Metric: stats.MetricGoals, Limit: defaultLeadersLimit}

	if raw := q.Get("metric"); raw != "" {
		metric, err := stats.ParseMetric(raw)
		if err != nil {
			return query, err
		}
		query.Metric = metric
	}
	if raw := q.Get("per_match"); raw != "" {
		perMatch, err := strconv.ParseBool(raw)
		if err != nil {
			return query, fmt.Errorf("invalid per_match value: %q", raw)
		}
		query.PerMatch = perMatch
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 || limit > maxLeadersLimit {
			return query, fmt.Errorf("limit must be between 1 and %d", maxLeadersLimit)
		}
		query.Limit = limit
	}
	return query, nil
}

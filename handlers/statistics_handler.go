package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fng3r/cis-haxball/services"
)

type StatisticsHandler struct {
	statisticsService services.StatisticsService
}

func NewStatisticsHandler(ss services.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: ss}
}

// parseScope: all (по умолчанию) или current - только активный сезон.
func parseScope(r *http.Request) (bool, error) {
	switch scope := r.URL.Query().Get("scope"); scope {
	case "", "all":
		return false, nil
	case "current":
		return true, nil
	default:
		return false, fmt.Errorf("invalid scope %q: expected all or current", scope)
	}
}

// GetTeamStatistics godoc
// @Summary      Статистика команды
// @Tags         statistics
// @Produce      json
// @Param        teamID path  int    true  "ID команды"
// @Param        scope  query string false "all или current"
// @Success      200 {object} stats.TeamReport
// @Router       /api/teams/{teamID}/statistics [get]
func (h *StatisticsHandler) GetTeamStatistics(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	current, err := parseScope(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	report, err := h.statisticsService.TeamStatistics(r.Context(), teamID, current)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"statistics": report}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetPlayerStatistics godoc
// @Summary      Статистика игрока
// @Tags         statistics
// @Produce      json
// @Param        playerID path  int    true  "ID игрока"
// @Param        scope    query string false "all или current"
// @Success      200 {object} stats.PlayerReport
// @Router       /api/players/{playerID}/statistics [get]
func (h *StatisticsHandler) GetPlayerStatistics(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	current, err := parseScope(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	report, err := h.statisticsService.PlayerStatistics(r.Context(), playerID, current)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"statistics": report}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetCategory godoc
// @Summary      Категория турнира по названию
// @Tags         statistics
// @Produce      json
// @Param        title query string true "Название турнира"
// @Router       /api/categories [get]
func (h *StatisticsHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		badRequestResponse(w, r, errors.New("title query parameter is required"))
		return
	}

	response := jsonResponse{"title": title, "category": h.statisticsService.Categorize(title)}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

package handlers

import (
	"net/http"

	"github.com/fng3r/cis-haxball/services"
)

type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

func NewScheduleHandler(ss services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: ss}
}

// GenerateSchedule godoc
// @Summary      Сгенерировать календарь турнира
// @Tags         leagues
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        leagueID path int                      true  "ID турнира"
// @Param        input    body services.ScheduleRequest false "Параметры генерации"
// @Success      201 {object} services.ScheduleResult
// @Failure      409 {object} map[string]string
// @Failure      422 {object} map[string]string
// @Router       /api/leagues/{leagueID}/schedule [post]
func (h *ScheduleHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	leagueID, err := getIDFromURL(r, "leagueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ScheduleRequest
	if err := readOptionalJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.scheduleService.Generate(r.Context(), leagueID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"schedule": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

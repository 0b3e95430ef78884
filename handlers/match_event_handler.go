package handlers

import (
	"log/slog"
	"net/http"

	"github.com/fng3r/cis-haxball/middleware"
	"github.com/fng3r/cis-haxball/services"
)

type MatchEventHandler struct {
	eventService services.MatchEventService
	logger       *slog.Logger
}

func NewMatchEventHandler(es services.MatchEventService, logger *slog.Logger) *MatchEventHandler {
	return &MatchEventHandler{eventService: es, logger: logger}
}

// audit пишет в журнал, какой оператор изменил протокол матча.
func (h *MatchEventHandler) audit(r *http.Request, action string, attrs ...slog.Attr) {
	operatorID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		h.logger.WarnContext(r.Context(), "protocol changed by unidentified operator",
			slog.String("action", action), slog.Any("error", err))
		return
	}
	attrs = append([]slog.Attr{slog.String("action", action), slog.Int("operator_id", operatorID)}, attrs...)
	h.logger.LogAttrs(r.Context(), slog.LevelInfo, "match protocol changed", attrs...)
}

// AddGoal godoc
// @Summary      Добавить гол в протокол матча
// @Tags         matches
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        matchID path int                      true "ID матча"
// @Param        input   body services.CreateGoalInput true "Гол"
// @Success      201 {object} models.Goal
// @Router       /api/matches/{matchID}/goals [post]
func (h *MatchEventHandler) AddGoal(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CreateGoalInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	goal, err := h.eventService.AddGoal(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.audit(r, "goal_added", slog.Int("match_id", matchID), slog.Int("goal_id", goal.ID))

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"goal": goal}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RemoveGoal godoc
// @Summary      Удалить гол
// @Tags         matches
// @Security     BearerAuth
// @Param        goalID path int true "ID гола"
// @Success      204
// @Router       /api/goals/{goalID} [delete]
func (h *MatchEventHandler) RemoveGoal(w http.ResponseWriter, r *http.Request) {
	goalID, err := getIDFromURL(r, "goalID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.eventService.RemoveGoal(r.Context(), goalID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.audit(r, "goal_removed", slog.Int("goal_id", goalID))
	w.WriteHeader(http.StatusNoContent)
}

// AddEvent godoc
// @Summary      Добавить карточку, сухой матч или автогол
// @Tags         matches
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        matchID path int                       true "ID матча"
// @Param        input   body services.CreateEventInput true "Событие"
// @Success      201 {object} models.OtherEvent
// @Router       /api/matches/{matchID}/events [post]
func (h *MatchEventHandler) AddEvent(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CreateEventInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	event, err := h.eventService.AddEvent(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.audit(r, "event_added", slog.Int("match_id", matchID), slog.Int("event_id", event.ID))

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"event": event}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RemoveEvent godoc
// @Summary      Удалить событие матча
// @Tags         matches
// @Security     BearerAuth
// @Param        eventID path int true "ID события"
// @Success      204
// @Router       /api/events/{eventID} [delete]
func (h *MatchEventHandler) RemoveEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.eventService.RemoveEvent(r.Context(), eventID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.audit(r, "event_removed", slog.Int("event_id", eventID))
	w.WriteHeader(http.StatusNoContent)
}

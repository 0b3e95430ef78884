package handlers

import (
	"net/http"

	"github.com/fng3r/cis-haxball/services"
)

type RatingHandler struct {
	ratingService services.RatingService
}

func NewRatingHandler(rs services.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: rs}
}

// GetLatest godoc
// @Summary      Последняя версия рейтинга
// @Tags         ratings
// @Produce      json
// @Success      200 {object} models.RatingVersion
// @Failure      404 {object} map[string]string
// @Router       /api/ratings/latest [get]
func (h *RatingHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	version, err := h.ratingService.GetLatest(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rating": version}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByNumber godoc
// @Summary      Версия рейтинга по номеру
// @Tags         ratings
// @Produce      json
// @Param        number path int true "Номер версии"
// @Success      200 {object} models.RatingVersion
// @Router       /api/ratings/{number} [get]
func (h *RatingHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	number, err := getIDFromURL(r, "number")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	version, err := h.ratingService.GetByNumber(r.Context(), number)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rating": version}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecomputeSeasonPoints godoc
// @Summary      Пересчитать очки сезона за матчи
// @Tags         ratings
// @Security     BearerAuth
// @Produce      json
// @Param        seasonID path int true "ID сезона"
// @Router       /api/seasons/{seasonID}/season-points [post]
func (h *RatingHandler) RecomputeSeasonPoints(w http.ResponseWriter, r *http.Request) {
	seasonID, err := getIDFromURL(r, "seasonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	points, err := h.ratingService.RecomputeSeasonPoints(r.Context(), seasonID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"season_id": seasonID, "points": points}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PublishRating godoc
// @Summary      Опубликовать новую версию рейтинга
// @Tags         ratings
// @Security     BearerAuth
// @Produce      json
// @Param        seasonID path int true "ID сезона-чемпионата, от которого считается рейтинг"
// @Success      201 {object} models.RatingVersion
// @Router       /api/seasons/{seasonID}/rating [post]
func (h *RatingHandler) PublishRating(w http.ResponseWriter, r *http.Request) {
	seasonID, err := getIDFromURL(r, "seasonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	version, err := h.ratingService.PublishRating(r.Context(), seasonID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"rating": version}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

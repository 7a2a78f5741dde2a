package adaptor

import (
	"net/http"
	"time"

	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/dto/response"
	"cinema-manager/internal/usecase"
	"cinema-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ScreeningHandler struct {
	service usecase.ScreeningService
	log     *zap.Logger
	now     func() time.Time
}

func NewScreeningHandler(service usecase.ScreeningService, log *zap.Logger) *ScreeningHandler {
	return &ScreeningHandler{
		service: service,
		log:     log.With(zap.String("handler", "screening")),
		now:     utils.NaiveNow,
	}
}

// GetScreenings handles GET /api/screenings?hall_id=&movie_id=&from=
func (h *ScreeningHandler) GetScreenings(w http.ResponseWriter, r *http.Request) {
	var filter request.ScreeningFilter
	if err := decodeQuery(r, &filter); err != nil {
		utils.ResponseBadRequest(w, "Invalid query parameters", err.Error())
		return
	}

	screenings, err := h.service.ListScreenings(r.Context(), &filter)
	if err != nil {
		handleServiceError(h.log, w, err, "get screenings")
		return
	}

	respondList(w, r, "Screenings retrieved successfully", screenings)
}

// GetBookable handles GET /api/screenings/bookable
func (h *ScreeningHandler) GetBookable(w http.ResponseWriter, r *http.Request) {
	screenings, err := h.service.ListBookable(r.Context(), h.now())
	if err != nil {
		handleServiceError(h.log, w, err, "get bookable screenings")
		return
	}

	utils.ResponseSuccess(w, "Screenings retrieved successfully", screenings)
}

// GetUpcomingByHall handles GET /api/halls/{id}/screenings/upcoming
func (h *ScreeningHandler) GetUpcomingByHall(w http.ResponseWriter, r *http.Request) {
	screenings, err := h.service.FindUpcomingByHall(r.Context(), chi.URLParam(r, "id"), h.now())
	if err != nil {
		handleServiceError(h.log, w, err, "get upcoming screenings")
		return
	}

	utils.ResponseSuccess(w, "Screenings retrieved successfully", screenings)
}

// GetScreeningByID handles GET /api/screenings/{id}
func (h *ScreeningHandler) GetScreeningByID(w http.ResponseWriter, r *http.Request) {
	screening, err := h.service.GetScreening(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get screening by ID")
		return
	}

	utils.ResponseSuccess(w, "Screening retrieved successfully", screening)
}

// ScheduleScreening handles POST /api/screenings
func (h *ScreeningHandler) ScheduleScreening(w http.ResponseWriter, r *http.Request) {
	var req request.ScreeningRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	screening, err := h.service.ScheduleScreening(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "schedule screening")
		return
	}

	utils.ResponseCreated(w, "Screening scheduled successfully", screening)
}

// CheckOverlap handles POST /api/screenings/overlap
func (h *ScreeningHandler) CheckOverlap(w http.ResponseWriter, r *http.Request) {
	var req request.OverlapRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	overlap, err := h.service.HasOverlap(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "check overlap")
		return
	}

	utils.ResponseSuccess(w, "Overlap checked", response.OverlapResponse{
		HallID:    req.HallID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Overlap:   overlap,
	})
}

// UpdateScreening handles PUT /api/screenings/{id}
func (h *ScreeningHandler) UpdateScreening(w http.ResponseWriter, r *http.Request) {
	var req request.ScreeningRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	screening, err := h.service.UpdateScreening(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update screening")
		return
	}

	utils.ResponseSuccess(w, "Screening updated successfully", screening)
}

// DeleteScreening handles DELETE /api/screenings/{id}
func (h *ScreeningHandler) DeleteScreening(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteScreening(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete screening")
		return
	}

	utils.ResponseSuccess(w, "Screening deleted successfully", nil)
}

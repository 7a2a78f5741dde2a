package adaptor

import (
	"net/http"

	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/usecase"
	"cinema-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type HallHandler struct {
	service usecase.HallService
	log     *zap.Logger
}

func NewHallHandler(service usecase.HallService, log *zap.Logger) *HallHandler {
	return &HallHandler{
		service: service,
		log:     log.With(zap.String("handler", "hall")),
	}
}

// GetHalls handles GET /api/halls
func (h *HallHandler) GetHalls(w http.ResponseWriter, r *http.Request) {
	halls, err := h.service.GetHalls(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get halls")
		return
	}

	respondList(w, r, "Halls retrieved successfully", halls)
}

// GetHallByID handles GET /api/halls/{id}
func (h *HallHandler) GetHallByID(w http.ResponseWriter, r *http.Request) {
	hall, err := h.service.GetHallByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get hall by ID")
		return
	}

	utils.ResponseSuccess(w, "Hall retrieved successfully", hall)
}

// CreateHall handles POST /api/halls
func (h *HallHandler) CreateHall(w http.ResponseWriter, r *http.Request) {
	var req request.HallRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	hall, err := h.service.CreateHall(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create hall")
		return
	}

	utils.ResponseCreated(w, "Hall created successfully", hall)
}

// UpdateHall handles PUT /api/halls/{id}
func (h *HallHandler) UpdateHall(w http.ResponseWriter, r *http.Request) {
	var req request.HallRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	hall, err := h.service.UpdateHall(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update hall")
		return
	}

	utils.ResponseSuccess(w, "Hall updated successfully", hall)
}

// DeleteHall handles DELETE /api/halls/{id}
func (h *HallHandler) DeleteHall(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteHall(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete hall")
		return
	}

	utils.ResponseSuccess(w, "Hall deleted successfully", nil)
}

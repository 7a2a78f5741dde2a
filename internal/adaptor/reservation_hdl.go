package adaptor

import (
	"net/http"

	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/usecase"
	"cinema-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// GetReservations handles GET /api/reservations
func (h *ReservationHandler) GetReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.service.ListReservations(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get reservations")
		return
	}

	respondList(w, r, "Reservations retrieved successfully", reservations)
}

// GetReservationByID handles GET /api/reservations/{id}
func (h *ReservationHandler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	reservation, err := h.service.GetReservation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get reservation by ID")
		return
	}

	utils.ResponseSuccess(w, "Reservation retrieved successfully", reservation)
}

// AddReservation handles POST /api/reservations
func (h *ReservationHandler) AddReservation(w http.ResponseWriter, r *http.Request) {
	var req request.ReservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reservation, err := h.service.AddReservation(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "add reservation")
		return
	}

	utils.ResponseCreated(w, "Reservation created successfully", reservation)
}

// UpdateReservation handles PUT /api/reservations/{id}
func (h *ReservationHandler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	var req request.ReservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reservation, err := h.service.UpdateReservation(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update reservation")
		return
	}

	utils.ResponseSuccess(w, "Reservation updated successfully", reservation)
}

// DeleteReservation handles DELETE /api/reservations/{id}
func (h *ReservationHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteReservation(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete reservation")
		return
	}

	utils.ResponseSuccess(w, "Reservation deleted successfully", nil)
}

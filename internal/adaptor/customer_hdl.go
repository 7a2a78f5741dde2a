package adaptor

import (
	"net/http"

	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/usecase"
	"cinema-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	service      usecase.CustomerService
	reservations usecase.ReservationService
	log          *zap.Logger
}

func NewCustomerHandler(service usecase.CustomerService, reservations usecase.ReservationService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		service:      service,
		reservations: reservations,
		log:          log.With(zap.String("handler", "customer")),
	}
}

// GetCustomers handles GET /api/customers
func (h *CustomerHandler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.GetCustomers(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get customers")
		return
	}

	respondList(w, r, "Customers retrieved successfully", customers)
}

// GetCustomerByID handles GET /api/customers/{id}
func (h *CustomerHandler) GetCustomerByID(w http.ResponseWriter, r *http.Request) {
	customer, err := h.service.GetCustomerByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get customer by ID")
		return
	}

	utils.ResponseSuccess(w, "Customer retrieved successfully", customer)
}

// GetCustomerReservations handles GET /api/customers/{id}/reservations
func (h *CustomerHandler) GetCustomerReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.reservations.ListByCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get customer reservations")
		return
	}

	respondList(w, r, "Reservations retrieved successfully", reservations)
}

// CreateCustomer handles POST /api/customers
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req request.CustomerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	customer, err := h.service.CreateCustomer(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create customer")
		return
	}

	utils.ResponseCreated(w, "Customer created successfully", customer)
}

// UpdateCustomer handles PUT /api/customers/{id}
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req request.CustomerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	customer, err := h.service.UpdateCustomer(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update customer")
		return
	}

	utils.ResponseSuccess(w, "Customer updated successfully", customer)
}

// DeleteCustomer handles DELETE /api/customers/{id}
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCustomer(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete customer")
		return
	}

	utils.ResponseSuccess(w, "Customer deleted successfully", nil)
}

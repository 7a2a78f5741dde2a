package wire

import (
	"cinema-manager/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReservation(r chi.Router, reservationHandler *adaptor.ReservationHandler) {
	r.Route("/api/reservations", func(r chi.Router) {
		r.Get("/", reservationHandler.GetReservations)
		r.Post("/", reservationHandler.AddReservation)
		r.Get("/{id}", reservationHandler.GetReservationByID)
		r.Put("/{id}", reservationHandler.UpdateReservation)
		r.Delete("/{id}", reservationHandler.DeleteReservation)
	})
}

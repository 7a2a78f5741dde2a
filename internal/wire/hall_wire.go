package wire

import (
	"cinema-manager/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireHall(r chi.Router, hallHandler *adaptor.HallHandler, screeningHandler *adaptor.ScreeningHandler) {
	r.Route("/api/halls", func(r chi.Router) {
		r.Get("/", hallHandler.GetHalls)
		r.Post("/", hallHandler.CreateHall)
		r.Get("/{id}", hallHandler.GetHallByID)
		r.Put("/{id}", hallHandler.UpdateHall)
		r.Delete("/{id}", hallHandler.DeleteHall)

		// GET /api/halls/{id}/screenings/upcoming
		r.Get("/{id}/screenings/upcoming", screeningHandler.GetUpcomingByHall)
	})
}

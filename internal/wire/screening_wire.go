package wire

import (
	"cinema-manager/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireScreening(r chi.Router, screeningHandler *adaptor.ScreeningHandler) {
	r.Route("/api/screenings", func(r chi.Router) {
		r.Get("/", screeningHandler.GetScreenings)
		r.Post("/", screeningHandler.ScheduleScreening)

		// static segments are matched before /{id}
		r.Get("/bookable", screeningHandler.GetBookable)
		r.Post("/overlap", screeningHandler.CheckOverlap)

		r.Get("/{id}", screeningHandler.GetScreeningByID)
		r.Put("/{id}", screeningHandler.UpdateScreening)
		r.Delete("/{id}", screeningHandler.DeleteScreening)
	})
}

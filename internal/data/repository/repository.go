package repository

import (
	"cinema-manager/pkg/database"

	"go.uber.org/zap"
)

// Repository groups every store the services depend on. Both the Postgres
// and the in-memory backends fill the same struct.
type Repository struct {
	Movie       MovieRepository
	Hall        HallRepository
	Customer    CustomerRepository
	Screening   ScreeningRepository
	Reservation ReservationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Movie:       NewMovieRepository(db, log),
		Hall:        NewHallRepository(db, log),
		Customer:    NewCustomerRepository(db, log),
		Screening:   NewScreeningRepository(db, log),
		Reservation: NewReservationRepository(db, log),
	}
}

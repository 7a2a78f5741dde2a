package entity

import (
	"time"

	"github.com/google/uuid"
)

type Reservation struct {
	Base
	CustomerID      uuid.UUID `db:"customer_id"`
	ScreeningID     uuid.UUID `db:"screening_id"`
	ReservationTime time.Time `db:"reservation_time"`
}

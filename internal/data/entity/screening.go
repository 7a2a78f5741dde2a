package entity

import (
	"time"

	"github.com/google/uuid"
)

// Screening occupies its hall for the half-open interval [StartTime, EndTime).
type Screening struct {
	Base
	MovieID   uuid.UUID `db:"movie_id"`
	HallID    uuid.UUID `db:"hall_id"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
}

// Overlaps reports whether s occupies any instant of [start, end).
// Touching endpoints do not overlap.
func (s *Screening) Overlaps(start, end time.Time) bool {
	return Overlaps(s.StartTime, s.EndTime, start, end)
}

// Overlaps is the half-open interval predicate: s1 < e2 && e1 > s2.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

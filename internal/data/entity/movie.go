package entity

import "time"

type Movie struct {
	Base
	Title       string `db:"title"`
	Description string `db:"description"`
	Genre       string `db:"genre"`
	Language    string `db:"language"`
	Duration    int    `db:"duration"` // minutes
	ReleaseYear int    `db:"release_year"`
}

// Runtime returns the duration as a time.Duration.
func (m *Movie) Runtime() time.Duration {
	return time.Duration(m.Duration) * time.Minute
}

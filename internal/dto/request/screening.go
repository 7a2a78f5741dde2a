package request

// ScreeningRequest schedules or reschedules a screening. The end time is
// always derived from the movie's duration.
type ScreeningRequest struct {
	MovieID   string `json:"movie_id" validate:"required,uuid"`
	HallID    string `json:"hall_id" validate:"required,uuid"`
	StartTime string `json:"start_time" validate:"required"`
}

type OverlapRequest struct {
	HallID    string `json:"hall_id" validate:"required,uuid"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// ScreeningFilter is decoded from the query string of GET /api/screenings.
type ScreeningFilter struct {
	HallID  string `schema:"hall_id" validate:"omitempty,uuid"`
	MovieID string `schema:"movie_id" validate:"omitempty,uuid"`
	From    string `schema:"from"`
}

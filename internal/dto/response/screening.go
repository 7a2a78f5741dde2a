package response

import (
	"cinema-manager/internal/data/entity"
	"cinema-manager/pkg/utils"
)

// ScreeningResponse renders times in the naive layout, e.g. 2024-01-01T18:00.
type ScreeningResponse struct {
	ID        string `json:"id"`
	MovieID   string `json:"movie_id"`
	HallID    string `json:"hall_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type OverlapResponse struct {
	HallID    string `json:"hall_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Overlap   bool   `json:"overlap"`
}

func ScreeningToResponse(screening *entity.Screening) ScreeningResponse {
	return ScreeningResponse{
		ID:        screening.ID.String(),
		MovieID:   screening.MovieID.String(),
		HallID:    screening.HallID.String(),
		StartTime: utils.FormatTimestamp(screening.StartTime),
		EndTime:   utils.FormatTimestamp(screening.EndTime),
	}
}

func ScreeningsToResponse(screenings []*entity.Screening) []ScreeningResponse {
	out := make([]ScreeningResponse, len(screenings))
	for i, screening := range screenings {
		out[i] = ScreeningToResponse(screening)
	}
	return out
}

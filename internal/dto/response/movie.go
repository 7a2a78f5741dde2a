package response

import (
	"time"

	"cinema-manager/internal/data/entity"
)

type MovieResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Genre       string    `json:"genre,omitempty"`
	Language    string    `json:"language,omitempty"`
	Duration    int       `json:"duration"`
	ReleaseYear int       `json:"release_year"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Description: movie.Description,
		Genre:       movie.Genre,
		Language:    movie.Language,
		Duration:    movie.Duration,
		ReleaseYear: movie.ReleaseYear,
		CreatedAt:   movie.CreatedAt,
		UpdatedAt:   movie.UpdatedAt,
	}
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-manager/internal/apperror"
	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/dto/response"
	"cinema-manager/pkg/utils"

	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context) ([]response.MovieResponse, error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewMovieService(
	repo *repository.Repository,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
		now:  utils.NaiveNow,
	}
}

func (s *movieService) GetMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}

	out := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		out[i] = response.MovieToResponse(movie)
	}
	return out, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	movie, err := s.find(ctx, movieID)
	if err != nil {
		return nil, err
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) find(ctx context.Context, movieID string) (*entity.Movie, error) {
	id, err := parseID("id", movieID)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie by id: %w", err)
	}
	if movie == nil {
		return nil, apperror.NotFound("movie", id)
	}
	return movie, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	movie := &entity.Movie{}
	applyMovie(movie, req)
	movie.Touch(s.now())

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		logFailure(s.log, "Failed to create movie", err, zap.String("title", req.Title))
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
		zap.Int("duration", movie.Duration),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	movie, err := s.find(ctx, movieID)
	if err != nil {
		return nil, err
	}

	applyMovie(movie, req)
	movie.Touch(s.now())

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		logFailure(s.log, "Failed to update movie", err, zap.String("movie_id", movieID))
		return nil, fmt.Errorf("update movie: %w", err)
	}

	s.log.Info("Movie updated", zap.String("movie_id", movieID))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

// DeleteMovie refuses to remove a movie that still has screenings.
func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	movie, err := s.find(ctx, movieID)
	if err != nil {
		return err
	}

	screenings, err := s.repo.Screening.FindByMovieID(ctx, movie.ID)
	if err != nil {
		return fmt.Errorf("check movie screenings: %w", err)
	}
	if len(screenings) > 0 {
		err := apperror.InUse("movie", movie.ID, fmt.Sprintf("%d screening(s)", len(screenings)))
		logFailure(s.log, "Movie still scheduled", err, zap.String("movie_id", movieID))
		return err
	}

	if err := s.repo.Movie.Delete(ctx, movie.ID); err != nil {
		logFailure(s.log, "Failed to delete movie", err, zap.String("movie_id", movieID))
		return fmt.Errorf("delete movie: %w", err)
	}
	return nil
}

func applyMovie(movie *entity.Movie, req *request.MovieRequest) {
	movie.Title = req.Title
	movie.Description = req.Description
	movie.Genre = req.Genre
	movie.Language = req.Language
	movie.Duration = req.Duration
	movie.ReleaseYear = req.ReleaseYear
}

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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScreeningService schedules screenings. The end time of a screening is
// always start + movie duration, and no two screenings of one hall overlap.
type ScreeningService interface {
	ScheduleScreening(ctx context.Context, req *request.ScreeningRequest) (*response.ScreeningResponse, error)
	UpdateScreening(ctx context.Context, screeningID string, req *request.ScreeningRequest) (*response.ScreeningResponse, error)
	DeleteScreening(ctx context.Context, screeningID string) error

	HasOverlap(ctx context.Context, req *request.OverlapRequest) (bool, error)
	FindUpcomingByHall(ctx context.Context, hallID string, now time.Time) ([]response.ScreeningResponse, error)

	GetScreening(ctx context.Context, screeningID string) (*response.ScreeningResponse, error)
	ListScreenings(ctx context.Context, filter *request.ScreeningFilter) ([]response.ScreeningResponse, error)
	ListByHall(ctx context.Context, hallID string) ([]response.ScreeningResponse, error)
	ListByMovie(ctx context.Context, movieID string) ([]response.ScreeningResponse, error)
	FindUpcoming(ctx context.Context, now time.Time) ([]response.ScreeningResponse, error)
	ListBookable(ctx context.Context, now time.Time) ([]response.ScreeningResponse, error)
}

type screeningService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewScreeningService(repo *repository.Repository, log *zap.Logger) ScreeningService {
	return &screeningService{
		repo: repo,
		log:  log.With(zap.String("service", "screening")),
		now:  utils.NaiveNow,
	}
}

// ScheduleScreening resolves the movie and hall, derives the interval and
// hands the check-and-insert to the store as one unit.
func (s *screeningService) ScheduleScreening(ctx context.Context, req *request.ScreeningRequest) (*response.ScreeningResponse, error) {
	screening, err := s.build(ctx, req)
	if err != nil {
		logFailure(s.log, "Screening rejected", err,
			zap.String("movie_id", req.MovieID),
			zap.String("hall_id", req.HallID),
			zap.String("start_time", req.StartTime),
		)
		return nil, err
	}
	screening.Touch(s.now())

	if err := s.repo.Screening.Create(ctx, screening); err != nil {
		logFailure(s.log, "Failed to schedule screening", err,
			zap.String("hall_id", screening.HallID.String()),
			zap.Time("start_time", screening.StartTime),
			zap.Time("end_time", screening.EndTime),
		)
		return nil, fmt.Errorf("schedule screening: %w", err)
	}

	s.log.Info("Screening scheduled",
		zap.String("screening_id", screening.ID.String()),
		zap.String("movie_id", screening.MovieID.String()),
		zap.String("hall_id", screening.HallID.String()),
		zap.Time("start_time", screening.StartTime),
		zap.Time("end_time", screening.EndTime),
	)

	resp := response.ScreeningToResponse(screening)
	return &resp, nil
}

// UpdateScreening replaces movie, hall and start time. The overlap check
// ignores the screening's own current interval.
func (s *screeningService) UpdateScreening(ctx context.Context, screeningID string, req *request.ScreeningRequest) (*response.ScreeningResponse, error) {
	existing, err := s.find(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	screening, err := s.build(ctx, req)
	if err != nil {
		logFailure(s.log, "Screening update rejected", err, zap.String("screening_id", screeningID))
		return nil, err
	}
	screening.Base = existing.Base
	screening.Touch(s.now())

	if err := s.repo.Screening.Update(ctx, screening); err != nil {
		logFailure(s.log, "Failed to update screening", err,
			zap.String("screening_id", screeningID),
			zap.String("hall_id", screening.HallID.String()),
		)
		return nil, fmt.Errorf("update screening: %w", err)
	}

	s.log.Info("Screening updated",
		zap.String("screening_id", screeningID),
		zap.String("hall_id", screening.HallID.String()),
		zap.Time("start_time", screening.StartTime),
	)

	resp := response.ScreeningToResponse(screening)
	return &resp, nil
}

// DeleteScreening is a no-op for an unknown id but refuses to orphan
// reservations.
func (s *screeningService) DeleteScreening(ctx context.Context, screeningID string) error {
	id, err := parseID("id", screeningID)
	if err != nil {
		return err
	}

	count, err := s.repo.Reservation.CountByScreeningID(ctx, id)
	if err != nil {
		return fmt.Errorf("check screening reservations: %w", err)
	}
	if count > 0 {
		err := apperror.InUse("screening", id, fmt.Sprintf("%d reservation(s)", count))
		logFailure(s.log, "Screening still booked", err, zap.String("screening_id", screeningID))
		return err
	}

	if err := s.repo.Screening.Delete(ctx, id); err != nil {
		logFailure(s.log, "Failed to delete screening", err, zap.String("screening_id", screeningID))
		return fmt.Errorf("delete screening: %w", err)
	}
	return nil
}

// HasOverlap applies the same half-open rule as scheduling, without writing.
// A store failure is returned as an error, never as false.
func (s *screeningService) HasOverlap(ctx context.Context, req *request.OverlapRequest) (bool, error) {
	if err := validate(req); err != nil {
		return false, err
	}
	hallID, err := parseID("hall_id", req.HallID)
	if err != nil {
		return false, err
	}
	start, err := parseTime("start_time", req.StartTime)
	if err != nil {
		return false, err
	}
	end, err := parseTime("end_time", req.EndTime)
	if err != nil {
		return false, err
	}
	if !end.After(start) {
		return false, apperror.InvalidInterval("end %s is not after start %s",
			utils.FormatTimestamp(end), utils.FormatTimestamp(start))
	}

	exists, err := s.repo.Screening.ExistsOverlap(ctx, hallID, start, end)
	if err != nil {
		logFailure(s.log, "Failed to check overlap", err, zap.String("hall_id", req.HallID))
		return false, fmt.Errorf("check overlap: %w", err)
	}
	return exists, nil
}

func (s *screeningService) FindUpcomingByHall(ctx context.Context, hallID string, now time.Time) ([]response.ScreeningResponse, error) {
	id, err := parseID("hall_id", hallID)
	if err != nil {
		return nil, err
	}

	screenings, err := s.repo.Screening.FindByHallID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find upcoming screenings by hall: %w", err)
	}

	return response.ScreeningsToResponse(startingFrom(screenings, now)), nil
}

func (s *screeningService) GetScreening(ctx context.Context, screeningID string) (*response.ScreeningResponse, error) {
	screening, err := s.find(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	resp := response.ScreeningToResponse(screening)
	return &resp, nil
}

// ListScreenings narrows by hall, movie and earliest start. All filters are
// optional and combine with AND.
func (s *screeningService) ListScreenings(ctx context.Context, filter *request.ScreeningFilter) ([]response.ScreeningResponse, error) {
	if filter == nil {
		filter = &request.ScreeningFilter{}
	}
	if err := validate(filter); err != nil {
		return nil, err
	}

	var (
		screenings []*entity.Screening
		err        error
	)
	switch {
	case filter.HallID != "":
		hallID, _ := uuid.Parse(filter.HallID)
		screenings, err = s.repo.Screening.FindByHallID(ctx, hallID)
	case filter.MovieID != "":
		movieID, _ := uuid.Parse(filter.MovieID)
		screenings, err = s.repo.Screening.FindByMovieID(ctx, movieID)
	default:
		screenings, err = s.repo.Screening.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list screenings: %w", err)
	}

	if filter.HallID != "" && filter.MovieID != "" {
		movieID, _ := uuid.Parse(filter.MovieID)
		kept := screenings[:0]
		for _, screening := range screenings {
			if screening.MovieID == movieID {
				kept = append(kept, screening)
			}
		}
		screenings = kept
	}

	if filter.From != "" {
		from, err := parseTime("from", filter.From)
		if err != nil {
			return nil, err
		}
		screenings = startingFrom(screenings, from)
	}

	return response.ScreeningsToResponse(screenings), nil
}

func (s *screeningService) ListByHall(ctx context.Context, hallID string) ([]response.ScreeningResponse, error) {
	return s.ListScreenings(ctx, &request.ScreeningFilter{HallID: hallID})
}

func (s *screeningService) ListByMovie(ctx context.Context, movieID string) ([]response.ScreeningResponse, error) {
	return s.ListScreenings(ctx, &request.ScreeningFilter{MovieID: movieID})
}

func (s *screeningService) FindUpcoming(ctx context.Context, now time.Time) ([]response.ScreeningResponse, error) {
	screenings, err := s.repo.Screening.FindUpcoming(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("find upcoming screenings: %w", err)
	}
	return response.ScreeningsToResponse(screenings), nil
}

// ListBookable returns the upcoming screenings, or every screening when
// nothing is upcoming.
func (s *screeningService) ListBookable(ctx context.Context, now time.Time) ([]response.ScreeningResponse, error) {
	screenings, err := s.repo.Screening.FindUpcoming(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("find bookable screenings: %w", err)
	}
	if len(screenings) == 0 {
		screenings, err = s.repo.Screening.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("find bookable screenings: %w", err)
		}
	}
	return response.ScreeningsToResponse(screenings), nil
}

func (s *screeningService) find(ctx context.Context, screeningID string) (*entity.Screening, error) {
	id, err := parseID("id", screeningID)
	if err != nil {
		return nil, err
	}

	screening, err := s.repo.Screening.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get screening by id: %w", err)
	}
	if screening == nil {
		return nil, apperror.NotFound("screening", id)
	}
	return screening, nil
}

// build validates the request, resolves movie and hall and derives the
// occupied interval. Nothing is written.
func (s *screeningService) build(ctx context.Context, req *request.ScreeningRequest) (*entity.Screening, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	movieID, err := parseID("movie_id", req.MovieID)
	if err != nil {
		return nil, err
	}
	hallID, err := parseID("hall_id", req.HallID)
	if err != nil {
		return nil, err
	}
	start, err := parseTime("start_time", req.StartTime)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, apperror.NotFound("movie", movieID)
	}

	hall, err := s.repo.Hall.FindByID(ctx, hallID)
	if err != nil {
		return nil, fmt.Errorf("find hall: %w", err)
	}
	if hall == nil {
		return nil, apperror.NotFound("hall", hallID)
	}

	end := start.Add(movie.Runtime())
	if !end.After(start) {
		return nil, apperror.InvalidInterval("movie %s has duration %d minutes", movie.ID, movie.Duration)
	}

	return &entity.Screening{
		MovieID:   movie.ID,
		HallID:    hall.ID,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// startingFrom keeps screenings with start >= from. Input order is kept.
func startingFrom(screenings []*entity.Screening, from time.Time) []*entity.Screening {
	out := make([]*entity.Screening, 0, len(screenings))
	for _, screening := range screenings {
		if !screening.StartTime.Before(from) {
			out = append(out, screening)
		}
	}
	return out
}

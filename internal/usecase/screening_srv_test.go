package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cinema-manager/internal/apperror"
	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schedule(movie *entity.Movie, hall *entity.Hall, start string) *request.ScreeningRequest {
	return &request.ScreeningRequest{MovieID: movie.ID.String(), HallID: hall.ID.String(), StartTime: start}
}

func TestScheduleScreeningScenario(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	svc := newScreeningService(repo)
	movie := seedMovie(t, repo, 120)
	hall := seedHall(t, repo, "H")

	first, err := svc.ScheduleScreening(ctx, schedule(movie, hall, "2024-01-01T18:00"))
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "2024-01-01T18:00", first.StartTime)
	assert.Equal(t, "2024-01-01T20:00", first.EndTime)

	_, err = svc.ScheduleScreening(ctx, schedule(movie, hall, "2024-01-01T19:00"))
	require.ErrorIs(t, err, apperror.ErrHallConflict)
	var conflict *apperror.HallConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, hall.ID, conflict.HallID)
	assert.Equal(t, first.ID, conflict.ScreeningID.String())

	second, err := svc.ScheduleScreening(ctx, schedule(movie, hall, "2024-01-01T20:00"))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01T22:00", second.EndTime)
}

func TestScheduleTouchingIntervals(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	svc := newScreeningService(repo)
	movie := seedMovie(t, repo, 60)
	hall := seedHall(t, repo, "H")

	_, err := svc.ScheduleScreening(ctx, schedule(movie, hall, "2024-01-01T20:00"))
	require.NoError(t, err)
	_, err = svc.ScheduleScreening(ctx, schedule(movie, hall, "2024-01-01T21:00"))
	require.NoError(t, err)
	_, err = svc.ScheduleScreening(ctx, schedule(movie, hall, "2024-01-01T19:00"))
	require.NoError(t, err)

	list, err := svc.ListByHall(ctx, hall.ID.String())
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestScheduleSameTimeDifferentHalls(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	svc := newScreeningService(repo)
	movie := seedMovie(t, repo, 90)

	for _, name := range []string{"A", "B"} {
		_, err := svc.ScheduleScreening(ctx, schedule(movie, seedHall(t, repo, name), "2024-01-01T18:00"))
		require.NoError(t, err)
	}
}

func TestScheduleRejectsNonPositiveDuration(t *testing.T) {
	ctx := context.Background()

	for _, duration := range []int{0, -30} {
		repo := newRepo()
		svc := newScreeningService(repo)
		movie := seedMovie(t, repo, duration)
		hall := seedHall(t, repo, "H")

		_, err := svc.ScheduleScreening(ctx, schedule(movie, hall, "2024-01-01T18:00"))
		assert.ErrorIs(t, err, apperror.ErrInvalidInterval, "duration %d", duration)

		all, err := repo.Screening.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	}
}

func TestScheduleUnknownReferences(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	svc := newScreeningService(repo)
	movie := seedMovie(t, repo, 90)
	hall := seedHall(t, repo, "H")

	_, err := svc.ScheduleScreening(ctx, &request.ScreeningRequest{
		MovieID: movie.ID.String(), HallID: uuid.NewString(), StartTime: "2024-01-01T18:00",
	})
	var notFound *apperror.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "hall", notFound.Entity)

	_, err = svc.ScheduleScreening(ctx, &request.ScreeningRequest{
		MovieID: uuid.NewString(), HallID: hall.ID.String(), StartTime: "2024-01-01T18:00",
	})
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "movie", notFound.Entity)

	all, err := repo.Screening.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestScheduleValidation(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	svc := newScreeningService(repo)
	movie := seedMovie(t, repo, 90)
	hall := seedHall(t, repo, "H")

	_, err := svc.ScheduleScreening(ctx, &request.ScreeningRequest{MovieID: "x", HallID: hall.ID.String()})
	var ve *apperror.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "movie_id")
	assert.Contains(t, ve.Fields, "start_time")

	_, err = svc.ScheduleScreening(ctx, schedule(movie, hall, "tomorrow evening"))
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "start_time")
}

func TestConcurrentScheduleSameHall(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	svc := newScreeningService(repo)
	movie := seedMovie(t, repo, 120)
	hall := seedHall(t, repo, "H")

	const n = 50
	starts := make([]string, n)
	for i := range starts {
		// pairwise overlapping: every start lies within the first 100 minutes
		starts[i] = time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC).
			Add(time.Duration(i*2) * time.Minute).Format("2006-01-02T15:04")
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
		release   = make(chan struct{})
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(start string) {
			defer wg.Done()
			<-release
			_, err := svc.ScheduleScreening(ctx, schedule(movie, hall, start))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, apperror.ErrHallConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(starts[i])
	}
	close(release)
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, n-1, conflicts)

	persisted, err := repo.Screening.FindByHallID(ctx, hall.ID)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
}

// failingScreenings simulates a lost database connection.
type failingScreenings struct {
	repository.ScreeningRepository
	err error
}

func (f failingScreenings) Create(context.Context, *entity.Screening) error {
	return f.err
}

func (f failingScreenings) ExistsOverlap(context.Context, uuid.UUID, time.Time, time.Time) (bool, error) {
	return false, f.err
}

func TestStorageFailureIsNotAConflict(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	movie := seedMovie(t, repo, 90)
	hall := seedHall(t, repo, "H")
	repo.Screening = failingScreenings{
		ScreeningRepository: repo.Screening,
		err:                 apperror.Storage("create screening", errors.New("connection refused")),
	}
	svc := newScreeningService(repo)

	_, err := svc.ScheduleScreening(ctx, schedule(movie, hall, "2024-01-01T18:00"))
	assert.ErrorIs(t, err, apperror.ErrStorageUnavailable)
	assert.NotErrorIs(t, err, apperror.ErrHallConflict)

	overlap, err := svc.HasOverlap(ctx, &request.OverlapRequest{
		HallID: hall.ID.String(), StartTime: "2024-01-01T18:00", EndTime: "2024-01-01T19:00",
	})
	assert.ErrorIs(t, err, apperror.ErrStorageUnavailable)
	assert.False(t, overlap)
}

func TestHasOverlap(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	svc := newScreeningService(repo)
	movie := seedMovie(t, repo, 120)
	hall := seedHall(t, repo, "H")

	_, err := svc.ScheduleScreening(ctx, schedule(movie, hall, "2024-01-01T18:00"))
	require.NoError(t, err)

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"inside", "2024-01-01T18:30", "2024-01-01T19:00", true},
		{"covering", "2024-01-01T17:00", "2024-01-01T21:00", true},
		{"touching end", "2024-01-01T20:00", "2024-01-01T21:00", false},
		{"touching start", "2024-01-01T17:00", "2024-01-01T18:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.HasOverlap(ctx, &request.OverlapRequest{HallID: hall.ID.String(), StartTime: tt.start, EndTime: tt.end})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	other := seedHall(t, repo, "Other")
	got, err := svc.HasOverlap(ctx, &request.OverlapRequest{HallID: other.ID.String(), StartTime: "2024-01-01T18:30", EndTime: "2024-01-01T19:00"})
	require.NoError(t, err)
	assert.False(t, got)

	for _, end := range []string{"2024-01-01T18:00", "2024-01-01T17:00"} {
		_, err = svc.HasOverlap(ctx, &request.OverlapRequest{HallID: hall.ID.String(), StartTime: "2024-01-01T18:00", EndTime: end})
		assert.ErrorIs(t, err, apperror.ErrInvalidInterval)
	}
}

func TestFindUpcomingByHall(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	svc := newScreeningService(repo)
	movie := seedMovie(t, repo, 60)
	hall := seedHall(t, repo, "H")
	other := seedHall(t, repo, "Other")

	for _, start := range []string{"2024-01-02T18:00", "2023-12-31T18:00", "2024-01-01T12:00", "2024-01-02T10:00"} {
		_, err := svc.ScheduleScreening(ctx, schedule(movie, hall, start))
		require.NoError(t, err)
	}
	_, err := svc.ScheduleScreening(ctx, schedule(movie, other, "2024-01-03T18:00"))
	require.NoError(t, err)

	upcoming, err := svc.FindUpcomingByHall(ctx, hall.ID.String(), fixedNow)
	require.NoError(t, err)

	starts := make([]string, len(upcoming))
	for i, s := range upcoming {
		starts[i] = s.StartTime
	}
	assert.Equal(t, []string{"2024-01-01T12:00", "2024-01-02T10:00", "2024-01-02T18:00"}, starts)

	none, err := svc.FindUpcomingByHall(ctx, uuid.NewString(), fixedNow)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateScreening(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	svc := newScreeningService(repo)
	movie := seedMovie(t, repo, 120)
	hall := seedHall(t, repo, "H")

	first, err := svc.ScheduleScreening(ctx, schedule(movie, hall, "2024-01-01T18:00"))
	require.NoError(t, err)
	second, err := svc.ScheduleScreening(ctx, schedule(movie, hall, "2024-01-01T21:00"))
	require.NoError(t, err)

	// shifting within its own slot does not conflict with itself
	moved, err := svc.UpdateScreening(ctx, first.ID, schedule(movie, hall, "2024-01-01T18:30"))
	require.NoError(t, err)
	assert.Equal(t, first.ID, moved.ID)
	assert.Equal(t, "2024-01-01T20:30", moved.EndTime)

	_, err = svc.UpdateScreening(ctx, second.ID, schedule(movie, hall, "2024-01-01T20:00"))
	assert.ErrorIs(t, err, apperror.ErrHallConflict)

	longer := seedMovie(t, repo, 160)
	_, err = svc.UpdateScreening(ctx, first.ID, schedule(longer, hall, "2024-01-01T18:30"))
	assert.ErrorIs(t, err, apperror.ErrHallConflict)

	other := seedHall(t, repo, "Other")
	relocated, err := svc.UpdateScreening(ctx, second.ID, schedule(movie, other, "2024-01-01T19:00"))
	require.NoError(t, err)
	assert.Equal(t, other.ID.String(), relocated.HallID)

	_, err = svc.UpdateScreening(ctx, uuid.NewString(), schedule(movie, hall, "2024-01-02T18:00"))
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteScreening(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	svc := newScreeningService(repo)
	movie := seedMovie(t, repo, 120)
	hall := seedHall(t, repo, "H")
	customer := seedCustomer(t, repo)

	screening, err := svc.ScheduleScreening(ctx, schedule(movie, hall, "2024-01-01T18:00"))
	require.NoError(t, err)

	reservations := newReservationService(repo)
	booked, err := reservations.AddReservation(ctx, &request.ReservationRequest{
		CustomerID: customer.ID.String(), ScreeningID: screening.ID,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteScreening(ctx, screening.ID), apperror.ErrInUse)

	require.NoError(t, reservations.DeleteReservation(ctx, booked.ID))
	require.NoError(t, svc.DeleteScreening(ctx, screening.ID))
	require.NoError(t, svc.DeleteScreening(ctx, screening.ID))

	_, err = svc.GetScreening(ctx, screening.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListScreeningsFilters(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	svc := newScreeningService(repo)
	heat := seedMovie(t, repo, 60)
	alien := seedMovie(t, repo, 60)
	a := seedHall(t, repo, "A")
	b := seedHall(t, repo, "B")

	mustSchedule := func(m *entity.Movie, h *entity.Hall, start string) {
		_, err := svc.ScheduleScreening(ctx, schedule(m, h, start))
		require.NoError(t, err)
	}
	mustSchedule(heat, a, "2024-01-01T10:00")
	mustSchedule(alien, a, "2024-01-01T12:00")
	mustSchedule(heat, b, "2024-01-01T11:00")
	mustSchedule(heat, a, "2024-01-02T10:00")

	all, err := svc.ListScreenings(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "2024-01-01T10:00", all[0].StartTime)
	assert.Equal(t, "2024-01-01T11:00", all[1].StartTime)

	byHallAndMovie, err := svc.ListScreenings(ctx, &request.ScreeningFilter{HallID: a.ID.String(), MovieID: heat.ID.String()})
	require.NoError(t, err)
	assert.Len(t, byHallAndMovie, 2)

	from, err := svc.ListScreenings(ctx, &request.ScreeningFilter{MovieID: heat.ID.String(), From: "2024-01-01T11:00"})
	require.NoError(t, err)
	assert.Len(t, from, 2)

	byMovie, err := svc.ListByMovie(ctx, alien.ID.String())
	require.NoError(t, err)
	assert.Len(t, byMovie, 1)

	_, err = svc.ListScreenings(ctx, &request.ScreeningFilter{HallID: "nope"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestListBookableFallsBackToAll(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	svc := newScreeningService(repo)
	movie := seedMovie(t, repo, 60)
	hall := seedHall(t, repo, "H")

	_, err := svc.ScheduleScreening(ctx, schedule(movie, hall, "2023-06-01T18:00"))
	require.NoError(t, err)

	bookable, err := svc.ListBookable(ctx, fixedNow)
	require.NoError(t, err)
	assert.Len(t, bookable, 1)

	_, err = svc.ScheduleScreening(ctx, schedule(movie, hall, "2024-02-01T18:00"))
	require.NoError(t, err)

	bookable, err = svc.ListBookable(ctx, fixedNow)
	require.NoError(t, err)
	require.Len(t, bookable, 1)
	assert.Equal(t, "2024-02-01T18:00", bookable[0].StartTime)

	upcoming, err := svc.FindUpcoming(ctx, fixedNow)
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)
}

package usecase

import (
	"context"
	"testing"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/memory"
	"cinema-manager/internal/data/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newRepo() *repository.Repository {
	return memory.NewRepository(zap.NewNop())
}

// seedMovie bypasses validation so tests can store degenerate durations.
func seedMovie(t *testing.T, repo *repository.Repository, duration int) *entity.Movie {
	t.Helper()
	movie := &entity.Movie{Title: "Heat", Duration: duration, ReleaseYear: 1995}
	require.NoError(t, repo.Movie.Create(context.Background(), movie))
	return movie
}

func seedHall(t *testing.T, repo *repository.Repository, name string) *entity.Hall {
	t.Helper()
	hall := &entity.Hall{Name: name, Capacity: 100}
	require.NoError(t, repo.Hall.Create(context.Background(), hall))
	return hall
}

func seedCustomer(t *testing.T, repo *repository.Repository) *entity.Customer {
	t.Helper()
	customer := &entity.Customer{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"}
	require.NoError(t, repo.Customer.Create(context.Background(), customer))
	return customer
}

func newScreeningService(repo *repository.Repository) *screeningService {
	svc := NewScreeningService(repo, zap.NewNop()).(*screeningService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func newReservationService(repo *repository.Repository) *reservationService {
	svc := NewReservationService(repo, zap.NewNop()).(*reservationService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

// Package memory is a process-local backend for every repository. It keeps
// the same contracts as the Postgres repositories: foreign references are
// enforced, screening writes are serialized per hall, and callers only ever
// see copies of stored records.
package memory

import (
	"context"
	"sync"

	"cinema-manager/internal/apperror"
	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Store struct {
	mu           sync.RWMutex
	movies       map[uuid.UUID]entity.Movie
	halls        map[uuid.UUID]entity.Hall
	customers    map[uuid.UUID]entity.Customer
	screenings   map[uuid.UUID]entity.Screening
	reservations map[uuid.UUID]entity.Reservation

	locksMu   sync.Mutex
	hallLocks map[uuid.UUID]*sync.Mutex
}

func NewStore() *Store {
	return &Store{
		movies:       make(map[uuid.UUID]entity.Movie),
		halls:        make(map[uuid.UUID]entity.Hall),
		customers:    make(map[uuid.UUID]entity.Customer),
		screenings:   make(map[uuid.UUID]entity.Screening),
		reservations: make(map[uuid.UUID]entity.Reservation),
		hallLocks:    make(map[uuid.UUID]*sync.Mutex),
	}
}

// NewRepository builds a fresh store and returns it behind the shared
// repository aggregate.
func NewRepository(log *zap.Logger) *repository.Repository {
	return NewStore().Repository(log)
}

func (s *Store) Repository(log *zap.Logger) *repository.Repository {
	return &repository.Repository{
		Movie:       &movieRepository{store: s, log: log.With(zap.String("repository", "movie"))},
		Hall:        &hallRepository{store: s, log: log.With(zap.String("repository", "hall"))},
		Customer:    &customerRepository{store: s, log: log.With(zap.String("repository", "customer"))},
		Screening:   &screeningRepository{store: s, log: log.With(zap.String("repository", "screening"))},
		Reservation: &reservationRepository{store: s, log: log.With(zap.String("repository", "reservation"))},
	}
}

// hallLock returns the mutex that serializes screening writes for one hall.
// Locks are created lazily and never removed.
func (s *Store) hallLock(hallID uuid.UUID) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.hallLocks[hallID]
	if !ok {
		lock = &sync.Mutex{}
		s.hallLocks[hallID] = lock
	}
	return lock
}

// ready turns a cancelled context into a storage failure, the same way a
// pool would fail to hand out a connection.
func ready(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return apperror.Storage(op, err)
	}
	return nil
}

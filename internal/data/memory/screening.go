package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cinema-manager/internal/apperror"
	"cinema-manager/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type screeningRepository struct {
	store *Store
	log   *zap.Logger
}

// findOverlap must be called with store.mu held.
func (r *screeningRepository) findOverlap(hallID uuid.UUID, start, end time.Time, excludeID uuid.UUID) *entity.Screening {
	var found *entity.Screening
	for _, screening := range r.store.screenings {
		if screening.HallID != hallID || screening.ID == excludeID {
			continue
		}
		if !screening.Overlaps(start, end) {
			continue
		}
		if found == nil || before(&screening, found) {
			found = &screening
		}
	}
	return found
}

// checkRefs must be called with store.mu held.
func (r *screeningRepository) checkRefs(screening *entity.Screening) error {
	if _, ok := r.store.halls[screening.HallID]; !ok {
		return apperror.NotFound("hall", screening.HallID)
	}
	if _, ok := r.store.movies[screening.MovieID]; !ok {
		return apperror.NotFound("movie", screening.MovieID)
	}
	return nil
}

// write scans for an overlap under the read lock and stores under the write
// lock. The hall lock held by the caller keeps every other writer for the
// hall out between the two phases.
func (r *screeningRepository) write(screening *entity.Screening, excludeID uuid.UUID, mustExist bool) error {
	r.store.mu.RLock()
	conflict := r.findOverlap(screening.HallID, screening.StartTime, screening.EndTime, excludeID)
	r.store.mu.RUnlock()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.screenings[screening.ID]; mustExist && !ok {
		return apperror.NotFound("screening", screening.ID)
	}
	if err := r.checkRefs(screening); err != nil {
		return err
	}
	if conflict != nil {
		return apperror.HallConflict(screening.HallID, conflict.ID)
	}

	if screening.ID == uuid.Nil {
		screening.ID = uuid.New()
	}
	r.store.screenings[screening.ID] = *screening
	return nil
}

func (r *screeningRepository) Create(ctx context.Context, screening *entity.Screening) error {
	if err := ready(ctx, "create screening"); err != nil {
		return err
	}

	lock := r.store.hallLock(screening.HallID)
	lock.Lock()
	defer lock.Unlock()

	return r.write(screening, uuid.Nil, false)
}

// Update locks the target hall only. Leaving a hall can never create an
// overlap there.
func (r *screeningRepository) Update(ctx context.Context, screening *entity.Screening) error {
	if err := ready(ctx, "update screening"); err != nil {
		return err
	}

	lock := r.store.hallLock(screening.HallID)
	lock.Lock()
	defer lock.Unlock()

	return r.write(screening, screening.ID, true)
}

func (r *screeningRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ready(ctx, "delete screening"); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.screenings[id]; !ok {
		return nil
	}
	for _, reservation := range r.store.reservations {
		if reservation.ScreeningID == id {
			return apperror.InUse("screening", id, "reservations")
		}
	}

	delete(r.store.screenings, id)
	r.log.Info("Screening deleted", zap.String("screening_id", id.String()))
	return nil
}

func (r *screeningRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error) {
	if err := ready(ctx, "find screening"); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	screening, ok := r.store.screenings[id]
	if !ok {
		return nil, nil
	}
	return &screening, nil
}

func (r *screeningRepository) list(ctx context.Context, op string, keep func(*entity.Screening) bool) ([]*entity.Screening, error) {
	if err := ready(ctx, op); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	screenings := []*entity.Screening{}
	for _, screening := range r.store.screenings {
		if keep(&screening) {
			screenings = append(screenings, &screening)
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(screenings, func(i, j int) bool {
		return before(screenings[i], screenings[j])
	})
	return screenings, nil
}

func (r *screeningRepository) FindAll(ctx context.Context) ([]*entity.Screening, error) {
	return r.list(ctx, "find screenings", func(*entity.Screening) bool { return true })
}

func (r *screeningRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Screening, error) {
	return r.list(ctx, fmt.Sprintf("find screenings by movie %s", movieID), func(s *entity.Screening) bool {
		return s.MovieID == movieID
	})
}

func (r *screeningRepository) FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Screening, error) {
	return r.list(ctx, fmt.Sprintf("find screenings by hall %s", hallID), func(s *entity.Screening) bool {
		return s.HallID == hallID
	})
}

func (r *screeningRepository) FindUpcoming(ctx context.Context, now time.Time) ([]*entity.Screening, error) {
	return r.list(ctx, "find upcoming screenings", func(s *entity.Screening) bool {
		return !s.StartTime.Before(now)
	})
}

func (r *screeningRepository) FindOverlap(ctx context.Context, hallID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (*entity.Screening, error) {
	if err := ready(ctx, fmt.Sprintf("check overlap in hall %s", hallID)); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.findOverlap(hallID, start, end, excludeID), nil
}

func (r *screeningRepository) ExistsOverlap(ctx context.Context, hallID uuid.UUID, start, end time.Time) (bool, error) {
	screening, err := r.FindOverlap(ctx, hallID, start, end, uuid.Nil)
	if err != nil {
		return false, err
	}
	return screening != nil, nil
}

// before orders screenings by start time, then id.
func before(a, b *entity.Screening) bool {
	if !a.StartTime.Equal(b.StartTime) {
		return a.StartTime.Before(b.StartTime)
	}
	return a.ID.String() < b.ID.String()
}

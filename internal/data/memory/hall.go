package memory

import (
	"context"
	"sort"

	"cinema-manager/internal/apperror"
	"cinema-manager/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type hallRepository struct {
	store *Store
	log   *zap.Logger
}

func (r *hallRepository) Create(ctx context.Context, hall *entity.Hall) error {
	if err := ready(ctx, "create hall"); err != nil {
		return err
	}
	if hall.ID == uuid.Nil {
		hall.ID = uuid.New()
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.halls[hall.ID] = *hall
	return nil
}

func (r *hallRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error) {
	if err := ready(ctx, "find hall"); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	hall, ok := r.store.halls[id]
	if !ok {
		return nil, nil
	}
	return &hall, nil
}

func (r *hallRepository) FindAll(ctx context.Context) ([]*entity.Hall, error) {
	if err := ready(ctx, "find halls"); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	halls := make([]*entity.Hall, 0, len(r.store.halls))
	for _, hall := range r.store.halls {
		halls = append(halls, &hall)
	}
	r.store.mu.RUnlock()

	sort.Slice(halls, func(i, j int) bool {
		if halls[i].Name != halls[j].Name {
			return halls[i].Name < halls[j].Name
		}
		return halls[i].ID.String() < halls[j].ID.String()
	})
	return halls, nil
}

func (r *hallRepository) Update(ctx context.Context, hall *entity.Hall) error {
	if err := ready(ctx, "update hall"); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.halls[hall.ID]; !ok {
		return apperror.NotFound("hall", hall.ID)
	}
	r.store.halls[hall.ID] = *hall
	return nil
}

// Delete takes the hall's screening lock so a concurrent schedule cannot land
// in a hall that is being removed.
func (r *hallRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ready(ctx, "delete hall"); err != nil {
		return err
	}

	lock := r.store.hallLock(id)
	lock.Lock()
	defer lock.Unlock()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.halls[id]; !ok {
		return apperror.NotFound("hall", id)
	}
	for _, screening := range r.store.screenings {
		if screening.HallID == id {
			return apperror.InUse("hall", id, "screenings")
		}
	}

	delete(r.store.halls, id)
	r.log.Info("Hall deleted", zap.String("hall_id", id.String()))
	return nil
}

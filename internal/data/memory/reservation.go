package memory

import (
	"context"
	"fmt"
	"sort"

	"cinema-manager/internal/apperror"
	"cinema-manager/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type reservationRepository struct {
	store *Store
	log   *zap.Logger
}

// checkRefs must be called with store.mu held.
func (r *reservationRepository) checkRefs(reservation *entity.Reservation) error {
	if _, ok := r.store.customers[reservation.CustomerID]; !ok {
		return apperror.NotFound("customer", reservation.CustomerID)
	}
	if _, ok := r.store.screenings[reservation.ScreeningID]; !ok {
		return apperror.NotFound("screening", reservation.ScreeningID)
	}
	return nil
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	if err := ready(ctx, "create reservation"); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.checkRefs(reservation); err != nil {
		return err
	}

	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}
	r.store.reservations[reservation.ID] = *reservation
	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	if err := ready(ctx, "find reservation"); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	reservation, ok := r.store.reservations[id]
	if !ok {
		return nil, nil
	}
	return &reservation, nil
}

func (r *reservationRepository) list(ctx context.Context, op string, keep func(*entity.Reservation) bool) ([]*entity.Reservation, error) {
	if err := ready(ctx, op); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	reservations := []*entity.Reservation{}
	for _, reservation := range r.store.reservations {
		if keep(&reservation) {
			reservations = append(reservations, &reservation)
		}
	}
	r.store.mu.RUnlock()

	// newest first
	sort.Slice(reservations, func(i, j int) bool {
		a, b := reservations[i], reservations[j]
		if !a.ReservationTime.Equal(b.ReservationTime) {
			return a.ReservationTime.After(b.ReservationTime)
		}
		return a.ID.String() < b.ID.String()
	})
	return reservations, nil
}

func (r *reservationRepository) FindAll(ctx context.Context) ([]*entity.Reservation, error) {
	return r.list(ctx, "find reservations", func(*entity.Reservation) bool { return true })
}

func (r *reservationRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entity.Reservation, error) {
	return r.list(ctx, fmt.Sprintf("find reservations by customer %s", customerID), func(res *entity.Reservation) bool {
		return res.CustomerID == customerID
	})
}

func (r *reservationRepository) count(ctx context.Context, op string, match func(*entity.Reservation) bool) (int, error) {
	if err := ready(ctx, op); err != nil {
		return 0, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, reservation := range r.store.reservations {
		if match(&reservation) {
			count++
		}
	}
	return count, nil
}

func (r *reservationRepository) CountByScreeningID(ctx context.Context, screeningID uuid.UUID) (int, error) {
	return r.count(ctx, "count reservations by screening", func(res *entity.Reservation) bool {
		return res.ScreeningID == screeningID
	})
}

func (r *reservationRepository) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int, error) {
	return r.count(ctx, "count reservations by customer", func(res *entity.Reservation) bool {
		return res.CustomerID == customerID
	})
}

func (r *reservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	if err := ready(ctx, "update reservation"); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.reservations[reservation.ID]; !ok {
		return apperror.NotFound("reservation", reservation.ID)
	}
	if err := r.checkRefs(reservation); err != nil {
		return err
	}

	r.store.reservations[reservation.ID] = *reservation
	return nil
}

func (r *reservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ready(ctx, "delete reservation"); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.reservations[id]; ok {
		delete(r.store.reservations, id)
		r.log.Info("Reservation deleted", zap.String("reservation_id", id.String()))
	}
	return nil
}

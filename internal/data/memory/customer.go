package memory

import (
	"context"
	"sort"

	"cinema-manager/internal/apperror"
	"cinema-manager/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type customerRepository struct {
	store *Store
	log   *zap.Logger
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	if err := ready(ctx, "create customer"); err != nil {
		return err
	}
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.customers[customer.ID] = *customer
	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	if err := ready(ctx, "find customer"); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	customer, ok := r.store.customers[id]
	if !ok {
		return nil, nil
	}
	return &customer, nil
}

func (r *customerRepository) FindAll(ctx context.Context) ([]*entity.Customer, error) {
	if err := ready(ctx, "find customers"); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	customers := make([]*entity.Customer, 0, len(r.store.customers))
	for _, customer := range r.store.customers {
		customers = append(customers, &customer)
	}
	r.store.mu.RUnlock()

	sort.Slice(customers, func(i, j int) bool {
		a, b := customers[i], customers[j]
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		return a.ID.String() < b.ID.String()
	})
	return customers, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	if err := ready(ctx, "update customer"); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.customers[customer.ID]; !ok {
		return apperror.NotFound("customer", customer.ID)
	}
	r.store.customers[customer.ID] = *customer
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ready(ctx, "delete customer"); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.customers[id]; !ok {
		return apperror.NotFound("customer", id)
	}
	for _, reservation := range r.store.reservations {
		if reservation.CustomerID == id {
			return apperror.InUse("customer", id, "reservations")
		}
	}

	delete(r.store.customers, id)
	r.log.Info("Customer deleted", zap.String("customer_id", id.String()))
	return nil
}

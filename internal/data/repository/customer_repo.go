package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-manager/internal/apperror"
	"cinema-manager/internal/data/entity"
	"cinema-manager/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	FindAll(ctx context.Context) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCustomerRepository(db database.PgxIface, log *zap.Logger) CustomerRepository {
	return &customerRepository{
		db:  db,
		log: log.With(zap.String("repository", "customer")),
	}
}

func scanCustomer(row scanner) (*entity.Customer, error) {
	var customer entity.Customer
	err := row.Scan(
		&customer.ID,
		&customer.FirstName,
		&customer.LastName,
		&customer.Email,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Create inserts a new customer record into the database
func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}

	query := `
		INSERT INTO customers (id, first_name, last_name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		customer.ID,
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create customer",
			zap.Error(err),
			zap.String("email", customer.Email),
		)
		return apperror.Storage(fmt.Sprintf("create customer %s", customer.Email), err)
	}

	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	query := `
		SELECT id, first_name, last_name, email, created_at, updated_at
		FROM customers
		WHERE id = $1
	`

	customer, err := scanCustomer(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer by ID",
			zap.Error(err),
			zap.String("customer_id", id.String()),
		)
		return nil, apperror.Storage(fmt.Sprintf("find customer %s", id), err)
	}

	return customer, nil
}

func (r *customerRepository) FindAll(ctx context.Context) ([]*entity.Customer, error) {
	query := `
		SELECT id, first_name, last_name, email, created_at, updated_at
		FROM customers
		ORDER BY last_name, first_name, id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find customers", zap.Error(err))
		return nil, apperror.Storage("find customers", err)
	}
	defer rows.Close()

	customers := []*entity.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			r.log.Error("Failed to scan customer row", zap.Error(err))
			return nil, apperror.Storage("scan customer row", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage("iterate customers", err)
	}

	return customers, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET first_name = $2, last_name = $3, email = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		customer.ID,
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update customer",
			zap.Error(err),
			zap.String("customer_id", customer.ID.String()),
		)
		return apperror.Storage(fmt.Sprintf("update customer %s", customer.ID), err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NotFound("customer", customer.ID)
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM customers WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return apperror.InUse("customer", id, "reservations")
		}
		r.log.Error("Failed to delete customer",
			zap.Error(err),
			zap.String("customer_id", id.String()),
		)
		return apperror.Storage(fmt.Sprintf("delete customer %s", id), err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NotFound("customer", id)
	}

	r.log.Info("Customer deleted", zap.String("customer_id", id.String()))
	return nil
}

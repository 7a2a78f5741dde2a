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

// ReservationRepository lists newest reservations first.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindAll(ctx context.Context) ([]*entity.Reservation, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entity.Reservation, error)
	CountByScreeningID(ctx context.Context, screeningID uuid.UUID) (int, error)
	CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int, error)
	Update(ctx context.Context, reservation *entity.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, customer_id, screening_id, reservation_time, created_at, updated_at`

func scanReservation(row scanner) (*entity.Reservation, error) {
	var reservation entity.Reservation
	err := row.Scan(
		&reservation.ID,
		&reservation.CustomerID,
		&reservation.ScreeningID,
		&reservation.ReservationTime,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}

	query := `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.CustomerID,
		reservation.ScreeningID,
		reservation.ReservationTime,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)
	if err != nil {
		reservation.ID = uuid.Nil
		if pgErrorCode(err) == pgForeignKeyViolation {
			return fmt.Errorf("%w: reservation references a missing customer or screening", apperror.ErrNotFound)
		}
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("customer_id", reservation.CustomerID.String()),
			zap.String("screening_id", reservation.ScreeningID.String()),
		)
		return apperror.Storage("create reservation", err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, apperror.Storage(fmt.Sprintf("find reservation %s", id), err)
	}

	return reservation, nil
}

func (r *reservationRepository) list(ctx context.Context, op, where string, args ...any) ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ` + where + ` ORDER BY reservation_time DESC, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, apperror.Storage(op, err)
	}
	defer rows.Close()

	reservations := []*entity.Reservation{}
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, apperror.Storage("scan reservation row", err)
		}
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage(op, err)
	}

	return reservations, nil
}

func (r *reservationRepository) FindAll(ctx context.Context) ([]*entity.Reservation, error) {
	return r.list(ctx, "find reservations", "")
}

func (r *reservationRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entity.Reservation, error) {
	return r.list(ctx, fmt.Sprintf("find reservations by customer %s", customerID), "WHERE customer_id = $1", customerID)
}

func (r *reservationRepository) count(ctx context.Context, op, column string, id uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reservations WHERE `+column+` = $1`, id).Scan(&count)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err), zap.String(column, id.String()))
		return 0, apperror.Storage(op, err)
	}
	return count, nil
}

func (r *reservationRepository) CountByScreeningID(ctx context.Context, screeningID uuid.UUID) (int, error) {
	return r.count(ctx, "count reservations by screening", "screening_id", screeningID)
}

func (r *reservationRepository) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int, error) {
	return r.count(ctx, "count reservations by customer", "customer_id", customerID)
}

func (r *reservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		UPDATE reservations
		SET customer_id = $2, screening_id = $3, reservation_time = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.CustomerID,
		reservation.ScreeningID,
		reservation.ReservationTime,
		reservation.UpdatedAt,
	)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return fmt.Errorf("%w: reservation references a missing customer or screening", apperror.ErrNotFound)
		}
		r.log.Error("Failed to update reservation",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
		)
		return apperror.Storage(fmt.Sprintf("update reservation %s", reservation.ID), err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NotFound("reservation", reservation.ID)
	}

	return nil
}

// Delete is idempotent.
func (r *reservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reservations WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return apperror.Storage(fmt.Sprintf("delete reservation %s", id), err)
	}

	if result.RowsAffected() > 0 {
		r.log.Info("Reservation deleted", zap.String("reservation_id", id.String()))
	}
	return nil
}

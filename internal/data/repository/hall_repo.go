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

type HallRepository interface {
	Create(ctx context.Context, hall *entity.Hall) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error)
	FindAll(ctx context.Context) ([]*entity.Hall, error)
	Update(ctx context.Context, hall *entity.Hall) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type hallRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHallRepository(db database.PgxIface, log *zap.Logger) HallRepository {
	return &hallRepository{
		db:  db,
		log: log.With(zap.String("repository", "hall")),
	}
}

func scanHall(row scanner) (*entity.Hall, error) {
	var hall entity.Hall
	err := row.Scan(
		&hall.ID,
		&hall.Name,
		&hall.Capacity,
		&hall.CreatedAt,
		&hall.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &hall, nil
}

func (r *hallRepository) Create(ctx context.Context, hall *entity.Hall) error {
	if hall.ID == uuid.Nil {
		hall.ID = uuid.New()
	}

	query := `
		INSERT INTO halls (id, name, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		hall.ID,
		hall.Name,
		hall.Capacity,
		hall.CreatedAt,
		hall.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create hall",
			zap.Error(err),
			zap.String("name", hall.Name),
		)
		return apperror.Storage(fmt.Sprintf("create hall %s", hall.Name), err)
	}

	return nil
}

func (r *hallRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error) {
	query := `
		SELECT id, name, capacity, created_at, updated_at
		FROM halls
		WHERE id = $1
	`

	hall, err := scanHall(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hall by ID",
			zap.Error(err),
			zap.String("hall_id", id.String()),
		)
		return nil, apperror.Storage(fmt.Sprintf("find hall %s", id), err)
	}

	return hall, nil
}

func (r *hallRepository) FindAll(ctx context.Context) ([]*entity.Hall, error) {
	query := `
		SELECT id, name, capacity, created_at, updated_at
		FROM halls
		ORDER BY name, id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find halls", zap.Error(err))
		return nil, apperror.Storage("find halls", err)
	}
	defer rows.Close()

	halls := []*entity.Hall{}
	for rows.Next() {
		hall, err := scanHall(rows)
		if err != nil {
			r.log.Error("Failed to scan hall row", zap.Error(err))
			return nil, apperror.Storage("scan hall row", err)
		}
		halls = append(halls, hall)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage("iterate halls", err)
	}

	return halls, nil
}

func (r *hallRepository) Update(ctx context.Context, hall *entity.Hall) error {
	query := `
		UPDATE halls
		SET name = $2, capacity = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		hall.ID,
		hall.Name,
		hall.Capacity,
		hall.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update hall",
			zap.Error(err),
			zap.String("hall_id", hall.ID.String()),
		)
		return apperror.Storage(fmt.Sprintf("update hall %s", hall.ID), err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NotFound("hall", hall.ID)
	}

	return nil
}

func (r *hallRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM halls WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return apperror.InUse("hall", id, "screenings")
		}
		r.log.Error("Failed to delete hall",
			zap.Error(err),
			zap.String("hall_id", id.String()),
		)
		return apperror.Storage(fmt.Sprintf("delete hall %s", id), err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NotFound("hall", id)
	}

	r.log.Info("Hall deleted", zap.String("hall_id", id.String()))
	return nil
}

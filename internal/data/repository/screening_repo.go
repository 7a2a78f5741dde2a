package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-manager/internal/apperror"
	"cinema-manager/internal/data/entity"
	"cinema-manager/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ScreeningRepository owns screening identity and the no-overlap invariant.
//
// Create and Update check for an overlap and write under one per-hall lock,
// so two racing writers for the same hall can never both pass the check.
// Every list is sorted by start time ascending.
type ScreeningRepository interface {
	Create(ctx context.Context, screening *entity.Screening) error
	Update(ctx context.Context, screening *entity.Screening) error
	// Delete is idempotent: an unknown id is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error)
	FindAll(ctx context.Context) ([]*entity.Screening, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Screening, error)
	FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Screening, error)
	FindUpcoming(ctx context.Context, now time.Time) ([]*entity.Screening, error)

	// FindOverlap returns the earliest screening in hallID occupying part of
	// [start, end), ignoring excludeID. nil means the interval is free.
	FindOverlap(ctx context.Context, hallID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (*entity.Screening, error)
	ExistsOverlap(ctx context.Context, hallID uuid.UUID, start, end time.Time) (bool, error)
}

type screeningRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScreeningRepository(db database.PgxIface, log *zap.Logger) ScreeningRepository {
	return &screeningRepository{
		db:  db,
		log: log.With(zap.String("repository", "screening")),
	}
}

const screeningColumns = `id, movie_id, hall_id, start_time, end_time, created_at, updated_at`

func scanScreening(row scanner) (*entity.Screening, error) {
	var screening entity.Screening
	err := row.Scan(
		&screening.ID,
		&screening.MovieID,
		&screening.HallID,
		&screening.StartTime,
		&screening.EndTime,
		&screening.CreatedAt,
		&screening.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &screening, nil
}

// withHallLock runs fn in a transaction that holds the hall row lock.
// Concurrent writers for the same hall queue on SELECT ... FOR UPDATE.
func (r *screeningRepository) withHallLock(ctx context.Context, hallID uuid.UUID, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.Storage("begin screening transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var locked uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM halls WHERE id = $1 FOR UPDATE`, hallID).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NotFound("hall", hallID)
	}
	if err != nil {
		r.log.Error("Failed to lock hall", zap.Error(err), zap.String("hall_id", hallID.String()))
		return apperror.Storage(fmt.Sprintf("lock hall %s", hallID), err)
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return r.writeError("commit screening", hallID, err)
	}
	return nil
}

// writeError maps constraint violations raised by the database itself.
// The exclusion constraint is the backstop for the overlap invariant.
func (r *screeningRepository) writeError(op string, hallID uuid.UUID, err error) error {
	switch pgErrorCode(err) {
	case pgExclusionViolation:
		return apperror.HallConflict(hallID, uuid.Nil)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %s references a missing movie or hall", apperror.ErrNotFound, op)
	case pgCheckViolation:
		return apperror.InvalidInterval("%s: end time must be after start time", op)
	}
	r.log.Error("Screening write failed", zap.Error(err), zap.String("op", op))
	return apperror.Storage(op, err)
}

func findOverlap(ctx context.Context, q database.Querier, hallID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (*entity.Screening, error) {
	query := `
		SELECT ` + screeningColumns + `
		FROM screenings
		WHERE hall_id = $1 AND start_time < $3 AND end_time > $2 AND id <> $4
		ORDER BY start_time, id
		LIMIT 1
	`

	screening, err := scanScreening(q.QueryRow(ctx, query, hallID, start, end, excludeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return screening, err
}

func (r *screeningRepository) Create(ctx context.Context, screening *entity.Screening) error {
	if screening.ID == uuid.Nil {
		screening.ID = uuid.New()
	}

	err := r.withHallLock(ctx, screening.HallID, func(tx pgx.Tx) error {
		conflict, err := findOverlap(ctx, tx, screening.HallID, screening.StartTime, screening.EndTime, uuid.Nil)
		if err != nil {
			return apperror.Storage("check screening overlap", err)
		}
		if conflict != nil {
			return apperror.HallConflict(screening.HallID, conflict.ID)
		}

		query := `
			INSERT INTO screenings (` + screeningColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err = tx.Exec(ctx, query,
			screening.ID,
			screening.MovieID,
			screening.HallID,
			screening.StartTime,
			screening.EndTime,
			screening.CreatedAt,
			screening.UpdatedAt,
		)
		if err != nil {
			return r.writeError("create screening", screening.HallID, err)
		}
		return nil
	})
	if err != nil {
		screening.ID = uuid.Nil
		return err
	}

	return nil
}

func (r *screeningRepository) Update(ctx context.Context, screening *entity.Screening) error {
	return r.withHallLock(ctx, screening.HallID, func(tx pgx.Tx) error {
		conflict, err := findOverlap(ctx, tx, screening.HallID, screening.StartTime, screening.EndTime, screening.ID)
		if err != nil {
			return apperror.Storage("check screening overlap", err)
		}
		if conflict != nil {
			return apperror.HallConflict(screening.HallID, conflict.ID)
		}

		query := `
			UPDATE screenings
			SET movie_id = $2, hall_id = $3, start_time = $4, end_time = $5, updated_at = $6
			WHERE id = $1
		`
		result, err := tx.Exec(ctx, query,
			screening.ID,
			screening.MovieID,
			screening.HallID,
			screening.StartTime,
			screening.EndTime,
			screening.UpdatedAt,
		)
		if err != nil {
			return r.writeError(fmt.Sprintf("update screening %s", screening.ID), screening.HallID, err)
		}
		if result.RowsAffected() == 0 {
			return apperror.NotFound("screening", screening.ID)
		}
		return nil
	})
}

func (r *screeningRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM screenings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return apperror.InUse("screening", id, "reservations")
		}
		r.log.Error("Failed to delete screening",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return apperror.Storage(fmt.Sprintf("delete screening %s", id), err)
	}

	if result.RowsAffected() > 0 {
		r.log.Info("Screening deleted", zap.String("screening_id", id.String()))
	}
	return nil
}

func (r *screeningRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error) {
	query := `SELECT ` + screeningColumns + ` FROM screenings WHERE id = $1`

	screening, err := scanScreening(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find screening by ID",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return nil, apperror.Storage(fmt.Sprintf("find screening %s", id), err)
	}

	return screening, nil
}

func (r *screeningRepository) list(ctx context.Context, op, where string, args ...any) ([]*entity.Screening, error) {
	query := `SELECT ` + screeningColumns + ` FROM screenings ` + where + ` ORDER BY start_time, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, apperror.Storage(op, err)
	}
	defer rows.Close()

	screenings := []*entity.Screening{}
	for rows.Next() {
		screening, err := scanScreening(rows)
		if err != nil {
			r.log.Error("Failed to scan screening row", zap.Error(err))
			return nil, apperror.Storage("scan screening row", err)
		}
		screenings = append(screenings, screening)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage(op, err)
	}

	return screenings, nil
}

func (r *screeningRepository) FindAll(ctx context.Context) ([]*entity.Screening, error) {
	return r.list(ctx, "find screenings", "")
}

func (r *screeningRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Screening, error) {
	return r.list(ctx, fmt.Sprintf("find screenings by movie %s", movieID), "WHERE movie_id = $1", movieID)
}

func (r *screeningRepository) FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Screening, error) {
	return r.list(ctx, fmt.Sprintf("find screenings by hall %s", hallID), "WHERE hall_id = $1", hallID)
}

func (r *screeningRepository) FindUpcoming(ctx context.Context, now time.Time) ([]*entity.Screening, error) {
	return r.list(ctx, "find upcoming screenings", "WHERE start_time >= $1", now)
}

func (r *screeningRepository) FindOverlap(ctx context.Context, hallID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (*entity.Screening, error) {
	screening, err := findOverlap(ctx, r.db, hallID, start, end, excludeID)
	if err != nil {
		r.log.Error("Failed to check screening overlap",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
			zap.Time("start_time", start),
			zap.Time("end_time", end),
		)
		return nil, apperror.Storage(fmt.Sprintf("check overlap in hall %s", hallID), err)
	}
	return screening, nil
}

func (r *screeningRepository) ExistsOverlap(ctx context.Context, hallID uuid.UUID, start, end time.Time) (bool, error) {
	screening, err := r.FindOverlap(ctx, hallID, start, end, uuid.Nil)
	if err != nil {
		return false, err
	}
	return screening != nil, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-manager/internal/apperror"
	"cinema-manager/internal/data/repository"
	"cinema-manager/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	Movie       MovieService
	Hall        HallService
	Customer    CustomerService
	Screening   ScreeningService
	Reservation ReservationService
}

func NewService(repo *repository.Repository, log *zap.Logger) *Service {
	return &Service{
		Movie:       NewMovieService(repo, log),
		Hall:        NewHallService(repo, log),
		Customer:    NewCustomerService(repo, log),
		Screening:   NewScreeningService(repo, log),
		Reservation: NewReservationService(repo, log),
	}
}

func validate(data any) error {
	if fields := utils.ValidateStruct(data); len(fields) > 0 {
		return apperror.Validation(fields)
	}
	return nil
}

func parseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apperror.Validation(map[string]string{field: "Must be a valid UUID"})
	}
	return id, nil
}

func parseTime(field, value string) (time.Time, error) {
	t, err := utils.ParseTimestamp(value)
	if err != nil {
		return time.Time{}, apperror.Validation(map[string]string{field: err.Error()})
	}
	return t, nil
}

// logFailure logs storage failures as errors and rejected input as warnings.
func logFailure(log *zap.Logger, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if errors.Is(err, apperror.ErrStorageUnavailable) {
		log.Error(msg, fields...)
		return
	}
	log.Warn(msg, fields...)
}

// mustExist turns a (nil, nil) lookup into NotFound.
func mustExist[T any](ctx context.Context, entity string, id uuid.UUID, find func(context.Context, uuid.UUID) (*T, error)) error {
	record, err := find(ctx, id)
	if err != nil {
		return fmt.Errorf("find %s: %w", entity, err)
	}
	if record == nil {
		return apperror.NotFound(entity, id)
	}
	return nil
}

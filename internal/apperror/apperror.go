// Package apperror holds the error kinds shared by the storage and service
// layers. Every typed error matches exactly one sentinel through errors.Is, so
// callers can branch on the kind without looking at messages.
package apperror

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInterval    = errors.New("invalid interval")
	ErrHallConflict       = errors.New("hall conflict")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrValidation         = errors.New("validation failed")
	ErrInUse              = errors.New("in use")
)

// NotFoundError names the missing entity ("movie", "hall", "customer",
// "screening", "reservation").
type NotFoundError struct {
	Entity string
	ID     string
}

func NotFound(entity string, id uuid.UUID) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id.String()}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// HallConflictError reports an overlap in HallID. ScreeningID is the
// conflicting screening when the store could identify it, uuid.Nil otherwise.
type HallConflictError struct {
	HallID      uuid.UUID
	ScreeningID uuid.UUID
}

func HallConflict(hallID, screeningID uuid.UUID) *HallConflictError {
	return &HallConflictError{HallID: hallID, ScreeningID: screeningID}
}

func (e *HallConflictError) Error() string {
	if e.ScreeningID == uuid.Nil {
		return fmt.Sprintf("hall %s already has an overlapping screening", e.HallID)
	}
	return fmt.Sprintf("hall %s already has an overlapping screening %s", e.HallID, e.ScreeningID)
}

func (e *HallConflictError) Is(target error) bool { return target == ErrHallConflict }

// StorageError wraps a backend failure. It is never a verdict about data.
type StorageError struct {
	Op  string
	Err error
}

func Storage(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage unavailable: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Is(target error) bool { return target == ErrStorageUnavailable }

func (e *StorageError) Unwrap() error { return e.Err }

// ValidationError carries field -> message pairs.
type ValidationError struct {
	Fields map[string]string
}

func Validation(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InvalidInterval builds an ErrInvalidInterval with context.
func InvalidInterval(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInterval, fmt.Sprintf(format, args...))
}

// InUse builds an ErrInUse for an entity still referenced elsewhere.
func InUse(entity string, id uuid.UUID, by string) error {
	return fmt.Errorf("%w: %s %s is referenced by %s", ErrInUse, entity, id, by)
}

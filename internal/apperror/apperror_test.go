package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindsMatchSentinels(t *testing.T) {
	hall, screening := uuid.New(), uuid.New()

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"not found", NotFound("movie", uuid.New()), ErrNotFound},
		{"hall conflict", HallConflict(hall, screening), ErrHallConflict},
		{"storage", Storage("find", errors.New("connection refused")), ErrStorageUnavailable},
		{"validation", Validation(map[string]string{"title": "required"}), ErrValidation},
		{"invalid interval", InvalidInterval("duration %d", 0), ErrInvalidInterval},
		{"in use", InUse("screening", uuid.New(), "reservations"), ErrInUse},
	}

	sentinels := []error{ErrNotFound, ErrHallConflict, ErrStorageUnavailable, ErrValidation, ErrInvalidInterval, ErrInUse}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			for _, s := range sentinels {
				assert.Equal(t, s == tt.target, errors.Is(wrapped, s), "sentinel %v", s)
			}
		})
	}
}

func TestStorageErrorIsNotConflict(t *testing.T) {
	err := Storage("exists overlap", errors.New("timeout"))
	assert.False(t, errors.Is(err, ErrHallConflict))
	assert.EqualError(t, errors.Unwrap(err), "timeout")
}

func TestHallConflictCarriesScreening(t *testing.T) {
	hall, screening := uuid.New(), uuid.New()
	err := fmt.Errorf("schedule: %w", HallConflict(hall, screening))

	var conflict *HallConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, hall, conflict.HallID)
	assert.Equal(t, screening, conflict.ScreeningID)
	assert.Contains(t, err.Error(), screening.String())
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	err := Validation(map[string]string{"title": "required", "duration": "must be > 0"})
	assert.Equal(t, "validation failed: duration: must be > 0; title: required", err.Error())
}

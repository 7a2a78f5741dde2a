package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)

	for _, in := range []string{"2024-01-01T18:00", "2024-01-01T18:00:00", "2024-01-01 18:00", " 2024-01-01 18:00:00 "} {
		got, err := ParseTimestamp(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}

	_, err := ParseTimestamp("01/01/2024 18:00")
	assert.Error(t, err)
	_, err = ParseTimestamp("")
	assert.Error(t, err)
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "2024-01-01T18:00", FormatTimestamp(time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-01T18:00:30", FormatTimestamp(time.Date(2024, 1, 1, 18, 0, 30, 0, time.UTC)))
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("", 5))
	assert.Equal(t, 5, ParseInt("x", 5))
	assert.Equal(t, 12, ParseInt("12", 5))
}

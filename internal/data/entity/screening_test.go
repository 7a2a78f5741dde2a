package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2024, 1, 1, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"identical", at(18, 0), at(20, 0), at(18, 0), at(20, 0), true},
		{"partial start", at(18, 0), at(20, 0), at(19, 0), at(21, 0), true},
		{"partial end", at(18, 0), at(20, 0), at(17, 0), at(18, 30), true},
		{"contained", at(18, 0), at(20, 0), at(18, 30), at(19, 0), true},
		{"containing", at(18, 30), at(19, 0), at(18, 0), at(20, 0), true},
		{"touching after", at(18, 0), at(20, 0), at(20, 0), at(21, 0), false},
		{"touching before", at(18, 0), at(20, 0), at(17, 0), at(18, 0), false},
		{"disjoint", at(10, 0), at(11, 0), at(12, 0), at(13, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			// commutative
			assert.Equal(t, tt.want, Overlaps(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}

func TestScreeningOverlaps(t *testing.T) {
	start := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	s := &Screening{StartTime: start, EndTime: start.Add(time.Hour)}

	assert.False(t, s.Overlaps(start.Add(time.Hour), start.Add(2*time.Hour)))
	assert.True(t, s.Overlaps(start.Add(59*time.Minute), start.Add(2*time.Hour)))
}

func TestBaseTouch(t *testing.T) {
	var b Base
	first := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	b.Touch(first)
	assert.Equal(t, first, b.CreatedAt)
	assert.Equal(t, first, b.UpdatedAt)

	second := first.Add(time.Hour)
	b.Touch(second)
	assert.Equal(t, first, b.CreatedAt)
	assert.Equal(t, second, b.UpdatedAt)
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Title    string `json:"title" validate:"required,max=10"`
	Duration int    `json:"duration" validate:"gt=0"`
	Email    string `json:"email" validate:"omitempty,email"`
}

func TestValidateStruct(t *testing.T) {
	assert.Nil(t, ValidateStruct(sample{Title: "Heat", Duration: 170}))

	errs := ValidateStruct(sample{Duration: 0, Email: "nope"})
	assert.Equal(t, map[string]string{
		"title":    "This field is required",
		"duration": "Must be greater than 0",
		"email":    "Invalid email format",
	}, errs)
}

package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type payload struct {
	Position string `validate:"required,oneof=COO CM"`
	Email    string `validate:"required,email"`
}

func TestFormatValidationErrors(t *testing.T) {
	err := validator.New().Struct(payload{Position: "CTO"})

	msgs := FormatValidationErrors(err)
	assert.Equal(t, []string{
		"Field 'Position' failed on the 'oneof' tag (value: COO CM)",
		"Field 'Email' failed on the 'required' tag",
	}, msgs)

	wrapped := FormatValidationErrors(fmt.Errorf("invalid application: %w", err))
	assert.Equal(t, msgs, wrapped)
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	assert.Nil(t, FormatValidationErrors(nil))
	assert.Equal(t, []string{"boom"}, FormatValidationErrors(errors.New("boom")))
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "chess-13", SanitizeInput("  chess-13 \n"))
}

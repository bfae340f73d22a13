package response

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type tokenRequest struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
	Role     string `validate:"omitempty,oneof=student admin"`
}

func TestBindError_Validation(t *testing.T) {
	err := validator.New().Struct(tokenRequest{Role: "teacher"})

	got := BindError(err)
	assert.Equal(t, StatusError, got.Status)
	assert.Equal(t, "field Email is required, field Password is required, field Role must be one of: student admin", got.Error)
}

func TestBindError_General(t *testing.T) {
	got := BindError(errors.New("unexpected EOF"))
	assert.Equal(t, Response{Status: StatusError, Error: "unexpected EOF"}, got)
}

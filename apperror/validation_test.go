package apperror

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerForm struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func TestFromValidationListsEveryField(t *testing.T) {
	v := validator.New()
	err := v.Struct(registerForm{})
	require.Error(t, err)

	appErr := FromValidation(err)
	require.NotNil(t, appErr)
	assert.Equal(t, ValidationError, appErr.Type)
	assert.Equal(t, "name is required; email is required; password is required", appErr.Message)
}

func TestFromValidationTagWording(t *testing.T) {
	v := validator.New()

	err := v.Struct(registerForm{Name: "Jane", Email: "not-an-email", Password: "secret"})
	require.Error(t, err)
	assert.Equal(t, "email must be a valid email", FromValidation(err).Message)

	err = v.Struct(registerForm{Name: "Jane", Email: "jane@example.com", Password: "short"})
	require.Error(t, err)
	assert.Equal(t, "password must be at least 6 characters", FromValidation(err).Message)
}

func TestFromValidationNonValidatorError(t *testing.T) {
	appErr := FromValidation(errors.New("something else"))
	require.NotNil(t, appErr)
	assert.Equal(t, BadRequestError, appErr.Type)
	assert.Equal(t, "invalid request", appErr.Message)
}

func TestFromValidationNil(t *testing.T) {
	assert.Nil(t, FromValidation(nil))
}

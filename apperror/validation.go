// Package apperror, validation bridge.
// This file converts the structured errors produced by go-playground/validator
// into the application's ValidationError type, so handlers can validate request
// DTOs with struct tags and still return the uniform error payload.
package apperror

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FromValidation converts a validator error into a *AppError of type ValidationError.
// The message lists every failing field, mirroring the "errors array" style of
// validation responses: "name is required; email must be a valid email".
// Non-validator errors (e.g. an InvalidValidationError from passing a non-struct)
// are wrapped as a BadRequestError instead.
func FromValidation(err error) *AppError {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewBadRequestError("invalid request", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return NewValidationError(strings.Join(msgs, "; "), err)
}

// fieldMessage renders one field error in a human-readable form.
// Only the tags actually used on request DTOs get bespoke wording; anything
// else falls back to a generic "is invalid".
func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// internal/services/errors.go
package services

import (
	"errors"
	"fmt"

	"github.com/saileshbalu94/ecommerce-ai/internal/ai"
	"github.com/saileshbalu94/ecommerce-ai/internal/i18n"
	"github.com/saileshbalu94/ecommerce-ai/internal/repository"
	"github.com/saileshbalu94/ecommerce-ai/internal/utils"
)

var (
	ErrNotFound      = repository.ErrNotFound
	ErrConflict      = repository.ErrConflict
	ErrNotConfigured = ai.ErrNotConfigured

	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrGeneration   = errors.New("generation failed")
)

// ValidationError names the offending field. Key is the i18n key handlers
// use to localize Message.
type ValidationError struct {
	Field   string
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, key, message string) error {
	return &ValidationError{Field: field, Key: key, Message: message}
}

// checkStruct runs the struct validators and reports the first failing
// field as a ValidationError.
func checkStruct(req interface{}) error {
	err := utils.ValidateStruct(req)
	if err == nil {
		return nil
	}
	if fields := utils.GetValidationErrors(err); len(fields) > 0 {
		return invalid(fields[0].Field, i18n.KeyValidationInvalid, fields[0].Message)
	}
	return invalid("body", i18n.KeyValidationInvalid, err.Error())
}

// GenerationError wraps a provider failure. Detail is safe to return to the
// caller.
type GenerationError struct {
	Detail string
	Err    error
}

func (e *GenerationError) Error() string {
	return "generation failed: " + e.Detail
}

func (e *GenerationError) Unwrap() []error {
	return []error{ErrGeneration, e.Err}
}

func generationFailed(err error) error {
	return &GenerationError{Detail: err.Error(), Err: err}
}

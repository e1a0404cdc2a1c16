package entities

import (
	"errors"
	"fmt"
)

// ErrValidation marks a request that is missing a required field.
var ErrValidation = errors.New("validation failed")

// NewValidationError wraps ErrValidation with a client-facing message.
func NewValidationError(message string) error {
	return &validationError{message: message}
}

type validationError struct {
	message string
}

func (e *validationError) Error() string { return e.message }

func (e *validationError) Unwrap() error { return ErrValidation }

// NotFoundError is returned when a garment identifier resolves to no file.
type NotFoundError struct {
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Outfit not found: %s", e.Identifier)
}

// DecodeError is returned when an input file or a returned payload is not a
// readable image.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// NoImageReturnedError is returned when the upstream response carries no
// inline image anywhere.
type NoImageReturnedError struct {
	Model string
}

func (e *NoImageReturnedError) Error() string {
	return fmt.Sprintf("Gemini did not return an image. Model used: %s. "+
		"Check the model ID in AI Studio and your project quota.", e.Model)
}

// QuotaExceededError wraps an upstream failure caused by exhausted quota.
type QuotaExceededError struct {
	Err error
}

const quotaMessage = "Gemini quota exhausted for this model. " +
	"Use a cheaper model or add billing in Google AI Studio."

func (e *QuotaExceededError) Error() string { return quotaMessage }

func (e *QuotaExceededError) Unwrap() error { return e.Err }

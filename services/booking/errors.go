package booking

import (
	"errors"
	"fmt"
)

// Error codes returned by the engine. The handler layer maps these to
// HTTP statuses; nothing below the handlers knows about HTTP.
const (
	CodeValidation = "validation"
	CodeConflict   = "conflict"
	CodeNotFound   = "notFound"
	CodeGateway    = "gateway"
	CodeInternal   = "internal"
)

// Error is the typed outcome of an engine operation.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &Error{Code: CodeValidation, Message: msg}
}

func NewConflictError(msg string) error {
	return &Error{Code: CodeConflict, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func NewGatewayError(msg string) error {
	return &Error{Code: CodeGateway, Message: msg}
}

func NewInternalError(msg string) error {
	return &Error{Code: CodeInternal, Message: msg}
}

// CodeOf extracts the error code, defaulting to internal for untyped
// errors.
func CodeOf(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}
	return CodeInternal
}

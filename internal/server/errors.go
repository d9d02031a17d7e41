package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Wrapped errors are unwrapped to the first typed error in the chain.
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		inputErr      *assistant.ValidationError
		fieldErr      *editor.FieldError
		documentErr   *schemas.ValidationError
		templateErr   *rendering.TemplateError
		indexErr      *editor.IndexError
		notFoundErr   *editor.NotFoundError
		busyErr       *editor.BusyError
		schemaErr     *assistant.SchemaError
		upstreamErr   *assistant.UpstreamError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr),
		errors.As(err, &inputErr),
		errors.As(err, &fieldErr),
		errors.As(err, &templateErr):
		return http.StatusBadRequest
	case errors.As(err, &indexErr), errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &busyErr):
		return http.StatusConflict
	// A model answer that fails its output schema is the upstream's fault
	case errors.As(err, &schemaErr), errors.As(err, &upstreamErr):
		return http.StatusBadGateway
	case errors.As(err, &documentErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

package assistant

import "fmt"

// ValidationError represents an invalid request. The model is never called
// when a request fails validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// SchemaError represents a model response that does not match the
// expected output schema
type SchemaError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *SchemaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s response rejected: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s response rejected: %s", e.Kind, e.Message)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// UpstreamError represents a failure calling the hosted model
type UpstreamError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s call failed: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s call failed: %s", e.Kind, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

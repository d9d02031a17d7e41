package editor

import "fmt"

// FieldError represents an unknown field name or an unusable value for a field
type FieldError struct {
	Section string
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Section, e.Field, e.Message)
}

// IndexError represents an entry index outside the current list
type IndexError struct {
	Section string
	Index   int
	Length  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range (have %d entries)", e.Section, e.Index, e.Length)
}

// NotFoundError represents an entry id that is not present
type NotFoundError struct {
	Section string
	ID      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s entry %q not found", e.Section, e.ID)
}

// BusyError is returned when a request of the same kind is already running
type BusyError struct {
	Kind string
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("a %s request is already in progress", e.Kind)
}

package projection

import (
	"errors"
	"fmt"
)

// Error kinds returned by the projection engine. Callers match them with errors.Is.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrMappingNotFound  = errors.New("property mapping not found")
	ErrUnknownSortField = errors.New("unknown sort field")
	ErrUnknownField     = errors.New("unknown field")
)

// FieldError names the field that caused a failure.
type FieldError struct {
	Kind  error
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %q", e.Kind, e.Field)
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

func invalidArgument(name string) error {
	return fmt.Errorf("%w: %s is required", ErrInvalidArgument, name)
}

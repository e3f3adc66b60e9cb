package validate

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidEnum       = errors.New("invalid enum value")
	ErrDanglingReference = errors.New("dangling reference")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrInvalidNumber     = errors.New("invalid number")
)

// FieldError pins a sentinel to one field of one record.
// ID is the record id when it has one, otherwise a position such as "modules[2]".
type FieldError struct {
	Entity string
	ID     string
	Field  string
	Err    error
}

func (e *FieldError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s.%s: %v", e.Entity, e.Field, e.Err)
	}
	return fmt.Sprintf("%s[%s].%s: %v", e.Entity, e.ID, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func fieldErr(entity, id, field string, err error) error {
	return &FieldError{Entity: entity, ID: id, Field: field, Err: err}
}

// FieldErrors flattens a (possibly joined) error into its FieldErrors, in order.
func FieldErrors(err error) []*FieldError {
	if err == nil {
		return nil
	}
	var out []*FieldError
	var walk func(error)
	walk = func(e error) {
		if fe, ok := e.(*FieldError); ok {
			out = append(out, fe)
			return
		}
		if j, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range j.Unwrap() {
				walk(inner)
			}
			return
		}
		if inner := errors.Unwrap(e); inner != nil {
			walk(inner)
		}
	}
	walk(err)
	return out
}

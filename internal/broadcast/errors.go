package broadcast

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField = errors.New("missing required value")
	ErrInvalidField = errors.New("invalid value")
)

// ValidationError reports a broadcast parameter that was missing or did not
// match its expected format. It is only ever returned by the constructors.
type ValidationError struct {
	Band     Band
	Field    string
	Value    string
	Expected string
	Missing  bool
}

func (e *ValidationError) Error() string {
	if e.Missing {
		return fmt.Sprintf("%s %s: missing required value", e.Band, e.Field)
	}
	return fmt.Sprintf("%s %s: invalid value %q: must be %s", e.Band, e.Field, e.Value, e.Expected)
}

func (e *ValidationError) Unwrap() error {
	if e.Missing {
		return ErrMissingField
	}
	return ErrInvalidField
}

type field struct {
	name  string
	value string
}

// requireFields reports the first empty field so that missing values are
// always reported ahead of malformed ones.
func requireFields(band Band, fields ...field) error {
	for _, f := range fields {
		if f.value == "" {
			return &ValidationError{Band: band, Field: f.name, Missing: true}
		}
	}
	return nil
}

func invalid(band Band, name, value, expected string) error {
	return &ValidationError{Band: band, Field: name, Value: value, Expected: expected}
}

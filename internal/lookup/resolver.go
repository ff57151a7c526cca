package lookup

import (
	"context"
	"errors"
	"fmt"
)

// Resolver is the DNS capability the resolution algorithm needs.
//
// Implementations return an empty slice and a nil error when the name has no
// records of the requested type; errors are reserved for transport or
// protocol failures. *dnsclient.Client satisfies this.
type Resolver interface {
	ResolveCNAME(ctx context.Context, name string) ([]string, error)
	ResolveSRV(ctx context.Context, name string) ([]SRV, error)
}

// SRV is one service location record as returned by a Resolver.
type SRV struct {
	Target   string
	Port     uint16
	Priority uint16
	Weight   uint16
}

const (
	OpCNAME = "cname"
	OpSRV   = "srv"
)

// LookupError wraps a Resolver failure with the query that caused it.
type LookupError struct {
	Op   string
	Name string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s lookup %s: %v", e.Op, e.Name, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

func wrapLookupError(op, name string, err error) error {
	var lerr *LookupError
	if errors.As(err, &lerr) {
		return err
	}
	return &LookupError{Op: op, Name: name, Err: err}
}

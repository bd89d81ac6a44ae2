// Package sterrors defines the typed error kinds used across the STARK
// partitioning, indexing, and operator packages: DomainError, ConfigError,
// UsageError, GeometryError, and InterruptedError. Construction follows the
// same shape as github.com/grailbio/base/errors.E (an error built from a
// free-form list of context values), layered with a fixed Kind so callers
// can switch on failure class instead of string-matching messages.
package sterrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies why an operation failed.
type Kind int

const (
	// Other is the zero Kind; it should not normally be constructed directly.
	Other Kind = iota
	// Domain marks a value outside the universe or otherwise structurally
	// invalid for the operation (out-of-universe coordinates, negative
	// dimensions, an empty dataset where one is required).
	Domain
	// Config marks invalid configuration parameters (maxCost <= 0, cellSide
	// <= 0, k <= 0, an inconsistent universe).
	Config
	// Usage marks an operation invoked in the wrong state (query before
	// build, insert after build).
	Usage
	// Geometry marks a geometry parse failure, invalid WKT, or non-finite
	// coordinates.
	Geometry
	// Interrupted marks cancellation observed by a per-partition iterator.
	Interrupted
)

func (k Kind) String() string {
	switch k {
	case Domain:
		return "DomainError"
	case Config:
		return "ConfigError"
	case Usage:
		return "UsageError"
	case Geometry:
		return "GeometryError"
	case Interrupted:
		return "InterruptedError"
	default:
		return "Error"
	}
}

// Error is the concrete error type returned by every package in this
// module. Op names the failing operation (e.g. "histogram.Build",
// "rtree.Query"); Context carries caller-supplied detail (coordinates,
// partition id) for the "context" requirement in spec.md §7.
type Error struct {
	Kind    Kind
	Op      string
	Context string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Op)
	if e.Context != "" {
		msg += ": " + e.Context
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind as e, so
// errors.Is(err, &sterrors.Error{Kind: sterrors.Domain}) matches any
// DomainError in err's Unwrap chain.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newf(kind Kind, op, context string, err error) *Error {
	return &Error{Kind: kind, Op: op, Context: context, Err: err}
}

// Domainf builds a DomainError for op, with context formatted from args.
func Domainf(op, context string, args ...interface{}) *Error {
	return newf(Domain, op, fmt.Sprintf(context, args...), nil)
}

// WrapDomain wraps err as a DomainError, recording op and context.
func WrapDomain(err error, op, context string) *Error {
	return newf(Domain, op, context, errors.WithStack(err))
}

// Configf builds a ConfigError for op.
func Configf(op, context string, args ...interface{}) *Error {
	return newf(Config, op, fmt.Sprintf(context, args...), nil)
}

// Usagef builds a UsageError for op.
func Usagef(op, context string, args ...interface{}) *Error {
	return newf(Usage, op, fmt.Sprintf(context, args...), nil)
}

// Geometryf builds a GeometryError for op.
func Geometryf(op, context string, args ...interface{}) *Error {
	return newf(Geometry, op, fmt.Sprintf(context, args...), nil)
}

// WrapGeometry wraps err as a GeometryError, recording op and context.
func WrapGeometry(err error, op, context string) *Error {
	return newf(Geometry, op, context, errors.WithStack(err))
}

// Interruptedf builds an InterruptedError for op.
func Interruptedf(op, context string, args ...interface{}) *Error {
	return newf(Interrupted, op, fmt.Sprintf(context, args...), nil)
}

// Is reports whether err (or anything it wraps) is a *Error of kind k.
func Is(err error, k Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind == k
		}
		if u, ok := err.(interface{ Unwrap() error }); ok {
			err = u.Unwrap()
			continue
		}
		// github.com/pkg/errors wrappers (Wrapf, WithStack) expose their
		// cause through Cause rather than Unwrap.
		c, ok := err.(interface{ Cause() error })
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

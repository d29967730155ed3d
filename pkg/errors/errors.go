// Package errors provides the structured error types used across the
// application. Typed kinds keep errors.Is / errors.As checks reliable and
// carry minimal context (operation + message) about the failure.
package errors

import (
	"errors"
	"fmt"
)

// ValidationError indicates invalid input provided by a caller: bad portions,
// an impossible target margin, a malformed settings block.
type ValidationError struct {
	Op  string // where it happened (package.Function)
	Msg string // human friendly message
	Err error  // underlying cause (optional)
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("validation: %s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("validation: %s: %s", e.Op, e.Msg)
}

func (e *ValidationError) Unwrap() error     { return e.Err }
func (e *ValidationError) Operation() string { return e.Op }

func NewValidation(op, msg string, err error) error {
	return &ValidationError{Op: op, Msg: msg, Err: err}
}

// BizError is for domain outcomes that are failures but not programmer bugs,
// e.g. no benchmark reference data for a requested market segment.
type BizError struct {
	Op  string
	Msg string
	Err error
}

func (e *BizError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("biz: %s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("biz: %s: %s", e.Op, e.Msg)
}

func (e *BizError) Unwrap() error     { return e.Err }
func (e *BizError) Operation() string { return e.Op }

func NewBiz(op, msg string, err error) error { return &BizError{Op: op, Msg: msg, Err: err} }

// DBError represents database access failures from the persistence collaborator.
type DBError struct {
	Op  string
	Msg string
	Err error
}

func (e *DBError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("db: %s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("db: %s: %s", e.Op, e.Msg)
}

func (e *DBError) Unwrap() error     { return e.Err }
func (e *DBError) Operation() string { return e.Op }

func NewDB(op, msg string, err error) error { return &DBError{Op: op, Msg: msg, Err: err} }

// ExternalAPIError represents failures in external services (geocoding, LLM).
type ExternalAPIError struct {
	Op     string
	Msg    string
	Err    error
	System string // optional system name e.g. "google" / "openai"
}

func (e *ExternalAPIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	sys := e.System
	if sys == "" {
		sys = "external"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", sys, e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", sys, e.Op, e.Msg)
}

func (e *ExternalAPIError) Unwrap() error     { return e.Err }
func (e *ExternalAPIError) Operation() string { return e.Op }

func NewExternal(op, system, msg string, err error) error {
	return &ExternalAPIError{Op: op, System: system, Msg: msg, Err: err}
}

// Sentinel values for the engine's fixed failure taxonomy. Callers check
// these with errors.Is; the constructors below wrap them with call-site
// context. Partial data (unmatched ingredient, unknown line shape) is NOT an
// error anywhere in the engine; it degrades the cost breakdown instead.
var (
	// ErrInvalidPortions: a recipe declared zero or negative portions.
	ErrInvalidPortions = errors.New("portions must be >= 1")
	// ErrInvalidMargin: a target margin at or above 100% (suggested price
	// would be infinite or negative).
	ErrInvalidMargin = errors.New("target margin must be < 100")
	// ErrBenchmarkUnavailable: no reference record for the requested
	// (zone, cuisine, price range). Deterministic, never retried.
	ErrBenchmarkUnavailable = errors.New("no benchmark reference for this market segment")
)

// InvalidPortions wraps ErrInvalidPortions with the offending value.
func InvalidPortions(op string, portions int) error {
	return NewValidation(op, fmt.Sprintf("got %d portions", portions), ErrInvalidPortions)
}

// InvalidMargin wraps ErrInvalidMargin with the offending value.
func InvalidMargin(op string, margin float64) error {
	return NewValidation(op, fmt.Sprintf("got %.1f%%", margin), ErrInvalidMargin)
}

// BenchmarkUnavailable wraps ErrBenchmarkUnavailable with the segment that missed.
func BenchmarkUnavailable(op, zone, cuisine, priceRange string) error {
	return NewBiz(op, fmt.Sprintf("segment %s/%s/%s", zone, cuisine, priceRange), ErrBenchmarkUnavailable)
}

// IsKind reports whether err is (or wraps) one of the typed kinds above.
func IsKind(err, target error) bool {
	if err == nil || target == nil {
		return errors.Is(err, target)
	}
	switch target.(type) {
	case *ValidationError:
		var v *ValidationError
		return errors.As(err, &v)
	case *BizError:
		var b *BizError
		return errors.As(err, &b)
	case *DBError:
		var d *DBError
		return errors.As(err, &d)
	case *ExternalAPIError:
		var ex *ExternalAPIError
		return errors.As(err, &ex)
	default:
		return errors.Is(err, target)
	}
}

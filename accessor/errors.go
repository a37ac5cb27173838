package accessor

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNotFound reports a property or tag that is not there.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous reports more than one candidate where at most one was expected.
	ErrAmbiguous = errors.New("ambiguous")
	// ErrTypeMismatch reports a value that cannot be assigned to the expected type.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrReadOnly reports a write on a property with no write path.
	ErrReadOnly = errors.New("no write path")
	// ErrCycle reports a type that expands into itself.
	ErrCycle = errors.New("expansion cycle")
	// ErrDepth reports a property tree deeper than the configured limit.
	ErrDepth = errors.New("expansion too deep")
)

// AccessError wraps a failed read, write or instantiation with the accessor
// it happened on.
type AccessError struct {
	Accessor *Accessor
	Op       string // "get", "set" or "new"
	Err      error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Accessor, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// TypeError is returned when a value does not have the type a caller asked for.
type TypeError struct {
	Accessor *Accessor
	Expected reflect.Type
	Actual   reflect.Type
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s returns a %s which can not be assigned to a %s", e.Accessor, e.Actual, e.Expected)
}

func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// BuildError reports why the descriptor of a type could not be built.
type BuildError struct {
	Type reflect.Type
	Err  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("describe %s: %v", e.Type, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

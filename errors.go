package lenses

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed construction and call errors.
var (
	ErrInvalidPath        = errors.New("lenses: invalid path")
	ErrEmptyComposition   = errors.New("lenses: empty composition")
	ErrInvalidComposition = errors.New("lenses: invalid composition")
	ErrArityMismatch      = errors.New("lenses: arity mismatch")
)

// AsType is a generic error type assertion.
// Returns the error as type T and true if the error chain contains type T.
func AsType[T error](err error) (T, bool) {
	var target T
	if errors.As(err, &target) {
		return target, true
	}
	return target, false
}

// InvalidPathError reports a malformed dotted path.
type InvalidPathError struct {
	Path string
	// Index is the offending segment, or -1 when the whole path is empty.
	Index  int
	Reason string
}

func (e *InvalidPathError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("lenses: invalid path %q: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("lenses: invalid path %q: %s at index %d", e.Path, e.Reason, e.Index)
}

// Is matches ErrInvalidPath.
func (e *InvalidPathError) Is(target error) bool {
	return target == ErrInvalidPath
}

// EmptyCompositionError reports a Composition call without lenses.
type EmptyCompositionError struct{}

func (e *EmptyCompositionError) Error() string {
	return "lenses: composition requires at least one lens"
}

// Is matches ErrEmptyComposition.
func (e *EmptyCompositionError) Is(target error) bool {
	return target == ErrEmptyComposition
}

// CompositionError reports a lens that cannot take part in a composition.
type CompositionError struct {
	Index  int
	Lens   string
	Reason string
}

func (e *CompositionError) Error() string {
	if e.Lens == "" {
		return fmt.Sprintf("lenses: invalid composition at index %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("lenses: invalid composition at index %d (%s): %s", e.Index, e.Lens, e.Reason)
}

// Is matches ErrInvalidComposition.
func (e *CompositionError) Is(target error) bool {
	return target == ErrInvalidComposition
}

// ArityMismatchError reports a Set call with the wrong number of values.
type ArityMismatchError struct {
	Lens string
	Want int
	Got  int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("lenses: %s takes %d values, got %d", e.Lens, e.Want, e.Got)
}

// Is matches ErrArityMismatch.
func (e *ArityMismatchError) Is(target error) bool {
	return target == ErrArityMismatch
}

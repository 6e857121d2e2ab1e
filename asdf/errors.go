// Package asdf implements the ASDF streaming codec: the event producer,
// event consumer, scalar tag dispatcher, and block-index sink, plus the
// raw binary block framing that carries ndarray payloads on disk.
package asdf

import (
	"errors"
	"fmt"
)

// ErrNoInput is returned when the event stream is exhausted before the
// grammar expects it to be.
var ErrNoInput = errors.New("asdf: event stream exhausted unexpectedly")

// ExpectedEventError reports a structural mismatch: the grammar required
// one kind of event and got another.
type ExpectedEventError struct {
	Description string
	Actual      string
}

func (e *ExpectedEventError) Error() string {
	return fmt.Sprintf("asdf: expected %s, got %s", e.Description, e.Actual)
}

// InvalidScalarError reports a scalar that was committed to a type by its
// tag but failed to parse as that type.
type InvalidScalarError struct {
	ExpectedType string
	Bytes        []byte
}

func (e *InvalidScalarError) Error() string {
	return fmt.Sprintf("asdf: invalid scalar for type %s: %q", e.ExpectedType, e.Bytes)
}

// InvalidScalarTagError reports a scalar tagged with something other than
// the built-in str/int/float/bool/null tags or a URI tag.
type InvalidScalarTagError struct {
	Tag   string
	Bytes []byte
}

func (e *InvalidScalarTagError) Error() string {
	return fmt.Sprintf("asdf: invalid scalar tag %q for %q", e.Tag, e.Bytes)
}

// InvalidTreeError reports a tree shape that violates the decoder's
// contract (e.g. a top-level node that isn't an Object).
type InvalidTreeError struct {
	Reason string
	Value  any
}

func (e *InvalidTreeError) Error() string {
	return fmt.Sprintf("asdf: invalid tree: %s (%v)", e.Reason, e.Value)
}

// NDArrayMissingKeyError reports a required ndarray mapping key that was
// not present.
type NDArrayMissingKeyError struct {
	Name string
}

func (e *NDArrayMissingKeyError) Error() string {
	return fmt.Sprintf("asdf: ndarray mapping missing key %q", e.Name)
}

// NDArrayMissingBlockError reports an ndarray "source" index with no
// corresponding block in the store.
type NDArrayMissingBlockError struct {
	Index int
}

func (e *NDArrayMissingBlockError) Error() string {
	return fmt.Sprintf("asdf: ndarray source %d has no block", e.Index)
}

// NDArrayExpectedError reports an ndarray mapping value of the wrong shape
// for the field being decoded.
type NDArrayExpectedError struct {
	Field string
	Value any
}

func (e *NDArrayExpectedError) Error() string {
	return fmt.Sprintf("asdf: ndarray field expected %s, got %v", e.Field, e.Value)
}

// InvalidReferenceError reports a "$ref" entry whose value was not a
// string.
type InvalidReferenceError struct {
	Value any
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("asdf: invalid $ref value %v", e.Value)
}

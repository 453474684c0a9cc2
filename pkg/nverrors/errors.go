package nverrors

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorDomain is the domain reported in the gRPC error details of every error
// in this package.
const ErrorDomain = "namevalue.authzed.com"

// InvalidArgumentReason is the reason an argument was rejected.
type InvalidArgumentReason int

const (
	// ReasonNilArgument indicates that a required argument was nil.
	ReasonNilArgument InvalidArgumentReason = iota

	// ReasonNotFlat indicates that a copy destination is not one-dimensional.
	ReasonNotFlat

	// ReasonInsufficientSpace indicates that a copy destination is too small.
	ReasonInsufficientSpace

	// ReasonInvalidKey indicates that a key has the wrong type.
	ReasonInvalidKey

	// ReasonInvalidValue indicates that a value has the wrong type or cannot
	// be nil.
	ReasonInvalidValue

	// ReasonDuplicateKey indicates that a key was added to a store that
	// already binds it.
	ReasonDuplicateKey

	// ReasonMalformed indicates that textual input could not be parsed.
	ReasonMalformed
)

func (r InvalidArgumentReason) String() string {
	switch r {
	case ReasonNilArgument:
		return "nil_argument"
	case ReasonNotFlat:
		return "not_flat"
	case ReasonInsufficientSpace:
		return "insufficient_space"
	case ReasonInvalidKey:
		return "invalid_key"
	case ReasonInvalidValue:
		return "invalid_value"
	case ReasonDuplicateKey:
		return "duplicate_key"
	case ReasonMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// UnsupportedOperationError occurs when a mutating operation is invoked on a
// read-only collection.
type UnsupportedOperationError struct {
	error
	operation string
}

// Operation is the name of the rejected operation.
func (err UnsupportedOperationError) Operation() string {
	return err.operation
}

// Unwrap returns the inner error.
func (err UnsupportedOperationError) Unwrap() error {
	return err.error
}

// MarshalZerologObject implements zerolog object marshalling.
func (err UnsupportedOperationError) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Str("operation", err.operation)
}

// DetailsMetadata returns the metadata for details for this error.
func (err UnsupportedOperationError) DetailsMetadata() map[string]string {
	return map[string]string{
		"operation": err.operation,
	}
}

// GRPCStatus implements retrieving the gRPC status for the error.
func (err UnsupportedOperationError) GRPCStatus() *status.Status {
	return withCodeAndReason(err, codes.FailedPrecondition, "COLLECTION_READ_ONLY", err.DetailsMetadata())
}

// InvalidArgumentError occurs when an argument fails validation.
type InvalidArgumentError struct {
	error
	argument string
	reason   InvalidArgumentReason
}

// Argument is the name of the rejected argument.
func (err InvalidArgumentError) Argument() string {
	return err.argument
}

// Reason is the reason the argument was rejected.
func (err InvalidArgumentError) Reason() InvalidArgumentReason {
	return err.reason
}

// Unwrap returns the inner error.
func (err InvalidArgumentError) Unwrap() error {
	return err.error
}

// MarshalZerologObject implements zerolog object marshalling.
func (err InvalidArgumentError) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Str("argument", err.argument).Stringer("reason", err.reason)
}

// DetailsMetadata returns the metadata for details for this error.
func (err InvalidArgumentError) DetailsMetadata() map[string]string {
	return map[string]string{
		"argument": err.argument,
		"reason":   err.reason.String(),
	}
}

// GRPCStatus implements retrieving the gRPC status for the error.
func (err InvalidArgumentError) GRPCStatus() *status.Status {
	return withCodeAndReason(err, codes.InvalidArgument, "INVALID_ARGUMENT", err.DetailsMetadata())
}

// IndexOutOfRangeError occurs when a positional access falls outside of the
// valid range of a collection.
type IndexOutOfRangeError struct {
	error
	index int
	count int
}

// Index is the rejected index.
func (err IndexOutOfRangeError) Index() int {
	return err.index
}

// Count is the number of entries at the time of the access.
func (err IndexOutOfRangeError) Count() int {
	return err.count
}

// Unwrap returns the inner error.
func (err IndexOutOfRangeError) Unwrap() error {
	return err.error
}

// MarshalZerologObject implements zerolog object marshalling.
func (err IndexOutOfRangeError) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Int("index", err.index).Int("count", err.count)
}

// DetailsMetadata returns the metadata for details for this error.
func (err IndexOutOfRangeError) DetailsMetadata() map[string]string {
	return map[string]string{
		"index": strconv.Itoa(err.index),
		"count": strconv.Itoa(err.count),
	}
}

// GRPCStatus implements retrieving the gRPC status for the error.
func (err IndexOutOfRangeError) GRPCStatus() *status.Status {
	return withCodeAndReason(err, codes.OutOfRange, "INDEX_OUT_OF_RANGE", err.DetailsMetadata())
}

// ErrReadOnly is the base error of every UnsupportedOperationError.
var ErrReadOnly = errors.New("collection is read-only")

// NewUnsupportedOperationErr constructs a new error for a mutating operation
// invoked on a read-only collection.
func NewUnsupportedOperationErr(operation string) error {
	return UnsupportedOperationError{
		error:     fmt.Errorf("cannot %s: %w", operation, ErrReadOnly),
		operation: operation,
	}
}

// NewInvalidArgumentErr constructs a new invalid argument error.
func NewInvalidArgumentErr(argument string, reason InvalidArgumentReason, format string, args ...any) error {
	return InvalidArgumentError{
		error:    fmt.Errorf("invalid argument `%s`: %s", argument, fmt.Sprintf(format, args...)),
		argument: argument,
		reason:   reason,
	}
}

// NewNilArgumentErr constructs a new invalid argument error for a nil
// argument.
func NewNilArgumentErr(argument string) error {
	return NewInvalidArgumentErr(argument, ReasonNilArgument, "must not be nil")
}

// NewIndexOutOfRangeErr constructs a new error for an index outside of
// [0, count).
func NewIndexOutOfRangeErr(index, count int) error {
	return IndexOutOfRangeError{
		error: fmt.Errorf("index %d is out of range [0, %d)", index, count),
		index: index,
		count: count,
	}
}

// NewNegativeIndexErr constructs a new error for a negative start index.
func NewNegativeIndexErr(index int) error {
	return IndexOutOfRangeError{
		error: fmt.Errorf("index %d must not be negative", index),
		index: index,
		count: -1,
	}
}

// IsReadOnlyErr returns true if the error is, or wraps, an
// UnsupportedOperationError.
func IsReadOnlyErr(err error) bool {
	var uerr UnsupportedOperationError
	return errors.As(err, &uerr)
}

// AsInvalidArgumentErr returns the error as an InvalidArgumentError, if
// applicable.
func AsInvalidArgumentErr(err error) (InvalidArgumentError, bool) {
	var ierr InvalidArgumentError
	if errors.As(err, &ierr) {
		return ierr, true
	}
	return InvalidArgumentError{}, false
}

// IsIndexOutOfRangeErr returns true if the error is, or wraps, an
// IndexOutOfRangeError.
func IsIndexOutOfRangeErr(err error) bool {
	var ierr IndexOutOfRangeError
	return errors.As(err, &ierr)
}

func withCodeAndReason(err error, code codes.Code, reason string, metadata map[string]string) *status.Status {
	st := status.New(code, err.Error())
	detailed, derr := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   reason,
		Domain:   ErrorDomain,
		Metadata: metadata,
	})
	if derr != nil {
		return st
	}
	return detailed
}

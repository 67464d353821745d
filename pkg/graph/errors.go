package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrInvalidPayload = errors.New("invalid payload")
	ErrNodeNotFound   = errors.New("node not found")
	ErrDecodeFailed   = errors.New("decode failed")
)

// GraphError provides structured error information for payload and
// view-model operations.
type GraphError struct {
	Op      string // Operation that failed (e.g., "DecodePayload", "FetchDetail")
	Entity  string // Entity type (e.g., "node", "edge", "payload")
	ID      string // Entity ID (if applicable)
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *GraphError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building GraphErrors.
type ErrorBuilder struct {
	err GraphError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: GraphError{Op: op}}
}

// Node sets the entity to "node" with the given ID.
func (b *ErrorBuilder) Node(id string) *ErrorBuilder {
	b.err.Entity = "node"
	b.err.ID = id
	return b
}

// Edge sets the entity to "edge" with the given ID.
func (b *ErrorBuilder) Edge(id string) *ErrorBuilder {
	b.err.Entity = "edge"
	b.err.ID = id
	return b
}

// Payload sets the entity to "payload".
func (b *ErrorBuilder) Payload() *ErrorBuilder {
	b.err.Entity = "payload"
	return b
}

// Context adds additional context to the error.
func (b *ErrorBuilder) Context(ctx string) *ErrorBuilder {
	b.err.Context = ctx
	return b
}

// Cause sets the underlying error and returns the built error.
func (b *ErrorBuilder) Cause(err error) error {
	b.err.Cause = err
	return &b.err
}

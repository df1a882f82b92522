// Package domain contains business logic types and errors.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and are mapped to HTTP responses by adapters.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrUnavailable indicates a required dependency is unavailable.
	ErrUnavailable = errors.New("unavailable")

	// ErrSerialization indicates a value could not be encoded for output.
	ErrSerialization = errors.New("serialization failed")

	// ErrUnsupported indicates an operation the component deliberately does not offer.
	ErrUnsupported = errors.New("unsupported operation")
)

// UnavailableError provides context for unavailable errors.
type UnavailableError struct {
	Service string
	Reason  string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// SerializationError reports which value of a sequence could not be encoded.
// Output written before the failing value is not rolled back.
type SerializationError struct {
	Format string
	Index  int
	Cause  error
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	return fmt.Sprintf("%s serialization failed at value %d: %v", e.Format, e.Index, e.Cause)
}

// Unwrap returns both the sentinel and the cause.
func (e *SerializationError) Unwrap() []error {
	return []error{ErrSerialization, e.Cause}
}

// NewSerializationError creates a serialization error for the value at index.
func NewSerializationError(format string, index int, cause error) error {
	return &SerializationError{Format: format, Index: index, Cause: cause}
}

// UnsupportedOperationError signals a programming misuse, such as reading
// through a write-only encoder.
type UnsupportedOperationError struct {
	Component string
	Operation string
}

// Error implements the error interface.
func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s does not support %s", e.Component, e.Operation)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnsupportedOperationError) Unwrap() error {
	return ErrUnsupported
}

// NewUnsupportedOperationError creates an unsupported operation error.
func NewUnsupportedOperationError(component, operation string) error {
	return &UnsupportedOperationError{Component: component, Operation: operation}
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsSerialization checks if an error is a serialization error.
func IsSerialization(err error) bool {
	return errors.Is(err, ErrSerialization)
}

// IsUnsupported checks if an error is an unsupported operation error.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}

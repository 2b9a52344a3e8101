package jwtvalidator

import (
	"errors"

	"github.com/openjwt/jwtvalidator/core/events"
	"github.com/openjwt/jwtvalidator/core/pipeline"
)

// Category groups ValidationError values for HTTP-status-code style
// branching at the call site (invalid structure vs invalid signature vs
// a semantic mismatch vs an infrastructure hiccup).
type Category = events.Category

// Re-exported so callers branching on Category need not import core/events
// directly; individual EventType values still live in core/events.
const (
	CategoryInvalidStructure = events.CategoryInvalidStructure
	CategoryInvalidSignature = events.CategoryInvalidSignature
	CategorySemantic         = events.CategorySemantic
	CategoryInfrastructure   = events.CategoryInfrastructure
	CategorySuccess          = events.CategorySuccess
)

// EventType is the closed enumeration of security events a validation
// call can report.
type EventType = events.Type

// ValidationError is returned by every Create*Token call that rejects a
// token. Callers branch on Category/EventType with errors.As instead of
// matching error strings.
type ValidationError struct {
	EventType EventType
	Category  Category
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Message == "" {
		return "jwt validation failed: " + e.EventType.String()
	}
	return "jwt validation failed: " + e.EventType.String() + ": " + e.Message
}

// Unwrap exposes Cause to errors.Is/errors.As chains.
func (e *ValidationError) Unwrap() error { return e.Cause }

// Configuration errors, returned by NewIssuer when construction-time
// validation fails (spec.md §4.9). These never occur after a
// TokenValidator starts serving traffic.
var (
	ErrIssuerIdentifierRequired    = errors.New("jwtvalidator: issuer_identifier or a well-known-discovered issuer is required")
	ErrAlgorithmPreferenceRejected = errors.New("jwtvalidator: algorithm_preferences must not contain none or an HS* algorithm")
	ErrJWKSLoaderRequired          = errors.New("jwtvalidator: exactly one jwks loader source is required")
	ErrJWKSLoaderAmbiguous         = errors.New("jwtvalidator: exactly one jwks loader source is required, got more than one")
)

// wrapFailure adapts the internal pipeline failure into the public
// ValidationError shape, filling in Category from the event taxonomy.
func wrapFailure(f *pipeline.Failure) error {
	if f == nil {
		return nil
	}
	return &ValidationError{
		EventType: f.EventType,
		Category:  f.EventType.Category(),
		Message:   f.Message,
	}
}

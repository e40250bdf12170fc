// Package domainerr defines the two failure categories shared by the LCA
// scoring engine.
//
// Every package-level sentinel in internal/domain and internal/services wraps
// exactly one of these, so callers can match either the specific condition
// (materials.ErrUnknownMaterial) or its category (ErrUnresolvedReference)
// with errors.Is.
package domainerr

import "errors"

var (
	// ErrInvalidInput marks a malformed caller-supplied parameter: a
	// non-positive mass, a non-positive day count, an inverted day window,
	// a non-positive half-life.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnresolvedReference marks a lookup against reference data that has
	// no matching entry: an unknown material identifier, or a material with
	// no biodegradation data for the requested environment.
	ErrUnresolvedReference = errors.New("unresolved reference")
)

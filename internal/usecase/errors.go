package usecase

import (
	"fmt"
	"sort"
	"strings"
)

// ScopeError means tenant-scope resolution failed; the call it would have
// scoped must not be issued. Values are comparable, so errors.Is matches
// the exported sentinels directly.
type ScopeError string

func (e ScopeError) Error() string { return string(e) }

const (
	// ErrFacilityRequired is returned when a global admin acts without
	// selecting a facility first.
	ErrFacilityRequired ScopeError = "facility required"
	// ErrNoTenantForFacility is returned when the selected facility record
	// lacks a tenant reference.
	ErrNoTenantForFacility ScopeError = "no tenant for facility"
	// ErrUnknownFacility is returned when the selected facility is not in
	// the fetched facility list.
	ErrUnknownFacility ScopeError = "unknown facility"
	// ErrMissingTenant is returned when a non-admin actor has no tenant.
	ErrMissingTenant ScopeError = "missing tenant"
)

// ValidationError collects local field failures detected before a network
// call. A non-empty ValidationError blocks the submit.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns an empty, appendable validation error.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add records a failure message for a field.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// Any reports whether at least one failure was recorded.
func (e *ValidationError) Any() bool { return len(e.Fields) > 0 }

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], "; ")))
	}
	return strings.Join(parts, ", ")
}

// LoadError wraps a failed collection read. It is non-fatal: the view-model
// keeps its previous items and the screen stays populated.
type LoadError struct {
	Resource string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Resource, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// Authentication errors
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid phone number or password")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserInactive         = errors.New("user account is inactive")
	ErrUnauthenticated      = errors.New("invalid authentication credentials")
	ErrTooManyLoginAttempts = errors.New("too many failed login attempts")
)

// Token errors
var (
	ErrTokenInvalid = errors.New("invalid token")
)

// Submission errors
var (
	ErrSubmissionNotFound = errors.New("form submission not found")
)

// ErrValidation matches any *ValidationError through errors.Is
var ErrValidation = errors.New("validation failed")

// ValidationError reports which input fields violated a constraint.
// Keys are the external (JSON) field names.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	names := e.FieldNames()
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + e.Fields[name]
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrValidation) match
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// FieldNames returns the offending field names in sorted order
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasField reports whether the named field failed validation
func (e *ValidationError) HasField(name string) bool {
	_, ok := e.Fields[name]
	return ok
}

// LoginThrottledError reports that a phone number is locked out of login
// until RetryAfter has elapsed. It matches ErrTooManyLoginAttempts.
type LoginThrottledError struct {
	RetryAfter time.Duration
}

func (e *LoginThrottledError) Error() string {
	return ErrTooManyLoginAttempts.Error()
}

// Is lets errors.Is(err, ErrTooManyLoginAttempts) match
func (e *LoginThrottledError) Is(target error) bool {
	return target == ErrTooManyLoginAttempts
}

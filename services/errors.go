package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrTaskNotFound = fmt.Errorf("task %w", ErrNotFound)
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	ErrInvalidID    = errors.New("invalid id")
	ErrIDMismatch   = errors.New("id in path and body must match")
	ErrValidation   = errors.New("validation error")
)

// ValidationError maps each offending field to a message key from
// pkg/apierrors.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, msgKey string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msgKey}}
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field, msgKey := range e.Fields {
		fields = append(fields, field+": "+msgKey)
	}
	sort.Strings(fields)
	return ErrValidation.Error() + ": " + strings.Join(fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

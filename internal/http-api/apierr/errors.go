// Package apierr holds the error taxonomy shared by services and handlers.
// Services return these; the handler layer maps them onto HTTP statuses and
// field-keyed bodies without inspecting driver errors.
package apierr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// ValidationError carries field -> message pairs so responses can enumerate
// every failing field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

func Validation(field, message string) error {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func Validationf(field, format string, args ...any) error {
	return Validation(field, fmt.Sprintf(format, args...))
}

type PermissionError struct{}

func (e *PermissionError) Error() string {
	return "you do not have permission to perform this action"
}

func PermissionDenied() error {
	return &PermissionError{}
}

type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

func Authentication(message string) error {
	return &AuthError{Message: message}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrValidation  = errors.New("validation error")
	ErrUniqueness  = errors.New("uniqueness violation")
	ErrReferential = errors.New("referenced entity not found")
	ErrNotFound    = errors.New("not found")
	ErrStore       = errors.New("store error")
)

// ValidationError carries one message per offending field.
type ValidationError struct {
	Fields map[string]string
	kind   error
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// NewUniquenessViolation is a ValidationError that also matches ErrUniqueness.
func NewUniquenessViolation(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields, kind: ErrUniqueness}
}

func (e *ValidationError) Error() string {
	prefix := ErrValidation.Error()
	if e.kind != nil {
		prefix = e.kind.Error()
	}
	if len(e.Fields) == 0 {
		return prefix
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return prefix + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	if target == ErrValidation {
		return true
	}
	return e.kind != nil && target == e.kind
}

// fieldErrors collects per-field messages; the first message for a field wins.
type fieldErrors map[string]string

func (f fieldErrors) add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return NewValidationError(map[string]string(f))
}

// ReferentialError reports a foreign key pointing at a row that does not exist.
type ReferentialError struct {
	Field string
	ID    uuid.UUID
}

func (e *ReferentialError) Error() string {
	if e.ID == uuid.Nil {
		return fmt.Sprintf("%s: %s", ErrReferential.Error(), e.Field)
	}
	return fmt.Sprintf("%s: %s=%s", ErrReferential.Error(), e.Field, e.ID)
}

func (e *ReferentialError) Is(target error) bool { return target == ErrReferential }

// StoreError wraps a persistence failure without altering it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStore }

// FieldErrors extracts the per-field messages from a validation error, if any.
func FieldErrors(err error) map[string]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

// Combine merges boundary field errors with the error returned by an entity
// constructor. Boundary messages win for fields reported by both. A
// non-validation err is returned as is.
func Combine(fields map[string]string, err error) error {
	if err != nil && FieldErrors(err) == nil {
		return err
	}
	merged := make(map[string]string, len(fields))
	for k, v := range fields {
		merged[k] = v
	}
	for k, v := range FieldErrors(err) {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	if len(merged) == 0 {
		return nil
	}
	return NewValidationError(merged)
}

package model

import (
	"errors"
	"fmt"
)

// NotFoundError covers missing entities and, for the public post
// surface, unpublished ones. The message never distinguishes the two.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func NewNotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ConflictError rejects a write that would violate a uniqueness or
// referential-integrity rule. BlockingCount is non-zero only for the
// category-deletion guard.
type ConflictError struct {
	Field         string
	Message       string
	BlockingCount int64
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflict(field, format string, args ...interface{}) error {
	return &ConflictError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// ValidationError rejects malformed input before any storage access.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

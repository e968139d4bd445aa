package entity

import (
	"errors"
	"fmt"
)

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %s", e.Resource, e.ID)
}

// NewNotFound builds a NotFoundError for the given resource and identifier.
func NewNotFound(resource string, id any) error {
	return &NotFoundError{Resource: resource, ID: fmt.Sprint(id)}
}

// DomainError reports a business-rule violation: a blank required field, an
// unavailable product, insufficient stock, a mismatched artist/label override,
// or a duplicate unique value.
type DomainError struct {
	Reason string
}

func (e *DomainError) Error() string {
	return e.Reason
}

// NewDomainError builds a DomainError with a formatted reason.
func NewDomainError(format string, args ...any) error {
	return &DomainError{Reason: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsDomainError reports whether err is (or wraps) a DomainError.
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

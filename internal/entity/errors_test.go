package entity

import (
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFound("product", "abbey-road-vinilo")

	if !IsNotFound(err) {
		t.Error("IsNotFound = false")
	}
	if IsDomainError(err) {
		t.Error("IsDomainError = true for a not-found error")
	}
	if got, want := err.Error(), "product not found with id: abbey-road-vinilo"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}

	wrapped := fmt.Errorf("failed to resolve order: %w", err)
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound = false for wrapped error")
	}
}

func TestNotFoundErrorNumericID(t *testing.T) {
	err := NewNotFound("user", int64(42))
	if got, want := err.Error(), "user not found with id: 42"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestDomainError(t *testing.T) {
	err := NewDomainError("insufficient stock for product %s", "abbey-road-vinilo")

	if !IsDomainError(err) {
		t.Error("IsDomainError = false")
	}
	if IsNotFound(err) {
		t.Error("IsNotFound = true for a domain error")
	}
	if got, want := err.Error(), "insufficient stock for product abbey-road-vinilo"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}

	wrapped := fmt.Errorf("failed to place order: %w", err)
	if !IsDomainError(wrapped) {
		t.Error("IsDomainError = false for wrapped error")
	}
}

func TestIsHelpersOnNil(t *testing.T) {
	if IsNotFound(nil) || IsDomainError(nil) {
		t.Error("nil error classified as typed")
	}
}

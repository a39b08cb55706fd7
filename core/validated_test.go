package core

import (
	"errors"
	"testing"
)

func TestNewValidatedSuccess(t *testing.T) {
	v, err := NewValidated(5, func(n int) error {
		if n < 0 {
			return errors.New("must be non-negative")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Get() != 5 {
		t.Fatalf("expected 5, got %d", v.Get())
	}
}

func TestNewValidatedFailurePropagatesGuardError(t *testing.T) {
	guardErr := errors.New("must be non-negative")
	_, err := NewValidated(-1, func(n int) error {
		if n < 0 {
			return guardErr
		}
		return nil
	})
	if !errors.Is(err, guardErr) {
		t.Fatalf("expected guard error to propagate, got %v", err)
	}
}

func TestIntoRawReturnsSameValueAsGet(t *testing.T) {
	v, err := NewValidated("hello", Valid[string])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.IntoRaw() != v.Get() {
		t.Fatalf("expected IntoRaw and Get to agree")
	}
}

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrRemoteFailure, cause)

	if err.Code != ErrRemoteFailure.Code || err.StatusCode != ErrRemoteFailure.StatusCode {
		t.Error("expected the sentinel's code and status preserved")
	}
	if !errors.Is(err, cause) {
		t.Error("expected the internal error reachable via errors.Is")
	}
	if err.Error() != ErrRemoteFailure.Message {
		t.Errorf("expected the public message, got %q", err.Error())
	}
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(ErrInvalidInput, "date must be in 2006-01-02 format")

	if err.Code != "INVALID_INPUT" {
		t.Errorf("expected code INVALID_INPUT, got %q", err.Code)
	}
	if err.Error() != "date must be in 2006-01-02 format" {
		t.Errorf("unexpected message %q", err.Error())
	}
	// The sentinel itself must stay untouched.
	if ErrInvalidInput.Message != "Invalid input" {
		t.Errorf("sentinel mutated: %q", ErrInvalidInput.Message)
	}
}

func TestErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("loading snapshot: %w", Wrap(ErrInternalServer, errors.New("disk gone")))

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("expected errors.As to find the AppError")
	}
	if appErr.Code != "INTERNAL_ERROR" {
		t.Errorf("expected code INTERNAL_ERROR, got %q", appErr.Code)
	}
}

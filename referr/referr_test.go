package referr_test

import (
	"errors"
	"testing"

	"github.com/riverford/durable-ref/referr"
)

func TestFromString(t *testing.T) {
	err := referr.FromString(referr.KindInvalidURI, "bad uri")
	if err == nil {
		t.Fatalf("Error is nil, got: %v", err)
	}
}

func TestFromString_Kind(t *testing.T) {
	err := referr.FromString(referr.KindInvalidURI, "bad uri")
	if err.Kind() != referr.KindInvalidURI {
		t.Fatalf("Error kind is not InvalidURI, got: %v", err.Kind())
	}
}

func TestFromString_Error(t *testing.T) {
	err := referr.FromString(referr.KindMissingValue, "absent")
	want := "MissingValue | absent"
	if err.Error() != want {
		t.Fatalf("Error message is not %q, got: %v", want, err.Error())
	}
}

func TestFromError(t *testing.T) {
	err := referr.FromError(referr.KindBackendError, referr.ErrTeapot, "write failed")
	if err == nil {
		t.Fatalf("Error is nil, got: %v", err)
	}
}

func TestWrap(t *testing.T) {
	err := referr.FromString(referr.KindChecksumMismatch, "hash mismatch")

	wrapped := err.Wrap("deref")
	want := "ChecksumMismatch | deref -> hash mismatch"
	if wrapped.Error() != want {
		t.Fatalf("Wrapped error message is not %q, got: %v", want, wrapped.Error())
	}
}

func TestUnwrap_Works(t *testing.T) {
	err := referr.FromError(referr.KindBackendError, referr.ErrTeapot, "boom")
	if !errors.Is(err.Unwrap(), referr.ErrTeapot) {
		t.Fatalf("Error didn't unwrap as %v", referr.ErrTeapot)
	}
}

func TestUnwrapLastError_Works(t *testing.T) {
	expected := "deref"

	err := referr.FromError(referr.KindBackendError, referr.ErrTeapot, "boom").Wrap(expected)
	got := err.UnwrapLastError()

	if got != expected {
		t.Fatalf("Error didn't unwrap correctly:\n got: %v\n want: %v", got, expected)
	}
}

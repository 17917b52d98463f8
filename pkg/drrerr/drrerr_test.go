package drrerr

import (
	"errors"
	"testing"
)

func TestIsMatchesKind(t *testing.T) {
	err := New(InvalidParameter, "radius must be positive")
	if !Is(err, InvalidParameter) {
		t.Fatal("expected Is to match InvalidParameter")
	}
	if Is(err, SystemFailure) {
		t.Fatal("expected Is to reject SystemFailure")
	}
}

func TestWrapUnwrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(SystemFailure, "failed to write csv", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the wrapped cause")
	}
	if !Is(err, SystemFailure) {
		t.Fatal("expected Is to match SystemFailure")
	}
}

func TestErrorMessageIncludesKindAndCause(t *testing.T) {
	cause := errors.New("eof")
	err := Wrap(InvalidExtent, "bad header", cause)
	want := "invalid extent: bad header: eof"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

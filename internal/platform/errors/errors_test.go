package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	base := New(CodeNotFound, "record not found")
	other := New(CodeNotFound, "different message, same code")

	if !stderrors.Is(other, base) {
		t.Fatal("expected errors with the same code to match")
	}
	if stderrors.Is(New(CodeUnavailable, "store down"), base) {
		t.Fatal("expected errors with different codes not to match")
	}
}

func TestErrorIsMatchesThroughWrapping(t *testing.T) {
	base := New(CodeAlreadyExists, "record already exists")
	wrapped := fmt.Errorf("put user: %w", base)

	if !stderrors.Is(wrapped, base) {
		t.Fatal("expected wrapped error to match by code")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodeUnavailable, "put character", cause)

	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause to be reachable via errors.Is")
	}
	if err.Error() != "put character" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(fmt.Errorf("get: %w", New(CodeNotFound, "missing"))); got != CodeNotFound {
		t.Fatalf("expected %s, got %s", CodeNotFound, got)
	}
	if got := CodeOf(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("expected %s for plain error, got %s", CodeUnknown, got)
	}
	if got := CodeOf(nil); got != CodeUnknown {
		t.Fatalf("expected %s for nil, got %s", CodeUnknown, got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "invalid input", err: New(CodeInvalidInput, "bad shape"), want: http.StatusBadRequest},
		{name: "invalid username", err: New(CodeUserInvalidUsername, "too short"), want: http.StatusBadRequest},
		{name: "unauthenticated", err: New(CodeUnauthenticated, "no session"), want: http.StatusUnauthorized},
		{name: "invalid credentials", err: New(CodeInvalidCredentials, "rejected"), want: http.StatusUnauthorized},
		{name: "forbidden", err: New(CodePermissionDenied, "not owner"), want: http.StatusForbidden},
		{name: "not found", err: New(CodeNotFound, "missing"), want: http.StatusNotFound},
		{name: "already exists", err: New(CodeUserAlreadyExists, "taken"), want: http.StatusConflict},
		{name: "unavailable", err: New(CodeUnavailable, "store down"), want: http.StatusServiceUnavailable},
		{name: "unknown", err: New(CodeUnknown, "boom"), want: http.StatusInternalServerError},
		{name: "plain error", err: stderrors.New("boom"), want: http.StatusInternalServerError},
		{name: "wrapped", err: fmt.Errorf("handler: %w", New(CodeNotFound, "missing")), want: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

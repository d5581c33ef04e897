package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeParseFailure, "device name has no second segment")

	if err.Code != ErrCodeParseFailure {
		t.Errorf("expected code %s, got %s", ErrCodeParseFailure, err.Code)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("operation not permitted")
	err := Wrap(ErrCodeQueryUnavailable, "sysctl hw.iostats failed", cause)

	if err.Code != ErrCodeQueryUnavailable {
		t.Errorf("expected code %s, got %s", ErrCodeQueryUnavailable, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("cannot allocate memory")
	err := WrapWithContext(ErrCodeAllocationFailure, "buffer too large", cause, map[string]any{
		"selector": "hw.iostats",
		"length":   1 << 30,
	})

	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["selector"] != "hw.iostats" {
		t.Errorf("expected selector to be hw.iostats")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeParseFailure, "bad device"),
			expected: "[PARSE_FAILURE] bad device",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeQueryUnavailable, "getvfsstat failed", errors.New("EINVAL")),
			expected: "[QUERY_UNAVAILABLE] getvfsstat failed: EINVAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("memory collector: %w", New(ErrCodeAllocationFailure, "too large"))

	code, ok := CodeOf(wrapped)
	if !ok || code != ErrCodeAllocationFailure {
		t.Errorf("CodeOf = %q, %v; want %q, true", code, ok, ErrCodeAllocationFailure)
	}
	if !IsCode(wrapped, ErrCodeAllocationFailure) {
		t.Error("IsCode should match through fmt wrapping")
	}
	if IsCode(errors.New("plain"), ErrCodeParseFailure) {
		t.Error("IsCode should not match a plain error")
	}
	if _, ok := CodeOf(nil); ok {
		t.Error("CodeOf(nil) should report no code")
	}
}

package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCommonErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrClosed", ErrClosed, "resource is closed"},
		{"ErrTimeout", ErrTimeout, "operation timed out"},
		{"ErrCapacityExceeded", ErrCapacityExceeded, "capacity exceeded"},
		{"ErrInvalidConfiguration", ErrInvalidConfiguration, "invalid configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "without hint",
			err: &ValidationError{
				Module: "workerpool",
				Field:  "WorkerCount",
				Value:  0,
				Reason: "must be positive",
			},
			want: "workerpool: invalid WorkerCount=0 (must be positive)",
		},
		{
			name: "with hint",
			err: &ValidationError{
				Module: "workerpool",
				Field:  "QueueCapacity",
				Value:  -1,
				Reason: "cannot be negative",
				Hint:   "use 0 for the default capacity",
			},
			want: "workerpool: invalid QueueCapacity=-1 (cannot be negative) - use 0 for the default capacity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	verr := NewValidationError("workerpool", "WorkerCount", -3, "must be positive")
	if !errors.Is(verr, ErrInvalidConfiguration) {
		t.Error("ValidationError should wrap ErrInvalidConfiguration")
	}
}

func TestValidationError_WithHint(t *testing.T) {
	err := NewValidationError("test", "field", 0, "invalid")
	if err.Hint != "" {
		t.Errorf("Hint = %q, want empty string", err.Hint)
	}

	result := err.WithHint("try using a positive value")
	if result != err {
		t.Error("WithHint should return the same instance")
	}
	if err.Hint != "try using a positive value" {
		t.Errorf("Hint = %q, want %q", err.Hint, "try using a positive value")
	}
}

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *OperationError
		want string
	}{
		{
			name: "without context",
			err:  NewOperationError("workerpool", "Submit", ErrClosed),
			want: "workerpool.Submit failed: resource is closed",
		},
		{
			name: "with context",
			err: NewOperationError("workerpool", "TrySubmit", ErrCapacityExceeded).
				WithContext("queue capacity 8"),
			want: "workerpool.TrySubmit failed: capacity exceeded (queue capacity 8)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("waiting for slot: %w", context.Canceled)
	opErr := NewOperationError("workerpool", "Submit", cause)

	if !errors.Is(opErr, context.Canceled) {
		t.Error("OperationError should expose the wrapped cause")
	}
	if opErr.WithContext("x") != opErr {
		t.Error("WithContext should return the same instance")
	}
}

func TestIsTemporary(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"timeout", ErrTimeout, true},
		{"capacity", ErrCapacityExceeded, true},
		{"closed", ErrClosed, false},
		{"random error", errors.New("random"), false},
		{"wrapped capacity", NewOperationError("workerpool", "TrySubmit", ErrCapacityExceeded), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTemporary(tt.err); got != tt.want {
				t.Errorf("IsTemporary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"direct", NewValidationError("test", "field", 0, "test"), true},
		{"wrapped", fmt.Errorf("config: %w", NewValidationError("test", "field", 0, "test")), true},
		{"operation error", NewOperationError("test", "op", errors.New("test")), false},
		{"standard error", errors.New("test"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidationError(tt.err); got != tt.want {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	err := NewValidationError("mymodule", "myfield", 42, "must be less than 10").
		WithHint("use a value between 0 and 10")

	msg := err.Error()
	for _, part := range []string{"mymodule", "myfield", "42", "must be less than 10", "use a value between 0 and 10"} {
		if !strings.Contains(msg, part) {
			t.Errorf("error message should contain %q, got %q", part, msg)
		}
	}
}

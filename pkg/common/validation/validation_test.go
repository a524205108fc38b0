package validation

import (
	"errors"
	"testing"

	bperrors "github.com/vnykmshr/boundpool/pkg/common/errors"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name      string
		value     int
		wantError bool
	}{
		{"positive value", 10, false},
		{"one", 1, false},
		{"zero value", 0, true},
		{"negative value", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("test", "count", tt.value)
			if tt.wantError {
				if !bperrors.IsValidationError(err) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	tests := []struct {
		name      string
		value     int
		wantError bool
	}{
		{"positive value", 8, false},
		{"zero value", 0, false},
		{"negative value", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNonNegative("test", "capacity", tt.value)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateNonNegative(%d) error = %v, wantError %v", tt.value, err, tt.wantError)
			}
		})
	}
}

func TestValidateNonNegativeFloat(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		wantError bool
	}{
		{"positive value", 10.5, false},
		{"zero value", 0, false},
		{"small negative", -0.001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNonNegativeFloat("test", "rate", tt.value)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateNonNegativeFloat(%v) error = %v, wantError %v", tt.value, err, tt.wantError)
			}
		})
	}
}

func TestValidateNotEmpty(t *testing.T) {
	if err := ValidateNotEmpty("config", "workload", "primes"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateNotEmpty("config", "workload", " "); err != nil {
		t.Errorf("whitespace is not empty, got %v", err)
	}
	if err := ValidateNotEmpty("config", "workload", ""); !bperrors.IsValidationError(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestValidateOneOf(t *testing.T) {
	if err := ValidateOneOf("config", "workload", "hash", "primes", "hash"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := ValidateOneOf("config", "workload", "sleep", "primes", "hash")
	var verr *bperrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Hint != "use one of: primes, hash" {
		t.Errorf("Hint = %q", verr.Hint)
	}
}

func TestValidationErrorDetails(t *testing.T) {
	err := ValidatePositive("workerpool", "WorkerCount", -5)

	var verr *bperrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatal("could not extract ValidationError")
	}
	if verr.Module != "workerpool" {
		t.Errorf("Module = %q, want %q", verr.Module, "workerpool")
	}
	if verr.Field != "WorkerCount" {
		t.Errorf("Field = %q, want %q", verr.Field, "WorkerCount")
	}
	if verr.Value != -5 {
		t.Errorf("Value = %v, want %v", verr.Value, -5)
	}
	if verr.Reason != "must be positive" {
		t.Errorf("Reason = %q, want %q", verr.Reason, "must be positive")
	}
	if !errors.Is(err, bperrors.ErrInvalidConfiguration) {
		t.Error("validation errors should match ErrInvalidConfiguration")
	}
}

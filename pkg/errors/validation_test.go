package errors

import (
	"strings"
	"testing"
)

func TestValidationErrorsEmpty(t *testing.T) {
	var errs ValidationErrors
	if err := errs.AsError(); err != nil {
		t.Errorf("empty collection should be nil error, got %v", err)
	}
}

func TestValidationErrorsCollect(t *testing.T) {
	var errs ValidationErrors
	errs.Add("spacing.tier_gap", "must not be negative, got %g", -5.0)
	errs.Add("algorithm", "unknown value %q", "spiral")

	err := errs.AsError()
	if err == nil {
		t.Fatal("expected error")
	}
	if !Is(err, ErrCodeConfig) {
		t.Errorf("validation failures should carry %s, got %s", ErrCodeConfig, GetCode(err))
	}

	msg := err.Error()
	for _, want := range []string{"spacing.tier_gap", "must not be negative, got -5", `unknown value "spiral"`} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}

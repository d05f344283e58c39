package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeConfig, "unknown algorithm: %s", "spiral")
	want := "CONFIG_ERROR: unknown algorithm: spiral"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("graphviz exploded")
	err := Wrap(ErrCodeSolver, cause, "layered layout")

	if !errors.Is(err, cause) {
		t.Error("wrapped error does not match cause via errors.Is")
	}
	want := "SOLVER_ERROR: layered layout: graphviz exploded"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrCodeNotFound, "diagram %q", "abc")

	if !Is(err, ErrCodeNotFound) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeConfig) {
		t.Error("Is should not match a different code")
	}
	if Is(errors.New("plain"), ErrCodeNotFound) {
		t.Error("Is should not match a plain error")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeSolver, "solve failed")
	outer := fmt.Errorf("pipeline: %w", inner)

	if !Is(outer, ErrCodeSolver) {
		t.Error("Is should unwrap fmt.Errorf chains")
	}
	if GetCode(outer) != ErrCodeSolver {
		t.Errorf("GetCode = %q, want %q", GetCode(outer), ErrCodeSolver)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"structured", New(ErrCodeData, "duplicate node id"), "duplicate node id"},
		{"plain", errors.New("boom"), "boom"},
		{"wrapped", fmt.Errorf("outer: %w", New(ErrCodeStore, "put failed")), "put failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage = %q, want %q", got, tt.want)
			}
		})
	}
}

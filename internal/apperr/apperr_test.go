package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/garnizeh/boards/internal/apperr"
)

func TestKindOf(t *testing.T) {
	sentinel := apperr.Conflict("user already exists")

	tests := []struct {
		name    string
		err     error
		want    apperr.Kind
		wantMsg string
	}{
		{name: "Plain", err: errors.New("boom"), want: apperr.KindInternal, wantMsg: "Internal server error"},
		{name: "Direct", err: sentinel, want: apperr.KindConflict, wantMsg: "user already exists"},
		{name: "Wrapped", err: fmt.Errorf("register: %w", sentinel), want: apperr.KindConflict, wantMsg: "user already exists"},
		{name: "Internal", err: apperr.Internal("insert user", errors.New("disk full")), want: apperr.KindInternal, wantMsg: "Internal server error"},
		{name: "Validation", err: apperr.Validation("title is required"), want: apperr.KindValidation, wantMsg: "title is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apperr.KindOf(tt.err); got != tt.want {
				t.Fatalf("KindOf: want %v got %v", tt.want, got)
			}
			if got := apperr.Message(tt.err); got != tt.wantMsg {
				t.Fatalf("Message: want %q got %q", tt.wantMsg, got)
			}
		})
	}
}

func TestSentinelIdentity(t *testing.T) {
	sentinel := apperr.NotFound("quiz not found")
	wrapped := fmt.Errorf("get quiz 7: %w", sentinel)
	if !errors.Is(wrapped, sentinel) {
		t.Fatalf("expected errors.Is to match the sentinel")
	}

	cause := errors.New("database is locked")
	internal := apperr.Internal("list quizzes", cause)
	if !errors.Is(internal, cause) {
		t.Fatalf("expected internal error to unwrap to its cause")
	}
}

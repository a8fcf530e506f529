package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFound_SentinelIsNeutral(t *testing.T) {
	if got := ErrNotFound.Error(); got != "not found" {
		t.Errorf("ErrNotFound = %q, want %q", got, "not found")
	}

	for _, msg := range []string{"Principal not found", "Internship not found"} {
		err := fmt.Errorf("lookup: %w", NotFound(msg))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("NotFound(%q) does not unwrap to ErrNotFound", msg)
		}
		if got := Message(err, "fallback"); got != msg {
			t.Errorf("Message = %q, want %q", got, msg)
		}
	}
}

func TestMessage_Fallback(t *testing.T) {
	if got := Message(ErrNotFound, "Not found"); got != "Not found" {
		t.Errorf("bare sentinel message = %q", got)
	}
	if got := Message(Storage(errors.New("/srv/docs: disk full")), "Internal server error"); got != "Internal server error" {
		t.Errorf("storage error leaked message %q", got)
	}
}

//go:build !windows

package tty

import (
	"testing"

	"github.com/creack/pty"
)

// TestRawOrigRoundTrip drives the state machine against a real
// pseudo-terminal pair instead of a plain pipe, matching the teacher
// corpus's own pty-backed cli tests, since a non-tty file descriptor
// would make Raw/Orig silently no-op and defeat the point of the
// test.
func TestRawOrigRoundTrip(t *testing.T) {
	ptmx, tts, err := pty.Open()
	if err != nil {
		t.Fatalf("pty.Open: %v", err)
	}
	defer ptmx.Close()
	defer tts.Close()

	term := New(tts, tts)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got := term.CurrentState(); got != StateInit {
		t.Fatalf("state after Init = %v, want INIT", got)
	}
	if !term.IsInputTerminal() {
		t.Fatalf("pty slave should report as a terminal")
	}

	if err := term.Raw(); err != nil {
		t.Fatalf("Raw: %v", err)
	}
	if got := term.CurrentState(); got != StateRaw {
		t.Fatalf("state after Raw = %v, want RAW", got)
	}

	term.Unknown()
	if got := term.CurrentState(); got != StateUnknown {
		t.Fatalf("state after Unknown = %v, want UNKNOWN", got)
	}

	if err := term.Orig(); err != nil {
		t.Fatalf("Orig: %v", err)
	}
	if got := term.CurrentState(); got != StateOrig {
		t.Fatalf("state after Orig = %v, want ORIG", got)
	}

	// Orig is idempotent.
	if err := term.Orig(); err != nil {
		t.Fatalf("second Orig: %v", err)
	}
}

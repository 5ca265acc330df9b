// Package tty implements the terminal mode state machine specified
// for drsh: {INIT, RAW, ORIG, UNKNOWN}, buffered writes, and printf,
// grounded on the reference shell's setup/restore pair
// (edit/tty/setup_unix.go in the teacher corpus) but built on
// golang.org/x/term instead of hand-rolled termios/cgo, and on
// github.com/mattn/go-isatty for the terminal-ness probe that both
// the teacher and mattn/go-rl use.
package tty

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// State is one of the four modes a Terminal can be in.
type State int

const (
	StateInit State = iota
	StateRaw
	StateOrig
	StateUnknown
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateRaw:
		return "RAW"
	case StateOrig:
		return "ORIG"
	default:
		return "UNKNOWN"
	}
}

// Terminal owns the raw-mode lifecycle for a pair of file descriptors
// and buffers writes to the output side, matching the reference
// shell's DrshTerminalState (buffered writes + printf).
type Terminal struct {
	In, Out *os.File
	w       *bufio.Writer

	state    State
	inIsTerm bool
	saved    *term.State
}

// New wraps the given in/out files. It does not change terminal mode;
// call Init to snapshot the original state.
func New(in, out *os.File) *Terminal {
	return &Terminal{
		In:  in,
		Out: out,
		w:   bufio.NewWriter(out),
	}
}

// IsTerminal reports whether f refers to an actual terminal device.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Init snapshots the original terminal mode and records whether the
// input side is an actual terminal. It transitions to StateInit.
func (t *Terminal) Init() error {
	t.inIsTerm = IsTerminal(t.In)
	if t.inIsTerm {
		saved, err := term.GetState(int(t.In.Fd()))
		if err != nil {
			return fmt.Errorf("tty: get terminal state: %w", err)
		}
		t.saved = saved
	}
	t.state = StateInit
	return nil
}

// Raw applies raw mode if not already in it: no echo, no canonical
// mode, minimum one byte per read with no inter-byte timeout on
// POSIX; disabling line input and enabling VT escape processing on
// the DOS family is handled inside the platform-specific helper this
// calls into.
func (t *Terminal) Raw() error {
	if t.state == StateRaw {
		return nil
	}
	if !t.inIsTerm {
		t.state = StateRaw
		return nil
	}
	if _, err := term.MakeRaw(int(t.In.Fd())); err != nil {
		return fmt.Errorf("tty: make raw: %w", err)
	}
	if err := enableRawExtras(int(t.In.Fd())); err != nil {
		return fmt.Errorf("tty: enable raw extras: %w", err)
	}
	t.state = StateRaw
	return nil
}

// Orig restores the snapshotted original mode. Idempotent: calling it
// when already in StateOrig (or when the input side was never a real
// terminal) does nothing.
func (t *Terminal) Orig() error {
	if t.state == StateOrig {
		return nil
	}
	if t.inIsTerm && t.saved != nil {
		if err := term.Restore(int(t.In.Fd()), t.saved); err != nil {
			return fmt.Errorf("tty: restore terminal state: %w", err)
		}
	}
	t.state = StateOrig
	return nil
}

// Unknown marks the mode as unknown without issuing any syscalls; used
// right after spawning a child that may have changed the mode.
func (t *Terminal) Unknown() { t.state = StateUnknown }

// CurrentState returns the current mode.
func (t *Terminal) CurrentState() State { return t.state }

// Write buffers p for later Flush, satisfying io.Writer.
func (t *Terminal) Write(p []byte) (int, error) { return t.w.Write(p) }

// Printf buffers a formatted write.
func (t *Terminal) Printf(format string, args ...any) {
	fmt.Fprintf(t.w, format, args...)
}

// Flush pushes buffered writes out to the underlying file.
func (t *Terminal) Flush() error { return t.w.Flush() }

// Size returns the terminal's current row/column count, falling back
// to 24x80 if the size cannot be determined (e.g. output is not a
// terminal).
func (t *Terminal) Size() (rows, cols int) {
	cols, rows, err := term.GetSize(int(t.Out.Fd()))
	if err != nil {
		return 24, 80
	}
	return rows, cols
}

// IsInputTerminal reports whether the input side is a real terminal.
func (t *Terminal) IsInputTerminal() bool { return t.inIsTerm }

var _ io.Writer = (*Terminal)(nil)

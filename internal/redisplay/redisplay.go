// Package redisplay implements the multi-line prompt redraw algorithm
// specified in §4.6: move the cursor up by the rows it descended on
// the previous pass, clear to end of screen, re-emit prompt and write
// buffer verbatim, then reposition the cursor. It is pure:
// Compose builds the byte sequence to write and the n_cols_up value
// to remember for the next call; it performs no I/O itself, so it is
// trivially testable for the idempotence property spec.md requires.
package redisplay

import "fmt"

// State is the redraw state carried between successive calls, holding
// the one piece of information that must survive across keystrokes:
// how many rows the cursor needs to move up before the next redraw
// can safely clear-to-end-of-screen and re-emit.
type State struct {
	nColsUp int
}

// Input bundles everything Compose needs to build one redraw.
type Input struct {
	PromptVisualLen int // prompt length in columns, ANSI escapes excluded
	Prompt          string
	WriteBuffer     string
	WriteCursor     int // byte offset into WriteBuffer
	Cols            int // terminal width; must be >= 1
	NeedsClearScreen bool
}

// Compose returns the byte sequence to write to the terminal for one
// redraw pass and updates s.nColsUp for the next call.
func (s *State) Compose(in Input) []byte {
	var out []byte
	if in.NeedsClearScreen {
		out = append(out, "\033[2J\033[1;1H"...)
	}
	if s.nColsUp > 0 {
		out = append(out, fmt.Sprintf("\033[%dA", s.nColsUp)...)
	}
	out = append(out, "\r\033[J"...)
	out = append(out, in.Prompt...)
	out = append(out, in.WriteBuffer...)

	cols := in.Cols
	if cols < 1 {
		cols = 1
	}
	visualSize := in.PromptVisualLen + len(in.WriteBuffer)
	cursorVisualPosition := visualSize - (len(in.WriteBuffer) - in.WriteCursor)
	totalLines := (visualSize-1)/cols + 1
	cursorLine := (cursorVisualPosition-1)/cols + 1
	cursorColumn := (cursorVisualPosition-1)%cols + 1

	if diff := totalLines - cursorLine; diff > 0 {
		out = append(out, fmt.Sprintf("\033[%dA", diff)...)
	}
	out = append(out, fmt.Sprintf("\r\033[%dC", cursorColumn)...)

	s.nColsUp = cursorLine - 1
	return out
}

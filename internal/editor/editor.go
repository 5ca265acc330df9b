// Package editor implements the line-editor half of drsh's input
// state: the write buffer and its cursor, history navigation, and the
// kill/delete/move operations driven by decoded editing commands
// (internal/decode). It does not touch the terminal; internal/shell
// wires it to internal/tty and internal/redisplay.
package editor

import (
	"github.com/drpriver/drsh/internal/buffer"
	"github.com/drpriver/drsh/internal/decode"
)

// Editor holds the write buffer, its cursor, and history state.
type Editor struct {
	write       *buffer.Buffer
	writeCursor int

	history      []string
	histStart    int // demarcates entries loaded from disk vs this session
	historyCursor int
	savedLine    string // write buffer stashed while walking history

	NeedsRedisplay   bool
	NeedsClearScreen bool
}

// New returns an empty Editor.
func New() *Editor {
	return &Editor{write: buffer.New(256)}
}

// Line returns the current write-buffer contents.
func (e *Editor) Line() string { return e.write.String() }

// Cursor returns the current byte offset of the cursor in Line().
func (e *Editor) Cursor() int { return e.writeCursor }

// LoadHistory seeds the history vector from persisted entries (read at
// startup) and marks them as not-this-session, so only lines appended
// after this point get flushed back to disk on exit.
func (e *Editor) LoadHistory(lines []string) {
	e.history = append(e.history[:0], lines...)
	e.histStart = len(e.history)
	e.historyCursor = len(e.history)
}

// SessionHistory returns the entries recorded since LoadHistory was
// called — the lines hist_dump actually needs to append.
func (e *Editor) SessionHistory() []string {
	return e.history[e.histStart:]
}

// PushHistory records an accepted line in the history vector and
// resets the history cursor to point past the end.
func (e *Editor) PushHistory(line string) {
	e.history = append(e.history, line)
	e.historyCursor = len(e.history)
}

// reset clears the write buffer and cursor, used after a line is
// accepted or on INTERRUPT.
func (e *Editor) reset() {
	e.write.Clear()
	e.writeCursor = 0
	e.NeedsRedisplay = true
}

// Apply runs one decoded command against the editor state. It returns
// (line, true, false) when the command accepted a line (ENTER/ACCEPT),
// ("", false, true) on CtrlD-on-empty-line, and ("", false, false)
// otherwise (the caller should keep reading).
func (e *Editor) Apply(cmd decode.Cmd) (line string, accepted bool, eof bool) {
	switch {
	case cmd.IsLiteral():
		e.insert(byte(cmd))
		return "", false, false
	}
	switch cmd {
	case decode.CmdMoveHome:
		e.writeCursor = 0
	case decode.CmdMoveEnd:
		e.writeCursor = e.write.Len()
	case decode.CmdMoveLeft:
		if e.writeCursor > 0 {
			e.writeCursor--
		}
	case decode.CmdMoveRight:
		if e.writeCursor < e.write.Len() {
			e.writeCursor++
		}
	case decode.CmdDeleteBack:
		if e.writeCursor > 0 {
			e.write.Remove(e.writeCursor-1, e.writeCursor)
			e.writeCursor--
		}
	case decode.CmdDeleteForward:
		if e.writeCursor < e.write.Len() {
			e.write.Remove(e.writeCursor, e.writeCursor+1)
		}
	case decode.CmdDeleteForwardOrEOF:
		if e.write.Len() == 0 {
			return "", false, true
		}
		if e.writeCursor < e.write.Len() {
			e.write.Remove(e.writeCursor, e.writeCursor+1)
		}
	case decode.CmdKillEndOfLine:
		e.write.Truncate(e.writeCursor)
	case decode.CmdInterrupt:
		e.reset()
	case decode.CmdClearScreen:
		e.NeedsClearScreen = true
	case decode.CmdMoveUp:
		e.historyPrev()
	case decode.CmdMoveDown:
		e.historyNext()
	case decode.CmdAccept, decode.CmdEnter:
		line = e.write.String()
		e.reset()
		return line, true, false
	default:
		// Unhandled control codes (Ctrl-G, Ctrl-O, Ctrl-Q, ...) are
		// reserved but currently no-ops, matching the reference
		// implementation which declares but never binds them.
	}
	e.NeedsRedisplay = true
	return "", false, false
}

func (e *Editor) insert(c byte) {
	e.write.Insert(e.writeCursor, []byte{c})
	e.writeCursor++
	e.NeedsRedisplay = true
}

// historyPrev walks one entry further into the past, stashing the
// in-progress line the first time it is called.
func (e *Editor) historyPrev() {
	if e.historyCursor == 0 {
		return
	}
	if e.historyCursor == len(e.history) {
		e.savedLine = e.write.String()
	}
	e.historyCursor--
	e.setLine(e.history[e.historyCursor])
}

// historyNext walks one entry toward the present; moving past the end
// restores the stashed in-progress line (or empties the buffer if
// there was none), matching "DOWN past the end leaves write buffer
// empty".
func (e *Editor) historyNext() {
	if e.historyCursor >= len(e.history) {
		return
	}
	e.historyCursor++
	if e.historyCursor == len(e.history) {
		e.setLine(e.savedLine)
		e.savedLine = ""
		return
	}
	e.setLine(e.history[e.historyCursor])
}

func (e *Editor) setLine(s string) {
	e.write.Clear()
	e.write.AppendString(s)
	e.writeCursor = e.write.Len()
}

// ReplaceBasename splices newText into the write buffer, replacing the
// half-open byte range [from, to), and moves the cursor to the end of
// the inserted text. Used by the completion engine to swap in a
// candidate's text.
func (e *Editor) ReplaceBasename(from, to int, newText string) {
	e.write.Remove(from, to)
	e.write.Insert(from, []byte(newText))
	e.writeCursor = from + len(newText)
	e.NeedsRedisplay = true
}

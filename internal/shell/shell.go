// Package shell wires the atom table, environment, terminal,
// line editor, redisplay composer, tokenizer/canonicalizer, resolver,
// and built-in dispatcher into the interactive read-eval loop and the
// `drsh [PATH...]` non-interactive sourcing mode described in §6.
package shell

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/drpriver/drsh/internal/atom"
	"github.com/drpriver/drsh/internal/builtin"
	"github.com/drpriver/drsh/internal/complete"
	"github.com/drpriver/drsh/internal/decode"
	"github.com/drpriver/drsh/internal/ec"
	"github.com/drpriver/drsh/internal/editor"
	"github.com/drpriver/drsh/internal/environ"
	"github.com/drpriver/drsh/internal/logutil"
	"github.com/drpriver/drsh/internal/platform"
	"github.com/drpriver/drsh/internal/redisplay"
	"github.com/drpriver/drsh/internal/tty"
	"github.com/drpriver/drsh/internal/wordsplit"
)

var logger = logutil.GetLogger("shell")

// Shell owns the full runtime state for one process: the atom table
// and environment are grow-only and live for the process lifetime,
// everything else is scratch state for the current line.
type Shell struct {
	at   *atom.Table
	env  *environ.Environment
	term *tty.Terminal
	ed   *editor.Editor

	historyPath string
	configPath  string

	completion *complete.State
}

// New builds a Shell bound to stdin/stdout, loading the process
// environment, refreshing cwd/size, incrementing SHLVL, and loading
// history. It snapshots but does not change the terminal mode; call
// Run or RunFiles next.
func New() (*Shell, error) {
	at := atom.NewTable()
	env := environ.New(at, platform.Host())
	env.LoadOSEnviron()
	env.IncrementSHLVL()
	if err := env.RefreshCwd(); err != nil {
		return nil, err
	}

	term := tty.New(os.Stdin, os.Stdout)
	if err := term.Init(); err != nil {
		return nil, err
	}
	rows, cols := term.Size()
	env.RefreshSize(rows, cols)
	if exe, err := os.Executable(); err == nil {
		env.ResolveShellPath(exe)
	} else {
		env.SetString("SHELL", "drsh")
	}

	sh := &Shell{
		at:   at,
		env:  env,
		term: term,
		ed:   editor.New(),
	}

	if cfg, err := env.ConfigPath(); err == nil {
		sh.configPath = cfg
		env.SetString("DRSH_CONFIG", cfg)
	}
	if hist, err := env.HistoryPath(); err == nil {
		sh.historyPath = hist
		sh.ed.LoadHistory(loadHistory(hist))
	}

	return sh, nil
}

// Run drives the interactive loop until EOF, the `exit` built-in, or
// a failed read, then
// restores the terminal and flushes history. It returns the process
// exit code.
func (sh *Shell) Run() int {
	defer sh.shutdown()

	if sh.configPath != "" {
		if _, err := sh.runSourceFile(sh.configPath); err != nil && sh.env.Debug {
			logger.Printf("config load: %v", err)
		}
	}

	if err := sh.term.Raw(); err != nil {
		return 1
	}

	var redraw redisplay.State
	buf := make([]byte, 0, 64)
	readbuf := make([]byte, 256)

	for {
		sh.redisplay(&redraw)

		n, err := sh.term.In.Read(readbuf)
		if err != nil || n == 0 {
			return sh.finish(0)
		}
		buf = append(buf, readbuf[:n]...)

		for len(buf) > 0 {
			cmd, consumed := decode.Decode(buf)
			if consumed == 0 {
				break // incomplete escape prefix, read more
			}
			buf = buf[consumed:]

			exit, eof := sh.handleCmd(cmd)
			if eof {
				return sh.finish(0)
			}
			if exit {
				return sh.finish(0)
			}
			sh.redisplay(&redraw)
		}
	}
}

// handleCmd routes one decoded command either into the completion
// cycle (TAB/SHIFT_TAB/ESC-while-active) or into the line editor,
// running the accepted line through the dispatcher on ACCEPT/ENTER.
func (sh *Shell) handleCmd(cmd decode.Cmd) (exit, eof bool) {
	if sh.completion != nil {
		switch cmd {
		case decode.CmdTab:
			sh.spliceCompletion(sh.completion.Advance(1))
			return false, false
		case decode.CmdShiftTab:
			sh.spliceCompletion(sh.completion.Advance(-1))
			return false, false
		case decode.CmdEsc:
			sh.spliceCompletion(sh.completion.Reset())
			sh.completion = nil
			return false, false
		}
		sh.completion = nil
	}
	if cmd == decode.CmdTab {
		sh.beginCompletion()
		return false, false
	}

	line, accepted, isEOF := sh.ed.Apply(cmd)
	if isEOF {
		return false, true
	}
	if !accepted {
		return false, false
	}

	sh.ed.PushHistory(line)
	if sh.term.IsInputTerminal() && tty.IsTerminal(sh.term.Out) {
		fmt.Fprint(sh.term, "\r\n")
		sh.term.Flush()
	}

	exitRequested, err := sh.runLine(line)
	if err != nil && !errors.Is(err, ec.ValueError) {
		sh.term.Printf("%s", errorLine(err))
		sh.term.Flush()
	}
	return exitRequested, false
}

func (sh *Shell) beginCompletion() {
	line := sh.ed.Line()
	backslashIsSep := sh.env.Flavor == platform.Windows
	tok := complete.ParseToken(line, sh.ed.Cursor(), backslashIsSep)
	dirsOnly := isCdInvocation(line)
	pwd := ""
	if v := sh.env.GetString("PWD"); v != nil {
		pwd = v.Text
	}
	sh.completion = complete.Begin(sh.at, pwd, tok, dirsOnly, sh.env.Flavor == platform.Windows)
}

func isCdInvocation(line string) bool {
	return len(line) >= 3 && line[:3] == "cd "
}

func (sh *Shell) spliceCompletion(text string) {
	if sh.completion == nil {
		return
	}
	sh.ed.ReplaceBasename(sh.completion.Token.Start, sh.completion.Token.End, text)
}

// redisplay composes and flushes one redraw pass for the current
// editor state.
func (sh *Shell) redisplay(s *redisplay.State) {
	if !sh.ed.NeedsRedisplay && !sh.ed.NeedsClearScreen {
		return
	}
	prompt, visualLen := buildPrompt(sh.env, time.Now())
	rows, cols := sh.term.Size()
	sh.env.RefreshSize(rows, cols)
	out := s.Compose(redisplay.Input{
		PromptVisualLen:  visualLen,
		Prompt:           prompt,
		WriteBuffer:      sh.ed.Line(),
		WriteCursor:      sh.ed.Cursor(),
		Cols:             cols,
		NeedsClearScreen: sh.ed.NeedsClearScreen,
	})
	sh.term.Write(out)
	sh.term.Flush()
	sh.ed.NeedsRedisplay = false
	sh.ed.NeedsClearScreen = false
}

// runLine tokenizes, canonicalizes, globs, and dispatches one
// accepted line, returning exitRequested=true when the `exit`
// built-in or a propagated EXIT from `source` fired.
func (sh *Shell) runLine(line string) (exitRequested bool, err error) {
	trimmed := line
	if trimmed == "\r" || trimmed == "\n" || trimmed == "" {
		return false, nil
	}
	argv := wordsplit.Argv(sh.at, sh.env, line)
	if len(argv) == 0 {
		return false, nil
	}

	res, err := builtin.Dispatch(sh.at, sh.env, argv, sh.term, sh.runSourceFile, sh.spawn)
	if res.Handled {
		return res.Exit, err
	}

	_, spawnErr := sh.spawn(argv)
	return false, spawnErr
}

// RunFiles sources each path in order, non-interactively: no terminal
// raw mode, no redisplay, no completion. Returns 1 if any path failed
// to source; an `exit`/EXIT stops processing the remaining paths and
// returns 0, as does finishing them all.
func (sh *Shell) RunFiles(paths []string) int {
	defer sh.shutdown()
	for _, p := range paths {
		exit, err := sh.runSourceFile(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "drsh: %s: %v\n", p, err)
			return 1
		}
		if exit {
			return 0
		}
	}
	return 0
}

// runSourceFile implements builtin.Source: it reads path, splits it
// into lines, and runs each one through runLine, propagating EXIT.
func (sh *Shell) runSourceFile(path string) (exit bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	for _, rawLine := range splitLines(string(data)) {
		exitRequested, lineErr := sh.runLine(rawLine)
		if lineErr != nil {
			logger.Printf("source %s: %v", path, lineErr)
		}
		if exitRequested {
			return true, nil
		}
	}
	return false, nil
}

func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			line := text[start:i]
			if len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
			}
			lines = append(lines, line)
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func (sh *Shell) finish(code int) int {
	return code
}

func (sh *Shell) shutdown() {
	sh.term.Orig()
	sh.term.Flush()
	if sh.historyPath != "" {
		if err := dumpHistory(sh.historyPath, sh.ed.SessionHistory()); err != nil {
			logger.Printf("history dump: %v", err)
		}
	}
}

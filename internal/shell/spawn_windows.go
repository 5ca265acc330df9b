//go:build windows

package shell

import (
	"os"
	"os/signal"
	"syscall"
)

// windowsCmdLine builds the SysProcAttr that makes exec.Cmd hand
// CreateProcess a pre-quoted command line instead of re-quoting
// cmd.Args itself, matching the reference implementation's own
// hand-built command tail.
func windowsCmdLine(line string) *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CmdLine: line}
}

// installWindowsCtrlHandler swallows console control events (the
// Windows analogue of SIGINT) for the duration of a child process, so
// CTRL-C reaches the child instead of killing the shell, matching
// §5's "no-op control handler on the DOS family" while a child runs.
func installWindowsCtrlHandler() func() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	return func() {
		signal.Stop(c)
		close(c)
	}
}

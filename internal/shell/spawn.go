package shell

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/drpriver/drsh/internal/atom"
	"github.com/drpriver/drsh/internal/builtin"
	"github.com/drpriver/drsh/internal/ec"
	"github.com/drpriver/drsh/internal/platform"
	"github.com/drpriver/drsh/internal/resolve"
)

// spawn resolves argv[0] to a concrete executable and runs it to
// completion, putting the terminal in ORIG for the child's duration
// and marking it Unknown afterward (the child may have left the mode
// in any state), per §5's "every spawn must visit
// ORIG → (child) → UNKNOWN → RAW".
func (sh *Shell) spawn(argv []*atom.Atom) (builtin.SpawnResult, error) {
	windows := sh.env.Flavor == platform.Windows
	path, ok := resolve.Program(sh.env, argv[0], windows)
	if !ok {
		return builtin.SpawnResult{}, fmt.Errorf("resolve %q: %w", argv[0].Text, ec.NotFound)
	}

	cmd := sh.buildCmd(path, argv, windows)
	cmd.Stdin = sh.term.In
	cmd.Stdout = sh.term.Out
	cmd.Stderr = sh.term.Out

	if err := sh.term.Orig(); err != nil {
		return builtin.SpawnResult{}, err
	}
	restoreSignals := noopSignals()
	start := time.Now()
	err := cmd.Run()
	wall := time.Since(start)
	restoreSignals()
	sh.term.Unknown()

	var res builtin.SpawnResult
	res.Wall = wall
	if cmd.ProcessState != nil {
		res.User = cmd.ProcessState.UserTime()
		res.System = cmd.ProcessState.SystemTime()
	}
	return res, err
}

// buildCmd constructs the exec.Cmd for argv. On the DOS family the
// command tail is serialized into a single quoted command line
// (whitespace-containing arguments are double-quoted, matching the
// reference implementation's known gap of not escaping embedded
// quotes); on POSIX the argv vector is passed directly.
func (sh *Shell) buildCmd(path string, argv []*atom.Atom, windows bool) *exec.Cmd {
	var cmd *exec.Cmd
	if windows {
		cmd = exec.Command(path)
		cmd.SysProcAttr = windowsCmdLine(quoteArgs(argv))
	} else {
		args := make([]string, len(argv)-1)
		for i, a := range argv[1:] {
			args[i] = a.Text
		}
		cmd = exec.Command(path, args...)
	}
	cmd.Env = sh.env.Envp()
	return cmd
}

func quoteArgs(argv []*atom.Atom) string {
	parts := make([]string, len(argv))
	for i, a := range argv {
		if i == 0 || strings.ContainsAny(a.Text, " \t") {
			parts[i] = `"` + a.Text + `"`
		} else {
			parts[i] = a.Text
		}
	}
	return strings.Join(parts, " ")
}

// noopSignals installs a no-op control handler on the DOS family
// while a child runs, matching §5: POSIX relies on the child's own
// signal handling, only the DOS family needs drsh to swallow the
// console control event itself.
func noopSignals() func() {
	if platform.Host() != platform.Windows {
		return func() {}
	}
	return installWindowsCtrlHandler()
}

// Package builtin implements the dispatch table of §4.10: cd, pwd,
// echo, set, exit, source/., time, and debug. Anything else is left
// to the caller to resolve and spawn as an external program.
package builtin

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/drpriver/drsh/internal/atom"
	"github.com/drpriver/drsh/internal/ec"
	"github.com/drpriver/drsh/internal/environ"
)

// Result carries the outcome of a dispatched built-in: whether argv[0]
// named one at all, and whether the shell should exit afterward.
type Result struct {
	Handled bool
	Exit    bool
}

// SpawnResult reports the user/system CPU time an external command
// consumed, as surfaced by os.ProcessState, for the `time` built-in.
type SpawnResult struct {
	Wall, User, System time.Duration
}

// Spawner runs an external command (argv already resolved to a
// concrete path as argv[0]) and waits for it to finish, returning its
// error if any. Built-ins that shell out (time) take this as a
// parameter instead of importing internal/shell, to avoid a cycle.
type Spawner func(argv []*atom.Atom) (SpawnResult, error)

// Source recursively runs each line of a file through run, so that an
// EXIT inside a sourced script propagates out exactly as if typed at
// the prompt. It is supplied by the caller (internal/shell) to avoid
// a dependency cycle on the tokenizer/canonicalizer/dispatcher loop.
type Source func(path string) (exit bool, err error)

// Dispatch checks whether argv[0] names a built-in and if so runs it,
// writing output to out. source is used by `source`/`.`; spawn is
// used by `time`.
func Dispatch(at *atom.Table, env *environ.Environment, argv []*atom.Atom, out io.Writer, source Source, spawn Spawner) (Result, error) {
	if len(argv) == 0 {
		return Result{}, nil
	}
	name := argv[0]
	switch name {
	case at.Special(atom.KindCd):
		return Result{Handled: true}, cd(env, argv)
	case at.Special(atom.KindPwd):
		return Result{Handled: true}, pwd(env, out)
	case at.Special(atom.KindEcho):
		return Result{Handled: true}, echo(argv, out)
	case at.Special(atom.KindSet):
		return Result{Handled: true}, set(at, env, argv, out)
	case at.Special(atom.KindExit):
		return Result{Handled: true, Exit: true}, nil
	case at.Special(atom.KindSource), at.Special(atom.KindDot):
		return dispatchSource(argv, source)
	case at.Special(atom.KindTime):
		return Result{Handled: true}, runTime(argv, out, spawn)
	case at.Special(atom.KindDebug):
		return Result{Handled: true}, debug(at, env, argv, out)
	default:
		return Result{}, nil
	}
}

func cd(env *environ.Environment, argv []*atom.Atom) error {
	if len(argv) != 2 {
		return ec.ValueError
	}
	if err := os.Chdir(argv[1].Text); err != nil {
		return nil // cd failures abort the built-in, not the shell
	}
	return env.RefreshCwd()
}

func pwd(env *environ.Environment, out io.Writer) error {
	v := env.GetString("PWD")
	if v == nil {
		return nil
	}
	fmt.Fprintf(out, "%s\r\n", v.Text)
	return nil
}

func echo(argv []*atom.Atom, out io.Writer) error {
	parts := make([]string, len(argv)-1)
	for i, a := range argv[1:] {
		parts[i] = a.Text
	}
	fmt.Fprintf(out, "%s \r\n", strings.Join(parts, " "))
	return nil
}

func set(at *atom.Table, env *environ.Environment, argv []*atom.Atom, out io.Writer) error {
	switch len(argv) {
	case 1:
		for _, line := range env.List() {
			fmt.Fprintf(out, "%s\r\n", line)
		}
		return nil
	case 3:
		env.Set(at.Atomize([]byte(argv[1].Text)), at.Atomize([]byte(argv[2].Text)))
		return nil
	default:
		return nil
	}
}

func dispatchSource(argv []*atom.Atom, source Source) (Result, error) {
	if len(argv) != 2 {
		return Result{Handled: true}, nil
	}
	exit, err := source(argv[1].Text)
	return Result{Handled: true, Exit: exit}, err
}

func runTime(argv []*atom.Atom, out io.Writer, spawn Spawner) error {
	if len(argv) < 2 {
		return nil
	}
	res, err := spawn(argv[1:])
	if err != nil {
		fmt.Fprintf(out, "error\r\n")
		return nil
	}
	fmt.Fprintf(out, "real\t%s\r\nuser\t%s\r\nsys\t%s\r\n", res.Wall, res.User, res.System)
	return nil
}

func debug(at *atom.Table, env *environ.Environment, argv []*atom.Atom, out io.Writer) error {
	if len(argv) == 1 {
		fmt.Fprintf(out, "debug = %v\r\n", env.Debug)
		return nil
	}
	if len(argv) != 2 {
		return nil
	}
	switch argv[1] {
	case at.Special(atom.KindOn), at.Special(atom.KindTrue), at.Special(atom.KindOne):
		env.Debug = true
	case at.Special(atom.KindOff), at.Special(atom.KindFalse), at.Special(atom.KindZero):
		env.Debug = false
	default:
		return ec.ValueError
	}
	return nil
}

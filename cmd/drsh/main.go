// Command drsh is a small interactive POSIX/DOS shell: line editing,
// tab completion, variable/tilde/glob expansion, and a handful of
// built-ins (cd, pwd, echo, set, exit, source/., time, debug), with
// any other command resolved against PATH/PATHEXT and spawned.
//
// Usage:
//
//	drsh              interactive session
//	drsh PATH...      source each file in order, non-interactively
package main

import (
	"fmt"
	"os"

	"github.com/drpriver/drsh/internal/shell"
)

func main() {
	os.Exit(run())
}

func run() int {
	sh, err := shell.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "drsh: %v\n", err)
		return 1
	}

	if len(os.Args) > 1 {
		return sh.RunFiles(os.Args[1:])
	}
	return sh.Run()
}

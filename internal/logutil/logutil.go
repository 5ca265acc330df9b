// Package logutil provides the diagnostic logger used by the shell
// package (history dump, config and sourced-file errors, dispatch
// errors). It has no levels: every logger shares one sink. It never
// writes to the terminal: output goes to the file named by
// $DRSH_LOG, or is discarded when that variable is unset, so a
// logging statement can never corrupt the line-editor's display.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	once sync.Once
	dest io.Writer = io.Discard
)

func initDest() {
	once.Do(func() {
		path := os.Getenv("DRSH_LOG")
		if path == "" {
			return
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return
		}
		dest = f
	})
}

// GetLogger returns a *log.Logger prefixed with name, writing to
// $DRSH_LOG if set at first call, or discarding output otherwise.
// The destination is resolved once per process and shared by every
// prefix, matching a single log file accumulating lines from every
// subsystem.
func GetLogger(name string) *log.Logger {
	initDest()
	return log.New(dest, "["+name+"] ", log.Ltime|log.Lmicroseconds)
}

// Discard is a Logger that ignores all logging, for callers that want
// a non-nil logger before deciding whether diagnostics are wanted.
var Discard = log.New(io.Discard, "", 0)

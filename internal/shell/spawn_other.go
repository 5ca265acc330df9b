//go:build !windows

package shell

import "syscall"

// windowsCmdLine is never exercised on a non-Windows host (buildCmd
// only calls it when the environment's Flavor is platform.Windows,
// which a non-Windows process never has to spawn through CreateProcess),
// but must still type-check for every GOOS this module builds on.
func windowsCmdLine(line string) *syscall.SysProcAttr {
	return nil
}

func installWindowsCtrlHandler() func() {
	return func() {}
}

//go:build windows

package tty

import "golang.org/x/sys/windows"

// enableRawExtras applies the DOS-family-specific console mode bits
// the spec calls out beyond what term.MakeRaw already does: disabling
// line input (already implied by MakeRaw, reasserted here for
// clarity) and enabling VT escape-sequence processing on both input
// and output handles, so the redisplay routine's ANSI sequences are
// interpreted by the console instead of leaking through as text.
func enableRawExtras(fd int) error {
	h := windows.Handle(fd)
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return err
	}
	mode &^= windows.ENABLE_LINE_INPUT | windows.ENABLE_ECHO_INPUT | windows.ENABLE_PROCESSED_INPUT
	mode |= windows.ENABLE_VIRTUAL_TERMINAL_INPUT
	if err := windows.SetConsoleMode(h, mode); err != nil {
		return err
	}

	outHandle := windows.Handle(windows.Stdout)
	var outMode uint32
	if err := windows.GetConsoleMode(outHandle, &outMode); err != nil {
		return err
	}
	outMode |= windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING
	return windows.SetConsoleMode(outHandle, outMode)
}

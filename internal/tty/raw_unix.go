//go:build !windows

package tty

import "golang.org/x/sys/unix"

// enableRawExtras applies the POSIX-specific termios bits the spec
// calls out beyond what term.MakeRaw already does: VMIN=1, VTIME=0,
// and enforcing ICRNL translation on input (term.MakeRaw clears
// ICRNL; the reference implementation explicitly re-enables it,
// assuming the user hasn't set INLCR/-ONLCR, so CR from Enter still
// maps to NL for the line editor).
func enableRawExtras(fd int) error {
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return err
	}
	termios.Cc[unix.VMIN] = 1
	termios.Cc[unix.VTIME] = 0
	termios.Iflag |= unix.ICRNL
	return unix.IoctlSetTermios(fd, ioctlSetTermios, termios)
}

// Package resolve implements the program-path resolver of §4.9: given
// a program atom and the running environment, it finds the concrete
// executable path a built-in dispatcher or external-program spawner
// should exec, honoring PATH, and on the DOS family PATHEXT and a
// final current-directory probe.
package resolve

import (
	"os"
	"strings"

	"github.com/drpriver/drsh/internal/atom"
	"github.com/drpriver/drsh/internal/environ"
)

const defaultPathExt = ".exe"

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func pathSeparator(windows bool) byte {
	if windows {
		return ';'
	}
	return ':'
}

func hasDir(program string, windows bool) bool {
	if isAbs(program, windows) {
		return true
	}
	if strings.IndexByte(program, '/') >= 0 {
		return true
	}
	if windows && strings.IndexByte(program, '\\') >= 0 {
		return true
	}
	return false
}

func isAbs(p string, windows bool) bool {
	if strings.HasPrefix(p, "/") {
		return true
	}
	if windows {
		if strings.HasPrefix(p, "\\") {
			return true
		}
		if len(p) >= 3 && isDriveLetter(p[0]) && p[1] == ':' && (p[2] == '/' || p[2] == '\\') {
			return true
		}
	}
	return false
}

func isDriveLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func pathExts(env *environ.Environment) []string {
	v := env.GetString("PATHEXT")
	if v == nil || v.Len() == 0 {
		return []string{defaultPathExt}
	}
	return strings.Split(v.Text, ";")
}

func hasKnownExt(path string, exts []string) bool {
	lower := strings.ToLower(path)
	for _, e := range exts {
		if e == "" {
			continue
		}
		if strings.HasSuffix(lower, strings.ToLower(e)) {
			return true
		}
	}
	return false
}

// joinDir appends program to directory, adding a separator only when
// directory doesn't already end with one (on Windows either '/' or
// '\' counts).
func joinDir(directory, program string, windows bool) string {
	if directory == "" {
		return program
	}
	last := directory[len(directory)-1]
	if last == '/' || (windows && last == '\\') {
		return directory + program
	}
	return directory + "/" + program
}

// probeWindows tries path as-is if it already carries a known
// extension, otherwise tries path+ext for each PATHEXT entry in
// order, returning the first that exists.
func probeWindows(path string, exts []string) (string, bool) {
	if hasKnownExt(path, exts) {
		if exists(path) {
			return path, true
		}
		return "", false
	}
	for _, ext := range exts {
		candidate := path + ext
		if exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Program finds the executable path for program atom, per §4.9.
// windows selects DOS-family semantics (';'-separated PATH, '\' also
// counts as a path separator, PATHEXT probing); returns ok=false if
// no candidate exists.
func Program(env *environ.Environment, program *atom.Atom, windows bool) (path string, ok bool) {
	p := program.Text
	exts := pathExts(env)

	if hasDir(p, windows) {
		if windows {
			return probeWindows(p, exts)
		}
		if exists(p) {
			return p, true
		}
		return "", false
	}

	pathVar := env.GetString("PATH")
	if pathVar != nil {
		sep := string(pathSeparator(windows))
		for _, dir := range strings.Split(pathVar.Text, sep) {
			if dir == "" {
				continue
			}
			candidate := joinDir(dir, p, windows)
			if windows {
				if found, ok := probeWindows(candidate, exts); ok {
					return found, true
				}
				continue
			}
			if exists(candidate) {
				return candidate, true
			}
		}
	}

	if windows {
		if pwd := env.GetString("PWD"); pwd != nil {
			candidate := joinDir(pwd.Text, p, windows)
			if found, ok := probeWindows(candidate, exts); ok {
				return found, true
			}
		}
	}

	return "", false
}

// Package complete implements tab completion, per §4.7: locating the
// completable token under the cursor, listing candidates from the
// filesystem, ranking them, and cycling through the ranked list on
// repeated TAB/SHIFT_TAB.
package complete

import (
	"os"
	"sort"
	"strings"

	"github.com/drpriver/drsh/internal/atom"
)

// Token describes the portion of the write buffer TAB completes,
// split at the last unescaped path separator before the cursor.
type Token struct {
	Start   int // byte offset of the token in the write buffer
	End     int // byte offset of the cursor (end of the token)
	Dirname string
	Basename string
}

// ParseToken walks line backward from cursor to find the boundary of
// the current token: the nearest unescaped space, or the start of the
// line. If the token contains a path separator, it is split into
// dirname (through the trailing separator) and basename; otherwise
// the whole token is the basename. backslashIsSep additionally treats
// '\' as a separator, matching the DOS family.
func ParseToken(line string, cursor int, backslashIsSep bool) Token {
	begin := 0
	end := cursor
	if end > len(line) {
		end = len(line)
	}
	p := end
	slash := -1
	for p > begin {
		p--
		c := line[p]
		if c == ' ' {
			if p != begin && line[p-1] == '\\' {
				continue
			}
			p++
			break
		}
		if slash < 0 {
			if c == '/' {
				slash = p
				continue
			}
			if backslashIsSep && c == '\\' {
				if p != begin && line[p-1] == '\\' {
					continue
				}
				slash = p
				continue
			}
		}
	}
	tok := line[p:end]
	if slash >= 0 {
		return Token{
			Start:    p,
			End:      end,
			Dirname:  line[p : slash+1],
			Basename: line[slash+1 : end],
		}
	}
	return Token{Start: p, End: end, Dirname: "", Basename: tok}
}

// Candidate is one ranked completion option.
type Candidate struct {
	Atom         *atom.Atom
	Distance     int
	IDistance    int
	PrefixMatch  bool
	IPrefixMatch bool
}

func isAbsDir(dirname string, windows bool) bool {
	if strings.HasPrefix(dirname, "/") {
		return true
	}
	return windows && len(dirname) >= 3 && dirname[1] == ':'
}

// resolveDir turns a parsed dirname plus the shell's PWD into the
// filesystem path to list, defaulting to "." when both are empty.
func resolveDir(pwd, dirname string, windows bool) string {
	switch {
	case dirname != "" && isAbsDir(dirname, windows):
		return dirname
	case dirname != "":
		if pwd != "" {
			return pwd + "/" + dirname
		}
		return dirname
	case pwd != "":
		return pwd
	default:
		return "."
	}
}

// List builds the unranked candidate set: every directory entry
// (excluding "." and "..", directories suffixed with "/"), plus the
// literal basename itself as the zeroth entry so the user can always
// cycle back to what they typed.
func List(at *atom.Table, pwd, dirname, basename string, dirsOnly, windows bool) []Candidate {
	dir := resolveDir(pwd, dirname, windows)
	entries, err := os.ReadDir(dir)
	cands := []Candidate{{Atom: at.AtomizeString(basename)}}
	if err != nil {
		return cands
	}
	for _, de := range entries {
		name := de.Name()
		if name == "." || name == ".." {
			continue
		}
		isDir := de.IsDir()
		if de.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(dir + "/" + name); err == nil {
				isDir = info.IsDir()
			}
		}
		if isDir {
			cands = append(cands, Candidate{Atom: at.AtomizeString(name + "/")})
			continue
		}
		if dirsOnly {
			continue
		}
		cands = append(cands, Candidate{Atom: at.AtomizeString(name)})
	}
	return cands
}

// Distance returns the number of byte insertions needed to turn
// needle into haystack, or -1 if needle is not an in-order subsequence
// of haystack. icase compares after folding ASCII case via `| 0x20`.
func Distance(haystack, needle string, icase bool) int {
	eq := func(a, b byte) bool {
		if icase {
			return a|0x20 == b|0x20
		}
		return a == b
	}
	diff := 0
	for {
		if len(needle) > len(haystack) {
			return -1
		}
		if len(needle) == 0 {
			return diff + len(haystack)
		}
		for {
			if len(needle) == 0 {
				return diff + len(haystack)
			}
			if len(haystack) == 0 {
				return -1
			}
			if eq(haystack[0], needle[0]) {
				haystack = haystack[1:]
				needle = needle[1:]
				continue
			}
			break
		}
		for {
			if len(haystack) == 0 {
				return -1
			}
			if eq(haystack[0], needle[0]) {
				break
			}
			diff++
			haystack = haystack[1:]
		}
	}
}

func isDotfile(name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// Rank fills in Distance/IDistance/PrefixMatch/IPrefixMatch for each
// candidate against basename, drops candidates with IDistance == -1
// (no such expansion exists), and sorts the rest per §4.7 step 6.
func Rank(cands []Candidate, basename string) []Candidate {
	out := cands[:0:0]
	for _, c := range cands {
		name := c.Atom.Text
		c.PrefixMatch = commonPrefixLen(name, basename, false) == len(basename)
		c.IPrefixMatch = commonPrefixLen(name, basename, true) == len(basename)
		if basename != "" {
			c.Distance = Distance(name, basename, false)
			c.IDistance = Distance(name, basename, true)
		}
		if c.IDistance < 0 {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.PrefixMatch != b.PrefixMatch {
			return a.PrefixMatch
		}
		if a.IPrefixMatch != b.IPrefixMatch {
			return a.IPrefixMatch
		}
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if a.IDistance != b.IDistance {
			return a.IDistance < b.IDistance
		}
		aDot, bDot := isDotfile(a.Atom.Text), isDotfile(b.Atom.Text)
		if aDot != bDot {
			return !aDot
		}
		return a.Atom.Text < b.Atom.Text
	})
	return out
}

func commonPrefixLen(s, prefix string, icase bool) int {
	n := 0
	for n < len(s) && n < len(prefix) {
		a, b := s[n], prefix[n]
		if icase {
			a, b = a|0x20, b|0x20
		}
		if a != b {
			break
		}
		n++
	}
	return n
}

// State tracks the active completion cycle: the ranked candidates and
// which one is currently spliced into the write buffer.
type State struct {
	Token   Token
	Ranked  []Candidate
	Cursor  int
	Active  bool
}

// Begin ranks candidates for tok and returns an active cycle whose
// cursor sits on the zeroth ranked candidate; nothing is spliced into
// the write buffer until the first Advance.
func Begin(at *atom.Table, pwd string, tok Token, dirsOnly, windows bool) *State {
	cands := List(at, pwd, tok.Dirname, tok.Basename, dirsOnly, windows)
	ranked := Rank(cands, tok.Basename)
	return &State{Token: tok, Ranked: ranked, Active: true}
}

// Advance moves the cycle forward (step > 0) or backward (step < 0)
// by one, wrapping modulo the candidate count, and returns the
// dirname-qualified text to splice into the write buffer in place of
// the token.
func (s *State) Advance(step int) string {
	if len(s.Ranked) == 0 {
		return s.Token.Dirname + s.Token.Basename
	}
	n := len(s.Ranked)
	s.Cursor = ((s.Cursor+step)%n + n) % n
	return s.Token.Dirname + s.Ranked[s.Cursor].Atom.Text
}

// Reset returns the zeroth candidate's text (what the user originally
// typed) and deactivates the cycle, for ESC-while-active.
func (s *State) Reset() string {
	s.Active = false
	if len(s.Ranked) == 0 {
		return s.Token.Dirname + s.Token.Basename
	}
	return s.Token.Dirname + s.Token.Basename
}

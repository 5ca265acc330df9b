package wordsplit

import "path/filepath"

// expandBraces expands shell-style {a,b,c} alternation, recursively
// handling nested braces, and returns pattern unchanged (as the sole
// element) if it contains no top-level brace group. Unmatched braces
// are treated as literal text, not an error.
func expandBraces(pattern string) []string {
	start := -1
	depth := 0
	var commas []int
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '{':
			if depth == 0 {
				start = i
				commas = commas[:0]
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return expandBraceGroup(pattern, start, i, commas)
				}
			}
		case ',':
			if depth == 1 {
				commas = append(commas, i)
			}
		}
	}
	return []string{pattern}
}

func expandBraceGroup(pattern string, open, close int, commas []int) []string {
	if len(commas) == 0 {
		// "{...}" with no top-level comma is not an alternation; treat
		// the braces as literal and continue scanning after them.
		rest := expandBraces(pattern[close+1:])
		out := make([]string, len(rest))
		for i, r := range rest {
			out[i] = pattern[:close+1] + r
		}
		return out
	}
	prefix := pattern[:open]
	suffix := pattern[close+1:]
	bounds := append(append([]int{open + 1}, commas...), close)
	var alts []string
	for i := 0; i < len(bounds)-1; i++ {
		lo := bounds[i]
		if i > 0 {
			lo++ // skip the comma itself
		}
		hi := bounds[i+1]
		alts = append(alts, pattern[lo:hi])
	}
	var out []string
	for _, alt := range alts {
		for _, rest := range expandBraces(suffix) {
			out = append(out, prefix+alt+rest)
		}
	}
	// Recurse into each alternative in case it itself contains braces
	// (e.g. "{a,b{c,d}}").
	var final []string
	for _, o := range out {
		final = append(final, expandBraces(o)...)
	}
	return final
}

// ExpandGlob performs brace expansion on pattern, then matches each
// brace alternative against the filesystem with path/filepath's glob
// syntax (`*`, `?`, `[...]`). An alternative with no wildcard
// metacharacters, or one that matches nothing, passes through
// unchanged ("no-check" semantics: globbing never errors a command
// out for lack of a match).
func ExpandGlob(pattern string) []string {
	var out []string
	for _, alt := range expandBraces(pattern) {
		if !hasMeta(alt) {
			out = append(out, alt)
			continue
		}
		matches, err := filepath.Glob(alt)
		if err != nil || len(matches) == 0 {
			out = append(out, alt)
			continue
		}
		out = append(out, matches...)
	}
	return out
}

func hasMeta(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[':
			return true
		}
	}
	return false
}

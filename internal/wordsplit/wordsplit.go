package wordsplit

import (
	"github.com/drpriver/drsh/internal/atom"
	"github.com/drpriver/drsh/internal/environ"
	"github.com/drpriver/drsh/internal/platform"
)

// Argv turns an accepted line into the argv that the resolver and
// built-in dispatcher act on: tokenize, canonicalize each token
// against env, and on the POSIX family run each canonicalized token
// through brace and filesystem glob expansion.
func Argv(at *atom.Table, env *environ.Environment, line string) []*atom.Atom {
	backslashIsSep := env.Flavor == platform.Windows
	toks := Tokenize(line)
	argv := make([]*atom.Atom, 0, len(toks))
	for _, tok := range toks {
		a := Canonicalize(at, env, tok, backslashIsSep)
		if env.Flavor == platform.Windows {
			argv = append(argv, a)
			continue
		}
		expanded := ExpandGlob(a.Text)
		for _, s := range expanded {
			argv = append(argv, at.AtomizeString(s))
		}
	}
	return argv
}

package wordsplit

import (
	"testing"

	"github.com/drpriver/drsh/internal/atom"
	"github.com/drpriver/drsh/internal/environ"
	"github.com/drpriver/drsh/internal/platform"
)

func textOf(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}

func TestTokenizeWhitespaceSplitting(t *testing.T) {
	got := textOf(Tokenize("echo   hi\tthere"))
	want := []string{"echo", "hi", "there"}
	if !equalStrings(got, want) {
		t.Fatalf("Tokenize() = %#v, want %#v", got, want)
	}
}

func TestTokenizeQuotesKeepWhitespace(t *testing.T) {
	got := textOf(Tokenize(`echo "hi there" 'and  you'`))
	want := []string{"echo", `"hi there"`, `'and  you'`}
	if !equalStrings(got, want) {
		t.Fatalf("Tokenize() = %#v, want %#v", got, want)
	}
}

func TestTokenizeBackslashEscapesSpace(t *testing.T) {
	got := textOf(Tokenize(`a\ b c`))
	want := []string{`a\ b`, "c"}
	if !equalStrings(got, want) {
		t.Fatalf("Tokenize() = %#v, want %#v", got, want)
	}
}

func TestTokenizeBackslashInsideQuoteEscapesSameQuote(t *testing.T) {
	got := textOf(Tokenize(`"a\"b" c`))
	want := []string{`"a\"b"`, "c"}
	if !equalStrings(got, want) {
		t.Fatalf("Tokenize() = %#v, want %#v", got, want)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newEnv() (*atom.Table, *environ.Environment) {
	at := atom.NewTable()
	env := environ.New(at, platform.Linux)
	env.SetString("HOME", "/home/alice")
	env.SetString("FOO", "bar")
	return at, env
}

func TestCanonicalizeStripsQuotes(t *testing.T) {
	at, env := newEnv()
	a := Canonicalize(at, env, Token{Text: `"hi there"`}, false)
	if a.Text != "hi there" {
		t.Fatalf("Canonicalize() = %q, want %q", a.Text, "hi there")
	}
}

func TestCanonicalizeExpandsTilde(t *testing.T) {
	at, env := newEnv()
	a := Canonicalize(at, env, Token{Text: "~/bin"}, false)
	if a.Text != "/home/alice/bin" {
		t.Fatalf("Canonicalize() = %q, want %q", a.Text, "/home/alice/bin")
	}
}

func TestCanonicalizeBareTildeDoesNotExpand(t *testing.T) {
	at, env := newEnv()
	a := Canonicalize(at, env, Token{Text: "~foo"}, false)
	if a.Text != "~foo" {
		t.Fatalf("Canonicalize() = %q, want %q (no separator after ~)", a.Text, "~foo")
	}
}

func TestCanonicalizeExpandsDollarVar(t *testing.T) {
	at, env := newEnv()
	a := Canonicalize(at, env, Token{Text: "pre$FOO.post"}, false)
	if a.Text != "prebar.post" {
		t.Fatalf("Canonicalize() = %q, want %q", a.Text, "prebar.post")
	}
}

func TestCanonicalizeUnsetVarExpandsEmpty(t *testing.T) {
	at, env := newEnv()
	a := Canonicalize(at, env, Token{Text: "$NOPE-x"}, false)
	if a.Text != "-x" {
		t.Fatalf("Canonicalize() = %q, want %q", a.Text, "-x")
	}
}

func TestCanonicalizeSingleQuoteSuppressesDollar(t *testing.T) {
	// Inside single quotes '$NAME' is not expanded; only the quote
	// delimiters themselves are stripped.
	at, env := newEnv()
	a := Canonicalize(at, env, Token{Text: `'$FOO'`}, false)
	if a.Text != "$FOO" {
		t.Fatalf("Canonicalize() = %q, want %q", a.Text, "$FOO")
	}
}

func TestCanonicalizeDoubleQuoteStillExpands(t *testing.T) {
	at, env := newEnv()
	a := Canonicalize(at, env, Token{Text: `"$FOO"`}, false)
	if a.Text != "bar" {
		t.Fatalf("Canonicalize() = %q, want %q", a.Text, "bar")
	}
}

func TestCanonicalizeBackslashDollarIsLiteral(t *testing.T) {
	at, env := newEnv()
	a := Canonicalize(at, env, Token{Text: `\$FOO`}, false)
	if a.Text != `$FOO` {
		t.Fatalf("Canonicalize() = %q, want %q (escaped $ survives un-expanded, backslash consumed)", a.Text, `$FOO`)
	}
}

func TestCanonicalizeBackslashOtherCharKeepsBackslash(t *testing.T) {
	at, env := newEnv()
	a := Canonicalize(at, env, Token{Text: `a\nb`}, false)
	if a.Text != `a\nb` {
		t.Fatalf("Canonicalize() = %q, want %q (backslash preserved before an ordinary byte)", a.Text, `a\nb`)
	}
}

func TestExpandBracesSimple(t *testing.T) {
	got := expandBraces("a{b,c,d}e")
	want := []string{"abe", "ace", "ade"}
	if !equalStrings(got, want) {
		t.Fatalf("expandBraces() = %#v, want %#v", got, want)
	}
}

func TestExpandBracesNested(t *testing.T) {
	got := expandBraces("{a,b{c,d}}")
	want := []string{"a", "bc", "bd"}
	if !equalStrings(got, want) {
		t.Fatalf("expandBraces() = %#v, want %#v", got, want)
	}
}

func TestExpandBracesNoGroupPassesThrough(t *testing.T) {
	got := expandBraces("plain")
	want := []string{"plain"}
	if !equalStrings(got, want) {
		t.Fatalf("expandBraces() = %#v, want %#v", got, want)
	}
}

func TestExpandGlobNoCheckOnNoMatch(t *testing.T) {
	got := ExpandGlob("/no/such/dir/*.nonexistent-ext-zzz")
	want := []string{"/no/such/dir/*.nonexistent-ext-zzz"}
	if !equalStrings(got, want) {
		t.Fatalf("ExpandGlob() = %#v, want unchanged pattern on no match", got)
	}
}

func TestArgvPosixExpandsAndSplits(t *testing.T) {
	at, env := newEnv()
	argv := Argv(at, env, `echo "$FOO" bar`)
	if len(argv) != 3 || argv[0].Text != "echo" || argv[1].Text != "bar" || argv[2].Text != "bar" {
		t.Fatalf("Argv() = %v", argv)
	}
}

func TestArgvWindowsSkipsGlob(t *testing.T) {
	at := atom.NewTable()
	env := environ.New(at, platform.Windows)
	argv := Argv(at, env, `dir *.txt`)
	if len(argv) != 2 || argv[1].Text != "*.txt" {
		t.Fatalf("Argv() on windows should not glob-expand: %v", argv)
	}
}

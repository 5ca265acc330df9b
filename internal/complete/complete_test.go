package complete

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/drpriver/drsh/internal/atom"
)

func TestParseTokenNoSeparator(t *testing.T) {
	tok := ParseToken("echo hel", 8, false)
	if tok.Dirname != "" || tok.Basename != "hel" {
		t.Fatalf("ParseToken() = %+v", tok)
	}
}

func TestParseTokenWithDirname(t *testing.T) {
	tok := ParseToken("cd /tmp/su", 10, false)
	if tok.Dirname != "/tmp/" || tok.Basename != "su" {
		t.Fatalf("ParseToken() = %+v", tok)
	}
}

func TestParseTokenEscapedSpaceNotABoundary(t *testing.T) {
	tok := ParseToken(`echo foo\ b`, 11, false)
	if tok.Basename != `foo\ b` {
		t.Fatalf("ParseToken() = %+v", tok)
	}
}

func TestParseTokenBackslashSepOnWindows(t *testing.T) {
	tok := ParseToken(`cd C:\Users\pub`, 15, true)
	if tok.Dirname != `C:\Users\` || tok.Basename != "pub" {
		t.Fatalf("ParseToken() = %+v", tok)
	}
}

func TestDistanceExactMatch(t *testing.T) {
	if d := Distance("abc", "abc", false); d != 0 {
		t.Fatalf("Distance() = %d, want 0", d)
	}
}

func TestDistanceInsertionsNeeded(t *testing.T) {
	// "abc" -> "axbxc" needs 2 insertions.
	if d := Distance("axbxc", "abc", false); d != 2 {
		t.Fatalf("Distance() = %d, want 2", d)
	}
}

func TestDistanceNotSubsequence(t *testing.T) {
	if d := Distance("abc", "ba", false); d != -1 {
		t.Fatalf("Distance() = %d, want -1", d)
	}
}

func TestDistanceNeedleLongerThanHaystack(t *testing.T) {
	if d := Distance("ab", "abc", false); d != -1 {
		t.Fatalf("Distance() = %d, want -1", d)
	}
}

func TestDistanceCaseInsensitive(t *testing.T) {
	if d := Distance("ABC", "abc", true); d != 0 {
		t.Fatalf("Distance() = %d, want 0", d)
	}
	if d := Distance("ABC", "abc", false); d != -1 {
		t.Fatalf("Distance() = %d, want -1 (case-sensitively, abc is not a subsequence of ABC)", d)
	}
}

func TestListAndRankPrefersPrefixMatchAndZerothCandidate(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"apple.txt", "application", "banana.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	at := atom.NewTable()
	cands := List(at, "", dir, "app", false, false)
	ranked := Rank(cands, "app")

	if ranked[0].Atom.Text != "app" {
		t.Fatalf("expected literal basename preserved among candidates, first=%q", ranked[0].Atom.Text)
	}
	foundPrefixed := false
	for _, c := range ranked {
		if c.Atom.Text == "application" {
			foundPrefixed = true
			if !c.PrefixMatch {
				t.Fatalf("application PrefixMatch = %v, want true", c.PrefixMatch)
			}
		}
	}
	if !foundPrefixed {
		t.Fatalf("expected application among ranked candidates: %+v", ranked)
	}
}

func TestStateAdvanceWrapsModuloCandidateCount(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a"), nil, 0644)
	at := atom.NewTable()
	tok := Token{Dirname: "", Basename: ""}
	s := Begin(at, dir, tok, false, false)
	n := len(s.Ranked)
	if n == 0 {
		t.Fatal("expected at least one candidate")
	}
	for i := 0; i < n; i++ {
		s.Advance(1)
	}
	if s.Cursor != 0 {
		t.Fatalf("Cursor after n advances = %d, want 0 (wrapped)", s.Cursor)
	}
}

package shell

import "testing"

func TestSplitLinesHandlesCRLFAndTrailingPartialLine(t *testing.T) {
	got := splitLines("echo a\r\necho b\nincomplete")
	want := []string{"echo a", "echo b", "incomplete"}
	if len(got) != len(want) {
		t.Fatalf("splitLines() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("splitLines()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitLinesEmptyInputYieldsNoLines(t *testing.T) {
	got := splitLines("")
	if len(got) != 0 {
		t.Fatalf("splitLines(\"\") = %v, want empty", got)
	}
}

func TestIsCdInvocation(t *testing.T) {
	cases := map[string]bool{
		"cd /tmp": true,
		"cd":      false,
		"echo cd": false,
		"cdx y":   false,
	}
	for line, want := range cases {
		if got := isCdInvocation(line); got != want {
			t.Fatalf("isCdInvocation(%q) = %v, want %v", line, got, want)
		}
	}
}

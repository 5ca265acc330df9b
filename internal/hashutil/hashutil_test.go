package hashutil

import "testing"

func TestStringIsDeterministic(t *testing.T) {
	a := String([]byte("cd"))
	b := String([]byte("cd"))
	if a != b {
		t.Fatalf("String() not deterministic: %d != %d", a, b)
	}
}

func TestStringNeverReturnsZero(t *testing.T) {
	// No input is known a priori to hash to zero, but the remap must
	// fire if one ever does; exercise a handful of short inputs and
	// assert the invariant holds for all of them.
	for _, s := range []string{"", "a", "ab", "abc", "PATH", "HOME"} {
		if h := String([]byte(s)); h == 0 {
			t.Fatalf("String(%q) = 0, want the zero-sentinel remap to have fired", s)
		}
	}
}

func TestStringDistinguishesDifferentInputs(t *testing.T) {
	if String([]byte("cd")) == String([]byte("pwd")) {
		t.Fatalf("String() collided for distinct short inputs")
	}
}

func TestFastReduce32StaysInRange(t *testing.T) {
	for _, n := range []uint32{1, 2, 7, 1024} {
		for _, x := range []uint32{0, 1, 0xFFFFFFFF, 0x80000000} {
			if got := FastReduce32(x, n); got >= n {
				t.Fatalf("FastReduce32(%d, %d) = %d, want < %d", x, n, got, n)
			}
		}
	}
}

func TestFastReduce32ZeroWidthIsZero(t *testing.T) {
	if got := FastReduce32(12345, 0); got != 0 {
		t.Fatalf("FastReduce32(x, 0) = %d, want 0", got)
	}
}

package ec

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeIsItsOwnErrorString(t *testing.T) {
	if ValueError.Error() != "value error" {
		t.Fatalf("ValueError.Error() = %q, want %q", ValueError.Error(), "value error")
	}
}

func TestWrappedCodeStillMatchesErrorsIs(t *testing.T) {
	err := fmt.Errorf("resolve %q: %w", "frob", NotFound)
	if !errors.Is(err, NotFound) {
		t.Fatalf("errors.Is(%v, NotFound) = false, want true", err)
	}
	if errors.Is(err, ValueError) {
		t.Fatalf("errors.Is(%v, ValueError) = true, want false", err)
	}
}

func TestCodesAreDistinct(t *testing.T) {
	codes := []Code{OOM, IOError, AssertionError, UnimplementedError, ValueError, EOF, NotFound, Exit}
	seen := make(map[Code]bool, len(codes))
	for _, c := range codes {
		if seen[c] {
			t.Fatalf("duplicate Code value %q", c)
		}
		seen[c] = true
	}
}

package atom

import "testing"

func TestAtomizeIdentity(t *testing.T) {
	tab := NewTable()
	a := tab.AtomizeString("hello")
	b := tab.AtomizeString("hello")
	if a != b {
		t.Fatalf("Atomize(%q) returned distinct atoms", "hello")
	}
	c := tab.AtomizeString("world")
	if a == c {
		t.Fatalf("Atomize returned the same atom for distinct strings")
	}
}

func TestIFoldIdentity(t *testing.T) {
	tab := NewTable()
	lower := tab.AtomizeString("path")
	upper := tab.AtomizeString("PATH")
	mixed := tab.AtomizeString("Path")
	if lower.IFold != upper.IFold || lower.IFold != mixed.IFold {
		t.Fatalf("case-insensitive siblings do not share IFold")
	}
	if lower.IFold != lower {
		t.Fatalf("lowercase atom should be its own IFold")
	}
	other := tab.AtomizeString("other")
	if other.IFold == lower.IFold {
		t.Fatalf("unrelated atoms share an IFold")
	}
}

func TestWellKnownAtoms(t *testing.T) {
	tab := NewTable()
	cd := tab.Special(KindCd)
	if cd.Text != "cd" {
		t.Fatalf("KindCd = %q, want cd", cd.Text)
	}
	if tab.AtomizeString("cd") != cd {
		t.Fatalf("re-atomizing a well-known string should return the same atom")
	}
}

func TestGrowthPreservesIdentity(t *testing.T) {
	tab := NewTable()
	first := tab.AtomizeString("a0")
	for i := 0; i < 2000; i++ {
		tab.Atomize([]byte{byte('a' + i%26), byte('0' + i%10)})
	}
	again := tab.AtomizeString("a0")
	if first != again {
		t.Fatalf("atom identity not preserved across table growth")
	}
}

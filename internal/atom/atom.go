// Package atom implements interned byte strings with case-folded
// sibling atoms, as specified for the drsh environment and tokenizer:
// two atoms produced by the same Table compare equal iff they are the
// same pointer, and compare case-insensitively equal iff their IFold
// fields are the same pointer.
package atom

import (
	"github.com/drpriver/drsh/internal/hashutil"
)

// Atom is an immutable interned byte string.
type Atom struct {
	Text  string
	hash  uint32
	// IFold points at the atom of this atom's ASCII-lowercased form.
	// It points to itself when the atom is already all-lowercase.
	IFold *Atom
}

func (a *Atom) Len() int { return len(a.Text) }

// Kind enumerates the well-known atoms the table pre-interns at
// construction, mirroring the reference implementation's
// DrshAtomTable.special array.
type Kind int

const (
	KindCd Kind = iota
	KindPwd
	KindEcho
	KindSet
	KindExit
	KindSource
	KindTime
	KindDebug
	KindOn
	KindOff
	KindTrue
	KindFalse
	KindZero
	KindOne
	KindDot
	KindPWD
	KindHOME
	KindPATH
	KindPATHEXT
	KindCOLUMNS
	KindLINES
	KindTERM
	KindUSER
	KindSHELL
	KindSHLVL
	KindDRSH_HISTORY
	KindDRSH_CONFIG
	numKinds
)

var kindText = [numKinds]string{
	KindCd:           "cd",
	KindPwd:          "pwd",
	KindEcho:         "echo",
	KindSet:          "set",
	KindExit:         "exit",
	KindSource:       "source",
	KindTime:         "time",
	KindDebug:        "debug",
	KindOn:           "on",
	KindOff:          "off",
	KindTrue:         "true",
	KindFalse:        "false",
	KindZero:         "0",
	KindOne:          "1",
	KindDot:          ".",
	KindPWD:          "PWD",
	KindHOME:         "HOME",
	KindPATH:         "PATH",
	KindPATHEXT:      "PATHEXT",
	KindCOLUMNS:      "COLUMNS",
	KindLINES:        "LINES",
	KindTERM:         "TERM",
	KindUSER:         "USER",
	KindSHELL:        "SHELL",
	KindSHLVL:        "SHLVL",
	KindDRSH_HISTORY: "DRSH_HISTORY",
	KindDRSH_CONFIG:  "DRSH_CONFIG",
}

const maxLoadNumerator, maxLoadDenominator = 8, 10 // load factor <= 0.8

// Table is an open-addressed hash table mapping (hash, bytes) to a
// unique Atom, plus the well-known atoms indexed by Kind.
type Table struct {
	atoms   []*Atom  // dense atom storage, len == count
	index   []uint32 // len == 2*cap, 0 means empty, else atoms[v-1]
	cap     int
	special [numKinds]*Atom
}

// NewTable builds a table and pre-interns every well-known atom.
func NewTable() *Table {
	t := &Table{}
	for k := Kind(0); k < numKinds; k++ {
		a := t.Atomize([]byte(kindText[k]))
		t.special[k] = a
	}
	return t
}

// Special returns the pre-interned atom for a well-known Kind.
func (t *Table) Special(k Kind) *Atom { return t.special[k] }

func (t *Table) grow() {
	oldCap := t.cap
	newCap := oldCap * 2
	if newCap == 0 {
		newCap = 4
	}
	newIndex := make([]uint32, 2*newCap)
	for i, a := range t.atoms {
		idx := hashutil.FastReduce32(a.hash, uint32(newCap))
		for newIndex[idx] != 0 {
			idx++
			if int(idx) >= 2*newCap {
				idx = 0
			}
		}
		newIndex[idx] = uint32(i) + 1
	}
	t.cap = newCap
	t.index = newIndex
}

// Atomize interns b, returning the unique Atom for its contents. Two
// calls with byte-equal slices return the identical *Atom.
func (t *Table) Atomize(b []byte) *Atom {
	if len(t.atoms)*maxLoadDenominator >= t.cap*maxLoadNumerator {
		t.grow()
	}
	h := hashutil.String(b)
	idx := hashutil.FastReduce32(h, uint32(t.cap))
	for {
		i := t.index[idx]
		if i == 0 {
			break
		}
		a := t.atoms[i-1]
		if a.hash == h && a.Text == string(b) {
			return a
		}
		idx++
		if int(idx) >= 2*t.cap {
			idx = 0
		}
	}

	a := &Atom{Text: string(b), hash: h}
	pos := uint32(len(t.atoms))
	t.atoms = append(t.atoms, a)
	t.index[idx] = pos + 1

	lower := make([]byte, len(b))
	needFold := false
	for i, c := range b {
		lc := c
		if c >= 'A' && c <= 'Z' {
			lc = c | 0x20
		}
		if lc != c {
			needFold = true
		}
		lower[i] = lc
	}
	if needFold {
		a.IFold = t.Atomize(lower)
	} else {
		a.IFold = a
	}
	return a
}

// AtomizeString is a convenience wrapper around Atomize.
func (t *Table) AtomizeString(s string) *Atom {
	return t.Atomize([]byte(s))
}

// Count returns the number of distinct atoms interned so far.
func (t *Table) Count() int { return len(t.atoms) }

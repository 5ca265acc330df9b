// Package environ implements the drsh Environment: a map from
// key-atom to value-atom, a parallel case-aware index, the displayed
// and raw current working directory, the cached HOME atom, terminal
// dimensions, the debug flag and the OS flavor tag.
//
// On the case-insensitive (DOS) family, lookups and updates key on the
// atom's IFold sibling but store the original-case key atom of the
// most recent Set (never the folded one), matching the reference implementation's
// drsh_env_get_env/drsh_env_set_env behavior.
package environ

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/drpriver/drsh/internal/atom"
	"github.com/drpriver/drsh/internal/buffer"
	"github.com/drpriver/drsh/internal/ec"
	"github.com/drpriver/drsh/internal/hashutil"
	"github.com/drpriver/drsh/internal/platform"
)

type entry struct {
	key   *atom.Atom
	value *atom.Atom
}

// Environment is the key/value store of atoms plus the ambient shell
// state (cwd, HOME, window size, debug flag, OS flavor).
type Environment struct {
	At            *atom.Table
	CaseInsensitive bool
	Flavor        platform.Flavor

	entries []entry  // dense storage, parallel to index
	index   []uint32 // open-addressed, len == 2*cap
	cap     int

	home  *atom.Atom
	cwd   *buffer.Buffer // displayed form, '~' substituted, condensed
	tmp   *buffer.Buffer // scratch buffer reused across operations

	Debug bool
	Rows  int
	Cols  int
}

// New builds an Environment from a Table and the OS flavor, but does
// not populate it; call LoadOSEnviron or Set to populate entries.
func New(at *atom.Table, flavor platform.Flavor) *Environment {
	return &Environment{
		At:              at,
		CaseInsensitive: flavor.IsDOSFamily(),
		Flavor:          flavor,
		cwd:             buffer.New(256),
		tmp:             buffer.New(4096),
	}
}

// LoadOSEnviron seeds the Environment from os.Environ(), matching the
// reference implementation's drsh_env_init, which walks the process
// envp block on startup.
func (e *Environment) LoadOSEnviron() {
	for _, kv := range os.Environ() {
		eq := strings.IndexByte(kv, '=')
		if eq < 0 {
			continue
		}
		e.Set(e.At.AtomizeString(kv[:eq]), e.At.AtomizeString(kv[eq+1:]))
	}
	e.home = e.getByName("HOME")
}

func (e *Environment) grow() {
	oldCap := e.cap
	newCap := oldCap * 2
	if newCap == 0 {
		newCap = 4
	}
	newIndex := make([]uint32, 2*newCap)
	for i, en := range e.entries {
		k := en.key
		if e.CaseInsensitive {
			k = k.IFold
		}
		idx := hashutil.FastReduce32(keyHash(k), uint32(newCap))
		for newIndex[idx] != 0 {
			idx++
			if int(idx) >= 2*newCap {
				idx = 0
			}
		}
		newIndex[idx] = uint32(i) + 1
	}
	e.cap = newCap
	e.index = newIndex
}

func keyHash(a *atom.Atom) uint32 {
	return hashutil.String([]byte(a.Text))
}

// lookupSlot finds the index-array slot for key (folded if
// case-insensitive), returning the entries index (1-based, 0 = not
// found) and the slot itself for insertion.
func (e *Environment) lookupSlot(key *atom.Atom) (slot int, entryIdx uint32) {
	if e.cap == 0 {
		return -1, 0
	}
	lookupKey := key
	if e.CaseInsensitive {
		lookupKey = key.IFold
	}
	h := keyHash(lookupKey)
	idx := hashutil.FastReduce32(h, uint32(e.cap))
	for {
		i := e.index[idx]
		if i == 0 {
			return int(idx), 0
		}
		stored := e.entries[i-1].key
		if e.CaseInsensitive {
			if stored.IFold == lookupKey {
				return int(idx), i
			}
		} else if stored == key {
			return int(idx), i
		}
		idx++
		if int(idx) >= 2*e.cap {
			idx = 0
		}
	}
}

// Get returns the value atom bound to key, or nil if unset. On the
// case-insensitive family a table miss falls back to a linear rescan,
// to accommodate out-of-order updates of IFold siblings for rare key
// collisions, exactly as specified.
func (e *Environment) Get(key *atom.Atom) *atom.Atom {
	_, i := e.lookupSlot(key)
	if i != 0 {
		return e.entries[i-1].value
	}
	if e.CaseInsensitive {
		for _, en := range e.entries {
			if en.key.IFold == key.IFold {
				return en.value
			}
		}
	}
	return nil
}

// GetString is a convenience wrapper that atomizes the key text.
func (e *Environment) GetString(key string) *atom.Atom {
	return e.Get(e.At.AtomizeString(key))
}

func (e *Environment) getByName(name string) *atom.Atom {
	return e.GetString(name)
}

// Set binds key to value. On the case-insensitive family, setting a
// key that collides case-insensitively with an existing one overwrites
// that slot and replaces the stored key atom with the new-case one
// (so `set Path x` after `PATH` exists makes the stored key "Path").
func (e *Environment) Set(key, value *atom.Atom) {
	if home := e.At.Special(atom.KindHOME); key == home || (e.CaseInsensitive && key.IFold == home.IFold) {
		e.home = value
	}
	if len(e.entries)*8 >= e.cap*6 {
		e.grow()
	}
	slot, i := e.lookupSlot(key)
	if i != 0 {
		e.entries[i-1] = entry{key, value}
		return
	}
	if slot < 0 {
		e.grow()
		slot, _ = e.lookupSlot(key)
	}
	pos := uint32(len(e.entries))
	e.entries = append(e.entries, entry{key, value})
	e.index[slot] = pos + 1
}

// SetString is a convenience wrapper that atomizes both key and value.
func (e *Environment) SetString(key, value string) {
	e.Set(e.At.AtomizeString(key), e.At.AtomizeString(value))
}

// Delete removes key's binding if present. Used rarely (e.g. never by
// a built-in today, but kept as the symmetric counterpart of Set for
// tests and future built-ins such as `unset`).
func (e *Environment) Delete(key *atom.Atom) {
	_, i := e.lookupSlot(key)
	if i == 0 {
		return
	}
	pos := i - 1
	e.entries = append(e.entries[:pos], e.entries[pos+1:]...)
	// Rebuild the index; deletions are rare enough this need not be fast.
	newIndex := make([]uint32, len(e.index))
	for idx := range newIndex {
		newIndex[idx] = 0
	}
	e.index = newIndex
	entries := e.entries
	e.entries = e.entries[:0]
	e.cap = 0
	e.index = nil
	for _, en := range entries {
		e.Set(en.key, en.value)
	}
}

// sortedEntries returns entries in stable, case-correct bytewise key
// order, as required before serialization.
func (e *Environment) sortedEntries() []entry {
	out := make([]entry, len(e.entries))
	copy(out, e.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].key.Text < out[j].key.Text
	})
	return out
}

// Envp serializes the environment for process spawning. On the POSIX
// family it returns a []string of "KEY=VALUE" pairs suitable for
// exec.Cmd.Env (Go's os/exec appends an implicit NULL terminator when
// calling exec, so no sentinel is needed here); on the DOS family it
// returns the same pairs, since os/exec on Windows also accepts a
// []string and performs the NULL-separated block construction
// internally — there is no Go-level need to hand-roll the
// double-NUL-terminated block the reference implementation built for
// CreateProcess, since syscall.StartProcess already does that marshal.
func (e *Environment) Envp() []string {
	sorted := e.sortedEntries()
	out := make([]string, len(sorted))
	for i, en := range sorted {
		out[i] = en.key.Text + "=" + en.value.Text
	}
	return out
}

// List renders every binding as "KEY=VALUE" lines, for the `set`
// built-in with no arguments.
func (e *Environment) List() []string { return e.Envp() }

// IncrementSHLVL reads SHLVL as an integer (0 if absent), adds one,
// and stores it back as a decimal string.
func (e *Environment) IncrementSHLVL() {
	cur := 0
	if v := e.GetString("SHLVL"); v != nil {
		if n, err := strconv.Atoi(v.Text); err == nil {
			cur = n
		}
	}
	e.SetString("SHLVL", strconv.Itoa(cur+1))
}

// RefreshCwd reads the OS working directory, sets PWD, and recomputes
// the displayed form: '~' substitution for a HOME prefix, backslash
// normalization on the DOS family, and condensing interior path
// components to their first character.
func (e *Environment) RefreshCwd() error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("refresh cwd: %w", ec.IOError)
	}
	e.SetString("PWD", wd)

	raw := []byte(wd)
	if e.Flavor.IsDOSFamily() {
		for i, c := range raw {
			if c == '\\' {
				raw[i] = '/'
			}
		}
	}

	displayed := raw
	if e.home != nil && e.home.Len() > 0 && len(raw) >= e.home.Len() &&
		string(raw[:e.home.Len()]) == e.home.Text {
		boundaryOK := e.home.Len() == len(raw)
		if !boundaryOK {
			c := raw[e.home.Len()]
			boundaryOK = c == '/' || (e.Flavor.IsDOSFamily() && c == '\\')
		}
		if boundaryOK {
			displayed = append([]byte("~"), raw[e.home.Len():]...)
		}
	}
	if e.Flavor.IsDOSFamily() {
		for i, c := range displayed {
			if c == '\\' {
				displayed[i] = '/'
			}
		}
	}

	e.cwd.Clear()
	e.cwd.Append(condense(displayed))
	return nil
}

// condense collapses every interior path component (strictly between
// the first and last '/') to its first byte, leaving the leading and
// final components intact, matching drsh_dir_condense.
func condense(p []byte) []byte {
	first := -1
	for i, c := range p {
		if c == '/' {
			first = i
			break
		}
	}
	last := -1
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			last = i
			break
		}
	}
	if last <= 0 {
		return p
	}
	out := make([]byte, 0, len(p))
	if first > 0 {
		out = append(out, p[:first]...)
	}
	wantWrite := true
	for i := first; i < last; i++ {
		if p[i] == '/' {
			wantWrite = true
			out = append(out, '/')
			continue
		}
		if wantWrite {
			out = append(out, p[i])
			wantWrite = false
		}
	}
	out = append(out, p[last:]...)
	return out
}

// DisplayedCwd returns the cached, condensed, tilde-substituted cwd
// used by the prompt.
func (e *Environment) DisplayedCwd() string { return e.cwd.String() }

// RefreshSize queries the terminal dimensions and stores them in the
// LINES and COLUMNS env vars, as spec'd. The caller supplies the
// already-queried size (from internal/tty) since querying itself is
// an external I/O primitive out of this package's scope.
func (e *Environment) RefreshSize(rows, cols int) {
	e.Rows, e.Cols = rows, cols
	e.SetString("LINES", strconv.Itoa(rows))
	e.SetString("COLUMNS", strconv.Itoa(cols))
}

// Home returns the cached HOME atom, or nil.
func (e *Environment) Home() *atom.Atom { return e.home }

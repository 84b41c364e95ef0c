// Package alphabet maps the characters a user may type to the X keysyms the
// keyboard reports for them.
package alphabet

import (
	"fmt"
	"strings"
)

// Keysym is an X keysym value as reported for column 0 of a keycode.
type Keysym uint32

// Entry pairs a typeable character with its keysym.
type Entry struct {
	Char   rune
	Keysym Keysym
}

// MinSize is the smallest usable alphabet.
const MinSize = 2

// Allowed lists the characters that may appear in an alphabet, in lookup
// order. Only characters with an unambiguous single-key keysym are included.
const Allowed = "0123456789abcdefghijklmnopqrstuvwxyz"

var all = buildTable()

func buildTable() []Entry {
	entries := make([]Entry, 0, len(Allowed))
	for _, r := range Allowed {
		// Latin-1 keysyms equal their code points for 0-9 and a-z.
		entries = append(entries, Entry{Char: r, Keysym: Keysym(r)})
	}
	return entries
}

// Alphabet is an ordered, duplicate-free set of entries. The zero value is
// empty and unusable; construct with Parse.
type Alphabet struct {
	entries []Entry
}

// Parse validates a CHARACTERS argument. Unknown characters are rejected,
// repeated characters keep their first position, and at least MinSize distinct
// characters must remain.
func Parse(chars string) (Alphabet, error) {
	entries := make([]Entry, 0, len(chars))
	seen := make(map[rune]struct{}, len(chars))
	for _, r := range chars {
		entry, ok := lookupChar(all, r)
		if !ok {
			return Alphabet{}, fmt.Errorf("unknown character: %q (allowed: 0-9, a-z)", r)
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		entries = append(entries, entry)
	}
	if len(entries) < MinSize {
		return Alphabet{}, fmt.Errorf("expected at least %d distinct characters, got %d", MinSize, len(entries))
	}
	return Alphabet{entries: entries}, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(chars string) Alphabet {
	a, err := Parse(chars)
	if err != nil {
		panic(err)
	}
	return a
}

// Len returns the number of entries.
func (a Alphabet) Len() int {
	return len(a.entries)
}

// Chars returns the characters in alphabet order.
func (a Alphabet) Chars() []rune {
	out := make([]rune, len(a.entries))
	for i, e := range a.entries {
		out[i] = e.Char
	}
	return out
}

// Entries returns a copy of the entries in alphabet order.
func (a Alphabet) Entries() []Entry {
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

// CharForKeysym returns the character bound to sym.
func (a Alphabet) CharForKeysym(sym Keysym) (rune, bool) {
	for _, e := range a.entries {
		if e.Keysym == sym {
			return e.Char, true
		}
	}
	return 0, false
}

// KeysymForChar returns the keysym bound to c.
func (a Alphabet) KeysymForChar(c rune) (Keysym, bool) {
	entry, ok := lookupChar(a.entries, c)
	return entry.Keysym, ok
}

// Contains reports whether c is part of the alphabet.
func (a Alphabet) Contains(c rune) bool {
	_, ok := lookupChar(a.entries, c)
	return ok
}

func (a Alphabet) String() string {
	var b strings.Builder
	for _, e := range a.entries {
		b.WriteRune(e.Char)
	}
	return b.String()
}

func lookupChar(entries []Entry, c rune) (Entry, bool) {
	for _, e := range entries {
		if e.Char == c {
			return e, true
		}
	}
	return Entry{}, false
}

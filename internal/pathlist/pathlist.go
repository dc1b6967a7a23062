// Package pathlist parses and serializes Windows PATH values into ordered,
// case-insensitively unique directory lists. It performs no I/O.
package pathlist

import (
	"strings"
)

// Separator is the PATH list separator.
const Separator = ";"

// List is an ordered set of PATH entries. The zero value is an empty list.
// Entries are stored normalized and never repeat under Equal.
type List struct {
	entries []string
}

// Parse splits raw into a List. Entries are trimmed, trailing path
// separators are stripped, empties are dropped, and later case-insensitive
// duplicates are discarded. Parse never fails; an absent variable is an
// empty list.
func Parse(raw string) List {
	var l List
	for _, p := range strings.Split(raw, Separator) {
		n := Normalize(p)
		if n == "" || l.Contains(n) {
			continue
		}
		l.entries = append(l.entries, n)
	}
	return l
}

// Serialize joins entries with Separator. An empty list yields "".
func Serialize(l List) string {
	return strings.Join(l.entries, Separator)
}

// String implements fmt.Stringer and equals Serialize(l).
func (l List) String() string { return Serialize(l) }

// FromEntries builds a List from already split entries with Parse semantics.
func FromEntries(entries ...string) List {
	var l List
	for _, e := range entries {
		l, _ = l.With(e)
	}
	return l
}

// Normalize trims surrounding whitespace and strips every trailing path
// separator, so "C:\Tools\\" and "C:\Tools" normalize alike. Returns "" for
// entries that are not valid.
func Normalize(entry string) string {
	return strings.TrimRight(strings.TrimSpace(entry), `\/`)
}

// Equal compares two entries case-insensitively after normalization.
func Equal(a, b string) bool {
	return strings.EqualFold(Normalize(a), Normalize(b))
}

// Entries returns a copy of the entries in order.
func (l List) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l List) Len() int { return len(l.entries) }

// Index returns the position of entry or -1.
func (l List) Index(entry string) int {
	n := Normalize(entry)
	if n == "" {
		return -1
	}
	for i, e := range l.entries {
		if strings.EqualFold(e, n) {
			return i
		}
	}
	return -1
}

// Contains reports whether entry is present under Equal.
func (l List) Contains(entry string) bool {
	return l.Index(entry) >= 0
}

// With returns l with entry appended. The boolean is false, and l is
// returned unchanged, when entry is invalid or already present.
func (l List) With(entry string) (List, bool) {
	n := Normalize(entry)
	if n == "" || l.Contains(n) {
		return l, false
	}
	out := make([]string, len(l.entries), len(l.entries)+1)
	copy(out, l.entries)
	return List{entries: append(out, n)}, true
}

// Without returns l with every entry equal to entry removed. The boolean
// reports whether anything was removed.
func (l List) Without(entry string) (List, bool) {
	n := Normalize(entry)
	if n == "" {
		return l, false
	}
	out := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		if strings.EqualFold(e, n) {
			continue
		}
		out = append(out, e)
	}
	if len(out) == len(l.entries) {
		return l, false
	}
	return List{entries: out}, true
}

// EqualList reports whether a and b hold the same entries in the same order.
func EqualList(a, b List) bool {
	if len(a.entries) != len(b.entries) {
		return false
	}
	for i := range a.entries {
		if !strings.EqualFold(a.entries[i], b.entries[i]) {
			return false
		}
	}
	return true
}

package envstore

import (
	"strings"

	"github.com/VoxDroid/envpath/internal/errors"
)

// Scope selects which persisted PATH value an operation targets.
type Scope int

const (
	// User is the per-user PATH (HKCU\Environment on Windows).
	User Scope = iota
	// Machine is the machine-wide PATH and requires elevation to change.
	Machine
)

// Scopes lists every scope in display order.
func Scopes() []Scope { return []Scope{User, Machine} }

func (s Scope) String() string {
	switch s {
	case User:
		return "User"
	case Machine:
		return "Machine"
	default:
		return "Unknown"
	}
}

// Key is the lowercase name used in files, the journal and CLI output.
func (s Scope) Key() string { return strings.ToLower(s.String()) }

// ParseScope accepts user/u and system/s/machine/m, case-insensitively.
func ParseScope(v string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "user", "u":
		return User, nil
	case "system", "s", "machine", "m":
		return Machine, nil
	}
	return User, errors.Newf(errors.ErrValidation, "unknown scope %q (want user or system)", v).
		WithDetail("scope", v)
}

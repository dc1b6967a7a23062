package privilege

import "github.com/VoxDroid/envpath/internal/envstore"

// Operation is a user-facing command.
type Operation int

const (
	OpAdd Operation = iota
	OpRemove
	OpCheck
	OpList
	OpShow
	OpHistory
	OpRollback
	OpInstall
	OpUninstall
)

var operationNames = map[Operation]string{
	OpAdd:       "add",
	OpRemove:    "remove",
	OpCheck:     "check",
	OpList:      "list",
	OpShow:      "show",
	OpHistory:   "history",
	OpRollback:  "rollback",
	OpInstall:   "install",
	OpUninstall: "uninstall",
}

func (o Operation) String() string {
	if n, ok := operationNames[o]; ok {
		return n
	}
	return "unknown"
}

// Mutates reports whether o writes a PATH value or the registry.
func (o Operation) Mutates() bool {
	switch o {
	case OpAdd, OpRemove, OpRollback, OpInstall, OpUninstall:
		return true
	}
	return false
}

// RequiresElevation is true when an unprivileged process asks to change the
// machine PATH or to install or remove the context menu.
func RequiresElevation(state State, scope envstore.Scope, op Operation) bool {
	if state == Privileged {
		return false
	}
	if op == OpInstall || op == OpUninstall {
		return true
	}
	return op.Mutates() && scope == envstore.Machine
}

package envstore

// Notifier is told about every successful write. Failures are logged by the
// store and never returned to the caller.
type Notifier interface {
	Notify(scope Scope) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(scope Scope) error

// Notify implements Notifier.
func (f NotifierFunc) Notify(scope Scope) error { return f(scope) }

// Change describes one persisted write.
type Change struct {
	Scope  Scope
	Op     string
	Entry  string
	Before string
	After  string
}

// Journal records persisted writes, for history and rollback.
type Journal interface {
	Record(c Change) error
}

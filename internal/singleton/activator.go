package singleton

// Activator brings the window with a given title to the foreground. It
// reports whether such a window was found.
type Activator interface {
	Activate(title string) (bool, error)
}

// NopActivator never finds a window.
type NopActivator struct{}

// Activate implements Activator.
func (NopActivator) Activate(string) (bool, error) { return false, nil }

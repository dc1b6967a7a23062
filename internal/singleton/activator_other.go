//go:build !windows

package singleton

// DefaultActivator returns the platform activator. Terminal windows cannot
// be raised portably, so the running viewer is only told to refresh.
func DefaultActivator() Activator { return NopActivator{} }

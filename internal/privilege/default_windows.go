//go:build windows

package privilege

// DefaultLauncher returns the platform elevation launcher.
func DefaultLauncher() Launcher { return RunAsLauncher{} }

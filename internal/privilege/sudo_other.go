//go:build !windows

package privilege

import (
	"context"
	"os"
	"os/exec"
)

// SudoLauncher elevates through sudo, keeping the environment so the child
// finds the same data directory. The password prompt uses the terminal.
type SudoLauncher struct{}

// Launch implements Launcher.
func (SudoLauncher) Launch(_ context.Context, exe string, args []string) (Process, error) {
	cmd := exec.Command("sudo", append([]string{"-E", exe}, args...)...)
	cmd.Stdin = os.Stdin
	cmd.Stderr = os.Stderr
	return startCmd(cmd, false)
}

// DefaultLauncher returns the platform elevation launcher.
func DefaultLauncher() Launcher { return SudoLauncher{} }

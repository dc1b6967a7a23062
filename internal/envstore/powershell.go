package envstore

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/VoxDroid/envpath/internal/pwsh"
)

// CommandRunner runs an external program and returns its combined output.
type CommandRunner func(name string, args ...string) ([]byte, error)

func execRunner(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// PowerShellBackend goes through [Environment]::Get/SetEnvironmentVariable.
// It is the fallback when the registry cannot be opened directly. Values are
// passed through -EncodedCommand so no quoting of the PATH value leaks into
// the command line.
type PowerShellBackend struct {
	// Exe is the PowerShell executable, "powershell" when empty.
	Exe string
	// Run is replaced in tests.
	Run CommandRunner
}

// NewPowerShellBackend returns a backend running the system PowerShell.
func NewPowerShellBackend() *PowerShellBackend {
	return &PowerShellBackend{Exe: "powershell", Run: execRunner}
}

func (p *PowerShellBackend) run(script string) ([]byte, error) {
	exe := p.Exe
	if exe == "" {
		exe = "powershell"
	}
	run := p.Run
	if run == nil {
		run = execRunner
	}
	return run(exe, pwsh.Args(script)...)
}

// Get implements Backend.
func (p *PowerShellBackend) Get(scope Scope) (string, error) {
	script := fmt.Sprintf("[Environment]::GetEnvironmentVariable('Path', '%s')", scope)
	out, err := p.run(script)
	if err != nil {
		return "", fmt.Errorf("get %s PATH: %v (%s)", scope, err, strings.TrimSpace(string(out)))
	}
	return strings.TrimRight(string(out), "\r\n"), nil
}

// Set implements Backend.
func (p *PowerShellBackend) Set(scope Scope, value string) error {
	script := fmt.Sprintf("[Environment]::SetEnvironmentVariable('Path', %s, '%s')", pwsh.Quote(value), scope)
	if out, err := p.run(script); err != nil {
		return fmt.Errorf("set %s PATH: %v (%s)", scope, err, strings.TrimSpace(string(out)))
	}
	return nil
}

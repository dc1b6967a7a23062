package privilege

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/VoxDroid/envpath/internal/pwsh"
)

// runAsScript starts the child through the UAC prompt, waits for it and
// exits with its code. A refused prompt surfaces as a Win32Exception with
// ERROR_CANCELLED somewhere in the exception chain.
const runAsScript = `try {
  $p = Start-Process -FilePath %s -ArgumentList %s -Verb RunAs -WindowStyle Hidden -Wait -PassThru -ErrorAction Stop
  exit $p.ExitCode
} catch {
  $e = $_.Exception
  while ($e) {
    if ($e.NativeErrorCode -eq %d) { exit %d }
    $e = $e.InnerException
  }
  [Console]::Error.WriteLine($_.Exception.Message)
  exit %d
}`

// RunAsLauncher elevates through PowerShell Start-Process -Verb RunAs.
type RunAsLauncher struct {
	// PowerShell is the executable, "powershell" when empty.
	PowerShell string
}

// Script returns the PowerShell script that launches exe with args.
func (l RunAsLauncher) Script(exe string, args []string) string {
	argList := pwsh.Quote(pwsh.JoinCommandLine(args))
	if len(args) == 0 {
		argList = "@()"
	}
	return fmt.Sprintf(runAsScript, pwsh.Quote(exe), argList, ExitCancelled, ExitCancelled, ExitLaunchFailed)
}

// Launch implements Launcher.
func (l RunAsLauncher) Launch(_ context.Context, exe string, args []string) (Process, error) {
	ps := l.PowerShell
	if ps == "" {
		ps = "powershell"
	}
	cmd := exec.Command(ps, pwsh.Args(l.Script(exe, args))...)
	return startCmd(cmd, true)
}

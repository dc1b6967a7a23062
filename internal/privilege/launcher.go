package privilege

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"
)

// Exit codes a launcher reports when the child never ran.
const (
	// ExitCancelled is ERROR_CANCELLED, returned when the prompt is refused.
	ExitCancelled = 1223
	// ExitLaunchFailed means the elevation mechanism itself failed.
	ExitLaunchFailed = 1222
)

// Process is a launched elevated child.
type Process interface {
	Done() <-chan struct{}
	// ExitCode is valid once Done is closed.
	ExitCode() int
}

// Launcher starts exe elevated with args.
type Launcher interface {
	Launch(ctx context.Context, exe string, args []string) (Process, error)
}

// diagnoser is implemented by processes that captured a failure message.
type diagnoser interface {
	Diagnostic() string
}

// cmdProcess adapts a started exec.Cmd.
type cmdProcess struct {
	done   chan struct{}
	code   int
	stderr bytes.Buffer
	mu     sync.Mutex
}

func startCmd(cmd *exec.Cmd, captureStderr bool) (*cmdProcess, error) {
	p := &cmdProcess{done: make(chan struct{})}
	if captureStderr {
		cmd.Stderr = &lockedWriter{mu: &p.mu, buf: &p.stderr}
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	go func() {
		err := cmd.Wait()
		code := 0
		if err != nil {
			var ee *exec.ExitError
			if errors.As(err, &ee) {
				code = ee.ExitCode()
			} else {
				code = ExitLaunchFailed
			}
		}
		p.mu.Lock()
		p.code = code
		p.mu.Unlock()
		close(p.done)
	}()
	return p, nil
}

func (p *cmdProcess) Done() <-chan struct{} { return p.done }

func (p *cmdProcess) ExitCode() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.code
}

func (p *cmdProcess) Diagnostic() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return strings.TrimSpace(p.stderr.String())
}

type lockedWriter struct {
	mu  *sync.Mutex
	buf *bytes.Buffer
}

func (w *lockedWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(b)
}

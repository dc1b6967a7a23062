package privilege

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoxDroid/envpath/internal/envstore"
	"github.com/VoxDroid/envpath/internal/errors"
	"github.com/VoxDroid/envpath/internal/relay"
)

func TestRequiresElevation(t *testing.T) {
	tests := []struct {
		state State
		scope envstore.Scope
		op    Operation
		want  bool
	}{
		{Unprivileged, envstore.Machine, OpAdd, true},
		{Unprivileged, envstore.Machine, OpRemove, true},
		{Unprivileged, envstore.Machine, OpRollback, true},
		{Unprivileged, envstore.User, OpAdd, false},
		{Unprivileged, envstore.User, OpRemove, false},
		{Unprivileged, envstore.Machine, OpList, false},
		{Unprivileged, envstore.Machine, OpCheck, false},
		{Unprivileged, envstore.Machine, OpShow, false},
		{Unprivileged, envstore.User, OpInstall, true},
		{Unprivileged, envstore.User, OpUninstall, true},
		{Privileged, envstore.Machine, OpAdd, false},
		{Privileged, envstore.User, OpInstall, false},
	}
	for _, tt := range tests {
		got := RequiresElevation(tt.state, tt.scope, tt.op)
		assert.Equal(t, tt.want, got, "%s %s %s", tt.state, tt.scope, tt.op)
	}
}

func TestDetectIsStable(t *testing.T) {
	assert.Equal(t, Detect(), Detect())
}

// fakeProcess finishes when its script returns.
type fakeProcess struct {
	done chan struct{}
	code int
	diag string
}

func (p *fakeProcess) Done() <-chan struct{} { return p.done }
func (p *fakeProcess) ExitCode() int         { return p.code }
func (p *fakeProcess) Diagnostic() string    { return p.diag }

// fakeLauncher plays the elevated child: it writes into the relay channel
// named in its arguments and exits with a fixed code.
type fakeLauncher struct {
	gotExe  string
	gotArgs []string
	lines   []string
	code    int
	diag    string
	err     error
}

func (f *fakeLauncher) Launch(_ context.Context, exe string, args []string) (Process, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.gotExe, f.gotArgs = exe, args
	p := &fakeProcess{done: make(chan struct{}), code: f.code, diag: f.diag}
	channel, _ := relay.StripArgs(args)
	go func() {
		defer close(p.done)
		w := relay.NewWriter(channel)
		for _, l := range f.lines {
			_, _ = io.WriteString(w, l)
			time.Sleep(2 * time.Millisecond)
		}
	}()
	return p, nil
}

func newGate(t *testing.T, l Launcher) *Gate {
	return &Gate{
		State:      Unprivileged,
		Launcher:   l,
		Executable: "/opt/envpath/envpath",
		RelayDir:   t.TempDir(),
		Interval:   5 * time.Millisecond,
	}
}

func TestElevateRelaysChildOutputAndExitCode(t *testing.T) {
	l := &fakeLauncher{lines: []string{"Added C:\\NewDir to the system PATH\n"}, code: 0}
	g := newGate(t, l)
	var out bytes.Buffer

	code, err := g.Elevate(context.Background(), []string{"add", "system", `C:\NewDir`}, &out)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "Added C:\\NewDir to the system PATH\n", out.String())

	assert.Equal(t, "/opt/envpath/envpath", l.gotExe)
	channel, rest := relay.StripArgs(l.gotArgs)
	assert.Equal(t, []string{"add", "system", `C:\NewDir`}, rest)
	assert.Equal(t, g.RelayDir, filepath.Dir(channel))
	assert.True(t, strings.HasPrefix(filepath.Base(channel), "envpath-relay-"))
	// channel removed at teardown
	assert.NoFileExists(t, channel)
}

func TestElevateLogsDuration(t *testing.T) {
	var logs bytes.Buffer
	g := newGate(t, &fakeLauncher{code: 0})
	g.Log = zerolog.New(&logs).Level(zerolog.DebugLevel)

	_, err := g.Elevate(context.Background(), []string{"remove", "system", `C:\x`}, io.Discard)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"operation":"elevate","message":"Operation started"`)
	assert.Contains(t, logs.String(), `"message":"Operation completed"`)
	assert.Contains(t, logs.String(), `"duration":`)
}

func TestElevatePropagatesChildExitCode(t *testing.T) {
	g := newGate(t, &fakeLauncher{lines: []string{"already present\n"}, code: errors.ExitAlreadyPresent})
	var out bytes.Buffer
	code, err := g.Elevate(context.Background(), []string{"add", "system", `C:\x`}, &out)
	require.NoError(t, err)
	assert.Equal(t, errors.ExitAlreadyPresent, code)
	assert.Equal(t, "already present\n", out.String())
}

func TestElevateDenied(t *testing.T) {
	g := newGate(t, &fakeLauncher{code: ExitCancelled})
	code, err := g.Elevate(context.Background(), []string{"add", "system", `C:\x`}, io.Discard)
	require.Error(t, err)
	assert.Equal(t, errors.ExitElevationDenied, code)
	assert.True(t, errors.IsErrorCode(err, errors.ErrElevationDenied))
}

func TestElevateMechanismFailure(t *testing.T) {
	g := newGate(t, &fakeLauncher{code: ExitLaunchFailed, diag: "The service cannot be started"})
	code, err := g.Elevate(context.Background(), []string{"add", "system", `C:\x`}, io.Discard)
	require.Error(t, err)
	assert.Equal(t, errors.ExitElevationUnavailable, code)
	assert.Contains(t, err.Error(), "The service cannot be started")
}

func TestElevateLaunchError(t *testing.T) {
	g := newGate(t, &fakeLauncher{err: fmt.Errorf("exec: \"powershell\": executable file not found")})
	code, err := g.Elevate(context.Background(), []string{"install"}, io.Discard)
	require.Error(t, err)
	assert.Equal(t, errors.ExitElevationUnavailable, code)
	assert.True(t, errors.IsErrorCode(err, errors.ErrElevationUnavailable))
}

func TestRunAsScript(t *testing.T) {
	s := RunAsLauncher{}.Script(`C:\Program Files\envpath\envpath.exe`, []string{"--relay-to", `C:\Temp\r.log`, "add", "system", `C:\It's Here`})
	assert.Contains(t, s, `-FilePath 'C:\Program Files\envpath\envpath.exe'`)
	assert.Contains(t, s, `-ArgumentList '--relay-to C:\Temp\r.log add system "C:\It''s Here"'`)
	assert.Contains(t, s, "-Verb RunAs")
	assert.Contains(t, s, "exit 1223")
	assert.Contains(t, s, "exit 1222")
}

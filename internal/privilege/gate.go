package privilege

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"

	"github.com/VoxDroid/envpath/internal/envstore"
	"github.com/VoxDroid/envpath/internal/errors"
	"github.com/VoxDroid/envpath/internal/logging"
	"github.com/VoxDroid/envpath/internal/relay"
)

// Gate decides whether to elevate and performs the elevated round trip.
type Gate struct {
	State    State
	Launcher Launcher
	// Executable is relaunched; os.Executable() when empty.
	Executable string
	// RelayDir holds the relay channel; the OS temp dir when empty.
	RelayDir string
	// Interval is the relay polling period.
	Interval time.Duration
	Log      zerolog.Logger
}

// RequiresElevation applies RequiresElevation to the gate's state.
func (g *Gate) RequiresElevation(scope envstore.Scope, op Operation) bool {
	return RequiresElevation(g.State, scope, op)
}

// Elevate runs args in an elevated copy of envpath, copying the child's
// output to out while it runs, and returns the child's exit code.
func (g *Gate) Elevate(ctx context.Context, args []string, out io.Writer) (int, error) {
	defer logging.LogOperationStart(g.Log, "elevate")()
	exe := g.Executable
	if exe == "" {
		var err error
		exe, err = os.Executable()
		if err != nil {
			return errors.ExitElevationUnavailable, errors.Wrap(err, errors.ErrElevationUnavailable, "cannot locate the envpath executable")
		}
	}
	launcher := g.Launcher
	if launcher == nil {
		launcher = DefaultLauncher()
	}

	ch, err := relay.NewFileChannel(g.RelayDir)
	if err != nil {
		return errors.ExitElevationUnavailable, errors.Wrap(err, errors.ErrElevationUnavailable, "cannot create the output relay")
	}
	defer func() {
		if cerr := ch.Close(); cerr != nil {
			g.Log.Debug().Err(cerr).Str("channel", ch.Path()).Msg("relay cleanup failed")
		}
	}()

	childArgs := relay.ChildArgs(ch.Path(), args)
	g.Log.Info().Str("command", shellquote.Join(append([]string{exe}, childArgs...)...)).Msg("relaunching elevated")

	p, err := launcher.Launch(ctx, exe, childArgs)
	if err != nil {
		if errors.GetErrorCode(err) != errors.ErrUnknown {
			return errors.ExitCode(err), err
		}
		return errors.ExitElevationUnavailable, errors.Wrap(err, errors.ErrElevationUnavailable, "could not start the elevated process")
	}

	n := relay.Relay{Interval: g.Interval, Log: g.Log}.Run(ctx, ch, p, out)
	select {
	case <-p.Done():
	default:
		return errors.ExitUnexpected, errors.Unexpected(ctx.Err(), "interrupted while waiting for the elevated process")
	}
	code := p.ExitCode()
	g.Log.Debug().Int("exit_code", code).Int64("relayed_bytes", n).Msg("elevated process finished")

	switch code {
	case ExitCancelled:
		return errors.ExitElevationDenied, errors.New(errors.ErrElevationDenied,
			"administrator approval was declined; rerun and accept the prompt to change the system PATH")
	case ExitLaunchFailed:
		msg := "the elevated process could not be started"
		if d, ok := p.(diagnoser); ok && d.Diagnostic() != "" {
			msg = d.Diagnostic()
		}
		return errors.ExitElevationUnavailable, errors.New(errors.ErrElevationUnavailable, msg)
	}
	return code, nil
}

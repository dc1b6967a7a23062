package viewer

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Options configures Run.
type Options struct {
	Title string
	// Refresh and Changes deliver refresh requests from other envpath
	// processes and from the store watcher. Either may be nil.
	Refresh <-chan struct{}
	Changes <-chan struct{}
	// Input and Output default to the terminal.
	Input  io.Reader
	Output io.Writer
}

// Run shows m until the user quits or ctx ends.
func Run(ctx context.Context, m *Model, opts Options) error {
	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	} else {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(m, progOpts...)

	fwdCtx, stop := context.WithCancel(ctx)
	defer stop()
	forward(fwdCtx, p, opts.Refresh, "requested by another envpath")
	forward(fwdCtx, p, opts.Changes, "PATH changed")

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func forward(ctx context.Context, p *tea.Program, ch <-chan struct{}, reason string) {
	if ch == nil {
		return
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				p.Send(RefreshMsg{Reason: reason})
			}
		}
	}()
}

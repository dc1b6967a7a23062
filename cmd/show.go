package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/envpath/internal/logging"
	"github.com/VoxDroid/envpath/internal/singleton"
	"github.com/VoxDroid/envpath/internal/viewer"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Open the PATH viewer, or bring the running one to the front",
	Long: `Open a live view of the user and system PATH. Only one viewer runs at a
time: when one is already open it is raised and refreshed instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sess := sessionFrom(cmd)
		scopeFlag, _ := cmd.Flags().GetString("scope")
		scopes, err := selectScopes(scopeFlag)
		if err != nil {
			return err
		}
		coord := &singleton.Coordinator{
			Locator:   sess.locator,
			Activator: newActivator(),
			Title:     sess.cfg.Singleton.Title,
			Log:       logging.GetLogger("singleton"),
		}
		outcome, err := coord.ShowOrActivate(cmd.Context(), func(ctx context.Context, l singleton.Listener) error {
			store, err := sess.openStore()
			if err != nil {
				return err
			}
			changes, err := store.Watch(ctx)
			if err != nil {
				sess.log.Warn().Err(err).Msg("cannot watch PATH changes, refresh with r")
			}
			opts := viewer.Options{
				Title:   sess.cfg.Singleton.Title,
				Refresh: listenerSignals(ctx, l),
				Changes: changes,
			}
			// the terminal is bubbletea's default input
			if in := cmd.InOrStdin(); in != os.Stdin {
				opts.Input = in
			}
			return runViewer(ctx, viewer.New(store, scopes, sess.cfg.Singleton.Title), opts)
		})
		if err != nil {
			return err
		}
		sess.log.Info().Str("outcome", outcome.String()).Msg("show finished")
		if outcome == singleton.ActivatedExisting {
			printf(cmd, "%s the PATH viewer is already open, refreshed it\n", infoMark("="))
		}
		return nil
	},
}

// listenerSignals turns viewer requests into refresh signals.
func listenerSignals(ctx context.Context, l singleton.Listener) <-chan struct{} {
	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-l.Messages():
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out
}

func init() {
	showCmd.Flags().String("scope", "", "Only show one scope (user or system)")
	rootCmd.AddCommand(showCmd)
}

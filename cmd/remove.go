package cmd

import (
	"github.com/spf13/cobra"

	"github.com/VoxDroid/envpath/internal/envstore"
	"github.com/VoxDroid/envpath/internal/errors"
	"github.com/VoxDroid/envpath/internal/privilege"
)

var removeCmd = &cobra.Command{
	Use:     "remove <scope> <path>",
	Aliases: []string{"rm"},
	Short:   "Remove a directory from the user or system PATH",
	Long: `Remove every entry equal to the directory from the PATH of a scope. The
directory does not have to exist, so stale entries can be cleaned up.

Exits with 4 when the directory is not on that PATH.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := sessionFrom(cmd)
		scope, err := envstore.ParseScope(args[0])
		if err != nil {
			return err
		}
		entry, err := resolveEntry(args[1])
		if err != nil {
			return err
		}
		if sess.requiresElevation(scope, privilege.OpRemove) {
			return sess.elevate(cmd, privilege.OpRemove, []string{"remove", scope.Key(), entry})
		}

		store, err := sess.openStore()
		if err != nil {
			return err
		}
		outcome, err := store.Remove(scope, entry)
		if err != nil {
			return err
		}
		if outcome == envstore.NotPresent {
			printf(cmd, "%s %s is not on the %s PATH\n", infoMark("="), entry, scope)
			return &errors.ExitError{Code: errors.ExitNotPresent}
		}
		printf(cmd, "%s removed %s from the %s PATH\n", okMark("-"), entry, scope)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/VoxDroid/envpath/internal/envstore"
	"github.com/VoxDroid/envpath/internal/errors"
	"github.com/VoxDroid/envpath/internal/privilege"
)

var addCmd = &cobra.Command{
	Use:   "add <scope> <path>",
	Short: "Add a directory to the user or system PATH",
	Long: `Append an existing directory to the PATH of a scope. The scope is user (u)
or system (s). Adding to the system PATH asks for administrator approval.

Exits with 3 when the directory is already on that PATH.`,
	Example: `  envpath add user C:\Tools
  envpath add s "C:\Program Files\Git\cmd"`,
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
		if err := requireDirectory(entry); err != nil {
			return err
		}
		if sess.requiresElevation(scope, privilege.OpAdd) {
			return sess.elevate(cmd, privilege.OpAdd, []string{"add", scope.Key(), entry})
		}

		store, err := sess.openStore()
		if err != nil {
			return err
		}
		outcome, err := store.Add(scope, entry)
		if err != nil {
			return err
		}
		if outcome == envstore.AlreadyPresent {
			printf(cmd, "%s %s is already on the %s PATH\n", infoMark("="), entry, scope)
			return &errors.ExitError{Code: errors.ExitAlreadyPresent}
		}
		printf(cmd, "%s added %s to the %s PATH\n", okMark("+"), entry, scope)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}

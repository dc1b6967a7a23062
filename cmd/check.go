package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/envpath/internal/envstore"
	"github.com/VoxDroid/envpath/internal/errors"
)

var checkCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Report which PATH scopes contain a directory",
	Long: `Look the directory up in the user and system PATH. Exits with 4 when
neither scope contains it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := sessionFrom(cmd)
		entry, err := resolveEntry(args[0])
		if err != nil {
			return err
		}
		store, err := sess.openStore()
		if err != nil {
			return err
		}
		var found []string
		for _, scope := range envstore.Scopes() {
			ok, err := store.Contains(scope, entry)
			if err != nil {
				return err
			}
			if ok {
				found = append(found, scope.String())
			}
		}
		if len(found) == 0 {
			printf(cmd, "%s %s is not on the PATH\n", infoMark("="), entry)
			return &errors.ExitError{Code: errors.ExitNotPresent}
		}
		printf(cmd, "%s %s is on the %s PATH\n", okMark("✓"), entry, strings.Join(found, " and "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/envpath/internal/envstore"
	"github.com/VoxDroid/envpath/internal/errors"
	"github.com/VoxDroid/envpath/internal/pathlist"
	"github.com/VoxDroid/envpath/internal/privilege"
	"github.com/VoxDroid/envpath/internal/utils"
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback <scope> <version>",
	Short: "Restore the PATH of a scope to a recorded version",
	Long: `Replace the whole PATH of a scope with the value it had after the given
version (see history). The restore is recorded as a new version.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := sessionFrom(cmd)
		scope, err := envstore.ParseScope(args[0])
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			return errors.Newf(errors.ErrValidation, "version must be a positive integer, got %q", args[1])
		}
		yes, _ := cmd.Flags().GetBool("yes")

		j, err := sess.requireJournal()
		if err != nil {
			return err
		}
		v, err := j.Get(scope, n)
		if err != nil {
			return errors.Unexpected(err, "read history")
		}
		if v == nil {
			return errors.Newf(errors.ErrNotFound, "the %s PATH has no version %d", scope, n)
		}

		store, err := sess.openStore()
		if err != nil {
			return err
		}
		current, err := store.Read(scope)
		if err != nil {
			return err
		}
		target := pathlist.Parse(v.After)
		if current.String() == target.String() {
			printf(cmd, "%s the %s PATH already matches v%d\n", infoMark("="), scope, n)
			return nil
		}
		if pathlist.EqualList(current, target) {
			printf(cmd, "  %s entries differ only in letter case\n", infoMark("~"))
		} else {
			printRollbackDiff(cmd, current, target)
		}
		if !yes && !utils.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Restore the "+scope.String()+" PATH to v"+args[1]+"?") {
			printf(cmd, "rollback cancelled\n")
			return nil
		}

		if sess.requiresElevation(scope, privilege.OpRollback) {
			return sess.elevate(cmd, privilege.OpRollback, []string{"rollback", scope.Key(), strconv.Itoa(n), "--yes"})
		}
		if _, err := store.Replace(scope, v.After, "rollback"); err != nil {
			return err
		}
		printf(cmd, "%s restored the %s PATH to v%d\n", okMark("✓"), scope, n)
		return nil
	},
}

func printRollbackDiff(cmd *cobra.Command, current, target pathlist.List) {
	for _, e := range target.Entries() {
		if !current.Contains(e) {
			printf(cmd, "  %s %s\n", okMark("+"), e)
		}
	}
	for _, e := range current.Entries() {
		if !target.Contains(e) {
			printf(cmd, "  %s %s\n", infoMark("-"), e)
		}
	}
}

func init() {
	rollbackCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(rollbackCmd)
}

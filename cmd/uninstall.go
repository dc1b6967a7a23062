package cmd

import (
	"github.com/spf13/cobra"

	"github.com/VoxDroid/envpath/internal/privilege"
	"github.com/VoxDroid/envpath/internal/shellmenu"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the envpath context menu entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dry, _ := cmd.Flags().GetBool("dry-run")
		opts, err := menuOptions(cmd, privilege.OpUninstall, dry)
		if err != nil || opts == nil {
			return err
		}
		actions, err := shellmenu.Uninstall(*opts)
		printActions(cmd, "Uninstall", dry, actions)
		if err != nil {
			return err
		}
		if !dry {
			printf(cmd, "%s context menu removed\n", okMark("✓"))
		}
		return nil
	},
}

func init() {
	uninstallCmd.Flags().Bool("dry-run", false, "Print the planned registry changes without applying them")
	rootCmd.AddCommand(uninstallCmd)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/VoxDroid/envpath/internal/envstore"
	"github.com/VoxDroid/envpath/internal/privilege"
	"github.com/VoxDroid/envpath/internal/shellmenu"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Add envpath entries to the Explorer folder context menu",
	Long: `Register "Add to PATH", "Remove from PATH" and "Show PATH" verbs for folders
and folder backgrounds. The verbs are machine-wide, so this asks for
administrator approval. Use --dry-run to preview the keys.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dry, _ := cmd.Flags().GetBool("dry-run")
		opts, err := menuOptions(cmd, privilege.OpInstall, dry)
		if err != nil || opts == nil {
			return err
		}
		actions, err := shellmenu.Install(*opts)
		printActions(cmd, "Install", dry, actions)
		if err != nil {
			return err
		}
		if !dry {
			printf(cmd, "%s context menu installed\n", okMark("✓"))
		}
		return nil
	},
}

// menuOptions prepares a context-menu change. It returns nil options when
// the change already ran in an elevated child.
func menuOptions(cmd *cobra.Command, op privilege.Operation, dry bool) (*shellmenu.Options, error) {
	sess := sessionFrom(cmd)
	exe, err := executable()
	if err != nil {
		exe = ""
	}
	opts := &shellmenu.Options{Executable: exe, DryRun: dry}
	if dry {
		return opts, nil
	}
	reg, err := newMenuRegistry()
	if err != nil {
		return nil, err
	}
	if sess.requiresElevation(envstore.Machine, op) {
		return nil, sess.elevate(cmd, op, []string{op.String()})
	}
	opts.Registry = reg
	return opts, nil
}

func printActions(cmd *cobra.Command, verb string, dry bool, actions []string) {
	if len(actions) == 0 {
		return
	}
	if dry {
		printf(cmd, "%s plan (dry run):\n", verb)
	}
	for _, a := range actions {
		printf(cmd, "- %s\n", a)
	}
}

func init() {
	installCmd.Flags().Bool("dry-run", false, "Print the planned registry changes without applying them")
	rootCmd.AddCommand(installCmd)
}

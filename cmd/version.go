package cmd

import (
	"github.com/spf13/cobra"

	"github.com/VoxDroid/envpath/internal/version"
)

var checkLatest = version.CheckLatest

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sess := sessionFrom(cmd)
		printf(cmd, "envpath %s\n", version.Version)
		check, _ := cmd.Flags().GetBool("check")
		if !check {
			return nil
		}
		u, err := checkLatest()
		if err != nil {
			// offline is normal; the version line above is still valid
			sess.log.Warn().Err(err).Msg("release check failed")
			printf(cmd, "%s could not check for a newer release\n", infoMark("?"))
			return nil
		}
		if u.Outdated {
			printf(cmd, "%s v%s is available\n", infoMark("!"), u.Latest)
			return nil
		}
		printf(cmd, "%s up to date\n", okMark("✓"))
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}

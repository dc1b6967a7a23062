package cmd

import (
	"github.com/spf13/cobra"

	"github.com/VoxDroid/envpath/internal/envstore"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Print the user and system PATH entries",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sess := sessionFrom(cmd)
		scopeFlag, _ := cmd.Flags().GetString("scope")
		raw, _ := cmd.Flags().GetBool("raw")
		scopes, err := selectScopes(scopeFlag)
		if err != nil {
			return err
		}
		store, err := sess.openStore()
		if err != nil {
			return err
		}
		for i, scope := range scopes {
			l, err := store.Read(scope)
			if err != nil {
				return err
			}
			if raw {
				printf(cmd, "%s\n", l)
				continue
			}
			if i > 0 {
				printf(cmd, "\n")
			}
			printf(cmd, "%s PATH (%d entries)\n", scope, l.Len())
			for n, e := range l.Entries() {
				if dirExistsFn(e) {
					printf(cmd, "%3d  %s\n", n+1, e)
				} else {
					printf(cmd, "%3d  %s %s\n", n+1, e, dimText("(missing)"))
				}
			}
		}
		return nil
	},
}

var dirExistsFn = func(entry string) bool {
	return requireDirectory(entry) == nil
}

// selectScopes maps a --scope value to the scopes to show; "" means both.
func selectScopes(v string) ([]envstore.Scope, error) {
	if v == "" || v == "all" || v == "both" {
		return envstore.Scopes(), nil
	}
	s, err := envstore.ParseScope(v)
	if err != nil {
		return nil, err
	}
	return []envstore.Scope{s}, nil
}

func init() {
	listCmd.Flags().String("scope", "", "Only list one scope (user or system)")
	listCmd.Flags().Bool("raw", false, "Print the serialized PATH value of each scope")
	rootCmd.AddCommand(listCmd)
}

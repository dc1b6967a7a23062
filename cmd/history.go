package cmd

import (
	"github.com/spf13/cobra"

	"github.com/VoxDroid/envpath/internal/envstore"
	"github.com/VoxDroid/envpath/internal/errors"
	"github.com/VoxDroid/envpath/internal/history"
	"github.com/VoxDroid/envpath/internal/privilege"
)

var historyCmd = &cobra.Command{
	Use:   "history [scope]",
	Short: "List recorded PATH versions",
	Long: `Show every recorded change of the user and system PATH, newest first.
Any version can be restored with rollback.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := sessionFrom(cmd)
		scopes := envstore.Scopes()
		if len(args) == 1 {
			s, err := envstore.ParseScope(args[0])
			if err != nil {
				return err
			}
			scopes = []envstore.Scope{s}
		}
		j, err := sess.requireJournal()
		if err != nil {
			return err
		}
		for i, scope := range scopes {
			vs, err := j.List(scope)
			if err != nil {
				return errors.Unexpected(err, "read history")
			}
			if i > 0 {
				printf(cmd, "\n")
			}
			printf(cmd, "%s PATH\n", scope)
			if len(vs) == 0 {
				printf(cmd, "  %s\n", dimText("no recorded changes"))
				continue
			}
			for _, v := range vs {
				printf(cmd, "  v%-4d %s  %s\n", v.Version, v.CreatedAt, describeVersion(v))
			}
		}
		return nil
	},
}

func describeVersion(v history.Version) string {
	s := v.Operation
	if v.Entry.Valid {
		s += " " + v.Entry.String
	}
	if v.Elevated {
		s += " " + dimText("(elevated)")
	}
	return s
}

func (s *session) requireJournal() (*history.Journal, error) {
	if !s.cfg.History.Enabled {
		return nil, errors.New(errors.ErrValidation, "history is disabled (history.enabled = false)")
	}
	if s.journal != nil {
		return s.journal, nil
	}
	j, err := history.OpenDefault()
	if err != nil {
		return nil, errors.Unexpected(err, "open history")
	}
	j.SetElevated(s.state == privilege.Privileged)
	s.journal = j
	return j, nil
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

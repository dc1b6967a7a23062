package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/VoxDroid/envpath/internal/config"
	"github.com/VoxDroid/envpath/internal/envstore"
	"github.com/VoxDroid/envpath/internal/errors"
	"github.com/VoxDroid/envpath/internal/history"
	"github.com/VoxDroid/envpath/internal/logging"
	"github.com/VoxDroid/envpath/internal/privilege"
	"github.com/VoxDroid/envpath/internal/shellmenu"
	"github.com/VoxDroid/envpath/internal/singleton"
	"github.com/VoxDroid/envpath/internal/viewer"
)

// Seams replaced in tests.
var (
	detectState     = privilege.Detect
	newLauncher     = privilege.DefaultLauncher
	openBackend     = envstore.Open
	systemNotifier  = envstore.SettingChangeNotifier
	executable      = os.Executable
	runViewer       = viewer.Run
	newActivator    = singleton.DefaultActivator
	newMenuRegistry = shellmenu.DefaultRegistry
)

// session holds what one invocation needs. The store and journal are
// opened on first use so read-only commands like version stay cheap.
type session struct {
	relayTo string
	detect  func() privilege.State

	verbosity int
	cfg       *config.Config
	log       zerolog.Logger
	state     privilege.State
	locator   *singleton.TCPLocator
	store     *envstore.Store
	journal   *history.Journal
}

type sessionKey struct{}

func withSession(ctx context.Context, s *session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// sessionFrom returns the session of the run executing cmd.
func sessionFrom(cmd *cobra.Command) *session {
	return cmd.Context().Value(sessionKey{}).(*session)
}

func (s *session) relayed() bool { return s.relayTo != "" }

func (s *session) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, errors.ErrValidation, "load configuration")
	}
	s.cfg = cfg
	s.verbosity, _ = cmd.Flags().GetCount("verbose")
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor || s.relayed() {
		color.NoColor = true
	}
	logging.SetupLogger(s.verbosity, cmd.ErrOrStderr(), cfg.Log.File)
	s.log = logging.GetLogger("cmd")
	detect := s.detect
	if detect == nil {
		detect = detectState
	}
	s.state = detect()
	s.locator = &singleton.TCPLocator{
		Address: cfg.Singleton.Address,
		Log:     logging.GetLogger("singleton"),
	}
	s.log.Debug().
		Str("command", cmd.CommandPath()).
		Str("privilege", s.state.String()).
		Bool("relayed", s.relayed()).
		Str("backend", cfg.Store.Backend).
		Msg("session ready")
	return nil
}

func (s *session) close() {
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			s.log.Debug().Err(err).Msg("closing history journal")
		}
		s.journal = nil
	}
}

// openStore returns the store wired with the journal and change notifiers.
func (s *session) openStore() (*envstore.Store, error) {
	if s.store != nil {
		return s.store, nil
	}
	b, err := openBackend(s.cfg.Store.Backend, s.cfg.Store.File)
	if err != nil {
		return nil, err
	}
	opts := []envstore.Option{
		envstore.WithLogger(logging.GetLogger("envstore")),
		envstore.WithNotifiers(systemNotifier(), singleton.RefreshNotifier(s.locator)),
	}
	if j := s.openJournal(); j != nil {
		opts = append(opts, envstore.WithJournal(j))
	}
	s.store = envstore.New(b, opts...)
	return s.store, nil
}

// openJournal is requireJournal for writers: a journal that cannot be
// opened disables history for this run and is not fatal.
func (s *session) openJournal() *history.Journal {
	if !s.cfg.History.Enabled {
		return nil
	}
	j, err := s.requireJournal()
	if err != nil {
		s.log.Warn().Err(err).Msg("history journal unavailable, changes will not be recorded")
		return nil
	}
	return j
}

func (s *session) requiresElevation(scope envstore.Scope, op privilege.Operation) bool {
	return privilege.RequiresElevation(s.state, scope, op)
}

func (s *session) gate() *privilege.Gate {
	exe, err := executable()
	if err != nil {
		s.log.Debug().Err(err).Msg("cannot resolve executable, the gate will retry")
		exe = ""
	}
	return &privilege.Gate{
		State:      s.state,
		Launcher:   newLauncher(),
		Executable: exe,
		RelayDir:   s.cfg.Relay.Dir,
		Interval:   s.cfg.Relay.PollInterval,
		Log:        logging.GetLogger("privilege"),
	}
}

// elevate reruns args in an elevated child and relays its output to the
// command's stdout. A non-zero child exit becomes an ExitError, since the
// child has already reported it.
func (s *session) elevate(cmd *cobra.Command, op privilege.Operation, args []string) error {
	s.log.Info().Str("operation", op.String()).Msg("administrator rights required")
	childArgs := append(s.forwardedFlags(), args...)
	code, err := s.gate().Elevate(cmd.Context(), childArgs, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if code != errors.ExitOK {
		return &errors.ExitError{Code: code}
	}
	return nil
}

// forwardedFlags repeats the global flags for an elevated child.
func (s *session) forwardedFlags() []string {
	var out []string
	if s.verbosity > 0 {
		out = append(out, "-"+strings.Repeat("v", s.verbosity))
	}
	return out
}

// resolveEntry turns a path argument into the entry to store. Entries with
// %VAR% references are kept as written; everything else is made absolute.
func resolveEntry(arg string) (string, error) {
	p := strings.TrimSpace(arg)
	if p == "" {
		return "", errors.New(errors.ErrValidation, "a directory path is required")
	}
	if strings.Contains(p, "%") {
		return p, nil
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrValidation, "invalid path %q", p)
	}
	return abs, nil
}

func requireDirectory(entry string) error {
	fi, err := os.Stat(viewer.ExpandEntry(entry))
	if err != nil {
		return errors.Newf(errors.ErrValidation, "directory %s does not exist", entry)
	}
	if !fi.IsDir() {
		return errors.Newf(errors.ErrValidation, "%s is not a directory", entry)
	}
	return nil
}

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	infoMark = color.New(color.FgYellow).SprintFunc()
	dimText  = color.New(color.Faint).SprintFunc()
)

func printf(cmd *cobra.Command, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

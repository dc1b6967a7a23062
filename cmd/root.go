package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/VoxDroid/envpath/internal/errors"
	"github.com/VoxDroid/envpath/internal/relay"
)

var rootCmd = &cobra.Command{
	Use:   "envpath",
	Short: "Add and remove directories on the user and system PATH",
	Long: `envpath edits the persisted PATH of the current user or of the whole
machine. Changing the system PATH asks for administrator approval and shows
the elevated process's output in this console.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return sessionFrom(cmd).setup(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrValidation, "invalid arguments")
	})
}

// Execute runs envpath with the process arguments and returns its exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return runSession(&session{}, args, stdin, stdout, stderr)
}

// runSession executes one invocation with s as its session. Runs share the
// command tree, so they must not overlap.
func runSession(s *session, args []string, stdin io.Reader, stdout, stderr io.Writer) (code int) {
	channel, rest := relay.StripArgs(args)
	s.relayTo = channel
	defer s.close()

	out, errOut := stdout, stderr
	if channel != "" {
		w := relay.NewWriter(channel)
		out, errOut = w, w
		// a relayed child has no console of its own, so a crash must still
		// reach the parent
		defer func() {
			if r := recover(); r != nil {
				_, _ = fmt.Fprintf(errOut, "panic: %v\n%s", r, debug.Stack())
				code = errors.ExitUnexpected
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	resetCommands(withSession(ctx, s), rootCmd)
	rootCmd.SetArgs(rest)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	err := rootCmd.Execute()
	return report(err, errOut, channel != "")
}

// resetCommands restores every flag to its default and gives every command
// ctx, so repeated runs in one process start clean. cobra only hands the
// root context to a subcommand that has none yet.
func resetCommands(ctx context.Context, c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	c.SetContext(ctx)
	for _, sub := range c.Commands() {
		resetCommands(ctx, sub)
	}
}

// report prints err and maps it to an exit code. Unexpected errors carry
// their full cause chain only in a relayed child, whose console is gone.
func report(err error, w io.Writer, relayed bool) int {
	if err == nil {
		return errors.ExitOK
	}
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.GetErrorCode(err) == errors.ErrUnknown && isUsageError(err) {
		err = errors.Wrap(err, errors.ErrValidation, "invalid arguments")
	}
	code := errors.ExitCode(err)
	prefix := color.New(color.FgRed, color.Bold).Sprint("error:")
	if relayed && code == errors.ExitUnexpected {
		_, _ = fmt.Fprintf(w, "%s %s\n", prefix, errors.Detail(err))
		return code
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", prefix, userMessage(err))
	return code
}

func isUsageError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "accepts ") ||
		strings.HasPrefix(msg, "requires ") ||
		strings.Contains(msg, "invalid argument")
}

// userMessage is the one-line form of err.
func userMessage(err error) string {
	var e *errors.Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Wrapped != nil && (e.Code == errors.ErrUnexpected || e.Code == errors.ErrValidation) {
		return e.Message + ": " + e.Wrapped.Error()
	}
	return e.Message
}

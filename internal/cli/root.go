package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Neev4n/minishell/pkg/shell"
)

type flags struct {
	path          string
	home          string
	captureOutput bool
	noColor       bool
	noLineEditor  bool
}

func (f *flags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.path, "path", "", "colon separated command search path (default $PATH)")
	fs.StringVar(&f.home, "home", "", "home directory used by cd (default $HOME)")
	fs.BoolVar(&f.captureOutput, "capture-output", false, "buffer external command stdout and print it after the command exits")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored error messages")
	fs.BoolVar(&f.noLineEditor, "no-line-editor", false, "read plain lines even when stdin is a terminal")
}

// lookupEnv prefers values given on the command line.
func (f *flags) lookupEnv(cmd *cobra.Command) func(string) (string, bool) {
	return func(key string) (string, bool) {
		switch {
		case key == shell.EnvPath && cmd.Flags().Changed("path"):
			return f.path, true
		case key == shell.EnvHome && cmd.Flags().Changed("home"):
			return f.home, true
		}
		return os.LookupEnv(key)
	}
}

// NewRootCommand builds the shell command. Configuration errors come back as
// *StartupError so callers can abort before the loop starts.
func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:           "shell",
		Short:         "A minimal interactive command shell",
		Long: `Reads commands from stdin, runs the exit, echo, type, pwd and cd builtins, and finds everything else on PATH.

External commands are not connected to stdin, so interactive programs see end of file immediately.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := shell.LoadConfig(f.lookupEnv(cmd))
			if err != nil {
				return &StartupError{Err: err}
			}

			mode := shell.OutputInherit
			if f.captureOutput {
				mode = shell.OutputCapture
			}

			opts := shell.Options{
				Config:   cfg,
				Executor: shell.NewProcessExecutor(mode),
				Color:    !f.noColor && isTTY(stdout),
			}

			var s *shell.Shell
			if !f.noLineEditor && isTTY(stdin) {
				if s, err = shell.NewInteractive(stdin, stdout, stderr, opts); err != nil {
					return err
				}
			} else {
				s = shell.New(stdin, stdout, stderr, opts)
			}

			return s.Run(cmd.Context())
		},
	}

	f.bind(cmd.Flags())
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	return cmd
}

// StartupError marks a failure that happened before the first prompt.
type StartupError struct {
	Err error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("startup: %v", e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// Execute runs the root command against the process streams.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx)
}

func isTTY(v interface{}) bool {
	f, ok := v.(*os.File)
	return ok && shell.IsTerminal(f.Fd())
}

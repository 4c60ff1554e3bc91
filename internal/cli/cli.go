package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vk/officegraph/internal/app"
)

// Exit codes.
const (
	ExitProblems = 1
	ExitUsage    = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// options are the flags shared by every command.
type options struct {
	logLevel  string
	logFormat string
	noColor   bool
}

// NewRootCommand builds the officegraph command tree writing results to out
// and logs to errW.
func NewRootCommand(out, errW io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "officegraph",
		Short: "Validate, compile, format and edit office configuration files",
		Long: highlight("Usage: officegraph <command> [paths...]") + "\n\n" +
			"officegraph loads office graphs from HCL files, resolves their connections\n" +
			"and compiles them into runtime wiring.\n",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetOut(out)
	cmd.SetErr(errW)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	_, noColor := os.LookupEnv("NO_COLOR")
	flags.BoolVar(&opts.noColor, "no-color", noColor, "Disable colored output. Also set by NO_COLOR.")

	cmd.AddCommand(
		newValidateCommand(opts),
		newCompileCommand(opts),
		newFormatCommand(opts),
		newRenameCommand(opts),
		newRemoveCommand(opts),
	)
	return cmd
}

// Run executes the command line args. Usage problems are returned as an
// ExitError with ExitUsage.
func Run(ctx context.Context, args []string, out, errW io.Writer) error {
	cmd := NewRootCommand(out, errW)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: ExitUsage, Message: err.Error()}
}

// newApp validates the flags into an app configuration.
func newApp(cmd *cobra.Command, opts *options, cfg app.Config) (*app.App, error) {
	cfg.LogLevel = opts.logLevel
	cfg.LogFormat = opts.logFormat
	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	return app.NewApp(cmd.ErrOrStderr(), config), nil
}

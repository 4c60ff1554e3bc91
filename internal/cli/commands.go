package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vk/officegraph/internal/app"
	"github.com/vk/officegraph/internal/model"
)

func newValidateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <paths...>",
		Short: "Check that office files resolve and compile without issues",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, app.Config{Paths: args})
			if err != nil {
				return err
			}
			results, err := a.Compile(cmd.Context())
			if err != nil {
				return failed(err)
			}
			return newView(cmd.OutOrStdout(), opts.noColor).summary(results)
		},
	}
}

func newCompileCommand(opts *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "compile <paths...>",
		Short: "Compile office files and print the resulting architect calls",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, app.Config{Paths: args, Output: output})
			if err != nil {
				return err
			}
			results, err := a.Compile(cmd.Context())
			if err != nil {
				return failed(err)
			}
			v := newView(cmd.OutOrStdout(), opts.noColor)
			if a.Config().Output != app.OutputYAML {
				v.calls(results)
				return v.summary(results)
			}
			if err := v.yaml(results); err != nil {
				return failed(err)
			}
			// Keep stdout a valid YAML stream.
			return newView(cmd.ErrOrStderr(), opts.noColor).summary(results)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", app.OutputText, "Output format. One of: (text | yaml)")
	return cmd
}

func newFormatCommand(opts *options) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "fmt <paths...>",
		Short: "Rewrite office files in canonical form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, app.Config{Paths: args, Write: write})
			if err != nil {
				return err
			}
			formatted, err := a.Format(cmd.Context())
			if err != nil {
				return failed(err)
			}
			out := cmd.OutOrStdout()
			for _, f := range formatted {
				switch {
				case !write:
					fmt.Fprint(out, string(f.Content))
				case f.Changed:
					fmt.Fprintln(out, f.Path)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the files instead of printing it.")
	return cmd
}

func newRenameCommand(opts *options) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "rename <file> <kind> <path> <new-name>",
		Short: "Rename a node of an office file",
		Long: "Rename a node of an office file. Owned nodes are addressed through their owner,\n" +
			"for example 'orders.place' for the input place of section orders.",
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := model.ParseNodeKind(args[1])
			if err != nil {
				return err
			}
			return runEdit(cmd, opts, args[0], dryRun, app.Rename(kind, args[2], args[3]))
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print the edited office instead of writing it.")
	return cmd
}

func newRemoveCommand(opts *options) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "remove <file> <kind> <paths...>",
		Short: "Remove nodes and their connections from an office file",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := model.ParseNodeKind(args[1])
			if err != nil {
				return err
			}
			var edits []app.Edit
			for _, path := range args[2:] {
				edits = append(edits, app.Remove(kind, path))
			}
			return runEdit(cmd, opts, args[0], dryRun, edits...)
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print the edited office instead of writing it.")
	return cmd
}

// runEdit applies edits to file and reports the outcome.
func runEdit(cmd *cobra.Command, opts *options, file string, dryRun bool, edits ...app.Edit) error {
	a, err := newApp(cmd, opts, app.Config{Paths: []string{file}, Write: !dryRun})
	if err != nil {
		return err
	}
	result, err := a.Edit(cmd.Context(), edits...)
	if err != nil {
		return failed(err)
	}
	v := newView(cmd.OutOrStdout(), opts.noColor)
	if dryRun {
		fmt.Fprint(cmd.OutOrStdout(), string(result.Content))
		v = newView(cmd.ErrOrStderr(), opts.noColor)
	}
	return v.edited(result, len(edits))
}

// failed reports an error that stopped a command after its arguments were
// accepted.
func failed(err error) error {
	return &ExitError{Code: ExitProblems, Message: err.Error()}
}

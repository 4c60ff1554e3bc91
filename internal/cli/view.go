package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/vk/officegraph/internal/app"
)

// view renders results, optionally with color.
type view struct {
	out  io.Writer
	ok   *color.Color
	bad  *color.Color
	head *color.Color
}

func newView(out io.Writer, noColor bool) *view {
	v := &view{
		out:  out,
		ok:   color.New(color.FgGreen),
		bad:  color.New(color.FgRed),
		head: color.RGB(50, 108, 229),
	}
	if noColor {
		v.ok.DisableColor()
		v.bad.DisableColor()
		v.head.DisableColor()
	}
	return v
}

// highlight renders text in the heading color.
func highlight(format string, a ...any) string {
	return color.RGB(50, 108, 229).Sprintf(format, a...)
}

// summary prints one line per file followed by its problems. It returns an
// ExitError when any file has problems.
func (v *view) summary(results []*app.FileResult) error {
	failed := 0
	for _, r := range results {
		if r.OK() {
			v.ok.Fprintf(v.out, "✓ %s\n", r.Path)
			continue
		}
		failed++
		problems := r.Problems()
		v.bad.Fprintf(v.out, "✗ %s (%d problems)\n", r.Path, len(problems))
		for _, p := range problems {
			fmt.Fprintf(v.out, "    %s\n", p)
		}
	}
	if failed > 0 {
		return &ExitError{Code: ExitProblems, Message: fmt.Sprintf("%d of %d office files have problems", failed, len(results))}
	}
	return nil
}

// calls prints the architect calls of every file.
func (v *view) calls(results []*app.FileResult) {
	for _, r := range results {
		v.head.Fprintf(v.out, "# %s\n", r.Path)
		for _, c := range r.Architect.Calls {
			line := c.Op
			if c.Handle != "" {
				line += " " + c.Handle
			}
			keys := make([]string, 0, len(c.Args))
			for k := range c.Args {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			var args []string
			for _, k := range keys {
				args = append(args, k+"="+c.Args[k])
			}
			if len(args) > 0 {
				line += " " + strings.Join(args, " ")
			}
			fmt.Fprintln(v.out, line)
		}
	}
}

// yaml prints the architect calls of every file as YAML documents.
func (v *view) yaml(results []*app.FileResult) error {
	for i, r := range results {
		data, err := r.Architect.YAML()
		if err != nil {
			return fmt.Errorf("%s: %w", r.Path, err)
		}
		if i > 0 {
			fmt.Fprintln(v.out, "---")
		}
		fmt.Fprintf(v.out, "# %s\n%s", r.Path, data)
	}
	return nil
}

// edited prints the changes applied to a file and the edits that were
// skipped. It returns an ExitError when any of the total edits was skipped.
func (v *view) edited(r *app.EditResult, total int) error {
	for _, d := range r.Dropped {
		v.bad.Fprintf(v.out, "! dropped connection %s\n", d)
	}
	for _, e := range r.Applied {
		v.ok.Fprintf(v.out, "✓ %s\n", e.Change.Description())
	}
	for _, s := range r.Skipped {
		v.bad.Fprintf(v.out, "✗ %s\n", s)
	}
	if r.Written {
		v.head.Fprintf(v.out, "# %s\n", r.Path)
	}
	if len(r.Skipped) > 0 {
		return &ExitError{Code: ExitProblems, Message: fmt.Sprintf("%d of %d edits did not apply", len(r.Skipped), total)}
	}
	return nil
}

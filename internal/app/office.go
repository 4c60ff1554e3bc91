package app

import (
	"bytes"
	"context"
	"fmt"

	"github.com/vk/officegraph/internal/architect"
	"github.com/vk/officegraph/internal/compiler"
	"github.com/vk/officegraph/internal/ctxlog"
	"github.com/vk/officegraph/internal/model"
	"github.com/vk/officegraph/internal/persist"
	"github.com/vk/officegraph/internal/resolver"
)

// FileResult is the outcome of loading and compiling one office file.
type FileResult struct {
	Path string
	// Dropped lists connections whose target could not be found.
	Dropped []resolver.Dropped
	// Issues lists problems reported while compiling.
	Issues []string
	// Architect holds the calls the compilation made.
	Architect *architect.Recorder
}

// OK reports whether the file loaded and compiled cleanly.
func (r *FileResult) OK() bool {
	return len(r.Dropped) == 0 && len(r.Issues) == 0
}

// Problems lists dropped connections and compile issues as messages.
func (r *FileResult) Problems() []string {
	var out []string
	for _, d := range r.Dropped {
		out = append(out, "dropped connection "+d.String())
	}
	return append(out, r.Issues...)
}

// Compile loads every configured office file and compiles it into a
// recorder. A file that can not be decoded stops the run with an error;
// dropped connections and compile issues are reported in the results.
func (a *App) Compile(ctx context.Context) ([]*FileResult, error) {
	ctx = a.withLogger(ctx)
	logger := ctxlog.FromContext(ctx)

	files, err := a.files()
	if err != nil {
		return nil, err
	}

	results := make([]*FileResult, 0, len(files))
	for _, path := range files {
		o := model.NewOffice()
		report, err := a.repo.Retrieve(ctx, o, persist.FileItem{Path: path})
		if err != nil {
			return nil, err
		}

		rec := architect.NewRecorder(a.metrics)
		res := compiler.Compile(ctx, o, rec)
		result := &FileResult{Path: path, Dropped: report.Dropped, Issues: res.Issues, Architect: rec}
		logger.Info("App: Office compiled.", "path", path, "dropped", len(result.Dropped), "issues", len(result.Issues))
		results = append(results, result)
	}
	return results, nil
}

// Formatted is one office file in canonical form.
type Formatted struct {
	Path    string
	Content []byte
	// Changed reports whether the content differs from the file.
	Changed bool
}

// Format renders every configured office file in canonical form. With Write
// set the changed files are replaced in place.
func (a *App) Format(ctx context.Context) ([]Formatted, error) {
	ctx = a.withLogger(ctx)
	files, err := a.files()
	if err != nil {
		return nil, err
	}

	out := make([]Formatted, 0, len(files))
	for _, path := range files {
		item := persist.FileItem{Path: path}
		src, err := item.Read(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		formatted, err := a.codec.Format(ctx, src, path)
		if err != nil {
			return nil, err
		}
		changed := !bytes.Equal(src, formatted)
		if a.config.Write && changed {
			if err := item.Write(ctx, formatted); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", path, err)
			}
			ctxlog.FromContext(ctx).Info("App: Office file formatted.", "path", path)
		}
		out = append(out, Formatted{Path: path, Content: formatted, Changed: changed})
	}
	return out, nil
}

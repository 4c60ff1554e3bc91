package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/officegraph/internal/change"
	"github.com/vk/officegraph/internal/ctxlog"
	"github.com/vk/officegraph/internal/model"
	"github.com/vk/officegraph/internal/office"
	"github.com/vk/officegraph/internal/persist"
	"github.com/vk/officegraph/internal/resolver"
)

// Edit builds one change against the office behind ops.
type Edit func(ops *office.Operations) change.Change

// Rename returns an edit renaming the node of the given kind at path.
func Rename(kind model.NodeKind, path, name string) Edit {
	return func(ops *office.Operations) change.Change {
		n, ok := ops.Office().Find(kind, path)
		if !ok {
			return change.Nonef[model.Node](nil, "%s %s is not in the office", kind, path)
		}
		return ops.Rename(n, name)
	}
}

// Remove returns an edit removing the node of the given kind at path,
// together with everything it owns and every connection it takes part in.
func Remove(kind model.NodeKind, path string) Edit {
	return func(ops *office.Operations) change.Change {
		o := ops.Office()
		n, ok := o.Find(kind, path)
		if !ok {
			return change.Nonef[model.Node](nil, "%s %s is not in the office", kind, path)
		}
		owner, _, _ := strings.Cut(path, ".")
		section := func() *model.Section {
			s, _ := model.FindByName(o.Sections, owner)
			return s
		}

		switch n := n.(type) {
		case *model.Section:
			return ops.RemoveSection(n)
		case *model.SectionInput:
			return ops.RemoveSectionInput(section(), n)
		case *model.SectionOutput:
			return ops.RemoveSectionOutput(section(), n)
		case *model.SectionObject:
			return ops.RemoveSectionObject(section(), n)
		case *model.ManagedObjectSource:
			return ops.RemoveManagedObjectSource(n)
		case *model.ManagedObject:
			return ops.RemoveManagedObject(n)
		case *model.ManagedObjectDependency:
			mo, _ := model.FindByName(o.ManagedObjects, owner)
			return ops.RemoveManagedObjectDependency(mo, n)
		case *model.ExternalManagedObject:
			return ops.RemoveExternalManagedObject(n)
		case *model.Team:
			return ops.RemoveTeam(n)
		case *model.Administration:
			return ops.RemoveAdministration(n)
		case *model.Governance:
			return ops.RemoveGovernance(n)
		case *model.Escalation:
			return ops.RemoveEscalation(n)
		case *model.Start:
			return ops.RemoveStart(n)
		}
		return change.Nonef(n, "Can not remove a %s on its own", kind)
	}
}

// EditResult is the outcome of editing one office file.
type EditResult struct {
	Path string
	// Applied lists the changes made, oldest first.
	Applied []change.Entry
	// Skipped describes the edits that did not apply to the office.
	Skipped []string
	// Dropped lists connections lost while loading the file. They are not
	// written back.
	Dropped []resolver.Dropped
	// Content is the edited office in canonical form.
	Content []byte
	// Written reports whether Content replaced the file.
	Written bool
}

// Edit loads the single configured office file and applies edits in order.
// The result is written back when Write is set and anything changed. If an
// edit fails, the edits applied before it are undone and nothing is written.
func (a *App) Edit(ctx context.Context, edits ...Edit) (*EditResult, error) {
	ctx = a.withLogger(ctx)
	logger := ctxlog.FromContext(ctx)

	files, err := a.files()
	if err != nil {
		return nil, err
	}
	if len(files) != 1 {
		return nil, fmt.Errorf("editing needs exactly one office file, found %d", len(files))
	}
	path := files[0]
	file := persist.FileItem{Path: path}

	o := model.NewOffice()
	report, err := a.repo.Retrieve(ctx, o, file)
	if err != nil {
		return nil, err
	}

	ops := office.New(o)
	history := change.NewHistory(a.metrics)
	result := &EditResult{Path: path, Dropped: report.Dropped}
	for _, edit := range edits {
		c := edit(ops)
		if change.IsNoChange(c) {
			logger.Info("App: Edit skipped.", "path", path, "reason", c.Description())
			result.Skipped = append(result.Skipped, c.Description())
			continue
		}
		entry, err := history.Do(c)
		if err != nil {
			rollback(ctx, history)
			return nil, fmt.Errorf("failed to edit %s: %w", path, err)
		}
		logger.Debug("App: Edit applied.", "path", path, "id", entry.ID.String(), "change", c.Description())
		result.Applied = append(result.Applied, entry)
	}

	var sink persist.ConfigurationItem = persist.NewMemoryItem(path, nil)
	if a.config.Write && history.CanUndo() {
		sink = file
		result.Written = true
	}
	if err := a.repo.Store(ctx, o, sink); err != nil {
		return nil, err
	}
	if result.Content, err = sink.Read(ctx); err != nil {
		return nil, fmt.Errorf("failed to read back %s: %w", path, err)
	}
	logger.Info("App: Office edited.", "path", path, "applied", len(result.Applied), "skipped", len(result.Skipped), "written", result.Written)
	return result, nil
}

// rollback undoes every change recorded in h, newest first.
func rollback(ctx context.Context, h *change.History) {
	for h.CanUndo() {
		if _, err := h.Undo(); err != nil {
			ctxlog.FromContext(ctx).Error("App: Failed to undo edit.", "error", err)
			return
		}
	}
}

package change

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/officegraph/internal/metrics"
)

var (
	// ErrNothingToUndo is returned by Undo on an empty history.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNothingToRedo is returned by Redo when no change was undone.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Entry is a change recorded in a History.
type Entry struct {
	ID     uuid.UUID
	Change Change
}

// History applies changes and keeps them for undo and redo. It is not safe
// for concurrent use.
type History struct {
	done    []Entry
	undone  []Entry
	metrics *metrics.Metrics
}

// NewHistory returns an empty history. m may be nil.
func NewHistory(m *metrics.Metrics) *History {
	return &History{metrics: m}
}

// Do applies c and records it. Applying a new change discards anything that
// was undone. A NoChange is applied but not recorded; the returned Entry then
// has a nil ID.
func (h *History) Do(c Change) (Entry, error) {
	if IsNoChange(c) {
		return Entry{Change: c}, nil
	}
	if err := c.Apply(); err != nil {
		return Entry{}, err
	}
	h.metrics.ObserveApply()
	entry := Entry{ID: uuid.New(), Change: c}
	h.done = append(h.done, entry)
	h.undone = nil
	return entry, nil
}

// Undo reverts the most recent change.
func (h *History) Undo() (Entry, error) {
	if len(h.done) == 0 {
		return Entry{}, ErrNothingToUndo
	}
	entry := h.done[len(h.done)-1]
	if err := entry.Change.Revert(); err != nil {
		return Entry{}, fmt.Errorf("undo %s: %w", entry.ID, err)
	}
	h.metrics.ObserveRevert()
	h.done = h.done[:len(h.done)-1]
	h.undone = append(h.undone, entry)
	return entry, nil
}

// Redo re-applies the most recently undone change.
func (h *History) Redo() (Entry, error) {
	if len(h.undone) == 0 {
		return Entry{}, ErrNothingToRedo
	}
	entry := h.undone[len(h.undone)-1]
	if err := entry.Change.Apply(); err != nil {
		return Entry{}, fmt.Errorf("redo %s: %w", entry.ID, err)
	}
	h.metrics.ObserveApply()
	h.undone = h.undone[:len(h.undone)-1]
	h.done = append(h.done, entry)
	return entry, nil
}

// Entries returns the applied changes, oldest first.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.done))
	copy(out, h.done)
	return out
}

// CanUndo reports whether Undo has anything to revert.
func (h *History) CanUndo() bool { return len(h.done) > 0 }

// CanRedo reports whether Redo has anything to re-apply.
func (h *History) CanRedo() bool { return len(h.undone) > 0 }

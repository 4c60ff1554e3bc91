package office

import (
	"fmt"
	"slices"

	"github.com/vk/officegraph/internal/change"
	"github.com/vk/officegraph/internal/model"
)

// node is a graph node usable as a list element and map key.
type node interface {
	comparable
	model.Node
}

// Operations builds changes against a single office graph. Like the graph
// itself it is not safe for concurrent use.
type Operations struct {
	office *model.Office
}

// New returns the operations over o.
func New(o *model.Office) *Operations {
	if o.Names == nil {
		o.Names = model.NewNameAllocator()
	}
	return &Operations{office: o}
}

// Office returns the graph the operations act on.
func (ops *Operations) Office() *model.Office { return ops.office }

// cascade collects one disconnect change per live connection, never
// disconnecting the same connection twice. Sections whose functions lose a
// link are cleaned afterwards, as DisconnectFunction does.
type cascade struct {
	office   *model.Office
	seen     map[*model.Connection]bool
	removed  map[model.Node]bool
	cleaned  map[*model.Section]bool
	sections []*model.Section
	pending  []change.Change
}

func newCascade(o *model.Office) *cascade {
	return &cascade{
		office:  o,
		seen:    make(map[*model.Connection]bool),
		removed: make(map[model.Node]bool),
		cleaned: make(map[*model.Section]bool),
	}
}

// disconnect queues the live connections of each node in list order. The
// nodes are taken to be removed along with their connections.
func (c *cascade) disconnect(nodes ...model.Node) {
	for _, n := range nodes {
		c.removed[n] = true
	}
	for _, n := range nodes {
		for _, conn := range n.Endpoint().Live() {
			if c.seen[conn] {
				continue
			}
			c.seen[conn] = true
			c.pending = append(c.pending, disconnectChange(conn))
			c.touch(conn)
		}
	}
}

// touch records the section of a surviving function losing conn.
func (c *cascade) touch(conn *model.Connection) {
	fn, ok := conn.Source().(*model.Function)
	if !ok || c.removed[fn] {
		return
	}
	loc, ok := c.office.LocateFunction(fn)
	if !ok || c.removed[loc.Section] || c.cleaned[loc.Section] {
		return
	}
	c.cleaned[loc.Section] = true
	c.sections = append(c.sections, loc.Section)
}

// take returns the queued disconnects followed by the clean up of touched
// sections, and clears the queue.
func (c *cascade) take() []change.Change {
	out := c.pending
	for _, s := range c.sections {
		out = append(out, cleanSection(s, c.seen)...)
	}
	c.pending = nil
	c.sections = nil
	return out
}

func disconnectChange(conn *model.Connection) *change.Primitive[*model.Connection] {
	return change.New(conn, "Disconnect "+conn.String(), &change.Unlink{Conn: conn})
}

// addNode inserts item into a sorted sibling list.
func addNode[T node](list *[]T, item T, what string) change.Typed[T] {
	name := item.NodeName()
	if name == "" {
		return change.Nonef(item, "Can not add %s without a name", what)
	}
	if _, taken := model.FindByName(*list, name); taken {
		return change.Nonef(item, "%s %s already exists", what, name)
	}
	return change.New(item, fmt.Sprintf("Add %s %s", what, name), &change.Insert[T]{List: list, Item: item})
}

// removeNode disconnects item and everything it owns, then drops it from
// its sibling list.
func removeNode[T node](o *model.Office, list *[]T, item T, what string) change.Typed[T] {
	var zero T
	if item == zero {
		return change.Nonef(item, "Can not remove a missing %s", what)
	}
	desc := fmt.Sprintf("Remove %s %s", what, item.NodeName())
	if !slices.Contains(*list, item) {
		return change.Nonef(item, "%s %s is not in the office", what, item.NodeName())
	}
	c := newCascade(o)
	c.disconnect(model.Subtree(item)...)
	changes := append(c.take(), change.New(item, desc, &change.Remove[T]{List: list, Item: item}))
	return change.Compose(item, desc, changes...)
}

// nameOf returns the name of n, or "nothing" for a nil node.
func nameOf[T node](n T) string {
	var zero T
	if n == zero {
		return "nothing"
	}
	return n.NodeName()
}

// rename sets the name of item and re-sorts its sibling list.
func rename[T node](list *[]T, item T, field *string, name, what string) change.Typed[model.Node] {
	if !slices.Contains(*list, item) {
		return change.Nonef[model.Node](item, "%s %s is not in the office", what, nameOf(item))
	}
	if name == "" {
		return change.Nonef[model.Node](item, "Can not rename %s %s to an empty name", what, *field)
	}
	if *field == name {
		return change.Nonef[model.Node](item, "%s %s is already named %s", what, *field, name)
	}
	if _, taken := model.FindByName(*list, name); taken {
		return change.Nonef[model.Node](item, "%s %s already exists", what, name)
	}
	return change.New[model.Node](item, fmt.Sprintf("Rename %s %s to %s", what, *field, name), change.Sequence{
		&change.Assign[string]{Ptr: field, After: name},
		&change.Resort[T]{List: list},
	})
}

// sectionOf returns the section owning an input, output or object.
func (ops *Operations) sectionOf(n model.Node) *model.Section {
	for _, s := range ops.office.Sections {
		switch n := n.(type) {
		case *model.SectionInput:
			if slices.Contains(s.Inputs, n) {
				return s
			}
		case *model.SectionOutput:
			if slices.Contains(s.Outputs, n) {
				return s
			}
		case *model.SectionObject:
			if slices.Contains(s.Objects, n) {
				return s
			}
		}
	}
	return nil
}

// refOf is the persisted name of a connection target.
func (ops *Operations) refOf(target model.Node) model.Ref {
	if in, ok := target.(*model.SectionInput); ok {
		if s := ops.sectionOf(in); s != nil {
			return model.Ref{Parent: s.Name, Name: in.Name}
		}
	}
	return model.Ref{Name: target.NodeName()}
}

func describe(n model.Node) string {
	if model.IsNil(n) {
		return "nothing"
	}
	return fmt.Sprintf("%s %s", n.Kind(), n.NodeName())
}

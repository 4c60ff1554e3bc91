package office

import (
	"fmt"
	"slices"

	"github.com/vk/officegraph/internal/change"
	"github.com/vk/officegraph/internal/model"
)

// LinkFunction links the function at path within section s to target. Any
// part of the path that does not exist yet is created when the change is
// applied and removed again when it is reverted.
func (ops *Operations) LinkFunction(s *model.Section, path model.FunctionPath, kind model.EdgeKind, target model.Node) change.Typed[*model.Connection] {
	conn := model.NewConnection(kind, model.Ref{})
	if target == nil || !kind.Joins(model.KindFunction, target.Kind()) {
		return change.Nonef(conn, "Can not link a function to %s as %s", describe(target), kind)
	}
	if path.Function == "" {
		return change.Nonef(conn, "Can not link a function without a name")
	}
	if !slices.Contains(ops.office.Sections, s) {
		return change.Nonef(conn, "section %s is not in the office", nameOf(s))
	}
	if !ops.office.Contains(target) {
		return change.Nonef(conn, "%s is not in the office", describe(target))
	}
	if fn, ok := path.Resolve(s); ok {
		for _, existing := range fn.Outgoing(kind) {
			if existing.Target() == target {
				return change.Nonef(conn, "Function %s.%s is already linked to %s", s.Name, path, describe(target))
			}
		}
	}
	conn.To = ops.refOf(target)
	desc := fmt.Sprintf("Link function %s.%s to %s", s.Name, path, describe(target))
	return change.New(conn, desc, &attach{section: s, path: path, conn: conn, target: target})
}

// attach materializes a function path and connects the function.
type attach struct {
	section *model.Section
	path    model.FunctionPath
	conn    *model.Connection
	target  model.Node

	// Nodes built by the first run are reused by later runs, so changes
	// recorded after this one keep referring to live nodes across undo and
	// redo.
	root       *model.SubSection
	chain      *model.SubSection
	chainEnd   *model.SubSection
	chainDepth int
	fn         *model.Function

	createdRoot bool
	chainParent *model.SubSection
	chainBefore []*model.SubSection
	fnParent    *model.SubSection
	fnBefore    []*model.Function
	replaced    []*change.Unlink
}

func (a *attach) Run(d change.Direction) error {
	if d == change.Backward {
		a.undo()
		return nil
	}
	a.createdRoot, a.chainParent, a.fnParent, a.replaced = false, nil, nil, nil

	sub := a.section.SubSection
	if sub == nil {
		if a.root == nil {
			a.root = &model.SubSection{}
		}
		sub = a.root
		a.section.SubSection = sub
		a.createdRoot = true
	}

	depth := 0
	for _, name := range a.path.SubSections {
		next, ok := model.FindByName(sub.SubSections, name)
		if !ok {
			break
		}
		sub = next
		depth++
	}
	if depth < len(a.path.SubSections) {
		if a.chain == nil || a.chainDepth != depth {
			a.chain, a.chainEnd = newChain(a.path.SubSections[depth:])
			a.chainDepth = depth
		}
		a.chainParent = sub
		a.chainBefore = sub.SubSections
		next := append(slices.Clone(sub.SubSections), a.chain)
		model.SortByName(next)
		sub.SubSections = next
		sub = a.chainEnd
	}

	fn, ok := model.FindByName(sub.Functions, a.path.Function)
	if !ok {
		if a.fn == nil {
			a.fn = &model.Function{Name: a.path.Function}
		}
		fn = a.fn
		a.fnParent = sub
		a.fnBefore = sub.Functions
		next := append(slices.Clone(sub.Functions), fn)
		model.SortByName(next)
		sub.Functions = next
	}

	if a.conn.Kind.Single() {
		var held []*model.Connection
		for _, existing := range fn.Links {
			if existing.IsConnected() && existing.Kind.Single() {
				held = append(held, existing)
			}
		}
		for _, existing := range held {
			u := &change.Unlink{Conn: existing}
			if err := u.Run(change.Forward); err != nil {
				a.undo()
				return err
			}
			a.replaced = append(a.replaced, u)
		}
	}

	if err := a.conn.Connect(fn, a.target); err != nil {
		a.undo()
		return err
	}
	return nil
}

func (a *attach) undo() {
	a.conn.Remove()
	for i := len(a.replaced) - 1; i >= 0; i-- {
		_ = a.replaced[i].Run(change.Backward)
	}
	if a.fnParent != nil {
		a.fnParent.Functions = a.fnBefore
	}
	if a.chainParent != nil {
		a.chainParent.SubSections = a.chainBefore
	}
	if a.createdRoot {
		a.section.SubSection = nil
	}
	a.createdRoot, a.chainParent, a.fnParent, a.replaced = false, nil, nil, nil
}

// newChain builds nested sub-sections for names and returns the outermost
// and innermost.
func newChain(names []string) (first, last *model.SubSection) {
	first = &model.SubSection{Name: names[0]}
	last = first
	for _, name := range names[1:] {
		child := &model.SubSection{Name: name}
		last.SubSections = []*model.SubSection{child}
		last = child
	}
	return first, last
}

// DisconnectFunction removes a function's link and then cleans the
// function's section: every function left without links is removed, followed
// by every sub-section left empty, deepest first. Each removal is its own
// change.
func (ops *Operations) DisconnectFunction(conn *model.Connection) change.Typed[*model.Connection] {
	if conn == nil || !conn.IsConnected() {
		return change.Nonef(conn, "Connection is not connected")
	}
	unlink := disconnectChange(conn)
	fn, ok := conn.Source().(*model.Function)
	if !ok {
		return unlink
	}
	loc, ok := ops.office.LocateFunction(fn)
	if !ok {
		return unlink
	}
	cleanup := cleanSection(loc.Section, map[*model.Connection]bool{conn: true})
	if len(cleanup) == 0 {
		return unlink
	}
	return change.Compose(conn, unlink.Description(), append([]change.Change{unlink}, cleanup...)...)
}

// cleanSection plans the removal of unreferenced functions and dead
// sub-sections of s, treating the ignored connections as already
// disconnected.
func cleanSection(s *model.Section, ignore map[*model.Connection]bool) []change.Change {
	root := s.SubSection
	if root == nil {
		return nil
	}
	var changes []change.Change
	if cleanSubSection(root, ignore, &changes) {
		changes = append(changes, change.New(root, "Remove sub-sections of "+s.Name,
			&change.Assign[*model.SubSection]{Ptr: &s.SubSection}))
	}
	return changes
}

// cleanSubSection appends the removals for sub and reports whether sub is
// left empty.
func cleanSubSection(sub *model.SubSection, ignore map[*model.Connection]bool, changes *[]change.Change) bool {
	empty := true
	for _, child := range sub.SubSections {
		if cleanSubSection(child, ignore, changes) {
			*changes = append(*changes, change.New(child, "Remove sub-section "+child.Name,
				&change.Remove[*model.SubSection]{List: &sub.SubSections, Item: child}))
		} else {
			empty = false
		}
	}
	for _, fn := range sub.Functions {
		if referenced(fn, ignore) {
			empty = false
			continue
		}
		*changes = append(*changes, change.New(fn, "Remove function "+fn.Name,
			&change.Remove[*model.Function]{List: &sub.Functions, Item: fn}))
	}
	return empty
}

func referenced(fn *model.Function, ignore map[*model.Connection]bool) bool {
	for _, conn := range fn.Live() {
		if !ignore[conn] {
			return true
		}
	}
	return false
}

package office

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vk/officegraph/internal/change"
	"github.com/vk/officegraph/internal/model"
)

// SectionRefactor is the new shape of a section. The rename maps take an
// existing child name to its name in Type; children whose names are not
// mapped keep their name.
type SectionRefactor struct {
	Name            string
	SourceClassName string
	Location        string
	Properties      model.PropertyList
	Type            SectionType

	InputRenames  map[string]string
	OutputRenames map[string]string
	ObjectRenames map[string]string
}

// RefactorSection reconciles a section against a newly observed type.
// Children that survive keep their identity and connections; children that
// do not are disconnected and dropped.
func (ops *Operations) RefactorSection(s *model.Section, r SectionRefactor) change.Typed[*model.Section] {
	desc := "Refactor section " + nameOf(s)
	if !slices.Contains(ops.office.Sections, s) {
		return change.Nonef(s, "section %s is not in the office", nameOf(s))
	}
	if r.Name == "" {
		return change.Nonef(s, "%s: empty name", desc)
	}
	if other, ok := model.FindByName(ops.office.Sections, r.Name); ok && other != s {
		return change.Nonef(s, "%s: section %s already exists", desc, r.Name)
	}

	changes := []change.Change{
		change.New(s, "Change section "+s.Name, change.Sequence{
			&change.Assign[string]{Ptr: &s.Name, After: r.Name},
			&change.Assign[string]{Ptr: &s.SourceClassName, After: r.SourceClassName},
			&change.Assign[string]{Ptr: &s.Location, After: r.Location},
			&change.Assign[model.PropertyList]{Ptr: &s.Properties, After: r.Properties.Clone()},
			&change.Resort[*model.Section]{List: &ops.office.Sections},
		}),
	}

	c := newCascade(ops.office)
	inputs, err := refactorChildren(c, children[*model.SectionInput, InputType]{
		what:    "input",
		list:    &s.Inputs,
		target:  r.Type.Inputs,
		renames: r.InputRenames,
		name:    inputName,
		create:  func() *model.SectionInput { return &model.SectionInput{} },
		update: func(in *model.SectionInput, t InputType) change.Step {
			return change.Sequence{
				&change.Assign[string]{Ptr: &in.Name, After: t.Name},
				&change.Assign[string]{Ptr: &in.ParameterType, After: t.ParameterType},
			}
		},
	})
	if err != nil {
		return change.Nonef(s, "%s: %v", desc, err)
	}
	outputs, err := refactorChildren(c, children[*model.SectionOutput, OutputType]{
		what:    "output",
		list:    &s.Outputs,
		target:  r.Type.Outputs,
		renames: r.OutputRenames,
		name:    outputName,
		create:  func() *model.SectionOutput { return &model.SectionOutput{} },
		update: func(out *model.SectionOutput, t OutputType) change.Step {
			return change.Sequence{
				&change.Assign[string]{Ptr: &out.Name, After: t.Name},
				&change.Assign[string]{Ptr: &out.ArgumentType, After: t.ArgumentType},
				&change.Assign[bool]{Ptr: &out.EscalationOnly, After: t.EscalationOnly},
			}
		},
	})
	if err != nil {
		return change.Nonef(s, "%s: %v", desc, err)
	}
	objects, err := refactorChildren(c, children[*model.SectionObject, ObjectType]{
		what:    "object",
		list:    &s.Objects,
		target:  r.Type.Objects,
		renames: r.ObjectRenames,
		name:    objectName,
		create:  func() *model.SectionObject { return &model.SectionObject{} },
		update: func(obj *model.SectionObject, t ObjectType) change.Step {
			return change.Sequence{
				&change.Assign[string]{Ptr: &obj.Name, After: t.Name},
				&change.Assign[string]{Ptr: &obj.ObjectType, After: t.ObjectType},
				&change.Assign[string]{Ptr: &obj.TypeQualifier, After: t.TypeQualifier},
			}
		},
	})
	if err != nil {
		return change.Nonef(s, "%s: %v", desc, err)
	}

	changes = append(changes, inputs...)
	changes = append(changes, outputs...)
	changes = append(changes, objects...)
	return change.Compose(s, desc, changes...)
}

// ManagedObjectSourceRefactor is the new shape of a managed object source.
type ManagedObjectSourceRefactor struct {
	Name            string
	SourceClassName string
	Properties      model.PropertyList
	Timeout         string
	Type            ManagedObjectSourceType

	FlowRenames map[string]string
	TeamRenames map[string]string
}

// RefactorManagedObjectSource reconciles a managed object source against a
// newly observed type, keeping the identity of surviving flows and teams.
func (ops *Operations) RefactorManagedObjectSource(mos *model.ManagedObjectSource, r ManagedObjectSourceRefactor) change.Typed[*model.ManagedObjectSource] {
	desc := "Refactor managed object source " + nameOf(mos)
	if !slices.Contains(ops.office.ManagedObjectSources, mos) {
		return change.Nonef(mos, "managed object source %s is not in the office", nameOf(mos))
	}
	if r.Name == "" {
		return change.Nonef(mos, "%s: empty name", desc)
	}
	if other, ok := model.FindByName(ops.office.ManagedObjectSources, r.Name); ok && other != mos {
		return change.Nonef(mos, "%s: managed object source %s already exists", desc, r.Name)
	}

	changes := []change.Change{
		change.New(mos, "Change managed object source "+mos.Name, change.Sequence{
			&change.Assign[string]{Ptr: &mos.Name, After: r.Name},
			&change.Assign[string]{Ptr: &mos.SourceClassName, After: r.SourceClassName},
			&change.Assign[model.PropertyList]{Ptr: &mos.Properties, After: r.Properties.Clone()},
			&change.Assign[string]{Ptr: &mos.Timeout, After: r.Timeout},
			&change.Resort[*model.ManagedObjectSource]{List: &ops.office.ManagedObjectSources},
		}),
	}

	c := newCascade(ops.office)
	flows, err := refactorChildren(c, children[*model.ManagedObjectSourceFlow, FlowType]{
		what:    "flow",
		list:    &mos.Flows,
		target:  r.Type.Flows,
		renames: r.FlowRenames,
		name:    flowName,
		create:  func() *model.ManagedObjectSourceFlow { return &model.ManagedObjectSourceFlow{} },
		update: func(f *model.ManagedObjectSourceFlow, t FlowType) change.Step {
			return change.Sequence{
				&change.Assign[string]{Ptr: &f.Name, After: t.Name},
				&change.Assign[string]{Ptr: &f.ArgumentType, After: t.ArgumentType},
			}
		},
	})
	if err != nil {
		return change.Nonef(mos, "%s: %v", desc, err)
	}
	teams, err := refactorChildren(c, children[*model.ManagedObjectSourceTeam, TeamType]{
		what:    "team",
		list:    &mos.Teams,
		target:  r.Type.Teams,
		renames: r.TeamRenames,
		name:    teamName,
		create:  func() *model.ManagedObjectSourceTeam { return &model.ManagedObjectSourceTeam{} },
		update: func(team *model.ManagedObjectSourceTeam, t TeamType) change.Step {
			return &change.Assign[string]{Ptr: &team.Name, After: t.Name}
		},
	})
	if err != nil {
		return change.Nonef(mos, "%s: %v", desc, err)
	}

	changes = append(changes, flows...)
	changes = append(changes, teams...)
	return change.Compose(mos, desc, changes...)
}

// ManagedObjectRefactor is the new shape of a managed object.
type ManagedObjectRefactor struct {
	Name         string
	Scope        model.Scope
	Dependencies []DependencyType

	DependencyRenames map[string]string
}

// RefactorManagedObject reconciles a managed object's dependencies against
// a newly observed type.
func (ops *Operations) RefactorManagedObject(mo *model.ManagedObject, r ManagedObjectRefactor) change.Typed[*model.ManagedObject] {
	desc := "Refactor managed object " + nameOf(mo)
	if !slices.Contains(ops.office.ManagedObjects, mo) {
		return change.Nonef(mo, "managed object %s is not in the office", nameOf(mo))
	}
	if !r.Scope.Valid() {
		return change.Fail(mo, desc, fmt.Errorf("%q: %w", r.Scope, model.ErrUnknownScope))
	}
	if r.Name == "" {
		return change.Nonef(mo, "%s: empty name", desc)
	}
	if other, ok := model.FindByName(ops.office.ManagedObjects, r.Name); ok && other != mo {
		return change.Nonef(mo, "%s: managed object %s already exists", desc, r.Name)
	}

	changes := []change.Change{
		change.New(mo, "Change managed object "+mo.Name, change.Sequence{
			&change.Assign[string]{Ptr: &mo.Name, After: r.Name},
			&change.Assign[model.Scope]{Ptr: &mo.Scope, After: r.Scope},
			&change.Resort[*model.ManagedObject]{List: &ops.office.ManagedObjects},
		}),
	}
	deps, err := refactorChildren(newCascade(ops.office), children[*model.ManagedObjectDependency, DependencyType]{
		what:    "dependency",
		list:    &mo.Dependencies,
		target:  r.Dependencies,
		renames: r.DependencyRenames,
		name:    dependencyName,
		create:  func() *model.ManagedObjectDependency { return &model.ManagedObjectDependency{} },
		update: func(d *model.ManagedObjectDependency, t DependencyType) change.Step {
			return change.Sequence{
				&change.Assign[string]{Ptr: &d.Name, After: t.Name},
				&change.Assign[string]{Ptr: &d.ObjectType, After: t.ObjectType},
				&change.Assign[string]{Ptr: &d.TypeQualifier, After: t.TypeQualifier},
			}
		},
	})
	if err != nil {
		return change.Nonef(mo, "%s: %v", desc, err)
	}
	return change.Compose(mo, desc, append(changes, deps...)...)
}

// children describes one collection to reconcile: the existing children in
// list, the desired children in target, and how to build and update a child.
type children[C node, T any] struct {
	what    string
	list    *[]C
	target  []T
	renames map[string]string
	name    func(T) string
	create  func() C
	update  func(C, T) change.Step
}

// refactorChildren returns, in order: one change per target child setting
// its attributes, the disconnects of every dropped child, and the change
// replacing the collection with the name-sorted targets.
func refactorChildren[C node, T any](c *cascade, r children[C, T]) ([]change.Change, error) {
	if dup, ok := duplicate(namesOf(r.target, r.name)); ok {
		return nil, fmt.Errorf("duplicate %s %s", r.what, dup)
	}

	existing := *r.list
	byTarget := make(map[string]C, len(existing))
	for _, child := range existing {
		if to, ok := r.renames[child.NodeName()]; ok {
			if _, claimed := byTarget[to]; !claimed {
				byTarget[to] = child
			}
		}
	}
	for _, child := range existing {
		if _, renamed := r.renames[child.NodeName()]; renamed {
			continue
		}
		if _, claimed := byTarget[child.NodeName()]; !claimed {
			byTarget[child.NodeName()] = child
		}
	}

	type entry struct {
		name  string
		child C
	}
	var changes []change.Change
	entries := make([]entry, 0, len(r.target))
	kept := make(map[C]bool, len(r.target))
	for _, t := range r.target {
		name := r.name(t)
		child, ok := byTarget[name]
		if ok {
			kept[child] = true
		} else {
			child = r.create()
		}
		changes = append(changes, change.New(child, fmt.Sprintf("Refactor %s %s", r.what, name), r.update(child, t)))
		entries = append(entries, entry{name: name, child: child})
	}
	slices.SortStableFunc(entries, func(a, b entry) int { return strings.Compare(a.name, b.name) })
	result := make([]C, len(entries))
	for i, e := range entries {
		result[i] = e.child
	}

	for _, child := range existing {
		if kept[child] {
			continue
		}
		for _, n := range model.Subtree(child) {
			for _, conn := range n.Endpoint().Links {
				if !conn.IsConnected() {
					return nil, fmt.Errorf("can not locate the target of %s on %s %s", conn, r.what, child.NodeName())
				}
			}
		}
		c.disconnect(model.Subtree(child)...)
	}
	changes = append(changes, c.take()...)
	changes = append(changes, change.New(r.list, fmt.Sprintf("Replace %ss", r.what), &change.Assign[[]C]{Ptr: r.list, After: result}))
	return changes, nil
}

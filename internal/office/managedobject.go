package office

import (
	"fmt"
	"slices"

	"github.com/vk/officegraph/internal/change"
	"github.com/vk/officegraph/internal/model"
)

// AddManagedObjectSource adds a managed object source with the flows and
// teams of its type.
func (ops *Operations) AddManagedObjectSource(name, sourceClassName string, props model.PropertyList, timeout string, t ManagedObjectSourceType) change.Typed[*model.ManagedObjectSource] {
	mos := &model.ManagedObjectSource{
		Name:            name,
		SourceClassName: sourceClassName,
		Properties:      props.Clone(),
		Timeout:         timeout,
		Flows:           newFlows(t.Flows),
		Teams:           newTeams(t.Teams),
	}
	if dup, ok := duplicate(namesOf(t.Flows, flowName)); ok {
		return change.Nonef(mos, "Managed object source %s has duplicate flow %s", name, dup)
	}
	if dup, ok := duplicate(namesOf(t.Teams, teamName)); ok {
		return change.Nonef(mos, "Managed object source %s has duplicate team %s", name, dup)
	}
	return addNode(&ops.office.ManagedObjectSources, mos, "managed object source")
}

// RemoveManagedObjectSource removes a managed object source together with
// the managed objects bound to it.
func (ops *Operations) RemoveManagedObjectSource(mos *model.ManagedObjectSource) change.Typed[*model.ManagedObjectSource] {
	desc := "Remove managed object source " + nameOf(mos)
	if !slices.Contains(ops.office.ManagedObjectSources, mos) {
		return change.Nonef(mos, "managed object source %s is not in the office", nameOf(mos))
	}
	var bound []*model.ManagedObject
	for _, conn := range mos.Incoming(model.EdgeManagedObjectToManagedObjectSource) {
		if mo, ok := conn.Source().(*model.ManagedObject); ok {
			bound = append(bound, mo)
		}
	}

	c := newCascade(ops.office)
	for _, mo := range bound {
		c.disconnect(model.Subtree(mo)...)
	}
	c.disconnect(model.Subtree(mos)...)
	changes := c.take()
	for _, mo := range bound {
		changes = append(changes, change.New(mo, "Remove managed object "+mo.Name,
			&change.Remove[*model.ManagedObject]{List: &ops.office.ManagedObjects, Item: mo}))
	}
	changes = append(changes, change.New(mos, desc,
		&change.Remove[*model.ManagedObjectSource]{List: &ops.office.ManagedObjectSources, Item: mos}))
	return change.Compose(mos, desc, changes...)
}

// AddManagedObject adds a managed object bound to source.
func (ops *Operations) AddManagedObject(name string, scope model.Scope, source *model.ManagedObjectSource, deps []DependencyType) change.Typed[*model.ManagedObject] {
	mo := &model.ManagedObject{Name: name, Scope: scope, Dependencies: newDependencies(deps)}
	desc := "Add managed object " + name
	if !scope.Valid() {
		return change.Fail(mo, desc, fmt.Errorf("%q: %w", scope, model.ErrUnknownScope))
	}
	if source == nil || !slices.Contains(ops.office.ManagedObjectSources, source) {
		return change.Nonef(mo, "Managed object %s needs a managed object source in the office", name)
	}
	if dup, ok := duplicate(namesOf(deps, dependencyName)); ok {
		return change.Nonef(mo, "Managed object %s has duplicate dependency %s", name, dup)
	}
	add := addNode(&ops.office.ManagedObjects, mo, "managed object")
	if change.IsNoChange(add) {
		return add
	}
	conn := model.NewConnection(model.EdgeManagedObjectToManagedObjectSource, model.Ref{Name: source.Name})
	return change.Compose(mo, desc, add,
		change.New(conn, fmt.Sprintf("Bind managed object %s to %s", name, source.Name),
			&change.Link{Conn: conn, Source: mo, Target: source}))
}

func (ops *Operations) RemoveManagedObject(mo *model.ManagedObject) change.Typed[*model.ManagedObject] {
	return removeNode(ops.office, &ops.office.ManagedObjects, mo, "managed object")
}

// SetManagedObjectScope changes the scope of a managed object. An unknown
// scope yields a change that fails to apply.
func (ops *Operations) SetManagedObjectScope(mo *model.ManagedObject, scope model.Scope) change.Typed[*model.ManagedObject] {
	desc := fmt.Sprintf("Set scope of managed object %s to %s", nameOf(mo), scope)
	if !scope.Valid() {
		return change.Fail(mo, desc, fmt.Errorf("%q: %w", scope, model.ErrUnknownScope))
	}
	if !slices.Contains(ops.office.ManagedObjects, mo) {
		return change.Nonef(mo, "managed object %s is not in the office", nameOf(mo))
	}
	if mo.Scope == scope {
		return change.Nonef(mo, "managed object %s already has scope %s", mo.Name, scope)
	}
	return change.New(mo, desc, &change.Assign[model.Scope]{Ptr: &mo.Scope, After: scope})
}

func (ops *Operations) AddManagedObjectDependency(mo *model.ManagedObject, t DependencyType) change.Typed[*model.ManagedObjectDependency] {
	dep := &model.ManagedObjectDependency{Name: t.Name, ObjectType: t.ObjectType, TypeQualifier: t.TypeQualifier}
	if !slices.Contains(ops.office.ManagedObjects, mo) {
		return change.Nonef(dep, "managed object %s is not in the office", nameOf(mo))
	}
	return addNode(&mo.Dependencies, dep, "dependency")
}

func (ops *Operations) RemoveManagedObjectDependency(mo *model.ManagedObject, dep *model.ManagedObjectDependency) change.Typed[*model.ManagedObjectDependency] {
	if !slices.Contains(ops.office.ManagedObjects, mo) {
		return change.Nonef(dep, "managed object %s is not in the office", nameOf(mo))
	}
	return removeNode(ops.office, &mo.Dependencies, dep, "dependency")
}

func (ops *Operations) AddExternalManagedObject(name, objectType string) change.Typed[*model.ExternalManagedObject] {
	return addNode(&ops.office.ExternalManagedObjects, &model.ExternalManagedObject{Name: name, ObjectType: objectType}, "external managed object")
}

func (ops *Operations) RemoveExternalManagedObject(e *model.ExternalManagedObject) change.Typed[*model.ExternalManagedObject] {
	return removeNode(ops.office, &ops.office.ExternalManagedObjects, e, "external managed object")
}

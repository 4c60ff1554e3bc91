package resolver

import "github.com/vk/officegraph/internal/model"

type inputKey struct {
	section string
	input   string
}

// Index looks nodes up by name, one map per connectable node kind. Section
// inputs are keyed by section and input name.
type Index struct {
	sections               map[string]*model.Section
	inputs                 map[inputKey]*model.SectionInput
	managedObjectSources   map[string]*model.ManagedObjectSource
	managedObjects         map[string]*model.ManagedObject
	externalManagedObjects map[string]*model.ExternalManagedObject
	teams                  map[string]*model.Team
	administrations        map[string]*model.Administration
	governances            map[string]*model.Governance
}

// NewIndex indexes the nodes of o. When names collide the first node wins.
func NewIndex(o *model.Office) *Index {
	ix := &Index{
		sections:               make(map[string]*model.Section, len(o.Sections)),
		inputs:                 make(map[inputKey]*model.SectionInput),
		managedObjectSources:   make(map[string]*model.ManagedObjectSource, len(o.ManagedObjectSources)),
		managedObjects:         make(map[string]*model.ManagedObject, len(o.ManagedObjects)),
		externalManagedObjects: make(map[string]*model.ExternalManagedObject, len(o.ExternalManagedObjects)),
		teams:                  make(map[string]*model.Team, len(o.Teams)),
		administrations:        make(map[string]*model.Administration, len(o.Administrations)),
		governances:            make(map[string]*model.Governance, len(o.Governances)),
	}
	for _, s := range o.Sections {
		put(ix.sections, s.Name, s)
		for _, in := range s.Inputs {
			put(ix.inputs, inputKey{section: s.Name, input: in.Name}, in)
		}
	}
	for _, mos := range o.ManagedObjectSources {
		put(ix.managedObjectSources, mos.Name, mos)
	}
	for _, mo := range o.ManagedObjects {
		put(ix.managedObjects, mo.Name, mo)
	}
	for _, e := range o.ExternalManagedObjects {
		put(ix.externalManagedObjects, e.Name, e)
	}
	for _, t := range o.Teams {
		put(ix.teams, t.Name, t)
	}
	for _, a := range o.Administrations {
		put(ix.administrations, a.Name, a)
	}
	for _, g := range o.Governances {
		put(ix.governances, g.Name, g)
	}
	return ix
}

func put[K comparable, V any](m map[K]V, key K, v V) {
	if _, exists := m[key]; !exists {
		m[key] = v
	}
}

// Lookup finds the node of the given kind named by ref.
func (ix *Index) Lookup(kind model.NodeKind, ref model.Ref) (model.Node, bool) {
	switch kind {
	case model.KindSection:
		return found(ix.sections[ref.Name])
	case model.KindSectionInput:
		return found(ix.inputs[inputKey{section: ref.Parent, input: ref.Name}])
	case model.KindManagedObjectSource:
		return found(ix.managedObjectSources[ref.Name])
	case model.KindManagedObject:
		return found(ix.managedObjects[ref.Name])
	case model.KindExternalManagedObject:
		return found(ix.externalManagedObjects[ref.Name])
	case model.KindTeam:
		return found(ix.teams[ref.Name])
	case model.KindAdministration:
		return found(ix.administrations[ref.Name])
	case model.KindGovernance:
		return found(ix.governances[ref.Name])
	}
	return nil, false
}

// found converts a possibly nil node pointer into a Node without producing a
// non-nil interface holding a nil pointer.
func found[T interface {
	comparable
	model.Node
}](n T) (model.Node, bool) {
	var zero T
	if n == zero {
		return nil, false
	}
	return n, true
}

// Section returns the section with the given name.
func (ix *Index) Section(name string) (*model.Section, bool) {
	s, ok := ix.sections[name]
	return s, ok
}

// Input returns the named input of the named section.
func (ix *Index) Input(section, input string) (*model.SectionInput, bool) {
	in, ok := ix.inputs[inputKey{section: section, input: input}]
	return in, ok
}

package office

import (
	"slices"

	"github.com/vk/officegraph/internal/change"
	"github.com/vk/officegraph/internal/model"
)

// Rename renames any named node and re-sorts its siblings. Connections to
// the node keep pointing at it; their persisted names follow on the next
// capture.
func (ops *Operations) Rename(n model.Node, name string) change.Typed[model.Node] {
	if model.IsNil(n) {
		return change.Nonef(n, "Can not rename nothing")
	}
	o := ops.office
	switch n := n.(type) {
	case *model.Section:
		return rename(&o.Sections, n, &n.Name, name, "section")
	case *model.SectionInput:
		if s := ops.sectionOf(n); s != nil {
			return rename(&s.Inputs, n, &n.Name, name, "section input")
		}
	case *model.SectionOutput:
		if s := ops.sectionOf(n); s != nil {
			return rename(&s.Outputs, n, &n.Name, name, "section output")
		}
	case *model.SectionObject:
		if s := ops.sectionOf(n); s != nil {
			return rename(&s.Objects, n, &n.Name, name, "section object")
		}
	case *model.SubSection:
		if parent := ops.parentOf(n); parent != nil {
			return rename(&parent.SubSections, n, &n.Name, name, "sub-section")
		}
	case *model.Function:
		if loc, ok := o.LocateFunction(n); ok {
			return rename(&loc.Parent.Functions, n, &n.Name, name, "function")
		}
	case *model.ManagedObjectSource:
		return rename(&o.ManagedObjectSources, n, &n.Name, name, "managed object source")
	case *model.ManagedObjectSourceFlow:
		for _, mos := range o.ManagedObjectSources {
			if slices.Contains(mos.Flows, n) {
				return rename(&mos.Flows, n, &n.Name, name, "flow")
			}
		}
	case *model.ManagedObjectSourceTeam:
		for _, mos := range o.ManagedObjectSources {
			if slices.Contains(mos.Teams, n) {
				return rename(&mos.Teams, n, &n.Name, name, "managed object source team")
			}
		}
	case *model.ManagedObject:
		return rename(&o.ManagedObjects, n, &n.Name, name, "managed object")
	case *model.ManagedObjectDependency:
		for _, mo := range o.ManagedObjects {
			if slices.Contains(mo.Dependencies, n) {
				return rename(&mo.Dependencies, n, &n.Name, name, "dependency")
			}
		}
	case *model.ExternalManagedObject:
		return rename(&o.ExternalManagedObjects, n, &n.Name, name, "external managed object")
	case *model.Team:
		return rename(&o.Teams, n, &n.Name, name, "team")
	case *model.Administration:
		return rename(&o.Administrations, n, &n.Name, name, "administration")
	case *model.Governance:
		return rename(&o.Governances, n, &n.Name, name, "governance")
	case *model.Escalation:
		return rename(&o.Escalations, n, &n.Name, name, "escalation")
	case *model.Start:
		return rename(&o.Starts, n, &n.Name, name, "start")
	}
	return change.Nonef(n, "%s is not in the office", describe(n))
}

// parentOf returns the sub-section directly containing sub, or nil for a
// section root or a detached sub-section.
func (ops *Operations) parentOf(sub *model.SubSection) *model.SubSection {
	var find func(*model.SubSection) *model.SubSection
	find = func(parent *model.SubSection) *model.SubSection {
		for _, child := range parent.SubSections {
			if child == sub {
				return parent
			}
			if found := find(child); found != nil {
				return found
			}
		}
		return nil
	}
	for _, s := range ops.office.Sections {
		if s.SubSection != nil {
			if parent := find(s.SubSection); parent != nil {
				return parent
			}
		}
	}
	return nil
}

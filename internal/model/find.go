// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "strings"

// Find returns the node of the given kind at a dotted path. Top-level nodes
// are named directly. Owned nodes are prefixed by their owner's name:
// "orders.place" for a section input, "db.onError" for a flow,
// "orders.validate" for a sub-section and "orders.validate.check" for a
// function.
func (o *Office) Find(kind NodeKind, path string) (Node, bool) {
	owner, rest, nested := strings.Cut(path, ".")
	switch kind {
	case KindSection:
		return found(FindByName(o.Sections, path))
	case KindManagedObjectSource:
		return found(FindByName(o.ManagedObjectSources, path))
	case KindManagedObject:
		return found(FindByName(o.ManagedObjects, path))
	case KindExternalManagedObject:
		return found(FindByName(o.ExternalManagedObjects, path))
	case KindTeam:
		return found(FindByName(o.Teams, path))
	case KindAdministration:
		return found(FindByName(o.Administrations, path))
	case KindGovernance:
		return found(FindByName(o.Governances, path))
	case KindEscalation:
		return found(FindByName(o.Escalations, path))
	case KindStart:
		return found(FindByName(o.Starts, path))
	}
	if !nested {
		return nil, false
	}

	switch kind {
	case KindSectionInput, KindSectionOutput, KindSectionObject, KindSubSection, KindFunction:
		s, ok := FindByName(o.Sections, owner)
		if !ok {
			return nil, false
		}
		return findInSection(s, kind, rest)
	case KindManagedObjectSourceFlow:
		if mos, ok := FindByName(o.ManagedObjectSources, owner); ok {
			return found(FindByName(mos.Flows, rest))
		}
	case KindManagedObjectSourceTeam:
		if mos, ok := FindByName(o.ManagedObjectSources, owner); ok {
			return found(FindByName(mos.Teams, rest))
		}
	case KindManagedObjectDependency:
		if mo, ok := FindByName(o.ManagedObjects, owner); ok {
			return found(FindByName(mo.Dependencies, rest))
		}
	}
	return nil, false
}

func findInSection(s *Section, kind NodeKind, path string) (Node, bool) {
	switch kind {
	case KindSectionInput:
		return found(FindByName(s.Inputs, path))
	case KindSectionOutput:
		return found(FindByName(s.Outputs, path))
	case KindSectionObject:
		return found(FindByName(s.Objects, path))
	case KindFunction:
		p, err := ParseFunctionPath(path)
		if err != nil {
			return nil, false
		}
		return found(p.Resolve(s))
	}

	sub := s.SubSection
	if sub == nil {
		return nil, false
	}
	for _, name := range strings.Split(path, ".") {
		next, ok := FindByName(sub.SubSections, name)
		if !ok {
			return nil, false
		}
		sub = next
	}
	return sub, true
}

func found[T Node](n T, ok bool) (Node, bool) {
	if !ok {
		return nil, false
	}
	return n, true
}

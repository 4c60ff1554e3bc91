// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Office, the root of an office graph, together with
// the traversal helpers shared by the resolver, the change operations and the
// compiler.

package model

// Office is the root container of an office graph.
type Office struct {
	Sections               []*Section
	ManagedObjectSources   []*ManagedObjectSource
	ManagedObjects         []*ManagedObject
	ExternalManagedObjects []*ExternalManagedObject
	Teams                  []*Team
	Administrations        []*Administration
	Governances            []*Governance
	Escalations            []*Escalation
	Starts                 []*Start

	// Names allocates synthetic node names for this graph.
	Names *NameAllocator
}

// NewOffice returns an empty office graph.
func NewOffice() *Office {
	return &Office{Names: NewNameAllocator()}
}

// IsEmpty reports whether the office holds no nodes at all.
func (o *Office) IsEmpty() bool {
	return len(o.Sections) == 0 &&
		len(o.ManagedObjectSources) == 0 &&
		len(o.ManagedObjects) == 0 &&
		len(o.ExternalManagedObjects) == 0 &&
		len(o.Teams) == 0 &&
		len(o.Administrations) == 0 &&
		len(o.Governances) == 0 &&
		len(o.Escalations) == 0 &&
		len(o.Starts) == 0
}

// Walk visits every node of the office once, parents before children, in a
// deterministic order.
func (o *Office) Walk(visit func(Node)) {
	for _, s := range o.Sections {
		walkSection(s, visit)
	}
	for _, mos := range o.ManagedObjectSources {
		walkNode(mos, visit)
	}
	for _, mo := range o.ManagedObjects {
		walkNode(mo, visit)
	}
	for _, e := range o.ExternalManagedObjects {
		visit(e)
	}
	for _, t := range o.Teams {
		visit(t)
	}
	for _, a := range o.Administrations {
		visit(a)
	}
	for _, g := range o.Governances {
		visit(g)
	}
	for _, e := range o.Escalations {
		visit(e)
	}
	for _, s := range o.Starts {
		visit(s)
	}
}

func walkSection(s *Section, visit func(Node)) {
	visit(s)
	for _, in := range s.Inputs {
		visit(in)
	}
	for _, out := range s.Outputs {
		visit(out)
	}
	for _, obj := range s.Objects {
		visit(obj)
	}
	if s.SubSection != nil {
		walkSubSection(s.SubSection, visit)
	}
}

func walkSubSection(sub *SubSection, visit func(Node)) {
	visit(sub)
	for _, child := range sub.SubSections {
		walkSubSection(child, visit)
	}
	for _, fn := range sub.Functions {
		visit(fn)
	}
}

func walkNode(n Node, visit func(Node)) {
	switch n := n.(type) {
	case *Section:
		walkSection(n, visit)
	case *SubSection:
		walkSubSection(n, visit)
	case *ManagedObjectSource:
		visit(n)
		for _, f := range n.Flows {
			visit(f)
		}
		for _, t := range n.Teams {
			visit(t)
		}
	case *ManagedObject:
		visit(n)
		for _, d := range n.Dependencies {
			visit(d)
		}
	default:
		visit(n)
	}
}

// Subtree returns n followed by every node it owns in the hierarchy.
func Subtree(n Node) []Node {
	var nodes []Node
	walkNode(n, func(c Node) { nodes = append(nodes, c) })
	return nodes
}

// FunctionLocation describes where a function sits in the hierarchy.
type FunctionLocation struct {
	Section  *Section
	Parent   *SubSection
	Function *Function
}

// LocateFunction finds the section and sub-section containing fn.
func (o *Office) LocateFunction(fn *Function) (FunctionLocation, bool) {
	for _, s := range o.Sections {
		if s.SubSection == nil {
			continue
		}
		if parent := findParent(s.SubSection, fn); parent != nil {
			return FunctionLocation{Section: s, Parent: parent, Function: fn}, true
		}
	}
	return FunctionLocation{}, false
}

func findParent(sub *SubSection, fn *Function) *SubSection {
	for _, f := range sub.Functions {
		if f == fn {
			return sub
		}
	}
	for _, child := range sub.SubSections {
		if parent := findParent(child, fn); parent != nil {
			return parent
		}
	}
	return nil
}

// Contains reports whether n is reachable from the office root.
func (o *Office) Contains(n Node) bool {
	found := false
	o.Walk(func(c Node) {
		if c == n {
			found = true
		}
	})
	return found
}

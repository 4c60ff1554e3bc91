// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the connection vocabulary of an office graph.
//
// Every relationship between two nodes is described by one EdgeKind. Rather
// than one hand-written connect/disconnect method per relationship, the kinds
// live in a single table mapping each kind to the node kinds it joins. The
// resolver, the change operations and the compiler all iterate this table, so
// adding a relationship means adding one row here.

package model

import "fmt"

// EdgeKind identifies the type of a Connection.
type EdgeKind int

const (
	EdgeSectionOutputToSectionInput EdgeKind = iota + 1
	EdgeSectionObjectToManagedObject
	EdgeSectionObjectToExternalManagedObject
	EdgeManagedObjectToManagedObjectSource
	EdgeDependencyToManagedObject
	EdgeDependencyToExternalManagedObject
	EdgeFlowToSectionInput
	EdgeManagedObjectSourceTeamToTeam
	EdgeFunctionToTeam
	EdgeFunctionToPreAdministration
	EdgeFunctionToPostAdministration
	EdgeFunctionToGovernance
	EdgeAdministrationToTeam
	EdgeGovernanceToTeam
	EdgeManagedObjectToAdministration
	EdgeExternalManagedObjectToAdministration
	EdgeManagedObjectToGovernance
	EdgeExternalManagedObjectToGovernance
	EdgeEscalationToSectionInput
	EdgeStartToSectionInput
)

type edgeSpec struct {
	name   string
	source NodeKind
	target NodeKind
	// single marks kinds a source may hold at most one of.
	single bool
	// ordered marks kinds whose Order field is meaningful.
	ordered bool
}

var edgeSpecs = map[EdgeKind]edgeSpec{
	EdgeSectionOutputToSectionInput:           {"section_output_to_section_input", KindSectionOutput, KindSectionInput, true, false},
	EdgeSectionObjectToManagedObject:          {"section_object_to_managed_object", KindSectionObject, KindManagedObject, true, false},
	EdgeSectionObjectToExternalManagedObject:  {"section_object_to_external_managed_object", KindSectionObject, KindExternalManagedObject, true, false},
	EdgeManagedObjectToManagedObjectSource:    {"managed_object_to_managed_object_source", KindManagedObject, KindManagedObjectSource, true, false},
	EdgeDependencyToManagedObject:             {"dependency_to_managed_object", KindManagedObjectDependency, KindManagedObject, true, false},
	EdgeDependencyToExternalManagedObject:     {"dependency_to_external_managed_object", KindManagedObjectDependency, KindExternalManagedObject, true, false},
	EdgeFlowToSectionInput:                    {"flow_to_section_input", KindManagedObjectSourceFlow, KindSectionInput, true, false},
	EdgeManagedObjectSourceTeamToTeam:         {"managed_object_source_team_to_team", KindManagedObjectSourceTeam, KindTeam, true, false},
	EdgeFunctionToTeam:                        {"function_to_team", KindFunction, KindTeam, true, false},
	EdgeFunctionToPreAdministration:           {"function_to_pre_administration", KindFunction, KindAdministration, false, false},
	EdgeFunctionToPostAdministration:          {"function_to_post_administration", KindFunction, KindAdministration, false, false},
	EdgeFunctionToGovernance:                  {"function_to_governance", KindFunction, KindGovernance, false, false},
	EdgeAdministrationToTeam:                  {"administration_to_team", KindAdministration, KindTeam, true, false},
	EdgeGovernanceToTeam:                      {"governance_to_team", KindGovernance, KindTeam, true, false},
	EdgeManagedObjectToAdministration:         {"managed_object_to_administration", KindManagedObject, KindAdministration, false, true},
	EdgeExternalManagedObjectToAdministration: {"external_managed_object_to_administration", KindExternalManagedObject, KindAdministration, false, true},
	EdgeManagedObjectToGovernance:             {"managed_object_to_governance", KindManagedObject, KindGovernance, false, false},
	EdgeExternalManagedObjectToGovernance:     {"external_managed_object_to_governance", KindExternalManagedObject, KindGovernance, false, false},
	EdgeEscalationToSectionInput:              {"escalation_to_section_input", KindEscalation, KindSectionInput, true, false},
	EdgeStartToSectionInput:                   {"start_to_section_input", KindStart, KindSectionInput, true, false},
}

// EdgeKinds returns every known edge kind in declaration order.
func EdgeKinds() []EdgeKind {
	kinds := make([]EdgeKind, 0, len(edgeSpecs))
	for k := EdgeSectionOutputToSectionInput; k <= EdgeStartToSectionInput; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseEdgeKind looks up an edge kind by its persisted name.
func ParseEdgeKind(name string) (EdgeKind, error) {
	for kind, spec := range edgeSpecs {
		if spec.name == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown connection kind %q", name)
}

// Valid reports whether k is a known edge kind.
func (k EdgeKind) Valid() bool {
	_, ok := edgeSpecs[k]
	return ok
}

func (k EdgeKind) String() string {
	if spec, ok := edgeSpecs[k]; ok {
		return spec.name
	}
	return fmt.Sprintf("edge(%d)", int(k))
}

// Source is the node kind that owns connections of this kind.
func (k EdgeKind) Source() NodeKind { return edgeSpecs[k].source }

// Target is the node kind connections of this kind point at.
func (k EdgeKind) Target() NodeKind { return edgeSpecs[k].target }

// Single reports whether a source holds at most one connection of this kind.
func (k EdgeKind) Single() bool { return edgeSpecs[k].single }

// Ordered reports whether connections of this kind carry an Order.
func (k EdgeKind) Ordered() bool { return edgeSpecs[k].ordered }

// Joins reports whether the kind joins a node of kind source to one of kind
// target.
func (k EdgeKind) Joins(source, target NodeKind) bool {
	spec, ok := edgeSpecs[k]
	return ok && spec.source == source && spec.target == target
}

// KindsFrom returns the edge kinds a node of the given kind may own.
func KindsFrom(source NodeKind) []EdgeKind {
	var kinds []EdgeKind
	for _, k := range EdgeKinds() {
		if edgeSpecs[k].source == source {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

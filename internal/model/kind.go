// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"fmt"
	"reflect"
)

// NodeKind enumerates the vertex types of an office graph.
type NodeKind int

const (
	KindSection NodeKind = iota + 1
	KindSectionInput
	KindSectionOutput
	KindSectionObject
	KindSubSection
	KindFunction
	KindManagedObjectSource
	KindManagedObjectSourceFlow
	KindManagedObjectSourceTeam
	KindManagedObject
	KindManagedObjectDependency
	KindExternalManagedObject
	KindTeam
	KindAdministration
	KindGovernance
	KindEscalation
	KindStart
)

var kindNames = map[NodeKind]string{
	KindSection:                 "section",
	KindSectionInput:            "section_input",
	KindSectionOutput:           "section_output",
	KindSectionObject:           "section_object",
	KindSubSection:              "sub_section",
	KindFunction:                "function",
	KindManagedObjectSource:     "managed_object_source",
	KindManagedObjectSourceFlow: "managed_object_source_flow",
	KindManagedObjectSourceTeam: "managed_object_source_team",
	KindManagedObject:           "managed_object",
	KindManagedObjectDependency: "managed_object_dependency",
	KindExternalManagedObject:   "external_managed_object",
	KindTeam:                    "team",
	KindAdministration:          "administration",
	KindGovernance:              "governance",
	KindEscalation:              "escalation",
	KindStart:                   "start",
}

func (k NodeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseNodeKind looks up a node kind by name, such as "section_input".
func ParseNodeKind(name string) (NodeKind, error) {
	for kind, n := range kindNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown node kind %q", name)
}

// Named is implemented by anything that belongs to a name-unique sibling
// collection.
type Named interface {
	NodeName() string
}

// Node is implemented by every vertex of an office graph.
type Node interface {
	Named
	Kind() NodeKind
	Endpoint() *Ends
}

// IsNil reports whether n is nil or holds a nil node pointer.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the node types of an office graph. Each type embeds an
// Ends and carries only its own attributes; relationships to other nodes
// are expressed as Connections.

package model

// Property is a single name/value configuration entry.
type Property struct {
	Name  string
	Value string
}

// PropertyList is an ordered list of properties.
type PropertyList []Property

// Clone returns an independent copy of the list.
func (p PropertyList) Clone() PropertyList {
	if p == nil {
		return nil
	}
	out := make(PropertyList, len(p))
	copy(out, p)
	return out
}

// Value returns the value of the named property.
func (p PropertyList) Value(name string) (string, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return "", false
}

// Section is a top-level unit of the office with inputs, outputs, objects and
// a tree of sub-sections containing functions.
type Section struct {
	Ends
	Name            string
	SourceClassName string
	Location        string
	Properties      PropertyList
	// X and Y place the section for spatial governance assignment.
	X, Y int

	Inputs  []*SectionInput
	Outputs []*SectionOutput
	Objects []*SectionObject
	// SubSection is the root of the section's sub-section tree. It is nil
	// while no function of the section carries configuration.
	SubSection *SubSection
}

func (s *Section) Kind() NodeKind   { return KindSection }
func (s *Section) NodeName() string { return s.Name }
func (s *Section) Input(name string) (*SectionInput, bool) {
	return FindByName(s.Inputs, name)
}
func (s *Section) Output(name string) (*SectionOutput, bool) {
	return FindByName(s.Outputs, name)
}
func (s *Section) Object(name string) (*SectionObject, bool) {
	return FindByName(s.Objects, name)
}

type SectionInput struct {
	Ends
	Name          string
	ParameterType string
}

func (i *SectionInput) Kind() NodeKind   { return KindSectionInput }
func (i *SectionInput) NodeName() string { return i.Name }

type SectionOutput struct {
	Ends
	Name           string
	ArgumentType   string
	EscalationOnly bool
}

func (o *SectionOutput) Kind() NodeKind   { return KindSectionOutput }
func (o *SectionOutput) NodeName() string { return o.Name }

type SectionObject struct {
	Ends
	Name          string
	ObjectType    string
	TypeQualifier string
}

func (o *SectionObject) Kind() NodeKind   { return KindSectionObject }
func (o *SectionObject) NodeName() string { return o.Name }

// SubSection only exists as a container. One with neither sub-sections nor
// functions is dead and gets pruned.
type SubSection struct {
	Ends
	Name        string
	SubSections []*SubSection
	Functions   []*Function
}

func (s *SubSection) Kind() NodeKind   { return KindSubSection }
func (s *SubSection) NodeName() string { return s.Name }

// IsDead reports whether the sub-section contains nothing.
func (s *SubSection) IsDead() bool {
	return len(s.SubSections) == 0 && len(s.Functions) == 0
}

// Function is a leaf executable unit. Its administration, governance and
// responsible team are expressed through its connections.
type Function struct {
	Ends
	Name string
}

func (f *Function) Kind() NodeKind   { return KindFunction }
func (f *Function) NodeName() string { return f.Name }

type ManagedObjectSource struct {
	Ends
	Name            string
	SourceClassName string
	Properties      PropertyList
	// Timeout is kept as written; it is parsed when compiled.
	Timeout string
	Flows   []*ManagedObjectSourceFlow
	Teams   []*ManagedObjectSourceTeam
}

func (m *ManagedObjectSource) Kind() NodeKind   { return KindManagedObjectSource }
func (m *ManagedObjectSource) NodeName() string { return m.Name }

type ManagedObjectSourceFlow struct {
	Ends
	Name         string
	ArgumentType string
}

func (f *ManagedObjectSourceFlow) Kind() NodeKind   { return KindManagedObjectSourceFlow }
func (f *ManagedObjectSourceFlow) NodeName() string { return f.Name }

type ManagedObjectSourceTeam struct {
	Ends
	Name string
}

func (t *ManagedObjectSourceTeam) Kind() NodeKind   { return KindManagedObjectSourceTeam }
func (t *ManagedObjectSourceTeam) NodeName() string { return t.Name }

// ManagedObject is bound to exactly one ManagedObjectSource through an
// EdgeManagedObjectToManagedObjectSource connection.
type ManagedObject struct {
	Ends
	Name               string
	Scope              Scope
	Dependencies       []*ManagedObjectDependency
	TypeQualifications []*TypeQualification
}

func (m *ManagedObject) Kind() NodeKind   { return KindManagedObject }
func (m *ManagedObject) NodeName() string { return m.Name }
func (m *ManagedObject) Qualifications() *[]*TypeQualification {
	return &m.TypeQualifications
}

type ManagedObjectDependency struct {
	Ends
	Name          string
	ObjectType    string
	TypeQualifier string
}

func (d *ManagedObjectDependency) Kind() NodeKind   { return KindManagedObjectDependency }
func (d *ManagedObjectDependency) NodeName() string { return d.Name }

// ExternalManagedObject is a boundary object supplied by the environment.
type ExternalManagedObject struct {
	Ends
	Name       string
	ObjectType string
}

func (e *ExternalManagedObject) Kind() NodeKind   { return KindExternalManagedObject }
func (e *ExternalManagedObject) NodeName() string { return e.Name }

type Team struct {
	Ends
	Name               string
	TypeQualifications []*TypeQualification
}

func (t *Team) Kind() NodeKind   { return KindTeam }
func (t *Team) NodeName() string { return t.Name }
func (t *Team) Qualifications() *[]*TypeQualification {
	return &t.TypeQualifications
}

type Administration struct {
	Ends
	Name            string
	SourceClassName string
	Properties      PropertyList
	AutoWire        bool
}

func (a *Administration) Kind() NodeKind   { return KindAdministration }
func (a *Administration) NodeName() string { return a.Name }

type Governance struct {
	Ends
	Name            string
	SourceClassName string
	Properties      PropertyList
	AutoWire        bool
	Areas           []*GovernanceArea
}

func (g *Governance) Kind() NodeKind   { return KindGovernance }
func (g *Governance) NodeName() string { return g.Name }

// Governs reports whether any of the governance's areas contains (x, y).
func (g *Governance) Governs(x, y int) bool {
	for _, area := range g.Areas {
		if area.Contains(x, y) {
			return true
		}
	}
	return false
}

// Escalation routes an escalation type to a section input.
type Escalation struct {
	Ends
	// Name is the escalation type.
	Name string
}

func (e *Escalation) Kind() NodeKind   { return KindEscalation }
func (e *Escalation) NodeName() string { return e.Name }

type Start struct {
	Ends
	Name string
}

func (s *Start) Kind() NodeKind   { return KindStart }
func (s *Start) NodeName() string { return s.Name }

// TypeQualification qualifies the type a managed object or team serves.
type TypeQualification struct {
	Qualifier string
	Type      string
}

// Qualified is implemented by nodes carrying type qualifications.
type Qualified interface {
	Node
	Qualifications() *[]*TypeQualification
}

package office

import "github.com/vk/officegraph/internal/model"

// SectionType is the observed shape of a section source.
type SectionType struct {
	Inputs  []InputType
	Outputs []OutputType
	Objects []ObjectType
}

type InputType struct {
	Name          string
	ParameterType string
}

type OutputType struct {
	Name           string
	ArgumentType   string
	EscalationOnly bool
}

type ObjectType struct {
	Name          string
	ObjectType    string
	TypeQualifier string
}

// ManagedObjectSourceType is the observed shape of a managed object source.
type ManagedObjectSourceType struct {
	Flows []FlowType
	Teams []TeamType
}

type FlowType struct {
	Name         string
	ArgumentType string
}

type TeamType struct {
	Name string
}

type DependencyType struct {
	Name          string
	ObjectType    string
	TypeQualifier string
}

func newInputs(types []InputType) []*model.SectionInput {
	out := make([]*model.SectionInput, 0, len(types))
	for _, t := range types {
		out = append(out, &model.SectionInput{Name: t.Name, ParameterType: t.ParameterType})
	}
	model.SortByName(out)
	return out
}

func newOutputs(types []OutputType) []*model.SectionOutput {
	out := make([]*model.SectionOutput, 0, len(types))
	for _, t := range types {
		out = append(out, &model.SectionOutput{Name: t.Name, ArgumentType: t.ArgumentType, EscalationOnly: t.EscalationOnly})
	}
	model.SortByName(out)
	return out
}

func newObjects(types []ObjectType) []*model.SectionObject {
	out := make([]*model.SectionObject, 0, len(types))
	for _, t := range types {
		out = append(out, &model.SectionObject{Name: t.Name, ObjectType: t.ObjectType, TypeQualifier: t.TypeQualifier})
	}
	model.SortByName(out)
	return out
}

func newFlows(types []FlowType) []*model.ManagedObjectSourceFlow {
	out := make([]*model.ManagedObjectSourceFlow, 0, len(types))
	for _, t := range types {
		out = append(out, &model.ManagedObjectSourceFlow{Name: t.Name, ArgumentType: t.ArgumentType})
	}
	model.SortByName(out)
	return out
}

func newTeams(types []TeamType) []*model.ManagedObjectSourceTeam {
	out := make([]*model.ManagedObjectSourceTeam, 0, len(types))
	for _, t := range types {
		out = append(out, &model.ManagedObjectSourceTeam{Name: t.Name})
	}
	model.SortByName(out)
	return out
}

func newDependencies(types []DependencyType) []*model.ManagedObjectDependency {
	out := make([]*model.ManagedObjectDependency, 0, len(types))
	for _, t := range types {
		out = append(out, &model.ManagedObjectDependency{Name: t.Name, ObjectType: t.ObjectType, TypeQualifier: t.TypeQualifier})
	}
	model.SortByName(out)
	return out
}

// duplicate returns the first name that occurs more than once.
func duplicate(names []string) (string, bool) {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return name, true
		}
		seen[name] = true
	}
	return "", false
}

func namesOf[T any](items []T, name func(T) string) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = name(item)
	}
	return names
}

func inputName(t InputType) string           { return t.Name }
func outputName(t OutputType) string         { return t.Name }
func objectName(t ObjectType) string         { return t.Name }
func flowName(t FlowType) string             { return t.Name }
func teamName(t TeamType) string             { return t.Name }
func dependencyName(t DependencyType) string { return t.Name }

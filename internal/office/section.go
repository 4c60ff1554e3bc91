package office

import (
	"fmt"
	"slices"

	"github.com/vk/officegraph/internal/change"
	"github.com/vk/officegraph/internal/model"
)

// AddSection adds a section with the inputs, outputs and objects of its
// type, placed at (x, y).
func (ops *Operations) AddSection(name, sourceClassName, location string, props model.PropertyList, t SectionType, x, y int) change.Typed[*model.Section] {
	s := &model.Section{
		Name:            name,
		SourceClassName: sourceClassName,
		Location:        location,
		Properties:      props.Clone(),
		X:               x,
		Y:               y,
		Inputs:          newInputs(t.Inputs),
		Outputs:         newOutputs(t.Outputs),
		Objects:         newObjects(t.Objects),
	}
	for _, check := range []struct {
		what  string
		names []string
	}{
		{"input", namesOf(t.Inputs, inputName)},
		{"output", namesOf(t.Outputs, outputName)},
		{"object", namesOf(t.Objects, objectName)},
	} {
		if dup, ok := duplicate(check.names); ok {
			return change.Nonef(s, "Section %s has duplicate %s %s", name, check.what, dup)
		}
	}
	return addNode(&ops.office.Sections, s, "section")
}

// RemoveSection removes a section with everything it contains.
func (ops *Operations) RemoveSection(s *model.Section) change.Typed[*model.Section] {
	return removeNode(ops.office, &ops.office.Sections, s, "section")
}

// MoveSection changes the position used for spatial governance.
func (ops *Operations) MoveSection(s *model.Section, x, y int) change.Typed[*model.Section] {
	if !slices.Contains(ops.office.Sections, s) {
		return change.Nonef(s, "section %s is not in the office", nameOf(s))
	}
	if s.X == x && s.Y == y {
		return change.Nonef(s, "section %s is already at (%d, %d)", s.Name, x, y)
	}
	return change.New(s, fmt.Sprintf("Move section %s to (%d, %d)", s.Name, x, y), change.Sequence{
		&change.Assign[int]{Ptr: &s.X, After: x},
		&change.Assign[int]{Ptr: &s.Y, After: y},
	})
}

func (ops *Operations) AddSectionInput(s *model.Section, t InputType) change.Typed[*model.SectionInput] {
	in := &model.SectionInput{Name: t.Name, ParameterType: t.ParameterType}
	if !slices.Contains(ops.office.Sections, s) {
		return change.Nonef(in, "section %s is not in the office", nameOf(s))
	}
	return addNode(&s.Inputs, in, "section input")
}

func (ops *Operations) RemoveSectionInput(s *model.Section, in *model.SectionInput) change.Typed[*model.SectionInput] {
	if !slices.Contains(ops.office.Sections, s) {
		return change.Nonef(in, "section %s is not in the office", nameOf(s))
	}
	return removeNode(ops.office, &s.Inputs, in, "section input")
}

func (ops *Operations) AddSectionOutput(s *model.Section, t OutputType) change.Typed[*model.SectionOutput] {
	out := &model.SectionOutput{Name: t.Name, ArgumentType: t.ArgumentType, EscalationOnly: t.EscalationOnly}
	if !slices.Contains(ops.office.Sections, s) {
		return change.Nonef(out, "section %s is not in the office", nameOf(s))
	}
	return addNode(&s.Outputs, out, "section output")
}

func (ops *Operations) RemoveSectionOutput(s *model.Section, out *model.SectionOutput) change.Typed[*model.SectionOutput] {
	if !slices.Contains(ops.office.Sections, s) {
		return change.Nonef(out, "section %s is not in the office", nameOf(s))
	}
	return removeNode(ops.office, &s.Outputs, out, "section output")
}

func (ops *Operations) AddSectionObject(s *model.Section, t ObjectType) change.Typed[*model.SectionObject] {
	obj := &model.SectionObject{Name: t.Name, ObjectType: t.ObjectType, TypeQualifier: t.TypeQualifier}
	if !slices.Contains(ops.office.Sections, s) {
		return change.Nonef(obj, "section %s is not in the office", nameOf(s))
	}
	return addNode(&s.Objects, obj, "section object")
}

func (ops *Operations) RemoveSectionObject(s *model.Section, obj *model.SectionObject) change.Typed[*model.SectionObject] {
	if !slices.Contains(ops.office.Sections, s) {
		return change.Nonef(obj, "section %s is not in the office", nameOf(s))
	}
	return removeNode(ops.office, &s.Objects, obj, "section object")
}

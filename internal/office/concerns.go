package office

import (
	"fmt"
	"slices"

	"github.com/vk/officegraph/internal/change"
	"github.com/vk/officegraph/internal/model"
)

func (ops *Operations) AddTeam(name string) change.Typed[*model.Team] {
	return addNode(&ops.office.Teams, &model.Team{Name: name}, "team")
}

func (ops *Operations) RemoveTeam(t *model.Team) change.Typed[*model.Team] {
	return removeNode(ops.office, &ops.office.Teams, t, "team")
}

func (ops *Operations) AddAdministration(name, sourceClassName string, props model.PropertyList, autoWire bool) change.Typed[*model.Administration] {
	a := &model.Administration{Name: name, SourceClassName: sourceClassName, Properties: props.Clone(), AutoWire: autoWire}
	return addNode(&ops.office.Administrations, a, "administration")
}

func (ops *Operations) RemoveAdministration(a *model.Administration) change.Typed[*model.Administration] {
	return removeNode(ops.office, &ops.office.Administrations, a, "administration")
}

// ConfigureAdministration replaces the source, properties and auto-wire flag.
func (ops *Operations) ConfigureAdministration(a *model.Administration, sourceClassName string, props model.PropertyList, autoWire bool) change.Typed[*model.Administration] {
	if !slices.Contains(ops.office.Administrations, a) {
		return change.Nonef(a, "administration %s is not in the office", nameOf(a))
	}
	return change.New(a, "Configure administration "+a.Name, change.Sequence{
		&change.Assign[string]{Ptr: &a.SourceClassName, After: sourceClassName},
		&change.Assign[model.PropertyList]{Ptr: &a.Properties, After: props.Clone()},
		&change.Assign[bool]{Ptr: &a.AutoWire, After: autoWire},
	})
}

func (ops *Operations) AddGovernance(name, sourceClassName string, props model.PropertyList, autoWire bool) change.Typed[*model.Governance] {
	g := &model.Governance{Name: name, SourceClassName: sourceClassName, Properties: props.Clone(), AutoWire: autoWire}
	return addNode(&ops.office.Governances, g, "governance")
}

func (ops *Operations) RemoveGovernance(g *model.Governance) change.Typed[*model.Governance] {
	return removeNode(ops.office, &ops.office.Governances, g, "governance")
}

// ConfigureGovernance replaces the source, properties and auto-wire flag.
func (ops *Operations) ConfigureGovernance(g *model.Governance, sourceClassName string, props model.PropertyList, autoWire bool) change.Typed[*model.Governance] {
	if !slices.Contains(ops.office.Governances, g) {
		return change.Nonef(g, "governance %s is not in the office", nameOf(g))
	}
	return change.New(g, "Configure governance "+g.Name, change.Sequence{
		&change.Assign[string]{Ptr: &g.SourceClassName, After: sourceClassName},
		&change.Assign[model.PropertyList]{Ptr: &g.Properties, After: props.Clone()},
		&change.Assign[bool]{Ptr: &g.AutoWire, After: autoWire},
	})
}

// AddGovernanceArea adds a rectangle to a governance. Width and height may be
// negative.
func (ops *Operations) AddGovernanceArea(g *model.Governance, x, y, width, height int) change.Typed[*model.GovernanceArea] {
	area := &model.GovernanceArea{X: x, Y: y, Width: width, Height: height}
	if !slices.Contains(ops.office.Governances, g) {
		return change.Nonef(area, "governance %s is not in the office", nameOf(g))
	}
	return change.New(area, fmt.Sprintf("Add area to governance %s", g.Name), &change.Append[*model.GovernanceArea]{List: &g.Areas, Item: area})
}

func (ops *Operations) RemoveGovernanceArea(g *model.Governance, area *model.GovernanceArea) change.Typed[*model.GovernanceArea] {
	if !slices.Contains(ops.office.Governances, g) || !slices.Contains(g.Areas, area) {
		return change.Nonef(area, "area is not on governance %s", nameOf(g))
	}
	return change.New(area, fmt.Sprintf("Remove area from governance %s", g.Name), &change.Remove[*model.GovernanceArea]{List: &g.Areas, Item: area})
}

// MoveGovernanceArea repositions and resizes an area.
func (ops *Operations) MoveGovernanceArea(area *model.GovernanceArea, x, y, width, height int) change.Typed[*model.GovernanceArea] {
	found := false
	for _, g := range ops.office.Governances {
		if slices.Contains(g.Areas, area) {
			found = true
			break
		}
	}
	if !found {
		return change.None(area, "area is not on any governance")
	}
	after := model.GovernanceArea{X: x, Y: y, Width: width, Height: height}
	if *area == after {
		return change.None(area, "area is already in place")
	}
	return change.New(area, "Move governance area", &change.Assign[model.GovernanceArea]{Ptr: area, After: after})
}

// AddEscalation adds the handling of an escalation type. Route it to a
// section input with Connect.
func (ops *Operations) AddEscalation(escalationType string) change.Typed[*model.Escalation] {
	return addNode(&ops.office.Escalations, &model.Escalation{Name: escalationType}, "escalation")
}

func (ops *Operations) RemoveEscalation(e *model.Escalation) change.Typed[*model.Escalation] {
	return removeNode(ops.office, &ops.office.Escalations, e, "escalation")
}

// AddStart adds a start with the next free synthetic name.
func (ops *Operations) AddStart() change.Typed[*model.Start] {
	name := ops.office.Names.Next("Start", func(name string) bool {
		_, taken := model.FindByName(ops.office.Starts, name)
		return taken
	})
	return addNode(&ops.office.Starts, &model.Start{Name: name}, "start")
}

func (ops *Operations) RemoveStart(s *model.Start) change.Typed[*model.Start] {
	return removeNode(ops.office, &ops.office.Starts, s, "start")
}

// AddTypeQualification qualifies the type served by a managed object or
// team.
func (ops *Operations) AddTypeQualification(n model.Qualified, qualifier, typ string) change.Typed[*model.TypeQualification] {
	tq := &model.TypeQualification{Qualifier: qualifier, Type: typ}
	if !ops.office.Contains(n) {
		return change.Nonef(tq, "%s is not in the office", describe(n))
	}
	list := n.Qualifications()
	for _, existing := range *list {
		if *existing == *tq {
			return change.Nonef(tq, "%s is already qualified %s:%s", describe(n), qualifier, typ)
		}
	}
	return change.New(tq, fmt.Sprintf("Qualify %s as %s:%s", describe(n), qualifier, typ), &change.Append[*model.TypeQualification]{List: list, Item: tq})
}

// RemoveTypeQualification removes tq from whichever node carries it.
func (ops *Operations) RemoveTypeQualification(tq *model.TypeQualification) change.Typed[*model.TypeQualification] {
	if tq == nil {
		return change.Nonef(tq, "Can not remove a missing type qualification")
	}
	var owners []model.Qualified
	for _, mo := range ops.office.ManagedObjects {
		owners = append(owners, mo)
	}
	for _, t := range ops.office.Teams {
		owners = append(owners, t)
	}
	for _, owner := range owners {
		list := owner.Qualifications()
		if slices.Contains(*list, tq) {
			return change.New(tq, fmt.Sprintf("Remove qualification %s:%s from %s", tq.Qualifier, tq.Type, describe(owner)),
				&change.Remove[*model.TypeQualification]{List: list, Item: tq})
		}
	}
	return change.Nonef(tq, "Type qualification %s:%s is not on any node", tq.Qualifier, tq.Type)
}

package testutil

import (
	"fmt"

	"github.com/vk/officegraph/internal/model"
)

// Snapshot renders the structure of an office as lines: every node with its
// attributes in walk order, followed by its live connections in list order.
// Two offices with equal snapshots have the same nodes, the same edge
// endpoints and the same sibling ordering.
func Snapshot(o *model.Office) []string {
	paths := Paths(o)
	var lines []string
	o.Walk(func(n model.Node) {
		lines = append(lines, paths[n]+" "+attributes(n))
		for _, c := range n.Endpoint().Links {
			if !c.IsConnected() {
				lines = append(lines, fmt.Sprintf("  %s -> %s (unresolved)", c.Kind, c.To))
				continue
			}
			lines = append(lines, fmt.Sprintf("  %s -> %s order=%q", c.Kind, paths[c.Target()], c.Order))
		}
		for _, c := range n.Endpoint().Live() {
			if c.Source() != n {
				lines = append(lines, fmt.Sprintf("  %s <- %s", c.Kind, paths[c.Source()]))
			}
		}
	})
	return lines
}

// Paths names every node of the office by its position in the hierarchy.
func Paths(o *model.Office) map[model.Node]string {
	paths := make(map[model.Node]string)
	for _, s := range o.Sections {
		base := "section:" + s.Name
		paths[s] = base
		for _, in := range s.Inputs {
			paths[in] = base + "/input:" + in.Name
		}
		for _, out := range s.Outputs {
			paths[out] = base + "/output:" + out.Name
		}
		for _, obj := range s.Objects {
			paths[obj] = base + "/object:" + obj.Name
		}
		if s.SubSection != nil {
			subSectionPaths(s.SubSection, base+"/", paths)
		}
	}
	for _, mos := range o.ManagedObjectSources {
		base := "managed_object_source:" + mos.Name
		paths[mos] = base
		for _, f := range mos.Flows {
			paths[f] = base + "/flow:" + f.Name
		}
		for _, t := range mos.Teams {
			paths[t] = base + "/team:" + t.Name
		}
	}
	for _, mo := range o.ManagedObjects {
		paths[mo] = "managed_object:" + mo.Name
		for _, d := range mo.Dependencies {
			paths[d] = "managed_object:" + mo.Name + "/dependency:" + d.Name
		}
	}
	o.Walk(func(n model.Node) {
		if _, ok := paths[n]; !ok {
			paths[n] = n.Kind().String() + ":" + n.NodeName()
		}
	})
	return paths
}

func subSectionPaths(sub *model.SubSection, prefix string, paths map[model.Node]string) {
	base := prefix + "sub:" + sub.Name
	paths[sub] = base
	for _, child := range sub.SubSections {
		subSectionPaths(child, base+"/", paths)
	}
	for _, fn := range sub.Functions {
		paths[fn] = base + "/function:" + fn.Name
	}
}

func attributes(n model.Node) string {
	switch n := n.(type) {
	case *model.Section:
		return fmt.Sprintf("class=%q location=%q props=%v at=(%d,%d)", n.SourceClassName, n.Location, n.Properties, n.X, n.Y)
	case *model.SectionInput:
		return fmt.Sprintf("type=%q", n.ParameterType)
	case *model.SectionOutput:
		return fmt.Sprintf("type=%q escalation_only=%t", n.ArgumentType, n.EscalationOnly)
	case *model.SectionObject:
		return fmt.Sprintf("type=%q qualifier=%q", n.ObjectType, n.TypeQualifier)
	case *model.ManagedObjectSource:
		return fmt.Sprintf("class=%q props=%v timeout=%q", n.SourceClassName, n.Properties, n.Timeout)
	case *model.ManagedObjectSourceFlow:
		return fmt.Sprintf("type=%q", n.ArgumentType)
	case *model.ManagedObject:
		return fmt.Sprintf("scope=%s qualifications=%s", n.Scope, qualifications(n.TypeQualifications))
	case *model.ManagedObjectDependency:
		return fmt.Sprintf("type=%q qualifier=%q", n.ObjectType, n.TypeQualifier)
	case *model.ExternalManagedObject:
		return fmt.Sprintf("type=%q", n.ObjectType)
	case *model.Team:
		return fmt.Sprintf("qualifications=%s", qualifications(n.TypeQualifications))
	case *model.Administration:
		return fmt.Sprintf("class=%q props=%v auto_wire=%t", n.SourceClassName, n.Properties, n.AutoWire)
	case *model.Governance:
		areas := make([]model.GovernanceArea, len(n.Areas))
		for i, a := range n.Areas {
			areas[i] = *a
		}
		return fmt.Sprintf("class=%q props=%v auto_wire=%t areas=%v", n.SourceClassName, n.Properties, n.AutoWire, areas)
	}
	return ""
}

func qualifications(tqs []*model.TypeQualification) string {
	out := "["
	for i, tq := range tqs {
		if i > 0 {
			out += " "
		}
		out += tq.Qualifier + ":" + tq.Type
	}
	return out + "]"
}

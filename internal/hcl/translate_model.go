package hcl

import (
	"fmt"

	"github.com/vk/officegraph/internal/model"
	"github.com/vk/officegraph/internal/schema"
)

// translateOffice converts the decoded blocks into graph nodes. Sibling lists
// come out sorted by name; duplicate sibling names are an error.
func translateOffice(root *schema.Office) (*model.Office, error) {
	o := &model.Office{}

	for _, t := range root.Teams {
		team := &model.Team{Name: t.Name, TypeQualifications: translateQualifications(t.TypeQualifications)}
		o.Teams = append(o.Teams, team)
		if err := translateLinks(team, t.Links); err != nil {
			return nil, err
		}
	}
	for _, a := range root.Administrations {
		admin := &model.Administration{
			Name:            a.Name,
			SourceClassName: a.SourceClass,
			Properties:      translateProperties(a.Properties),
			AutoWire:        a.AutoWire,
		}
		o.Administrations = append(o.Administrations, admin)
		if err := translateLinks(admin, a.Links); err != nil {
			return nil, err
		}
	}
	for _, g := range root.Governances {
		gov := &model.Governance{
			Name:            g.Name,
			SourceClassName: g.SourceClass,
			Properties:      translateProperties(g.Properties),
			AutoWire:        g.AutoWire,
		}
		for _, area := range g.Areas {
			gov.Areas = append(gov.Areas, &model.GovernanceArea{X: area.X, Y: area.Y, Width: area.Width, Height: area.Height})
		}
		o.Governances = append(o.Governances, gov)
		if err := translateLinks(gov, g.Links); err != nil {
			return nil, err
		}
	}
	for _, e := range root.ExternalManagedObjects {
		ext := &model.ExternalManagedObject{Name: e.Name, ObjectType: e.Type}
		o.ExternalManagedObjects = append(o.ExternalManagedObjects, ext)
		if err := translateLinks(ext, e.Links); err != nil {
			return nil, err
		}
	}
	for _, s := range root.ManagedObjectSources {
		mos, err := translateManagedObjectSource(s)
		if err != nil {
			return nil, err
		}
		o.ManagedObjectSources = append(o.ManagedObjectSources, mos)
	}
	for _, m := range root.ManagedObjects {
		mo, err := translateManagedObject(m)
		if err != nil {
			return nil, err
		}
		o.ManagedObjects = append(o.ManagedObjects, mo)
	}
	for _, s := range root.Sections {
		section, err := translateSection(s)
		if err != nil {
			return nil, err
		}
		o.Sections = append(o.Sections, section)
	}
	for _, e := range root.Escalations {
		esc := &model.Escalation{Name: e.Type}
		o.Escalations = append(o.Escalations, esc)
		if err := translateLinks(esc, e.Links); err != nil {
			return nil, err
		}
	}
	for _, s := range root.Starts {
		start := &model.Start{Name: s.Name}
		o.Starts = append(o.Starts, start)
		if err := translateLinks(start, s.Links); err != nil {
			return nil, err
		}
	}

	err := firstError(
		sortUnique("section", o.Sections),
		sortUnique("managed object source", o.ManagedObjectSources),
		sortUnique("managed object", o.ManagedObjects),
		sortUnique("external managed object", o.ExternalManagedObjects),
		sortUnique("team", o.Teams),
		sortUnique("administration", o.Administrations),
		sortUnique("governance", o.Governances),
		sortUnique("escalation", o.Escalations),
		sortUnique("start", o.Starts),
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func translateManagedObjectSource(s *schema.ManagedObjectSource) (*model.ManagedObjectSource, error) {
	mos := &model.ManagedObjectSource{
		Name:            s.Name,
		SourceClassName: s.SourceClass,
		Properties:      translateProperties(s.Properties),
		Timeout:         s.Timeout,
	}
	for _, f := range s.Flows {
		flow := &model.ManagedObjectSourceFlow{Name: f.Name, ArgumentType: f.ArgumentType}
		mos.Flows = append(mos.Flows, flow)
		if err := translateLinks(flow, f.Links); err != nil {
			return nil, err
		}
	}
	for _, t := range s.Teams {
		team := &model.ManagedObjectSourceTeam{Name: t.Name}
		mos.Teams = append(mos.Teams, team)
		if err := translateLinks(team, t.Links); err != nil {
			return nil, err
		}
	}
	if err := firstError(sortUnique("flow", mos.Flows), sortUnique("team", mos.Teams)); err != nil {
		return nil, fmt.Errorf("managed object source %q: %w", s.Name, err)
	}
	return mos, nil
}

func translateManagedObject(m *schema.ManagedObject) (*model.ManagedObject, error) {
	scope, err := model.ParseScope(m.Scope)
	if err != nil {
		return nil, fmt.Errorf("managed object %q: %w", m.Name, err)
	}
	mo := &model.ManagedObject{
		Name:               m.Name,
		Scope:              scope,
		TypeQualifications: translateQualifications(m.TypeQualifications),
	}
	for _, d := range m.Dependencies {
		dep := &model.ManagedObjectDependency{Name: d.Name, ObjectType: d.Type, TypeQualifier: d.Qualifier}
		mo.Dependencies = append(mo.Dependencies, dep)
		if err := translateLinks(dep, d.Links); err != nil {
			return nil, err
		}
	}
	if err := translateLinks(mo, m.Links); err != nil {
		return nil, err
	}
	if err := sortUnique("dependency", mo.Dependencies); err != nil {
		return nil, fmt.Errorf("managed object %q: %w", m.Name, err)
	}
	return mo, nil
}

func translateSection(s *schema.Section) (*model.Section, error) {
	section := &model.Section{
		Name:            s.Name,
		SourceClassName: s.SourceClass,
		Location:        s.Location,
		Properties:      translateProperties(s.Properties),
		X:               s.X,
		Y:               s.Y,
	}
	for _, in := range s.Inputs {
		section.Inputs = append(section.Inputs, &model.SectionInput{Name: in.Name, ParameterType: in.ParameterType})
	}
	for _, out := range s.Outputs {
		output := &model.SectionOutput{Name: out.Name, ArgumentType: out.ArgumentType, EscalationOnly: out.EscalationOnly}
		section.Outputs = append(section.Outputs, output)
		if err := translateLinks(output, out.Links); err != nil {
			return nil, err
		}
	}
	for _, obj := range s.Objects {
		object := &model.SectionObject{Name: obj.Name, ObjectType: obj.Type, TypeQualifier: obj.Qualifier}
		section.Objects = append(section.Objects, object)
		if err := translateLinks(object, obj.Links); err != nil {
			return nil, err
		}
	}
	err := firstError(
		sortUnique("input", section.Inputs),
		sortUnique("output", section.Outputs),
		sortUnique("object", section.Objects),
	)
	if err != nil {
		return nil, fmt.Errorf("section %q: %w", s.Name, err)
	}

	if len(s.SubSections) > 0 || len(s.Functions) > 0 {
		root, err := translateSubSection(&schema.SubSection{SubSections: s.SubSections, Functions: s.Functions})
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", s.Name, err)
		}
		if !root.IsDead() {
			section.SubSection = root
		}
	}
	return section, nil
}

// translateSubSection builds a sub-section tree. Dead sub-sections are not
// kept.
func translateSubSection(s *schema.SubSection) (*model.SubSection, error) {
	sub := &model.SubSection{Name: s.Name}
	for _, child := range s.SubSections {
		c, err := translateSubSection(child)
		if err != nil {
			return nil, err
		}
		if !c.IsDead() {
			sub.SubSections = append(sub.SubSections, c)
		}
	}
	for _, f := range s.Functions {
		fn := &model.Function{Name: f.Name}
		sub.Functions = append(sub.Functions, fn)
		if err := translateLinks(fn, f.Links); err != nil {
			return nil, err
		}
	}
	if err := firstError(sortUnique("sub-section", sub.SubSections), sortUnique("function", sub.Functions)); err != nil {
		return nil, err
	}
	return sub, nil
}

// translateLinks attaches the persisted connections to their owner. They
// stay unconnected until resolved.
func translateLinks(owner model.Node, links []*schema.Link) error {
	for _, l := range links {
		kind, err := model.ParseEdgeKind(l.Kind)
		if err != nil {
			return fmt.Errorf("%s %q: %w", owner.Kind(), owner.NodeName(), err)
		}
		if kind.Source() != owner.Kind() {
			return fmt.Errorf("%s %q: connection kind %q does not start at a %s", owner.Kind(), owner.NodeName(), l.Kind, owner.Kind())
		}
		conn := model.NewConnection(kind, model.Ref{Parent: l.Section, Name: l.To})
		conn.Order = l.Order
		ep := owner.Endpoint()
		ep.Links = append(ep.Links, conn)
	}
	return nil
}

func translateProperties(props []*schema.Property) model.PropertyList {
	var out model.PropertyList
	for _, p := range props {
		out = append(out, model.Property{Name: p.Name, Value: p.Value})
	}
	return out
}

func translateQualifications(tqs []*schema.TypeQualification) []*model.TypeQualification {
	var out []*model.TypeQualification
	for _, tq := range tqs {
		out = append(out, &model.TypeQualification{Qualifier: tq.Qualifier, Type: tq.Type})
	}
	return out
}

func sortUnique[T model.Named](what string, items []T) error {
	model.SortByName(items)
	for i := 1; i < len(items); i++ {
		if items[i].NodeName() == items[i-1].NodeName() {
			return fmt.Errorf("duplicate %s %q", what, items[i].NodeName())
		}
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

package hcl

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/officegraph/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// encodeOffice writes o as HCL. Blocks follow the office's sibling order and
// optional attributes are only written when set.
func encodeOffice(o *model.Office) []byte {
	f := hclwrite.NewEmptyFile()
	w := &writer{root: f.Body()}

	for _, t := range o.Teams {
		b := w.block("team", t.Name)
		writeQualifications(b, t.TypeQualifications)
		writeLinks(b, t.Links)
	}
	for _, a := range o.Administrations {
		b := w.block("administration", a.Name)
		b.SetAttributeValue("source_class", cty.StringVal(a.SourceClassName))
		setBool(b, "auto_wire", a.AutoWire)
		writeProperties(b, a.Properties)
		writeLinks(b, a.Links)
	}
	for _, g := range o.Governances {
		b := w.block("governance", g.Name)
		b.SetAttributeValue("source_class", cty.StringVal(g.SourceClassName))
		setBool(b, "auto_wire", g.AutoWire)
		writeProperties(b, g.Properties)
		for _, area := range g.Areas {
			ab := b.AppendNewBlock("area", nil).Body()
			ab.SetAttributeValue("x", cty.NumberIntVal(int64(area.X)))
			ab.SetAttributeValue("y", cty.NumberIntVal(int64(area.Y)))
			ab.SetAttributeValue("width", cty.NumberIntVal(int64(area.Width)))
			ab.SetAttributeValue("height", cty.NumberIntVal(int64(area.Height)))
		}
		writeLinks(b, g.Links)
	}
	for _, e := range o.ExternalManagedObjects {
		b := w.block("external_managed_object", e.Name)
		b.SetAttributeValue("type", cty.StringVal(e.ObjectType))
		writeLinks(b, e.Links)
	}
	for _, mos := range o.ManagedObjectSources {
		b := w.block("managed_object_source", mos.Name)
		b.SetAttributeValue("source_class", cty.StringVal(mos.SourceClassName))
		setString(b, "timeout", mos.Timeout)
		writeProperties(b, mos.Properties)
		for _, flow := range mos.Flows {
			fb := b.AppendNewBlock("flow", []string{flow.Name}).Body()
			setString(fb, "argument_type", flow.ArgumentType)
			writeLinks(fb, flow.Links)
		}
		for _, team := range mos.Teams {
			tb := b.AppendNewBlock("team", []string{team.Name}).Body()
			writeLinks(tb, team.Links)
		}
	}
	for _, mo := range o.ManagedObjects {
		b := w.block("managed_object", mo.Name)
		b.SetAttributeValue("scope", cty.StringVal(string(mo.Scope)))
		writeQualifications(b, mo.TypeQualifications)
		for _, dep := range mo.Dependencies {
			db := b.AppendNewBlock("dependency", []string{dep.Name}).Body()
			setString(db, "type", dep.ObjectType)
			setString(db, "qualifier", dep.TypeQualifier)
			writeLinks(db, dep.Links)
		}
		writeLinks(b, mo.Links)
	}
	for _, s := range o.Sections {
		writeSection(w.block("section", s.Name), s)
	}
	for _, e := range o.Escalations {
		writeLinks(w.block("escalation", e.Name), e.Links)
	}
	for _, s := range o.Starts {
		writeLinks(w.block("start", s.Name), s.Links)
	}

	return hclwrite.Format(f.Bytes())
}

// writer separates top-level blocks with a blank line.
type writer struct {
	root  *hclwrite.Body
	count int
}

func (w *writer) block(typ, label string) *hclwrite.Body {
	if w.count > 0 {
		w.root.AppendNewline()
	}
	w.count++
	return w.root.AppendNewBlock(typ, []string{label}).Body()
}

func writeSection(b *hclwrite.Body, s *model.Section) {
	b.SetAttributeValue("source_class", cty.StringVal(s.SourceClassName))
	setString(b, "location", s.Location)
	if s.X != 0 || s.Y != 0 {
		b.SetAttributeValue("x", cty.NumberIntVal(int64(s.X)))
		b.SetAttributeValue("y", cty.NumberIntVal(int64(s.Y)))
	}
	writeProperties(b, s.Properties)
	for _, in := range s.Inputs {
		ib := b.AppendNewBlock("input", []string{in.Name}).Body()
		setString(ib, "parameter_type", in.ParameterType)
	}
	for _, out := range s.Outputs {
		ob := b.AppendNewBlock("output", []string{out.Name}).Body()
		setString(ob, "argument_type", out.ArgumentType)
		setBool(ob, "escalation_only", out.EscalationOnly)
		writeLinks(ob, out.Links)
	}
	for _, obj := range s.Objects {
		ob := b.AppendNewBlock("object", []string{obj.Name}).Body()
		setString(ob, "type", obj.ObjectType)
		setString(ob, "qualifier", obj.TypeQualifier)
		writeLinks(ob, obj.Links)
	}
	if s.SubSection != nil {
		writeSubSectionContents(b, s.SubSection)
	}
}

func writeSubSectionContents(b *hclwrite.Body, sub *model.SubSection) {
	for _, child := range sub.SubSections {
		cb := b.AppendNewBlock("sub_section", []string{child.Name}).Body()
		writeSubSectionContents(cb, child)
	}
	for _, fn := range sub.Functions {
		writeLinks(b.AppendNewBlock("function", []string{fn.Name}).Body(), fn.Links)
	}
}

func writeLinks(b *hclwrite.Body, links []*model.Connection) {
	for _, c := range links {
		lb := b.AppendNewBlock("link", []string{c.Kind.String()}).Body()
		setString(lb, "section", c.To.Parent)
		lb.SetAttributeValue("to", cty.StringVal(c.To.Name))
		setString(lb, "order", c.Order)
	}
}

func writeProperties(b *hclwrite.Body, props model.PropertyList) {
	for _, p := range props {
		b.AppendNewBlock("property", []string{p.Name}).Body().SetAttributeValue("value", cty.StringVal(p.Value))
	}
}

func writeQualifications(b *hclwrite.Body, tqs []*model.TypeQualification) {
	for _, tq := range tqs {
		qb := b.AppendNewBlock("type_qualification", nil).Body()
		setString(qb, "qualifier", tq.Qualifier)
		qb.SetAttributeValue("type", cty.StringVal(tq.Type))
	}
}

func setString(b *hclwrite.Body, name, value string) {
	if value != "" {
		b.SetAttributeValue(name, cty.StringVal(value))
	}
}

func setBool(b *hclwrite.Body, name string, value bool) {
	if value {
		b.SetAttributeValue(name, cty.True)
	}
}

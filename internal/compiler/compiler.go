package compiler

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/vk/officegraph/internal/architect"
	"github.com/vk/officegraph/internal/ctxlog"
	"github.com/vk/officegraph/internal/model"
)

// Result summarises a compilation.
type Result struct {
	// Issues lists every problem reported to the architect, in order.
	Issues []string
	// Links counts the links made.
	Links int
}

// OK reports whether the compilation found no issues.
func (r Result) OK() bool { return len(r.Issues) == 0 }

// compilation holds the handles built so far. Nodes are registered by
// identity and by persisted name, so connections that were never resolved
// still link by name.
type compilation struct {
	office *model.Office
	arch   architect.Architect
	result Result

	byNode map[model.Node]architect.Handle
	byRef  map[model.NodeKind]map[model.Ref]architect.Handle

	deferred []deferredLink
}

type deferredLink struct {
	owner  string
	source architect.Handle
	conn   *model.Connection
}

// Compile drives arch to build the runtime wiring of o. It panics when o
// holds a managed object with an unknown scope, since such a graph can not
// be produced through the change operations.
func Compile(ctx context.Context, o *model.Office, arch architect.Architect) Result {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Compile: Starting office compilation.",
		"sections", len(o.Sections), "managed_objects", len(o.ManagedObjects))

	c := &compilation{
		office: o,
		arch:   arch,
		byNode: make(map[model.Node]architect.Handle),
		byRef:  make(map[model.NodeKind]map[model.Ref]architect.Handle),
	}

	c.teams()
	c.governances()
	c.administrations()
	c.externals()
	c.sources()
	c.managedObjects()
	c.sections(ctx)
	c.escalations()
	c.starts()

	logger.Debug("Compile: Linking deferred connections.", "count", len(c.deferred))
	for _, d := range c.deferred {
		c.link(d.owner, d.source, d.conn)
	}

	logger.Info("Compile: Office compilation complete.", "links", c.result.Links, "issues", len(c.result.Issues))
	return c.result
}

func (c *compilation) register(n model.Node, ref model.Ref, h architect.Handle) {
	c.byNode[n] = h
	names, ok := c.byRef[n.Kind()]
	if !ok {
		names = make(map[model.Ref]architect.Handle)
		c.byRef[n.Kind()] = names
	}
	if _, exists := names[ref]; !exists {
		names[ref] = h
	}
}

func (c *compilation) issue(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.result.Issues = append(c.result.Issues, msg)
	c.arch.AddIssue(msg)
}

// target returns the handle of conn's target, falling back to its persisted
// name when the connection is not live.
func (c *compilation) target(conn *model.Connection) (architect.Handle, bool) {
	if conn.IsConnected() {
		h, ok := c.byNode[conn.Target()]
		return h, ok
	}
	h, ok := c.byRef[conn.Kind.Target()][conn.To]
	return h, ok
}

func (c *compilation) link(owner string, source architect.Handle, conn *model.Connection) {
	target, ok := c.target(conn)
	if !ok {
		c.issue("%s: unknown %s '%s' for %s", owner, conn.Kind.Target(), conn.To, conn.Kind)
		return
	}
	c.arch.Link(conn.Kind, source, target)
	c.result.Links++
}

// links links every connection of the given kinds owned by n.
func (c *compilation) links(owner string, n model.Node, source architect.Handle, kinds ...model.EdgeKind) {
	for _, kind := range kinds {
		for _, conn := range n.Endpoint().Outgoing(kind) {
			c.link(owner, source, conn)
		}
	}
}

func (c *compilation) later(owner string, n model.Node, source architect.Handle, kinds ...model.EdgeKind) {
	for _, kind := range kinds {
		for _, conn := range n.Endpoint().Outgoing(kind) {
			c.deferred = append(c.deferred, deferredLink{owner: owner, source: source, conn: conn})
		}
	}
}

func (c *compilation) qualify(h architect.Handle, n model.Qualified) {
	for _, tq := range *n.Qualifications() {
		c.arch.AddTypeQualification(h, tq.Qualifier, tq.Type)
	}
}

func (c *compilation) teams() {
	for _, t := range c.office.Teams {
		h := c.arch.AddTeam(t.Name)
		c.register(t, model.Ref{Name: t.Name}, h)
		c.qualify(h, t)
	}
}

func (c *compilation) governances() {
	for _, g := range c.office.Governances {
		h := c.arch.AddGovernance(g.Name, g.SourceClassName, g.Properties.Clone(), g.AutoWire)
		c.register(g, model.Ref{Name: g.Name}, h)
		c.links("governance "+g.Name, g, h, model.EdgeGovernanceToTeam)
	}
}

func (c *compilation) administrations() {
	for _, a := range c.office.Administrations {
		h := c.arch.AddAdministration(a.Name, a.SourceClassName, a.Properties.Clone(), a.AutoWire)
		c.register(a, model.Ref{Name: a.Name}, h)
		c.links("administration "+a.Name, a, h, model.EdgeAdministrationToTeam)
	}
}

func (c *compilation) externals() {
	for _, e := range c.office.ExternalManagedObjects {
		h := c.arch.AddExternalManagedObject(e.Name, e.ObjectType)
		c.register(e, model.Ref{Name: e.Name}, h)
		owner := "external managed object " + e.Name
		c.administer(owner, h, e.Outgoing(model.EdgeExternalManagedObjectToAdministration))
		c.links(owner, e, h, model.EdgeExternalManagedObjectToGovernance)
	}
}

func (c *compilation) sources() {
	for _, mos := range c.office.ManagedObjectSources {
		owner := "managed object source " + mos.Name
		timeout, err := parseTimeout(mos.Timeout)
		if err != nil {
			c.issue("%s: invalid timeout '%s'", owner, mos.Timeout)
		}
		h := c.arch.AddManagedObjectSource(mos.Name, mos.SourceClassName, mos.Properties.Clone(), timeout)
		c.register(mos, model.Ref{Name: mos.Name}, h)

		for _, flow := range mos.Flows {
			fh := c.arch.AddManagedObjectSourceFlow(h, flow.Name, flow.ArgumentType)
			c.later(owner+" flow "+flow.Name, flow, fh, model.EdgeFlowToSectionInput)
		}
		for _, team := range mos.Teams {
			th := c.arch.AddManagedObjectSourceTeam(h, team.Name)
			c.links(owner+" team "+team.Name, team, th, model.EdgeManagedObjectSourceTeamToTeam)
		}
	}
}

// parseTimeout reads a persisted timeout. An empty timeout is zero.
func parseTimeout(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	timeout, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return timeout, nil
}

func (c *compilation) managedObjects() {
	for _, mo := range c.office.ManagedObjects {
		owner := "managed object " + mo.Name
		if !mo.Scope.Valid() {
			panic(fmt.Errorf("%s: %w: %q", owner, model.ErrUnknownScope, mo.Scope))
		}
		bind := mo.First(model.EdgeManagedObjectToManagedObjectSource)
		if bind == nil {
			c.issue("%s: no managed object source", owner)
			continue
		}
		source, ok := c.target(bind)
		if !ok {
			c.issue("%s: unknown managed object source '%s'", owner, bind.To)
			continue
		}
		h := c.arch.AddManagedObject(source, mo.Name, mo.Scope)
		c.register(mo, model.Ref{Name: mo.Name}, h)
		c.qualify(h, mo)

		for _, dep := range mo.Dependencies {
			dh := c.arch.AddManagedObjectDependency(h, dep.Name, dep.ObjectType, dep.TypeQualifier)
			c.later(owner+" dependency "+dep.Name, dep, dh,
				model.EdgeDependencyToManagedObject, model.EdgeDependencyToExternalManagedObject)
		}
		c.administer(owner, h, mo.Outgoing(model.EdgeManagedObjectToAdministration))
		c.links(owner, mo, h, model.EdgeManagedObjectToGovernance)
	}
}

// administer links administration connections in ascending order. An order
// that is not a number sorts after every numbered one; ties keep their
// original order.
func (c *compilation) administer(owner string, source architect.Handle, conns []*model.Connection) {
	for _, conn := range ByOrder(conns) {
		c.link(owner, source, conn)
	}
}

// ByOrder returns conns sorted by their numeric Order.
func ByOrder(conns []*model.Connection) []*model.Connection {
	sorted := slices.Clone(conns)
	slices.SortStableFunc(sorted, func(a, b *model.Connection) int {
		return cmp.Compare(orderOf(a), orderOf(b))
	})
	return sorted
}

func orderOf(conn *model.Connection) int {
	n, err := strconv.Atoi(strings.TrimSpace(conn.Order))
	if err != nil {
		return math.MaxInt
	}
	return n
}

func (c *compilation) sections(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	for _, s := range c.office.Sections {
		logger.Debug("Compile: Compiling section.", "section", s.Name)
		owner := "section " + s.Name
		h := c.arch.AddSection(s.Name, s.SourceClassName, s.Location, s.Properties.Clone())
		c.register(s, model.Ref{Name: s.Name}, h)

		for _, in := range s.Inputs {
			ih := c.arch.AddSectionInput(h, in.Name, in.ParameterType)
			c.register(in, model.Ref{Parent: s.Name, Name: in.Name}, ih)
		}
		for _, out := range s.Outputs {
			oh := c.arch.AddSectionOutput(h, out.Name, out.ArgumentType, out.EscalationOnly)
			c.later(owner+" output "+out.Name, out, oh, model.EdgeSectionOutputToSectionInput)
		}
		for _, obj := range s.Objects {
			oh := c.arch.AddSectionObject(h, obj.Name, obj.ObjectType, obj.TypeQualifier)
			c.later(owner+" object "+obj.Name, obj, oh,
				model.EdgeSectionObjectToManagedObject, model.EdgeSectionObjectToExternalManagedObject)
		}

		for _, g := range c.office.Governances {
			gh, ok := c.byNode[g]
			if ok && g.Governs(s.X, s.Y) {
				c.arch.Govern(gh, h)
			}
		}

		if s.SubSection != nil {
			c.subSection(owner, h, s.SubSection)
		}
	}
}

// subSection compiles the contents of sub beneath parent. The root of a
// section's tree is the section itself.
func (c *compilation) subSection(owner string, parent architect.Handle, sub *model.SubSection) {
	for _, child := range sub.SubSections {
		ch := c.arch.AddSubSection(parent, child.Name)
		c.subSection(owner+"/"+child.Name, ch, child)
	}
	for _, fn := range sub.Functions {
		fh := c.arch.AddFunction(parent, fn.Name)
		c.links(owner+" function "+fn.Name, fn, fh,
			model.EdgeFunctionToTeam,
			model.EdgeFunctionToPreAdministration,
			model.EdgeFunctionToPostAdministration,
			model.EdgeFunctionToGovernance)
	}
}

func (c *compilation) escalations() {
	for _, e := range c.office.Escalations {
		h := c.arch.AddEscalation(e.Name)
		c.links("escalation "+e.Name, e, h, model.EdgeEscalationToSectionInput)
	}
}

func (c *compilation) starts() {
	for _, s := range c.office.Starts {
		h := c.arch.AddStart(s.Name)
		c.links("start "+s.Name, s, h, model.EdgeStartToSectionInput)
	}
}

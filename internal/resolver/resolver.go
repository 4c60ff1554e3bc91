package resolver

import (
	"context"
	"fmt"
	"slices"

	"github.com/vk/officegraph/internal/ctxlog"
	"github.com/vk/officegraph/internal/metrics"
	"github.com/vk/officegraph/internal/model"
)

// Reasons a persisted connection is dropped.
const (
	ReasonUnknownTarget = "unknown target"
	ReasonWrongOwner    = "connection kind does not belong to its owner"
	ReasonDuplicate     = "owner already holds a single connection"
)

// Dropped describes a persisted connection removed during resolution.
type Dropped struct {
	Owner  string
	Kind   model.EdgeKind
	To     model.Ref
	Reason string
}

func (d Dropped) String() string {
	return fmt.Sprintf("%s: %s -> %s (%s)", d.Owner, d.Kind, d.To, d.Reason)
}

// Report summarises one resolution pass.
type Report struct {
	// Connected counts connections made live by this pass.
	Connected int
	// Live counts connections that were already live and left alone.
	Live    int
	Dropped []Dropped
}

// Resolver connects and captures office graphs.
type Resolver struct {
	metrics *metrics.Metrics
}

// New returns a Resolver recording into m, which may be nil.
func New(m *metrics.Metrics) *Resolver {
	return &Resolver{metrics: m}
}

// Connect resolves every persisted connection of o.
func (r *Resolver) Connect(ctx context.Context, o *model.Office) Report {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolve: Starting connection resolution.")

	ix := NewIndex(o)
	var report Report
	o.Walk(func(n model.Node) {
		ep := n.Endpoint()
		for _, c := range slices.Clone(ep.Links) {
			if c.IsConnected() {
				report.Live++
				continue
			}
			reason := resolve(ix, n, c)
			if reason == "" {
				report.Connected++
				continue
			}
			ep.Drop(c)
			d := Dropped{Owner: fmt.Sprintf("%s %s", n.Kind(), n.NodeName()), Kind: c.Kind, To: c.To, Reason: reason}
			report.Dropped = append(report.Dropped, d)
			logger.Debug("Resolve: Dropped unresolvable connection.",
				"owner", d.Owner, "kind", d.Kind.String(), "to", d.To.String(), "reason", reason)
		}
	})

	r.metrics.ObserveResolution(report.Connected, len(report.Dropped))
	logger.Debug("Resolve: Connection resolution complete.",
		"connected", report.Connected, "live", report.Live, "dropped", len(report.Dropped))
	return report
}

// resolve connects c and returns the empty string, or returns why it could
// not.
func resolve(ix *Index, owner model.Node, c *model.Connection) string {
	if c.Kind.Source() != owner.Kind() {
		return ReasonWrongOwner
	}
	// Single kinds of one owner share a slot: a section object or dependency
	// links to a managed object or an external one, never both.
	if c.Kind.Single() {
		for _, other := range owner.Endpoint().Links {
			if other != c && other.IsConnected() && other.Kind.Single() {
				return ReasonDuplicate
			}
		}
	}
	target, ok := ix.Lookup(c.Kind.Target(), c.To)
	if !ok {
		return ReasonUnknownTarget
	}
	if err := c.Connect(owner, target); err != nil {
		return err.Error()
	}
	return ""
}

// Capture refreshes the persisted reference of every live connection from
// its target. It returns the number of connections captured per edge kind.
func (r *Resolver) Capture(ctx context.Context, o *model.Office) map[model.EdgeKind]int {
	parents := make(map[*model.SectionInput]string)
	for _, s := range o.Sections {
		for _, in := range s.Inputs {
			parents[in] = s.Name
		}
	}

	counts := make(map[model.EdgeKind]int)
	o.Walk(func(n model.Node) {
		for _, c := range n.Endpoint().Links {
			if !c.IsConnected() {
				continue
			}
			ref := model.Ref{Name: c.Target().NodeName()}
			if in, ok := c.Target().(*model.SectionInput); ok {
				ref.Parent = parents[in]
			}
			c.To = ref
			counts[c.Kind]++
		}
	})
	ctxlog.FromContext(ctx).Debug("Resolve: Captured connection names.", "kinds", len(counts))
	return counts
}

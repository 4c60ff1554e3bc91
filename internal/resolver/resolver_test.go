package resolver_test

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/officegraph/internal/ctxlog"
	"github.com/vk/officegraph/internal/metrics"
	"github.com/vk/officegraph/internal/model"
	"github.com/vk/officegraph/internal/resolver"
	"github.com/vk/officegraph/internal/testutil"
)

// persisted returns the sample office as if freshly decoded: every
// connection is held by its owner but none is live. It also returns the
// target each connection had.
func persisted(t *testing.T) (*testutil.Sample, map[*model.Connection]model.Node) {
	t.Helper()
	s := testutil.NewSample(t)
	resolver.New(nil).Capture(context.Background(), s.Office)

	targets := make(map[*model.Connection]model.Node)
	s.Office.Walk(func(n model.Node) {
		links := slices.Clone(n.Endpoint().Links)
		for _, c := range links {
			targets[c] = c.Target()
			c.Remove()
		}
		n.Endpoint().Links = links
	})
	return s, targets
}

func TestConnect_ResolvesPersistedConnections(t *testing.T) {
	t.Parallel()
	s, targets := persisted(t)
	m := metrics.New()

	report := resolver.New(m).Connect(context.Background(), s.Office)

	assert.Equal(t, len(targets), report.Connected)
	assert.Empty(t, report.Dropped)
	for c, target := range targets {
		require.True(t, c.IsConnected(), "%s", c)
		assert.Same(t, target, c.Target(), "%s", c)
	}
	assert.Equal(t, float64(len(targets)), promtest.ToFloat64(m.LinksResolved))
}

func TestConnect_IsIdempotent(t *testing.T) {
	t.Parallel()
	s, targets := persisted(t)
	r := resolver.New(nil)
	r.Connect(context.Background(), s.Office)
	before := testutil.Snapshot(s.Office)

	report := r.Connect(context.Background(), s.Office)

	assert.Zero(t, report.Connected)
	assert.Equal(t, len(targets), report.Live)
	if diff := cmp.Diff(before, testutil.Snapshot(s.Office)); diff != "" {
		t.Errorf("second resolution changed the office (-before +after):\n%s", diff)
	}
}

func TestConnect_DropsUnresolvableConnections(t *testing.T) {
	t.Parallel()
	s, targets := persisted(t)
	failed, _ := s.Billing.Output("failed")
	ghost := model.NewConnection(model.EdgeFunctionToGovernance, model.Ref{Name: "ghost"})
	stale := model.NewConnection(model.EdgeSectionOutputToSectionInput, model.Ref{Parent: "orders", Name: "missing"})
	twice := model.NewConnection(model.EdgeFunctionToTeam, model.Ref{Name: "admins"})
	s.Check.Links = append(s.Check.Links, ghost, twice)
	failed.Links = append(failed.Links, stale)

	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	m := metrics.New()

	report := resolver.New(m).Connect(ctx, s.Office)

	require.Len(t, report.Dropped, 3)
	// Walk order: billing's output first, then the function in orders.
	assert.Equal(t, "section_output failed: section_output_to_section_input -> orders.missing (unknown target)", report.Dropped[0].String())
	assert.Equal(t, resolver.ReasonUnknownTarget, report.Dropped[1].Reason)
	assert.Equal(t, model.Ref{Name: "ghost"}, report.Dropped[1].To)
	assert.Equal(t, resolver.ReasonDuplicate, report.Dropped[2].Reason)
	assert.Equal(t, len(targets), report.Connected, "other connections are unaffected")

	assert.NotContains(t, s.Check.Links, ghost)
	assert.NotContains(t, s.Check.Links, twice)
	assert.Empty(t, failed.Links)
	assert.Equal(t, 3.0, promtest.ToFloat64(m.LinksDropped))
	assert.Contains(t, logs.String(), "Resolve: Dropped unresolvable connection.")
}

func TestConnect_SingleKindsShareOneSlot(t *testing.T) {
	t.Parallel()
	s, targets := persisted(t)
	conn, _ := s.Orders.Object("conn")
	clockDep := s.Connection.Dependencies[0]
	external := model.NewConnection(model.EdgeSectionObjectToExternalManagedObject, model.Ref{Name: "clock"})
	managed := model.NewConnection(model.EdgeDependencyToManagedObject, model.Ref{Name: "connection"})
	conn.Links = append(conn.Links, external)
	clockDep.Links = append(clockDep.Links, managed)

	report := resolver.New(nil).Connect(context.Background(), s.Office)

	require.Len(t, report.Dropped, 2)
	for _, d := range report.Dropped {
		assert.Equal(t, resolver.ReasonDuplicate, d.Reason, d.String())
	}
	assert.Equal(t, len(targets), report.Connected)
	assert.Equal(t, model.EdgeSectionObjectToManagedObject, conn.Links[0].Kind, "the first persisted link wins")
	assert.Len(t, conn.Links, 1)
	assert.Len(t, clockDep.Links, 1)
	assert.Empty(t, s.Clock.Incoming(model.EdgeSectionObjectToExternalManagedObject))
}

func TestCapture_CopiesLiveNames(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	place, _ := s.Orders.Input("place")
	place.Name = "submit"
	s.Orders.Name = "purchases"
	s.Workers.Name = "staff"

	counts := resolver.New(nil).Capture(context.Background(), s.Office)

	start := s.Start.Links[0]
	assert.Equal(t, model.Ref{Parent: "purchases", Name: "submit"}, start.To)
	assert.Equal(t, model.Ref{Name: "staff"}, s.Check.First(model.EdgeFunctionToTeam).To)

	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, 15, total)
	assert.Len(t, counts, 14)
	assert.Equal(t, 2, counts[model.EdgeManagedObjectToAdministration])
}

func TestCapture_ThenConnectRoundTrips(t *testing.T) {
	t.Parallel()
	s, _ := persisted(t)
	r := resolver.New(nil)
	r.Connect(context.Background(), s.Office)
	r.Capture(context.Background(), s.Office)
	want := testutil.Snapshot(s.Office)

	again, _ := persisted(t)
	r.Connect(context.Background(), again.Office)

	assert.Empty(t, cmp.Diff(want, testutil.Snapshot(again.Office)))
}

func TestIndex_Lookup(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ix := resolver.NewIndex(s.Office)

	n, ok := ix.Lookup(model.KindSectionInput, model.Ref{Parent: "billing", Name: "charge"})
	require.True(t, ok)
	charge, _ := s.Billing.Input("charge")
	assert.Same(t, charge, n)

	_, ok = ix.Lookup(model.KindSectionInput, model.Ref{Parent: "orders", Name: "charge"})
	assert.False(t, ok, "inputs are scoped by section")
	n, ok = ix.Lookup(model.KindTeam, model.Ref{Name: "missing"})
	assert.False(t, ok)
	assert.Nil(t, n)
	_, ok = ix.Lookup(model.KindFunction, model.Ref{Name: "check"})
	assert.False(t, ok, "functions are not connection targets")

	sec, ok := ix.Section("orders")
	require.True(t, ok)
	assert.Same(t, s.Orders, sec)
	_, ok = ix.Input("billing", "charge")
	assert.True(t, ok)
}

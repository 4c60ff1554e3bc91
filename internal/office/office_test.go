package office_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/officegraph/internal/change"
	"github.com/vk/officegraph/internal/model"
	"github.com/vk/officegraph/internal/office"
	"github.com/vk/officegraph/internal/testutil"
)

// applyRevert applies c, runs check, reverts c and asserts the office is
// back to its prior structure.
func applyRevert(t *testing.T, o *model.Office, c change.Change, check func()) {
	t.Helper()
	before := testutil.Snapshot(o)

	require.False(t, change.IsNoChange(c), "unexpected no change: %s", c.Description())
	require.NoError(t, c.Apply())
	if check != nil {
		check()
	}
	require.NoError(t, c.Revert())

	if diff := cmp.Diff(before, testutil.Snapshot(o)); diff != "" {
		t.Fatalf("revert did not restore the office (-before +after):\n%s", diff)
	}
}

func countDisconnects(c change.Change) int {
	n := 0
	for _, leaf := range change.Flatten(c) {
		if strings.HasPrefix(leaf.Description(), "Disconnect ") {
			n++
		}
	}
	return n
}

func TestRemove_DisconnectsEveryLiveConnection(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)

	// Arrange: count the live connections of the managed object and its
	// dependencies.
	live := map[*model.Connection]bool{}
	for _, n := range model.Subtree(s.Connection) {
		for _, c := range n.Endpoint().Live() {
			live[c] = true
		}
	}
	require.Len(t, live, 6)

	// Act
	removal := ops.RemoveManagedObject(s.Connection)

	// Assert
	assert.Equal(t, len(live), countDisconnects(removal))
	assert.Len(t, change.Flatten(removal), len(live)+1)

	applyRevert(t, s.Office, removal, func() {
		assert.NotContains(t, s.Office.ManagedObjects, s.Connection)
		assert.False(t, s.Clock.HasLive())
		assert.Empty(t, s.DB.Incoming(model.EdgeManagedObjectToManagedObjectSource))
		for c := range live {
			assert.False(t, c.IsConnected())
		}
	})
	for c := range live {
		assert.True(t, c.IsConnected(), "%s is reconnected", c)
	}
}

func TestRemove_NotInOfficeIsNoChange(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)

	c := ops.RemoveTeam(&model.Team{Name: "ghost"})
	assert.True(t, change.IsNoChange(c))
	assert.Contains(t, c.Description(), "ghost")
}

func TestRemoveSection_RestoresConnectionOrder(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)
	charge, _ := s.Billing.Input("charge")
	incoming := charge.Live()

	applyRevert(t, s.Office, ops.RemoveSection(s.Billing), func() {
		assert.Equal(t, []string{"orders"}, model.Names(s.Office.Sections))
		assert.False(t, s.Escalation.HasLive())
	})
	assert.Equal(t, incoming, charge.Live())
}

func TestRemoveManagedObjectSource_RemovesBoundObjects(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)

	applyRevert(t, s.Office, ops.RemoveManagedObjectSource(s.DB), func() {
		assert.Empty(t, s.Office.ManagedObjectSources)
		assert.Empty(t, s.Office.ManagedObjects)
		place, _ := s.Orders.Input("place")
		assert.Empty(t, place.Incoming(model.EdgeFlowToSectionInput))
	})
}

func TestDisconnectFunction_CleansUpToTheSection(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)

	// Arrange: drop the team so only the administration link remains.
	team := ops.Disconnect(s.Check.First(model.EdgeFunctionToTeam))
	assert.Len(t, change.Flatten(team), 1, "the function is still administered")
	require.NoError(t, team.Apply())

	// Act
	last := ops.Disconnect(s.Check.First(model.EdgeFunctionToPreAdministration))

	// Assert: unlink, remove check, remove validate, clear the root.
	leaves := change.Flatten(last)
	require.Len(t, leaves, 4)
	assert.Equal(t, "Remove function check", leaves[1].Description())
	assert.Equal(t, "Remove sub-section validate", leaves[2].Description())

	applyRevert(t, s.Office, last, func() {
		assert.Nil(t, s.Orders.SubSection)
		assert.Empty(t, s.Audit.Incoming(model.EdgeFunctionToPreAdministration))
	})
	fn, ok := model.FunctionPath{SubSections: []string{"validate"}, Function: "check"}.Resolve(s.Orders)
	require.True(t, ok)
	assert.Same(t, s.Check, fn)
}

func TestDisconnectFunction_KeepsReferencedSiblings(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)
	path := model.FunctionPath{SubSections: []string{"validate"}, Function: "price"}
	require.NoError(t, ops.LinkFunction(s.Orders, path, model.EdgeFunctionToGovernance, s.Security).Apply())

	for _, c := range s.Check.Live() {
		require.NoError(t, ops.Disconnect(c).Apply())
	}

	require.NotNil(t, s.Orders.SubSection)
	validate := s.Orders.SubSection.SubSections[0]
	assert.Equal(t, []string{"price"}, model.Names(validate.Functions))
}

func TestRemoveAdministration_CleansOrphanedFunctions(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)

	// Arrange: a fresh chain whose only link is the administration.
	path := model.FunctionPath{SubSections: []string{"audit", "deep"}, Function: "trace"}
	require.NoError(t, ops.LinkFunction(s.Orders, path, model.EdgeFunctionToPreAdministration, s.Audit).Apply())
	trace, ok := path.Resolve(s.Orders)
	require.True(t, ok)

	// Act
	removal := ops.RemoveAdministration(s.Audit)

	// Assert
	applyRevert(t, s.Office, removal, func() {
		assert.NotContains(t, s.Office.Administrations, s.Audit)
		_, ok := path.Resolve(s.Orders)
		assert.False(t, ok, "the orphaned function is removed")
		require.NotNil(t, s.Orders.SubSection)
		assert.Equal(t, []string{"validate"}, model.Names(s.Orders.SubSection.SubSections))
		fn, ok := model.FunctionPath{SubSections: []string{"validate"}, Function: "check"}.Resolve(s.Orders)
		require.True(t, ok, "check keeps its team link")
		assert.Same(t, s.Check, fn)
	})
	fn, ok := path.Resolve(s.Orders)
	require.True(t, ok)
	assert.Same(t, trace, fn)
	assert.Same(t, s.Audit, trace.First(model.EdgeFunctionToPreAdministration).Target())
}

func TestRemoveTeam_CleansUpToTheSection(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)
	require.NoError(t, ops.Disconnect(s.Check.First(model.EdgeFunctionToPreAdministration)).Apply())
	require.NotNil(t, s.Orders.SubSection)

	removal := ops.RemoveTeam(s.Workers)

	applyRevert(t, s.Office, removal, func() {
		assert.Nil(t, s.Orders.SubSection)
	})
	assert.Same(t, s.Workers, s.Check.First(model.EdgeFunctionToTeam).Target())
}

func TestOperations_NilNodesAreNoChange(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)
	var section *model.Section

	testCases := []struct {
		name string
		c    change.Change
	}{
		{"link function", ops.LinkFunction(section, model.FunctionPath{Function: "f"}, model.EdgeFunctionToTeam, s.Workers)},
		{"refactor section", ops.RefactorSection(section, office.SectionRefactor{Name: "x"})},
		{"refactor source", ops.RefactorManagedObjectSource(nil, office.ManagedObjectSourceRefactor{Name: "x"})},
		{"refactor managed object", ops.RefactorManagedObject(nil, office.ManagedObjectRefactor{Name: "x", Scope: model.ScopeThread})},
		{"remove team", ops.RemoveTeam(nil)},
		{"remove section", ops.RemoveSection(section)},
		{"remove input", ops.RemoveSectionInput(section, nil)},
		{"remove dependency", ops.RemoveManagedObjectDependency(nil, nil)},
		{"rename", ops.Rename(section, "x")},
		{"connect", ops.Connect(model.EdgeFunctionToTeam, s.Check, (*model.Team)(nil))},
		{"remove qualification", ops.RemoveTypeQualification(nil)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, change.IsNoChange(tc.c), tc.c.Description())
		})
	}
}

func TestDisconnect_UnconnectedIsNoChange(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)
	c := model.NewConnection(model.EdgeFunctionToTeam, model.Ref{Name: "workers"})

	assert.True(t, change.IsNoChange(ops.Disconnect(c)))
	assert.True(t, change.IsNoChange(ops.Disconnect(nil)))
}

func TestLinkFunction_CreatesMissingPath(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)
	path, err := model.ParseFunctionPath("charges.card.authorize")
	require.NoError(t, err)

	link := ops.LinkFunction(s.Billing, path, model.EdgeFunctionToGovernance, s.Security)

	applyRevert(t, s.Office, link, func() {
		fn, ok := path.Resolve(s.Billing)
		require.True(t, ok)
		assert.Same(t, fn, link.Target().Source())
		assert.Same(t, s.Security, link.Target().Target())
		assert.Equal(t, model.Ref{Name: "security"}, link.Target().To)
	})
	assert.Nil(t, s.Billing.SubSection, "the created chain is removed")
}

func TestLinkFunction_ExtendsExistingPath(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)
	validate := s.Orders.SubSection.SubSections[0]

	deep := model.FunctionPath{SubSections: []string{"validate", "deep"}, Function: "inspect"}
	applyRevert(t, s.Office, ops.LinkFunction(s.Orders, deep, model.EdgeFunctionToPostAdministration, s.Txn), func() {
		assert.Equal(t, []string{"deep"}, model.Names(validate.SubSections))
		assert.Equal(t, []string{"check"}, model.Names(validate.Functions))
	})
	assert.Empty(t, validate.SubSections)
	assert.Same(t, s.Check, validate.Functions[0])

	sibling := model.FunctionPath{SubSections: []string{"validate"}, Function: "aardvark"}
	require.NoError(t, ops.LinkFunction(s.Orders, sibling, model.EdgeFunctionToTeam, s.Workers).Apply())
	assert.Equal(t, []string{"aardvark", "check"}, model.Names(validate.Functions))
}

func TestLinkFunction_RejectsInvalidLinks(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)
	path := model.FunctionPath{SubSections: []string{"validate"}, Function: "check"}

	for name, c := range map[string]change.Change{
		"already linked":  ops.LinkFunction(s.Orders, path, model.EdgeFunctionToPreAdministration, s.Audit),
		"wrong target":    ops.LinkFunction(s.Orders, path, model.EdgeFunctionToTeam, s.Audit),
		"not a function":  ops.LinkFunction(s.Orders, path, model.EdgeAdministrationToTeam, s.Workers),
		"missing target":  ops.LinkFunction(s.Orders, path, model.EdgeFunctionToTeam, &model.Team{Name: "ghost"}),
		"missing section": ops.LinkFunction(&model.Section{Name: "ghost"}, path, model.EdgeFunctionToTeam, s.Workers),
	} {
		assert.True(t, change.IsNoChange(c), name)
	}
}

func TestLinkFunction_ReplacesTeam(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)
	path := model.FunctionPath{SubSections: []string{"validate"}, Function: "check"}

	applyRevert(t, s.Office, ops.LinkFunction(s.Orders, path, model.EdgeFunctionToTeam, s.Admins), func() {
		teams := s.Check.Outgoing(model.EdgeFunctionToTeam)
		require.Len(t, teams, 1)
		assert.Same(t, s.Admins, teams[0].Target())
	})
}

func TestLinkFunction_UndoRedoWithCleanup(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)
	h := change.NewHistory(nil)
	before := testutil.Snapshot(s.Office)
	path := model.FunctionPath{SubSections: []string{"charges"}, Function: "authorize"}

	entry, err := h.Do(ops.LinkFunction(s.Billing, path, model.EdgeFunctionToTeam, s.Workers))
	require.NoError(t, err)
	conn := entry.Change.(change.Typed[*model.Connection]).Target()
	_, err = h.Do(ops.Disconnect(conn))
	require.NoError(t, err)
	assert.Nil(t, s.Billing.SubSection)

	for i := 0; i < 2; i++ {
		_, err = h.Undo()
		require.NoError(t, err)
	}
	assert.Empty(t, cmp.Diff(before, testutil.Snapshot(s.Office)))

	_, err = h.Redo()
	require.NoError(t, err)
	_, ok := path.Resolve(s.Billing)
	assert.True(t, ok)
	_, err = h.Redo()
	require.NoError(t, err)
	assert.Nil(t, s.Billing.SubSection)
}

func TestConnect_ReplacesSingleConnection(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)
	obj, _ := s.Orders.Object("conn")

	replace := ops.Connect(model.EdgeSectionObjectToExternalManagedObject, obj, s.Clock)
	assert.Equal(t, 1, countDisconnects(replace))

	applyRevert(t, s.Office, replace, func() {
		live := obj.Live()
		require.Len(t, live, 1)
		assert.Same(t, s.Clock, live[0].Target())
		assert.Empty(t, s.Connection.Incoming(model.EdgeSectionObjectToManagedObject))
	})
}

func TestConnect_SectionInputRef(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)
	failed, _ := s.Billing.Output("failed")
	place, _ := s.Orders.Input("place")

	c := ops.Connect(model.EdgeSectionOutputToSectionInput, failed, place)
	require.NoError(t, c.Apply())
	assert.Equal(t, model.Ref{Parent: "orders", Name: "place"}, c.Target().To)
}

func TestConnect_InvalidIsNoChange(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)
	obj, _ := s.Orders.Object("conn")

	assert.True(t, change.IsNoChange(ops.Connect(model.EdgeSectionObjectToManagedObject, obj, s.Clock)), "kind mismatch")
	assert.True(t, change.IsNoChange(ops.Connect(model.EdgeSectionObjectToManagedObject, obj, s.Connection)), "already connected")
	assert.True(t, change.IsNoChange(ops.Connect(model.EdgeAdministrationToTeam, s.Txn, &model.Team{Name: "ghost"})), "outside the office")
	assert.True(t, change.IsNoChange(ops.Connect(model.EdgeAdministrationToTeam, nil, s.Workers)), "nil source")
}

func TestConnectAdministration_Order(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)
	add := ops.AddAdministration("zeta", "Zeta", nil, false)
	require.NoError(t, add.Apply())
	admin := add.Target()

	c := ops.ConnectAdministration(s.Clock, admin, "1")
	require.NoError(t, c.Apply())
	assert.Equal(t, model.EdgeExternalManagedObjectToAdministration, c.Target().Kind)
	assert.Equal(t, "1", c.Target().Order)

	applyRevert(t, s.Office, ops.SetAdministrationOrder(c.Target(), "5"), func() {
		assert.Equal(t, "5", c.Target().Order)
	})
	assert.True(t, change.IsNoChange(ops.SetAdministrationOrder(c.Target(), "1")))
	assert.True(t, change.IsNoChange(ops.SetAdministrationOrder(s.Check.First(model.EdgeFunctionToTeam), "1")))
}

func TestSiblingOrdering(t *testing.T) {
	t.Parallel()
	o := model.NewOffice()
	ops := office.New(o)

	for _, name := range []string{"m", "a", "z", "B"} {
		require.NoError(t, ops.AddTeam(name).Apply())
		assert.True(t, model.IsSortedByName(o.Teams))
	}
	assert.Equal(t, []string{"B", "a", "m", "z"}, model.Names(o.Teams))

	a := o.Teams[1]
	applyRevert(t, o, ops.Rename(a, "zz"), func() {
		assert.Equal(t, []string{"B", "m", "z", "zz"}, model.Names(o.Teams))
	})
	assert.Equal(t, []string{"B", "a", "m", "z"}, model.Names(o.Teams))

	assert.True(t, change.IsNoChange(ops.AddTeam("m")), "duplicate name")
	assert.True(t, change.IsNoChange(ops.Rename(a, "m")), "rename onto sibling")
	assert.True(t, change.IsNoChange(ops.Rename(a, "a")), "same name")
	assert.True(t, change.IsNoChange(ops.AddTeam("")), "empty name")
}

func TestRename_NestedNodes(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)
	place, _ := s.Orders.Input("place")

	applyRevert(t, s.Office, ops.Rename(place, "submit"), func() {
		assert.Equal(t, "submit", place.Name)
		assert.Len(t, place.Live(), 2, "connections follow the node")
	})
	applyRevert(t, s.Office, ops.Rename(s.Check, "verify"), nil)
	applyRevert(t, s.Office, ops.Rename(s.Orders.SubSection.SubSections[0], "check"), nil)
	applyRevert(t, s.Office, ops.Rename(s.DB.Flows[0], "onFailure"), nil)
	applyRevert(t, s.Office, ops.Rename(s.Connection.Dependencies[0], "time"), nil)

	assert.True(t, change.IsNoChange(ops.Rename(s.Orders.SubSection, "root")), "section root has no name")
	assert.True(t, change.IsNoChange(ops.Rename(&model.Start{Name: "x"}, "y")))
}

func TestAddSection(t *testing.T) {
	t.Parallel()
	o := model.NewOffice()
	ops := office.New(o)

	add := ops.AddSection("orders", "OrderSection", "orders.woof", model.PropertyList{{Name: "k", Value: "v"}}, office.SectionType{
		Inputs:  []office.InputType{{Name: "place"}, {Name: "cancel"}},
		Outputs: []office.OutputType{{Name: "done", EscalationOnly: true}},
	}, 10, 20)
	applyRevert(t, o, add, func() {
		s := add.Target()
		assert.Equal(t, []string{"cancel", "place"}, model.Names(s.Inputs))
		assert.True(t, s.Outputs[0].EscalationOnly)
		assert.Equal(t, 10, s.X)
	})
	assert.True(t, o.IsEmpty())

	dup := ops.AddSection("x", "", "", nil, office.SectionType{Objects: []office.ObjectType{{Name: "a"}, {Name: "a"}}}, 0, 0)
	assert.True(t, change.IsNoChange(dup))
}

func TestSectionChildren(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)
	place, _ := s.Orders.Input("place")

	applyRevert(t, s.Office, ops.AddSectionInput(s.Orders, office.InputType{Name: "amend"}), func() {
		assert.Equal(t, []string{"amend", "place"}, model.Names(s.Orders.Inputs))
	})
	applyRevert(t, s.Office, ops.RemoveSectionInput(s.Orders, place), func() {
		assert.False(t, s.Start.HasLive())
	})
	applyRevert(t, s.Office, ops.AddSectionOutput(s.Orders, office.OutputType{Name: "rejected"}), nil)
	applyRevert(t, s.Office, ops.AddSectionObject(s.Orders, office.ObjectType{Name: "cache"}), nil)
	applyRevert(t, s.Office, ops.MoveSection(s.Orders, 1, 2), func() {
		assert.Equal(t, 1, s.Orders.X)
		assert.Equal(t, 2, s.Orders.Y)
	})
	assert.True(t, change.IsNoChange(ops.MoveSection(s.Orders, 50, 50)))
}

func TestManagedObjects(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)

	add := ops.AddManagedObject("pooled", model.ScopeProcess, s.DB, []office.DependencyType{{Name: "clock"}})
	applyRevert(t, s.Office, add, func() {
		assert.Equal(t, []string{"connection", "pooled"}, model.Names(s.Office.ManagedObjects))
		bound := add.Target().First(model.EdgeManagedObjectToManagedObjectSource)
		require.NotNil(t, bound)
		assert.Same(t, s.DB, bound.Target())
	})

	assert.True(t, change.IsNoChange(ops.AddManagedObject("x", model.ScopeThread, nil, nil)))
	bad := ops.AddManagedObject("x", model.Scope("GLOBAL"), s.DB, nil)
	assert.ErrorIs(t, bad.Apply(), model.ErrUnknownScope)

	applyRevert(t, s.Office, ops.SetManagedObjectScope(s.Connection, model.ScopeFunction), func() {
		assert.Equal(t, model.ScopeFunction, s.Connection.Scope)
	})
	assert.ErrorIs(t, ops.SetManagedObjectScope(s.Connection, "bogus").Apply(), model.ErrUnknownScope)
	assert.Equal(t, model.ScopeThread, s.Connection.Scope)

	applyRevert(t, s.Office, ops.AddManagedObjectDependency(s.Connection, office.DependencyType{Name: "audit"}), nil)
	applyRevert(t, s.Office, ops.RemoveManagedObjectDependency(s.Connection, s.Connection.Dependencies[0]), func() {
		assert.False(t, s.Clock.HasLive())
	})
	applyRevert(t, s.Office, ops.AddExternalManagedObject("random", "java.util.Random"), nil)
	applyRevert(t, s.Office, ops.RemoveExternalManagedObject(s.Clock), nil)
}

func TestTypeQualifications(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)

	applyRevert(t, s.Office, ops.AddTypeQualification(s.Workers, "fast", "Worker"), func() {
		require.Len(t, s.Workers.TypeQualifications, 1)
	})
	assert.True(t, change.IsNoChange(ops.AddTypeQualification(s.Connection, "primary", "java.sql.Connection")))

	tq := s.Connection.TypeQualifications[0]
	applyRevert(t, s.Office, ops.RemoveTypeQualification(tq), func() {
		assert.Empty(t, s.Connection.TypeQualifications)
	})

	missing := ops.RemoveTypeQualification(&model.TypeQualification{Qualifier: "q", Type: "T"})
	assert.True(t, change.IsNoChange(missing))
	assert.Contains(t, missing.Description(), "not on any node")
}

func TestGovernanceAreas(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)
	area := s.Security.Areas[0]

	applyRevert(t, s.Office, ops.AddGovernanceArea(s.Security, 300, 300, -50, -50), func() {
		assert.True(t, s.Security.Governs(260, 260))
	})
	applyRevert(t, s.Office, ops.MoveGovernanceArea(area, 150, 0, 100, 100), func() {
		assert.True(t, s.Security.Governs(s.Billing.X, s.Billing.Y))
		assert.False(t, s.Security.Governs(s.Orders.X, s.Orders.Y))
	})
	applyRevert(t, s.Office, ops.RemoveGovernanceArea(s.Security, area), func() {
		assert.Empty(t, s.Security.Areas)
	})
	assert.True(t, change.IsNoChange(ops.MoveGovernanceArea(&model.GovernanceArea{}, 1, 1, 1, 1)))
}

func TestConcerns(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)

	applyRevert(t, s.Office, ops.ConfigureAdministration(s.Audit, "Other", model.PropertyList{{Name: "a", Value: "b"}}, true), func() {
		assert.True(t, s.Audit.AutoWire)
	})
	applyRevert(t, s.Office, ops.ConfigureGovernance(s.Security, "Other", nil, true), nil)
	applyRevert(t, s.Office, ops.RemoveAdministration(s.Audit), func() {
		assert.Empty(t, s.Check.Outgoing(model.EdgeFunctionToPreAdministration))
	})
	applyRevert(t, s.Office, ops.RemoveGovernance(s.Security), nil)
	applyRevert(t, s.Office, ops.AddGovernance("logging", "LogGovernance", nil, false), nil)
	applyRevert(t, s.Office, ops.AddEscalation("java.io.IOException"), nil)
	applyRevert(t, s.Office, ops.RemoveEscalation(s.Escalation), nil)
	applyRevert(t, s.Office, ops.RemoveStart(s.Start), nil)
}

func TestAddStart_AllocatesFreeNames(t *testing.T) {
	t.Parallel()
	s := testutil.NewSample(t)
	ops := office.New(s.Office)

	first := ops.AddStart()
	assert.Equal(t, "Start2", first.Target().Name, "Start1 is taken")
	require.NoError(t, first.Apply())
	assert.Equal(t, "Start3", ops.AddStart().Target().Name)

	// Separate offices never share a counter.
	assert.Equal(t, "Start1", office.New(model.NewOffice()).AddStart().Target().Name)
}

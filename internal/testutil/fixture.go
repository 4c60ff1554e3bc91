package testutil

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/officegraph/internal/model"
)

// Sample is a small office touching every node kind, together with direct
// handles on its nodes.
type Sample struct {
	Office *model.Office

	Workers, Admins *model.Team
	Audit, Txn      *model.Administration
	Security        *model.Governance
	Clock           *model.ExternalManagedObject
	DB              *model.ManagedObjectSource
	Connection      *model.ManagedObject
	Orders, Billing *model.Section
	Check           *model.Function
	Escalation      *model.Escalation
	Start           *model.Start
}

// NewSample builds the sample office with every connection live.
//
//	orders (50,50)            billing (200,0)
//	  placed ---------------->  charge <- escalation java.lang.Exception
//	  conn -> connection        failed
//	  validate.check -> audit (pre), workers
func NewSample(t testing.TB) *Sample {
	t.Helper()
	o := model.NewOffice()
	s := &Sample{Office: o}

	s.Admins = &model.Team{Name: "admins"}
	s.Workers = &model.Team{Name: "workers"}
	o.Teams = []*model.Team{s.Admins, s.Workers}

	s.Audit = &model.Administration{Name: "audit", SourceClassName: "AuditAdministration"}
	s.Txn = &model.Administration{Name: "txn", SourceClassName: "TransactionAdministration", AutoWire: true}
	o.Administrations = []*model.Administration{s.Audit, s.Txn}

	s.Security = &model.Governance{
		Name:            "security",
		SourceClassName: "SecurityGovernance",
		Areas:           []*model.GovernanceArea{{X: 0, Y: 0, Width: 100, Height: 100}},
	}
	o.Governances = []*model.Governance{s.Security}

	s.Clock = &model.ExternalManagedObject{Name: "clock", ObjectType: "java.time.Clock"}
	o.ExternalManagedObjects = []*model.ExternalManagedObject{s.Clock}

	pool := &model.ManagedObjectSourceTeam{Name: "pool"}
	onError := &model.ManagedObjectSourceFlow{Name: "onError", ArgumentType: "java.lang.Exception"}
	s.DB = &model.ManagedObjectSource{
		Name:            "db",
		SourceClassName: "DataSourceManagedObjectSource",
		Properties:      model.PropertyList{{Name: "url", Value: "jdbc:h2:mem"}},
		Timeout:         "3000",
		Flows:           []*model.ManagedObjectSourceFlow{onError},
		Teams:           []*model.ManagedObjectSourceTeam{pool},
	}
	o.ManagedObjectSources = []*model.ManagedObjectSource{s.DB}

	clockDep := &model.ManagedObjectDependency{Name: "clock", ObjectType: "java.time.Clock"}
	s.Connection = &model.ManagedObject{
		Name:               "connection",
		Scope:              model.ScopeThread,
		Dependencies:       []*model.ManagedObjectDependency{clockDep},
		TypeQualifications: []*model.TypeQualification{{Qualifier: "primary", Type: "java.sql.Connection"}},
	}
	o.ManagedObjects = []*model.ManagedObject{s.Connection}

	place := &model.SectionInput{Name: "place", ParameterType: "Order"}
	placed := &model.SectionOutput{Name: "placed", ArgumentType: "Order"}
	conn := &model.SectionObject{Name: "conn", ObjectType: "java.sql.Connection"}
	s.Check = &model.Function{Name: "check"}
	s.Orders = &model.Section{
		Name:            "orders",
		SourceClassName: "OrderSection",
		Location:        "orders.woof",
		X:               50,
		Y:               50,
		Inputs:          []*model.SectionInput{place},
		Outputs:         []*model.SectionOutput{placed},
		Objects:         []*model.SectionObject{conn},
		SubSection: &model.SubSection{SubSections: []*model.SubSection{
			{Name: "validate", Functions: []*model.Function{s.Check}},
		}},
	}
	charge := &model.SectionInput{Name: "charge", ParameterType: "Order"}
	failed := &model.SectionOutput{Name: "failed", EscalationOnly: true}
	s.Billing = &model.Section{
		Name:            "billing",
		SourceClassName: "BillingSection",
		Location:        "billing.woof",
		X:               200,
		Inputs:          []*model.SectionInput{charge},
		Outputs:         []*model.SectionOutput{failed},
	}
	o.Sections = []*model.Section{s.Billing, s.Orders}

	s.Escalation = &model.Escalation{Name: "java.lang.Exception"}
	o.Escalations = []*model.Escalation{s.Escalation}
	s.Start = &model.Start{Name: "Start1"}
	o.Starts = []*model.Start{s.Start}

	Connect(t, o, model.EdgeAdministrationToTeam, s.Audit, s.Admins, "")
	Connect(t, o, model.EdgeGovernanceToTeam, s.Security, s.Workers, "")
	Connect(t, o, model.EdgeManagedObjectSourceTeamToTeam, pool, s.Workers, "")
	Connect(t, o, model.EdgeFlowToSectionInput, onError, place, "")
	Connect(t, o, model.EdgeManagedObjectToManagedObjectSource, s.Connection, s.DB, "")
	Connect(t, o, model.EdgeDependencyToExternalManagedObject, clockDep, s.Clock, "")
	Connect(t, o, model.EdgeManagedObjectToAdministration, s.Connection, s.Txn, "x")
	Connect(t, o, model.EdgeManagedObjectToAdministration, s.Connection, s.Audit, "2")
	Connect(t, o, model.EdgeManagedObjectToGovernance, s.Connection, s.Security, "")
	Connect(t, o, model.EdgeSectionOutputToSectionInput, placed, charge, "")
	Connect(t, o, model.EdgeSectionObjectToManagedObject, conn, s.Connection, "")
	Connect(t, o, model.EdgeFunctionToPreAdministration, s.Check, s.Audit, "")
	Connect(t, o, model.EdgeFunctionToTeam, s.Check, s.Workers, "")
	Connect(t, o, model.EdgeEscalationToSectionInput, s.Escalation, charge, "")
	Connect(t, o, model.EdgeStartToSectionInput, s.Start, place, "")
	return s
}

// Connect links source to target with a new connection and returns it. The
// persisted reference is filled in from the live target.
func Connect(t testing.TB, o *model.Office, kind model.EdgeKind, source, target model.Node, order string) *model.Connection {
	t.Helper()
	to := model.Ref{Name: target.NodeName()}
	if in, ok := target.(*model.SectionInput); ok {
		for _, s := range o.Sections {
			if slices.Contains(s.Inputs, in) {
				to.Parent = s.Name
			}
		}
	}
	c := model.NewConnection(kind, to)
	c.Order = order
	require.NoError(t, c.Connect(source, target))
	return c
}

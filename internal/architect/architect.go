// Package architect defines the builder the compiler drives, and a Recorder
// implementation that keeps every call for inspection and reporting.
package architect

import "github.com/vk/officegraph/internal/model"

// Handle identifies something an Architect has built.
type Handle interface {
	// Path names the built element uniquely, e.g. "section:orders/input:place".
	Path() string
}

// Architect builds the runtime wiring of an office. Each call corresponds to
// exactly one compiled node or connection; calls are never retried.
type Architect interface {
	AddTeam(name string) Handle
	AddTypeQualification(target Handle, qualifier, typ string)
	AddGovernance(name, sourceClassName string, props model.PropertyList, autoWire bool) Handle
	AddAdministration(name, sourceClassName string, props model.PropertyList, autoWire bool) Handle
	AddExternalManagedObject(name, objectType string) Handle
	AddManagedObjectSource(name, sourceClassName string, props model.PropertyList, timeout int64) Handle
	AddManagedObjectSourceFlow(source Handle, name, argumentType string) Handle
	AddManagedObjectSourceTeam(source Handle, name string) Handle
	AddManagedObject(source Handle, name string, scope model.Scope) Handle
	AddManagedObjectDependency(mo Handle, name, objectType, typeQualifier string) Handle
	AddSection(name, sourceClassName, location string, props model.PropertyList) Handle
	AddSectionInput(section Handle, name, parameterType string) Handle
	AddSectionOutput(section Handle, name, argumentType string, escalationOnly bool) Handle
	AddSectionObject(section Handle, name, objectType, typeQualifier string) Handle
	AddSubSection(parent Handle, name string) Handle
	AddFunction(parent Handle, name string) Handle
	AddEscalation(escalationType string) Handle
	AddStart(name string) Handle

	// Link joins two built elements with a connection of the given kind.
	Link(kind model.EdgeKind, source, target Handle)
	// Govern places a section under a governance.
	Govern(governance, section Handle)
	// AddIssue reports a problem found while compiling.
	AddIssue(message string)
}

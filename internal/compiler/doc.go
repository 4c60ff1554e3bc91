// Package compiler links a resolved office graph into runtime wiring by
// driving an architect.Architect.
//
// Nodes are compiled in dependency order so that every handle a link needs
// already exists: teams, governance, administration, external managed
// objects, managed object sources, managed objects, sections with their
// sub-section trees, escalations and starts. Links whose target is compiled
// later (section outputs, flows, object and dependency links) are deferred
// until every node has a handle. A reference that can not be satisfied is
// reported through AddIssue and compilation carries on.
package compiler

// Package model defines the office graph: the typed nodes and typed, named
// connections describing how sections, managed objects, teams,
// administration and governance are wired together.
//
// # Structure
//
// The graph has two layers:
//
//   - **Hierarchy**: an Office owns its sections, managed object sources,
//     managed objects, teams and so on. A Section owns its inputs, outputs and
//     objects plus a tree of SubSections whose leaves are Functions. The
//     hierarchy is a tree: a node is never reachable from two parents.
//   - **Connections**: a Connection joins exactly two node kinds, described by
//     its EdgeKind. Connections form a general graph across the hierarchy.
//
// # Connections
//
// A Connection is owned by its source node (it lives in the source's
// Ends.Links) and persists its target as a Ref of names. Until it is
// connected it holds no pointers; Connect sets both endpoints and registers
// the connection with the target as an incoming link, Remove clears both and
// reports the list positions it occupied so a later ConnectAt restores the
// exact prior ordering.
//
// # Ordering
//
// Sibling collections are name-unique and kept sorted by name. Helpers in
// this package (SortByName, IsSortedByName, FindByName) operate on any slice
// of Named values.
//
// # Concurrency
//
// An Office is not safe for concurrent use. Callers own a graph instance
// exclusively and serialize all access to it.
package model

// Package office builds reversible changes over an office graph.
//
// Every operation inspects the graph when it is called and returns a
// change.Typed describing the edit. Nothing is mutated until the change is
// applied. Operations that cannot be made against the current graph return a
// change.NoChange whose description says why.
//
// Removing a node first disconnects every live connection of the node and of
// the nodes it owns, one change per connection, so reverting a removal
// restores the connections in the reverse order they were removed.
package office

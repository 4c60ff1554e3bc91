// Package change implements reversible edits of an office graph.
//
// # Changes
//
// Every mutating operation produces a Change: a command bound to a target
// with a human-readable description, an Apply and a Revert. Apply is valid
// once; it may only be called again after a Revert. Revert restores the exact
// prior state, including connection and sibling ordering.
//
// A NoChange signals an operation that is well-formed but inapplicable to
// the current graph (for example removing something that is not there). Its
// Apply and Revert do nothing, and IsNoChange lets batch callers skip it
// without aborting.
//
// # Steps
//
// Primitive changes do not close over behaviour. Each wraps a Step: a plain
// data struct holding the fields it touches and the values captured before
// and after, run in a Direction. Aggregates compose changes, applying them in
// order and reverting them in reverse order. When a sub-change fails during
// Apply the already applied prefix is reverted so the graph is left as it
// was.
//
// # History
//
// History records applied changes under generated identifiers and supports
// undo and redo. Callers that need undo to outlive a session persist the
// history themselves.
package change

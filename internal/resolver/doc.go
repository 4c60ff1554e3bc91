// Package resolver turns the persisted, name-based connections of an office
// into live links and back.
//
// Connect runs after a graph is decoded. It indexes every node by name, one
// map per node kind, and connects each persisted connection whose target
// resolves. A connection whose target does not resolve is dropped from its
// owner and reported; resolution never fails. Connect skips connections that
// are already live, so running it twice changes nothing.
//
// Capture runs before a graph is encoded. It copies the current names of
// every live connection's target into its persisted reference.
package resolver

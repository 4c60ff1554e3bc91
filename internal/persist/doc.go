// Package persist moves office graphs to and from configuration items.
//
// The graph never parses a textual format itself. A Codec turns bytes into
// nodes carrying persisted, name-based connections and back; the Repository
// resolves those connections into live links after decoding and captures
// live names into them before encoding.
package persist

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrAlreadyConnected is returned when connecting a live connection.
	ErrAlreadyConnected = errors.New("connection is already connected")
	// ErrKindMismatch is returned when the endpoints do not match the edge kind.
	ErrKindMismatch = errors.New("endpoints do not match connection kind")
)

// Ref is the persisted, name-based form of a connection target. Parent is
// only set for targets scoped below a section (section inputs).
type Ref struct {
	Parent string
	Name   string
}

func (r Ref) String() string {
	if r.Parent == "" {
		return r.Name
	}
	return r.Parent + "." + r.Name
}

// Position records where a connection sat in its endpoints' lists. A negative
// index means "append".
type Position struct {
	Source int
	Target int
}

// End is the Position that appends to both lists.
var End = Position{Source: -1, Target: -1}

// Connection is a typed, symmetric link between two nodes.
type Connection struct {
	Kind EdgeKind
	// To is the persisted name of the target. It is authoritative until the
	// connection is resolved and refreshed from the live target on capture.
	To Ref
	// Order positions administration connections relative to one another.
	Order string

	source Node
	target Node
}

// NewConnection returns an unconnected connection of the given kind.
func NewConnection(kind EdgeKind, to Ref) *Connection {
	return &Connection{Kind: kind, To: to}
}

// IsConnected reports whether both endpoints are set.
func (c *Connection) IsConnected() bool {
	return c.source != nil && c.target != nil
}

// Source returns the owning node, or nil when unconnected.
func (c *Connection) Source() Node { return c.source }

// Target returns the target node, or nil when unconnected.
func (c *Connection) Target() Node { return c.target }

func (c *Connection) String() string {
	src := "?"
	if c.source != nil {
		src = c.source.NodeName()
	}
	return fmt.Sprintf("%s %s -> %s", c.Kind, src, c.To)
}

// Connect links source to target, appending to both endpoint lists.
func (c *Connection) Connect(source, target Node) error {
	return c.ConnectAt(source, target, End)
}

// ConnectAt links source to target, inserting into the endpoint lists at the
// given positions. If the connection is already present in the source's
// Links (a persisted, not yet resolved connection) it keeps its place there.
func (c *Connection) ConnectAt(source, target Node, pos Position) error {
	if c.IsConnected() {
		return fmt.Errorf("%s: %w", c, ErrAlreadyConnected)
	}
	if source == nil || target == nil || !c.Kind.Joins(source.Kind(), target.Kind()) {
		return fmt.Errorf("%s between %s and %s: %w", c.Kind, describe(source), describe(target), ErrKindMismatch)
	}
	src := source.Endpoint()
	if !slices.Contains(src.Links, c) {
		src.Links = insertAt(src.Links, c, pos.Source)
	}
	dst := target.Endpoint()
	dst.incoming = insertAt(dst.incoming, c, pos.Target)
	c.source = source
	c.target = target
	return nil
}

// Remove clears both endpoints and returns the positions the connection held.
// Removing an unconnected connection returns End and changes nothing.
func (c *Connection) Remove() Position {
	if !c.IsConnected() {
		return End
	}
	src := c.source.Endpoint()
	dst := c.target.Endpoint()
	pos := Position{
		Source: slices.Index(src.Links, c),
		Target: slices.Index(dst.incoming, c),
	}
	if pos.Source >= 0 {
		src.Links = slices.Delete(src.Links, pos.Source, pos.Source+1)
	}
	if pos.Target >= 0 {
		dst.incoming = slices.Delete(dst.incoming, pos.Target, pos.Target+1)
	}
	c.source = nil
	c.target = nil
	return pos
}

func insertAt(list []*Connection, c *Connection, idx int) []*Connection {
	if idx < 0 || idx > len(list) {
		return append(list, c)
	}
	return slices.Insert(list, idx, c)
}

func describe(n Node) string {
	if IsNil(n) {
		return "<nil>"
	}
	return fmt.Sprintf("%s %q", n.Kind(), n.NodeName())
}

// Ends holds the connections a node takes part in. It is embedded in
// every node type.
type Ends struct {
	// Links are the connections owned by the node. They are persisted.
	Links []*Connection

	incoming []*Connection
}

// Endpoint returns e, letting embedding types satisfy Node.
func (e *Ends) Endpoint() *Ends { return e }

// Outgoing returns the owned connections of the given kind in list order.
func (e *Ends) Outgoing(kind EdgeKind) []*Connection {
	var out []*Connection
	for _, c := range e.Links {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Incoming returns the live connections of the given kind targeting the node.
func (e *Ends) Incoming(kind EdgeKind) []*Connection {
	var in []*Connection
	for _, c := range e.incoming {
		if c.Kind == kind {
			in = append(in, c)
		}
	}
	return in
}

// First returns the first owned connection of the given kind, or nil.
func (e *Ends) First(kind EdgeKind) *Connection {
	for _, c := range e.Links {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// Live returns every connected connection the node takes part in: owned
// connections first, then incoming ones, each in list order.
func (e *Ends) Live() []*Connection {
	live := make([]*Connection, 0, len(e.Links)+len(e.incoming))
	for _, c := range e.Links {
		if c.IsConnected() {
			live = append(live, c)
		}
	}
	for _, c := range e.incoming {
		if !slices.Contains(live, c) {
			live = append(live, c)
		}
	}
	return live
}

// HasLive reports whether the node takes part in any connected connection.
func (e *Ends) HasLive() bool {
	for _, c := range e.Links {
		if c.IsConnected() {
			return true
		}
	}
	return len(e.incoming) > 0
}

// Drop removes an unconnected connection from the owned links. It reports
// whether anything was removed.
func (e *Ends) Drop(c *Connection) bool {
	if c.IsConnected() {
		return false
	}
	idx := slices.Index(e.Links, c)
	if idx < 0 {
		return false
	}
	e.Links = slices.Delete(e.Links, idx, idx+1)
	return true
}

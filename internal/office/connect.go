package office

import (
	"fmt"

	"github.com/vk/officegraph/internal/change"
	"github.com/vk/officegraph/internal/model"
)

// Connect links source to target with a connection of the given kind. For
// single kinds any connection the source already holds to the same slot is
// disconnected first, within the same change.
func (ops *Operations) Connect(kind model.EdgeKind, source, target model.Node) change.Typed[*model.Connection] {
	return ops.connect(kind, source, target, "")
}

// ConnectAdministration links a managed object or external managed object to
// an administration at the given order.
func (ops *Operations) ConnectAdministration(source model.Node, admin *model.Administration, order string) change.Typed[*model.Connection] {
	kind := model.EdgeManagedObjectToAdministration
	if source != nil && source.Kind() == model.KindExternalManagedObject {
		kind = model.EdgeExternalManagedObjectToAdministration
	}
	return ops.connect(kind, source, admin, order)
}

func (ops *Operations) connect(kind model.EdgeKind, source, target model.Node, order string) change.Typed[*model.Connection] {
	conn := model.NewConnection(kind, model.Ref{})
	conn.Order = order
	if source == nil || target == nil || !kind.Joins(source.Kind(), target.Kind()) {
		return change.Nonef(conn, "Can not connect %s to %s as %s", describe(source), describe(target), kind)
	}
	if !ops.office.Contains(source) || !ops.office.Contains(target) {
		return change.Nonef(conn, "Can not connect %s to %s outside the office", describe(source), describe(target))
	}
	for _, existing := range source.Endpoint().Outgoing(kind) {
		if existing.Target() == target {
			return change.Nonef(conn, "%s is already connected to %s", describe(source), describe(target))
		}
	}
	conn.To = ops.refOf(target)

	desc := fmt.Sprintf("Connect %s to %s", describe(source), describe(target))
	var changes []change.Change
	if kind.Single() {
		for _, existing := range source.Endpoint().Links {
			if existing.IsConnected() && existing.Kind.Single() {
				changes = append(changes, disconnectChange(existing))
			}
		}
	}
	link := change.New(conn, desc, &change.Link{Conn: conn, Source: source, Target: target})
	if len(changes) == 0 {
		return link
	}
	return change.Compose(conn, desc, append(changes, link)...)
}

// Disconnect removes a live connection. Disconnecting a function's link also
// cleans up the function's section.
func (ops *Operations) Disconnect(conn *model.Connection) change.Typed[*model.Connection] {
	if conn == nil || !conn.IsConnected() {
		return change.Nonef(conn, "Connection is not connected")
	}
	if _, ok := conn.Source().(*model.Function); ok {
		return ops.DisconnectFunction(conn)
	}
	return disconnectChange(conn)
}

// SetAdministrationOrder changes the order of an administration connection.
func (ops *Operations) SetAdministrationOrder(conn *model.Connection, order string) change.Typed[*model.Connection] {
	if conn == nil || !conn.Kind.Ordered() {
		return change.Nonef(conn, "Connection is not ordered")
	}
	if conn.Order == order {
		return change.Nonef(conn, "Connection already has order %s", order)
	}
	return change.New(conn, fmt.Sprintf("Order %s as %s", conn, order), &change.Assign[string]{Ptr: &conn.Order, After: order})
}

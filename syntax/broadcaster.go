package syntax

// Broadcaster is a channel for delivering syntax units to interested parties.
// Package broadcast holds a set of composable implementations.
type Broadcaster interface {
	Broadcast(unit Node) error
}

// Propagate broadcasts unit, then asks unit to broadcast its children
// through b, recursively. This is how every node of a freshly created sub-tree
// gets dispatched individually, not just its root.
func Propagate(b Broadcaster, unit Node) error {
	if IsNil(unit) {
		return ErrNilUnit
	}
	if err := b.Broadcast(unit); err != nil {
		return err
	}
	return unit.PropagateBroadcast(b)
}

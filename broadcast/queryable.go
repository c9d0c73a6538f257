package broadcast

import "github.com/npillmayer/csstree/syntax"

// Queryable buffers every broadcast unit in arrival order. It is used to capture
// the output of a parser run and inspect it afterwards.
type Queryable struct {
	Relay
	units []syntax.Node
}

// NewQueryable creates a queryable broadcaster. If inner is not nil, units are
// forwarded to it after being buffered.
func NewQueryable(inner syntax.Broadcaster) *Queryable {
	q := &Queryable{}
	q.Wrap(inner)
	return q
}

func (q *Queryable) Broadcast(unit syntax.Node) error {
	if syntax.IsNil(unit) {
		return syntax.ErrNilUnit
	}
	q.units = append(q.units, unit)
	return q.Forward(unit)
}

// All returns all buffered units, in arrival order.
func (q *Queryable) All() []syntax.Node {
	all := make([]syntax.Node, len(q.units))
	copy(all, q.units)
	return all
}

// Count returns the number of buffered units.
func (q *Queryable) Count() int {
	return len(q.units)
}

// IsEmpty is true if no unit has been broadcast.
func (q *Queryable) IsEmpty() bool {
	return len(q.units) == 0
}

// HasAny is true if any buffered unit is of type T.
func HasAny[T any](q *Queryable) bool {
	_, ok := Find[T](q)
	return ok
}

// Filter returns all buffered units of type T, in arrival order.
func Filter[T any](q *Queryable) []T {
	var r []T
	for _, u := range q.units {
		if t, ok := u.(T); ok {
			r = append(r, t)
		}
	}
	return r
}

// Find returns the first buffered unit of type T.
func Find[T any](q *Queryable) (T, bool) {
	for _, u := range q.units {
		if t, ok := u.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

var _ syntax.Broadcaster = &Queryable{}

// --- Single interest -------------------------------------------------------

// SingleInterest captures the first broadcast unit of type T. After that it is
// inert for T. Units it does not capture are forwarded to its relay.
type SingleInterest[T any] struct {
	Relay
	captured T
	found    bool
}

// NewSingleInterest creates a broadcaster interested in one unit of type T.
// inner may be nil.
func NewSingleInterest[T any](inner syntax.Broadcaster) *SingleInterest[T] {
	s := &SingleInterest[T]{}
	s.Wrap(inner)
	return s
}

func (s *SingleInterest[T]) Broadcast(unit syntax.Node) error {
	if syntax.IsNil(unit) {
		return syntax.ErrNilUnit
	}
	if !s.found {
		if t, ok := unit.(T); ok {
			s.captured, s.found = t, true
			tracer().Debugf("captured %v unit #%d", unit.Kind(), unit.ID())
			return nil
		}
	}
	return s.Forward(unit)
}

// Broadcasted returns the captured unit, if any.
func (s *SingleInterest[T]) Broadcasted() (T, bool) {
	return s.captured, s.found
}

var _ syntax.Broadcaster = &SingleInterest[syntax.Node]{}

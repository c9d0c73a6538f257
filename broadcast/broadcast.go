package broadcast

import (
	"github.com/npillmayer/csstree/syntax"
)

// Relay is the forwarding part of a broadcaster. Broadcasters embed it and call
// Forward after doing their own handling.
type Relay struct {
	relay syntax.Broadcaster
}

// Wrap sets the inner broadcaster to forward to.
func (r *Relay) Wrap(inner syntax.Broadcaster) {
	r.relay = inner
}

// Inner returns the inner broadcaster, which may be nil.
func (r *Relay) Inner() syntax.Broadcaster {
	return r.relay
}

// Forward hands unit to the inner broadcaster, if there is one.
func (r *Relay) Forward(unit syntax.Node) error {
	if r.relay == nil {
		return nil
	}
	return r.relay.Broadcast(unit)
}

// Func adapts a function to the syntax.Broadcaster interface.
type Func func(syntax.Node) error

// Broadcast calls f for unit.
func (f Func) Broadcast(unit syntax.Node) error {
	if syntax.IsNil(unit) {
		return syntax.ErrNilUnit
	}
	return f(unit)
}

// Chain is an ordered list of sinks. Every unit is handed to each sink in turn;
// the first error stops the chain.
type Chain []syntax.Broadcaster

// NewChain creates a chain from a list of sinks. Nil sinks are dropped.
func NewChain(sinks ...syntax.Broadcaster) Chain {
	c := make(Chain, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			c = append(c, s)
		}
	}
	return c
}

// Broadcast delivers unit to all sinks, in order.
func (c Chain) Broadcast(unit syntax.Node) error {
	if syntax.IsNil(unit) {
		return syntax.ErrNilUnit
	}
	for _, sink := range c {
		if err := sink.Broadcast(unit); err != nil {
			return err
		}
	}
	return nil
}

// Discard is a broadcaster which drops everything.
var Discard syntax.Broadcaster = Func(func(syntax.Node) error { return nil })

// --- Counter ---------------------------------------------------------------

// Counter counts broadcast units per kind and forwards them to its relay.
type Counter struct {
	Relay
	counts map[syntax.Kind]int
	total  int
}

// NewCounter creates a counter wrapping inner, which may be nil.
func NewCounter(inner syntax.Broadcaster) *Counter {
	c := &Counter{counts: make(map[syntax.Kind]int)}
	c.Wrap(inner)
	return c
}

func (c *Counter) Broadcast(unit syntax.Node) error {
	if syntax.IsNil(unit) {
		return syntax.ErrNilUnit
	}
	c.counts[unit.Kind()]++
	c.total++
	return c.Forward(unit)
}

// Count returns the number of units of kind k seen so far.
func (c *Counter) Count(k syntax.Kind) int {
	return c.counts[k]
}

// Total returns the number of units seen so far.
func (c *Counter) Total() int {
	return c.total
}

var _ syntax.Broadcaster = &Counter{}
var _ syntax.Broadcaster = Chain{}

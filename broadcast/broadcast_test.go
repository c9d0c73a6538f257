package broadcast_test

import (
	"errors"
	"testing"

	"github.com/npillmayer/csstree/broadcast"
	"github.com/npillmayer/csstree/syntax"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var (
	kindApple = syntax.RegisterKind("test-apple")
	kindPear  = syntax.RegisterKind("test-pear")
)

type apple struct {
	syntax.Base
	no int
}

type pear struct {
	syntax.Base
	no int
}

func newApple(n int) *apple { return &apple{Base: syntax.Synthesized(kindApple), no: n} }
func newPear(n int) *pear   { return &pear{Base: syntax.Synthesized(kindPear), no: n} }

func TestQueryable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.broadcast")
	defer teardown()
	//
	q := broadcast.NewQueryable(nil)
	units := []syntax.Node{newApple(1), newPear(1), newApple(2), newApple(3)}
	for _, u := range units {
		if err := q.Broadcast(u); err != nil {
			t.Fatal(err)
		}
	}
	apples := broadcast.Filter[*apple](q)
	if len(apples) != 3 {
		t.Fatalf("expected 3 apples, have %d", len(apples))
	}
	for i, a := range apples {
		if a.no != i+1 {
			t.Errorf("expected apples in arrival order, apple #%d is %d", i+1, a.no)
		}
	}
	if q.Count() != 4 {
		t.Errorf("expected count of 4, is %d", q.Count())
	}
	p, ok := broadcast.Find[*pear](q)
	if !ok || p != units[1] {
		t.Errorf("expected to find the pear")
	}
	if !broadcast.HasAny[*apple](q) {
		t.Errorf("expected queryable to have apples")
	}
	if err := q.Broadcast(nil); !errors.Is(err, syntax.ErrNilUnit) {
		t.Errorf("expected nil unit to be rejected, got %v", err)
	}
}

func TestRelayChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.broadcast")
	defer teardown()
	//
	inner := broadcast.NewQueryable(nil)
	counter := broadcast.NewCounter(inner)
	for _, u := range []syntax.Node{newApple(1), newPear(1), newApple(2)} {
		if err := counter.Broadcast(u); err != nil {
			t.Fatal(err)
		}
	}
	if counter.Count(kindApple) != 2 || counter.Total() != 3 {
		t.Errorf("expected 2 apples of 3 units, counted %d of %d", counter.Count(kindApple), counter.Total())
	}
	if inner.Count() != 3 {
		t.Errorf("expected counter to relay all units, inner has %d", inner.Count())
	}
}

func TestSingleInterest(t *testing.T) {
	rest := broadcast.NewQueryable(nil)
	single := broadcast.NewSingleInterest[*apple](rest)
	a1, p1, a2 := newApple(1), newPear(1), newApple(2)
	for _, u := range []syntax.Node{p1, a1, a2} {
		if err := single.Broadcast(u); err != nil {
			t.Fatal(err)
		}
	}
	a, ok := single.Broadcasted()
	if !ok || a != a1 {
		t.Fatalf("expected first apple to be captured")
	}
	if rest.Count() != 2 {
		t.Errorf("expected pear and second apple to be relayed, relay has %d units", rest.Count())
	}
	lone := broadcast.NewSingleInterest[*pear](nil)
	if err := lone.Broadcast(newApple(3)); err != nil {
		t.Errorf("expected broadcaster without relay to stop silently, got %v", err)
	}
	if _, ok := lone.Broadcasted(); ok {
		t.Errorf("expected nothing to be captured")
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	first := broadcast.Func(func(syntax.Node) error { order = append(order, "first"); return nil })
	second := broadcast.Func(func(syntax.Node) error { order = append(order, "second"); return nil })
	failing := broadcast.Func(func(syntax.Node) error { return errors.New("stop") })
	c := broadcast.NewChain(first, nil, second)
	if err := c.Broadcast(newApple(1)); err != nil {
		t.Fatal(err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("expected sinks to be called in order, have %v", order)
	}
	order = nil
	c = broadcast.NewChain(failing, first)
	if err := c.Broadcast(newApple(1)); err == nil || len(order) != 0 {
		t.Errorf("expected failing sink to stop the chain")
	}
}

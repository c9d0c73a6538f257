package syntax

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type rawItem struct {
	Base
	Lazy
	children []Node
}

func newRawItem(content string) *rawItem {
	return &rawItem{
		Base: NewBase(kindItem, 3, 7),
		Lazy: NewLazy(RawContent{Content: content, Line: 3, Column: 7}),
	}
}

func (r *rawItem) RefineKey() string { return "raw-item" }
func (r *rawItem) Refine() error     { return r.Lazy.Run(r) }

func (r *rawItem) Absorb(units []Node, outcome Refinement) error {
	r.children = append(r.children, units...)
	return nil
}

var _ Refinable = &rawItem{}

func TestLazyRefinesOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.syntax")
	defer teardown()
	//
	calls := 0
	r := newRawItem("a b c")
	r.AttachRefiner(RefinerFunc(func(unit Refinable) (Refinement, error) {
		calls++
		return RefinedFull, unit.Absorb([]Node{newItem("a"), newItem("b")}, RefinedFull)
	}))
	if r.RefineState() != RefineRaw {
		t.Fatalf("expected new node to be raw, is %v", r.RefineState())
	}
	if err := r.Refine(); err != nil {
		t.Fatal(err)
	}
	t1 := r.children
	if err := r.Refine(); err != nil {
		t.Fatal(err)
	}
	t2 := r.children
	if calls != 1 {
		t.Errorf("expected refiner to be called once, was called %d times", calls)
	}
	if len(t1) != 2 || &t1[0] != &t2[0] {
		t.Errorf("expected refined children to keep their identity")
	}
	if r.RefineState() != Refined || r.Outcome() != RefinedFull {
		t.Errorf("expected refined/full, is %v/%v", r.RefineState(), r.Outcome())
	}
}

func TestLazyReentrantRefine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.syntax")
	defer teardown()
	//
	calls := 0
	r := newRawItem("x")
	r.AttachRefiner(RefinerFunc(func(unit Refinable) (Refinement, error) {
		calls++
		if unit.RefineState() != Refining {
			t.Errorf("expected state refining during refinement, is %v", unit.RefineState())
		}
		return RefinedNone, unit.Refine() // re-entrant call returns immediately
	}))
	if err := r.Refine(); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call of refiner, have %d", calls)
	}
	if r.Outcome() != RefinedNone || !r.IsRefined() {
		t.Errorf("expected refined with outcome none, is %v/%v", r.RefineState(), r.Outcome())
	}
}

func TestLazyRefineFailure(t *testing.T) {
	r := newRawItem("###")
	perr := Errorf(3, 9, "unexpected token")
	r.AttachRefiner(RefinerFunc(func(unit Refinable) (Refinement, error) {
		return RefinedNone, ErrorAt(3, 7, "cannot refine", perr)
	}))
	err := r.Refine()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if pe.Line != 3 || pe.Column != 7 {
		t.Errorf("expected error at 3:7, is at %d:%d", pe.Line, pe.Column)
	}
	if r.RefineState() != RefineRaw {
		t.Errorf("expected failed refinement to reset state to raw, is %v", r.RefineState())
	}
	if !errors.Is(err, perr) {
		t.Errorf("expected error chain to contain original parse error")
	}
}

func TestLazyWithoutRefiner(t *testing.T) {
	r := newRawItem("x")
	if err := r.Refine(); !errors.Is(err, ErrNoRefiner) {
		t.Errorf("expected ErrNoRefiner, got %v", err)
	}
}

func TestStatusNeverEmitIsTerminal(t *testing.T) {
	it := newItem("a")
	it.SetStatus(NeverEmit)
	it.SetStatus(Queued)
	if it.Status() != NeverEmit {
		t.Errorf("expected never-emit to be terminal, is %v", it.Status())
	}
	if !ShouldBreak(it, PhaseProcess) {
		t.Errorf("expected never-emit node to break broadcast")
	}
	d := newItem("d")
	d.Destroy()
	if !ShouldBreak(d, PhaseValidate) {
		t.Errorf("expected destroyed node to break broadcast")
	}
	n := newItem("n")
	n.MarkDelivered(PhaseRefine)
	if !ShouldBreak(n, PhaseRefine) || ShouldBreak(n, PhaseProcess) {
		t.Errorf("expected delivery to be remembered per phase")
	}
}

func TestSequenceNumbers(t *testing.T) {
	a, b := newItem("a"), newItem("b")
	if a.ID() >= b.ID() {
		t.Errorf("expected ids to increase in creation order, have %d, %d", a.ID(), b.ID())
	}
	c := a.Base.Fresh()
	if c.ID() == a.ID() {
		t.Errorf("expected copy to get a fresh id")
	}
	if Propagate(&recorder{}, nil) != ErrNilUnit {
		t.Errorf("expected nil unit to be rejected")
	}
	var nilItem *item
	if Propagate(&recorder{}, nilItem) != ErrNilUnit {
		t.Errorf("expected typed nil unit to be rejected")
	}
}

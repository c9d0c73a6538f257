package syntax

import "fmt"

// RawContent is an unparsed fragment of the source, together with the position
// where it starts.
type RawContent struct {
	Content      string
	Line, Column int
}

func (raw RawContent) String() string {
	return fmt.Sprintf("%d:%d %q", raw.Line, raw.Column, raw.Content)
}

// Refinement is the outcome of running a refiner over raw content.
type Refinement uint8

// RefinedNone: the content was not recognized and stays raw.
// RefinedPartial: some structure was recognized, the raw remainder is kept.
// RefinedFull: all of the raw content has been consumed into structure.
const (
	RefinedNone Refinement = iota
	RefinedPartial
	RefinedFull
)

func (r Refinement) String() string {
	switch r {
	case RefinedNone:
		return "none"
	case RefinedPartial:
		return "partial"
	case RefinedFull:
		return "full"
	}
	return fmt.Sprintf("refinement(%d)", uint8(r))
}

// RefineState is the lifecycle state of a refinable node.
type RefineState uint8

// Refinement moves from RefineRaw to Refining to Refined, exactly once.
const (
	RefineRaw RefineState = iota
	Refining
	Refined
)

func (s RefineState) String() string {
	switch s {
	case RefineRaw:
		return "raw"
	case Refining:
		return "refining"
	case Refined:
		return "refined"
	}
	return fmt.Sprintf("refine-state(%d)", uint8(s))
}

// Refiner promotes the raw content of a refinable unit into structure.
// Implementations hand the resulting nodes to unit.Absorb.
type Refiner interface {
	RefineNode(unit Refinable) (Refinement, error)
}

// RefinerFunc adapts a function to the Refiner interface.
type RefinerFunc func(Refinable) (Refinement, error)

func (f RefinerFunc) RefineNode(unit Refinable) (Refinement, error) {
	return f(unit)
}

// Refinable is a node holding raw content, which can lazily be refined into
// structured sub-nodes.
type Refinable interface {
	Node
	Raw() (RawContent, bool)                       // raw content, if any
	RefineKey() string                             // key to select a custom refiner
	Refine() error                                 // refine now, if not done yet
	RefineState() RefineState                      // lifecycle state
	Outcome() Refinement                           // outcome, valid if refined
	AttachRefiner(Refiner)                         // set refiner, if unset
	AttachBroadcaster(Broadcaster)                 // set broadcaster for new children, if unset
	Broadcaster() Broadcaster                      // broadcaster for new children
	Absorb(units []Node, outcome Refinement) error // take over refined children
}

// Lazy implements the refinement lifecycle for refinable nodes. Node types embed
// Lazy and implement Refine as
//
//     func (n *MyNode) Refine() error { return n.Lazy.Run(n) }
//
type Lazy struct {
	raw     RawContent
	hasRaw  bool
	state   RefineState
	outcome Refinement
	refiner Refiner
	bc      Broadcaster
}

// NewLazy creates the refinement part of a node holding raw content.
func NewLazy(raw RawContent) Lazy {
	return Lazy{raw: raw, hasRaw: true}
}

// Structured creates the refinement part of a node which has been created with
// structure only. It counts as already refined.
func Structured() Lazy {
	return Lazy{state: Refined, outcome: RefinedFull}
}

// Copy returns a copy of lz for a copied node. The copy keeps the refinement
// state and the refiner, but not the broadcaster.
func (lz Lazy) Copy() Lazy {
	c := lz
	c.bc = nil
	return c
}

// Raw returns the raw content, if any.
func (lz *Lazy) Raw() (RawContent, bool) {
	return lz.raw, lz.hasRaw
}

func (lz *Lazy) RefineState() RefineState {
	return lz.state
}

// IsRefined is true once refinement has completed.
func (lz *Lazy) IsRefined() bool {
	return lz.state == Refined
}

func (lz *Lazy) Outcome() Refinement {
	return lz.outcome
}

func (lz *Lazy) AttachRefiner(r Refiner) {
	if lz.refiner == nil {
		lz.refiner = r
	}
}

func (lz *Lazy) AttachBroadcaster(bc Broadcaster) {
	if lz.bc == nil {
		lz.bc = bc
	}
}

func (lz *Lazy) Broadcaster() Broadcaster {
	return lz.bc
}

// Run executes the state machine for unit, which has to be the node embedding lz.
// Refining an already refined unit is a no-op, as is a re-entrant call while
// refinement is in progress. If the refiner fails, the unit goes back to raw
// and the error is returned.
func (lz *Lazy) Run(unit Refinable) error {
	switch lz.state {
	case Refined:
		return nil
	case Refining:
		tracer().Debugf("re-entrant refinement of %v #%d ignored", unit.Kind(), unit.ID())
		return nil
	}
	if lz.refiner == nil {
		return ErrNoRefiner
	}
	lz.state = Refining
	outcome, err := lz.refiner.RefineNode(unit)
	if err != nil {
		lz.state = RefineRaw
		return err
	}
	lz.state, lz.outcome = Refined, outcome
	tracer().Debugf("refined %v #%d: %v", unit.Kind(), unit.ID(), outcome)
	return nil
}

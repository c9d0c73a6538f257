package syntax

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// Status governs whether and how often a node may be dispatched.
type Status uint8

// A node starts out as Unbroadcast, is Queued as soon as a dispatcher has accepted it
// and becomes Parsed after all processing subscriptions have seen it.
// NeverEmit is terminal: the node will not be delivered to anyone.
const (
	Unbroadcast Status = iota
	Queued
	Parsed
	NeverEmit
)

func (s Status) String() string {
	switch s {
	case Unbroadcast:
		return "unbroadcast"
	case Queued:
		return "queued"
	case Parsed:
		return "parsed"
	case NeverEmit:
		return "never-emit"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// Phase is one of the ordered stages of dispatch. Phases are bit flags, so a node
// may remember the set of phases it has already been delivered in.
type Phase uint8

// Dispatch priority order is Refine, Process, Validate.
const (
	PhaseRefine Phase = 1 << iota
	PhaseProcess
	PhaseValidate
)

func (p Phase) String() string {
	switch p {
	case PhaseRefine:
		return "refine"
	case PhaseProcess:
		return "process"
	case PhaseValidate:
		return "validate"
	}
	return fmt.Sprintf("phase(%#x)", uint8(p))
}

// Kind tags a node type. Kinds are registered once per node type, usually in
// a package level var block, and make dispatch tables cheap to index.
type Kind uint16

// KindUnknown is the kind of nodes whose type did not register a kind.
const KindUnknown Kind = 0

var kinds = struct {
	sync.RWMutex
	names []string
}{names: []string{"unknown"}}

// RegisterKind registers a new node kind. Registering the same name twice
// returns the same kind.
func RegisterKind(name string) Kind {
	kinds.Lock()
	defer kinds.Unlock()
	for i, n := range kinds.names {
		if n == name {
			return Kind(i)
		}
	}
	kinds.names = append(kinds.names, name)
	return Kind(len(kinds.names) - 1)
}

func (k Kind) String() string {
	kinds.RLock()
	defer kinds.RUnlock()
	if int(k) < len(kinds.names) {
		return kinds.names[k]
	}
	return fmt.Sprintf("kind(%d)", uint16(k))
}

// Node is the interface every syntax tree node implements.
// Most of it is satisfied by embedding Base.
type Node interface {
	ID() uint64                           // creation order sequence number
	Kind() Kind                           // node type tag
	Pos() (line, col int)                 // source position, -1/-1 if synthesized
	Status() Status                       // broadcast status
	SetStatus(Status)                     // set broadcast status
	Comments() []string                   // leading comments
	AddComment(string)                    // append a leading comment
	ShouldBreakBroadcast(Phase) bool      // skip delivery in phase?
	MarkDelivered(Phase)                  // remember delivery in phase
	PropagateBroadcast(Broadcaster) error // broadcast children
}

var sequence uint64

func nextID() uint64 {
	return atomic.AddUint64(&sequence, 1)
}

// Base implements the bookkeeping part of Node.
type Base struct {
	id        uint64
	kind      Kind
	line, col int
	status    Status
	delivered Phase
	comments  []string
}

// NewBase creates the base part of a node of kind k, located at line and column
// of the source.
func NewBase(k Kind, line, col int) Base {
	return Base{id: nextID(), kind: k, line: line, col: col}
}

// Synthesized creates the base part of a node which has no source position.
func Synthesized(k Kind) Base {
	return NewBase(k, -1, -1)
}

// Fresh returns a copy of b with a new sequence number and a reset broadcast status.
// Comments are shared by value.
func (b Base) Fresh() Base {
	c := b
	c.id = nextID()
	c.status = Unbroadcast
	c.delivered = 0
	if len(b.comments) > 0 {
		c.comments = append([]string(nil), b.comments...)
	}
	return c
}

func (b *Base) ID() uint64 {
	return b.id
}

func (b *Base) Kind() Kind {
	return b.kind
}

func (b *Base) Pos() (int, int) {
	return b.line, b.col
}

func (b *Base) Status() Status {
	return b.status
}

func (b *Base) SetStatus(s Status) {
	if b.status == NeverEmit {
		return
	}
	b.status = s
}

func (b *Base) Comments() []string {
	return b.comments
}

func (b *Base) AddComment(c string) {
	b.comments = append(b.comments, c)
}

// ShouldBreakBroadcast is true for nodes which must not be delivered in phase p,
// either because they are marked NeverEmit or because they already have been
// delivered in p.
func (b *Base) ShouldBreakBroadcast(p Phase) bool {
	return b.status == NeverEmit || b.delivered&p != 0
}

func (b *Base) MarkDelivered(p Phase) {
	b.delivered |= p
}

// PropagateBroadcast is a no-op for leaf nodes.
func (b *Base) PropagateBroadcast(Broadcaster) error {
	return nil
}

// ShouldBreak checks if delivery of unit in phase p should be skipped.
// In addition to the node's own check, destroyed nodes are never delivered.
func ShouldBreak(unit Node, p Phase) bool {
	if unit.ShouldBreakBroadcast(p) {
		return true
	}
	if d, ok := unit.(interface{ Destroyed() bool }); ok && d.Destroyed() {
		return true
	}
	return false
}

// IsNil is true for nil interfaces as well as for interfaces holding a nil pointer.
func IsNil(unit Node) bool {
	if unit == nil {
		return true
	}
	v := reflect.ValueOf(unit)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

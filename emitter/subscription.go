package emitter

import (
	"fmt"
	"reflect"

	"github.com/npillmayer/csstree/grammar"
	"github.com/npillmayer/csstree/report"
	"github.com/npillmayer/csstree/syntax"
)

// Wildcard is the refine key matching every refinable node of a type.
const Wildcard = "*"

// Subscription is the interest of a plugin in nodes of a Go type during one
// dispatch phase. Subscriptions are created with Refine, Rework, Observe and
// Validate.
type Subscription struct {
	name    string
	phase   syntax.Phase
	key     string // refine key
	target  reflect.Type
	matches func(syntax.Node) bool
	refine  grammar.CustomRefineFunc
	handle  func(syntax.Node, *report.Manager) error
	missing bool // handler is nil
	plugin  string
}

// Name returns the name of the subscription, used in error messages.
func (s Subscription) Name() string {
	return s.name
}

// Named sets the name of a subscription.
func (s Subscription) Named(name string) Subscription {
	s.name = name
	return s
}

// Phase returns the dispatch phase of the subscription.
func (s Subscription) Phase() syntax.Phase {
	return s.phase
}

// Key returns the refine key of a REFINE subscription.
func (s Subscription) Key() string {
	return s.key
}

func (s Subscription) String() string {
	if s.plugin == "" {
		return s.name
	}
	return s.plugin + "." + s.name
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func matcher[T any]() func(syntax.Node) bool {
	return func(unit syntax.Node) bool {
		_, ok := unit.(T)
		return ok
	}
}

// Refine subscribes a custom refiner for refinable nodes of type T with refine key
// key. Wildcard matches all keys. The refiner receives the grammar for sub-parsers
// and a broadcaster to hand the resulting nodes to; returning RefinedNone lets the
// standard refiner take over.
func Refine[T syntax.Refinable](key string, fn func(T, *grammar.Grammar, syntax.Broadcaster) (syntax.Refinement, error)) Subscription {
	t := typeOf[T]()
	s := Subscription{
		name:    fmt.Sprintf("refine %v(%s)", t, key),
		phase:   syntax.PhaseRefine,
		key:     key,
		target:  t,
		matches: matcher[T](),
		missing: fn == nil,
	}
	if fn != nil {
		s.refine = func(unit syntax.Refinable, g *grammar.Grammar, bc syntax.Broadcaster) (syntax.Refinement, error) {
			return fn(unit.(T), g, bc)
		}
	}
	return s
}

// Rework subscribes fn for nodes of type T in the PROCESS phase. fn may change
// the tree.
func Rework[T syntax.Node](fn func(T) error) Subscription {
	return process(fn, "rework")
}

// Observe subscribes fn for nodes of type T in the PROCESS phase. fn should not
// change the tree.
func Observe[T syntax.Node](fn func(T) error) Subscription {
	return process(fn, "observe")
}

func process[T syntax.Node](fn func(T) error, verb string) Subscription {
	t := typeOf[T]()
	s := Subscription{
		name:    fmt.Sprintf("%s %v", verb, t),
		phase:   syntax.PhaseProcess,
		target:  t,
		matches: matcher[T](),
		missing: fn == nil,
	}
	if fn != nil {
		s.handle = func(unit syntax.Node, _ *report.Manager) error {
			return fn(unit.(T))
		}
	}
	return s
}

// Validate subscribes fn for nodes of type T in the VALIDATE phase. Problems are
// reported to the manager handed to fn.
func Validate[T syntax.Node](fn func(T, *report.Manager) error) Subscription {
	t := typeOf[T]()
	s := Subscription{
		name:    fmt.Sprintf("validate %v", t),
		phase:   syntax.PhaseValidate,
		target:  t,
		matches: matcher[T](),
		missing: fn == nil,
	}
	if fn != nil {
		s.handle = func(unit syntax.Node, m *report.Manager) error {
			return fn(unit.(T), m)
		}
	}
	return s
}

// check returns a configuration error for a malformed subscription.
func (s *Subscription) check() error {
	if s.missing {
		return &ConfigError{Plugin: s.plugin, Subscription: s.name, Message: "handler is nil"}
	}
	if s.phase == syntax.PhaseRefine && s.key == "" {
		return &ConfigError{Plugin: s.plugin, Subscription: s.name, Message: "refine subscription without key"}
	}
	return nil
}

package emitter

import (
	"fmt"
	"reflect"

	"github.com/npillmayer/csstree/grammar"
	"github.com/npillmayer/csstree/report"
	"github.com/npillmayer/csstree/syntax"
)

// Mode selects the phases an emitter delivers.
type Mode uint8

// Parsing usually runs in ModeProcess, followed by a validation pass over the
// final tree in ModeValidate.
const (
	ModeProcess  = Mode(syntax.PhaseRefine | syntax.PhaseProcess)
	ModeValidate = Mode(syntax.PhaseValidate)
	ModeAll      = ModeProcess | ModeValidate
)

func (m Mode) has(p syntax.Phase) bool {
	return Mode(p)&m != 0
}

// Emitter dispatches nodes to the subscriptions of registered plugins.
// It implements syntax.Broadcaster and grammar.CustomRefiners.
type Emitter struct {
	registry Registry
	subs     []*Subscription // in registration order
	index    map[syntax.Kind][]*Subscription
	grammar  *grammar.Grammar
	reports  *report.Manager
	mode     Mode
}

// New creates an emitter in ModeProcess and registers plugins. Dependencies of
// plugins are registered ahead of them. Configuration errors are returned as
// *ConfigError.
func New(plugins ...Plugin) (*Emitter, error) {
	e := &Emitter{
		index:   make(map[syntax.Kind][]*Subscription),
		reports: &report.Manager{},
		mode:    ModeProcess,
	}
	e.grammar = grammar.New(e)
	for _, p := range plugins {
		if err := e.register(p, plugins); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Register registers a plugin and its dependencies.
func (e *Emitter) Register(p Plugin) error {
	return e.register(p, nil)
}

func (e *Emitter) register(p Plugin, requested []Plugin) error {
	if p == nil {
		return &ConfigError{Plugin: "<nil>", Message: "cannot register nil plugin"}
	}
	if e.registered(p) {
		return nil
	}
	meta := metaOf(p)
	if meta.dependent {
		for _, dep := range p.(Dependent).Dependencies() {
			if e.registry.Has(dep) {
				continue
			}
			if r, ok := firstOfType(requested, dep); ok {
				dep = r
			}
			tracer().Debugf("plugin %s requires %s", meta.name, metaOf(dep).name)
			if err := e.register(dep, requested); err != nil {
				return err
			}
		}
	}
	subs := p.Subscriptions()
	phases := make(map[string]syntax.Phase, len(subs))
	checked := make([]*Subscription, 0, len(subs))
	for i := range subs {
		s := subs[i]
		s.plugin = meta.name
		if err := s.check(); err != nil {
			return err
		}
		if ph, ok := phases[s.name]; ok && ph != s.phase {
			return &ConfigError{
				Plugin:       meta.name,
				Subscription: s.name,
				Message:      fmt.Sprintf("registered for phases %v and %v", ph, s.phase),
			}
		}
		phases[s.name] = s.phase
		checked = append(checked, &s)
	}
	e.subs = append(e.subs, checked...)
	e.registry.add(p)
	e.index = make(map[syntax.Kind][]*Subscription)
	tracer().Debugf("registered plugin %s with %d subscription(s)", meta.name, len(checked))
	return nil
}

// registered is true if the very plugin p is already registered.
func (e *Emitter) registered(p Plugin) bool {
	if !reflect.TypeOf(p).Comparable() {
		return false
	}
	for _, q := range e.registry.plugins {
		if reflect.TypeOf(q) == reflect.TypeOf(p) && q == p {
			return true
		}
	}
	return false
}

func firstOfType(plugins []Plugin, like Plugin) (Plugin, bool) {
	t := reflect.TypeOf(like)
	for _, p := range plugins {
		if reflect.TypeOf(p) == t {
			return p, true
		}
	}
	return nil, false
}

// Registry returns the registry of plugins.
func (e *Emitter) Registry() *Registry {
	return &e.registry
}

// Grammar returns the grammar whose master refiner consults the emitter's
// refine subscriptions.
func (e *Emitter) Grammar() *grammar.Grammar {
	return e.grammar
}

// Reports returns the manager validators report to.
func (e *Emitter) Reports() *report.Manager {
	return e.reports
}

// SetReports replaces the manager validators report to.
func (e *Emitter) SetReports(m *report.Manager) {
	if m != nil {
		e.reports = m
	}
}

// Mode returns the current mode.
func (e *Emitter) Mode() Mode {
	return e.mode
}

// SetMode sets the phases to deliver.
func (e *Emitter) SetMode(m Mode) {
	e.mode = m
}

// Validate runs a validation pass over the tree below root, in ModeValidate.
func (e *Emitter) Validate(root syntax.Node) error {
	mode := e.mode
	e.mode = ModeValidate
	defer func() { e.mode = mode }()
	return syntax.Propagate(e, root)
}

// --- Dispatch --------------------------------------------------------------

// Broadcast dispatches unit to all matching subscriptions of the current mode.
func (e *Emitter) Broadcast(unit syntax.Node) error {
	if syntax.IsNil(unit) {
		return syntax.ErrNilUnit
	}
	if unit.Status() == syntax.NeverEmit {
		return nil
	}
	e.adopt(unit)
	if unit.Status() == syntax.Unbroadcast {
		unit.SetStatus(syntax.Queued)
	}
	subs := e.subscriptionsFor(unit)
	if err := e.refine(unit, subs); err != nil {
		return err
	}
	if err := e.deliver(unit, subs, syntax.PhaseProcess); err != nil {
		return err
	}
	if e.mode.has(syntax.PhaseProcess) {
		unit.SetStatus(syntax.Parsed)
	}
	return e.deliver(unit, subs, syntax.PhaseValidate)
}

// adopt makes the emitter the broadcaster for future children of unit.
func (e *Emitter) adopt(unit syntax.Node) {
	if a, ok := unit.(interface{ AttachBroadcaster(syntax.Broadcaster) }); ok {
		a.AttachBroadcaster(e)
	}
	if r, ok := unit.(syntax.Refinable); ok {
		r.AttachRefiner(e.grammar.Refiner())
	}
}

// subscriptionsFor returns the candidate subscriptions for the kind of unit.
// The index is built lazily, from the first unit of each kind.
func (e *Emitter) subscriptionsFor(unit syntax.Node) []*Subscription {
	k := unit.Kind()
	if subs, ok := e.index[k]; ok {
		return subs
	}
	var subs []*Subscription
	for _, s := range e.subs {
		if s.matches(unit) {
			subs = append(subs, s)
		}
	}
	if k != syntax.KindUnknown {
		e.index[k] = subs
	}
	return subs
}

func (e *Emitter) refine(unit syntax.Node, subs []*Subscription) error {
	if !e.mode.has(syntax.PhaseRefine) || syntax.ShouldBreak(unit, syntax.PhaseRefine) {
		return nil
	}
	if r, ok := unit.(syntax.Refinable); ok && r.RefineState() == syntax.RefineRaw {
		if s := refineSubscription(r, subs); s != nil {
			tracer().Debugf("%v refines %v #%d", s, unit.Kind(), unit.ID())
			if err := r.Refine(); err != nil {
				return &HandlerError{Subscription: s.String(), Unit: unit, Err: err}
			}
		}
	}
	unit.MarkDelivered(syntax.PhaseRefine)
	return nil
}

func (e *Emitter) deliver(unit syntax.Node, subs []*Subscription, p syntax.Phase) error {
	if !e.mode.has(p) {
		return nil
	}
	for _, s := range subs {
		if s.phase != p || !s.matches(unit) {
			continue
		}
		if syntax.ShouldBreak(unit, p) {
			tracer().Debugf("dispatch of %v #%d in phase %v stopped", unit.Kind(), unit.ID(), p)
			return nil
		}
		if err := s.handle(unit, e.reports); err != nil {
			return &HandlerError{Subscription: s.String(), Unit: unit, Err: err}
		}
	}
	unit.MarkDelivered(p)
	return nil
}

// refineSubscription finds the refine subscription for a unit. A subscription
// for the unit's refine key is preferred over a wildcard subscription.
func refineSubscription(unit syntax.Refinable, subs []*Subscription) *Subscription {
	var wildcard *Subscription
	key := unit.RefineKey()
	for _, s := range subs {
		if s.phase != syntax.PhaseRefine || !s.matches(unit) {
			continue
		}
		if s.key == key {
			return s
		}
		if s.key == Wildcard && wildcard == nil {
			wildcard = s
		}
	}
	return wildcard
}

// CustomRefiner implements grammar.CustomRefiners.
func (e *Emitter) CustomRefiner(unit syntax.Refinable) (grammar.CustomRefineFunc, bool) {
	if s := refineSubscription(unit, e.subscriptionsFor(unit)); s != nil {
		return s.refine, true
	}
	return nil, false
}

var _ syntax.Broadcaster = &Emitter{}
var _ grammar.CustomRefiners = &Emitter{}

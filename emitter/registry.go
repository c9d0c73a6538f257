package emitter

import (
	"reflect"
	"strings"
	"sync"
)

// Plugin is a provider of subscriptions.
type Plugin interface {
	Subscriptions() []Subscription
}

// Dependent is implemented by plugins which need other plugins to work.
// Dependencies returns default instances of the plugins required. A default
// instance is registered only if no plugin of the same type has been requested.
type Dependent interface {
	Dependencies() []Plugin
}

// pluginMeta is what is known about a plugin type.
type pluginMeta struct {
	name      string
	dependent bool
}

// metaCache holds a *pluginMeta per plugin type. It is shared between all
// emitters.
var metaCache sync.Map

func metaOf(p Plugin) *pluginMeta {
	t := reflect.TypeOf(p)
	if m, ok := metaCache.Load(t); ok {
		return m.(*pluginMeta)
	}
	name := strings.TrimPrefix(t.String(), "*")
	_, dependent := p.(Dependent)
	m, loaded := metaCache.LoadOrStore(t, &pluginMeta{name: name, dependent: dependent})
	if !loaded {
		tracer().Debugf("new plugin type %s", name)
	}
	return m.(*pluginMeta)
}

// Registry holds the plugins registered with an emitter, in registration order.
type Registry struct {
	plugins []Plugin
}

// Plugins returns the registered plugins, in registration order.
func (r *Registry) Plugins() []Plugin {
	return append([]Plugin(nil), r.plugins...)
}

// Has is true if a plugin of the same type as p is registered.
func (r *Registry) Has(p Plugin) bool {
	t := reflect.TypeOf(p)
	for _, q := range r.plugins {
		if reflect.TypeOf(q) == t {
			return true
		}
	}
	return false
}

func (r *Registry) add(p Plugin) {
	r.plugins = append(r.plugins, p)
}

// Retrieve returns the first registered plugin of type T.
func Retrieve[T Plugin](r *Registry) (T, bool) {
	for _, p := range r.plugins {
		if x, ok := p.(T); ok {
			return x, true
		}
	}
	var zero T
	return zero, false
}

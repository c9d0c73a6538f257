/*
Package plugin provides plugins for the emitter of package emitter.

Plugins are sets of typed subscriptions. Some of them refine or rework the
syntax tree while it is parsed (AutoRefiner, CustomVars, Conditionals,
Shorthands, UnitConverter), some only look at it (EchoLogger), and others
validate the final tree and report problems (ConditionalsValidator,
SelectorValidator, UnusedSelectors, PropertyValidator).

Refinement is lazy: selectors, declarations, at-rules and functions stay raw
unless some plugin subscribes to refine them. Plugins needing a structured
tree say so by a wildcard refine subscription; AutoRefiner does nothing else.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package plugin

import (
	"github.com/npillmayer/csstree/emitter"
	"github.com/npillmayer/csstree/grammar"
	"github.com/npillmayer/csstree/syntax"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'csstree.plugin'.
func tracer() tracing.Trace {
	return tracing.Select("csstree.plugin")
}

// standard hands a unit over to the standard refiner.
func standard[T syntax.Refinable](T, *grammar.Grammar, syntax.Broadcaster) (syntax.Refinement, error) {
	return syntax.RefinedNone, nil
}

// refineAll subscribes the standard refiner for all units of type T.
func refineAll[T syntax.Refinable]() emitter.Subscription {
	return emitter.Refine[T](emitter.Wildcard, standard[T])
}

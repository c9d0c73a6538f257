/*
Package broadcast implements composable broadcasters for syntax units.

A broadcaster does its own handling of a unit and then, if it has one, forwards
the unit to its relay. Wrapping broadcasters around each other yields a chain,
e.g. a Counter counting units of certain kinds, wrapped around the broadcaster
feeding the emitter. Chain makes the sequence of sinks explicit.

Queryable and SingleInterest capture units instead of dispatching them. They are
used to collect the output of a sub-parse without leaking it into the outer
pipeline.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package broadcast

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'csstree.broadcast'.
func tracer() tracing.Trace {
	return tracing.Select("csstree.broadcast")
}

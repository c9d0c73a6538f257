/*
Package emitter dispatches syntax nodes to plugins.

Plugins declare typed subscriptions for the three dispatch phases:

	REFINE    emitter.Refine[T](key, fn)   custom refiner for raw nodes of type T
	PROCESS   emitter.Rework[T](fn)        may change the tree
	          emitter.Observe[T](fn)       looks, does not touch
	VALIDATE  emitter.Validate[T](fn)      reports problems to a report.Manager

An Emitter is a syntax.Broadcaster. For every node it receives, it delivers
all REFINE subscriptions before any PROCESS subscription before any VALIDATE
subscription; within a phase, subscriptions are delivered in registration
order. A matching REFINE subscription makes the emitter refine the node right
away, so that the node's new children are dispatched (depth first) before the
node itself reaches PROCESS.

Before every single delivery the emitter checks whether the node has been
marked NeverEmit, has been destroyed, or has already been delivered in the
current phase, and stops dispatch for the node if so.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package emitter

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'csstree.emitter'.
func tracer() tracing.Trace {
	return tracing.Select("csstree.emitter")
}

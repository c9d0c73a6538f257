/*
Package syntax provides the substrate every node of a CSS syntax tree is built upon.

Nodes

A syntax node carries a process-wide creation sequence number, a source position,
a broadcast status and its leading comments. Concrete node types are found in
package ast; they embed Base to get the bookkeeping for free.

Collections

Nodes which may be grouped into an ordered sequence embed a Link. A Collection owns
the positional order of its members. Internally a collection is an arena of slots,
addressed by index and protected by a generation counter, so a stale reference to a
removed member is detected instead of silently re-linking garbage.

A node is a member of at most one collection. Attaching a grouped node to another
collection moves it.

Refinement

Some nodes are created holding raw, unparsed content only. These are Refinables.
Refinement promotes the raw content into a structured sub-tree, exactly once and on
demand. Refinables embed Lazy, which implements the state machine

    RefineRaw ──> Refining ──> Refined

and guards against re-entrant refinement.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package syntax

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'csstree.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("csstree.syntax")
}

/*
Package ast holds the node types of a CSS syntax tree.

A Stylesheet owns a collection of statements: rules, at-rules and orphaned
comments. Rules own selectors and declarations. Selectors, declarations,
at-rules and raw functions are refinable: they are created holding raw source
text and are promoted to structure (selector parts, property values and terms,
at-rule expressions and blocks) on demand.

Every node type registers a syntax.Kind. Plugins may define additional node
types the same way.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package ast

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'csstree.ast'.
func tracer() tracing.Trace {
	return tracing.Select("csstree.ast")
}

// ErrUnexpectedUnit is returned if a node is asked to absorb a refined unit
// it cannot hold.
var ErrUnexpectedUnit = errors.New("refinement produced a unit of unexpected type")

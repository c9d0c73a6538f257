/*
Package cssom provides a read-only object model view on stylesheets.

CSSOM is the "CSS Object Model", similar to the DOM for HTML. Clients
interested in rules and property values, rather than in the syntax tree
built by the parser, work with interfaces StyleSheet and Rule. Concrete
implementations may be found in sub-packages, e.g. package douceuradapter,
which converts syntax trees into douceur stylesheets.

Having this interface imposes a performance hit. However, this
implementation will never trade modularity and clarity for performance.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'csstree.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("csstree.cssom")
}

/*
Package grammar implements the parsers and standard refiners for CSS source.

Parsing happens in two stages. ParseStylesheet splits the source into raw
statements: rules holding raw selectors and raw declarations, and at-rules
holding a raw prelude and a raw block. Refiners later promote raw content
into structure. The MasterRefiner first consults custom refiners (usually
registered by plugins through the emitter) and falls back to the standard
refiner for a node kind.

Tokenization is done by the scanner of github.com/gorilla/css. A Source
wraps the scanner and maps token positions of a raw fragment onto positions
of the original stylesheet.

Parsers broadcast every node they construct. Sub-parsers used during
refinement broadcast into a capturing broadcaster, from where the refined
unit absorbs the results.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package grammar

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'csstree.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("csstree.grammar")
}

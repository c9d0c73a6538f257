/*
Package csstree parses CSS sources into a syntax tree which plugins may
refine, rework, observe and validate.

A pipeline run looks like this:

    result, err := csstree.Source(text).
        Use(plugin.NewConditionals("print"), plugin.NewSelectorValidator(report.Error)).
        Configure(conf).
        Process()

Parsing produces a tree of raw units: selectors, declarations, at-rules and
functions are kept as text until a plugin asks for them to be refined.
Each unit is broadcast through an emitter exactly once, parents before
children, and handed to the subscriptions of the registered plugins in the
phases REFINE, PROCESS and VALIDATE. Validation runs as a second pass over the
final tree; problems are collected and a run fails if any of them is fatal.

Configuration

Pipelines may be configured with a schuko.Configuration. Keys are

    csstree.autorefine           "all", "none" (default) or a comma separated
                                 list of "selector", "declaration", "atrule",
                                 "function"
    csstree.validate             run the validation pass (default true)
    csstree.maxproblems          maximum number of problems recorded, 0 = no limit
    csstree.selectors.severity   if set, validate selectors with this severity

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package csstree

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'csstree'.
func tracer() tracing.Trace {
	return tracing.Select("csstree")
}

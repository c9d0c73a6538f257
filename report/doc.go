/*
Package report collects problems found while validating a syntax tree.

Validation findings are not errors in the Go sense: validators report them to a
Manager and carry on, so a single run may collect any number of problems. Only at
the end of a run is a SummaryError raised, if any of the problems is fatal.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package report

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'csstree.report'.
func tracer() tracing.Trace {
	return tracing.Select("csstree.report")
}

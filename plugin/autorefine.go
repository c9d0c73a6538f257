package plugin

import (
	"fmt"
	"strings"

	"github.com/npillmayer/csstree/ast"
	"github.com/npillmayer/csstree/emitter"
)

// Names of the unit types AutoRefiner may refine.
const (
	RefineSelectors    = "selector"
	RefineDeclarations = "declaration"
	RefineAtRules      = "atrule"
	RefineFunctions    = "function"
)

// AutoRefiner refines units of selected types with the standard refiners,
// as soon as they are broadcast.
type AutoRefiner struct {
	selectors, declarations, atRules, functions bool
}

// NewAutoRefiner creates an auto-refiner for the given unit types. Besides the
// type names, "all" selects every type and "none" is ignored.
func NewAutoRefiner(types ...string) (*AutoRefiner, error) {
	a := &AutoRefiner{}
	for _, t := range types {
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "all":
			a.selectors, a.declarations, a.atRules, a.functions = true, true, true, true
		case RefineSelectors, "selectors":
			a.selectors = true
		case RefineDeclarations, "declarations":
			a.declarations = true
		case RefineAtRules, "atrules", "at-rule", "at-rules":
			a.atRules = true
		case RefineFunctions, "functions":
			a.functions = true
		case "none", "":
		default:
			return nil, fmt.Errorf("auto-refiner: unknown unit type %q", t)
		}
	}
	return a, nil
}

// AutoRefineAll creates an auto-refiner for all refinable unit types.
func AutoRefineAll() *AutoRefiner {
	return &AutoRefiner{selectors: true, declarations: true, atRules: true, functions: true}
}

// IsEmpty is true if a refines nothing.
func (a *AutoRefiner) IsEmpty() bool {
	return !(a.selectors || a.declarations || a.atRules || a.functions)
}

func (a *AutoRefiner) Subscriptions() []emitter.Subscription {
	var subs []emitter.Subscription
	if a.selectors {
		subs = append(subs, refineAll[*ast.Selector]())
	}
	if a.declarations {
		subs = append(subs, refineAll[*ast.Declaration]())
	}
	if a.atRules {
		subs = append(subs, refineAll[*ast.AtRule]())
	}
	if a.functions {
		subs = append(subs, refineAll[*ast.RawFunction]())
	}
	return subs
}

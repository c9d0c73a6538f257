package grammar

import (
	"fmt"

	"github.com/npillmayer/csstree/ast"
	"github.com/npillmayer/csstree/broadcast"
	"github.com/npillmayer/csstree/syntax"
)

// CustomRefineFunc is a refiner supplied from outside the grammar, usually by
// a plugin. It parses the raw content of unit, using g for sub-parsers, and
// broadcasts the resulting nodes through bc. Returning RefinedNone hands the
// unit over to the standard refiner.
type CustomRefineFunc func(unit syntax.Refinable, g *Grammar, bc syntax.Broadcaster) (syntax.Refinement, error)

// CustomRefiners looks up a custom refiner for a unit.
type CustomRefiners interface {
	CustomRefiner(unit syntax.Refinable) (CustomRefineFunc, bool)
}

// Grammar is a handle for the parsers of this package. It carries the master
// refiner, which is attached to every refinable node the parsers create.
type Grammar struct {
	refiner *MasterRefiner
}

// New creates a grammar. custom may be nil, in which case only the standard
// refiners are used.
func New(custom CustomRefiners) *Grammar {
	g := &Grammar{}
	g.refiner = &MasterRefiner{g: g, custom: custom}
	return g
}

// Refiner returns the master refiner of g.
func (g *Grammar) Refiner() *MasterRefiner {
	return g.refiner
}

func (g *Grammar) attach(unit syntax.Refinable) {
	unit.AttachRefiner(g.refiner)
}

// MasterRefiner refines units by first trying a custom refiner and then the
// standard refiner for the unit's type.
type MasterRefiner struct {
	g      *Grammar
	custom CustomRefiners
}

// RefineNode implements syntax.Refiner. Nodes produced by the refiner are
// captured and handed to unit.Absorb. Errors are anchored at the position of
// unit.
func (m *MasterRefiner) RefineNode(unit syntax.Refinable) (syntax.Refinement, error) {
	line, col := unit.Pos()
	capture := broadcast.NewQueryable(nil)
	outcome := syntax.RefinedNone
	if m.custom != nil {
		if fn, ok := m.custom.CustomRefiner(unit); ok {
			var err error
			if outcome, err = fn(unit, m.g, capture); err != nil {
				return syntax.RefinedNone, syntax.ErrorAt(line, col, "cannot refine "+unit.Kind().String(), err)
			}
		}
	}
	if outcome == syntax.RefinedNone {
		capture = broadcast.NewQueryable(nil)
		var err error
		if outcome, err = m.g.refineStandard(unit, capture); err != nil {
			return syntax.RefinedNone, syntax.ErrorAt(line, col, "cannot refine "+unit.Kind().String(), err)
		}
	}
	if outcome == syntax.RefinedNone {
		return outcome, nil
	}
	if err := unit.Absorb(capture.All(), outcome); err != nil {
		return syntax.RefinedNone, err
	}
	return outcome, nil
}

var _ syntax.Refiner = &MasterRefiner{}

// refineStandard dispatches to the standard refiner for a unit type.
func (g *Grammar) refineStandard(unit syntax.Refinable, bc syntax.Broadcaster) (syntax.Refinement, error) {
	switch u := unit.(type) {
	case *ast.Selector:
		return g.refineSelector(u, bc)
	case *ast.Declaration:
		return g.refineDeclaration(u, bc)
	case *ast.AtRule:
		return g.refineAtRule(u, bc)
	case *ast.RawFunction:
		return g.refineFunction(u, bc)
	}
	tracer().Debugf("no standard refiner for %v", unit.Kind())
	return syntax.RefinedNone, nil
}

func (g *Grammar) refineSelector(s *ast.Selector, bc syntax.Broadcaster) (syntax.Refinement, error) {
	raw, ok := s.Raw()
	if !ok {
		return syntax.RefinedNone, nil
	}
	if _, err := g.ParseSelectorParts(raw, bc); err != nil {
		return syntax.RefinedNone, err
	}
	return syntax.RefinedFull, nil
}

func (g *Grammar) refineDeclaration(d *ast.Declaration, bc syntax.Broadcaster) (syntax.Refinement, error) {
	raw, ok := d.Raw()
	if !ok {
		return syntax.RefinedNone, nil
	}
	if _, err := g.ParsePropertyValue(raw, bc); err != nil {
		return syntax.RefinedNone, err
	}
	return syntax.RefinedFull, nil
}

func (g *Grammar) refineFunction(f *ast.RawFunction, bc syntax.Broadcaster) (syntax.Refinement, error) {
	line, col := f.Pos()
	var t ast.Term
	if f.RefineKey() == "url" {
		t = ast.NewUrlFunction(unquote(f.Args), line, col)
	} else {
		t = ast.NewGenericFunction(f.Name, f.Args, line, col)
	}
	if err := emit(bc, t); err != nil {
		return syntax.RefinedNone, err
	}
	return syntax.RefinedFull, nil
}

// emit broadcasts a top-level product of a parser. Children are broadcast
// later, by the collection the product is inserted into.
func emit(bc syntax.Broadcaster, unit syntax.Node) error {
	if bc == nil {
		return nil
	}
	return bc.Broadcast(unit)
}

func unquote(s string) string {
	if n := len(s); n >= 2 && (s[0] == '"' || s[0] == '\'') && s[n-1] == s[0] {
		return s[1 : n-1]
	}
	return s
}

// ParseNumerical parses a numerical value, e.g. "-1.5em". It captures the
// first numerical term of text; other terms are ignored.
func (g *Grammar) ParseNumerical(text string) (*ast.NumericalValue, error) {
	interest := broadcast.NewSingleInterest[*ast.NumericalValue](nil)
	raw := syntax.RawContent{Content: text, Line: 1, Column: 1}
	if _, err := g.ParseTerms(raw, interest); err != nil {
		return nil, err
	}
	n, ok := interest.Broadcasted()
	if !ok {
		return nil, fmt.Errorf("not a numerical value: %q", text)
	}
	return n, nil
}

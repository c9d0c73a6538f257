package plugin

import (
	"fmt"

	"github.com/npillmayer/csstree/ast"
	"github.com/npillmayer/csstree/css"
	"github.com/npillmayer/csstree/emitter"
	"github.com/npillmayer/tyse/core/dimen"
)

// UnitConverter converts numerical values in absolute units (pt, in, cm, mm,
// pc, q, px) to a single target unit.
type UnitConverter struct {
	target string
}

// NewUnitConverter creates a converter to unit target, which has to be an
// absolute unit.
func NewUnitConverter(target string) (*UnitConverter, error) {
	if !css.IsAbsoluteUnit(target) {
		return nil, fmt.Errorf("unit converter: %q is not an absolute unit", target)
	}
	return &UnitConverter{target: target}, nil
}

// Target returns the target unit.
func (u *UnitConverter) Target() string {
	return u.target
}

func (u *UnitConverter) Subscriptions() []emitter.Subscription {
	return []emitter.Subscription{
		refineAll[*ast.Declaration](),
		emitter.Rework(u.convert).Named("convert units"),
	}
}

func (u *UnitConverter) convert(n *ast.NumericalValue) error {
	if n.Unit == u.target || !css.IsAbsoluteUnit(n.Unit) {
		return nil
	}
	d, err := css.FromNumerical(n)
	if err != nil {
		return err
	}
	var du dimen.DU
	if d.Match().Just(&du) == nil {
		return nil
	}
	x, err := css.FromDU(du, u.target)
	if err != nil {
		return err
	}
	tracer().Debugf("%s = %g%s", n, x, u.target)
	n.SetValue(x)
	n.Unit = u.target
	return nil
}

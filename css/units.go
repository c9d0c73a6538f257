package css

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/csstree/ast"
	"github.com/npillmayer/tyse/core/dimen"
	"github.com/npillmayer/tyse/core/percent"
)

// ErrNotADimension is returned for terms which do not denote a dimension.
var ErrNotADimension = errors.New("term is not a dimension")

// points per absolute unit. 1in = 96px = 72pt.
var points = map[string]float64{
	"pt": 1,
	"px": 0.75,
	"in": 72,
	"pc": 12,
	"cm": 72 / 2.54,
	"mm": 72 / 25.4,
	"q":  72 / 101.6,
}

// IsAbsoluteUnit is true for units with a fixed length.
func IsAbsoluteUnit(unit string) bool {
	_, ok := points[unit]
	return ok
}

// FromNumerical converts a numerical term into a dimension. Unitless numbers
// are accepted for zero only.
func FromNumerical(n *ast.NumericalValue) (DimenT, error) {
	if n == nil {
		return DimenT{}, ErrNotADimension
	}
	x := n.Value()
	switch u := n.Unit; {
	case u == "%":
		return Percentage(percent.FromInt(int(math.Round(x)))), nil
	case u == "" && x == 0:
		return JustDimen(0), nil
	case u == "":
		return DimenT{}, fmt.Errorf("%w: unitless number %s", ErrNotADimension, n)
	case IsAbsoluteUnit(u):
		return JustDimen(ToDU(x, u)), nil
	}
	d, err := Relative(x, n.Unit)
	if err != nil {
		return DimenT{}, fmt.Errorf("%w: %s", ErrNotADimension, n)
	}
	return d, nil
}

// FromTerm converts a term into a dimension. Besides numerical terms it
// accepts the keywords "auto", "inherit" and "initial".
func FromTerm(t ast.Term) (DimenT, error) {
	switch x := t.(type) {
	case *ast.NumericalValue:
		return FromNumerical(x)
	case *ast.KeywordValue:
		switch x.Keyword {
		case "auto":
			return Auto(), nil
		case "inherit":
			return Inherit(), nil
		case "initial":
			return Initial(), nil
		}
	}
	return DimenT{}, fmt.Errorf("%w: %s", ErrNotADimension, t)
}

// ToDU converts x in an absolute unit to design units. Unknown units yield 0.
func ToDU(x float64, unit string) dimen.DU {
	pts, ok := points[unit]
	if !ok {
		tracer().Errorf("cannot convert unit %q", unit)
		return 0
	}
	return dimen.DU(math.Round(x * pts * float64(dimen.PT)))
}

// FromDU converts design units to an absolute unit, rounded to 1/100.
func FromDU(du dimen.DU, unit string) (float64, error) {
	pts, ok := points[unit]
	if !ok {
		return 0, fmt.Errorf("not an absolute unit: %q", unit)
	}
	x := float64(du) / float64(dimen.PT) / pts
	return math.Round(x*100) / 100, nil
}

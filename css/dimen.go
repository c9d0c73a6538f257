package css

import (
	"fmt"

	"github.com/npillmayer/tyse/core/dimen"
	"github.com/npillmayer/tyse/core/percent"
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	kindMask      uint32 = 0x000f

	// Flags for content dependent dimensions
	DimenContentMax uint32 = 0x0010
	DimenContentMin uint32 = 0x0020
	DimenContentFit uint32 = 0x0030
	contentMask     uint32 = 0x00f0

	dimenEM      uint32 = 0x0100
	dimenEX      uint32 = 0x0200
	dimenCH      uint32 = 0x0300
	dimenREM     uint32 = 0x0400
	dimenVW      uint32 = 0x0500
	dimenVH      uint32 = 0x0600
	dimenVMIN    uint32 = 0x0700
	dimenVMAX    uint32 = 0x0800
	dimenPercent uint32 = 0x0900
	relativeMask uint32 = 0xff00
)

var relativeUnits = map[string]uint32{
	"em":   dimenEM,
	"ex":   dimenEX,
	"ch":   dimenCH,
	"rem":  dimenREM,
	"vw":   dimenVW,
	"vh":   dimenVH,
	"vmin": dimenVMIN,
	"vmax": dimenVMAX,
}

// DimenT is an option type for CSS dimensions.
type DimenT struct {
	d       dimen.DU
	percent percent.Percent
	rel     float64 // factor for font- and viewport-relative units
	flags   uint32
}

/*
type DimenT
	= Auto
	| Inherit
	| Initial
	| JustDimen dimen
	| Percentage Percent
	| ViewRel unit
	| FontRel unit
	| ContentRel Min N
	| ContentRel Max N
*/

// Auto is the dimension for keyword "auto".
func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

// Inherit is the dimension for keyword "inherit".
func Inherit() DimenT {
	return DimenT{flags: dimenInherit}
}

// Initial is the dimension for keyword "initial".
func Initial() DimenT {
	return DimenT{flags: dimenInitial}
}

// JustDimen creates a CSS dimension with a fixed value of x.
func JustDimen(x dimen.DU) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Percentage creates a CSS dimension with a %-relative value.
func Percentage(n percent.Percent) DimenT {
	return DimenT{percent: n, flags: dimenPercent}
}

// Relative creates a CSS dimension relative to a font or the viewport, e.g.
// Relative(1.5, "em").
func Relative(x float64, unit string) (DimenT, error) {
	flag, ok := relativeUnits[unit]
	if !ok {
		return DimenT{}, fmt.Errorf("not a relative unit: %q", unit)
	}
	return DimenT{rel: x, flags: flag}, nil
}

// IsAbsolute is true for fixed dimensions.
func (d DimenT) IsAbsolute() bool {
	return d.flags&kindMask == dimenAbsolute
}

// IsRelative is true for percentages and font- or viewport-relative dimensions.
func (d DimenT) IsRelative() bool {
	return d.flags&relativeMask > 0
}

// Unit returns the relative unit of d, or "" for other dimensions.
func (d DimenT) Unit() string {
	if d.flags&relativeMask == dimenPercent {
		return "%"
	}
	for u, f := range relativeUnits {
		if d.flags&relativeMask == f {
			return u
		}
	}
	return ""
}

func (d DimenT) String() string {
	switch {
	case d.flags&kindMask == dimenAuto:
		return "auto"
	case d.flags&kindMask == dimenInherit:
		return "inherit"
	case d.flags&kindMask == dimenInitial:
		return "initial"
	case d.IsAbsolute():
		return fmt.Sprintf("%v", d.d)
	case d.flags&relativeMask == dimenPercent:
		return fmt.Sprintf("%v", d.percent)
	case d.IsRelative():
		return fmt.Sprintf("%g%s", d.rel, d.Unit())
	}
	return "none"
}

// ---------------------------------------------------------------------------

// Match starts matching d against dimension kinds:
//
//     switch m := d.Match(); m {
//     case m.Just(&du):
//         …
//     case m.IsKind(css.Auto()):
//         …
//     }
func (d DimenT) Match() *Matcher {
	return &Matcher{dimen: d}
}

// Matcher matches a dimension. Every method returns the matcher itself on a
// match and nil otherwise.
type Matcher struct {
	dimen DimenT
}

// IsKind matches if d is of the same kind as the dimension of m.
func (m *Matcher) IsKind(d DimenT) *Matcher {
	switch {
	case (m.dimen.flags&kindMask > 0) && (m.dimen.flags&kindMask) == (d.flags&kindMask):
		return m
	case (m.dimen.flags&relativeMask > 0) && (d.flags&relativeMask > 0):
		if (m.dimen.flags&relativeMask == dimenPercent) != (d.flags&relativeMask == dimenPercent) {
			return nil
		}
		return m
	case (m.dimen.flags&contentMask > 0) && (d.flags&contentMask > 0):
		return m
	}
	return nil
}

// Just matches fixed dimensions and stores the value in du, if du is not nil.
func (m *Matcher) Just(du *dimen.DU) *Matcher {
	if m.dimen.IsAbsolute() {
		if du != nil {
			*du = m.dimen.d
		}
		return m
	}
	return nil
}

// Percentage matches percentages and stores the value in p, if p is not nil.
func (m *Matcher) Percentage(p *percent.Percent) *Matcher {
	if m.dimen.flags&relativeMask == dimenPercent {
		if p != nil {
			*p = m.dimen.percent
		}
		return m
	}
	return nil
}

// Relative matches font- and viewport-relative dimensions and stores the
// factor in x, if x is not nil.
func (m *Matcher) Relative(x *float64) *Matcher {
	if m.dimen.IsRelative() && m.dimen.flags&relativeMask != dimenPercent {
		if x != nil {
			*x = m.dimen.rel
		}
		return m
	}
	return nil
}

// --- Expression matching ---------------------------------------------------

// DimenPatterns holds the results for the kinds of dimension a MatchExpr
// distinguishes.
type DimenPatterns[T any] struct {
	Auto    T
	Inherit T
	Initial T
	Just    T
	Default T
}

// DimenPattern starts a pattern match on d with results of type T.
func DimenPattern[T any](d DimenT) *MatchExpr[T] {
	return &MatchExpr[T]{dimen: d}
}

// MatchExpr is a pattern match on a dimension.
type MatchExpr[T any] struct {
	dimen DimenT
}

// OneOf selects the pattern result for the kind of the dimension.
func (m *MatchExpr[T]) OneOf(patterns DimenPatterns[T]) T {
	switch m.dimen.flags & kindMask {
	case dimenAuto:
		return patterns.Auto
	case dimenAbsolute:
		return patterns.Just
	case dimenInitial:
		return patterns.Initial
	case dimenInherit:
		return patterns.Inherit
	}
	return patterns.Default
}

// With stores the fixed value of the dimension in du.
func (m *MatchExpr[T]) With(du *dimen.DU) *MatchExpr[T] {
	*du = m.dimen.d
	return m
}

// Const returns x.
func (m *MatchExpr[T]) Const(x T) T {
	return x
}

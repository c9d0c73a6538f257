package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/csstree/syntax"
)

type term struct {
	syntax.Base
	syntax.Link[Term]
}

func newTerm(k syntax.Kind, line, col int) term {
	return term{Base: syntax.NewBase(k, line, col)}
}

// NumericalValue is a number with an optional unit, e.g. "15px", "50%" or "-1.5".
type NumericalValue struct {
	term
	Number float64
	Text   string // number as written, without sign and unit
	Sign   byte   // 0, '+' or '-'
	Unit   string // lower-cased unit, "%" for percentages
}

// NewNumericalValue creates a numerical value at a source position.
// text is the unsigned number as written.
func NewNumericalValue(text string, unit string, line, col int) (*NumericalValue, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, syntax.Errorf(line, col, "invalid number %q", text)
	}
	return &NumericalValue{
		term:   newTerm(KindNumerical, line, col),
		Number: f,
		Text:   text,
		Unit:   strings.ToLower(unit),
	}, nil
}

// Number creates a synthesized numerical value.
func Number(f float64, unit string) *NumericalValue {
	n := &NumericalValue{term: newTerm(KindNumerical, -1, -1), Unit: unit}
	n.SetValue(f)
	return n
}

// SetValue changes the number, keeping the unit.
func (n *NumericalValue) SetValue(f float64) {
	n.Sign = 0
	if f < 0 {
		n.Sign = '-'
		f = -f
	}
	n.Number = f
	n.Text = strconv.FormatFloat(f, 'f', -1, 64)
}

// Value returns the signed number.
func (n *NumericalValue) Value() float64 {
	if n.Sign == '-' {
		return -n.Number
	}
	return n.Number
}

// IsPercentage is true for values with unit "%".
func (n *NumericalValue) IsPercentage() bool {
	return n.Unit == "%"
}

func (n *NumericalValue) String() string {
	s := n.Text + n.Unit
	if n.Sign != 0 {
		s = string(n.Sign) + s
	}
	return s
}

// KeywordValue is an identifier, e.g. "bold".
type KeywordValue struct {
	term
	Keyword string
}

// NewKeywordValue creates a keyword at a source position.
func NewKeywordValue(kw string, line, col int) *KeywordValue {
	return &KeywordValue{term: newTerm(KindKeyword, line, col), Keyword: kw}
}

func (k *KeywordValue) String() string { return k.Keyword }

// HexColorValue is a color in hex notation, e.g. "#fff".
type HexColorValue struct {
	term
	Color string // lower-cased, without '#'
}

// NewHexColorValue creates a color value at a source position.
func NewHexColorValue(color string, line, col int) (*HexColorValue, error) {
	color = strings.TrimPrefix(color, "#")
	switch len(color) {
	case 3, 4, 6, 8:
	default:
		return nil, syntax.Errorf(line, col, "invalid hex color #%s", color)
	}
	for _, c := range color {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return nil, syntax.Errorf(line, col, "invalid hex color #%s", color)
		}
	}
	return &HexColorValue{term: newTerm(KindHexColor, line, col), Color: strings.ToLower(color)}, nil
}

func (h *HexColorValue) String() string { return "#" + h.Color }

// StringValue is a quoted string.
type StringValue struct {
	term
	Quote   byte   // '"' or '\''
	Content string // without quotes
}

// NewStringValue creates a string value at a source position from its quoted form.
func NewStringValue(quoted string, line, col int) *StringValue {
	s := &StringValue{term: newTerm(KindString, line, col), Quote: '"'}
	if len(quoted) >= 2 && (quoted[0] == '"' || quoted[0] == '\'') {
		s.Quote = quoted[0]
		s.Content = quoted[1 : len(quoted)-1]
	} else {
		s.Content = quoted
	}
	return s
}

func (s *StringValue) String() string {
	return string(s.Quote) + s.Content + string(s.Quote)
}

// Operator separates terms, e.g. "," or "/".
type Operator struct {
	term
	Op byte
}

// NewOperator creates an operator at a source position.
func NewOperator(op byte, line, col int) *Operator {
	return &Operator{term: newTerm(KindOperator, line, col), Op: op}
}

func (o *Operator) String() string { return string(o.Op) }

func isOperator(t Term) bool {
	_, ok := t.(*Operator)
	return ok
}

// GenericFunction is a function term whose arguments are kept as text,
// e.g. "rgba(0,0,0,.5)".
type GenericFunction struct {
	term
	Name string
	Args string
}

// NewGenericFunction creates a function term at a source position.
func NewGenericFunction(name, args string, line, col int) *GenericFunction {
	return &GenericFunction{term: newTerm(KindGenericFunction, line, col), Name: name, Args: args}
}

func (f *GenericFunction) String() string { return f.Name + "(" + f.Args + ")" }

// UrlFunction is "url(...)".
type UrlFunction struct {
	term
	URL string // unquoted
}

// NewUrlFunction creates a url term at a source position.
func NewUrlFunction(url string, line, col int) *UrlFunction {
	return &UrlFunction{term: newTerm(KindUrlFunction, line, col), URL: url}
}

func (u *UrlFunction) String() string { return "url(" + u.URL + ")" }

// RawFunction is a function term which has not been refined yet. Refining it
// replaces it by the terms produced by the refiner.
type RawFunction struct {
	term
	syntax.Lazy
	Name string
	Args string
}

// NewRawFunction creates a raw function at a source position.
// raw holds the arguments, without parens.
func NewRawFunction(name string, raw syntax.RawContent) *RawFunction {
	return &RawFunction{
		term: newTerm(KindRawFunction, raw.Line, raw.Column),
		Lazy: syntax.NewLazy(raw),
		Name: name,
		Args: strings.TrimSpace(raw.Content),
	}
}

// RefineKey is the lower-cased function name.
func (f *RawFunction) RefineKey() string {
	return strings.ToLower(f.Name)
}

func (f *RawFunction) Refine() error {
	return f.Lazy.Run(f)
}

// Absorb inserts the refined terms after the raw function, which is destroyed
// afterwards.
func (f *RawFunction) Absorb(units []syntax.Node, outcome syntax.Refinement) error {
	if len(units) == 0 {
		return nil
	}
	if _, ok := f.Group(); !ok {
		return fmt.Errorf("raw function %s: %w", f.Name, syntax.ErrUngrouped)
	}
	var anchor Term = f
	for _, u := range units {
		t, ok := u.(Term)
		if !ok {
			return fmt.Errorf("%w: %v in place of function %s", ErrUnexpectedUnit, u.Kind(), f.Name)
		}
		if err := anchor.GroupLink().Append(t); err != nil {
			return err
		}
		anchor = t
	}
	tracer().Debugf("raw function %s replaced by %d term(s)", f.Name, len(units))
	f.Destroy()
	return nil
}

func (f *RawFunction) String() string { return f.Name + "(" + f.Args + ")" }

var _ syntax.Refinable = &RawFunction{}

// CopyTerm returns an ungrouped copy of a term.
func CopyTerm(t Term) Term {
	switch x := t.(type) {
	case *NumericalValue:
		c := *x
		c.term = term{Base: x.Base.Fresh()}
		return &c
	case *KeywordValue:
		c := *x
		c.term = term{Base: x.Base.Fresh()}
		return &c
	case *HexColorValue:
		c := *x
		c.term = term{Base: x.Base.Fresh()}
		return &c
	case *StringValue:
		c := *x
		c.term = term{Base: x.Base.Fresh()}
		return &c
	case *Operator:
		c := *x
		c.term = term{Base: x.Base.Fresh()}
		return &c
	case *GenericFunction:
		c := *x
		c.term = term{Base: x.Base.Fresh()}
		return &c
	case *UrlFunction:
		c := *x
		c.term = term{Base: x.Base.Fresh()}
		return &c
	case *RawFunction:
		c := *x
		c.term = term{Base: x.Base.Fresh()}
		c.Lazy = x.Lazy.Copy()
		return &c
	}
	if c, ok := t.(interface{ CopyTerm() Term }); ok {
		return c.CopyTerm()
	}
	tracer().Errorf("cannot copy term of kind %v", t.Kind())
	return nil
}

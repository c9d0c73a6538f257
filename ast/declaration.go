package ast

import (
	"fmt"
	"strings"

	"github.com/npillmayer/csstree/syntax"
)

// Declaration is a property declaration, e.g. "margin-top: 15px". It is created
// with the property name parsed and the value raw. Refinement turns the raw value
// into a PropertyValue.
type Declaration struct {
	syntax.Base
	syntax.Link[*Declaration]
	syntax.Lazy
	property string
	value    *PropertyValue
}

// NewRawDeclaration creates a declaration with a raw property value.
// The position of the declaration is that of the property name.
func NewRawDeclaration(property string, line, col int, rawValue syntax.RawContent) *Declaration {
	return &Declaration{
		Base:     syntax.NewBase(KindDeclaration, line, col),
		Lazy:     syntax.NewLazy(rawValue),
		property: strings.TrimSpace(property),
	}
}

// NewDeclaration creates a refined declaration.
func NewDeclaration(property string, value *PropertyValue) *Declaration {
	d := &Declaration{
		Base:     syntax.Synthesized(KindDeclaration),
		Lazy:     syntax.Structured(),
		property: property,
	}
	d.setValue(value)
	return d
}

// Property returns the property name as written.
func (d *Declaration) Property() string {
	return d.property
}

// IsProperty checks the property name, case-insensitively.
func (d *Declaration) IsProperty(name string) bool {
	return strings.EqualFold(d.property, name)
}

// RefineKey is the lower-cased property name.
func (d *Declaration) RefineKey() string {
	return strings.ToLower(d.property)
}

func (d *Declaration) Refine() error {
	return d.Lazy.Run(d)
}

// Value returns the refined property value. It is nil for unrefined declarations.
func (d *Declaration) Value() *PropertyValue {
	return d.value
}

// SetValue replaces the property value. The new value is broadcast if the
// declaration has a broadcaster.
func (d *Declaration) SetValue(v *PropertyValue) error {
	d.setValue(v)
	if bc := d.Broadcaster(); bc != nil && v != nil && v.Status() == syntax.Unbroadcast {
		return syntax.Propagate(bc, v)
	}
	return nil
}

func (d *Declaration) setValue(v *PropertyValue) {
	if d.value != nil {
		d.value.decl = nil
	}
	d.value = v
	if v != nil {
		v.decl = d
	}
}

// Absorb takes over a refined property value. Bare terms are collected into a new
// property value.
func (d *Declaration) Absorb(units []syntax.Node, outcome syntax.Refinement) error {
	var value *PropertyValue
	var terms []Term
	for _, u := range units {
		switch x := u.(type) {
		case *PropertyValue:
			if value != nil {
				return fmt.Errorf("%w: second property value for %s", ErrUnexpectedUnit, d.property)
			}
			value = x
		case Term:
			terms = append(terms, x)
		default:
			return fmt.Errorf("%w: %v in declaration", ErrUnexpectedUnit, u.Kind())
		}
	}
	if value == nil {
		value = NewPropertyValue(d.Base.Pos())
	}
	if err := value.terms.AppendAll(terms); err != nil {
		return err
	}
	attachIfUnset(value.terms, d.Broadcaster())
	return d.SetValue(value)
}

// Copy returns a deep copy of d. The copy is not grouped.
func (d *Declaration) Copy() *Declaration {
	c := &Declaration{Base: d.Base.Fresh(), Lazy: d.Lazy.Copy(), property: d.property}
	if d.value != nil {
		c.setValue(d.value.Copy())
	}
	return c
}

func (d *Declaration) PropagateBroadcast(b syntax.Broadcaster) error {
	if d.value == nil {
		return nil
	}
	return syntax.Propagate(b, d.value)
}

func (d *Declaration) String() string {
	if d.value == nil {
		raw, _ := d.Raw()
		return d.property + ":" + strings.TrimSpace(raw.Content)
	}
	return d.property + ":" + d.value.String()
}

var _ syntax.Refinable = &Declaration{}

// --- Property value --------------------------------------------------------

// PropertyValue is the refined value of a declaration: a sequence of terms,
// optionally marked important.
type PropertyValue struct {
	syntax.Base
	terms     *syntax.Collection[*PropertyValue, Term]
	important bool
	decl      *Declaration
}

// NewPropertyValue creates an empty property value at a source position.
func NewPropertyValue(line, col int) *PropertyValue {
	v := &PropertyValue{Base: syntax.NewBase(KindPropertyValue, line, col)}
	v.terms = syntax.NewCollection[*PropertyValue, Term](v, nil)
	return v
}

// ValueOf creates a synthesized property value from terms.
func ValueOf(terms ...Term) *PropertyValue {
	v := NewPropertyValue(-1, -1)
	_ = v.terms.AppendAll(terms)
	return v
}

// Terms returns the terms of the value.
func (v *PropertyValue) Terms() *syntax.Collection[*PropertyValue, Term] {
	return v.terms
}

// IsImportant is true for values marked "!important".
func (v *PropertyValue) IsImportant() bool {
	return v.important
}

// SetImportant sets the "!important" flag.
func (v *PropertyValue) SetImportant(imp bool) {
	v.important = imp
}

// Declaration returns the declaration owning the value, if any.
func (v *PropertyValue) Declaration() (*Declaration, bool) {
	return v.decl, v.decl != nil
}

// AttachBroadcaster sets the broadcaster for terms inserted later on, unless it
// already is set.
func (v *PropertyValue) AttachBroadcaster(bc syntax.Broadcaster) {
	attachIfUnset(v.terms, bc)
}

// Copy returns a deep copy of v, not attached to any declaration.
func (v *PropertyValue) Copy() *PropertyValue {
	c := &PropertyValue{Base: v.Base.Fresh(), important: v.important}
	c.terms = syntax.NewCollection[*PropertyValue, Term](c, nil)
	for _, t := range v.terms.All() {
		_ = c.terms.Append(CopyTerm(t))
	}
	return c
}

func (v *PropertyValue) PropagateBroadcast(b syntax.Broadcaster) error {
	return propagateAll(v.terms, b)
}

func (v *PropertyValue) String() string {
	var b strings.Builder
	var prev Term
	for _, t := range v.terms.All() {
		if prev != nil && !isOperator(prev) && !isOperator(t) {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
		prev = t
	}
	if v.important {
		b.WriteString("!important")
	}
	return b.String()
}

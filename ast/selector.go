package ast

import (
	"fmt"
	"strings"

	"github.com/npillmayer/csstree/syntax"
)

// Selector is a complex selector, e.g. "ul > li.item". It is created raw and
// refined into selector parts.
type Selector struct {
	syntax.Base
	syntax.Link[*Selector]
	syntax.Lazy
	parts *syntax.Collection[*Selector, SelectorPart]
}

// NewRawSelector creates a selector holding raw content only.
func NewRawSelector(raw syntax.RawContent) *Selector {
	s := &Selector{
		Base: syntax.NewBase(KindSelector, raw.Line, raw.Column),
		Lazy: syntax.NewLazy(raw),
	}
	s.parts = syntax.NewCollection[*Selector, SelectorPart](s, nil)
	return s
}

// NewSelector creates a refined selector from parts.
func NewSelector(parts ...SelectorPart) *Selector {
	s := &Selector{
		Base: syntax.Synthesized(KindSelector),
		Lazy: syntax.Structured(),
	}
	s.parts = syntax.NewCollection[*Selector, SelectorPart](s, nil)
	_ = s.parts.AppendAll(parts)
	return s
}

// RefineKey is the same for all selectors.
func (s *Selector) RefineKey() string {
	return "selector"
}

func (s *Selector) Refine() error {
	return s.Lazy.Run(s)
}

// Parts returns the parts of a refined selector. For raw selectors the
// collection is empty.
func (s *Selector) Parts() *syntax.Collection[*Selector, SelectorPart] {
	return s.parts
}

// Absorb appends refined selector parts.
func (s *Selector) Absorb(units []syntax.Node, outcome syntax.Refinement) error {
	attachIfUnset(s.parts, s.Broadcaster())
	for _, u := range units {
		part, ok := u.(SelectorPart)
		if !ok {
			return fmt.Errorf("%w: %v in selector", ErrUnexpectedUnit, u.Kind())
		}
		if err := s.parts.Append(part); err != nil {
			return err
		}
	}
	return nil
}

// Copy returns a deep copy of s. The copy is not grouped.
func (s *Selector) Copy() *Selector {
	c := &Selector{Base: s.Base.Fresh(), Lazy: s.Lazy.Copy()}
	c.parts = syntax.NewCollection[*Selector, SelectorPart](c, nil)
	for _, p := range s.parts.All() {
		_ = c.parts.Append(CopyPart(p))
	}
	return c
}

func (s *Selector) PropagateBroadcast(b syntax.Broadcaster) error {
	return propagateAll(s.parts, b)
}

func (s *Selector) String() string {
	if s.parts.IsEmpty() {
		if raw, ok := s.Raw(); ok {
			return strings.TrimSpace(raw.Content)
		}
		return ""
	}
	var b strings.Builder
	for _, p := range s.parts.All() {
		b.WriteString(p.String())
	}
	return b.String()
}

var _ syntax.Refinable = &Selector{}

// --- Parts -----------------------------------------------------------------

// PartType is the type of a selector part.
type PartType uint8

// Selector part types.
const (
	TypePart PartType = iota
	UniversalPart
	IdPart
	ClassPart
	AttributePart
	PseudoClassPart
	PseudoElementPart
	DescendantCombinator
	ChildCombinator
	AdjacentSiblingCombinator
	GeneralSiblingCombinator
)

// IsCombinator is true for combinators, which separate compound selectors.
func (pt PartType) IsCombinator() bool {
	return pt >= DescendantCombinator
}

// IsSimple is true for all parts but combinators.
func (pt PartType) IsSimple() bool {
	return !pt.IsCombinator()
}

type part struct {
	syntax.Base
	syntax.Link[SelectorPart]
}

func newPart(k syntax.Kind, line, col int) part {
	return part{Base: syntax.NewBase(k, line, col)}
}

// TypeSelector selects elements by name, e.g. "div".
type TypeSelector struct {
	part
	Name string
}

// NewTypeSelector creates a type selector at a source position.
func NewTypeSelector(name string, line, col int) *TypeSelector {
	return &TypeSelector{part: newPart(KindTypeSelector, line, col), Name: name}
}

func (s *TypeSelector) PartType() PartType { return TypePart }
func (s *TypeSelector) String() string     { return s.Name }

// UniversalSelector is "*".
type UniversalSelector struct {
	part
}

// NewUniversalSelector creates a universal selector at a source position.
func NewUniversalSelector(line, col int) *UniversalSelector {
	return &UniversalSelector{part: newPart(KindUniversal, line, col)}
}

func (s *UniversalSelector) PartType() PartType { return UniversalPart }
func (s *UniversalSelector) String() string     { return "*" }

// IdSelector selects by id, e.g. "#main".
type IdSelector struct {
	part
	Name string // without '#'
}

// NewIdSelector creates an id selector at a source position.
func NewIdSelector(name string, line, col int) *IdSelector {
	return &IdSelector{part: newPart(KindIdSelector, line, col), Name: name}
}

func (s *IdSelector) PartType() PartType { return IdPart }
func (s *IdSelector) String() string     { return "#" + s.Name }

// ClassSelector selects by class, e.g. ".item".
type ClassSelector struct {
	part
	Name string // without '.'
}

// NewClassSelector creates a class selector at a source position.
func NewClassSelector(name string, line, col int) *ClassSelector {
	return &ClassSelector{part: newPart(KindClassSelector, line, col), Name: name}
}

func (s *ClassSelector) PartType() PartType { return ClassPart }
func (s *ClassSelector) String() string     { return "." + s.Name }

// AttributeSelector selects by attribute, e.g. "[type=text]".
type AttributeSelector struct {
	part
	Attribute string
	Match     string // "", "=", "~=", "|=", "^=", "$=", "*="
	Value     string // including quotes, if any
}

// NewAttributeSelector creates an attribute selector at a source position.
func NewAttributeSelector(attr, match, value string, line, col int) *AttributeSelector {
	return &AttributeSelector{
		part:      newPart(KindAttribute, line, col),
		Attribute: attr,
		Match:     match,
		Value:     value,
	}
}

func (s *AttributeSelector) PartType() PartType { return AttributePart }

func (s *AttributeSelector) String() string {
	return "[" + s.Attribute + s.Match + s.Value + "]"
}

// PseudoClassSelector is e.g. ":hover" or ":nth-child(2n+1)".
type PseudoClassSelector struct {
	part
	Name string
	Args string // arguments of functional pseudo classes, without parens
	Func bool   // functional notation?
}

// NewPseudoClassSelector creates a pseudo class selector at a source position.
func NewPseudoClassSelector(name string, line, col int) *PseudoClassSelector {
	return &PseudoClassSelector{part: newPart(KindPseudoClass, line, col), Name: name}
}

func (s *PseudoClassSelector) PartType() PartType { return PseudoClassPart }

func (s *PseudoClassSelector) String() string {
	if s.Func {
		return ":" + s.Name + "(" + s.Args + ")"
	}
	return ":" + s.Name
}

// PseudoElementSelector is e.g. "::before". Legacy single-colon pseudo elements
// are normalized by the parser.
type PseudoElementSelector struct {
	part
	Name string
}

// NewPseudoElementSelector creates a pseudo element selector at a source position.
func NewPseudoElementSelector(name string, line, col int) *PseudoElementSelector {
	return &PseudoElementSelector{part: newPart(KindPseudoElement, line, col), Name: name}
}

func (s *PseudoElementSelector) PartType() PartType { return PseudoElementPart }
func (s *PseudoElementSelector) String() string     { return "::" + s.Name }

// Combinator separates compound selectors.
type Combinator struct {
	part
	Type PartType
}

// NewCombinator creates a combinator at a source position. t has to be one of the
// combinator part types.
func NewCombinator(t PartType, line, col int) *Combinator {
	if !t.IsCombinator() {
		panic(fmt.Sprintf("part type %d is not a combinator", t))
	}
	return &Combinator{part: newPart(KindCombinator, line, col), Type: t}
}

func (c *Combinator) PartType() PartType { return c.Type }

func (c *Combinator) String() string {
	switch c.Type {
	case ChildCombinator:
		return ">"
	case AdjacentSiblingCombinator:
		return "+"
	case GeneralSiblingCombinator:
		return "~"
	}
	return " "
}

// CopyPart returns an ungrouped copy of a selector part.
func CopyPart(p SelectorPart) SelectorPart {
	switch x := p.(type) {
	case *TypeSelector:
		c := *x
		c.part = part{Base: x.Base.Fresh()}
		return &c
	case *UniversalSelector:
		c := *x
		c.part = part{Base: x.Base.Fresh()}
		return &c
	case *IdSelector:
		c := *x
		c.part = part{Base: x.Base.Fresh()}
		return &c
	case *ClassSelector:
		c := *x
		c.part = part{Base: x.Base.Fresh()}
		return &c
	case *AttributeSelector:
		c := *x
		c.part = part{Base: x.Base.Fresh()}
		return &c
	case *PseudoClassSelector:
		c := *x
		c.part = part{Base: x.Base.Fresh()}
		return &c
	case *PseudoElementSelector:
		c := *x
		c.part = part{Base: x.Base.Fresh()}
		return &c
	case *Combinator:
		c := *x
		c.part = part{Base: x.Base.Fresh()}
		return &c
	}
	tracer().Errorf("cannot copy selector part of kind %v", p.Kind())
	return nil
}

// Adjoining returns the run of parts around p up to, but not including, the nearest
// combinator in either direction, in source order. This is the compound selector
// p is a member of. A combinator yields a run containing only itself.
func Adjoining(p SelectorPart) []SelectorPart {
	if p.PartType().IsCombinator() {
		return []SelectorPart{p}
	}
	var before []SelectorPart
	for prev, ok := p.GroupLink().Previous(); ok; prev, ok = prev.GroupLink().Previous() {
		if prev.PartType().IsCombinator() {
			break
		}
		before = append(before, prev)
	}
	run := make([]SelectorPart, 0, len(before)+4)
	for i := len(before) - 1; i >= 0; i-- {
		run = append(run, before[i])
	}
	run = append(run, p)
	for next, ok := p.GroupLink().Next(); ok; next, ok = next.GroupLink().Next() {
		if next.PartType().IsCombinator() {
			break
		}
		run = append(run, next)
	}
	return run
}

var _ SelectorPart = &TypeSelector{}
var _ SelectorPart = &Combinator{}

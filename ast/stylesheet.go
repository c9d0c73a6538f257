package ast

import (
	"strings"

	"github.com/npillmayer/csstree/syntax"
)

// Stylesheet is the root of a syntax tree.
type Stylesheet struct {
	syntax.Base
	statements *syntax.Collection[*Stylesheet, Statement]
}

// NewStylesheet creates an empty stylesheet. Statements appended to it are
// broadcast through bc, which may be nil.
func NewStylesheet(bc syntax.Broadcaster) *Stylesheet {
	s := &Stylesheet{Base: syntax.NewBase(KindStylesheet, 1, 1)}
	s.statements = syntax.NewCollection[*Stylesheet, Statement](s, bc)
	return s
}

// Statements returns the top-level statements of the stylesheet.
func (s *Stylesheet) Statements() *syntax.Collection[*Stylesheet, Statement] {
	return s.statements
}

// Append appends a statement.
func (s *Stylesheet) Append(st Statement) error {
	return s.statements.Append(st)
}

// Rules returns the top-level rules, in order.
func (s *Stylesheet) Rules() []*Rule {
	var rules []*Rule
	for _, st := range s.statements.All() {
		if r, ok := st.(*Rule); ok {
			rules = append(rules, r)
		}
	}
	return rules
}

// AttachBroadcaster sets the broadcaster for statements appended later on, unless
// it already is set.
func (s *Stylesheet) AttachBroadcaster(bc syntax.Broadcaster) {
	attachIfUnset(s.statements, bc)
}

func (s *Stylesheet) PropagateBroadcast(b syntax.Broadcaster) error {
	return propagateAll(s.statements, b)
}

func (s *Stylesheet) String() string {
	var b strings.Builder
	_ = Write(&b, s)
	return b.String()
}

// --- Rule ------------------------------------------------------------------

// Rule is a qualified rule: a list of selectors and a block of declarations.
type Rule struct {
	syntax.Base
	syntax.Link[Statement]
	selectors    *syntax.Collection[*Rule, *Selector]
	declarations *syntax.Collection[*Rule, *Declaration]
}

// NewRule creates an empty rule at a source position. Selectors and declarations
// appended to it are broadcast through bc, which may be nil.
func NewRule(line, col int, bc syntax.Broadcaster) *Rule {
	r := &Rule{Base: syntax.NewBase(KindRule, line, col)}
	r.selectors = syntax.NewCollection[*Rule, *Selector](r, bc)
	r.declarations = syntax.NewCollection[*Rule, *Declaration](r, bc)
	return r
}

// Selectors returns the selectors of the rule.
func (r *Rule) Selectors() *syntax.Collection[*Rule, *Selector] {
	return r.selectors
}

// Declarations returns the declarations of the rule.
func (r *Rule) Declarations() *syntax.Collection[*Rule, *Declaration] {
	return r.declarations
}

// AttachBroadcaster sets the broadcaster for selectors and declarations inserted
// later on, unless it already is set. It is passed on to the current members.
func (r *Rule) AttachBroadcaster(bc syntax.Broadcaster) {
	attachIfUnset(r.selectors, bc)
	attachIfUnset(r.declarations, bc)
	for _, s := range r.selectors.All() {
		s.AttachBroadcaster(bc)
	}
	for _, d := range r.declarations.All() {
		d.AttachBroadcaster(bc)
	}
}

// Copy returns a deep copy of r. The copy is not grouped.
func (r *Rule) Copy() *Rule {
	c := &Rule{Base: r.Base.Fresh()}
	c.selectors = syntax.NewCollection[*Rule, *Selector](c, nil)
	c.declarations = syntax.NewCollection[*Rule, *Declaration](c, nil)
	for _, s := range r.selectors.All() {
		_ = c.selectors.Append(s.Copy())
	}
	for _, d := range r.declarations.All() {
		_ = c.declarations.Append(d.Copy())
	}
	return c
}

func (r *Rule) PropagateBroadcast(b syntax.Broadcaster) error {
	if err := propagateAll(r.selectors, b); err != nil {
		return err
	}
	return propagateAll(r.declarations, b)
}

func (r *Rule) String() string {
	var b strings.Builder
	writeRule(&b, r)
	return b.String()
}

// --- Orphaned comment ------------------------------------------------------

// OrphanedComment is a comment with no following unit to attach to, e.g. at the
// end of a stylesheet.
type OrphanedComment struct {
	syntax.Base
	syntax.Link[Statement]
	Content string
}

// NewOrphanedComment creates an orphaned comment at a source position.
func NewOrphanedComment(content string, line, col int) *OrphanedComment {
	return &OrphanedComment{Base: syntax.NewBase(KindOrphanedComment, line, col), Content: content}
}

func (c *OrphanedComment) String() string {
	return c.Content
}

var _ Statement = &Rule{}
var _ Statement = &OrphanedComment{}

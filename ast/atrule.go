package ast

import (
	"fmt"
	"strings"

	"github.com/npillmayer/csstree/syntax"
)

// AtRule is a rule starting with an at-keyword, e.g. "@media print { … }".
// It is created with a raw expression (the prelude) and an optional raw block.
// Refinement turns them into an AtRuleExpression and an AtRuleBlock.
type AtRule struct {
	syntax.Base
	syntax.Link[Statement]
	syntax.Lazy
	name       string
	rawExpr    *syntax.RawContent
	rawBlock   *syntax.RawContent
	expression AtRuleExpression
	block      AtRuleBlock
	silent     bool // do not write
}

// NewRawAtRule creates an at-rule from raw content. name is given without '@'.
// Both expression and block may be nil.
func NewRawAtRule(name string, line, col int, expr, block *syntax.RawContent) *AtRule {
	whole := syntax.RawContent{Line: line, Column: col}
	if expr != nil {
		whole.Content = expr.Content
	}
	if block != nil {
		whole.Content += "{" + block.Content + "}"
	}
	return &AtRule{
		Base:     syntax.NewBase(KindAtRule, line, col),
		Lazy:     syntax.NewLazy(whole),
		name:     strings.ToLower(name),
		rawExpr:  expr,
		rawBlock: block,
	}
}

// NewAtRule creates a refined at-rule. Either of expression and block may be nil.
func NewAtRule(name string, expression AtRuleExpression, block AtRuleBlock) *AtRule {
	return &AtRule{
		Base:       syntax.Synthesized(KindAtRule),
		Lazy:       syntax.Structured(),
		name:       strings.ToLower(name),
		expression: expression,
		block:      block,
	}
}

// Name returns the lower-cased name, without '@'.
func (r *AtRule) Name() string {
	return r.name
}

// RefineKey is the name of the at-rule.
func (r *AtRule) RefineKey() string {
	return r.name
}

func (r *AtRule) Refine() error {
	return r.Lazy.Run(r)
}

// RawExpression returns the raw prelude, if any.
func (r *AtRule) RawExpression() (syntax.RawContent, bool) {
	if r.rawExpr == nil {
		return syntax.RawContent{}, false
	}
	return *r.rawExpr, true
}

// RawBlock returns the raw block content without braces, if any.
func (r *AtRule) RawBlock() (syntax.RawContent, bool) {
	if r.rawBlock == nil {
		return syntax.RawContent{}, false
	}
	return *r.rawBlock, true
}

// Expression returns the refined expression, if any.
func (r *AtRule) Expression() (AtRuleExpression, bool) {
	return r.expression, r.expression != nil
}

// Block returns the refined block, if any.
func (r *AtRule) Block() (AtRuleBlock, bool) {
	return r.block, r.block != nil
}

// Silence marks the at-rule as not to be written. This is for at-rules which
// only carry information for plugins.
func (r *AtRule) Silence() {
	r.silent = true
}

// IsSilent is true for at-rules not to be written.
func (r *AtRule) IsSilent() bool {
	return r.silent
}

// Absorb takes over a refined expression and/or block.
func (r *AtRule) Absorb(units []syntax.Node, outcome syntax.Refinement) error {
	var fresh []syntax.Node
	for _, u := range units {
		switch x := u.(type) {
		case AtRuleExpression:
			if r.expression != nil {
				return fmt.Errorf("%w: second expression for @%s", ErrUnexpectedUnit, r.name)
			}
			r.expression = x
			fresh = append(fresh, x)
		case AtRuleBlock:
			if r.block != nil {
				return fmt.Errorf("%w: second block for @%s", ErrUnexpectedUnit, r.name)
			}
			r.block = x
			fresh = append(fresh, x)
		default:
			return fmt.Errorf("%w: %v in @%s", ErrUnexpectedUnit, u.Kind(), r.name)
		}
	}
	bc := r.Broadcaster()
	if bc == nil {
		return nil
	}
	for _, u := range fresh {
		if a, ok := u.(interface{ AttachBroadcaster(syntax.Broadcaster) }); ok {
			a.AttachBroadcaster(bc)
		}
		if err := syntax.Propagate(bc, u); err != nil {
			return err
		}
	}
	return nil
}

func (r *AtRule) PropagateBroadcast(b syntax.Broadcaster) error {
	if r.expression != nil {
		if err := syntax.Propagate(b, r.expression); err != nil {
			return err
		}
	}
	if r.block != nil {
		return syntax.Propagate(b, r.block)
	}
	return nil
}

func (r *AtRule) String() string {
	var b strings.Builder
	writeAtRule(&b, r)
	return b.String()
}

var _ syntax.Refinable = &AtRule{}
var _ Statement = &AtRule{}

// --- Expressions and blocks ------------------------------------------------

// MediaQueryList is the refined prelude of "@media".
type MediaQueryList struct {
	syntax.Base
	Queries []string // normalized, one per comma-separated query
}

// NewMediaQueryList creates a media query list at a source position.
func NewMediaQueryList(queries []string, line, col int) *MediaQueryList {
	return &MediaQueryList{Base: syntax.NewBase(KindMediaQueryList, line, col), Queries: queries}
}

func (m *MediaQueryList) IsAtRuleExpression() {}

func (m *MediaQueryList) String() string {
	return strings.Join(m.Queries, ",")
}

// ConditionalBlock is a block of statements, e.g. the body of "@media" or
// "@supports".
type ConditionalBlock struct {
	syntax.Base
	statements *syntax.Collection[*ConditionalBlock, Statement]
}

// NewConditionalBlock creates an empty block of statements at a source position.
func NewConditionalBlock(line, col int) *ConditionalBlock {
	c := &ConditionalBlock{Base: syntax.NewBase(KindConditional, line, col)}
	c.statements = syntax.NewCollection[*ConditionalBlock, Statement](c, nil)
	return c
}

// Statements returns the statements of the block.
func (c *ConditionalBlock) Statements() *syntax.Collection[*ConditionalBlock, Statement] {
	return c.statements
}

// AttachBroadcaster sets the broadcaster for statements inserted later on.
func (c *ConditionalBlock) AttachBroadcaster(bc syntax.Broadcaster) {
	attachIfUnset(c.statements, bc)
}

func (c *ConditionalBlock) IsAtRuleBlock() {}

func (c *ConditionalBlock) PropagateBroadcast(b syntax.Broadcaster) error {
	return propagateAll(c.statements, b)
}

func (c *ConditionalBlock) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for _, st := range c.statements.All() {
		writeStatement(&b, st)
	}
	b.WriteByte('}')
	return b.String()
}

// FontFaceBlock is the refined block of "@font-face". Font descriptors are
// represented as declarations.
type FontFaceBlock struct {
	syntax.Base
	descriptors *syntax.Collection[*FontFaceBlock, *Declaration]
}

// NewFontFaceBlock creates an empty font-face block at a source position.
func NewFontFaceBlock(line, col int) *FontFaceBlock {
	f := &FontFaceBlock{Base: syntax.NewBase(KindFontFace, line, col)}
	f.descriptors = syntax.NewCollection[*FontFaceBlock, *Declaration](f, nil)
	return f
}

// Descriptors returns the font descriptors of the block.
func (f *FontFaceBlock) Descriptors() *syntax.Collection[*FontFaceBlock, *Declaration] {
	return f.descriptors
}

// AttachBroadcaster sets the broadcaster for descriptors inserted later on.
func (f *FontFaceBlock) AttachBroadcaster(bc syntax.Broadcaster) {
	attachIfUnset(f.descriptors, bc)
}

func (f *FontFaceBlock) IsAtRuleBlock() {}

func (f *FontFaceBlock) PropagateBroadcast(b syntax.Broadcaster) error {
	return propagateAll(f.descriptors, b)
}

func (f *FontFaceBlock) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, d := range f.descriptors.All() {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(d.String())
	}
	b.WriteByte('}')
	return b.String()
}

package ast

import "github.com/npillmayer/csstree/syntax"

// Node kinds of this package.
var (
	KindStylesheet      = syntax.RegisterKind("stylesheet")
	KindRule            = syntax.RegisterKind("rule")
	KindAtRule          = syntax.RegisterKind("at-rule")
	KindOrphanedComment = syntax.RegisterKind("orphaned-comment")
	KindSelector        = syntax.RegisterKind("selector")
	KindTypeSelector    = syntax.RegisterKind("type-selector")
	KindUniversal       = syntax.RegisterKind("universal-selector")
	KindIdSelector      = syntax.RegisterKind("id-selector")
	KindClassSelector   = syntax.RegisterKind("class-selector")
	KindAttribute       = syntax.RegisterKind("attribute-selector")
	KindPseudoClass     = syntax.RegisterKind("pseudo-class-selector")
	KindPseudoElement   = syntax.RegisterKind("pseudo-element-selector")
	KindCombinator      = syntax.RegisterKind("combinator")
	KindDeclaration     = syntax.RegisterKind("declaration")
	KindPropertyValue   = syntax.RegisterKind("property-value")
	KindNumerical       = syntax.RegisterKind("numerical-value")
	KindKeyword         = syntax.RegisterKind("keyword-value")
	KindHexColor        = syntax.RegisterKind("hex-color-value")
	KindString          = syntax.RegisterKind("string-value")
	KindOperator        = syntax.RegisterKind("operator")
	KindGenericFunction = syntax.RegisterKind("generic-function")
	KindUrlFunction     = syntax.RegisterKind("url-function")
	KindRawFunction     = syntax.RegisterKind("raw-function")
	KindMediaQueryList  = syntax.RegisterKind("media-query-list")
	KindConditional     = syntax.RegisterKind("conditional-block")
	KindFontFace        = syntax.RegisterKind("font-face-block")
)

// Statement is a member of a stylesheet or of a block of statements.
type Statement interface {
	syntax.Node
	GroupLink() *syntax.Link[Statement]
	String() string
}

// SelectorPart is a member of a refined selector.
type SelectorPart interface {
	syntax.Node
	GroupLink() *syntax.Link[SelectorPart]
	PartType() PartType
	String() string
}

// Term is a member of a property value.
type Term interface {
	syntax.Node
	GroupLink() *syntax.Link[Term]
	String() string
}

// AtRuleExpression is the refined prelude of an at-rule.
type AtRuleExpression interface {
	syntax.Node
	IsAtRuleExpression()
	String() string
}

// AtRuleBlock is the refined block of an at-rule.
type AtRuleBlock interface {
	syntax.Node
	IsAtRuleBlock()
	String() string
}

// propagateAll broadcasts every member of a collection, with children.
func propagateAll[P syntax.Node, T syntax.Member[T]](c *syntax.Collection[P, T], b syntax.Broadcaster) error {
	return c.Each(func(m T) error {
		return syntax.Propagate(b, m)
	})
}

// attachIfUnset sets the broadcaster of a collection, unless it already has one.
func attachIfUnset[P syntax.Node, T syntax.Member[T]](c *syntax.Collection[P, T], b syntax.Broadcaster) {
	if c.Broadcaster() == nil && b != nil {
		c.SetBroadcaster(b)
	}
}

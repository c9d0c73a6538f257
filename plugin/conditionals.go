package plugin

import (
	"regexp"
	"sort"
	"strings"

	"github.com/npillmayer/csstree/ast"
	"github.com/npillmayer/csstree/emitter"
	"github.com/npillmayer/csstree/grammar"
	"github.com/npillmayer/csstree/report"
	"github.com/npillmayer/csstree/syntax"
)

// Conditionals handles conditional blocks
//
//     @if (print || draft) {
//         …
//     }
//
// The statements of a block are kept if at least one of its conditions is true,
// and dropped otherwise. The at-rule itself is removed. In passthrough mode
// conditional blocks are refined but left in place.
type Conditionals struct {
	conditions  map[string]bool
	passthrough bool
}

// NewConditionals creates a conditionals plugin with a set of true conditions.
func NewConditionals(trueConditions ...string) *Conditionals {
	c := &Conditionals{conditions: make(map[string]bool, len(trueConditions))}
	for _, cond := range trueConditions {
		c.conditions[strings.ToLower(cond)] = true
	}
	return c
}

// Passthrough switches passthrough mode on or off.
func (c *Conditionals) Passthrough(on bool) *Conditionals {
	c.passthrough = on
	return c
}

// IsPassthrough is true in passthrough mode.
func (c *Conditionals) IsPassthrough() bool {
	return c.passthrough
}

// HasCondition is true if cond is one of the true conditions.
func (c *Conditionals) HasCondition(cond string) bool {
	return c.conditions[strings.ToLower(cond)]
}

// TrueConditions returns the true conditions, sorted.
func (c *Conditionals) TrueConditions() []string {
	conds := make([]string, 0, len(c.conditions))
	for cond := range c.conditions {
		conds = append(conds, cond)
	}
	sort.Strings(conds)
	return conds
}

func (c *Conditionals) Subscriptions() []emitter.Subscription {
	return []emitter.Subscription{
		emitter.Refine("if", c.refine).Named("refine @if"),
		emitter.Rework(c.rework).Named("rework @if"),
	}
}

func (c *Conditionals) refine(r *ast.AtRule, g *grammar.Grammar, bc syntax.Broadcaster) (syntax.Refinement, error) {
	line, col := r.Pos()
	raw, ok := r.RawExpression()
	if !ok {
		return syntax.RefinedNone, syntax.Errorf(line, col, "@if without condition")
	}
	x, err := ParseIfExpression(raw)
	if err != nil {
		return syntax.RefinedNone, err
	}
	block, ok := r.RawBlock()
	if !ok {
		return syntax.RefinedNone, syntax.Errorf(line, col, "@if without block")
	}
	if err := bc.Broadcast(x); err != nil {
		return syntax.RefinedNone, err
	}
	if _, err := g.ParseBlock(block, bc); err != nil {
		return syntax.RefinedNone, err
	}
	return syntax.RefinedFull, nil
}

func (c *Conditionals) rework(r *ast.AtRule) error {
	if r.Name() != "if" || c.passthrough {
		return nil
	}
	expr, _ := r.Expression()
	x, ok := expr.(*IfExpression)
	if !ok {
		return nil
	}
	keep := false
	for _, cond := range x.Conditions {
		keep = keep || c.HasCondition(cond)
	}
	if block, ok := r.Block(); ok && keep {
		if cb, ok := block.(*ast.ConditionalBlock); ok {
			var anchor ast.Statement = r
			for _, st := range cb.Statements().All() {
				if err := anchor.GroupLink().Append(st); err != nil {
					return err
				}
				anchor = st
			}
		}
	}
	tracer().Debugf("@if %v: keep = %v", x, keep)
	r.Destroy()
	return nil
}

// --- @if expression --------------------------------------------------------

// KindIfExpression is the node kind of IfExpression.
var KindIfExpression = syntax.RegisterKind("if-expression")

// IfExpression is the expression of an @if at-rule: a disjunction of
// condition names.
type IfExpression struct {
	syntax.Base
	Conditions []string
}

var conditionName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// ParseIfExpression parses "(a || b || …)".
func ParseIfExpression(raw syntax.RawContent) (*IfExpression, error) {
	text := strings.TrimSpace(raw.Content)
	if !strings.HasPrefix(text, "(") || !strings.HasSuffix(text, ")") {
		return nil, syntax.Errorf(raw.Line, raw.Column, "expected '(' condition ')', have %q", text)
	}
	x := &IfExpression{Base: syntax.NewBase(KindIfExpression, raw.Line, raw.Column)}
	for _, cond := range strings.Split(text[1:len(text)-1], "||") {
		cond = strings.TrimSpace(cond)
		if !conditionName.MatchString(cond) {
			return nil, syntax.Errorf(raw.Line, raw.Column, "invalid condition %q", cond)
		}
		x.Conditions = append(x.Conditions, strings.ToLower(cond))
	}
	return x, nil
}

func (x *IfExpression) IsAtRuleExpression() {}

func (x *IfExpression) String() string {
	return "(" + strings.Join(x.Conditions, " || ") + ")"
}

var _ ast.AtRuleExpression = &IfExpression{}

// --- Validation ------------------------------------------------------------

// ConditionalsValidator reports conditions of @if blocks which are not in a set
// of valid conditions. It requires conditional blocks to stay in the tree and
// therefore depends on Conditionals, in passthrough mode by default.
type ConditionalsValidator struct {
	valid map[string]bool
}

// NewConditionalsValidator creates a validator for a set of valid conditions.
func NewConditionalsValidator(valid ...string) *ConditionalsValidator {
	v := &ConditionalsValidator{valid: make(map[string]bool, len(valid))}
	for _, cond := range valid {
		v.valid[strings.ToLower(cond)] = true
	}
	return v
}

// Dependencies implements emitter.Dependent.
func (v *ConditionalsValidator) Dependencies() []emitter.Plugin {
	return []emitter.Plugin{NewConditionals().Passthrough(true)}
}

func (v *ConditionalsValidator) Subscriptions() []emitter.Subscription {
	return []emitter.Subscription{
		emitter.Validate(v.validate).Named("validate @if"),
	}
}

func (v *ConditionalsValidator) validate(r *ast.AtRule, m *report.Manager) error {
	if r.Name() != "if" {
		return nil
	}
	expr, _ := r.Expression()
	x, ok := expr.(*IfExpression)
	if !ok {
		return nil
	}
	for _, cond := range x.Conditions {
		if !v.valid[cond] {
			m.Errorf(x, "Invalid condition %q", cond)
		}
	}
	return nil
}

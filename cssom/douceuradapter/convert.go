package douceuradapter

import (
	"regexp"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/csstree/ast"
)

// FromTree converts a syntax tree into a douceur stylesheet. Raw and refined
// units are both accepted. Comments and silenced at-rules are not converted.
func FromTree(sheet *ast.Stylesheet) *CSSStyles {
	c := css.NewStylesheet()
	if sheet != nil {
		c.Rules = statements(sheet.Statements().All(), 0)
	}
	return Wrap(c)
}

func statements(sts []ast.Statement, level int) []*css.Rule {
	var rules []*css.Rule
	for _, st := range sts {
		var r *css.Rule
		switch x := st.(type) {
		case *ast.Rule:
			r = qualifiedRule(x)
		case *ast.AtRule:
			r = atRule(x, level)
		}
		if r != nil {
			r.EmbedLevel = level
			rules = append(rules, r)
		}
	}
	return rules
}

func qualifiedRule(r *ast.Rule) *css.Rule {
	if r.Selectors().IsEmpty() {
		return nil
	}
	rule := css.NewRule(css.QualifiedRule)
	for _, s := range r.Selectors().All() {
		rule.Selectors = append(rule.Selectors, s.String())
	}
	rule.Prelude = strings.Join(rule.Selectors, ",")
	for _, d := range r.Declarations().All() {
		rule.Declarations = append(rule.Declarations, declaration(d))
	}
	return rule
}

func atRule(r *ast.AtRule, level int) *css.Rule {
	if r.IsSilent() {
		return nil
	}
	rule := css.NewRule(css.AtRule)
	rule.Name = "@" + r.Name()
	if expr, ok := r.Expression(); ok {
		rule.Prelude = expr.String()
	} else if raw, ok := r.RawExpression(); ok {
		rule.Prelude = strings.TrimSpace(raw.Content)
	}
	if block, ok := r.Block(); ok {
		switch b := block.(type) {
		case *ast.ConditionalBlock:
			rule.Rules = statements(b.Statements().All(), level+1)
		case *ast.FontFaceBlock:
			for _, d := range b.Descriptors().All() {
				rule.Declarations = append(rule.Declarations, declaration(d))
			}
		default:
			tracer().Debugf("@%s: cannot convert block of type %T", r.Name(), block)
		}
		return rule
	}
	if raw, ok := r.RawBlock(); ok {
		rawBlock(rule, raw.Content, level)
	}
	return rule
}

// rawBlock lets the douceur parser handle blocks which have not been refined.
func rawBlock(rule *css.Rule, content string, level int) {
	if rule.EmbedsRules() {
		sub, err := parser.Parse(content)
		if err != nil {
			tracer().Errorf("%s: cannot convert raw block: %v", rule.Name, err)
			return
		}
		for _, r := range sub.Rules {
			r.EmbedLevel = level + 1
		}
		rule.Rules = sub.Rules
		return
	}
	decls, err := parser.ParseDeclarations(content)
	if err != nil {
		tracer().Errorf("%s: cannot convert raw block: %v", rule.Name, err)
		return
	}
	rule.Declarations = decls
}

var important = regexp.MustCompile(`(?i)\s*!\s*important\s*$`)

func declaration(d *ast.Declaration) *css.Declaration {
	decl := css.NewDeclaration()
	decl.Property = d.Property()
	var value string
	if v := d.Value(); v != nil {
		decl.Important = v.IsImportant()
		value = strings.TrimSuffix(v.String(), "!important")
	} else if raw, ok := d.Raw(); ok {
		value = raw.Content
		if important.MatchString(value) {
			decl.Important = true
			value = important.ReplaceAllString(value, "")
		}
	}
	decl.Value = strings.TrimSpace(value)
	return decl
}

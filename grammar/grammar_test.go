package grammar_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/csstree/ast"
	"github.com/npillmayer/csstree/broadcast"
	"github.com/npillmayer/csstree/grammar"
	"github.com/npillmayer/csstree/syntax"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStylesheetRaw(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.grammar")
	defer teardown()
	//
	css := "/* head */\na, p > em { color: red; margin: 0 }\n@media print { .b { color: blue } }\n/* tail */"
	sheet, err := grammar.New(nil).Parse(css, nil)
	require.NoError(t, err)
	statements := sheet.Statements().All()
	require.Len(t, statements, 3)
	//
	rule, ok := statements[0].(*ast.Rule)
	require.True(t, ok, "expected first statement to be a rule")
	assert.Equal(t, []string{"/* head */"}, rule.Comments())
	line, col := rule.Pos()
	assert.Equal(t, [2]int{2, 1}, [2]int{line, col})
	sels := rule.Selectors().All()
	require.Len(t, sels, 2)
	assert.Equal(t, "a", sels[0].String())
	assert.Equal(t, "p > em", sels[1].String())
	assert.Equal(t, syntax.RefineRaw, sels[1].RefineState())
	decls := rule.Declarations().All()
	require.Len(t, decls, 2)
	line, col = decls[0].Pos()
	assert.Equal(t, [2]int{2, 13}, [2]int{line, col})
	line, col = decls[1].Pos()
	assert.Equal(t, [2]int{2, 25}, [2]int{line, col})
	assert.Equal(t, "margin:0", decls[1].String())
	//
	media, ok := statements[1].(*ast.AtRule)
	require.True(t, ok, "expected second statement to be an at-rule")
	assert.Equal(t, "media", media.Name())
	expr, ok := media.RawExpression()
	assert.True(t, ok)
	assert.Equal(t, "print", expr.Content)
	//
	orphan, ok := statements[2].(*ast.OrphanedComment)
	require.True(t, ok, "expected trailing comment to be orphaned")
	line, col = orphan.Pos()
	assert.Equal(t, [2]int{4, 1}, [2]int{line, col})
}

func TestParseBroadcastsParentsFirst(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.grammar")
	defer teardown()
	//
	q := broadcast.NewQueryable(nil)
	_, err := grammar.New(nil).Parse("a{x:y}", q)
	require.NoError(t, err)
	units := q.All()
	require.Len(t, units, 4)
	kinds := make([]syntax.Kind, len(units))
	for i, u := range units {
		kinds[i] = u.Kind()
	}
	assert.Equal(t, []syntax.Kind{ast.KindStylesheet, ast.KindRule, ast.KindSelector, ast.KindDeclaration}, kinds)
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.grammar")
	defer teardown()
	//
	g := grammar.New(nil)
	for _, c := range []struct{ css, msg string }{
		{"a { color: red", "unclosed block"},
		{"a, { x: y }", "empty selector"},
		{"a { : y }", "expected property name"},
		{"a { x y }", "expected ':'"},
		{"a { x: }", "missing value"},
		{"a { content: \"abc }", "unclosed quotation mark"},
		{"p", "expected '{'"},
	} {
		_, err := g.Parse(c.css, nil)
		var perr *syntax.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("%q: expected parse error, have %v", c.css, err)
			continue
		}
		if !strings.Contains(perr.Error(), c.msg) {
			t.Errorf("%q: expected error to contain %q, have %q", c.css, c.msg, perr.Error())
		}
	}
}

func firstRule(t *testing.T, g *grammar.Grammar, css string) *ast.Rule {
	sheet, err := g.Parse(css, nil)
	require.NoError(t, err)
	rules := sheet.Rules()
	require.NotEmpty(t, rules)
	return rules[0]
}

func TestRefineSelectors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.grammar")
	defer teardown()
	//
	rule := firstRule(t, grammar.New(nil), "ul > li.item:hover, a[href^='http']::before, p:after, div  p, :not(.x) {x:y}")
	var refined []string
	for _, s := range rule.Selectors().All() {
		require.NoError(t, s.Refine())
		assert.Equal(t, syntax.RefinedFull, s.Outcome())
		refined = append(refined, s.String())
	}
	assert.Equal(t, []string{"ul>li.item:hover", "a[href^='http']::before", "p::after", "div p", ":not(.x)"}, refined)
	//
	var types []ast.PartType
	for _, p := range rule.Selectors().All()[0].Parts().All() {
		types = append(types, p.PartType())
	}
	assert.Equal(t, []ast.PartType{ast.TypePart, ast.ChildCombinator, ast.TypePart, ast.ClassPart, ast.PseudoClassPart}, types)
}

func TestSelectorErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.grammar")
	defer teardown()
	//
	g := grammar.New(nil)
	for _, raw := range []string{"a >", "> a", "a > > b", ".", "a[x=]", "a:"} {
		s := ast.NewRawSelector(syntax.RawContent{Content: raw, Line: 1, Column: 1})
		s.AttachRefiner(g.Refiner())
		err := s.Refine()
		var perr *syntax.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("%q: expected parse error, have %v", raw, err)
		}
		if s.RefineState() != syntax.RefineRaw {
			t.Errorf("%q: expected failed selector to be raw again, is %v", raw, s.RefineState())
		}
	}
}

func TestRefineDeclarations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.grammar")
	defer teardown()
	//
	rule := firstRule(t, grammar.New(nil), "p { margin: -1px 2.5em 50% auto; font: 12px/1.5 'Helvetica', sans-serif !important }")
	decls := rule.Declarations().All()
	require.Len(t, decls, 2)
	for _, d := range decls {
		require.NoError(t, d.Refine())
	}
	margin := decls[0].Value()
	require.NotNil(t, margin)
	assert.Equal(t, "-1px 2.5em 50% auto", margin.String())
	terms := margin.Terms().All()
	require.Len(t, terms, 4)
	n, ok := terms[0].(*ast.NumericalValue)
	require.True(t, ok)
	assert.Equal(t, -1.0, n.Value())
	assert.Equal(t, "px", n.Unit)
	assert.True(t, terms[2].(*ast.NumericalValue).IsPercentage())
	//
	font := decls[1].Value()
	assert.True(t, font.IsImportant())
	assert.Equal(t, "12px/1.5 'Helvetica',sans-serif!important", font.String())
	d, ok := font.Declaration()
	assert.True(t, ok)
	assert.Same(t, decls[1], d)
}

func TestTrailingContentAfterImportant(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.grammar")
	defer teardown()
	//
	rule := firstRule(t, grammar.New(nil), "a { color: red !important 3px }")
	d := rule.Declarations().All()[0]
	err := d.Refine()
	var perr *syntax.ParseError
	require.True(t, errors.As(err, &perr), "expected parse error, have %v", err)
	assert.Equal(t, 1, perr.Line)
	assert.Equal(t, 5, perr.Column)
	assert.Equal(t, syntax.RefineRaw, d.RefineState())
	assert.Nil(t, d.Value())
}

func TestPositionsInMultilineValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.grammar")
	defer teardown()
	//
	rule := firstRule(t, grammar.New(nil), "a {\n  color:\n    red\n}")
	d := rule.Declarations().All()[0]
	line, col := d.Pos()
	assert.Equal(t, [2]int{2, 3}, [2]int{line, col})
	require.NoError(t, d.Refine())
	kw, ok := d.Value().Terms().First()
	require.True(t, ok)
	line, col = kw.Pos()
	assert.Equal(t, [2]int{3, 5}, [2]int{line, col})
}

func TestRawFunctionIsReplaced(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.grammar")
	defer teardown()
	//
	rule := firstRule(t, grammar.New(nil), "a { background: url( 'x.png' ) rgba(0,0,0,.5) }")
	d := rule.Declarations().All()[0]
	require.NoError(t, d.Refine())
	terms := d.Value().Terms().All()
	require.Len(t, terms, 2)
	u, ok := terms[0].(*ast.UrlFunction)
	require.True(t, ok)
	assert.Equal(t, "x.png", u.URL)
	raw, ok := terms[1].(*ast.RawFunction)
	require.True(t, ok)
	assert.Equal(t, "rgba", raw.RefineKey())
	require.NoError(t, raw.Refine())
	assert.True(t, raw.Destroyed())
	terms = d.Value().Terms().All()
	require.Len(t, terms, 2)
	f, ok := terms[1].(*ast.GenericFunction)
	require.True(t, ok)
	assert.Equal(t, "0,0,0,.5", f.Args)
}

func TestRefineAtRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.grammar")
	defer teardown()
	//
	css := "@media screen ,  print { a { b: c } } @font-face { font-family: x; src: url(a.woff) } @page :first { margin: 1in }"
	sheet, err := grammar.New(nil).Parse(css, nil)
	require.NoError(t, err)
	var atRules []*ast.AtRule
	for _, st := range sheet.Statements().All() {
		r, ok := st.(*ast.AtRule)
		require.True(t, ok)
		require.NoError(t, r.Refine())
		atRules = append(atRules, r)
	}
	require.Len(t, atRules, 3)
	//
	expr, ok := atRules[0].Expression()
	require.True(t, ok)
	assert.Equal(t, []string{"screen", "print"}, expr.(*ast.MediaQueryList).Queries)
	block, ok := atRules[0].Block()
	require.True(t, ok)
	assert.Equal(t, 1, block.(*ast.ConditionalBlock).Statements().Len())
	//
	ff, ok := atRules[1].Block()
	require.True(t, ok)
	assert.Equal(t, 2, ff.(*ast.FontFaceBlock).Descriptors().Len())
	//
	assert.Equal(t, syntax.RefinedNone, atRules[2].Outcome())
	assert.True(t, atRules[2].IsRefined())
	_, ok = atRules[2].Expression()
	assert.False(t, ok)
	//
	assert.Equal(t, "@media screen,print{a{b:c}}@font-face{font-family:x;src:url(a.woff)}@page :first{margin: 1in}",
		sheet.String())
}

type customs map[string]grammar.CustomRefineFunc

func (c customs) CustomRefiner(unit syntax.Refinable) (grammar.CustomRefineFunc, bool) {
	f, ok := c[unit.RefineKey()]
	return f, ok
}

func TestCustomRefinerComesFirst(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.grammar")
	defer teardown()
	//
	declined := 0
	g := grammar.New(customs{
		"color": func(unit syntax.Refinable, g *grammar.Grammar, bc syntax.Broadcaster) (syntax.Refinement, error) {
			line, col := unit.Pos()
			return syntax.RefinedFull, bc.Broadcast(ast.NewKeywordValue("custom", line, col))
		},
		"margin": func(unit syntax.Refinable, g *grammar.Grammar, bc syntax.Broadcaster) (syntax.Refinement, error) {
			declined++
			return syntax.RefinedNone, nil
		},
	})
	rule := firstRule(t, g, "a { color: red; margin: 1px }")
	decls := rule.Declarations().All()
	for _, d := range decls {
		require.NoError(t, d.Refine())
	}
	assert.Equal(t, "custom", decls[0].Value().String())
	assert.Equal(t, "1px", decls[1].Value().String())
	assert.Equal(t, 1, declined)
}

func TestParseNumerical(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.grammar")
	defer teardown()
	//
	g := grammar.New(nil)
	n, err := g.ParseNumerical("-1.5em")
	require.NoError(t, err)
	assert.Equal(t, -1.5, n.Value())
	assert.Equal(t, "em", n.Unit)
	n, err = g.ParseNumerical("bold 10px 20px")
	require.NoError(t, err)
	assert.Equal(t, "10px", n.String())
	_, err = g.ParseNumerical("bold")
	assert.Error(t, err)
}

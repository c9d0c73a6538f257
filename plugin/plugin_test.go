package plugin_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/csstree/ast"
	"github.com/npillmayer/csstree/emitter"
	"github.com/npillmayer/csstree/plugin"
	"github.com/npillmayer/csstree/report"
	"github.com/npillmayer/csstree/syntax"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, css string, plugins ...emitter.Plugin) (*ast.Stylesheet, *emitter.Emitter) {
	e, err := emitter.New(plugins...)
	require.NoError(t, err)
	sheet, err := e.Grammar().Parse(css, e)
	require.NoError(t, err)
	require.NoError(t, e.Validate(sheet))
	return sheet, e
}

func severities(problems []report.Problem) []report.Severity {
	sevs := make([]report.Severity, len(problems))
	for i, p := range problems {
		sevs[i] = p.Severity
	}
	return sevs
}

func TestAutoRefiner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.plugin")
	defer teardown()
	//
	_, err := plugin.NewAutoRefiner("selector", "bogus")
	assert.Error(t, err)
	none, err := plugin.NewAutoRefiner("none")
	require.NoError(t, err)
	assert.True(t, none.IsEmpty())
	//
	ar, err := plugin.NewAutoRefiner("selectors")
	require.NoError(t, err)
	sheet, _ := run(t, "a.x { color: red }", ar)
	r := sheet.Rules()[0]
	assert.True(t, r.Selectors().All()[0].IsRefined())
	assert.False(t, r.Declarations().All()[0].IsRefined())
	//
	sheet, _ = run(t, "a.x { color: rgba(0,0,0,.5) }", plugin.AutoRefineAll())
	d := sheet.Rules()[0].Declarations().All()[0]
	require.NotNil(t, d.Value())
	terms := d.Value().Terms().All()
	require.Len(t, terms, 1)
	assert.IsType(t, &ast.GenericFunction{}, terms[0])
}

func TestEchoLogger(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.plugin")
	defer teardown()
	//
	var buf bytes.Buffer
	echo := plugin.NewEchoLogger().EchoTo(&buf)
	run(t, "a.x { color: red } /* tail */", echo, plugin.AutoRefineAll())
	out := buf.String()
	t.Logf("echo:\n%s", out)
	assert.Contains(t, out, "selector a.x")
	assert.Contains(t, out, "declaration color: red")
	assert.Contains(t, out, "tail")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestCustomVarsResolve(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.plugin")
	defer teardown()
	//
	vars := plugin.NewCustomVars(plugin.Resolve, map[string]string{"main-color": "#FF0000"})
	vars.Set("gap", "1px 2px")
	sheet, _ := run(t, "a { color: custom-var(main-color); margin: custom-var(gap) }", vars)
	assert.Equal(t, "a{color:#ff0000;margin:1px 2px}", sheet.String())
	margin := sheet.Rules()[0].Declarations().All()[1]
	assert.Equal(t, 2, margin.Value().Terms().Len())
}

func TestCustomVarsPassthrough(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.plugin")
	defer teardown()
	//
	vars := plugin.NewCustomVars(plugin.Passthrough, nil)
	sheet, _ := run(t, "a { color: custom-var(main-color) }", vars)
	assert.Equal(t, "a{color:custom-var(main-color)}", sheet.String())
	terms := sheet.Rules()[0].Declarations().All()[0].Value().Terms().All()
	require.Len(t, terms, 1)
	cv, ok := terms[0].(*plugin.CustomVarFunction)
	require.True(t, ok, "expected a custom-var term, have %T", terms[0])
	assert.Equal(t, "main-color", cv.Name)
}

func TestCustomVarsErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.plugin")
	defer teardown()
	//
	e, err := emitter.New(plugin.NewCustomVars(plugin.Resolve, nil))
	require.NoError(t, err)
	_, err = e.Grammar().Parse("a { color: custom-var(nope) }", e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown custom-var arg "nope"`)
	//
	e, err = emitter.New(plugin.NewCustomVars(plugin.Passthrough, nil))
	require.NoError(t, err)
	_, err = e.Grammar().Parse("a { color: custom-var(1x) }", e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid custom-var arg "1x"`)
}

func TestConditionals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.plugin")
	defer teardown()
	//
	css := "@if (print || draft) { a { b: c } } @if (screen) { d { e: f } } g { h: i }"
	sheet, _ := run(t, css, plugin.NewConditionals("Print"))
	assert.Equal(t, "a{b:c}g{h:i}", sheet.String())
	assert.Len(t, ast.FindAll[*ast.AtRule](sheet), 0)
	//
	sheet, _ = run(t, css, plugin.NewConditionals())
	assert.Equal(t, "g{h:i}", sheet.String())
	//
	sheet, _ = run(t, css, plugin.NewConditionals("print").Passthrough(true))
	assert.Equal(t, "@if (print || draft){a{b:c}}@if (screen){d{e:f}}g{h:i}", sheet.String())
}

func TestIfExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.plugin")
	defer teardown()
	//
	x, err := plugin.ParseIfExpression(syntax.RawContent{Content: "( A ||b-2 )", Line: 1, Column: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b-2"}, x.Conditions)
	assert.Equal(t, "(a || b-2)", x.String())
	_, err = plugin.ParseIfExpression(syntax.RawContent{Content: "print"})
	assert.Error(t, err)
	_, err = plugin.ParseIfExpression(syntax.RawContent{Content: "(a || 2b)"})
	assert.Error(t, err)
}

func TestConditionalsValidator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.plugin")
	defer teardown()
	//
	css := "@if (print || web) { a { b: c } }"
	sheet, e := run(t, css, plugin.NewConditionalsValidator("print", "draft"))
	problems := e.Reports().Problems()
	require.Len(t, problems, 1)
	assert.Equal(t, report.Error, problems[0].Severity)
	assert.Equal(t, `Invalid condition "web"`, problems[0].Message)
	c, ok := emitter.Retrieve[*plugin.Conditionals](e.Registry())
	require.True(t, ok)
	assert.True(t, c.IsPassthrough())
	assert.Len(t, ast.FindAll[*ast.AtRule](sheet), 1)
	//
	_, e = run(t, css, plugin.NewConditionalsValidator("print"), plugin.NewConditionals("print"))
	c, ok = emitter.Retrieve[*plugin.Conditionals](e.Registry())
	require.True(t, ok)
	assert.False(t, c.IsPassthrough())
	assert.Equal(t, []string{"print"}, c.TrueConditions())
	assert.Empty(t, e.Reports().Problems())
}

func TestSelectorValidator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.plugin")
	defer teardown()
	//
	v := plugin.NewSelectorValidator(report.Warning)
	sheet, e := run(t, "a:hover, p::before, div > .x, li:frobnicate { b: c }", v)
	problems := e.Reports().Problems()
	require.Len(t, problems, 1)
	assert.Equal(t, report.Warning, problems[0].Severity)
	assert.Contains(t, problems[0].Message, "li:frobnicate")
	sels := sheet.Rules()[0].Selectors().All()
	require.Len(t, sels, 4)
	sp, ok := v.Specificity(sels[2])
	require.True(t, ok)
	assert.Equal(t, [3]int{0, 1, 1}, [3]int(sp))
	_, ok = v.Specificity(sels[3])
	assert.False(t, ok)
}

func TestUnusedSelectors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.plugin")
	defer teardown()
	//
	doc := `<html><body><div class="x"><p>text</p></div></body></html>`
	u, err := plugin.UnusedSelectorsIn(strings.NewReader(doc))
	require.NoError(t, err)
	_, e := run(t, "div p, .x, span, a:hover, ul li { b: c }", u)
	problems := e.Reports().Problems()
	require.Len(t, problems, 2)
	assert.Equal(t, "selector span matches no element", problems[0].Message)
	assert.Equal(t, "selector ul li matches no element", problems[1].Message)
	assert.Equal(t, []report.Severity{report.Warning, report.Warning}, severities(problems))
}

func TestUnitConverter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.plugin")
	defer teardown()
	//
	_, err := plugin.NewUnitConverter("em")
	assert.Error(t, err)
	conv, err := plugin.NewUnitConverter("px")
	require.NoError(t, err)
	sheet, _ := run(t, "a { margin: 1in 12pt 2em 0; width: 10px }", conv)
	assert.Equal(t, "a{margin:96px 16px 2em 0;width:10px}", sheet.String())
}

func TestShorthands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.plugin")
	defer teardown()
	//
	css := "a { margin: 1px 2px !important; padding: 0; border-radius: 1px / 2px }"
	sheet, _ := run(t, css, plugin.NewShorthands())
	assert.Equal(t, "a{"+
		"margin-top:1px!important;margin-right:2px!important;"+
		"margin-bottom:1px!important;margin-left:2px!important;"+
		"padding-top:0;padding-right:0;padding-bottom:0;padding-left:0;"+
		"border-radius:1px/2px}", sheet.String())
}

func TestPropertyValidator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.plugin")
	defer teardown()
	//
	css := `a {
		display: inline flex;
		color: reddish;
		width: auto;
		height: 3;
		margin: 0 auto;
		display: blocky;
		color: inherit;
	}`
	_, e := run(t, css, plugin.NewPropertyValidator())
	problems := e.Reports().Problems()
	for _, p := range problems {
		t.Logf("problem: %v", p)
	}
	assert.Equal(t, []report.Severity{report.Warning, report.Warning, report.Error}, severities(problems))
	assert.True(t, e.Reports().HasErrors())
}

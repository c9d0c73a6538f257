package ast_test

import (
	"errors"
	"testing"

	"github.com/npillmayer/csstree/ast"
	"github.com/npillmayer/csstree/broadcast"
	"github.com/npillmayer/csstree/syntax"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryableSelectorScenario(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.ast")
	defer teardown()
	//
	q := broadcast.NewQueryable(nil)
	c1 := ast.NewClassSelector("a", 1, 1)
	id := ast.NewIdSelector("main", 1, 3)
	c2 := ast.NewClassSelector("b", 1, 8)
	c3 := ast.NewClassSelector("c", 1, 10)
	for _, u := range []syntax.Node{c1, id, c2, c3} {
		require.NoError(t, q.Broadcast(u))
	}
	classes := broadcast.Filter[*ast.ClassSelector](q)
	assert.Equal(t, []*ast.ClassSelector{c1, c2, c3}, classes)
	assert.Equal(t, 4, q.Count())
	found, ok := broadcast.Find[*ast.IdSelector](q)
	assert.True(t, ok)
	assert.Same(t, id, found)
}

func TestAdjoining(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.ast")
	defer teardown()
	//
	// div > a.x.y:hover p
	div := ast.NewTypeSelector("div", 1, 1)
	child := ast.NewCombinator(ast.ChildCombinator, 1, 5)
	a := ast.NewTypeSelector("a", 1, 7)
	x := ast.NewClassSelector("x", 1, 8)
	y := ast.NewClassSelector("y", 1, 10)
	hover := ast.NewPseudoClassSelector("hover", 1, 12)
	desc := ast.NewCombinator(ast.DescendantCombinator, 1, 18)
	p := ast.NewTypeSelector("p", 1, 19)
	sel := ast.NewSelector(div, child, a, x, y, hover, desc, p)
	assert.Equal(t, "div>a.x.y:hover p", sel.String())

	run := ast.Adjoining(x)
	assert.Equal(t, []ast.SelectorPart{a, x, y, hover}, run)
	run = ast.Adjoining(a)
	assert.Equal(t, []ast.SelectorPart{a, x, y, hover}, run)
	run = ast.Adjoining(child)
	assert.Equal(t, []ast.SelectorPart{child}, run)
	run = ast.Adjoining(div)
	assert.Equal(t, []ast.SelectorPart{div}, run)
	run = ast.Adjoining(p)
	assert.Equal(t, []ast.SelectorPart{p}, run)
}

func TestAdjoiningThreeBeforeCombinator(t *testing.T) {
	// .a.b.c > .d
	a, b, c := ast.NewClassSelector("a", 1, 1), ast.NewClassSelector("b", 1, 3), ast.NewClassSelector("c", 1, 5)
	comb := ast.NewCombinator(ast.ChildCombinator, 1, 8)
	d := ast.NewClassSelector("d", 1, 10)
	ast.NewSelector(a, b, c, comb, d)
	run := ast.Adjoining(c)
	if len(run) != 3 || run[0] != a || run[1] != b || run[2] != c {
		t.Errorf("expected [.a .b .c], have %v", run)
	}
}

func TestRawFunctionReplacedByTerms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.ast")
	defer teardown()
	//
	rec := broadcast.NewQueryable(nil)
	decl := ast.NewRawDeclaration("margin", 1, 1, syntax.RawContent{Content: "1px custom(x) 2px", Line: 1, Column: 9})
	decl.AttachBroadcaster(rec)
	raw := ast.NewRawFunction("custom", syntax.RawContent{Content: "x", Line: 1, Column: 13})
	one, _ := ast.NewNumericalValue("1", "px", 1, 9)
	two, _ := ast.NewNumericalValue("2", "px", 1, 23)
	value := ast.NewPropertyValue(1, 9)
	require.NoError(t, value.Terms().AppendAll([]ast.Term{one, raw, two}))
	require.NoError(t, decl.Absorb([]syntax.Node{value}, syntax.RefinedFull))
	assert.Equal(t, 4, rec.Count(), "value and three terms are broadcast")

	k1 := ast.NewKeywordValue("left", -1, -1)
	k2 := ast.NewKeywordValue("right", -1, -1)
	require.NoError(t, raw.Absorb([]syntax.Node{k1, k2}, syntax.RefinedFull))
	assert.True(t, raw.Destroyed())
	assert.Equal(t, "margin:1px left right 2px", decl.String())
	assert.Equal(t, 6, rec.Count(), "new terms are broadcast")

	lone := ast.NewRawFunction("custom", syntax.RawContent{Content: "y"})
	err := lone.Absorb([]syntax.Node{ast.NewKeywordValue("z", -1, -1)}, syntax.RefinedFull)
	assert.True(t, errors.Is(err, syntax.ErrUngrouped))
}

func TestSelectorAbsorbRejectsForeignUnits(t *testing.T) {
	sel := ast.NewRawSelector(syntax.RawContent{Content: ".a", Line: 2, Column: 1})
	err := sel.Absorb([]syntax.Node{ast.NewKeywordValue("bold", 2, 1)}, syntax.RefinedFull)
	if !errors.Is(err, ast.ErrUnexpectedUnit) {
		t.Errorf("expected ErrUnexpectedUnit, have %v", err)
	}
}

func TestWriteStylesheet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.ast")
	defer teardown()
	//
	sheet := ast.NewStylesheet(nil)
	r := ast.NewRule(1, 1, nil)
	require.NoError(t, r.Selectors().Append(ast.NewSelector(ast.NewClassSelector("a", -1, -1))))
	require.NoError(t, r.Selectors().Append(ast.NewRawSelector(syntax.RawContent{Content: " p > em "})))
	red := ast.NewKeywordValue("red", -1, -1)
	require.NoError(t, r.Declarations().Append(ast.NewDeclaration("color", ast.ValueOf(red))))
	v := ast.ValueOf(ast.Number(1, "px"), ast.NewOperator('/', -1, -1), ast.Number(2, "px"))
	v.SetImportant(true)
	require.NoError(t, r.Declarations().Append(ast.NewDeclaration("border-radius", v)))
	require.NoError(t, sheet.Append(r))
	media := ast.NewRawAtRule("media", 2, 1,
		&syntax.RawContent{Content: "print "},
		&syntax.RawContent{Content: ".b{color:blue}"})
	require.NoError(t, sheet.Append(media))
	require.NoError(t, sheet.Append(ast.NewOrphanedComment("/* end */", 3, 1)))
	assert.Equal(t, ".a,p > em{color:red;border-radius:1px/2px!important}@media print{.b{color:blue}}",
		sheet.String())

	cp := r.Copy()
	assert.NotEqual(t, r.ID(), cp.ID())
	assert.Equal(t, r.String(), cp.String())
	assert.True(t, cp.IsFirst() && cp.IsLast(), "copy is not grouped")
}

func TestFindAll(t *testing.T) {
	sheet := ast.NewStylesheet(nil)
	r := ast.NewRule(1, 1, nil)
	require.NoError(t, r.Selectors().Append(ast.NewSelector(
		ast.NewClassSelector("a", -1, -1), ast.NewClassSelector("b", -1, -1))))
	gone := ast.NewClassSelector("c", -1, -1)
	require.NoError(t, r.Selectors().Append(ast.NewSelector(gone)))
	require.NoError(t, sheet.Append(r))
	gone.Destroy()
	classes := ast.FindAll[*ast.ClassSelector](sheet)
	assert.Len(t, classes, 2)
	_, ok := ast.Find[*ast.IdSelector](sheet)
	assert.False(t, ok)
}

package css_test

import (
	"testing"

	"github.com/npillmayer/csstree/ast"
	"github.com/npillmayer/csstree/css"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyse/core/dimen"
	"github.com/npillmayer/tyse/core/percent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimenBasic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.css")
	defer teardown()
	//
	ten := css.JustDimen(dimen.PT * 10)
	var du dimen.DU
	switch m := ten.Match(); m {
	case m.Just(&du):
		t.Logf("du = %s", du)
	default:
		t.Errorf("expected Just(10pt) to be a fixed value, isn't: %#v", ten)
	}

	auto := css.Auto()
	switch m := auto.Match(); m {
	case m.IsKind(css.Auto()):
		t.Logf("dimen is auto")
	default:
		t.Errorf("expected dimen auto to match auto, isn't: %#v", auto)
	}

	pcnt := css.Percentage(percent.FromInt(80))
	var p percent.Percent
	switch m := pcnt.Match(); m {
	case m.Percentage(&p):
		t.Logf("percent = %s", p)
	default:
		t.Errorf("expected Percentage(80) to be a percentage value, isn't: %#v", pcnt)
	}
}

func TestDimenPattern(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.css")
	defer teardown()
	//
	ten := css.JustDimen(dimen.PT * 10)
	var du dimen.DU
	m := css.DimenPattern[int](ten)
	zehn := m.OneOf(css.DimenPatterns[int]{
		Just:    m.With(&du).Const(10),
		Auto:    0,
		Default: -1,
	})
	if zehn != 10 {
		t.Errorf("expected zehn == 10, isn't: %#v", zehn)
	}
	if du != 10*dimen.PT {
		t.Errorf("expected With to capture 10pt, have %v", du)
	}
	e := css.DimenPattern[dimen.DU](css.Auto())
	distance := e.OneOf(css.DimenPatterns[dimen.DU]{
		Just:    2 * du,
		Auto:    0,
		Default: -1,
	})
	if distance != 0 {
		t.Errorf("expected auto distance to be 0, isn't: %v", distance)
	}
}

func TestFromNumerical(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.css")
	defer teardown()
	//
	var du dimen.DU
	d, err := css.FromNumerical(ast.Number(2, "pt"))
	require.NoError(t, err)
	require.NotNil(t, d.Match().Just(&du))
	assert.Equal(t, 2*dimen.PT, du)
	//
	d, err = css.FromNumerical(ast.Number(1, "in"))
	require.NoError(t, err)
	require.NotNil(t, d.Match().Just(&du))
	assert.Equal(t, 72*dimen.PT, du)
	px, err := css.FromDU(du, "px")
	require.NoError(t, err)
	assert.Equal(t, 96.0, px)
	//
	d, err = css.FromNumerical(ast.Number(50, "%"))
	require.NoError(t, err)
	assert.NotNil(t, d.Match().Percentage(nil))
	//
	var x float64
	d, err = css.FromNumerical(ast.Number(1.5, "em"))
	require.NoError(t, err)
	require.NotNil(t, d.Match().Relative(&x))
	assert.Equal(t, 1.5, x)
	assert.Equal(t, "em", d.Unit())
	assert.Nil(t, d.Match().IsKind(css.Percentage(percent.FromInt(0))))
	//
	d, err = css.FromNumerical(ast.Number(0, ""))
	require.NoError(t, err)
	assert.True(t, d.IsAbsolute())
	//
	_, err = css.FromNumerical(ast.Number(3, ""))
	assert.ErrorIs(t, err, css.ErrNotADimension)
	_, err = css.FromNumerical(ast.Number(3, "deg"))
	assert.ErrorIs(t, err, css.ErrNotADimension)
}

func TestFromTerm(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.css")
	defer teardown()
	//
	d, err := css.FromTerm(ast.NewKeywordValue("auto", 1, 1))
	require.NoError(t, err)
	assert.NotNil(t, d.Match().IsKind(css.Auto()))
	assert.Equal(t, "auto", d.String())
	_, err = css.FromTerm(ast.NewKeywordValue("bold", 1, 1))
	assert.ErrorIs(t, err, css.ErrNotADimension)
}

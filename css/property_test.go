package css_test

import (
	"image/color"
	"testing"

	"github.com/npillmayer/csstree/css"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitShorthand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.css")
	defer teardown()
	//
	kv, err := css.SplitShorthand("padding", "3px")
	require.NoError(t, err)
	require.Len(t, kv, 4)
	for _, x := range kv {
		assert.Equal(t, css.Property("3px"), x.Value)
	}
	assert.Equal(t, "padding-left", kv[3].Key)
	//
	kv, err = css.SplitShorthand("margin", "1px 2px 3px")
	require.NoError(t, err)
	assert.Equal(t, []css.KeyValue{
		{Key: "margin-top", Value: "1px"},
		{Key: "margin-right", Value: "2px"},
		{Key: "margin-bottom", Value: "3px"},
		{Key: "margin-left", Value: "2px"},
	}, kv)
	//
	kv, err = css.SplitShorthand("border-radius", "4px 0")
	require.NoError(t, err)
	assert.Equal(t, "border-top-left-radius", kv[0].Key)
	assert.Equal(t, css.Property("0"), kv[1].Value)
	assert.Equal(t, "border-bottom-left-radius", kv[3].Key)
	//
	kv, err = css.SplitShorthand("border-width", "thin medium")
	require.NoError(t, err)
	assert.Equal(t, "border-right-width", kv[1].Key)
	//
	_, err = css.SplitShorthand("padding", "1 2 3 4 5")
	assert.Error(t, err)
	_, err = css.SplitShorthand("font", "bold")
	assert.Error(t, err)
	assert.True(t, css.IsShorthand("inset"))
	assert.False(t, css.IsShorthand("margin-top"))
}

func TestParseDisplay(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.css")
	defer teardown()
	//
	d, err := css.ParseDisplay("inline-block")
	require.NoError(t, err)
	assert.Equal(t, css.InlineMode, d.Outer())
	assert.True(t, d.Contains(css.InnerBlockMode))
	d, err = css.ParseDisplay("Inline  Flex")
	require.NoError(t, err)
	assert.Equal(t, "InlineMode FlexMode", d.FullString())
	d, err = css.ParseDisplay("table")
	require.NoError(t, err)
	assert.True(t, d.IsBlockLevel())
	d, err = css.ParseDisplay("")
	require.NoError(t, err)
	assert.Equal(t, css.NoMode, d)
	_, err = css.ParseDisplay("blocky")
	assert.Error(t, err)
}

func TestColor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.css")
	defer teardown()
	//
	c, err := css.Property("#f00").Color()
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", css.ColorString(c))
	c, err = css.Property("Navy").Color()
	require.NoError(t, err)
	assert.Equal(t, "#000080", css.ColorString(c))
	c, err = css.Property("#11223380").Color()
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x80}, c)
	c, err = css.Property("currentcolor").Color()
	require.NoError(t, err)
	assert.Nil(t, c)
	_, err = css.Property("#12345").Color()
	assert.Error(t, err)
	_, err = css.Property("#ggg").Color()
	assert.Error(t, err)
	_, err = css.Property("reddish").Color()
	assert.Error(t, err)
}

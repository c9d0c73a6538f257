package cssom_test

import (
	"testing"

	"github.com/npillmayer/csstree/css"
	"github.com/npillmayer/csstree/cssom"
	"github.com/npillmayer/csstree/cssom/douceuradapter"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertiesFor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "csstree.cssom")
	defer teardown()
	//
	styles, err := douceuradapter.Parse(`
		p, div { color: red; margin: 0 !important }
		span { color: green }
		div { color: blue; margin: 3px; padding: 1px }`)
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "div"}, cssom.Selectors(styles.Rules()[0]))
	props := cssom.PropertiesFor(styles, "div")
	assert.Equal(t, []css.KeyValue{
		{Key: "color", Value: "blue"},
		{Key: "margin", Value: "0"},
		{Key: "padding", Value: "1px"},
	}, props)
	assert.Empty(t, cssom.PropertiesFor(styles, "table"))
}

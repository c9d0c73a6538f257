package cssom

import (
	"strings"

	"github.com/npillmayer/csstree/css"
)

// StyleSheet is an interface to abstract away a stylesheet-implementation.
// In order to de-couple clients from the syntax tree and from third-party
// CSS libraries, we introduce an interface for CSS stylesheets.
//
// See interface Rule.
type StyleSheet interface {
	AppendRules(StyleSheet) // append rules from another stylesheet
	Empty() bool            // does this stylesheet contain any rules?
	Rules() []Rule          // all the rules of a stylesheet
}

// Rule is the type stylesheets consists of.
//
// See interface StyleSheet.
type Rule interface {
	Selector() string          // the prelude / selectors of the rule
	Properties() []string      // property keys, e.g. "margin-top"
	Value(string) css.Property // property value for key, e.g. "15px"
	IsImportant(string) bool   // is property key marked as important?
}

// Selectors splits the prelude of a rule into single selectors.
func Selectors(r Rule) []string {
	var sels []string
	for _, s := range strings.Split(r.Selector(), ",") {
		if s = strings.TrimSpace(s); s != "" {
			sels = append(sels, s)
		}
	}
	return sels
}

// PropertiesFor collects the properties of all rules carrying selector sel.
// Rules are applied in order; a later value replaces an earlier one unless
// the earlier one is marked important and the later one is not. Keys are
// returned in order of first appearance.
func PropertiesFor(sheet StyleSheet, sel string) []css.KeyValue {
	type entry struct {
		value     css.Property
		important bool
	}
	var keys []string
	props := make(map[string]entry)
	for _, r := range sheet.Rules() {
		if !hasSelector(r, sel) {
			continue
		}
		for _, key := range r.Properties() {
			e := entry{value: r.Value(key), important: r.IsImportant(key)}
			prev, seen := props[key]
			if !seen {
				keys = append(keys, key)
			} else if prev.important && !e.important {
				tracer().Debugf("%s: important value %q kept over %q", key, prev.value, e.value)
				continue
			}
			props[key] = e
		}
	}
	kv := make([]css.KeyValue, len(keys))
	for i, key := range keys {
		kv[i] = css.KeyValue{Key: key, Value: props[key].value}
	}
	return kv
}

func hasSelector(r Rule, sel string) bool {
	for _, s := range Selectors(r) {
		if s == sel {
			return true
		}
	}
	return false
}

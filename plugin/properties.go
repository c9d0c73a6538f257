package plugin

import (
	"strings"

	"github.com/npillmayer/csstree/ast"
	"github.com/npillmayer/csstree/css"
	"github.com/npillmayer/csstree/emitter"
	"github.com/npillmayer/csstree/report"
)

// PropertyValidator checks the values of a few well known properties:
// display modes, color keywords and box dimensions. Invalid display modes are
// errors, unknown colors and doubtful dimensions are warnings.
type PropertyValidator struct{}

// NewPropertyValidator creates a property validator.
func NewPropertyValidator() *PropertyValidator {
	return &PropertyValidator{}
}

func (pv *PropertyValidator) Subscriptions() []emitter.Subscription {
	return []emitter.Subscription{
		refineAll[*ast.Declaration](),
		emitter.Validate(pv.validate).Named("validate property"),
	}
}

var globalKeywords = map[string]bool{
	"inherit": true, "initial": true, "unset": true, "revert": true,
}

var boxDimensions = map[string]bool{
	"width": true, "height": true, "min-width": true, "min-height": true,
	"max-width": true, "max-height": true, "top": true, "right": true,
	"bottom": true, "left": true,
}

func (pv *PropertyValidator) validate(d *ast.Declaration, m *report.Manager) error {
	v := d.Value()
	if v == nil {
		return nil
	}
	key := strings.ToLower(d.Property())
	terms := v.Terms().All()
	if len(terms) == 1 {
		if kw, ok := terms[0].(*ast.KeywordValue); ok && globalKeywords[kw.Keyword] {
			return nil
		}
	}
	switch {
	case key == "display":
		fields := make([]string, len(terms))
		for i, t := range terms {
			fields[i] = t.String()
		}
		if _, err := css.ParseDisplay(strings.Join(fields, " ")); err != nil {
			m.Errorf(d, "%v", err)
		}
	case key == "color" || strings.HasSuffix(key, "-color"):
		for _, t := range terms {
			if kw, ok := t.(*ast.KeywordValue); ok {
				if _, err := css.Property(kw.Keyword).Color(); err != nil {
					m.Warnf(t, "%s: %v", key, err)
				}
			}
		}
	case boxDimensions[key] || strings.HasPrefix(key, "margin") || strings.HasPrefix(key, "padding"):
		for _, t := range terms {
			switch t.(type) {
			case *ast.KeywordValue, *ast.NumericalValue:
				if _, err := css.FromTerm(t); err != nil {
					m.Warnf(t, "%s: %v", key, err)
				}
			}
		}
	}
	return nil
}

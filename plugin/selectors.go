package plugin

import (
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/csstree/ast"
	"github.com/npillmayer/csstree/emitter"
	"github.com/npillmayer/csstree/report"
	"golang.org/x/net/html"
)

// SelectorValidator checks every selector against the selector engine used for
// matching HTML documents. Selectors it cannot compile are reported with a
// configurable severity. The specificity of valid selectors is recorded.
type SelectorValidator struct {
	severity    report.Severity
	specificity map[uint64]cascadia.Specificity
}

// NewSelectorValidator creates a selector validator reporting problems with
// severity sev.
func NewSelectorValidator(sev report.Severity) *SelectorValidator {
	return &SelectorValidator{
		severity:    sev,
		specificity: make(map[uint64]cascadia.Specificity),
	}
}

func (v *SelectorValidator) Subscriptions() []emitter.Subscription {
	return []emitter.Subscription{
		refineAll[*ast.Selector](),
		emitter.Validate(v.validate).Named("validate selector"),
	}
}

func (v *SelectorValidator) validate(s *ast.Selector, m *report.Manager) error {
	sel, err := cascadia.ParseWithPseudoElement(s.String())
	if err != nil {
		m.Report(s, v.severity, fmt.Sprintf("unsupported selector %q: %v", s.String(), err))
		return nil
	}
	v.specificity[s.ID()] = sel.Specificity()
	return nil
}

// Specificity returns the specificity of a validated selector.
func (v *SelectorValidator) Specificity(s *ast.Selector) (cascadia.Specificity, bool) {
	sp, ok := v.specificity[s.ID()]
	return sp, ok
}

// --- Unused selectors ------------------------------------------------------

// dynamic pseudo classes never match a static document.
var dynamic = map[string]bool{
	"hover": true, "active": true, "focus": true, "visited": true, "target": true,
	"focus-within": true, "focus-visible": true,
}

// UnusedSelectors reports selectors which match no element of an HTML document.
// Selectors with dynamic pseudo classes, like ":hover", and selectors the
// selector engine cannot compile are skipped.
type UnusedSelectors struct {
	doc      *html.Node
	severity report.Severity
}

// NewUnusedSelectors creates a plugin checking selectors against doc. Unused
// selectors are reported with severity Warning.
func NewUnusedSelectors(doc *html.Node) *UnusedSelectors {
	return &UnusedSelectors{doc: doc, severity: report.Warning}
}

// UnusedSelectorsIn parses an HTML document and creates a plugin checking
// selectors against it.
func UnusedSelectorsIn(r io.Reader) (*UnusedSelectors, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return NewUnusedSelectors(doc), nil
}

// WithSeverity sets the severity for unused selectors.
func (u *UnusedSelectors) WithSeverity(sev report.Severity) *UnusedSelectors {
	u.severity = sev
	return u
}

func (u *UnusedSelectors) Subscriptions() []emitter.Subscription {
	return []emitter.Subscription{
		refineAll[*ast.Selector](),
		emitter.Validate(u.validate).Named("find unused selector"),
	}
}

func (u *UnusedSelectors) validate(s *ast.Selector, m *report.Manager) error {
	if u.doc == nil {
		return nil
	}
	for _, p := range s.Parts().All() {
		if pc, ok := p.(*ast.PseudoClassSelector); ok && dynamic[strings.ToLower(pc.Name)] {
			return nil
		}
	}
	sel, err := cascadia.ParseWithPseudoElement(s.String())
	if err != nil {
		tracer().Debugf("cannot match selector %q: %v", s.String(), err)
		return nil
	}
	if cascadia.Query(u.doc, sel) == nil {
		m.Report(s, u.severity, fmt.Sprintf("selector %s matches no element", s.String()))
	}
	return nil
}

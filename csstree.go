package csstree

import (
	"fmt"
	"strings"

	"github.com/npillmayer/csstree/ast"
	"github.com/npillmayer/csstree/cssom"
	"github.com/npillmayer/csstree/cssom/douceuradapter"
	"github.com/npillmayer/csstree/emitter"
	"github.com/npillmayer/csstree/plugin"
	"github.com/npillmayer/csstree/report"
	"github.com/npillmayer/schuko"
)

// Configuration keys.
const (
	ConfAutoRefine       = "csstree.autorefine"
	ConfValidate         = "csstree.validate"
	ConfMaxProblems      = "csstree.maxproblems"
	ConfSelectorSeverity = "csstree.selectors.severity"
)

// Pipeline is a single run from CSS source to a processed syntax tree.
// Pipelines are not safe for concurrent use, but independent pipelines may
// run in parallel.
type Pipeline struct {
	text    string
	plugins []emitter.Plugin
	conf    schuko.Configuration
}

// Source starts a pipeline for a CSS text.
func Source(text string) *Pipeline {
	return &Pipeline{text: text}
}

// Use adds plugins to a pipeline. Plugins are registered in order, each one
// after its dependencies.
func (p *Pipeline) Use(plugins ...emitter.Plugin) *Pipeline {
	p.plugins = append(p.plugins, plugins...)
	return p
}

// Configure sets the configuration for a pipeline. Without configuration,
// defaults are used.
func (p *Pipeline) Configure(conf schuko.Configuration) *Pipeline {
	p.conf = conf
	return p
}

type settings struct {
	autorefine  []string
	validate    bool
	maxProblems int
	selectors   string
}

func (p *Pipeline) settings() settings {
	s := settings{validate: true}
	if p.conf == nil {
		return s
	}
	if p.conf.IsSet(ConfAutoRefine) {
		for _, t := range strings.Split(p.conf.GetString(ConfAutoRefine), ",") {
			s.autorefine = append(s.autorefine, strings.TrimSpace(t))
		}
	}
	if p.conf.IsSet(ConfValidate) {
		s.validate = p.conf.GetBool(ConfValidate)
	}
	s.maxProblems = p.conf.GetInt(ConfMaxProblems)
	if p.conf.IsSet(ConfSelectorSeverity) {
		s.selectors = p.conf.GetString(ConfSelectorSeverity)
	}
	return s
}

// pluginsFor returns the plugins of a run: the plugins in use, plus those
// requested by configuration.
func (p *Pipeline) pluginsFor(s settings) ([]emitter.Plugin, error) {
	plugins := append([]emitter.Plugin{}, p.plugins...)
	if len(s.autorefine) > 0 {
		ar, err := plugin.NewAutoRefiner(s.autorefine...)
		if err != nil {
			return nil, fmt.Errorf("configuration %s: %w", ConfAutoRefine, err)
		}
		if !ar.IsEmpty() {
			plugins = append(plugins, ar)
		}
	}
	if s.selectors != "" {
		plugins = append(plugins, plugin.NewSelectorValidator(report.SeverityFromString(s.selectors)))
	}
	return plugins, nil
}

// Process runs the pipeline: plugins are registered, the source is parsed and
// processed, and the final tree is validated.
//
// Configuration errors and parse errors abort the run and no result is
// returned. If validation finds fatal problems, the result is returned together
// with a *report.SummaryError.
func (p *Pipeline) Process() (*Result, error) {
	s := p.settings()
	plugins, err := p.pluginsFor(s)
	if err != nil {
		return nil, err
	}
	e, err := emitter.New(plugins...)
	if err != nil {
		return nil, err
	}
	e.SetReports(report.NewManager(s.maxProblems))
	sheet, err := e.Grammar().Parse(p.text, e)
	if err != nil {
		tracer().Errorf("parsing failed: %v", err)
		return nil, err
	}
	if s.validate {
		if err := e.Validate(sheet); err != nil {
			tracer().Errorf("validation failed: %v", err)
			return nil, err
		}
	}
	result := &Result{
		Stylesheet: sheet,
		Problems:   e.Reports().Problems(),
		Registry:   e.Registry(),
	}
	tracer().Infof("processed stylesheet with %d statement(s), %d problem(s)",
		sheet.Statements().Len(), len(result.Problems))
	return result, e.Reports().Summarize()
}

// Result is the outcome of a pipeline run.
type Result struct {
	Stylesheet *ast.Stylesheet
	Problems   []report.Problem
	Registry   *emitter.Registry // plugins of the run, see emitter.Retrieve
}

// String writes the stylesheet as compact CSS.
func (r *Result) String() string {
	if r == nil || r.Stylesheet == nil {
		return ""
	}
	return r.Stylesheet.String()
}

// CSSOM returns an object model view of the stylesheet.
func (r *Result) CSSOM() cssom.StyleSheet {
	return douceuradapter.FromTree(r.Stylesheet)
}

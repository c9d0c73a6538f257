package plugin

import (
	"regexp"
	"strings"

	"github.com/npillmayer/csstree/ast"
	"github.com/npillmayer/csstree/emitter"
	"github.com/npillmayer/csstree/grammar"
	"github.com/npillmayer/csstree/syntax"
)

// CustomVarMode tells CustomVars what to do with custom variables.
type CustomVarMode uint8

const (
	// Passthrough keeps custom variables as CustomVarFunction terms.
	Passthrough CustomVarMode = iota
	// Resolve replaces custom variables by the terms of their values.
	Resolve
)

var customVarName = regexp.MustCompile(`^[a-zA-Z-]+$`)

// CustomVars refines functions "custom-var(name)" in property values. Variables
// are given as text, e.g. "1px solid #fff", and parsed as terms when resolved.
type CustomVars struct {
	mode CustomVarMode
	vars map[string]string
}

// NewCustomVars creates a custom variables plugin. vars may be nil.
func NewCustomVars(mode CustomVarMode, vars map[string]string) *CustomVars {
	c := &CustomVars{mode: mode, vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		c.vars[k] = v
	}
	return c
}

// Set defines a variable.
func (c *CustomVars) Set(name, value string) *CustomVars {
	c.vars[name] = value
	return c
}

// Mode returns the mode of c.
func (c *CustomVars) Mode() CustomVarMode {
	return c.mode
}

func (c *CustomVars) Subscriptions() []emitter.Subscription {
	return []emitter.Subscription{
		refineAll[*ast.Declaration](),
		emitter.Refine("custom-var", c.refine).Named("refine custom-var"),
	}
}

func (c *CustomVars) refine(f *ast.RawFunction, g *grammar.Grammar, bc syntax.Broadcaster) (syntax.Refinement, error) {
	line, col := f.Pos()
	name := strings.TrimSpace(f.Args)
	if !customVarName.MatchString(name) {
		return syntax.RefinedNone, syntax.Errorf(line, col, "invalid custom-var arg %q", name)
	}
	if c.mode == Passthrough {
		return syntax.RefinedFull, bc.Broadcast(NewCustomVarFunction(name, line, col))
	}
	value, ok := c.vars[name]
	if !ok {
		return syntax.RefinedNone, syntax.Errorf(line, col, "unknown custom-var arg %q", name)
	}
	raw := syntax.RawContent{Content: value, Line: line, Column: col}
	if _, err := g.ParseTerms(raw, bc); err != nil {
		return syntax.RefinedNone, err
	}
	tracer().Debugf("custom-var(%s) resolved to %q", name, value)
	return syntax.RefinedFull, nil
}

// --- Custom variable term --------------------------------------------------

// KindCustomVar is the node kind of CustomVarFunction.
var KindCustomVar = syntax.RegisterKind("custom-var-function")

// CustomVarFunction is an unresolved reference to a custom variable.
type CustomVarFunction struct {
	syntax.Base
	syntax.Link[ast.Term]
	Name string
}

// NewCustomVarFunction creates a reference to variable name.
func NewCustomVarFunction(name string, line, col int) *CustomVarFunction {
	return &CustomVarFunction{Base: syntax.NewBase(KindCustomVar, line, col), Name: name}
}

func (f *CustomVarFunction) String() string {
	return "custom-var(" + f.Name + ")"
}

// CopyTerm makes CustomVarFunction copyable by ast.CopyTerm.
func (f *CustomVarFunction) CopyTerm() ast.Term {
	return &CustomVarFunction{Base: f.Base.Fresh(), Name: f.Name}
}

var _ ast.Term = &CustomVarFunction{}

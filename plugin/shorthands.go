package plugin

import (
	"strings"

	"github.com/npillmayer/csstree/ast"
	"github.com/npillmayer/csstree/css"
	"github.com/npillmayer/csstree/emitter"
)

// Shorthands replaces shorthand declarations for the four sides or corners of
// a box, e.g. "margin: 1px 2px", by the equivalent longhand declarations.
// Values with operators, e.g. "border-radius: 1px / 2px", are left alone.
type Shorthands struct{}

// NewShorthands creates a shorthands plugin.
func NewShorthands() *Shorthands {
	return &Shorthands{}
}

func (sh *Shorthands) Subscriptions() []emitter.Subscription {
	return []emitter.Subscription{
		refineAll[*ast.Declaration](),
		emitter.Rework(sh.expand).Named("expand shorthand"),
	}
}

func (sh *Shorthands) expand(d *ast.Declaration) error {
	key := strings.ToLower(d.Property())
	if !css.IsShorthand(key) || d.Value() == nil {
		return nil
	}
	if _, ok := d.Group(); !ok {
		return nil
	}
	terms := d.Value().Terms().All()
	fields := make([]string, 0, len(terms))
	byText := make(map[string]ast.Term, len(terms))
	for _, t := range terms {
		if _, ok := t.(*ast.Operator); ok || strings.ContainsAny(t.String(), " \t\n") {
			return nil
		}
		fields = append(fields, t.String())
		byText[t.String()] = t
	}
	kvs, err := css.SplitShorthand(key, css.Property(strings.Join(fields, " ")))
	if err != nil {
		tracer().Debugf("cannot expand %s: %v", d, err)
		return nil
	}
	anchor := d
	for i, kv := range kvs {
		v := ast.ValueOf(ast.CopyTerm(byText[kv.Value.String()]))
		v.SetImportant(d.Value().IsImportant())
		longhand := ast.NewDeclaration(kv.Key, v)
		if i == 0 {
			for _, c := range d.Comments() {
				longhand.AddComment(c)
			}
		}
		if err := anchor.GroupLink().Append(longhand); err != nil {
			return err
		}
		anchor = longhand
	}
	d.Destroy()
	return nil
}

package grammar

import (
	"strings"

	"github.com/npillmayer/csstree/ast"
	"github.com/npillmayer/csstree/syntax"
)

// refineAtRule is the standard refiner for at-rules. It knows about @media,
// @supports and @font-face. Other at-rules are left raw.
func (g *Grammar) refineAtRule(r *ast.AtRule, bc syntax.Broadcaster) (syntax.Refinement, error) {
	switch r.Name() {
	case "media":
		return g.refineMedia(r, bc)
	case "supports":
		return g.refineSupports(r, bc)
	case "font-face":
		return g.refineFontFace(r, bc)
	}
	return syntax.RefinedNone, nil
}

func (g *Grammar) refineMedia(r *ast.AtRule, bc syntax.Broadcaster) (syntax.Refinement, error) {
	raw, ok := r.RawBlock()
	if !ok {
		line, col := r.Pos()
		return syntax.RefinedNone, syntax.Errorf(line, col, "@media without block")
	}
	if expr, ok := r.RawExpression(); ok {
		mql, err := g.ParseMediaQueryList(expr, bc)
		if err != nil {
			return syntax.RefinedNone, err
		}
		tracer().Debugf("@media %v", mql)
	}
	if _, err := g.ParseBlock(raw, bc); err != nil {
		return syntax.RefinedNone, err
	}
	return syntax.RefinedFull, nil
}

// The condition of @supports stays raw.
func (g *Grammar) refineSupports(r *ast.AtRule, bc syntax.Broadcaster) (syntax.Refinement, error) {
	raw, ok := r.RawBlock()
	if !ok {
		line, col := r.Pos()
		return syntax.RefinedNone, syntax.Errorf(line, col, "@supports without block")
	}
	if _, err := g.ParseBlock(raw, bc); err != nil {
		return syntax.RefinedNone, err
	}
	return syntax.RefinedPartial, nil
}

func (g *Grammar) refineFontFace(r *ast.AtRule, bc syntax.Broadcaster) (syntax.Refinement, error) {
	line, col := r.Pos()
	if expr, ok := r.RawExpression(); ok {
		return syntax.RefinedNone, syntax.Errorf(expr.Line, expr.Column, "unexpected %q after @font-face", expr.Content)
	}
	raw, ok := r.RawBlock()
	if !ok {
		return syntax.RefinedNone, syntax.Errorf(line, col, "@font-face without block")
	}
	decls, err := g.ParseDeclarations(raw, nil)
	if err != nil {
		return syntax.RefinedNone, err
	}
	block := ast.NewFontFaceBlock(raw.Line, raw.Column)
	for _, d := range decls {
		if err := block.Descriptors().Append(d); err != nil {
			return syntax.RefinedNone, err
		}
	}
	return syntax.RefinedFull, emit(bc, block)
}

// ParseMediaQueryList parses the prelude of @media into a list of queries and
// broadcasts it through bc. Queries are separated by top-level commas; runs of
// whitespace within a query are collapsed.
func (g *Grammar) ParseMediaQueryList(raw syntax.RawContent, bc syntax.Broadcaster) (*ast.MediaQueryList, error) {
	src := NewSource(raw)
	if err := src.Err(); err != nil {
		return nil, err
	}
	var queries []string
	for _, q := range split(src.lexems, ",") {
		q, _ = trim(q)
		if len(q) == 0 {
			return nil, syntax.Errorf(raw.Line, raw.Column, "empty media query")
		}
		var b strings.Builder
		for _, l := range q {
			switch {
			case l.isComment():
			case l.isSpace():
				b.WriteByte(' ')
			default:
				b.WriteString(l.value())
			}
		}
		queries = append(queries, strings.Join(strings.Fields(b.String()), " "))
	}
	mql := ast.NewMediaQueryList(queries, raw.Line, raw.Column)
	return mql, emit(bc, mql)
}

package grammar

import (
	"strings"

	"github.com/gorilla/css/scanner"
	"github.com/npillmayer/csstree/ast"
	"github.com/npillmayer/csstree/syntax"
)

// Parse parses a stylesheet text. See ParseStylesheet.
func (g *Grammar) Parse(text string, bc syntax.Broadcaster) (*ast.Stylesheet, error) {
	return g.ParseStylesheet(SourceOf(text), bc)
}

// ParseStylesheet parses a stylesheet into raw statements. Rules hold raw
// selectors and raw declarations, at-rules hold a raw prelude and a raw block.
// Comments are attached to the unit following them; trailing comments become
// orphaned comments.
//
// After parsing, the stylesheet is propagated through bc, parents before
// children. bc may be nil.
func (g *Grammar) ParseStylesheet(src *Source, bc syntax.Broadcaster) (*ast.Stylesheet, error) {
	if err := src.Err(); err != nil {
		return nil, err
	}
	sheet := ast.NewStylesheet(nil)
	statements, err := g.statements(src)
	if err != nil {
		return nil, err
	}
	for _, st := range statements {
		if err := sheet.Append(st); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("parsed stylesheet with %d statement(s)", len(statements))
	if bc == nil {
		return sheet, nil
	}
	return sheet, syntax.Propagate(bc, sheet)
}

// ParseStatements parses raw content into statements and broadcasts each of
// them through bc.
func (g *Grammar) ParseStatements(raw syntax.RawContent, bc syntax.Broadcaster) ([]ast.Statement, error) {
	src := NewSource(raw)
	if err := src.Err(); err != nil {
		return nil, err
	}
	statements, err := g.statements(src)
	if err != nil {
		return nil, err
	}
	for _, st := range statements {
		if err := emit(bc, st); err != nil {
			return nil, err
		}
	}
	return statements, nil
}

// ParseBlock parses raw content into a block of statements and broadcasts the
// block through bc.
func (g *Grammar) ParseBlock(raw syntax.RawContent, bc syntax.Broadcaster) (*ast.ConditionalBlock, error) {
	statements, err := g.ParseStatements(raw, nil)
	if err != nil {
		return nil, err
	}
	block := ast.NewConditionalBlock(raw.Line, raw.Column)
	for _, st := range statements {
		if err := block.Statements().Append(st); err != nil {
			return nil, err
		}
	}
	return block, emit(bc, block)
}

// ParseDeclarations parses a list of declarations separated by ';' and broadcasts
// each of them through bc.
func (g *Grammar) ParseDeclarations(raw syntax.RawContent, bc syntax.Broadcaster) ([]*ast.Declaration, error) {
	src := NewSource(raw)
	if err := src.Err(); err != nil {
		return nil, err
	}
	decls, err := g.declarations(src.lexems)
	if err != nil {
		return nil, err
	}
	for _, d := range decls {
		if err := emit(bc, d); err != nil {
			return nil, err
		}
	}
	return decls, nil
}

func (g *Grammar) statements(src *Source) ([]ast.Statement, error) {
	var statements []ast.Statement
	for {
		comments := src.skipSpaceCollect()
		l, ok := src.peek()
		if !ok {
			for _, c := range comments {
				statements = append(statements, ast.NewOrphanedComment(c.value(), c.line, c.col))
			}
			return statements, nil
		}
		if l.tok.Type == scanner.TokenCDO || l.tok.Type == scanner.TokenCDC {
			src.pos++
			continue
		}
		var st ast.Statement
		var err error
		if l.tok.Type == scanner.TokenAtKeyword {
			st, err = g.atRule(src)
		} else {
			st, err = g.rule(src)
		}
		if err != nil {
			return nil, err
		}
		for _, c := range comments {
			st.AddComment(c.value())
		}
		statements = append(statements, st)
	}
}

func isChar(c string) func(lexeme) bool {
	return func(l lexeme) bool { return l.isChar(c) }
}

// after returns a fallback position right behind a lexeme.
func after(l lexeme) func() (int, int) {
	return func() (int, int) { return l.line, l.col + len(l.value()) }
}

func (g *Grammar) rule(src *Source) (*ast.Rule, error) {
	start, _ := src.peek()
	prelude, found := src.until(isChar("{"), false)
	if !found {
		return nil, syntax.Errorf(start.line, start.col, "expected '{' after selector")
	}
	open, _ := src.next()
	body, closed := src.block()
	if !closed {
		return nil, syntax.Errorf(open.line, open.col, "unclosed block")
	}
	rule := ast.NewRule(start.line, start.col, nil)
	for _, sel := range split(prelude, ",") {
		sel, comments := trim(sel)
		if len(sel) == 0 {
			return nil, syntax.Errorf(start.line, start.col, "empty selector")
		}
		s := ast.NewRawSelector(rawOf(sel, nil))
		for _, c := range comments {
			s.AddComment(c)
		}
		g.attach(s)
		if err := rule.Selectors().Append(s); err != nil {
			return nil, err
		}
	}
	decls, err := g.declarations(body)
	if err != nil {
		return nil, err
	}
	for _, d := range decls {
		if err := rule.Declarations().Append(d); err != nil {
			return nil, err
		}
	}
	return rule, nil
}

// declarations splits tokens into raw declarations.
func (g *Grammar) declarations(lexems []lexeme) ([]*ast.Declaration, error) {
	var decls []*ast.Declaration
	for _, part := range split(lexems, ";") {
		part, comments := trim(part)
		if len(part) == 0 {
			continue
		}
		prop := part[0]
		if !prop.isIdent() {
			return nil, syntax.Errorf(prop.line, prop.col, "expected property name, have %q", prop.value())
		}
		i := 1
		for i < len(part) && (part[i].isSpace() || part[i].isComment()) {
			i++
		}
		if i == len(part) || !part[i].isChar(":") {
			return nil, syntax.Errorf(prop.line, prop.col, "expected ':' after property %s", prop.value())
		}
		value, _ := trim(part[i+1:])
		if len(value) == 0 {
			return nil, syntax.Errorf(prop.line, prop.col, "missing value for property %s", prop.value())
		}
		d := ast.NewRawDeclaration(prop.value(), prop.line, prop.col, rawOf(value, nil))
		for _, c := range comments {
			d.AddComment(c)
		}
		g.attach(d)
		decls = append(decls, d)
	}
	return decls, nil
}

func (g *Grammar) atRule(src *Source) (*ast.AtRule, error) {
	kw, _ := src.next()
	name := strings.TrimPrefix(kw.value(), "@")
	prelude, found := src.until(func(l lexeme) bool { return l.isChar("{") || l.isChar(";") }, false)
	var expr, block *syntax.RawContent
	if trimmed, _ := trim(prelude); len(trimmed) > 0 {
		raw := rawOf(trimmed, nil)
		expr = &raw
	}
	if found {
		delim, _ := src.next()
		if delim.isChar("{") {
			body, closed := src.block()
			if !closed {
				return nil, syntax.Errorf(delim.line, delim.col, "unclosed block of @%s", name)
			}
			raw := rawOf(body, after(delim))
			block = &raw
		}
	}
	r := ast.NewRawAtRule(name, kw.line, kw.col, expr, block)
	g.attach(r)
	return r, nil
}

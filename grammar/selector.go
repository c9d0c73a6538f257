package grammar

import (
	"strings"

	"github.com/gorilla/css/scanner"
	"github.com/npillmayer/csstree/ast"
	"github.com/npillmayer/csstree/syntax"
)

// ParseSelectorParts parses a complex selector, e.g. "ul > li.item:hover", and
// broadcasts each part through bc.
func (g *Grammar) ParseSelectorParts(raw syntax.RawContent, bc syntax.Broadcaster) ([]ast.SelectorPart, error) {
	src := NewSource(raw)
	if err := src.Err(); err != nil {
		return nil, err
	}
	parts, err := selectorParts(src)
	if err != nil {
		return nil, err
	}
	for _, p := range parts {
		if err := emit(bc, p); err != nil {
			return nil, err
		}
	}
	return parts, nil
}

// Pseudo elements which may be written with a single colon.
var legacyPseudoElements = map[string]bool{
	"before":       true,
	"after":        true,
	"first-line":   true,
	"first-letter": true,
}

func combinatorFor(l lexeme) (ast.PartType, bool) {
	switch {
	case l.isChar(">"):
		return ast.ChildCombinator, true
	case l.isChar("+"):
		return ast.AdjacentSiblingCombinator, true
	case l.isChar("~"):
		return ast.GeneralSiblingCombinator, true
	}
	return 0, false
}

func endsWithCombinator(parts []ast.SelectorPart) bool {
	return len(parts) > 0 && parts[len(parts)-1].PartType().IsCombinator()
}

func selectorParts(src *Source) ([]ast.SelectorPart, error) {
	var parts []ast.SelectorPart
	src.SkipSpace()
	for !src.EOF() {
		l, _ := src.next()
		if l.isSpace() || l.isComment() {
			src.SkipSpace()
			if next, ok := src.peek(); ok && len(parts) > 0 && !endsWithCombinator(parts) {
				if _, explicit := combinatorFor(next); !explicit {
					parts = append(parts, ast.NewCombinator(ast.DescendantCombinator, l.line, l.col))
				}
			}
			continue
		}
		if t, ok := combinatorFor(l); ok {
			if len(parts) == 0 || endsWithCombinator(parts) {
				return nil, syntax.Errorf(l.line, l.col, "unexpected combinator %q", l.value())
			}
			parts = append(parts, ast.NewCombinator(t, l.line, l.col))
			src.SkipSpace()
			continue
		}
		p, err := simpleSelector(src, l)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		line, col := src.Pos()
		return nil, syntax.Errorf(line, col, "empty selector")
	}
	if endsWithCombinator(parts) {
		last := parts[len(parts)-1]
		line, col := last.Pos()
		return nil, syntax.Errorf(line, col, "selector ends with combinator")
	}
	return parts, nil
}

// simpleSelector parses a simple selector starting with lexeme l, which has
// already been consumed.
func simpleSelector(src *Source, l lexeme) (ast.SelectorPart, error) {
	switch {
	case l.isIdent():
		return ast.NewTypeSelector(l.value(), l.line, l.col), nil
	case l.isChar("*"):
		return ast.NewUniversalSelector(l.line, l.col), nil
	case l.tok.Type == scanner.TokenHash:
		return ast.NewIdSelector(l.value()[1:], l.line, l.col), nil
	case l.isChar("."):
		name, ok := src.ReadIdent()
		if !ok {
			return nil, src.Errorf("expected class name after '.'")
		}
		return ast.NewClassSelector(name, l.line, l.col), nil
	case l.isChar("["):
		return attributeSelector(src, l)
	case l.isChar(":"):
		return pseudoSelector(src, l)
	}
	return nil, syntax.Errorf(l.line, l.col, "unexpected %q in selector", l.value())
}

func attributeSelector(src *Source, open lexeme) (ast.SelectorPart, error) {
	attr, ok := src.SkipSpace().ReadIdent()
	if !ok {
		return nil, src.Errorf("expected attribute name")
	}
	if src.SkipSpace().optionalChar("]") {
		return ast.NewAttributeSelector(attr, "", "", open.line, open.col), nil
	}
	m, ok := src.next()
	if !ok {
		return nil, syntax.Errorf(open.line, open.col, "unclosed attribute selector")
	}
	switch m.tok.Type {
	case scanner.TokenIncludes, scanner.TokenDashMatch, scanner.TokenPrefixMatch,
		scanner.TokenSuffixMatch, scanner.TokenSubstringMatch:
	default:
		if !m.isChar("=") {
			return nil, syntax.Errorf(m.line, m.col, "unexpected %q in attribute selector", m.value())
		}
	}
	v, ok := src.SkipSpace().next()
	if !ok || (!v.isIdent() && v.tok.Type != scanner.TokenString) {
		return nil, syntax.Errorf(m.line, m.col, "expected value after %q", m.value())
	}
	if !src.SkipSpace().optionalChar("]") {
		return nil, syntax.Errorf(open.line, open.col, "unclosed attribute selector")
	}
	return ast.NewAttributeSelector(attr, m.value(), v.value(), open.line, open.col), nil
}

func pseudoSelector(src *Source, colon lexeme) (ast.SelectorPart, error) {
	if src.optionalChar(":") {
		name, ok := src.ReadIdent()
		if !ok {
			return nil, src.Errorf("expected pseudo element name")
		}
		return ast.NewPseudoElementSelector(strings.ToLower(name), colon.line, colon.col), nil
	}
	if name, ok := src.ReadIdent(); ok {
		if lower := strings.ToLower(name); legacyPseudoElements[lower] {
			return ast.NewPseudoElementSelector(lower, colon.line, colon.col), nil
		}
		return ast.NewPseudoClassSelector(name, colon.line, colon.col), nil
	}
	fn, ok := src.peek()
	if !ok || fn.tok.Type != scanner.TokenFunction {
		return nil, syntax.Errorf(colon.line, colon.col, "expected pseudo class name")
	}
	src.pos++
	args, found := src.until(isChar(")"), false)
	if !found {
		return nil, syntax.Errorf(fn.line, fn.col, "unclosed pseudo class %s", fn.value())
	}
	src.pos++
	p := ast.NewPseudoClassSelector(strings.TrimSuffix(fn.value(), "("), colon.line, colon.col)
	p.Func = true
	p.Args = strings.TrimSpace(rawOf(args, after(fn)).Content)
	return p, nil
}

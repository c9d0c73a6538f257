package grammar

import (
	"strings"

	"github.com/gorilla/css/scanner"
	"github.com/npillmayer/csstree/ast"
	"github.com/npillmayer/csstree/syntax"
)

// ParsePropertyValue parses the value of a declaration, including a trailing
// "!important", and broadcasts the property value through bc. The terms of the
// value are members of its collection and are not broadcast separately.
func (g *Grammar) ParsePropertyValue(raw syntax.RawContent, bc syntax.Broadcaster) (*ast.PropertyValue, error) {
	src := NewSource(raw)
	if err := src.Err(); err != nil {
		return nil, err
	}
	terms, important, err := g.terms(src)
	if err != nil {
		return nil, err
	}
	v := ast.NewPropertyValue(raw.Line, raw.Column)
	if err := v.Terms().AppendAll(terms); err != nil {
		return nil, err
	}
	v.SetImportant(important)
	return v, emit(bc, v)
}

// ParseTerms parses a sequence of terms and broadcasts each of them through bc.
// "!important" is not allowed.
func (g *Grammar) ParseTerms(raw syntax.RawContent, bc syntax.Broadcaster) ([]ast.Term, error) {
	src := NewSource(raw)
	if err := src.Err(); err != nil {
		return nil, err
	}
	terms, important, err := g.terms(src)
	if err != nil {
		return nil, err
	}
	if important {
		return nil, syntax.Errorf(raw.Line, raw.Column, "unexpected !important")
	}
	for _, t := range terms {
		if err := emit(bc, t); err != nil {
			return nil, err
		}
	}
	return terms, nil
}

func (g *Grammar) terms(src *Source) (terms []ast.Term, important bool, err error) {
	for !src.SkipSpace().EOF() {
		l, _ := src.next()
		var t ast.Term
		switch {
		case l.isChar("!"):
			if kw, ok := src.SkipSpace().ReadIdent(); !ok || !strings.EqualFold(kw, "important") {
				return nil, false, syntax.Errorf(l.line, l.col, "expected 'important' after '!'")
			}
			if !src.SkipSpace().EOF() {
				return nil, false, src.Errorf("unexpected %q after !important", src.lexems[src.pos].value())
			}
			important = true
			continue
		case l.isChar("-"), l.isChar("+"):
			n, ok := src.peek()
			if !ok || !isNumeric(n) {
				return nil, false, syntax.Errorf(l.line, l.col, "unexpected %q in value", l.value())
			}
			src.pos++
			num, err := numerical(n, l.line, l.col)
			if err != nil {
				return nil, false, err
			}
			num.Sign = l.value()[0]
			t = num
		case isNumeric(l):
			if t, err = numerical(l, l.line, l.col); err != nil {
				return nil, false, err
			}
		case l.isIdent():
			t = ast.NewKeywordValue(l.value(), l.line, l.col)
		case l.tok.Type == scanner.TokenHash:
			if t, err = ast.NewHexColorValue(l.value(), l.line, l.col); err != nil {
				return nil, false, err
			}
		case l.tok.Type == scanner.TokenString:
			t = ast.NewStringValue(l.value(), l.line, l.col)
		case l.tok.Type == scanner.TokenURI:
			t = ast.NewUrlFunction(urlOf(l.value()), l.line, l.col)
		case l.tok.Type == scanner.TokenFunction:
			args, found := src.until(isChar(")"), false)
			if !found {
				return nil, false, syntax.Errorf(l.line, l.col, "unclosed function %s", l.value())
			}
			src.pos++
			f := ast.NewRawFunction(strings.TrimSuffix(l.value(), "("), rawOf(args, after(l)))
			g.attach(f)
			t = f
		case l.isChar(","), l.isChar("/"):
			t = ast.NewOperator(l.value()[0], l.line, l.col)
		default:
			return nil, false, syntax.Errorf(l.line, l.col, "unexpected %q in value", l.value())
		}
		terms = append(terms, t)
	}
	if len(terms) == 0 {
		line, col := src.Pos()
		return nil, false, syntax.Errorf(line, col, "empty value")
	}
	return terms, important, nil
}

func isNumeric(l lexeme) bool {
	switch l.tok.Type {
	case scanner.TokenNumber, scanner.TokenPercentage, scanner.TokenDimension:
		return true
	}
	return false
}

// numerical splits a numeric token into number and unit.
func numerical(l lexeme, line, col int) (*ast.NumericalValue, error) {
	v := l.value()
	i := strings.IndexFunc(v, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	if i < 0 {
		i = len(v)
	}
	return ast.NewNumericalValue(v[:i], v[i:], line, col)
}

// urlOf extracts the location of a "url(...)" token.
func urlOf(uri string) string {
	s := strings.TrimSuffix(strings.TrimPrefix(uri, uri[:4]), ")")
	return unquote(strings.TrimSpace(s))
}

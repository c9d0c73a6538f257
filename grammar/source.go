package grammar

import (
	"strings"

	"github.com/gorilla/css/scanner"
	"github.com/npillmayer/csstree/syntax"
)

// lexeme is a token of a source, with its position in the original stylesheet.
type lexeme struct {
	tok       *scanner.Token
	line, col int
}

func (l lexeme) value() string {
	return l.tok.Value
}

func (l lexeme) isChar(c string) bool {
	return l.tok.Type == scanner.TokenChar && l.tok.Value == c
}

func (l lexeme) isSpace() bool {
	return l.tok.Type == scanner.TokenS
}

func (l lexeme) isComment() bool {
	return l.tok.Type == scanner.TokenComment
}

func (l lexeme) isIdent() bool {
	return l.tok.Type == scanner.TokenIdent
}

// Source is a stream of tokens over a fragment of raw content.
type Source struct {
	raw    syntax.RawContent
	lexems []lexeme
	pos    int
	err    error
}

// NewSource tokenizes raw content. A tokenization error (unclosed string or
// comment) is reported by Err.
func NewSource(raw syntax.RawContent) *Source {
	src := &Source{raw: raw}
	sc := scanner.New(raw.Content)
	for {
		t := sc.Next()
		if t.Type == scanner.TokenEOF {
			break
		}
		line, col := src.abs(t.Line, t.Column)
		if t.Type == scanner.TokenError {
			src.err = syntax.Errorf(line, col, "%s", t.Value)
			break
		}
		if t.Type == scanner.TokenBOM {
			continue
		}
		src.lexems = append(src.lexems, lexeme{tok: t, line: line, col: col})
	}
	return src
}

// SourceOf creates a source for a stylesheet text starting at line 1, column 1.
func SourceOf(text string) *Source {
	return NewSource(syntax.RawContent{Content: text, Line: 1, Column: 1})
}

func sourceOf(raw syntax.RawContent, lexems []lexeme) *Source {
	return &Source{raw: raw, lexems: lexems}
}

// abs maps a scanner position (relative to the fragment) to a position in the
// original stylesheet.
func (src *Source) abs(line, col int) (int, int) {
	if src.raw.Line <= 0 {
		return -1, -1
	}
	if line == 1 {
		return src.raw.Line, src.raw.Column + col - 1
	}
	return src.raw.Line + line - 1, col
}

// Err returns the tokenization error, if any.
func (src *Source) Err() error {
	return src.err
}

// Raw returns the raw content the source has been created for.
func (src *Source) Raw() syntax.RawContent {
	return src.raw
}

// EOF is true if all tokens have been consumed.
func (src *Source) EOF() bool {
	return src.pos >= len(src.lexems)
}

func (src *Source) peek() (lexeme, bool) {
	if src.EOF() {
		return lexeme{}, false
	}
	return src.lexems[src.pos], true
}

func (src *Source) peekAt(n int) (lexeme, bool) {
	if src.pos+n >= len(src.lexems) {
		return lexeme{}, false
	}
	return src.lexems[src.pos+n], true
}

func (src *Source) next() (lexeme, bool) {
	l, ok := src.peek()
	if ok {
		src.pos++
	}
	return l, ok
}

// Pos returns the position of the next token, or the end of the source.
func (src *Source) Pos() (int, int) {
	if l, ok := src.peek(); ok {
		return l.line, l.col
	}
	if n := len(src.lexems); n > 0 {
		last := src.lexems[n-1]
		return last.line, last.col + len(last.value())
	}
	return src.raw.Line, src.raw.Column
}

// SkipSpace skips whitespace and comments.
func (src *Source) SkipSpace() *Source {
	for l, ok := src.peek(); ok && (l.isSpace() || l.isComment()); l, ok = src.peek() {
		src.pos++
	}
	return src
}

// skipSpaceCollect skips whitespace and returns the skipped comments.
func (src *Source) skipSpaceCollect() []lexeme {
	var comments []lexeme
	for l, ok := src.peek(); ok && (l.isSpace() || l.isComment()); l, ok = src.peek() {
		if l.isComment() {
			comments = append(comments, l)
		}
		src.pos++
	}
	return comments
}

// optionalChar consumes the next token if it is the single character c.
func (src *Source) optionalChar(c string) bool {
	if l, ok := src.peek(); ok && l.isChar(c) {
		src.pos++
		return true
	}
	return false
}

// Errorf creates a parse error at the position of the next token.
func (src *Source) Errorf(format string, args ...interface{}) *syntax.ParseError {
	line, col := src.Pos()
	return syntax.Errorf(line, col, format, args...)
}

// ReadIdent consumes an identifier, if next.
func (src *Source) ReadIdent() (string, bool) {
	if l, ok := src.peek(); ok && l.isIdent() {
		src.pos++
		return l.value(), true
	}
	return "", false
}

// Rest returns the remaining, unconsumed content, and consumes it.
func (src *Source) Rest() syntax.RawContent {
	rest := src.lexems[src.pos:]
	src.pos = len(src.lexems)
	return rawOf(rest, src.Pos)
}

// --- Splitting into raw fragments ------------------------------------------

// until consumes tokens up to (not including) the first top-level token matching
// stop. Parens and brackets nest; braces nest if nestBraces is set. found is false
// if the source ended before.
func (src *Source) until(stop func(lexeme) bool, nestBraces bool) (part []lexeme, found bool) {
	depth := 0
	start := src.pos
	for ; src.pos < len(src.lexems); src.pos++ {
		l := src.lexems[src.pos]
		if depth == 0 && stop(l) {
			return src.lexems[start:src.pos], true
		}
		switch {
		case l.tok.Type == scanner.TokenFunction, l.isChar("("), l.isChar("["):
			depth++
		case l.isChar(")"), l.isChar("]"):
			if depth > 0 {
				depth--
			}
		case nestBraces && l.isChar("{"):
			depth++
		case nestBraces && l.isChar("}"):
			if depth > 0 {
				depth--
			}
		}
	}
	return src.lexems[start:], false
}

// block consumes a block up to the matching closing brace. The opening brace
// has to be consumed already. The closing brace is consumed as well.
func (src *Source) block() ([]lexeme, bool) {
	part, found := src.until(func(l lexeme) bool { return l.isChar("}") }, true)
	if found {
		src.pos++
	}
	return part, found
}

// split cuts a list of tokens at top-level separator characters.
func split(lexems []lexeme, sep string) [][]lexeme {
	var parts [][]lexeme
	depth, start := 0, 0
	for i, l := range lexems {
		switch {
		case l.tok.Type == scanner.TokenFunction, l.isChar("("), l.isChar("["), l.isChar("{"):
			depth++
		case l.isChar(")"), l.isChar("]"), l.isChar("}"):
			if depth > 0 {
				depth--
			}
		case depth == 0 && l.isChar(sep):
			parts = append(parts, lexems[start:i])
			start = i + 1
		}
	}
	return append(parts, lexems[start:])
}

// trim removes leading and trailing whitespace and comments. Leading comments
// are returned.
func trim(lexems []lexeme) ([]lexeme, []string) {
	var comments []string
	for len(lexems) > 0 && (lexems[0].isSpace() || lexems[0].isComment()) {
		if lexems[0].isComment() {
			comments = append(comments, lexems[0].value())
		}
		lexems = lexems[1:]
	}
	for n := len(lexems); n > 0 && (lexems[n-1].isSpace() || lexems[n-1].isComment()); n = len(lexems) {
		lexems = lexems[:n-1]
	}
	return lexems, comments
}

// rawOf glues tokens back into raw content. For an empty list of tokens, the
// position is taken from fallback.
func rawOf(lexems []lexeme, fallback func() (int, int)) syntax.RawContent {
	if len(lexems) == 0 {
		line, col := fallback()
		return syntax.RawContent{Line: line, Column: col}
	}
	var b strings.Builder
	for _, l := range lexems {
		b.WriteString(l.value())
	}
	return syntax.RawContent{Content: b.String(), Line: lexems[0].line, Column: lexems[0].col}
}

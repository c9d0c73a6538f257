package ast

import (
	"io"
	"strings"
)

// Write writes a stylesheet as compact CSS. Destroyed members are not part of
// their collections any more and are skipped naturally; rules without selectors
// or declarations, comments and silenced at-rules are not written.
func Write(w io.Writer, sheet *Stylesheet) error {
	var b strings.Builder
	for _, st := range sheet.Statements().All() {
		writeStatement(&b, st)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeStatement(b *strings.Builder, st Statement) {
	switch x := st.(type) {
	case *Rule:
		writeRule(b, x)
	case *AtRule:
		writeAtRule(b, x)
	case *OrphanedComment:
		// comments are dropped
	default:
		b.WriteString(st.String())
	}
}

func writeRule(b *strings.Builder, r *Rule) {
	if r.Selectors().IsEmpty() || r.Declarations().IsEmpty() {
		return
	}
	for i, s := range r.Selectors().All() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s.String())
	}
	b.WriteByte('{')
	for i, d := range r.Declarations().All() {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(d.String())
	}
	b.WriteByte('}')
}

func writeAtRule(b *strings.Builder, r *AtRule) {
	if r.IsSilent() {
		return
	}
	b.WriteByte('@')
	b.WriteString(r.Name())
	if expr, ok := r.Expression(); ok {
		b.WriteByte(' ')
		b.WriteString(expr.String())
	} else if raw, ok := r.RawExpression(); ok && strings.TrimSpace(raw.Content) != "" {
		b.WriteByte(' ')
		b.WriteString(strings.TrimSpace(raw.Content))
	}
	if block, ok := r.Block(); ok {
		b.WriteString(block.String())
	} else if raw, ok := r.RawBlock(); ok {
		b.WriteByte('{')
		b.WriteString(strings.TrimSpace(raw.Content))
		b.WriteByte('}')
	} else {
		b.WriteByte(';')
	}
}

package plugin

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/csstree/ast"
	"github.com/npillmayer/csstree/emitter"
	"github.com/npillmayer/csstree/syntax"
)

// EchoLogger echoes selectors, declarations and orphaned comments, together
// with their leading comments, as they pass through the emitter. Output goes
// to the tracer at level Info and, if set, to a writer.
type EchoLogger struct {
	out io.Writer
}

// NewEchoLogger creates an echo logger writing to the tracer only.
func NewEchoLogger() *EchoLogger {
	return &EchoLogger{}
}

// EchoTo sets an additional writer for the echo.
func (e *EchoLogger) EchoTo(w io.Writer) *EchoLogger {
	e.out = w
	return e
}

func (e *EchoLogger) Subscriptions() []emitter.Subscription {
	return []emitter.Subscription{
		emitter.Observe(func(s *ast.Selector) error {
			return e.echo(s, "selector", s.String())
		}),
		emitter.Observe(func(d *ast.Declaration) error {
			v := "<raw>"
			if d.Value() != nil {
				v = d.Value().String()
			} else if raw, ok := d.Raw(); ok {
				v = strings.TrimSpace(raw.Content)
			}
			return e.echo(d, "declaration", d.Property()+": "+v)
		}),
		emitter.Observe(func(c *ast.OrphanedComment) error {
			return e.echo(c, "comment", c.String())
		}),
	}
}

func (e *EchoLogger) echo(unit syntax.Node, what, text string) error {
	line, col := unit.Pos()
	for _, c := range unit.Comments() {
		tracer().Infof("%d:%d comment %s", line, col, c)
		if e.out != nil {
			if _, err := fmt.Fprintf(e.out, "%d:%d comment %s\n", line, col, c); err != nil {
				return err
			}
		}
	}
	tracer().Infof("%d:%d %s %s", line, col, what, text)
	if e.out != nil {
		_, err := fmt.Fprintf(e.out, "%d:%d %s %s\n", line, col, what, text)
		return err
	}
	return nil
}

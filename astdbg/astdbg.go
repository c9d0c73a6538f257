/*
Package astdbg implements helpers to debug a syntax tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package astdbg

import (
	"fmt"
	"strings"

	"github.com/npillmayer/csstree/ast"
	"github.com/npillmayer/csstree/syntax"
	"github.com/npillmayer/schuko/tracing"
	"github.com/xlab/treeprint"
)

// tracer traces with key 'csstree.ast'.
func tracer() tracing.Trace {
	return tracing.Select("csstree.ast")
}

// Children returns the child nodes of a node of the syntax tree. Raw units
// have no children.
func Children(n syntax.Node) []syntax.Node {
	var ch []syntax.Node
	switch x := n.(type) {
	case *ast.Stylesheet:
		ch = nodes(x.Statements().All())
	case *ast.Rule:
		ch = append(nodes(x.Selectors().All()), nodes(x.Declarations().All())...)
	case *ast.AtRule:
		if expr, ok := x.Expression(); ok {
			ch = append(ch, expr)
		}
		if block, ok := x.Block(); ok {
			ch = append(ch, block)
		}
	case *ast.ConditionalBlock:
		ch = nodes(x.Statements().All())
	case *ast.FontFaceBlock:
		ch = nodes(x.Descriptors().All())
	case *ast.Selector:
		ch = nodes(x.Parts().All())
	case *ast.Declaration:
		if v := x.Value(); v != nil {
			ch = append(ch, v)
		}
	case *ast.PropertyValue:
		ch = nodes(x.Terms().All())
	}
	return ch
}

func nodes[T syntax.Node](units []T) []syntax.Node {
	n := make([]syntax.Node, len(units))
	for i, u := range units {
		n[i] = u
	}
	return n
}

// Dump returns a printable tree of the nodes below and including root.
//
//     stylesheet
//     └── [1:1]  rule
//         ├── [1:1]  selector a.x
//         │   ├── [1:1]  type-selector a
//         …
func Dump(root syntax.Node) string {
	if syntax.IsNil(root) {
		return "<nil>"
	}
	t := treeprint.NewWithRoot(label(root))
	dump(t, root)
	return t.String()
}

func dump(t treeprint.Tree, n syntax.Node) {
	for _, ch := range Children(n) {
		line, col := ch.Pos()
		pos := fmt.Sprintf("%d:%d", line, col)
		if len(Children(ch)) == 0 {
			t.AddMetaNode(pos, label(ch))
			continue
		}
		dump(t.AddMetaBranch(pos, label(ch)), ch)
	}
}

func label(n syntax.Node) string {
	switch x := n.(type) {
	case *ast.Stylesheet, *ast.Rule, *ast.ConditionalBlock, *ast.FontFaceBlock, *ast.PropertyValue:
		return n.Kind().String()
	case *ast.Declaration:
		if x.Value() == nil {
			return n.Kind().String() + " " + x.String() + " (raw)"
		}
		return n.Kind().String() + " " + x.Property()
	case *ast.AtRule:
		if _, ok := x.Block(); !ok {
			return n.Kind().String() + " @" + x.Name() + " (raw)"
		}
		return n.Kind().String() + " @" + x.Name()
	case *ast.Selector:
		if !x.IsRefined() {
			return n.Kind().String() + " " + x.String() + " (raw)"
		}
	}
	if s, ok := n.(fmt.Stringer); ok {
		return n.Kind().String() + " " + strings.TrimSpace(s.String())
	}
	return n.Kind().String()
}

package astdbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"text/template"

	"github.com/npillmayer/csstree/ast"
	"github.com/npillmayer/csstree/syntax"
)

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	NodeTmpl *template.Template
	EdgeTmpl *template.Template
}

// ToGraphViz outputs a diagram for a syntax tree. The diagram is in
// GraphViz (DOT) format. Raw units are drawn as boxes, refined units as
// ellipses.
func ToGraphViz(sheet *ast.Stylesheet, w io.Writer) error {
	tmpl, err := template.New("ast").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("astnode").Funcs(
		template.FuncMap{
			"shortstring": shortText,
		}).Parse(astNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("astedge").Parse(astEdgeTmpl))
	if err = tmpl.Execute(w, gparams); err != nil {
		return err
	}
	if sheet != nil {
		if err = graphNodes(sheet, w, &gparams); err != nil {
			return err
		}
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

// Dotty is a helper for testing. Given a stylesheet and a testing.T, it will
// create a Graphiviz image of the syntax tree and write it to a file in the
// current folder, choosing a unique file name.
// The image is in SVG format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
//
func Dotty(sheet *ast.Stylesheet, t *testing.T) {
	tmpfile, err := os.CreateTemp(".", "ast.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing syntax tree digraph to %s\n", tmpfile.Name())
	if err := ToGraphViz(sheet, tmpfile); err != nil {
		t.Error(err)
		return
	}
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	t.Logf("writing syntax tree image to %s.svg\n", tmpfile.Name())
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

type node struct {
	N    syntax.Node
	Name string
	Raw  bool
}

type edge struct {
	N1, N2 node
}

func graphNodes(n syntax.Node, w io.Writer, gparams *graphParamsType) error {
	parent := nodeOf(n)
	if err := gparams.NodeTmpl.Execute(w, parent); err != nil {
		return err
	}
	for _, ch := range Children(n) {
		if err := graphNodes(ch, w, gparams); err != nil {
			return err
		}
		if err := gparams.EdgeTmpl.Execute(w, edge{parent, nodeOf(ch)}); err != nil {
			return err
		}
	}
	return nil
}

func nodeOf(n syntax.Node) node {
	raw := false
	if r, ok := n.(syntax.Refinable); ok {
		raw = r.RefineState() == syntax.RefineRaw
	}
	return node{N: n, Name: fmt.Sprintf("node%05d", n.ID()), Raw: raw}
}

func shortText(n node) string {
	s := label(n.N)
	if len(s) > 24 {
		s = s[:24] + "..."
	}
	s = strings.Replace(s, "\n", `\n`, -1)
	s = strings.Replace(s, "\t", `\t`, -1)
	return fmt.Sprintf("%q", s)
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const astNodeTmpl = `{{ if .Raw }}
{{ .Name }}	[ label={{ shortstring . }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else }}
{{ .Name }}	[ label={{ shortstring . }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const astEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1] ;
`

// Package format canonicalizes .frr source: it parses the input and
// re-serializes the forest with normalized indentation and spacing. The
// output is stable under repeated formatting.
package format

import (
	"strings"

	"github.com/ferrum-web/ferrum/pkg/ast"
	"github.com/ferrum-web/ferrum/pkg/parser"
)

// Error wraps a failure encountered while formatting, usually a syntax
// error from the internal re-parse.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return "format: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Formatter serializes forests with a configurable indentation unit.
type Formatter struct {
	IndentSize int
	IndentChar rune
}

// Default returns a formatter using four spaces per nesting level.
func Default() *Formatter {
	return &Formatter{IndentSize: 4, IndentChar: ' '}
}

// New returns a formatter with the given indentation unit.
func New(size int, char rune) *Formatter {
	return &Formatter{IndentSize: size, IndentChar: char}
}

// Format parses source and re-serializes it in canonical form.
func (f *Formatter) Format(source string) (string, error) {
	nodes, err := parser.Parse(source)
	if err != nil {
		return "", &Error{Err: err}
	}

	var out strings.Builder
	for _, node := range nodes {
		f.formatNode(&out, node, 0)
	}
	return out.String(), nil
}

// FormatNodes serializes an already-parsed forest.
func (f *Formatter) FormatNodes(nodes []ast.Node) string {
	var out strings.Builder
	for _, node := range nodes {
		f.formatNode(&out, node, 0)
	}
	return out.String()
}

func (f *Formatter) formatNode(out *strings.Builder, node ast.Node, depth int) {
	indent := f.indent(depth)

	switch n := node.(type) {
	case *ast.Element:
		out.WriteString(indent)
		out.WriteString(n.Tag)
		if id, ok := n.Attributes.Get("id"); ok {
			out.WriteString("#")
			out.WriteString(id)
		}
		if classes, ok := n.Attributes.Get("class"); ok {
			for _, class := range strings.Fields(classes) {
				out.WriteString(".")
				out.WriteString(class)
			}
		}
		for _, key := range n.Attributes.Keys() {
			if key == "id" || key == "class" {
				continue
			}
			value, _ := n.Attributes.Get(key)
			out.WriteString(" ")
			out.WriteString(key)
			out.WriteString(`="`)
			out.WriteString(value)
			out.WriteString(`"`)
		}
		out.WriteString("\n")
		for _, child := range n.Children {
			f.formatNode(out, child, depth+1)
		}

	case *ast.Text:
		out.WriteString(indent)
		if needsQuoting(n.Content) {
			out.WriteString(`"`)
			out.WriteString(n.Content)
			out.WriteString(`"`)
		} else {
			out.WriteString(n.Content)
		}
		out.WriteString("\n")

	case *ast.Component:
		out.WriteString(indent)
		out.WriteString(n.Name)
		out.WriteString("(")
		pairs := make([]string, 0, n.Attributes.Len())
		for _, key := range n.Attributes.Keys() {
			value, _ := n.Attributes.Get(key)
			pairs = append(pairs, key+": "+value)
		}
		out.WriteString(strings.Join(pairs, ", "))
		out.WriteString(")\n")
		for _, child := range n.Children {
			f.formatNode(out, child, depth+1)
		}

	case *ast.StateBinding:
		out.WriteString(indent)
		out.WriteString(n.Signal)
		if n.Member != "" {
			out.WriteString(".")
			out.WriteString(n.Member)
		}
		out.WriteString("\n")

	case *ast.Import:
		out.WriteString(indent)
		out.WriteString("import { ")
		out.WriteString(strings.Join(n.Names, ", "))
		out.WriteString(` } from "`)
		out.WriteString(n.Source)
		out.WriteString("\"\n")
	}
}

// FormatExpression renders a structured expression with conventional
// infix and call syntax.
func FormatExpression(expr ast.Expression) string {
	return expr.String()
}

func (f *Formatter) indent(depth int) string {
	return strings.Repeat(string(f.IndentChar), depth*f.IndentSize)
}

// needsQuoting reports whether text must be quoted to parse back as a Text
// node. Spaces force quoting, and so does anything the classifier would
// read as another node kind (an element tag, a signal binding, an import,
// or bracket/shorthand syntax).
func needsQuoting(text string) bool {
	if text == "" || strings.ContainsAny(text, " <#.(\"") {
		return true
	}
	nodes, err := parser.Parse(text)
	if err != nil || len(nodes) != 1 {
		return true
	}
	t, ok := nodes[0].(*ast.Text)
	return !ok || t.Content != text
}

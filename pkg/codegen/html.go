// Package codegen emits output documents from a parsed forest. Two
// independent back ends consume the same tree: a static HTML emitter and a
// view-code emitter. Both are total over anything the parser can produce.
package codegen

import (
	_ "embed"
	"strings"

	"github.com/ferrum-web/ferrum/pkg/ast"
)

// stylesheet is the fixed base stylesheet inlined into every generated
// document.
//
//go:embed ferrum.css
var stylesheet string

// ToHTML renders the forest as a complete static HTML document: doctype,
// head with the embedded stylesheet, and a root container in the body.
// Text content is emitted raw; escaping is a documented non-goal.
func ToHTML(nodes []ast.Node) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>")
	b.WriteString("<html lang='en'>")
	b.WriteString("<head>")
	b.WriteString("<meta charset='UTF-8'>")
	b.WriteString("<meta name='viewport' content='width=device-width, initial-scale=1.0'>")
	b.WriteString("<title>Ferrum App</title>")
	b.WriteString("<style>")
	b.WriteString(stylesheet)
	b.WriteString("</style>")
	b.WriteString("</head>")
	b.WriteString("<body>")
	b.WriteString("<div id='ferrum-app'>")
	for _, node := range nodes {
		writeNodeHTML(&b, node)
	}
	b.WriteString("</div>")
	b.WriteString("</body>")
	b.WriteString("</html>")
	return b.String()
}

// BodyHTML renders only the forest's markup, without the document shell.
func BodyHTML(nodes []ast.Node) string {
	var b strings.Builder
	for _, node := range nodes {
		writeNodeHTML(&b, node)
	}
	return b.String()
}

func writeNodeHTML(b *strings.Builder, node ast.Node) {
	switch n := node.(type) {
	case *ast.Element:
		b.WriteString("<")
		b.WriteString(n.Tag)
		for _, key := range n.Attributes.Keys() {
			value, _ := n.Attributes.Get(key)
			b.WriteString(" ")
			b.WriteString(key)
			b.WriteString("='")
			b.WriteString(value)
			b.WriteString("'")
		}
		b.WriteString(">")
		if ast.SelfClosing(n.Tag) {
			return
		}
		for _, child := range n.Children {
			writeNodeHTML(b, child)
		}
		b.WriteString("</")
		b.WriteString(n.Tag)
		b.WriteString(">")

	case *ast.Text:
		b.WriteString(n.Content)

	case *ast.Component:
		// Components are never resolved here; they render as a marker
		// wrapper carrying their attributes as data attributes.
		b.WriteString("<div data-component='")
		b.WriteString(n.Name)
		b.WriteString("'")
		for _, key := range n.Attributes.Keys() {
			value, _ := n.Attributes.Get(key)
			b.WriteString(" data-")
			b.WriteString(key)
			b.WriteString("='")
			b.WriteString(value)
			b.WriteString("'")
		}
		b.WriteString(">")
		for _, child := range n.Children {
			writeNodeHTML(b, child)
		}
		b.WriteString("</div>")

	case *ast.StateBinding, *ast.Import:
		// Nothing to render in static HTML.
	}
}

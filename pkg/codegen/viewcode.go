package codegen

import (
	"fmt"
	"strings"

	"github.com/ferrum-web/ferrum/pkg/ast"
)

// ToViewCode renders the forest as Go view code in the framework's builder
// style. It mirrors the HTML emitter structurally; the difference is that
// state bindings become reactive read expressions instead of disappearing.
func ToViewCode(nodes []ast.Node) string {
	var b strings.Builder
	b.WriteString("// Code generated from .frr source. DO NOT EDIT.\n\n")
	for _, node := range nodes {
		code := viewNode(node, 0)
		if code == "" {
			continue
		}
		b.WriteString(code)
		b.WriteString("\n")
	}
	return b.String()
}

func viewNode(node ast.Node, depth int) string {
	switch n := node.(type) {
	case *ast.Element:
		return viewElement(n, depth)
	case *ast.Text:
		return fmt.Sprintf("Text(%q)", n.Content)
	case *ast.Component:
		return viewComponent(n, depth)
	case *ast.StateBinding:
		return "Text(" + readExpression(n).String() + ")"
	case *ast.Import:
		return ""
	}
	return ""
}

func viewElement(n *ast.Element, depth int) string {
	var b strings.Builder
	b.WriteString("builder.")
	b.WriteString(capitalize(n.Tag))
	b.WriteString("()")

	for _, key := range n.Attributes.Keys() {
		value, _ := n.Attributes.Get(key)
		switch key {
		case "id":
			fmt.Fprintf(&b, ".ID(%q)", value)
		case "class":
			fmt.Fprintf(&b, ".Class(%q)", value)
		case "href":
			fmt.Fprintf(&b, ".Href(%q)", value)
		case "src":
			fmt.Fprintf(&b, ".Src(%q)", value)
		case "type":
			fmt.Fprintf(&b, ".Type(%q)", value)
		case "value":
			fmt.Fprintf(&b, ".Value(%q)", value)
		default:
			fmt.Fprintf(&b, ".Attr(%q, %q)", key, value)
		}
	}

	if len(n.Children) > 0 {
		b.WriteString(".Children(\n")
		writeViewChildren(&b, n.Children, depth+1)
		b.WriteString(tabs(depth))
		b.WriteString(")")
	}

	b.WriteString(".Build()")
	return b.String()
}

func viewComponent(n *ast.Component, depth int) string {
	var b strings.Builder
	b.WriteString(n.Name)
	b.WriteString("(")

	if n.Attributes.Len() > 0 {
		b.WriteString(n.Name)
		b.WriteString("Props{")
		for i, key := range n.Attributes.Keys() {
			value, _ := n.Attributes.Get(key)
			if i > 0 {
				b.WriteString(", ")
			}
			// Component values are raw expressions from the source,
			// passed through untouched.
			b.WriteString(capitalize(key))
			b.WriteString(": ")
			b.WriteString(value)
		}
		b.WriteString("}")
	}

	if len(n.Children) > 0 {
		if n.Attributes.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString("\n")
		writeViewChildren(&b, n.Children, depth+1)
		b.WriteString(tabs(depth))
	}

	b.WriteString(")")
	return b.String()
}

func writeViewChildren(b *strings.Builder, children []ast.Node, depth int) {
	for _, child := range children {
		code := viewNode(child, depth)
		if code == "" {
			continue
		}
		b.WriteString(tabs(depth))
		b.WriteString(code)
		b.WriteString(",\n")
	}
}

// readExpression builds the reactive read for a binding: read(count) or
// read(count.value).
func readExpression(n *ast.StateBinding) ast.Expression {
	var arg ast.Expression
	if n.Member == "" {
		arg = &ast.SignalAccess{Signal: n.Signal}
	} else {
		arg = &ast.PropertyAccess{Signal: n.Signal, Property: n.Member}
	}
	return &ast.FunctionCall{Function: "read", Args: []ast.Expression{arg}}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func tabs(depth int) string {
	return strings.Repeat("\t", depth)
}

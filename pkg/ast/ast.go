// Package ast defines the node types produced by the .frr parser and
// consumed by the formatter and the code generators. Nodes are pure data:
// consumers walk them, none mutates a forest it did not build.
package ast

// Node is the closed set of AST node kinds. A parse result is a forest:
// an ordered slice of top-level nodes.
type Node interface {
	node()
}

// Element is an HTML-like element such as `div#app.container`.
type Element struct {
	Tag        string
	Attributes *Attributes
	Children   []Node
}

// Text is a leaf holding raw text content. It never has children.
type Text struct {
	Content string
}

// Component is a call to a user-defined component, `Button(onclick: inc)`.
// Components may always carry children, even when syntactically empty.
type Component struct {
	Name       string
	Attributes *Attributes
	Children   []Node
}

// StateBinding is a leaf referencing a reactive signal, `count` or
// `count.value`. Member is empty for a plain signal access.
type StateBinding struct {
	Signal string
	Member string
}

// Import is a leaf module-import declaration,
// `import { create_signal } from "ferrum:state"`.
type Import struct {
	Names  []string
	Source string
}

func (*Element) node()      {}
func (*Text) node()         {}
func (*Component) node()    {}
func (*StateBinding) node() {}
func (*Import) node()       {}

// selfClosingTags never accept children, regardless of indentation in the
// source beneath them.
var selfClosingTags = map[string]bool{
	"input": true,
	"img":   true,
	"br":    true,
	"hr":    true,
	"meta":  true,
	"link":  true,
}

// SelfClosing reports whether tag is one of the void tags that never
// accept children.
func SelfClosing(tag string) bool {
	return selfClosingTags[tag]
}

// CanHaveChildren reports whether n may carry child nodes: components
// always, elements unless self-closing, leaves never.
func CanHaveChildren(n Node) bool {
	switch n := n.(type) {
	case *Element:
		return !SelfClosing(n.Tag)
	case *Component:
		return true
	default:
		return false
	}
}

// AppendChild attaches child to n. It is a no-op for leaf kinds.
func AppendChild(n, child Node) {
	switch n := n.(type) {
	case *Element:
		n.Children = append(n.Children, child)
	case *Component:
		n.Children = append(n.Children, child)
	}
}

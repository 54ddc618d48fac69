package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/ferrum-web/ferrum/pkg/ast"
)

func TestParse_NestedElements(t *testing.T) {
	input := `
div#app.container
    h1.title "Hello World"
    p.text-gray-600 "Welcome"
`

	nodes, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(nodes))
	}

	root, ok := nodes[0].(*ast.Element)
	if !ok {
		t.Fatalf("expected *ast.Element, got %T", nodes[0])
	}
	if root.Tag != "div" {
		t.Errorf("root tag = %q, want div", root.Tag)
	}
	if id, _ := root.Attributes.Get("id"); id != "app" {
		t.Errorf("root id = %q, want app", id)
	}
	if class, _ := root.Attributes.Get("class"); class != "container" {
		t.Errorf("root class = %q, want container", class)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}

	h1 := root.Children[0].(*ast.Element)
	if h1.Tag != "h1" {
		t.Errorf("first child tag = %q, want h1", h1.Tag)
	}
	if len(h1.Children) != 1 {
		t.Fatalf("h1 should have 1 text child, got %d", len(h1.Children))
	}
	if text := h1.Children[0].(*ast.Text); text.Content != "Hello World" {
		t.Errorf("h1 text = %q, want Hello World", text.Content)
	}

	p := root.Children[1].(*ast.Element)
	if p.Tag != "p" {
		t.Errorf("second child tag = %q, want p", p.Tag)
	}
	if text := p.Children[0].(*ast.Text); text.Content != "Welcome" {
		t.Errorf("p text = %q, want Welcome", text.Content)
	}
}

func TestParse_ShorthandEquivalence(t *testing.T) {
	short, err := Parse("div#app.container")
	if err != nil {
		t.Fatalf("Parse(shorthand) failed: %v", err)
	}
	explicit, err := Parse(`div id="app" class="container"`)
	if err != nil {
		t.Fatalf("Parse(explicit) failed: %v", err)
	}

	a := short[0].(*ast.Element)
	b := explicit[0].(*ast.Element)
	if a.Tag != b.Tag {
		t.Errorf("tags differ: %q vs %q", a.Tag, b.Tag)
	}
	for _, key := range []string{"id", "class"} {
		av, _ := a.Attributes.Get(key)
		bv, _ := b.Attributes.Get(key)
		if av != bv {
			t.Errorf("%s differs: %q vs %q", key, av, bv)
		}
	}
}

func TestParse_ComponentCall(t *testing.T) {
	input := `
Button(onclick: set_count(-1))
    "-"
`

	nodes, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}

	comp, ok := nodes[0].(*ast.Component)
	if !ok {
		t.Fatalf("expected *ast.Component, got %T", nodes[0])
	}
	if comp.Name != "Button" {
		t.Errorf("name = %q, want Button", comp.Name)
	}
	if onclick, _ := comp.Attributes.Get("onclick"); onclick != "set_count(-1)" {
		t.Errorf("onclick = %q, want set_count(-1)", onclick)
	}
	if len(comp.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(comp.Children))
	}
	if text := comp.Children[0].(*ast.Text); text.Content != "-" {
		t.Errorf("child text = %q, want -", text.Content)
	}
}

func TestParse_StateBindings(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		signal string
		member string
	}{
		{name: "signal access", input: "count", signal: "count", member: ""},
		{name: "member access", input: "count.value", signal: "count", member: "value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse() failed: %v", err)
			}
			if len(nodes) != 1 {
				t.Fatalf("expected 1 node, got %d", len(nodes))
			}
			binding, ok := nodes[0].(*ast.StateBinding)
			if !ok {
				t.Fatalf("expected *ast.StateBinding, got %T", nodes[0])
			}
			if binding.Signal != tt.signal || binding.Member != tt.member {
				t.Errorf("binding = {%q, %q}, want {%q, %q}",
					binding.Signal, binding.Member, tt.signal, tt.member)
			}
		})
	}
}

func TestParse_Import(t *testing.T) {
	nodes, err := Parse(`import { create_signal } from "ferrum:state"`)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	imp, ok := nodes[0].(*ast.Import)
	if !ok {
		t.Fatalf("expected *ast.Import, got %T", nodes[0])
	}
	if len(imp.Names) != 1 || imp.Names[0] != "create_signal" {
		t.Errorf("names = %v, want [create_signal]", imp.Names)
	}
	if imp.Source != "ferrum:state" {
		t.Errorf("source = %q, want ferrum:state", imp.Source)
	}
}

func TestParse_SelfClosingTagsNeverGetChildren(t *testing.T) {
	input := `
div
    input type="text"
        p "should not nest under input"
`

	nodes, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	div := nodes[0].(*ast.Element)
	if len(div.Children) != 2 {
		t.Fatalf("div should have 2 children (input and p), got %d", len(div.Children))
	}

	in := div.Children[0].(*ast.Element)
	if in.Tag != "input" {
		t.Errorf("first child tag = %q, want input", in.Tag)
	}
	if len(in.Children) != 0 {
		t.Errorf("input must not have children, got %d", len(in.Children))
	}
	if p := div.Children[1].(*ast.Element); p.Tag != "p" {
		t.Errorf("second child tag = %q, want p", p.Tag)
	}
}

func TestParse_BracketedElement(t *testing.T) {
	nodes, err := Parse(`<div id="main" class="wrap">`)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	el := nodes[0].(*ast.Element)
	if el.Tag != "div" {
		t.Errorf("tag = %q, want div", el.Tag)
	}
	if id, _ := el.Attributes.Get("id"); id != "main" {
		t.Errorf("id = %q, want main", id)
	}
	if class, _ := el.Attributes.Get("class"); class != "wrap" {
		t.Errorf("class = %q, want wrap", class)
	}
}

func TestParse_DropsMalformedAttributePairs(t *testing.T) {
	nodes, err := Parse(`div data-x="ok" broken=nope`)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	el := nodes[0].(*ast.Element)
	if v, _ := el.Attributes.Get("data-x"); v != "ok" {
		t.Errorf("data-x = %q, want ok", v)
	}
	if _, ok := el.Attributes.Get("broken"); ok {
		t.Error("unquoted attribute should be dropped")
	}
}

func TestParse_SkipsCommentsAndBlankLines(t *testing.T) {
	input := `
// header comment
div

    // nested comment
    p "hi"
`

	nodes, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}
	div := nodes[0].(*ast.Element)
	if len(div.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(div.Children))
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "unterminated component call", input: "Button(onclick: inc", want: "unterminated component call"},
		{name: "malformed bracketed element", input: "<div id=\"x\"", want: "malformed bracketed element"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := Parse(tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if nodes != nil {
				t.Error("no partial forest should be returned on error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.want)
			}
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("expected *SyntaxError, got %T", err)
			}
			if syntaxErr.Text != tt.input {
				t.Errorf("error text = %q, want %q", syntaxErr.Text, tt.input)
			}
		})
	}
}

func TestParse_ArbitraryIndentWidths(t *testing.T) {
	// Indentation narrower or wider than 2 still nests by relative depth.
	input := "div\n p\n  strong bold\n span inline"

	nodes, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	div := nodes[0].(*ast.Element)
	if len(div.Children) != 2 {
		t.Fatalf("div children = %d, want 2 (p and span)", len(div.Children))
	}
	p := div.Children[0].(*ast.Element)
	if len(p.Children) != 1 {
		t.Fatalf("p children = %d, want 1 (strong)", len(p.Children))
	}
}

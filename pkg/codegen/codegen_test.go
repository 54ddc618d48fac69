package codegen

import (
	"strings"
	"testing"

	"github.com/ferrum-web/ferrum/pkg/ast"
	"github.com/ferrum-web/ferrum/pkg/parser"
)

func mustParse(t *testing.T, source string) []ast.Node {
	t.Helper()
	nodes, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	return nodes
}

func TestToHTML_Document(t *testing.T) {
	nodes := mustParse(t, `
div#app.container
    h1.title "Hello World"
    p.text-gray-600 "Welcome"
`)

	html := ToHTML(nodes)

	if !strings.HasPrefix(html, "<!DOCTYPE html>") {
		t.Error("document must start with <!DOCTYPE html>")
	}
	for _, want := range []string{
		"<div id='app' class='container'>",
		"<h1 class='title'>Hello World</h1>",
		"<p class='text-gray-600'>Welcome</p>",
		"<style>",
		"</html>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestToHTML_ComponentWrapper(t *testing.T) {
	nodes := mustParse(t, `
Button(onclick: set_count(-1))
    "-"
`)

	html := ToHTML(nodes)

	if !strings.Contains(html, "<div data-component='Button' data-onclick='set_count(-1)'>-</div>") {
		t.Errorf("component wrapper not rendered, got:\n%s", html)
	}
}

func TestToHTML_SkipsBindingsAndImports(t *testing.T) {
	nodes := mustParse(t, `
import { create_signal } from "ferrum:state"
div
    count.value
    p "visible"
`)

	html := BodyHTML(nodes)

	if strings.Contains(html, "count") || strings.Contains(html, "import") {
		t.Errorf("bindings and imports must not appear in HTML, got:\n%s", html)
	}
	if !strings.Contains(html, "<p>visible</p>") {
		t.Errorf("element content missing, got:\n%s", html)
	}
}

func TestToHTML_BalancedTags(t *testing.T) {
	nodes := mustParse(t, `
div
    span "a"
    p "hi"
`)

	html := BodyHTML(nodes)

	for _, tag := range []string{"div", "span", "p"} {
		open := strings.Count(html, "<"+tag)
		closed := strings.Count(html, "</"+tag+">")
		if open != closed {
			t.Errorf("tag %q unbalanced: %d open, %d closed", tag, open, closed)
		}
	}
}

func TestToHTML_VoidTagsHaveNoClosingTag(t *testing.T) {
	nodes := mustParse(t, `
div
    input type="text"
    img src="x.png"
    br
`)

	html := BodyHTML(nodes)

	for _, want := range []string{"<input type='text'>", "<img src='x.png'>", "<br>"} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q:\n%s", want, html)
		}
	}
	for _, tag := range []string{"input", "img", "br"} {
		if strings.Contains(html, "</"+tag+">") {
			t.Errorf("void tag %q must not be closed:\n%s", tag, html)
		}
	}
}

func TestToViewCode_BuilderChain(t *testing.T) {
	nodes := mustParse(t, `
div#app.container
    h1.title "Hello World"
`)

	code := ToViewCode(nodes)

	for _, want := range []string{
		"builder.Div()",
		`.ID("app")`,
		`.Class("container")`,
		"builder.H1()",
		`Text("Hello World")`,
		".Build()",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("view code missing %q, got:\n%s", want, code)
		}
	}
}

func TestToViewCode_StateBindingReads(t *testing.T) {
	nodes := mustParse(t, `
div
    count
    count.value
`)

	code := ToViewCode(nodes)

	if !strings.Contains(code, "Text(read(count))") {
		t.Errorf("signal read missing, got:\n%s", code)
	}
	if !strings.Contains(code, "Text(read(count.value))") {
		t.Errorf("member read missing, got:\n%s", code)
	}
}

func TestToViewCode_Component(t *testing.T) {
	nodes := mustParse(t, `
Button(onclick: set_count(-1), variant: primary)
    "-"
`)

	code := ToViewCode(nodes)

	if !strings.Contains(code, "Button(ButtonProps{") {
		t.Errorf("component invocation missing, got:\n%s", code)
	}
	if !strings.Contains(code, "Onclick: set_count(-1)") {
		t.Errorf("raw prop value missing, got:\n%s", code)
	}
	if !strings.Contains(code, `Text("-")`) {
		t.Errorf("component child missing, got:\n%s", code)
	}
}

func TestGenerators_TotalOverParserOutput(t *testing.T) {
	// Every forest the parser can produce must generate without panicking
	// and yield a well-formed document.
	sources := []string{
		"",
		"div",
		"count",
		`"just text"`,
		"import { a, b } from \"mod\"",
		"Button()",
		"div\n    div\n        div\n            p \"deep\"",
		"input\n    p \"orphaned\"",
	}

	for _, source := range sources {
		nodes := mustParse(t, source)
		html := ToHTML(nodes)
		if !strings.HasPrefix(html, "<!DOCTYPE html>") || !strings.HasSuffix(html, "</html>") {
			t.Errorf("malformed document for %q:\n%s", source, html)
		}
		_ = ToViewCode(nodes)
	}
}

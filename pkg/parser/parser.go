// Package parser turns .frr source text into an ast forest. The language
// is line-oriented: every non-blank, non-comment line produces exactly one
// node, and nesting is reconstructed from leading indentation.
package parser

import (
	"fmt"
	"strings"

	"github.com/ferrum-web/ferrum/pkg/ast"
)

// SyntaxError is returned for a line the parser cannot accept. It carries
// the offending raw line so callers can show it verbatim.
type SyntaxError struct {
	Line    int
	Text    string
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Message, e.Text)
}

// frame is one entry of the open-node stack. Recording each node's actual
// indent width makes nesting robust to any indentation step while keeping
// 2-space files byte-compatible.
type frame struct {
	node   ast.Node
	indent int
}

// Parse parses source into an ordered forest of top-level nodes. On error
// no partial forest is returned.
func Parse(source string) ([]ast.Node, error) {
	var nodes []ast.Node
	var stack []frame

	for i, raw := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}

		indent := indentWidth(raw)

		node, err := parseLine(i+1, trimmed)
		if err != nil {
			return nil, err
		}

		// Close open nodes at or beyond this line's indent.
		for len(stack) > 0 && indent <= stack[len(stack)-1].indent {
			stack = stack[:len(stack)-1]
		}

		if len(stack) > 0 {
			ast.AppendChild(stack[len(stack)-1].node, node)
		} else {
			nodes = append(nodes, node)
		}

		if ast.CanHaveChildren(node) {
			stack = append(stack, frame{node: node, indent: indent})
		}
	}

	return nodes, nil
}

func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// parseLine classifies one trimmed line and parses it into a single node.
func parseLine(lineNo int, line string) (ast.Node, error) {
	if strings.HasPrefix(line, "import ") || line == "import" {
		return parseImport(lineNo, line)
	}

	if name, ok := componentCallName(line); ok {
		return parseComponentCall(lineNo, line, name)
	}

	if strings.Contains(line, "<") {
		return parseBracketedElement(lineNo, line)
	}

	if strings.HasPrefix(line, `"`) {
		return &ast.Text{Content: strings.Trim(line, `"`)}, nil
	}

	if !strings.ContainsAny(line, " #.(") {
		// A lone word: a known tag is an element, an identifier reads a
		// signal, anything else is plain text.
		switch {
		case htmlTags[line]:
			return &ast.Element{Tag: line, Attributes: ast.NewAttributes()}, nil
		case isIdentifier(line):
			return &ast.StateBinding{Signal: line}, nil
		default:
			return &ast.Text{Content: line}, nil
		}
	}

	// `signal.member` reads a signal member unless the head is a tag, in
	// which case the dots are shorthand classes.
	if !strings.ContainsAny(line, " #(") && strings.Contains(line, ".") {
		head, member, _ := strings.Cut(line, ".")
		if isIdentifier(head) && !htmlTags[head] && member != "" && isMemberPath(member) {
			return &ast.StateBinding{Signal: head, Member: member}, nil
		}
	}

	return parseShorthand(line), nil
}

// componentCallName reports whether line opens a component call: an
// identifier immediately followed by '('.
func componentCallName(line string) (string, bool) {
	open := strings.IndexByte(line, '(')
	if open <= 0 {
		return "", false
	}
	name := line[:open]
	if !isIdentifier(name) {
		return "", false
	}
	return name, true
}

// parseComponentCall parses `Name(key: value, key: value)`. Values are kept
// as raw strings and never validated.
func parseComponentCall(lineNo int, line, name string) (ast.Node, error) {
	if !strings.HasSuffix(line, ")") {
		return nil, &SyntaxError{Line: lineNo, Text: line, Message: "unterminated component call"}
	}

	attrs := ast.NewAttributes()
	inner := line[len(name)+1 : len(line)-1]
	for _, pair := range strings.Split(inner, ",") {
		pair = strings.TrimSpace(pair)
		if key, value, ok := strings.Cut(pair, ":"); ok {
			attrs.Set(strings.TrimSpace(key), strings.TrimSpace(value))
		}
	}

	return &ast.Component{Name: name, Attributes: attrs}, nil
}

// parseBracketedElement parses `<tag key="value">`. Attribute pairs whose
// value is not quote-delimited are silently dropped.
func parseBracketedElement(lineNo int, line string) (ast.Node, error) {
	start := strings.IndexByte(line, '<')
	end := strings.IndexByte(line, '>')
	if start < 0 || end < start {
		return nil, &SyntaxError{Line: lineNo, Text: line, Message: "malformed bracketed element"}
	}

	content := line[start+1 : end]
	tag, rest, _ := strings.Cut(content, " ")

	attrs := ast.NewAttributes()
	for _, part := range strings.Fields(rest) {
		if key, value, ok := cutQuotedAttr(part); ok {
			attrs.Set(key, value)
		}
	}

	return &ast.Element{Tag: tag, Attributes: attrs}, nil
}

// parseShorthand parses the default form `tag#id.class1.class2 .more
// key="value" "inline text"`.
func parseShorthand(line string) ast.Node {
	first, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	tag, id, classes := splitHead(first)

	attrs := ast.NewAttributes()
	if id != "" {
		attrs.Set("id", id)
	}

	var inlineText string
	hasText := false

	for rest != "" {
		if strings.HasPrefix(rest, `"`) {
			// Trailing quoted text runs to the final quote on the line.
			inlineText = strings.Trim(rest, `"`)
			hasText = true
			break
		}

		var token string
		token, rest, _ = strings.Cut(rest, " ")
		rest = strings.TrimSpace(rest)

		switch {
		case strings.HasPrefix(token, "."):
			classes = append(classes, token[1:])
		case strings.Contains(token, "="):
			if key, value, ok := cutQuotedAttr(token); ok {
				attrs.Set(key, value)
			}
		}
	}

	if len(classes) > 0 {
		attrs.Set("class", strings.Join(classes, " "))
	}

	el := &ast.Element{Tag: tag, Attributes: attrs}
	if hasText && !ast.SelfClosing(tag) {
		el.Children = append(el.Children, &ast.Text{Content: inlineText})
	}
	return el
}

// splitHead splits the first shorthand token on `#` (id) and `.` (classes):
// `div#app.container` -> ("div", "app", ["container"]).
func splitHead(head string) (tag, id string, classes []string) {
	tag, rest, hasID := strings.Cut(head, "#")
	if !hasID {
		parts := strings.Split(tag, ".")
		tag = parts[0]
		classes = appendNonEmpty(classes, parts[1:])
		return tag, "", classes
	}

	id, classPart, hasClass := strings.Cut(rest, ".")
	if hasClass {
		classes = appendNonEmpty(classes, strings.Split(classPart, "."))
	}
	return tag, id, classes
}

func appendNonEmpty(dst []string, parts []string) []string {
	for _, p := range parts {
		if p != "" {
			dst = append(dst, p)
		}
	}
	return dst
}

// parseImport parses `import { a, b } from "source"`.
func parseImport(lineNo int, line string) (ast.Node, error) {
	open := strings.IndexByte(line, '{')
	close := strings.IndexByte(line, '}')
	if open < 0 || close < open {
		return nil, &SyntaxError{Line: lineNo, Text: line, Message: "malformed import declaration"}
	}

	var names []string
	for _, name := range strings.Split(line[open+1:close], ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	rest := line[close+1:]
	first := strings.IndexByte(rest, '"')
	last := strings.LastIndexByte(rest, '"')
	if first < 0 || last <= first {
		return nil, &SyntaxError{Line: lineNo, Text: line, Message: "import missing source string"}
	}

	return &ast.Import{Names: names, Source: rest[first+1 : last]}, nil
}

// cutQuotedAttr splits `key="value"`, requiring the value to be
// quote-delimited.
func cutQuotedAttr(s string) (key, value string, ok bool) {
	key, value, found := strings.Cut(s, "=")
	if !found || len(value) < 2 {
		return "", "", false
	}
	if !strings.HasPrefix(value, `"`) || !strings.HasSuffix(value, `"`) {
		return "", "", false
	}
	return key, value[1 : len(value)-1], true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func isMemberPath(s string) bool {
	for _, seg := range strings.Split(s, ".") {
		if !isIdentifier(seg) {
			return false
		}
	}
	return true
}

// htmlTags is the set of element names the shorthand classifier recognizes.
// A lone word outside this set is treated as a state binding or text, not
// an element.
var htmlTags = map[string]bool{
	"html": true, "head": true, "body": true, "title": true,
	"div": true, "span": true, "p": true, "a": true,
	"ul": true, "ol": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"button": true, "form": true, "label": true, "textarea": true,
	"select": true, "option": true,
	"header": true, "footer": true, "nav": true, "main": true,
	"section": true, "article": true, "aside": true,
	"table": true, "thead": true, "tbody": true, "tr": true, "td": true, "th": true,
	"strong": true, "em": true, "small": true, "code": true, "pre": true,
	"input": true, "img": true, "br": true, "hr": true, "meta": true, "link": true,
}

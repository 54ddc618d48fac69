package styling

import (
	"sort"
	"strings"

	"github.com/ferrum-web/ferrum/pkg/ast"
)

// CollectClasses walks a parsed forest and returns every class name found
// in class attributes, deduplicated and sorted.
func CollectClasses(nodes []ast.Node) []string {
	seen := make(map[string]bool)
	for _, n := range nodes {
		collectNodeClasses(n, seen)
	}

	classes := make([]string, 0, len(seen))
	for class := range seen {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}

func collectNodeClasses(n ast.Node, seen map[string]bool) {
	var attrs *ast.Attributes
	var children []ast.Node

	switch node := n.(type) {
	case *ast.Element:
		attrs, children = node.Attributes, node.Children
	case *ast.Component:
		attrs, children = node.Attributes, node.Children
	default:
		return
	}

	if value, ok := attrs.Get("class"); ok {
		for _, class := range strings.Fields(value) {
			seen[class] = true
		}
	}
	for _, child := range children {
		collectNodeClasses(child, seen)
	}
}

// Stylesheet emits one rule per class that maps to a known utility.
// Classes outside the utility vocabulary are skipped; they are expected
// to be defined by the base stylesheet or by the user.
func Stylesheet(classes []string) string {
	var sb strings.Builder
	for _, class := range classes {
		css, ok := Rule(class)
		if !ok {
			continue
		}
		sb.WriteString(".")
		sb.WriteString(class)
		sb.WriteString(" { ")
		sb.WriteString(css)
		sb.WriteString(" }\n")
	}
	return sb.String()
}

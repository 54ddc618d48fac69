// Package styling maps utility class names to CSS declarations and builds
// stylesheets for the classes a view actually uses.
package styling

import (
	"fmt"
	"strconv"
	"strings"
)

// utilities maps a class name to its CSS declarations. Dynamic classes
// (p-N, m-N spacing) are resolved in Rule.
var utilities = map[string]string{
	// Layout
	"flex":   "display: flex;",
	"grid":   "display: grid;",
	"block":  "display: block;",
	"inline": "display: inline;",
	"hidden": "display: none;",

	// Flexbox
	"flex-row":        "flex-direction: row;",
	"flex-col":        "flex-direction: column;",
	"justify-center":  "justify-content: center;",
	"justify-between": "justify-content: space-between;",
	"items-center":    "align-items: center;",
	"items-start":     "align-items: flex-start;",

	// Typography
	"text-sm":     "font-size: 0.875rem;",
	"text-base":   "font-size: 1rem;",
	"text-lg":     "font-size: 1.125rem;",
	"text-xl":     "font-size: 1.25rem;",
	"font-bold":   "font-weight: bold;",
	"font-medium": "font-weight: 500;",

	// Colors
	"bg-red-500":    "background-color: #ef4444;",
	"bg-blue-500":   "background-color: #3b82f6;",
	"bg-green-500":  "background-color: #10b981;",
	"text-white":    "color: white;",
	"text-gray-600": "color: #4b5563;",
	"text-gray-800": "color: #1f2937;",

	// Sizing
	"w-auto": "width: auto;",
	"w-full": "width: 100%;",
	"h-auto": "height: auto;",
	"h-full": "height: 100%;",

	// Border
	"border":     "border: 1px solid #e5e7eb;",
	"border-2":   "border: 2px solid #e5e7eb;",
	"rounded":    "border-radius: 0.25rem;",
	"rounded-lg": "border-radius: 0.5rem;",

	// Effects
	"shadow":     "box-shadow: 0 1px 3px 0 rgba(0, 0, 0, 0.1);",
	"shadow-lg":  "box-shadow: 0 10px 15px -3px rgba(0, 0, 0, 0.1);",
	"opacity-50": "opacity: 0.5;",
}

// Rule returns the CSS declarations for a utility class name. The second
// return is false for class names outside the utility vocabulary, which
// callers treat as user-defined classes.
func Rule(class string) (string, bool) {
	if css, ok := utilities[class]; ok {
		return css, true
	}
	if css, ok := spacingRule(class); ok {
		return css, true
	}
	return "", false
}

// spacingRule handles p-N (padding) and m-N (margin) classes where each
// step is 0.25rem.
func spacingRule(class string) (string, bool) {
	var property string
	var rest string
	switch {
	case strings.HasPrefix(class, "p-"):
		property, rest = "padding", class[2:]
	case strings.HasPrefix(class, "m-"):
		property, rest = "margin", class[2:]
	default:
		return "", false
	}

	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return "", false
	}
	return fmt.Sprintf("%s: %srem;", property, formatSpacing(n)), true
}

func formatSpacing(n int) string {
	return strconv.FormatFloat(float64(n)*0.25, 'f', -1, 64)
}

// Builder accumulates utility classes and custom declarations into a
// single inline style string.
type Builder struct {
	rules []string
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends the declarations for a utility class. Unknown classes are
// ignored.
func (b *Builder) Add(class string) *Builder {
	if css, ok := Rule(class); ok {
		b.rules = append(b.rules, css)
	}
	return b
}

// Custom appends raw CSS declarations.
func (b *Builder) Custom(css string) *Builder {
	b.rules = append(b.rules, css)
	return b
}

// Build joins the accumulated declarations.
func (b *Builder) Build() string {
	return strings.Join(b.rules, " ")
}

package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Expression is a structured (non-string) value shape. Expressions are
// never evaluated; they exist so the formatter and the view-code generator
// can print them back as source text. They are not Node kinds.
type Expression interface {
	fmt.Stringer
	expr()
}

// StringLiteral is a quoted string value.
type StringLiteral struct {
	Value string
}

// Number is a numeric literal.
type Number struct {
	Value float64
}

// SignalAccess reads a signal by name.
type SignalAccess struct {
	Signal string
}

// PropertyAccess reads a member of a signal, `count.value`.
type PropertyAccess struct {
	Signal   string
	Property string
}

// BinaryOperation combines two expressions with an infix operator.
type BinaryOperation struct {
	Left     Expression
	Operator BinaryOperator
	Right    Expression
}

// FunctionCall applies a named function to argument expressions.
type FunctionCall struct {
	Function string
	Args     []Expression
}

func (*StringLiteral) expr()   {}
func (*Number) expr()          {}
func (*SignalAccess) expr()    {}
func (*PropertyAccess) expr()  {}
func (*BinaryOperation) expr() {}
func (*FunctionCall) expr()    {}

// BinaryOperator is the fixed set of infix operators.
type BinaryOperator string

const (
	OpAdd         BinaryOperator = "+"
	OpSubtract    BinaryOperator = "-"
	OpMultiply    BinaryOperator = "*"
	OpDivide      BinaryOperator = "/"
	OpEquals      BinaryOperator = "=="
	OpNotEquals   BinaryOperator = "!="
	OpGreaterThan BinaryOperator = ">"
	OpLessThan    BinaryOperator = "<"
	OpAnd         BinaryOperator = "&&"
	OpOr          BinaryOperator = "||"
)

func (e *StringLiteral) String() string {
	return `"` + e.Value + `"`
}

func (e *Number) String() string {
	return strconv.FormatFloat(e.Value, 'f', -1, 64)
}

func (e *SignalAccess) String() string {
	return e.Signal
}

func (e *PropertyAccess) String() string {
	return e.Signal + "." + e.Property
}

func (e *BinaryOperation) String() string {
	return e.Left.String() + " " + string(e.Operator) + " " + e.Right.String()
}

func (e *FunctionCall) String() string {
	args := make([]string, len(e.Args))
	for i, arg := range e.Args {
		args[i] = arg.String()
	}
	return e.Function + "(" + strings.Join(args, ", ") + ")"
}

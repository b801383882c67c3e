// Package expr parses calculator expressions over exact rational literals.
//
// Grammar:
//
//	comparison := sum [ ('=='|'!='|'<'|'<='|'>'|'>=') sum ]
//	sum        := product { ('+'|'-') product }
//	product    := unary { ('*'|'/') unary }
//	unary      := ('-'|'+') unary | primary
//	primary    := rational | integer | decimal | '(' sum ')' | ident '(' sum ')'
//	rational   := '<' text '/' text '>' | '<' text '>'
//
// A '<' in operand position opens a rational literal; anywhere else it is
// the less-than operator. The text of a rational literal is not validated
// here: it is handed to the evaluating engine, which reports malformed
// numbers itself.
package expr

import (
	"fmt"
	"strings"
)

// Op is a unary, binary or comparison operator.
type Op int

const (
	Add Op = iota + 1
	Sub
	Mul
	Quo
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
)

var opText = map[Op]string{
	Add: "+", Sub: "-", Mul: "*", Quo: "/",
	Eq: "==", Ne: "!=", Lt: "<", Le: "<=", Gt: ">", Ge: ">=",
}

func (o Op) String() string {
	if s, ok := opText[o]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// IsComparison reports whether o yields a boolean.
func (o Op) IsComparison() bool { return o >= Eq && o <= Ge }

// Func is a built-in function.
type Func string

const (
	Abs   Func = "abs"
	Floor Func = "floor"
	Round Func = "round"
	Inv   Func = "inv"
)

var funcs = map[string]Func{"abs": Abs, "floor": Floor, "round": Round, "inv": Inv}

// Node is an expression tree node.
type Node interface {
	// Pos is the byte offset of the node in the source.
	Pos() int
	// String renders the node fully parenthesized.
	String() string
}

// Literal is a number. Num and Den are the decimal strings passed to the
// engine's constructor; Den is "1" for integers and a power of ten for
// decimals.
type Literal struct {
	Offset int
	Num    string
	Den    string
}

// Unary is -X or +X.
type Unary struct {
	Offset int
	Op     Op
	X      Node
}

// Binary is X op Y, including comparisons.
type Binary struct {
	Offset int
	Op     Op
	X, Y   Node
}

// Call is fn(Arg).
type Call struct {
	Offset int
	Func   Func
	Arg    Node
}

func (n *Literal) Pos() int { return n.Offset }
func (n *Unary) Pos() int   { return n.Offset }
func (n *Binary) Pos() int  { return n.Offset }
func (n *Call) Pos() int    { return n.Offset }

func (n *Literal) String() string {
	if n.Den == "1" {
		return "<" + n.Num + ">"
	}
	return "<" + n.Num + "/" + n.Den + ">"
}

func (n *Unary) String() string  { return "(" + n.Op.String() + n.X.String() + ")" }
func (n *Binary) String() string { return "(" + n.X.String() + " " + n.Op.String() + " " + n.Y.String() + ")" }
func (n *Call) String() string   { return string(n.Func) + "(" + n.Arg.String() + ")" }

// IsBoolean reports whether n evaluates to a truth value.
func IsBoolean(n Node) bool {
	b, ok := n.(*Binary)
	return ok && b.Op.IsComparison()
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	switch n := n.(type) {
	case *Unary:
		return 1 + Count(n.X)
	case *Binary:
		return 1 + Count(n.X) + Count(n.Y)
	case *Call:
		return 1 + Count(n.Arg)
	default:
		return 1
	}
}

func newLiteral(offset int, text string) *Literal {
	text = strings.Join(strings.Fields(text), "")
	num, den, found := strings.Cut(text, "/")
	if !found {
		den = "1"
	}
	return &Literal{Offset: offset, Num: num, Den: den}
}

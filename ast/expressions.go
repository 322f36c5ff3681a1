package ast

import (
	"bytes"
	"strconv"

	"github.com/risor-io/nesc/internal/token"
	"github.com/risor-io/nesc/op"
)

// Ident is an expression node that refers to a storage location by name.
type Ident struct {
	NamePos token.Position // position of identifier
	Name    string         // identifier name
}

func (x *Ident) exprNode()    {}
func (x *Ident) operandNode() {}

func (x *Ident) Pos() token.Position { return x.NamePos }

func (x *Ident) String() string { return x.Name }

// Int is an immediate integer literal.
type Int struct {
	ValuePos token.Position
	Value    int64
}

func (x *Int) exprNode()    {}
func (x *Int) operandNode() {}

func (x *Int) Pos() token.Position { return x.ValuePos }

func (x *Int) String() string { return strconv.FormatInt(x.Value, 10) }

// Infix is a binary operation such as "x + y".
type Infix struct {
	X     Expr            // left operand
	OpPos token.Position  // position of operator
	Op    op.BinaryOpType // operator
	Y     Expr            // right operand
}

func (x *Infix) exprNode() {}

func (x *Infix) Pos() token.Position {
	if x.X != nil {
		return x.X.Pos()
	}
	return x.OpPos
}

func (x *Infix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	if x.X != nil {
		out.WriteString(x.X.String())
	}
	out.WriteString(" " + x.Op.String() + " ")
	if x.Y != nil {
		out.WriteString(x.Y.String())
	}
	out.WriteString(")")
	return out.String()
}

// Selector is an attribute access "x.sel".
type Selector struct {
	X   Expr
	Sel *Ident
}

func (x *Selector) exprNode() {}

func (x *Selector) Pos() token.Position { return x.X.Pos() }

func (x *Selector) String() string { return x.X.String() + "." + x.Sel.String() }

// Call is an invocation "fun(args...)".
type Call struct {
	Fun    Expr
	Lparen token.Position
	Args   []Expr
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.Fun.Pos() }

func (x *Call) String() string {
	return x.Fun.String() + "(" + joinExprs(x.Args) + ")"
}

// CalleeName returns the name of a call whose callee is a bare identifier,
// or "" otherwise.
func (x *Call) CalleeName() string {
	if id, ok := x.Fun.(*Ident); ok {
		return id.Name
	}
	return ""
}

// NewSelector builds a selector chain from a dotted path such as
// "pynes.game.Game".
func NewSelector(pos token.Position, path ...string) Expr {
	var x Expr = &Ident{NamePos: pos, Name: path[0]}
	for _, name := range path[1:] {
		x = &Selector{X: x, Sel: &Ident{NamePos: pos, Name: name}}
	}
	return x
}

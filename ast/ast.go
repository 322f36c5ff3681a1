// Package ast defines the tree representation consumed and rewritten by nesc.
//
// Trees are produced by an external parser. The compiler mutates them in
// place: computational statements are replaced by Asm nodes holding lowered
// instruction sequences, and top-level statements are wrapped into calls
// against the chunk collector.
package ast

import "github.com/risor-io/nesc/internal/token"

// Node represents a portion of the syntax tree. All nodes have position
// information indicating where they appear in the source code.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// String returns a human friendly representation of the Node. This should
	// be similar to the original source code, but not necessarily identical.
	String() string
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node. Expressions evaluate to a value
// and may be embedded within other expressions.
type Expr interface {
	Node
	exprNode()
}

// Operand is an expression usable directly as an instruction operand: a
// Reference (*Ident) or a Literal (*Int).
type Operand interface {
	Expr
	operandNode()
}

package lower

import (
	"github.com/risor-io/nesc/ast"
	"github.com/risor-io/nesc/internal/token"
)

// Result is the outcome of lowering one node: either the node itself
// (Single) or a flat instruction sequence (Sequence).
type Result struct {
	node  ast.Node
	items []ast.Item
	pos   token.Position
}

// Single returns a result that keeps node as is.
func Single(node ast.Node) Result {
	return Result{node: node}
}

// Sequence returns a result holding a lowered instruction sequence.
func Sequence(pos token.Position, items []ast.Item) Result {
	return Result{items: items, pos: pos}
}

// IsSequence returns true if the result is an instruction sequence.
func (r Result) IsSequence() bool {
	return r.node == nil
}

// Items returns the instruction sequence, or nil for a Single result.
func (r Result) Items() []ast.Item {
	return r.items
}

// Node returns the lowered node: the kept node for a Single result, or an
// Asm holding the sequence.
func (r Result) Node() ast.Node {
	if r.node != nil {
		return r.node
	}
	return &ast.Asm{From: r.pos, Items: r.items}
}

// Expr returns the result as an expression, or nil if a Single result does
// not hold one.
func (r Result) Expr() ast.Expr {
	if x, ok := r.Node().(ast.Expr); ok {
		return x
	}
	return nil
}

// Stmt returns the result as a statement, or nil if a Single result does not
// hold one.
func (r Result) Stmt() ast.Stmt {
	if s, ok := r.Node().(ast.Stmt); ok {
		return s
	}
	return nil
}

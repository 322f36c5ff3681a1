package lower

import (
	"slices"

	"github.com/risor-io/nesc/ast"
	"github.com/risor-io/nesc/errors"
)

// Expr lowers an expression. A binary operation becomes a Sequence that
// starts with LDA of its leftmost operand. Leaves, calls and sequences that
// were already lowered are returned as Single.
func (l *Lowerer) Expr(x ast.Expr) (Result, error) {
	infix, ok := x.(*ast.Infix)
	if !ok {
		return Single(x), nil
	}
	items, err := l.flatten(infix)
	if err != nil {
		return Result{}, err
	}
	return Sequence(infix.Pos(), items), nil
}

// flatten walks the left spine of root and emits one sequence for the whole
// chain in source order.
func (l *Lowerer) flatten(root *ast.Infix) ([]ast.Item, error) {
	var spine []*ast.Infix
	var leftmost ast.Expr = root
	for {
		infix, ok := leftmost.(*ast.Infix)
		if !ok {
			break
		}
		if infix.X == nil || infix.Y == nil {
			return nil, errors.Newf(errors.E2104, infix.OpPos,
				"operator %q requires two operands", infix.Op.String())
		}
		spine = append(spine, infix)
		leftmost = infix.X
	}
	slices.Reverse(spine)

	items, err := l.load(leftmost, root.Pos())
	if err != nil {
		return nil, err
	}
	for _, infix := range spine {
		applied, err := l.apply(infix.Op, infix.Y, infix.OpPos)
		if err != nil {
			return nil, err
		}
		items = append(items, applied...)
	}
	if err := l.check(items, root.Pos()); err != nil {
		return nil, err
	}
	return items, nil
}

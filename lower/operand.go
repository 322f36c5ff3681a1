package lower

import (
	"github.com/risor-io/nesc/ast"
	"github.com/risor-io/nesc/errors"
	"github.com/risor-io/nesc/internal/token"
)

// ResolveOperand normalizes a reference or literal into an instruction
// operand. A reference is copied so that every emission owns its operand
// node; literals pass through unchanged.
func ResolveOperand(x ast.Expr) (ast.Operand, error) {
	switch x := x.(type) {
	case *ast.Ident:
		return &ast.Ident{NamePos: x.NamePos, Name: x.Name}, nil
	case *ast.Int:
		return x, nil
	case nil:
		return nil, errors.New(errors.E2104, token.NoPos, "missing operand")
	default:
		return nil, errors.Newf(errors.E2205, x.Pos(), "%s cannot be used as an instruction operand", x.String())
	}
}

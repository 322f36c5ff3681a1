package syntax

import (
	"github.com/risor-io/nesc/ast"
	"github.com/risor-io/nesc/internal/token"
	"github.com/risor-io/nesc/op"
)

// DefaultSentinel is the engine lifecycle hook removed from programs.
const DefaultSentinel = "press_start"

// Filter holds the small domain rules applied while rewriting.
type Filter struct {
	sentinel string
}

// NewFilter returns a Filter that drops calls to sentinel.
func NewFilter(sentinel string) *Filter {
	return &Filter{sentinel: sentinel}
}

// KeepCall returns false for a call to the sentinel hook. Such calls are
// removed from the tree along with their arguments.
func (f *Filter) KeepCall(c *ast.Call) bool {
	return c.CalleeName() != f.sentinel
}

// ExprStmt drops a statement whose value was removed and returns any other
// statement unchanged.
func (f *Filter) ExprStmt(s *ast.ExprStmt) ast.Stmt {
	if s.X == nil {
		return nil
	}
	return s
}

// Assign drops an assignment left without values, which happens when every
// value was a removed sentinel call, and returns any other statement
// unchanged.
func (f *Filter) Assign(s ast.Stmt) ast.Stmt {
	switch n := s.(type) {
	case *ast.Assign:
		if len(n.Values) == 0 {
			return nil
		}
	case *ast.CompoundAssign:
		if len(n.Values) == 0 {
			return nil
		}
	}
	return s
}

// ModuloRule lowers "accumulator % right" to AND right. The result is the
// remainder only when right is a power of two.
func ModuloRule(right ast.Operand, _ token.Position) ([]ast.Item, error) {
	return []ast.Item{ast.Instr(op.LogicalAnd), ast.Arg(right)}, nil
}

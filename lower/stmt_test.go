package lower

import (
	stderrors "errors"
	"testing"

	"github.com/risor-io/nesc/ast"
	"github.com/risor-io/nesc/errors"
	"github.com/risor-io/nesc/op"
	"github.com/stretchr/testify/require"
)

func assign(target ast.Expr, value ast.Expr) *ast.Assign {
	return &ast.Assign{Targets: []ast.Expr{target}, Values: []ast.Expr{value}}
}

func TestAssign(t *testing.T) {
	tests := []struct {
		name string
		stmt *ast.Assign
		want string
	}{
		{"literal", assign(id("x"), num(5)), "LDA 5\nSTA x"},
		{"reference", assign(id("x"), id("y")), "LDA y\nSTA x"},
		{"multiply", assign(id("x"), bin(id("x"), op.Multiply, num(4))), "LDA x\nASL\nASL\nSTA x"},
		{"chain", assign(id("x"), bin(bin(id("a"), op.Add, id("b")), op.Subtract, num(1))), "LDA a\nCLC\nADC b\nSEC\nSBC 1\nSTA x"},
		{
			"lowered value",
			assign(id("x"), &ast.Asm{Items: []ast.Item{ast.Instr(op.LoadAccumulator), ast.Arg(id("y"))}}),
			"LDA y\nSTA x",
		},
	}
	l := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := l.Assign(tt.stmt)
			require.NoError(t, err)
			require.Equal(t, tt.want, listing(t, r))
			require.NotNil(t, r.Stmt())
		})
	}
}

func TestAssignCallPassesThrough(t *testing.T) {
	s := assign(id("game"), &ast.Call{Fun: id("Game")})
	r, err := New().Assign(s)
	require.NoError(t, err)
	require.False(t, r.IsSequence())
	require.Same(t, s, r.Stmt())
}

func TestAssignErrors(t *testing.T) {
	tests := []struct {
		name string
		stmt *ast.Assign
		code errors.ErrorCode
	}{
		{
			"two targets one value",
			&ast.Assign{Targets: []ast.Expr{id("a"), id("b")}, Values: []ast.Expr{num(1)}},
			errors.E2101,
		},
		{
			"one target two values",
			&ast.Assign{Targets: []ast.Expr{id("a")}, Values: []ast.Expr{num(1), num(2)}},
			errors.E2101,
		},
		{
			"tuple assignment",
			&ast.Assign{Targets: []ast.Expr{id("a"), id("b")}, Values: []ast.Expr{num(1), num(2)}},
			errors.E2103,
		},
		{"empty", &ast.Assign{}, errors.E2103},
		{"attribute target", assign(&ast.Selector{X: id("game"), Sel: id("x")}, num(1)), errors.E2103},
		{"odd multiplier", assign(id("x"), bin(id("x"), op.Multiply, num(3))), errors.E2201},
	}
	l := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Assign(tt.stmt)
			requireCode(t, err, tt.code)
		})
	}
}

func TestAssignCardinalityIsStructural(t *testing.T) {
	_, err := New().Assign(&ast.Assign{Targets: []ast.Expr{id("a"), id("b")}, Values: []ast.Expr{num(1)}})
	require.True(t, stderrors.Is(err, errors.ErrStructural))
}

func TestAssignOperandsAreNotShared(t *testing.T) {
	target := id("x")
	r, err := New().Assign(assign(target, num(1)))
	require.NoError(t, err)
	items := r.Items()
	require.NotSame(t, target, items[len(items)-1].Operand)
}

func TestCompoundAssign(t *testing.T) {
	tests := []struct {
		name  string
		value ast.Expr
		want  string
	}{
		{"increment", num(1), "LDA x\nINC\nSTA x"},
		{"literal", num(2), "LDA x\nCLC\nADC 2\nSTA x"},
		{"reference", id("y"), "LDA x\nCLC\nADC y\nSTA x"},
	}
	l := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &ast.CompoundAssign{Target: id("x"), Op: op.Add, Values: []ast.Expr{tt.value}}
			r, err := l.CompoundAssign(s)
			require.NoError(t, err)
			require.Equal(t, tt.want, listing(t, r))
		})
	}
}

func TestCompoundAssignErrors(t *testing.T) {
	tests := []struct {
		name string
		stmt *ast.CompoundAssign
		code errors.ErrorCode
	}{
		{"no value", &ast.CompoundAssign{Target: id("x"), Op: op.Add}, errors.E2102},
		{
			"two values",
			&ast.CompoundAssign{Target: id("x"), Op: op.Add, Values: []ast.Expr{num(1), num(2)}},
			errors.E2102,
		},
		{
			"subtract",
			&ast.CompoundAssign{Target: id("x"), Op: op.Subtract, Values: []ast.Expr{num(1)}},
			errors.E2202,
		},
		{
			"nested value",
			&ast.CompoundAssign{Target: id("x"), Op: op.Add, Values: []ast.Expr{bin(id("a"), op.Add, id("b"))}},
			errors.E2204,
		},
		{
			"missing target",
			&ast.CompoundAssign{Op: op.Add, Values: []ast.Expr{num(1)}},
			errors.E2103,
		},
	}
	l := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.CompoundAssign(tt.stmt)
			requireCode(t, err, tt.code)
		})
	}
}

func TestCompoundAssignWithoutIncrement(t *testing.T) {
	l := New(WithInstructionSet(op.Standard().Without(op.Increment)))
	_, err := l.CompoundAssign(&ast.CompoundAssign{Target: id("x"), Op: op.Add, Values: []ast.Expr{num(1)}})
	requireCode(t, err, errors.E2206)
}

package lower

import (
	stderrors "errors"
	"testing"

	"github.com/risor-io/nesc/ast"
	"github.com/risor-io/nesc/errors"
	"github.com/risor-io/nesc/internal/token"
	"github.com/risor-io/nesc/op"
	"github.com/stretchr/testify/require"
)

func id(name string) *ast.Ident { return &ast.Ident{Name: name} }

func num(v int64) *ast.Int { return &ast.Int{Value: v} }

func bin(x ast.Expr, operator op.BinaryOpType, y ast.Expr) *ast.Infix {
	return &ast.Infix{X: x, Op: operator, Y: y}
}

// listing renders a lowered result the way it reads in an assembly listing.
func listing(t *testing.T, r Result) string {
	t.Helper()
	require.True(t, r.IsSequence())
	asm, ok := r.Node().(*ast.Asm)
	require.True(t, ok)
	return asm.String()
}

func requireCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	var compileErr *errors.CompileError
	require.True(t, stderrors.As(err, &compileErr), "unexpected error type %T", err)
	require.Equal(t, code, compileErr.Code, compileErr.Error())
}

func TestExprAddChain(t *testing.T) {
	l := New()
	r, err := l.Expr(bin(bin(id("a"), op.Add, id("b")), op.Add, id("c")))
	require.NoError(t, err)
	require.Equal(t, "LDA a\nCLC\nADC b\nCLC\nADC c", listing(t, r))

	var codes []op.Code
	for _, item := range r.Items() {
		if item.IsInstruction() {
			codes = append(codes, item.Op)
		}
	}
	require.Equal(t, []op.Code{
		op.LoadAccumulator, op.ClearCarry, op.AddWithCarry, op.ClearCarry, op.AddWithCarry,
	}, codes)
}

func TestExprMixedOperators(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{"sub", bin(id("a"), op.Subtract, num(3)), "LDA a\nSEC\nSBC 3"},
		{"mult", bin(id("x"), op.Multiply, num(4)), "LDA x\nASL\nASL"},
		{"mult by two", bin(id("x"), op.Multiply, num(2)), "LDA x\nASL"},
		{"mult by zero", bin(id("x"), op.Multiply, num(0)), "LDA x"},
		{
			"add then mult then sub",
			bin(bin(bin(id("a"), op.Add, id("b")), op.Multiply, num(4)), op.Subtract, id("c")),
			"LDA a\nCLC\nADC b\nASL\nASL\nSEC\nSBC c",
		},
		{"literal first", bin(num(10), op.Add, id("y")), "LDA 10\nCLC\nADC y"},
	}
	l := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := l.Expr(tt.expr)
			require.NoError(t, err)
			require.Equal(t, tt.want, listing(t, r))
		})
	}
}

func TestExprLeavesAreSingle(t *testing.T) {
	l := New()
	for _, x := range []ast.Expr{id("a"), num(1), &ast.Call{Fun: id("f")}} {
		r, err := l.Expr(x)
		require.NoError(t, err)
		require.False(t, r.IsSequence())
		require.Same(t, x, r.Node())
	}
}

func TestExprIsIdempotent(t *testing.T) {
	l := New()
	r, err := l.Expr(bin(id("a"), op.Add, id("b")))
	require.NoError(t, err)
	asm := r.Node().(*ast.Asm)

	again, err := l.Expr(asm)
	require.NoError(t, err)
	require.False(t, again.IsSequence())
	require.Same(t, asm, again.Node())
	require.Equal(t, "LDA a\nCLC\nADC b", asm.String())
}

func TestExprContinuesLoweredLeft(t *testing.T) {
	// A post-order walk lowers (a + b) before the outer operation sees it.
	l := New()
	inner, err := l.Expr(bin(id("a"), op.Add, id("b")))
	require.NoError(t, err)
	r, err := l.Expr(bin(inner.Expr(), op.Add, id("c")))
	require.NoError(t, err)
	require.Equal(t, "LDA a\nCLC\nADC b\nCLC\nADC c", listing(t, r))
}

func TestExprErrors(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expr
		code errors.ErrorCode
	}{
		{"odd multiplier", bin(id("x"), op.Multiply, num(3)), errors.E2201},
		{"negative multiplier", bin(id("x"), op.Multiply, num(-2)), errors.E2201},
		{"variable multiplier", bin(id("x"), op.Multiply, id("y")), errors.E2203},
		{"multiplier above a byte", bin(id("x"), op.Multiply, num(MaxMultiplier+1)), errors.E2207},
		{"huge multiplier", bin(id("x"), op.Multiply, num(1<<62)), errors.E2207},
		{"unmapped operator", bin(id("x"), op.Modulo, num(8)), errors.E2202},
		{"nested right operand", bin(id("a"), op.Add, bin(id("b"), op.Add, id("c"))), errors.E2204},
		{"missing right operand", &ast.Infix{X: id("a"), Op: op.Add}, errors.E2104},
		{"missing left operand", &ast.Infix{Op: op.Add, Y: id("a")}, errors.E2104},
		{"empty lowered left", bin(&ast.Asm{}, op.Add, id("a")), errors.E2104},
		{"call operand", bin(id("a"), op.Add, &ast.Call{Fun: id("f")}), errors.E2205},
	}
	l := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Expr(tt.expr)
			requireCode(t, err, tt.code)
		})
	}
}

func TestOddMultiplierIsUnsupportedPattern(t *testing.T) {
	_, err := New().Expr(bin(id("x"), op.Multiply, num(5)))
	require.True(t, stderrors.Is(err, errors.ErrUnsupportedPattern))
}

func TestLargestMultiplier(t *testing.T) {
	r, err := New().Expr(bin(id("x"), op.Multiply, num(MaxMultiplier-1)))
	require.NoError(t, err)
	require.Len(t, r.Items(), 2+(MaxMultiplier-1)/2)
}

func TestInstructionSetRestriction(t *testing.T) {
	l := New(WithInstructionSet(op.Standard().Without(op.ShiftLeft)))
	_, err := l.Expr(bin(id("x"), op.Multiply, num(2)))
	requireCode(t, err, errors.E2206)

	_, err = l.Expr(bin(id("x"), op.Add, num(2)))
	require.NoError(t, err)
}

func TestWithRule(t *testing.T) {
	and := func(right ast.Operand, _ token.Position) ([]ast.Item, error) {
		return []ast.Item{ast.Instr(op.LogicalAnd), ast.Arg(right)}, nil
	}
	l := New(WithRule(op.Modulo, and))
	r, err := l.Expr(bin(id("x"), op.Modulo, num(8)))
	require.NoError(t, err)
	require.Equal(t, "LDA x\nAND 8", listing(t, r))
}

func TestResolveOperand(t *testing.T) {
	ref := &ast.Ident{NamePos: token.Position{Line: 3}, Name: "hp"}
	operand, err := ResolveOperand(ref)
	require.NoError(t, err)
	require.NotSame(t, ref, operand)
	require.Equal(t, ref, operand)

	lit := num(7)
	operand, err = ResolveOperand(lit)
	require.NoError(t, err)
	require.Same(t, lit, operand)

	_, err = ResolveOperand(&ast.Selector{X: id("game"), Sel: id("x")})
	requireCode(t, err, errors.E2205)

	_, err = ResolveOperand(nil)
	requireCode(t, err, errors.E2104)
}

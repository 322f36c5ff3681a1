package syntax

import (
	"testing"

	"github.com/risor-io/nesc/ast"
	"github.com/risor-io/nesc/internal/token"
	"github.com/risor-io/nesc/op"
	"github.com/stretchr/testify/require"
)

func TestTargetValidator(t *testing.T) {
	program := &ast.Program{Stmts: []ast.Stmt{
		&ast.Assign{
			Targets: []ast.Expr{&ast.Ident{Name: "x"}},
			Values:  []ast.Expr{&ast.Int{ValuePos: token.Position{Line: 0, Column: 4}, Value: 300}},
		},
		&ast.Func{
			Def:  token.Position{Line: 1},
			Name: &ast.Ident{Name: "outer"},
			Body: []ast.Stmt{
				&ast.Func{Def: token.Position{Line: 2, Column: 4}, Name: &ast.Ident{Name: "inner"}},
			},
		},
		&ast.CompoundAssign{
			Target: &ast.Ident{Name: "y"},
			Op:     op.Add,
			Values: []ast.Expr{&ast.Int{Value: 255}},
		},
	}}
	errs := TargetValidator{}.Validate(program)
	require.Len(t, errs, 2)
	require.Equal(t, `function "inner" must be declared at module level at line 3, column 5`, errs[0].Error())
	require.Equal(t, "literal 300 does not fit in one byte at line 1, column 5", errs[1].Error())

	verr := NewValidationErrors(errs)
	require.Contains(t, verr.Error(), "2 validation errors:")
	require.Equal(t, &errs[0], verr.Unwrap())
}

func TestTargetValidatorAcceptsValidProgram(t *testing.T) {
	program := &ast.Program{Stmts: []ast.Stmt{
		&ast.Assign{
			Targets: []ast.Expr{&ast.Ident{Name: "x"}},
			Values:  []ast.Expr{&ast.Int{Value: 0}},
		},
	}}
	require.Empty(t, TargetValidator{}.Validate(program))
	require.Equal(t, "no validation errors", NewValidationErrors(nil).Error())
}

func TestTargetValidatorRequiresValues(t *testing.T) {
	program := &ast.Program{Stmts: []ast.Stmt{
		&ast.Assign{Targets: []ast.Expr{&ast.Ident{NamePos: token.Position{Line: 1}, Name: "x"}}},
		&ast.CompoundAssign{Target: &ast.Ident{NamePos: token.Position{Line: 2}, Name: "y"}, Op: op.Add},
	}}
	errs := TargetValidator{}.Validate(program)
	require.Len(t, errs, 2)
	require.Equal(t, "assignment has no value at line 2, column 1", errs[0].Error())
	require.Equal(t, "assignment has no value at line 3, column 1", errs[1].Error())
}

func TestChain(t *testing.T) {
	var order []string
	step := func(name string) Transformer {
		return TransformerFunc(func(p *ast.Program) (*ast.Program, error) {
			order = append(order, name)
			return p, nil
		})
	}
	p := &ast.Program{}
	out, err := Chain(step("a"), step("b")).Transform(p)
	require.NoError(t, err)
	require.Same(t, p, out)
	require.Equal(t, []string{"a", "b"}, order)
}

func TestValidate(t *testing.T) {
	program := &ast.Program{Stmts: []ast.Stmt{
		&ast.Assign{
			Targets: []ast.Expr{ast.NewSelector(token.Position{Line: 4}, "game", "x")},
			Values:  []ast.Expr{&ast.Int{Value: 1}},
		},
	}}
	err := Validate(program)
	require.Error(t, err)
	var verr *ValidationErrors
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Errors, 1)
	require.Equal(t, "cannot assign to game.x at line 5, column 1", verr.Error())

	require.NoError(t, Validate(&ast.Program{}))
}

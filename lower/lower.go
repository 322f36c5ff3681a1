// Package lower performs instruction selection for the accumulator machine.
//
// Expression lowering flattens a left-leaning tree of binary operations into
// one sequence that loads the leftmost operand and applies every operator
// against the next operand in source order:
//
//	a + b * 4 - c  =>  LDA a; CLC; ADC b; ASL; ASL; SEC; SBC c
//
// (operators associate left to right and share one precedence level once
// the parser has built the tree, so the example above is ((a + b) * 4) - c).
//
// Statement lowering builds on that: an assignment stores the accumulator
// into its target after the value sequence, and a compound assignment loads
// the target, applies the operator and stores it back.
//
// A right operand must be a reference or a literal. Anything that would need
// a temporary on an accumulator machine is rejected rather than miscompiled.
package lower

import (
	"github.com/risor-io/nesc/ast"
	"github.com/risor-io/nesc/errors"
	"github.com/risor-io/nesc/internal/token"
	"github.com/risor-io/nesc/op"
)

// Rule selects the instructions that apply an operator to the accumulator
// and the given right operand.
type Rule func(right ast.Operand, pos token.Position) ([]ast.Item, error)

// Lowerer lowers statements and expressions into instruction sequences. It
// holds no per-compilation state and may be shared.
type Lowerer struct {
	set   op.Set
	rules map[op.BinaryOpType]Rule
}

// Option configures a Lowerer.
type Option func(*Lowerer)

// WithInstructionSet restricts the instructions the Lowerer may emit.
// Defaults to op.Standard().
func WithInstructionSet(set op.Set) Option {
	return func(l *Lowerer) {
		l.set = set
	}
}

// WithRule installs the instruction selection rule for an operator,
// replacing any existing rule.
func WithRule(operator op.BinaryOpType, rule Rule) Option {
	return func(l *Lowerer) {
		l.rules[operator] = rule
	}
}

// New returns a Lowerer with rules for addition, subtraction and
// multiplication by an even constant.
func New(opts ...Option) *Lowerer {
	l := &Lowerer{
		set: op.Standard(),
		rules: map[op.BinaryOpType]Rule{
			op.Add:      AddRule,
			op.Subtract: SubtractRule,
			op.Multiply: MultiplyRule,
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// InstructionSet returns the instructions this Lowerer may emit.
func (l *Lowerer) InstructionSet() op.Set {
	return l.set
}

// apply returns the instructions for "accumulator <operator> right".
func (l *Lowerer) apply(operator op.BinaryOpType, right ast.Expr, pos token.Position) ([]ast.Item, error) {
	rule, ok := l.rules[operator]
	if !ok {
		return nil, errors.Newf(errors.E2202, pos, "no instruction selection for operator %q", operator.String())
	}
	if right == nil {
		return nil, errors.Newf(errors.E2104, pos, "operator %q is missing its right operand", operator.String())
	}
	if isNested(right) {
		return nil, errors.Newf(errors.E2204, right.Pos(),
			"right operand %s of %q must be a reference or literal", right.String(), operator.String())
	}
	operand, err := ResolveOperand(right)
	if err != nil {
		return nil, err
	}
	return rule(operand, pos)
}

// load returns the instructions that bring x into the accumulator.
func (l *Lowerer) load(x ast.Expr, pos token.Position) ([]ast.Item, error) {
	if asm, ok := x.(*ast.Asm); ok {
		if len(asm.Items) == 0 {
			return nil, errors.New(errors.E2104, pos, "cannot load an empty instruction sequence")
		}
		return append([]ast.Item(nil), asm.Items...), nil
	}
	if x == nil {
		return nil, errors.New(errors.E2104, pos, "missing operand")
	}
	operand, err := ResolveOperand(x)
	if err != nil {
		return nil, err
	}
	return []ast.Item{ast.Instr(op.LoadAccumulator), ast.Arg(operand)}, nil
}

// check verifies that every instruction of items belongs to the instruction
// set.
func (l *Lowerer) check(items []ast.Item, pos token.Position) error {
	for _, item := range items {
		if item.IsInstruction() && !l.set.Has(item.Op) {
			return errors.Newf(errors.E2206, pos, "instruction %s is not in the instruction set", item.Op)
		}
	}
	return nil
}

func isNested(x ast.Expr) bool {
	switch x.(type) {
	case *ast.Infix, *ast.Asm:
		return true
	}
	return false
}

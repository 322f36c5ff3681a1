package lower

import (
	"github.com/risor-io/nesc/ast"
	"github.com/risor-io/nesc/errors"
	"github.com/risor-io/nesc/op"
)

// Assign lowers "target = value" into the value's load sequence followed by
// STA target.
//
// An assignment of a single call is a runtime-level statement, such as the
// construction of the collector, and is returned unchanged.
func (l *Lowerer) Assign(s *ast.Assign) (Result, error) {
	if len(s.Values) == 1 {
		if _, ok := s.Values[0].(*ast.Call); ok {
			return Single(s), nil
		}
	}
	if len(s.Targets) != len(s.Values) {
		return Result{}, errors.Newf(errors.E2101, s.Pos(),
			"assignment has %d targets but %d values", len(s.Targets), len(s.Values))
	}
	if len(s.Targets) != 1 {
		return Result{}, errors.Newf(errors.E2103, s.Pos(),
			"assignment of %d values is not supported", len(s.Targets))
	}
	target, ok := s.Targets[0].(*ast.Ident)
	if !ok {
		return Result{}, errors.Newf(errors.E2103, s.Pos(), "cannot assign to %s", s.Targets[0].String())
	}

	var items []ast.Item
	var err error
	if infix, ok := s.Values[0].(*ast.Infix); ok {
		items, err = l.flatten(infix)
	} else {
		items, err = l.load(s.Values[0], s.Pos())
	}
	if err != nil {
		return Result{}, err
	}
	items = append(items, l.store(target)...)
	if err := l.check(items, s.Pos()); err != nil {
		return Result{}, err
	}
	return Sequence(s.Pos(), items), nil
}

// CompoundAssign lowers "target += value". Incrementing by the literal 1 is
// fused into LDA target; INC; STA target. Any other operand loads the
// target, adds the operand and stores the target back.
func (l *Lowerer) CompoundAssign(s *ast.CompoundAssign) (Result, error) {
	if len(s.Values) != 1 {
		return Result{}, errors.Newf(errors.E2102, s.Pos(),
			"compound assignment requires exactly one value, got %d", len(s.Values))
	}
	target, ok := s.Target.(*ast.Ident)
	if !ok {
		var name string
		if s.Target != nil {
			name = s.Target.String()
		}
		return Result{}, errors.Newf(errors.E2103, s.Pos(), "cannot assign to %q", name)
	}
	// TODO: -= needs SEC; SBC and the borrow convention confirmed against the
	// collector before it can be enabled.
	if s.Op != op.Add {
		return Result{}, errors.Newf(errors.E2202, s.OpPos,
			"compound assignment %s= is not supported", s.Op.String())
	}

	value := s.Values[0]
	items, err := l.load(target, s.Pos())
	if err != nil {
		return Result{}, err
	}
	if lit, ok := value.(*ast.Int); ok && lit.Value == 1 {
		items = append(items, ast.Instr(op.Increment))
	} else {
		applied, err := l.apply(op.Add, value, s.OpPos)
		if err != nil {
			return Result{}, err
		}
		items = append(items, applied...)
	}
	items = append(items, l.store(target)...)
	if err := l.check(items, s.Pos()); err != nil {
		return Result{}, err
	}
	return Sequence(s.Pos(), items), nil
}

func (l *Lowerer) store(target *ast.Ident) []ast.Item {
	return []ast.Item{
		ast.Instr(op.StoreAccumulator),
		ast.Arg(&ast.Ident{NamePos: target.NamePos, Name: target.Name}),
	}
}

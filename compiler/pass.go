package compiler

import (
	"github.com/rs/zerolog"

	"github.com/risor-io/nesc/ast"
	"github.com/risor-io/nesc/lower"
	"github.com/risor-io/nesc/syntax"
)

// pass is the composed visitor of one compilation. It owns the
// compilation's Structure and forwards each node kind to one strategy.
type pass struct {
	*Compiler
	structure *syntax.Structure
	chunks    int
}

var _ ast.Rewriter = (*pass)(nil)

func (p *pass) EnterProgram(program *ast.Program) error {
	p.structure.Bootstrap(program)
	return nil
}

func (p *pass) LeaveProgram(program *ast.Program) error {
	p.chunks = p.structure.WrapChunks(program)
	p.logger.Debug().
		Int("chunks", p.chunks).
		Int("imports", p.structure.Lookup().Len()).
		Int("names", p.structure.Names().Len()).
		Msg("compiled program")
	return nil
}

func (p *pass) VisitImport(n *ast.Import) (ast.Stmt, error) {
	return p.structure.Import(n), nil
}

func (p *pass) VisitFunc(n *ast.Func) (ast.Stmt, error) {
	var name string
	if n.Name != nil {
		name = n.Name.Name
	}
	p.logger.Debug().
		Str("function", name).
		Stringer("pos", n.Pos()).
		Msg("registered function hook")
	return p.structure.Func(n), nil
}

func (p *pass) VisitAssign(n *ast.Assign) (ast.Stmt, error) {
	if p.filter.Assign(n) == nil {
		p.logger.Debug().Stringer("pos", n.Pos()).Msg("dropped emptied assignment")
		return nil, nil
	}
	result, err := p.lowerer.Assign(n)
	if err != nil {
		return nil, err
	}
	p.logLowered(n, result)
	return result.Stmt(), nil
}

func (p *pass) VisitCompoundAssign(n *ast.CompoundAssign) (ast.Stmt, error) {
	if p.filter.Assign(n) == nil {
		p.logger.Debug().Stringer("pos", n.Pos()).Msg("dropped emptied assignment")
		return nil, nil
	}
	result, err := p.lowerer.CompoundAssign(n)
	if err != nil {
		return nil, err
	}
	p.logLowered(n, result)
	return result.Stmt(), nil
}

func (p *pass) VisitExprStmt(n *ast.ExprStmt) (ast.Stmt, error) {
	return p.filter.ExprStmt(n), nil
}

func (p *pass) EnterCall(n *ast.Call) bool {
	if p.filter.KeepCall(n) {
		return true
	}
	p.logger.Debug().Stringer("pos", n.Pos()).Msg("removed sentinel call")
	return false
}

func (p *pass) VisitCall(n *ast.Call) (ast.Expr, error) {
	return n, nil
}

func (p *pass) VisitInfix(n *ast.Infix) (ast.Expr, error) {
	result, err := p.lowerer.Expr(n)
	if err != nil {
		return nil, err
	}
	return result.Expr(), nil
}

func (p *pass) VisitIdent(n *ast.Ident) (ast.Expr, error) {
	if err := p.structure.Reference(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *pass) VisitInt(n *ast.Int) (ast.Expr, error) {
	return n, nil
}

func (p *pass) logLowered(n ast.Stmt, result lower.Result) {
	if !result.IsSequence() || p.logger.GetLevel() > zerolog.DebugLevel {
		return
	}
	p.logger.Debug().
		Stringer("pos", n.Pos()).
		Int("items", len(result.Items())).
		Str("asm", result.Node().String()).
		Msg("lowered statement")
}

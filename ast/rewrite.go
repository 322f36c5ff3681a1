package ast

import "fmt"

// Rewriter is driven by Rewrite with one method per node kind.
//
// EnterProgram and EnterCall are called before the children of the node are
// visited. Every other method is called after the children of the node have
// been rewritten, and its result replaces the node in the tree. Returning an
// untyped nil from a statement method, or from Call, removes the node.
//
// Asm nodes are never passed to a Rewriter: a lowered sequence is final.
type Rewriter interface {
	EnterProgram(*Program) error
	LeaveProgram(*Program) error

	VisitImport(*Import) (Stmt, error)
	VisitFunc(*Func) (Stmt, error)
	VisitAssign(*Assign) (Stmt, error)
	VisitCompoundAssign(*CompoundAssign) (Stmt, error)
	VisitExprStmt(*ExprStmt) (Stmt, error)

	// EnterCall returns false to remove the call without visiting its
	// callee or arguments.
	EnterCall(*Call) bool
	VisitCall(*Call) (Expr, error)
	VisitInfix(*Infix) (Expr, error)
	VisitIdent(*Ident) (Expr, error)
	VisitInt(*Int) (Expr, error)
}

// Rewrite walks the program in post-order, replacing each node with the
// result of the corresponding Rewriter method. The first error aborts the
// walk; the tree may then be partially rewritten.
func Rewrite(r Rewriter, program *Program) error {
	if err := r.EnterProgram(program); err != nil {
		return err
	}
	stmts, err := rewriteStmts(r, program.Stmts)
	if err != nil {
		return err
	}
	program.Stmts = stmts
	return r.LeaveProgram(program)
}

func rewriteStmts(r Rewriter, stmts []Stmt) ([]Stmt, error) {
	out := stmts[:0]
	for _, stmt := range stmts {
		rewritten, err := rewriteStmt(r, stmt)
		if err != nil {
			return nil, err
		}
		if rewritten != nil {
			out = append(out, rewritten)
		}
	}
	return out, nil
}

func rewriteExprs(r Rewriter, exprs []Expr) ([]Expr, error) {
	out := exprs[:0]
	for _, expr := range exprs {
		rewritten, err := rewriteExpr(r, expr)
		if err != nil {
			return nil, err
		}
		if rewritten != nil {
			out = append(out, rewritten)
		}
	}
	return out, nil
}

func rewriteStmt(r Rewriter, stmt Stmt) (Stmt, error) {
	var err error
	switch n := stmt.(type) {
	case *Import:
		return r.VisitImport(n)
	case *Func:
		if n.Hooks, err = rewriteExprs(r, n.Hooks); err != nil {
			return nil, err
		}
		if n.Body, err = rewriteStmts(r, n.Body); err != nil {
			return nil, err
		}
		return r.VisitFunc(n)
	case *Assign:
		if n.Targets, err = rewriteExprs(r, n.Targets); err != nil {
			return nil, err
		}
		if n.Values, err = rewriteExprs(r, n.Values); err != nil {
			return nil, err
		}
		return r.VisitAssign(n)
	case *CompoundAssign:
		if n.Target != nil {
			if n.Target, err = rewriteExpr(r, n.Target); err != nil {
				return nil, err
			}
		}
		if n.Values, err = rewriteExprs(r, n.Values); err != nil {
			return nil, err
		}
		return r.VisitCompoundAssign(n)
	case *ExprStmt:
		if n.X != nil {
			if n.X, err = rewriteExpr(r, n.X); err != nil {
				return nil, err
			}
		}
		return r.VisitExprStmt(n)
	case *Asm:
		return n, nil
	default:
		return nil, fmt.Errorf("ast: unexpected statement %T", stmt)
	}
}

func rewriteExpr(r Rewriter, expr Expr) (Expr, error) {
	var err error
	switch n := expr.(type) {
	case *Ident:
		return r.VisitIdent(n)
	case *Int:
		return r.VisitInt(n)
	case *Infix:
		if n.X != nil {
			if n.X, err = rewriteExpr(r, n.X); err != nil {
				return nil, err
			}
		}
		if n.Y != nil {
			if n.Y, err = rewriteExpr(r, n.Y); err != nil {
				return nil, err
			}
		}
		return r.VisitInfix(n)
	case *Call:
		if !r.EnterCall(n) {
			return nil, nil
		}
		if n.Fun, err = rewriteExpr(r, n.Fun); err != nil {
			return nil, err
		}
		if n.Fun == nil {
			return nil, nil
		}
		if n.Args, err = rewriteExprs(r, n.Args); err != nil {
			return nil, err
		}
		return r.VisitCall(n)
	case *Selector:
		// Sel names an attribute, not a storage location; only X is visited.
		if n.X, err = rewriteExpr(r, n.X); err != nil {
			return nil, err
		}
		if n.X == nil {
			return nil, nil
		}
		return n, nil
	case *Asm:
		return n, nil
	default:
		return nil, fmt.Errorf("ast: unexpected expression %T", expr)
	}
}

// NopRewriter returns every node unchanged. Embed it to override only the
// methods of interest.
type NopRewriter struct{}

func (NopRewriter) EnterProgram(*Program) error { return nil }
func (NopRewriter) LeaveProgram(*Program) error { return nil }

func (NopRewriter) VisitImport(n *Import) (Stmt, error)                 { return n, nil }
func (NopRewriter) VisitFunc(n *Func) (Stmt, error)                     { return n, nil }
func (NopRewriter) VisitAssign(n *Assign) (Stmt, error)                 { return n, nil }
func (NopRewriter) VisitCompoundAssign(n *CompoundAssign) (Stmt, error) { return n, nil }
func (NopRewriter) VisitExprStmt(n *ExprStmt) (Stmt, error)             { return n, nil }

func (NopRewriter) EnterCall(*Call) bool              { return true }
func (NopRewriter) VisitCall(n *Call) (Expr, error)   { return n, nil }
func (NopRewriter) VisitInfix(n *Infix) (Expr, error) { return n, nil }
func (NopRewriter) VisitIdent(n *Ident) (Expr, error) { return n, nil }
func (NopRewriter) VisitInt(n *Int) (Expr, error)     { return n, nil }

package ast

import (
	"bytes"
	"strings"

	"github.com/risor-io/nesc/internal/token"
	"github.com/risor-io/nesc/op"
)

// Program is the root node of a compilation unit.
type Program struct {
	Stmts []Stmt
}

func (p *Program) Pos() token.Position {
	if len(p.Stmts) > 0 {
		return p.Stmts[0].Pos()
	}
	return token.NoPos
}

func (p *Program) String() string {
	var out bytes.Buffer
	for i, s := range p.Stmts {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(s.String())
	}
	return out.String()
}

// ImportSpec is one imported symbol of an import declaration. Name "*"
// denotes a wildcard import.
type ImportSpec struct {
	Name  string
	Alias string // empty when the symbol is not renamed
}

// LocalName returns the name the symbol is bound to in the importing module.
func (s ImportSpec) LocalName() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Name
}

func (s ImportSpec) String() string {
	if s.Alias != "" {
		return s.Name + " as " + s.Alias
	}
	return s.Name
}

// Import is a "from module import a, b as c" declaration. Module is empty
// for relative imports.
type Import struct {
	From   token.Position
	Module string
	Names  []ImportSpec
}

func (s *Import) stmtNode() {}

func (s *Import) Pos() token.Position { return s.From }

func (s *Import) String() string {
	names := make([]string, 0, len(s.Names))
	for _, n := range s.Names {
		names = append(names, n.String())
	}
	module := s.Module
	if module == "" {
		module = "."
	}
	return "from " + module + " import " + strings.Join(names, ", ")
}

// Func is a function declaration. Hooks are registration expressions
// attached to the declaration (decorators in the source language), applied
// in order.
type Func struct {
	Def    token.Position
	Name   *Ident
	Params []*Ident
	Body   []Stmt
	Hooks  []Expr
}

func (s *Func) stmtNode() {}

func (s *Func) Pos() token.Position { return s.Def }

func (s *Func) String() string {
	var out bytes.Buffer
	for _, h := range s.Hooks {
		out.WriteString("@" + h.String() + "\n")
	}
	params := make([]string, 0, len(s.Params))
	for _, p := range s.Params {
		params = append(params, p.String())
	}
	out.WriteString("def " + s.Name.String() + "(" + strings.Join(params, ", ") + "):")
	for _, stmt := range s.Body {
		out.WriteString("\n    " + strings.ReplaceAll(stmt.String(), "\n", "\n    "))
	}
	return out.String()
}

// Assign is a plain assignment "t1, t2 = v1, v2".
type Assign struct {
	Targets []Expr
	EqPos   token.Position
	Values  []Expr
}

func (s *Assign) stmtNode() {}

func (s *Assign) Pos() token.Position {
	if len(s.Targets) > 0 {
		return s.Targets[0].Pos()
	}
	return s.EqPos
}

func (s *Assign) String() string {
	return joinExprs(s.Targets) + " = " + joinExprs(s.Values)
}

// CompoundAssign is an augmented assignment such as "x += 1".
type CompoundAssign struct {
	Target Expr
	OpPos  token.Position
	Op     op.BinaryOpType
	Values []Expr
}

func (s *CompoundAssign) stmtNode() {}

func (s *CompoundAssign) Pos() token.Position {
	if s.Target != nil {
		return s.Target.Pos()
	}
	return s.OpPos
}

func (s *CompoundAssign) String() string {
	var target string
	if s.Target != nil {
		target = s.Target.String()
	}
	return target + " " + s.Op.String() + "= " + joinExprs(s.Values)
}

// ExprStmt is an expression evaluated for its effect. X is nil when the
// wrapped value was removed by an earlier rewrite.
type ExprStmt struct {
	X Expr
}

func (s *ExprStmt) stmtNode() {}

func (s *ExprStmt) Pos() token.Position {
	if s.X != nil {
		return s.X.Pos()
	}
	return token.NoPos
}

func (s *ExprStmt) String() string {
	if s.X == nil {
		return ""
	}
	return s.X.String()
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}

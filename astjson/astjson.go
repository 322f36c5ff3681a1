// Package astjson reads and writes trees as JSON.
//
// Every node is an object whose "kind" field names the node type:
//
//	{"kind": "Assign", "line": 3, "col": 1,
//	 "targets": [{"kind": "Ident", "name": "x"}],
//	 "values": [{"kind": "Infix", "op": "+",
//	             "left": {"kind": "Ident", "name": "x"},
//	             "right": {"kind": "Int", "value": 1}}]}
//
// Positions are optional and 1-indexed. A lowered sequence is written as
// {"kind": "Asm", "items": [{"op": "LDA"}, {"operand": {...}}, ...]}.
package astjson

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-multierror"

	"github.com/risor-io/nesc/ast"
	"github.com/risor-io/nesc/internal/token"
	"github.com/risor-io/nesc/op"
)

// Node kinds.
const (
	KindProgram        = "Program"
	KindImport         = "Import"
	KindFunc           = "Func"
	KindAssign         = "Assign"
	KindCompoundAssign = "CompoundAssign"
	KindExprStmt       = "ExprStmt"
	KindAsm            = "Asm"
	KindIdent          = "Ident"
	KindInt            = "Int"
	KindInfix          = "Infix"
	KindSelector       = "Selector"
	KindCall           = "Call"
)

type name struct {
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
}

type item struct {
	Op      string `json:"op,omitempty"`
	Operand *node  `json:"operand,omitempty"`
}

// node is the wire form of every node kind.
type node struct {
	Kind    string  `json:"kind"`
	Line    int     `json:"line,omitempty"`
	Col     int     `json:"col,omitempty"`
	Name    string  `json:"name,omitempty"`
	Value   *int64  `json:"value,omitempty"`
	Op      string  `json:"op,omitempty"`
	Module  *string `json:"module,omitempty"`
	Names   []name  `json:"names,omitempty"`
	Params  []*node `json:"params,omitempty"`
	Hooks   []*node `json:"hooks,omitempty"`
	Body    []*node `json:"body,omitempty"`
	Targets []*node `json:"targets,omitempty"`
	Target  *node   `json:"target,omitempty"`
	Values  []*node `json:"values,omitempty"`
	X       *node   `json:"x,omitempty"`
	Left    *node   `json:"left,omitempty"`
	Right   *node   `json:"right,omitempty"`
	Attr    string  `json:"attr,omitempty"`
	Func    *node   `json:"func,omitempty"`
	Args    []*node `json:"args,omitempty"`
	Items   []item  `json:"items,omitempty"`
}

// Decode parses a JSON document holding a Program. Every malformed node is
// reported; the returned error is then a *multierror.Error.
func Decode(data []byte) (*ast.Program, error) {
	var root node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("astjson: %w", err)
	}
	d := &decoder{}
	program := d.program(&root)
	if err := d.errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return program, nil
}

// Encode writes program as a JSON document.
func Encode(program *ast.Program) ([]byte, error) {
	root, err := encodeProgram(program)
	if err != nil {
		return nil, err
	}
	return json.Marshal(root)
}

type decoder struct {
	errs *multierror.Error
}

func (d *decoder) fail(path string, n *node, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if n != nil && n.Line > 0 {
		msg = fmt.Sprintf("%s (line %d)", msg, n.Line)
	}
	d.errs = multierror.Append(d.errs, fmt.Errorf("%s: %s", path, msg))
}

func position(n *node) token.Position {
	if n.Line <= 0 {
		return token.NoPos
	}
	return token.Position{Line: n.Line - 1, Column: max(n.Col-1, 0)}
}

func (d *decoder) program(n *node) *ast.Program {
	if n.Kind != KindProgram {
		d.fail("$", n, "expected kind %q, got %q", KindProgram, n.Kind)
		return nil
	}
	return &ast.Program{Stmts: d.stmts("$.body", n.Body)}
}

func (d *decoder) stmts(path string, nodes []*node) []ast.Stmt {
	stmts := make([]ast.Stmt, 0, len(nodes))
	for i, n := range nodes {
		if stmt := d.stmt(fmt.Sprintf("%s[%d]", path, i), n); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func (d *decoder) exprs(path string, nodes []*node) []ast.Expr {
	exprs := make([]ast.Expr, 0, len(nodes))
	for i, n := range nodes {
		if expr := d.expr(fmt.Sprintf("%s[%d]", path, i), n); expr != nil {
			exprs = append(exprs, expr)
		}
	}
	return exprs
}

func (d *decoder) stmt(path string, n *node) ast.Stmt {
	if n == nil {
		d.fail(path, n, "missing statement")
		return nil
	}
	pos := position(n)
	switch n.Kind {
	case KindImport:
		imp := &ast.Import{From: pos}
		if n.Module != nil {
			imp.Module = *n.Module
		}
		if len(n.Names) == 0 {
			d.fail(path, n, "import has no names")
		}
		for _, spec := range n.Names {
			imp.Names = append(imp.Names, ast.ImportSpec{Name: spec.Name, Alias: spec.Alias})
		}
		return imp
	case KindFunc:
		if n.Name == "" {
			d.fail(path, n, "function has no name")
		}
		fn := &ast.Func{
			Def:   pos,
			Name:  &ast.Ident{NamePos: pos, Name: n.Name},
			Hooks: d.exprs(path+".hooks", n.Hooks),
			Body:  d.stmts(path+".body", n.Body),
		}
		for i, p := range n.Params {
			if id, ok := d.expr(fmt.Sprintf("%s.params[%d]", path, i), p).(*ast.Ident); ok {
				fn.Params = append(fn.Params, id)
			}
		}
		return fn
	case KindAssign:
		return &ast.Assign{
			Targets: d.exprs(path+".targets", n.Targets),
			EqPos:   pos,
			Values:  d.exprs(path+".values", n.Values),
		}
	case KindCompoundAssign:
		return &ast.CompoundAssign{
			Target: d.expr(path+".target", n.Target),
			OpPos:  pos,
			Op:     d.operator(path, n),
			Values: d.exprs(path+".values", n.Values),
		}
	case KindExprStmt:
		return &ast.ExprStmt{X: d.expr(path+".x", n.X)}
	case KindAsm:
		return d.asm(path, n)
	default:
		d.fail(path, n, "unknown statement kind %q", n.Kind)
		return nil
	}
}

func (d *decoder) expr(path string, n *node) ast.Expr {
	if n == nil {
		d.fail(path, n, "missing expression")
		return nil
	}
	pos := position(n)
	switch n.Kind {
	case KindIdent:
		if n.Name == "" {
			d.fail(path, n, "identifier has no name")
		}
		return &ast.Ident{NamePos: pos, Name: n.Name}
	case KindInt:
		if n.Value == nil {
			d.fail(path, n, "integer has no value")
			return nil
		}
		return &ast.Int{ValuePos: pos, Value: *n.Value}
	case KindInfix:
		return &ast.Infix{
			X:     d.expr(path+".left", n.Left),
			OpPos: pos,
			Op:    d.operator(path, n),
			Y:     d.expr(path+".right", n.Right),
		}
	case KindSelector:
		x := d.expr(path+".x", n.X)
		if n.Attr == "" {
			d.fail(path, n, "selector has no attribute")
		}
		return &ast.Selector{X: x, Sel: &ast.Ident{NamePos: pos, Name: n.Attr}}
	case KindCall:
		return &ast.Call{
			Fun:    d.expr(path+".func", n.Func),
			Lparen: pos,
			Args:   d.exprs(path+".args", n.Args),
		}
	case KindAsm:
		return d.asm(path, n)
	default:
		d.fail(path, n, "unknown expression kind %q", n.Kind)
		return nil
	}
}

func (d *decoder) operator(path string, n *node) op.BinaryOpType {
	operator, ok := op.ParseBinaryOp(n.Op)
	if !ok {
		d.fail(path, n, "unknown operator %q", n.Op)
	}
	return operator
}

func (d *decoder) asm(path string, n *node) *ast.Asm {
	asm := &ast.Asm{From: position(n)}
	for i, it := range n.Items {
		itemPath := fmt.Sprintf("%s.items[%d]", path, i)
		switch {
		case it.Op != "" && it.Operand != nil:
			d.fail(itemPath, n, "item has both an op and an operand")
		case it.Op != "":
			code, ok := op.Lookup(it.Op)
			if !ok {
				d.fail(itemPath, n, "unknown instruction %q", it.Op)
				continue
			}
			asm.Items = append(asm.Items, ast.Instr(code))
		case it.Operand != nil:
			operand, ok := d.expr(itemPath+".operand", it.Operand).(ast.Operand)
			if !ok {
				d.fail(itemPath, n, "operand must be an identifier or integer")
				continue
			}
			asm.Items = append(asm.Items, ast.Arg(operand))
		default:
			d.fail(itemPath, n, "empty item")
		}
	}
	return asm
}

func setPosition(n *node, pos token.Position) {
	if pos.IsValid() {
		n.Line = pos.LineNumber()
		n.Col = pos.ColumnNumber()
	}
}

func encodeProgram(program *ast.Program) (*node, error) {
	root := &node{Kind: KindProgram}
	for _, stmt := range program.Stmts {
		n, err := encodeStmt(stmt)
		if err != nil {
			return nil, err
		}
		root.Body = append(root.Body, n)
	}
	return root, nil
}

func encodeStmts(stmts []ast.Stmt) ([]*node, error) {
	var nodes []*node
	for _, stmt := range stmts {
		n, err := encodeStmt(stmt)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func encodeExprs(exprs []ast.Expr) ([]*node, error) {
	var nodes []*node
	for _, expr := range exprs {
		n, err := encodeExpr(expr)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func encodeStmt(stmt ast.Stmt) (*node, error) {
	var err error
	switch s := stmt.(type) {
	case *ast.Import:
		module := s.Module
		n := &node{Kind: KindImport, Module: &module}
		for _, spec := range s.Names {
			n.Names = append(n.Names, name{Name: spec.Name, Alias: spec.Alias})
		}
		setPosition(n, s.From)
		return n, nil
	case *ast.Func:
		n := &node{Kind: KindFunc}
		if s.Name != nil {
			n.Name = s.Name.Name
		}
		setPosition(n, s.Def)
		for _, p := range s.Params {
			param, _ := encodeExpr(p)
			n.Params = append(n.Params, param)
		}
		if n.Hooks, err = encodeExprs(s.Hooks); err != nil {
			return nil, err
		}
		if n.Body, err = encodeStmts(s.Body); err != nil {
			return nil, err
		}
		return n, nil
	case *ast.Assign:
		n := &node{Kind: KindAssign}
		setPosition(n, s.EqPos)
		if n.Targets, err = encodeExprs(s.Targets); err != nil {
			return nil, err
		}
		if n.Values, err = encodeExprs(s.Values); err != nil {
			return nil, err
		}
		return n, nil
	case *ast.CompoundAssign:
		n := &node{Kind: KindCompoundAssign, Op: s.Op.String()}
		setPosition(n, s.OpPos)
		if s.Target != nil {
			if n.Target, err = encodeExpr(s.Target); err != nil {
				return nil, err
			}
		}
		if n.Values, err = encodeExprs(s.Values); err != nil {
			return nil, err
		}
		return n, nil
	case *ast.ExprStmt:
		n := &node{Kind: KindExprStmt}
		if s.X != nil {
			if n.X, err = encodeExpr(s.X); err != nil {
				return nil, err
			}
		}
		return n, nil
	case *ast.Asm:
		return encodeAsm(s)
	default:
		return nil, fmt.Errorf("astjson: unexpected statement %T", stmt)
	}
}

func encodeExpr(expr ast.Expr) (*node, error) {
	var err error
	switch x := expr.(type) {
	case *ast.Ident:
		n := &node{Kind: KindIdent, Name: x.Name}
		setPosition(n, x.NamePos)
		return n, nil
	case *ast.Int:
		value := x.Value
		n := &node{Kind: KindInt, Value: &value}
		setPosition(n, x.ValuePos)
		return n, nil
	case *ast.Infix:
		n := &node{Kind: KindInfix, Op: x.Op.String()}
		setPosition(n, x.OpPos)
		if x.X != nil {
			if n.Left, err = encodeExpr(x.X); err != nil {
				return nil, err
			}
		}
		if x.Y != nil {
			if n.Right, err = encodeExpr(x.Y); err != nil {
				return nil, err
			}
		}
		return n, nil
	case *ast.Selector:
		n := &node{Kind: KindSelector, Attr: x.Sel.Name}
		setPosition(n, x.Sel.NamePos)
		if n.X, err = encodeExpr(x.X); err != nil {
			return nil, err
		}
		return n, nil
	case *ast.Call:
		n := &node{Kind: KindCall}
		setPosition(n, x.Lparen)
		if n.Func, err = encodeExpr(x.Fun); err != nil {
			return nil, err
		}
		if n.Args, err = encodeExprs(x.Args); err != nil {
			return nil, err
		}
		return n, nil
	case *ast.Asm:
		return encodeAsm(x)
	default:
		return nil, fmt.Errorf("astjson: unexpected expression %T", expr)
	}
}

func encodeAsm(asm *ast.Asm) (*node, error) {
	n := &node{Kind: KindAsm}
	setPosition(n, asm.From)
	for _, it := range asm.Items {
		if it.IsInstruction() {
			n.Items = append(n.Items, item{Op: it.Op.String()})
			continue
		}
		operand, err := encodeExpr(it.Operand)
		if err != nil {
			return nil, err
		}
		n.Items = append(n.Items, item{Operand: operand})
	}
	return n, nil
}

package ast

import "iter"

// Visitor defines the interface for read-only tree traversal. If Visit
// returns nil, children of the node are not visited. Otherwise, the returned
// Visitor is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses a tree in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range children(node) {
		Walk(v, child)
	}
}

// Inspect traverses a tree in depth-first order. It calls f(node) for each
// node; if f returns true, Inspect invokes f recursively for each of the
// non-nil children of node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Preorder returns an iterator over all the nodes of the tree rooted at node
// in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var visit func(Node) bool
		visit = func(n Node) bool {
			if !yield(n) {
				return false
			}
			for _, child := range children(n) {
				if !visit(child) {
					return false
				}
			}
			return true
		}
		visit(root)
	}
}

// children returns the non-nil children of node in source order. Operands
// inside an Asm are children of the Asm.
func children(node Node) []Node {
	var out []Node
	add := func(n Node) { out = append(out, n) }
	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Stmts {
			add(stmt)
		}
	case *Func:
		for _, h := range n.Hooks {
			add(h)
		}
		if n.Name != nil {
			add(n.Name)
		}
		for _, p := range n.Params {
			add(p)
		}
		for _, stmt := range n.Body {
			add(stmt)
		}
	case *Assign:
		for _, t := range n.Targets {
			add(t)
		}
		for _, v := range n.Values {
			add(v)
		}
	case *CompoundAssign:
		if n.Target != nil {
			add(n.Target)
		}
		for _, v := range n.Values {
			add(v)
		}
	case *ExprStmt:
		if n.X != nil {
			add(n.X)
		}
	case *Infix:
		if n.X != nil {
			add(n.X)
		}
		if n.Y != nil {
			add(n.Y)
		}
	case *Selector:
		if n.X != nil {
			add(n.X)
		}
		if n.Sel != nil {
			add(n.Sel)
		}
	case *Call:
		if n.Fun != nil {
			add(n.Fun)
		}
		for _, arg := range n.Args {
			add(arg)
		}
	case *Asm:
		for _, item := range n.Items {
			if item.Operand != nil {
				add(item.Operand)
			}
		}
	case *Import, *Ident, *Int:
		// No children
	}
	return out
}

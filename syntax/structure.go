package syntax

import (
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/risor-io/nesc/ast"
	"github.com/risor-io/nesc/internal/token"
)

// CollectorConfig names the runtime collector that the rewritten program
// constructs and registers its chunks and functions with.
type CollectorConfig struct {
	// Name is the variable the collector is bound to.
	Name string
	// Constructor is the dotted path of the collector type. Its root is
	// bound by the collector runtime, not by an import of the program.
	Constructor string
	// AsmModule exports the instruction vocabulary; it is imported with a
	// wildcard import at the top of the program.
	AsmModule string
	// ChunkMethod registers one top-level statement as a chunk.
	ChunkMethod string
	// HookMethod is attached to every function declaration.
	HookMethod string
	// ReservedOrigin is an internal origin whose names are never recorded as
	// used.
	ReservedOrigin string
}

// DefaultCollector returns the configuration of the pynes collector.
func DefaultCollector() CollectorConfig {
	return CollectorConfig{
		Name:           "game",
		Constructor:    "pynes.game.Game",
		AsmModule:      "pynes.asm",
		ChunkMethod:    "add_chunk",
		HookMethod:     "function",
		ReservedOrigin: "pynes.lib.asm_def",
	}
}

// ModuleResolver reports whether a module can be imported.
type ModuleResolver interface {
	ResolveModule(module string) bool
}

// ModuleResolverFunc is an adapter to use a function as a ModuleResolver.
type ModuleResolverFunc func(module string) bool

// ResolveModule implements the ModuleResolver interface.
func (f ModuleResolverFunc) ResolveModule(module string) bool {
	return f(module)
}

// Structure rewrites the compilation unit for the collector: it injects the
// bootstrap statements, registers top-level statements as chunks, hooks
// function declarations, and tracks where imported names come from.
//
// A Structure holds the Module Lookup and Name-usage table of one
// compilation and must not be reused.
type Structure struct {
	collector CollectorConfig
	resolver  ModuleResolver
	lookup    *ModuleLookup
	names     *NameTable
	deferred  bool
	errs      *multierror.Error
}

// StructureOption configures a Structure.
type StructureOption func(*Structure)

// WithResolver validates imported modules with r. Imports from modules r
// rejects are recorded as unresolved.
func WithResolver(r ModuleResolver) StructureOption {
	return func(s *Structure) {
		s.resolver = r
	}
}

// WithDeferredErrors collects import resolution errors instead of failing
// at the first reference. They are reported by Err.
func WithDeferredErrors() StructureOption {
	return func(s *Structure) {
		s.deferred = true
	}
}

// NewStructure returns a Structure for one compilation.
func NewStructure(collector CollectorConfig, opts ...StructureOption) *Structure {
	s := &Structure{
		collector: collector,
		lookup:    NewModuleLookup(),
		names:     NewNameTable(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup returns the Module Lookup built so far.
func (s *Structure) Lookup() *ModuleLookup {
	return s.lookup
}

// Names returns the Name-usage table built so far.
func (s *Structure) Names() *NameTable {
	return s.names
}

// Err returns the deferred import resolution errors, if any.
func (s *Structure) Err() error {
	return s.errs.ErrorOrNil()
}

// Bootstrap prepends the wildcard import of the instruction vocabulary and
// the construction of the collector:
//
//	from pynes.asm import *
//	game = pynes.game.Game()
func (s *Structure) Bootstrap(p *ast.Program) {
	c := s.collector
	bootstrap := []ast.Stmt{
		&ast.Import{Module: c.AsmModule, Names: []ast.ImportSpec{{Name: "*"}}},
		&ast.Assign{
			Targets: []ast.Expr{&ast.Ident{Name: c.Name}},
			Values:  []ast.Expr{&ast.Call{Fun: ast.NewSelector(token.NoPos, strings.Split(c.Constructor, ".")...)}},
		},
	}
	p.Stmts = append(bootstrap, p.Stmts...)
}

// WrapChunks replaces every bare top-level statement with a chunk
// registration call against the collector, preserving source order. It
// returns the number of chunks registered.
func (s *Structure) WrapChunks(p *ast.Program) int {
	var count int
	for i, stmt := range p.Stmts {
		var value ast.Expr
		switch n := stmt.(type) {
		case *ast.ExprStmt:
			value = n.X
		case *ast.Asm:
			value = n
		default:
			continue
		}
		pos := stmt.Pos()
		p.Stmts[i] = &ast.ExprStmt{X: &ast.Call{
			Fun:  ast.NewSelector(pos, s.collector.Name, s.collector.ChunkMethod),
			Args: []ast.Expr{value},
		}}
		count++
	}
	return count
}

// Import records every imported symbol in the Module Lookup. Wildcards bind
// no name. The declaration itself is returned unchanged.
func (s *Structure) Import(n *ast.Import) ast.Stmt {
	resolved := n.Module != "" && (s.resolver == nil || s.resolver.ResolveModule(n.Module))
	for _, spec := range n.Names {
		if spec.Name == "*" {
			continue
		}
		if !resolved {
			s.lookup.RecordUnresolved(spec.LocalName(), n.Module)
			continue
		}
		s.lookup.Record(spec.LocalName(), n.Module+"."+spec.Name)
	}
	return n
}

// Func attaches the collector's registration hook to a function
// declaration.
func (s *Structure) Func(n *ast.Func) ast.Stmt {
	hook := ast.NewSelector(n.Pos(), s.collector.Name, s.collector.HookMethod)
	n.Hooks = append([]ast.Expr{hook}, n.Hooks...)
	return n
}

// Reference records a referenced identifier in the Name-usage table unless
// it was imported from the reserved origin.
func (s *Structure) Reference(n *ast.Ident) error {
	origin, err := s.lookup.Resolve(n.Name, n.Pos())
	if err != nil {
		if !s.deferred {
			return err
		}
		s.errs = multierror.Append(s.errs, err)
		return nil
	}
	if origin != s.collector.ReservedOrigin {
		s.names.Add(n.Name)
	}
	return nil
}

// Package compiler rewrites a parsed program for the pynes collector and
// lowers its arithmetic into accumulator instruction sequences.
//
// # Single Rewriting Walk
//
// Compilation is one post-order walk over the tree driven by ast.Rewrite.
// Each node kind is delegated to exactly one strategy:
//
//   - Entering the program: the Structure injects the bootstrap statements
//   - Import, Func and Ident: the Structure records origins, hooks
//     functions and fills the Name-usage table
//   - Call and ExprStmt: the Filter drops sentinel calls and empty statements
//   - Infix, Assign and CompoundAssign: the Lowerer selects instructions
//   - Leaving the program: the Structure wraps every remaining bare
//     statement into a chunk registration
//
// Because the walk is post-order, an operand that is itself a binary
// operation has already been lowered when its parent is seen. The Lowerer
// continues such a sequence instead of lowering it again.
//
// # Per-Compilation State
//
// A Compiler holds configuration only. The Module Lookup and Name-usage
// table are created for each call to Compile and returned in the Unit.
package compiler

import (
	stderrors "errors"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/risor-io/nesc/ast"
	"github.com/risor-io/nesc/errors"
	"github.com/risor-io/nesc/lower"
	"github.com/risor-io/nesc/op"
	"github.com/risor-io/nesc/syntax"
)

// Unit is the result of compiling one program.
type Unit struct {
	// Program is the rewritten tree. It is the program passed to Compile,
	// modified in place.
	Program *ast.Program

	// Lookup maps imported local names to their origin.
	Lookup *syntax.ModuleLookup

	// Names holds every referenced identifier, except those imported from
	// the collector's reserved origin.
	Names *syntax.NameTable

	// Chunks is the number of chunk registrations in Program.
	Chunks int

	// Collector is the collector Program was rewritten for.
	Collector syntax.CollectorConfig
}

// Compiler compiles programs for the collector. A Compiler may be used
// concurrently; each compilation owns its own tables.
type Compiler struct {
	logger     zerolog.Logger
	set        op.Set
	collector  syntax.CollectorConfig
	resolver   syntax.ModuleResolver
	sentinel   string
	deferred   bool
	validate   bool
	validators []syntax.Validator
	filename   string

	lowerer *lower.Lowerer
	filter  *syntax.Filter
}

// Compile compiles program with a Compiler configured by opts.
func Compile(program *ast.Program, opts ...Option) (*Unit, error) {
	return New(opts...).Compile(program)
}

// New returns a Compiler. By default it emits the standard instruction set,
// targets the pynes collector and validates programs before rewriting them.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		logger:    zerolog.Nop(),
		set:       op.Standard(),
		collector: syntax.DefaultCollector(),
		sentinel:  syntax.DefaultSentinel,
		validate:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lowerer = lower.New(
		lower.WithInstructionSet(c.set),
		lower.WithRule(op.Modulo, syntax.ModuloRule),
	)
	c.filter = syntax.NewFilter(c.sentinel)
	return c
}

// Compile validates and rewrites program in place. The first structural or
// lowering error aborts the compilation; the tree may then be partially
// rewritten.
func (c *Compiler) Compile(program *ast.Program) (*Unit, error) {
	if program == nil {
		return nil, stderrors.New("compiler: nil program")
	}
	if c.validate {
		validators := append([]syntax.Validator{syntax.TargetValidator{}}, c.validators...)
		if err := syntax.Validate(program, validators...); err != nil {
			return nil, err
		}
	}

	var structureOpts []syntax.StructureOption
	if c.resolver != nil {
		structureOpts = append(structureOpts, syntax.WithResolver(c.resolver))
	}
	if c.deferred {
		structureOpts = append(structureOpts, syntax.WithDeferredErrors())
	}
	p := &pass{
		Compiler:  c,
		structure: syntax.NewStructure(c.collector, structureOpts...),
	}
	if err := ast.Rewrite(p, program); err != nil {
		return nil, c.attribute(err)
	}
	if err := p.structure.Err(); err != nil {
		return nil, c.attribute(err)
	}
	return &Unit{
		Program:   program,
		Lookup:    p.structure.Lookup(),
		Names:     p.structure.Names(),
		Chunks:    p.chunks,
		Collector: c.collector,
	}, nil
}

// Transform implements syntax.Transformer.
func (c *Compiler) Transform(program *ast.Program) (*ast.Program, error) {
	unit, err := c.Compile(program)
	if err != nil {
		return nil, err
	}
	return unit.Program, nil
}

// InstructionSet returns the instructions the compiler may emit.
func (c *Compiler) InstructionSet() op.Set {
	return c.set
}

// attribute sets the configured filename on compile errors, including the
// ones aggregated by deferred import resolution.
func (c *Compiler) attribute(err error) error {
	if c.filename == "" {
		return err
	}
	var merr *multierror.Error
	if stderrors.As(err, &merr) {
		for i, e := range merr.Errors {
			merr.Errors[i] = c.attribute(e)
		}
		return merr
	}
	var cerr *errors.CompileError
	if stderrors.As(err, &cerr) {
		cerr.WithFilename(c.filename)
	}
	return err
}

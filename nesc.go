// Package nesc compiles pynes programs, given as JSON trees, into a form
// where every top-level statement is registered with the game collector and
// arithmetic is lowered into 6502 accumulator instruction sequences.
//
//	unit, err := nesc.Compile(data, nesc.WithFilename("game.json"))
//
// The packages below this one expose each stage on its own: astjson decodes
// trees, compiler rewrites them and dis lists the resulting instructions.
package nesc

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/risor-io/nesc/astjson"
	"github.com/risor-io/nesc/compiler"
	"github.com/risor-io/nesc/dis"
	"github.com/risor-io/nesc/op"
	"github.com/risor-io/nesc/syntax"
)

// Option configures a compilation.
type Option func(*options)

type options struct {
	filename  string
	logger    *zerolog.Logger
	set       *op.Set
	modules   []string
	allErrors bool
}

func collectOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) compilerOpts() []compiler.Option {
	var opts []compiler.Option
	if o.filename != "" {
		opts = append(opts, compiler.WithFilename(o.filename))
	}
	if o.logger != nil {
		opts = append(opts, compiler.WithLogger(*o.logger))
	}
	if o.set != nil {
		opts = append(opts, compiler.WithInstructionSet(*o.set))
	}
	if len(o.modules) > 0 {
		opts = append(opts, compiler.WithModuleResolver(prefixResolver(o.modules)))
	}
	if o.allErrors {
		opts = append(opts, compiler.WithDeferredImportErrors())
	}
	return opts
}

// WithFilename sets the filename used in error messages.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithLogger sets the logger receiving compiler debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// WithInstructionSet restricts the instructions the compiler may emit.
func WithInstructionSet(set op.Set) Option {
	return func(o *options) {
		o.set = &set
	}
}

// WithModules limits imports to the given module prefixes. A prefix matches
// the module itself and every module below it, so "pynes" admits
// "pynes.bitbag" but not "pynesx". This option is additive.
func WithModules(prefixes ...string) Option {
	return func(o *options) {
		o.modules = append(o.modules, prefixes...)
	}
}

// WithAllImportErrors reports every unresolved import reference instead of
// stopping at the first one.
func WithAllImportErrors() Option {
	return func(o *options) {
		o.allErrors = true
	}
}

func prefixResolver(prefixes []string) syntax.ModuleResolver {
	return syntax.ModuleResolverFunc(func(module string) bool {
		for _, prefix := range prefixes {
			if module == prefix || strings.HasPrefix(module, prefix+".") {
				return true
			}
		}
		return false
	})
}

// Compile decodes a JSON program tree and compiles it.
func Compile(source []byte, opts ...Option) (*compiler.Unit, error) {
	o := collectOptions(opts...)
	program, err := astjson.Decode(source)
	if err != nil {
		if o.filename != "" {
			return nil, &DecodeError{Filename: o.filename, Err: err}
		}
		return nil, err
	}
	return compiler.Compile(program, o.compilerOpts()...)
}

// Lower is a convenience function that compiles source and returns the
// instruction listing of the result.
func Lower(source []byte, opts ...Option) ([]dis.Instruction, error) {
	unit, err := Compile(source, opts...)
	if err != nil {
		return nil, err
	}
	return dis.Disassemble(unit.Program, unit.Collector)
}

// DecodeError is returned by Compile when the source is not a valid
// program tree.
type DecodeError struct {
	Filename string
	Err      error
}

func (e *DecodeError) Error() string {
	return e.Filename + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

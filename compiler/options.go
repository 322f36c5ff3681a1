package compiler

import (
	"github.com/rs/zerolog"

	"github.com/risor-io/nesc/op"
	"github.com/risor-io/nesc/syntax"
)

// Option describes a function used to configure a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger that receives debug events for every lowered
// statement and every chunk or hook registration. Logging is disabled by
// default.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithInstructionSet restricts the instructions the compiler may emit.
// Lowering an operation that needs an instruction outside set fails with
// E2206.
func WithInstructionSet(set op.Set) Option {
	return func(c *Compiler) {
		c.set = set
	}
}

// WithCollector replaces the pynes collector the program is rewritten for.
func WithCollector(collector syntax.CollectorConfig) Option {
	return func(c *Compiler) {
		c.collector = collector
	}
}

// WithModuleResolver validates the modules of import declarations. Names
// imported from a rejected module fail to resolve when referenced.
func WithModuleResolver(resolver syntax.ModuleResolver) Option {
	return func(c *Compiler) {
		c.resolver = resolver
	}
}

// WithDeferredImportErrors reports every unresolved import reference at the
// end of the compilation instead of stopping at the first one.
func WithDeferredImportErrors() Option {
	return func(c *Compiler) {
		c.deferred = true
	}
}

// WithValidator adds a check run before rewriting, after the checks against
// the target's limits.
func WithValidator(v syntax.Validator) Option {
	return func(c *Compiler) {
		c.validators = append(c.validators, v)
	}
}

// WithoutValidation skips every check, including those added with
// WithValidator.
func WithoutValidation() Option {
	return func(c *Compiler) {
		c.validate = false
	}
}

// WithFilename sets the filename reported by compile errors.
func WithFilename(filename string) Option {
	return func(c *Compiler) {
		c.filename = filename
	}
}

// WithSentinel changes the name of the lifecycle call removed from
// programs. Defaults to press_start.
func WithSentinel(name string) Option {
	return func(c *Compiler) {
		c.sentinel = name
	}
}

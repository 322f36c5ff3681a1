package syntax

import (
	"fmt"
	"strings"

	"github.com/risor-io/nesc/ast"
	"github.com/risor-io/nesc/internal/token"
)

// ValidationError represents a violation of the target's limits.
type ValidationError struct {
	Message  string         // description of the violation
	Node     ast.Node       // the offending node
	Position token.Position // source location
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	pos := e.Position
	if pos.File != "" {
		return fmt.Sprintf("%s at %s:%d:%d", e.Message, pos.File, pos.LineNumber(), pos.ColumnNumber())
	}
	return fmt.Sprintf("%s at line %d, column %d", e.Message, pos.LineNumber(), pos.ColumnNumber())
}

// ValidationErrors wraps multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError
}

// NewValidationErrors creates a ValidationErrors from a slice of errors.
func NewValidationErrors(errs []ValidationError) *ValidationErrors {
	return &ValidationErrors{Errors: errs}
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no validation errors"
	case 1:
		return e.Errors[0].Error()
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "%d validation errors:\n", len(e.Errors))
		for _, err := range e.Errors {
			fmt.Fprintf(&b, "  - %s\n", err.Error())
		}
		return b.String()
	}
}

// Unwrap returns the first error for errors.Is/As compatibility.
func (e *ValidationErrors) Unwrap() error {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}
	return nil
}

// Validator inspects a tree and returns validation errors.
// Validators should not modify the tree.
type Validator interface {
	// Validate checks the tree and returns any validation errors.
	// Multiple errors may be returned to show all violations at once.
	Validate(program *ast.Program) []ValidationError
}

// ValidatorFunc is an adapter to use a function as a Validator.
type ValidatorFunc func(*ast.Program) []ValidationError

// Validate implements the Validator interface.
func (f ValidatorFunc) Validate(p *ast.Program) []ValidationError {
	return f(p)
}

// Byte bounds of an immediate operand on the 8-bit target.
const (
	MinLiteral = 0
	MaxLiteral = 255
)

// Validate runs the validators over program, or TargetValidator when none
// are given, and returns every violation as a *ValidationErrors.
func Validate(program *ast.Program, validators ...Validator) error {
	if len(validators) == 0 {
		validators = []Validator{TargetValidator{}}
	}
	var errs []ValidationError
	for _, v := range validators {
		errs = append(errs, v.Validate(program)...)
	}
	if len(errs) == 0 {
		return nil
	}
	return NewValidationErrors(errs)
}

// TargetValidator checks a tree against the limits of the 8-bit target:
// literals must fit in one unsigned byte, assignments store at least one
// value into names, and functions may only be declared at module level.
type TargetValidator struct{}

// Validate implements the Validator interface.
func (TargetValidator) Validate(program *ast.Program) []ValidationError {
	var errs []ValidationError
	target := func(x ast.Expr) {
		if _, ok := x.(*ast.Ident); !ok && x != nil {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("cannot assign to %s", x.String()),
				Node:     x,
				Position: x.Pos(),
			})
		}
	}
	for _, stmt := range program.Stmts {
		if fn, ok := stmt.(*ast.Func); ok {
			for _, inner := range fn.Body {
				ast.Inspect(inner, func(n ast.Node) bool {
					if nested, ok := n.(*ast.Func); ok {
						errs = append(errs, ValidationError{
							Message:  fmt.Sprintf("function %q must be declared at module level", nested.Name.String()),
							Node:     nested,
							Position: nested.Pos(),
						})
					}
					return true
				})
			}
		}
	}
	valued := func(s ast.Stmt, values []ast.Expr) {
		if len(values) == 0 {
			errs = append(errs, ValidationError{
				Message:  "assignment has no value",
				Node:     s,
				Position: s.Pos(),
			})
		}
	}
	for node := range ast.Preorder(program) {
		switch n := node.(type) {
		case *ast.Assign:
			for _, x := range n.Targets {
				target(x)
			}
			valued(n, n.Values)
		case *ast.CompoundAssign:
			target(n.Target)
			valued(n, n.Values)
		}
		if lit, ok := node.(*ast.Int); ok && (lit.Value < MinLiteral || lit.Value > MaxLiteral) {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("literal %d does not fit in one byte", lit.Value),
				Node:     lit,
				Position: lit.Pos(),
			})
		}
	}
	return errs
}

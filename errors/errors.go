// Package errors defines the structured errors returned by the nesc
// lowering and rewriting passes.
package errors

import (
	"fmt"
	"strings"

	"github.com/risor-io/nesc/internal/token"
)

// Kind categorizes a compile failure.
type Kind int

const (
	Unknown Kind = iota
	// Structural indicates a tree that violates an arity invariant, such as
	// an assignment with mismatched target and value counts.
	Structural
	// UnsupportedPattern indicates a well-formed construct that has no
	// defined lowering for the target machine.
	UnsupportedPattern
	// ImportResolution indicates a reference to an import whose origin could
	// not be resolved.
	ImportResolution
)

// String returns the string representation of the error kind.
func (k Kind) String() string {
	switch k {
	case Structural:
		return "structural error"
	case UnsupportedPattern:
		return "unsupported pattern"
	case ImportResolution:
		return "import resolution error"
	default:
		return "error"
	}
}

// kindError is a sentinel usable with errors.Is.
type kindError struct {
	kind Kind
}

func (e *kindError) Error() string { return e.kind.String() }

// Sentinels for matching a CompileError by kind with errors.Is.
var (
	ErrStructural         error = &kindError{kind: Structural}
	ErrUnsupportedPattern error = &kindError{kind: UnsupportedPattern}
	ErrImportResolution   error = &kindError{kind: ImportResolution}
)

// CompileError is a fatal failure raised at the node being compiled.
type CompileError struct {
	Code     ErrorCode
	Message  string
	Filename string
	Line     int // 1-based line number, 0 if unknown
	Column   int // 1-based column number, 0 if unknown
}

// New returns a CompileError for the given code, located at pos.
func New(code ErrorCode, pos token.Position, message string) *CompileError {
	e := &CompileError{Code: code, Message: message, Filename: pos.File}
	if pos.IsValid() {
		e.Line = pos.LineNumber()
		e.Column = pos.ColumnNumber()
	}
	return e
}

// Newf is like New but formats the message.
func Newf(code ErrorCode, pos token.Position, format string, args ...any) *CompileError {
	return New(code, pos, fmt.Sprintf(format, args...))
}

// Kind returns the kind of failure this error reports.
func (e *CompileError) Kind() Kind {
	return e.Code.Kind()
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	var b strings.Builder
	b.WriteString("compile error: ")
	b.WriteString(e.Message)
	fmt.Fprintf(&b, " [%s]", e.Code)
	if e.Filename != "" || e.Line > 0 {
		b.WriteString(" at ")
		if e.Filename != "" {
			b.WriteString(e.Filename)
			b.WriteString(":")
		}
		fmt.Fprintf(&b, "%d:%d", e.Line, e.Column)
	}
	return b.String()
}

// Is reports whether target is the sentinel for this error's kind.
func (e *CompileError) Is(target error) bool {
	k, ok := target.(*kindError)
	return ok && k.kind == e.Kind()
}

// WithFilename returns the error attributed to the given file, unless it
// already carries a filename.
func (e *CompileError) WithFilename(filename string) *CompileError {
	if e.Filename == "" {
		e.Filename = filename
	}
	return e
}

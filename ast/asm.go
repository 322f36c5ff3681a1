package ast

import (
	"strings"

	"github.com/risor-io/nesc/internal/token"
	"github.com/risor-io/nesc/op"
)

// Item is one element of a lowered sequence: either an instruction or the
// operand of the instruction preceding it.
type Item struct {
	Op      op.Code // set for instructions
	Operand Operand // set for operands
}

// Instr returns an instruction item.
func Instr(code op.Code) Item { return Item{Op: code} }

// Arg returns an operand item.
func Arg(operand Operand) Item { return Item{Operand: operand} }

// IsInstruction returns true if the item is an instruction.
func (i Item) IsInstruction() bool { return i.Operand == nil }

func (i Item) String() string {
	if i.Operand != nil {
		return i.Operand.String()
	}
	return i.Op.String()
}

// Asm is a lowered instruction sequence. It replaces the statement or
// expression it was lowered from and is never lowered again.
type Asm struct {
	From  token.Position
	Items []Item
}

func (x *Asm) stmtNode() {}
func (x *Asm) exprNode() {}

func (x *Asm) Pos() token.Position { return x.From }

// String renders the sequence one instruction per line, operands inline:
// "LDA a\nCLC\nADC b".
func (x *Asm) String() string {
	var lines []string
	for _, item := range x.Items {
		if !item.IsInstruction() && len(lines) > 0 {
			lines[len(lines)-1] += " " + item.String()
			continue
		}
		lines = append(lines, item.String())
	}
	return strings.Join(lines, "\n")
}

// Instructions returns the instruction codes of the sequence in order,
// without operands.
func (x *Asm) Instructions() []op.Code {
	var codes []op.Code
	for _, item := range x.Items {
		if item.IsInstruction() {
			codes = append(codes, item.Op)
		}
	}
	return codes
}

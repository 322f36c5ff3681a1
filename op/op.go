// Package op defines the instructions emitted by the nesc lowering passes.
// The vocabulary is the subset of the 6502 instruction set needed to lower
// arithmetic and assignment onto the accumulator.
package op

import (
	"fmt"
	"sort"
	"strings"
)

// Code identifies one machine instruction.
type Code uint8

const (
	Invalid Code = 0

	// Load / store
	LoadAccumulator  Code = 1 // LDA
	StoreAccumulator Code = 2 // STA

	// Carry flag
	ClearCarry Code = 10 // CLC
	SetCarry   Code = 11 // SEC

	// Arithmetic
	AddWithCarry      Code = 20 // ADC
	SubtractWithCarry Code = 21 // SBC
	ShiftLeft         Code = 22 // ASL
	Increment         Code = 23 // INC

	// Logic
	LogicalAnd Code = 30 // AND
)

func (c Code) String() string {
	if name := infos[c].Name; name != "" {
		return name
	}
	return fmt.Sprintf("Code(%d)", uint8(c))
}

// BinaryOpType describes a type of binary operation found in the source
// tree, as in an operation that takes two operands.
type BinaryOpType uint8

const (
	Add      BinaryOpType = 1
	Subtract BinaryOpType = 2
	Multiply BinaryOpType = 3
	Modulo   BinaryOpType = 4
)

// String returns a string representation of the binary operation.
// For example "+" for addition.
func (bop BinaryOpType) String() string {
	switch bop {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Modulo:
		return "%"
	default:
		return ""
	}
}

// ParseBinaryOp returns the operator for the given source symbol.
func ParseBinaryOp(symbol string) (BinaryOpType, bool) {
	switch symbol {
	case "+":
		return Add, true
	case "-":
		return Subtract, true
	case "*":
		return Multiply, true
	case "%":
		return Modulo, true
	}
	return 0, false
}

// Info contains information about an instruction.
type Info struct {
	Code         Code
	Name         string
	OperandCount int
}

var (
	infos  = make([]Info, 256)
	byName = map[string]Code{}
)

func init() {
	type opInfo struct {
		op    Code
		name  string
		count int
	}
	ops := []opInfo{
		{AddWithCarry, "ADC", 1},
		{ClearCarry, "CLC", 0},
		{Increment, "INC", 0},
		{LoadAccumulator, "LDA", 1},
		{LogicalAnd, "AND", 1},
		{SetCarry, "SEC", 0},
		{ShiftLeft, "ASL", 0},
		{StoreAccumulator, "STA", 1},
		{SubtractWithCarry, "SBC", 1},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Name:         o.name,
			Code:         o.op,
			OperandCount: o.count,
		}
		byName[o.name] = o.op
	}
}

// GetInfo returns information about the given instruction.
func GetInfo(op Code) Info {
	return infos[op]
}

// Lookup returns the instruction with the given mnemonic, e.g. "LDA".
func Lookup(mnemonic string) (Code, bool) {
	code, ok := byName[strings.ToUpper(mnemonic)]
	return code, ok
}

// Set is an explicit set of instructions that a lowering context is allowed
// to emit.
type Set struct {
	codes map[Code]struct{}
}

// NewSet returns a set holding the given instructions.
func NewSet(codes ...Code) Set {
	s := Set{codes: make(map[Code]struct{}, len(codes))}
	for _, c := range codes {
		s.codes[c] = struct{}{}
	}
	return s
}

// Standard returns the full instruction vocabulary.
func Standard() Set {
	return NewSet(
		LoadAccumulator,
		StoreAccumulator,
		ClearCarry,
		AddWithCarry,
		SetCarry,
		SubtractWithCarry,
		ShiftLeft,
		Increment,
		LogicalAnd,
	)
}

// Has returns true if the set contains the given instruction.
func (s Set) Has(c Code) bool {
	_, ok := s.codes[c]
	return ok
}

// Len returns the number of instructions in the set.
func (s Set) Len() int {
	return len(s.codes)
}

// Without returns a copy of the set with the given instructions removed.
func (s Set) Without(codes ...Code) Set {
	out := NewSet(s.Codes()...)
	for _, c := range codes {
		delete(out.codes, c)
	}
	return out
}

// Codes returns the instructions in the set in ascending order.
func (s Set) Codes() []Code {
	codes := make([]Code, 0, len(s.codes))
	for c := range s.codes {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

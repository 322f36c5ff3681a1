// Package dis lists the instruction sequences of a compiled program. It
// works with the opcodes defined in the `op` package and reads the chunk
// registrations and function bodies produced by the `compiler` package.
package dis

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/risor-io/nesc/ast"
	"github.com/risor-io/nesc/internal/table"
	"github.com/risor-io/nesc/op"
	"github.com/risor-io/nesc/syntax"
)

// Instruction represents a single instruction and its operand.
type Instruction struct {
	Chunk    string // "#<n>" for the n-th registered chunk, else the function name
	Offset   int
	Name     string
	Opcode   op.Code
	Operand  string
	Constant bool // the operand is a literal
}

// Disassemble returns the instructions of every lowered chunk registered
// with collector, in registration order, followed by those of every function
// body. Chunks that register a plain call are counted but hold no
// instructions.
func Disassemble(program *ast.Program, collector syntax.CollectorConfig) ([]Instruction, error) {
	var instructions []Instruction
	var chunks int
	for _, stmt := range program.Stmts {
		s, ok := stmt.(*ast.ExprStmt)
		if !ok {
			continue
		}
		call, ok := s.X.(*ast.Call)
		if !ok || !isMethod(call.Fun, collector.Name, collector.ChunkMethod) {
			continue
		}
		label := "#" + strconv.Itoa(chunks)
		chunks++
		for _, arg := range call.Args {
			if asm, ok := arg.(*ast.Asm); ok {
				listed, err := list(label, asm)
				if err != nil {
					return nil, err
				}
				instructions = append(instructions, listed...)
			}
		}
	}
	for _, stmt := range program.Stmts {
		fn, ok := stmt.(*ast.Func)
		if !ok || fn.Name == nil {
			continue
		}
		var offset int
		for _, body := range fn.Body {
			asm, ok := body.(*ast.Asm)
			if !ok {
				continue
			}
			listed, err := list(fn.Name.Name, asm)
			if err != nil {
				return nil, err
			}
			for i := range listed {
				listed[i].Offset += offset
			}
			if n := len(listed); n > 0 {
				last := listed[n-1]
				offset = last.Offset + 1 + op.GetInfo(last.Opcode).OperandCount
			}
			instructions = append(instructions, listed...)
		}
	}
	return instructions, nil
}

func isMethod(fun ast.Expr, receiver, name string) bool {
	sel, ok := fun.(*ast.Selector)
	if !ok || sel.Sel == nil || sel.Sel.Name != name {
		return false
	}
	x, ok := sel.X.(*ast.Ident)
	return ok && x.Name == receiver
}

func list(label string, asm *ast.Asm) ([]Instruction, error) {
	var instructions []Instruction
	var offset int
	items := asm.Items
	for i := 0; i < len(items); i++ {
		item := items[i]
		if !item.IsInstruction() {
			return nil, fmt.Errorf("operand %s at index %d does not follow an instruction", item.String(), i)
		}
		info := op.GetInfo(item.Op)
		if info.Name == "" {
			return nil, fmt.Errorf("unknown opcode: %d", item.Op)
		}
		instr := Instruction{
			Chunk:  label,
			Offset: offset,
			Name:   info.Name,
			Opcode: item.Op,
		}
		if info.OperandCount > 0 {
			if i+1 >= len(items) || items[i+1].IsInstruction() {
				return nil, fmt.Errorf("instruction %s at index %d is missing its operand", info.Name, i)
			}
			i++
			operand := items[i].Operand
			instr.Operand = operand.String()
			_, instr.Constant = operand.(*ast.Int)
		}
		instructions = append(instructions, instr)
		offset += 1 + info.OperandCount
	}
	return instructions, nil
}

// Print a string representation of the given instructions to the given writer.
func Print(instructions []Instruction, writer io.Writer) error {
	bold := color.New(color.Bold).SprintFunc()
	constant := color.New(color.FgYellow).SprintFunc()
	reference := color.New(color.FgHiCyan).SprintFunc()
	chunk := color.New(color.FgMagenta).SprintFunc()

	var lines [][]string
	for _, instr := range instructions {
		operand := instr.Operand
		if operand != "" {
			if instr.Constant {
				operand = constant(operand)
			} else {
				operand = reference(operand)
			}
		}
		lines = append(lines, []string{
			chunk(instr.Chunk),
			strconv.Itoa(instr.Offset),
			bold(instr.Name),
			operand,
		})
	}

	return table.NewTable(writer).
		WithHeader([]string{"CHUNK", "OFFSET", "OPCODE", "OPERAND"}).
		WithColumnAlignment([]table.Alignment{
			table.AlignLeft,
			table.AlignRight,
			table.AlignLeft,
			table.AlignLeft,
		}).
		WithHeaderAlignment([]table.Alignment{
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
		}).
		WithRows(lines).
		Render()
}

// Package trace provides the textual instruction-trace parser: an
// external collaborator to the engine (the engine only ever consumes a
// []isa.Instruction), implemented here the way the teacher repo ships
// its own ELF loader alongside the timing core — a sibling package, not
// part of the pipeline itself.
package trace

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/tomasim/internal/isa"
)

// LoadError wraps a trace file that could not be opened or read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load trace %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

var opcodeNames = map[string]isa.Opcode{
	"ADD":  isa.OpADD,
	"SUB":  isa.OpSUB,
	"OR":   isa.OpOR,
	"AND":  isa.OpAND,
	"SLLI": isa.OpSLLI,
	"SRLI": isa.OpSRLI,
	"BEQ":  isa.OpBEQ,
	"BNE":  isa.OpBNE,
	"MUL":  isa.OpMUL,
	"DIV":  isa.OpDIV,
	"LW":   isa.OpLW,
	"LB":   isa.OpLB,
	"SW":   isa.OpSW,
	"SB":   isa.OpSB,
}

// Load reads a plain-text instruction trace: one instruction per line,
// blank lines and '#'-prefixed lines ignored, tokens whitespace
// separated with trailing commas stripped. Unknown opcodes are logged
// and skipped; parsing continues.
func Load(path string) ([]isa.Instruction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	var program []isa.Instruction
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens := strings.Fields(line)
		for i, tok := range tokens {
			tokens[i] = strings.TrimSuffix(tok, ",")
		}

		op, ok := opcodeNames[strings.ToUpper(tokens[0])]
		if !ok {
			log.Printf("trace:%d: unrecognized opcode %q, skipping", lineNo, tokens[0])
			continue
		}

		inst, err := decodeOperands(op, tokens[1:])
		if err != nil {
			log.Printf("trace:%d: %v, skipping", lineNo, err)
			continue
		}

		program = append(program, *inst)
	}

	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	return program, nil
}

// decodeOperands parses the operand tokens following an opcode,
// according to the fixed per-opcode operand order.
func decodeOperands(op isa.Opcode, tokens []string) (*isa.Instruction, error) {
	inst := isa.NewInstruction(op)

	parseInt := func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	}

	switch op {
	case isa.OpSLLI, isa.OpSRLI:
		if len(tokens) != 3 {
			return nil, fmt.Errorf("%s expects dest, src1, immediate", op)
		}
		inst.Dest, inst.HasDest = tokens[0], true
		inst.Src1, inst.HasSrc1 = tokens[1], true
		imm, err := parseInt(tokens[2])
		if err != nil {
			return nil, fmt.Errorf("%s: bad immediate %q", op, tokens[2])
		}
		inst.Immediate = imm

	case isa.OpLW, isa.OpLB:
		if len(tokens) != 3 {
			return nil, fmt.Errorf("%s expects dest, src1, offset", op)
		}
		inst.Dest, inst.HasDest = tokens[0], true
		inst.Src1, inst.HasSrc1 = tokens[1], true
		addr, err := parseInt(tokens[2])
		if err != nil {
			return nil, fmt.Errorf("%s: bad offset %q", op, tokens[2])
		}
		inst.Address = addr

	case isa.OpSW, isa.OpSB:
		if len(tokens) != 3 {
			return nil, fmt.Errorf("%s expects src2 (value), src1 (base), offset", op)
		}
		inst.Src2, inst.HasSrc2 = tokens[0], true
		inst.Src1, inst.HasSrc1 = tokens[1], true
		addr, err := parseInt(tokens[2])
		if err != nil {
			return nil, fmt.Errorf("%s: bad offset %q", op, tokens[2])
		}
		inst.Address = addr

	case isa.OpBEQ, isa.OpBNE:
		if len(tokens) != 3 {
			return nil, fmt.Errorf("%s expects src1, src2, target-index", op)
		}
		inst.Src1, inst.HasSrc1 = tokens[0], true
		inst.Src2, inst.HasSrc2 = tokens[1], true
		target, err := parseInt(tokens[2])
		if err != nil {
			return nil, fmt.Errorf("%s: bad target %q", op, tokens[2])
		}
		inst.Address = target

	case isa.OpADD, isa.OpSUB, isa.OpOR, isa.OpAND, isa.OpMUL, isa.OpDIV:
		if len(tokens) != 3 {
			return nil, fmt.Errorf("%s expects dest, src1, src2", op)
		}
		inst.Dest, inst.HasDest = tokens[0], true
		inst.Src1, inst.HasSrc1 = tokens[1], true
		inst.Src2, inst.HasSrc2 = tokens[2], true

	default:
		return nil, fmt.Errorf("unsupported opcode %v", op)
	}

	return inst, nil
}

// RegisterNames returns every register name referenced anywhere in the
// program, in first-seen order, for pre-populating a register file.
func RegisterNames(program []isa.Instruction) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string, has bool) {
		if !has || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}
	for _, in := range program {
		add(in.Src1, in.HasSrc1)
		add(in.Src2, in.HasSrc2)
		add(in.Dest, in.HasDest)
	}
	return names
}

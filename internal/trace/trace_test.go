package trace_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sarchlab/tomasim/internal/isa"
	"github.com/sarchlab/tomasim/internal/trace"
)

func writeTrace(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.trace")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write fixture trace: %v", err)
	}
	return path
}

func TestLoadParsesEachOpcodeShape(t *testing.T) {
	path := writeTrace(t, `
# comment lines and blank lines are ignored

ADD R3, R1, R2
SUB R4, R3, R1,
SLLI R5, R1, 2
LW R6, R1, 108
SW R2, R1, 108,
BEQ R3, R0, 7
MUL R3, R1, R2
DIV R3, R1, R0
`)

	program, err := trace.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(program) != 8 {
		t.Fatalf("len(program) = %d, want 8", len(program))
	}

	add := program[0]
	if add.Op != isa.OpADD || add.Dest != "R3" || add.Src1 != "R1" || add.Src2 != "R2" {
		t.Errorf("ADD decoded wrong: %+v", add)
	}

	shift := program[2]
	if shift.Op != isa.OpSLLI || shift.Dest != "R5" || shift.Src1 != "R1" || shift.Immediate != 2 {
		t.Errorf("SLLI decoded wrong: %+v", shift)
	}

	load := program[3]
	if load.Op != isa.OpLW || load.Dest != "R6" || load.Src1 != "R1" || load.Address != 108 {
		t.Errorf("LW decoded wrong: %+v", load)
	}

	store := program[4]
	if store.Op != isa.OpSW || store.Src2 != "R2" || store.Src1 != "R1" || store.Address != 108 {
		t.Errorf("SW decoded wrong: %+v", store)
	}

	br := program[5]
	if br.Op != isa.OpBEQ || br.Src1 != "R3" || br.Src2 != "R0" || br.Address != 7 {
		t.Errorf("BEQ decoded wrong: %+v", br)
	}
}

func TestLoadSkipsUnknownOpcodes(t *testing.T) {
	path := writeTrace(t, "ADD R3, R1, R2\nNOPE R1, R2, R3\nSUB R4, R3, R1\n")

	program, err := trace.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(program) != 2 {
		t.Fatalf("len(program) = %d, want 2 (unknown opcode should be skipped)", len(program))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := trace.Load(filepath.Join(t.TempDir(), "does-not-exist.trace"))
	if err == nil {
		t.Fatal("expected an error for a missing trace file")
	}
}

func TestRegisterNamesFirstSeenOrder(t *testing.T) {
	program := []isa.Instruction{
		{Src1: "R1", HasSrc1: true, Src2: "R2", HasSrc2: true, Dest: "R3", HasDest: true},
		{Src1: "R3", HasSrc1: true, Src2: "R1", HasSrc2: true, Dest: "R4", HasDest: true},
	}

	names := trace.RegisterNames(program)
	want := []string{"R1", "R2", "R3", "R4"}
	if len(names) != len(want) {
		t.Fatalf("RegisterNames = %v, want %v", names, want)
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("RegisterNames[%d] = %s, want %s", i, names[i], n)
		}
	}
}

// Package scenarios provides the engine's golden end-to-end fixtures: a
// trace, a seed, and the expected final register/metric outcome,
// matching the teacher's own microbenchmark fixtures but checked
// against Tomasulo/ROB outcomes rather than an exit code.
package scenarios

import (
	"fmt"

	"github.com/sarchlab/tomasim/internal/config"
	"github.com/sarchlab/tomasim/internal/engine"
	"github.com/sarchlab/tomasim/internal/isa"
)

// maxCycles bounds a scenario run so a bug that never finishes can't
// hang the runner or test suite.
const maxCycles = 100000

// Expectation is what a scenario asserts about the engine once finished.
type Expectation struct {
	Registers             map[string]int64
	SentinelRegisters     map[string]isa.ResultSentinel
	CommittedInstructions int64
	MinBubbleCycles       int64
	ROBEmptyOnFinish      bool
}

// Scenario is a named fixture: a program, a seed, and the expected
// outcome once the engine finishes running it.
type Scenario struct {
	Name    string
	Cfg     config.CoreConfig
	Seed    config.Seed
	Program []isa.Instruction
	Expect  Expectation
}

// All returns the six concrete scenarios.
func All() []Scenario {
	return []Scenario{
		straightLineArithmetic(),
		rawDependencyForward(),
		loadStore(),
		correctlyPredictedBranch(),
		mispredictedTakenBranch(),
		divideByZero(),
	}
}

// Run drives sc's program to completion (or maxCycles, whichever comes
// first) and returns the resulting engine for inspection.
func Run(sc Scenario) *engine.Engine {
	eng := engine.New(sc.Cfg, sc.Program, sc.Seed)
	for i := 0; i < maxCycles && !eng.IsFinished(); i++ {
		eng.Tick()
	}
	return eng
}

// Verify checks eng's final state against sc.Expect and returns a
// description of every mismatch (empty when the scenario passes).
func Verify(sc Scenario, eng *engine.Engine) []string {
	var failures []string

	for name, want := range sc.Expect.Registers {
		got := eng.RF.NumericValue(name)
		if got != want {
			failures = append(failures, fmt.Sprintf("%s: want %d, got %d", name, want, got))
		}
	}

	for name, want := range sc.Expect.SentinelRegisters {
		result := eng.RF.Value(name)
		if result.IsValue || result.Sentinel != want {
			failures = append(failures, fmt.Sprintf("%s: want sentinel %s, got %+v", name, want, result))
		}
	}

	if sc.Expect.CommittedInstructions != 0 && eng.Committed != sc.Expect.CommittedInstructions {
		failures = append(failures, fmt.Sprintf("committed_instructions: want %d, got %d",
			sc.Expect.CommittedInstructions, eng.Committed))
	}

	if sc.Expect.MinBubbleCycles > 0 && eng.Bubbles < sc.Expect.MinBubbleCycles {
		failures = append(failures, fmt.Sprintf("bubble_cycles: want >= %d, got %d",
			sc.Expect.MinBubbleCycles, eng.Bubbles))
	}

	if sc.Expect.ROBEmptyOnFinish && !eng.ROB.IsEmpty() {
		failures = append(failures, fmt.Sprintf("rob: want empty on finish, occupancy = %d", eng.ROB.Count()))
	}

	return failures
}

func defaultCfg() config.CoreConfig { return config.DefaultCoreConfig() }

func seedRegs(regs map[string]int64) config.Seed {
	return config.Seed{Registers: regs}
}

func seedRegsAndMem(regs map[string]int64, mem map[int64]int64) config.Seed {
	return config.Seed{Registers: regs, Memory: mem}
}

func alu(op isa.Opcode, dest, src1, src2 string) isa.Instruction {
	in := isa.NewInstruction(op)
	in.Dest, in.HasDest = dest, true
	in.Src1, in.HasSrc1 = src1, true
	in.Src2, in.HasSrc2 = src2, true
	return *in
}

func load(dest, src1 string, offset int64) isa.Instruction {
	in := isa.NewInstruction(isa.OpLW)
	in.Dest, in.HasDest = dest, true
	in.Src1, in.HasSrc1 = src1, true
	in.Address = offset
	return *in
}

func branch(op isa.Opcode, src1, src2 string, target int64) isa.Instruction {
	in := isa.NewInstruction(op)
	in.Src1, in.HasSrc1 = src1, true
	in.Src2, in.HasSrc2 = src2, true
	in.Address = target
	return *in
}

// straightLineArithmetic is scenario 1: ADD R3,R1,R2 / SUB R4,R3,R1.
func straightLineArithmetic() Scenario {
	return Scenario{
		Name: "straight_line_arithmetic",
		Cfg:  defaultCfg(),
		Seed: seedRegs(map[string]int64{"R1": 5, "R2": 5}),
		Program: []isa.Instruction{
			alu(isa.OpADD, "R3", "R1", "R2"),
			alu(isa.OpSUB, "R4", "R3", "R1"),
		},
		Expect: Expectation{
			Registers:             map[string]int64{"R3": 10, "R4": 5},
			CommittedInstructions: 2,
			ROBEmptyOnFinish:      true,
		},
	}
}

// rawDependencyForward is scenario 2: MUL R3,R1,R2 / ADD R4,R3,R1 — the
// ADD's issue must capture Qj = the MUL's ROB tag, cleared only at the
// MUL's Write-Result.
func rawDependencyForward() Scenario {
	return Scenario{
		Name: "raw_dependency_stall_and_forward",
		Cfg:  defaultCfg(),
		Seed: seedRegs(map[string]int64{"R1": 5, "R2": 5}),
		Program: []isa.Instruction{
			alu(isa.OpMUL, "R3", "R1", "R2"),
			alu(isa.OpADD, "R4", "R3", "R1"),
		},
		Expect: Expectation{
			Registers:             map[string]int64{"R3": 25, "R4": 30},
			CommittedInstructions: 2,
			ROBEmptyOnFinish:      true,
		},
	}
}

// loadStore is scenario 3: LW R3,R0,108 / ADD R4,R3,R1.
func loadStore() Scenario {
	return Scenario{
		Name: "load_store",
		Cfg:  defaultCfg(),
		Seed: seedRegsAndMem(map[string]int64{"R1": 5}, map[int64]int64{108: 5}),
		Program: []isa.Instruction{
			load("R3", "R0", 108),
			alu(isa.OpADD, "R4", "R3", "R1"),
		},
		Expect: Expectation{
			Registers:             map[string]int64{"R3": 5, "R4": 10},
			CommittedInstructions: 2,
			ROBEmptyOnFinish:      true,
		},
	}
}

// correctlyPredictedBranch is scenario 4: a NOT_TAKEN branch whose
// actual direction matches the static predictor, so no flush occurs.
func correctlyPredictedBranch() Scenario {
	return Scenario{
		Name: "correctly_predicted_not_taken_branch",
		Cfg:  defaultCfg(),
		Seed: seedRegs(map[string]int64{"R1": 5, "R2": 5}),
		Program: []isa.Instruction{
			alu(isa.OpADD, "R3", "R1", "R2"),
			branch(isa.OpBEQ, "R3", "R0", 7),
			alu(isa.OpADD, "R5", "R1", "R2"),
		},
		Expect: Expectation{
			Registers:             map[string]int64{"R5": 10},
			CommittedInstructions: 3,
			ROBEmptyOnFinish:      true,
		},
	}
}

// mispredictedTakenBranch is scenario 5: R4 is forced to 0 (index 3),
// so BEQ R4,R0 actually takes — disagreeing with the static NOT_TAKEN
// prediction and triggering flush and redirection past the two
// never-committed instructions at indices 5 and 6.
func mispredictedTakenBranch() Scenario {
	return Scenario{
		Name: "mispredicted_taken_branch",
		Cfg:  defaultCfg(),
		Seed: seedRegs(map[string]int64{"R1": 5, "R2": 5}),
		Program: []isa.Instruction{
			alu(isa.OpADD, "R3", "R1", "R2"), // 0
			alu(isa.OpSUB, "R4", "R3", "R1"), // 1
			alu(isa.OpSUB, "R3", "R3", "R2"), // 2
			alu(isa.OpSUB, "R4", "R3", "R3"), // 3 — R4 = 0, forces the branch taken
			branch(isa.OpBEQ, "R4", "R0", 7), // 4
			alu(isa.OpADD, "R5", "R1", "R2"), // 5 — flushed
			alu(isa.OpMUL, "R5", "R5", "R0"), // 6 — flushed
			alu(isa.OpSUB, "R5", "R1", "R0"), // 7
			alu(isa.OpDIV, "R6", "R1", "R2"), // 8
		},
		Expect: Expectation{
			Registers:             map[string]int64{"R5": 5, "R6": 1},
			CommittedInstructions: 7,
			MinBubbleCycles:       1,
			ROBEmptyOnFinish:      true,
		},
	}
}

// divideByZero is scenario 6: DIV R3,R1,R0 with R0=0 commits the
// DIV_BY_ZERO_ERROR sentinel into R3 rather than faulting.
func divideByZero() Scenario {
	return Scenario{
		Name: "divide_by_zero",
		Cfg:  defaultCfg(),
		Seed: seedRegs(map[string]int64{"R1": 5}),
		Program: []isa.Instruction{
			alu(isa.OpDIV, "R3", "R1", "R0"),
		},
		Expect: Expectation{
			SentinelRegisters:     map[string]isa.ResultSentinel{"R3": isa.DivByZeroError},
			CommittedInstructions: 1,
			ROBEmptyOnFinish:      true,
		},
	}
}

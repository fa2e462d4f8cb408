// Package engine implements the pipeline driver: the Tick/StepBack state
// machine that wires the register file, reservation stations and
// reorder buffer together, mirroring the teacher pipeline's own
// Tick()-per-cycle driver but built around Tomasulo's algorithm and a
// ROB rather than a classic five-stage in-order pipeline.
package engine

import (
	"github.com/sarchlab/tomasim/internal/config"
	"github.com/sarchlab/tomasim/internal/isa"
	"github.com/sarchlab/tomasim/internal/memory"
	"github.com/sarchlab/tomasim/internal/metrics"
	"github.com/sarchlab/tomasim/internal/regfile"
	"github.com/sarchlab/tomasim/internal/rob"
	"github.com/sarchlab/tomasim/internal/rs"
)

// Engine is the full cycle-accurate simulator core. Program is the
// static instruction template addressed by PC; every field below it is
// mutable simulation state, snapshotted wholesale on every Tick so
// StepBack can restore it exactly.
type Engine struct {
	Cfg     config.CoreConfig
	Program []isa.Instruction
	seed    config.Seed

	PC        int
	Cycle     int64
	Committed int64
	Bubbles   int64

	RF  *regfile.RegisterFile
	Mem *memory.Memory
	RS  *rs.Pool
	ROB *rob.Ring

	history []*snapshot
}

// snapshot is a deep, independent copy of every mutable field Tick may
// touch. It shares nothing with live state, so popping it back in never
// aliases a value the engine goes on to mutate.
type snapshot struct {
	rf        *regfile.RegisterFile
	mem       *memory.Memory
	rsPool    *rs.Pool
	robRing   *rob.Ring
	pc        int
	cycle     int64
	committed int64
	bubbles   int64
}

// New constructs an engine for program, sized per cfg, with seed applied
// before the first tick.
func New(cfg config.CoreConfig, program []isa.Instruction, seed config.Seed) *Engine {
	e := &Engine{Cfg: cfg, Program: program, seed: seed}
	e.build(seed)
	return e
}

// build allocates fresh pools and applies seed. Shared by New and Reset.
func (e *Engine) build(seed config.Seed) {
	e.RF = regfile.New()
	e.Mem = memory.New()
	e.RS = rs.NewPool(e.Cfg.NumMemRS, e.Cfg.NumAddRS, e.Cfg.NumLogicRS, e.Cfg.NumMultRS)
	e.ROB = rob.New(e.Cfg.ROBSize)
	e.PC = 0
	e.Cycle = 0
	e.Committed = 0
	e.Bubbles = 0
	e.history = nil

	for name, v := range seed.Registers {
		e.RF.Seed(name, v)
	}
	for addr, v := range seed.Memory {
		e.Mem.Seed(addr, v)
	}
}

// Reset clears all state, reapplies the seed the engine was constructed
// (or last ResetWith) with, and rewinds PC to the start of Program.
func (e *Engine) Reset() {
	e.build(e.seed)
}

// ResetWith reloads a new program and seed, fully re-initializing the
// engine as if freshly constructed.
func (e *Engine) ResetWith(program []isa.Instruction, seed config.Seed) {
	e.Program = program
	e.seed = seed
	e.build(seed)
}

// IsFinished reports whether the program counter has passed the last
// instruction and no instruction remains in flight.
func (e *Engine) IsFinished() bool {
	return e.PC >= len(e.Program) && e.ROB.IsEmpty()
}

// Metrics returns the engine's current performance snapshot.
func (e *Engine) Metrics() metrics.Snapshot {
	return metrics.Compute(e.Cycle, e.Committed, e.Bubbles, e.PC)
}

// Tick advances the engine by one logical cycle: snapshot, increment the
// cycle counter, then Commit, Write-Result, Execute and Issue in that
// fixed reverse-pipeline order, so a value broadcast this cycle is never
// consumed by this same cycle's Issue.
func (e *Engine) Tick() {
	e.pushSnapshot()
	e.Cycle++

	committed := e.commitStage()
	e.writeResultStage()
	e.executeStage()
	issued := e.issueStage()

	if !issued && !committed && !e.IsFinished() {
		e.Bubbles++
	}
}

// StepBack pops the most recent snapshot and restores it wholesale,
// reporting false if there is no history to rewind to.
func (e *Engine) StepBack() bool {
	if len(e.history) == 0 {
		return false
	}
	last := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]
	e.restoreSnapshot(last)
	return true
}

func (e *Engine) pushSnapshot() {
	e.history = append(e.history, &snapshot{
		rf:        e.RF.Clone(),
		mem:       e.Mem.Clone(),
		rsPool:    e.RS.Clone(),
		robRing:   e.ROB.Clone(),
		pc:        e.PC,
		cycle:     e.Cycle,
		committed: e.Committed,
		bubbles:   e.Bubbles,
	})
}

func (e *Engine) restoreSnapshot(s *snapshot) {
	e.RF = s.rf
	e.Mem = s.mem
	e.RS = s.rsPool
	e.ROB = s.robRing
	e.PC = s.pc
	e.Cycle = s.cycle
	e.Committed = s.committed
	e.Bubbles = s.bubbles
}

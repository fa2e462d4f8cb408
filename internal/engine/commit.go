package engine

import (
	"github.com/sarchlab/tomasim/internal/isa"
	"github.com/sarchlab/tomasim/internal/regfile"
	"github.com/sarchlab/tomasim/internal/rob"
)

// commitStage operates on the entry at head. Reaching WriteResult costs
// two cycles at head: the first marks the transition to Commit, the
// second retires. Returns whether a retire (not merely a transition)
// happened this cycle, which is what the bubble accounting in Tick
// cares about.
func (e *Engine) commitStage() bool {
	if e.ROB.IsEmpty() {
		return false
	}

	entry := e.ROB.At(e.ROB.Head())
	if !entry.Busy {
		return false
	}

	switch entry.State {
	case rob.WriteResult:
		entry.State = rob.Commit
		entry.Inst.CommitCycle = e.Cycle
		entry.CommitMarkedCycle = e.Cycle
		return false
	case rob.Commit:
		if entry.CommitMarkedCycle == e.Cycle {
			return false
		}
		return e.retire(entry)
	default:
		return false
	}
}

// retire dispatches on instruction kind per §4.5's second-cycle rules.
func (e *Engine) retire(entry *rob.Entry) bool {
	switch entry.Kind {
	case isa.KindStore:
		e.retireEntry(entry)
		e.Committed++
		return true

	case isa.KindBranch:
		if entry.ActualTaken == entry.PredictedTaken {
			e.retireEntry(entry)
			e.Committed++
			return true
		}
		e.mispredictionRecovery(entry)
		return true

	default: // ALU, load, shift — anything that writes a register.
		if entry.DestReg != "" {
			e.RF.CommitWriteback(entry.DestReg, entry.Index, entry.Result)
		}
		e.retireEntry(entry)
		e.Committed++
		return true
	}
}

func (e *Engine) retireEntry(entry *rob.Entry) {
	entry.Clear()
	e.ROB.AdvanceHead()
}

// mispredictionRecovery implements §4.6 atomically within the
// committing tick: PC redirect, flush of everything younger than the
// branch (the branch included), register tag invalidation, unconditional
// RS clear, and a ring reset that snaps head = tail = the post-branch
// position.
func (e *Engine) mispredictionRecovery(branch *rob.Entry) {
	branchIdx := branch.Index

	if branch.ActualTaken {
		e.PC = branch.Target
	} else {
		e.PC = branch.ProgramIndex + 1
	}

	flush := e.ROB.BusyIndicesAfterHead()
	flush = append(flush, branchIdx)
	flushSet := make(map[int]bool, len(flush))
	for _, idx := range flush {
		flushSet[idx] = true
	}

	for _, name := range e.RF.Names() {
		reg := e.RF.Get(name)
		if reg == nil || !reg.Busy {
			continue
		}
		if flushSet[reg.Tag] || reg.Tag == regfile.NoTag {
			e.RF.ForceClear(name)
		}
	}
	e.RF.ResetZero()

	e.RS.ClearAll()

	for _, idx := range flush {
		e.ROB.At(idx).Clear()
	}
	postIdx := (branchIdx + 1) % e.ROB.Capacity()
	e.ROB.ResetTo(postIdx)

	e.Committed++
	e.Bubbles++
}

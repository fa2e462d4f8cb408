package engine

import (
	"sort"

	"github.com/sarchlab/tomasim/internal/isa"
	"github.com/sarchlab/tomasim/internal/rob"
	"github.com/sarchlab/tomasim/internal/rs"
)

// executeStage advances every busy RS by one step. A functional-unit
// class may start at most one new RS this cycle; RS already executing
// are unaffected by that gate and decrement regardless.
func (e *Engine) executeStage() {
	var readyToStart []int

	for i := 0; i < e.RS.Len(); i++ {
		slot := e.RS.At(i)
		if !slot.Busy {
			continue
		}

		entry := e.ROB.At(slot.Dest)
		if !entry.Busy {
			slot.Clear()
			continue
		}

		inst := entry.Inst
		if entry.State == rob.Executing {
			inst.RemainingCycles--
			if inst.RemainingCycles <= 0 {
				e.completeExecution(entry, slot)
			}
			continue
		}
		if entry.State == rob.ReadyToWrite {
			continue
		}

		if !slot.Vj.Known {
			continue
		}
		if slot.HasVk && !slot.Vk.Known {
			continue
		}
		readyToStart = append(readyToStart, i)
	}

	sort.Slice(readyToStart, func(a, b int) bool {
		return e.RS.At(readyToStart[a]).Dest < e.RS.At(readyToStart[b]).Dest
	})

	started := make(map[isa.RSClass]bool, len(rs.Classes()))
	for _, i := range readyToStart {
		slot := e.RS.At(i)
		if started[slot.Class] {
			continue
		}
		started[slot.Class] = true

		entry := e.ROB.At(slot.Dest)
		inst := entry.Inst
		inst.ExecuteStartCycle = e.Cycle
		entry.State = rob.Executing
		inst.RemainingCycles--
		if inst.RemainingCycles <= 0 {
			e.completeExecution(entry, slot)
		}
	}
}

// completeExecution computes an RS's result once its remaining-cycles
// countdown reaches zero and deposits it on the producing ROB entry.
func (e *Engine) completeExecution(entry *rob.Entry, slot *rs.Slot) {
	vj := slot.Vj.Value
	vk := int64(0)
	if slot.HasVk {
		vk = slot.Vk.Value
	}

	switch entry.Kind {
	case isa.KindLoad:
		addr := vj + entry.Inst.Address
		entry.Result = isa.IntResult(e.Mem.Read(addr))
	case isa.KindStore:
		addr := vj + entry.Inst.Address
		e.Mem.Write(addr, vk)
		entry.Result = isa.SentinelResult(isa.MemStored)
	case isa.KindBranch:
		actual := isa.EvaluateBranch(slot.Op, vj, vk)
		entry.ActualTaken = actual
		entry.ActualKnown = true
		entry.Result = isa.SentinelResult(isa.BranchEvaluated)
	default:
		entry.Result = isa.ComputeALU(slot.Op, vj, vk)
	}

	entry.State = rob.ReadyToWrite
	entry.Inst.ReadyToWrite = true
}

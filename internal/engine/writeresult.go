package engine

import "github.com/sarchlab/tomasim/internal/rob"

// writeResultStage lets at most one ready ROB entry broadcast on the
// CDB this cycle, chosen as the smallest stable ROB index among
// ReadyToWrite entries that have not yet broadcast — oldest-first by
// ID, not by ring position relative to head (see the engine's design
// notes on this deliberate deviation from canonical presentations).
func (e *Engine) writeResultStage() bool {
	bestIdx := -1
	for i := 0; i < e.ROB.Capacity(); i++ {
		entry := e.ROB.At(i)
		if entry.Busy && entry.State == rob.ReadyToWrite && entry.Inst.WriteResultCycle == -1 {
			if bestIdx == -1 || i < bestIdx {
				bestIdx = i
			}
		}
	}
	if bestIdx == -1 {
		return false
	}

	entry := e.ROB.At(bestIdx)
	entry.Inst.WriteResultCycle = e.Cycle
	entry.State = rob.WriteResult

	for i := 0; i < e.RS.Len(); i++ {
		slot := e.RS.At(i)
		if !slot.Busy {
			continue
		}
		if !slot.Vj.Known && slot.Vj.Tag == bestIdx {
			slot.Vj.Known = true
			slot.Vj.Value = entry.Result.Value
		}
		if slot.HasVk && !slot.Vk.Known && slot.Vk.Tag == bestIdx {
			slot.Vk.Known = true
			slot.Vk.Value = entry.Result.Value
		}
	}

	if entry.ProducerRS != -1 {
		producer := e.RS.At(entry.ProducerRS)
		if producer.Busy && producer.Dest == bestIdx {
			producer.Clear()
		}
	}

	return true
}

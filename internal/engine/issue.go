package engine

import (
	"github.com/sarchlab/tomasim/internal/rob"
	"github.com/sarchlab/tomasim/internal/rs"
)

// issueStage attempts to issue the instruction at PC, returning whether
// it succeeded. Issue requires both a free ROB tail entry and a free RS
// of the opcode's class; failing either, the instruction stays at PC and
// nothing is mutated.
func (e *Engine) issueStage() bool {
	if e.PC >= len(e.Program) {
		return false
	}
	if e.ROB.IsFull() {
		return false
	}

	template := &e.Program[e.PC]
	class := template.Op.RSClass()
	slotIdx := e.RS.FreeSlot(class)
	if slotIdx == -1 {
		return false
	}

	tailIdx := e.ROB.Tail()
	entry := e.ROB.At(tailIdx)
	inst := template.Instantiate()
	inst.IssueCycle = e.Cycle

	*entry = rob.Entry{
		Index:             entry.Index,
		Busy:              true,
		State:             rob.Issued,
		Inst:              inst,
		ProgramIndex:      e.PC,
		ProducerRS:        slotIdx,
		Kind:              template.Op.Kind(),
		IsStore:           template.Op.IsStore(),
		CommitMarkedCycle: -1,
	}

	if template.Op.IsBranch() {
		entry.PredictedTaken = false // static predictor: always NOT_TAKEN
		entry.Target = int(template.Address)
	}

	slot := e.RS.At(slotIdx)
	*slot = rs.Slot{Class: class, Busy: true, Op: template.Op, Dest: tailIdx}

	if template.HasSrc1 {
		slot.Vj = e.resolveOperand(template.Src1)
	} else {
		slot.Vj = rs.KnownValue(0)
	}

	switch {
	case template.Op.IsShift():
		slot.Vk = rs.KnownValue(template.Immediate)
		slot.HasVk = true
	case template.Op.IsStore():
		slot.Vk = e.resolveOperand(template.Src2)
		slot.HasVk = true
	case template.Op.IsLoad():
		// no second operand; offset lives in Address.
	default:
		if template.HasSrc2 {
			slot.Vk = e.resolveOperand(template.Src2)
			slot.HasVk = true
		}
	}

	if template.Op.WritesRegister() && template.HasDest {
		entry.DestReg = template.Dest
		e.RF.Rename(template.Dest, tailIdx)
	}

	e.PC++
	e.ROB.AdvanceTail()
	return true
}

// resolveOperand captures a source register's operand per §4.2 step 4: a
// non-busy register yields its resolved value; a busy one yields a
// forwarded value if its producer has already reached Write-Result, or
// else a pending tag naming that producer.
func (e *Engine) resolveOperand(name string) rs.Operand {
	reg := e.RF.Ensure(name)
	if !reg.Busy {
		return rs.KnownValue(e.RF.NumericValue(name))
	}
	producer := e.ROB.At(reg.Tag)
	if producer.Busy && producer.State == rob.WriteResult {
		return rs.KnownValue(producer.Result.Value)
	}
	return rs.PendingTag(reg.Tag)
}

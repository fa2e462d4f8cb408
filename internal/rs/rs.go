// Package rs implements the reservation stations: typed execution slots
// that hold either resolved operand values or pending tags (ROB
// indices) until both operands are ready, then dispatch to their
// functional-unit class subject to a one-start-per-class-per-cycle gate.
package rs

import "github.com/sarchlab/tomasim/internal/isa"

// Operand is a tagged union: EITHER a resolved value (Known) OR a
// pending tag naming the ROB index that will produce it. Never both —
// encoding this as two nullable fields would lose that invariant.
type Operand struct {
	Known bool
	Value int64
	Tag   int // ROB index awaited, meaningful only when !Known
}

// KnownValue builds a resolved operand. Operand slots that don't apply
// to a given opcode (e.g. a load's second operand) are simply never
// consulted — callers branch on the opcode, not on any sentinel here.
func KnownValue(v int64) Operand { return Operand{Known: true, Value: v} }

// PendingTag builds an operand waiting on the given ROB index.
func PendingTag(tag int) Operand { return Operand{Known: false, Tag: tag} }

// Slot is a single reservation-station entry. The instruction record
// itself is owned by the ROB entry at Dest — Slot only keeps the index,
// per the relational (not owning) cross-reference discipline between RS
// and ROB.
type Slot struct {
	Class  isa.RSClass
	Busy   bool
	Op     isa.Opcode
	Vj, Vk Operand
	HasVk  bool // whether this opcode uses a second operand at all
	Dest   int  // destination ROB index
}

// Clear resets the slot to its empty state.
func (s *Slot) Clear() {
	*s = Slot{Class: s.Class}
}

// Pool is the fixed array of reservation stations, partitioned by class.
// Slot identity (its index) is stable for the engine's lifetime so ROB
// entries can hold a plain int back-reference instead of a pointer.
type Pool struct {
	slots []Slot
}

// NewPool allocates counts[class] slots for each class, in the fixed
// order MEM, ADD, BRANCH, MUL.
func NewPool(numMem, numAdd, numBranch, numMul int) *Pool {
	p := &Pool{}
	add := func(class isa.RSClass, n int) {
		for i := 0; i < n; i++ {
			p.slots = append(p.slots, Slot{Class: class})
		}
	}
	add(isa.ClassMem, numMem)
	add(isa.ClassAdd, numAdd)
	add(isa.ClassBranch, numBranch)
	add(isa.ClassMul, numMul)
	return p
}

// Len returns the total number of reservation stations.
func (p *Pool) Len() int { return len(p.slots) }

// At returns a pointer to the slot at the given stable index.
func (p *Pool) At(i int) *Slot { return &p.slots[i] }

// FreeSlot returns the index of a free slot of the given class, or -1.
func (p *Pool) FreeSlot(class isa.RSClass) int {
	for i := range p.slots {
		if p.slots[i].Class == class && !p.slots[i].Busy {
			return i
		}
	}
	return -1
}

// BusyInClass returns the indices of all busy slots of the given class.
func (p *Pool) BusyInClass(class isa.RSClass) []int {
	var out []int
	for i := range p.slots {
		if p.slots[i].Class == class && p.slots[i].Busy {
			out = append(out, i)
		}
	}
	return out
}

// Classes enumerates the functional-unit classes in a fixed order, used
// wherever the engine needs to apply the one-start-per-class gate.
func Classes() []isa.RSClass {
	return []isa.RSClass{isa.ClassMem, isa.ClassAdd, isa.ClassBranch, isa.ClassMul}
}

// ClearAll unconditionally clears every slot, used during misprediction
// recovery.
func (p *Pool) ClearAll() {
	for i := range p.slots {
		p.slots[i].Clear()
	}
}

// Clone returns a deep, independent copy for history snapshots. Slot is
// plain-data (no pointers), so a value copy is already independent.
func (p *Pool) Clone() *Pool {
	cp := &Pool{slots: make([]Slot, len(p.slots))}
	copy(cp.slots, p.slots)
	return cp
}

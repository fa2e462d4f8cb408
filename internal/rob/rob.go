// Package rob implements the Reorder Buffer: a fixed-size circular
// buffer of in-flight instructions that is the single source of truth
// for program order, completion state, and committed results.
package rob

import "github.com/sarchlab/tomasim/internal/isa"

// State is an entry's position in the Issue -> Execute -> Write-Result
// -> Commit state machine.
type State int

const (
	Empty State = iota
	Issued
	Executing
	ReadyToWrite
	WriteResult
	Commit
)

// Entry is one in-flight instruction's ROB record.
type Entry struct {
	Index int
	Busy  bool
	State State

	Inst *isa.Instruction // owning reference; RS holds only Index back-references.

	DestReg string // destination register name; "" for stores/branches.
	IsStore bool   // true for SW/SB — DestReg is meaningless, a synthesized marker.

	Result isa.Result

	ProgramIndex int // this instruction's position in the source listing.
	ProducerRS   int // index into the RS pool that produced this entry, or -1.
	Kind         isa.Kind

	// Branch-only fields.
	PredictedTaken bool
	ActualTaken    bool
	ActualKnown    bool
	Target         int // program-order index of the branch target.

	// CommitMarkedCycle records the cycle the entry transitioned to the
	// Commit state, so the second commit cycle can be recognized.
	CommitMarkedCycle int64
}

// Ring is the fixed-capacity circular ROB.
type Ring struct {
	entries    []Entry
	head, tail int
	count      int
	capacity   int
}

// New allocates a Ring with the given capacity; all entries start Empty.
func New(capacity int) *Ring {
	r := &Ring{entries: make([]Entry, capacity), capacity: capacity}
	for i := range r.entries {
		r.entries[i] = Entry{Index: i, ProducerRS: -1, CommitMarkedCycle: -1}
	}
	return r
}

// Capacity returns the ring's fixed size.
func (r *Ring) Capacity() int { return r.capacity }

// Count returns the current occupancy.
func (r *Ring) Count() int { return r.count }

// Head returns the index of the oldest in-flight entry (commit target).
func (r *Ring) Head() int { return r.head }

// Tail returns the index the next Issue would claim.
func (r *Ring) Tail() int { return r.tail }

// At returns a pointer to the entry at the given stable ring index.
func (r *Ring) At(i int) *Entry { return &r.entries[i] }

// IsEmpty reports whether the ring holds no in-flight instructions.
func (r *Ring) IsEmpty() bool { return r.count == 0 }

// IsFull reports whether the entry at tail is busy (no room to issue).
func (r *Ring) IsFull() bool { return r.entries[r.tail].Busy }

// AdvanceTail bumps tail (mod capacity) and increments occupancy. Called
// after Issue populates the entry at the old tail.
func (r *Ring) AdvanceTail() {
	r.tail = (r.tail + 1) % r.capacity
	r.count++
}

// AdvanceHead bumps head (mod capacity) and decrements occupancy. Called
// after Commit retires the entry at the old head.
func (r *Ring) AdvanceHead() {
	r.head = (r.head + 1) % r.capacity
	r.count--
}

// BusyIndicesAfterHead returns the ring indices of every busy entry
// strictly younger than head — i.e. walking tail-ward from head+1 up to
// (not including) tail. Used by misprediction recovery to find the
// flush set.
func (r *Ring) BusyIndicesAfterHead() []int {
	var out []int
	for i := (r.head + 1) % r.capacity; i != r.tail; i = (i + 1) % r.capacity {
		if r.entries[i].Busy {
			out = append(out, i)
		}
	}
	return out
}

// ResetTo snaps head and tail to idx and zeroes occupancy — used by
// misprediction recovery once the flush set has been cleared.
func (r *Ring) ResetTo(idx int) {
	r.head = idx
	r.tail = idx
	r.count = 0
}

// Clear resets an entry to its Empty state.
func (e *Entry) Clear() {
	idx := e.Index
	*e = Entry{Index: idx, ProducerRS: -1, CommitMarkedCycle: -1}
}

// Clone returns a deep, independent copy for history snapshots.
func (r *Ring) Clone() *Ring {
	cp := &Ring{
		entries:  make([]Entry, len(r.entries)),
		head:     r.head,
		tail:     r.tail,
		count:    r.count,
		capacity: r.capacity,
	}
	for i, e := range r.entries {
		cpEntry := e
		cpEntry.Inst = e.Inst.Clone()
		cp.entries[i] = cpEntry
	}
	return cp
}

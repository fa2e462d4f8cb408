// Package regfile provides the architectural register file: named
// registers each carrying a value plus an optional rename tag pointing
// into the ROB. R0 is architecturally wired to zero and is never
// renamed.
package regfile

import "github.com/sarchlab/tomasim/internal/isa"

// ZeroRegister is the name of the constant-zero register. It is never
// marked busy and any attempted rename on it is discarded.
const ZeroRegister = "R0"

// NoTag marks the absence of a rename tag.
const NoTag = -1

// Register is a single named architectural register. Its value is an
// isa.Result rather than a bare integer: a register that receives a
// committed DIV_BY_ZERO_ERROR (or another sentinel) takes that sentinel,
// not a numeric stand-in — the ordinary-integer case is just the common
// instance of isa.Result with IsValue set.
type Register struct {
	Name  string
	Value isa.Result
	Busy  bool
	Tag   int // ROB index, or NoTag
}

// RegisterFile holds all named registers seen so far. Register names are
// free-form and created on first reference with value 0, mirroring how
// the trace loader introduces them.
type RegisterFile struct {
	regs map[string]*Register
}

// New returns an empty register file. R0 is created immediately, pinned
// to zero.
func New() *RegisterFile {
	rf := &RegisterFile{regs: make(map[string]*Register)}
	rf.regs[ZeroRegister] = &Register{Name: ZeroRegister, Value: isa.IntResult(0), Tag: NoTag}
	return rf
}

// Ensure creates the named register (value 0, no tag) if it does not
// already exist, and returns it.
func (rf *RegisterFile) Ensure(name string) *Register {
	if r, ok := rf.regs[name]; ok {
		return r
	}
	r := &Register{Name: name, Value: isa.IntResult(0), Tag: NoTag}
	rf.regs[name] = r
	return r
}

// Get returns the named register, or nil if it has never been seen.
func (rf *RegisterFile) Get(name string) *Register {
	return rf.regs[name]
}

// Names returns every register name known to the file, in no particular
// order.
func (rf *RegisterFile) Names() []string {
	names := make([]string, 0, len(rf.regs))
	for n := range rf.regs {
		names = append(names, n)
	}
	return names
}

// Value returns the register's current result (0 if never seen).
func (rf *RegisterFile) Value(name string) isa.Result {
	r := rf.regs[name]
	if r == nil {
		return isa.IntResult(0)
	}
	return r.Value
}

// NumericValue returns the register's numeric value, or 0 if it
// currently holds a non-numeric sentinel. Used wherever the engine needs
// a plain operand to do arithmetic or address calculation with.
func (rf *RegisterFile) NumericValue(name string) int64 {
	r := rf.regs[name]
	if r == nil || !r.Value.IsValue {
		return 0
	}
	return r.Value.Value
}

// Rename marks name busy with the given ROB tag. R0 is never renamed.
func (rf *RegisterFile) Rename(name string, tag int) {
	if name == ZeroRegister {
		return
	}
	r := rf.Ensure(name)
	r.Busy = true
	r.Tag = tag
}

// ForceClear unconditionally clears busy/tag, used during misprediction
// recovery.
func (rf *RegisterFile) ForceClear(name string) {
	r := rf.regs[name]
	if r == nil {
		return
	}
	r.Busy = false
	r.Tag = NoTag
}

// CommitWriteback writes result to name and clears its rename tag, but
// only if the register's current tag still equals tag — a younger
// rename means a younger instruction already owns this register and
// this commit's value must be discarded. Returns whether the write
// happened.
func (rf *RegisterFile) CommitWriteback(name string, tag int, result isa.Result) bool {
	r := rf.regs[name]
	if r == nil || !r.Busy || r.Tag != tag {
		return false
	}
	r.Value = result
	r.Busy = false
	r.Tag = NoTag
	return true
}

// Seed sets the register's initial value without affecting its busy/tag
// state, used to apply the seed contract before simulation starts.
func (rf *RegisterFile) Seed(name string, value int64) {
	if name == ZeroRegister {
		return
	}
	r := rf.Ensure(name)
	r.Value = isa.IntResult(value)
}

// ResetZero re-pins R0 to {value: 0, busy: false, tag: absent}, restoring
// the invariant after a flush.
func (rf *RegisterFile) ResetZero() {
	rf.regs[ZeroRegister] = &Register{Name: ZeroRegister, Value: isa.IntResult(0), Tag: NoTag}
}

// Clone returns a deep, independent copy for history snapshots.
func (rf *RegisterFile) Clone() *RegisterFile {
	cp := &RegisterFile{regs: make(map[string]*Register, len(rf.regs))}
	for name, r := range rf.regs {
		cpReg := *r
		cp.regs[name] = &cpReg
	}
	return cp
}

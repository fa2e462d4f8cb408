package memory_test

import (
	"testing"

	"github.com/sarchlab/tomasim/internal/memory"
)

func TestUnsetAddressReadsZero(t *testing.T) {
	m := memory.New()
	if got := m.Read(42); got != 0 {
		t.Errorf("Read(42) = %d, want 0", got)
	}
}

func TestWriteThenRead(t *testing.T) {
	m := memory.New()
	m.Write(108, 5)
	if got := m.Read(108); got != 5 {
		t.Errorf("Read(108) = %d, want 5", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := memory.New()
	m.Write(1, 1)

	clone := m.Clone()
	clone.Write(1, 2)

	if got := m.Read(1); got != 1 {
		t.Errorf("original mutated by clone write: Read(1) = %d, want 1", got)
	}
	if got := clone.Read(1); got != 2 {
		t.Errorf("clone.Read(1) = %d, want 2", got)
	}
}

package metrics_test

import (
	"testing"

	"github.com/sarchlab/tomasim/internal/metrics"
)

func TestComputeAvoidsDivideByZero(t *testing.T) {
	s := metrics.Compute(0, 0, 0, 0)
	if s.IPC != 0 {
		t.Errorf("IPC = %f, want 0 when total_cycles = 0", s.IPC)
	}
}

func TestComputeIPC(t *testing.T) {
	s := metrics.Compute(10, 5, 2, 8)
	if s.IPC != 0.5 {
		t.Errorf("IPC = %f, want 0.5", s.IPC)
	}
	if s.TotalCycles != 10 || s.CommittedInstructions != 5 || s.BubbleCycles != 2 || s.ProgramCounter != 8 {
		t.Errorf("Compute snapshot = %+v, unexpected field", s)
	}
}

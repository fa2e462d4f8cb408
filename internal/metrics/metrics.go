// Package metrics defines the engine's read-only performance surface.
package metrics

// Snapshot is the engine's externally visible performance counters.
type Snapshot struct {
	TotalCycles           int64
	CommittedInstructions int64
	IPC                   float64
	BubbleCycles          int64
	ProgramCounter        int
}

// Compute derives IPC from cycles/committed, returning 0 when no cycles
// have elapsed yet rather than dividing by zero.
func Compute(totalCycles, committed, bubbles int64, pc int) Snapshot {
	s := Snapshot{
		TotalCycles:           totalCycles,
		CommittedInstructions: committed,
		BubbleCycles:          bubbles,
		ProgramCounter:        pc,
	}
	if totalCycles > 0 {
		s.IPC = float64(committed) / float64(totalCycles)
	}
	return s
}

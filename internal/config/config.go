// Package config holds the engine's construction-time parameters: the
// reservation-station counts, ROB capacity, and the register/memory
// seed applied on load. It mirrors the teacher pipeline's latency
// config package — a plain struct with JSON-file load/save and a
// documented set of defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// CoreConfig controls the size of the engine's resource pools.
type CoreConfig struct {
	// NumMemRS is the number of MEM-class reservation stations. Default 2.
	NumMemRS int `json:"num_mem_rs"`
	// NumAddRS is the number of ADD-class reservation stations. Default 3.
	NumAddRS int `json:"num_add_rs"`
	// NumLogicRS is the number of BRANCH-class reservation stations
	// (logic ops, shifts, and branches all dispatch here). Default 2.
	NumLogicRS int `json:"num_logic_rs"`
	// NumMultRS is the number of MUL-class reservation stations. Default 1.
	NumMultRS int `json:"num_mult_rs"`
	// ROBSize is the ROB ring's capacity. Default 8.
	ROBSize int `json:"rob_size"`
}

// DefaultCoreConfig returns the engine's documented default resource
// counts.
func DefaultCoreConfig() CoreConfig {
	return CoreConfig{
		NumMemRS:   2,
		NumAddRS:   3,
		NumLogicRS: 2,
		NumMultRS:  1,
		ROBSize:    8,
	}
}

// LoadCoreConfig reads a CoreConfig from a JSON file, starting from the
// defaults so a partial file only overrides the fields it sets.
func LoadCoreConfig(path string) (CoreConfig, error) {
	cfg := DefaultCoreConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read core config file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse core config: %w", err)
	}
	return cfg, nil
}

// Save writes the CoreConfig to a JSON file.
func (c CoreConfig) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal core config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Seed is the initial register/memory contents applied by Reset before
// the first tick.
type Seed struct {
	Registers map[string]int64 `json:"registers"`
	Memory    map[int64]int64  `json:"memory"`
}

// DefaultSeed returns the documented seed contract: R0=0 (pinned
// elsewhere), R1=5, R2=5; memory[12]=7, memory[16]=0, memory[108]=5.
func DefaultSeed() Seed {
	return Seed{
		Registers: map[string]int64{
			"R1": 5,
			"R2": 5,
		},
		Memory: map[int64]int64{
			12:  7,
			16:  0,
			108: 5,
		},
	}
}

// LoadSeed reads a Seed from a JSON file.
func LoadSeed(path string) (Seed, error) {
	var s Seed
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read seed file: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse seed: %w", err)
	}
	return s, nil
}

package config_test

import (
	"path/filepath"
	"testing"

	"github.com/sarchlab/tomasim/internal/config"
)

func TestDefaultCoreConfig(t *testing.T) {
	cfg := config.DefaultCoreConfig()
	want := config.CoreConfig{NumMemRS: 2, NumAddRS: 3, NumLogicRS: 2, NumMultRS: 1, ROBSize: 8}
	if cfg != want {
		t.Errorf("DefaultCoreConfig() = %+v, want %+v", cfg, want)
	}
}

func TestCoreConfigSaveLoadRoundTrip(t *testing.T) {
	cfg := config.CoreConfig{NumMemRS: 4, NumAddRS: 1, NumLogicRS: 1, NumMultRS: 2, ROBSize: 16}
	path := filepath.Join(t.TempDir(), "core.json")

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := config.LoadCoreConfig(path)
	if err != nil {
		t.Fatalf("LoadCoreConfig returned error: %v", err)
	}
	if loaded != cfg {
		t.Errorf("round-tripped config = %+v, want %+v", loaded, cfg)
	}
}

func TestDefaultSeed(t *testing.T) {
	seed := config.DefaultSeed()
	if seed.Registers["R1"] != 5 || seed.Registers["R2"] != 5 {
		t.Errorf("DefaultSeed registers = %+v, want R1=5, R2=5", seed.Registers)
	}
	if seed.Memory[12] != 7 || seed.Memory[16] != 0 || seed.Memory[108] != 5 {
		t.Errorf("DefaultSeed memory = %+v, want {12:7, 16:0, 108:5}", seed.Memory)
	}
}

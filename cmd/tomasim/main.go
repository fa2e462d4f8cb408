// Package main provides the entry point for tomasim.
// tomasim is a cycle-accurate Tomasulo/ROB pipeline simulator.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/sarchlab/tomasim/internal/config"
	"github.com/sarchlab/tomasim/internal/engine"
	"github.com/sarchlab/tomasim/internal/trace"
)

var (
	tracePath  = flag.String("trace", "", "path to the instruction trace file")
	configPath = flag.String("config", "", "path to core configuration JSON file")
	seedPath   = flag.String("seed", "", "path to register/memory seed JSON file")
	maxCycles  = flag.Int64("cycles", 100000, "maximum cycles to run before giving up")
	stepBack   = flag.Int("step-back", 0, "after finishing, step back this many cycles and report state")
	verbose    = flag.Bool("v", false, "verbose per-cycle output")
)

func main() {
	flag.Parse()

	if *tracePath == "" {
		fmt.Fprintf(os.Stderr, "Usage: tomasim -trace <file> [options]\n\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	program, err := trace.Load(*tracePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading trace: %v\n", err)
		os.Exit(1)
	}

	cfg := config.DefaultCoreConfig()
	if *configPath != "" {
		cfg, err = config.LoadCoreConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading core config: %v\n", err)
			os.Exit(1)
		}
	}

	seed := config.DefaultSeed()
	if *seedPath != "" {
		seed, err = config.LoadSeed(*seedPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading seed: %v\n", err)
			os.Exit(1)
		}
	}

	if *verbose {
		fmt.Printf("Loaded trace: %s (%d instructions)\n", *tracePath, len(program))
	}

	eng := engine.New(cfg, program, seed)

	cycles := int64(0)
	for cycles < *maxCycles && !eng.IsFinished() {
		eng.Tick()
		cycles++
		if *verbose {
			m := eng.Metrics()
			fmt.Printf("cycle %d: pc=%d committed=%d bubbles=%d\n",
				m.TotalCycles, m.ProgramCounter, m.CommittedInstructions, m.BubbleCycles)
		}
	}

	if *stepBack > 0 {
		for i := 0; i < *stepBack; i++ {
			if !eng.StepBack() {
				fmt.Fprintf(os.Stderr, "history exhausted after %d step(s) back\n", i)
				break
			}
		}
	}

	report(eng)
}

func report(eng *engine.Engine) {
	m := eng.Metrics()
	fmt.Printf("\nFinished: %v\n", eng.IsFinished())
	fmt.Printf("Total cycles: %d\n", m.TotalCycles)
	fmt.Printf("Committed instructions: %d\n", m.CommittedInstructions)
	fmt.Printf("IPC: %.3f\n", m.IPC)
	fmt.Printf("Bubble cycles: %d\n", m.BubbleCycles)
	fmt.Printf("Program counter: %d\n", m.ProgramCounter)

	fmt.Printf("\nRegisters:\n")
	names := eng.RF.Names()
	sort.Strings(names)
	for _, name := range names {
		result := eng.RF.Value(name)
		if result.IsValue {
			fmt.Printf("  %-4s = %d\n", name, result.Value)
		} else {
			fmt.Printf("  %-4s = %s\n", name, result.Sentinel)
		}
	}
}

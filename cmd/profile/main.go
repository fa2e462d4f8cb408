// Package main provides a profiling wrapper for tomasim to identify
// performance bottlenecks in the tick loop.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sarchlab/tomasim/internal/config"
	"github.com/sarchlab/tomasim/internal/engine"
	"github.com/sarchlab/tomasim/internal/trace"
)

var (
	cpuProfile = flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile = flag.String("memprofile", "", "write memory profile to file")
	maxCycles  = flag.Int64("max-cycles", 1000000, "max cycles to run (0 = unlimited)")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: profile [options] <trace-file>\n\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	tracePath := flag.Arg(0)

	program, err := trace.Load(tracePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading trace: %v\n", err)
		os.Exit(1)
	}

	eng := engine.New(config.DefaultCoreConfig(), program, config.DefaultSeed())

	start := time.Now()
	cycles := runEngine(eng)
	elapsed := time.Since(start)

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating memory profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing memory profile: %v\n", err)
		}
	}

	fmt.Printf("Profiling Results:\n")
	fmt.Printf("Cycles run: %d\n", cycles)
	fmt.Printf("Committed instructions: %d\n", eng.Committed)
	fmt.Printf("Elapsed time: %v\n", elapsed)
	if elapsed.Seconds() > 0 {
		fmt.Printf("Cycles/second: %.0f\n", float64(cycles)/elapsed.Seconds())
	}
}

// runEngine ticks eng to completion or until the configured cycle cap,
// returning the number of cycles actually run.
func runEngine(eng *engine.Engine) int64 {
	var cycles int64
	for (*maxCycles == 0 || cycles < *maxCycles) && !eng.IsFinished() {
		eng.Tick()
		cycles++
	}
	return cycles
}

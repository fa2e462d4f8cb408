// Package main provides the entry point for tomasim.
// tomasim is a cycle-accurate Tomasulo/ROB pipeline simulator.
//
// For the full CLI, use: go run ./cmd/tomasim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("tomasim - Tomasulo/ROB pipeline simulator")
	fmt.Println("")
	fmt.Println("Usage: tomasim -trace <file> [options]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config      Path to core configuration JSON file")
	fmt.Println("  -seed        Path to register/memory seed JSON file")
	fmt.Println("  -cycles      Maximum cycles to run")
	fmt.Println("  -step-back   Step back N cycles after finishing")
	fmt.Println("  -v           Verbose per-cycle output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/tomasim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/tomasim' instead.")
	}
}

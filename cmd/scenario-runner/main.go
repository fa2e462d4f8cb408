// Package main provides a CLI tool to run the engine's golden scenarios
// and report pass/fail, the spiritual successor to the teacher's SPEC
// benchmark-availability checker, retargeted at fixed correctness
// fixtures instead of benchmark discovery.
package main

import (
	"fmt"
	"os"

	"github.com/sarchlab/tomasim/internal/scenarios"
)

func main() {
	all := scenarios.All()

	failed := 0
	for _, sc := range all {
		eng := scenarios.Run(sc)
		failures := scenarios.Verify(sc, eng)

		if len(failures) == 0 {
			fmt.Printf("ok   %s (cycles=%d committed=%d bubbles=%d)\n",
				sc.Name, eng.Cycle, eng.Committed, eng.Bubbles)
			continue
		}

		failed++
		fmt.Printf("FAIL %s\n", sc.Name)
		for _, f := range failures {
			fmt.Printf("     %s\n", f)
		}
	}

	fmt.Printf("\n%d/%d scenarios passed\n", len(all)-failed, len(all))
	if failed > 0 {
		os.Exit(1)
	}
}

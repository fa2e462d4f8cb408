package scenarios_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tomasim/internal/scenarios"
)

func TestScenarios(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Scenarios Suite")
}

var _ = Describe("All", func() {
	It("names each of the six golden scenarios exactly once", func() {
		all := scenarios.All()
		Expect(all).To(HaveLen(6))

		seen := map[string]bool{}
		for _, sc := range all {
			Expect(seen[sc.Name]).To(BeFalse(), "duplicate scenario name %q", sc.Name)
			seen[sc.Name] = true
		}
	})

	for _, sc := range scenarios.All() {
		sc := sc
		It("passes verification for "+sc.Name, func() {
			eng := scenarios.Run(sc)
			Expect(scenarios.Verify(sc, eng)).To(BeEmpty())
		})
	}
})

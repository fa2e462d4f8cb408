package rs_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tomasim/internal/isa"
	"github.com/sarchlab/tomasim/internal/rs"
)

func TestRS(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Reservation Station Suite")
}

var _ = Describe("Pool", func() {
	var pool *rs.Pool

	BeforeEach(func() {
		pool = rs.NewPool(2, 3, 2, 1)
	})

	It("allocates the requested count per class in MEM, ADD, BRANCH, MUL order", func() {
		Expect(pool.Len()).To(Equal(8))
		Expect(pool.At(0).Class).To(Equal(isa.ClassMem))
		Expect(pool.At(2).Class).To(Equal(isa.ClassAdd))
		Expect(pool.At(5).Class).To(Equal(isa.ClassBranch))
		Expect(pool.At(7).Class).To(Equal(isa.ClassMul))
	})

	It("finds a free slot of the requested class", func() {
		idx := pool.FreeSlot(isa.ClassAdd)
		Expect(idx).To(BeNumerically(">=", 2))
		Expect(idx).To(BeNumerically("<", 5))
	})

	It("reports -1 when no free slot of a class remains", func() {
		for {
			idx := pool.FreeSlot(isa.ClassMul)
			if idx == -1 {
				break
			}
			pool.At(idx).Busy = true
		}
		Expect(pool.FreeSlot(isa.ClassMul)).To(Equal(-1))
	})

	It("lists busy indices within a class", func() {
		pool.At(2).Busy = true
		pool.At(4).Busy = true
		Expect(pool.BusyInClass(isa.ClassAdd)).To(Equal([]int{2, 4}))
	})

	It("clears every slot on ClearAll", func() {
		pool.At(0).Busy = true
		pool.At(7).Busy = true
		pool.ClearAll()
		for i := 0; i < pool.Len(); i++ {
			Expect(pool.At(i).Busy).To(BeFalse())
		}
	})

	It("clones independently of the original", func() {
		pool.At(0).Busy = true
		pool.At(0).Vj = rs.KnownValue(42)
		clone := pool.Clone()

		clone.At(0).Busy = false

		Expect(pool.At(0).Busy).To(BeTrue())
		Expect(pool.At(0).Vj.Value).To(Equal(int64(42)))
	})
})

var _ = Describe("Operand", func() {
	It("builds a known value with no tag semantics", func() {
		op := rs.KnownValue(17)
		Expect(op.Known).To(BeTrue())
		Expect(op.Value).To(Equal(int64(17)))
	})

	It("builds a pending tag with no resolved value", func() {
		op := rs.PendingTag(3)
		Expect(op.Known).To(BeFalse())
		Expect(op.Tag).To(Equal(3))
	})
})

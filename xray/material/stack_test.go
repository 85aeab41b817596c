package material

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func placeholder(name string, mm float64) *Record {
	return NewRecord(name, mm, 1, nil)
}

var _ = Describe("Stack", func() {
	var (
		w, cu, al *Record
		stack     *Stack
	)

	BeforeEach(func() {
		w = placeholder("W", 1)
		cu = placeholder("Cu", 0.5)
		al = placeholder("Al", 2)
		stack = NewStack(w)
	})

	Context("construction", func() {
		It("should start empty", func() {
			Expect(NewStack().Len()).To(Equal(0))
			Expect(NewStack().String()).To(BeEmpty())
		})

		It("should skip nil records", func() {
			Expect(NewStack(nil, w, nil).Len()).To(Equal(1))
		})
	})

	Context("insert and remove", func() {
		It("should restore the original stack after insert at 0 and remove at 2", func() {
			Expect(stack.Append(cu)).To(Succeed())
			Expect(stack.Insert(0, al)).To(Succeed())
			Expect(stack.Snapshot()).To(Equal([]*Record{al, w, cu}))

			removed, err := stack.Remove(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(BeIdenticalTo(cu))

			removed, err = stack.Remove(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(BeIdenticalTo(al))
			Expect(stack.Snapshot()).To(Equal([]*Record{w}))
		})

		It("should insert at the end when the position equals the length", func() {
			Expect(stack.Insert(1, cu)).To(Succeed())
			Expect(stack.Labels()).To(Equal([]string{"W1mm", "Cu1mm"}))
		})

		DescribeTable("should reject invalid insert positions and keep the stack",
			func(pos int) {
				err := stack.Insert(pos, cu)
				Expect(err).To(MatchError(ErrInvalidPosition))
				Expect(stack.Snapshot()).To(Equal([]*Record{w}))
			},
			Entry("negative", -1),
			Entry("past the end", 2),
		)

		DescribeTable("should reject invalid remove positions and keep the stack",
			func(pos int) {
				r, err := stack.Remove(pos)
				Expect(err).To(MatchError(ErrInvalidPosition))
				Expect(r).To(BeNil())
				Expect(stack.Len()).To(Equal(1))
			},
			Entry("negative", -1),
			Entry("equal to length", 1),
			Entry("far past the end", 10),
		)

		It("should reject nil records", func() {
			Expect(stack.Append(nil)).NotTo(Succeed())
			Expect(stack.Insert(0, nil)).NotTo(Succeed())
			Expect(stack.Len()).To(Equal(1))
		})

		It("should report out-of-range reads", func() {
			_, err := stack.At(3)
			Expect(err).To(MatchError(ErrInvalidPosition))

			r, err := stack.At(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(r).To(BeIdenticalTo(w))
		})
	})

	Context("iteration", func() {
		It("should iterate a snapshot while the stack is edited", func() {
			Expect(stack.Append(cu)).To(Succeed())
			Expect(stack.Append(al)).To(Succeed())

			var seen []string
			for i, r := range stack.All() {
				seen = append(seen, r.Name())
				if i == 0 {
					_, err := stack.Remove(0)
					Expect(err).NotTo(HaveOccurred())
				}
			}

			Expect(seen).To(Equal([]string{"W", "Cu", "Al"}))
			Expect(stack.Labels()).To(Equal([]string{"Cu1mm", "Al2mm"}))
		})

		It("should stop when the consumer breaks", func() {
			Expect(stack.Append(cu)).To(Succeed())
			count := 0
			for range stack.All() {
				count++
				break
			}
			Expect(count).To(Equal(1))
		})

		It("should not expose internal storage through Snapshot", func() {
			snap := stack.Snapshot()
			snap[0] = cu
			r, _ := stack.At(0)
			Expect(r).To(BeIdenticalTo(w))
		})
	})

	Context("formatting", func() {
		It("should list layers one per line", func() {
			Expect(stack.Append(cu)).To(Succeed())
			Expect(stack.String()).To(Equal("1: W (1mm)\n2: Cu (0.5mm)\n"))
		})

		It("should list layers missing a table", func() {
			Expect(stack.Incomplete()).To(Equal([]int{0}))
		})
	})
})

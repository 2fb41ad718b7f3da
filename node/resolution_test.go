package node_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/google/go-cmp/cmp"

	"github.com/sarchlab/diplomacy/node"
	"github.com/sarchlab/diplomacy/scope"
)

var _ = Describe("Resolution call sequencing", func() {
	It("builds one edge and one bundle per port, before the deferred connect runs", func() {
		sc := scope.New("seq")
		imp := newMockImp()

		src, err := node.NewSource[int, int, testEdge, int](sc, "src", imp, []int{1, 2})
		Expect(err).NotTo(HaveOccurred())
		sink, err := node.NewSink[int, int, testEdge, int](sc, "sink", imp, []int{0, 0})
		Expect(err).NotTo(HaveOccurred())

		Expect(node.StarLeft(sink, src, node.CaptureLoc(0))).To(Succeed())
		sc.ApplyActions()

		Expect(imp.edgeCalls).To(Equal(4)) // 2 outward + 2 inward
		Expect(imp.bundleCalls).To(Equal(4))
		Expect(imp.connectCalls).To(Equal(1))
		Expect(imp.callOrder[len(imp.callOrder)-1]).To(Equal("connect"))
	})
})

var _ = Describe("Port mapping", func() {
	It("produces contiguous half-open ranges in push order", func() {
		sc := scope.New("mapping")
		imp := newTestImp()

		nexus, err := node.NewNexus[int, int, testEdge, int](
			sc, "nexus", imp, node.AtLeast(0), node.AtLeast(0),
			func(ds []int) int { return 0 },
			func(us []int) int { return 0 },
		)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 3; i++ {
			src, err := node.NewSource[int, int, testEdge, int](sc, "src", imp, []int{i})
			Expect(err).NotTo(HaveOccurred())
			Expect(node.Once(nexus, src, node.CaptureLoc(0))).To(Succeed())
		}

		mapping, err := nexus.IPortMapping()
		Expect(err).NotTo(HaveOccurred())

		want := []node.Range{{Start: 0, End: 1}, {Start: 1, End: 2}, {Start: 2, End: 3}}
		Expect(cmp.Diff(want, mapping)).To(BeEmpty())
	})
})

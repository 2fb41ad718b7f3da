package scope_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/diplomacy/scope"
)

type fakeNode struct{ name string }

func (f fakeNode) Name() string { return f.name }

var _ = Describe("Scope", func() {
	It("assigns increasing indices and runs actions in order", func() {
		sc := scope.New("root")
		Expect(sc.NextIndex()).To(Equal(0))
		Expect(sc.NextIndex()).To(Equal(1))

		sc.RegisterNode(fakeNode{name: "a"})
		sc.RegisterNode(fakeNode{name: "b"})
		Expect(sc.Nodes()).To(HaveLen(2))

		var order []int
		sc.RegisterAction(func() { order = append(order, 1) })
		sc.RegisterAction(func() { order = append(order, 2) })
		sc.ApplyActions()
		Expect(order).To(Equal([]int{1, 2}))
	})

	It("stops accepting work once closed", func() {
		sc := scope.New("root")
		Expect(sc.Active()).To(BeTrue())
		sc.Close()
		Expect(sc.Active()).To(BeFalse())
	})

	It("flattens ancestors before the child, in registration order", func() {
		parent := scope.New("parent")
		parent.RegisterNode(fakeNode{name: "p"})
		child := parent.Push("child")
		child.RegisterNode(fakeNode{name: "c"})

		nodes, _ := child.Flatten()
		Expect(nodes).To(HaveLen(2))
		Expect(nodes[0].Name()).To(Equal("p"))
		Expect(nodes[1].Name()).To(Equal("c"))
	})
})

var _ = Describe("Stack", func() {
	It("nests pushed scopes under the current top", func() {
		st := scope.NewStack()
		Expect(st.Active()).To(BeFalse())

		root := st.Push("root")
		Expect(root.Name()).To(Equal("root"))

		child := st.Push("child")
		Expect(child.Name()).To(Equal("child"))
		Expect(st.Current()).To(Equal(child))

		popped := st.Pop()
		Expect(popped).To(Equal(child))
		Expect(st.Current()).To(Equal(root))
	})

	It("panics when popping an empty stack", func() {
		st := scope.NewStack()
		Expect(func() { st.Pop() }).To(Panic())
	})
})

package node_test

import "github.com/sarchlab/diplomacy/node"

// mockImp is a hand-maintained mock of node.Imp, following the same
// //go:generate mockgen convention the core package's own NodeImp mock
// would use, kept hand-written here since the contract is small and the
// test only needs call-count/order assertions rather than argument
// matchers.
type mockImp struct {
	edgeCalls, bundleCalls, connectCalls int
	callOrder                           []string
}

func newMockImp() *mockImp {
	return &mockImp{}
}

func (m *mockImp) Edge(down, up int) testEdge {
	m.edgeCalls++
	m.callOrder = append(m.callOrder, "edge")
	return testEdge{d: down, u: up}
}

func (m *mockImp) Bundle(e testEdge) int {
	m.bundleCalls++
	m.callOrder = append(m.callOrder, "bundle")
	return m.bundleCalls
}

func (m *mockImp) MixO(down int, n node.Named) int         { return down }
func (m *mockImp) MixI(up int, n node.Named) int            { return up }
func (m *mockImp) CommonO(down int) (node.Named, bool)      { return nil, false }
func (m *mockImp) CommonI(up int) (node.Named, bool)        { return nil, false }
func (m *mockImp) Label(e testEdge) string                  { return "" }
func (m *mockImp) Colour() string                           { return "black" }
func (m *mockImp) Reverse() bool                            { return false }

func (m *mockImp) Connect(edgesOut, edgesIn []testEdge, bundleOut, bundleIn []int, enableMonitoring bool) (node.Monitor, func()) {
	m.connectCalls++
	m.callOrder = append(m.callOrder, "connect")
	return nil, func() {}
}

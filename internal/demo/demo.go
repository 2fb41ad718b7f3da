// Package demo provides a concrete NodeImp implementation used by the
// CLI dumper. It stands in
// for a real hardware-elaboration bundle type the way a unit test stands
// in for a real simulation device.
package demo

import (
	"fmt"

	"github.com/rs/xid"
	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/akita/v4/sim/directconnection"
	"github.com/sarchlab/diplomacy/node"
)

// Param is the downward parameter: what a producer offers.
type Param struct {
	Name  string
	Width int
}

// Width is the upward parameter: what a consumer requires.
type Width struct {
	MinWidth int
}

// Edge is the negotiated agreement between one Param and one Width.
type Edge struct {
	Name  string
	Width int
}

// Bundle is one end of a materialised connection: a single akita port,
// which Connect joins to the peer bundle's port by a direct connection, the
// way sim.Port pairs are wired in the teacher's core package.
type Bundle struct {
	ID   xid.ID
	Port sim.Port
}

// Imp is the demo NodeImp. It embeds node.BaseImp so that most of the
// NodeImp contract's cosmetic hooks fall back to sensible defaults, the way
// the teacher's defaultPort embeds sim.HookableBase.
type Imp struct {
	node.BaseImp[Param, Width, Edge, Bundle]

	comp   sim.Component
	engine sim.Engine
	freq   sim.Freq
}

// NewImp builds a demo NodeImp backed by comp, the akita component whose
// ports this imp's bundles are drawn from, and the engine/freq its
// connections are scheduled on.
func NewImp(comp sim.Component, engine sim.Engine, freq sim.Freq) *Imp {
	return &Imp{comp: comp, engine: engine, freq: freq}
}

// Edge negotiates a width: the wider of what the producer offers and the
// consumer needs, erroring is not possible here — MapParamsD/MapParamsU in
// the shape already enforce arity, so Edge only fuses the two parameters.
func (m *Imp) Edge(down Param, up Width) Edge {
	width := down.Width
	if up.MinWidth > width {
		width = up.MinWidth
	}
	return Edge{Name: down.Name, Width: width}
}

// Bundle materialises one negotiated edge as a single named akita port.
func (m *Imp) Bundle(e Edge) Bundle {
	name := fmt.Sprintf("%s.%s", m.comp.Name(), e.Name)
	port := sim.NewLimitNumMsgPort(m.comp, 1, name)
	return Bundle{ID: xid.New(), Port: port}
}

// Label names an edge for diagnostic dumps.
func (m *Imp) Label(e Edge) string {
	return fmt.Sprintf("%s[%d]", e.Name, e.Width)
}

// Connect wires two bundles' ports together with a direct connection and,
// when enableMonitoring is set, builds a fresh monitor to return, mirroring
// cgra-new's DeviceBuilder.WithMonitor pattern; nothing is registered with
// that monitor here. The returned closure performs the actual akita-level wiring, run
// once the caller replays the scope's deferred actions.
func (m *Imp) Connect(edgesOut, edgesIn []Edge, bundleOut, bundleIn []Bundle, enableMonitoring bool) (node.Monitor, func()) {
	var mon *monitoring.Monitor
	if enableMonitoring {
		mon = monitoring.NewMonitor()
	}

	wire := func() {
		for i := range bundleOut {
			if i >= len(bundleIn) {
				break
			}
			conn := directconnection.MakeBuilder().
				WithEngine(m.engine).
				WithFreq(m.freq).
				Build(fmt.Sprintf("%s.conn%d", m.comp.Name(), i))
			conn.PlugIn(bundleOut[i].Port)
			conn.PlugIn(bundleIn[i].Port)
		}
	}

	if mon == nil {
		return nil, wire
	}
	return mon, wire
}

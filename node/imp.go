package node

// Imp is the per-protocol implementation contract (§3/§4.1 of the NodeImp
// contract). The core never inspects D, U, E or B — it only routes values
// produced by one call into the arguments of another.
//
// A concrete protocol provides one Imp per side; homogeneous nodes (most of
// the catalog) reuse the same Imp value for both the inward and outward
// side.
type Imp[D, U, E, B any] interface {
	// Edge fuses a negotiated downward and upward parameter into an edge
	// descriptor. Applied once per port per side.
	Edge(down D, up U) E

	// Bundle constructs a fresh wire bundle for an edge.
	Bundle(e E) B

	// MixO annotates an outgoing downward parameter with the node it just
	// passed through. Default: identity.
	MixO(down D, n Named) D

	// MixI annotates an outgoing upward parameter with the node it just
	// passed through. Default: identity.
	MixI(up U, n Named) U

	// CommonO reports the "most-common" neighbour reachable through a
	// downward parameter, for a one-port node. Default: (nil, false).
	CommonO(down D) (Named, bool)

	// CommonI is the upward-parameter counterpart of CommonO.
	CommonI(up U) (Named, bool)

	// Label renders an edge for graph cosmetics.
	Label(e E) string

	// Colour is the cosmetic colour assigned to edges from this imp.
	Colour() string

	// Reverse reports whether edges from this imp should be drawn reversed.
	Reverse() bool

	// Connect is the per-binding hook invoked once resolution has produced
	// the edge and bundle slices for one binding. It optionally builds a
	// monitor and returns a deferred action that physically wires the two
	// bundle sequences together; enableMonitoring lets monitor-suppressed
	// binding operators skip monitor construction.
	Connect(edgesOut, edgesIn []E, bundleOut, bundleIn []B, enableMonitoring bool) (Monitor, func())
}

// Named is the minimal identity surface CommonO/CommonI/MixO/MixI need from
// a node, avoiding a dependency cycle between Imp and Node.
type Named interface {
	Name() string
}

// Monitor is an opaque per-binding observer handle returned by Connect. The
// core never inspects it beyond nil-ness.
type Monitor interface{}

// BaseImp supplies the optional-hook defaults (mix = identity, getCommon =
// absent) so a concrete imp can embed it and only override what it cares
// about, the way defaultPort embeds sim.HookableBase for its optional
// hook surface.
type BaseImp[D, U, E, B any] struct{}

// MixO is the identity default.
func (BaseImp[D, U, E, B]) MixO(down D, _ Named) D { return down }

// MixI is the identity default.
func (BaseImp[D, U, E, B]) MixI(up U, _ Named) U { return up }

// CommonO reports no common neighbour by default.
func (BaseImp[D, U, E, B]) CommonO(_ D) (Named, bool) { return nil, false }

// CommonI reports no common neighbour by default.
func (BaseImp[D, U, E, B]) CommonI(_ U) (Named, bool) { return nil, false }

// Colour defaults to black, matching an unthemed edge.
func (BaseImp[D, U, E, B]) Colour() string { return "black" }

// Reverse defaults to false.
func (BaseImp[D, U, E, B]) Reverse() bool { return false }

package node

import (
	"github.com/sarchlab/diplomacy/diperrors"
	"github.com/sarchlab/diplomacy/scope"
)

// pushEntry is one recorded tuple on a push list: the peer's local binding
// index on its own opposite side, the peer node itself, and the binding
// kind tag.
type pushEntry[D, U, E, B any] struct {
	peerIdx int
	peer    *Node[D, U, E, B]
	kind    BindKind
	loc     diperrors.Loc
}

// Node is the base node type all catalog shapes are built on. It carries
// identity, the acceptance ranges, the two push lists, and the lazily
// resolved derived state described in spec §3.
type Node[D, U, E, B any] struct {
	sc    *scope.Scope
	name  string
	index int

	numPI, numPO PortCount

	outer Imp[D, U, E, B]
	inner Imp[D, U, E, B]
	shape Shape[D, U, E, B]

	externalIn, externalOut bool
	flip, wire              bool

	iPush   []pushEntry[D, U, E, B]
	oPush   []pushEntry[D, U, E, B]
	iFrozen bool
	oFrozen bool

	// noInwardBundle/noOutwardBundle mark a side the shape structurally
	// never builds a bundle for (e.g. a Source's inward side).
	noInwardBundle, noOutwardBundle bool
	// aliasInToOut/aliasOutToIn make one port-facing accessor delegate to
	// the other, so both return the identical underlying slice (§9 design
	// note on OutputNode/InputNode/Blind* aliasing).
	aliasInToOut, aliasOutToIn bool

	starResolving, starResolved bool
	starErr                     *diperrors.Error

	oParamsResolving, oParamsResolved bool
	oParamsErr                        *diperrors.Error

	iParamsResolving, iParamsResolved bool
	iParamsErr                        *diperrors.Error

	// Edge construction is resolved as its own stage, independent from the
	// oParams/iParams stages above: building edgesOut needs this node's own
	// oParams plus each outward peer's iParams, and building edgesIn needs
	// this node's own iParams plus each inward peer's oParams. Folding that
	// into ensureOParams/ensureIParams themselves would make a two-node
	// graph's edge construction look like a cycle (each side's edges need
	// the other side's already-fully-resolved params while that side is
	// still "resolving" its own params), even though the params themselves
	// never cross-depend. Separating the stages removes the false cycle.
	edgesOutResolving, edgesOutResolved bool
	edgesOutErr                        *diperrors.Error

	edgesInResolving, edgesInResolved bool
	edgesInErr                        *diperrors.Error

	iStar, oStar      int
	iPortMapping      []Range
	oPortMapping      []Range
	iParams           []U
	oParams           []D
	edgesIn, edgesOut []E

	// outEdgeBundle/inEdgeBundle are built once, independent of flip —
	// BundleOut/BundleIn pick between them based on flip and aliasing.
	outEdgeBundle, inEdgeBundle []B
}

// Config bundles the construction-time parameters a catalog constructor
// fixes for a given shape.
type Config[D, U, E, B any] struct {
	NumPI, NumPO            PortCount
	Outer, Inner            Imp[D, U, E, B]
	Shape                   Shape[D, U, E, B]
	ExternalIn, ExternalOut bool
	Flip, Wire              bool
	NoInwardBundle          bool
	NoOutwardBundle         bool
	AliasInToOut            bool
	AliasOutToIn            bool
}

// New constructs a node inside sc. It fails OutOfScope if sc is not active.
func New[D, U, E, B any](sc *scope.Scope, name string, cfg Config[D, U, E, B]) (*Node[D, U, E, B], error) {
	if !sc.Active() {
		return nil, diperrors.New(diperrors.OutOfScope, name, "new", diperrors.Loc{}, "scope is not active")
	}

	n := &Node[D, U, E, B]{
		sc:              sc,
		name:            name,
		index:           sc.NextIndex(),
		numPI:           cfg.NumPI,
		numPO:           cfg.NumPO,
		outer:           cfg.Outer,
		inner:           cfg.Inner,
		shape:           cfg.Shape,
		externalIn:      cfg.ExternalIn,
		externalOut:     cfg.ExternalOut,
		flip:            cfg.Flip,
		wire:            cfg.Wire,
		noInwardBundle:  cfg.NoInwardBundle,
		noOutwardBundle: cfg.NoOutwardBundle,
		aliasInToOut:    cfg.AliasInToOut,
		aliasOutToIn:    cfg.AliasOutToIn,
	}
	sc.RegisterNode(n)

	return n, nil
}

// Name returns the node's qualified name.
func (n *Node[D, U, E, B]) Name() string { return n.name }

// Index returns the node's stable within-scope index.
func (n *Node[D, U, E, B]) Index() int { return n.index }

// Scope returns the enclosing scope this node was created in.
func (n *Node[D, U, E, B]) Scope() *scope.Scope { return n.sc }

// NumPI returns the inward acceptance range.
func (n *Node[D, U, E, B]) NumPI() PortCount { return n.numPI }

// NumPO returns the outward acceptance range.
func (n *Node[D, U, E, B]) NumPO() PortCount { return n.numPO }

// IFrozen reports whether the inward push list has been frozen.
func (n *Node[D, U, E, B]) IFrozen() bool { return n.iFrozen }

// OFrozen reports whether the outward push list has been frozen.
func (n *Node[D, U, E, B]) OFrozen() bool { return n.oFrozen }

// iPush records one tuple on the inward push list. peerIdx is the index of
// the peer's mirrored entry on its own outward push list (see bind.go).
// Returns the index assigned to this push.
func (n *Node[D, U, E, B]) iPush(peerIdx int, peer *Node[D, U, E, B], kind BindKind, loc diperrors.Loc) (int, error) {
	if !n.sc.Active() {
		return 0, diperrors.New(diperrors.OutOfScope, n.name, kind.String(), loc, "scope is not active")
	}
	if n.iFrozen {
		return 0, diperrors.New(diperrors.Frozen, n.name, kind.String(), loc, "inward side already observed")
	}
	if n.numPI.Degenerate() {
		return 0, diperrors.New(diperrors.NotASink, n.name, kind.String(), loc, "node does not accept inward bindings")
	}
	idx := len(n.iPush)
	n.iPush = append(n.iPush, pushEntry[D, U, E, B]{peerIdx: peerIdx, peer: peer, kind: kind, loc: loc})
	return idx, nil
}

// oPush is the outward-side counterpart of iPush.
func (n *Node[D, U, E, B]) oPush(peerIdx int, peer *Node[D, U, E, B], kind BindKind, loc diperrors.Loc) (int, error) {
	if !n.sc.Active() {
		return 0, diperrors.New(diperrors.OutOfScope, n.name, kind.String(), loc, "scope is not active")
	}
	if n.oFrozen {
		return 0, diperrors.New(diperrors.Frozen, n.name, kind.String(), loc, "outward side already observed")
	}
	if n.numPO.Degenerate() {
		return 0, diperrors.New(diperrors.NotASource, n.name, kind.String(), loc, "node does not accept outward bindings")
	}
	idx := len(n.oPush)
	n.oPush = append(n.oPush, pushEntry[D, U, E, B]{peerIdx: peerIdx, peer: peer, kind: kind, loc: loc})
	return idx, nil
}

package node

import "github.com/sarchlab/diplomacy/diperrors"

// IOPair is one entry of Inputs()/Outputs(): a peer node paired with the
// cosmetic label its connecting edge carries.
type IOPair struct {
	Peer  Named
	Label string
}

// ExternalIn reports whether this node's inward bundle is visible outside
// the enclosing module.
func (n *Node[D, U, E, B]) ExternalIn() bool { return n.externalIn }

// ExternalOut reports whether this node's outward bundle is visible outside
// the enclosing module.
func (n *Node[D, U, E, B]) ExternalOut() bool { return n.externalOut }

// Flip reports whether this node's bundle-materialisation swaps inward and
// outward logical direction.
func (n *Node[D, U, E, B]) Flip() bool { return n.flip }

// Wire reports whether this node's bundles are free wires rather than
// module ports.
func (n *Node[D, U, E, B]) Wire() bool { return n.wire }

// IStar returns the resolved inward star width.
func (n *Node[D, U, E, B]) IStar() (int, error) {
	if err := n.ensureStarStage(); err != nil {
		return 0, err
	}
	return n.iStar, nil
}

// OStar returns the resolved outward star width.
func (n *Node[D, U, E, B]) OStar() (int, error) {
	if err := n.ensureStarStage(); err != nil {
		return 0, err
	}
	return n.oStar, nil
}

// IPortMapping returns the resolved inward port ranges, one per inward
// binding in push order.
func (n *Node[D, U, E, B]) IPortMapping() ([]Range, error) {
	if err := n.ensureStarStage(); err != nil {
		return nil, err
	}
	return n.iPortMapping, nil
}

// OPortMapping returns the resolved outward port ranges, one per outward
// binding in push order.
func (n *Node[D, U, E, B]) OPortMapping() ([]Range, error) {
	if err := n.ensureStarStage(); err != nil {
		return nil, err
	}
	return n.oPortMapping, nil
}

// IParams returns the resolved upward parameter, one per inward port.
func (n *Node[D, U, E, B]) IParams() ([]U, error) {
	if err := n.ensureIParams(); err != nil {
		return nil, err
	}
	return n.iParams, nil
}

// OParams returns the resolved downward parameter, one per outward port.
func (n *Node[D, U, E, B]) OParams() ([]D, error) {
	if err := n.ensureOParams(); err != nil {
		return nil, err
	}
	return n.oParams, nil
}

// EdgesIn returns the resolved inward edge sequence.
func (n *Node[D, U, E, B]) EdgesIn() ([]E, error) {
	if err := n.ensureEdgesIn(); err != nil {
		return nil, err
	}
	return n.edgesIn, nil
}

// EdgesOut returns the resolved outward edge sequence.
func (n *Node[D, U, E, B]) EdgesOut() ([]E, error) {
	if err := n.ensureEdgesOut(); err != nil {
		return nil, err
	}
	return n.edgesOut, nil
}

// ExternalEdgesIn returns EdgesIn, or an empty slice when this side is not
// external.
func (n *Node[D, U, E, B]) ExternalEdgesIn() ([]E, error) {
	if !n.externalIn {
		return nil, nil
	}
	return n.EdgesIn()
}

// ExternalEdgesOut returns EdgesOut, or an empty slice when this side is
// not external.
func (n *Node[D, U, E, B]) ExternalEdgesOut() ([]E, error) {
	if !n.externalOut {
		return nil, nil
	}
	return n.EdgesOut()
}

// BundleOut returns the outward-facing bundle sequence, with flip and
// aliasing applied per §4.4/§9.
func (n *Node[D, U, E, B]) BundleOut() ([]B, error) {
	if n.noOutwardBundle {
		return nil, diperrors.New(diperrors.BundleDisallowed, n.name, "bundleOut", diperrors.Loc{},
			"this shape defines no outward bundle")
	}
	if n.aliasOutToIn {
		return n.BundleIn()
	}
	if n.flip {
		if err := n.ensureEdgesIn(); err != nil {
			return nil, err
		}
		return n.inEdgeBundle, nil
	}
	if err := n.ensureEdgesOut(); err != nil {
		return nil, err
	}
	return n.outEdgeBundle, nil
}

// BundleIn returns the inward-facing bundle sequence, with flip and
// aliasing applied per §4.4/§9.
func (n *Node[D, U, E, B]) BundleIn() ([]B, error) {
	if n.noInwardBundle {
		return nil, diperrors.New(diperrors.BundleDisallowed, n.name, "bundleIn", diperrors.Loc{},
			"this shape defines no inward bundle")
	}
	if n.aliasInToOut {
		return n.BundleOut()
	}
	if n.flip {
		if err := n.ensureEdgesOut(); err != nil {
			return nil, err
		}
		return n.outEdgeBundle, nil
	}
	if err := n.ensureEdgesIn(); err != nil {
		return nil, err
	}
	return n.inEdgeBundle, nil
}

// Inputs returns one (peer, label) pair per inward binding, in push order,
// used to emit a graph representation.
func (n *Node[D, U, E, B]) Inputs() ([]IOPair, error) {
	edges, err := n.EdgesIn()
	if err != nil {
		return nil, err
	}
	pairs := make([]IOPair, len(n.iPush))
	for i, p := range n.iPush {
		r := n.iPortMapping[i]
		label := ""
		if r.Width() > 0 {
			label = n.inner.Label(edges[r.Start])
		}
		pairs[i] = IOPair{Peer: p.peer, Label: label}
	}
	return pairs, nil
}

// Outputs returns one (peer, label) pair per outward binding, in push
// order, used to emit a graph representation.
func (n *Node[D, U, E, B]) Outputs() ([]IOPair, error) {
	edges, err := n.EdgesOut()
	if err != nil {
		return nil, err
	}
	pairs := make([]IOPair, len(n.oPush))
	for i, p := range n.oPush {
		r := n.oPortMapping[i]
		label := ""
		if r.Width() > 0 {
			label = n.outer.Label(edges[r.Start])
		}
		pairs[i] = IOPair{Peer: p.peer, Label: label}
	}
	return pairs, nil
}

// OmitGraphML reports whether this node contributes nothing to a graph
// dump — true when it has no inward and no outward bindings at all.
func (n *Node[D, U, E, B]) OmitGraphML() bool {
	return len(n.iPush) == 0 && len(n.oPush) == 0
}

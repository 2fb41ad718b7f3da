package node

import "github.com/sarchlab/diplomacy/diperrors"

// ensureFrozen freezes both push lists the moment any derived field is
// first observed, per spec §3 invariant 2 / §5 stage 1. It is idempotent.
func (n *Node[D, U, E, B]) ensureFrozen() {
	n.iFrozen = true
	n.oFrozen = true
}

// ensureStarStage resolves iStar, oStar, iPortMapping and oPortMapping,
// recursing into neighbours as needed. It is cached and guarded against
// genuine cycles.
func (n *Node[D, U, E, B]) ensureStarStage() *diperrors.Error {
	n.ensureFrozen()

	if n.starResolved {
		return n.starErr
	}
	if n.starResolving {
		err := diperrors.New(diperrors.InternalInvariant, n.name, "resolve", diperrors.Loc{},
			"cyclic star resolution")
		n.starErr = err
		n.starResolved = true
		return err
	}
	n.starResolving = true
	err := n.resolveStarStage()
	n.starResolving = false
	n.starResolved = true
	n.starErr = err
	return err
}

func (n *Node[D, U, E, B]) resolveStarStage() *diperrors.Error {
	iStars, oStars := 0, 0
	for _, p := range n.iPush {
		if p.kind == Star {
			iStars++
		}
	}
	for _, p := range n.oPush {
		if p.kind == Star {
			oStars++
		}
	}

	iKnown, err := n.knownWidth(n.iPush, true)
	if err != nil {
		return err
	}
	oKnown, err := n.knownWidth(n.oPush, false)
	if err != nil {
		return err
	}

	iStar, oStar, serr := n.shape.ResolveStar(iKnown, oKnown, iStars, oStars)
	if serr != nil {
		serr.Node = n.name
		return serr
	}
	n.iStar = iStar
	n.oStar = oStar

	n.iPortMapping, err = n.buildMapping(n.iPush, iStar, true)
	if err != nil {
		return err
	}
	n.oPortMapping, err = n.buildMapping(n.oPush, oStar, false)
	if err != nil {
		return err
	}

	totalIn := totalWidth(n.iPortMapping)
	totalOut := totalWidth(n.oPortMapping)
	if !n.numPI.Contains(totalIn) {
		return diperrors.New(diperrors.Arity, n.name, "resolve", diperrors.Loc{},
			"resolved inward port count out of range")
	}
	if !n.numPO.Contains(totalOut) {
		return diperrors.New(diperrors.Arity, n.name, "resolve", diperrors.Loc{},
			"resolved outward port count out of range")
	}

	return nil
}

// knownWidth sums the widths contributed by non-star bindings on one side,
// per §4.4 stage 2. inward selects whether this is the iPush (true) or
// oPush (false) list, which in turn selects which of the peer's two star
// widths a Query entry pulls.
func (n *Node[D, U, E, B]) knownWidth(entries []pushEntry[D, U, E, B], inward bool) (int, *diperrors.Error) {
	total := 0
	for _, p := range entries {
		switch p.kind {
		case Once:
			total++
		case Query:
			if err := p.peer.ensureStarStage(); err != nil {
				return 0, err
			}
			if inward {
				total += p.peer.oStar
			} else {
				total += p.peer.iStar
			}
		case Star:
			// excluded from "known" by definition — this is what
			// resolveStar is solving for.
		}
	}
	return total, nil
}

// buildMapping produces the parallel half-open port ranges for one side, by
// a running prefix sum of per-binding width.
func (n *Node[D, U, E, B]) buildMapping(entries []pushEntry[D, U, E, B], star int, inward bool) ([]Range, *diperrors.Error) {
	mapping := make([]Range, len(entries))
	cursor := 0
	for i, p := range entries {
		var width int
		switch p.kind {
		case Once:
			width = 1
		case Query:
			if inward {
				width = p.peer.oStar
			} else {
				width = p.peer.iStar
			}
		case Star:
			width = star
		}
		mapping[i] = Range{Start: cursor, End: cursor + width}
		cursor += width
	}
	return mapping, nil
}

func totalWidth(mapping []Range) int {
	if len(mapping) == 0 {
		return 0
	}
	total := 0
	for _, r := range mapping {
		total += r.Width()
	}
	return total
}

// ensureOParams resolves oParams only. Its recursion only ever touches
// other nodes' oParams, via inward peers, so it cannot cycle back through
// this node's own iParams pull.
func (n *Node[D, U, E, B]) ensureOParams() *diperrors.Error {
	if err := n.ensureStarStage(); err != nil {
		return err
	}
	if n.oParamsResolved {
		return n.oParamsErr
	}
	if n.oParamsResolving {
		err := diperrors.New(diperrors.InternalInvariant, n.name, "resolve", diperrors.Loc{},
			"cyclic downward parameter propagation")
		n.oParamsErr = err
		n.oParamsResolved = true
		return err
	}
	n.oParamsResolving = true
	err := n.resolveOParams()
	n.oParamsResolving = false
	n.oParamsResolved = true
	n.oParamsErr = err
	return err
}

func (n *Node[D, U, E, B]) resolveOParams() *diperrors.Error {
	total := totalWidth(n.iPortMapping)
	incoming := make([]D, 0, total)
	for i, p := range n.iPush {
		if err := p.peer.ensureOParams(); err != nil {
			return err
		}
		peerRange := p.peer.oPortMapping[p.peerIdx]
		r := n.iPortMapping[i]
		for o := 0; o < r.Width(); o++ {
			incoming = append(incoming, p.peer.oParams[peerRange.Start+o])
		}
	}

	nOut := totalWidth(n.oPortMapping)
	mapped, err := n.shape.MapParamsD(nOut, incoming)
	if err != nil {
		err.Node = n.name
		return err
	}
	if len(mapped) != nOut {
		return diperrors.New(diperrors.ParamMismatch, n.name, "mapParamsD", diperrors.Loc{},
			"mapParamsD returned the wrong number of parameters")
	}

	out := make([]D, nOut)
	for i, d := range mapped {
		out[i] = n.outer.MixO(d, n)
	}
	n.oParams = out

	return nil
}

// ensureIParams resolves iParams only. Its recursion only ever touches
// other nodes' iParams, via outward peers.
func (n *Node[D, U, E, B]) ensureIParams() *diperrors.Error {
	if err := n.ensureStarStage(); err != nil {
		return err
	}
	if n.iParamsResolved {
		return n.iParamsErr
	}
	if n.iParamsResolving {
		err := diperrors.New(diperrors.InternalInvariant, n.name, "resolve", diperrors.Loc{},
			"cyclic upward parameter propagation")
		n.iParamsErr = err
		n.iParamsResolved = true
		return err
	}
	n.iParamsResolving = true
	err := n.resolveIParams()
	n.iParamsResolving = false
	n.iParamsResolved = true
	n.iParamsErr = err
	return err
}

func (n *Node[D, U, E, B]) resolveIParams() *diperrors.Error {
	total := totalWidth(n.oPortMapping)
	incoming := make([]U, 0, total)
	for i, p := range n.oPush {
		if err := p.peer.ensureIParams(); err != nil {
			return err
		}
		peerRange := p.peer.iPortMapping[p.peerIdx]
		r := n.oPortMapping[i]
		for o := 0; o < r.Width(); o++ {
			incoming = append(incoming, p.peer.iParams[peerRange.Start+o])
		}
	}

	nIn := totalWidth(n.iPortMapping)
	mapped, err := n.shape.MapParamsU(nIn, incoming)
	if err != nil {
		err.Node = n.name
		return err
	}
	if len(mapped) != nIn {
		return diperrors.New(diperrors.ParamMismatch, n.name, "mapParamsU", diperrors.Loc{},
			"mapParamsU returned the wrong number of parameters")
	}

	in := make([]U, nIn)
	for i, u := range mapped {
		in[i] = n.inner.MixI(u, n)
	}
	n.iParams = in

	return nil
}

// ensureEdgesOut resolves edgesOut and the outward-edge bundle array. It
// depends on this node's own oParams and on each outward peer's iParams —
// never on any node's edges, so it is immune to the params stages' own
// resolving flags.
func (n *Node[D, U, E, B]) ensureEdgesOut() *diperrors.Error {
	if err := n.ensureOParams(); err != nil {
		return err
	}
	if n.edgesOutResolved {
		return n.edgesOutErr
	}
	if n.edgesOutResolving {
		err := diperrors.New(diperrors.InternalInvariant, n.name, "resolve", diperrors.Loc{},
			"cyclic outward edge construction")
		n.edgesOutErr = err
		n.edgesOutResolved = true
		return err
	}
	n.edgesOutResolving = true
	err := n.resolveEdgesOut()
	n.edgesOutResolving = false
	n.edgesOutResolved = true
	n.edgesOutErr = err
	return err
}

func (n *Node[D, U, E, B]) resolveEdgesOut() *diperrors.Error {
	nOut := totalWidth(n.oPortMapping)
	edges := make([]E, nOut)
	for i, p := range n.oPush {
		r := n.oPortMapping[i]
		if err := p.peer.ensureIParams(); err != nil {
			return err
		}
		peerRange := p.peer.iPortMapping[p.peerIdx]
		for o := 0; o < r.Width(); o++ {
			peerU := p.peer.iParams[peerRange.Start+o]
			edges[r.Start+o] = n.outer.Edge(n.oParams[r.Start+o], peerU)
		}
	}
	n.edgesOut = edges

	bundle := make([]B, nOut)
	for i, e := range edges {
		bundle[i] = n.outer.Bundle(e)
	}
	n.outEdgeBundle = bundle

	return nil
}

// ensureEdgesIn is the inward-side counterpart of ensureEdgesOut.
func (n *Node[D, U, E, B]) ensureEdgesIn() *diperrors.Error {
	if err := n.ensureIParams(); err != nil {
		return err
	}
	if n.edgesInResolved {
		return n.edgesInErr
	}
	if n.edgesInResolving {
		err := diperrors.New(diperrors.InternalInvariant, n.name, "resolve", diperrors.Loc{},
			"cyclic inward edge construction")
		n.edgesInErr = err
		n.edgesInResolved = true
		return err
	}
	n.edgesInResolving = true
	err := n.resolveEdgesIn()
	n.edgesInResolving = false
	n.edgesInResolved = true
	n.edgesInErr = err
	return err
}

func (n *Node[D, U, E, B]) resolveEdgesIn() *diperrors.Error {
	nIn := totalWidth(n.iPortMapping)
	edges := make([]E, nIn)
	for i, p := range n.iPush {
		r := n.iPortMapping[i]
		if err := p.peer.ensureOParams(); err != nil {
			return err
		}
		peerRange := p.peer.oPortMapping[p.peerIdx]
		for o := 0; o < r.Width(); o++ {
			peerD := p.peer.oParams[peerRange.Start+o]
			edges[r.Start+o] = n.inner.Edge(peerD, n.iParams[r.Start+o])
		}
	}
	n.edgesIn = edges

	bundle := make([]B, nIn)
	for i, e := range edges {
		bundle[i] = n.inner.Bundle(e)
	}
	n.inEdgeBundle = bundle

	return nil
}

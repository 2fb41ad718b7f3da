package node

import "github.com/sarchlab/diplomacy/diperrors"

// Once binds x (sink-side) to y (source-side) with exactly one port: both
// sides record Once. loc is the push's source location, used purely for
// diagnostics.
func Once[D, U, E, B any](x, y *Node[D, U, E, B], loc diperrors.Loc) error {
	return bind(x, y, Once, Once, "once", true, loc)
}

// OnceQuiet is Once with monitor construction suppressed.
func OnceQuiet[D, U, E, B any](x, y *Node[D, U, E, B], loc diperrors.Loc) error {
	return bind(x, y, Once, Once, "onceQuiet", false, loc)
}

// StarLeft binds x (sink-side) to y (source-side) with a width resolved by
// the star side of this binding: x records Star, y records Query (`:*=`).
func StarLeft[D, U, E, B any](x, y *Node[D, U, E, B], loc diperrors.Loc) error {
	return bind(x, y, Star, Query, "starLeft", true, loc)
}

// StarLeftQuiet is StarLeft with monitor construction suppressed.
func StarLeftQuiet[D, U, E, B any](x, y *Node[D, U, E, B], loc diperrors.Loc) error {
	return bind(x, y, Star, Query, "starLeftQuiet", false, loc)
}

// StarRight binds x (sink-side) to y (source-side) with the mirrored tags
// of StarLeft: x records Query, y records Star (`:=*`).
func StarRight[D, U, E, B any](x, y *Node[D, U, E, B], loc diperrors.Loc) error {
	return bind(x, y, Query, Star, "starRight", true, loc)
}

// StarRightQuiet is StarRight with monitor construction suppressed.
func StarRightQuiet[D, U, E, B any](x, y *Node[D, U, E, B], loc diperrors.Loc) error {
	return bind(x, y, Query, Star, "starRightQuiet", false, loc)
}

// bind issues the mirrored pushes for one binding and registers the
// deferred closure that, once replayed, pulls the binding's edge and
// bundle slices and invokes the sink imp's Connect hook (§4.3).
func bind[D, U, E, B any](x, y *Node[D, U, E, B], xKind, yKind BindKind, op string, enableMonitoring bool, loc diperrors.Loc) error {
	if !x.sc.Active() {
		return diperrors.New(diperrors.OutOfScope, x.name, op, loc, "scope is not active")
	}
	if !y.sc.Active() {
		return diperrors.New(diperrors.OutOfScope, y.name, op, loc, "scope is not active")
	}

	xPeerIdx := len(y.oPush)
	yPeerIdx := len(x.iPush)

	yIdx, err := y.oPush(yPeerIdx, x, yKind, loc)
	if err != nil {
		return err
	}
	xIdx, err := x.iPush(xPeerIdx, y, xKind, loc)
	if err != nil {
		return err
	}

	x.sc.RegisterAction(func() {
		// By the time a registered action replays, Once/StarLeft/StarRight
		// has already returned success for this binding, so every pull below
		// is expected to resolve cleanly. A failure here means resolution's
		// own invariants broke between push time and replay time — a bug,
		// not a diagnosable user mistake — so it is not swallowed.
		xRange, err := x.IPortMapping()
		if err != nil {
			panic(err)
		}
		yRange, err := y.OPortMapping()
		if err != nil {
			panic(err)
		}

		xr := xRange[xIdx]
		yr := yRange[yIdx]

		edgesIn, err := x.EdgesIn()
		if err != nil {
			panic(err)
		}
		edgesOut, err := y.EdgesOut()
		if err != nil {
			panic(err)
		}
		bundleIn, err := x.BundleIn()
		if err != nil {
			panic(err)
		}
		bundleOut, err := y.BundleOut()
		if err != nil {
			panic(err)
		}

		_, wire := x.inner.Connect(
			edgesOut[yr.Start:yr.End], edgesIn[xr.Start:xr.End],
			bundleOut[yr.Start:yr.End], bundleIn[xr.Start:xr.End],
			enableMonitoring)
		if wire != nil {
			wire()
		}
	})

	return nil
}

package node

import (
	"github.com/sarchlab/diplomacy/diperrors"
	"github.com/sarchlab/diplomacy/scope"
)

// --- Adapter -----------------------------------------------------------

// adapterShape is a 1-to-1 parameter transform: dFn maps a downward
// parameter, uFn maps an upward one. At most one side may carry a star.
type adapterShape[D, U, E, B any] struct {
	name string
	dFn  func(D) D
	uFn  func(U) U
}

func (s adapterShape[D, U, E, B]) ShapeName() string { return s.name }

func (s adapterShape[D, U, E, B]) ResolveStar(iKnown, oKnown, iStars, oStars int) (int, int, *diperrors.Error) {
	if iStars > 0 && oStars > 0 {
		return 0, 0, diperrors.New(diperrors.StarShape, "", s.name, diperrors.Loc{},
			"adapter forbids stars on both sides at once")
	}
	if oStars > 0 {
		if iKnown < oKnown {
			return 0, 0, diperrors.New(diperrors.UnderAssigned, "", s.name, diperrors.Loc{},
				"adapter cannot resolve outward star: inward known width is short")
		}
		return 0, iKnown - oKnown, nil
	}
	if iStars > 0 {
		if oKnown < iKnown {
			return 0, 0, diperrors.New(diperrors.UnderAssigned, "", s.name, diperrors.Loc{},
				"adapter cannot resolve inward star: outward known width is short")
		}
		return oKnown - iKnown, 0, nil
	}
	// Neither side carries a star: nothing to solve for here. A width
	// mismatch between the two sides surfaces downstream as an Arity
	// error against numPI/numPO rather than here.
	return 0, 0, nil
}

func (s adapterShape[D, U, E, B]) MapParamsD(n int, incoming []D) ([]D, *diperrors.Error) {
	if len(incoming) != n {
		return nil, diperrors.New(diperrors.ParamMismatch, "", s.name, diperrors.Loc{},
			"adapter requires matching inward and outward port counts")
	}
	out := make([]D, n)
	for i, d := range incoming {
		out[i] = s.dFn(d)
	}
	return out, nil
}

func (s adapterShape[D, U, E, B]) MapParamsU(n int, incoming []U) ([]U, *diperrors.Error) {
	if len(incoming) != n {
		return nil, diperrors.New(diperrors.ParamMismatch, "", s.name, diperrors.Loc{},
			"adapter requires matching inward and outward port counts")
	}
	out := make([]U, n)
	for i, u := range incoming {
		out[i] = s.uFn(u)
	}
	return out, nil
}

// NewAdapter builds a node that transforms parameters 1-to-1 through dFn
// and uFn, external on both sides.
func NewAdapter[D, U, E, B any](sc *scope.Scope, name string, imp Imp[D, U, E, B], numPI, numPO PortCount, dFn func(D) D, uFn func(U) U) (*Node[D, U, E, B], error) {
	return New(sc, name, Config[D, U, E, B]{
		NumPI: numPI, NumPO: numPO,
		Outer: imp, Inner: imp,
		Shape:       adapterShape[D, U, E, B]{name: "adapter", dFn: dFn, uFn: uFn},
		ExternalIn:  true,
		ExternalOut: true,
	})
}

// NewIdentity builds an adapter whose dFn/uFn are the identity function.
func NewIdentity[D, U, E, B any](sc *scope.Scope, name string, imp Imp[D, U, E, B], numPI, numPO PortCount) (*Node[D, U, E, B], error) {
	return New(sc, name, Config[D, U, E, B]{
		NumPI: numPI, NumPO: numPO,
		Outer: imp, Inner: imp,
		Shape:       adapterShape[D, U, E, B]{name: "identity", dFn: func(d D) D { return d }, uFn: func(u U) U { return u }},
		ExternalIn:  true,
		ExternalOut: true,
	})
}

// --- Nexus ---------------------------------------------------------------

// nexusShape is a many-to-many fan-in/fan-out collapse: dFn/uFn reduce the
// whole incoming sequence to one value, replicated across every port.
type nexusShape[D, U, E, B any] struct {
	dFn func([]D) D
	uFn func([]U) U
}

func (s nexusShape[D, U, E, B]) ShapeName() string { return "nexus" }

func (s nexusShape[D, U, E, B]) ResolveStar(_, _, iStars, oStars int) (int, int, *diperrors.Error) {
	if iStars != 0 || oStars != 0 {
		return 0, 0, diperrors.New(diperrors.StarShape, "", "nexus", diperrors.Loc{},
			"nexus forbids star bindings on either side")
	}
	return 0, 0, nil
}

func (s nexusShape[D, U, E, B]) MapParamsD(n int, incoming []D) ([]D, *diperrors.Error) {
	collapsed := s.dFn(incoming)
	out := make([]D, n)
	for i := range out {
		out[i] = collapsed
	}
	return out, nil
}

func (s nexusShape[D, U, E, B]) MapParamsU(n int, incoming []U) ([]U, *diperrors.Error) {
	collapsed := s.uFn(incoming)
	out := make([]U, n)
	for i := range out {
		out[i] = collapsed
	}
	return out, nil
}

// NewNexus builds a fan-in/fan-out node, external on both sides, whose dFn
// collapses incoming downward parameters and uFn collapses incoming upward
// parameters, each replicated across every port on the opposite side.
func NewNexus[D, U, E, B any](sc *scope.Scope, name string, imp Imp[D, U, E, B], numPI, numPO PortCount, dFn func([]D) D, uFn func([]U) U) (*Node[D, U, E, B], error) {
	return New(sc, name, Config[D, U, E, B]{
		NumPI: numPI, NumPO: numPO,
		Outer: imp, Inner: imp,
		Shape:       nexusShape[D, U, E, B]{dFn: dFn, uFn: uFn},
		ExternalIn:  true,
		ExternalOut: true,
	})
}

// --- Splitter --------------------------------------------------------------

// splitterShape fans one inward binding out to a divisible multiplicity.
// dFn receives the resolved outward width and uFn the resolved inward
// width, each alongside the incoming sequence; MapParamsD/MapParamsU apply
// the divisibility checks before calling them.
type splitterShape[D, U, E, B any] struct {
	dFn func(n int, p []D) []D
	uFn func(n int, p []U) []U
}

func (s splitterShape[D, U, E, B]) ShapeName() string { return "splitter" }

func (s splitterShape[D, U, E, B]) ResolveStar(iKnown, oKnown, iStars, _ int) (int, int, *diperrors.Error) {
	if iStars != 0 {
		return 0, 0, diperrors.New(diperrors.StarShape, "", "splitter", diperrors.Loc{},
			"splitter forbids a star on the inward side")
	}
	if oKnown != 0 {
		return 0, 0, diperrors.New(diperrors.StarShape, "", "splitter", diperrors.Loc{},
			"splitter requires every outward binding to resolve via its own star")
	}
	return 0, iKnown, nil
}

func (s splitterShape[D, U, E, B]) MapParamsD(n int, incoming []D) ([]D, *diperrors.Error) {
	if len(incoming) != 0 && n%len(incoming) != 0 {
		return nil, diperrors.New(diperrors.ParamMismatch, "", "splitter", diperrors.Loc{},
			"outward width is not a multiple of the inward width")
	}
	out := s.dFn(n, incoming)
	if len(out) != n {
		return nil, diperrors.New(diperrors.ParamMismatch, "", "splitter", diperrors.Loc{},
			"dFn did not return exactly n downward parameters")
	}
	return out, nil
}

func (s splitterShape[D, U, E, B]) MapParamsU(n int, incoming []U) ([]U, *diperrors.Error) {
	if n != 0 && len(incoming)%n != 0 {
		return nil, diperrors.New(diperrors.ParamMismatch, "", "splitter", diperrors.Loc{},
			"outward width is not a multiple of the inward width")
	}
	out := s.uFn(n, incoming)
	if len(out) != n {
		return nil, diperrors.New(diperrors.ParamMismatch, "", "splitter", diperrors.Loc{},
			"uFn did not return exactly n upward parameters")
	}
	return out, nil
}

// NewSplitter builds a one-binding-fans-out node, external on both sides.
func NewSplitter[D, U, E, B any](sc *scope.Scope, name string, imp Imp[D, U, E, B], numPI, numPO PortCount, dFn func(n int, p []D) []D, uFn func(n int, p []U) []U) (*Node[D, U, E, B], error) {
	return New(sc, name, Config[D, U, E, B]{
		NumPI: numPI, NumPO: numPO,
		Outer: imp, Inner: imp,
		Shape:       splitterShape[D, U, E, B]{dFn: dFn, uFn: uFn},
		ExternalIn:  true,
		ExternalOut: true,
	})
}

// --- Source / Sink ---------------------------------------------------------

// sourceShape exposes a fixed downward parameter sequence; it never accepts
// inward bindings.
type sourceShape[D, U, E, B any] struct {
	po []D
}

func (s sourceShape[D, U, E, B]) ShapeName() string { return "source" }

func (s sourceShape[D, U, E, B]) ResolveStar(iKnown, oKnown, iStars, oStars int) (int, int, *diperrors.Error) {
	if iStars != 0 {
		return 0, 0, diperrors.New(diperrors.StarShape, "", "source", diperrors.Loc{},
			"source forbids inward bindings")
	}
	if oStars > 1 {
		return 0, 0, diperrors.New(diperrors.StarShape, "", "source", diperrors.Loc{},
			"source allows at most one outward star binding")
	}
	if iKnown != 0 {
		return 0, 0, diperrors.New(diperrors.StarShape, "", "source", diperrors.Loc{},
			"source forbids inward bindings")
	}
	if len(s.po) < oKnown {
		return 0, 0, diperrors.New(diperrors.OverAssigned, "", "source", diperrors.Loc{},
			"known outward bindings exceed the fixed parameter count")
	}
	return 0, len(s.po) - oKnown, nil
}

func (s sourceShape[D, U, E, B]) MapParamsD(n int, _ []D) ([]D, *diperrors.Error) {
	if n != len(s.po) {
		return nil, diperrors.New(diperrors.ParamMismatch, "", "source", diperrors.Loc{},
			"resolved outward width disagrees with the fixed parameter count")
	}
	out := make([]D, len(s.po))
	copy(out, s.po)
	return out, nil
}

func (s sourceShape[D, U, E, B]) MapParamsU(n int, _ []U) ([]U, *diperrors.Error) {
	if n != 0 {
		return nil, diperrors.New(diperrors.ParamMismatch, "", "source", diperrors.Loc{},
			"source has no inward ports")
	}
	return nil, nil
}

// NewSource builds a fixed-downward-parameter source node. Its inward
// bundle is disallowed; its outward bundle is external.
func NewSource[D, U, E, B any](sc *scope.Scope, name string, imp Imp[D, U, E, B], po []D) (*Node[D, U, E, B], error) {
	return New(sc, name, Config[D, U, E, B]{
		NumPI: Exactly(0), NumPO: Exactly(len(po)),
		Outer: imp, Inner: imp,
		Shape:          sourceShape[D, U, E, B]{po: po},
		ExternalIn:     true,
		ExternalOut:    true,
		NoInwardBundle: true,
	})
}

// sinkShape is the symmetric counterpart of sourceShape, exposing a fixed
// upward parameter sequence and never accepting outward bindings.
type sinkShape[D, U, E, B any] struct {
	pi []U
}

func (s sinkShape[D, U, E, B]) ShapeName() string { return "sink" }

func (s sinkShape[D, U, E, B]) ResolveStar(iKnown, oKnown, iStars, oStars int) (int, int, *diperrors.Error) {
	if oStars != 0 {
		return 0, 0, diperrors.New(diperrors.StarShape, "", "sink", diperrors.Loc{},
			"sink forbids outward bindings")
	}
	if iStars > 1 {
		return 0, 0, diperrors.New(diperrors.StarShape, "", "sink", diperrors.Loc{},
			"sink allows at most one inward star binding")
	}
	if oKnown != 0 {
		return 0, 0, diperrors.New(diperrors.StarShape, "", "sink", diperrors.Loc{},
			"sink forbids outward bindings")
	}
	if len(s.pi) < iKnown {
		return 0, 0, diperrors.New(diperrors.OverAssigned, "", "sink", diperrors.Loc{},
			"known inward bindings exceed the fixed parameter count")
	}
	return len(s.pi) - iKnown, 0, nil
}

func (s sinkShape[D, U, E, B]) MapParamsD(n int, _ []D) ([]D, *diperrors.Error) {
	if n != 0 {
		return nil, diperrors.New(diperrors.ParamMismatch, "", "sink", diperrors.Loc{},
			"sink has no outward ports")
	}
	return nil, nil
}

func (s sinkShape[D, U, E, B]) MapParamsU(n int, _ []U) ([]U, *diperrors.Error) {
	if n != len(s.pi) {
		return nil, diperrors.New(diperrors.ParamMismatch, "", "sink", diperrors.Loc{},
			"resolved inward width disagrees with the fixed parameter count")
	}
	out := make([]U, len(s.pi))
	copy(out, s.pi)
	return out, nil
}

// NewSink builds a fixed-upward-parameter sink node. Its outward bundle is
// disallowed; its inward bundle is external.
func NewSink[D, U, E, B any](sc *scope.Scope, name string, imp Imp[D, U, E, B], pi []U) (*Node[D, U, E, B], error) {
	return New(sc, name, Config[D, U, E, B]{
		NumPI: Exactly(len(pi)), NumPO: Exactly(0),
		Outer: imp, Inner: imp,
		Shape:           sinkShape[D, U, E, B]{pi: pi},
		ExternalIn:      true,
		ExternalOut:     true,
		NoOutwardBundle: true,
	})
}

// --- Output / Input / Blind / Internal -------------------------------------

// NewOutputNode builds an identity node whose inward side is hidden; the
// hidden inward bundle aliases the visible outward bundle.
func NewOutputNode[D, U, E, B any](sc *scope.Scope, name string, imp Imp[D, U, E, B], numPI, numPO PortCount) (*Node[D, U, E, B], error) {
	return New(sc, name, Config[D, U, E, B]{
		NumPI: numPI, NumPO: numPO,
		Outer: imp, Inner: imp,
		Shape:        adapterShape[D, U, E, B]{name: "output", dFn: func(d D) D { return d }, uFn: func(u U) U { return u }},
		ExternalIn:   false,
		ExternalOut:  true,
		AliasInToOut: true,
	})
}

// NewInputNode builds an identity node whose outward side is hidden; the
// hidden outward bundle aliases the visible inward bundle.
func NewInputNode[D, U, E, B any](sc *scope.Scope, name string, imp Imp[D, U, E, B], numPI, numPO PortCount) (*Node[D, U, E, B], error) {
	return New(sc, name, Config[D, U, E, B]{
		NumPI: numPI, NumPO: numPO,
		Outer: imp, Inner: imp,
		Shape:        adapterShape[D, U, E, B]{name: "input", dFn: func(d D) D { return d }, uFn: func(u U) U { return u }},
		ExternalIn:   true,
		ExternalOut:  false,
		AliasOutToIn: true,
	})
}

// NewBlindOutput builds a source whose visible side is its inward side
// (flip=true); the hidden outward bundle aliases the visible inward one.
func NewBlindOutput[D, U, E, B any](sc *scope.Scope, name string, imp Imp[D, U, E, B], po []D) (*Node[D, U, E, B], error) {
	return New(sc, name, Config[D, U, E, B]{
		NumPI: Exactly(0), NumPO: Exactly(len(po)),
		Outer: imp, Inner: imp,
		Shape:        sourceShape[D, U, E, B]{po: po},
		ExternalIn:   true,
		ExternalOut:  false,
		Flip:         true,
		AliasOutToIn: true,
	})
}

// NewBlindInput builds a sink whose visible side is its outward side
// (flip=true); the hidden inward bundle aliases the visible outward one.
func NewBlindInput[D, U, E, B any](sc *scope.Scope, name string, imp Imp[D, U, E, B], pi []U) (*Node[D, U, E, B], error) {
	return New(sc, name, Config[D, U, E, B]{
		NumPI: Exactly(len(pi)), NumPO: Exactly(0),
		Outer: imp, Inner: imp,
		Shape:        sinkShape[D, U, E, B]{pi: pi},
		ExternalIn:   false,
		ExternalOut:  true,
		Flip:         true,
		AliasInToOut: true,
	})
}

// NewInternalOutput builds a sink whose bundle is a free wire rather than a
// module port, visible on neither side.
func NewInternalOutput[D, U, E, B any](sc *scope.Scope, name string, imp Imp[D, U, E, B], pi []U) (*Node[D, U, E, B], error) {
	return New(sc, name, Config[D, U, E, B]{
		NumPI: Exactly(len(pi)), NumPO: Exactly(0),
		Outer: imp, Inner: imp,
		Shape:           sinkShape[D, U, E, B]{pi: pi},
		ExternalIn:      false,
		ExternalOut:     false,
		Wire:            true,
		NoOutwardBundle: true,
	})
}

// NewInternalInput builds a source whose bundle is a free wire rather than
// a module port, visible on neither side.
func NewInternalInput[D, U, E, B any](sc *scope.Scope, name string, imp Imp[D, U, E, B], po []D) (*Node[D, U, E, B], error) {
	return New(sc, name, Config[D, U, E, B]{
		NumPI: Exactly(0), NumPO: Exactly(len(po)),
		Outer: imp, Inner: imp,
		Shape:          sourceShape[D, U, E, B]{po: po},
		ExternalIn:     false,
		ExternalOut:    false,
		Wire:           true,
		NoInwardBundle: true,
	})
}

package node

import "github.com/sarchlab/diplomacy/diperrors"

// Shape fixes the three policy methods the resolution engine asks a node's
// catalog entry for, per spec §4.5. Each concrete shape (Adapter, Nexus,
// Splitter, ...) implements Shape once and is shared by every node of that
// shape.
type Shape[D, U, E, B any] interface {
	// ShapeName identifies the shape for diagnostics (e.g. "adapter").
	ShapeName() string

	// ResolveStar computes this node's own star widths from the counts and
	// known widths gathered in stage 2.
	ResolveStar(iKnown, oKnown, iStars, oStars int) (iStar, oStar int, err *diperrors.Error)

	// MapParamsD maps the downward parameters collected from this node's
	// inward peers into the n outgoing downward parameters for its outward
	// ports. len(result) must equal n.
	MapParamsD(n int, incoming []D) ([]D, *diperrors.Error)

	// MapParamsU maps the upward parameters collected from this node's
	// outward peers into the n outgoing upward parameters for its inward
	// ports. len(result) must equal n.
	MapParamsU(n int, incoming []U) ([]U, *diperrors.Error)
}

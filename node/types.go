// Package node implements the diplomacy resolution engine: node identity,
// push-list bookkeeping, the three binding operators, and the lazy
// two-pass algorithm that turns a graph of pending bindings into resolved
// star counts, port mappings, propagated parameters, edges and bundles.
package node

import (
	"runtime"

	"github.com/sarchlab/diplomacy/diperrors"
)

// BindKind tags a single push with the flavour of binding it records.
type BindKind int

const (
	// Once marks an exactly-one-port binding.
	Once BindKind = iota
	// Star marks a binding whose width this node resolves itself.
	Star
	// Query marks a binding whose width is pulled from the peer's resolved
	// star count on the peer's opposite side.
	Query
)

func (k BindKind) String() string {
	switch k {
	case Once:
		return "once"
	case Star:
		return "star"
	case Query:
		return "query"
	default:
		return "unknown"
	}
}

// Range is a half-open port range [Start, End).
type Range struct {
	Start, End int
}

// Width returns the number of ports covered by r.
func (r Range) Width() int {
	return r.End - r.Start
}

// PortCount is an inclusive acceptance range over ℕ, e.g. {0} for "must not
// bind on this side" or [1, ∞) for "at least one". Max < 0 means unbounded.
type PortCount struct {
	Min, Max int
}

// Degenerate reports whether this acceptance range is exactly {0}, i.e. the
// side may never be pushed to.
func (p PortCount) Degenerate() bool {
	return p.Min == 0 && p.Max == 0
}

// Contains reports whether n falls within [Min, Max] (Max < 0 meaning
// unbounded above).
func (p PortCount) Contains(n int) bool {
	if n < p.Min {
		return false
	}
	if p.Max < 0 {
		return true
	}
	return n <= p.Max
}

// Exactly returns a PortCount accepting only n.
func Exactly(n int) PortCount {
	return PortCount{Min: n, Max: n}
}

// AtLeast returns an unbounded-above PortCount starting at n.
func AtLeast(n int) PortCount {
	return PortCount{Min: n, Max: -1}
}

// Between returns a PortCount accepting [min, max].
func Between(min, max int) PortCount {
	return PortCount{Min: min, Max: max}
}

// CaptureLoc records the call site of a binding operator for diagnostics.
// skip counts frames above CaptureLoc's caller (skip=0 is CaptureLoc's
// caller, skip=1 is that function's caller).
func CaptureLoc(skip int) diperrors.Loc {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return diperrors.Loc{}
	}
	return diperrors.Loc{File: file, Line: line}
}

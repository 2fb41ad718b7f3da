// Package diperrors defines the failure kinds raised by the diplomacy node
// graph during binding and resolution.
package diperrors

import "fmt"

// Kind identifies the category of a diplomacy error.
type Kind int

const (
	// OutOfScope is raised when a node or binding is touched outside its
	// enclosing scope's active lifetime.
	OutOfScope Kind = iota
	// Frozen is raised when a push is attempted on a side whose derived
	// state has already been observed.
	Frozen
	// NotASink is raised when a push targets a side whose acceptance range
	// is the degenerate {0}.
	NotASink
	// NotASource is the outward-side counterpart of NotASink.
	NotASource
	// StarShape is raised when a node shape forbids the observed
	// iStars/oStars pattern.
	StarShape
	// UnderAssigned is raised when known widths are insufficient to resolve
	// a star count.
	UnderAssigned
	// OverAssigned is raised when known widths exceed what a star count can
	// absorb.
	OverAssigned
	// Arity is raised when a resolved port total falls outside the node's
	// acceptance range.
	Arity
	// ParamMismatch is raised when mapParamsD/mapParamsU returns a sequence
	// whose length disagrees with the requested port count.
	ParamMismatch
	// BundleDisallowed is raised when a bundle is requested on a side the
	// shape does not define one for.
	BundleDisallowed
	// InternalInvariant marks a condition that should be unreachable absent
	// a bug — e.g. mirrored bindings disagreeing on width, or a genuine
	// resolution cycle.
	InternalInvariant
)

func (k Kind) String() string {
	switch k {
	case OutOfScope:
		return "OutOfScope"
	case Frozen:
		return "Frozen"
	case NotASink:
		return "NotASink"
	case NotASource:
		return "NotASource"
	case StarShape:
		return "StarShape"
	case UnderAssigned:
		return "UnderAssigned"
	case OverAssigned:
		return "OverAssigned"
	case Arity:
		return "Arity"
	case ParamMismatch:
		return "ParamMismatch"
	case BundleDisallowed:
		return "BundleDisallowed"
	case InternalInvariant:
		return "InternalInvariant"
	default:
		return "Unknown"
	}
}

// Loc is an opaque source location captured at push time, used purely for
// diagnostics.
type Loc struct {
	File string
	Line int
}

func (l Loc) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Error is the single error type raised by the diplomacy core. It always
// names the node and operator involved, and carries a source location when
// one was available at push time.
type Error struct {
	Kind     Kind
	Node     string
	Operator string
	Loc      Loc
	Detail   string
}

func (e *Error) Error() string {
	if e.Loc.File == "" {
		return fmt.Sprintf("%s: node %q, op %q: %s", e.Kind, e.Node, e.Operator, e.Detail)
	}
	return fmt.Sprintf("%s: node %q, op %q (%s): %s", e.Kind, e.Node, e.Operator, e.Loc, e.Detail)
}

// New builds an *Error for the given kind, node, operator and detail.
func New(kind Kind, node, operator string, loc Loc, detail string) *Error {
	return &Error{Kind: kind, Node: node, Operator: operator, Loc: loc, Detail: detail}
}

// Wrap wraps err with additional node/operator context, preserving the
// original Kind when err is already an *Error, otherwise tagging it
// InternalInvariant.
func Wrap(err error, node, operator string, loc Loc) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return fmt.Errorf("%s.%s: %w", node, operator, e)
	}
	return fmt.Errorf("%s.%s: %w", node, operator, New(InternalInvariant, node, operator, loc, err.Error()))
}

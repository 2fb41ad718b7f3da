package diperrors_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/diplomacy/diperrors"
)

var _ = Describe("Kind", func() {
	It("names every declared kind", func() {
		Expect(diperrors.OutOfScope.String()).To(Equal("OutOfScope"))
		Expect(diperrors.Frozen.String()).To(Equal("Frozen"))
		Expect(diperrors.NotASink.String()).To(Equal("NotASink"))
		Expect(diperrors.NotASource.String()).To(Equal("NotASource"))
		Expect(diperrors.StarShape.String()).To(Equal("StarShape"))
		Expect(diperrors.UnderAssigned.String()).To(Equal("UnderAssigned"))
		Expect(diperrors.OverAssigned.String()).To(Equal("OverAssigned"))
		Expect(diperrors.Arity.String()).To(Equal("Arity"))
		Expect(diperrors.ParamMismatch.String()).To(Equal("ParamMismatch"))
		Expect(diperrors.BundleDisallowed.String()).To(Equal("BundleDisallowed"))
		Expect(diperrors.InternalInvariant.String()).To(Equal("InternalInvariant"))
	})

	It("falls back to Unknown for an unrecognised value", func() {
		var k diperrors.Kind = 999
		Expect(k.String()).To(Equal("Unknown"))
	})
})

var _ = Describe("Loc", func() {
	It("renders file:line when a file is set", func() {
		l := diperrors.Loc{File: "graph.go", Line: 42}
		Expect(l.String()).To(Equal("graph.go:42"))
	})

	It("renders a placeholder when no file was captured", func() {
		Expect(diperrors.Loc{}.String()).To(Equal("<unknown>"))
	})
})

var _ = Describe("Error", func() {
	It("omits the location clause when no location was captured", func() {
		err := diperrors.New(diperrors.Arity, "nodeA", "bind", diperrors.Loc{}, "bad width")
		Expect(err.Error()).To(Equal(`Arity: node "nodeA", op "bind": bad width`))
	})

	It("includes the location clause when one was captured", func() {
		loc := diperrors.Loc{File: "demo.go", Line: 7}
		err := diperrors.New(diperrors.Frozen, "nodeB", "once", loc, "already observed")
		Expect(err.Error()).To(Equal(`Frozen: node "nodeB", op "once" (demo.go:7): already observed`))
	})
})

var _ = Describe("Wrap", func() {
	It("returns nil for a nil error", func() {
		Expect(diperrors.Wrap(nil, "n", "op", diperrors.Loc{})).To(BeNil())
	})

	It("preserves the original Kind when wrapping a diperrors.Error", func() {
		inner := diperrors.New(diperrors.StarShape, "nodeA", "resolveStar", diperrors.Loc{}, "two stars")
		wrapped := diperrors.Wrap(inner, "nodeB", "bind", diperrors.Loc{})

		var target *diperrors.Error
		Expect(errors.As(wrapped, &target)).To(BeTrue())
		Expect(target.Kind).To(Equal(diperrors.StarShape))
		Expect(wrapped.Error()).To(ContainSubstring("nodeB.bind"))
	})

	It("tags a foreign error as InternalInvariant", func() {
		wrapped := diperrors.Wrap(fmt.Errorf("boom"), "nodeC", "op", diperrors.Loc{})

		var target *diperrors.Error
		Expect(errors.As(wrapped, &target)).To(BeTrue())
		Expect(target.Kind).To(Equal(diperrors.InternalInvariant))
		Expect(target.Detail).To(Equal("boom"))
	})
})

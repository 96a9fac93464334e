package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"
)

// gradingEps is the relative tolerance used when comparing grading ratios
// across a shared face.
const gradingEps = 1e-9

// GradingSegment is one piece of a multi-segment grading: a fraction of the
// edge length, the fraction of the cells placed on it, and the expansion
// ratio inside it.
type GradingSegment struct {
	LengthFrac float64
	CellFrac   float64
	Ratio      float64
}

// GradingSpec is the grading along one axis or edge: either a single
// expansion ratio or an ordered list of segments. A spec with segments
// ignores Ratio.
type GradingSpec struct {
	Ratio    float64
	Segments []GradingSegment
}

// Uniform is the unit grading.
var Uniform = GradingSpec{Ratio: 1}

// Ratio builds a single-ratio grading spec.
func Ratio(r float64) GradingSpec { return GradingSpec{Ratio: r} }

func (g GradingSpec) valid() error {
	if len(g.Segments) == 0 {
		if g.Ratio <= 0 {
			return fmt.Errorf("expansion ratio must be positive, got %g", g.Ratio)
		}
		return nil
	}
	for i, s := range g.Segments {
		if s.LengthFrac <= 0 || s.CellFrac <= 0 || s.Ratio <= 0 {
			return fmt.Errorf("segment %d must have positive fractions and ratio", i)
		}
	}
	return nil
}

// reciprocal returns the grading seen when traversing the axis in the
// opposite direction: segments reversed, every ratio inverted.
func (g GradingSpec) reciprocal() GradingSpec {
	if len(g.Segments) == 0 {
		return GradingSpec{Ratio: 1 / g.Ratio}
	}
	segs := make([]GradingSegment, len(g.Segments))
	for i, s := range g.Segments {
		segs[len(segs)-1-i] = GradingSegment{
			LengthFrac: s.LengthFrac,
			CellFrac:   s.CellFrac,
			Ratio:      1 / s.Ratio,
		}
	}
	return GradingSpec{Segments: segs}
}

func (g GradingSpec) equal(other GradingSpec) bool {
	if len(g.Segments) != len(other.Segments) {
		return false
	}
	if len(g.Segments) == 0 {
		return scalar.EqualWithinRel(g.Ratio, other.Ratio, gradingEps)
	}
	for i, s := range g.Segments {
		o := other.Segments[i]
		if !scalar.EqualWithinRel(s.LengthFrac, o.LengthFrac, gradingEps) ||
			!scalar.EqualWithinRel(s.CellFrac, o.CellFrac, gradingEps) ||
			!scalar.EqualWithinRel(s.Ratio, o.Ratio, gradingEps) {
			return false
		}
	}
	return true
}

// SetGrading sets the block grading: three specs for simpleGrading, one per
// axis, or twelve for edgeGrading, one per edge in axis-major order.
func (b *Block) SetGrading(specs ...GradingSpec) error {
	if len(specs) != 3 && len(specs) != 12 {
		return fmt.Errorf("mesh: block %d: grading takes 3 (simple) or 12 (edge) specs, got %d",
			b.id, len(specs))
	}
	for i, g := range specs {
		if err := g.valid(); err != nil {
			return fmt.Errorf("mesh: block %d: grading spec %d: %v", b.id, i, err)
		}
	}
	b.grading = append([]GradingSpec(nil), specs...)
	return nil
}

// SimpleGrading sets a single expansion ratio per axis.
func (b *Block) SimpleGrading(gx, gy, gz float64) error {
	return b.SetGrading(Ratio(gx), Ratio(gy), Ratio(gz))
}

// Grading returns the block's grading specs, or nil when unset.
func (b *Block) Grading() []GradingSpec { return b.grading }

// gradingOn returns the grading along one axis. For edgeGrading blocks the
// first edge of the axis stands for the axis; cross-block checks compare
// axis direction, not per-edge variation inside one block.
func (b *Block) gradingOn(axis int) GradingSpec {
	if b.grading == nil {
		return Uniform
	}
	if len(b.grading) == 3 {
		return b.grading[axis]
	}
	return b.grading[axis*4]
}

package mesh

import (
	"fmt"

	"github.com/hexkit/blockmesh/geometry"
)

// Validate cross-checks the whole model and returns every violation found,
// in deterministic order: per-block checks first, then shared-face checks
// over block pairs, then patch and merge-pair references. It never stops at
// the first problem, so one pass reports everything there is to fix.
func (m *Mesh) Validate() []error {
	var diags []error

	// Per-block: orientation re-check and completeness.
	for _, b := range m.blocks {
		vol, err := b.Volume()
		if err != nil {
			diags = append(diags, &ConsistencyError{
				Kind: DanglingReference, BlockA: b.id, BlockB: -1, Axis: -1,
				Detail: err.Error(),
			})
			continue
		}
		if vol <= 0 {
			diags = append(diags, &TopologyError{Block: b.id, Volume: vol})
		}
		if err := b.complete(); err != nil {
			diags = append(diags, &ConsistencyError{
				Kind: IncompleteBlock, BlockA: b.id, BlockB: -1, Axis: -1,
				Detail: err.Error(),
			})
		}
	}

	// Pairwise shared faces.
	for i := 0; i < len(m.blocks); i++ {
		for j := i + 1; j < len(m.blocks); j++ {
			diags = append(diags, m.checkPair(m.blocks[i], m.blocks[j])...)
		}
	}

	// Patch face references.
	for _, p := range m.patches {
		for k, ref := range p.Faces {
			if ref.Block < 0 || ref.Block >= len(m.blocks) {
				diags = append(diags, &ConsistencyError{
					Kind: DanglingReference, BlockA: ref.Block, BlockB: -1, Axis: -1,
					Detail: fmt.Sprintf("patch %q face %d references a block that does not exist",
						p.Name, k),
				})
				continue
			}
			if ref.Face < Bottom || ref.Face > Back {
				diags = append(diags, &ConsistencyError{
					Kind: DanglingReference, BlockA: ref.Block, BlockB: -1, Axis: -1,
					Detail: fmt.Sprintf("patch %q face %d has no face label %d",
						p.Name, k, ref.Face),
				})
			}
		}
	}

	// Merge pairs must name declared patches.
	for _, pair := range m.pairs {
		for _, name := range [2]string{pair.Master, pair.Slave} {
			if m.Patch(name) == nil {
				diags = append(diags, &ConsistencyError{
					Kind: DanglingReference, BlockA: -1, BlockB: -1, Axis: -1,
					Detail: fmt.Sprintf("merge pair (%s %s) references undeclared patch %q",
						pair.Master, pair.Slave, name),
				})
			}
		}
	}

	// Projected edges must target declared surfaces.
	for _, b := range m.blocks {
		for _, ec := range b.Curves() {
			proj, ok := ec.Curve.(*geometry.Project)
			if !ok {
				continue
			}
			for _, name := range proj.Surfaces() {
				if !m.surface(name) {
					diags = append(diags, &ConsistencyError{
						Kind: DanglingReference, BlockA: b.id, BlockB: -1, Axis: -1,
						Detail: fmt.Sprintf("edge %d-%d projects onto undeclared surface %q",
							ec.V0, ec.V1, name),
					})
				}
			}
		}
	}

	return diags
}

// checkPair finds the faces the two blocks share and checks orientation,
// cell counts and grading across each.
func (m *Mesh) checkPair(ba, bb *Block) []error {
	var diags []error
	for fa := Bottom; fa <= Back; fa++ {
		keyA := NewFaceKey(ba.FaceVertices(fa))
		for fb := Bottom; fb <= Back; fb++ {
			if NewFaceKey(bb.FaceVertices(fb)) != keyA {
				continue
			}
			diags = append(diags, m.checkSharedFace(ba, fa, bb, fb)...)
		}
	}
	return diags
}

func (m *Mesh) checkSharedFace(ba *Block, fa FaceLabel, bb *Block, fb FaceLabel) []error {
	var diags []error

	// Orientation: the two outward traversals of a shared interior face must
	// be reverses of each other, otherwise one block is flipped relative to
	// its neighbour.
	ia, ib := ba.FaceVertices(fa), bb.FaceVertices(fb)
	if !reverseIsRotation(ia, ib) {
		diags = append(diags, &ConsistencyError{
			Kind: MismatchOrientation, BlockA: ba.id, BlockB: bb.id, Axis: -1,
			Detail: fmt.Sprintf("shared face %v/%v traversals %v and %v are not opposed",
				fa, fb, ia, ib),
		})
	}

	// The pair checks below compare declared counts and grading; skip them
	// while either block is incomplete, which is already reported.
	if ba.complete() != nil || bb.complete() != nil {
		return diags
	}

	// Walk the four edges of the shared face once per in-plane axis of ba.
	la := faceCorners[fa]
	seen := [3]bool{}
	for k := 0; k < 4; k++ {
		idxA, ok := localEdgeIndex[NewEdgeKey([2]int{la[k], la[(k+1)%4]})]
		if !ok {
			continue
		}
		axisA := idxA / 4
		if seen[axisA] {
			continue
		}
		seen[axisA] = true

		// Global ids of the edge in ba's canonical axis direction.
		ea := edgesOnAxis[axisA][idxA%4]
		g0, g1 := ba.verts[ea[0]], ba.verts[ea[1]]

		// Locate the same edge in bb and its canonical direction there.
		lb0, lb1 := localIndexOf(bb, g0), localIndexOf(bb, g1)
		if lb0 < 0 || lb1 < 0 {
			continue
		}
		idxB, ok := localEdgeIndex[NewEdgeKey([2]int{lb0, lb1})]
		if !ok {
			continue
		}
		axisB := idxB / 4
		eb := edgesOnAxis[axisB][idxB%4]
		reversed := bb.verts[eb[0]] != g0

		if ba.ncells[axisA] != bb.ncells[axisB] {
			diags = append(diags, &ConsistencyError{
				Kind: MismatchCellCount, BlockA: ba.id, BlockB: bb.id, Axis: axisA,
				Detail: fmt.Sprintf("block %d has %d cells on axis %d, block %d has %d on axis %d",
					ba.id, ba.ncells[axisA], axisA, bb.id, bb.ncells[axisB], axisB),
			})
		}

		ga, gb := ba.gradingOn(axisA), bb.gradingOn(axisB)
		if reversed {
			gb = gb.reciprocal()
		}
		if !ga.equal(gb) {
			diags = append(diags, &ConsistencyError{
				Kind: MismatchGrading, BlockA: ba.id, BlockB: bb.id, Axis: axisA,
				Detail: fmt.Sprintf("block %d axis %d grading does not match block %d axis %d"+
					" (reversed traversal: %v)", ba.id, axisA, bb.id, axisB, reversed),
			})
		}
	}

	return diags
}

// reverseIsRotation reports whether b reversed is a cyclic rotation of a,
// the condition for two outward face traversals to be consistently opposed.
func reverseIsRotation(a, b [4]int) bool {
	rev := [4]int{b[3], b[2], b[1], b[0]}
	for r := 0; r < 4; r++ {
		match := true
		for k := 0; k < 4; k++ {
			if a[k] != rev[(k+r)%4] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// localIndexOf returns the local index (0..7) of a global vertex id in a
// block, or -1.
func localIndexOf(b *Block, global int) int {
	for i, id := range b.verts {
		if id == global {
			return i
		}
	}
	return -1
}

package mesh

import (
	"fmt"
	"math"
	"sort"
)

// EdgeKey packs an unordered pair of vertex indices into one comparable
// value so edges can be used as map keys and matched regardless of
// traversal direction.
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeKey(i1 + i2<<32)
	return
}

// GetVertices unpacks the key into its vertex pair, smallest first.
func (ek EdgeKey) GetVertices() (verts [2]int) {
	verts[0] = int(ek & 0xffffffff)
	verts[1] = int(ek >> 32)
	return
}

// FaceKey identifies a quad face by its four vertex ids independent of
// traversal order. Two block faces coincide exactly when their keys match.
type FaceKey [4]int

func NewFaceKey(verts [4]int) (key FaceKey) {
	key = verts
	sort.Ints(key[:])
	return
}

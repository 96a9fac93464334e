package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexkit/blockmesh/geometry"
)

// twoCubes builds cube A spanning [0,1]^3 and cube B spanning
// [1,2]x[0,1]x[0,1], sharing the x=1 face.
func twoCubes(t *testing.T) (*Mesh, *Block, *Block) {
	t.Helper()
	m := NewMesh()
	a, err := NewBlock(m, unitCube(0))
	require.NoError(t, err)
	b, err := NewBlock(m, unitCube(1))
	require.NoError(t, err)

	// The shared face deduplicates: 8 + 4 new vertices.
	require.Equal(t, 12, m.NumVertices())

	require.NoError(t, a.SetCellCounts(4, 5, 6))
	require.NoError(t, b.SetCellCounts(9, 5, 6))
	require.NoError(t, a.SimpleGrading(1, 1, 1))
	require.NoError(t, b.SimpleGrading(1, 1, 1))
	return m, a, b
}

func TestValidateConsistentPair(t *testing.T) {
	m, _, _ := twoCubes(t)
	assert.Empty(t, m.Validate())
}

func TestValidateCellCountMismatch(t *testing.T) {
	m, a, b := twoCubes(t)

	// The y axis lies in the shared face; a mismatch there is an error.
	require.NoError(t, b.SetCellCounts(9, 7, 6))
	diags := m.Validate()
	require.Len(t, diags, 1)

	var cerr *ConsistencyError
	require.ErrorAs(t, diags[0], &cerr)
	assert.Equal(t, MismatchCellCount, cerr.Kind)
	assert.Equal(t, a.ID(), cerr.BlockA)
	assert.Equal(t, b.ID(), cerr.BlockB)
	assert.Equal(t, 1, cerr.Axis)

	// The x axis is normal to the shared face; mismatching it is fine.
	require.NoError(t, b.SetCellCounts(3, 5, 6))
	assert.Empty(t, m.Validate())
}

func TestValidateGradingMismatch(t *testing.T) {
	m, _, b := twoCubes(t)

	require.NoError(t, b.SimpleGrading(1, 2, 1))
	diags := m.Validate()
	require.Len(t, diags, 1)

	var cerr *ConsistencyError
	require.ErrorAs(t, diags[0], &cerr)
	assert.Equal(t, MismatchGrading, cerr.Kind)
	assert.Equal(t, 1, cerr.Axis)

	// Grading normal to the shared face is unconstrained.
	require.NoError(t, b.SimpleGrading(3, 1, 1))
	assert.Empty(t, m.Validate())
}

func TestValidateReciprocalGrading(t *testing.T) {
	m := NewMesh()
	a, err := NewBlock(m, unitCube(0))
	require.NoError(t, err)

	// Neighbour cube with its y and z axes running opposite to a's, still
	// right-handed.
	b, err := NewBlock(m, [8]geometry.Point{
		geometry.Pt(1, 1, 1), geometry.Pt(2, 1, 1),
		geometry.Pt(2, 0, 1), geometry.Pt(1, 0, 1),
		geometry.Pt(1, 1, 0), geometry.Pt(2, 1, 0),
		geometry.Pt(2, 0, 0), geometry.Pt(1, 0, 0),
	})
	require.NoError(t, err)

	require.NoError(t, a.SetCellCounts(4, 5, 6))
	require.NoError(t, b.SetCellCounts(3, 5, 6))

	// The interface reverses the y traversal, so the gradings must be
	// reciprocal there.
	require.NoError(t, a.SimpleGrading(1, 2, 1))
	require.NoError(t, b.SimpleGrading(1, 0.5, 1))
	assert.Empty(t, m.Validate())

	// The same non-unit ratio on both sides is wrong under reversal.
	require.NoError(t, b.SimpleGrading(1, 2, 1))
	diags := m.Validate()
	require.Len(t, diags, 1)
	var cerr *ConsistencyError
	require.ErrorAs(t, diags[0], &cerr)
	assert.Equal(t, MismatchGrading, cerr.Kind)
	assert.Equal(t, 1, cerr.Axis)
}

func TestValidateIncompleteBlock(t *testing.T) {
	m := NewMesh()
	b, err := NewBlock(m, unitCube(0))
	require.NoError(t, err)

	diags := m.Validate()
	require.Len(t, diags, 1)
	var cerr *ConsistencyError
	require.ErrorAs(t, diags[0], &cerr)
	assert.Equal(t, IncompleteBlock, cerr.Kind)
	assert.Contains(t, cerr.Detail, "axis 0")

	require.NoError(t, b.SetCellCounts(2, 2, 2))
	diags = m.Validate()
	require.Len(t, diags, 1)
	require.ErrorAs(t, diags[0], &cerr)
	assert.Contains(t, cerr.Detail, "grading")

	require.NoError(t, b.SimpleGrading(1, 1, 1))
	assert.Empty(t, m.Validate())
}

func TestValidateAccumulatesAllViolations(t *testing.T) {
	m, _, b := twoCubes(t)

	// One cell-count and one grading mismatch on different axes: both are
	// reported in one pass.
	require.NoError(t, b.SetCellCounts(9, 7, 6))
	require.NoError(t, b.SimpleGrading(1, 1, 4))
	diags := m.Validate()
	assert.Len(t, diags, 2)
}

func TestValidateDanglingReferences(t *testing.T) {
	m, _, _ := twoCubes(t)

	_, err := m.AddPatch("inlet", KindPatch, FaceRef{Block: 5, Face: Left})
	require.NoError(t, err)
	require.NoError(t, m.AddMergePatchPair("inlet", "ghost"))

	diags := m.Validate()
	require.Len(t, diags, 2)
	var cerr *ConsistencyError
	require.ErrorAs(t, diags[0], &cerr)
	assert.Equal(t, DanglingReference, cerr.Kind)
	require.ErrorAs(t, diags[1], &cerr)
	assert.Contains(t, cerr.Detail, "ghost")
}

func TestValidateDeterministicOrder(t *testing.T) {
	m, _, b := twoCubes(t)
	require.NoError(t, b.SetCellCounts(9, 7, 2))
	require.NoError(t, b.SimpleGrading(1, 5, 1))

	first := m.Validate()
	for i := 0; i < 10; i++ {
		again := m.Validate()
		require.Equal(t, len(first), len(again))
		for k := range first {
			assert.Equal(t, first[k].Error(), again[k].Error())
		}
	}
}

func TestReverseIsRotation(t *testing.T) {
	a := [4]int{1, 2, 6, 5}
	assert.True(t, reverseIsRotation(a, [4]int{2, 1, 5, 6}))
	assert.True(t, reverseIsRotation(a, [4]int{5, 6, 2, 1}))
	assert.False(t, reverseIsRotation(a, [4]int{1, 2, 6, 5}), "same traversal means opposed normals disagree")
	assert.False(t, reverseIsRotation(a, [4]int{1, 6, 2, 5}))
}

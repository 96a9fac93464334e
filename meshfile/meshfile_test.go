package meshfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoCubeYAML = `
title: "Two cubes"
scale: 0.001
blocks:
  - corners: [[0,0,0],[1,0,0],[1,1,0],[0,1,0],
              [0,0,1],[1,0,1],[1,1,1],[0,1,1]]
    cells: [4, 5, 6]
    cellZone: fluid
  - stackOn: {block: 0, face: right}
    corners: [[2,0,0],[2,1,0],[2,1,1],[2,0,1]]
    # The stacked block's local axes follow the reused face: x along the
    # base's y, y along the base's z, z outward.
    cells: [5, 6, 4]
patches:
  - name: walls
    type: wall
    faces:
      - {block: 0, face: bottom}
      - {block: 1, face: bottom}
  - name: inlet
    type: patch
    faces:
      - {block: 0, face: left}
mergePatchPairs:
  - [walls, inlet]
`

func TestParseAndBuild(t *testing.T) {
	def, err := Parse([]byte(twoCubeYAML))
	require.NoError(t, err)
	assert.Equal(t, "Two cubes", def.Title)
	assert.Equal(t, 0.001, def.Scale)
	require.Len(t, def.Blocks, 2)
	require.Len(t, def.Patches, 2)

	m, err := def.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, m.NumBlocks())
	assert.Equal(t, 12, m.NumVertices(), "stacking reuses the shared face vertices")
	assert.Equal(t, 0.001, m.Scale)

	require.NotNil(t, m.Patch("walls"))
	require.NotNil(t, m.Patch("inlet"))
}

func TestBuildValidateRender(t *testing.T) {
	def, err := Parse([]byte(twoCubeYAML))
	require.NoError(t, err)
	m, err := def.Build()
	require.NoError(t, err)

	require.Empty(t, m.Validate())

	first, err := m.Render()
	require.NoError(t, err)
	assert.Contains(t, first, "hex (0 1 2 3 4 5 6 7) fluid (4 5 6) simpleGrading (1 1 1)")
	assert.Contains(t, first, "(walls inlet)")

	// Round trip is deterministic: rebuild from the same file, same bytes.
	def2, err := Parse([]byte(twoCubeYAML))
	require.NoError(t, err)
	m2, err := def2.Build()
	require.NoError(t, err)
	again, err := m2.Render()
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestBuildStackedCellCountMismatch(t *testing.T) {
	def, err := Parse([]byte(twoCubeYAML))
	require.NoError(t, err)
	def.Blocks[1].Cells = [3]int{9, 6, 4}

	m, err := def.Build()
	require.NoError(t, err)
	diags := m.Validate()
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Error(), "cell count mismatch")
}

func TestBuildEdges(t *testing.T) {
	yamlDoc := `
blocks:
  - corners: [[0,0,0],[1,0,0],[1,1,0],[0,1,0],
              [0,0,1],[1,0,1],[1,1,1],[0,1,1]]
    cells: [10, 10, 10]
    grading: [{ratio: 1}, {ratio: 2}, {ratio: 1}]
    edges:
      - {type: arc, between: [0, 1], through: [0.5, 0.3, 0]}
      - {type: spline, between: [0, 3], points: [[-0.1, 0.5, 0]]}
`
	def, err := Parse([]byte(yamlDoc))
	require.NoError(t, err)
	m, err := def.Build()
	require.NoError(t, err)
	require.Empty(t, m.Validate())

	text, err := m.Render()
	require.NoError(t, err)
	assert.Contains(t, text, "arc 0 1 (0.500000 0.300000 0.000000)")
	assert.Contains(t, text, "spline 0 3 ((-0.100000 0.500000 0.000000))")
	assert.Contains(t, text, "simpleGrading (1 2 1)")
}

func TestBuildErrors(t *testing.T) {
	// Wrong corner count.
	_, err := mustParse(t, `
blocks:
  - corners: [[0,0,0],[1,0,0]]
`).Build()
	assert.ErrorContains(t, err, "8 corners")

	// Stacked block referencing a later block.
	_, err = mustParse(t, `
blocks:
  - stackOn: {block: 3, face: top}
    corners: [[0,0,2],[1,0,2],[1,1,2],[0,1,2]]
`).Build()
	assert.Error(t, err)

	// Unknown patch type.
	_, err = mustParse(t, `
blocks:
  - corners: [[0,0,0],[1,0,0],[1,1,0],[0,1,0],
              [0,0,1],[1,0,1],[1,1,1],[0,1,1]]
patches:
  - name: inlet
    type: inflow
    faces: [{block: 0, face: left}]
`).Build()
	assert.ErrorContains(t, err, "unknown patch type")

	// Left-handed corner ordering.
	_, err = mustParse(t, `
blocks:
  - corners: [[0,0,1],[1,0,1],[1,1,1],[0,1,1],
              [0,0,0],[1,0,0],[1,1,0],[0,1,0]]
`).Build()
	assert.ErrorContains(t, err, "non-positive volume")

	// Arc without control data.
	_, err = mustParse(t, `
blocks:
  - corners: [[0,0,0],[1,0,0],[1,1,0],[0,1,0],
              [0,0,1],[1,0,1],[1,1,1],[0,1,1]]
    edges:
      - {type: arc, between: [0, 1]}
`).Build()
	assert.ErrorContains(t, err, "arc edge needs")
}

func mustParse(t *testing.T, doc string) *Definition {
	t.Helper()
	def, err := Parse([]byte(doc))
	require.NoError(t, err)
	return def
}

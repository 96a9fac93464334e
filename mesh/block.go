package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/hexkit/blockmesh/geometry"
)

// FaceLabel names one of the six local faces of a hex block.
type FaceLabel int

const (
	Bottom FaceLabel = iota
	Top
	Right
	Left
	Front
	Back
)

func (f FaceLabel) String() string {
	return [...]string{"bottom", "top", "right", "left", "front", "back"}[f]
}

var faceNameMap = map[string]FaceLabel{
	"bottom": Bottom,
	"top":    Top,
	"right":  Right,
	"left":   Left,
	"front":  Front,
	"back":   Back,
}

// ParseFaceLabel maps a face name to its label.
func ParseFaceLabel(name string) (FaceLabel, error) {
	f, ok := faceNameMap[name]
	if !ok {
		return 0, fmt.Errorf("mesh: unknown face label %q", name)
	}
	return f, nil
}

// faceCorners lists the local vertex indices of each face, ordered so the
// face normal points out of the block. Vertex labeling follows the hex
// convention: 0..3 bottom, 4..7 top, vertex i+4 above vertex i.
var faceCorners = [6][4]int{
	Bottom: {0, 3, 2, 1},
	Top:    {4, 5, 6, 7},
	Right:  {1, 2, 6, 5},
	Left:   {3, 0, 4, 7},
	Front:  {0, 1, 5, 4},
	Back:   {2, 3, 7, 6},
}

// edgesOnAxis lists the four local edges running along each logical axis,
// each directed with the axis.
var edgesOnAxis = [3][4][2]int{
	{{0, 1}, {3, 2}, {7, 6}, {4, 5}}, // x
	{{0, 3}, {1, 2}, {5, 6}, {4, 7}}, // y
	{{0, 4}, {1, 5}, {2, 6}, {3, 7}}, // z
}

// localEdgeIndex maps a packed unordered local vertex pair to the flat edge
// index 0..11 (axis*4 + slot).
var localEdgeIndex = func() map[EdgeKey]int {
	idx := make(map[EdgeKey]int, 12)
	for axis, edges := range edgesOnAxis {
		for slot, e := range edges {
			idx[NewEdgeKey([2]int{e[0], e[1]})] = axis*4 + slot
		}
	}
	return idx
}()

// Block is one hexahedral sub-region: eight registered vertex ids in
// right-handed order, per-axis cell counts and grading, and optional curved
// overrides for any of its twelve edges. Cell counts and grading may be set
// after construction; a block missing either fails validation, not
// construction.
type Block struct {
	id    int
	mesh  *Mesh
	verts [8]int

	ncells   [3]int
	grading  []GradingSpec // nil until set; len 3 (simple) or 12 (edge)
	curves   [12]geometry.Curve
	cellZone string
	comment  string
}

// NewBlock registers the eight corner points and adds a block to the mesh.
// Corners follow the hex convention: the first four traverse the bottom
// face so that the next four form the top face in the same rotational
// sense. A left-handed ordering fails with a TopologyError; the ordering is
// never silently repaired.
func NewBlock(m *Mesh, corners [8]geometry.Point) (*Block, error) {
	var verts [8]int
	for i, p := range corners {
		id, err := m.RegisterVertex(p)
		if err != nil {
			return nil, err
		}
		verts[i] = id
	}
	return newBlockFromIDs(m, verts)
}

// StackBlock builds a block on top of an existing block's face, reusing the
// face's four vertex ids and registering only the four new corners. The new
// corners correspond one-to-one with the reused face's corner order. The
// face ids are looked up once at build time; the blocks share no mutable
// state afterwards.
func StackBlock(m *Mesh, base *Block, face FaceLabel, corners [4]geometry.Point) (*Block, error) {
	if base == nil || base.mesh != m {
		return nil, fmt.Errorf("mesh: stacking base block belongs to another mesh")
	}
	var verts [8]int
	shared := base.FaceVertices(face)
	copy(verts[:4], shared[:])
	for i, p := range corners {
		id, err := m.RegisterVertex(p)
		if err != nil {
			return nil, err
		}
		verts[4+i] = id
	}
	return newBlockFromIDs(m, verts)
}

// Extrude stacks a block onto a face by offsetting the face's corners by a
// fixed vector.
func Extrude(m *Mesh, base *Block, face FaceLabel, offset geometry.Point) (*Block, error) {
	shared := base.FaceVertices(face)
	var corners [4]geometry.Point
	for i, id := range shared {
		v, err := m.Vertex(id)
		if err != nil {
			return nil, err
		}
		corners[i] = geometry.Translate(v.Coords, offset)
	}
	return StackBlock(m, base, face, corners)
}

func newBlockFromIDs(m *Mesh, verts [8]int) (*Block, error) {
	b := &Block{id: len(m.blocks), mesh: m, verts: verts}
	vol, err := b.Volume()
	if err != nil {
		return nil, err
	}
	if vol <= 0 {
		return nil, &TopologyError{Block: b.id, Volume: vol}
	}
	m.blocks = append(m.blocks, b)
	return b, nil
}

// ID returns the block's id in mesh insertion order.
func (b *Block) ID() int { return b.id }

// MeshOf returns the mesh the block belongs to.
func (b *Block) MeshOf() *Mesh { return b.mesh }

// Vertices returns the block's eight vertex ids.
func (b *Block) Vertices() [8]int { return b.verts }

// FaceVertices returns the vertex ids of a face in outward-normal order.
func (b *Block) FaceVertices(face FaceLabel) (ids [4]int) {
	for i, c := range faceCorners[face] {
		ids[i] = b.verts[c]
	}
	return
}

// corner returns the registered coordinates of local vertex i.
func (b *Block) corner(i int) geometry.Point {
	v, _ := b.mesh.Vertex(b.verts[i])
	return v.Coords
}

// Volume returns the signed volume of the hexahedron, positive for a
// right-handed vertex ordering. The hex is decomposed into six tetrahedra
// around the 0-6 diagonal.
func (b *Block) Volume() (float64, error) {
	for _, id := range b.verts {
		if _, err := b.mesh.Vertex(id); err != nil {
			return 0, err
		}
	}
	var p [8]geometry.Point
	for i := range p {
		p[i] = b.corner(i)
	}
	tets := [6][4]int{
		{0, 1, 2, 6}, {0, 2, 3, 6}, {0, 3, 7, 6},
		{0, 7, 4, 6}, {0, 4, 5, 6}, {0, 5, 1, 6},
	}
	var vol float64
	for _, t := range tets {
		vol += tetVolume(p[t[0]], p[t[1]], p[t[2]], p[t[3]])
	}
	return vol, nil
}

func tetVolume(a, b, c, d geometry.Point) float64 {
	return r3.Dot(r3.Sub(b, a), r3.Cross(r3.Sub(c, a), r3.Sub(d, a))) / 6
}

// SetCellCounts sets the number of cells along each logical axis.
func (b *Block) SetCellCounts(nx, ny, nz int) error {
	for axis, n := range [3]int{nx, ny, nz} {
		if n <= 0 {
			return fmt.Errorf("mesh: block %d: cell count on axis %d must be positive, got %d",
				b.id, axis, n)
		}
	}
	b.ncells = [3]int{nx, ny, nz}
	return nil
}

// CellCounts returns the per-axis cell counts; zeros mean unset.
func (b *Block) CellCounts() [3]int { return b.ncells }

// SetCellSize sets the cell count on every axis so the cell size along the
// first edge of each axis does not exceed size.
func (b *Block) SetCellSize(size float64) error {
	if size <= 0 {
		return fmt.Errorf("mesh: block %d: cell size must be positive, got %g", b.id, size)
	}
	var counts [3]int
	for axis := range counts {
		counts[axis] = cellsForSize(size, b.edgeLength(axis, 0))
	}
	return b.SetCellCounts(counts[0], counts[1], counts[2])
}

// SetCellSizeOnAxis sets the cell count on one axis from a target cell size.
func (b *Block) SetCellSizeOnAxis(size float64, axis int) error {
	if size <= 0 {
		return fmt.Errorf("mesh: block %d: cell size must be positive, got %g", b.id, size)
	}
	if axis < 0 || axis > 2 {
		return fmt.Errorf("mesh: block %d: no axis %d", b.id, axis)
	}
	n := b.ncells
	n[axis] = cellsForSize(size, b.edgeLength(axis, 0))
	b.ncells = n
	return nil
}

// edgeLength returns the length of the slot-th edge on an axis, honoring a
// curved override when one is set.
func (b *Block) edgeLength(axis, slot int) float64 {
	e := edgesOnAxis[axis][slot]
	if c := b.curves[axis*4+slot]; c != nil {
		return c.Length()
	}
	return geometry.Distance(b.corner(e[0]), b.corner(e[1]))
}

// SetCellZone assigns the block to a named cell zone.
func (b *Block) SetCellZone(name string) { b.cellZone = name }

// SetDescription attaches a free-text comment emitted after the block entry.
func (b *Block) SetDescription(desc string) { b.comment = desc }

// SetEdge overrides the edge between two local vertices (0..7) with a
// curve. The curve's evaluated endpoints must coincide with the registered
// coordinates of the edge's vertices; a curve supplied in the opposite
// direction is reversed to fit.
func (b *Block) SetEdge(v0, v1 int, curve geometry.Curve) error {
	if v0 < 0 || v0 > 7 || v1 < 0 || v1 > 7 {
		return fmt.Errorf("mesh: block %d: local vertex indices must be 0..7, got %d and %d",
			b.id, v0, v1)
	}
	idx, ok := localEdgeIndex[NewEdgeKey([2]int{v0, v1})]
	if !ok {
		return fmt.Errorf("mesh: block %d: local vertices %d and %d do not form an edge",
			b.id, v0, v1)
	}

	// Orient the curve with the edge's canonical axis direction.
	e := edgesOnAxis[idx/4][idx%4]
	p0, p1 := b.corner(e[0]), b.corner(e[1])
	tol := b.mesh.tol
	switch {
	case geometry.Distance(curve.Start(), p0) <= tol && geometry.Distance(curve.End(), p1) <= tol:
		// Already oriented.
	case geometry.Distance(curve.Start(), p1) <= tol && geometry.Distance(curve.End(), p0) <= tol:
		curve = curve.Reverse()
	default:
		return fmt.Errorf("mesh: block %d: curve endpoints do not coincide with"+
			" vertices %d and %d of edge %d-%d", b.id, b.verts[e[0]], b.verts[e[1]], v0, v1)
	}
	b.curves[idx] = curve
	return nil
}

// Curves returns the curved edge overrides keyed by global vertex id pair,
// in deterministic edge-index order.
func (b *Block) Curves() []EdgeCurve {
	var out []EdgeCurve
	for idx, c := range b.curves {
		if c == nil {
			continue
		}
		e := edgesOnAxis[idx/4][idx%4]
		out = append(out, EdgeCurve{
			V0:    b.verts[e[0]],
			V1:    b.verts[e[1]],
			Curve: c,
		})
	}
	return out
}

// EdgeCurve pairs a curved edge override with its global vertex ids.
type EdgeCurve struct {
	V0, V1 int
	Curve  geometry.Curve
}

// cellsForSize computes the cell count that keeps cells at or under the
// target size over an edge of the given length.
func cellsForSize(size, length float64) int {
	n := int(math.Ceil(length / size))
	if n < 1 {
		n = 1
	}
	return n
}

// complete reports whether cell counts and grading are both set, naming the
// first missing piece.
func (b *Block) complete() error {
	for axis, n := range b.ncells {
		if n <= 0 {
			return fmt.Errorf("cell count unset on axis %d", axis)
		}
	}
	if b.grading == nil {
		return fmt.Errorf("grading unset")
	}
	return nil
}

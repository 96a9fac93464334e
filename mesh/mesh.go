package mesh

import (
	"fmt"

	"github.com/hexkit/blockmesh/geometry"
)

// DefaultTolerance is the absolute coincidence tolerance used by vertex
// registration when none is configured. Coordinates are in mesh length
// units, so the default suits meshes with features around unit scale.
const DefaultTolerance = 1e-8

// Vertex is one registered mesh vertex. Ids are stable and assigned in
// registration order; everything else in the model refers to vertices by id.
type Vertex struct {
	ID     int
	Coords geometry.Point
}

// Surface is a named projection target declared in the geometry section,
// referenced by projected edges and faces.
type Surface struct {
	Name string
	File string // triSurfaceMesh file
}

// Mesh is the explicit context holding one complete block-structured mesh
// description: the vertex registry, blocks, patches, projection surfaces and
// patch merge pairs. Independent meshes are independent Mesh values; there
// is no process-wide state.
type Mesh struct {
	Scale float64

	tol      float64
	vertices []Vertex
	blocks   []*Block
	patches  []*Patch
	pairs    []MergePatchPair
	surfaces []Surface
}

// Option configures a Mesh at construction.
type Option func(*Mesh)

// WithTolerance sets the absolute coincidence tolerance for vertex
// registration.
func WithTolerance(tol float64) Option {
	return func(m *Mesh) { m.tol = tol }
}

// WithScale sets the scale entry emitted in the mesh description.
func WithScale(scale float64) Option {
	return func(m *Mesh) { m.Scale = scale }
}

// NewMesh creates an empty mesh context.
func NewMesh(opts ...Option) *Mesh {
	m := &Mesh{
		Scale: 1,
		tol:   DefaultTolerance,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Tolerance returns the coincidence tolerance in effect.
func (m *Mesh) Tolerance() float64 { return m.tol }

// RegisterVertex deduplicates the point against every registered vertex and
// returns its id. A point within the tolerance of an existing vertex reuses
// that vertex's id; a point farther than twice the tolerance from every
// vertex gets a fresh id. In between the registration is ambiguous and
// fails with a RegistryError.
func (m *Mesh) RegisterVertex(p geometry.Point) (int, error) {
	for _, v := range m.vertices {
		d := geometry.Distance(v.Coords, p)
		if d <= m.tol {
			return v.ID, nil
		}
		if d < 2*m.tol {
			return -1, &RegistryError{
				Coords:   [3]float64{p.X, p.Y, p.Z},
				Existing: v.ID,
				Dist:     d,
			}
		}
	}
	id := len(m.vertices)
	m.vertices = append(m.vertices, Vertex{ID: id, Coords: p})
	return id, nil
}

// Vertex returns the registered vertex with the given id.
func (m *Mesh) Vertex(id int) (Vertex, error) {
	if id < 0 || id >= len(m.vertices) {
		return Vertex{}, fmt.Errorf("mesh: no vertex with id %d", id)
	}
	return m.vertices[id], nil
}

// NumVertices returns the number of registered vertices.
func (m *Mesh) NumVertices() int { return len(m.vertices) }

// NumBlocks returns the number of blocks in the mesh.
func (m *Mesh) NumBlocks() int { return len(m.blocks) }

// Block returns the block with the given id.
func (m *Mesh) Block(id int) (*Block, error) {
	if id < 0 || id >= len(m.blocks) {
		return nil, fmt.Errorf("mesh: no block with id %d", id)
	}
	return m.blocks[id], nil
}

// AddSurface declares a named triSurfaceMesh projection surface.
func (m *Mesh) AddSurface(name, file string) error {
	if name == "" {
		return fmt.Errorf("mesh: surface name must not be empty")
	}
	for _, s := range m.surfaces {
		if s.Name == name {
			return fmt.Errorf("mesh: surface %q already declared", name)
		}
	}
	m.surfaces = append(m.surfaces, Surface{Name: name, File: file})
	return nil
}

func (m *Mesh) surface(name string) bool {
	for _, s := range m.surfaces {
		if s.Name == name {
			return true
		}
	}
	return false
}

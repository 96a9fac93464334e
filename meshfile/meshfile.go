// Package meshfile defines the YAML mesh-definition schema and builds a
// mesh model from it. It is the file-facing glue around the mesh package;
// everything here is data entry, the checking lives in the validator.
package meshfile

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/hexkit/blockmesh/geometry"
	"github.com/hexkit/blockmesh/mesh"
)

// Definition is the top-level mesh definition read from a YAML file.
type Definition struct {
	Title           string       `yaml:"title"`
	Scale           float64      `yaml:"scale"`
	Tolerance       float64      `yaml:"tolerance"`
	Surfaces        []SurfaceDef `yaml:"surfaces"`
	Blocks          []BlockDef   `yaml:"blocks"`
	Patches         []PatchDef   `yaml:"patches"`
	MergePatchPairs [][2]string  `yaml:"mergePatchPairs"`
}

// SurfaceDef declares a projection surface.
type SurfaceDef struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

// StackDef places a block onto an existing block's face.
type StackDef struct {
	Block int    `yaml:"block"`
	Face  string `yaml:"face"`
}

// BlockDef declares one hex block. A free-standing block takes eight
// corners; a stacked block takes a stackOn reference plus the four new
// corners above the reused face.
type BlockDef struct {
	Corners     [][3]float64 `yaml:"corners"`
	StackOn     *StackDef    `yaml:"stackOn"`
	Cells       [3]int       `yaml:"cells"`
	Grading     []GradingDef `yaml:"grading"`
	CellZone    string       `yaml:"cellZone"`
	Description string       `yaml:"description"`
	Edges       []EdgeDef    `yaml:"edges"`
}

// GradingDef is one grading spec: a plain expansion ratio or a list of
// (lengthFrac cellFrac ratio) segments.
type GradingDef struct {
	Ratio    float64      `yaml:"ratio"`
	Segments [][3]float64 `yaml:"segments"`
}

// EdgeDef overrides one block edge with a curve. Between holds the local
// vertex indices (0..7) of the edge.
type EdgeDef struct {
	Type     string       `yaml:"type"`
	Between  [2]int       `yaml:"between"`
	Through  *[3]float64  `yaml:"through"`  // arc
	Origin   *[3]float64  `yaml:"origin"`   // arc, origin form
	Factor   float64      `yaml:"factor"`   // arc, origin form
	Radius   float64      `yaml:"radius"`   // arc, radius form
	Normal   *[3]float64  `yaml:"normal"`   // arc, radius form
	Points   [][3]float64 `yaml:"points"`   // polyLine, spline, BSpline
	Degree   int          `yaml:"degree"`   // BSpline
	Knots    []float64    `yaml:"knots"`    // BSpline
	Surfaces []string     `yaml:"surfaces"` // project
}

// PatchDef declares one boundary patch.
type PatchDef struct {
	Name  string    `yaml:"name"`
	Type  string    `yaml:"type"`
	Faces []FaceDef `yaml:"faces"`
}

// FaceDef references one face of one block.
type FaceDef struct {
	Block int    `yaml:"block"`
	Face  string `yaml:"face"`
}

// Parse reads a Definition from YAML.
func Parse(data []byte) (*Definition, error) {
	d := &Definition{}
	if err := yaml.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("meshfile: %v", err)
	}
	return d, nil
}

// Print writes a short summary of the definition to standard output.
func (d *Definition) Print() {
	fmt.Printf("\"%s\"\t= Title\n", d.Title)
	fmt.Printf("%d\t= Blocks\n", len(d.Blocks))
	fmt.Printf("%d\t= Patches\n", len(d.Patches))
	fmt.Printf("%d\t= Merge patch pairs\n", len(d.MergePatchPairs))
	for _, p := range d.Patches {
		fmt.Printf("Patch[%s] type %s, %d faces\n", p.Name, p.Type, len(p.Faces))
	}
}

// Build assembles the mesh model from the definition. Construction errors
// (bad curves, inside-out blocks, ambiguous vertices) fail immediately;
// cross-block consistency is the validator's job afterwards.
func (d *Definition) Build() (*mesh.Mesh, error) {
	var opts []mesh.Option
	if d.Scale != 0 {
		opts = append(opts, mesh.WithScale(d.Scale))
	}
	if d.Tolerance != 0 {
		opts = append(opts, mesh.WithTolerance(d.Tolerance))
	}
	m := mesh.NewMesh(opts...)

	for _, s := range d.Surfaces {
		if err := m.AddSurface(s.Name, s.File); err != nil {
			return nil, err
		}
	}

	for i, bd := range d.Blocks {
		b, err := buildBlock(m, bd)
		if err != nil {
			return nil, fmt.Errorf("meshfile: block %d: %v", i, err)
		}
		if bd.Cells != [3]int{} {
			if err := b.SetCellCounts(bd.Cells[0], bd.Cells[1], bd.Cells[2]); err != nil {
				return nil, err
			}
		}
		if err := applyGrading(b, bd.Grading); err != nil {
			return nil, fmt.Errorf("meshfile: block %d: %v", i, err)
		}
		if bd.CellZone != "" {
			b.SetCellZone(bd.CellZone)
		}
		if bd.Description != "" {
			b.SetDescription(bd.Description)
		}
		for _, ed := range bd.Edges {
			if err := applyEdge(b, ed); err != nil {
				return nil, fmt.Errorf("meshfile: block %d: %v", i, err)
			}
		}
	}

	for _, pd := range d.Patches {
		kind, err := mesh.ParsePatchKind(pd.Type)
		if err != nil {
			return nil, fmt.Errorf("meshfile: patch %q: %v", pd.Name, err)
		}
		faces := make([]mesh.FaceRef, len(pd.Faces))
		for k, fd := range pd.Faces {
			label, err := mesh.ParseFaceLabel(fd.Face)
			if err != nil {
				return nil, fmt.Errorf("meshfile: patch %q face %d: %v", pd.Name, k, err)
			}
			faces[k] = mesh.FaceRef{Block: fd.Block, Face: label}
		}
		if _, err := m.AddPatch(pd.Name, kind, faces...); err != nil {
			return nil, err
		}
	}

	for _, pair := range d.MergePatchPairs {
		if err := m.AddMergePatchPair(pair[0], pair[1]); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func buildBlock(m *mesh.Mesh, bd BlockDef) (*mesh.Block, error) {
	if bd.StackOn != nil {
		if len(bd.Corners) != 4 {
			return nil, fmt.Errorf("stacked block needs 4 corners, got %d", len(bd.Corners))
		}
		base, err := m.Block(bd.StackOn.Block)
		if err != nil {
			return nil, err
		}
		face, err := mesh.ParseFaceLabel(bd.StackOn.Face)
		if err != nil {
			return nil, err
		}
		var corners [4]geometry.Point
		for i, c := range bd.Corners {
			corners[i] = geometry.Pt(c[0], c[1], c[2])
		}
		return mesh.StackBlock(m, base, face, corners)
	}

	if len(bd.Corners) != 8 {
		return nil, fmt.Errorf("block needs 8 corners, got %d", len(bd.Corners))
	}
	var corners [8]geometry.Point
	for i, c := range bd.Corners {
		corners[i] = geometry.Pt(c[0], c[1], c[2])
	}
	return mesh.NewBlock(m, corners)
}

func applyGrading(b *mesh.Block, defs []GradingDef) error {
	if len(defs) == 0 {
		// Uniform grading when the file says nothing.
		return b.SimpleGrading(1, 1, 1)
	}
	specs := make([]mesh.GradingSpec, len(defs))
	for i, gd := range defs {
		spec := mesh.GradingSpec{Ratio: gd.Ratio}
		for _, s := range gd.Segments {
			spec.Segments = append(spec.Segments, mesh.GradingSegment{
				LengthFrac: s[0], CellFrac: s[1], Ratio: s[2],
			})
		}
		specs[i] = spec
	}
	return b.SetGrading(specs...)
}

func applyEdge(b *mesh.Block, ed EdgeDef) error {
	v0, v1 := ed.Between[0], ed.Between[1]
	p0, p1, err := edgeEndpoints(b, v0, v1)
	if err != nil {
		return err
	}

	pt := func(c [3]float64) geometry.Point { return geometry.Pt(c[0], c[1], c[2]) }
	var curve geometry.Curve
	switch ed.Type {
	case "arc":
		switch {
		case ed.Through != nil:
			curve, err = geometry.NewArc(p0, p1, pt(*ed.Through))
		case ed.Origin != nil:
			factor := ed.Factor
			if factor == 0 {
				factor = 1
			}
			curve, err = geometry.NewOriginArc(p0, p1, pt(*ed.Origin), factor)
		case ed.Normal != nil:
			curve, err = geometry.NewArcRadius(p0, p1, ed.Radius, pt(*ed.Normal))
		default:
			return fmt.Errorf("arc edge needs a through point, an origin, or radius and normal")
		}
	case "polyLine":
		curve, err = geometry.NewPolyLine(p0, p1, points(ed.Points))
	case "spline":
		curve, err = geometry.NewSpline(p0, p1, points(ed.Points))
	case "BSpline":
		degree := ed.Degree
		if degree == 0 {
			degree = 3
		}
		curve, err = geometry.NewBSpline(p0, p1, points(ed.Points), degree, ed.Knots)
	case "project":
		curve, err = geometry.NewProject(p0, p1, ed.Surfaces...)
	default:
		return fmt.Errorf("unknown edge type %q", ed.Type)
	}
	if err != nil {
		return err
	}
	return b.SetEdge(v0, v1, curve)
}

func edgeEndpoints(b *mesh.Block, v0, v1 int) (geometry.Point, geometry.Point, error) {
	if v0 < 0 || v0 > 7 || v1 < 0 || v1 > 7 {
		return geometry.Point{}, geometry.Point{},
			fmt.Errorf("edge vertex indices must be 0..7, got %d and %d", v0, v1)
	}
	verts := b.Vertices()
	m := b.MeshOf()
	a, err := m.Vertex(verts[v0])
	if err != nil {
		return geometry.Point{}, geometry.Point{}, err
	}
	c, err := m.Vertex(verts[v1])
	if err != nil {
		return geometry.Point{}, geometry.Point{}, err
	}
	return a.Coords, c.Coords, nil
}

func points(cs [][3]float64) []geometry.Point {
	pts := make([]geometry.Point, len(cs))
	for i, c := range cs {
		pts[i] = geometry.Pt(c[0], c[1], c[2])
	}
	return pts
}

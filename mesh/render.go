package mesh

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/hexkit/blockmesh/geometry"
)

// Version of the generator, stamped into the output header.
const Version = "0.1.0"

const dictTemplate = `// Generated by blockmesh v{{.Version}}
{{- if .Header}}
{{.Header}}
{{- end}}
FoamFile
{
    version     2.0;
    format      ascii;
    class       dictionary;
    object      blockMeshDict;
}
// * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * //

scale {{.Scale}};
{{- if .Geometry}}

geometry
{
{{- range .Geometry}}
    {{.}}
{{- end}}
};
{{- end}}

vertices
(
{{- range .Vertices}}
    {{.}}
{{- end}}
);

blocks
(
{{- range .Blocks}}
    {{.}}
{{- end}}
);

edges
(
{{- range .Edges}}
    {{.}}
{{- end}}
);

boundary
(
{{- range .Boundary}}
{{.}}
{{- end}}
);

mergePatchPairs
(
{{- range .MergePatchPairs}}
    {{.}}
{{- end}}
);

// ************************************************************************* //
{{- if .Footer}}
{{.Footer}}
{{- end}}
`

var dictTmpl = template.Must(template.New("blockMeshDict").Parse(dictTemplate))

type dictData struct {
	Version         string
	Header          string
	Footer          string
	Scale           string
	Geometry        []string
	Vertices        []string
	Blocks          []string
	Edges           []string
	Boundary        []string
	MergePatchPairs []string
}

// Render serializes the model into the blockMeshDict grammar. The output is
// byte-identical for identical models: every section iterates ordered
// slices, never maps. An incomplete block or a dangling reference fails
// with a SerializationError; no partial output is ever produced.
func (m *Mesh) Render() (string, error) {
	return m.RenderWith("", "")
}

// RenderWith renders with extra header and footer comment blocks.
func (m *Mesh) RenderWith(header, footer string) (string, error) {
	data := dictData{
		Version: Version,
		Header:  header,
		Footer:  footer,
		Scale:   fnum(m.Scale),
	}

	for _, s := range m.surfaces {
		data.Geometry = append(data.Geometry,
			fmt.Sprintf("%s { type triSurfaceMesh; file %q; }", s.Name, s.File))
	}

	for _, v := range m.vertices {
		data.Vertices = append(data.Vertices,
			fmt.Sprintf("%s // %d", fpoint(v.Coords), v.ID))
	}

	for _, b := range m.blocks {
		entry, err := writeBlock(b)
		if err != nil {
			return "", err
		}
		data.Blocks = append(data.Blocks, entry)
	}

	// One edge entry per overridden curve. A curve shared by two blocks is
	// emitted once, for the first block declaring it.
	emitted := map[EdgeKey]bool{}
	for _, b := range m.blocks {
		for _, ec := range b.Curves() {
			if _, isLine := ec.Curve.(*geometry.Line); isLine {
				continue
			}
			key := NewEdgeKey([2]int{ec.V0, ec.V1})
			if emitted[key] {
				continue
			}
			emitted[key] = true
			entry, err := m.writeCurve(ec)
			if err != nil {
				return "", err
			}
			data.Edges = append(data.Edges, entry)
		}
	}

	for _, p := range m.patches {
		entry, err := m.writePatch(p)
		if err != nil {
			return "", err
		}
		data.Boundary = append(data.Boundary, entry)
	}

	for _, pair := range m.pairs {
		if m.Patch(pair.Master) == nil || m.Patch(pair.Slave) == nil {
			return "", serErrf("merge pair (%s %s) references an undeclared patch",
				pair.Master, pair.Slave)
		}
		data.MergePatchPairs = append(data.MergePatchPairs,
			fmt.Sprintf("(%s %s)", pair.Master, pair.Slave))
	}

	var sb strings.Builder
	if err := dictTmpl.Execute(&sb, data); err != nil {
		return "", serErrf("template: %v", err)
	}
	return sb.String(), nil
}

// WriteFile renders the model and writes it to path.
func (m *Mesh) WriteFile(path string) error {
	text, err := m.Render()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0644)
}

func writeBlock(b *Block) (string, error) {
	if err := b.complete(); err != nil {
		return "", serErrf("block %d: %v", b.id, err)
	}

	var sb strings.Builder
	sb.WriteString("hex (")
	for i, id := range b.verts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(id))
	}
	sb.WriteByte(')')
	if b.cellZone != "" {
		sb.WriteByte(' ')
		sb.WriteString(b.cellZone)
	}
	fmt.Fprintf(&sb, " (%d %d %d)", b.ncells[0], b.ncells[1], b.ncells[2])

	kind := "simpleGrading"
	if len(b.grading) == 12 {
		kind = "edgeGrading"
	}
	sb.WriteByte(' ')
	sb.WriteString(kind)
	sb.WriteString(" (")
	for i, g := range b.grading {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fgrading(g))
	}
	sb.WriteByte(')')

	if b.comment != "" {
		sb.WriteString(" // ")
		sb.WriteString(b.comment)
	}
	return sb.String(), nil
}

func (m *Mesh) writeCurve(ec EdgeCurve) (string, error) {
	head := fmt.Sprintf("%s %d %d", ec.Curve.Type(), ec.V0, ec.V1)
	switch c := ec.Curve.(type) {
	case *geometry.Arc:
		return fmt.Sprintf("%s %s", head, fpoint(c.Through())), nil
	case *geometry.OriginArc:
		return fmt.Sprintf("%s origin %s %s", head, fnum(c.Factor()), fpoint(c.Origin())), nil
	case *geometry.PolyLine, *geometry.Spline, *geometry.BSpline:
		pts := ec.Curve.Samples()
		parts := make([]string, len(pts))
		for i, p := range pts {
			parts[i] = fpoint(p)
		}
		return fmt.Sprintf("%s (%s)", head, strings.Join(parts, " ")), nil
	case *geometry.Project:
		for _, name := range c.Surfaces() {
			if !m.surface(name) {
				return "", serErrf("edge %d-%d projects onto undeclared surface %q",
					ec.V0, ec.V1, name)
			}
		}
		return fmt.Sprintf("%s (%s)", head, strings.Join(c.Surfaces(), " ")), nil
	}
	return "", serErrf("edge %d-%d has unknown curve type %q", ec.V0, ec.V1, ec.Curve.Type())
}

func (m *Mesh) writePatch(p *Patch) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "    %s\n    {\n        type %s;\n        faces\n        (\n",
		p.Name, p.Kind)
	for k, ref := range p.Faces {
		b, err := m.Block(ref.Block)
		if err != nil {
			return "", serErrf("patch %q face %d: %v", p.Name, k, err)
		}
		if ref.Face < Bottom || ref.Face > Back {
			return "", serErrf("patch %q face %d has no face label %d", p.Name, k, ref.Face)
		}
		ids := b.FaceVertices(ref.Face)
		fmt.Fprintf(&sb, "            (%d %d %d %d)\n", ids[0], ids[1], ids[2], ids[3])
	}
	sb.WriteString("        );\n    }")
	return sb.String(), nil
}

// fpoint renders a point as a fixed six-decimal coordinate triple.
func fpoint(p geometry.Point) string {
	return fmt.Sprintf("(%.6f %.6f %.6f)", p.X, p.Y, p.Z)
}

// fnum renders integral values without decimals and everything else with
// six, matching the output the meshing engine is usually diffed against.
func fnum(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// fgrading renders one grading spec, single ratio or segment list.
func fgrading(g GradingSpec) string {
	if len(g.Segments) == 0 {
		return fnum(g.Ratio)
	}
	parts := make([]string, len(g.Segments))
	for i, s := range g.Segments {
		parts[i] = fmt.Sprintf("(%s %s %s)", fnum(s.LengthFrac), fnum(s.CellFrac), fnum(s.Ratio))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

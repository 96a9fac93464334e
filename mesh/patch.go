package mesh

import "fmt"

// PatchKind is the closed set of boundary condition categories a patch can
// carry in the mesh description.
type PatchKind uint8

const (
	KindPatch PatchKind = iota
	KindWall
	KindSymmetry
	KindEmpty
	KindWedge
	KindCyclic
)

func (k PatchKind) String() string {
	return [...]string{"patch", "wall", "symmetry", "empty", "wedge", "cyclic"}[k]
}

var patchKindMap = map[string]PatchKind{
	"patch":    KindPatch,
	"wall":     KindWall,
	"symmetry": KindSymmetry,
	"empty":    KindEmpty,
	"wedge":    KindWedge,
	"cyclic":   KindCyclic,
}

// ParsePatchKind maps a boundary type name to its kind.
func ParsePatchKind(name string) (PatchKind, error) {
	k, ok := patchKindMap[name]
	if !ok {
		return 0, fmt.Errorf("mesh: unknown patch type %q", name)
	}
	return k, nil
}

// FaceRef points at one face of one block.
type FaceRef struct {
	Block int
	Face  FaceLabel
}

// Patch is a named, typed collection of block faces forming part of the
// mesh boundary. Faces keep their declaration order.
type Patch struct {
	Name  string
	Kind  PatchKind
	Faces []FaceRef
}

// AddPatch declares a boundary patch over the given block faces.
func (m *Mesh) AddPatch(name string, kind PatchKind, faces ...FaceRef) (*Patch, error) {
	if name == "" {
		return nil, fmt.Errorf("mesh: patch name must not be empty")
	}
	for _, p := range m.patches {
		if p.Name == name {
			return nil, fmt.Errorf("mesh: patch %q already declared", name)
		}
	}
	p := &Patch{Name: name, Kind: kind, Faces: append([]FaceRef(nil), faces...)}
	m.patches = append(m.patches, p)
	return p, nil
}

// AddFace appends another block face to the patch.
func (p *Patch) AddFace(block int, face FaceLabel) {
	p.Faces = append(p.Faces, FaceRef{Block: block, Face: face})
}

// Patch returns the named patch, or nil.
func (m *Mesh) Patch(name string) *Patch {
	for _, p := range m.patches {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// MergePatchPair is an ordered pair of patch names whose coincident faces
// the meshing engine merges, master first.
type MergePatchPair struct {
	Master string
	Slave  string
}

// AddMergePatchPair records that the slave patch merges into the master.
func (m *Mesh) AddMergePatchPair(master, slave string) error {
	if master == slave {
		return fmt.Errorf("mesh: cannot merge patch %q with itself", master)
	}
	m.pairs = append(m.pairs, MergePatchPair{Master: master, Slave: slave})
	return nil
}

package geometry

// sequence is the shared shape of curves described by an ordered run of
// interior points.
type sequence struct {
	endpoints
	interior []Point
}

func (s sequence) Samples() []Point { return s.interior }

func (s sequence) Length() float64 {
	chain := make([]Point, 0, len(s.interior)+2)
	chain = append(chain, s.p0)
	chain = append(chain, s.interior...)
	chain = append(chain, s.p1)
	return chordLength(chain)
}

func (s sequence) reversed() sequence {
	interior := make([]Point, len(s.interior))
	for i, p := range s.interior {
		interior[len(interior)-1-i] = p
	}
	return sequence{endpoints{s.p1, s.p0}, interior}
}

// newSequence validates the interior run and prunes interior points that are
// collinear with their neighbours, scanning the full chain including both
// endpoints. An interior run that prunes away completely describes a plain
// straight line, which must be declared as one.
func newSequence(curve string, p0, p1 Point, interior []Point) (sequence, error) {
	if err := checkEndpoints(curve, p0, p1); err != nil {
		return sequence{}, err
	}
	if len(interior) == 0 {
		return sequence{}, geomErrf(curve, "no interior points given")
	}

	chain := make([]Point, 0, len(interior)+2)
	chain = append(chain, p0)
	chain = append(chain, interior...)
	chain = append(chain, p1)

	kept := make([]Point, 0, len(interior))
	for i := 1; i < len(chain)-1; i++ {
		if Collinear(chain[i-1], chain[i], chain[i+1]) {
			continue
		}
		kept = append(kept, chain[i])
	}
	if len(kept) == 0 {
		return sequence{}, geomErrf(curve,
			"all interior points are collinear with the endpoints, use a straight edge")
	}
	return sequence{endpoints{p0, p1}, kept}, nil
}

// PolyLine is a piecewise-straight edge through its interior points.
type PolyLine struct {
	sequence
}

// NewPolyLine builds a polyline edge through the given interior points.
func NewPolyLine(p0, p1 Point, interior []Point) (*PolyLine, error) {
	s, err := newSequence("polyLine", p0, p1, interior)
	if err != nil {
		return nil, err
	}
	return &PolyLine{s}, nil
}

func (p *PolyLine) Type() string   { return "polyLine" }
func (p *PolyLine) Reverse() Curve { return &PolyLine{p.reversed()} }

// Spline is a smooth edge interpolating its interior points.
type Spline struct {
	sequence
}

// NewSpline builds a spline edge interpolating the given interior points.
func NewSpline(p0, p1 Point, interior []Point) (*Spline, error) {
	s, err := newSequence("spline", p0, p1, interior)
	if err != nil {
		return nil, err
	}
	return &Spline{s}, nil
}

func (s *Spline) Type() string   { return "spline" }
func (s *Spline) Reverse() Curve { return &Spline{s.reversed()} }

// Project is a body-fitted edge projected onto named geometry surfaces.
type Project struct {
	endpoints
	surfaces []string
}

// NewProject builds an edge projected onto one or more geometry surfaces
// declared in the mesh geometry section.
func NewProject(p0, p1 Point, surfaces ...string) (*Project, error) {
	if err := checkEndpoints("project", p0, p1); err != nil {
		return nil, err
	}
	if len(surfaces) == 0 {
		return nil, geomErrf("project", "no target surface named")
	}
	return &Project{endpoints{p0, p1}, surfaces}, nil
}

func (p *Project) Type() string       { return "project" }
func (p *Project) Samples() []Point   { return nil }
func (p *Project) Surfaces() []string { return p.surfaces }
func (p *Project) Length() float64    { return Distance(p.p0, p.p1) }

func (p *Project) Reverse() Curve {
	return &Project{endpoints{p.p1, p.p0}, p.surfaces}
}

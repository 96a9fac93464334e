package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Curve is the geometric definition of a curved block edge. Start and End
// always coincide with the two block vertices the edge connects. Samples
// holds whatever interior points the blockMeshDict entry for the curve type
// carries; a straight line carries none.
type Curve interface {
	// Type returns the blockMeshDict keyword for the curve.
	Type() string
	Start() Point
	End() Point
	// Samples returns the ordered interior points of the curve description.
	Samples() []Point
	// Reverse returns the same curve traversed from End to Start.
	Reverse() Curve
	// Length returns the arc length of the curve.
	Length() float64
}

// endpoints carries the shared start/end pair of every curve variant.
type endpoints struct {
	p0, p1 Point
}

func (e endpoints) Start() Point { return e.p0 }
func (e endpoints) End() Point   { return e.p1 }

func checkEndpoints(curve string, p0, p1 Point) error {
	if Distance(p0, p1) <= 1e-12 {
		return geomErrf(curve, "zero-length edge, both vertices at (%g %g %g)",
			p0.X, p0.Y, p0.Z)
	}
	return nil
}

// Line is a straight edge. It exists so an explicit override can restore a
// straight edge; blocks default every edge to a straight line anyway.
type Line struct {
	endpoints
}

// NewLine builds a straight curve between two points.
func NewLine(p0, p1 Point) (*Line, error) {
	if err := checkEndpoints("line", p0, p1); err != nil {
		return nil, err
	}
	return &Line{endpoints{p0, p1}}, nil
}

func (l *Line) Type() string     { return "line" }
func (l *Line) Samples() []Point { return nil }
func (l *Line) Reverse() Curve   { return &Line{endpoints{l.p1, l.p0}} }
func (l *Line) Length() float64  { return Distance(l.p0, l.p1) }

// Arc is a circular arc through an interior point.
type Arc struct {
	endpoints
	through Point
}

// NewArc builds a circular arc passing through the given interior point.
func NewArc(p0, p1, through Point) (*Arc, error) {
	if err := checkEndpoints("arc", p0, p1); err != nil {
		return nil, err
	}
	if Distance(p0, through) <= 1e-12 || Distance(p1, through) <= 1e-12 {
		return nil, geomErrf("arc", "through point coincides with an endpoint")
	}
	if Collinear(p0, through, p1) {
		return nil, geomErrf("arc", "through point (%g %g %g) is collinear with the endpoints",
			through.X, through.Y, through.Z)
	}
	return &Arc{endpoints{p0, p1}, through}, nil
}

// NewArcRadius builds a circular arc from a radius and the normal of the
// plane containing the arc. The interior point is placed on the side of the
// chord given by normal x chord.
func NewArcRadius(p0, p1 Point, radius float64, normal Point) (*Arc, error) {
	if err := checkEndpoints("arc", p0, p1); err != nil {
		return nil, err
	}
	chord := r3.Sub(p1, p0)
	half := 0.5 * r3.Norm(chord)
	if radius < half {
		return nil, geomErrf("arc", "radius %g smaller than half chord length %g", radius, half)
	}
	side := r3.Cross(normal, chord)
	if r3.Norm(side) <= 1e-12 {
		return nil, geomErrf("arc", "plane normal is parallel to the chord")
	}
	// Sagitta construction: offset the chord midpoint towards the arc apex.
	n := r3.Unit(side)
	d := math.Sqrt(radius*radius - half*half)
	through := r3.Add(Mid(p0, p1), r3.Scale(radius-d, n))
	return NewArc(p0, p1, through)
}

func (a *Arc) Type() string     { return "arc" }
func (a *Arc) Samples() []Point { return []Point{a.through} }
func (a *Arc) Through() Point   { return a.through }

func (a *Arc) Reverse() Curve {
	return &Arc{endpoints{a.p1, a.p0}, a.through}
}

// Length returns the true arc length from the circumcircle of the three
// defining points.
func (a *Arc) Length() float64 {
	c := circumcenter(a.p0, a.through, a.p1)
	r := Distance(c, a.p0)
	return r * (angleAt(c, a.p0, a.through) + angleAt(c, a.through, a.p1))
}

// circumcenter returns the center of the circle through three non-collinear
// points.
func circumcenter(p0, p1, p2 Point) Point {
	u := r3.Sub(p0, p2)
	v := r3.Sub(p1, p2)
	uxv := r3.Cross(u, v)
	num := r3.Cross(
		r3.Sub(r3.Scale(r3.Norm2(u), v), r3.Scale(r3.Norm2(v), u)),
		uxv,
	)
	return r3.Add(p2, r3.Scale(1/(2*r3.Norm2(uxv)), num))
}

// angleAt returns the angle subtended at center by points a and b.
func angleAt(center, a, b Point) float64 {
	u := r3.Unit(r3.Sub(a, center))
	v := r3.Unit(r3.Sub(b, center))
	return math.Acos(math.Max(-1, math.Min(1, r3.Dot(u, v))))
}

// OriginArc is a circular arc given by the circle origin, the alternate arc
// form accepted by blockMesh. The factor flattens or inflates the arc.
type OriginArc struct {
	endpoints
	origin Point
	factor float64
}

// NewOriginArc builds an arc from the circle origin. Both endpoints must be
// equidistant from the origin.
func NewOriginArc(p0, p1, origin Point, factor float64) (*OriginArc, error) {
	if err := checkEndpoints("arc", p0, p1); err != nil {
		return nil, err
	}
	r0, r1 := Distance(origin, p0), Distance(origin, p1)
	if r0 <= 1e-12 || r1 <= 1e-12 {
		return nil, geomErrf("arc", "origin coincides with an endpoint")
	}
	if math.Abs(r0-r1) > 1e-9*math.Max(r0, r1) {
		return nil, geomErrf("arc", "endpoints are not equidistant from origin: %g vs %g", r0, r1)
	}
	if factor <= 0 {
		return nil, geomErrf("arc", "origin arc factor must be positive, got %g", factor)
	}
	return &OriginArc{endpoints{p0, p1}, origin, factor}, nil
}

func (a *OriginArc) Type() string     { return "arc" }
func (a *OriginArc) Samples() []Point { return []Point{a.origin} }
func (a *OriginArc) Origin() Point    { return a.origin }
func (a *OriginArc) Factor() float64  { return a.factor }

func (a *OriginArc) Reverse() Curve {
	return &OriginArc{endpoints{a.p1, a.p0}, a.origin, a.factor}
}

func (a *OriginArc) Length() float64 {
	r := Distance(a.origin, a.p0)
	return r * angleAt(a.origin, a.p0, a.p1)
}

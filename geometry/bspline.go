package geometry

// BSpline is a B-spline edge. The control points exclude the endpoints; the
// full control polygon is Start, Control..., End. A clamped knot vector
// guarantees the evaluated curve starts and ends exactly on the endpoints.
type BSpline struct {
	sequence
	degree int
	knots  []float64
}

// NewBSpline builds a B-spline edge of the given degree from interior
// control points. A nil knot vector gets a clamped uniform one; an explicit
// knot vector must be non-decreasing with len(control)+2+degree+1 entries.
func NewBSpline(p0, p1 Point, control []Point, degree int, knots []float64) (*BSpline, error) {
	if err := checkEndpoints("BSpline", p0, p1); err != nil {
		return nil, err
	}
	if degree < 1 {
		return nil, geomErrf("BSpline", "degree must be at least 1, got %d", degree)
	}
	if len(control) == 0 {
		return nil, geomErrf("BSpline", "no control points given")
	}
	n := len(control) + 2 // full control polygon size
	if n < degree+1 {
		return nil, geomErrf("BSpline", "degree %d needs at least %d control points, got %d",
			degree, degree+1, n)
	}

	if knots == nil {
		knots = clampedKnots(n, degree)
	} else {
		if len(knots) != n+degree+1 {
			return nil, geomErrf("BSpline", "knot vector has %d entries, expected %d",
				len(knots), n+degree+1)
		}
		for i := 1; i < len(knots); i++ {
			if knots[i] < knots[i-1] {
				return nil, geomErrf("BSpline", "knot vector decreases at entry %d", i)
			}
		}
		if knots[0] == knots[len(knots)-1] {
			return nil, geomErrf("BSpline", "knot vector has zero span")
		}
	}

	return &BSpline{
		sequence: sequence{endpoints{p0, p1}, append([]Point(nil), control...)},
		degree:   degree,
		knots:    knots,
	}, nil
}

func (b *BSpline) Type() string     { return "BSpline" }
func (b *BSpline) Degree() int      { return b.degree }
func (b *BSpline) Knots() []float64 { return b.knots }

func (b *BSpline) Reverse() Curve {
	// Reversing the control polygon needs the knot vector mirrored onto the
	// same span.
	lo, hi := b.knots[0], b.knots[len(b.knots)-1]
	knots := make([]float64, len(b.knots))
	for i, k := range b.knots {
		knots[len(knots)-1-i] = lo + hi - k
	}
	return &BSpline{b.reversed(), b.degree, knots}
}

// Evaluate resamples the curve at n parameter values spread uniformly over
// the valid knot span. The first and last samples land exactly on the
// endpoints for clamped knot vectors.
func (b *BSpline) Evaluate(n int) []Point {
	if n < 2 {
		n = 2
	}
	ctrl := make([]Point, 0, len(b.interior)+2)
	ctrl = append(ctrl, b.p0)
	ctrl = append(ctrl, b.interior...)
	ctrl = append(ctrl, b.p1)

	lo := b.knots[b.degree]
	hi := b.knots[len(b.knots)-1-b.degree]
	pts := make([]Point, n)
	for i := range pts {
		t := lo + (hi-lo)*float64(i)/float64(n-1)
		pts[i] = deBoor(ctrl, b.knots, b.degree, t)
	}
	return pts
}

// Length approximates the arc length by chordal integration of a fixed-size
// resample.
func (b *BSpline) Length() float64 {
	return chordLength(b.Evaluate(64))
}

// clampedKnots builds the open uniform knot vector for n control points of
// the given degree.
func clampedKnots(n, degree int) []float64 {
	knots := make([]float64, n+degree+1)
	span := float64(n - degree)
	for i := range knots {
		switch {
		case i <= degree:
			knots[i] = 0
		case i >= n:
			knots[i] = span
		default:
			knots[i] = float64(i - degree)
		}
	}
	return knots
}

// deBoor evaluates the B-spline at parameter t by knot insertion.
func deBoor(ctrl []Point, knots []float64, degree int, t float64) Point {
	// Locate the knot span [knots[k], knots[k+1]) holding t.
	hi := len(knots) - 1 - degree
	k := degree
	for k < hi-1 && t >= knots[k+1] {
		k++
	}

	d := make([]Point, degree+1)
	copy(d, ctrl[k-degree:k+1])
	for r := 1; r <= degree; r++ {
		for j := degree; j >= r; j-- {
			i := k - degree + j
			denom := knots[i+degree+1-r] - knots[i]
			var alpha float64
			if denom != 0 {
				alpha = (t - knots[i]) / denom
			}
			d[j] = Point{
				X: (1-alpha)*d[j-1].X + alpha*d[j].X,
				Y: (1-alpha)*d[j-1].Y + alpha*d[j].Y,
				Z: (1-alpha)*d[j-1].Z + alpha*d[j].Z,
			}
		}
	}
	return d[degree]
}

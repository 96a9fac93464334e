package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a location in 3-space. It aliases r3.Vec so the gonum vector
// operations apply directly.
type Point = r3.Vec

// Pt is shorthand for building a Point from its three coordinates.
func Pt(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return r3.Norm(r3.Sub(b, a))
}

// Mid returns the midpoint of the segment a--b.
func Mid(a, b Point) Point {
	return r3.Scale(0.5, r3.Add(a, b))
}

// Translate returns p offset by d.
func Translate(p, d Point) Point {
	return r3.Add(p, d)
}

// Collinear reports whether the three points lie on a single straight line.
// The test is on the magnitude of the cross product of the two spanning
// vectors, so it is insensitive to the point ordering.
func Collinear(a, b, c Point) bool {
	return r3.Norm(r3.Cross(r3.Sub(b, a), r3.Sub(c, a))) <= 1e-12
}

// Rotate rotates p about origin by yaw (about z), pitch (about y) and roll
// (about x), all in degrees, applied in z-y-x order.
func Rotate(p Point, yaw, pitch, roll float64, origin Point) Point {
	const d2r = math.Pi / 180
	v := r3.Sub(p, origin)
	v = r3.NewRotation(yaw*d2r, Point{Z: 1}).Rotate(v)
	v = r3.NewRotation(pitch*d2r, Point{Y: 1}).Rotate(v)
	v = r3.NewRotation(roll*d2r, Point{X: 1}).Rotate(v)
	return r3.Add(v, origin)
}

// chordLength sums the segment lengths of the polygonal chain through pts.
func chordLength(pts []Point) (length float64) {
	for i := 1; i < len(pts); i++ {
		length += Distance(pts[i-1], pts[i])
	}
	return
}

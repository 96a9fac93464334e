package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBSplineClamped(t *testing.T) {
	b, err := NewBSpline(Pt(0, 0, 0), Pt(3, 0, 0),
		[]Point{Pt(1, 1, 0), Pt(2, 1, 0)}, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, "BSpline", b.Type())
	assert.Equal(t, []Point{Pt(1, 1, 0), Pt(2, 1, 0)}, b.Samples())

	// A clamped curve starts and ends exactly on its endpoints.
	pts := b.Evaluate(16)
	require.Len(t, pts, 16)
	assert.InDelta(t, 0, Distance(pts[0], Pt(0, 0, 0)), 1e-12)
	assert.InDelta(t, 0, Distance(pts[15], Pt(3, 0, 0)), 1e-12)

	// Interior samples stay inside the control polygon's bounding box.
	for _, p := range pts {
		assert.GreaterOrEqual(t, p.X, -1e-12)
		assert.LessOrEqual(t, p.X, 3+1e-12)
		assert.GreaterOrEqual(t, p.Y, -1e-12)
		assert.LessOrEqual(t, p.Y, 1+1e-12)
	}

	assert.Greater(t, b.Length(), 3.0, "curve bows away from the chord")
}

func TestBSplineReverse(t *testing.T) {
	b, err := NewBSpline(Pt(0, 0, 0), Pt(3, 0, 0),
		[]Point{Pt(1, 1, 0), Pt(2, -1, 0)}, 2, nil)
	require.NoError(t, err)

	rev := b.Reverse().(*BSpline)
	assert.Equal(t, Pt(3, 0, 0), rev.Start())
	assert.Equal(t, []Point{Pt(2, -1, 0), Pt(1, 1, 0)}, rev.Samples())

	// The reversed curve traces the same shape backwards.
	fwd := b.Evaluate(9)
	bwd := rev.Evaluate(9)
	for i := range fwd {
		assert.InDelta(t, 0, Distance(fwd[i], bwd[len(bwd)-1-i]), 1e-9)
	}
}

func TestBSplineValidation(t *testing.T) {
	// Wrong knot count: 4 control points, degree 2 needs 7 knots.
	_, err := NewBSpline(Pt(0, 0, 0), Pt(3, 0, 0),
		[]Point{Pt(1, 1, 0), Pt(2, 1, 0)}, 2, []float64{0, 0, 0, 1, 1})
	var gerr *GeometryError
	require.ErrorAs(t, err, &gerr)

	// Decreasing knots.
	_, err = NewBSpline(Pt(0, 0, 0), Pt(3, 0, 0),
		[]Point{Pt(1, 1, 0), Pt(2, 1, 0)}, 2, []float64{0, 0, 0, 2, 1, 3, 3})
	require.ErrorAs(t, err, &gerr)

	// Degree too high for the polygon size.
	_, err = NewBSpline(Pt(0, 0, 0), Pt(3, 0, 0), []Point{Pt(1, 1, 0)}, 4, nil)
	require.ErrorAs(t, err, &gerr)

	_, err = NewBSpline(Pt(0, 0, 0), Pt(3, 0, 0), nil, 3, nil)
	assert.Error(t, err)
}

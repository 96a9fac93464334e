package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine(t *testing.T) {
	l, err := NewLine(Pt(0, 0, 0), Pt(1, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, "line", l.Type())
	assert.Empty(t, l.Samples())
	assert.Equal(t, 1.0, l.Length())

	rev := l.Reverse()
	assert.Equal(t, Pt(1, 0, 0), rev.Start())
	assert.Equal(t, Pt(0, 0, 0), rev.End())

	_, err = NewLine(Pt(1, 2, 3), Pt(1, 2, 3))
	var gerr *GeometryError
	require.ErrorAs(t, err, &gerr)
}

func TestArc(t *testing.T) {
	// Quarter circle of radius 1 in the xy plane.
	s := math.Sqrt2 / 2
	a, err := NewArc(Pt(1, 0, 0), Pt(0, 1, 0), Pt(s, s, 0))
	require.NoError(t, err)
	assert.Equal(t, "arc", a.Type())
	assert.Equal(t, []Point{Pt(s, s, 0)}, a.Samples())
	assert.InDelta(t, math.Pi/2, a.Length(), 1e-12)

	rev := a.Reverse()
	assert.Equal(t, Pt(0, 1, 0), rev.Start())
	assert.Equal(t, Pt(1, 0, 0), rev.End())
	assert.Equal(t, []Point{Pt(s, s, 0)}, rev.Samples())

	// A through point on the chord is degenerate.
	_, err = NewArc(Pt(0, 0, 0), Pt(2, 0, 0), Pt(1, 0, 0))
	var gerr *GeometryError
	require.ErrorAs(t, err, &gerr)

	_, err = NewArc(Pt(0, 0, 0), Pt(2, 0, 0), Pt(0, 0, 0))
	require.Error(t, err)
}

func TestArcRadius(t *testing.T) {
	// Semicircle: radius is exactly half the chord.
	a, err := NewArcRadius(Pt(0, 0, 0), Pt(1, 0, 0), 0.5, Pt(0, 0, 1))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, a.Through().X, 1e-12)
	assert.InDelta(t, 0.5, a.Through().Y, 1e-12)
	assert.InDelta(t, math.Pi/2, a.Length(), 1e-9)

	_, err = NewArcRadius(Pt(0, 0, 0), Pt(1, 0, 0), 0.4, Pt(0, 0, 1))
	assert.Error(t, err)

	// Normal parallel to the chord gives no offset direction.
	_, err = NewArcRadius(Pt(0, 0, 0), Pt(1, 0, 0), 2, Pt(1, 0, 0))
	assert.Error(t, err)
}

func TestOriginArc(t *testing.T) {
	a, err := NewOriginArc(Pt(1, 0, 0), Pt(0, 1, 0), Pt(0, 0, 0), 1)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, a.Length(), 1e-12)
	assert.Equal(t, 1.0, a.Factor())

	_, err = NewOriginArc(Pt(1, 0, 0), Pt(0, 2, 0), Pt(0, 0, 0), 1)
	assert.Error(t, err, "endpoints not equidistant from origin")

	_, err = NewOriginArc(Pt(1, 0, 0), Pt(0, 1, 0), Pt(0, 0, 0), -1)
	assert.Error(t, err)
}

func TestPolyLineReversalRoundTrip(t *testing.T) {
	interior := []Point{Pt(0.3, 0.2, 0), Pt(0.6, -0.1, 0)}
	p, err := NewPolyLine(Pt(0, 0, 0), Pt(1, 0, 0), interior)
	require.NoError(t, err)

	rev := p.Reverse()
	assert.Equal(t, []Point{Pt(0.6, -0.1, 0), Pt(0.3, 0.2, 0)}, rev.Samples())

	back := rev.Reverse()
	assert.Equal(t, p.Samples(), back.Samples())
	assert.Equal(t, p.Start(), back.Start())
	assert.Equal(t, p.End(), back.End())
}

func TestPolyLinePruning(t *testing.T) {
	// The middle interior point sits on the segment between its neighbours
	// and must be pruned.
	p, err := NewPolyLine(Pt(0, 0, 0), Pt(3, 0, 0), []Point{
		Pt(1, 1, 0), Pt(1.5, 1, 0), Pt(2, 1, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, []Point{Pt(1, 1, 0), Pt(2, 1, 0)}, p.Samples())

	// Interior points all on the chord collapse to a straight line.
	_, err = NewPolyLine(Pt(0, 0, 0), Pt(3, 0, 0), []Point{Pt(1, 0, 0), Pt(2, 0, 0)})
	var gerr *GeometryError
	require.ErrorAs(t, err, &gerr)

	_, err = NewSpline(Pt(0, 0, 0), Pt(1, 0, 0), nil)
	assert.Error(t, err)
}

func TestProject(t *testing.T) {
	p, err := NewProject(Pt(0, 0, 0), Pt(1, 0, 0), "hull")
	require.NoError(t, err)
	assert.Equal(t, "project", p.Type())
	assert.Equal(t, []string{"hull"}, p.Surfaces())

	_, err = NewProject(Pt(0, 0, 0), Pt(1, 0, 0))
	assert.Error(t, err)
}

func TestRotate(t *testing.T) {
	got := Rotate(Pt(1, 0, 0), 90, 0, 0, Pt(0, 0, 0))
	assert.InDelta(t, 0, got.X, 1e-12)
	assert.InDelta(t, 1, got.Y, 1e-12)
	assert.InDelta(t, 0, got.Z, 1e-12)

	// Rotation about a shifted origin.
	got = Rotate(Pt(2, 1, 0), 180, 0, 0, Pt(1, 1, 0))
	assert.InDelta(t, 0, got.X, 1e-12)
	assert.InDelta(t, 1, got.Y, 1e-12)
}

func TestCollinear(t *testing.T) {
	assert.True(t, Collinear(Pt(0, 0, 0), Pt(1, 1, 1), Pt(2, 2, 2)))
	assert.False(t, Collinear(Pt(0, 0, 0), Pt(1, 1, 1), Pt(2, 2, 0)))
}

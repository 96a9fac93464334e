package mesh

import "fmt"

// RegistryError reports an ambiguous vertex registration: the new point is
// neither clearly coincident with an existing vertex nor clearly separate,
// so deduplication would depend on registration order.
type RegistryError struct {
	Coords   [3]float64
	Existing int // id of the vertex the point is near
	Dist     float64
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("mesh: point (%g %g %g) is %g from vertex %d, inside the"+
		" ambiguity band of the coincidence tolerance",
		e.Coords[0], e.Coords[1], e.Coords[2], e.Dist, e.Existing)
}

// TopologyError reports an inside-out block: the signed volume implied by
// its vertex ordering is not positive.
type TopologyError struct {
	Block  int
	Volume float64
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("mesh: block %d has non-positive volume %g, vertex"+
		" ordering is left-handed", e.Block, e.Volume)
}

// Kinds of cross-block consistency violation.
const (
	MismatchOrientation = "orientation"
	MismatchCellCount   = "cell count"
	MismatchGrading     = "grading"
	IncompleteBlock     = "incomplete block"
	DanglingReference   = "dangling reference"
)

// ConsistencyError is one diagnostic from the topology validator. The
// validator accumulates every violation over the whole model instead of
// stopping at the first.
type ConsistencyError struct {
	Kind   string // one of the Mismatch/Incomplete/Dangling constants
	BlockA int
	BlockB int // -1 when only one block is involved
	Axis   int // -1 when no axis is involved
	Detail string
}

func (e *ConsistencyError) Error() string {
	switch {
	case e.BlockB >= 0 && e.Axis >= 0:
		return fmt.Sprintf("mesh: %s mismatch between blocks %d and %d on axis %d: %s",
			e.Kind, e.BlockA, e.BlockB, e.Axis, e.Detail)
	case e.BlockB >= 0:
		return fmt.Sprintf("mesh: %s mismatch between blocks %d and %d: %s",
			e.Kind, e.BlockA, e.BlockB, e.Detail)
	case e.BlockA >= 0:
		return fmt.Sprintf("mesh: %s in block %d: %s", e.Kind, e.BlockA, e.Detail)
	}
	return fmt.Sprintf("mesh: %s: %s", e.Kind, e.Detail)
}

// SerializationError reports a model that cannot be rendered. The serializer
// refuses partial output rather than emitting a malformed description.
type SerializationError struct {
	Reason string
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("mesh: cannot serialize: %s", e.Reason)
}

func serErrf(format string, args ...interface{}) *SerializationError {
	return &SerializationError{Reason: fmt.Sprintf(format, args...)}
}

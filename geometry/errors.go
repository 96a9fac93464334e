package geometry

import "fmt"

// GeometryError reports a degenerate or self-inconsistent curve definition.
// Construction fails immediately; a bad curve is never patched up silently.
type GeometryError struct {
	Curve  string // blockMeshDict keyword of the curve being built
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("geometry: %s: %s", e.Curve, e.Reason)
}

func geomErrf(curve, format string, args ...interface{}) *GeometryError {
	return &GeometryError{Curve: curve, Reason: fmt.Sprintf(format, args...)}
}

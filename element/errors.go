package element

import "fmt"

// InvalidNodeCountError is returned when an element is given the wrong
// number of nodes
type InvalidNodeCountError struct {
	Tag   int
	Count int
	Want  int
}

func (e *InvalidNodeCountError) Error() string {
	return fmt.Sprintf("element %d: expected exactly %d nodes, got %d", e.Tag, e.Want, e.Count)
}

// DegenerateGeometryError is returned when the signed area of an element is
// not strictly positive: colinear nodes or clockwise winding
type DegenerateGeometryError struct {
	Tag  int
	Area float64
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("element %d has non-positive area: %g", e.Tag, e.Area)
}

// SingularElementError is returned when the nodal coordinate system used
// for barycentric interpolation cannot be solved
type SingularElementError struct {
	Tag int
	Err error // underlying solver condition, may be nil
}

func (e *SingularElementError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("element %d: singular element (zero area or colinear nodes): %v", e.Tag, e.Err)
	}
	return fmt.Sprintf("element %d: singular element (zero area or colinear nodes)", e.Tag)
}

func (e *SingularElementError) Unwrap() error { return e.Err }

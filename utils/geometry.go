package utils

// GeometryType identifies the shape of an element
type GeometryType uint8

const (
	// 2D element types
	Tri       GeometryType = iota // Triangle
	Rectangle                     // Rectangle/Quadrilateral

	// 1D element type
	Line // Line segment
)

func (g GeometryType) String() string {
	switch g {
	case Tri:
		return "Tri"
	case Rectangle:
		return "Rectangle"
	case Line:
		return "Line"
	}
	return "Unknown"
}

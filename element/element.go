// Package element defines structural element types and the three node
// Constant Strain Triangle.
package element

import (
	"github.com/notargets/CSTKernel/utils"
	"gonum.org/v1/gonum/mat"
)

// Dimensionality represents the spatial dimension of an element
type Dimensionality uint8

const (
	D0 Dimensionality = iota // 0D elements (points)
	D1                       // 1D elements (lines, edges)
	D2                       // 2D elements (triangles, quadrilaterals)
	D3                       // 3D elements (tetrahedra, hexahedra, etc.)
)

// ElementProperties contains metadata describing an element type
type ElementProperties struct {
	Name       string             // Full descriptive name (e.g., "Constant Strain Triangle")
	ShortName  string             // Abbreviated name (e.g., "CST")
	Type       utils.GeometryType // Element shape
	Order      int                // Polynomial order of the displacement field
	Np         int                // Number of nodes
	NDofs      int                // Degrees of freedom per element
	Dimensions Dimensionality     // Spatial dimension
}

// Element is what a global assembler consumes from a structural element.
// Stiffness and BodyForce rows/columns follow DofIndices one to one.
type Element interface {
	Tag() int
	GetProperties() ElementProperties
	Area() float64
	DofIndices() []int
	Stiffness() *mat.SymDense
	BodyForce() *mat.VecDense
	String() string
}

package element

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notargets/CSTKernel/material"
	"github.com/notargets/CSTKernel/mesh"
	"github.com/notargets/CSTKernel/utils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// Model resolves the node and section indices an element refers to.
// *mesh.Mesh satisfies it.
type Model interface {
	Node(id int) (mesh.Node, error)
	Section(id int) (material.Section, error)
}

// CSTDefinition is everything needed to build a CST
type CSTDefinition struct {
	Tag           int
	Nodes         []int // node indices into the model, counter-clockwise
	Section       int   // section index into the model
	Analysis      material.AnalysisType
	LoadDirection *r2.Vec // body force per unit volume (bx, by); nil means no body load
}

// CST is a three node Constant Strain Triangle. It is built in one step by
// NewCST and never changes afterwards; accessors hand out copies.
type CST struct {
	def       CSTDefinition
	nodeIDs   [3]int
	names     [3]string
	tri       Triangle // coordinate snapshot taken at construction
	dofs      [6]int
	thickness float64
	area      float64
	dmat      *mat.Dense    // [3 × 3] constitutive matrix
	bmat      *mat.Dense    // [3 × 6] strain-displacement matrix
	ke        *mat.SymDense // [6 × 6] local stiffness
	fb        *mat.VecDense // [6] equivalent nodal body force
}

var _ Element = (*CST)(nil)

// NewCST validates the definition against the model and computes area,
// DoF indices, B, stiffness and body force. On error no element is returned.
func NewCST(model Model, def CSTDefinition) (*CST, error) {
	if len(def.Nodes) != 3 {
		return nil, &InvalidNodeCountError{Tag: def.Tag, Count: len(def.Nodes), Want: 3}
	}

	c := &CST{}
	c.def = def
	c.def.Nodes = append([]int(nil), def.Nodes...)
	if def.LoadDirection != nil {
		b := *def.LoadDirection
		c.def.LoadDirection = &b
	}

	for i, id := range def.Nodes {
		nd, err := model.Node(id)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", def.Tag, err)
		}
		c.nodeIDs[i] = id
		c.names[i] = nd.Name
		c.tri[i] = nd.X
		c.dofs[2*i] = nd.Dofs[0]
		c.dofs[2*i+1] = nd.Dofs[1]
	}

	// Area goes first, everything below divides by it
	c.area = c.tri.SignedArea()
	if !(c.area > 0) || c.tri.Degenerate() {
		return nil, &DegenerateGeometryError{Tag: def.Tag, Area: c.area}
	}

	sec, err := model.Section(def.Section)
	if err != nil {
		return nil, fmt.Errorf("element %d: %w", def.Tag, err)
	}
	c.thickness = sec.Thickness()
	if !(c.thickness > 0) {
		return nil, fmt.Errorf("element %d: %w: thickness must be positive, got %g",
			def.Tag, material.ErrInvalidParameter, c.thickness)
	}
	if c.dmat, err = sec.ConstitutiveMatrix(def.Analysis); err != nil {
		return nil, fmt.Errorf("element %d: %w", def.Tag, err)
	}
	if r, cc := c.dmat.Dims(); r != 3 || cc != 3 {
		return nil, fmt.Errorf("element %d: %w: constitutive matrix is %d×%d, want 3×3",
			def.Tag, material.ErrInvalidParameter, r, cc)
	}

	c.bmat = c.tri.StrainDisplacement(c.area)
	c.ke = stiffness(c.bmat, c.dmat, c.area*c.thickness)
	if c.fb, err = c.bodyForce(); err != nil {
		return nil, err
	}
	return c, nil
}

// stiffness returns Bᵀ·D·B·scale. The product is symmetrised so the
// result is exactly symmetric rather than symmetric to round-off.
func stiffness(B, D *mat.Dense, scale float64) *mat.SymDense {
	var DB, K mat.Dense
	DB.Mul(D, B)
	K.Mul(B.T(), &DB)

	n, _ := K.Dims()
	Ks := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			Ks.SetSym(i, j, 0.5*(K.At(i, j)+K.At(j, i))*scale)
		}
	}
	return Ks
}

// bodyForce integrates Nᵀ·b over the element with one point at the
// centroid, exact for linear N and constant b
func (c *CST) bodyForce() (*mat.VecDense, error) {
	f := mat.NewVecDense(6, nil)
	if c.def.LoadDirection == nil {
		return f, nil
	}
	ctr := c.tri.Centroid()
	N, err := c.tri.Interpolation(c.def.Tag, ctr.X, ctr.Y)
	if err != nil {
		return nil, err
	}
	b := mat.NewVecDense(2, []float64{c.def.LoadDirection.X, c.def.LoadDirection.Y})
	f.MulVec(N.T(), b)
	f.ScaleVec(c.area*c.thickness, f)
	return f, nil
}

// Rebuild constructs a fresh element from the same definition against the
// current state of the model, picking up moved nodes or changed sections
func (c *CST) Rebuild(model Model) (*CST, error) {
	return NewCST(model, c.Definition())
}

// Definition returns a copy of the definition the element was built from
func (c *CST) Definition() CSTDefinition {
	def := c.def
	def.Nodes = append([]int(nil), c.def.Nodes...)
	if c.def.LoadDirection != nil {
		b := *c.def.LoadDirection
		def.LoadDirection = &b
	}
	return def
}

// Tag returns the element number from the definition
func (c *CST) Tag() int { return c.def.Tag }

// NodeIDs returns the model node indices in local order
func (c *CST) NodeIDs() [3]int { return c.nodeIDs }

// SectionID returns the model section index
func (c *CST) SectionID() int { return c.def.Section }

// Analysis returns the plane stress or plane strain assumption used for D
func (c *CST) Analysis() material.AnalysisType { return c.def.Analysis }

// Thickness returns the section thickness captured at construction
func (c *CST) Thickness() float64 { return c.thickness }

// Area returns the signed area, always positive for a constructed element
func (c *CST) Area() float64 { return c.area }

// Triangle returns the vertex coordinates captured at construction
func (c *CST) Triangle() Triangle { return c.tri }

// Centroid returns the mean of the three vertices
func (c *CST) Centroid() r2.Vec { return c.tri.Centroid() }

// Coordinates returns the 3×2 nodal coordinate matrix
func (c *CST) Coordinates() *mat.Dense { return c.tri.Coordinates() }

// LoadDirection returns the body force vector and whether one was given
func (c *CST) LoadDirection() (r2.Vec, bool) {
	if c.def.LoadDirection == nil {
		return r2.Vec{}, false
	}
	return *c.def.LoadDirection, true
}

// GetProperties describes the element family: a linear, 2D, three node
// triangle with two DoFs per node
func (c *CST) GetProperties() ElementProperties {
	return ElementProperties{
		Name:       "Constant Strain Triangle",
		ShortName:  "CST",
		Type:       utils.Tri,
		Order:      1,
		Np:         3,
		NDofs:      6,
		Dimensions: D2,
	}
}

// DofIndices returns [n1x n1y n2x n2y n3x n3y]
func (c *CST) DofIndices() []int {
	idx := make([]int, len(c.dofs))
	copy(idx, c.dofs[:])
	return idx
}

// ConstitutiveMatrix returns the 3×3 D the stiffness was built with
func (c *CST) ConstitutiveMatrix() *mat.Dense { return mat.DenseCopyOf(c.dmat) }

// BMatrix returns the 3×6 strain-displacement matrix
func (c *CST) BMatrix() *mat.Dense { return mat.DenseCopyOf(c.bmat) }

// Stiffness returns the 6×6 local stiffness Bᵀ·D·B·A·t
func (c *CST) Stiffness() *mat.SymDense {
	K := mat.NewSymDense(6, nil)
	K.CopySym(c.ke)
	return K
}

// BodyForce returns the 6-length equivalent nodal body force Nᵀ·b·A·t
func (c *CST) BodyForce() *mat.VecDense {
	return mat.VecDenseCopyOf(c.fb)
}

// InterpolationMatrix returns N (2×6) evaluated at (x, y)
func (c *CST) InterpolationMatrix(x, y float64) (*mat.Dense, error) {
	return c.tri.Interpolation(c.def.Tag, x, y)
}

// Strain returns (εxx, εyy, γxy) = B·u for element displacements u
// ordered like DofIndices
func (c *CST) Strain(u []float64) (*mat.VecDense, error) {
	if len(u) != 6 {
		return nil, fmt.Errorf("element %d: displacement vector has length %d, want 6", c.def.Tag, len(u))
	}
	eps := mat.NewVecDense(3, nil)
	eps.MulVec(c.bmat, mat.NewVecDense(6, append([]float64(nil), u...)))
	return eps, nil
}

// Stress returns (σxx, σyy, τxy) = D·B·u
func (c *CST) Stress(u []float64) (*mat.VecDense, error) {
	eps, err := c.Strain(u)
	if err != nil {
		return nil, err
	}
	sig := mat.NewVecDense(3, nil)
	sig.MulVec(c.dmat, eps)
	return sig, nil
}

// String identifies the element and its nodes, using node names where set
// and node indices otherwise
func (c *CST) String() string {
	names := make([]string, 3)
	for i, n := range c.names {
		if n == "" {
			n = strconv.Itoa(c.nodeIDs[i])
		}
		names[i] = n
	}
	return fmt.Sprintf("CST Element %d: Nodes [%s]", c.def.Tag, strings.Join(names, " "))
}

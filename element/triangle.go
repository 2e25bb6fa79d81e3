package element

import (
	"math"

	"github.com/notargets/CSTKernel/utils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// Triangle holds the three vertex coordinates of a linear triangle in local
// node order. The order is significant: swapping two vertices flips the sign
// of the area and of every derived quantity.
type Triangle [3]r2.Vec

// CoordinateSystem returns T, the 3×3 matrix with rows [1 xi yi]
func (tri Triangle) CoordinateSystem() *mat.Dense {
	T := mat.NewDense(3, 3, nil)
	for i, p := range tri {
		T.Set(i, 0, 1)
		T.Set(i, 1, p.X)
		T.Set(i, 2, p.Y)
	}
	return T
}

// SignedArea returns ½·det(T), expanded about the first vertex so colinear
// points give zero instead of LU round-off. It is positive iff the vertices
// are listed counter-clockwise.
func (tri Triangle) SignedArea() float64 {
	e1 := r2.Sub(tri[1], tri[0])
	e2 := r2.Sub(tri[2], tri[0])
	return 0.5 * (e1.X*e2.Y - e2.X*e1.Y)
}

// degenerateTol is the relative area below which a triangle is treated as
// having no area at all
const degenerateTol = 1e-14

// AreaTolerance returns the smallest |area| that is distinguishable from
// round-off for these vertices: degenerateTol·L·max(L, M), where L is the
// longest edge and M the largest absolute coordinate.
func (tri Triangle) AreaTolerance() float64 {
	var L float64
	for i := range tri {
		if l := r2.Norm(r2.Sub(tri[(i+1)%3], tri[i])); l > L {
			L = l
		}
	}
	lo, hi := utils.MatrixMinMax(tri.Coordinates())
	M := math.Max(math.Abs(lo), math.Abs(hi))
	return degenerateTol * L * math.Max(L, M)
}

// Degenerate reports whether the vertices are colinear, coincident or not
// finite, judged against AreaTolerance
func (tri Triangle) Degenerate() bool {
	a := math.Abs(tri.SignedArea())
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return true
	}
	return a <= tri.AreaTolerance()
}

// Centroid returns the arithmetic mean of the vertices
func (tri Triangle) Centroid() r2.Vec {
	c := r2.Add(r2.Add(tri[0], tri[1]), tri[2])
	return r2.Scale(1.0/3.0, c)
}

// Coordinates returns the 3×2 nodal coordinate matrix [[x1 y1] [x2 y2] [x3 y3]]
func (tri Triangle) Coordinates() *mat.Dense {
	xy := mat.NewDense(3, 2, nil)
	for i, p := range tri {
		xy.Set(i, 0, p.X)
		xy.Set(i, 1, p.Y)
	}
	return xy
}

// Barycentric solves T·λ = [1 x y]ᵀ for the area coordinates of (x, y).
// The tag is only used to identify the element in a SingularElementError.
func (tri Triangle) Barycentric(tag int, x, y float64) (lambda [3]float64, err error) {
	if tri.Degenerate() {
		return lambda, &SingularElementError{Tag: tag}
	}
	T := tri.CoordinateSystem()

	var lu mat.LU
	lu.Factorize(T)
	var l mat.VecDense
	if err = lu.SolveVecTo(&l, false, mat.NewVecDense(3, []float64{1, x, y})); err != nil {
		return lambda, &SingularElementError{Tag: tag, Err: err}
	}
	for i := range lambda {
		lambda[i] = l.AtVec(i)
		if math.IsNaN(lambda[i]) || math.IsInf(lambda[i], 0) {
			return [3]float64{}, &SingularElementError{Tag: tag}
		}
	}
	return lambda, nil
}

// Interpolation returns the 2×6 shape function matrix N at (x, y):
//
//	N = [λ1 0 λ2 0 λ3 0;
//	     0 λ1 0 λ2 0 λ3]
//
// Columns follow the local DoF order (ux, uy per node).
func (tri Triangle) Interpolation(tag int, x, y float64) (*mat.Dense, error) {
	lambda, err := tri.Barycentric(tag, x, y)
	if err != nil {
		return nil, err
	}
	N := mat.NewDense(2, 6, nil)
	for i, l := range lambda {
		N.Set(0, 2*i, l)
		N.Set(1, 2*i+1, l)
	}
	return N, nil
}

// StrainDisplacement returns the constant 3×6 B matrix for the given area.
// Rows are (εxx, εyy, γxy); columns are the local DoFs.
func (tri Triangle) StrainDisplacement(area float64) *mat.Dense {
	x1, y1 := tri[0].X, tri[0].Y
	x2, y2 := tri[1].X, tri[1].Y
	x3, y3 := tri[2].X, tri[2].Y

	b1, b2, b3 := y2-y3, y3-y1, y1-y2
	c1, c2, c3 := x3-x2, x1-x3, x2-x1

	B := mat.NewDense(3, 6, []float64{
		b1, 0, b2, 0, b3, 0,
		0, c1, 0, c2, 0, c3,
		c1, b1, c2, b2, c3, b3,
	})
	B.Scale(1/(2*area), B)
	return B
}

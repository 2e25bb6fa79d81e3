package material

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// AnalysisType selects which 2D elasticity idealisation a section produces
// its constitutive matrix for
type AnalysisType uint8

const (
	PlaneStress AnalysisType = iota // σzz = 0
	PlaneStrain                     // εzz = 0
)

func (a AnalysisType) String() string {
	switch a {
	case PlaneStress:
		return "planeStress"
	case PlaneStrain:
		return "planeStrain"
	}
	return fmt.Sprintf("AnalysisType(%d)", uint8(a))
}

var (
	ErrInvalidParameter = errors.New("invalid section parameter")
	ErrUnknownAnalysis  = errors.New("unknown analysis type")
)

// Section provides the thickness and constitutive relation used by 2D
// elements. Implementations must return a symmetric 3×3 matrix relating
// (εxx, εyy, γxy) to (σxx, σyy, τxy).
type Section interface {
	Thickness() float64
	ConstitutiveMatrix(analysis AnalysisType) (*mat.Dense, error)
}

// LinearElastic is an isotropic linear-elastic section of constant thickness
type LinearElastic struct {
	Name string
	E    float64 // Young's modulus
	Nu   float64 // Poisson's ratio
	T    float64 // thickness
}

// NewLinearElastic validates the parameters and returns the section
func NewLinearElastic(name string, E, nu, thickness float64) (*LinearElastic, error) {
	le := &LinearElastic{Name: name, E: E, Nu: nu, T: thickness}
	if err := le.Validate(); err != nil {
		return nil, err
	}
	return le, nil
}

// Validate checks E > 0, thickness > 0 and -1 < ν < 0.5
func (le *LinearElastic) Validate() error {
	if !(le.E > 0) {
		return fmt.Errorf("%w: section %q: E must be positive, got %g", ErrInvalidParameter, le.Name, le.E)
	}
	if !(le.T > 0) {
		return fmt.Errorf("%w: section %q: thickness must be positive, got %g", ErrInvalidParameter, le.Name, le.T)
	}
	if !(le.Nu > -1 && le.Nu < 0.5) {
		return fmt.Errorf("%w: section %q: Poisson ratio must lie in (-1, 0.5), got %g", ErrInvalidParameter, le.Name, le.Nu)
	}
	return nil
}

func (le *LinearElastic) Thickness() float64 { return le.T }

// ConstitutiveMatrix returns D for plane stress:
//
//	E/(1-ν²) [1 ν 0; ν 1 0; 0 0 (1-ν)/2]
//
// or plane strain:
//
//	E/((1+ν)(1-2ν)) [1-ν ν 0; ν 1-ν 0; 0 0 (1-2ν)/2]
func (le *LinearElastic) ConstitutiveMatrix(analysis AnalysisType) (*mat.Dense, error) {
	if err := le.Validate(); err != nil {
		return nil, err
	}
	E, nu := le.E, le.Nu
	switch analysis {
	case PlaneStress:
		c := E / (1 - nu*nu)
		return mat.NewDense(3, 3, []float64{
			c, c * nu, 0,
			c * nu, c, 0,
			0, 0, c * (1 - nu) / 2,
		}), nil
	case PlaneStrain:
		c := E / ((1 + nu) * (1 - 2*nu))
		return mat.NewDense(3, 3, []float64{
			c * (1 - nu), c * nu, 0,
			c * nu, c * (1 - nu), 0,
			0, 0, c * (1 - 2*nu) / 2,
		}), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownAnalysis, analysis)
}

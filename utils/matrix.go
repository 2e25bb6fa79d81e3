package utils

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// IsSymmetric reports whether m is square and m(i,j) == m(j,i) within tol
func IsSymmetric(m mat.Matrix, tol float64) bool {
	r, c := m.Dims()
	if r != c {
		return false
	}
	for i := 0; i < r; i++ {
		for j := i + 1; j < c; j++ {
			if !scalar.EqualWithinAbsOrRel(m.At(i, j), m.At(j, i), tol, tol) {
				return false
			}
		}
	}
	return true
}

// AllFinite reports whether every entry of m is neither NaN nor Inf
func AllFinite(m mat.Matrix) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// MatrixMinMax extracts the minimum and maximum values from a matrix
func MatrixMinMax(m mat.Matrix) (min, max float64) {
	if m == nil {
		return 0, 0
	}

	r, c := m.Dims()
	if r == 0 || c == 0 {
		return 0, 0
	}

	min = m.At(0, 0)
	max = min
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			val := m.At(i, j)
			if val < min {
				min = val
			}
			if val > max {
				max = val
			}
		}
	}

	return min, max
}

// FormatMatrix renders m one row per line with a fixed exponent format,
// prefixed by name and its dimensions
func FormatMatrix(name string, m mat.Matrix) string {
	rows, cols := m.Dims()
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s [%d×%d]\n", name, rows, cols))
	for i := 0; i < rows; i++ {
		sb.WriteString("    [")
		for j := 0; j < cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%+.6e", m.At(i, j)))
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultTolerance is the zero tolerance used by Inverse.
const DefaultTolerance = 1e-5

// Cholesky returns lower triangular matrix L such that L*L' = m.
// m must be symmetric positive semi-definite: diagonal residuals smaller than tol
// in absolute value are treated as zero and so is the column below them.
// It returns ErrNotPositiveDefinite if a residual is negative beyond tol or if
// the column below a zero pivot does not vanish within tol.
func (m *Matrix) Cholesky(tol float64) (*Matrix, error) {
	n, c := m.Dims()
	if n != c {
		return nil, fmt.Errorf("cholesky [%d x %d]: %w", n, c, ErrDimensionMismatch)
	}

	l, err := Zero(n, n)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		li := l.d.RawRowView(i)[:i]
		d := m.d.At(i, i) - floats.Dot(li, li)

		switch {
		case math.Abs(d) < tol:
			// rank deficient direction: the column below must vanish too
			for j := i + 1; j < n; j++ {
				r := m.d.At(j, i) - floats.Dot(l.d.RawRowView(j)[:i], li)
				if math.Abs(r) >= tol {
					return nil, fmt.Errorf("cholesky zero pivot %d with residual %g at row %d: %w", i, r, j, ErrNotPositiveDefinite)
				}
			}
			continue
		case d < 0:
			return nil, fmt.Errorf("cholesky pivot %d = %g: %w", i, d, ErrNotPositiveDefinite)
		}

		lii := math.Sqrt(d)
		l.d.Set(i, i, lii)

		for j := i + 1; j < n; j++ {
			s := floats.Dot(l.d.RawRowView(j)[:i], li)
			l.d.Set(j, i, (m.d.At(j, i)-s)/lii)
		}
	}

	return l, nil
}

// CholeskyInverse returns (L*L')^-1 given lower triangular Cholesky factor L in m.
// The result is filled from the last row and column backward; off-diagonal
// elements are computed once and mirrored.
// It returns ErrNotPositiveDefinite if L has a zero on its diagonal.
func (m *Matrix) CholeskyInverse() (*Matrix, error) {
	n, c := m.Dims()
	if n != c {
		return nil, fmt.Errorf("cholesky inverse [%d x %d]: %w", n, c, ErrDimensionMismatch)
	}

	for i := 0; i < n; i++ {
		if m.d.At(i, i) == 0 {
			return nil, fmt.Errorf("cholesky inverse zero pivot %d: %w", i, ErrNotPositiveDefinite)
		}
	}

	res, err := Zero(n, n)
	if err != nil {
		return nil, err
	}

	// u(i, j) is the upper triangular factor L'
	u := func(i, j int) float64 { return m.d.At(j, i) }

	for j := n - 1; j >= 0; j-- {
		ujj := u(j, j)

		s := 0.0
		for k := j + 1; k < n; k++ {
			s += u(j, k) * res.d.At(j, k)
		}
		res.d.Set(j, j, 1.0/(ujj*ujj)-s/ujj)

		for i := j - 1; i >= 0; i-- {
			s := 0.0
			for k := i + 1; k < n; k++ {
				s += u(i, k) * res.d.At(k, j)
			}
			v := -s / u(i, i)
			res.d.Set(i, j, v)
			res.d.Set(j, i, v)
		}
	}

	return res, nil
}

// Inverse returns m^-1 computed via Cholesky factorization with DefaultTolerance.
func (m *Matrix) Inverse() (*Matrix, error) {
	return m.InverseTol(DefaultTolerance)
}

// InverseTol returns m^-1 computed via Cholesky factorization with zero tolerance tol.
// m must be symmetric positive definite: no pivoting or fallback is attempted.
func (m *Matrix) InverseTol(tol float64) (*Matrix, error) {
	l, err := m.Cholesky(tol)
	if err != nil {
		return nil, err
	}

	return l.CholeskyInverse()
}

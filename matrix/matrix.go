// Package matrix implements a small dense matrix kernel with value semantics:
// every operation returns a new matrix and never aliases its operands.
package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense rows x cols matrix which owns its storage.
type Matrix struct {
	d *mat.Dense
}

// Zero returns rows x cols matrix filled with zeros.
// It returns ErrInvalidDimension if either dimension is not positive.
func Zero(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("[%d x %d]: %w", rows, cols, ErrInvalidDimension)
	}

	return &Matrix{d: mat.NewDense(rows, cols, nil)}, nil
}

// Identity returns n x n identity matrix.
// It returns ErrInvalidDimension if n is not positive.
func Identity(n int) (*Matrix, error) {
	m, err := Zero(n, n)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		m.d.Set(i, i, 1.0)
	}

	return m, nil
}

// New returns rows x cols matrix with data stored in row-major order.
// data is copied. If data is nil New returns a zero matrix.
func New(rows, cols int, data []float64) (*Matrix, error) {
	m, err := Zero(rows, cols)
	if err != nil {
		return nil, err
	}

	if data == nil {
		return m, nil
	}

	if len(data) != rows*cols {
		return nil, fmt.Errorf("%d values for [%d x %d]: %w", len(data), rows, cols, ErrDimensionMismatch)
	}
	copy(m.d.RawMatrix().Data, data)

	return m, nil
}

// NewFromRows returns a matrix whose rows are copied from rows.
// It returns ErrDimensionMismatch if rows differ in length.
func NewFromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows: %w", ErrInvalidDimension)
	}

	m, err := Zero(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, fmt.Errorf("row %d has %d values, expected %d: %w", i, len(row), len(rows[0]), ErrDimensionMismatch)
		}
		m.d.SetRow(i, row)
	}

	return m, nil
}

// Dims returns matrix dimensions. It implements mat.Matrix.
func (m *Matrix) Dims() (rows, cols int) {
	return m.d.Dims()
}

// At returns the element at row i, column j. It implements mat.Matrix.
// At panics if either index is out of range; use Get for a checked read.
func (m *Matrix) At(i, j int) float64 {
	return m.d.At(i, j)
}

// T returns the transpose view of m. It implements mat.Matrix.
func (m *Matrix) T() mat.Matrix {
	return mat.Transpose{Matrix: m}
}

// Get returns the element at row i, column j.
func (m *Matrix) Get(i, j int) (float64, error) {
	if err := m.check(i, j); err != nil {
		return 0, err
	}

	return m.d.At(i, j), nil
}

// Set sets the element at row i, column j to v.
func (m *Matrix) Set(i, j int, v float64) error {
	if err := m.check(i, j); err != nil {
		return err
	}
	m.d.Set(i, j, v)

	return nil
}

// Inc adds v to the element at row i, column j.
func (m *Matrix) Inc(i, j int, v float64) error {
	if err := m.check(i, j); err != nil {
		return err
	}
	m.d.Set(i, j, m.d.At(i, j)+v)

	return nil
}

func (m *Matrix) check(i, j int) error {
	r, c := m.d.Dims()
	if i < 0 || i >= r || j < 0 || j >= c {
		return fmt.Errorf("(%d, %d) in [%d x %d]: %w", i, j, r, c, ErrIndexOutOfRange)
	}

	return nil
}

// Add returns m + b.
func (m *Matrix) Add(b *Matrix) (*Matrix, error) {
	if err := sameDims(m, b); err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}

	res := &mat.Dense{}
	res.Add(m.d, b.d)

	return &Matrix{d: res}, nil
}

// Sub returns m - b.
func (m *Matrix) Sub(b *Matrix) (*Matrix, error) {
	if err := sameDims(m, b); err != nil {
		return nil, fmt.Errorf("sub: %w", err)
	}

	res := &mat.Dense{}
	res.Sub(m.d, b.d)

	return &Matrix{d: res}, nil
}

// Mul returns matrix product m * b.
// It returns ErrDimensionMismatch unless m has as many columns as b has rows.
func (m *Matrix) Mul(b *Matrix) (*Matrix, error) {
	r, c := m.Dims()
	br, bc := b.Dims()
	if c != br {
		return nil, fmt.Errorf("mul [%d x %d] * [%d x %d]: %w", r, c, br, bc, ErrDimensionMismatch)
	}

	res := &mat.Dense{}
	res.Mul(m.d, b.d)

	return &Matrix{d: res}, nil
}

// Transpose returns a new matrix with rows and columns swapped.
func (m *Matrix) Transpose() *Matrix {
	return &Matrix{d: mat.DenseCopyOf(m.d.T())}
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	return &Matrix{d: mat.DenseCopyOf(m.d)}
}

// Vec returns column j of m as a vector.
func (m *Matrix) Vec(j int) (*mat.VecDense, error) {
	if err := m.check(0, j); err != nil {
		return nil, err
	}

	v := &mat.VecDense{}
	v.CloneFromVec(m.d.ColView(j))

	return v, nil
}

// Sym returns the upper triangle of a square m as symmetric matrix.
func (m *Matrix) Sym() (*mat.SymDense, error) {
	r, c := m.Dims()
	if r != c {
		return nil, fmt.Errorf("sym [%d x %d]: %w", r, c, ErrDimensionMismatch)
	}

	s := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			s.SetSym(i, j, m.d.At(i, j))
		}
	}

	return s, nil
}

// String implements the Stringer interface.
func (m *Matrix) String() string {
	return fmt.Sprintf("%v", mat.Formatted(m.d, mat.Squeeze()))
}

func sameDims(a, b *Matrix) error {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return fmt.Errorf("[%d x %d] vs [%d x %d]: %w", ar, ac, br, bc, ErrDimensionMismatch)
	}

	return nil
}

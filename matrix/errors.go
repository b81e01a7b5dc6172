package matrix

import "errors"

var (
	// ErrInvalidDimension is returned when a matrix dimension is not positive.
	ErrInvalidDimension = errors.New("matrix: invalid dimension")
	// ErrDimensionMismatch is returned when operand dimensions are incompatible.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")
	// ErrIndexOutOfRange is returned when an index exceeds matrix dimensions.
	ErrIndexOutOfRange = errors.New("matrix: index out of range")
	// ErrNotPositiveDefinite is returned when Cholesky factorization fails.
	ErrNotPositiveDefinite = errors.New("matrix: not positive definite")
)

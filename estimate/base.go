package estimate

import (
	"fmt"

	slam "github.com/milosgajdos/go-slam"
	"github.com/milosgajdos/go-slam/matrix"
	"gonum.org/v1/gonum/mat"
)

// Base is base SLAM estimate
type Base struct {
	// layout maps poses and landmarks into val
	layout slam.Layout
	// val is estimated value: poses followed by landmarks
	val *mat.VecDense
	// cov is estimated covariance
	cov *mat.SymDense
}

// NewBase returns base estimate given val laid out according to layout.
// Estimate covariance is zero.
func NewBase(val mat.Vector, layout slam.Layout) (*Base, error) {
	return NewBaseWithCov(val, mat.NewSymDense(val.Len(), nil), layout)
}

// NewBaseWithCov returns base estimate given val, covariance cov and layout.
// It returns error if the dimensions of val, cov and layout do not match.
func NewBaseWithCov(val mat.Vector, cov mat.Symmetric, layout slam.Layout) (*Base, error) {
	rv := val.Len()
	rc := cov.SymmetricDim()

	if rv != rc || rv != layout.Size() {
		return nil, fmt.Errorf("invalid dimensions. Val: %d, Cov: %d x %d, Layout: %d: %w",
			rv, rc, rc, layout.Size(), matrix.ErrDimensionMismatch)
	}

	v := &mat.VecDense{}
	v.CloneFromVec(val)

	c := mat.NewSymDense(rc, nil)
	c.CopySym(cov)

	return &Base{
		layout: layout,
		val:    v,
		cov:    c,
	}, nil
}

// Val returns estimated value
func (b *Base) Val() mat.Vector {
	v := &mat.VecDense{}
	v.CloneFromVec(b.val)

	return v
}

// Cov returns covariance estimate
func (b *Base) Cov() mat.Symmetric {
	cov := mat.NewSymDense(b.cov.SymmetricDim(), nil)
	cov.CopySym(b.cov)

	return cov
}

// Dims returns the number of coordinates per pose or landmark
func (b *Base) Dims() int {
	return b.layout.Dims
}

// Poses returns the number of estimated poses
func (b *Base) Poses() int {
	return b.layout.Poses
}

// Landmarks returns the number of estimated landmarks
func (b *Base) Landmarks() int {
	return b.layout.Landmarks
}

// Pose returns estimate of pose i.
func (b *Base) Pose(i int) (mat.Vector, error) {
	row, err := b.layout.PoseRow(i)
	if err != nil {
		return nil, err
	}

	return b.slice(row), nil
}

// Landmark returns estimate of landmark i.
func (b *Base) Landmark(i int) (mat.Vector, error) {
	row, err := b.layout.LandmarkRow(i)
	if err != nil {
		return nil, err
	}

	return b.slice(row), nil
}

// PoseCov returns covariance of pose i.
func (b *Base) PoseCov(i int) (mat.Symmetric, error) {
	row, err := b.layout.PoseRow(i)
	if err != nil {
		return nil, err
	}

	return b.block(row), nil
}

// LandmarkCov returns covariance of landmark i.
func (b *Base) LandmarkCov(i int) (mat.Symmetric, error) {
	row, err := b.layout.LandmarkRow(i)
	if err != nil {
		return nil, err
	}

	return b.block(row), nil
}

func (b *Base) slice(row int) mat.Vector {
	v := &mat.VecDense{}
	v.CloneFromVec(b.val.SliceVec(row, row+b.layout.Dims))

	return v
}

func (b *Base) block(row int) mat.Symmetric {
	cov := mat.NewSymDense(b.layout.Dims, nil)
	cov.CopySym(b.cov.SliceSym(row, row+b.layout.Dims))

	return cov
}

// String implements the Stringer interface.
func (b *Base) String() string {
	return fmt.Sprintf("Estimate{\nPoses=%d\nLandmarks=%d\nVal=%v\n}", b.layout.Poses, b.layout.Landmarks,
		mat.Formatted(b.val.T(), mat.Prefix("    "), mat.Squeeze()))
}

package info

import (
	"errors"
	"testing"

	slam "github.com/milosgajdos/go-slam"
	"github.com/milosgajdos/go-slam/matrix"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

const tol = slam.DefaultTolerance

// newChain returns a 1-D system with 3 poses and 1 landmark:
// pose0 = -3, motions +5 and +3, measurements 10, 5, 2.
func newChain(t *testing.T) *System {
	s, err := New(slam.Layout{Dims: 1, Poses: 3, Landmarks: 1})
	assert.NoError(t, err)

	assert.NoError(t, s.Anchor(0, []float64{-3}))
	assert.NoError(t, s.AddMotion(0, 1, []float64{5}, 1))
	assert.NoError(t, s.AddMotion(1, 2, []float64{3}, 1))
	for p, z := range []float64{10, 5, 2} {
		assert.NoError(t, s.AddMeasurement(p, 0, []float64{z}, 1))
	}

	return s
}

func TestNew(t *testing.T) {
	assert := assert.New(t)

	s, err := New(slam.Layout{Dims: 2, Poses: 1, Landmarks: 2})
	assert.NoError(err)
	assert.NotNil(s)
	r, c := s.Omega().Dims()
	assert.Equal(6, r)
	assert.Equal(6, c)
	r, c = s.Xi().Dims()
	assert.Equal(6, r)
	assert.Equal(1, c)

	s, err = New(slam.Layout{Dims: 2})
	assert.Nil(s)
	assert.True(errors.Is(err, matrix.ErrInvalidDimension))
}

func TestUpdates(t *testing.T) {
	assert := assert.New(t)

	s, err := New(slam.Layout{Dims: 2, Poses: 2, Landmarks: 1})
	assert.NoError(err)

	assert.NoError(s.Anchor(0, []float64{50, 50}))
	assert.NoError(s.AddMotion(0, 1, []float64{2, -4}, 2))
	assert.NoError(s.AddMeasurement(1, 0, []float64{1, 3}, 0.5))

	omega, xi := s.Omega(), s.Xi()

	assert.True(mat.EqualApprox(omega, mat.NewDense(6, 6, []float64{
		1.5, 0, -0.5, 0, 0, 0,
		0, 1.5, 0, -0.5, 0, 0,
		-0.5, 0, 2.5, 0, -2, 0,
		0, -0.5, 0, 2.5, 0, -2,
		0, 0, -2, 0, 2, 0,
		0, 0, 0, -2, 0, 2,
	}), 1e-12))

	assert.True(mat.EqualApprox(xi, mat.NewDense(6, 1, []float64{
		50 - 1, 50 + 2,
		1 - 2, -2 - 6,
		2, 6,
	}), 1e-12))

	// omega stays symmetric
	assert.True(mat.Equal(omega, omega.T()))

	// invalid ids and vectors
	assert.True(errors.Is(s.AddMotion(0, 2, []float64{1, 1}, 1), matrix.ErrIndexOutOfRange))
	assert.True(errors.Is(s.AddMeasurement(0, 1, []float64{1, 1}, 1), matrix.ErrIndexOutOfRange))
	assert.True(errors.Is(s.AddMeasurement(0, 0, []float64{1}, 1), matrix.ErrDimensionMismatch))
	assert.True(errors.Is(s.Anchor(0, []float64{1, 2, 3}), matrix.ErrDimensionMismatch))
	assert.True(errors.Is(s.Anchor(5, []float64{1, 2}), matrix.ErrIndexOutOfRange))
}

func TestSolve(t *testing.T) {
	assert := assert.New(t)

	s := newChain(t)

	mu, cov, err := s.Solve(tol)
	assert.NoError(err)
	assert.NotNil(cov)
	assert.InDeltaSlice([]float64{-3, 2, 5, 7}, mat.Col(nil, 0, mu), 1e-6)

	est, err := s.Estimate(tol)
	assert.NoError(err)
	assert.Equal(3, est.Poses())
	assert.Equal(1, est.Landmarks())

	l, err := est.Landmark(0)
	assert.NoError(err)
	assert.InDelta(7.0, l.AtVec(0), 1e-6)

	// landmark never measured
	u, err := New(slam.Layout{Dims: 1, Poses: 1, Landmarks: 1})
	assert.NoError(err)
	assert.NoError(u.Anchor(0, []float64{0}))
	_, _, err = u.Solve(tol)
	assert.True(errors.Is(err, matrix.ErrNotPositiveDefinite))
}

func TestPushPose(t *testing.T) {
	assert := assert.New(t)

	s, err := New(slam.Layout{Dims: 1, Poses: 1, Landmarks: 1})
	assert.NoError(err)
	assert.NoError(s.Anchor(0, []float64{-3}))
	assert.NoError(s.AddMeasurement(0, 0, []float64{10}, 1))

	assert.NoError(s.PushPose())
	assert.Equal(slam.Layout{Dims: 1, Poses: 2, Landmarks: 1}, s.Layout())

	assert.True(mat.Equal(s.Omega(), mat.NewDense(3, 3, []float64{
		2, 0, -1,
		0, 0, 0,
		-1, 0, 1,
	})))
	assert.True(mat.Equal(s.Xi(), mat.NewDense(3, 1, []float64{-13, 0, 10})))
}

func TestMarginalizePose(t *testing.T) {
	assert := assert.New(t)

	s := newChain(t)

	fullMu, fullCov, err := s.Solve(tol)
	assert.NoError(err)

	// remove the middle pose
	assert.NoError(s.MarginalizePose(1, tol))
	assert.Equal(slam.Layout{Dims: 1, Poses: 2, Landmarks: 1}, s.Layout())

	mu, cov, err := s.Solve(tol)
	assert.NoError(err)

	keep := []int{0, 2, 3}
	margCov, err := fullCov.Take(keep, nil)
	assert.NoError(err)
	margMu, err := fullMu.Take(keep, []int{0})
	assert.NoError(err)

	assert.True(mat.EqualApprox(cov, margCov, 1e-6))
	assert.True(mat.EqualApprox(mu, margMu, 1e-6))

	// then the first one
	assert.NoError(s.MarginalizePose(0, tol))
	mu, _, err = s.Solve(tol)
	assert.NoError(err)
	assert.InDeltaSlice([]float64{5, 7}, mat.Col(nil, 0, mu), 1e-6)

	// the last pose can't be removed
	err = s.MarginalizePose(0, tol)
	assert.True(errors.Is(err, matrix.ErrDimensionMismatch))
}

func TestClone(t *testing.T) {
	assert := assert.New(t)

	s := newChain(t)
	c := s.Clone()

	assert.NoError(c.AddMotion(0, 1, []float64{1}, 1))
	assert.False(mat.Equal(s.Omega(), c.Omega()))
	assert.Equal(s.Layout(), c.Layout())
}

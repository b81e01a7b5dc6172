// Package info implements the canonical (information) form of a Gaussian
// over stacked robot poses and landmark positions.
package info

import (
	"fmt"

	slam "github.com/milosgajdos/go-slam"
	"github.com/milosgajdos/go-slam/estimate"
	"github.com/milosgajdos/go-slam/matrix"
)

// System is information matrix omega and information vector xi
// related to the state mean mu by omega*mu = xi.
type System struct {
	// layout maps poses and landmarks to rows
	layout slam.Layout
	// omega is information matrix
	omega *matrix.Matrix
	// xi is information vector
	xi *matrix.Matrix
}

// New creates new zero information system sized to layout and returns it.
// It returns error if the layout is empty.
func New(layout slam.Layout) (*System, error) {
	size := layout.Size()

	omega, err := matrix.Zero(size, size)
	if err != nil {
		return nil, fmt.Errorf("invalid layout %+v: %w", layout, err)
	}

	xi, err := matrix.Zero(size, 1)
	if err != nil {
		return nil, fmt.Errorf("invalid layout %+v: %w", layout, err)
	}

	return &System{
		layout: layout,
		omega:  omega,
		xi:     xi,
	}, nil
}

// Layout returns system layout
func (s *System) Layout() slam.Layout {
	return s.layout
}

// Omega returns a copy of information matrix
func (s *System) Omega() *matrix.Matrix {
	return s.omega.Clone()
}

// Xi returns a copy of information vector
func (s *System) Xi() *matrix.Matrix {
	return s.xi.Clone()
}

// Anchor adds unit information fixing pose p at pos.
func (s *System) Anchor(p int, pos []float64) error {
	rows, err := s.layout.PoseIndices(p)
	if err != nil {
		return err
	}

	if err := s.checkLen(pos); err != nil {
		return fmt.Errorf("anchor: %w", err)
	}

	for b, r := range rows {
		if err := s.omega.Inc(r, r, 1.0); err != nil {
			return err
		}
		if err := s.xi.Inc(r, 0, pos[b]); err != nil {
			return err
		}
	}

	return nil
}

// AddMotion adds constraint pose[to] - pose[from] = motion with given noise variance.
func (s *System) AddMotion(from, to int, motion []float64, variance float64) error {
	a, err := s.layout.PoseRow(from)
	if err != nil {
		return fmt.Errorf("motion: %w", err)
	}

	b, err := s.layout.PoseRow(to)
	if err != nil {
		return fmt.Errorf("motion: %w", err)
	}

	return s.addRelative(a, b, motion, variance)
}

// AddMeasurement adds constraint landmark[id] - pose[p] = offset with given noise variance.
func (s *System) AddMeasurement(p, id int, offset []float64, variance float64) error {
	a, err := s.layout.PoseRow(p)
	if err != nil {
		return fmt.Errorf("measurement: %w", err)
	}

	b, err := s.layout.LandmarkRow(id)
	if err != nil {
		return fmt.Errorf("measurement: %w", err)
	}

	return s.addRelative(a, b, offset, variance)
}

// addRelative adds linear constraint x[b] - x[a] = delta between blocks starting at rows a and b.
func (s *System) addRelative(a, b int, delta []float64, variance float64) error {
	if err := s.checkLen(delta); err != nil {
		return err
	}

	w := 1.0 / variance
	for i := 0; i < s.layout.Dims; i++ {
		ai, bi := a+i, b+i
		for _, u := range []struct {
			i, j int
			v    float64
		}{
			{ai, ai, w},
			{bi, bi, w},
			{ai, bi, -w},
			{bi, ai, -w},
		} {
			if err := s.omega.Inc(u.i, u.j, u.v); err != nil {
				return err
			}
		}

		if err := s.xi.Inc(ai, 0, -delta[i]*w); err != nil {
			return err
		}
		if err := s.xi.Inc(bi, 0, delta[i]*w); err != nil {
			return err
		}
	}

	return nil
}

// PushPose grows the system by one pose appended after the existing poses.
// Existing poses keep their rows, landmark rows shift by Dims.
func (s *System) PushPose() error {
	next := s.layout
	next.Poses++

	poses := s.layout.Poses * s.layout.Dims
	rowMap := make([]int, s.layout.Size())
	for i := range rowMap {
		rowMap[i] = i
		if i >= poses {
			rowMap[i] += s.layout.Dims
		}
	}

	size := next.Size()
	omega, err := s.omega.Expand(size, size, rowMap, rowMap)
	if err != nil {
		return fmt.Errorf("push pose: %w", err)
	}

	xi, err := s.xi.Expand(size, 1, rowMap, []int{0})
	if err != nil {
		return fmt.Errorf("push pose: %w", err)
	}

	s.layout, s.omega, s.xi = next, omega, xi

	return nil
}

// MarginalizePose removes pose p from the system using the Schur complement:
//
//	omega' = omega[keep] - A' * B^-1 * A
//	xi'    = xi[keep] - A' * B^-1 * C
//
// where A = omega[p, keep], B = omega[p, p] and C = xi[p].
// The remaining poses and landmarks keep their exact marginal distribution.
func (s *System) MarginalizePose(p int, tol float64) error {
	if s.layout.Poses < 2 {
		return fmt.Errorf("marginalize pose %d of %d: %w", p, s.layout.Poses, matrix.ErrDimensionMismatch)
	}

	remove, err := s.layout.PoseIndices(p)
	if err != nil {
		return fmt.Errorf("marginalize: %w", err)
	}
	keep := s.layout.Without(remove)

	a, err := s.omega.Take(remove, keep)
	if err != nil {
		return err
	}

	b, err := s.omega.Take(remove, nil)
	if err != nil {
		return err
	}

	c, err := s.xi.Take(remove, []int{0})
	if err != nil {
		return err
	}

	bInv, err := b.InverseTol(tol)
	if err != nil {
		return fmt.Errorf("marginalize pose %d: %w", p, err)
	}

	// A' * B^-1
	atb, err := a.Transpose().Mul(bInv)
	if err != nil {
		return err
	}

	atba, err := atb.Mul(a)
	if err != nil {
		return err
	}

	atbc, err := atb.Mul(c)
	if err != nil {
		return err
	}

	omegaKeep, err := s.omega.Take(keep, nil)
	if err != nil {
		return err
	}

	xiKeep, err := s.xi.Take(keep, []int{0})
	if err != nil {
		return err
	}

	omega, err := omegaKeep.Sub(atba)
	if err != nil {
		return err
	}

	xi, err := xiKeep.Sub(atbc)
	if err != nil {
		return err
	}

	s.layout.Poses--
	s.omega, s.xi = omega, xi

	return nil
}

// Solve returns state mean mu = omega^-1 * xi and covariance omega^-1.
// It returns error wrapping matrix.ErrNotPositiveDefinite if the system is not fully constrained.
func (s *System) Solve(tol float64) (mu, cov *matrix.Matrix, err error) {
	cov, err = s.omega.InverseTol(tol)
	if err != nil {
		return nil, nil, fmt.Errorf("solve: %w", err)
	}

	mu, err = cov.Mul(s.xi)
	if err != nil {
		return nil, nil, fmt.Errorf("solve: %w", err)
	}

	return mu, cov, nil
}

func (s *System) checkLen(v []float64) error {
	if len(v) != s.layout.Dims {
		return fmt.Errorf("vector %v of length %d, expected %d: %w", v, len(v), s.layout.Dims, matrix.ErrDimensionMismatch)
	}

	return nil
}

// Estimate solves the system and returns the estimate of all poses and landmarks.
func (s *System) Estimate(tol float64) (*estimate.Base, error) {
	mu, cov, err := s.Solve(tol)
	if err != nil {
		return nil, err
	}

	val, err := mu.Vec(0)
	if err != nil {
		return nil, err
	}

	sym, err := cov.Sym()
	if err != nil {
		return nil, err
	}

	return estimate.NewBaseWithCov(val, sym, s.layout)
}

// Clone returns a deep copy of the system.
func (s *System) Clone() *System {
	return &System{
		layout: s.layout,
		omega:  s.omega.Clone(),
		xi:     s.xi.Clone(),
	}
}

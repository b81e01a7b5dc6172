package full

import (
	"fmt"

	slam "github.com/milosgajdos/go-slam"
	"github.com/milosgajdos/go-slam/graph"
	"github.com/milosgajdos/go-slam/info"
	"github.com/milosgajdos/go-slam/matrix"
)

// Full is batch graph SLAM estimator.
// It builds one information system over the whole trajectory and solves it once.
type Full struct {
	// cfg is estimator configuration
	cfg slam.Config
	// sys is the information system assembled by the last run
	sys *info.System
}

// New creates new Full SLAM estimator and returns it.
// It returns error if cfg is invalid.
func New(cfg slam.Config) (*Full, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Full{
		cfg: cfg,
	}, nil
}

// Run estimates all robot poses and landmark positions from steps.
// The number of poses is the number of steps carrying a motion plus one; only the
// last step may come without a motion.
// It returns the estimate of all poses followed by all landmarks or error if
// any step is invalid or the system is not sufficiently constrained.
func (f *Full) Run(steps []slam.Step) (slam.Estimate, error) {
	poses, err := f.poses(steps)
	if err != nil {
		return nil, err
	}

	sys, err := info.New(slam.Layout{Dims: f.cfg.Dims, Poses: poses, Landmarks: f.cfg.Landmarks})
	if err != nil {
		return nil, err
	}

	if err := sys.Anchor(0, f.cfg.Anchor()); err != nil {
		return nil, err
	}

	p := 0
	for k, step := range steps {
		for _, m := range step.Measurements {
			if err := sys.AddMeasurement(p, m.Landmark, m.Offset, f.cfg.MeasurementNoise); err != nil {
				return nil, fmt.Errorf("step %d: %w", k, err)
			}
		}

		if step.HasMotion() {
			if err := sys.AddMotion(p, p+1, step.Motion, f.cfg.MotionNoise); err != nil {
				return nil, fmt.Errorf("step %d: %w", k, err)
			}
			p++
		}
	}

	f.sys = sys

	est, err := sys.Estimate(f.cfg.Tolerance)
	if err != nil {
		return nil, err
	}

	return est, nil
}

// poses validates steps and returns the number of poses they describe.
func (f *Full) poses(steps []slam.Step) (int, error) {
	poses := 1
	for k, step := range steps {
		if err := graph.Validate(f.cfg, step); err != nil {
			return 0, fmt.Errorf("step %d: %w", k, err)
		}

		if !step.HasMotion() {
			if k != len(steps)-1 {
				return 0, fmt.Errorf("step %d has no motion: %w", k, matrix.ErrDimensionMismatch)
			}
			continue
		}
		poses++
	}

	if f.cfg.Poses > 0 && f.cfg.Poses != poses {
		return 0, fmt.Errorf("%d steps describe %d poses, expected %d: %w", len(steps), poses, f.cfg.Poses, matrix.ErrDimensionMismatch)
	}

	return poses, nil
}

// Info returns information matrix and vector assembled by the last run.
// It returns nil matrices if the estimator has not run yet.
func (f *Full) Info() (omega, xi *matrix.Matrix) {
	if f.sys == nil {
		return nil, nil
	}

	return f.sys.Omega(), f.sys.Xi()
}

// Config returns estimator configuration
func (f *Full) Config() slam.Config {
	return f.cfg
}

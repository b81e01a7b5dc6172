package online

import (
	"fmt"

	slam "github.com/milosgajdos/go-slam"
	"github.com/milosgajdos/go-slam/graph"
	"github.com/milosgajdos/go-slam/info"
	"github.com/milosgajdos/go-slam/matrix"
)

// Online is incremental graph SLAM estimator.
// It keeps information about the current pose and all landmarks only:
// every motion introduces a new pose and marginalizes out the previous one.
type Online struct {
	// cfg is estimator configuration
	cfg slam.Config
	// sys is information system over the current pose and all landmarks
	sys *info.System
	// steps counts processed steps
	steps int
}

// New creates new Online SLAM estimator and returns it.
// It returns error if cfg is invalid.
func New(cfg slam.Config) (*Online, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &Online{cfg: cfg}
	if err := o.Reset(); err != nil {
		return nil, err
	}

	return o, nil
}

// Reset discards all processed steps and anchors the current pose again.
func (o *Online) Reset() error {
	sys, err := info.New(slam.Layout{Dims: o.cfg.Dims, Poses: 1, Landmarks: o.cfg.Landmarks})
	if err != nil {
		return err
	}

	if err := sys.Anchor(0, o.cfg.Anchor()); err != nil {
		return err
	}

	o.sys, o.steps = sys, 0

	return nil
}

// Update folds step into the estimator state.
// Measurements constrain the current pose; motion then adds a new pose and
// marginalizes out the current one so the state size stays constant.
// The estimator state is left unchanged if Update fails.
func (o *Online) Update(step slam.Step) error {
	if err := graph.Validate(o.cfg, step); err != nil {
		return fmt.Errorf("step %d: %w", o.steps, err)
	}

	sys := o.sys.Clone()

	for _, m := range step.Measurements {
		if err := sys.AddMeasurement(0, m.Landmark, m.Offset, o.cfg.MeasurementNoise); err != nil {
			return fmt.Errorf("step %d: %w", o.steps, err)
		}
	}

	if step.HasMotion() {
		if err := sys.PushPose(); err != nil {
			return fmt.Errorf("step %d: %w", o.steps, err)
		}

		if err := sys.AddMotion(0, 1, step.Motion, o.cfg.MotionNoise); err != nil {
			return fmt.Errorf("step %d: %w", o.steps, err)
		}

		if err := sys.MarginalizePose(0, o.cfg.Tolerance); err != nil {
			return fmt.Errorf("step %d: %w", o.steps, err)
		}
	}

	o.sys = sys
	o.steps++

	return nil
}

// Estimate solves the current state and returns the estimate of the
// current pose followed by all landmarks.
func (o *Online) Estimate() (slam.Estimate, error) {
	est, err := o.sys.Estimate(o.cfg.Tolerance)
	if err != nil {
		return nil, err
	}

	return est, nil
}

// Run folds all steps into the estimator state and returns the estimate.
// It returns error if any of the steps fails to be processed.
func (o *Online) Run(steps []slam.Step) (slam.Estimate, error) {
	for _, step := range steps {
		if err := o.Update(step); err != nil {
			return nil, err
		}
	}

	return o.Estimate()
}

// Steps returns the number of processed steps
func (o *Online) Steps() int {
	return o.steps
}

// Info returns information matrix and vector of the current state
func (o *Online) Info() (omega, xi *matrix.Matrix) {
	return o.sys.Omega(), o.sys.Xi()
}

// Config returns estimator configuration
func (o *Online) Config() slam.Config {
	return o.cfg
}

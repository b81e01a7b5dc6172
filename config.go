package slam

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultDims is the number of coordinates of a planar pose or landmark
	DefaultDims = 2
	// DefaultWorldSize is the default world extent
	DefaultWorldSize = 100.0
	// DefaultNoise is the default motion and measurement noise variance
	DefaultNoise = 2.0
	// DefaultTolerance is the default Cholesky zero tolerance
	DefaultTolerance = 1e-5
)

// ErrInvalidConfig is returned when Config validation fails
var ErrInvalidConfig = errors.New("slam: invalid config")

// Config configures SLAM estimators.
type Config struct {
	// Dims is the number of coordinates per pose and landmark
	Dims int `yaml:"dims"`
	// Poses is the number of poses of the full estimator; 0 derives it from the data
	Poses int `yaml:"poses,omitempty"`
	// Landmarks is the number of landmarks
	Landmarks int `yaml:"landmarks"`
	// MotionNoise is motion noise variance
	MotionNoise float64 `yaml:"motion_noise"`
	// MeasurementNoise is measurement noise variance
	MeasurementNoise float64 `yaml:"measurement_noise"`
	// WorldSize is world extent; the first pose is anchored at its centre
	WorldSize float64 `yaml:"world_size"`
	// Start overrides the anchor of the first pose
	Start []float64 `yaml:"start,omitempty,flow"`
	// Tolerance is Cholesky zero tolerance
	Tolerance float64 `yaml:"tolerance,omitempty"`
}

// DefaultConfig returns planar config for n landmarks.
func DefaultConfig(landmarks int) Config {
	return Config{
		Dims:             DefaultDims,
		Landmarks:        landmarks,
		MotionNoise:      DefaultNoise,
		MeasurementNoise: DefaultNoise,
		WorldSize:        DefaultWorldSize,
		Tolerance:        DefaultTolerance,
	}
}

// Validate checks the config and fills in zero tolerance with DefaultTolerance.
// It returns error wrapping ErrInvalidConfig if either of the following conditions is met:
//   - Dims is not positive
//   - Poses or Landmarks is negative
//   - noise variances are not positive or tolerance is negative
//   - WorldSize is negative
//   - any of the above or a Start coordinate is NaN or infinite
//   - Start length does not match Dims
func (c *Config) Validate() error {
	if c.Dims <= 0 {
		return fmt.Errorf("%w: dims %d", ErrInvalidConfig, c.Dims)
	}

	if c.Poses < 0 || c.Landmarks < 0 {
		return fmt.Errorf("%w: poses %d, landmarks %d", ErrInvalidConfig, c.Poses, c.Landmarks)
	}

	if !finite(c.MotionNoise) || !finite(c.MeasurementNoise) || c.MotionNoise <= 0 || c.MeasurementNoise <= 0 {
		return fmt.Errorf("%w: noise [%v, %v]", ErrInvalidConfig, c.MotionNoise, c.MeasurementNoise)
	}

	if c.Tolerance == 0 {
		c.Tolerance = DefaultTolerance
	}

	if !finite(c.Tolerance) || c.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance %v", ErrInvalidConfig, c.Tolerance)
	}

	if !finite(c.WorldSize) || c.WorldSize < 0 {
		return fmt.Errorf("%w: world size %v", ErrInvalidConfig, c.WorldSize)
	}

	if c.Start != nil && len(c.Start) != c.Dims {
		return fmt.Errorf("%w: start %v", ErrInvalidConfig, c.Start)
	}

	for _, x := range c.Start {
		if !finite(x) {
			return fmt.Errorf("%w: start %v", ErrInvalidConfig, c.Start)
		}
	}

	return nil
}

// Anchor returns the coordinates the first pose is anchored at.
func (c Config) Anchor() []float64 {
	anchor := make([]float64, c.Dims)
	if c.Start != nil {
		copy(anchor, c.Start)
		return anchor
	}

	for i := range anchor {
		anchor[i] = c.WorldSize / 2.0
	}

	return anchor
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

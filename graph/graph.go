// Package graph defines graph-based SLAM estimators which solve the
// information form of the pose and landmark constraint graph.
package graph

import (
	"fmt"

	slam "github.com/milosgajdos/go-slam"
	"github.com/milosgajdos/go-slam/matrix"
)

// GraphSLAM is graph-based SLAM estimator
type GraphSLAM interface {
	// slam.Estimator runs the estimator over a sequence of steps
	slam.Estimator
	// Info returns information matrix and vector of the estimator
	Info() (omega, xi *matrix.Matrix)
}

// Validate checks step against config: vectors must have cfg.Dims
// elements and landmark ids must be in [0, cfg.Landmarks).
func Validate(cfg slam.Config, step slam.Step) error {
	if step.HasMotion() && len(step.Motion) != cfg.Dims {
		return fmt.Errorf("motion %v: %w", step.Motion, matrix.ErrDimensionMismatch)
	}

	for _, m := range step.Measurements {
		if m.Landmark < 0 || m.Landmark >= cfg.Landmarks {
			return fmt.Errorf("landmark %d of %d: %w", m.Landmark, cfg.Landmarks, matrix.ErrIndexOutOfRange)
		}

		if len(m.Offset) != cfg.Dims {
			return fmt.Errorf("landmark %d offset %v: %w", m.Landmark, m.Offset, matrix.ErrDimensionMismatch)
		}
	}

	return nil
}

package slam

import "gonum.org/v1/gonum/mat"

// Measurement is a relative observation of a landmark taken from the current robot pose.
type Measurement struct {
	// Landmark is landmark id in [0, Config.Landmarks)
	Landmark int `yaml:"landmark"`
	// Offset is the landmark position relative to the robot pose
	Offset []float64 `yaml:"offset"`
}

// Step is one time unit of SLAM input.
// Measurements are taken from the current pose; Motion then moves the robot to the next pose.
// A Step with empty Motion only carries measurements.
type Step struct {
	// Motion is relative robot motion
	Motion []float64 `yaml:"motion,flow"`
	// Measurements are landmark measurements taken before the motion
	Measurements []Measurement `yaml:"measurements,omitempty"`
}

// HasMotion returns true if the step moves the robot.
func (s Step) HasMotion() bool {
	return len(s.Motion) > 0
}

// Estimate is SLAM estimate
type Estimate interface {
	// Val returns the solved state vector: poses followed by landmarks
	Val() mat.Vector
	// Cov returns estimate covariance
	Cov() mat.Symmetric
	// Dims returns the number of coordinates per pose or landmark
	Dims() int
	// Poses returns the number of estimated poses
	Poses() int
	// Landmarks returns the number of estimated landmarks
	Landmarks() int
	// Pose returns i-th pose estimate
	Pose(int) (mat.Vector, error)
	// Landmark returns i-th landmark estimate
	Landmark(int) (mat.Vector, error)
	// PoseCov returns covariance of i-th pose
	PoseCov(int) (mat.Symmetric, error)
	// LandmarkCov returns covariance of i-th landmark
	LandmarkCov(int) (mat.Symmetric, error)
}

// Estimator estimates robot trajectory and landmark positions from a sequence of steps.
type Estimator interface {
	// Run processes all steps and returns the estimate
	Run([]Step) (Estimate, error)
}

// Incremental is an Estimator which processes steps one at a time.
type Incremental interface {
	// Estimator runs all the steps at once
	Estimator
	// Update folds a single step into the estimator state
	Update(Step) error
	// Estimate returns the estimate of the current state
	Estimate() (Estimate, error)
}

// Noise is a noise source used to perturb simulated motions and measurements
type Noise interface {
	// Mean returns noise mean
	Mean() []float64
	// Cov returns covariance matrix of the noise
	Cov() mat.Symmetric
	// Sample returns a sample of the noise
	Sample() mat.Vector
}

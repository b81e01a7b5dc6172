package sim

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	slam "github.com/milosgajdos/go-slam"
	"github.com/milosgajdos/go-slam/noise"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// DefaultRange is default robot measurement range
	DefaultRange = 50.0
	// DefaultDistance is default distance travelled in one step
	DefaultDistance = 20.0
	// DefaultAttempts is default number of worlds generated before giving up
	DefaultAttempts = 100
	// maxMoves bounds the number of headings tried for a single move
	maxMoves = 1000
)

const (
	// UniformNoise draws noise uniformly from a symmetric interval
	UniformNoise = "uniform"
	// GaussianNoise draws zero mean isotropic Gaussian noise
	GaussianNoise = "gaussian"
	// NoNoise records exact motions and measurements
	NoNoise = "none"
)

// DataConfig configures dataset generation
type DataConfig struct {
	// Config is SLAM configuration; Poses is the number of generated poses
	slam.Config `yaml:",inline"`
	// Range is robot measurement range
	Range float64 `yaml:"range"`
	// Distance is distance travelled in one step
	Distance float64 `yaml:"distance"`
	// Attempts is the number of worlds generated before giving up
	Attempts int `yaml:"attempts,omitempty"`
	// Noise is the kind of simulated noise; empty means UniformNoise
	Noise string `yaml:"noise,omitempty"`
}

// DefaultDataConfig returns planar data config with n poses and l landmarks.
func DefaultDataConfig(n, l int) DataConfig {
	cfg := slam.DefaultConfig(l)
	cfg.Poses = n

	return DataConfig{
		Config:   cfg,
		Range:    DefaultRange,
		Distance: DefaultDistance,
		Attempts: DefaultAttempts,
		Noise:    UniformNoise,
	}
}

// MakeData simulates a robot travelling through a random world and returns the recorded dataset.
// The robot senses landmarks, then moves Distance in its current heading; a new heading is
// drawn whenever a move would leave the world. Worlds are regenerated until every landmark
// has been measured at least once.
// It returns error if the config is invalid or no world gets fully observed within Attempts.
func MakeData(cfg DataConfig, src rand.Source) (*Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Dims != 2 {
		return nil, fmt.Errorf("unsupported dataset dims: %d", cfg.Dims)
	}

	if cfg.Poses < 1 {
		return nil, fmt.Errorf("invalid number of poses: %d", cfg.Poses)
	}

	if src == nil {
		return nil, fmt.Errorf("invalid random source: %v", src)
	}

	switch cfg.Noise {
	case "", UniformNoise, GaussianNoise, NoNoise:
	default:
		return nil, fmt.Errorf("unsupported noise: %q", cfg.Noise)
	}

	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}

	for a := 0; a < attempts; a++ {
		d, complete, err := simulate(cfg, src)
		if err != nil {
			return nil, err
		}

		if complete {
			return d, nil
		}
	}

	return nil, fmt.Errorf("no fully observed world in %d attempts", attempts)
}

func simulate(cfg DataConfig, src rand.Source) (*Dataset, bool, error) {
	w, err := NewWorld(cfg.WorldSize, cfg.Landmarks, cfg.Dims, src)
	if err != nil {
		return nil, false, err
	}

	motion, err := newNoise(cfg.Noise, cfg.Dims, cfg.MotionNoise, src)
	if err != nil {
		return nil, false, err
	}

	meas, err := newNoise(cfg.Noise, cfg.Dims, cfg.MeasurementNoise, src)
	if err != nil {
		return nil, false, err
	}

	r, err := NewRobot(w, cfg.Dims, cfg.Range, motion, meas)
	if err != nil {
		return nil, false, err
	}

	heading := distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: src}
	dir := heading.Rand()

	seen := make([]bool, cfg.Landmarks)
	truth := [][]float64{r.Pos()}
	steps := make([]slam.Step, 0, cfg.Poses-1)

	for k := 0; k < cfg.Poses-1; k++ {
		z := r.Sense()
		for _, m := range z {
			seen[m.Landmark] = true
		}

		moved := false
		for i := 0; i < maxMoves; i++ {
			if moved = r.Move(travel(dir, cfg.Distance)); moved {
				break
			}
			dir = heading.Rand()
		}

		if !moved {
			return nil, false, fmt.Errorf("robot stuck at %v in step %d", r.Pos(), k)
		}

		steps = append(steps, slam.Step{Motion: travel(dir, cfg.Distance), Measurements: z})
		truth = append(truth, r.Pos())
	}

	for _, s := range seen {
		if !s {
			return nil, false, nil
		}
	}

	dataCfg := cfg.Config
	dataCfg.Start = nil

	return &Dataset{
		Config:    dataCfg,
		Landmarks: w.Landmarks,
		Truth:     truth,
		Steps:     steps,
	}, true, nil
}

// newNoise returns noise of given kind with the given variance in every dimension.
func newNoise(kind string, dims int, variance float64, src rand.Source) (slam.Noise, error) {
	switch kind {
	case GaussianNoise:
		return noise.NewIsotropic(dims, variance, src)
	case NoNoise:
		return noise.NewZero(dims)
	default:
		// uniform noise with the configured variance: var = (2b)^2/12
		return noise.NewUniform(bounds(dims, variance), src)
	}
}

func travel(dir, dist float64) []float64 {
	return []float64{math.Cos(dir) * dist, math.Sin(dir) * dist}
}

func bounds(dims int, variance float64) []float64 {
	b := make([]float64, dims)
	for i := range b {
		b[i] = math.Sqrt(3 * variance)
	}

	return b
}

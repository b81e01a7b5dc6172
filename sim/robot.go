package sim

import (
	"fmt"
	"math"

	slam "github.com/milosgajdos/go-slam"
	"github.com/milosgajdos/go-slam/noise"
	"gonum.org/v1/gonum/mat"
)

// Robot moves in a world and measures relative landmark positions
type Robot struct {
	// pos is robot position
	pos []float64
	// world is the world the robot moves in
	world *World
	// reach is measurement range
	reach float64
	// motion is motion noise
	motion slam.Noise
	// meas is measurement noise
	meas slam.Noise
}

// NewRobot creates new Robot placed in the centre of world w and returns it.
// The robot senses landmarks within Manhattan distance reach; a negative reach senses all landmarks.
// A nil noise is replaced by zero noise.
// It returns error if the noise dimensions do not match dims.
func NewRobot(w *World, dims int, reach float64, motion, meas slam.Noise) (*Robot, error) {
	if w == nil {
		return nil, fmt.Errorf("invalid world: %v", w)
	}

	if motion == nil || meas == nil {
		zero, err := noise.NewZero(dims)
		if err != nil {
			return nil, err
		}
		if motion == nil {
			motion = zero
		}
		if meas == nil {
			meas = zero
		}
	}

	for _, n := range []slam.Noise{motion, meas} {
		if n.Cov().SymmetricDim() != dims {
			return nil, fmt.Errorf("invalid noise dimension: %d != %d", n.Cov().SymmetricDim(), dims)
		}
	}

	return &Robot{
		pos:    w.Centre(dims),
		world:  w,
		reach:  reach,
		motion: motion,
		meas:   meas,
	}, nil
}

// Pos returns robot position
func (r *Robot) Pos() []float64 {
	pos := make([]float64, len(r.pos))
	copy(pos, r.pos)

	return pos
}

// Move moves the robot by motion perturbed by motion noise.
// It returns false and leaves the robot in place if the move would leave the world.
func (r *Robot) Move(motion []float64) bool {
	if len(motion) != len(r.pos) {
		return false
	}

	next := perturb(motion, r.motion)
	for i := range next {
		next[i] += r.pos[i]
	}

	if !r.world.Contains(next) {
		return false
	}
	r.pos = next

	return true
}

// Sense returns noisy measurements of all landmarks within range.
func (r *Robot) Sense() []slam.Measurement {
	var z []slam.Measurement
	for i, l := range r.world.Landmarks {
		offset := make([]float64, len(r.pos))
		for j := range offset {
			offset[j] = l[j] - r.pos[j]
		}
		offset = perturb(offset, r.meas)

		dist := 0.0
		for _, d := range offset {
			dist += math.Abs(d)
		}

		if r.reach < 0 || dist <= r.reach {
			z = append(z, slam.Measurement{Landmark: i, Offset: offset})
		}
	}

	return z
}

func perturb(v []float64, n slam.Noise) []float64 {
	out := make([]float64, len(v))
	copy(out, v)

	if len(out) == 0 {
		return out
	}

	s := mat.NewVecDense(len(out), out)
	s.AddVec(s, n.Sample())

	return out
}

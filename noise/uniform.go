package noise

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Uniform is zero mean noise drawn uniformly from [-bound[i], bound[i]] in every dimension i
type Uniform struct {
	// dists are per dimension uniform distributions
	dists []distuv.Uniform
	// bound stores distribution half widths
	bound []float64
}

// NewUniform creates new Uniform noise with given half widths.
// Samples are drawn from src; if src is nil a time seeded source is used.
// It returns error if bound is empty or has a negative element.
func NewUniform(bound []float64, src rand.Source) (*Uniform, error) {
	if len(bound) == 0 {
		return nil, fmt.Errorf("invalid uniform noise bound: %v", bound)
	}

	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}

	dists := make([]distuv.Uniform, len(bound))
	for i, b := range bound {
		if b < 0 {
			return nil, fmt.Errorf("invalid uniform noise bound: %v", bound)
		}
		dists[i] = distuv.Uniform{Min: -b, Max: b, Src: src}
	}

	b := make([]float64, len(bound))
	copy(b, bound)

	return &Uniform{
		dists: dists,
		bound: b,
	}, nil
}

// Sample generates a sample from Uniform noise and returns it.
func (u *Uniform) Sample() mat.Vector {
	s := make([]float64, len(u.dists))
	for i := range u.dists {
		s[i] = u.dists[i].Rand()
	}

	return mat.NewVecDense(len(s), s)
}

// Cov returns diagonal covariance matrix of Uniform noise.
func (u *Uniform) Cov() mat.Symmetric {
	cov := mat.NewSymDense(len(u.dists), nil)
	for i := range u.dists {
		cov.SetSym(i, i, u.dists[i].Variance())
	}

	return cov
}

// Mean returns Uniform mean.
func (u *Uniform) Mean() []float64 {
	return make([]float64, len(u.dists))
}

// String implements the Stringer interface.
func (u *Uniform) String() string {
	return fmt.Sprintf("Uniform{\nBound=%v\n}", u.bound)
}

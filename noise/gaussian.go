package noise

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// Gaussian is gaussian noise
type Gaussian struct {
	// dist is a multivariate normal distribution
	dist *distmv.Normal
	// mean is Gaussian mean
	mean []float64
	// cov is Gaussian covariance
	cov *mat.SymDense
}

// NewGaussian creates new Gaussian noise with given mean and covariance.
// Samples are drawn from src; if src is nil a time seeded source is used.
// It returns error if it fails to create Gaussian.
func NewGaussian(mean []float64, cov mat.Symmetric, src rand.Source) (*Gaussian, error) {
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}

	if len(mean) != cov.SymmetricDim() {
		return nil, fmt.Errorf("invalid Gaussian dimensions: mean %d, cov %d", len(mean), cov.SymmetricDim())
	}

	dist, ok := distmv.NewNormal(mean, cov, src)
	if !ok {
		return nil, fmt.Errorf("failed to create new Gaussian noise")
	}

	c := mat.NewSymDense(cov.SymmetricDim(), nil)
	c.CopySym(cov)

	m := make([]float64, len(mean))
	copy(m, mean)

	return &Gaussian{
		dist: dist,
		mean: m,
		cov:  c,
	}, nil
}

// NewIsotropic creates zero mean Gaussian noise of size n with variance v in every dimension.
func NewIsotropic(n int, v float64, src rand.Source) (*Gaussian, error) {
	if n <= 0 || v <= 0 {
		return nil, fmt.Errorf("invalid isotropic noise: size %d, variance %v", n, v)
	}

	cov := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		cov.SetSym(i, i, v)
	}

	return NewGaussian(make([]float64, n), cov, src)
}

// Sample generates a sample from Gaussian noise and returns it.
func (g *Gaussian) Sample() mat.Vector {
	r := g.dist.Rand(nil)
	return mat.NewVecDense(len(r), r)
}

// Cov returns covariance matrix of Gaussian noise.
func (g *Gaussian) Cov() mat.Symmetric {
	cov := mat.NewSymDense(g.cov.SymmetricDim(), nil)
	cov.CopySym(g.cov)

	return cov
}

// Mean returns Gaussian mean.
func (g *Gaussian) Mean() []float64 {
	mean := make([]float64, len(g.mean))
	copy(mean, g.mean)

	return mean
}

// String implements the Stringer interface.
func (g *Gaussian) String() string {
	return fmt.Sprintf("Gaussian{\nMean=%v\nCov=%v\n}", g.mean, mat.Formatted(g.cov, mat.Prefix("    "), mat.Squeeze()))
}

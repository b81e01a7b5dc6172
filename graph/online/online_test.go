package online

import (
	"errors"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	slam "github.com/milosgajdos/go-slam"
	"github.com/milosgajdos/go-slam/graph"
	"github.com/milosgajdos/go-slam/graph/full"
	"github.com/milosgajdos/go-slam/matrix"
	"github.com/milosgajdos/go-slam/sim"
)

var (
	_ slam.Incremental = (*Online)(nil)
	_ graph.GraphSLAM  = (*Online)(nil)
	_ graph.GraphSLAM  = (*full.Full)(nil)
)

const linePath = "../testdata/line.yaml"

// line is a 1-D robot anchored at -3 which moves +5 and +3 and measures one landmark at 7
var line *sim.Dataset

func setup() {
	var err error
	if line, err = sim.LoadFile(linePath); err != nil {
		log.Fatalf("Failed to load %s: %v", linePath, err)
	}
}

func TestMain(m *testing.M) {
	// set up tests
	setup()
	// run the tests
	retCode := m.Run()
	// call with result of m.Run()
	os.Exit(retCode)
}

func TestNew(t *testing.T) {
	assert := assert.New(t)

	o, err := New(line.Config)
	assert.NotNil(o)
	assert.NoError(err)
	assert.Equal(0, o.Steps())

	omega, xi := o.Info()
	assert.Equal(1.0, omega.At(0, 0))
	assert.Equal(-3.0, xi.At(0, 0))

	cfg := line.Config
	cfg.Dims = 0
	o, err = New(cfg)
	assert.Nil(o)
	assert.True(errors.Is(err, slam.ErrInvalidConfig))
}

func TestRun(t *testing.T) {
	assert := assert.New(t)

	o, err := New(line.Config)
	assert.NoError(err)

	est, err := o.Run(line.Steps)
	assert.NoError(err)
	assert.Equal(1, est.Poses())
	assert.Equal(1, est.Landmarks())
	assert.InDeltaSlice([]float64{5, 7}, mat.Col(nil, 0, est.Val()), 1e-6)
	assert.Equal(3, o.Steps())

	omega, _ := o.Info()
	r, c := omega.Dims()
	assert.Equal(2, r)
	assert.Equal(2, c)
}

func TestUpdate(t *testing.T) {
	assert := assert.New(t)

	o, err := New(line.Config)
	assert.NoError(err)

	steps := line.Steps
	assert.NoError(o.Update(steps[0]))

	// landmark is observed once, the current pose follows the first motion
	est, err := o.Estimate()
	assert.NoError(err)
	p, err := est.Pose(0)
	assert.NoError(err)
	assert.InDelta(2.0, p.AtVec(0), 1e-6)

	omega, xi := o.Info()

	// failed update leaves the state untouched
	bad := slam.Step{
		Motion:       []float64{3},
		Measurements: []slam.Measurement{{Landmark: 3, Offset: []float64{1}}},
	}
	err = o.Update(bad)
	assert.True(errors.Is(err, matrix.ErrIndexOutOfRange))

	err = o.Update(slam.Step{Motion: []float64{1, 1}})
	assert.True(errors.Is(err, matrix.ErrDimensionMismatch))

	omega2, xi2 := o.Info()
	assert.True(mat.Equal(omega, omega2))
	assert.True(mat.Equal(xi, xi2))
	assert.Equal(1, o.Steps())

	// measurement only steps keep the current pose
	assert.NoError(o.Update(slam.Step{}))
	assert.Equal(2, o.Steps())

	assert.NoError(o.Reset())
	assert.Equal(0, o.Steps())
	omega, _ = o.Info()
	assert.Equal(1.0, omega.At(0, 0))
}

func TestMatchesFull(t *testing.T) {
	assert := assert.New(t)

	for _, seed := range []uint64{1, 2, 3} {
		d, err := sim.MakeData(sim.DefaultDataConfig(20, 5), rand.NewSource(seed))
		assert.NoError(err)

		f, err := full.New(d.Config)
		assert.NoError(err)

		fest, err := f.Run(d.Steps)
		assert.NoError(err)

		o, err := New(d.Config)
		assert.NoError(err)

		oest, err := o.Run(d.Steps)
		assert.NoError(err)

		fp, err := fest.Pose(fest.Poses() - 1)
		assert.NoError(err)
		op, err := oest.Pose(0)
		assert.NoError(err)
		assert.True(mat.EqualApprox(fp, op, 1e-4), "seed %d", seed)

		for i := 0; i < d.Config.Landmarks; i++ {
			fl, err := fest.Landmark(i)
			assert.NoError(err)
			ol, err := oest.Landmark(i)
			assert.NoError(err)
			assert.True(mat.EqualApprox(fl, ol, 1e-4), "seed %d landmark %d", seed, i)
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	assert := assert.New(t)

	d, err := sim.MakeData(sim.DefaultDataConfig(20, 5), rand.NewSource(11))
	assert.NoError(err)

	o, err := New(d.Config)
	assert.NoError(err)

	est, err := o.Run(d.Steps)
	assert.NoError(err)

	// a fresh estimator gives the same result
	fresh, err := New(d.Config)
	assert.NoError(err)

	again, err := fresh.Run(d.Steps)
	assert.NoError(err)
	assert.True(mat.Equal(est.Val(), again.Val()))
	assert.True(mat.Equal(est.Cov(), again.Cov()))

	// and so does the same estimator after Reset
	assert.NoError(o.Reset())
	again, err = o.Run(d.Steps)
	assert.NoError(err)
	assert.True(mat.Equal(est.Val(), again.Val()))
	assert.Equal(len(d.Steps), o.Steps())
}

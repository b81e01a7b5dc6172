package full

import (
	"errors"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	slam "github.com/milosgajdos/go-slam"
	"github.com/milosgajdos/go-slam/matrix"
	"github.com/milosgajdos/go-slam/sim"
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

	f, err := New(line.Config)
	assert.NotNil(f)
	assert.NoError(err)
	assert.Equal(slam.DefaultTolerance, f.Config().Tolerance)

	omega, xi := f.Info()
	assert.Nil(omega)
	assert.Nil(xi)

	cfg := line.Config
	cfg.MotionNoise = 0
	f, err = New(cfg)
	assert.Nil(f)
	assert.True(errors.Is(err, slam.ErrInvalidConfig))
}

func TestRun(t *testing.T) {
	assert := assert.New(t)

	f, err := New(line.Config)
	assert.NoError(err)

	est, err := f.Run(line.Steps)
	assert.NoError(err)
	assert.Equal(3, est.Poses())
	assert.Equal(1, est.Landmarks())
	assert.InDeltaSlice([]float64{-3, 2, 5, 7}, mat.Col(nil, 0, est.Val()), 1e-6)

	p, err := est.Pose(2)
	assert.NoError(err)
	assert.InDelta(5.0, p.AtVec(0), 1e-6)

	// the anchored pose is the most certain one
	first, err := est.PoseCov(0)
	assert.NoError(err)
	last, err := est.PoseCov(2)
	assert.NoError(err)
	assert.Less(first.At(0, 0), last.At(0, 0))

	_, err = est.LandmarkCov(1)
	assert.True(errors.Is(err, matrix.ErrIndexOutOfRange))

	omega, xi := f.Info()
	assert.NotNil(omega)
	r, c := omega.Dims()
	assert.Equal(4, r)
	assert.Equal(4, c)
	r, _ = xi.Dims()
	assert.Equal(4, r)

	// covariance is the inverse of the information matrix
	prod := &mat.Dense{}
	prod.Mul(omega, est.Cov())
	eye, err := matrix.Identity(4)
	assert.NoError(err)
	assert.True(mat.EqualApprox(prod, eye, 1e-6))
}

func TestRunPoses(t *testing.T) {
	assert := assert.New(t)

	cfg := line.Config
	cfg.Poses = 3
	f, err := New(cfg)
	assert.NoError(err)

	_, err = f.Run(line.Steps)
	assert.NoError(err)

	cfg.Poses = 4
	f, err = New(cfg)
	assert.NoError(err)

	_, err = f.Run(line.Steps)
	assert.True(errors.Is(err, matrix.ErrDimensionMismatch))

	// trailing step carries motion: one more pose
	steps := append([]slam.Step(nil), line.Steps...)
	steps[2].Motion = []float64{1}
	est, err := f.Run(steps)
	assert.NoError(err)
	assert.Equal(4, est.Poses())
}

func TestRunInvalidSteps(t *testing.T) {
	assert := assert.New(t)

	f, err := New(line.Config)
	assert.NoError(err)

	testCases := []struct {
		name   string
		modify func([]slam.Step)
		err    error
	}{
		{"landmark", func(s []slam.Step) { s[0].Measurements[0].Landmark = 1 }, matrix.ErrIndexOutOfRange},
		{"negative landmark", func(s []slam.Step) { s[1].Measurements[0].Landmark = -1 }, matrix.ErrIndexOutOfRange},
		{"offset", func(s []slam.Step) { s[2].Measurements[0].Offset = []float64{1, 2} }, matrix.ErrDimensionMismatch},
		{"motion", func(s []slam.Step) { s[0].Motion = []float64{1, 2} }, matrix.ErrDimensionMismatch},
		{"missing motion", func(s []slam.Step) { s[1].Motion = nil }, matrix.ErrDimensionMismatch},
	}

	for _, tc := range testCases {
		d, err := sim.LoadFile(linePath)
		assert.NoError(err)
		steps := d.Steps
		tc.modify(steps)

		est, err := f.Run(steps)
		assert.Nil(est, tc.name)
		assert.True(errors.Is(err, tc.err), tc.name)
	}
}

func TestRunUnobserved(t *testing.T) {
	assert := assert.New(t)

	cfg := line.Config
	cfg.Landmarks = 2
	f, err := New(cfg)
	assert.NoError(err)

	est, err := f.Run(line.Steps)
	assert.Nil(est)
	assert.True(errors.Is(err, matrix.ErrNotPositiveDefinite))

	// no steps at all: the anchored pose alone
	cfg.Landmarks = 0
	f, err = New(cfg)
	assert.NoError(err)

	est, err = f.Run(nil)
	assert.NoError(err)
	assert.Equal(1, est.Poses())
	assert.InDeltaSlice([]float64{-3}, mat.Col(nil, 0, est.Val()), 1e-9)
}

func TestRunSimulated(t *testing.T) {
	assert := assert.New(t)

	d, err := sim.MakeData(sim.DefaultDataConfig(20, 5), rand.NewSource(7))
	assert.NoError(err)

	f, err := New(d.Config)
	assert.NoError(err)

	est, err := f.Run(d.Steps)
	assert.NoError(err)
	assert.Equal(20, est.Poses())
	assert.Equal(5, est.Landmarks())

	// anchored pose stays close to its anchor
	p, err := est.Pose(0)
	assert.NoError(err)
	assert.InDeltaSlice(d.Config.Anchor(), mat.Col(nil, 0, p), 1.0)

	// repeated runs are deterministic
	again, err := f.Run(d.Steps)
	assert.NoError(err)
	assert.True(mat.Equal(est.Val(), again.Val()))
}

// Package sim simulates a robot moving in a world of landmarks and
// generates SLAM datasets from its noisy motions and measurements.
package sim

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// World is a square world with landmarks
type World struct {
	// Size is world extent in every dimension
	Size float64
	// Landmarks stores landmark positions
	Landmarks [][]float64
}

// NewWorld creates new world of given size with n landmarks of dims coordinates.
// Landmark coordinates are drawn uniformly from [0, size) and rounded.
// It returns error if size or dims is not positive or n is negative.
func NewWorld(size float64, n, dims int, src rand.Source) (*World, error) {
	if size <= 0 || dims <= 0 || n < 0 {
		return nil, fmt.Errorf("invalid world: size %v, landmarks %d, dims %d", size, n, dims)
	}

	u := distuv.Uniform{Min: 0, Max: size, Src: src}

	landmarks := make([][]float64, n)
	for i := range landmarks {
		landmarks[i] = make([]float64, dims)
		for j := range landmarks[i] {
			landmarks[i][j] = math.Round(u.Rand())
		}
	}

	return &World{
		Size:      size,
		Landmarks: landmarks,
	}, nil
}

// Contains returns true if pos lies inside the world.
func (w *World) Contains(pos []float64) bool {
	for _, x := range pos {
		if x < 0 || x > w.Size {
			return false
		}
	}

	return true
}

// Centre returns the centre of the world in dims coordinates.
func (w *World) Centre(dims int) []float64 {
	c := make([]float64, dims)
	for i := range c {
		c[i] = w.Size / 2.0
	}

	return c
}

// Rows returns a matrix whose rows are copied from rows.
// It returns empty matrix if rows is empty.
func Rows(rows [][]float64) *mat.Dense {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return &mat.Dense{}
	}

	m := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, r := range rows {
		m.SetRow(i, r)
	}

	return m
}

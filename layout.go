package slam

import (
	"fmt"

	"github.com/milosgajdos/go-slam/matrix"
)

// Layout maps poses and landmarks to rows of the information matrix.
// Poses come first, landmarks follow; each occupies Dims consecutive rows.
type Layout struct {
	// Dims is the number of coordinates per pose and landmark
	Dims int
	// Poses is the number of poses
	Poses int
	// Landmarks is the number of landmarks
	Landmarks int
}

// Size returns the number of rows of the information matrix.
func (l Layout) Size() int {
	return l.Dims * (l.Poses + l.Landmarks)
}

// PoseRow returns the first row of pose p.
func (l Layout) PoseRow(p int) (int, error) {
	if p < 0 || p >= l.Poses {
		return 0, fmt.Errorf("pose %d of %d: %w", p, l.Poses, matrix.ErrIndexOutOfRange)
	}

	return p * l.Dims, nil
}

// LandmarkRow returns the first row of landmark id.
func (l Layout) LandmarkRow(id int) (int, error) {
	if id < 0 || id >= l.Landmarks {
		return 0, fmt.Errorf("landmark %d of %d: %w", id, l.Landmarks, matrix.ErrIndexOutOfRange)
	}

	return (l.Poses + id) * l.Dims, nil
}

// PoseIndices returns all rows of pose p.
func (l Layout) PoseIndices(p int) ([]int, error) {
	row, err := l.PoseRow(p)
	if err != nil {
		return nil, err
	}

	return span(row, l.Dims), nil
}

// LandmarkIndices returns all rows of landmark id.
func (l Layout) LandmarkIndices(id int) ([]int, error) {
	row, err := l.LandmarkRow(id)
	if err != nil {
		return nil, err
	}

	return span(row, l.Dims), nil
}

// Without returns all rows except those in idx, in ascending order.
func (l Layout) Without(idx []int) []int {
	drop := make(map[int]bool, len(idx))
	for _, i := range idx {
		drop[i] = true
	}

	rows := make([]int, 0, l.Size())
	for i := 0; i < l.Size(); i++ {
		if !drop[i] {
			rows = append(rows, i)
		}
	}

	return rows
}

func span(start, n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = start + i
	}

	return s
}

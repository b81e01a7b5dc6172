package matrix

import "fmt"

// Take returns the submatrix at the cartesian product of rows and cols, preserving order.
// If cols is empty it defaults to rows.
// It returns ErrIndexOutOfRange if any index exceeds m dimensions.
func (m *Matrix) Take(rows, cols []int) (*Matrix, error) {
	if len(cols) == 0 {
		cols = rows
	}

	r, c := m.Dims()
	if err := inRange(rows, r); err != nil {
		return nil, fmt.Errorf("take rows: %w", err)
	}
	if err := inRange(cols, c); err != nil {
		return nil, fmt.Errorf("take cols: %w", err)
	}

	res, err := Zero(len(rows), len(cols))
	if err != nil {
		return nil, fmt.Errorf("take: %w", err)
	}

	for i, ri := range rows {
		for j, cj := range cols {
			res.d.Set(i, j, m.d.At(ri, cj))
		}
	}

	return res, nil
}

// Expand returns a rows x cols zero matrix with element (i, j) of m
// scattered to (rowMap[i], colMap[j]).
// rowMap must have an entry for every row of m and colMap for every column.
func (m *Matrix) Expand(rows, cols int, rowMap, colMap []int) (*Matrix, error) {
	r, c := m.Dims()
	if len(rowMap) != r || len(colMap) != c {
		return nil, fmt.Errorf("expand [%d x %d] with maps [%d x %d]: %w", r, c, len(rowMap), len(colMap), ErrDimensionMismatch)
	}

	res, err := Zero(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("expand: %w", err)
	}

	if err := inRange(rowMap, rows); err != nil {
		return nil, fmt.Errorf("expand rows: %w", err)
	}
	if err := inRange(colMap, cols); err != nil {
		return nil, fmt.Errorf("expand cols: %w", err)
	}

	for i, ri := range rowMap {
		for j, cj := range colMap {
			res.d.Set(ri, cj, m.d.At(i, j))
		}
	}

	return res, nil
}

func inRange(idx []int, n int) error {
	for _, i := range idx {
		if i < 0 || i >= n {
			return fmt.Errorf("index %d of %d: %w", i, n, ErrIndexOutOfRange)
		}
	}

	return nil
}

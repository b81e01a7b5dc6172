package sim

import (
	"fmt"
	"image/color"

	slam "github.com/milosgajdos/go-slam"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// NewTrajectoryPlot creates new plot of a SLAM run from the following data sources:
// truth:     true robot poses
// landmarks: true landmark positions
// poses:     estimated robot poses
// estimates: estimated landmark positions
// Every non-empty source stores one position per row and must have at least 2 columns.
// It returns error if any source is nil or has fewer than 2 columns, or the plot fails to be created.
func NewTrajectoryPlot(truth, landmarks, poses, estimates mat.Matrix) (*plot.Plot, error) {
	sources := []mat.Matrix{truth, landmarks, poses, estimates}
	for _, m := range sources {
		if m == nil {
			return nil, fmt.Errorf("invalid data supplied")
		}
		if r, c := m.Dims(); r > 0 && c < 2 {
			return nil, fmt.Errorf("invalid data dimensions")
		}
	}

	p := plot.New()

	p.Title.Text = "SLAM"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend

	for _, s := range []struct {
		name  string
		data  mat.Matrix
		color color.Color
		shape draw.GlyphDrawer
	}{
		{"truth", truth, color.RGBA{R: 255, B: 128, A: 255}, draw.CircleGlyph{}},
		{"landmarks", landmarks, color.RGBA{G: 160, A: 255}, draw.PyramidGlyph{}},
		{"poses", poses, color.RGBA{R: 169, G: 169, B: 169, A: 255}, draw.CrossGlyph{}},
		{"estimates", estimates, color.RGBA{B: 255, A: 255}, draw.SquareGlyph{}},
	} {
		scatter, err := plotter.NewScatter(makePoints(s.data))
		if err != nil {
			return nil, fmt.Errorf("failed to create %s scatter: %w", s.name, err)
		}
		scatter.GlyphStyle.Color = s.color
		scatter.GlyphStyle.Shape = s.shape
		scatter.GlyphStyle.Radius = vg.Points(3)

		p.Add(scatter)
		p.Legend.Add(s.name, scatter)
	}

	return p, nil
}

// EstimatePoints returns estimated poses and landmarks stored in matrix rows.
func EstimatePoints(est slam.Estimate) (poses, landmarks *mat.Dense, err error) {
	poses = mat.NewDense(est.Poses(), est.Dims(), nil)
	for i := 0; i < est.Poses(); i++ {
		v, err := est.Pose(i)
		if err != nil {
			return nil, nil, err
		}
		poses.SetRow(i, mat.Col(nil, 0, v))
	}

	if est.Landmarks() == 0 {
		return poses, &mat.Dense{}, nil
	}

	landmarks = mat.NewDense(est.Landmarks(), est.Dims(), nil)
	for i := 0; i < est.Landmarks(); i++ {
		v, err := est.Landmark(i)
		if err != nil {
			return nil, nil, err
		}
		landmarks.SetRow(i, mat.Col(nil, 0, v))
	}

	return poses, landmarks, nil
}

func makePoints(m mat.Matrix) plotter.XYs {
	r, _ := m.Dims()
	pts := make(plotter.XYs, r)
	for i := 0; i < r; i++ {
		pts[i].X = m.At(i, 0)
		pts[i].Y = m.At(i, 1)
	}

	return pts
}

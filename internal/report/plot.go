package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotFitness draws the best fitness per generation, with a moving
// average once the run is long enough, and saves it to path. The image
// format follows the file extension.
func PlotFitness(history []float64, path string) error {
	if len(history) == 0 {
		return fmt.Errorf("report: empty history")
	}

	p := plot.New()
	p.Title.Text = "Best fitness per generation"
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(history))
	for i, f := range history {
		pts[i].X = float64(i + 1)
		pts[i].Y = f
	}
	best, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	best.LineStyle.Width = vg.Points(2)
	best.LineStyle.Color = color.RGBA{B: 255, A: 255}
	p.Add(best)
	p.Legend.Add("best fitness", best)

	if window := MovingAverageWindow(len(history)); window > 0 {
		avg := MovingAverage(history, window)
		avgPts := make(plotter.XYs, len(avg))
		for i, v := range avg {
			avgPts[i].X = float64(i + window)
			avgPts[i].Y = v
		}
		line, err := plotter.NewLine(avgPts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = color.RGBA{R: 255, A: 255}
		line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("moving average (%d)", window), line)
	}

	p.Legend.Top = true
	p.Legend.Left = true

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return p.Save(12*vg.Inch, 6*vg.Inch, path)
}

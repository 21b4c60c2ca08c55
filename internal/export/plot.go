package export

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/cglsim/internal/storage"
)

// PlotSummaryPNG draws mean intensity and max amplitude against time and
// writes the figure to path (format chosen by extension: .png, .svg, .pdf).
func PlotSummaryPNG(path string, sum *storage.Summary) error {
	p := plot.New()
	p.Title.Text = "complex Ginzburg-Landau run"
	p.X.Label.Text = "t"
	p.Y.Label.Text = "field magnitude"

	intensity, err := plotter.NewLine(seriesXY(sum.Times, sum.MeanIntensity))
	if err != nil {
		return err
	}
	intensity.Color = color.RGBA{R: 40, G: 90, B: 200, A: 255}

	amplitude, err := plotter.NewLine(seriesXY(sum.Times, sum.MaxAmplitude))
	if err != nil {
		return err
	}
	amplitude.Color = color.RGBA{R: 200, G: 60, B: 40, A: 255}

	p.Add(intensity, amplitude)
	p.Legend.Add("mean |A|^2", intensity)
	p.Legend.Add("max |A|", amplitude)
	p.Legend.Top = true

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

func seriesXY(times, values []float64) plotter.XYs {
	n := len(times)
	if len(values) < n {
		n = len(values)
	}
	xys := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		xys[i].X = times[i]
		xys[i].Y = values[i]
	}
	return xys
}

// Package timeline records the PPU timing over time and renders it as a
// plot of LY and the STAT mode against elapsed dots.
package timeline

import (
	"fmt"
	"image"

	"github.com/silatcha/gboy/internal/ppu/lcd"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// modeScale stretches the 0-3 STAT mode so it reads next to LY.
const modeScale = 10

// Recorder keeps up to a fixed number of timing samples.
type Recorder struct {
	ly, mode plotter.XYs
	limit    int
}

// New returns a Recorder keeping the first limit samples.
func New(limit int) *Recorder {
	return &Recorder{
		ly:    make(plotter.XYs, 0, limit),
		mode:  make(plotter.XYs, 0, limit),
		limit: limit,
	}
}

// Sample records LY and mode at the given dot.
func (r *Recorder) Sample(cycle uint64, ly uint8, mode lcd.Mode) {
	if len(r.ly) >= r.limit {
		return
	}
	r.ly = append(r.ly, plotter.XY{X: float64(cycle), Y: float64(ly)})
	r.mode = append(r.mode, plotter.XY{X: float64(cycle), Y: float64(mode) * modeScale})
}

// Len returns the number of samples kept.
func (r *Recorder) Len() int {
	return len(r.ly)
}

// Plot builds the timeline plot.
func (r *Recorder) Plot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "PPU timing"
	p.X.Label.Text = "dot"
	p.Y.Label.Text = fmt.Sprintf("LY / mode x%d", modeScale)
	p.Legend.Top = true

	ly, err := plotter.NewLine(r.ly)
	if err != nil {
		return nil, fmt.Errorf("timeline: %w", err)
	}
	mode, err := plotter.NewLine(r.mode)
	if err != nil {
		return nil, fmt.Errorf("timeline: %w", err)
	}
	mode.Color = plotter.DefaultLineStyle.Color
	mode.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}

	p.Add(ly, mode)
	p.Legend.Add("LY", ly)
	p.Legend.Add("mode", mode)
	return p, nil
}

// Image renders the plot into an RGBA image of the given size.
func (r *Recorder) Image(width, height int) (image.Image, error) {
	p, err := r.Plot()
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	c := vgimg.NewWith(vgimg.UseImage(img))
	p.Draw(draw.New(c))
	return c.Image(), nil
}

// Save writes the plot to path, in the format named by its extension
// (.png, .svg, .pdf, ...).
func (r *Recorder) Save(path string) error {
	p, err := r.Plot()
	if err != nil {
		return err
	}
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("timeline: %w", err)
	}
	return nil
}

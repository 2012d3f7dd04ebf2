// Package plot renders learning curves as SVG images.
package plot

import (
	"bytes"
	"fmt"

	"github.com/DjordjeVuckovic/bench-viewer/internal/curve"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"
)

const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 2 * vg.Inch
)

type Options struct {
	Width  vg.Length
	Height vg.Length
	XLabel string
	YLabel string
}

type Option func(*Options)

func WithSize(width, height vg.Length) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

func defaultOptions() Options {
	return Options{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		XLabel: "Time",
		YLabel: "Rewards",
	}
}

// LearningCurvesSVG draws one line per curve. Curves with no points are skipped but
// still consume a color, so overlaid runs keep stable colors.
func LearningCurvesSVG(curves []curve.Curve, opts ...Option) ([]byte, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := plot.New()
	p.X.Label.Text = o.XLabel
	p.Y.Label.Text = o.YLabel

	for i, c := range curves {
		n := min(len(c.X), len(c.Y))
		if n == 0 {
			continue
		}

		xys := make(plotter.XYs, n)
		for j := 0; j < n; j++ {
			xys[j].X = c.X[j]
			xys[j].Y = c.Y[j]
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("build line %d: %w", i, err)
		}
		line.LineStyle.Color = plotutil.Color(i)
		line.LineStyle.Width = vg.Points(1)
		p.Add(line)
	}

	canvas := vgsvg.New(o.Width, o.Height)
	p.Draw(draw.New(canvas))

	var buf bytes.Buffer
	if _, err := canvas.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write svg: %w", err)
	}
	return buf.Bytes(), nil
}

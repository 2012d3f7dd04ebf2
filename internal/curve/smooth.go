// Package curve turns noisy per-episode rewards into evenly sampled, smoothed learning curves.
package curve

import "log/slog"

const (
	DefaultResolution = 1000
	DefaultPolyOrder  = 3
)

// Curve is a plot-ready series. Smoothed is false when the raw episode lengths and
// rewards were returned unchanged.
type Curve struct {
	X        []float64
	Y        []float64
	Smoothed bool
}

type Options struct {
	Resolution int
	PolyOrder  int
}

type Option func(*Options)

// WithResolution caps the number of output points.
func WithResolution(n int) Option {
	return func(o *Options) {
		o.Resolution = n
	}
}

func WithPolyOrder(k int) Option {
	return func(o *Options) {
		o.PolyOrder = k
	}
}

func defaultOptions() Options {
	return Options{
		Resolution: DefaultResolution,
		PolyOrder:  DefaultPolyOrder,
	}
}

// Smooth resamples rewards onto maxTimestep/(R-1) spaced time points, where time is the
// running total of episode lengths, and applies a Savitzky-Golay filter. R never exceeds
// the number of episodes and the filter window is about a tenth of R.
//
// When the window is too small for the polynomial order the raw lengths and rewards are
// returned as-is.
func Smooth(rewards []float64, lengths []int, maxTimestep float64, opts ...Option) Curve {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	resolution := min(len(rewards), o.Resolution)
	window := resolution / 10
	if window%2 == 0 {
		window++
	}

	if o.PolyOrder >= window {
		return raw(rewards, lengths)
	}

	x := make([]float64, len(lengths))
	var elapsed float64
	for i, l := range lengths {
		elapsed += float64(l)
		x[i] = elapsed
	}

	xs := Linspace(0, maxTimestep, resolution)
	ys := Interp(xs, x, rewards)

	smoothed, err := SavGol(ys, window, o.PolyOrder)
	if err != nil {
		slog.Warn("Savitzky-Golay filter failed, using raw curve", "window", window, "polyorder", o.PolyOrder, "error", err)
		return raw(rewards, lengths)
	}

	return Curve{X: xs, Y: smoothed, Smoothed: true}
}

func raw(rewards []float64, lengths []int) Curve {
	x := make([]float64, len(lengths))
	for i, l := range lengths {
		x[i] = float64(l)
	}
	y := make([]float64, len(rewards))
	copy(y, rewards)
	return Curve{X: x, Y: y}
}

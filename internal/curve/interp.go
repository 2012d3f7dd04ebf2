package curve

import "sort"

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}

	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// Interp evaluates the piecewise linear function through (xp, fp) at each x.
// xp must be nondecreasing. Points left of xp[0] take fp[0] and points right of the
// last xp take the last fp.
func Interp(x, xp, fp []float64) []float64 {
	n := min(len(xp), len(fp))
	out := make([]float64, len(x))
	if n == 0 {
		return out
	}

	for i, v := range x {
		switch {
		case v <= xp[0]:
			out[i] = fp[0]
		case v >= xp[n-1]:
			out[i] = fp[n-1]
		default:
			// xp[j-1] <= v < xp[j]
			j := sort.Search(n, func(k int) bool { return xp[k] > v })
			x0, x1 := xp[j-1], xp[j]
			t := (v - x0) / (x1 - x0)
			out[i] = fp[j-1] + t*(fp[j]-fp[j-1])
		}
	}
	return out
}

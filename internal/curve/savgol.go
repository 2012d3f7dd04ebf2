package curve

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SavGol applies a Savitzky-Golay filter with an odd window and polynomial order k < window.
// Interior points use the least squares fit of the centered window. The first and last
// window/2 points are taken from the polynomial fitted to the first and last full windows.
func SavGol(y []float64, window, k int) ([]float64, error) {
	if window <= 0 || window%2 == 0 {
		return nil, fmt.Errorf("window must be a positive odd number, got %d", window)
	}
	if k < 0 || k >= window {
		return nil, fmt.Errorf("polyorder %d must be less than window %d", k, window)
	}
	if len(y) < window {
		return nil, fmt.Errorf("window %d exceeds input length %d", window, len(y))
	}

	half := window / 2
	scale := float64(max(half, 1))

	proj, err := projection(window, k, scale)
	if err != nil {
		return nil, err
	}

	n := len(y)
	out := make([]float64, n)

	center := proj.RawRowView(0)
	for i := half; i < n-half; i++ {
		var acc float64
		for j, c := range center {
			acc += c * y[i-half+j]
		}
		out[i] = acc
	}

	head := fit(proj, y[:window])
	for i := 0; i < half; i++ {
		out[i] = evalPoly(head, float64(i-half)/scale)
	}

	tail := fit(proj, y[n-window:])
	for i := n - half; i < n; i++ {
		out[i] = evalPoly(tail, float64(i-(n-window)-half)/scale)
	}

	return out, nil
}

// projection returns (AᵀA)⁻¹Aᵀ for the Vandermonde matrix A of the window positions
// scaled into [-1, 1]. Row p maps window samples to the coefficient of t^p.
func projection(window, k int, scale float64) (*mat.Dense, error) {
	half := window / 2
	a := mat.NewDense(window, k+1, nil)
	for j := 0; j < window; j++ {
		t := float64(j-half) / scale
		v := 1.0
		for p := 0; p <= k; p++ {
			a.Set(j, p, v)
			v *= t
		}
	}

	var ata mat.Dense
	ata.Mul(a.T(), a)

	var inv mat.Dense
	if err := inv.Inverse(&ata); err != nil {
		return nil, fmt.Errorf("invert normal matrix: %w", err)
	}

	var proj mat.Dense
	proj.Mul(&inv, a.T())
	return &proj, nil
}

func fit(proj *mat.Dense, window []float64) []float64 {
	var c mat.VecDense
	c.MulVec(proj, mat.NewVecDense(len(window), window))
	return c.RawVector().Data
}

func evalPoly(coeffs []float64, t float64) float64 {
	var acc float64
	for p := len(coeffs) - 1; p >= 0; p-- {
		acc = acc*t + coeffs[p]
	}
	return acc
}

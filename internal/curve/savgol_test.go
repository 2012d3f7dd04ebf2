package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavGol_ReproducesPolynomials(t *testing.T) {
	n := 60
	y := make([]float64, n)
	for i := range y {
		x := float64(i)
		y[i] = 0.002*x*x*x - 0.1*x*x + 2*x - 7
	}

	got, err := SavGol(y, 11, 3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, y, got, 1e-6)
}

func TestSavGol_KnownCoefficients(t *testing.T) {
	// window 5, order 2 interior weights are (-3, 12, 17, 12, -3) / 35
	y := []float64{0, 0, 0, 0, 35, 0, 0, 0, 0}
	got, err := SavGol(y, 5, 2)
	require.NoError(t, err)

	assert.InDelta(t, -3, got[2], 1e-9)
	assert.InDelta(t, 12, got[3], 1e-9)
	assert.InDelta(t, 17, got[4], 1e-9)
	assert.InDelta(t, 12, got[5], 1e-9)
	assert.InDelta(t, -3, got[6], 1e-9)
}

func TestSavGol_InvalidArguments(t *testing.T) {
	y := make([]float64, 10)

	_, err := SavGol(y, 4, 2)
	assert.ErrorContains(t, err, "odd")

	_, err = SavGol(y, 5, 5)
	assert.ErrorContains(t, err, "polyorder")

	_, err = SavGol(y, 11, 3)
	assert.ErrorContains(t, err, "exceeds")
}

func TestSavGol_WindowOfOneIsIdentity(t *testing.T) {
	y := []float64{3, -1, 4, 1, -5}
	got, err := SavGol(y, 1, 0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, y, got, 1e-12)
}

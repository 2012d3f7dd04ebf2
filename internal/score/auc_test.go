package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAreaUnderCurve(t *testing.T) {
	t.Run("sums length times reward", func(t *testing.T) {
		area := AreaUnderCurve([]int{10, 20, 30}, []float64{1, 2, 0.5})
		assert.InDelta(t, 10+40+15, area, 1e-9)
	})

	t.Run("ignores unpaired tail", func(t *testing.T) {
		area := AreaUnderCurve([]int{10, 20}, []float64{1})
		assert.InDelta(t, 10, area, 1e-9)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Zero(t, AreaUnderCurve(nil, nil))
	})
}

func TestMeanAreaUnderCurve(t *testing.T) {
	t.Run("weighted mean of rewards", func(t *testing.T) {
		got := MeanAreaUnderCurve([]int{10, 30}, []float64{1, 3})
		assert.InDelta(t, (10.0+90.0)/40.0, got, 1e-9)
	})

	t.Run("zero total length does not divide by zero", func(t *testing.T) {
		got := MeanAreaUnderCurve([]int{0, 0}, []float64{5, 7})
		assert.Zero(t, got)

		got = MeanAreaUnderCurve(nil, nil)
		assert.Zero(t, got)
	})

	t.Run("unchanged when time is rescaled", func(t *testing.T) {
		lengths := []int{3, 17, 42, 8, 100}
		rewards := []float64{-1.5, 0, 4.25, 9, 2}
		base := MeanAreaUnderCurve(lengths, rewards)

		for _, c := range []int{2, 7, 1000} {
			scaled := make([]int, len(lengths))
			for i, l := range lengths {
				scaled[i] = l * c
			}
			assert.InDelta(t, base, MeanAreaUnderCurve(scaled, rewards), 1e-9, "scale %d", c)
		}
	})
}

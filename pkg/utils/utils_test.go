package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundDecimal(t *testing.T) {
	tests := []struct {
		value    float64
		decimals int
		want     float64
	}{
		{3.14159, 2, 3.14},
		{-3.14159, 2, -3.14},
		{-1399.996, 2, -1400},
		{0.125, 2, 0.13},
		{49.5, 0, 50},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, RoundDecimal(tt.value, tt.decimals), 1e-9)
	}

	assert.True(t, math.IsNaN(RoundDecimal(math.NaN(), 2)))
}

func TestSplitNonEmpty(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, SplitNonEmpty(" http://a, ,http://b ,", ","))
	assert.Nil(t, SplitNonEmpty("", ","))
}

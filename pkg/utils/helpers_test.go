package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTo(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		places int
		want   float64
	}{
		{"two places", 19.400000000000002, 2, 19.4},
		{"three places", 32.21134, 3, 32.211},
		{"binary below half", 2.675, 2, 2.67},
		{"exact tie to even", 0.125, 2, 0.12},
		{"exact tie up to even", 0.375, 2, 0.38},
		{"negative", -1.2345, 1, -1.2},
		{"zero", 0, 3, 0},
		{"integer places", 12.5, 0, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundTo(tt.value, tt.places))
		})
	}
}

func TestRoundTo_NonFinitePassThrough(t *testing.T) {
	assert.True(t, math.IsNaN(RoundTo(math.NaN(), 2)))
	assert.True(t, math.IsInf(RoundTo(math.Inf(1), 2), 1))
}

func TestLerp(t *testing.T) {
	assert.Equal(t, 1.0, Lerp(1.0, 0.5, 0))
	assert.Equal(t, 0.5, Lerp(1.0, 0.5, 1))
	assert.Equal(t, 0.75, Lerp(1.0, 0.5, 0.5))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(1, -2, 0))
	assert.True(t, IsFinite())
	assert.False(t, IsFinite(1, math.NaN()))
	assert.False(t, IsFinite(math.Inf(-1)))
}

package nvtt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHalfKnownValues(t *testing.T) {
	assert.Equal(t, float32(0), halfToFloat32(0x0000))
	assert.Equal(t, float32(1), halfToFloat32(0x3C00))
	assert.Equal(t, float32(-2), halfToFloat32(0xC000))
	assert.Equal(t, float32(65504), halfToFloat32(0x7BFF))

	// Smallest subnormal half.
	assert.Equal(t, float32(5.9604645e-8), halfToFloat32(0x0001))

	assert.True(t, math.IsInf(float64(halfToFloat32(0x7C00)), 1))
	assert.True(t, math.IsNaN(float64(halfToFloat32(0x7C01))))
}

func TestHalfRoundTrip(t *testing.T) {
	for _, f := range []float32{0, 1, -1, 0.5, 0.25, 2, 1024, 65504, 6.1035156e-5} {
		h := float32ToHalf(f)
		assert.Equal(t, f, halfToFloat32(h), "value %g", f)
	}
}

func TestFloat32ToHalfOverflow(t *testing.T) {
	assert.Equal(t, uint16(0x7C00), float32ToHalf(1e10))
	assert.Equal(t, uint16(0xFC00), float32ToHalf(float32(math.Inf(-1))))
	assert.Equal(t, uint16(0x0000), float32ToHalf(1e-10))
}

func TestFloat32ToHalfRoundsToNearest(t *testing.T) {
	// 1 + 2^-12 sits below the midpoint and rounds down.
	f := float32(1) + float32(math.Exp2(-12))
	assert.Equal(t, uint16(0x3C00), float32ToHalf(f))

	// 1 + 2^-11 + 2^-12 sits above the midpoint and rounds up.
	f = float32(1) + float32(math.Exp2(-11)) + float32(math.Exp2(-12))
	assert.Equal(t, uint16(0x3C01), float32ToHalf(f))
}

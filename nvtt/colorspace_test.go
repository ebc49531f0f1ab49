package nvtt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSrgbRoundTrip(t *testing.T) {
	for _, v := range []float32{0, 0.0005, 0.0031308, 0.02, 0.18, 0.5, 1} {
		got := fromSrgb(toSrgb(v))
		assert.InDelta(t, v, got, 1e-3, "value %g", v)
	}
}

func TestToSrgbEdgeCases(t *testing.T) {
	assert.Equal(t, float32(0), toSrgb(float32(math.NaN())))
	assert.Equal(t, float32(0), toSrgb(-0.5))
	assert.Equal(t, float32(1), toSrgb(2))
}

func TestToXenonSrgbSegments(t *testing.T) {
	assert.Equal(t, float32(0), toXenonSrgb(-1))
	assert.InDelta(t, 0.125, toXenonSrgb(1.0/32.0), 1e-6)
	assert.InDelta(t, 0.75, toXenonSrgb(0.5), 1e-6)
	assert.Equal(t, float32(1), toXenonSrgb(2))
}

func TestRGBMRoundTrip(t *testing.T) {
	const rangeMax = 4

	s := newTestSurface(t, 1, 1, 1, 0.9, 0.3, 0.1, 1)
	s.ToRGBM(rangeMax, 0)
	s.FromRGBM(rangeMax)

	assert.InDelta(t, 0.9, s.Pixel(0, 0, 0, 0), 1e-4)
	assert.InDelta(t, 0.3, s.Pixel(1, 0, 0, 0), 1e-4)
	assert.InDelta(t, 0.1, s.Pixel(2, 0, 0, 0), 1e-4)
	assert.Equal(t, float32(1), s.Pixel(3, 0, 0, 0))
}

func TestRGBMClampsToRange(t *testing.T) {
	s := newTestSurface(t, 1, 1, 1, 8, 0, 0, 1)
	s.ToRGBM(4, 0)
	s.FromRGBM(4)
	assert.InDelta(t, 4, s.Pixel(0, 0, 0, 0), 1e-4)
}

func TestRGBERoundTrip(t *testing.T) {
	s := newTestSurface(t, 1, 1, 1, 0.5, 2.0, 7.3, 1)
	s.ToRGBE(9, 5)

	// Stored channels are normalized.
	for c := 0; c < 4; c++ {
		v := s.Pixel(c, 0, 0, 0)
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}

	s.FromRGBE(9, 5)

	// The shared exponent is dictated by the maximum component (7.3,
	// exponent 3), so the quantization step is 2^(3-9) = 1/64.
	assert.InDelta(t, 0.5, s.Pixel(0, 0, 0, 0), 1.0/64.0)
	assert.InDelta(t, 2.0, s.Pixel(1, 0, 0, 0), 1.0/64.0)
	assert.InDelta(t, 7.3, s.Pixel(2, 0, 0, 0), 1.0/64.0)
	assert.Equal(t, float32(1), s.Pixel(3, 0, 0, 0))
}

func TestRGBEMapsNaNToZero(t *testing.T) {
	s := newTestSurface(t, 1, 1, 1, float32(math.NaN()), 1, 1, 1)
	s.ToRGBE(9, 5)
	s.FromRGBE(9, 5)
	assert.Equal(t, float32(0), s.Pixel(0, 0, 0, 0))
}

func TestYCoCgRoundTripExact(t *testing.T) {
	s := newTestSurface(t, 1, 1, 1, 0.75, 0.25, 0.5, 1)
	s.ToYCoCg()

	// Layout is (Co, Cg, 1, Y).
	assert.Equal(t, float32(1), s.Pixel(2, 0, 0, 0))

	s.FromYCoCg()
	assert.InDelta(t, 0.75, s.Pixel(0, 0, 0, 0), 1e-6)
	assert.InDelta(t, 0.25, s.Pixel(1, 0, 0, 0), 1e-6)
	assert.InDelta(t, 0.5, s.Pixel(2, 0, 0, 0), 1e-6)
}

func TestYCoCgBlockScaleRoundTrip(t *testing.T) {
	s := newTestSurface(t, 4, 4, 1, 0.6, 0.2, 0.1, 1)
	s.ToYCoCg()
	s.BlockScaleCoCg(5)

	// The stored scale must bound the chroma so scaled values stay in
	// [-1, 1].
	for i, v := range s.Channel(0) {
		assert.LessOrEqual(t, float32(math.Abs(float64(v))), float32(1), "pixel %d", i)
	}

	s.FromYCoCg()
	assert.InDelta(t, 0.6, s.Pixel(0, 0, 0, 0), 1e-2)
	assert.InDelta(t, 0.2, s.Pixel(1, 0, 0, 0), 1e-2)
	assert.InDelta(t, 0.1, s.Pixel(2, 0, 0, 0), 1e-2)
}

func TestLUVWRoundTrip(t *testing.T) {
	const rangeMax = 4

	s := newTestSurface(t, 1, 1, 1, 3, 1, 2, 1)
	s.ToLUVW(rangeMax)
	s.FromLUVW(rangeMax)

	assert.InDelta(t, 3, s.Pixel(0, 0, 0, 0), 1e-4)
	assert.InDelta(t, 1, s.Pixel(1, 0, 0, 0), 1e-4)
	assert.InDelta(t, 2, s.Pixel(2, 0, 0, 0), 1e-4)
}

func TestLUVWBlackPixel(t *testing.T) {
	s := newTestSurface(t, 1, 1, 1, 0, 0, 0, 1)
	s.ToLUVW(1)
	s.FromLUVW(1)
	assert.InDelta(t, 0, s.Pixel(0, 0, 0, 0), 1e-5)
}

func TestLogScaleRoundTrip(t *testing.T) {
	s := newTestSurface(t, 1, 1, 1, 8, 0, 0, 1)
	s.ToLogScale(0, 2)
	assert.InDelta(t, 3, s.Pixel(0, 0, 0, 0), 1e-6)
	s.FromLogScale(0, 2)
	assert.InDelta(t, 8, s.Pixel(0, 0, 0, 0), 1e-5)
}

func TestToneMapReinhard(t *testing.T) {
	s := newTestSurface(t, 1, 1, 1, 1, 3, 0, 1)
	s.ToneMap(ToneMapperReinhard)
	assert.InDelta(t, 0.5, s.Pixel(0, 0, 0, 0), 1e-6)
	assert.InDelta(t, 0.75, s.Pixel(1, 0, 0, 0), 1e-6)
}

func TestToneMapLinearPreservesHue(t *testing.T) {
	s := newTestSurface(t, 1, 1, 1, 2, 1, 0.5, 1)
	s.ToneMap(ToneMapperLinear)
	assert.InDelta(t, 1, s.Pixel(0, 0, 0, 0), 1e-6)
	assert.InDelta(t, 0.5, s.Pixel(1, 0, 0, 0), 1e-6)
	assert.InDelta(t, 0.25, s.Pixel(2, 0, 0, 0), 1e-6)
}

func TestToGammaToLinearRoundTrip(t *testing.T) {
	s := newTestSurface(t, 1, 1, 1, 0.25, 0.5, 0.75, 1)
	s.ToGamma(2.2)
	s.ToLinear(2.2)
	assert.InDelta(t, 0.25, s.Pixel(0, 0, 0, 0), 1e-5)
	assert.InDelta(t, 0.75, s.Pixel(2, 0, 0, 0), 1e-5)
}

func TestQuantizeCeil(t *testing.T) {
	for _, tc := range []struct {
		f    float32
		bits int
	}{
		{0.5, 3}, {0.1, 5}, {1.0 / 255.0, 5}, {0.999, 8},
	} {
		q := quantizeCeil(tc.f, tc.bits)
		assert.GreaterOrEqual(t, q, tc.f)
		assert.Less(t, q-tc.f, float32(1)/float32(int(1)<<tc.bits-1)+1e-6)
	}
}

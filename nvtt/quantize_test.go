package nvtt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantizeBinCenters(t *testing.T) {
	s := newTestSurface(t, 4, 4, 1, 0.6, 0, 0, 1)
	s.Quantize(0, 1, false, false)

	for i, v := range s.Channel(0) {
		assert.Equal(t, float32(0.5), v, "pixel %d", i)
	}
}

func TestQuantizeExactEndPoints(t *testing.T) {
	s := newTestSurface(t, 2, 1, 1, 0, 0, 0, 1)
	s.Channel(0)[0] = 0
	s.Channel(0)[1] = 1

	s.Quantize(0, 8, true, false)
	assert.Equal(t, float32(0), s.Channel(0)[0])
	assert.Equal(t, float32(1), s.Channel(0)[1])
}

func TestQuantizeDitherStableOnGrid(t *testing.T) {
	// A value already on the grid produces zero residue, so dithering
	// changes nothing.
	s := newTestSurface(t, 8, 8, 1, 0.5, 0, 0, 1)
	s.Quantize(0, 1, false, true)

	for i, v := range s.Channel(0) {
		assert.Equal(t, float32(0.5), v, "pixel %d", i)
	}
}

func TestQuantizeDitherPreservesMean(t *testing.T) {
	s := newTestSurface(t, 32, 32, 1, 0.3, 0, 0, 1)
	s.Quantize(0, 1, false, true)

	var sum float32
	for _, v := range s.Channel(0) {
		assert.Contains(t, []float32{0, 0.5}, v)
		sum += v
	}
	mean := sum / float32(32*32)
	assert.InDelta(t, 0.3, mean, 0.05)
}

func TestQuantizeDitherPerSlice(t *testing.T) {
	// Diffusion must not leak across Z slices: a second identical slice
	// quantizes identically.
	s := newTestSurface(t, 8, 8, 2, 0.3, 0, 0, 1)
	s.Quantize(0, 1, false, true)

	plane := s.Channel(0)
	n := 8 * 8
	for i := 0; i < n; i++ {
		assert.Equal(t, plane[i], plane[n+i], "pixel %d", i)
	}
}

func TestBinarize(t *testing.T) {
	s := newTestSurface(t, 2, 1, 1, 0, 0, 0, 1)
	s.Channel(0)[0] = 0.4
	s.Channel(0)[1] = 0.6

	s.Binarize(0, 0.5, false)
	assert.Equal(t, float32(0), s.Channel(0)[0])
	assert.Equal(t, float32(1), s.Channel(0)[1])
}

func TestBinarizeDitherMean(t *testing.T) {
	s := newTestSurface(t, 32, 32, 1, 0.25, 0, 0, 1)
	s.Binarize(0, 0.5, true)

	var sum float32
	for _, v := range s.Channel(0) {
		sum += v
	}
	assert.InDelta(t, 0.25, sum/float32(32*32), 0.05)
}

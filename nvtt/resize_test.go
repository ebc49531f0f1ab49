package nvtt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountMipmaps(t *testing.T) {
	assert.Equal(t, 1, CountMipmaps(1))
	assert.Equal(t, 2, CountMipmaps(2))
	assert.Equal(t, 9, CountMipmaps(256))

	assert.Equal(t, 9, CountMipmaps3D(256, 1, 1))
	assert.Equal(t, 3, CountMipmaps3D(4, 4, 4))
	assert.Equal(t, 9, CountMipmaps3D(4, 256, 2))
}

func TestPowerOfTwoRounding(t *testing.T) {
	assert.Equal(t, 1, NextPowerOfTwo(1))
	assert.Equal(t, 4, NextPowerOfTwo(3))
	assert.Equal(t, 4, NextPowerOfTwo(4))

	assert.Equal(t, 1, PreviousPowerOfTwo(1))
	assert.Equal(t, 2, PreviousPowerOfTwo(3))
	assert.Equal(t, 4, PreviousPowerOfTwo(4))
	assert.Equal(t, 4, PreviousPowerOfTwo(5))

	// Ties favor the next power of two.
	assert.Equal(t, 4, NearestPowerOfTwo(3))
	assert.Equal(t, 4, NearestPowerOfTwo(5))
	assert.Equal(t, 8, NearestPowerOfTwo(6))
}

func TestGetTargetExtent(t *testing.T) {
	// Uniform scaling preserves the aspect ratio.
	w, h, d := GetTargetExtent(100, 50, 1, 64, RoundNone, TextureType2D)
	assert.Equal(t, []int{64, 32, 1}, []int{w, h, d})

	// The cap itself snaps down to a power of two when rounding.
	w, h, d = GetTargetExtent(100, 100, 1, 100, RoundToPreviousPowerOfTwo, TextureType2D)
	assert.Equal(t, []int{64, 64, 1}, []int{w, h, d})

	// Cube maps average width and height into a square.
	w, h, d = GetTargetExtent(100, 60, 1, 0, RoundNone, TextureTypeCube)
	assert.Equal(t, []int{80, 80, 1}, []int{w, h, d})

	// No cap, no rounding: identity.
	w, h, d = GetTargetExtent(33, 17, 5, 0, RoundNone, TextureType3D)
	assert.Equal(t, []int{33, 17, 5}, []int{w, h, d})
}

func TestComputeImageSize(t *testing.T) {
	assert.Equal(t, 32, ComputeImageSize(8, 8, 1, FormatBC1))
	assert.Equal(t, 16, ComputeImageSize(1, 1, 1, FormatBC3))
	assert.Equal(t, 64, ComputeImageSize(8, 8, 2, FormatBC4))
}

func TestResizePreservesConstant(t *testing.T) {
	for _, f := range []ResizeFilter{ResizeBox, ResizeTriangle, ResizeKaiser, ResizeMitchell} {
		s := newTestSurface(t, 8, 8, 1, 0.7, 0.7, 0.7, 1)
		s.ResizeDefault(4, 4, 1, f)

		require.Equal(t, 4, s.Width())
		require.Equal(t, 4, s.Height())
		for i, v := range s.Channel(0) {
			assert.InDelta(t, 0.7, v, 1e-4, "filter %d pixel %d", f, i)
		}
	}
}

func TestResizeSameShapeIsNoOp(t *testing.T) {
	s := newTestSurface(t, 4, 4, 1, 0.5, 0.5, 0.5, 1)
	c := s.Clone()
	s.ResizeDefault(4, 4, 1, ResizeBox)
	assert.Equal(t, 2, c.refCount())
}

func TestBuildNextMipmapChain(t *testing.T) {
	s := newTestSurface(t, 8, 4, 1, 0.5, 0.5, 0.5, 1)

	levels := 1
	for s.BuildNextMipmapDefault(MipmapBox) {
		levels++
	}

	assert.Equal(t, 4, levels)
	assert.Equal(t, 1, s.Width())
	assert.Equal(t, 1, s.Height())

	ns := NewSurface()
	assert.False(t, ns.BuildNextMipmapDefault(MipmapBox))
}

func TestFastDownSampleMatchesFilter(t *testing.T) {
	img := newFloatImage(4, 4, 1)
	for i := range img.data {
		img.data[i] = float32(i%7) * 0.125
	}

	fast := img.clone().fastDownSample()
	slow := img.clone().downSample(boxFilter{w: 0.5}, WrapClamp, -1)

	require.Equal(t, fast.width, slow.width)
	require.Equal(t, fast.height, slow.height)
	for i := range fast.data {
		assert.InDelta(t, slow.data[i], fast.data[i], 1e-6, "sample %d", i)
	}
}

func TestCanFastDownSample(t *testing.T) {
	assert.True(t, newFloatImage(4, 4, 1).canFastDownSample())
	assert.True(t, newFloatImage(8, 1, 1).canFastDownSample())
	assert.False(t, newFloatImage(5, 4, 1).canFastDownSample())
	assert.False(t, newFloatImage(4, 4, 2).canFastDownSample())
}

func TestCanvasSize(t *testing.T) {
	s := newTestSurface(t, 2, 2, 1, 0.5, 0.5, 0.5, 1)
	s.CanvasSize(3, 3, 1)

	require.Equal(t, 3, s.Width())
	assert.InDelta(t, 0.5, s.Pixel(0, 1, 1, 0), 1e-6)
	assert.Equal(t, float32(0), s.Pixel(0, 2, 2, 0))

	s.CanvasSize(1, 1, 1)
	require.Equal(t, 1, s.Width())
	assert.InDelta(t, 0.5, s.Pixel(0, 0, 0, 0), 1e-6)
}

func TestResizeTransparencyWeighting(t *testing.T) {
	// A fully transparent half should not bleed color into the opaque half.
	s := newTestSurface(t, 4, 1, 1, 0, 0, 0, 0)
	r, a := s.Channel(0), s.Channel(3)
	r[0], r[1] = 1, 1
	a[0], a[1] = 1, 1
	r[2], r[3] = 0, 0

	s.SetAlphaMode(AlphaTransparency)
	s.ResizeDefault(2, 1, 1, ResizeBox)

	assert.InDelta(t, 1, s.Pixel(0, 0, 0, 0), 1e-2)
	assert.InDelta(t, 1, s.Pixel(3, 0, 0, 0), 1e-6)
}

func TestWrapIndex(t *testing.T) {
	assert.Equal(t, 0, wrapIndex(-1, 4, WrapClamp))
	assert.Equal(t, 3, wrapIndex(7, 4, WrapClamp))
	assert.Equal(t, 3, wrapIndex(-1, 4, WrapRepeat))
	assert.Equal(t, 1, wrapIndex(5, 4, WrapRepeat))
	assert.Equal(t, 1, wrapIndex(-1, 4, WrapMirror))
	assert.Equal(t, 3, wrapIndex(4, 4, WrapMirror))
}

package nvtt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRMSErrorIdenticalSurfaces(t *testing.T) {
	a := newTestSurface(t, 4, 4, 1, 0.3, 0.6, 0.9, 1)
	b := a.Clone()

	rms, err := RMSError(a, b)
	require.NoError(t, err)
	assert.Equal(t, float32(0), rms)
}

func TestRMSErrorKnownDelta(t *testing.T) {
	ref := newTestSurface(t, 1, 1, 1, 0.5, 0.5, 0.5, 1)
	img := newTestSurface(t, 1, 1, 1, 0.8, 0.5, 0.5, 1)

	rms, err := RMSError(ref, img)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(0.09/3), float64(rms), 1e-5)
}

func TestRMSErrorShapeMismatch(t *testing.T) {
	a := newTestSurface(t, 2, 2, 1, 0, 0, 0, 1)
	b := newTestSurface(t, 4, 4, 1, 0, 0, 0, 1)

	_, err := RMSError(a, b)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestRMSErrorAlphaWeighting(t *testing.T) {
	ref := newTestSurface(t, 2, 2, 1, 0.2, 0.2, 0.2, 0)
	img := newTestSurface(t, 2, 2, 1, 0.9, 0.9, 0.9, 0)

	// Transparent reference pixels contribute nothing.
	ref.SetAlphaMode(AlphaTransparency)
	rms, err := RMSError(ref, img)
	require.NoError(t, err)
	assert.Equal(t, float32(0), rms)
}

func TestRMSAlphaError(t *testing.T) {
	ref := newTestSurface(t, 1, 1, 1, 0, 0, 0, 1)
	img := newTestSurface(t, 1, 1, 1, 0, 0, 0, 0.5)

	rms, err := RMSAlphaError(ref, img)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, rms, 1e-6)
}

func TestCIELabErrorIdentical(t *testing.T) {
	a := newTestSurface(t, 2, 2, 1, 0.4, 0.2, 0.7, 1)
	lab, err := CIELabError(a, a.Clone())
	require.NoError(t, err)
	assert.Equal(t, float32(0), lab)

	b := newTestSurface(t, 2, 2, 1, 0.5, 0.2, 0.7, 1)
	lab, err = CIELabError(a, b)
	require.NoError(t, err)
	assert.Greater(t, lab, float32(0))
}

func TestAngularErrorIdenticalNormals(t *testing.T) {
	a := newTestSurface(t, 1, 1, 1, 0, 0, 0, 1)
	setPackedNormal(a, 0.6, 0, 0.8)

	ang, err := AngularError(a, a.Clone())
	require.NoError(t, err)
	assert.InDelta(t, 0, ang, 1e-3)
}

func TestAngularErrorOrthogonalNormals(t *testing.T) {
	a := newTestSurface(t, 1, 1, 1, 0, 0, 0, 1)
	setPackedNormal(a, 1, 0, 0)
	b := newTestSurface(t, 1, 1, 1, 0, 0, 0, 1)
	setPackedNormal(b, 0, 0, 1)

	ang, err := AngularError(a, b)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, float64(ang), 1e-3)
}

func TestDiffIdenticalSurfaces(t *testing.T) {
	ref := newTestSurface(t, 2, 2, 1, 0.3, 0.4, 0.5, 0.75)
	d := Diff(ref, ref.Clone(), 2)

	require.False(t, d.IsNull())
	for i := range d.Channel(0) {
		assert.Equal(t, float32(0), d.Channel(0)[i])
		assert.Equal(t, float32(0.75), d.Channel(3)[i]) // reference alpha carried through
	}
}

func TestDiffScaledDelta(t *testing.T) {
	ref := newTestSurface(t, 1, 1, 1, 0.5, 0.5, 0.5, 1)
	img := newTestSurface(t, 1, 1, 1, 0.6, 0.5, 0.5, 1)

	d := Diff(ref, img, 10)
	assert.InDelta(t, 1.0, d.Pixel(0, 0, 0, 0), 1e-5)
	assert.InDelta(t, 0.0, d.Pixel(1, 0, 0, 0), 1e-5)
}

func TestDiffShapeMismatchYieldsNull(t *testing.T) {
	a := newTestSurface(t, 2, 2, 1, 0, 0, 0, 1)
	b := newTestSurface(t, 4, 4, 1, 0, 0, 0, 1)
	assert.True(t, Diff(a, b, 1).IsNull())
}

func TestRGBToCIELabWhite(t *testing.T) {
	l, a, b := rgbToCIELab(1, 1, 1)
	assert.InDelta(t, 100, float64(l), 0.1)
	assert.InDelta(t, 0, float64(a), 0.5)
	assert.InDelta(t, 0, float64(b), 0.5)
}

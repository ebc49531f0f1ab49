package nvtt

import (
	"math"
	"sync/atomic"
)

// surfaceState is the shared, reference-counted state behind a Surface,
// equivalent to upstream nvtt::Surface::Private.
type surfaceState struct {
	refs atomic.Int32

	image       *floatImage // nil for a null surface
	wrapMode    WrapMode
	alphaMode   AlphaMode
	isNormalMap bool
	textureType TextureType
}

func (st *surfaceState) clone() *surfaceState {
	c := &surfaceState{
		wrapMode:    st.wrapMode,
		alphaMode:   st.alphaMode,
		isNormalMap: st.isNormalMap,
		textureType: st.textureType,
	}
	if st.image != nil {
		c.image = st.image.clone()
	}
	c.refs.Store(1)
	return c
}

// Surface is a copy-on-write handle to a planar floating-point image plus
// filtering metadata, equivalent to upstream nvtt::Surface.
//
// Clone shares the underlying state; any mutating method first detaches the
// handle, deep-copying the pixel buffer if the state is shared, so handles
// obtained from Clone never observe each other's mutations. Plain Go struct
// copies share state without adjusting the reference count and must be
// treated as short-lived read-only views.
//
// All operations run synchronously on the calling goroutine. Handles sharing
// a state must not be mutated concurrently without external serialization:
// detach-then-mutate is not atomic across goroutines.
type Surface struct {
	m *surfaceState
}

// NewSurface returns an empty (null) surface.
func NewSurface() Surface {
	st := &surfaceState{}
	st.refs.Store(1)
	return Surface{m: st}
}

// Clone returns a new handle sharing this surface's state. The state is
// deep-copied lazily, on the first mutation through either handle.
func (s Surface) Clone() Surface {
	s.m.refs.Add(1)
	return Surface{m: s.m}
}

// detach guarantees exclusive ownership of the state before a mutation.
// Post-condition: reference count == 1.
func (s *Surface) detach() {
	if s.m.refs.Load() > 1 {
		s.m.refs.Add(-1)
		s.m = s.m.clone()
	}
}

func (s Surface) refCount() int {
	return int(s.m.refs.Load())
}

// IsNull reports whether the surface has no pixel data.
func (s Surface) IsNull() bool { return s.m.image == nil }

// Width returns the surface width, or 0 for a null surface.
func (s Surface) Width() int {
	if s.m.image == nil {
		return 0
	}
	return s.m.image.width
}

// Height returns the surface height, or 0 for a null surface.
func (s Surface) Height() int {
	if s.m.image == nil {
		return 0
	}
	return s.m.image.height
}

// Depth returns the surface depth, or 0 for a null surface.
func (s Surface) Depth() int {
	if s.m.image == nil {
		return 0
	}
	return s.m.image.depth
}

// WrapMode returns the boundary-extension policy used by filters.
func (s Surface) WrapMode() WrapMode { return s.m.wrapMode }

// AlphaMode returns the alpha interpretation.
func (s Surface) AlphaMode() AlphaMode { return s.m.alphaMode }

// IsNormalMap reports whether the surface is flagged as a normal map.
func (s Surface) IsNormalMap() bool { return s.m.isNormalMap }

// Type returns the texture dimensionality derived from the surface shape.
func (s Surface) Type() TextureType { return s.m.textureType }

// SetWrapMode sets the boundary-extension policy.
func (s *Surface) SetWrapMode(wm WrapMode) {
	if s.m.wrapMode != wm {
		s.detach()
		s.m.wrapMode = wm
	}
}

// SetAlphaMode sets the alpha interpretation.
func (s *Surface) SetAlphaMode(am AlphaMode) {
	if s.m.alphaMode != am {
		s.detach()
		s.m.alphaMode = am
	}
}

// SetNormalMap flags the surface as a normal map, gating normalization.
func (s *Surface) SetNormalMap(isNormalMap bool) {
	if s.m.isNormalMap != isNormalMap {
		s.detach()
		s.m.isNormalMap = isNormalMap
	}
}

// CountMipmaps returns the length of a full mipmap chain for this surface
// (2D chain, depth ignored), or 0 for a null surface.
func (s Surface) CountMipmaps() int {
	if s.m.image == nil {
		return 0
	}
	return CountMipmaps3D(s.m.image.width, s.m.image.height, 1)
}

// Channel returns the backing plane for one channel. The slice aliases the
// surface state; mutating it bypasses copy-on-write.
func (s Surface) Channel(channel int) []float32 {
	if s.m.image == nil || channel < 0 || channel >= channelCount {
		return nil
	}
	return s.m.image.channel(channel)
}

// Pixel returns one channel value at (x, y, z), or 0 for a null surface.
func (s Surface) Pixel(channel, x, y, z int) float32 {
	if s.m.image == nil {
		return 0
	}
	return s.m.image.pixel(channel, x, y, z)
}

// Fill sets every pixel to the given color.
func (s *Surface) Fill(red, green, blue, alpha float32) {
	if s.IsNull() {
		return
	}
	s.detach()

	img := s.m.image
	r, g, b, a := img.channel(0), img.channel(1), img.channel(2), img.channel(3)
	for i := range r {
		r[i] = red
		g[i] = green
		b[i] = blue
		a[i] = alpha
	}
}

// SetBorder paints the outermost ring of pixels of every Z slice.
func (s *Surface) SetBorder(red, green, blue, alpha float32) {
	if s.IsNull() {
		return
	}
	s.detach()

	img := s.m.image
	w, h, d := img.width, img.height, img.depth

	set := func(x, y, z int) {
		img.setPixel(0, x, y, z, red)
		img.setPixel(1, x, y, z, green)
		img.setPixel(2, x, y, z, blue)
		img.setPixel(3, x, y, z, alpha)
	}

	for z := 0; z < d; z++ {
		for x := 0; x < w; x++ {
			set(x, 0, z)
			set(x, h-1, z)
		}
		for y := 0; y < h; y++ {
			set(0, y, z)
			set(w-1, y, z)
		}
	}
}

// Blend mixes every pixel toward a constant color by factor t.
func (s *Surface) Blend(red, green, blue, alpha, t float32) {
	if s.IsNull() {
		return
	}
	s.detach()

	img := s.m.image
	r, g, b, a := img.channel(0), img.channel(1), img.channel(2), img.channel(3)
	for i := range r {
		r[i] = lerpf(r[i], red, t)
		g[i] = lerpf(g[i], green, t)
		b[i] = lerpf(b[i], blue, t)
		a[i] = lerpf(a[i], alpha, t)
	}
}

// PremultiplyAlpha multiplies the color channels by alpha.
func (s *Surface) PremultiplyAlpha() {
	if s.IsNull() {
		return
	}
	s.detach()

	img := s.m.image
	r, g, b, a := img.channel(0), img.channel(1), img.channel(2), img.channel(3)
	for i := range r {
		r[i] *= a[i]
		g[i] *= a[i]
		b[i] *= a[i]
	}
}

// ToGreyScale collapses all four channels to a weighted sum. The weights are
// renormalized to sum to one; every channel of each pixel is read before any
// is overwritten.
func (s *Surface) ToGreyScale(redScale, greenScale, blueScale, alphaScale float32) {
	if s.IsNull() {
		return
	}
	s.detach()

	sum := redScale + greenScale + blueScale + alphaScale
	redScale /= sum
	greenScale /= sum
	blueScale /= sum
	alphaScale /= sum

	img := s.m.image
	r, g, b, a := img.channel(0), img.channel(1), img.channel(2), img.channel(3)
	for i := range r {
		grey := r[i]*redScale + g[i]*greenScale + b[i]*blueScale + a[i]*alphaScale
		r[i] = grey
		g[i] = grey
		b[i] = grey
		a[i] = grey
	}
}

// Swizzle permutes the channels. Selectors 0..3 pick a source channel,
// 4 and 5 pick constants 0 and 1.
func (s *Surface) Swizzle(r, g, b, a int) {
	if s.IsNull() {
		return
	}
	if r == 0 && g == 1 && b == 2 && a == 3 {
		return
	}
	s.detach()
	s.m.image.swizzle(r, g, b, a)
}

// Transform applies an affine per-pixel channel transform: each output
// channel is a weighted sum of the four input channels, plus an offset.
func (s *Surface) Transform(w [4][4]float32, offset [4]float32) {
	if s.IsNull() {
		return
	}
	s.detach()
	s.m.image.transform(w, offset)
}

// ScaleBias applies v*scale + bias to one channel.
func (s *Surface) ScaleBias(channel int, scale, bias float32) {
	if s.IsNull() {
		return
	}
	if scale == 1 && bias == 0 {
		return
	}
	s.detach()
	s.m.image.scaleBias(channel, 1, scale, bias)
}

// Clamp clamps one channel to [low, high].
func (s *Surface) Clamp(channel int, low, high float32) {
	if s.IsNull() {
		return
	}
	s.detach()
	s.m.image.clampChannels(channel, 1, low, high)
}

// Abs replaces one channel with its absolute value.
func (s *Surface) Abs(channel int) {
	if s.IsNull() {
		return
	}
	s.detach()

	plane := s.m.image.channel(channel)
	for i, v := range plane {
		plane[i] = float32(math.Abs(float64(v)))
	}
}

// Convolve applies a square convolution kernel to one channel, honoring the
// surface wrap mode at the boundary.
func (s *Surface) Convolve(channel, kernelSize int, kernelData []float32) {
	if s.IsNull() {
		return
	}
	s.detach()

	k := newKernel2(kernelSize, kernelData)
	s.m.image.convolve(k, channel, s.m.wrapMode)
}

// FlipX mirrors the surface horizontally.
func (s *Surface) FlipX() {
	if s.IsNull() {
		return
	}
	s.detach()
	s.m.image.flipX()
}

// FlipY mirrors the surface vertically.
func (s *Surface) FlipY() {
	if s.IsNull() {
		return
	}
	s.detach()
	s.m.image.flipY()
}

// FlipZ mirrors the surface along the depth axis.
func (s *Surface) FlipZ() {
	if s.IsNull() {
		return
	}
	s.detach()
	s.m.image.flipZ()
}

// CopyChannel copies a channel from src into this surface. The two surfaces
// must have the same shape.
func (s *Surface) CopyChannel(src Surface, srcChannel, dstChannel int) error {
	if srcChannel < 0 || srcChannel >= channelCount || dstChannel < 0 || dstChannel >= channelCount {
		return ErrInvalidChannel
	}
	if !sameLayout(s.m.image, src.m.image) {
		return ErrShapeMismatch
	}

	s.detach()
	copy(s.m.image.channel(dstChannel), src.m.image.channel(srcChannel))
	return nil
}

// AddChannel adds scale times a channel of src into a channel of this
// surface. The two surfaces must have the same shape.
func (s *Surface) AddChannel(src Surface, srcChannel, dstChannel int, scale float32) error {
	if srcChannel < 0 || srcChannel >= channelCount || dstChannel < 0 || dstChannel >= channelCount {
		return ErrInvalidChannel
	}
	if !sameLayout(s.m.image, src.m.image) {
		return ErrShapeMismatch
	}

	s.detach()

	d := s.m.image.channel(dstChannel)
	c := src.m.image.channel(srcChannel)
	for i := range d {
		d[i] += c[i] * scale
	}
	return nil
}

// AlphaTestCoverage returns the fraction of pixels whose alpha exceeds
// alphaRef, or 0 for a null surface.
func (s Surface) AlphaTestCoverage(alphaRef float32) float32 {
	if s.IsNull() {
		return 0
	}

	a := s.m.image.channel(3)
	covered := 0
	for _, v := range a {
		if v > alphaRef {
			covered++
		}
	}
	return float32(covered) / float32(len(a))
}

// ScaleAlphaToCoverage scales the alpha channel so the alpha-test coverage at
// alphaRef approximates the requested coverage. The scale is found by
// bisection and the result clamped to [0, 1].
func (s *Surface) ScaleAlphaToCoverage(coverage, alphaRef float32) {
	if s.IsNull() {
		return
	}
	s.detach()

	a := s.m.image.channel(3)

	coverageAt := func(scale float32) float32 {
		covered := 0
		for _, v := range a {
			if minf(v*scale, 1) > alphaRef {
				covered++
			}
		}
		return float32(covered) / float32(len(a))
	}

	lo, hi := float32(0), float32(4)
	for iter := 0; iter < 10; iter++ {
		mid := 0.5 * (lo + hi)
		if coverageAt(mid) < coverage {
			lo = mid
		} else {
			hi = mid
		}
	}

	scale := 0.5 * (lo + hi)
	for i, v := range a {
		a[i] = minf(v*scale, 1)
	}
}

package nvtt

// CountMipmaps returns the number of mipmap levels for a 1D extent, including
// the base level.
func CountMipmaps(w int) int {
	mipmap := 0
	for w != 1 {
		w = maxi(1, w/2)
		mipmap++
	}
	return mipmap + 1
}

// CountMipmaps3D returns the number of mipmap levels until all three extents
// reach 1, including the base level. The count is driven by the axis that
// takes the most halving steps.
func CountMipmaps3D(w, h, d int) int {
	mipmap := 0
	for w != 1 || h != 1 || d != 1 {
		w = maxi(1, w/2)
		h = maxi(1, h/2)
		d = maxi(1, d/2)
		mipmap++
	}
	return mipmap + 1
}

// NextPowerOfTwo returns the smallest power of two >= v.
func NextPowerOfTwo(v int) int {
	p := 1
	for p < v {
		p *= 2
	}
	return p
}

// PreviousPowerOfTwo returns the largest power of two <= v:
// 1 -> 1, 2 -> 2, 3 -> 2, 4 -> 4, 5 -> 4, ...
func PreviousPowerOfTwo(v int) int {
	return NextPowerOfTwo(v+1) / 2
}

// NearestPowerOfTwo returns whichever of the next and previous powers of two
// is numerically closer, ties favoring the next.
func NearestPowerOfTwo(v int) int {
	np2 := NextPowerOfTwo(v)
	pp2 := PreviousPowerOfTwo(v)

	if np2-v <= v-pp2 {
		return np2
	}
	return pp2
}

// GetTargetExtent computes the shape a surface should be resized to given a
// maximum extent cap, a rounding mode and a texture type.
//
// The cap itself is first snapped down to a power of two (when rounding is
// requested), then the extents are scaled uniformly so the largest dimension
// fits the cap. 2D textures force depth 1; cube textures also average width
// and height into a single square extent. Finally each axis is rounded per
// the rounding mode.
func GetTargetExtent(w, h, d, maxExtent int, roundMode RoundMode, textureType TextureType) (int, int, int) {
	if roundMode != RoundNone && maxExtent > 0 {
		// The rounded max extent should never exceed the original cap.
		maxExtent = PreviousPowerOfTwo(maxExtent)
	}

	// Scale extents without changing the aspect ratio.
	m := maxi(maxi(w, h), d)
	if maxExtent > 0 && m > maxExtent {
		w = maxi((w*maxExtent)/m, 1)
		h = maxi((h*maxExtent)/m, 1)
		d = maxi((d*maxExtent)/m, 1)
	}

	if textureType == TextureType2D {
		d = 1
	} else if textureType == TextureTypeCube {
		w = (w + h) / 2
		h = w
		d = 1
	}

	switch roundMode {
	case RoundToNextPowerOfTwo:
		w, h, d = NextPowerOfTwo(w), NextPowerOfTwo(h), NextPowerOfTwo(d)
	case RoundToNearestPowerOfTwo:
		w, h, d = NearestPowerOfTwo(w), NearestPowerOfTwo(h), NearestPowerOfTwo(d)
	case RoundToPreviousPowerOfTwo:
		w, h, d = PreviousPowerOfTwo(w), PreviousPowerOfTwo(h), PreviousPowerOfTwo(d)
	}

	return w, h, d
}

// ComputeImageSize returns the byte size of an image in the given format.
// FormatBC* sizes count 4x4 blocks; pass bitCount and pitch alignment for
// uncompressed data via ComputePitch.
func ComputeImageSize(w, h, d int, format Format) int {
	return ((w + 3) / 4) * ((h + 3) / 4) * format.BlockSize() * d
}

// Resize resamples the surface to the given shape. A request matching the
// current shape, or a null surface, is a no-op.
//
// With AlphaTransparency, color channels are filtered weighted by alpha as a
// coverage term, with alpha itself filtered separately.
func (s *Surface) Resize(w, h, d int, f ResizeFilter, filterWidth float32, params []float32) {
	if s.IsNull() || (w == s.Width() && h == s.Height() && d == s.Depth()) {
		return
	}

	s.detach()

	alphaChannel := -1
	if s.m.alphaMode == AlphaTransparency {
		alphaChannel = 3
	}

	flt := filterForResize(f, filterWidth, params)
	s.m.image = s.m.image.resize(flt, w, h, d, s.m.wrapMode, alphaChannel)
	s.m.textureType = textureTypeForDepth(d)
}

// ResizeDefault is Resize with the filter's default width and parameters.
func (s *Surface) ResizeDefault(w, h, d int, f ResizeFilter) {
	fw, params := defaultFilterWidthAndParams(f)
	s.Resize(w, h, d, f, fw, params[:])
}

// ResizeMaxExtent computes a target shape with GetTargetExtent from the
// current shape and resizes to it.
func (s *Surface) ResizeMaxExtent(maxExtent int, roundMode RoundMode, f ResizeFilter, filterWidth float32, params []float32) {
	if s.IsNull() {
		return
	}

	w, h, d := GetTargetExtent(s.Width(), s.Height(), s.Depth(), maxExtent, roundMode, s.m.textureType)
	s.Resize(w, h, d, f, filterWidth, params)
}

// ResizeMaxExtentDefault is ResizeMaxExtent with default filter parameters.
func (s *Surface) ResizeMaxExtentDefault(maxExtent int, roundMode RoundMode, f ResizeFilter) {
	fw, params := defaultFilterWidthAndParams(f)
	s.ResizeMaxExtent(maxExtent, roundMode, f, fw, params[:])
}

// BuildNextMipmap replaces the surface with its next mipmap level. It
// reports false for a null or already 1x1x1 surface.
//
// The box filter at its default width on a 2D image takes a 2x2 average fast
// path when that is numerically equivalent to the general filter.
func (s *Surface) BuildNextMipmap(f MipmapFilter, filterWidth float32, params []float32) bool {
	if s.IsNull() || (s.Width() == 1 && s.Height() == 1 && s.Depth() == 1) {
		return false
	}

	s.detach()

	img := s.m.image
	wm := s.m.wrapMode

	alphaChannel := -1
	if s.m.alphaMode == AlphaTransparency {
		alphaChannel = 3
	}

	if f == MipmapBox && alphaChannel < 0 && filterWidth == 0.5 && img.canFastDownSample() {
		s.m.image = img.fastDownSample()
		return true
	}

	var flt filter
	switch f {
	case MipmapBox:
		flt = boxFilter{w: filterWidth}
	case MipmapTriangle:
		flt = triangleFilter{w: filterWidth}
	default: // MipmapKaiser
		k := kaiserFilter{w: filterWidth, alpha: 4, stretch: 1}
		if len(params) >= 2 {
			k.alpha, k.stretch = params[0], params[1]
		}
		flt = k
	}

	s.m.image = img.downSample(flt, wm, alphaChannel)
	return true
}

// BuildNextMipmapDefault is BuildNextMipmap with default filter parameters.
func (s *Surface) BuildNextMipmapDefault(f MipmapFilter) bool {
	switch f {
	case MipmapBox:
		return s.BuildNextMipmap(f, 0.5, nil)
	case MipmapTriangle:
		return s.BuildNextMipmap(f, 1.0, nil)
	default:
		return s.BuildNextMipmap(f, 3.0, []float32{4.0, 1.0})
	}
}

// CanvasSize grows or shrinks the canvas to w x h x d without resampling:
// the new buffer is zero-filled and the overlapping region is copied at the
// origin. A request matching the current shape is a no-op.
func (s *Surface) CanvasSize(w, h, d int) {
	if s.IsNull() || (w == s.Width() && h == s.Height() && d == s.Depth()) {
		return
	}

	s.detach()

	img := s.m.image
	next := newFloatImage(w, h, d)

	cw := mini(w, img.width)
	ch := mini(h, img.height)
	cd := mini(d, img.depth)

	for c := 0; c < channelCount; c++ {
		for z := 0; z < cd; z++ {
			for y := 0; y < ch; y++ {
				src := img.channel(c)[img.index(0, y, z) : img.index(0, y, z)+cw]
				dst := next.channel(c)[next.index(0, y, z) : next.index(0, y, z)+cw]
				copy(dst, src)
			}
		}
	}

	s.m.image = next
	s.m.textureType = textureTypeForDepth(d)
}

func textureTypeForDepth(d int) TextureType {
	if d == 1 {
		return TextureType2D
	}
	return TextureType3D
}

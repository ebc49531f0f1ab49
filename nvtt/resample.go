package nvtt

import "math"

// wrapIndex folds an out-of-range coordinate back into [0, length) according
// to the wrap mode, equivalent to upstream FloatImage::index(x, wm).
func wrapIndex(x, length int, wm WrapMode) int {
	switch wm {
	case WrapRepeat:
		x %= length
		if x < 0 {
			x += length
		}
		return x
	case WrapMirror:
		if length == 1 {
			return 0
		}
		x = int(math.Abs(float64(x))) % (2 * length)
		if x >= length {
			x = 2*length - 1 - x
		}
		return x
	default: // WrapClamp
		if x < 0 {
			return 0
		}
		if x >= length {
			return length - 1
		}
		return x
	}
}

// alphaWeightBias keeps fully transparent pixels from zeroing the filter
// normalization term, matching the upstream 1/256 floor.
const alphaWeightBias = 1.0 / 256.0

// applyKernelX resamples one row along the X axis into dst (len k.length).
// If alphaChannel is a valid channel index and c differs from it, samples are
// weighted by alpha as a coverage term.
func applyKernelX(img *floatImage, k *polyphaseKernel, y, z, c, alphaChannel int, wm WrapMode, dst []float32) {
	plane := img.channel(c)
	var alpha []float32
	if alphaChannel >= 0 && alphaChannel != c {
		alpha = img.channel(alphaChannel)
	}

	for i := 0; i < k.length; i++ {
		center := (0.5 + float32(i)) * k.iscale
		left := int(math.Floor(float64(center - k.width)))

		var sum, norm float32
		for j := 0; j < k.windowSize; j++ {
			idx := img.index(wrapIndex(left+j, img.width, wm), y, z)
			w := k.valueAt(i, j)
			if alpha != nil {
				w *= alpha[idx] + alphaWeightBias
			}
			norm += w
			sum += w * plane[idx]
		}

		if alpha != nil {
			dst[i] = sum / norm
		} else {
			dst[i] = sum
		}
	}
}

// applyKernelY resamples one column along the Y axis into dst.
func applyKernelY(img *floatImage, k *polyphaseKernel, x, z, c, alphaChannel int, wm WrapMode, dst []float32) {
	plane := img.channel(c)
	var alpha []float32
	if alphaChannel >= 0 && alphaChannel != c {
		alpha = img.channel(alphaChannel)
	}

	for i := 0; i < k.length; i++ {
		center := (0.5 + float32(i)) * k.iscale
		left := int(math.Floor(float64(center - k.width)))

		var sum, norm float32
		for j := 0; j < k.windowSize; j++ {
			idx := img.index(x, wrapIndex(left+j, img.height, wm), z)
			w := k.valueAt(i, j)
			if alpha != nil {
				w *= alpha[idx] + alphaWeightBias
			}
			norm += w
			sum += w * plane[idx]
		}

		if alpha != nil {
			dst[i] = sum / norm
		} else {
			dst[i] = sum
		}
	}
}

// applyKernelZ resamples one depth line along the Z axis into dst.
func applyKernelZ(img *floatImage, k *polyphaseKernel, x, y, c, alphaChannel int, wm WrapMode, dst []float32) {
	plane := img.channel(c)
	var alpha []float32
	if alphaChannel >= 0 && alphaChannel != c {
		alpha = img.channel(alphaChannel)
	}

	for i := 0; i < k.length; i++ {
		center := (0.5 + float32(i)) * k.iscale
		left := int(math.Floor(float64(center - k.width)))

		var sum, norm float32
		for j := 0; j < k.windowSize; j++ {
			idx := img.index(x, y, wrapIndex(left+j, img.depth, wm))
			w := k.valueAt(i, j)
			if alpha != nil {
				w *= alpha[idx] + alphaWeightBias
			}
			norm += w
			sum += w * plane[idx]
		}

		if alpha != nil {
			dst[i] = sum / norm
		} else {
			dst[i] = sum
		}
	}
}

// resize resamples the image to w x h x d with the given filter, equivalent
// to upstream FloatImage::resize. alphaChannel < 0 filters all four channels
// independently; alphaChannel >= 0 treats that channel as a coverage weight
// for the remaining channels (the premultiplied "transparency" contract).
func (img *floatImage) resize(f filter, w, h, d int, wm WrapMode, alphaChannel int) *floatImage {
	const samples = 32

	src := img

	// Horizontal pass.
	{
		dst := newFloatImage(w, src.height, src.depth)
		k := newPolyphaseKernel(f, src.width, w, samples)
		row := make([]float32, w)
		for c := 0; c < channelCount; c++ {
			for z := 0; z < src.depth; z++ {
				for y := 0; y < src.height; y++ {
					applyKernelX(src, k, y, z, c, alphaChannel, wm, row)
					copy(dst.channel(c)[dst.index(0, y, z):dst.index(0, y, z)+w], row)
				}
			}
		}
		src = dst
	}

	// Vertical pass.
	{
		dst := newFloatImage(w, h, src.depth)
		k := newPolyphaseKernel(f, src.height, h, samples)
		col := make([]float32, h)
		for c := 0; c < channelCount; c++ {
			for z := 0; z < src.depth; z++ {
				for x := 0; x < w; x++ {
					applyKernelY(src, k, x, z, c, alphaChannel, wm, col)
					for y := 0; y < h; y++ {
						dst.setPixel(c, x, y, z, col[y])
					}
				}
			}
		}
		src = dst
	}

	// Depth pass, only when the depth actually changes.
	if src.depth != d {
		dst := newFloatImage(w, h, d)
		k := newPolyphaseKernel(f, src.depth, d, samples)
		line := make([]float32, d)
		for c := 0; c < channelCount; c++ {
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					applyKernelZ(src, k, x, y, c, alphaChannel, wm, line)
					for z := 0; z < d; z++ {
						dst.setPixel(c, x, y, z, line[z])
					}
				}
			}
		}
		src = dst
	}

	return src
}

// downSample builds the next mipmap level (each extent halved, floor, min 1).
func (img *floatImage) downSample(f filter, wm WrapMode, alphaChannel int) *floatImage {
	w := maxi(1, img.width/2)
	h := maxi(1, img.height/2)
	d := maxi(1, img.depth/2)
	return img.resize(f, w, h, d, wm, alphaChannel)
}

// fastDownSample is the 2x2 box-average fast path for 2D images with
// power-of-two-friendly (even or 1) extents. It is numerically equivalent to
// the general box filter at width 0.5 for those extents.
func (img *floatImage) fastDownSample() *floatImage {
	w := maxi(1, img.width/2)
	h := maxi(1, img.height/2)
	dst := newFloatImage(w, h, 1)

	for c := 0; c < channelCount; c++ {
		sp := img.channel(c)
		dp := dst.channel(c)

		switch {
		case img.width == 1:
			for y := 0; y < h; y++ {
				dp[y] = 0.5 * (sp[2*y] + sp[2*y+1])
			}
		case img.height == 1:
			for x := 0; x < w; x++ {
				dp[x] = 0.5 * (sp[2*x] + sp[2*x+1])
			}
		default:
			for y := 0; y < h; y++ {
				srow0 := sp[2*y*img.width:]
				srow1 := sp[(2*y+1)*img.width:]
				drow := dp[y*w:]
				for x := 0; x < w; x++ {
					drow[x] = 0.25 * (srow0[2*x] + srow0[2*x+1] + srow1[2*x] + srow1[2*x+1])
				}
			}
		}
	}

	return dst
}

// canFastDownSample reports whether fastDownSample matches the general box
// filter for this image shape.
func (img *floatImage) canFastDownSample() bool {
	if img.depth != 1 {
		return false
	}
	evenOrOne := func(v int) bool { return v == 1 || v%2 == 0 }
	return evenOrOne(img.width) && evenOrOne(img.height)
}

// convolve applies a centered 2D kernel to one channel of every Z slice.
func (img *floatImage) convolve(k *kernel2, channel int, wm WrapMode) {
	w, h, d := img.width, img.height, img.depth
	half := k.windowSize / 2

	src := img.clone().channel(channel)
	dst := img.channel(channel)

	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				var sum float32
				for j := 0; j < k.windowSize; j++ {
					sy := wrapIndex(y+j-half, h, wm)
					for i := 0; i < k.windowSize; i++ {
						sx := wrapIndex(x+i-half, w, wm)
						sum += k.valueAt(i, j) * src[(z*h+sy)*w+sx]
					}
				}
				dst[img.index(x, y, z)] = sum
			}
		}
	}
}

func maxi(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func mini(a, b int) int {
	if a < b {
		return a
	}
	return b
}

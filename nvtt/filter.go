package nvtt

import "math"

// filter is a separable reconstruction filter, equivalent to upstream
// nv::Filter. Evaluation is symmetric around zero with compact support
// [-width, width].
type filter interface {
	width() float32
	evaluate(x float32) float32
}

// sampleBox integrates f over a pixel footprint by averaging point samples,
// equivalent to upstream Filter::sampleBox.
func sampleBox(f filter, x, scale float32, samples int) float32 {
	sum := float32(0)
	isamples := 1 / float32(samples)

	for s := 0; s < samples; s++ {
		p := (x + (float32(s)+0.5)*isamples) * scale
		sum += f.evaluate(p)
	}

	return sum * isamples
}

// boxFilter is the box reconstruction filter (default width 0.5).
type boxFilter struct{ w float32 }

func (f boxFilter) width() float32 { return f.w }

func (f boxFilter) evaluate(x float32) float32 {
	if x < -f.w || x > f.w {
		return 0
	}
	return 1
}

// triangleFilter is the tent filter (default width 1.0).
type triangleFilter struct{ w float32 }

func (f triangleFilter) width() float32 { return f.w }

func (f triangleFilter) evaluate(x float32) float32 {
	x = float32(math.Abs(float64(x)))
	if x < f.w {
		return f.w - x
	}
	return 0
}

// kaiserFilter is a Kaiser-windowed sinc (default width 3.0, alpha 4.0,
// stretch 1.0).
type kaiserFilter struct {
	w       float32
	alpha   float32
	stretch float32
}

func (f kaiserFilter) width() float32 { return f.w }

func (f kaiserFilter) evaluate(x float32) float32 {
	sincValue := sincf(math.Pi * float64(x) * float64(f.stretch))
	t := float64(x) / float64(f.w)
	if t2 := 1 - t*t; t2 > 0 {
		return sincValue * float32(bessel0(float64(f.alpha)*math.Sqrt(t2))/bessel0(float64(f.alpha)))
	}
	return 0
}

// mitchellFilter is the Mitchell-Netravali cubic (fixed width 2.0, defaults
// B = C = 1/3).
type mitchellFilter struct {
	p0, p2, p3 float32
	q0, q1     float32
	q2, q3     float32
}

func newMitchellFilter(b, c float32) mitchellFilter {
	return mitchellFilter{
		p0: (6 - 2*b) / 6,
		p2: (-18 + 12*b + 6*c) / 6,
		p3: (12 - 9*b - 6*c) / 6,
		q0: (8*b + 24*c) / 6,
		q1: (-12*b - 48*c) / 6,
		q2: (6*b + 30*c) / 6,
		q3: (-b - 6*c) / 6,
	}
}

func (f mitchellFilter) width() float32 { return 2 }

func (f mitchellFilter) evaluate(x float32) float32 {
	x = float32(math.Abs(float64(x)))
	if x < 1 {
		return f.p0 + x*x*(f.p2+x*f.p3)
	}
	if x < 2 {
		return f.q0 + x*(f.q1+x*(f.q2+x*f.q3))
	}
	return 0
}

func sincf(x float64) float32 {
	if math.Abs(x) < 1e-4 {
		// Taylor series around zero.
		return float32(1 + x*x*(-1.0/6.0+x*x*1.0/120.0))
	}
	return float32(math.Sin(x) / x)
}

// bessel0 is the zeroth-order modified Bessel function of the first kind,
// used by the Kaiser window.
func bessel0(x float64) float64 {
	const epsilon = 1e-6

	sum := 1.0
	term := 1.0
	xx := x * 0.5
	for k := 1; ; k++ {
		term *= (xx / float64(k)) * (xx / float64(k))
		sum += term
		if term < epsilon*sum {
			break
		}
	}
	return sum
}

// polyphaseKernel holds resampling weights for one axis, equivalent to
// upstream nv::PolyphaseKernel. Row i holds the normalized window of weights
// for destination sample i.
type polyphaseKernel struct {
	length     int
	windowSize int
	width      float32
	iscale     float32
	data       []float32
}

func newPolyphaseKernel(f filter, srcLength, dstLength, samples int) *polyphaseKernel {
	scale := float32(dstLength) / float32(srcLength)
	iscale := 1 / scale

	w := f.width()
	if scale < 1 {
		// Downsampling: stretch the filter and increase sampling density.
		samples = int(float32(samples) * iscale)
		w *= iscale
	}

	k := &polyphaseKernel{
		length:     dstLength,
		windowSize: int(math.Ceil(float64(w*2))) + 1,
		width:      w,
		iscale:     iscale,
	}
	k.data = make([]float32, k.length*k.windowSize)

	for i := 0; i < k.length; i++ {
		center := (0.5 + float32(i)) * iscale

		left := int(math.Floor(float64(center - w)))
		total := float32(0)

		for j := 0; j < k.windowSize; j++ {
			sample := sampleBox(f, float32(left+j)-center, scale, samples)
			k.data[i*k.windowSize+j] = sample
			total += sample
		}

		// Normalize weights.
		inv := 1 / total
		for j := 0; j < k.windowSize; j++ {
			k.data[i*k.windowSize+j] *= inv
		}
	}

	return k
}

func (k *polyphaseKernel) valueAt(column, x int) float32 {
	return k.data[column*k.windowSize+x]
}

// kernel2 is a square 2D convolution kernel, equivalent to upstream
// nv::Kernel2.
type kernel2 struct {
	windowSize int
	data       []float32
}

func newKernel2(windowSize int, data []float32) *kernel2 {
	k := &kernel2{windowSize: windowSize, data: make([]float32, windowSize*windowSize)}
	copy(k.data, data)
	return k
}

func (k *kernel2) valueAt(x, y int) float32 {
	return k.data[y*k.windowSize+x]
}

func filterForResize(f ResizeFilter, filterWidth float32, params []float32) filter {
	switch f {
	case ResizeBox:
		return boxFilter{w: filterWidth}
	case ResizeTriangle:
		return triangleFilter{w: filterWidth}
	case ResizeKaiser:
		k := kaiserFilter{w: filterWidth, alpha: 4, stretch: 1}
		if len(params) >= 2 {
			k.alpha, k.stretch = params[0], params[1]
		}
		return k
	default:
		b, c := float32(1.0/3.0), float32(1.0/3.0)
		if len(params) >= 2 {
			b, c = params[0], params[1]
		}
		return newMitchellFilter(b, c)
	}
}

// defaultFilterWidthAndParams returns the upstream default width and shape
// parameters for each resize filter.
func defaultFilterWidthAndParams(f ResizeFilter) (float32, [2]float32) {
	switch f {
	case ResizeBox:
		return 0.5, [2]float32{}
	case ResizeTriangle:
		return 1.0, [2]float32{}
	case ResizeKaiser:
		return 3.0, [2]float32{4.0, 1.0}
	default:
		return 2.0, [2]float32{1.0 / 3.0, 1.0 / 3.0}
	}
}

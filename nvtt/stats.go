package nvtt

import "math"

// Histogram buckets one channel linearly over [rangeMin, rangeMax] into the
// caller-provided bins, clamping out-of-range values to the first and last
// bin. Bins accumulate: callers must pre-zero them for a fresh histogram.
func (s Surface) Histogram(channel int, rangeMin, rangeMax float32, bins []int) {
	if s.IsNull() || len(bins) == 0 {
		return
	}

	binCount := len(bins)
	scale := float32(binCount) / (rangeMax - rangeMin)
	bias := -scale * rangeMin

	for _, v := range s.m.image.channel(channel) {
		idx := int(math.Floor(float64(v*scale + bias)))
		if idx < 0 {
			idx = 0
		}
		if idx > binCount-1 {
			idx = binCount - 1
		}
		bins[idx]++
	}
}

// Range returns the minimum and maximum value of one channel. A null
// surface reports the empty range (MaxFloat32, -MaxFloat32).
func (s Surface) Range(channel int) (rangeMin, rangeMax float32) {
	rangeMin = math.MaxFloat32
	rangeMax = -math.MaxFloat32

	if s.IsNull() {
		return
	}

	for _, v := range s.m.image.channel(channel) {
		if v < rangeMin {
			rangeMin = v
		}
		if v > rangeMax {
			rangeMax = v
		}
	}
	return
}

// Average returns the gamma-weighted mean of one channel. With a valid
// alphaChannel (>= 0), samples are weighted by alpha and the mean taken over
// the alpha sum; an all-zero alpha channel yields 0 rather than dividing by
// zero.
func (s Surface) Average(channel, alphaChannel int, gamma float32) float32 {
	if s.IsNull() {
		return 0
	}

	c := s.m.image.channel(channel)

	var sum, denom float64
	if alphaChannel < 0 {
		for _, v := range c {
			sum += math.Pow(float64(v), float64(gamma))
		}
		denom = float64(len(c))
	} else {
		a := s.m.image.channel(alphaChannel)
		for i, v := range c {
			sum += math.Pow(float64(v), float64(gamma)) * float64(a[i])
			denom += float64(a[i])
		}
	}

	if denom == 0 {
		return 0
	}
	return float32(sum / denom)
}

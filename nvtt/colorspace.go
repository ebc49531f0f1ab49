package nvtt

import "math"

// toSrgb encodes one linear value with the sRGB transfer curve. NaN maps to
// zero and the output is confined to [0, 1].
func toSrgb(f float32) float32 {
	switch {
	case math.IsNaN(float64(f)):
		return 0
	case f <= 0:
		return 0
	case f <= 0.0031308:
		return 12.92 * f
	case f <= 1:
		return float32(math.Pow(float64(f), 0.41666))*1.055 - 0.055
	default:
		return 1
	}
}

// fromSrgb decodes one sRGB value back to linear.
func fromSrgb(f float32) float32 {
	switch {
	case f < 0:
		return 0
	case f < 0.04045:
		return f / 12.92
	case f <= 1:
		return float32(math.Pow(float64(f+0.055)/1.055, 2.4))
	default:
		return 1
	}
}

// toXenonSrgb is the Xbox 360 piecewise-linear approximation of the sRGB
// curve. It has no inverse here; the console decodes it in hardware.
func toXenonSrgb(f float32) float32 {
	switch {
	case f < 0:
		return 0
	case f < 1.0/16.0:
		return 4.0 * f
	case f < 1.0/8.0:
		return 0.25 + 2.0*(f-0.0625)
	case f < 0.5:
		return 0.375 + (f - 0.125)
	case f < 1:
		return 0.75 + 0.5*(f-0.5)
	default:
		return 1
	}
}

// ToSrgb encodes the color channels with the sRGB transfer curve.
func (s *Surface) ToSrgb() {
	s.applyRGB(toSrgb)
}

// ToLinearFromSrgb decodes the color channels from sRGB to linear.
func (s *Surface) ToLinearFromSrgb() {
	s.applyRGB(fromSrgb)
}

// ToXenonSrgb encodes the color channels with the Xenon sRGB approximation.
func (s *Surface) ToXenonSrgb() {
	s.applyRGB(toXenonSrgb)
}

func (s *Surface) applyRGB(f func(float32) float32) {
	if s.IsNull() {
		return
	}
	s.detach()

	img := s.m.image
	for c := 0; c < 3; c++ {
		plane := img.channel(c)
		for i, v := range plane {
			plane[i] = f(v)
		}
	}
}

// ToLinear applies a power-law gamma decode to the color channels.
func (s *Surface) ToLinear(gamma float32) {
	if s.IsNull() || gamma == 1 {
		return
	}
	s.detach()
	s.m.image.toLinear(0, 3, gamma)
}

// ToGamma applies a power-law gamma encode to the color channels.
func (s *Surface) ToGamma(gamma float32) {
	if s.IsNull() || gamma == 1 {
		return
	}
	s.detach()
	s.m.image.toGamma(0, 3, gamma)
}

// ToLinearChannel gamma-decodes a single channel.
func (s *Surface) ToLinearChannel(channel int, gamma float32) {
	if s.IsNull() || gamma == 1 {
		return
	}
	s.detach()
	s.m.image.toLinear(channel, 1, gamma)
}

// ToGammaChannel gamma-encodes a single channel.
func (s *Surface) ToGammaChannel(channel int, gamma float32) {
	if s.IsNull() || gamma == 1 {
		return
	}
	s.detach()
	s.m.image.toGamma(channel, 1, gamma)
}

// ToRGBM encodes RGB in [0, range] as a shared-multiplier format: RGB is
// divided by M = max(R, G, B, threshold) and M is stored in alpha, remapped
// so threshold encodes as 0. The threshold is clamped to [1e-6, 1], which
// also keeps M away from zero.
func (s *Surface) ToRGBM(rangeMax, threshold float32) {
	if s.IsNull() {
		return
	}
	s.detach()

	threshold = clampf(threshold, 1e-6, 1)
	irange := 1 / rangeMax

	img := s.m.image
	r, g, b, a := img.channel(0), img.channel(1), img.channel(2), img.channel(3)
	for i := range r {
		R := clampf(r[i]*irange, 0, 1)
		G := clampf(g[i]*irange, 0, 1)
		B := clampf(b[i]*irange, 0, 1)

		M := maxf(maxf(R, G), maxf(B, threshold))

		r[i] = R / M
		g[i] = G / M
		b[i] = B / M
		a[i] = (M - threshold) / (1 - threshold)
	}
}

// FromRGBM decodes the shared-multiplier encoding produced by ToRGBM with
// threshold 0: RGB is scaled by alpha*range and alpha resets to one.
func (s *Surface) FromRGBM(rangeMax float32) {
	if s.IsNull() {
		return
	}
	s.detach()

	img := s.m.image
	r, g, b, a := img.channel(0), img.channel(1), img.channel(2), img.channel(3)
	for i := range r {
		M := a[i] * rangeMax

		r[i] *= M
		g[i] *= M
		b[i] *= M
		a[i] = 1
	}
}

// ToRGBE encodes HDR RGB with a shared exponent following the OpenGL
// EXT_texture_shared_exponent convention: for RGB9E5 use (9, 5), for Ward's
// RGBE use (8, 8). Channels store the normalized mantissas, alpha the
// normalized biased exponent.
//
// Components are first clamped (mapping NaN to zero) to the largest
// representable value; the shared exponent is floor(log2(max)) plus bias,
// then refined so the rounded maximum mantissa never overflows 2^N (the
// carry bumps the exponent instead).
func (s *Surface) ToRGBE(mantissaBits, exponentBits int) {
	if s.IsNull() {
		return
	}
	s.detach()

	exponentMax := (1 << exponentBits) - 1
	exponentBias := (1 << (exponentBits - 1)) - 1

	// Largest representable value: (2^N-1)/2^N * 2^(Emax-B).
	maxValue := float32(exponentMax) / float32(exponentMax+1) * float32(math.Exp2(float64(exponentMax-exponentBias)))

	mantissaMax := float32(int(1)<<mantissaBits - 1)

	img := s.m.image
	r, g, b, a := img.channel(0), img.channel(1), img.channel(2), img.channel(3)
	for i := range r {
		R := clampNaN(r[i], 0, maxValue)
		G := clampNaN(g[i], 0, maxValue)
		B := clampNaN(b[i], 0, maxValue)

		M := maxf(R, maxf(G, B))

		// Preliminary shared exponent.
		E := maxi(-exponentBias-1, floorLog2(M)) + 1 + exponentBias

		denom := math.Exp2(float64(E - exponentBias - mantissaBits))

		// Refine: carry into the exponent if the rounded mantissa overflows.
		if iround(float32(float64(M)/denom)) == 1<<mantissaBits {
			denom *= 2
			E++
		}

		R = float32(math.Floor(float64(R)/denom + 0.5))
		G = float32(math.Floor(float64(G)/denom + 0.5))
		B = float32(math.Floor(float64(B)/denom + 0.5))

		// Store as normalized floats.
		r[i] = R / mantissaMax
		g[i] = G / mantissaMax
		b[i] = B / mantissaMax
		a[i] = float32(E) / float32(exponentMax)
	}
}

// FromRGBE decodes the shared-exponent encoding produced by ToRGBE:
// component = mantissa * 2^(E - bias - N).
func (s *Surface) FromRGBE(mantissaBits, exponentBits int) {
	if s.IsNull() {
		return
	}
	s.detach()

	exponentBias := (1 << (exponentBits - 1)) - 1

	mantissaMax := float32(int(1)<<mantissaBits - 1)
	exponentMax := float32(int(1)<<exponentBits - 1)

	img := s.m.image
	r, g, b, a := img.channel(0), img.channel(1), img.channel(2), img.channel(3)
	for i := range r {
		R := iround(r[i] * mantissaMax)
		G := iround(g[i] * mantissaMax)
		B := iround(b[i] * mantissaMax)
		E := iround(a[i] * exponentMax)

		scale := float32(math.Exp2(float64(E - exponentBias - mantissaBits)))

		r[i] = float32(R) * scale
		g[i] = float32(G) * scale
		b[i] = float32(B) * scale
		a[i] = 1
	}
}

// ToYCoCg converts RGB to YCoCg. Y lands in [0, 1] and Co/Cg in [-1, 1];
// the channels are stored as (Co, Cg, 1, Y), with the alpha slot repurposed
// to carry luma.
func (s *Surface) ToYCoCg() {
	if s.IsNull() {
		return
	}
	s.detach()

	img := s.m.image
	r, g, b, a := img.channel(0), img.channel(1), img.channel(2), img.channel(3)
	for i := range r {
		R, G, B := r[i], g[i], b[i]

		Y := (2*G + R + B) * 0.25
		Co := R - B
		Cg := (2*G - R - B) * 0.5

		r[i] = Co
		g[i] = Cg
		b[i] = 1
		a[i] = Y
	}
}

// BlockScaleCoCg divides Co and Cg by a per-4x4-block scale: the smallest
// bits-bit ceil-quantized value bounding max(|Co|, |Cg|) over the block. The
// scale is stored in channel 2. Only 2D surfaces are affected.
func (s *Surface) BlockScaleCoCg(bits int) {
	if s.IsNull() || s.Depth() != 1 {
		return
	}
	s.detach()

	img := s.m.image
	w, h := img.width, img.height
	bw := maxi(1, w/4)
	bh := maxi(1, h/4)

	for bj := 0; bj < bh; bj++ {
		for bi := 0; bi < bw; bi++ {
			// Per-block bound over |Co| and |Cg|.
			m := float32(1.0 / 255.0)
			for j := 0; j < 4; j++ {
				y := bj*4 + j
				if y >= h {
					continue
				}
				for i := 0; i < 4; i++ {
					x := bi*4 + i
					if x >= w {
						continue
					}
					m = maxf(m, float32(math.Abs(float64(img.pixel(0, x, y, 0)))))
					m = maxf(m, float32(math.Abs(float64(img.pixel(1, x, y, 0)))))
				}
			}

			scale := quantizeCeil(m, bits)

			for j := 0; j < 4; j++ {
				y := bj*4 + j
				if y >= h {
					continue
				}
				for i := 0; i < 4; i++ {
					x := bi*4 + i
					if x >= w {
						continue
					}
					img.setPixel(0, x, y, 0, img.pixel(0, x, y, 0)/scale)
					img.setPixel(1, x, y, 0, img.pixel(1, x, y, 0)/scale)
					img.setPixel(2, x, y, 0, scale)
				}
			}
		}
	}
}

// FromYCoCg converts (Co, Cg, scale, Y) back to RGB, applying half the scale
// stored by BlockScaleCoCg (channel 2 holds 1 when unscaled, decoded as the
// 0.5 factor cancels the [-1, 1] expansion).
func (s *Surface) FromYCoCg() {
	if s.IsNull() {
		return
	}
	s.detach()

	img := s.m.image
	r, g, b, a := img.channel(0), img.channel(1), img.channel(2), img.channel(3)
	for i := range r {
		scale := b[i] * 0.5
		Co := r[i] * scale
		Cg := g[i] * scale
		Y := a[i]

		r[i] = Y + Co - Cg
		g[i] = Y + Cg
		b[i] = Y - Co - Cg
		a[i] = 1
	}
}

// ToLUVW normalizes clamped RGB to a unit direction and stores its length
// (over sqrt(3)) in alpha. The length has a 1e-6 floor to avoid dividing by
// zero on black pixels.
func (s *Surface) ToLUVW(rangeMax float32) {
	if s.IsNull() {
		return
	}
	s.detach()

	irange := 1 / rangeMax

	img := s.m.image
	r, g, b, a := img.channel(0), img.channel(1), img.channel(2), img.channel(3)
	for i := range r {
		R := clampf(r[i]*irange, 0, 1)
		G := clampf(g[i]*irange, 0, 1)
		B := clampf(b[i]*irange, 0, 1)

		L := maxf(float32(math.Sqrt(float64(R*R+G*G+B*B))), 1e-6)

		r[i] = R / L
		g[i] = G / L
		b[i] = B / L
		a[i] = L / float32(math.Sqrt(3))
	}
}

// FromLUVW decodes the direction-plus-length encoding. Decompression is the
// same as FromRGBM with the range scaled by sqrt(3).
func (s *Surface) FromLUVW(rangeMax float32) {
	s.FromRGBM(rangeMax * float32(math.Sqrt(3)))
}

// ToLogScale replaces one channel with its base-b logarithm.
func (s *Surface) ToLogScale(channel int, base float32) {
	if s.IsNull() {
		return
	}
	s.detach()

	scale := 1 / float32(math.Log2(float64(base)))
	plane := s.m.image.channel(channel)
	for i, v := range plane {
		plane[i] = float32(math.Log2(float64(v))) * scale
	}
}

// FromLogScale inverts ToLogScale.
func (s *Surface) FromLogScale(channel int, base float32) {
	if s.IsNull() {
		return
	}
	s.detach()

	scale := float32(math.Log2(float64(base)))
	plane := s.m.image.channel(channel)
	for i, v := range plane {
		plane[i] = float32(math.Exp2(float64(v * scale)))
	}
}

// ToneMap applies a tone mapping operator to the color channels. The input
// is assumed to already be scaled by exposure.
func (s *Surface) ToneMap(tm ToneMapper) {
	if s.IsNull() {
		return
	}
	s.detach()

	img := s.m.image
	r, g, b := img.channel(0), img.channel(1), img.channel(2)

	switch tm {
	case ToneMapperLinear, ToneMapperLightmap:
		// Clamp preserving the hue.
		for i := range r {
			m := maxf(r[i], maxf(g[i], b[i]))
			if m > 1 {
				r[i] /= m
				g[i] /= m
				b[i] /= m
			}
		}
	case ToneMapperReinhard:
		for i := range r {
			r[i] /= r[i] + 1
			g[i] /= g[i] + 1
			b[i] /= b[i] + 1
		}
	case ToneMapperHalo:
		for i := range r {
			r[i] = 1 - float32(math.Exp2(float64(-r[i])))
			g[i] = 1 - float32(math.Exp2(float64(-g[i])))
			b[i] = 1 - float32(math.Exp2(float64(-b[i])))
		}
	}
}

// quantizeCeil returns the smallest bits-bit quantized value in [0, 1] that
// is >= f.
func quantizeCeil(f float32, bits int) float32 {
	scale := float32(int(1)<<bits - 1)
	q := float32(math.Ceil(float64(f*scale))) / scale
	// Guard against the division rounding below f.
	for q < f {
		q = float32(math.Nextafter32(q, 2))
	}
	return q
}

// clampNaN clamps v to [low, high], mapping NaN to low.
func clampNaN(v, low, high float32) float32 {
	if !(v > low) { // catches NaN
		return low
	}
	if v > high {
		return high
	}
	return v
}

// floorLog2 returns floor(log2(v)), or math.MinInt32 shifted guard for
// non-positive values so the caller's bias floor wins.
func floorLog2(v float32) int {
	if v <= 0 {
		return -(1 << 30)
	}
	_, e := math.Frexp(float64(v))
	return e - 1
}

// iround rounds to the nearest integer, halves away from zero upward.
func iround(f float32) int {
	return int(math.Floor(float64(f) + 0.5))
}

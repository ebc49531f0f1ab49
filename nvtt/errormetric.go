package nvtt

import "math"

// RMSError returns the root-mean-square color error between two surfaces of
// the same shape. When the reference's alpha mode is AlphaTransparency the
// per-pixel error is weighted by the reference alpha.
func RMSError(reference, image Surface) (float32, error) {
	ref, img := reference.m.image, image.m.image
	if !sameLayout(ref, img) {
		return 0, ErrShapeMismatch
	}

	alphaWeight := reference.AlphaMode() == AlphaTransparency

	r0, g0, b0 := img.channel(0), img.channel(1), img.channel(2)
	r1, g1, b1, a1 := ref.channel(0), ref.channel(1), ref.channel(2), ref.channel(3)

	var mse float64
	for i := range r0 {
		dr := float64(r0[i] - r1[i])
		dg := float64(g0[i] - g1[i])
		db := float64(b0[i] - b1[i])

		e := dr*dr + dg*dg + db*db
		if alphaWeight {
			e *= float64(a1[i])
		}
		mse += e
	}

	return float32(math.Sqrt(mse / float64(3*len(r0)))), nil
}

// RMSAlphaError returns the root-mean-square alpha error between two
// surfaces of the same shape.
func RMSAlphaError(reference, image Surface) (float32, error) {
	ref, img := reference.m.image, image.m.image
	if !sameLayout(ref, img) {
		return 0, ErrShapeMismatch
	}

	a0, a1 := img.channel(3), ref.channel(3)

	var mse float64
	for i := range a0 {
		da := float64(a0[i] - a1[i])
		mse += da * da
	}

	return float32(math.Sqrt(mse / float64(len(a0)))), nil
}

// CIELabError returns the root-mean-square CIE Lab distance between two
// surfaces of the same shape. Inputs are assumed linear RGB.
func CIELabError(reference, image Surface) (float32, error) {
	ref, img := reference.m.image, image.m.image
	if !sameLayout(ref, img) {
		return 0, ErrShapeMismatch
	}

	r0, g0, b0 := img.channel(0), img.channel(1), img.channel(2)
	r1, g1, b1 := ref.channel(0), ref.channel(1), ref.channel(2)

	var mse float64
	for i := range r0 {
		l0, la0, lb0 := rgbToCIELab(r0[i], g0[i], b0[i])
		l1, la1, lb1 := rgbToCIELab(r1[i], g1[i], b1[i])

		dl := float64(l0 - l1)
		da := float64(la0 - la1)
		db := float64(lb0 - lb1)
		mse += dl*dl + da*da + db*db
	}

	return float32(math.Sqrt(mse / float64(len(r0)))), nil
}

// AngularError returns the root-mean-square angle, in radians, between the
// packed normals of two surfaces of the same shape.
func AngularError(reference, image Surface) (float32, error) {
	ref, img := reference.m.image, image.m.image
	if !sameLayout(ref, img) {
		return 0, ErrShapeMismatch
	}

	r0, g0, b0 := img.channel(0), img.channel(1), img.channel(2)
	r1, g1, b1 := ref.channel(0), ref.channel(1), ref.channel(2)

	var mse float64
	for i := range r0 {
		// Expand packed [0, 1] storage to [-1, 1].
		x0, y0, z0 := normalizeSafe(2*r0[i]-1, 2*g0[i]-1, 2*b0[i]-1)
		x1, y1, z1 := normalizeSafe(2*r1[i]-1, 2*g1[i]-1, 2*b1[i]-1)

		dot := clampf(x0*x1+y0*y1+z0*z1, -1, 1)
		angle := math.Acos(float64(dot))
		mse += angle * angle
	}

	return float32(math.Sqrt(mse / float64(len(r0)))), nil
}

// Diff returns a new surface holding the scaled channel-wise delta between
// image and reference. When the reference's alpha mode is AlphaTransparency
// the color delta is weighted by the reference alpha; the reference alpha is
// carried through unchanged either way. A shape mismatch yields a null
// surface.
func Diff(reference, image Surface, scale float32) Surface {
	ref, img := reference.m.image, image.m.image
	if !sameLayout(ref, img) {
		return NewSurface()
	}

	out := NewSurface()
	out.m.image = newFloatImage(img.width, img.height, img.depth)
	out.m.textureType = textureTypeForDepth(img.depth)

	alphaWeight := reference.AlphaMode() == AlphaTransparency

	r0, g0, b0 := img.channel(0), img.channel(1), img.channel(2)
	r1, g1, b1, a1 := ref.channel(0), ref.channel(1), ref.channel(2), ref.channel(3)
	dr, dg, db, da := out.m.image.channel(0), out.m.image.channel(1), out.m.image.channel(2), out.m.image.channel(3)

	for i := range r0 {
		xr := r0[i] - r1[i]
		xg := g0[i] - g1[i]
		xb := b0[i] - b1[i]

		if alphaWeight {
			xr *= a1[i]
			xg *= a1[i]
			xb *= a1[i]
		}

		dr[i] = xr * scale
		dg[i] = xg * scale
		db[i] = xb * scale
		da[i] = a1[i]
	}

	return out
}

// rgbToCIELab converts linear RGB to CIE Lab under the D65 white point.
func rgbToCIELab(r, g, b float32) (float32, float32, float32) {
	// Linear sRGB primaries to XYZ.
	x := 0.412453*float64(r) + 0.357580*float64(g) + 0.180423*float64(b)
	y := 0.212671*float64(r) + 0.715160*float64(g) + 0.072169*float64(b)
	z := 0.019334*float64(r) + 0.119193*float64(g) + 0.950227*float64(b)

	// D65 reference white.
	fx := labF(x / 0.950456)
	fy := labF(y)
	fz := labF(z / 1.088754)

	L := 116*fy - 16
	A := 500 * (fx - fy)
	B := 200 * (fy - fz)
	return float32(L), float32(A), float32(B)
}

func labF(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta*delta*delta {
		return math.Cbrt(t)
	}
	return t/(3*delta*delta) + 4.0/29.0
}

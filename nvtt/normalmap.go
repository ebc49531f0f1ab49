package nvtt

import "math"

// PackNormals maps the X, Y, Z channels from [-1, 1] to [0, 1].
func (s *Surface) PackNormals() {
	if s.IsNull() {
		return
	}
	s.detach()
	s.m.image.packNormals()
}

// ExpandNormals maps the X, Y, Z channels from [0, 1] to [-1, 1].
func (s *Surface) ExpandNormals() {
	if s.IsNull() {
		return
	}
	s.detach()
	s.m.image.expandNormals()
}

// newtonIterationCap bounds the quartic solve on degenerate inputs. The
// convergence threshold is what terminates it in practice.
const newtonIterationCap = 32

// TransformNormals projects unit normals to a 2-parameter encoding. Normals
// are expanded from packed [0, 1] storage, normalized, projected with Z set
// to zero, and repacked.
func (s *Surface) TransformNormals(xform NormalTransform) {
	if s.IsNull() {
		return
	}
	s.detach()

	img := s.m.image
	img.expandNormals()

	xs, ys, zs := img.channel(0), img.channel(1), img.channel(2)
	for i := range xs {
		x, y, z := normalizeSafe(xs[i], ys[i], zs[i])

		switch xform {
		case NormalOrthographic:
			z = 0

		case NormalStereographic:
			x = x / (1 + z)
			y = y / (1 + z)
			z = 0

		case NormalParaboloid:
			t := paraboloidRoot(x, y, z)
			x *= t
			y *= t
			z = 0

		case NormalQuartic:
			// Newton's method on f(t) = 1 - zt - (x^2+y^2)t^2 + x^2y^2t^4,
			// seeded with the paraboloid root.
			t := paraboloidRoot(x, y, z)
			x2, y2 := x*x, y*y

			residual := func(t float32) float32 {
				return float32(math.Abs(float64(z*t - (1-x2*t*t)*(1-y2*t*t))))
			}

			for iter := 0; iter < newtonIterationCap && residual(t) > 1e-4; iter++ {
				ft := 1 - z*t - (x2+y2)*t*t + x2*y2*t*t*t*t
				dft := -z - 2*(x2+y2)*t + 4*x2*y2*t*t*t
				t -= ft / dft
			}

			x *= t
			y *= t
			z = 0
		}

		xs[i], ys[i], zs[i] = x, y, z
	}

	img.packNormals()
}

// ReconstructNormals inverts TransformNormals in closed form for each
// parameterization and renormalizes where the inverse is not exactly unit
// length.
func (s *Surface) ReconstructNormals(xform NormalTransform) {
	if s.IsNull() {
		return
	}
	s.detach()

	img := s.m.image
	img.expandNormals()

	xs, ys, zs := img.channel(0), img.channel(1), img.channel(2)
	for i := range xs {
		x, y, z := xs[i], ys[i], zs[i]

		switch xform {
		case NormalOrthographic:
			z = float32(math.Sqrt(float64(1 - clampf(x*x+y*y, 0, 1))))

		case NormalStereographic:
			denom := 2 / (1 + clampf(x*x+y*y, 0, 1))
			x *= denom
			y *= denom
			z = denom - 1

		case NormalParaboloid:
			z = 1 - clampf(x*x+y*y, 0, 1)
			x, y, z = normalizeSafe(x, y, z)

		case NormalQuartic:
			z = clampf((1-x*x)*(1-y*y), 0, 1)
			x, y, z = normalizeSafe(x, y, z)
		}

		xs[i], ys[i], zs[i] = x, y, z
	}

	img.packNormals()
}

// ToCleanNormalMap replaces the blue channel with x^2 + y^2, preserving the
// projected X and Y. See the CLEAN mapping of Olano et al.
func (s *Surface) ToCleanNormalMap() {
	if s.IsNull() {
		return
	}
	s.detach()

	img := s.m.image
	img.expandNormals()

	xs, ys, zs := img.channel(0), img.channel(1), img.channel(2)
	for i := range xs {
		zs[i] = xs[i]*xs[i] + ys[i]*ys[i]
	}

	img.packNormals()
}

// NormalizeNormalMap renormalizes every packed normal. It is a no-op unless
// the surface is flagged as a normal map.
func (s *Surface) NormalizeNormalMap() {
	if s.IsNull() || !s.m.isNormalMap {
		return
	}
	s.detach()

	img := s.m.image
	img.expandNormals()

	xs, ys, zs := img.channel(0), img.channel(1), img.channel(2)
	for i := range xs {
		xs[i], ys[i], zs[i] = normalizeSafe(xs[i], ys[i], zs[i])
	}

	img.packNormals()
}

// ToNormalMap derives a packed tangent-space normal map from this surface
// treated as a height map (height is the greyscale luminance of RGB). The
// four weights blend derivative filters of increasing support (3, 5, 7 and
// 9 texels), honoring the surface wrap mode. Alpha is set to one and the
// surface is flagged as a normal map.
func (s *Surface) ToNormalMap(small, medium, big, large float32) {
	if s.IsNull() {
		return
	}
	s.detach()

	img := s.m.image
	w, h, d := img.width, img.height, img.depth
	wm := s.m.wrapMode

	// Height field from luminance.
	height := make([]float32, img.pixelCount())
	r, g, b := img.channel(0), img.channel(1), img.channel(2)
	for i := range height {
		height[i] = (r[i] + g[i] + b[i]) * (1.0 / 3.0)
	}

	weights := [4]float32{small, medium, big, large}
	wsum := small + medium + big + large
	if wsum == 0 {
		weights, wsum = [4]float32{1, 0, 0, 0}, 1
	}
	for i := range weights {
		weights[i] /= wsum
	}

	at := func(x, y, z int) float32 {
		x = wrapIndex(x, w, wm)
		y = wrapIndex(y, h, wm)
		return height[(z*h+y)*w+x]
	}

	xs, ys, zs, as := img.channel(0), img.channel(1), img.channel(2), img.channel(3)
	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				var du, dv float32
				for k := 1; k <= 4; k++ {
					inv := 1 / float32(2*k)
					du += weights[k-1] * (at(x+k, y, z) - at(x-k, y, z)) * inv
					dv += weights[k-1] * (at(x, y+k, z) - at(x, y-k, z)) * inv
				}

				nx, ny, nz := normalizeSafe(-du, -dv, 1)
				idx := (z*h+y)*w + x
				xs[idx], ys[idx], zs[idx] = nx, ny, nz
				as[idx] = 1
			}
		}
	}

	img.packNormals()
	s.m.isNormalMap = true
}

// CreateToksvigMap is not implemented upstream; it returns a null surface.
func (s Surface) CreateToksvigMap(power float32) Surface {
	return NewSurface()
}

// CreateCleanMap is not implemented upstream; it returns a null surface.
func (s Surface) CreateCleanMap() Surface {
	return NewSurface()
}

// paraboloidRoot returns the positive root of a*t^2 + b*t + c = 0 with
// a = x^2+y^2, b = z, c = -1.
func paraboloidRoot(x, y, z float32) float32 {
	a := x*x + y*y
	b := z
	c := float32(-1)

	if a < 1e-12 {
		// Normal along Z; the projection scale degenerates to -c/b.
		return -c / b
	}

	discriminant := b*b - 4*a*c
	return (-b + float32(math.Sqrt(float64(discriminant)))) / (2 * a)
}

// normalizeSafe normalizes a vector, returning zero for near-zero input.
func normalizeSafe(x, y, z float32) (float32, float32, float32) {
	l := float32(math.Sqrt(float64(x*x + y*y + z*z)))
	if l == 0 {
		return 0, 0, 0
	}
	return x / l, y / l, z / l
}

package nvtt

import "math"

// floatImage is the planar floating-point pixel buffer behind a Surface,
// equivalent to upstream nv::FloatImage.
//
// Storage is channel-major: four planes of width*height*depth float32 values.
// Within a plane, pixels are laid out x-fastest, then y, then z.
type floatImage struct {
	width  int
	height int
	depth  int

	// Four planes (R, G, B, A or codec-specific semantics), each
	// width*height*depth long, backed by a single allocation.
	data []float32
}

const channelCount = 4

func newFloatImage(w, h, d int) *floatImage {
	img := &floatImage{}
	img.allocate(w, h, d)
	return img
}

func (img *floatImage) allocate(w, h, d int) {
	img.width = w
	img.height = h
	img.depth = d
	img.data = make([]float32, channelCount*w*h*d)
}

func (img *floatImage) clear() {
	for i := range img.data {
		img.data[i] = 0
	}
}

func (img *floatImage) clone() *floatImage {
	c := &floatImage{
		width:  img.width,
		height: img.height,
		depth:  img.depth,
		data:   make([]float32, len(img.data)),
	}
	copy(c.data, img.data)
	return c
}

func (img *floatImage) pixelCount() int {
	return img.width * img.height * img.depth
}

// channel returns the full plane for channel c.
func (img *floatImage) channel(c int) []float32 {
	n := img.pixelCount()
	return img.data[c*n : (c+1)*n : (c+1)*n]
}

// index returns the in-plane offset of pixel (x, y, z).
func (img *floatImage) index(x, y, z int) int {
	return (z*img.height+y)*img.width + x
}

func (img *floatImage) pixel(c, x, y, z int) float32 {
	return img.channel(c)[img.index(x, y, z)]
}

func (img *floatImage) setPixel(c, x, y, z int, v float32) {
	img.channel(c)[img.index(x, y, z)] = v
}

func sameLayout(a, b *floatImage) bool {
	if a == nil || b == nil {
		return false
	}
	return a.width == b.width && a.height == b.height && a.depth == b.depth
}

// swizzle remaps the four channels. Indices 0..3 select a source channel,
// 4 selects constant 0 and 5 selects constant 1.
func (img *floatImage) swizzle(r, g, b, a int) {
	n := img.pixelCount()
	src := [6][]float32{
		img.channel(0), img.channel(1), img.channel(2), img.channel(3),
		nil, nil,
	}

	pick := func(sel int, old [4]float32) float32 {
		switch sel {
		case 0, 1, 2, 3:
			return old[sel]
		case 5:
			return 1
		}
		return 0
	}

	for i := 0; i < n; i++ {
		old := [4]float32{src[0][i], src[1][i], src[2][i], src[3][i]}
		src[0][i] = pick(r, old)
		src[1][i] = pick(g, old)
		src[2][i] = pick(b, old)
		src[3][i] = pick(a, old)
	}
}

// transform applies a 4x4 affine channel transform plus offset. Each output
// channel is a weighted sum of the four input channels of the same pixel; all
// four inputs are read before any output is written.
func (img *floatImage) transform(w [4][4]float32, offset [4]float32) {
	r := img.channel(0)
	g := img.channel(1)
	b := img.channel(2)
	a := img.channel(3)

	n := img.pixelCount()
	for i := 0; i < n; i++ {
		R, G, B, A := r[i], g[i], b[i], a[i]

		r[i] = w[0][0]*R + w[0][1]*G + w[0][2]*B + w[0][3]*A + offset[0]
		g[i] = w[1][0]*R + w[1][1]*G + w[1][2]*B + w[1][3]*A + offset[1]
		b[i] = w[2][0]*R + w[2][1]*G + w[2][2]*B + w[2][3]*A + offset[2]
		a[i] = w[3][0]*R + w[3][1]*G + w[3][2]*B + w[3][3]*A + offset[3]
	}
}

// scaleBias applies v*scale + bias to count channels starting at first.
func (img *floatImage) scaleBias(first, count int, scale, bias float32) {
	for c := first; c < first+count; c++ {
		plane := img.channel(c)
		for i, v := range plane {
			plane[i] = v*scale + bias
		}
	}
}

func (img *floatImage) clampChannels(first, count int, low, high float32) {
	for c := first; c < first+count; c++ {
		plane := img.channel(c)
		for i, v := range plane {
			plane[i] = clampf(v, low, high)
		}
	}
}

// toLinear raises count channels to the power gamma (gamma decode).
func (img *floatImage) toLinear(first, count int, gamma float32) {
	img.exponentiate(first, count, gamma)
}

// toGamma raises count channels to the power 1/gamma (gamma encode).
func (img *floatImage) toGamma(first, count int, gamma float32) {
	img.exponentiate(first, count, 1/gamma)
}

func (img *floatImage) exponentiate(first, count int, power float32) {
	for c := first; c < first+count; c++ {
		plane := img.channel(c)
		for i, v := range plane {
			if v < 0 {
				v = 0
			}
			plane[i] = float32(math.Pow(float64(v), float64(power)))
		}
	}
}

// packNormals maps the first three channels from [-1, 1] to [0, 1].
func (img *floatImage) packNormals() {
	img.scaleBias(0, 3, 0.5, 0.5)
}

// expandNormals maps the first three channels from [0, 1] to [-1, 1].
func (img *floatImage) expandNormals() {
	img.scaleBias(0, 3, 2.0, -1.0)
}

func (img *floatImage) flipX() {
	w, h, d := img.width, img.height, img.depth
	for c := 0; c < channelCount; c++ {
		plane := img.channel(c)
		for z := 0; z < d; z++ {
			for y := 0; y < h; y++ {
				row := plane[img.index(0, y, z) : img.index(0, y, z)+w]
				for i, j := 0, w-1; i < j; i, j = i+1, j-1 {
					row[i], row[j] = row[j], row[i]
				}
			}
		}
	}
}

func (img *floatImage) flipY() {
	w, h, d := img.width, img.height, img.depth
	for c := 0; c < channelCount; c++ {
		plane := img.channel(c)
		for z := 0; z < d; z++ {
			for y0, y1 := 0, h-1; y0 < y1; y0, y1 = y0+1, y1-1 {
				r0 := plane[img.index(0, y0, z) : img.index(0, y0, z)+w]
				r1 := plane[img.index(0, y1, z) : img.index(0, y1, z)+w]
				for x := 0; x < w; x++ {
					r0[x], r1[x] = r1[x], r0[x]
				}
			}
		}
	}
}

func (img *floatImage) flipZ() {
	w, h, d := img.width, img.height, img.depth
	sz := w * h
	for c := 0; c < channelCount; c++ {
		plane := img.channel(c)
		for z0, z1 := 0, d-1; z0 < z1; z0, z1 = z0+1, z1-1 {
			s0 := plane[z0*sz : z0*sz+sz]
			s1 := plane[z1*sz : z1*sz+sz]
			for i := 0; i < sz; i++ {
				s0[i], s1[i] = s1[i], s0[i]
			}
		}
	}
}

func clampf(v, low, high float32) float32 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func lerpf(a, b, t float32) float32 {
	return a + (b-a)*t
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

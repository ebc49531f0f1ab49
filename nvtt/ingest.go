package nvtt

import (
	"encoding/binary"
	"math"
)

// SetImage allocates a w x h x d buffer and fills it from interleaved pixel
// data: BGRA bytes (normalized by 255), RGBA halfs or RGBA floats. The
// buffer length is validated up front; a short buffer fails without
// modifying the surface.
func (s *Surface) SetImage(format InputFormat, w, h, d int, data []byte) error {
	count := w * h * d

	switch format {
	case InputBGRA8:
		if len(data) < 4*count {
			return ErrShortBuffer
		}
	case InputRGBA16F:
		if len(data) < 8*count {
			return ErrShortBuffer
		}
	case InputRGBA32F:
		if len(data) < 16*count {
			return ErrShortBuffer
		}
	default:
		return ErrUnsupportedFormat
	}

	s.detach()
	s.m.image = newFloatImage(w, h, d)
	s.m.textureType = textureTypeForDepth(d)

	img := s.m.image
	r, g, b, a := img.channel(0), img.channel(1), img.channel(2), img.channel(3)

	switch format {
	case InputBGRA8:
		for i := 0; i < count; i++ {
			b[i] = float32(data[4*i+0]) / 255.0
			g[i] = float32(data[4*i+1]) / 255.0
			r[i] = float32(data[4*i+2]) / 255.0
			a[i] = float32(data[4*i+3]) / 255.0
		}
	case InputRGBA16F:
		for i := 0; i < count; i++ {
			r[i] = halfToFloat32(binary.LittleEndian.Uint16(data[8*i+0:]))
			g[i] = halfToFloat32(binary.LittleEndian.Uint16(data[8*i+2:]))
			b[i] = halfToFloat32(binary.LittleEndian.Uint16(data[8*i+4:]))
			a[i] = halfToFloat32(binary.LittleEndian.Uint16(data[8*i+6:]))
		}
	case InputRGBA32F:
		for i := 0; i < count; i++ {
			r[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[16*i+0:]))
			g[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[16*i+4:]))
			b[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[16*i+8:]))
			a[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[16*i+12:]))
		}
	}

	return nil
}

// SetImagePlanar is SetImage for four separate per-channel buffers. The
// channel order is R, G, B, A regardless of the interleaved format's byte
// order; only the per-sample encoding of the input format applies.
func (s *Surface) SetImagePlanar(format InputFormat, w, h, d int, r, g, b, a []byte) error {
	count := w * h * d

	var sampleSize int
	switch format {
	case InputBGRA8:
		sampleSize = 1
	case InputRGBA16F:
		sampleSize = 2
	case InputRGBA32F:
		sampleSize = 4
	default:
		return ErrUnsupportedFormat
	}

	for _, plane := range [][]byte{r, g, b, a} {
		if len(plane) < sampleSize*count {
			return ErrShortBuffer
		}
	}

	s.detach()
	s.m.image = newFloatImage(w, h, d)
	s.m.textureType = textureTypeForDepth(d)

	img := s.m.image
	for c, src := range [][]byte{r, g, b, a} {
		dst := img.channel(c)
		switch format {
		case InputBGRA8:
			for i := 0; i < count; i++ {
				dst[i] = float32(src[i]) / 255.0
			}
		case InputRGBA16F:
			for i := 0; i < count; i++ {
				dst[i] = halfToFloat32(binary.LittleEndian.Uint16(src[2*i:]))
			}
		case InputRGBA32F:
			for i := 0; i < count; i++ {
				dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[4*i:]))
			}
		}
	}

	return nil
}

// SetImage2D fills the surface by decoding compressed 4x4 blocks. Only
// BC1..BC5 are supported; the decoder selects the hardware decode
// convention. Partial edge blocks are clipped to the true image extents.
func (s *Surface) SetImage2D(format Format, decoder Decoder, w, h int, data []byte) error {
	switch format {
	case FormatBC1, FormatBC2, FormatBC3, FormatBC4, FormatBC5:
	default:
		return ErrUnsupportedFormat
	}

	bw := (w + 3) / 4
	bh := (h + 3) / 4
	bs := format.BlockSize()

	if len(data) < bw*bh*bs {
		return ErrShortBuffer
	}

	s.detach()
	s.m.image = newFloatImage(w, h, 1)
	s.m.textureType = TextureType2D

	img := s.m.image

	var colors colorBlock
	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			block := data[(by*bw+bx)*bs:]

			switch format {
			case FormatBC1:
				decodeBlockBC1(block, decoder, &colors)
			case FormatBC2:
				decodeBlockBC2(block, decoder, &colors)
			case FormatBC3:
				decodeBlockBC3(block, decoder, &colors)
			case FormatBC4:
				decodeBlockBC4(block, decoder, &colors)
			case FormatBC5:
				decodeBlockBC5(block, decoder, &colors)
			}

			for yy := 0; yy < 4; yy++ {
				for xx := 0; xx < 4; xx++ {
					x := bx*4 + xx
					y := by*4 + yy
					if x >= w || y >= h {
						continue
					}

					c := colors[yy*4+xx]
					img.setPixel(0, x, y, 0, float32(c.r)/255.0)
					img.setPixel(1, x, y, 0, float32(c.g)/255.0)
					img.setPixel(2, x, y, 0, float32(c.b)/255.0)
					img.setPixel(3, x, y, 0, float32(c.a)/255.0)
				}
			}
		}
	}

	return nil
}

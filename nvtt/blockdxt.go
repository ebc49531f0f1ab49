package nvtt

import "encoding/binary"

// color32 is an 8-bit RGBA texel produced by block decoding.
type color32 struct {
	r, g, b, a uint8
}

// colorBlock is one decoded 4x4 tile, row-major.
type colorBlock [16]color32

// rgb565 expands a packed 5:6:5 color to 8-bit components with bit
// replication.
func rgb565(v uint16) (r, g, b uint8) {
	r5 := uint8(v >> 11 & 0x1F)
	g6 := uint8(v >> 5 & 0x3F)
	b5 := uint8(v & 0x1F)

	r = r5<<3 | r5>>2
	g = g6<<2 | g6>>4
	b = b5<<3 | b5>>2
	return
}

// evaluatePaletteBC1 derives the four-entry color palette for a BC1 color
// block using the D3D reference convention: four opaque colors when
// c0 > c1, otherwise three colors plus transparent black.
func evaluatePaletteBC1(c0, c1 uint16, hasAlpha bool) [4]color32 {
	var p [4]color32

	r0, g0, b0 := rgb565(c0)
	r1, g1, b1 := rgb565(c1)
	p[0] = color32{r0, g0, b0, 255}
	p[1] = color32{r1, g1, b1, 255}

	if c0 > c1 || !hasAlpha {
		p[2] = color32{
			uint8((2*int(r0) + int(r1)) / 3),
			uint8((2*int(g0) + int(g1)) / 3),
			uint8((2*int(b0) + int(b1)) / 3),
			255,
		}
		p[3] = color32{
			uint8((int(r0) + 2*int(r1)) / 3),
			uint8((int(g0) + 2*int(g1)) / 3),
			uint8((int(b0) + 2*int(b1)) / 3),
			255,
		}
	} else {
		p[2] = color32{
			uint8((int(r0) + int(r1)) / 2),
			uint8((int(g0) + int(g1)) / 2),
			uint8((int(b0) + int(b1)) / 2),
			255,
		}
		p[3] = color32{} // transparent black
	}

	return p
}

// evaluatePaletteNV5x derives the BC1 palette the way NV5x-series hardware
// does: the 5- and 6-bit endpoints are expanded and interpolated with the
// hardware's integer arithmetic rather than the D3D reference rounding.
func evaluatePaletteNV5x(c0, c1 uint16) [4]color32 {
	var p [4]color32

	r0 := uint8(c0 >> 11 & 0x1F)
	g0 := uint8(c0 >> 5 & 0x3F)
	b0 := uint8(c0 & 0x1F)
	r1 := uint8(c1 >> 11 & 0x1F)
	g1 := uint8(c1 >> 5 & 0x3F)
	b1 := uint8(c1 & 0x1F)

	p[0] = color32{
		uint8(3 * int(r0) * 22 / 8),
		g0<<2 | g0>>4,
		uint8(3 * int(b0) * 22 / 8),
		255,
	}
	p[1] = color32{
		uint8(3 * int(r1) * 22 / 8),
		g1<<2 | g1>>4,
		uint8(3 * int(b1) * 22 / 8),
		255,
	}

	gdiff := int(p[1].g) - int(p[0].g)

	if c0 > c1 {
		p[2] = color32{
			uint8((2*int(r0) + int(r1)) * 22 / 8),
			uint8((256*int(p[0].g) + gdiff/4 + 128 + gdiff*80) / 256),
			uint8((2*int(b0) + int(b1)) * 22 / 8),
			255,
		}
		p[3] = color32{
			uint8((2*int(r1) + int(r0)) * 22 / 8),
			uint8((256*int(p[1].g) - gdiff/4 + 128 - gdiff*80) / 256),
			uint8((2*int(b1) + int(b0)) * 22 / 8),
			255,
		}
	} else {
		p[2] = color32{
			uint8((int(r0) + int(r1)) * 33 / 8),
			uint8((256*int(p[0].g) + gdiff/4 + 128 + gdiff*128) / 256),
			uint8((int(b0) + int(b1)) * 33 / 8),
			255,
		}
		p[3] = color32{}
	}

	return p
}

// decodeBlockBC1 expands one 8-byte BC1 block.
func decodeBlockBC1(data []byte, decoder Decoder, out *colorBlock) {
	c0 := binary.LittleEndian.Uint16(data[0:])
	c1 := binary.LittleEndian.Uint16(data[2:])
	indices := binary.LittleEndian.Uint32(data[4:])

	var palette [4]color32
	if decoder == DecoderNV5x {
		palette = evaluatePaletteNV5x(c0, c1)
	} else {
		palette = evaluatePaletteBC1(c0, c1, true)
	}

	for i := 0; i < 16; i++ {
		out[i] = palette[indices>>(2*uint(i))&0x3]
	}
}

// decodeBlockBC2 expands one 16-byte BC2 block: 4-bit explicit alpha over an
// always-opaque BC1 color block.
func decodeBlockBC2(data []byte, decoder Decoder, out *colorBlock) {
	c0 := binary.LittleEndian.Uint16(data[8:])
	c1 := binary.LittleEndian.Uint16(data[10:])
	indices := binary.LittleEndian.Uint32(data[12:])

	var palette [4]color32
	if decoder == DecoderNV5x {
		palette = evaluatePaletteNV5x(c0, c1)
	} else {
		palette = evaluatePaletteBC1(c0, c1, false)
	}

	for i := 0; i < 16; i++ {
		out[i] = palette[indices>>(2*uint(i))&0x3]

		a4 := data[i/2] >> (4 * uint(i%2)) & 0xF
		out[i].a = a4<<4 | a4
	}
}

// decodeBlockBC3 expands one 16-byte BC3 block: interpolated alpha over an
// always-opaque BC1 color block.
func decodeBlockBC3(data []byte, decoder Decoder, out *colorBlock) {
	var alpha [8]uint8
	evaluateAlphaPalette(data[0], data[1], decoder == DecoderD3D9, &alpha)

	var alphaBits uint64
	for i := 0; i < 6; i++ {
		alphaBits |= uint64(data[2+i]) << (8 * uint(i))
	}

	c0 := binary.LittleEndian.Uint16(data[8:])
	c1 := binary.LittleEndian.Uint16(data[10:])
	indices := binary.LittleEndian.Uint32(data[12:])

	var palette [4]color32
	if decoder == DecoderNV5x {
		palette = evaluatePaletteNV5x(c0, c1)
	} else {
		palette = evaluatePaletteBC1(c0, c1, false)
	}

	for i := 0; i < 16; i++ {
		out[i] = palette[indices>>(2*uint(i))&0x3]
		out[i].a = alpha[alphaBits>>(3*uint(i))&0x7]
	}
}

// decodeBlockBC4 expands one 8-byte BC4 block, replicating the single
// channel into R, G and B.
func decodeBlockBC4(data []byte, decoder Decoder, out *colorBlock) {
	var alpha [8]uint8
	evaluateAlphaPalette(data[0], data[1], decoder == DecoderD3D9, &alpha)

	var bits uint64
	for i := 0; i < 6; i++ {
		bits |= uint64(data[2+i]) << (8 * uint(i))
	}

	for i := 0; i < 16; i++ {
		v := alpha[bits>>(3*uint(i))&0x7]
		out[i] = color32{v, v, v, 255}
	}
}

// decodeBlockBC5 expands one 16-byte BC5 block into the R and G channels.
func decodeBlockBC5(data []byte, decoder Decoder, out *colorBlock) {
	var xp, yp [8]uint8
	evaluateAlphaPalette(data[0], data[1], decoder == DecoderD3D9, &xp)
	evaluateAlphaPalette(data[8], data[9], decoder == DecoderD3D9, &yp)

	var xbits, ybits uint64
	for i := 0; i < 6; i++ {
		xbits |= uint64(data[2+i]) << (8 * uint(i))
		ybits |= uint64(data[10+i]) << (8 * uint(i))
	}

	for i := 0; i < 16; i++ {
		out[i] = color32{
			xp[xbits>>(3*uint(i))&0x7],
			yp[ybits>>(3*uint(i))&0x7],
			0,
			255,
		}
	}
}

// evaluateAlphaPalette derives the 8-entry interpolated palette shared by
// the BC3 alpha block and the BC4/BC5 channel blocks. The D3D9 convention
// truncates the interpolation; D3D10-class hardware rounds to nearest.
func evaluateAlphaPalette(a0, a1 uint8, d3d9 bool, out *[8]uint8) {
	out[0] = a0
	out[1] = a1

	bias7, bias5 := 3, 2
	if d3d9 {
		bias7, bias5 = 0, 0
	}

	if a0 > a1 {
		for i := 2; i < 8; i++ {
			out[i] = uint8(((8-i)*int(a0) + (i-1)*int(a1) + bias7) / 7)
		}
	} else {
		for i := 2; i < 6; i++ {
			out[i] = uint8(((6-i)*int(a0) + (i-1)*int(a1) + bias5) / 5)
		}
		out[6] = 0
		out[7] = 255
	}
}

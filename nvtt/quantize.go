package nvtt

import "math"

// Binarize thresholds one channel to 0 or 1. With dither enabled the
// quantization residue is diffused with the Floyd-Steinberg weights.
func (s *Surface) Binarize(channel int, threshold float32, dither bool) {
	if s.IsNull() {
		return
	}
	s.detach()

	img := s.m.image

	if !dither {
		plane := img.channel(channel)
		for i, v := range plane {
			if v > threshold {
				plane[i] = 1
			} else {
				plane[i] = 0
			}
		}
		return
	}

	s.errorDiffuse(channel, func(v float32) float32 {
		if v > threshold {
			return 1
		}
		return 0
	})
}

// Quantize rounds one channel to an N-bit uniform grid confined to [0, 1].
//
// With exactEndPoints, 0 and 1 are representable exactly (scale 2^bits-1);
// otherwise values snap to bin centers (scale 2^bits, offset 0.5). With
// dither enabled the residue is diffused with the Floyd-Steinberg weights.
func (s *Surface) Quantize(channel, bits int, exactEndPoints, dither bool) {
	if s.IsNull() {
		return
	}
	s.detach()

	img := s.m.image

	var scale, offset float32
	if exactEndPoints {
		scale = float32(int(1)<<bits - 1)
		offset = 0
	} else {
		scale = float32(int(1) << bits)
		offset = 0.5
	}

	quantize := func(v float32) float32 {
		return float32(math.Floor(float64(v*scale+offset))) / scale
	}

	if !dither {
		plane := img.channel(channel)
		for i, v := range plane {
			plane[i] = quantize(v)
		}
		return
	}

	s.errorDiffuse(channel, quantize)
}

// errorDiffuse runs Floyd-Steinberg error diffusion over one channel,
// row-major: the residue of each quantized pixel spreads to (x+1, y) at
// 7/16, (x-1, y+1) at 3/16, (x, y+1) at 5/16 and (x+1, y+1) at 1/16. Two
// error rows are reused per Z slice; diffusion never crosses slices.
func (s *Surface) errorDiffuse(channel int, quantize func(float32) float32) {
	img := s.m.image
	w, h, d := img.width, img.height, img.depth
	plane := img.channel(channel)

	// Rows are padded by one texel on each side so the x-1/x+1 taps never
	// need bounds checks.
	row0 := make([]float32, w+2)
	row1 := make([]float32, w+2)

	for z := 0; z < d; z++ {
		clearRow(row0)
		clearRow(row1)

		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				i := (z*h+y)*w + x
				f := plane[i]

				// Add the accumulated error, then quantize.
				qf := quantize(f + row0[1+x])
				diff := f - qf
				plane[i] = qf

				row0[1+x+1] += (7.0 / 16.0) * diff
				row1[1+x-1] += (3.0 / 16.0) * diff
				row1[1+x+0] += (5.0 / 16.0) * diff
				row1[1+x+1] += (1.0 / 16.0) * diff
			}

			row0, row1 = row1, row0
			clearRow(row1)
		}
	}
}

func clearRow(row []float32) {
	for i := range row {
		row[i] = 0
	}
}

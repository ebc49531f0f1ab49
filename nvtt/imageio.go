package nvtt

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Load reads an image file and returns a surface holding its pixels as
// normalized floats. PNG, JPEG, GIF, BMP, TIFF and WebP inputs are decoded
// by format sniffing; .nvf files are parsed as float surfaces.
func Load(path string) (Surface, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewSurface(), fmt.Errorf("load %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".nvf") {
		return ParseNVF(data)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return NewSurface(), fmt.Errorf("load %s: %w", path, err)
	}
	return fromImage(src), nil
}

// Save writes s to an image file. The format is chosen by extension: .png,
// .jpg/.jpeg, .bmp, .tif/.tiff, or .nvf for the lossless float container.
// Channel values are clamped to [0, 1] and quantized to 8 bits for the
// integer formats.
func Save(path string, s Surface) error {
	if s.IsNull() {
		return ErrNullSurface
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".nvf" {
		data, err := MarshalNVF(s)
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0o644)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer f.Close()

	img := toImage(s)
	switch ext {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, nil)
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, nil)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return f.Close()
}

func fromImage(src image.Image) Surface {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	s := NewSurface()
	s.m.image = newFloatImage(w, h, 1)
	s.m.textureType = TextureType2D

	rc := s.m.image.channel(0)
	gc := s.m.image.channel(1)
	bc := s.m.image.channel(2)
	ac := s.m.image.channel(3)

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBA64Model.Convert(src.At(x, y)).(color.NRGBA64)
			rc[i] = float32(c.R) / 65535
			gc[i] = float32(c.G) / 65535
			bc[i] = float32(c.B) / 65535
			ac[i] = float32(c.A) / 65535
			i++
		}
	}
	return s
}

func toImage(s Surface) *image.NRGBA {
	img := s.m.image
	w, h := img.width, img.height

	rc := img.channel(0)
	gc := img.channel(1)
	bc := img.channel(2)
	ac := img.channel(3)

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		out.Pix[i*4+0] = quantize8(rc[i])
		out.Pix[i*4+1] = quantize8(gc[i])
		out.Pix[i*4+2] = quantize8(bc[i])
		out.Pix[i*4+3] = quantize8(ac[i])
	}
	return out
}

func quantize8(v float32) uint8 {
	return uint8(iround(clampf(v, 0, 1) * 255))
}

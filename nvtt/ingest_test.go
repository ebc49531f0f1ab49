package nvtt

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetImageBGRA8(t *testing.T) {
	s := NewSurface()
	err := s.SetImage(InputBGRA8, 1, 1, 1, []byte{0, 128, 255, 64})
	require.NoError(t, err)

	assert.Equal(t, TextureType2D, s.Type())
	assert.InDelta(t, 1.0, s.Pixel(0, 0, 0, 0), 1e-6)         // red
	assert.InDelta(t, 128.0/255.0, s.Pixel(1, 0, 0, 0), 1e-6) // green
	assert.InDelta(t, 0.0, s.Pixel(2, 0, 0, 0), 1e-6)         // blue
	assert.InDelta(t, 64.0/255.0, s.Pixel(3, 0, 0, 0), 1e-6)  // alpha
}

func TestSetImageShortBufferLeavesSurfaceUntouched(t *testing.T) {
	s := NewSurface()
	err := s.SetImage(InputBGRA8, 2, 2, 1, []byte{0, 0, 0})
	assert.ErrorIs(t, err, ErrShortBuffer)
	assert.True(t, s.IsNull())
}

func TestSetImageRGBA32F(t *testing.T) {
	data := make([]byte, 16)
	binary.LittleEndian.PutUint32(data[0:], math.Float32bits(0.25))
	binary.LittleEndian.PutUint32(data[4:], math.Float32bits(0.5))
	binary.LittleEndian.PutUint32(data[8:], math.Float32bits(2.0))
	binary.LittleEndian.PutUint32(data[12:], math.Float32bits(1.0))

	s := NewSurface()
	require.NoError(t, s.SetImage(InputRGBA32F, 1, 1, 1, data))

	assert.Equal(t, float32(0.25), s.Pixel(0, 0, 0, 0))
	assert.Equal(t, float32(2.0), s.Pixel(2, 0, 0, 0))
}

func TestSetImageRGBA16F(t *testing.T) {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint16(data[0:], float32ToHalf(0.5))
	binary.LittleEndian.PutUint16(data[2:], float32ToHalf(1.0))
	binary.LittleEndian.PutUint16(data[4:], float32ToHalf(-2.0))
	binary.LittleEndian.PutUint16(data[6:], float32ToHalf(1.0))

	s := NewSurface()
	require.NoError(t, s.SetImage(InputRGBA16F, 1, 1, 1, data))

	assert.Equal(t, float32(0.5), s.Pixel(0, 0, 0, 0))
	assert.Equal(t, float32(-2.0), s.Pixel(2, 0, 0, 0))
}

func TestSetImagePlanarChannelOrder(t *testing.T) {
	s := NewSurface()
	err := s.SetImagePlanar(InputBGRA8, 1, 1, 1,
		[]byte{255}, []byte{0}, []byte{128}, []byte{255})
	require.NoError(t, err)

	// Planar planes are R, G, B, A regardless of the interleaved byte order.
	assert.InDelta(t, 1.0, s.Pixel(0, 0, 0, 0), 1e-6)
	assert.InDelta(t, 0.0, s.Pixel(1, 0, 0, 0), 1e-6)
	assert.InDelta(t, 128.0/255.0, s.Pixel(2, 0, 0, 0), 1e-6)
}

func TestSetImage2DSolidBC1(t *testing.T) {
	block := []byte{0x00, 0xF8, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

	s := NewSurface()
	require.NoError(t, s.SetImage2D(FormatBC1, DecoderD3D10, 4, 4, block))

	require.Equal(t, 4, s.Width())
	for i := range s.Channel(0) {
		assert.InDelta(t, 1.0, s.Channel(0)[i], 1e-6, "pixel %d", i)
		assert.InDelta(t, 0.0, s.Channel(1)[i], 1e-6, "pixel %d", i)
		assert.InDelta(t, 1.0, s.Channel(3)[i], 1e-6, "pixel %d", i)
	}
}

func TestSetImage2DClipsPartialBlocks(t *testing.T) {
	// 5x5 needs 2x2 blocks; edge texels outside the image are dropped.
	solid := []byte{0x00, 0xF8, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	data := make([]byte, 0, 32)
	for i := 0; i < 4; i++ {
		data = append(data, solid...)
	}

	s := NewSurface()
	require.NoError(t, s.SetImage2D(FormatBC1, DecoderD3D10, 5, 5, data))

	require.Equal(t, 5, s.Width())
	require.Equal(t, 5, s.Height())
	assert.InDelta(t, 1.0, s.Pixel(0, 4, 4, 0), 1e-6)
}

func TestSetImage2DRejectsUnsupportedFormats(t *testing.T) {
	s := NewSurface()
	assert.ErrorIs(t, s.SetImage2D(FormatBC6, DecoderD3D10, 4, 4, make([]byte, 16)), ErrUnsupportedFormat)
	assert.ErrorIs(t, s.SetImage2D(FormatBC7, DecoderD3D10, 4, 4, make([]byte, 16)), ErrUnsupportedFormat)
	assert.ErrorIs(t, s.SetImage2D(FormatBC1, DecoderD3D10, 8, 8, make([]byte, 8)), ErrShortBuffer)
}

func TestSetImageUnknownFormat(t *testing.T) {
	s := NewSurface()
	assert.ErrorIs(t, s.SetImage(InputFormat(99), 1, 1, 1, make([]byte, 16)), ErrUnsupportedFormat)
}

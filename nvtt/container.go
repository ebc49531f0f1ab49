package nvtt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/klauspost/compress/zstd"
)

var nvfMagic = [4]byte{'N', 'V', 'F', 0x01}

// NVFHeader is the 24-byte header of an .nvf surface file.
//
// It describes the surface shape and the sampling state attached to it. The
// payload that follows is the raw planar float pixel data, zstd-compressed.
type NVFHeader struct {
	Width  uint32
	Height uint32
	Depth  uint32

	WrapMode    uint8
	AlphaMode   uint8
	TextureType uint8
	IsNormalMap uint8

	PayloadSize uint32
}

// NVFHeaderSize is the size in bytes of an .nvf file header.
const NVFHeaderSize = 24

func (h NVFHeader) String() string {
	return fmt.Sprintf("NVF %dx%dx%d texels, %d byte payload",
		h.Width, h.Height, h.Depth, h.PayloadSize)
}

func (h NVFHeader) validate() error {
	if h.Width == 0 || h.Height == 0 || h.Depth == 0 {
		return errors.New("nvf: invalid header: zero surface dimension")
	}
	if h.WrapMode > uint8(WrapMirror) {
		return errors.New("nvf: invalid header: unknown wrap mode")
	}
	if h.AlphaMode > uint8(AlphaPremultiplied) {
		return errors.New("nvf: invalid header: unknown alpha mode")
	}
	if h.TextureType > uint8(TextureType3D) {
		return errors.New("nvf: invalid header: unknown texture type")
	}
	if h.IsNormalMap > 1 {
		return errors.New("nvf: invalid header: normal map flag out of range")
	}
	return nil
}

// ParseNVFHeader parses the 24-byte .nvf file header.
func ParseNVFHeader(data []byte) (NVFHeader, error) {
	if len(data) < NVFHeaderSize {
		return NVFHeader{}, nvfErrUnexpectedEOF("nvf header", NVFHeaderSize, len(data))
	}
	if data[0] != nvfMagic[0] || data[1] != nvfMagic[1] || data[2] != nvfMagic[2] || data[3] != nvfMagic[3] {
		return NVFHeader{}, errors.New("nvf: invalid magic")
	}

	h := NVFHeader{
		Width:       binary.LittleEndian.Uint32(data[4:8]),
		Height:      binary.LittleEndian.Uint32(data[8:12]),
		Depth:       binary.LittleEndian.Uint32(data[12:16]),
		WrapMode:    data[16],
		AlphaMode:   data[17],
		TextureType: data[18],
		IsNormalMap: data[19],
		PayloadSize: binary.LittleEndian.Uint32(data[20:24]),
	}
	if err := h.validate(); err != nil {
		return NVFHeader{}, err
	}
	return h, nil
}

// MarshalNVFHeader returns the 24-byte header encoding for h.
func MarshalNVFHeader(h NVFHeader) ([NVFHeaderSize]byte, error) {
	if err := h.validate(); err != nil {
		return [NVFHeaderSize]byte{}, err
	}

	var out [NVFHeaderSize]byte
	copy(out[0:4], nvfMagic[:])
	binary.LittleEndian.PutUint32(out[4:8], h.Width)
	binary.LittleEndian.PutUint32(out[8:12], h.Height)
	binary.LittleEndian.PutUint32(out[12:16], h.Depth)
	out[16] = h.WrapMode
	out[17] = h.AlphaMode
	out[18] = h.TextureType
	out[19] = h.IsNormalMap
	binary.LittleEndian.PutUint32(out[20:24], h.PayloadSize)
	return out, nil
}

// MarshalNVF serializes s into the .nvf container format.
func MarshalNVF(s Surface) ([]byte, error) {
	if s.IsNull() {
		return nil, ErrNullSurface
	}
	img := s.m.image

	raw := make([]byte, len(img.data)*4)
	for i, v := range img.data {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(v))
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("nvf: zstd encoder: %w", err)
	}
	defer enc.Close()
	payload := enc.EncodeAll(raw, nil)

	flag := uint8(0)
	if s.IsNormalMap() {
		flag = 1
	}
	h := NVFHeader{
		Width:       uint32(img.width),
		Height:      uint32(img.height),
		Depth:       uint32(img.depth),
		WrapMode:    uint8(s.WrapMode()),
		AlphaMode:   uint8(s.AlphaMode()),
		TextureType: uint8(s.Type()),
		IsNormalMap: flag,
		PayloadSize: uint32(len(payload)),
	}
	hdr, err := MarshalNVFHeader(h)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, NVFHeaderSize+len(payload))
	out = append(out, hdr[:]...)
	out = append(out, payload...)
	return out, nil
}

// ParseNVF parses a full .nvf file and reconstructs the surface it holds.
func ParseNVF(data []byte) (Surface, error) {
	h, err := ParseNVFHeader(data)
	if err != nil {
		return NewSurface(), err
	}

	need := NVFHeaderSize + int(h.PayloadSize)
	if len(data) < need {
		return NewSurface(), nvfErrUnexpectedEOF("nvf file", need, len(data))
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return NewSurface(), fmt.Errorf("nvf: zstd decoder: %w", err)
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(data[NVFHeaderSize:need], nil)
	if err != nil {
		return NewSurface(), fmt.Errorf("nvf: payload: %w", err)
	}

	w, hh, d := int(h.Width), int(h.Height), int(h.Depth)
	want := channelCount * w * hh * d * 4
	if len(raw) != want {
		return NewSurface(), nvfErrUnexpectedEOF("nvf payload", want, len(raw))
	}

	s := NewSurface()
	s.m.image = newFloatImage(w, hh, d)
	for i := range s.m.image.data {
		s.m.image.data[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	s.m.wrapMode = WrapMode(h.WrapMode)
	s.m.alphaMode = AlphaMode(h.AlphaMode)
	s.m.textureType = TextureType(h.TextureType)
	s.m.isNormalMap = h.IsNormalMap == 1
	return s, nil
}

func nvfErrUnexpectedEOF(what string, want, got int) error {
	return fmt.Errorf("nvf: %s: unexpected EOF: want %d bytes, got %d", what, want, got)
}

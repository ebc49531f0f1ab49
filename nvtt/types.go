// Package nvtt is a pure-Go port of the NVIDIA Texture Tools surface layer.
//
// A Surface holds a working image as a planar floating-point pixel buffer and
// exposes the reversible color-space encodings, resampling/mipmap pipeline,
// normal-map transforms and dithered quantization that prepare raster images
// for GPU texture compression. The actual block compressors are a separate
// stage; this package decodes externally produced BC1..BC5 blocks at its
// boundary but does not encode them.
package nvtt

// WrapMode selects the boundary-extension policy used by filters, equivalent
// to upstream nvtt::WrapMode.
type WrapMode uint8

const (
	WrapClamp WrapMode = iota
	WrapRepeat
	WrapMirror
)

// AlphaMode describes how the alpha channel is interpreted, equivalent to
// upstream nvtt::AlphaMode.
//
// AlphaTransparency means alpha is a coverage weight: resampling filters the
// color channels as if premultiplied by coverage, with alpha carried as a
// separately filtered weight channel.
type AlphaMode uint8

const (
	AlphaNone AlphaMode = iota
	AlphaTransparency
	AlphaPremultiplied
)

// TextureType is derived from the surface depth at construction or resize
// time, equivalent to upstream nvtt::TextureType.
type TextureType uint8

const (
	TextureType2D TextureType = iota
	TextureTypeCube
	TextureType3D
)

// InputFormat identifies the layout of raw pixel data passed to SetImage,
// equivalent to upstream nvtt::InputFormat.
type InputFormat uint8

const (
	// InputBGRA8 is interleaved 8-bit BGRA (upstream InputFormat_BGRA_8UB).
	InputBGRA8 InputFormat = iota
	// InputRGBA16F is interleaved 16-bit half-float RGBA.
	InputRGBA16F
	// InputRGBA32F is interleaved 32-bit float RGBA.
	InputRGBA32F
)

// Format identifies a compressed block format, equivalent to upstream
// nvtt::Format. Only BC1..BC5 can be ingested through SetImage2D.
type Format uint8

const (
	FormatBC1 Format = iota
	FormatBC2
	FormatBC3
	FormatBC4
	FormatBC5
	FormatBC6
	FormatBC7
)

// BlockSize returns the compressed size in bytes of one 4x4 block, or 0 for
// an unknown format.
func (f Format) BlockSize() int {
	switch f {
	case FormatBC1, FormatBC4:
		return 8
	case FormatBC2, FormatBC3, FormatBC5, FormatBC6, FormatBC7:
		return 16
	}
	return 0
}

// Decoder selects the hardware decode convention used when expanding
// compressed blocks, equivalent to upstream nvtt::Decoder.
type Decoder uint8

const (
	// DecoderD3D10 follows the D3D10 reference rounding.
	DecoderD3D10 Decoder = iota
	// DecoderD3D9 follows the D3D9 reference (no rounding bias on BC4/BC5).
	DecoderD3D9
	// DecoderNV5x follows the NVIDIA 5x-series hardware expansion.
	DecoderNV5x
)

// ResizeFilter selects the reconstruction filter used by Resize, equivalent
// to upstream nvtt::ResizeFilter.
type ResizeFilter uint8

const (
	ResizeBox ResizeFilter = iota
	ResizeTriangle
	ResizeKaiser
	ResizeMitchell
)

// MipmapFilter selects the downsampling filter used by BuildNextMipmap,
// equivalent to upstream nvtt::MipmapFilter.
type MipmapFilter uint8

const (
	MipmapBox MipmapFilter = iota
	MipmapTriangle
	MipmapKaiser
)

// RoundMode controls extent rounding in GetTargetExtent, equivalent to
// upstream nvtt::RoundMode.
type RoundMode uint8

const (
	RoundNone RoundMode = iota
	RoundToNextPowerOfTwo
	RoundToNearestPowerOfTwo
	RoundToPreviousPowerOfTwo
)

// NormalTransform selects a 2-parameter encoding for unit normals, equivalent
// to upstream nvtt::NormalTransform.
type NormalTransform uint8

const (
	NormalOrthographic NormalTransform = iota
	NormalStereographic
	NormalParaboloid
	NormalQuartic
)

// ToneMapper selects a tone mapping operator, equivalent to upstream
// nvtt::ToneMapper.
type ToneMapper uint8

const (
	ToneMapperLinear ToneMapper = iota
	ToneMapperReinhard
	ToneMapperHalo
	ToneMapperLightmap
)

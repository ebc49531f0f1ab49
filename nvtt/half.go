package nvtt

import "math"

// halfToFloat32 expands an IEEE 754 binary16 value to float32.
func halfToFloat32(h uint16) float32 {
	sign := uint32(h>>15) & 1
	exp := uint32(h>>10) & 0x1F
	mant := uint32(h) & 0x3FF

	switch exp {
	case 0:
		if mant == 0 {
			// Signed zero.
			return math.Float32frombits(sign << 31)
		}
		// Subnormal half; renormalize.
		e := -1
		for mant&0x400 == 0 {
			mant <<= 1
			e++
		}
		mant &= 0x3FF
		exp32 := uint32(127 - 15 - e)
		return math.Float32frombits(sign<<31 | exp32<<23 | mant<<13)
	case 0x1F:
		// Inf/NaN.
		return math.Float32frombits(sign<<31 | 0x7F800000 | mant<<13)
	default:
		exp32 := exp + (127 - 15)
		return math.Float32frombits(sign<<31 | exp32<<23 | mant<<13)
	}
}

// float32ToHalf narrows a float32 to IEEE 754 binary16, rounding to the
// nearest representable value, with overflow to infinity.
func float32ToHalf(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16(bits >> 16 & 0x8000)
	exp := int32(bits >> 23 & 0xFF)
	mant := bits & 0x7FFFFF

	// Inf/NaN.
	if exp == 0xFF {
		if mant == 0 {
			return sign | 0x7C00
		}
		payload := uint16(mant>>13) & 0x03FF
		if payload == 0 {
			payload = 1
		}
		return sign | 0x7C00 | payload
	}

	exp = exp - 127 + 15

	// Subnormals and underflow.
	if exp <= 0 {
		if exp < -10 {
			return sign
		}
		mant |= 0x800000
		shift := uint32(1 - exp)
		mant += uint32(0x1000) << shift
		return sign | uint16(mant>>(13+shift))
	}

	if exp >= 0x1F {
		return sign | 0x7C00
	}

	mant += 0x1000
	if mant&0x800000 != 0 {
		mant = 0
		exp++
		if exp >= 0x1F {
			return sign | 0x7C00
		}
	}
	return sign | uint16(exp)<<10 | uint16(mant>>13)
}

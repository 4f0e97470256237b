package wzint

import "math"

func float32FromBits(v uint32) float32 { return math.Float32frombits(v) }
func float64FromBits(v uint64) float64 { return math.Float64frombits(v) }
func float32Bits(v float32) uint32     { return math.Float32bits(v) }
func float64Bits(v float64) uint64     { return math.Float64bits(v) }

// floatZeroTag marks a zero-compressed float32 (the stored value is
// literally 0.0, so no trailing 4 bytes follow).
const floatZeroTag = 0x00

// floatValueTag marks a float32 followed by its 4 little-endian bytes.
const floatValueTag = 0x80

// ReadCompressedFloat32 reads the zero-compressed float32 form used by
// Property Float values: a single tag byte, 0x80 meaning "a float32
// follows", anything else meaning the value is 0.0.
func (r *Reader) ReadCompressedFloat32() (float32, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	if tag != floatValueTag {
		return 0, nil
	}
	return r.ReadF32()
}

// WriteCompressedFloat32 writes v using the zero-compression scheme: a bare
// 0x00 byte for 0.0, else 0x80 followed by the 4 little-endian bytes.
func (w *Writer) WriteCompressedFloat32(v float32) error {
	if v == 0 {
		return w.WriteByte(floatZeroTag)
	}
	if err := w.WriteByte(floatValueTag); err != nil {
		return err
	}
	return w.WriteF32(v)
}

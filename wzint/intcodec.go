package wzint

import "math"

// ReadCompressedInt32 reads a compressed i32: a leading signed byte that is
// either the value itself (sign-extended) or, when it equals math.MinInt8,
// a marker that the full 4-byte little-endian value follows.
func (r *Reader) ReadCompressedInt32() (int32, error) {
	check, err := r.ReadI8()
	if err != nil {
		return 0, err
	}
	if check == math.MinInt8 {
		return r.ReadI32()
	}
	return int32(check), nil
}

// WriteCompressedInt32 writes v using the short form whenever it fits in
// (math.MinInt8, math.MaxInt8], else the 0x80 marker followed by the full
// 4-byte value.
func (w *Writer) WriteCompressedInt32(v int32) error {
	if v > math.MinInt8 && v <= math.MaxInt8 {
		return w.WriteI8(int8(v))
	}
	if err := w.WriteI8(math.MinInt8); err != nil {
		return err
	}
	return w.WriteI32(v)
}

// SizeCompressedInt32 returns the encoded size in bytes: 1 for the short
// form, 5 for the long form.
func SizeCompressedInt32(v int32) int {
	if v > math.MinInt8 && v <= math.MaxInt8 {
		return 1
	}
	return 5
}

// ReadCompressedInt64 is the 64-bit counterpart of ReadCompressedInt32.
func (r *Reader) ReadCompressedInt64() (int64, error) {
	check, err := r.ReadI8()
	if err != nil {
		return 0, err
	}
	if check == math.MinInt8 {
		return r.ReadI64()
	}
	return int64(check), nil
}

// WriteCompressedInt64 is the 64-bit counterpart of WriteCompressedInt32.
func (w *Writer) WriteCompressedInt64(v int64) error {
	if v > math.MinInt8 && v <= math.MaxInt8 {
		return w.WriteI8(int8(v))
	}
	if err := w.WriteI8(math.MinInt8); err != nil {
		return err
	}
	return w.WriteI64(v)
}

// SizeCompressedInt64 returns the encoded size in bytes: 1 for the short
// form, 9 for the long form.
func SizeCompressedInt64(v int64) int {
	if v > math.MinInt8 && v <= math.MaxInt8 {
		return 1
	}
	return 9
}

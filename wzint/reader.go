// Package wzint implements the bit-exact primitive codecs shared by the
// archive and image grammars: compressed 32/64-bit integers, dual-encoding
// (UTF-8/UTF-16LE) masked strings, and zero-compressed floats.
//
// Reader and Writer wrap a seekable byte stream together with the
// Keystream that masks string and sound-header payloads; plain integers
// are never run through the keystream, only string/sound bytes are.
package wzint

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/gowz/wz/keystream"
)

// Reader decodes primitives from a seekable byte stream.
type Reader struct {
	r  io.ReadSeeker
	ks keystream.Keystream
}

// NewReader wraps r, using ks to unmask any string or sound-header bytes
// read through ReadMaskedUTF8Bytes/ReadMaskedUTF16Bytes/ReadDecrypted.
func NewReader(r io.ReadSeeker, ks keystream.Keystream) *Reader {
	if ks == nil {
		ks = keystream.NoOp()
	}
	return &Reader{r: r, ks: ks}
}

// Pos returns the current stream offset.
func (r *Reader) Pos() (int64, error) {
	return r.r.Seek(0, io.SeekCurrent)
}

// Keystream returns the keystream this reader unmasks strings with.
func (r *Reader) Keystream() keystream.Keystream {
	return r.ks
}

// SeekAbs moves the stream to an absolute offset.
func (r *Reader) SeekAbs(off int64) error {
	_, err := r.r.Seek(off, io.SeekStart)
	return errors.Wrap(err, "wzint: seek")
}

// ReadFull reads exactly n unmasked bytes (no keystream, no string mask).
func (r *Reader) ReadFull(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, errors.Wrap(err, "wzint: short read")
	}
	return buf, nil
}

// ReadByte reads a single unsigned byte.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.ReadFull(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadI8 reads a single signed byte.
func (r *Reader) ReadI8() (int8, error) {
	b, err := r.ReadByte()
	return int8(b), err
}

// ReadU16 reads a little-endian uint16.
func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.ReadFull(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadI16 reads a little-endian int16.
func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

// ReadU32 reads a little-endian uint32.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.ReadFull(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadI32 reads a little-endian int32.
func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

// ReadU64 reads a little-endian uint64.
func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.ReadFull(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadI64 reads a little-endian int64.
func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

// ReadF32 reads a little-endian IEEE-754 float32.
func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return float32FromBits(v), nil
}

// ReadF64 reads a little-endian IEEE-754 float64.
func (r *Reader) ReadF64() (float64, error) {
	v, err := r.ReadU64()
	if err != nil {
		return 0, err
	}
	return float64FromBits(v), nil
}

// ReadDecrypted reads n raw bytes and keystream-decrypts them, without
// the incrementing byte/unit mask ReadMaskedUTF8Bytes and
// ReadMaskedUTF16Bytes additionally apply. Sound headers use this form:
// keystream-masked, but not string-mask-XORed.
func (r *Reader) ReadDecrypted(n int) ([]byte, error) {
	return r.readDecrypted(n)
}

func (r *Reader) readDecrypted(n int) ([]byte, error) {
	buf, err := r.ReadFull(n)
	if err != nil {
		return nil, err
	}
	r.ks.XOR(buf)
	return buf, nil
}

// ReadMaskedUTF8Bytes reads length raw bytes, keystream-decrypts them, then
// removes the incrementing 0xAA,0xAB,0xAC,... byte mask.
func (r *Reader) ReadMaskedUTF8Bytes(length int) ([]byte, error) {
	buf, err := r.readDecrypted(length)
	if err != nil {
		return nil, err
	}
	mask := byte(0xAA)
	for i, b := range buf {
		buf[i] = b ^ mask
		mask++
	}
	return buf, nil
}

// ReadMaskedUTF16Bytes reads length UTF-16LE code units (2*length raw
// bytes), keystream-decrypts them, then removes the incrementing
// 0xAAAA,0xAAAB,... unit mask.
func (r *Reader) ReadMaskedUTF16Bytes(length int) ([]uint16, error) {
	buf, err := r.readDecrypted(length * 2)
	if err != nil {
		return nil, err
	}
	units := make([]uint16, length)
	mask := uint16(0xAAAA)
	for i := range units {
		u := binary.LittleEndian.Uint16(buf[i*2:])
		units[i] = u ^ mask
		mask++
	}
	return units, nil
}

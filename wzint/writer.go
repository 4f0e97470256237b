package wzint

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/gowz/wz/keystream"
)

// Writer encodes primitives to a seekable byte stream.
type Writer struct {
	w  io.WriteSeeker
	ks keystream.Keystream
}

// NewWriter wraps w, using ks to mask any string or sound-header bytes
// written through WriteMaskedUTF8Bytes/WriteMaskedUTF16Bytes/WriteEncrypted.
func NewWriter(w io.WriteSeeker, ks keystream.Keystream) *Writer {
	if ks == nil {
		ks = keystream.NoOp()
	}
	return &Writer{w: w, ks: ks}
}

// Pos returns the current stream offset.
func (w *Writer) Pos() (int64, error) {
	return w.w.Seek(0, io.SeekCurrent)
}

// Keystream returns the keystream this writer masks strings with.
func (w *Writer) Keystream() keystream.Keystream {
	return w.ks
}

// SeekAbs moves the stream to an absolute offset.
func (w *Writer) SeekAbs(off int64) error {
	_, err := w.w.Seek(off, io.SeekStart)
	return errors.Wrap(err, "wzint: seek")
}

// WriteRaw writes buf unmodified.
func (w *Writer) WriteRaw(buf []byte) error {
	_, err := w.w.Write(buf)
	return errors.Wrap(err, "wzint: short write")
}

// WriteByte writes a single unsigned byte.
func (w *Writer) WriteByte(b byte) error {
	return w.WriteRaw([]byte{b})
}

// WriteI8 writes a single signed byte.
func (w *Writer) WriteI8(v int8) error {
	return w.WriteByte(byte(v))
}

// WriteU16 writes a little-endian uint16.
func (w *Writer) WriteU16(v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return w.WriteRaw(b[:])
}

// WriteI16 writes a little-endian int16.
func (w *Writer) WriteI16(v int16) error { return w.WriteU16(uint16(v)) }

// WriteU32 writes a little-endian uint32.
func (w *Writer) WriteU32(v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return w.WriteRaw(b[:])
}

// WriteI32 writes a little-endian int32.
func (w *Writer) WriteI32(v int32) error { return w.WriteU32(uint32(v)) }

// WriteU64 writes a little-endian uint64.
func (w *Writer) WriteU64(v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return w.WriteRaw(b[:])
}

// WriteI64 writes a little-endian int64.
func (w *Writer) WriteI64(v int64) error { return w.WriteU64(uint64(v)) }

// WriteF32 writes a little-endian IEEE-754 float32.
func (w *Writer) WriteF32(v float32) error { return w.WriteU32(float32Bits(v)) }

// WriteF64 writes a little-endian IEEE-754 float64.
func (w *Writer) WriteF64(v float64) error { return w.WriteU64(float64Bits(v)) }

func (w *Writer) writeEncrypted(buf []byte) error {
	cp := append([]byte(nil), buf...)
	w.ks.XOR(cp)
	return w.WriteRaw(cp)
}

// WriteEncrypted keystream-encrypts buf and writes it, without the
// incrementing byte/unit mask WriteMaskedUTF8Bytes and
// WriteMaskedUTF16Bytes additionally apply. Sound headers use this form.
func (w *Writer) WriteEncrypted(buf []byte) error {
	return w.writeEncrypted(buf)
}

// WriteMaskedUTF8Bytes applies the incrementing 0xAA,0xAB,... byte mask,
// keystream-encrypts the result, then writes it.
func (w *Writer) WriteMaskedUTF8Bytes(data []byte) error {
	buf := make([]byte, len(data))
	mask := byte(0xAA)
	for i, b := range data {
		buf[i] = b ^ mask
		mask++
	}
	return w.writeEncrypted(buf)
}

// WriteMaskedUTF16Bytes applies the incrementing 0xAAAA,0xAAAB,... unit
// mask, keystream-encrypts the result, then writes it.
func (w *Writer) WriteMaskedUTF16Bytes(units []uint16) error {
	buf := make([]byte, len(units)*2)
	mask := uint16(0xAAAA)
	for i, u := range units {
		binary.LittleEndian.PutUint16(buf[i*2:], u^mask)
		mask++
	}
	return w.writeEncrypted(buf)
}

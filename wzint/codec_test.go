package wzint

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

type seekBuf struct {
	*bytes.Reader
}

func newSeekBuf(b []byte) *seekBuf { return &seekBuf{bytes.NewReader(b)} }

type writeSeekBuf struct {
	buf []byte
	pos int64
}

func (w *writeSeekBuf) Write(p []byte) (int, error) {
	end := w.pos + int64(len(p))
	if end > int64(len(w.buf)) {
		grown := make([]byte, end)
		copy(grown, w.buf)
		w.buf = grown
	}
	copy(w.buf[w.pos:end], p)
	w.pos = end
	return len(p), nil
}

func (w *writeSeekBuf) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case 0:
		w.pos = offset
	case 1:
		w.pos += offset
	case 2:
		w.pos = int64(len(w.buf)) + offset
	}
	return w.pos, nil
}

func TestCompressedInt32RoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, math.MinInt8 + 1, math.MaxInt8, math.MaxInt8 + 1, math.MinInt8, math.MaxInt32, math.MinInt32, 114, 257}
	for _, v := range values {
		wb := &writeSeekBuf{}
		w := NewWriter(wb, nil)
		require.NoError(t, w.WriteCompressedInt32(v))

		r := NewReader(newSeekBuf(wb.buf), nil)
		got, err := r.ReadCompressedInt32()
		require.NoError(t, err)
		require.Equal(t, v, got)

		wantSize := 1
		if !(v > math.MinInt8 && v <= math.MaxInt8) {
			wantSize = 5
		}
		require.Equal(t, wantSize, SizeCompressedInt32(v))
		require.Len(t, wb.buf, wantSize)
	}
}

func TestCompressedInt32KnownEncodings(t *testing.T) {
	wb := &writeSeekBuf{}
	w := NewWriter(wb, nil)
	require.NoError(t, w.WriteCompressedInt32(114))
	require.Equal(t, []byte{0x72}, wb.buf)

	wb2 := &writeSeekBuf{}
	w2 := NewWriter(wb2, nil)
	require.NoError(t, w2.WriteCompressedInt32(257))
	require.Equal(t, []byte{0x80, 0x01, 0x01, 0x00, 0x00}, wb2.buf)
}

func TestCompressedInt64RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, math.MinInt8, math.MaxInt8, math.MaxInt8 + 1, math.MaxInt64, math.MinInt64}
	for _, v := range values {
		wb := &writeSeekBuf{}
		w := NewWriter(wb, nil)
		require.NoError(t, w.WriteCompressedInt64(v))

		r := NewReader(newSeekBuf(wb.buf), nil)
		got, err := r.ReadCompressedInt64()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestStringRoundTrip(t *testing.T) {
	strs := []string{
		"",
		"hello",
		"success",
		"a string that is exactly ascii and reasonably long for a short form test case abc",
		"유니코드 문자열",
		"mixed ascii and 한글",
	}
	for _, s := range strs {
		wb := &writeSeekBuf{}
		w := NewWriter(wb, nil)
		require.NoError(t, w.WriteString(s))

		r := NewReader(newSeekBuf(wb.buf), nil)
		got, err := r.ReadString()
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
}

func TestStringLongFormBoundaries(t *testing.T) {
	ascii126 := repeatByte('a', 126)
	ascii127 := repeatByte('a', 127)
	ascii128 := repeatByte('a', 128)

	for _, s := range []string{ascii126, ascii127, ascii128} {
		wb := &writeSeekBuf{}
		w := NewWriter(wb, nil)
		require.NoError(t, w.WriteString(s))
		r := NewReader(newSeekBuf(wb.buf), nil)
		got, err := r.ReadString()
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
}

func repeatByte(b byte, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = b
	}
	return string(buf)
}

func TestStringMaskedOnWire(t *testing.T) {
	// "hi" is ASCII, short form: check=-2, then masked bytes 'h'^0xAA,'i'^0xAB
	wb := &writeSeekBuf{}
	w := NewWriter(wb, nil)
	require.NoError(t, w.WriteString("hi"))
	require.Equal(t, byte(0xFE), wb.buf[0]) // -2 as byte
	require.Equal(t, 'h'^byte(0xAA), wb.buf[1])
	require.Equal(t, 'i'^byte(0xAB), wb.buf[2])
}

func TestCompressedFloat32RoundTrip(t *testing.T) {
	values := []float32{0, 1.5, -3.25, 3.14159}
	for _, v := range values {
		wb := &writeSeekBuf{}
		w := NewWriter(wb, nil)
		require.NoError(t, w.WriteCompressedFloat32(v))

		r := NewReader(newSeekBuf(wb.buf), nil)
		got, err := r.ReadCompressedFloat32()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}

	// zero compresses to a single byte
	wb := &writeSeekBuf{}
	w := NewWriter(wb, nil)
	require.NoError(t, w.WriteCompressedFloat32(0))
	require.Len(t, wb.buf, 1)
}

package wzimage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gowz/wz/keystream"
	"github.com/gowz/wz/maptree"
	"github.com/gowz/wz/wzint"
)

// seekBuf is an in-memory io.ReadWriteSeeker over a byte slice for round-trip
// tests, since neither encoder nor decoder needs more than Seek+Read/Write.
type seekBuf struct {
	buf []byte
	pos int64
}

func (s *seekBuf) Write(p []byte) (int, error) {
	end := s.pos + int64(len(p))
	if end > int64(len(s.buf)) {
		grown := make([]byte, end)
		copy(grown, s.buf)
		s.buf = grown
	}
	copy(s.buf[s.pos:end], p)
	s.pos = end
	return len(p), nil
}

func (s *seekBuf) Read(p []byte) (int, error) {
	n := copy(p, s.buf[s.pos:])
	s.pos += int64(n)
	if n == 0 && len(p) > 0 {
		return 0, bytes.ErrTooLarge
	}
	return n, nil
}

func (s *seekBuf) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case 0:
		s.pos = offset
	case 1:
		s.pos += offset
	case 2:
		s.pos = int64(len(s.buf)) + offset
	}
	return s.pos, nil
}

func buildTestTree() *Tree {
	tree := maptree.New[Property]("Property", Property{Kind: KindPropertyList})
	root := tree.RootCursorMut()

	require_ := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	require_(root.Create("level", Property{Kind: KindInt, Int: 12}))
	require_(root.Create("name", Property{Kind: KindString, Str: "a fairly long repeated string"}))
	require_(root.Create("name2", Property{Kind: KindString, Str: "a fairly long repeated string"}))
	require_(root.Create("info", Property{Kind: KindPropertyList}))
	require_(root.MoveTo("info"))
	require_(root.Create("hp", Property{Kind: KindShort, Short: 100}))
	require_(root.Create("exp", Property{Kind: KindLong, Long: 123456789012}))
	require_(root.Create("speed", Property{Kind: KindFloat, Float: 1.5}))
	require_(root.Create("acc", Property{Kind: KindDouble, Double: 3.14159}))
	require_(root.Create("nothing", Property{Kind: KindNull}))
	require_(root.Parent())

	require_(root.Create("origin", Property{Kind: KindVector, Vector: VectorData{X: 10, Y: -20}}))
	require_(root.Create("link", Property{Kind: KindUol, Str: "a fairly long repeated string"}))
	require_(root.Create("bounds", Property{Kind: KindConvex}))
	require_(root.MoveTo("bounds"))
	require_(root.Create("0", Property{Kind: KindVector, Vector: VectorData{X: 0, Y: 0}}))
	require_(root.Create("1", Property{Kind: KindVector, Vector: VectorData{X: 5, Y: 5}}))
	require_(root.Parent())

	require_(root.Create("image", Property{Kind: KindCanvas, Canvas: CanvasData{
		Width:      4,
		Height:     4,
		Format:     FormatBgra4444,
		MagLevel:   0,
		Compressed: []byte{1, 2, 3, 4, 5},
	}}))

	wavHeader := make([]byte, 18)
	for i := range wavHeader {
		wavHeader[i] = byte(i)
	}
	require_(root.Create("sound", Property{Kind: KindSound, Sound: SoundData{
		Duration:  2000,
		WavHeader: wavHeader,
		Audio:     []byte{9, 9, 9, 9, 9, 9, 9, 9},
	}}))

	return tree
}

func assertPropertyTreesEqual(t *testing.T, want, got *Tree) {
	t.Helper()
	err := want.RootCursor().Walk(func(wc *maptree.Cursor[Property]) error {
		gc := got.RootCursorMut()
		for _, name := range wc.Pwd()[1:] {
			require.NoError(t, gc.MoveTo(name))
		}
		require.Equal(t, wc.Get(), gc.Get(), "mismatch at %v", wc.Pwd())
		return nil
	})
	require.NoError(t, err)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tree := buildTestTree()
	ks := keystream.NoOp()

	buf := &seekBuf{}
	require.NoError(t, Encode(buf, ks, tree))

	buf.pos = 0
	decoded, err := Decode(buf, ks)
	require.NoError(t, err)

	assertPropertyTreesEqual(t, tree, decoded)
}

func TestEncodeDedupsRepeatedLongStrings(t *testing.T) {
	tree := maptree.New[Property]("Property", Property{Kind: KindPropertyList})
	root := tree.RootCursorMut()
	const repeated = "a fairly long repeated string value"
	require.NoError(t, root.Create("first", Property{Kind: KindString, Str: repeated}))
	require.NoError(t, root.Create("second", Property{Kind: KindString, Str: repeated}))

	ks := keystream.NoOp()
	buf := &seekBuf{}
	require.NoError(t, Encode(buf, ks, tree))

	// Strings are masked on the wire, so look for the string's encoded form.
	encoded := &seekBuf{}
	require.NoError(t, wzint.NewWriter(encoded, ks).WriteString(repeated))
	placedCount := bytes.Count(buf.buf, encoded.buf)
	require.Equal(t, 1, placedCount, "expected the repeated string to be placed exactly once")

	buf.pos = 0
	decoded, err := Decode(buf, ks)
	require.NoError(t, err)

	decodedRoot := decoded.RootCursorMut()
	require.NoError(t, decodedRoot.MoveTo("first"))
	require.Equal(t, repeated, decodedRoot.Get().Str)
	require.NoError(t, decodedRoot.Parent())
	require.NoError(t, decodedRoot.MoveTo("second"))
	require.Equal(t, repeated, decodedRoot.Get().Str)
}

func TestEncodeKeepsShortStringsDistinctlyPlaced(t *testing.T) {
	tree := maptree.New[Property]("Property", Property{Kind: KindPropertyList})
	root := tree.RootCursorMut()
	require.NoError(t, root.Create("a", Property{Kind: KindString, Str: "hi"}))
	require.NoError(t, root.Create("b", Property{Kind: KindString, Str: "hi"}))

	ks := keystream.NoOp()
	buf := &seekBuf{}
	require.NoError(t, Encode(buf, ks, tree))

	encoded := &seekBuf{}
	require.NoError(t, wzint.NewWriter(encoded, ks).WriteString("hi"))
	require.Equal(t, 2, bytes.Count(buf.buf, encoded.buf), "expected the short string to be placed twice")

	buf.pos = 0
	decoded, err := Decode(buf, ks)
	require.NoError(t, err)

	decodedRoot := decoded.RootCursorMut()
	require.NoError(t, decodedRoot.MoveTo("a"))
	require.Equal(t, "hi", decodedRoot.Get().Str)
	require.NoError(t, decodedRoot.Parent())
	require.NoError(t, decodedRoot.MoveTo("b"))
	require.Equal(t, "hi", decodedRoot.Get().Str)
}

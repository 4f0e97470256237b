package archive

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gowz/wz/keystream"
	"github.com/gowz/wz/wzint"
)

type bytesProvider struct{ data []byte }

func (p bytesProvider) Size() int32 { return int32(len(p.data)) }

func (p bytesProvider) Checksum() int32 {
	var sum int32
	for _, b := range p.data {
		sum += int32(b)
	}
	return sum
}

func (p bytesProvider) WriteTo(w *wzint.Writer) error {
	return w.WriteRaw(p.data)
}

func TestOffsetInvolution(t *testing.T) {
	cases := []struct{ p, s int64; k uint32; o uint32 }{
		{100, 60, 1876, 500},
		{0, 0, 1, 0},
		{1 << 20, 60, 53047, 1 << 10},
	}
	for _, c := range cases {
		stored := EncodeOffset(c.o, c.p, c.s, c.k)
		got := DecodeOffset(stored, c.p, c.s, c.k)
		require.Equal(t, c.o, got)
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	h := NewHeader("Package file v1.0 Copyright 2002 Wizet, ZMS", 0xAC)
	h.TotalSize = 6480

	buf := &memBuf{}
	require.NoError(t, WriteHeader(buf, h))

	got, err := ReadHeader(bytes.NewReader(buf.buf))
	require.NoError(t, err)
	require.Equal(t, h.TotalSize, got.TotalSize)
	require.Equal(t, h.ContentStart, got.ContentStart)
	require.Equal(t, h.Description, got.Description)
	require.Equal(t, h.VersionHash, got.VersionHash)
}

func TestWriteThenOpenRoundTrip(t *testing.T) {
	b := NewBuilder("")
	root := b.Root()
	require.NoError(t, AddImage(root, "a.img", bytesProvider{data: []byte("hello world")}))
	require.NoError(t, AddPackage(root, "Sub"))
	require.NoError(t, root.MoveTo("Sub"))
	require.NoError(t, AddImage(root, "b.img", bytesProvider{data: []byte("nested image bytes")}))

	out := &memBuf{}
	header, err := Write(out, b.Tree(), WriteOptions{
		Description: "Package file v1.0 Copyright 2002 Wizet, ZMS",
		Version:     83,
		Selector:    keystream.SelectorNone,
	})
	require.NoError(t, err)
	require.Equal(t, uint16(0xAC), header.VersionHash)

	a, err := Open(bytes.NewReader(out.buf), "", OpenOptions{
		Selector:      keystream.SelectorNone,
		ForcedVersion: 83,
	})
	require.NoError(t, err)

	cursor := a.Tree.RootCursor()
	require.ElementsMatch(t, []string{"a.img", "Sub"}, cursor.List())

	require.NoError(t, cursor.MoveTo("a.img"))
	imgContent := cursor.Get()
	require.Equal(t, KindImage, imgContent.Kind)
	body, err := a.ReadImage(imgContent)
	require.NoError(t, err)
	require.Equal(t, []byte("hello world"), body)
	require.NoError(t, cursor.Parent())

	require.NoError(t, cursor.MoveTo("Sub"))
	require.Equal(t, []string{"b.img"}, cursor.List())
	require.NoError(t, cursor.MoveTo("b.img"))
	nestedContent := cursor.Get()
	nestedBody, err := a.ReadImage(nestedContent)
	require.NoError(t, err)
	require.Equal(t, []byte("nested image bytes"), nestedBody)
}

func TestWriteBruteforceOpen(t *testing.T) {
	b := NewBuilder("")
	root := b.Root()
	require.NoError(t, AddImage(root, "only.img", bytesProvider{data: []byte("x")}))

	out := &memBuf{}
	_, err := Write(out, b.Tree(), WriteOptions{
		Description: "Package file v1.0 Copyright 2002 Wizet, ZMS",
		Version:     83,
		Selector:    keystream.SelectorNone,
	})
	require.NoError(t, err)

	a, err := Open(bytes.NewReader(out.buf), "", OpenOptions{Selector: keystream.SelectorNone})
	require.NoError(t, err)
	require.Equal(t, uint32(1876), a.VersionKey)
}

package main

import (
	"github.com/gowz/wz/archive"
	"github.com/gowz/wz/wzint"
)

// bytesProvider serves an Image leaf's bytes straight out of memory,
// read whole from disk when the directory tree is walked for creation.
type bytesProvider struct {
	data []byte
}

func (p *bytesProvider) Size() int32     { return int32(len(p.data)) }
func (p *bytesProvider) Checksum() int32 { return archive.Checksum(p.data) }
func (p *bytesProvider) WriteTo(w *wzint.Writer) error {
	return w.WriteRaw(p.data)
}

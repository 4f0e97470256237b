package archive

import (
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/gowz/wz/keystream"
	"github.com/gowz/wz/maptree"
	"github.com/gowz/wz/wzhash"
	"github.com/gowz/wz/wzint"
)

// WriteOptions configures Write.
type WriteOptions struct {
	Description string
	Version     int
	Selector    keystream.Selector
}

// Write computes sizes, checksums and obfuscated offsets for tree (whose
// root must be a Package, with every Image leaf carrying a non-nil
// Provider), then emits a complete archive file to w. It returns the
// header actually written.
func Write(w io.WriteSeeker, tree *maptree.Map[Content], opts WriteOptions) (*Header, error) {
	versionHash, versionKey := wzhash.Checksum(itoa(opts.Version))
	ks, err := keystream.ForSelector(opts.Selector)
	if err != nil {
		return nil, err
	}

	root := tree.RootCursorMut()
	if err := sizeChecksumPass(root, ks); err != nil {
		return nil, err
	}
	rootContent := root.Get()

	totalSize := uint64(rootContent.Size) + 2
	if totalSize > math.MaxInt32 {
		return nil, ErrTooLarge
	}

	header := NewHeader(opts.Description, versionHash)
	header.TotalSize = totalSize
	if err := WriteHeader(w, header); err != nil {
		return nil, err
	}

	wr := wzint.NewWriter(w, ks)
	if err := emitBody(wr, root, header.ContentOffset(), header.ContentOffset(), versionKey); err != nil {
		return nil, err
	}
	return header, nil
}

// sizeChecksumPass walks tree in post-order, computing each Package node's
// aggregate size and checksum from its (already-known) children. Image
// nodes are left untouched: their Size/Checksum come from their Provider
// and must already be set by the caller.
func sizeChecksumPass(c *maptree.CursorMut[Content], ks keystream.Keystream) error {
	content := c.Get()
	if content.Kind != KindPackage {
		return nil
	}

	names := c.List()
	var bodySize int64
	var checksum uint32
	for _, name := range names {
		if err := c.MoveTo(name); err != nil {
			return err
		}
		if err := sizeChecksumPass(c, ks); err != nil {
			return err
		}
		child := c.Get()
		if err := c.Parent(); err != nil {
			return err
		}

		descBytes, err := encodeDescriptorBytes(ks, name, child)
		if err != nil {
			return err
		}
		bodySize += int64(len(descBytes)) + 4 + int64(child.Size)
		checksum += sumBytes(descBytes) + uint32(child.Checksum)
	}

	countSize := wzint.SizeCompressedInt32(int32(len(names)))
	content.Size = int32(int64(countSize) + bodySize)
	content.Checksum = int32(checksum)
	*c.GetMut() = content
	return nil
}

// encodeDescriptorBytes encodes the tag/name/size/checksum prefix of a
// child's descriptor (everything but the obfuscated offset field, whose
// value depends on layout decided only in the later offset pass).
func encodeDescriptorBytes(ks keystream.Keystream, name string, content Content) ([]byte, error) {
	buf := &memBuf{}
	w := wzint.NewWriter(buf, ks)
	if err := w.WriteByte(tagFromKind(content.Kind)); err != nil {
		return nil, err
	}
	if err := w.WriteString(name); err != nil {
		return nil, err
	}
	if err := w.WriteCompressedInt32(content.Size); err != nil {
		return nil, err
	}
	if err := w.WriteCompressedInt32(content.Checksum); err != nil {
		return nil, err
	}
	return buf.buf, nil
}

func metadataSize(ks keystream.Keystream, name string, content Content) (int, error) {
	descBytes, err := encodeDescriptorBytes(ks, name, content)
	if err != nil {
		return 0, err
	}
	return len(descBytes) + 4, nil
}

// emitBody writes one Package body (count, every child's descriptor, then
// every child's own body) at the current cursor position. bodyStart is
// the absolute offset this body begins at; s and k parameterize the
// offset obfuscation transform.
func emitBody(w *wzint.Writer, c *maptree.CursorMut[Content], bodyStart, s int64, k uint32) error {
	names := c.List()
	contents := make([]Content, len(names))
	for i, name := range names {
		if err := c.MoveTo(name); err != nil {
			return err
		}
		contents[i] = c.Get()
		if err := c.Parent(); err != nil {
			return err
		}
	}

	if err := w.WriteCompressedInt32(int32(len(names))); err != nil {
		return err
	}

	headerSize := int64(wzint.SizeCompressedInt32(int32(len(names))))
	offsets := make([]int64, len(names))
	for i, name := range names {
		size, err := metadataSize(w.Keystream(), name, contents[i])
		if err != nil {
			return err
		}
		headerSize += int64(size)
	}
	next := bodyStart + headerSize
	for i := range names {
		offsets[i] = next
		next += int64(contents[i].Size)
	}

	for i, name := range names {
		content := contents[i]
		if err := w.WriteByte(tagFromKind(content.Kind)); err != nil {
			return err
		}
		if err := w.WriteString(name); err != nil {
			return err
		}
		if err := w.WriteCompressedInt32(content.Size); err != nil {
			return err
		}
		if err := w.WriteCompressedInt32(content.Checksum); err != nil {
			return err
		}
		offPos, err := w.Pos()
		if err != nil {
			return err
		}
		encoded := EncodeOffset(uint32(offsets[i]), offPos, s, k)
		if err := w.WriteU32(encoded); err != nil {
			return err
		}
	}

	for i, name := range names {
		content := contents[i]
		if content.Kind == KindPackage {
			if err := c.MoveTo(name); err != nil {
				return err
			}
			if err := emitBody(w, c, offsets[i], s, k); err != nil {
				return err
			}
			if err := c.Parent(); err != nil {
				return err
			}
			continue
		}
		if content.Provider == nil {
			return errors.Errorf("archive: image node %q has no byte provider", name)
		}
		if err := content.Provider.WriteTo(w); err != nil {
			return err
		}
	}
	return nil
}

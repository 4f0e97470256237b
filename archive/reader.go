package archive

import (
	"io"

	"github.com/pkg/errors"

	"github.com/gowz/wz/keystream"
	"github.com/gowz/wz/maptree"
	"github.com/gowz/wz/wzhash"
	"github.com/gowz/wz/wzint"
)

// Archive is an opened, fully-decoded archive file: its header plus the
// directory tree rooted at a synthetic Package named after the file.
type Archive struct {
	Header     *Header
	Tree       *maptree.Map[Content]
	VersionKey uint32

	rs io.ReadSeeker
	ks keystream.Keystream
}

// OpenOptions controls how Open resolves the version key.
type OpenOptions struct {
	// Selector picks the keystream (gms/kms/none).
	Selector keystream.Selector
	// ForcedVersion, if positive, skips bruteforce: the caller asserts the
	// archive was produced under this version. Its hash must still match
	// the header's version_hash.
	ForcedVersion int
}

// Open reads the header and bruteforces (or accepts a forced) version key,
// then decodes the full directory tree.
func Open(rs io.ReadSeeker, rootName string, opts OpenOptions) (*Archive, error) {
	header, err := ReadHeader(rs)
	if err != nil {
		return nil, err
	}

	ks, err := keystream.ForSelector(opts.Selector)
	if err != nil {
		return nil, err
	}

	a := &Archive{Header: header, rs: rs, ks: ks}

	key, err := a.resolveVersionKey(opts)
	if err != nil {
		return nil, err
	}
	a.VersionKey = key

	tree := maptree.New(rootName, Content{Kind: KindPackage})
	rd := wzint.NewReader(rs, ks)
	if err := rd.SeekAbs(header.ContentOffset()); err != nil {
		return nil, err
	}
	if err := a.decodePackage(rd, header.ContentOffset(), key, tree.RootCursorMut()); err != nil {
		return nil, err
	}
	a.Tree = tree
	return a, nil
}

func (a *Archive) resolveVersionKey(opts OpenOptions) (uint32, error) {
	s := a.Header.ContentOffset()
	rd := wzint.NewReader(a.rs, a.ks)

	if opts.ForcedVersion > 0 {
		hash, key := wzhash.Checksum(itoa(opts.ForcedVersion))
		if hash != a.Header.VersionHash {
			return 0, errVersion(a.Header.VersionHash, hash)
		}
		return key, nil
	}

	for _, key := range wzhash.Candidates(a.Header.VersionHash) {
		if err := rd.SeekAbs(s); err != nil {
			return 0, err
		}
		ok, err := a.tryKey(rd, s, key)
		if err != nil {
			return 0, err
		}
		if ok {
			return key, nil
		}
	}
	return 0, ErrBruteforce
}

// tryKey validates the bounds predicate against only the root package's
// direct children, without building any tree. Any decode error under the
// wrong key is treated as a rejection, not a hard failure.
func (a *Archive) tryKey(rd *wzint.Reader, s int64, k uint32) (ok bool, err error) {
	totalSize := a.Header.TotalSize

	n, ferr := rd.ReadCompressedInt32()
	if ferr != nil || n < 0 {
		return false, nil
	}
	for i := int32(0); i < n; i++ {
		tag, ferr := rd.ReadByte()
		if ferr != nil {
			return false, nil
		}
		switch tag {
		case tagReferenced:
			tagOffset, ferr := rd.ReadU32()
			if ferr != nil {
				return false, nil
			}
			saved, _ := rd.Pos()
			if err := rd.SeekAbs(int64(tagOffset)); err != nil {
				return false, nil
			}
			if _, ferr := rd.ReadByte(); ferr != nil {
				return false, nil
			}
			if _, ferr := rd.ReadString(); ferr != nil {
				return false, nil
			}
			if err := rd.SeekAbs(saved); err != nil {
				return false, nil
			}
			if _, ferr := rd.ReadCompressedInt32(); ferr != nil {
				return false, nil
			}
			if _, ferr := rd.ReadCompressedInt32(); ferr != nil {
				return false, nil
			}
		case tagPackage, tagImage:
			if _, ferr := rd.ReadString(); ferr != nil {
				return false, nil
			}
			if _, ferr := rd.ReadCompressedInt32(); ferr != nil {
				return false, nil
			}
			if _, ferr := rd.ReadCompressedInt32(); ferr != nil {
				return false, nil
			}
		default:
			return false, nil
		}

		offPos, _ := rd.Pos()
		rawOff, ferr := rd.ReadU32()
		if ferr != nil {
			return false, nil
		}
		offset := DecodeOffset(rawOff, offPos, s, k)
		if uint64(offset) < uint64(s) || uint64(offset) >= uint64(s)+totalSize {
			return false, nil
		}
	}
	return true, nil
}

type packageEntry struct {
	name     string
	kind     Kind
	size     int32
	checksum int32
	offset   uint32
}

// decodePackage reads one Package body in full (its list of ContentRefs),
// then recurses into each Package-kind child at its own offset.
func (a *Archive) decodePackage(rd *wzint.Reader, s int64, k uint32, cursor *maptree.CursorMut[Content]) error {
	n, err := rd.ReadCompressedInt32()
	if err != nil {
		return err
	}
	if n < 0 {
		return errors.Errorf("archive: negative content count %d", n)
	}

	entries := make([]packageEntry, 0, n)
	for i := int32(0); i < n; i++ {
		tag, err := rd.ReadByte()
		if err != nil {
			return err
		}

		var name string
		var kind Kind
		switch tag {
		case tagReferenced:
			tagOffset, err := rd.ReadU32()
			if err != nil {
				return err
			}
			saved, err := rd.Pos()
			if err != nil {
				return err
			}
			if err := rd.SeekAbs(int64(tagOffset)); err != nil {
				return err
			}
			realTag, err := rd.ReadByte()
			if err != nil {
				return err
			}
			name, err = rd.ReadString()
			if err != nil {
				return err
			}
			if err := rd.SeekAbs(saved); err != nil {
				return err
			}
			kind, err = kindFromTag(realTag)
			if err != nil {
				return err
			}
		case tagPackage, tagImage:
			name, err = rd.ReadString()
			if err != nil {
				return err
			}
			kind, err = kindFromTag(tag)
			if err != nil {
				return err
			}
		default:
			return errTag(tag)
		}

		size, err := rd.ReadCompressedInt32()
		if err != nil {
			return err
		}
		checksum, err := rd.ReadCompressedInt32()
		if err != nil {
			return err
		}
		offPos, err := rd.Pos()
		if err != nil {
			return err
		}
		rawOff, err := rd.ReadU32()
		if err != nil {
			return err
		}
		offset := DecodeOffset(rawOff, offPos, s, k)
		if uint64(offset) < uint64(s) || uint64(offset) >= uint64(s)+a.Header.TotalSize {
			return errOffsetBounds(name, offset, uint32(s), int64(a.Header.TotalSize))
		}

		entries = append(entries, packageEntry{name, kind, size, checksum, offset})
	}

	for _, e := range entries {
		content := Content{Kind: e.kind, Size: e.size, Checksum: e.checksum, Offset: e.offset}
		if err := cursor.Create(e.name, content); err != nil {
			return err
		}
		if e.kind != KindPackage {
			continue
		}
		if err := cursor.MoveTo(e.name); err != nil {
			return err
		}
		if err := rd.SeekAbs(int64(e.offset)); err != nil {
			return err
		}
		if err := a.decodePackage(rd, s, k, cursor); err != nil {
			return err
		}
		if err := cursor.Parent(); err != nil {
			return err
		}
	}
	return nil
}

// Keystream returns the keystream this archive was opened with, for
// constructing an Image reader over bytes returned by ReadImage.
func (a *Archive) Keystream() keystream.Keystream {
	return a.ks
}

// ReadImage returns the raw, still-opaque bytes of the Image leaf
// described by content, for handoff to the wzimage package.
func (a *Archive) ReadImage(content Content) ([]byte, error) {
	if content.Kind != KindImage {
		return nil, errors.New("archive: ReadImage called on a non-image node")
	}
	if _, err := a.rs.Seek(int64(content.Offset), io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "archive: seek to image body")
	}
	buf := make([]byte, content.Size)
	if _, err := io.ReadFull(a.rs, buf); err != nil {
		return nil, errors.Wrap(err, "archive: read image body")
	}
	return buf, nil
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var digits [20]byte
	i := len(digits)
	for v > 0 {
		i--
		digits[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		digits[i] = '-'
	}
	return string(digits[i:])
}

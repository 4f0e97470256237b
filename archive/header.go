package archive

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Magic is the fixed 4-byte identifier every archive file begins with.
const Magic = "PKG1"

// Header is the fixed-then-variable preamble of an archive file.
type Header struct {
	TotalSize    uint64
	ContentStart uint32
	Description  string
	VersionHash  uint16
}

// ContentOffset returns the absolute offset of the root package body,
// ContentStart+2, immediately after the two-byte version hash field.
func (h *Header) ContentOffset() int64 {
	return int64(h.ContentStart) + 2
}

// ReadHeader parses a Header from the start of r, leaving the stream
// positioned at h.ContentOffset().
func ReadHeader(r io.ReadSeeker) (*Header, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "archive: seek to header")
	}

	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, errors.Wrap(err, "archive: read magic")
	}
	if string(magic[:]) != Magic {
		return nil, errHeader("magic mismatch")
	}

	var totalSize uint64
	if err := binary.Read(r, binary.LittleEndian, &totalSize); err != nil {
		return nil, errors.Wrap(err, "archive: read total_size")
	}

	var contentStart uint32
	if err := binary.Read(r, binary.LittleEndian, &contentStart); err != nil {
		return nil, errors.Wrap(err, "archive: read content_start")
	}
	if contentStart < 17 {
		return nil, errHeader("content_start must be at least 17")
	}

	descLen := int(contentStart) - 17
	desc := make([]byte, descLen)
	if descLen > 0 {
		if _, err := io.ReadFull(r, desc); err != nil {
			return nil, errors.Wrap(err, "archive: read description")
		}
	}

	var terminator [1]byte
	if _, err := io.ReadFull(r, terminator[:]); err != nil {
		return nil, errors.Wrap(err, "archive: read description terminator")
	}
	if terminator[0] != 0x00 {
		return nil, errHeader("description not nul-terminated")
	}

	var versionHash uint16
	if err := binary.Read(r, binary.LittleEndian, &versionHash); err != nil {
		return nil, errors.Wrap(err, "archive: read version_hash")
	}

	if _, err := r.Seek(int64(contentStart)+2, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "archive: seek past header")
	}

	return &Header{
		TotalSize:    totalSize,
		ContentStart: contentStart,
		Description:  string(desc),
		VersionHash:  versionHash,
	}, nil
}

// WriteHeader writes h to the start of w and leaves the stream positioned
// at h.ContentOffset().
func WriteHeader(w io.WriteSeeker, h *Header) error {
	if _, err := w.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "archive: seek to header")
	}
	if _, err := w.Write([]byte(Magic)); err != nil {
		return errors.Wrap(err, "archive: write magic")
	}
	if err := binary.Write(w, binary.LittleEndian, h.TotalSize); err != nil {
		return errors.Wrap(err, "archive: write total_size")
	}
	if err := binary.Write(w, binary.LittleEndian, h.ContentStart); err != nil {
		return errors.Wrap(err, "archive: write content_start")
	}
	if _, err := w.Write([]byte(h.Description)); err != nil {
		return errors.Wrap(err, "archive: write description")
	}
	if _, err := w.Write([]byte{0x00}); err != nil {
		return errors.Wrap(err, "archive: write description terminator")
	}
	if err := binary.Write(w, binary.LittleEndian, h.VersionHash); err != nil {
		return errors.Wrap(err, "archive: write version_hash")
	}
	_, err := w.Seek(h.ContentOffset(), io.SeekStart)
	return errors.Wrap(err, "archive: seek past header")
}

// NewHeader builds a Header for a freshly-written archive with the given
// description and version hash. ContentStart is fixed at 17+len(description)
// since the writer never pads the preamble.
func NewHeader(description string, versionHash uint16) *Header {
	return &Header{
		ContentStart: uint32(17 + len(description)),
		Description:  description,
		VersionHash:  versionHash,
	}
}

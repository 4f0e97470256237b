package archive

import "github.com/pkg/errors"

// ErrBruteforce is returned when no candidate version key satisfies the
// offset-bounds predicate for every top-level content entry.
var ErrBruteforce = errors.New("archive: no version key decodes a consistent root directory")

// ErrTooLarge is returned by the writer when the computed total size would
// overflow a 32-bit signed field.
var ErrTooLarge = errors.New("archive: emitted size exceeds a 32-bit field")

func errHeader(reason string) error {
	return errors.Errorf("archive: malformed header: %s", reason)
}

func errTag(tag byte) error {
	return errors.Errorf("archive: unknown content tag 0x%02x", tag)
}

func errVersion(want uint16, got uint16) error {
	return errors.Errorf("archive: version hash mismatch: want 0x%02x, forced version hashes to 0x%02x", want, got)
}

func errOffsetBounds(name string, offset, start uint32, size int64) error {
	return errors.Errorf("archive: %s offset 0x%x outside content region [0x%x, 0x%x)", name, offset, start, uint32(int64(start)+size))
}

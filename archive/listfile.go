package archive

import (
	"encoding/binary"
	"errors"
	"io"
	"unicode/utf16"

	"github.com/gowz/wz/keystream"
)

// DecodeListFile decodes a list-file: a plain UTF-16LE string table
// (length-prefixed, NUL-terminated, keystream-masked but without the
// incrementing string mask used elsewhere) as shipped alongside an archive
// to enumerate its Image paths for extraction tooling.
//
// The very last entry in a list-file is stored with its final character
// truncated by one byte; DecodeListFile restores it to 'g' (every known
// list-file's last entry names a ".img" path).
func DecodeListFile(r io.Reader, ks keystream.Keystream) ([]string, error) {
	var entries []string
	for {
		var length uint32
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		buf := make([]byte, int(length)*2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		if ks != nil {
			ks.XOR(buf)
		}

		units := make([]uint16, length)
		for i := range units {
			units[i] = binary.LittleEndian.Uint16(buf[i*2:])
		}
		entries = append(entries, string(utf16.Decode(units)))

		var terminator uint16
		if err := binary.Read(r, binary.LittleEndian, &terminator); err != nil {
			return nil, err
		}
	}

	if n := len(entries); n > 0 {
		last := entries[n-1]
		if len(last) > 0 {
			entries[n-1] = last[:len(last)-1] + "g"
		}
	}
	return entries, nil
}

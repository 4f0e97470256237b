package wzimage

import "bytes"

// soundHeaderPrefix is the fixed 51-byte header every Sound_DX8 object
// carries ahead of its variable-length WAVEFORMATEX bytes; it is the
// little-endian byte form of two well-known COM media-type GUIDs.
var soundHeaderPrefix = []byte{
	0x02, 0x83, 0xEB, 0x36, 0xE4, 0x4F, 0x52, 0xCE, 0x11, 0x9F, 0x53, 0x00, 0x20, 0xAF, 0x0B, 0xA7,
	0x70, 0x8B, 0xEB, 0x36, 0xE4, 0x4F, 0x52, 0xCE, 0x11, 0x9F, 0x53, 0x00, 0x20, 0xAF, 0x0B, 0xA7,
	0x70, 0x00, 0x01, 0x81, 0x9F, 0x58, 0x05, 0x56, 0xC3, 0xCE, 0x11, 0xBF, 0x01, 0x00, 0xAA, 0x00,
	0x55, 0x59, 0x5A,
}

func validateSoundHeader(got []byte) error {
	if !bytes.Equal(got, soundHeaderPrefix) {
		return errSoundHeader(got)
	}
	return nil
}

func validateWavHeaderLength(n int) error {
	if n < 16 || n == 17 {
		return errWavHeaderLength(n)
	}
	return nil
}

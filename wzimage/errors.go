package wzimage

import "github.com/pkg/errors"

func errValueTag(tag byte) error {
	return errors.Errorf("wzimage: unknown property value tag 0x%02x", tag)
}

func errUolTag(tag byte) error {
	return errors.Errorf("wzimage: unknown UOL string tag 0x%02x", tag)
}

func errUolUnresolved(offset uint32) error {
	return errors.Errorf("wzimage: back-referenced string at offset 0x%x does not resolve to a placed string", offset)
}

func errObjectTypename(name string) error {
	return errors.Errorf("wzimage: unknown object type name %q", name)
}

func errEncodingFormat(fmt1 int32, fmt2 uint8) error {
	return errors.Errorf("wzimage: unrecognized canvas format pair (%d, %d)", fmt1, fmt2)
}

func errCanvasDimensions(w, h int32) error {
	return errors.Errorf("wzimage: canvas dimensions %dx%d exceed 0x10000", w, h)
}

func errCanvasDataLength(n int32) error {
	return errors.Errorf("wzimage: canvas data_length %d must be at least 1", n)
}

func errSoundHeader(got []byte) error {
	return errors.Errorf("wzimage: sound header prefix mismatch: got % x", got)
}

func errWavHeaderLength(n int) error {
	return errors.Errorf("wzimage: wav header length %d must be >= 16 and != 17", n)
}

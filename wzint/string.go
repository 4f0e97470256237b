package wzint

import (
	"math"
	"unicode/utf16"

	"github.com/pkg/errors"
)

// ReadString decodes the dual UTF-8/UTF-16LE masked string format: a
// leading signed length/encoding check byte, optionally followed by a
// 4-byte long-form length, followed by the masked body.
func (r *Reader) ReadString() (string, error) {
	check, err := r.ReadI8()
	if err != nil {
		return "", err
	}

	switch {
	case check == 0:
		return "", nil

	case check == math.MinInt8:
		length, err := r.ReadI32()
		if err != nil {
			return "", err
		}
		if length < 0 {
			return "", errors.Errorf("wzint: negative long UTF-8 string length %d", length)
		}
		buf, err := r.ReadMaskedUTF8Bytes(int(length))
		if err != nil {
			return "", err
		}
		return string(buf), nil

	case check == math.MaxInt8:
		length, err := r.ReadI32()
		if err != nil {
			return "", err
		}
		if length < 0 {
			return "", errors.Errorf("wzint: negative long UTF-16 string length %d", length)
		}
		units, err := r.ReadMaskedUTF16Bytes(int(length))
		if err != nil {
			return "", err
		}
		return string(utf16.Decode(units)), nil

	case check < 0:
		length := -int(check)
		buf, err := r.ReadMaskedUTF8Bytes(length)
		if err != nil {
			return "", err
		}
		return string(buf), nil

	default:
		length := int(check)
		units, err := r.ReadMaskedUTF16Bytes(length)
		if err != nil {
			return "", err
		}
		return string(utf16.Decode(units)), nil
	}
}

// The short-form check byte doubles as a long-form marker: i8::MIN (-128)
// for UTF-8, i8::MAX (127) for UTF-16LE. A length whose short-form check
// byte would collide with its encoding's marker must use the long form
// instead, which is why the two thresholds below differ by one: ASCII
// encodes the length as -length (so length==127 is still representable as
// -127), while UTF-16LE encodes the length as-is (so length==127 would
// collide with the long-form marker itself).
const (
	asciiLongFormThreshold  = 128 // length > math.MaxInt8
	unicodeLongFormThreshold = 127 // length >= math.MaxInt8
)

// WriteString encodes s using the dual UTF-8/UTF-16LE format: pure ASCII
// takes the UTF-8 encoding, anything else takes UTF-16LE.
func (w *Writer) WriteString(s string) error {
	if len(s) == 0 {
		return w.WriteByte(0)
	}

	if isASCII(s) {
		length := len(s)
		if length >= asciiLongFormThreshold {
			if err := w.WriteI8(math.MinInt8); err != nil {
				return err
			}
			if err := w.WriteI32(int32(length)); err != nil {
				return err
			}
		} else {
			if err := w.WriteI8(int8(-length)); err != nil {
				return err
			}
		}
		return w.WriteMaskedUTF8Bytes([]byte(s))
	}

	units := utf16.Encode([]rune(s))
	length := len(units)
	if length >= unicodeLongFormThreshold {
		if err := w.WriteI8(math.MaxInt8); err != nil {
			return err
		}
		if err := w.WriteI32(int32(length)); err != nil {
			return err
		}
	} else {
		if err := w.WriteI8(int8(length)); err != nil {
			return err
		}
	}
	return w.WriteMaskedUTF16Bytes(units)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// SizeString returns the encoded size in bytes of s, matching WriteString's
// choice of short/long form and UTF-8/UTF-16LE encoding.
func SizeString(s string) int {
	if len(s) == 0 {
		return 1
	}
	if isASCII(s) {
		length := len(s)
		if length >= asciiLongFormThreshold {
			return 5 + length
		}
		return 1 + length
	}
	length := len(utf16.Encode([]rune(s)))
	if length >= unicodeLongFormThreshold {
		return 5 + length*2
	}
	return 1 + length*2
}

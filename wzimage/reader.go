package wzimage

import (
	"io"

	"github.com/gowz/wz/keystream"
	"github.com/gowz/wz/maptree"
	"github.com/gowz/wz/wzint"
)

const (
	uolPlaced    byte = 0x00
	uolRef       byte = 0x01
	objPlaced    byte = 0x73
	objRef       byte = 0x1B
)

// stringCache maps the absolute byte position a string was first placed
// at to its decoded value, scoped to exactly one Image read.
type stringCache map[int64]string

// Decode parses an Image body from r starting at the current position,
// returning its property tree rooted at a PropertyList.
func Decode(r io.ReadSeeker, ks keystream.Keystream) (*Tree, error) {
	rd := wzint.NewReader(r, ks)
	cache := make(stringCache)

	tree := maptree.New[Property]("", Property{Kind: KindPropertyList})
	root := tree.RootCursorMut()

	typename, err := readUolString(rd, cache, objPlaced, objRef)
	if err != nil {
		return nil, err
	}
	if typename != "Property" {
		return nil, errObjectTypename(typename)
	}
	if err := decodeProperty(rd, cache, root); err != nil {
		return nil, err
	}
	return tree, nil
}

// readUolString decodes a UolString-shaped value: a one-byte tag
// distinguishing an inline placement from a back-reference, using
// placedTag/refTag as the two valid tag values in this context (0x00/0x01
// for property-level strings, 0x73/0x1B for object type names).
func readUolString(rd *wzint.Reader, cache stringCache, placedTag, refTag byte) (string, error) {
	pos, err := rd.Pos()
	if err != nil {
		return "", err
	}
	tag, err := rd.ReadByte()
	if err != nil {
		return "", err
	}

	switch tag {
	case placedTag:
		s, err := rd.ReadString()
		if err != nil {
			return "", err
		}
		cache[pos] = s
		return s, nil

	case refTag:
		offset, err := rd.ReadU32()
		if err != nil {
			return "", err
		}
		if s, ok := cache[int64(offset)]; ok {
			return s, nil
		}
		saved, err := rd.Pos()
		if err != nil {
			return "", err
		}
		if err := rd.SeekAbs(int64(offset)); err != nil {
			return "", err
		}
		innerTag, err := rd.ReadByte()
		if err != nil {
			return "", err
		}
		if innerTag != placedTag {
			return "", errUolUnresolved(offset)
		}
		s, err := rd.ReadString()
		if err != nil {
			return "", err
		}
		cache[int64(offset)] = s
		if err := rd.SeekAbs(saved); err != nil {
			return "", err
		}
		return s, nil

	default:
		return "", errUolTag(tag)
	}
}

func decodeProperty(rd *wzint.Reader, cache stringCache, cursor *maptree.CursorMut[Property]) error {
	if _, err := rd.ReadU16(); err != nil { // reserved
		return err
	}
	n, err := rd.ReadCompressedInt32()
	if err != nil {
		return err
	}

	for i := int32(0); i < n; i++ {
		name, err := readUolString(rd, cache, uolPlaced, uolRef)
		if err != nil {
			return err
		}
		valTag, err := rd.ReadByte()
		if err != nil {
			return err
		}

		switch valTag {
		case 0:
			if err := cursor.Create(name, Property{Kind: KindNull}); err != nil {
				return err
			}

		case 2, 11:
			v, err := rd.ReadI16()
			if err != nil {
				return err
			}
			if err := cursor.Create(name, Property{Kind: KindShort, Short: v}); err != nil {
				return err
			}

		case 3, 19:
			v, err := rd.ReadCompressedInt32()
			if err != nil {
				return err
			}
			if err := cursor.Create(name, Property{Kind: KindInt, Int: v}); err != nil {
				return err
			}

		case 20:
			v, err := rd.ReadCompressedInt64()
			if err != nil {
				return err
			}
			if err := cursor.Create(name, Property{Kind: KindLong, Long: v}); err != nil {
				return err
			}

		case 4:
			v, err := rd.ReadCompressedFloat32()
			if err != nil {
				return err
			}
			if err := cursor.Create(name, Property{Kind: KindFloat, Float: v}); err != nil {
				return err
			}

		case 5:
			v, err := rd.ReadF64()
			if err != nil {
				return err
			}
			if err := cursor.Create(name, Property{Kind: KindDouble, Double: v}); err != nil {
				return err
			}

		case 8:
			s, err := readUolString(rd, cache, uolPlaced, uolRef)
			if err != nil {
				return err
			}
			if err := cursor.Create(name, Property{Kind: KindString, Str: s}); err != nil {
				return err
			}

		case 9:
			size, err := rd.ReadU32()
			if err != nil {
				return err
			}
			start, err := rd.Pos()
			if err != nil {
				return err
			}
			if err := decodeObject(rd, cache, cursor, name); err != nil {
				return err
			}
			if err := rd.SeekAbs(start + int64(size)); err != nil {
				return err
			}

		default:
			return errValueTag(valTag)
		}
	}
	return nil
}

func decodeObject(rd *wzint.Reader, cache stringCache, cursor *maptree.CursorMut[Property], name string) error {
	typename, err := readUolString(rd, cache, objPlaced, objRef)
	if err != nil {
		return err
	}

	switch typename {
	case "Property":
		if err := cursor.Create(name, Property{Kind: KindPropertyList}); err != nil {
			return err
		}
		if err := cursor.MoveTo(name); err != nil {
			return err
		}
		if err := decodeProperty(rd, cache, cursor); err != nil {
			return err
		}
		return cursor.Parent()

	case "Canvas":
		return decodeCanvas(rd, cache, cursor, name)

	case "Shape2D#Convex2D":
		if err := cursor.Create(name, Property{Kind: KindConvex}); err != nil {
			return err
		}
		if err := cursor.MoveTo(name); err != nil {
			return err
		}
		k, err := rd.ReadCompressedInt32()
		if err != nil {
			return err
		}
		for i := int32(0); i < k; i++ {
			if err := decodeObject(rd, cache, cursor, itoa32(i)); err != nil {
				return err
			}
		}
		return cursor.Parent()

	case "Shape2D#Vector2D":
		x, err := rd.ReadCompressedInt32()
		if err != nil {
			return err
		}
		y, err := rd.ReadCompressedInt32()
		if err != nil {
			return err
		}
		return cursor.Create(name, Property{Kind: KindVector, Vector: VectorData{X: x, Y: y}})

	case "UOL":
		if _, err := rd.ReadByte(); err != nil {
			return err
		}
		s, err := readUolString(rd, cache, uolPlaced, uolRef)
		if err != nil {
			return err
		}
		return cursor.Create(name, Property{Kind: KindUol, Str: s})

	case "Sound_DX8":
		return decodeSound(rd, cursor, name)

	default:
		return errObjectTypename(typename)
	}
}

func decodeCanvas(rd *wzint.Reader, cache stringCache, cursor *maptree.CursorMut[Property], name string) error {
	if err := cursor.Create(name, Property{Kind: KindCanvas}); err != nil {
		return err
	}
	if err := cursor.MoveTo(name); err != nil {
		return err
	}

	if _, err := rd.ReadByte(); err != nil { // reserved
		return err
	}
	hasChildren, err := rd.ReadByte()
	if err != nil {
		return err
	}
	if hasChildren != 0 {
		if err := decodeProperty(rd, cache, cursor); err != nil {
			return err
		}
	}

	w, err := rd.ReadCompressedInt32()
	if err != nil {
		return err
	}
	h, err := rd.ReadCompressedInt32()
	if err != nil {
		return err
	}
	if w < 0 || w > maxCanvasDimension || h < 0 || h > maxCanvasDimension {
		return errCanvasDimensions(w, h)
	}

	fmt1, err := rd.ReadCompressedInt32()
	if err != nil {
		return err
	}
	fmt2, err := rd.ReadByte()
	if err != nil {
		return err
	}
	format, err := canvasFormatFromPair(fmt1, fmt2)
	if err != nil {
		return err
	}

	mag, err := rd.ReadByte()
	if err != nil {
		return err
	}
	if _, err := rd.ReadU32(); err != nil { // reserved, always zero
		return err
	}
	dataLen, err := rd.ReadI32()
	if err != nil {
		return err
	}
	if dataLen < 1 {
		return errCanvasDataLength(dataLen)
	}
	if _, err := rd.ReadByte(); err != nil { // reserved
		return err
	}
	compressed, err := rd.ReadFull(int(dataLen) - 1)
	if err != nil {
		return err
	}

	content := cursor.Get()
	content.Canvas = CanvasData{
		Width:       w,
		Height:      h,
		Format:      format,
		MagLevel:    mag,
		Compressed:  compressed,
		HasChildren: hasChildren != 0,
	}
	*cursor.GetMut() = content
	return cursor.Parent()
}

func decodeSound(rd *wzint.Reader, cursor *maptree.CursorMut[Property], name string) error {
	if _, err := rd.ReadByte(); err != nil { // reserved
		return err
	}
	dataLen, err := rd.ReadCompressedInt32()
	if err != nil {
		return err
	}
	if dataLen < 0 {
		return errCanvasDataLength(dataLen)
	}
	duration, err := rd.ReadCompressedInt32()
	if err != nil {
		return err
	}

	prefix, err := rd.ReadFull(len(soundHeaderPrefix))
	if err != nil {
		return err
	}
	if err := validateSoundHeader(prefix); err != nil {
		return err
	}

	wavLen, err := rd.ReadByte()
	if err != nil {
		return err
	}
	if err := validateWavHeaderLength(int(wavLen)); err != nil {
		return err
	}
	wavHeader, err := rd.ReadDecrypted(int(wavLen))
	if err != nil {
		return err
	}

	audio, err := rd.ReadFull(int(dataLen))
	if err != nil {
		return err
	}

	return cursor.Create(name, Property{Kind: KindSound, Sound: SoundData{
		Duration:  duration,
		WavHeader: wavHeader,
		Audio:     audio,
	}})
}

func itoa32(v int32) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var digits [12]byte
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

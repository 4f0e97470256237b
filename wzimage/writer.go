package wzimage

import (
	"io"

	"github.com/pkg/errors"

	"github.com/gowz/wz/keystream"
	"github.com/gowz/wz/maptree"
	"github.com/gowz/wz/wzint"
)

// placedStringCache maps a string value to the absolute offset of its
// first placement, letting the encoder dedup repeated long strings into
// back-references.
type placedStringCache map[string]int64

// referenceThreshold is the minimum encoded string length, in bytes, a
// previously-placed string must reach before the encoder will reuse its
// placement instead of writing it again inline.
const referenceThreshold = 6

// encoder walks a property tree emitting the Image grammar.
type encoder struct {
	w      *wzint.Writer
	placed placedStringCache
}

// Encode emits tree's Image body to w.
func Encode(w io.WriteSeeker, ks keystream.Keystream, tree *Tree) error {
	e := &encoder{w: wzint.NewWriter(w, ks), placed: make(placedStringCache)}
	if err := e.writeUolString("Property", objPlaced, objRef); err != nil {
		return err
	}
	return e.writeProperty(tree.RootCursorMut())
}

func (e *encoder) writeUolString(s string, placedTag, refTag byte) error {
	if prevOffset, ok := e.placed[s]; ok && wzint.SizeString(s) >= referenceThreshold {
		if err := e.w.WriteByte(refTag); err != nil {
			return err
		}
		return e.w.WriteU32(uint32(prevOffset))
	}

	pos, err := e.w.Pos()
	if err != nil {
		return err
	}
	if err := e.w.WriteByte(placedTag); err != nil {
		return err
	}
	if err := e.w.WriteString(s); err != nil {
		return err
	}
	if _, ok := e.placed[s]; !ok {
		e.placed[s] = pos
	}
	return nil
}

func (e *encoder) writeProperty(c *maptree.CursorMut[Property]) error {
	if err := e.w.WriteU16(0); err != nil { // reserved
		return err
	}
	names := c.List()
	if err := e.w.WriteCompressedInt32(int32(len(names))); err != nil {
		return err
	}
	for _, name := range names {
		if err := c.MoveTo(name); err != nil {
			return err
		}
		content := c.Get()
		if err := e.writeUolString(name, uolPlaced, uolRef); err != nil {
			return err
		}
		if err := e.writeValue(c, content); err != nil {
			return err
		}
		if err := c.Parent(); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) writeValue(c *maptree.CursorMut[Property], content Property) error {
	switch content.Kind {
	case KindNull:
		return e.w.WriteByte(0)

	case KindShort:
		if err := e.w.WriteByte(2); err != nil {
			return err
		}
		return e.w.WriteI16(content.Short)

	case KindInt:
		if err := e.w.WriteByte(3); err != nil {
			return err
		}
		return e.w.WriteCompressedInt32(content.Int)

	case KindLong:
		if err := e.w.WriteByte(20); err != nil {
			return err
		}
		return e.w.WriteCompressedInt64(content.Long)

	case KindFloat:
		if err := e.w.WriteByte(4); err != nil {
			return err
		}
		return e.w.WriteCompressedFloat32(content.Float)

	case KindDouble:
		if err := e.w.WriteByte(5); err != nil {
			return err
		}
		return e.w.WriteF64(content.Double)

	case KindString:
		if err := e.w.WriteByte(8); err != nil {
			return err
		}
		return e.writeUolString(content.Str, uolPlaced, uolRef)

	case KindPropertyList, KindCanvas, KindConvex, KindVector, KindUol, KindSound:
		if err := e.w.WriteByte(9); err != nil {
			return err
		}
		return e.writeBackpatched(c, content)

	default:
		return errors.Errorf("wzimage: cannot encode property kind %v", content.Kind)
	}
}

// writeBackpatched writes a zero-valued size placeholder, emits the
// object body, then seeks back to fill in the real size.
func (e *encoder) writeBackpatched(c *maptree.CursorMut[Property], content Property) error {
	if err := e.w.WriteU32(0); err != nil {
		return err
	}
	bodyStart, err := e.w.Pos()
	if err != nil {
		return err
	}
	if err := e.writeObject(c, content); err != nil {
		return err
	}
	end, err := e.w.Pos()
	if err != nil {
		return err
	}
	size := uint32(end - bodyStart)
	if err := e.w.SeekAbs(bodyStart - 4); err != nil {
		return err
	}
	if err := e.w.WriteU32(size); err != nil {
		return err
	}
	return e.w.SeekAbs(end)
}

func (e *encoder) writeObject(c *maptree.CursorMut[Property], content Property) error {
	switch content.Kind {
	case KindPropertyList:
		if err := e.writeUolString("Property", objPlaced, objRef); err != nil {
			return err
		}
		return e.writeProperty(c)

	case KindCanvas:
		return e.writeCanvas(c, content)

	case KindConvex:
		if err := e.writeUolString("Shape2D#Convex2D", objPlaced, objRef); err != nil {
			return err
		}
		names := c.List()
		if err := e.w.WriteCompressedInt32(int32(len(names))); err != nil {
			return err
		}
		for _, name := range names {
			if err := c.MoveTo(name); err != nil {
				return err
			}
			child := c.Get()
			if err := e.writeObject(c, child); err != nil {
				return err
			}
			if err := c.Parent(); err != nil {
				return err
			}
		}
		return nil

	case KindVector:
		if err := e.writeUolString("Shape2D#Vector2D", objPlaced, objRef); err != nil {
			return err
		}
		if err := e.w.WriteCompressedInt32(content.Vector.X); err != nil {
			return err
		}
		return e.w.WriteCompressedInt32(content.Vector.Y)

	case KindUol:
		if err := e.writeUolString("UOL", objPlaced, objRef); err != nil {
			return err
		}
		if err := e.w.WriteByte(0); err != nil {
			return err
		}
		return e.writeUolString(content.Str, uolPlaced, uolRef)

	case KindSound:
		return e.writeSound(content)

	default:
		return errors.Errorf("wzimage: cannot encode object of property kind %v", content.Kind)
	}
}

func (e *encoder) writeCanvas(c *maptree.CursorMut[Property], content Property) error {
	if err := e.writeUolString("Canvas", objPlaced, objRef); err != nil {
		return err
	}
	canvas := content.Canvas

	if err := e.w.WriteByte(0); err != nil { // reserved
		return err
	}
	hasChildren := byte(0)
	if canvas.HasChildren {
		hasChildren = 1
	}
	if err := e.w.WriteByte(hasChildren); err != nil {
		return err
	}
	if canvas.HasChildren {
		if err := e.writeProperty(c); err != nil {
			return err
		}
	}

	if err := e.w.WriteCompressedInt32(canvas.Width); err != nil {
		return err
	}
	if err := e.w.WriteCompressedInt32(canvas.Height); err != nil {
		return err
	}
	fmt1, fmt2 := canvasFormatToPair(canvas.Format)
	if err := e.w.WriteCompressedInt32(fmt1); err != nil {
		return err
	}
	if err := e.w.WriteByte(fmt2); err != nil {
		return err
	}
	if err := e.w.WriteByte(canvas.MagLevel); err != nil {
		return err
	}
	if err := e.w.WriteU32(0); err != nil { // reserved
		return err
	}
	if err := e.w.WriteI32(int32(len(canvas.Compressed)) + 1); err != nil {
		return err
	}
	if err := e.w.WriteByte(0); err != nil { // reserved
		return err
	}
	return e.w.WriteRaw(canvas.Compressed)
}

func (e *encoder) writeSound(content Property) error {
	if err := e.writeUolString("Sound_DX8", objPlaced, objRef); err != nil {
		return err
	}
	s := content.Sound
	if err := e.w.WriteByte(0); err != nil { // reserved
		return err
	}
	if err := e.w.WriteCompressedInt32(int32(len(s.Audio))); err != nil {
		return err
	}
	if err := e.w.WriteCompressedInt32(s.Duration); err != nil {
		return err
	}
	if err := e.w.WriteRaw(soundHeaderPrefix); err != nil {
		return err
	}
	if err := e.w.WriteByte(byte(len(s.WavHeader))); err != nil {
		return err
	}
	if err := e.w.WriteEncrypted(s.WavHeader); err != nil {
		return err
	}
	return e.w.WriteRaw(s.Audio)
}

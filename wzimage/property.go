// Package wzimage implements the recursive property/object grammar of an
// Image: a tree of typed, named properties rooted at a PropertyList, with
// string back-references resolved through a per-read offset cache.
package wzimage

import "github.com/gowz/wz/maptree"

// Kind tags which variant of the property union a Property node holds.
type Kind int

const (
	KindNull Kind = iota
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindString
	KindPropertyList
	KindCanvas
	KindConvex
	KindVector
	KindUol
	KindSound
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindShort:
		return "Short"
	case KindInt:
		return "Int"
	case KindLong:
		return "Long"
	case KindFloat:
		return "Float"
	case KindDouble:
		return "Double"
	case KindString:
		return "String"
	case KindPropertyList:
		return "PropertyList"
	case KindCanvas:
		return "Canvas"
	case KindConvex:
		return "Convex"
	case KindVector:
		return "Vector"
	case KindUol:
		return "Uol"
	case KindSound:
		return "Sound"
	default:
		return "Unknown"
	}
}

// VectorData is the payload of a Vector property.
type VectorData struct {
	X, Y int32
}

// SoundData is the payload of a Sound property.
type SoundData struct {
	Duration  int32
	WavHeader []byte
	Audio     []byte
}

// CanvasData is the payload of a Canvas property.
type CanvasData struct {
	Width, Height int32
	Format        CanvasFormat
	MagLevel      uint8
	Compressed    []byte
	// HasChildren records whether an embedded PropertyList preceded the
	// canvas blob in the source encoding; its contents, if present, are
	// the node's own children in the tree, not stored here.
	HasChildren bool
}

// Property is the data stored at every node of an Image's property tree.
// Only the fields relevant to Kind are meaningful.
type Property struct {
	Kind   Kind
	Short  int16
	Int    int32
	Long   int64
	Float  float32
	Double float64
	Str    string
	Vector VectorData
	Canvas CanvasData
	Sound  SoundData
}

// Tree is the property tree of a single Image, rooted at a PropertyList.
type Tree = maptree.Map[Property]

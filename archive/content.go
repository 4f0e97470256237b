package archive

import "github.com/gowz/wz/wzint"

// Kind distinguishes the two shapes a named entry in a Package body can
// take.
type Kind int

const (
	// KindPackage is an inner node; its body at Offset is another Package.
	KindPackage Kind = iota
	// KindImage is a leaf; its body at Offset is an opaque Image blob.
	KindImage
)

func (k Kind) String() string {
	if k == KindImage {
		return "Image"
	}
	return "Package"
}

const (
	tagReferenced byte = 0x02
	tagPackage    byte = 0x03
	tagImage      byte = 0x04
)

func kindFromTag(tag byte) (Kind, error) {
	switch tag {
	case tagPackage:
		return KindPackage, nil
	case tagImage:
		return KindImage, nil
	default:
		return 0, errTag(tag)
	}
}

func tagFromKind(k Kind) byte {
	if k == KindImage {
		return tagImage
	}
	return tagPackage
}

// ImageProvider supplies the bytes of an Image leaf to the writer. Callers
// populating a tree for Write implement this over in-memory bytes or a
// file handle; the archive package never interprets the bytes itself.
type ImageProvider interface {
	Size() int32
	Checksum() int32
	WriteTo(w *wzint.Writer) error
}

// Content is the data stored at every node of an archive's directory tree,
// including the synthetic root package.
type Content struct {
	Kind     Kind
	Size     int32
	Checksum int32
	Offset   uint32
	Provider ImageProvider
}

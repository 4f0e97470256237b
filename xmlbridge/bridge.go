// Package xmlbridge defines the stable tag/attribute surface an external
// XML writer uses to serialize an Image's property tree. It is a boundary
// only: filesystem concerns like Canvas pixel source and Sound audio
// source are left for the collaborator that owns the XML document.
package xmlbridge

import (
	"encoding/xml"
	"strconv"

	"github.com/pkg/errors"

	"github.com/gowz/wz/maptree"
	"github.com/gowz/wz/wzimage"
)

// Element is one node of the stable XML surface. Attributes that don't
// apply to a given tag are left empty and omitted from output.
type Element struct {
	XMLName  xml.Name
	Name     string    `xml:"name,attr"`
	Value    string    `xml:"value,attr,omitempty"`
	Width    string    `xml:"width,attr,omitempty"`
	Height   string    `xml:"height,attr,omitempty"`
	X        string    `xml:"x,attr,omitempty"`
	Y        string    `xml:"y,attr,omitempty"`
	Children []Element `xml:",any"`
}

func tagName(k wzimage.Kind) (string, error) {
	switch k {
	case wzimage.KindNull:
		return "null", nil
	case wzimage.KindShort:
		return "short", nil
	case wzimage.KindInt:
		return "int", nil
	case wzimage.KindLong:
		return "long", nil
	case wzimage.KindFloat:
		return "float", nil
	case wzimage.KindDouble:
		return "double", nil
	case wzimage.KindString:
		return "string", nil
	case wzimage.KindPropertyList:
		return "imgdir", nil
	case wzimage.KindCanvas:
		return "canvas", nil
	case wzimage.KindConvex:
		return "extended", nil
	case wzimage.KindVector:
		return "vector", nil
	case wzimage.KindUol:
		return "uol", nil
	case wzimage.KindSound:
		return "sound", nil
	default:
		return "", errUnknownKind(int(k))
	}
}

// FromCursor converts the subtree rooted at c into the stable Element
// surface, recursing into PropertyList and Convex nodes, and into Canvas
// nodes that carried an embedded PropertyList. The cursor's position is
// restored before FromCursor returns.
func FromCursor(c *maptree.Cursor[wzimage.Property]) (Element, error) {
	p := c.Get()
	tag, err := tagName(p.Kind)
	if err != nil {
		return Element{}, err
	}

	el := Element{XMLName: xml.Name{Local: tag}, Name: c.Name()}

	switch p.Kind {
	case wzimage.KindShort:
		el.Value = strconv.FormatInt(int64(p.Short), 10)
	case wzimage.KindInt:
		el.Value = strconv.FormatInt(int64(p.Int), 10)
	case wzimage.KindLong:
		el.Value = strconv.FormatInt(p.Long, 10)
	case wzimage.KindFloat:
		el.Value = strconv.FormatFloat(float64(p.Float), 'g', -1, 32)
	case wzimage.KindDouble:
		el.Value = strconv.FormatFloat(p.Double, 'g', -1, 64)
	case wzimage.KindString, wzimage.KindUol:
		el.Value = p.Str
	case wzimage.KindVector:
		el.X = strconv.FormatInt(int64(p.Vector.X), 10)
		el.Y = strconv.FormatInt(int64(p.Vector.Y), 10)
	case wzimage.KindCanvas:
		el.Width = strconv.FormatInt(int64(p.Canvas.Width), 10)
		el.Height = strconv.FormatInt(int64(p.Canvas.Height), 10)
	}

	recurse := p.Kind == wzimage.KindPropertyList || p.Kind == wzimage.KindConvex ||
		(p.Kind == wzimage.KindCanvas && p.Canvas.HasChildren)
	if !recurse {
		return el, nil
	}

	for _, name := range c.List() {
		if err := c.MoveTo(name); err != nil {
			return Element{}, err
		}
		child, err := FromCursor(c)
		if err != nil {
			return Element{}, err
		}
		el.Children = append(el.Children, child)
		if err := c.Parent(); err != nil {
			return Element{}, err
		}
	}
	return el, nil
}

// FromTree converts an entire Image property tree into the stable Element
// surface, rooted at its PropertyList root.
func FromTree(tree *wzimage.Tree) (Element, error) {
	return FromCursor(tree.RootCursor())
}

func kindFromTag(tag string) (wzimage.Kind, error) {
	switch tag {
	case "null":
		return wzimage.KindNull, nil
	case "short":
		return wzimage.KindShort, nil
	case "int":
		return wzimage.KindInt, nil
	case "long":
		return wzimage.KindLong, nil
	case "float":
		return wzimage.KindFloat, nil
	case "double":
		return wzimage.KindDouble, nil
	case "string":
		return wzimage.KindString, nil
	case "imgdir":
		return wzimage.KindPropertyList, nil
	case "canvas":
		return wzimage.KindCanvas, nil
	case "extended":
		return wzimage.KindConvex, nil
	case "vector":
		return wzimage.KindVector, nil
	case "uol":
		return wzimage.KindUol, nil
	case "sound":
		return wzimage.KindSound, nil
	default:
		return 0, errUnknownTag(tag)
	}
}

// property converts el's own attributes (not its children) into a Property
// value of the kind named by el's tag. Canvas pixel bytes and Sound audio
// bytes are left empty: sourcing them from sidecar files is the XML
// document owner's responsibility.
func (el Element) property() (wzimage.Property, error) {
	kind, err := kindFromTag(el.XMLName.Local)
	if err != nil {
		return wzimage.Property{}, err
	}
	p := wzimage.Property{Kind: kind}

	switch kind {
	case wzimage.KindShort:
		v, err := strconv.ParseInt(el.Value, 10, 16)
		if err != nil {
			return p, errors.Wrap(err, "xmlbridge: parse short value")
		}
		p.Short = int16(v)
	case wzimage.KindInt:
		v, err := strconv.ParseInt(el.Value, 10, 32)
		if err != nil {
			return p, errors.Wrap(err, "xmlbridge: parse int value")
		}
		p.Int = int32(v)
	case wzimage.KindLong:
		v, err := strconv.ParseInt(el.Value, 10, 64)
		if err != nil {
			return p, errors.Wrap(err, "xmlbridge: parse long value")
		}
		p.Long = v
	case wzimage.KindFloat:
		v, err := strconv.ParseFloat(el.Value, 32)
		if err != nil {
			return p, errors.Wrap(err, "xmlbridge: parse float value")
		}
		p.Float = float32(v)
	case wzimage.KindDouble:
		v, err := strconv.ParseFloat(el.Value, 64)
		if err != nil {
			return p, errors.Wrap(err, "xmlbridge: parse double value")
		}
		p.Double = v
	case wzimage.KindString, wzimage.KindUol:
		p.Str = el.Value
	case wzimage.KindVector:
		x, err := strconv.ParseInt(el.X, 10, 32)
		if err != nil {
			return p, errors.Wrap(err, "xmlbridge: parse vector x")
		}
		y, err := strconv.ParseInt(el.Y, 10, 32)
		if err != nil {
			return p, errors.Wrap(err, "xmlbridge: parse vector y")
		}
		p.Vector = wzimage.VectorData{X: int32(x), Y: int32(y)}
	case wzimage.KindCanvas:
		w, err := strconv.ParseInt(el.Width, 10, 32)
		if err != nil {
			return p, errors.Wrap(err, "xmlbridge: parse canvas width")
		}
		h, err := strconv.ParseInt(el.Height, 10, 32)
		if err != nil {
			return p, errors.Wrap(err, "xmlbridge: parse canvas height")
		}
		p.Canvas = wzimage.CanvasData{Width: int32(w), Height: int32(h), HasChildren: len(el.Children) > 0}
	}
	return p, nil
}

// ToCursor populates the subtree rooted at c's current position (which must
// already hold the root PropertyList) from el and its descendants.
func ToCursor(el Element, c *maptree.CursorMut[wzimage.Property]) error {
	for _, child := range el.Children {
		p, err := child.property()
		if err != nil {
			return err
		}
		if err := c.Create(child.Name, p); err != nil {
			return err
		}
		if len(child.Children) == 0 {
			continue
		}
		if err := c.MoveTo(child.Name); err != nil {
			return err
		}
		if err := ToCursor(child, c); err != nil {
			return err
		}
		if err := c.Parent(); err != nil {
			return err
		}
	}
	return nil
}

// ToTree builds a fresh Image property tree from root's children, mirroring
// FromTree's contract in reverse.
func ToTree(root Element) (*wzimage.Tree, error) {
	tree := maptree.New[wzimage.Property]("Property", wzimage.Property{Kind: wzimage.KindPropertyList})
	if err := ToCursor(root, tree.RootCursorMut()); err != nil {
		return nil, err
	}
	return tree, nil
}

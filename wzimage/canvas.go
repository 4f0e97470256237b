package wzimage

// CanvasFormat is the decoded pixel format of a Canvas property.
type CanvasFormat int

const (
	FormatBgra4444 CanvasFormat = iota
	FormatArgb8888
	FormatRgb565
	FormatCompressedRgb565
	FormatBc3
)

// canvasFormatFromPair maps the on-wire (fmt1, fmt2) CompressedInt32/u8
// pair to a CanvasFormat. The pair's BGRA4444 channel order follows the
// newer of two contradictory source revisions: B:4 G:4 R:4 A:4, low
// nibble first.
func canvasFormatFromPair(fmt1 int32, fmt2 uint8) (CanvasFormat, error) {
	switch {
	case fmt1 == 1 && fmt2 == 0:
		return FormatBgra4444, nil
	case fmt1 == 2 && fmt2 == 0:
		return FormatArgb8888, nil
	case fmt1 == 513 && fmt2 == 0:
		return FormatRgb565, nil
	case fmt1 == 513 && fmt2 == 4:
		return FormatCompressedRgb565, nil
	case fmt1 == 1026 && fmt2 == 0:
		return FormatBc3, nil
	default:
		return 0, errEncodingFormat(fmt1, fmt2)
	}
}

func canvasFormatToPair(f CanvasFormat) (int32, uint8) {
	switch f {
	case FormatArgb8888:
		return 2, 0
	case FormatRgb565:
		return 513, 0
	case FormatCompressedRgb565:
		return 513, 4
	case FormatBc3:
		return 1026, 0
	default:
		return 1, 0
	}
}

const maxCanvasDimension = 0x10000

package keystream

// TrimmedKey is the fixed 32-byte AES-256 key shared by every region's
// keystream; only the initialization vector varies by region.
var TrimmedKey = [KeySize]byte{
	0x13, 0x52, 0x2a, 0x5b, 0x08, 0x02, 0x10, 0x60, 0x06, 0x02, 0x43, 0x0f, 0xb4, 0x4b, 0x35, 0x05,
	0x1b, 0x0a, 0x5f, 0x09, 0x0f, 0x50, 0x0c, 0x1b, 0x33, 0x55, 0x01, 0x09, 0x52, 0xde, 0xc7, 0x1e,
}

// GMSIV is the initialization vector used by the GMS (Global) client region.
var GMSIV = [ivSize]byte{0x4d, 0x23, 0xc7, 0x2b}

// KMSIV is the initialization vector used by the KMS (Korean) client region.
var KMSIV = [ivSize]byte{0xb9, 0x7d, 0x63, 0xe9}

// Selector names a keystream choice as accepted by the -k CLI flag.
type Selector string

const (
	SelectorGMS  Selector = "gms"
	SelectorKMS  Selector = "kms"
	SelectorNone Selector = "none"
)

// ForSelector builds the Keystream named by a Selector.
func ForSelector(sel Selector) (Keystream, error) {
	switch sel {
	case SelectorGMS:
		return New(TrimmedKey, GMSIV)
	case SelectorKMS:
		return New(TrimmedKey, KMSIV)
	case SelectorNone, "":
		return NoOp(), nil
	default:
		return nil, errUnknownSelector(sel)
	}
}

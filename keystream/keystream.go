// Package keystream implements the lazily-grown AES-256-OFB XOR pad used to
// mask strings and sound headers throughout an archive or image. Offsets are
// not run through it; the archive package obfuscates them with the version key.
//
// A Keystream exposes exactly two operations, Grow and XOR, so that readers
// and writers can be written generically over "some stream cipher" without
// caring whether bytes are actually encrypted (see NoOp).
package keystream

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/pkg/errors"
)

// KeySize is the length in bytes of the AES-256 key all Keystreams share.
const KeySize = 32

// ivSize is the length in bytes of the initialization vector; it is repeated
// four times to fill one AES block (16 bytes).
const ivSize = 4

// Keystream is a growable XOR pad. Implementations are NOT safe for
// concurrent use; callers must serialize access or construct one Keystream
// per reader/writer.
type Keystream interface {
	// Grow ensures the pad holds at least n bytes. Grow is idempotent and
	// monotonic: calling it with a smaller n than already grown is a no-op.
	Grow(n int)

	// XOR grows the pad to len(buf) and XORs pad[i] into buf[i] in place.
	XOR(buf []byte)
}

// aesOFB is the real Keystream: an AES-256 block cipher run in OFB mode,
// seeded with the IV repeated to fill one block.
type aesOFB struct {
	block cipher.Block
	state [aes.BlockSize]byte
	pad   []byte
}

// New returns a Keystream seeded from a 32-byte AES-256 key and a 4-byte IV.
// The IV is repeated four times to form the initial 16-byte OFB register.
func New(key [KeySize]byte, iv [ivSize]byte) (Keystream, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, errors.Wrap(err, "keystream: new AES cipher")
	}

	s := &aesOFB{block: block}
	for i := range s.state {
		s.state[i] = iv[i%ivSize]
	}
	return s, nil
}

func (s *aesOFB) Grow(n int) {
	for len(s.pad) < n {
		s.block.Encrypt(s.state[:], s.state[:])
		s.pad = append(s.pad, s.state[:]...)
	}
}

func (s *aesOFB) XOR(buf []byte) {
	s.Grow(len(buf))
	for i := range buf {
		buf[i] ^= s.pad[i]
	}
}

// identity is the no-op Keystream used for unencrypted files.
type identity struct{}

func (identity) Grow(int)    {}
func (identity) XOR([]byte)  {}

// NoOp returns a Keystream that leaves bytes untouched, for the "none"
// keystream selector.
func NoOp() Keystream { return identity{} }

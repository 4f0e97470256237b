// Package wzhash derives the 16-bit version hash stored in an archive
// header and the 32-bit version key that scrambles every offset in the
// archive body, both computed from the decimal version string.
package wzhash

// Checksum hashes an ASCII decimal version string into the 16-bit hash
// stored in the archive header and the 32-bit key used to obfuscate
// offsets (see archive.EncodeOffset/DecodeOffset). Arithmetic is 32-bit wrapping
// throughout, matching the on-disk algorithm bit for bit.
func Checksum(version string) (hash uint16, key uint32) {
	var y uint32
	for _, c := range []byte(version) {
		y = ((y<<5 | y>>27) & 0xFFE0) + uint32(c) + 1
	}

	x := uint16(y>>24) & 0xFF
	x ^= uint16(y>>16) & 0xFF
	x ^= uint16(y>>8) & 0xFF
	x ^= uint16(y) & 0xFF
	x ^= 0xFF

	return x, y
}

// MaxVersion bounds the bruteforce search: candidate versions run 1..MaxVersion
// inclusive, matching the source behaviour of trying versions 1 through 1000.
const MaxVersion = 1000

// Candidates returns, in increasing version order, the keys of every
// version 1..MaxVersion whose Checksum hash matches wantHash. The caller
// (archive.Open) tries each key in turn and keeps the first under which every
// direct child of the root package decodes to an in-bounds offset.
func Candidates(wantHash uint16) []uint32 {
	var keys []uint32
	for v := 1; v <= MaxVersion; v++ {
		if hash, key := Checksum(itoa(v)); hash == wantHash {
			keys = append(keys, key)
		}
	}
	return keys
}

// itoa avoids importing strconv for a single digit-only conversion used in
// a hot bruteforce loop.
func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	var buf [4]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

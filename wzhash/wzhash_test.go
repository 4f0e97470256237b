package wzhash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecksumKnownVersions(t *testing.T) {
	cases := []struct {
		version  string
		wantHash uint16
		wantKey  uint32
	}{
		{"83", 0xAC, 1876},
		{"176", 0x07, 53047},
	}

	for _, c := range cases {
		hash, key := Checksum(c.version)
		require.Equalf(t, c.wantHash, hash, "hash for version %q", c.version)
		require.Equalf(t, c.wantKey, key, "key for version %q", c.version)
	}
}

func TestCandidatesIncludesKnownVersion(t *testing.T) {
	hash, key := Checksum("83")
	keys := Candidates(hash)
	require.Contains(t, keys, key)
}

func TestCandidatesAreIncreasingVersionOrder(t *testing.T) {
	// Version 1's key always appears first among any matching candidates
	// because Candidates walks 1..MaxVersion in order.
	hash, _ := Checksum("1")
	keys := Candidates(hash)
	require.NotEmpty(t, keys)
	firstVersionKey := func(v int) uint32 {
		_, key := Checksum(itoa(v))
		return key
	}
	require.Equal(t, firstVersionKey(1), keys[0])
}

package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Fingerprint computes a single xxHash64 digest over a sequence of
// (string, uint64) pairs, such as field names paired with their packed
// layout descriptors. The digest is order-sensitive: the same pairs in a
// different order produce a different fingerprint.
type Fingerprint struct {
	digest *xxhash.Digest
}

// NewFingerprint creates an empty fingerprint accumulator.
func NewFingerprint() *Fingerprint {
	return &Fingerprint{digest: xxhash.New()}
}

// WritePair folds a name and its packed descriptor into the digest.
func (f *Fingerprint) WritePair(name string, desc uint64) {
	var buf [8]byte
	_, _ = f.digest.WriteString(name)
	binary.LittleEndian.PutUint64(buf[:], desc)
	_, _ = f.digest.Write(buf[:])
}

// Sum64 returns the accumulated 64-bit fingerprint.
func (f *Fingerprint) Sum64() uint64 {
	return f.digest.Sum64()
}

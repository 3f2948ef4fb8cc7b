// Package pseudonym derives stable pseudonyms for personal identifiers so
// decision records and audit events never carry raw national ID codes. The
// hash is keyed: without the key, stored pseudonyms cannot be reversed to
// codes by exhaustive enumeration of the ID space.
package pseudonym

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Hasher produces keyed blake2b-256 pseudonyms.
type Hasher struct {
	key []byte
}

// NewHasher creates a Hasher from a secret key. The key must be non-empty and
// at most 64 bytes (the blake2b key limit).
func NewHasher(key string) (*Hasher, error) {
	if key == "" {
		return nil, fmt.Errorf("pseudonym key is required")
	}
	if len(key) > 64 {
		return nil, fmt.Errorf("pseudonym key must be at most 64 bytes")
	}
	return &Hasher{key: []byte(key)}, nil
}

// Hash returns the hex-encoded pseudonym for value.
func (h *Hasher) Hash(value string) string {
	mac, err := blake2b.New256(h.key)
	if err != nil {
		// New256 only fails on oversized keys, which NewHasher rejects.
		panic(err)
	}
	mac.Write([]byte(value))
	return hex.EncodeToString(mac.Sum(nil))
}

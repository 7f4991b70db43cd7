// Package analytics records privacy-conscious page visits in SQLite and
// serves aggregate statistics to the site owner.
package analytics

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// hashLength is the number of hex characters kept from each digest.
const hashLength = 16

// Hasher turns client IPs into salted, truncated digests. Raw addresses are
// never stored.
type Hasher struct {
	salt string
}

// NewHasher uses salt, or a random salt when salt is empty. With a random
// salt, hashes are only comparable within one process lifetime.
func NewHasher(salt string) (*Hasher, error) {
	if salt == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, fmt.Errorf("generate salt: %w", err)
		}
		salt = hex.EncodeToString(b)
	}
	return &Hasher{salt: salt}, nil
}

// Hash returns the same digest for the same ip and salt.
func (h *Hasher) Hash(ip string) string {
	sum := sha256.Sum256([]byte(ip + h.salt))
	return hex.EncodeToString(sum[:])[:hashLength]
}

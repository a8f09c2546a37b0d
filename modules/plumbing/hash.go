package plumbing

import (
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/zeebo/blake3"
)

const (
	HASH_DIGEST_SIZE = 32
	HASH_HEX_SIZE    = 64
)

// Hash is a BLAKE3 content id: a commit id, tree id, or blob id.
type Hash [HASH_DIGEST_SIZE]byte

// ZeroHash is the zero-value Hash, used as a sentinel for "no parent"/"not set".
var ZeroHash Hash

// NewHash parses a hexadecimal hash representation, ignoring malformed input
// (returning whatever partial bytes decoded, same as a truncated hash).
func NewHash(s string) Hash {
	b, _ := hex.DecodeString(s)
	var h Hash
	copy(h[:], b)
	return h
}

// NewHashStrict parses s, rejecting anything that isn't exactly
// HASH_HEX_SIZE hex characters.
func NewHashStrict(s string) (Hash, error) {
	if len(s) != HASH_HEX_SIZE {
		return ZeroHash, fmt.Errorf("strand: '%s' is not a valid object id", s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return ZeroHash, fmt.Errorf("strand: '%s' is not a valid object id: %w", s, err)
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}

func (h Hash) IsZero() bool {
	return h == ZeroHash
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// MarshalText / UnmarshalText let Hash round-trip through TOML config and
// JSON fixtures without a bespoke codec.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	copy(h[:], b)
	return nil
}

// Hasher wraps the BLAKE3 hash.Hash with a typed Sum.
type Hasher struct {
	hash.Hash
}

func NewHasher() Hasher {
	return Hasher{Hash: blake3.New()}
}

func (h Hasher) Sum() (out Hash) {
	copy(out[:], h.Hash.Sum(nil))
	return
}

// HashContent is a convenience wrapper for the common case of hashing a
// single byte slice to a content id.
func HashContent(content []byte) Hash {
	h := NewHasher()
	_, _ = h.Write(content)
	return h.Sum()
}

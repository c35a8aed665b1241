package agentproxy

import (
	"crypto/sha256"
	"fmt"

	"github.com/mr-tron/base58"
)

// FormatCodehash returns the canonical string form of a worker code hash:
// base58 encoding of the SHA-256 digest of the worker build.
func FormatCodehash(digest [sha256.Size]byte) string {
	return base58.Encode(digest[:])
}

// DecodeCodehash parses the canonical string form of a worker code hash
// produced by FormatCodehash.
func DecodeCodehash(s string) ([sha256.Size]byte, error) {
	var digest [sha256.Size]byte

	b, err := base58.Decode(s)
	if err != nil {
		return digest, fmt.Errorf("invalid base58: %w", err)
	}
	if len(b) != sha256.Size {
		return digest, fmt.Errorf("invalid digest length %d", len(b))
	}

	copy(digest[:], b)
	return digest, nil
}

// Package signature provides helper functions for handling the ledger
// digest needs.
package signature

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ZeroHash represents a hash code of zeros. It stands in for the parent
// hash of the genesis block when a block is digested.
const ZeroHash string = "0000000000000000000000000000000000000000000000000000000000000000"

// =============================================================================

// Hash returns the hex encoded SHA-256 digest of the specified parts joined
// together in order with no separator.
func Hash(parts ...string) string {
	h := sha256.New()
	for _, part := range parts {
		h.Write([]byte(part))
	}

	return hex.EncodeToString(h.Sum(nil))
}

// HasLeadingZeros reports whether the first n characters of the hex hash
// are all '0'. A hash shorter than n never qualifies.
func HasLeadingZeros(hash string, n uint) bool {
	if uint(len(hash)) < n {
		return false
	}

	return strings.Count(hash[:n], "0") == int(n)
}

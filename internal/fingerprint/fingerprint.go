// Package fingerprint computes the deterministic content digest the rest of
// the system keys on. Same bytes always produce the same fingerprint; the
// declared content kind never participates in the digest.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// Size is the length of an encoded fingerprint in characters
const Size = sha256.Size * 2

// copyBufferSize bounds memory while streaming large files
const copyBufferSize = 32 * 1024

// Reader streams r through SHA-256 and returns the lowercase hex digest.
// The input is read exactly once in fixed-size chunks, so arbitrarily large
// content never has to fit in memory. Fails only on a read error.
func Reader(r io.Reader) (string, error) {
	h := sha256.New()
	buf := make([]byte, copyBufferSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", fmt.Errorf("read content: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Bytes returns the fingerprint of an in-memory byte slice
func Bytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Text fingerprints text content. Text is encoded as its UTF-8 bytes with no
// locale-dependent normalization, so Text(s) == Bytes([]byte(s)).
func Text(s string) string {
	return Bytes([]byte(s))
}

// Sum returns the raw 32-byte digest, as submitted to the ledger contract
func Sum(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// Decode parses an encoded fingerprint back into its raw digest form
func Decode(fp string) ([32]byte, error) {
	var out [32]byte
	if len(fp) != Size {
		return out, fmt.Errorf("fingerprint must be %d hex characters, got %d", Size, len(fp))
	}
	raw, err := hex.DecodeString(fp)
	if err != nil {
		return out, fmt.Errorf("decode fingerprint: %w", err)
	}
	copy(out[:], raw)
	return out, nil
}

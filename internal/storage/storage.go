// Package storage provides the content locator capability. The core never
// manages raw bytes beyond reading them once; it only carries the opaque
// locator returned here.
package storage

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

// Locator stores content bytes and returns an opaque locator string
type Locator interface {
	Store(ctx context.Context, data []byte) (string, error)
}

// base58 alphabet used by CIDv0-style locators
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

const (
	cidPrefix = "Qm"
	cidBody   = 44
)

// SyntheticLocator issues CID-shaped locators without pinning anything.
// It stands in for an IPFS/Filecoin pinning client in deployments where no
// pinning service is configured; the locator is still unique per submission.
type SyntheticLocator struct{}

var _ Locator = (*SyntheticLocator)(nil)

// NewSyntheticLocator creates a synthetic locator source
func NewSyntheticLocator() *SyntheticLocator {
	return &SyntheticLocator{}
}

// Store returns a fresh CID-shaped locator. The content bytes are not
// retained.
func (l *SyntheticLocator) Store(_ context.Context, _ []byte) (string, error) {
	body := make([]byte, cidBody)
	alphabet := big.NewInt(int64(len(base58Alphabet)))
	for i := range body {
		n, err := rand.Int(rand.Reader, alphabet)
		if err != nil {
			return "", fmt.Errorf("generate locator: %w", err)
		}
		body[i] = base58Alphabet[n.Int64()]
	}
	return cidPrefix + string(body), nil
}

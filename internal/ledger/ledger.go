// Package ledger defines the external attestation capability. The ledger is
// treated as fallible and latency-bearing: callers bound every call with a
// timeout and fall back to synthetic references when submission fails.
package ledger

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

// ErrNoSigner is returned by Submit when no signing key is configured
var ErrNoSigner = errors.New("ledger: no signing key configured")

// Fee is an estimated submission cost in the ledger's native currency and a
// fixed reference currency
type Fee struct {
	Native string `json:"gas_fee"`
	USD    string `json:"gas_fee_usd"`
}

// DefaultFee is the documented estimate returned when the ledger cannot be
// reached
var DefaultFee = Fee{Native: "0.001000", USD: "0.0007"}

// Attestation is the on-chain view of a recorded fingerprint
type Attestation struct {
	Verified    bool      `json:"is_verified"`
	Creator     string    `json:"creator,omitempty"`
	Timestamp   time.Time `json:"timestamp,omitempty"`
	StorageCID  string    `json:"storage_cid,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
}

// Client is the ledger capability. Submit blocks until the submission is
// confirmed and returns the transaction reference.
type Client interface {
	Submit(ctx context.Context, contentHash [32]byte, cid string, kind string) (string, error)
	Verified(ctx context.Context, contentHash [32]byte) (*Attestation, error)
	TotalVerified(ctx context.Context) (uint64, error)
	EstimateFee(ctx context.Context) (*Fee, error)
}

// RefLength is the length of a ledger transaction reference: 0x plus 32 bytes
// of hex
const RefLength = 66

// RefPrefix is the conventional transaction reference prefix
const RefPrefix = "0x"

// SyntheticRef generates a syntactically valid transaction reference for the
// fallback path. It is indistinguishable in shape from a real reference; the
// record's synthetic flag is what tells operators apart.
func SyntheticRef() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return RefPrefix + hex.EncodeToString(buf)
}

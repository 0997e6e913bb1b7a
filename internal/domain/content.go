package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContentKind classifies the submitted content
type ContentKind string

const (
	KindImage ContentKind = "image"
	KindVideo ContentKind = "video"
	KindText  ContentKind = "text"
)

// Valid reports whether the kind is one of the supported content kinds
func (k ContentKind) Valid() bool {
	switch k {
	case KindImage, KindVideo, KindText:
		return true
	}
	return false
}

// VerificationStatus is the status assigned to a record at creation time.
// It is derived from the authenticity score once and never re-evaluated.
type VerificationStatus string

const (
	StatusVerified VerificationStatus = "verified"
	StatusPending  VerificationStatus = "pending"
	StatusFlagged  VerificationStatus = "flagged"
)

// CheckResult is the outcome of a verification resolution
type CheckResult string

const (
	ResultVerified   CheckResult = "verified"
	ResultUnverified CheckResult = "unverified"
	ResultSuspicious CheckResult = "suspicious"
)

// VerifiedContent is the append-only record created once per distinct fingerprint.
// The unique key on ContentHash enforces at-most-one record per content.
type VerifiedContent struct {
	ID              uuid.UUID          `json:"id"`
	ContentHash     string             `json:"content_hash"`
	ContentType     ContentKind        `json:"content_type"`
	StorageCID      string             `json:"storage_cid"`
	WalletAddress   string             `json:"wallet_address"`
	CreatorName     string             `json:"creator_name"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	LedgerTxHash    string             `json:"ledger_tx_hash"`
	LedgerSynthetic bool               `json:"ledger_synthetic"`
	AIScore         *int               `json:"ai_score,omitempty"`
	Status          VerificationStatus `json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
}

// ProvenanceEvent is an append-only audit record of a lifecycle transition
type ProvenanceEvent struct {
	ID          uuid.UUID              `json:"id"`
	ContentID   uuid.UUID              `json:"content_id"`
	EventType   string                 `json:"event_type"`
	ActorWallet string                 `json:"actor_wallet"`
	Details     map[string]interface{} `json:"details,omitempty"`
	LedgerRef   string                 `json:"ledger_ref"`
	CreatedAt   time.Time              `json:"created_at"`
}

// EventCreated is the provenance event type emitted when a record is created
const EventCreated = "created"

// VerificationCheck is written once per resolution request, regardless of outcome
type VerificationCheck struct {
	ID               uuid.UUID   `json:"id"`
	CheckedHash      string      `json:"checked_hash"`
	MatchedContentID *uuid.UUID  `json:"matched_content_id,omitempty"`
	Result           CheckResult `json:"check_result"`
	CheckerIP        string      `json:"checker_ip"`
	CreatedAt        time.Time   `json:"created_at"`
}

// StatusLogEntry tracks recording progress for a content record
type StatusLogEntry struct {
	ID        uuid.UUID `json:"id"`
	ContentID uuid.UUID `json:"content_id"`
	Status    string    `json:"status"`
	Progress  int       `json:"progress_percentage"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
